package ops

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/numwords"
)

// result is what one pass of the converter yields for a text.
type result struct {
	output       string
	replacements []numwords.Replacement
}

// Memo remembers recent conversions by exact input text.
// A nil *Memo is valid and caches nothing.
type Memo struct {
	cache *expirable.LRU[string, result]
}

// NewMemo returns a memo holding up to size entries for ttl each.
// It returns nil when size is not positive.
func NewMemo(size int, ttl time.Duration) *Memo {
	if size <= 0 {
		return nil
	}
	return &Memo{cache: expirable.NewLRU[string, result](size, nil, ttl)}
}

// NewMemoFromConfig builds a memo from cache_size and cache_ttl_seconds.
func NewMemoFromConfig(cfg *config.Config) *Memo {
	if cfg == nil {
		return nil
	}
	return NewMemo(cfg.CacheSize, time.Duration(cfg.CacheTTLSeconds)*time.Second)
}

// Len reports how many entries are cached.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	return m.cache.Len()
}

func (m *Memo) convert(text string) result {
	if m != nil {
		if r, ok := m.cache.Get(text); ok {
			return r
		}
	}

	r := result{
		output:       numwords.Convert(text),
		replacements: numwords.Explain(text),
	}

	if m != nil {
		m.cache.Add(text, r)
	}
	return r
}
