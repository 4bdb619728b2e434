package ops

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/numwords/internal/config"
)

func TestNewMemo_Disabled(t *testing.T) {
	assert.Nil(t, NewMemo(0, time.Minute))
	assert.Nil(t, NewMemo(-1, time.Minute))
	assert.Nil(t, NewMemoFromConfig(nil))

	var m *Memo
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, "21", m.convert("twenty one").output)
}

func TestNewMemoFromConfig(t *testing.T) {
	m := NewMemoFromConfig(config.DefaultConfig())
	require.NotNil(t, m)

	r := m.convert("one hundred and two")
	assert.Equal(t, "102", r.output)
	require.Len(t, r.replacements, 1)
	assert.Equal(t, 1, m.Len())
}

func TestMemo_Evicts(t *testing.T) {
	m := NewMemo(2, time.Minute)

	m.convert("one")
	m.convert("two")
	m.convert("three")
	assert.Equal(t, 2, m.Len())
}

func TestMemo_Expires(t *testing.T) {
	m := NewMemo(4, 20*time.Millisecond)

	m.convert("one")
	require.Equal(t, 1, m.Len())

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 10*time.Millisecond)
}
