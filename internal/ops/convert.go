package ops

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/db"
	"github.com/hpungsan/numwords/internal/errors"
	"github.com/hpungsan/numwords/internal/numwords"
)

// ConvertInput contains parameters for the Convert operation.
type ConvertInput struct {
	Text      string
	Source    string // default: "cli"
	Explain   bool   // include per-phrase replacements in the output
	NoHistory bool   // skip recording this conversion
}

// ConvertOutput contains the result of the Convert operation.
type ConvertOutput struct {
	ID           string                 `json:"id,omitempty"`
	Output       string                 `json:"output"`
	Changed      bool                   `json:"changed"`
	Phrases      int                    `json:"phrases"`
	Replacements []numwords.Replacement `json:"replacements,omitempty"`
}

// Convert rewrites number words in input.Text as numerals and records the
// conversion unless history is off, the database is nil, or the text is empty.
func Convert(ctx context.Context, database *sql.DB, cfg *config.Config, memo *Memo, input ConvertInput) (*ConvertOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	source, err := resolveSource(input.Source, conversion.SourceCLI)
	if err != nil {
		return nil, err
	}

	chars := conversion.CountChars(input.Text)
	if cfg.MaxInputChars > 0 && chars > cfg.MaxInputChars {
		return nil, errors.NewInputTooLarge(cfg.MaxInputChars, chars)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r := memo.convert(input.Text)
	output := &ConvertOutput{
		Output:  r.output,
		Changed: r.output != input.Text,
		Phrases: len(r.replacements),
	}
	if input.Explain {
		output.Replacements = r.replacements
	}

	if database == nil || cfg.HistoryDisabled || input.NoHistory || input.Text == "" {
		return output, nil
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	c := &conversion.Conversion{
		ID:         id,
		InputText:  input.Text,
		OutputText: r.output,
		Phrases:    output.Phrases,
		InputChars: chars,
		Source:     source,
		CreatedAt:  time.Now().Unix(),
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if err := db.Insert(ctx, database, c); err != nil {
		return nil, err
	}

	output.ID = id
	return output, nil
}

// BatchInput contains parameters for the ConvertBatch operation.
type BatchInput struct {
	Texts     []string
	Source    string
	Explain   bool
	NoHistory bool
}

// BatchOutput contains the result of the ConvertBatch operation.
// Items are in the same order as the input texts.
type BatchOutput struct {
	Items   []ConvertOutput `json:"items"`
	Changed int             `json:"changed"`
}

// ConvertBatch converts several texts. Sizes are checked for every item
// before any conversion is recorded.
func ConvertBatch(ctx context.Context, database *sql.DB, cfg *config.Config, memo *Memo, input BatchInput) (*BatchOutput, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	if len(input.Texts) == 0 {
		return nil, errors.NewInvalidRequest("texts is required")
	}
	if cfg.MaxBatchItems > 0 && len(input.Texts) > cfg.MaxBatchItems {
		return nil, errors.NewBatchTooLarge(cfg.MaxBatchItems, len(input.Texts))
	}
	if _, err := resolveSource(input.Source, conversion.SourceCLI); err != nil {
		return nil, err
	}

	for i, text := range input.Texts {
		chars := conversion.CountChars(text)
		if cfg.MaxInputChars > 0 && chars > cfg.MaxInputChars {
			tooLarge := errors.NewInputTooLarge(cfg.MaxInputChars, chars)
			tooLarge.Message = fmt.Sprintf("texts[%d]: %s", i, tooLarge.Message)
			tooLarge.Details["index"] = i
			return nil, tooLarge
		}
	}

	output := &BatchOutput{Items: make([]ConvertOutput, 0, len(input.Texts))}
	for _, text := range input.Texts {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}

		item, err := Convert(ctx, database, cfg, memo, ConvertInput{
			Text:      text,
			Source:    input.Source,
			Explain:   input.Explain,
			NoHistory: input.NoHistory,
		})
		if err != nil {
			return nil, err
		}
		if item.Changed {
			output.Changed++
		}
		output.Items = append(output.Items, *item)
	}

	return output, nil
}
