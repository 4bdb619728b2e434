package conversion

// Conversion is one recorded run of the number-word converter.
type Conversion struct {
	// ID is a ULID that uniquely identifies this conversion
	ID string `json:"id"`

	// InputText is the text exactly as submitted
	InputText string `json:"input_text"`

	// OutputText is the converter's result
	OutputText string `json:"output_text"`

	// Phrases is the number of number-word phrases that were replaced
	Phrases int `json:"phrases"`

	// InputChars is the input length in runes
	InputChars int `json:"input_chars"`

	// Source is the front end that submitted the text (cli, web, api, mcp)
	Source string `json:"source"`

	// CreatedAt is the Unix timestamp when the conversion was recorded
	CreatedAt int64 `json:"created_at"`
}

// Changed reports whether conversion altered the text.
func (c *Conversion) Changed() bool {
	return c.InputText != c.OutputText
}
