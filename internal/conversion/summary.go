package conversion

// PreviewChars bounds the input and output previews in a Summary.
const PreviewChars = 80

// Summary is a conversion without its full text, used by history listings.
type Summary struct {
	ID            string `json:"id"`
	InputPreview  string `json:"input_preview"`
	OutputPreview string `json:"output_preview"`
	Phrases       int    `json:"phrases"`
	InputChars    int    `json:"input_chars"`
	Source        string `json:"source"`
	CreatedAt     int64  `json:"created_at"`
}

// ToSummary converts a Conversion to a Summary by truncating its text.
func (c *Conversion) ToSummary() Summary {
	return Summary{
		ID:            c.ID,
		InputPreview:  Preview(c.InputText, PreviewChars),
		OutputPreview: Preview(c.OutputText, PreviewChars),
		Phrases:       c.Phrases,
		InputChars:    c.InputChars,
		Source:        c.Source,
		CreatedAt:     c.CreatedAt,
	}
}
