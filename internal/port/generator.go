package port

import "context"

// GenerateInput carries one prompt and an optional image for a language model.
type GenerateInput struct {
	Prompt      string
	Image       []byte
	MimeType    string
	Temperature float64
	MaxTokens   int
}

// GenerateOutput is the raw model response.
type GenerateOutput struct {
	Text      string
	ModelUsed string
}

// Generator abstracts a text or vision language model. Implementations hold
// no per-request state.
type Generator interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}
