package parser

import (
	"context"
	"errors"
	"log"
	"strings"

	"docfill/internal/domain"
	"docfill/internal/extractor"
	"docfill/internal/port"
)

// Confidence assigned to language-model records.
const (
	TextConfidence   = 0.85
	VisionConfidence = 0.95
)

var errNoGenerator = errors.New("no language model configured")

// LLMExtractor turns OCR text or a page image into an extracted record with
// the help of an injected language model.
type LLMExtractor struct {
	gen port.Generator
}

// NewLLMExtractor creates an LLMExtractor. A nil generator is allowed; every
// call then fails without side effects.
func NewLLMExtractor(gen port.Generator) *LLMExtractor {
	return &LLMExtractor{gen: gen}
}

// Enabled reports whether a generator is configured.
func (e *LLMExtractor) Enabled() bool {
	return e != nil && e.gen != nil
}

// ExtractFromText extracts fields from OCR text. Representative forms that
// look unfilled are rejected without calling the model.
func (e *LLMExtractor) ExtractFromText(ctx context.Context, dt domain.DocumentType, text string) (*domain.ExtractedRecord, error) {
	if e.gen == nil {
		return nil, domain.NewExtractionFailure(domain.MethodOCRLLM, "skipped", errNoGenerator)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewExtractionFailure(domain.MethodOCRLLM, "empty ocr text", nil)
	}
	if dt == domain.DocumentTypeRepresentative && extractor.LooksBlank(text) {
		log.Printf("parser.LLMExtractor.ExtractFromText: blank form template detected, skipping model call")
		return nil, domain.NewExtractionFailure(domain.MethodOCRLLM, "blank form", domain.ErrBlankForm)
	}

	prompt, err := TextPrompt(dt, text)
	if err != nil {
		return nil, domain.NewExtractionFailure(domain.MethodOCRLLM, "building prompt", err)
	}
	return e.run(ctx, dt, domain.MethodOCRLLM, TextConfidence, port.GenerateInput{
		Prompt:      prompt,
		Temperature: 0.1,
		MaxTokens:   1000,
	})
}

// ExtractFromImage extracts fields from a page image with a vision model.
func (e *LLMExtractor) ExtractFromImage(ctx context.Context, dt domain.DocumentType, image []byte, mimeType string) (*domain.ExtractedRecord, error) {
	if e.gen == nil {
		return nil, domain.NewExtractionFailure(domain.MethodVisionLLM, "skipped", errNoGenerator)
	}
	if len(image) == 0 {
		return nil, domain.NewExtractionFailure(domain.MethodVisionLLM, "no image", domain.ErrEmptyDocument)
	}

	prompt, err := ImagePrompt(dt)
	if err != nil {
		return nil, domain.NewExtractionFailure(domain.MethodVisionLLM, "building prompt", err)
	}
	return e.run(ctx, dt, domain.MethodVisionLLM, VisionConfidence, port.GenerateInput{
		Prompt:      prompt,
		Image:       image,
		MimeType:    mimeType,
		Temperature: 0.1,
		MaxTokens:   1000,
	})
}

func (e *LLMExtractor) run(ctx context.Context, dt domain.DocumentType, method domain.Method, confidence float64, in port.GenerateInput) (*domain.ExtractedRecord, error) {
	out, err := e.gen.Generate(ctx, in)
	if err != nil {
		return nil, domain.NewExtractionFailure(method, "model call failed", err)
	}

	fields, blank, err := DecodeFields(out.Text)
	if err != nil {
		return nil, domain.NewExtractionFailure(method, "malformed response", err)
	}
	if blank {
		log.Printf("parser.LLMExtractor.run: model reported a blank form (%s)", out.ModelUsed)
		return nil, domain.NewExtractionFailure(method, "blank form", domain.ErrBlankForm)
	}

	fields = keepVocabulary(dt, PostProcess(dt, fields))
	if len(fields) == 0 {
		return nil, domain.NewExtractionFailure(method, "no fields in response", nil)
	}

	log.Printf("parser.LLMExtractor.run: %s extracted %d %s fields with %s", method, len(fields), dt, out.ModelUsed)
	return domain.NewExtractedRecord(method, confidence, fields), nil
}

func keepVocabulary(dt domain.DocumentType, fields map[string]string) map[string]string {
	var vocab []string
	if dt == domain.DocumentTypePassport {
		vocab = domain.PassportFields()
	} else {
		vocab = domain.RepresentativeFields()
	}
	out := make(map[string]string, len(vocab))
	for _, k := range vocab {
		if v := strings.TrimSpace(fields[k]); v != "" {
			out[k] = v
		}
	}
	return out
}
