package port

import "context"

// PageSegMode selects the OCR engine's layout analysis.
type PageSegMode int

const (
	PSMAuto         PageSegMode = 3
	PSMSingleColumn PageSegMode = 4
	PSMSingleBlock  PageSegMode = 6
)

// OCRRequest is a single recognition call. Image is PNG-encoded.
type OCRRequest struct {
	Image     []byte
	PSM       PageSegMode
	Whitelist string
}

// OCREngine converts an image to text.
type OCREngine interface {
	Recognize(ctx context.Context, req OCRRequest) (string, error)
}
