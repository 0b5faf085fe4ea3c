package ocr

import (
	"context"
	"image"
	"log"
	"strings"

	"docfill/internal/imaging"
	"docfill/internal/port"
)

// letterWidth300DPI is the pixel width of a US letter page rasterized at 300 DPI.
const letterWidth300DPI = 2550

// MultiPassModes are the segmentation modes run for LLM input; each surfaces
// a different subset of form labels.
var MultiPassModes = []port.PageSegMode{port.PSMSingleBlock, port.PSMSingleColumn, port.PSMAuto}

// Extractor runs an OCR engine over document pages.
type Extractor struct {
	engine port.OCREngine
}

// NewExtractor creates an Extractor backed by engine.
func NewExtractor(engine port.OCREngine) *Extractor {
	return &Extractor{engine: engine}
}

// ExtractText loads the first page of doc and OCRs it in block mode.
// Unreadable documents return an error; a readable page without text
// returns "".
func (e *Extractor) ExtractText(ctx context.Context, doc Document) (string, error) {
	page, err := LoadFirstPage(doc)
	if err != nil {
		return "", err
	}
	return e.Text(ctx, page, port.PSMSingleBlock), nil
}

// ExtractTextMulti is ExtractText with every mode in MultiPassModes,
// concatenating the distinct outputs.
func (e *Extractor) ExtractTextMulti(ctx context.Context, doc Document) (string, error) {
	page, err := LoadFirstPage(doc)
	if err != nil {
		return "", err
	}
	return e.Text(ctx, page, MultiPassModes...), nil
}

// Text OCRs a grayscale rendering of the page once per mode. The PDF text
// layer and filled form fields, when present, are appended to the OCR output
// since a fillable form's raster is usually the blank template. Engine
// failures are logged and yield "".
func (e *Extractor) Text(ctx context.Context, page *Page, modes ...port.PageSegMode) string {
	if page.Image == nil {
		return page.LayerText()
	}
	gray := imaging.Gray(page.Image)
	if page.Source == SourcePDFImage {
		gray = imaging.UpscaleToWidth(gray, letterWidth300DPI)
	}
	return withLayer(e.recognize(ctx, gray, modes), page)
}

// EnhancedText applies a light adaptive threshold and edge-preserving
// smoothing before OCR. It is used only for passport pages, where it helps
// with guilloche backgrounds.
func (e *Extractor) EnhancedText(ctx context.Context, page *Page) string {
	if page.Image == nil {
		return page.LayerText()
	}
	gray := imaging.AdaptiveThreshold(imaging.Smooth(imaging.Gray(page.Image), 40), 31, 10)
	return withLayer(e.recognize(ctx, gray, []port.PageSegMode{port.PSMSingleBlock}), page)
}

func withLayer(text string, page *Page) string {
	layer := page.LayerText()
	switch {
	case layer == "":
		return text
	case text == "":
		return layer
	}
	return text + "\n\n" + layer
}

func (e *Extractor) recognize(ctx context.Context, gray *image.Gray, modes []port.PageSegMode) string {
	data, err := imaging.EncodePNG(gray)
	if err != nil {
		log.Printf("ocr.Extractor.recognize: %v", err)
		return ""
	}
	if len(modes) == 0 {
		modes = []port.PageSegMode{port.PSMSingleBlock}
	}

	var parts []string
	seen := make(map[string]bool, len(modes))
	for _, psm := range modes {
		text, err := e.engine.Recognize(ctx, port.OCRRequest{Image: data, PSM: psm})
		if err != nil {
			log.Printf("ocr.Extractor.recognize: psm %d failed: %v", psm, err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n")
}
