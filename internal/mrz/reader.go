package mrz

import (
	"context"
	"image"
	"log"
	"time"

	"docfill/internal/domain"
	"docfill/internal/imaging"
	"docfill/internal/port"
)

const (
	defaultRegion = 0.35
	upscale       = 2.0
	whitelist     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789<"
)

// Reader locates and decodes the MRZ in the bottom band of a passport image.
type Reader struct {
	engine port.OCREngine
	region float64
	now    func() time.Time
}

// NewReader creates a Reader. region is the fraction of the page height,
// measured from the bottom, that is searched; zero selects 0.35.
func NewReader(engine port.OCREngine, region float64) *Reader {
	if region <= 0 || region >= 1 {
		region = defaultRegion
	}
	return &Reader{engine: engine, region: region, now: time.Now}
}

// WithClock returns a copy of the Reader that expands years against now.
func (r *Reader) WithClock(now func() time.Time) *Reader {
	cp := *r
	cp.now = now
	return &cp
}

// Read OCRs the MRZ band and decodes it. An exact two- or three-line block
// yields method mrz; otherwise the manual line scanner is tried on the same
// text and yields manual_mrz. Failures are *domain.ExtractionFailure.
func (r *Reader) Read(ctx context.Context, img image.Image) (*domain.ExtractedRecord, error) {
	band := imaging.Binarize(imaging.Scale(imaging.Gray(imaging.CropBottom(img, r.region)), upscale))
	data, err := imaging.EncodePNG(band)
	if err != nil {
		return nil, domain.NewExtractionFailure(domain.MethodMRZ, "encoding mrz band", err)
	}

	text, err := r.engine.Recognize(ctx, port.OCRRequest{
		Image:     data,
		PSM:       port.PSMSingleBlock,
		Whitelist: whitelist,
	})
	if err != nil {
		return nil, domain.NewExtractionFailure(domain.MethodMRZ, "ocr of mrz band", err)
	}
	return r.Decode(text)
}

// Decode parses already recognized text with the same rules as Read.
func (r *Reader) Decode(text string) (*domain.ExtractedRecord, error) {
	if lines := FindLines(text); lines != nil {
		rec, err := Parse(lines)
		if err == nil {
			log.Printf("mrz.Reader.Decode: %s block parsed, check digits valid=%t", rec.Format, rec.CheckDigitsValid)
			return ToExtracted(rec, domain.MethodMRZ, r.now()), nil
		}
		log.Printf("mrz.Reader.Decode: structural parse failed: %v", err)
	}

	rec, err := ParseManual(text)
	if err != nil {
		return nil, domain.NewExtractionFailure(domain.MethodManualMRZ, "no mrz lines in text", err)
	}
	log.Printf("mrz.Reader.Decode: manual scan parsed, check digits valid=%t", rec.CheckDigitsValid)
	return ToExtracted(rec, domain.MethodManualMRZ, r.now()), nil
}
