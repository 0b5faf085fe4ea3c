package ocr

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docfill/internal/domain"
	"docfill/internal/imaging"
)

// PageSource records where a Page's content came from.
type PageSource string

const (
	SourceImage    PageSource = "image"
	SourcePDFImage PageSource = "pdf_image"
	SourcePDFText  PageSource = "pdf_text"
)

// Page is the first page of a document, as a raster image, a text layer or both.
type Page struct {
	Image      image.Image
	TextLayer  string
	FormFields []FormValue
	Source     PageSource
}

// LayerText is the non-OCR text of the page: the PDF text layer followed by
// one "name: value" line per filled form field.
func (p *Page) LayerText() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.TextLayer))
	for _, f := range p.FormFields {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Name + ": " + f.Value)
	}
	return b.String()
}

// LoadFirstPage decodes the first page of an image or PDF document. For a
// PDF the largest embedded image on page 1 is used as the raster, and the
// page's text layer is kept alongside it.
func LoadFirstPage(doc Document) (*Page, error) {
	ft, err := doc.FileType()
	if err != nil {
		return nil, err
	}
	if ft != domain.FileTypePDF {
		img, _, err := imaging.Decode(doc.Data)
		if err != nil {
			return nil, err
		}
		return &Page{Image: img, Source: SourceImage}, nil
	}

	img, fields, imgErr := readPDF(doc.Data)
	text, textErr := firstPageText(doc.Data)
	if imgErr != nil && textErr != nil {
		return nil, fmt.Errorf("reading pdf: %w", imgErr)
	}
	page := &Page{Image: img, TextLayer: text, FormFields: fields, Source: SourcePDFImage}
	if img == nil && page.LayerText() == "" {
		log.Printf("ocr.LoadFirstPage: %s has neither a page image nor text", doc.Name)
	}
	if img == nil {
		page.Source = SourcePDFText
	}
	return page, nil
}

// readPDF returns the largest image on page 1 and the filled AcroForm fields.
func readPDF(data []byte) (image.Image, []FormValue, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	fields := formValues(ctx)
	if ctx.PageCount < 1 {
		return nil, fields, nil
	}
	images, err := pdfcpu.ExtractPageImages(ctx, 1, false)
	if err != nil {
		return nil, fields, fmt.Errorf("extracting page images: %w", err)
	}

	var best image.Image
	bestArea := 0
	for _, pi := range images {
		if pi.Width*pi.Height <= bestArea {
			continue
		}
		decoded, _, err := image.Decode(pi)
		if err != nil {
			log.Printf("ocr.firstPageImage: skipping %s image %s: %v", pi.FileType, pi.Name, err)
			continue
		}
		best, bestArea = decoded, pi.Width*pi.Height
	}
	return best, fields, nil
}

func firstPageText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf text reader: %w", err)
	}
	if r.NumPage() < 1 {
		return "", nil
	}
	p := r.Page(1)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("pdf text layer: %w", err)
	}
	return text, nil
}
