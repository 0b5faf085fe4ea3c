// Package tesseract implements port.OCREngine with the Tesseract library.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"docfill/internal/port"
)

// Engine creates one gosseract client per call; clients are not safe for
// concurrent use.
type Engine struct {
	clientFactory  func() *gosseract.Client
	languages      []string
	tessdataPrefix string
}

// NewEngine creates an Engine. language uses Tesseract's "eng+fra" form.
func NewEngine(language, tessdataPrefix string) *Engine {
	langs := strings.Split(language, "+")
	if language == "" {
		langs = []string{"eng"}
	}
	return &Engine{
		clientFactory:  gosseract.NewClient,
		languages:      langs,
		tessdataPrefix: tessdataPrefix,
	}
}

func (e *Engine) Recognize(ctx context.Context, req port.OCRRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := e.clientFactory()
	defer c.Close()

	if e.tessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := c.SetLanguage(e.languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	psm := req.PSM
	if psm == 0 {
		psm = port.PSMSingleBlock
	}
	if err := c.SetPageSegMode(gosseract.PageSegMode(psm)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if req.Whitelist != "" {
		if err := c.SetWhitelist(req.Whitelist); err != nil {
			return "", fmt.Errorf("set whitelist: %w", err)
		}
	}
	if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), "300"); err != nil {
		return "", fmt.Errorf("set dpi: %w", err)
	}
	if err := c.SetImageFromBytes(req.Image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}
