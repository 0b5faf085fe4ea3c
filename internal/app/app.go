// Package app assembles the extraction pipeline from configuration. It is
// shared by the server and the command-line tool.
package app

import (
	"fmt"
	"log"

	"docfill/internal/browser"
	"docfill/internal/config"
	"docfill/internal/merge"
	"docfill/internal/mrz"
	"docfill/internal/ocr"
	"docfill/internal/ocr/tesseract"
	"docfill/internal/parser"
	"docfill/internal/port"
	"docfill/internal/service"
	"docfill/internal/validator"

	// LLM providers register themselves with the parser factory.
	_ "docfill/internal/parser/claude"
	_ "docfill/internal/parser/gemini"
	_ "docfill/internal/parser/openai"
)

// Pipeline holds the services built from configuration.
type Pipeline struct {
	Extraction service.ExtractionService
	Fill       service.FillService

	filler *browser.FormFiller
}

// NewPipeline wires OCR, MRZ, the LLM chain, merging, validation and the
// optional form filler. runRepo and storage may be nil.
func NewPipeline(cfg *config.Config, runRepo port.ExtractionRunRepository, storage port.ObjectStorage) (*Pipeline, error) {
	heuristics, err := merge.LoadHeuristics(cfg.Extraction.HeuristicsFile)
	if err != nil {
		return nil, fmt.Errorf("loading heuristics: %w", err)
	}

	engine := tesseract.NewEngine(cfg.OCR.Language, cfg.OCR.TessdataPrefix)

	gen := parser.NewChain(cfg.Parser.Chain())
	if gen == nil {
		log.Printf("app.NewPipeline: no LLM provider configured, using MRZ and patterns only")
	}

	var opts []validator.Option
	if cfg.Extraction.StrictValidation {
		opts = append(opts, validator.WithStrict())
	}

	extraction := service.NewExtractionService(
		ocr.NewExtractor(engine),
		mrz.NewReader(engine, cfg.OCR.MRZRegion),
		parser.NewLLMExtractor(gen),
		merge.NewMerger(heuristics),
		validator.New(opts...),
		runRepo,
		storage,
		service.ExtractionOptions{
			SampleFallback:   cfg.Extraction.SampleFallback,
			MinPatternFields: cfg.Extraction.MinPatternFields,
		},
	)

	p := &Pipeline{Extraction: extraction}

	var filler port.FormFiller
	if cfg.Browser.Enabled() {
		p.filler = browser.NewFormFiller(cfg.Browser)
		filler = p.filler
	} else {
		log.Printf("app.NewPipeline: browser.form_url not set, fill requests return the field map only")
	}
	p.Fill = service.NewFillService(extraction, filler, storage, cfg.Browser.FormURL)

	return p, nil
}

// Close releases the browser, if one was started.
func (p *Pipeline) Close() error {
	if p.filler == nil {
		return nil
	}
	return p.filler.Close()
}
