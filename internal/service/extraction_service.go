package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docfill/internal/domain"
	"docfill/internal/extractor"
	"docfill/internal/imaging"
	"docfill/internal/merge"
	"docfill/internal/mrz"
	"docfill/internal/ocr"
	"docfill/internal/parser"
	"docfill/internal/port"
	"docfill/internal/validator"
)

const (
	msgInconclusive = "extraction inconclusive: enter the data manually"
	msgOCREmpty     = "no text could be read from the document"
	msgBlankForm    = "the form appears to be blank"
	msgSample       = "no data could be read; sample data returned for demonstration"

	// mrzTrustConfidence is the MRZ confidence above which page OCR is skipped.
	mrzTrustConfidence = 0.7
)

// ExtractionOptions tunes the extraction pipeline.
type ExtractionOptions struct {
	// SampleFallback returns demonstration data for unreadable representative forms.
	SampleFallback bool
	// MinPatternFields is the number of fields pattern extraction must find to count.
	MinPatternFields int
}

// ExtractionService defines the document extraction contract.
type ExtractionService interface {
	Extract(ctx context.Context, docType domain.DocumentType, doc ocr.Document) (*domain.DocumentResult, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error)
	ListRuns(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.ExtractionRun, error)
}

type extractionService struct {
	text      *ocr.Extractor
	mrz       *mrz.Reader
	llm       *parser.LLMExtractor
	merger    *merge.Merger
	validator *validator.FieldValidator
	runRepo   port.ExtractionRunRepository
	storage   port.ObjectStorage
	opts      ExtractionOptions
}

// NewExtractionService creates a new ExtractionService implementation.
// runRepo and storage may be nil; runs are then neither persisted nor archived.
func NewExtractionService(
	text *ocr.Extractor,
	mrzReader *mrz.Reader,
	llm *parser.LLMExtractor,
	merger *merge.Merger,
	fieldValidator *validator.FieldValidator,
	runRepo port.ExtractionRunRepository,
	storage port.ObjectStorage,
	opts ExtractionOptions,
) ExtractionService {
	if opts.MinPatternFields <= 0 {
		opts.MinPatternFields = 3
	}
	return &extractionService{
		text:      text,
		mrz:       mrzReader,
		llm:       llm,
		merger:    merger,
		validator: fieldValidator,
		runRepo:   runRepo,
		storage:   storage,
		opts:      opts,
	}
}

// outcome is what a document pipeline hands back before validation.
type outcome struct {
	merged  *domain.MergedRecord
	message string
	textLen int
	sample  bool
}

// Extract runs the pipeline for one document. Only request-level problems
// (unknown type, empty or unsupported file) are returned as errors; strategy
// failures end up in an unsuccessful result.
func (s *extractionService) Extract(ctx context.Context, docType domain.DocumentType, doc ocr.Document) (*domain.DocumentResult, error) {
	if docType != domain.DocumentTypePassport && docType != domain.DocumentTypeRepresentative {
		return nil, domain.ErrUnknownDocumentType
	}
	if _, err := doc.FileType(); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.New()

	page, err := ocr.LoadFirstPage(doc)
	if err != nil {
		log.Printf("service.extractionService.Extract: loading %s: %v", doc.Name, err)
		page = nil
	}

	var out outcome
	if docType == domain.DocumentTypePassport {
		out = s.extractPassport(ctx, page)
	} else {
		out = s.extractRepresentative(ctx, page)
	}

	result := s.buildResult(runID, docType, out)
	log.Printf("service.extractionService.Extract: %s %s success=%t method=%s confidence=%.2f fields=%d",
		docType, runID, result.Success, result.Method, result.Confidence, len(result.Data))

	s.record(ctx, runID, doc, result, page == nil, time.Since(start))
	return result, nil
}

func (s *extractionService) extractPassport(ctx context.Context, page *ocr.Page) outcome {
	if page == nil {
		return outcome{merged: s.merger.Merge(nil), message: msgOCREmpty}
	}

	var mrzRec, llmRec, patternRec *domain.ExtractedRecord

	if page.Image != nil {
		llmRec = s.vision(ctx, domain.DocumentTypePassport, page)
		mrzRec = s.logFailure("mrz", func() (*domain.ExtractedRecord, error) { return s.mrz.Read(ctx, page.Image) })
	}

	// A clean MRZ read is enough on its own; page OCR is only needed to look
	// for an MRZ in the text or to back up a weak one.
	trusted := s.merger.Trusted(mrzRec, mrzTrustConfidence)
	text := ""
	if mrzRec == nil || (llmRec == nil && !trusted) {
		text = s.text.Text(ctx, page, ocr.MultiPassModes...)
		if text == "" {
			text = s.text.EnhancedText(ctx, page)
		}
	}

	if mrzRec == nil && text != "" {
		mrzRec = s.logFailure("mrz decode", func() (*domain.ExtractedRecord, error) { return s.mrz.Decode(text) })
		trusted = s.merger.Trusted(mrzRec, mrzTrustConfidence)
	}
	if llmRec == nil && text != "" && !trusted && s.llm.Enabled() {
		llmRec = s.logFailure("ocr llm", func() (*domain.ExtractedRecord, error) {
			return s.llm.ExtractFromText(ctx, domain.DocumentTypePassport, text)
		})
	}
	if llmRec == nil && text != "" && !trusted {
		patternRec = s.patterns(domain.DocumentTypePassport, text, s.opts.MinPatternFields)
	}

	merged := s.merger.Merge([]*domain.ExtractedRecord{mrzRec, llmRec, patternRec})
	out := outcome{merged: merged, textLen: len(text)}
	if merged.IsEmpty() {
		out.message = msgInconclusive
		if text == "" && mrzRec == nil && llmRec == nil {
			out.message = msgOCREmpty
		}
	}
	return out
}

func (s *extractionService) extractRepresentative(ctx context.Context, page *ocr.Page) outcome {
	if page == nil {
		return s.inconclusiveRepresentative(msgOCREmpty, 0)
	}

	text := s.text.Text(ctx, page, ocr.MultiPassModes...)
	blank := text != "" && extractor.LooksBlank(text)

	var llmRec *domain.ExtractedRecord
	if s.llm.Enabled() && !blank {
		if text != "" {
			llmRec = s.logFailure("ocr llm", func() (*domain.ExtractedRecord, error) {
				return s.llm.ExtractFromText(ctx, domain.DocumentTypeRepresentative, text)
			})
		}
		if llmRec == nil && page.Image != nil {
			llmRec = s.vision(ctx, domain.DocumentTypeRepresentative, page)
		}
	}

	var patternRec *domain.ExtractedRecord
	if text != "" {
		patternRec = s.patterns(domain.DocumentTypeRepresentative, text, s.opts.MinPatternFields)
	}

	if llmRec == nil && patternRec == nil {
		switch {
		case text == "":
			return s.inconclusiveRepresentative(msgOCREmpty, 0)
		case blank:
			return s.inconclusiveRepresentative(msgBlankForm, len(text))
		default:
			return s.inconclusiveRepresentative(msgInconclusive, len(text))
		}
	}

	return outcome{
		merged:  s.merger.Merge([]*domain.ExtractedRecord{llmRec, patternRec}),
		textLen: len(text),
	}
}

// inconclusiveRepresentative returns sample data when enabled, otherwise an
// empty record.
func (s *extractionService) inconclusiveRepresentative(message string, textLen int) outcome {
	if !s.opts.SampleFallback {
		return outcome{merged: s.merger.Merge(nil), message: message, textLen: textLen}
	}
	log.Printf("service.extractionService.extractRepresentative: %s, serving sample data", message)
	sample := domain.NewExtractedRecord(domain.MethodSampleFallback, extractor.SampleConfidence, extractor.SampleRepresentative())
	return outcome{
		merged:  s.merger.Merge([]*domain.ExtractedRecord{sample}),
		message: msgSample,
		textLen: textLen,
		sample:  true,
	}
}

func (s *extractionService) vision(ctx context.Context, docType domain.DocumentType, page *ocr.Page) *domain.ExtractedRecord {
	if !s.llm.Enabled() || page.Image == nil {
		return nil
	}
	data, err := imaging.EncodePNG(page.Image)
	if err != nil {
		log.Printf("service.extractionService.vision: encoding page: %v", err)
		return nil
	}
	return s.logFailure("vision llm", func() (*domain.ExtractedRecord, error) {
		return s.llm.ExtractFromImage(ctx, docType, data, "image/png")
	})
}

// patterns runs the pattern extractor and keeps the record only when it
// found at least minFields values.
func (s *extractionService) patterns(docType domain.DocumentType, text string, minFields int) *domain.ExtractedRecord {
	p, err := extractor.For(docType)
	if err != nil {
		log.Printf("service.extractionService.patterns: %v", err)
		return nil
	}
	fields := p.Extract(text)
	if len(fields) < minFields {
		log.Printf("service.extractionService.patterns: %s found %d fields, need %d", docType, len(fields), minFields)
		return nil
	}
	return domain.NewExtractedRecord(domain.MethodOCRPattern, extractor.PatternConfidence, fields)
}

func (s *extractionService) logFailure(step string, fn func() (*domain.ExtractedRecord, error)) *domain.ExtractedRecord {
	rec, err := fn()
	if err != nil {
		var failure *domain.ExtractionFailure
		if errors.As(err, &failure) {
			log.Printf("service.extractionService.%s: %s failed: %s", step, failure.Strategy, failure.Error())
		} else {
			log.Printf("service.extractionService.%s: %v", step, err)
		}
		return nil
	}
	return rec
}

func (s *extractionService) buildResult(runID uuid.UUID, docType domain.DocumentType, out outcome) *domain.DocumentResult {
	result := &domain.DocumentResult{
		RunID:        runID,
		DocumentType: docType,
		Data:         map[string]string{},
		Validation: domain.ValidationSummary{
			Errors:   map[string]string{},
			Warnings: map[string]string{},
		},
		Confidence: out.merged.Confidence,
		Method:     out.merged.Method,
		Message:    out.message,
		OCRTextLen: out.textLen,
	}
	if out.merged.IsEmpty() {
		result.Method = string(domain.MethodNone)
		result.Confidence = 0
		return result
	}

	validated := s.validator.ValidateAll(out.merged.Values())
	result.Data = s.validator.Usable(validated)
	if docType == domain.DocumentTypePassport {
		// The validator reduces nationality to a code; output keeps the name.
		result.Data = FormatPassport(result.Data)
	}
	result.Validation = domain.ValidationSummary{
		Errors:        validated.Errors,
		Warnings:      validated.Warnings,
		TotalErrors:   len(validated.Errors),
		TotalWarnings: len(validated.Warnings),
	}
	result.Success = s.validator.Passed(validated) && len(result.Data) > 0
	if docType == domain.DocumentTypeRepresentative {
		result.Grouped = GroupRepresentative(result.Data)
	}
	return result
}

// record archives the source document and persists the run. Both are best
// effort.
func (s *extractionService) record(ctx context.Context, runID uuid.UUID, doc ocr.Document, result *domain.DocumentResult, unreadable bool, elapsed time.Duration) {
	run := &domain.ExtractionRun{
		ID:            runID,
		DocumentType:  result.DocumentType,
		FileName:      doc.Name,
		Method:        result.Method,
		Confidence:    result.Confidence,
		FieldCount:    len(result.Data),
		TotalErrors:   result.Validation.TotalErrors,
		TotalWarnings: result.Validation.TotalWarnings,
		DurationMS:    elapsed.Milliseconds(),
		CreatedAt:     time.Now().UTC(),
	}
	switch {
	case unreadable:
		run.Status = domain.RunStatusFailed
	case result.Success && result.Method != string(domain.MethodSampleFallback):
		run.Status = domain.RunStatusSucceeded
	default:
		run.Status = domain.RunStatusInconclusive
	}

	if s.storage != nil {
		key := fmt.Sprintf("extractions/%s/%s", runID, filepath.Base(doc.Name))
		_, err := s.storage.Put(ctx, port.PutInput{
			Key:         key,
			Body:        bytes.NewReader(doc.Data),
			ContentType: doc.MimeType(),
			Size:        int64(len(doc.Data)),
		})
		if err != nil {
			log.Printf("service.extractionService.record: archiving %s: %v", runID, err)
		} else {
			run.StorageKey = key
		}
	}

	if s.runRepo != nil {
		if err := s.runRepo.Create(ctx, run); err != nil {
			log.Printf("service.extractionService.record: saving run %s: %v", runID, err)
		}
	}
}

func (s *extractionService) GetRun(ctx context.Context, id uuid.UUID) (*domain.ExtractionRun, error) {
	if s.runRepo == nil {
		return nil, domain.ErrNotFound
	}
	return s.runRepo.GetByID(ctx, id)
}

func (s *extractionService) ListRuns(ctx context.Context, docType domain.DocumentType, limit int) ([]domain.ExtractionRun, error) {
	if s.runRepo == nil {
		return []domain.ExtractionRun{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.runRepo.ListRecent(ctx, docType, limit)
}
