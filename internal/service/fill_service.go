package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"docfill/internal/domain"
	"docfill/internal/formmap"
	"docfill/internal/ocr"
	"docfill/internal/port"
)

// FillInput is the DTO for a combined extract-and-fill request. Either
// document may be nil, but not both.
type FillInput struct {
	Passport       *ocr.Document
	Representative *ocr.Document
	FormURL        string
}

// FillService extracts both documents and hands the mapped fields to the form filler.
type FillService interface {
	Fill(ctx context.Context, input FillInput) (*domain.FillResult, error)
}

type fillService struct {
	extraction     ExtractionService
	filler         port.FormFiller
	storage        port.ObjectStorage
	defaultFormURL string
}

// NewFillService creates a new FillService. filler and storage may be nil;
// without a filler only the field map is returned.
func NewFillService(extraction ExtractionService, filler port.FormFiller, storage port.ObjectStorage, defaultFormURL string) FillService {
	return &fillService{
		extraction:     extraction,
		filler:         filler,
		storage:        storage,
		defaultFormURL: defaultFormURL,
	}
}

func (s *fillService) Fill(ctx context.Context, input FillInput) (*domain.FillResult, error) {
	if input.Passport == nil && input.Representative == nil {
		return nil, domain.ErrMissingDocument
	}

	var (
		wg                  sync.WaitGroup
		passport, rep       *domain.DocumentResult
		passportErr, repErr error
	)

	if input.Passport != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			passport, passportErr = s.extraction.Extract(ctx, domain.DocumentTypePassport, *input.Passport)
		}()
	}
	if input.Representative != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rep, repErr = s.extraction.Extract(ctx, domain.DocumentTypeRepresentative, *input.Representative)
		}()
	}
	wg.Wait()

	if passportErr != nil {
		return nil, fmt.Errorf("passport: %w", passportErr)
	}
	if repErr != nil {
		return nil, fmt.Errorf("representative form: %w", repErr)
	}

	result := &domain.FillResult{
		Passport:       passport,
		Representative: rep,
		Fields:         formmap.Map(toMerged(passport), toMerged(rep)),
	}
	log.Printf("service.fillService.Fill: mapped %d destination fields", len(result.Fields))

	formURL := input.FormURL
	if formURL == "" {
		formURL = s.defaultFormURL
	}
	if s.filler == nil || formURL == "" {
		return result, nil
	}
	if len(result.Fields) == 0 {
		result.Report = &domain.FillReport{Errors: []string{"no fields to fill"}}
		return result, nil
	}

	report, err := s.filler.Fill(ctx, formURL, result.Fields)
	if err != nil {
		log.Printf("service.fillService.Fill: form filler failed: %v", err)
		report = &domain.FillReport{Errors: []string{err.Error()}}
	}
	s.archiveScreenshot(ctx, report)
	result.Report = report
	return result, nil
}

// toMerged turns a validated document result back into a record for the
// field mapper. Unsuccessful results contribute nothing.
func toMerged(res *domain.DocumentResult) *domain.MergedRecord {
	if res == nil || !res.Success {
		return nil
	}
	rec := domain.NewExtractedRecord(domain.MethodNone, res.Confidence, res.Data)
	return &domain.MergedRecord{Fields: rec.Fields, Confidence: res.Confidence, Method: res.Method}
}

// archiveScreenshot uploads a local screenshot and replaces the path in the
// report with the storage key.
func (s *fillService) archiveScreenshot(ctx context.Context, report *domain.FillReport) {
	if s.storage == nil || report.Screenshot == "" {
		return
	}
	data, err := os.ReadFile(report.Screenshot)
	if err != nil {
		log.Printf("service.fillService.archiveScreenshot: reading %s: %v", report.Screenshot, err)
		return
	}
	key := fmt.Sprintf("screenshots/%s%s", uuid.New(), filepath.Ext(report.Screenshot))
	if _, err := s.storage.Put(ctx, port.PutInput{
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "image/png",
		Size:        int64(len(data)),
	}); err != nil {
		log.Printf("service.fillService.archiveScreenshot: %v", err)
		return
	}
	report.Screenshot = key
}
