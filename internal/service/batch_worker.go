package service

import (
	"context"
	"log"
	"sync"
	"time"

	"docfill/internal/domain"
	"docfill/internal/ocr"
)

// BatchJob is one document queued for extraction.
type BatchJob struct {
	DocumentType domain.DocumentType
	Document     ocr.Document
}

// BatchResult pairs a job with its outcome. Exactly one of Result and Err is set.
type BatchResult struct {
	Job    BatchJob
	Result *domain.DocumentResult
	Err    error
}

// BatchWorker extracts many documents with bounded concurrency.
type BatchWorker struct {
	extraction  ExtractionService
	concurrency int
	timeout     time.Duration
}

// NewBatchWorker creates a BatchWorker. concurrency below 1 is treated as 1;
// timeout bounds each document and is disabled when zero.
func NewBatchWorker(extraction ExtractionService, concurrency int, timeout time.Duration) *BatchWorker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &BatchWorker{extraction: extraction, concurrency: concurrency, timeout: timeout}
}

// Run extracts every job and returns results in job order. Jobs not started
// before ctx is canceled report ctx.Err().
func (w *BatchWorker) Run(ctx context.Context, jobs []BatchJob) []BatchResult {
	results := make([]BatchResult, len(jobs))
	sem := make(chan struct{}, w.concurrency)
	var wg sync.WaitGroup

	log.Printf("service.BatchWorker.Run: %d jobs (concurrency=%d)", len(jobs), w.concurrency)

	for i, job := range jobs {
		results[i].Job = job
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}: // acquire
		}

		wg.Add(1)
		go func(i int, job BatchJob) {
			defer wg.Done()
			defer func() { <-sem }() // release

			jobCtx := ctx
			if w.timeout > 0 {
				var cancel context.CancelFunc
				jobCtx, cancel = context.WithTimeout(ctx, w.timeout)
				defer cancel()
			}

			res, err := w.extraction.Extract(jobCtx, job.DocumentType, job.Document)
			if err != nil {
				log.Printf("service.BatchWorker.Run: %s: %v", job.Document.Name, err)
			}
			results[i].Result = res
			results[i].Err = err
		}(i, job)
	}

	wg.Wait()
	return results
}
