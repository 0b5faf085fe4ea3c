// Command extract runs the extraction pipeline on local files.
//
//	extract --type passport scan1.png scan2.pdf [--json] [--xlsx out.xlsx] [--csv out.csv]
//	extract --fill --passport passport.png --representative g28.pdf [--form-url URL]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"docfill/internal/app"
	"docfill/internal/config"
	"docfill/internal/domain"
	"docfill/internal/ocr"
	"docfill/internal/report"
	"docfill/internal/service"
)

type options struct {
	docType        string
	asJSON         bool
	xlsxPath       string
	csvPath        string
	fill           bool
	passport       string
	representative string
	formURL        string
	concurrency    int
	timeout        time.Duration
}

func main() {
	var opts options
	pflag.StringVarP(&opts.docType, "type", "t", "passport", "document type: passport or representative_form (alias g28)")
	pflag.BoolVar(&opts.asJSON, "json", false, "print results as JSON")
	pflag.StringVar(&opts.xlsxPath, "xlsx", "", "also write an XLSX report to this path")
	pflag.StringVar(&opts.csvPath, "csv", "", "also write a CSV report to this path")
	pflag.BoolVar(&opts.fill, "fill", false, "extract --passport and --representative and fill the destination form")
	pflag.StringVar(&opts.passport, "passport", "", "passport file for --fill")
	pflag.StringVar(&opts.representative, "representative", "", "G-28 file for --fill")
	pflag.StringVar(&opts.formURL, "form-url", "", "destination form URL (defaults to browser.form_url)")
	pflag.IntVar(&opts.concurrency, "concurrency", 2, "documents extracted in parallel")
	pflag.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "per-document timeout")
	pflag.Parse()

	if err := run(opts, pflag.Args()); err != nil {
		log.Fatal(err)
	}
}

func run(opts options, files []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.NewPipeline(cfg, nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	if opts.fill {
		return runFill(ctx, pipeline.Fill, opts)
	}

	if len(files) == 0 {
		pflag.Usage()
		return fmt.Errorf("no input files")
	}
	docType, err := domain.ParseDocumentType(opts.docType)
	if err != nil {
		return fmt.Errorf("--type %q: %w", opts.docType, err)
	}

	jobs := make([]service.BatchJob, 0, len(files))
	for _, path := range files {
		doc, err := ocr.ReadFile(path)
		if err != nil {
			return err
		}
		jobs = append(jobs, service.BatchJob{DocumentType: docType, Document: doc})
	}

	results := service.NewBatchWorker(pipeline.Extraction, opts.concurrency, opts.timeout).Run(ctx, jobs)

	items := make([]report.Item, 0, len(results))
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Job.Document.Name, r.Err)
			continue
		}
		items = append(items, report.Item{Name: r.Job.Document.Name, Result: r.Result})
	}

	if err := printItems(os.Stdout, items, opts.asJSON); err != nil {
		return err
	}
	if err := writeReports(opts, items, nil, nil); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(results))
	}
	return nil
}

func runFill(ctx context.Context, fill service.FillService, opts options) error {
	input := service.FillInput{FormURL: opts.formURL}
	var items []report.Item

	if opts.passport != "" {
		doc, err := ocr.ReadFile(opts.passport)
		if err != nil {
			return err
		}
		input.Passport = &doc
	}
	if opts.representative != "" {
		doc, err := ocr.ReadFile(opts.representative)
		if err != nil {
			return err
		}
		input.Representative = &doc
	}

	result, err := fill.Fill(ctx, input)
	if err != nil {
		return err
	}
	if result.Passport != nil {
		items = append(items, report.Item{Name: filepath.Base(opts.passport), Result: result.Passport})
	}
	if result.Representative != nil {
		items = append(items, report.Item{Name: filepath.Base(opts.representative), Result: result.Representative})
	}

	if opts.asJSON {
		if err := writeJSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		if err := printItems(os.Stdout, items, false); err != nil {
			return err
		}
		fmt.Println("== form fields")
		for _, k := range result.Fields.Keys() {
			fmt.Printf("  %-24s %s\n", k, result.Fields[k])
		}
		if r := result.Report; r != nil {
			fmt.Printf("== filled %d/%d (screenshot: %s)\n", r.FilledCount, len(result.Fields), r.Screenshot)
			for _, e := range r.Errors {
				fmt.Printf("  ! %s\n", e)
			}
		}
	}
	return writeReports(opts, items, result.Fields, result.Report)
}

func printItems(w io.Writer, items []report.Item, asJSON bool) error {
	if asJSON {
		results := make(map[string]*domain.DocumentResult, len(items))
		for _, it := range items {
			results[it.Name] = it.Result
		}
		return writeJSON(w, results)
	}

	for _, it := range items {
		r := it.Result
		fmt.Fprintf(w, "== %s (%s) success=%t method=%s confidence=%.2f\n",
			it.Name, r.DocumentType, r.Success, r.Method, r.Confidence)
		if r.Message != "" {
			fmt.Fprintf(w, "  %s\n", r.Message)
		}
		keys := make([]string, 0, len(r.Data))
		for k := range r.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			note := ""
			if msg, ok := r.Validation.Errors[k]; ok {
				note = "  [error: " + msg + "]"
			} else if msg, ok := r.Validation.Warnings[k]; ok {
				note = "  [warning: " + msg + "]"
			}
			fmt.Fprintf(w, "  %-24s %s%s\n", k, r.Data[k], note)
		}
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReports(opts options, items []report.Item, fields domain.FormFieldMap, fill *domain.FillReport) error {
	if opts.xlsxPath != "" {
		f, err := os.Create(opts.xlsxPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", opts.xlsxPath, err)
		}
		defer f.Close()
		if err := report.WriteXLSX(f, items, fields, fill); err != nil {
			return err
		}
		log.Printf("wrote %s", opts.xlsxPath)
	}

	if opts.csvPath != "" {
		f, err := os.Create(opts.csvPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", opts.csvPath, err)
		}
		defer f.Close()
		if _, err := f.Write(report.BOM); err != nil {
			return err
		}
		w := report.NewCSVWriter(f)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		if err := w.WriteItems(items); err != nil {
			return err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		log.Printf("wrote %s", opts.csvPath)
	}
	return nil
}
