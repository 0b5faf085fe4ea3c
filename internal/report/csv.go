package report

import (
	"encoding/csv"
	"io"
)

// BOM is the UTF-8 byte order mark Excel on Windows needs to detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var csvColumns = []string{
	"Document",
	"Document Type",
	"Field",
	"Value",
	"Validation",
	"Message",
}

// CSVWriter writes extraction results in long format, one row per field.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *CSVWriter) WriteHeader() error {
	return w.csv.Write(csvColumns)
}

// WriteItems writes one row per extracted field.
func (w *CSVWriter) WriteItems(items []Item) error {
	for _, r := range fieldRows(items) {
		if err := w.csv.Write([]string{r.document, r.docType, r.field, r.value, r.status, r.message}); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *CSVWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *CSVWriter) Error() error {
	return w.csv.Error()
}
