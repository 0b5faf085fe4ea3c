package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"docfill/internal/domain"
)

// Sheet names of the XLSX export.
const (
	SheetSummary    = "Summary"
	SheetFields     = "Fields"
	SheetFormFields = "Form Fields"
	SheetFill       = "Fill Report"
)

// WriteXLSX writes a workbook with a summary row per document, every
// extracted field with its validation status and, when present, the mapped
// form fields and the fill report.
func WriteXLSX(w io.Writer, items []Item, fields domain.FormFieldMap, fill *domain.FillReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("report.WriteXLSX: style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("report.WriteXLSX: %w", err)
	}
	summary := [][]interface{}{{"Document", "Document Type", "Success", "Method", "Confidence", "Errors", "Warnings", "Message"}}
	for _, it := range items {
		if it.Result == nil {
			continue
		}
		r := it.Result
		summary = append(summary, []interface{}{
			it.Name, string(r.DocumentType), formatBool(r.Success), r.Method,
			formatConfidence(r.Confidence), r.Validation.TotalErrors, r.Validation.TotalWarnings, r.Message,
		})
	}
	if err := writeSheet(f, SheetSummary, summary, bold); err != nil {
		return err
	}

	rows := [][]interface{}{{"Document", "Document Type", "Field", "Value", "Validation", "Message"}}
	for _, r := range fieldRows(items) {
		rows = append(rows, []interface{}{r.document, r.docType, r.field, r.value, r.status, r.message})
	}
	if err := addSheet(f, SheetFields, rows, bold); err != nil {
		return err
	}

	if len(fields) > 0 {
		rows := [][]interface{}{{"Destination", "Value"}}
		for _, k := range fields.Keys() {
			rows = append(rows, []interface{}{k, fields[k]})
		}
		if err := addSheet(f, SheetFormFields, rows, bold); err != nil {
			return err
		}
	}

	if fill != nil {
		rows := [][]interface{}{{"Field", "Value", "Type", "Selector", "Filled", "Error"}}
		for _, ff := range fill.Fields {
			rows = append(rows, []interface{}{ff.Field, ff.Value, string(ff.Kind), ff.Selector, formatBool(ff.Filled), ff.Error})
		}
		rows = append(rows,
			[]interface{}{},
			[]interface{}{"Filled", fill.FilledCount},
			[]interface{}{"Screenshot", fill.Screenshot},
			[]interface{}{"Errors", strings.Join(fill.Errors, "; ")},
		)
		if err := addSheet(f, SheetFill, rows, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report.WriteXLSX: write: %w", err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("report.WriteXLSX: sheet %s: %w", name, err)
	}
	return writeSheet(f, name, rows, headerStyle)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := row
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("report.WriteXLSX: %s row %d: %w", name, i+1, err)
		}
	}
	if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("report.WriteXLSX: %s header style: %w", name, err)
	}
	last, err := excelize.ColumnNumberToName(len(rows[0]))
	if err != nil {
		return err
	}
	return f.SetColWidth(name, "A", last, 22)
}
