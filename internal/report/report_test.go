package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docfill/internal/domain"
	"docfill/internal/report"
)

func sampleItems() []report.Item {
	return []report.Item{
		{
			Name: "passport.png",
			Result: &domain.DocumentResult{
				DocumentType: domain.DocumentTypePassport,
				Success:      true,
				Method:       "mrz",
				Confidence:   0.98,
				Data: map[string]string{
					domain.FieldPassportNumber: "A1234567",
					domain.FieldSurname:        "AL-ALI",
					domain.FieldFullName:       "SALEM AL-ALI",
				},
				Validation: domain.ValidationSummary{
					Warnings:      map[string]string{domain.FieldPassportNumber: "check"},
					TotalWarnings: 1,
				},
			},
		},
		{Name: "missing.png"},
	}
}

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := report.NewCSVWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteItems(sampleItems()))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Document", "Document Type", "Field", "Value", "Validation", "Message"}, rows[0])
	// Vocabulary order first, derived fields after.
	assert.Equal(t, []string{"passport.png", "passport", "surname", "AL-ALI", "ok", ""}, rows[1])
	assert.Equal(t, []string{"passport.png", "passport", "passport_number", "A1234567", "warning", "check"}, rows[2])
	assert.Equal(t, "full_name", rows[3][2])
}

func TestWriteXLSX(t *testing.T) {
	fields := domain.FormFieldMap{"family-name": "AL-ALI", "passport-number": "A1234567"}
	fill := &domain.FillReport{
		Success:     true,
		FilledCount: 1,
		Fields: []domain.FieldFill{
			{Field: "family-name", Value: "AL-ALI", Kind: domain.FillKindInput, Selector: "#family-name", Filled: true},
		},
		Screenshot: "screenshots/x.png",
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, sampleItems(), fields, fill))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{report.SheetSummary, report.SheetFields, report.SheetFormFields, report.SheetFill}, f.GetSheetList())

	summary, err := f.GetRows(report.SheetSummary)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"passport.png", "passport", "Yes", "mrz", "0.98", "0", "1"}, summary[1])

	formRows, err := f.GetRows(report.SheetFormFields)
	require.NoError(t, err)
	assert.Equal(t, []string{"family-name", "AL-ALI"}, formRows[1])
	assert.Equal(t, []string{"passport-number", "A1234567"}, formRows[2])

	fillRows, err := f.GetRows(report.SheetFill)
	require.NoError(t, err)
	assert.Equal(t, []string{"family-name", "AL-ALI", "input", "#family-name", "Yes"}, fillRows[1])
}

func TestWriteXLSX_OmitsEmptySheets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, sampleItems(), nil, nil))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{report.SheetSummary, report.SheetFields}, f.GetSheetList())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"passport scan", "passport_scan"},
		{"G-28 (final)!", "G-28_final"},
		{"__a__b__", "a_b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, report.SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "fill_run_2025-03-14.xlsx", report.BuildFilename("fill run", "xlsx", now))
}
