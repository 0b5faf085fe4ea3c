// Package report exports extraction results as CSV and XLSX.
package report

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"docfill/internal/domain"
)

// Item is one extracted document and the name it was uploaded under.
type Item struct {
	Name   string
	Result *domain.DocumentResult
}

// fieldRow is one field of one document, the unit both exports share.
type fieldRow struct {
	document string
	docType  string
	field    string
	value    string
	status   string
	message  string
}

// Validation status labels.
const (
	StatusOK      = "ok"
	StatusWarning = "warning"
	StatusError   = "error"
)

// fieldRows flattens items into per-field rows in vocabulary order. Fields
// outside the vocabulary follow, sorted.
func fieldRows(items []Item) []fieldRow {
	var rows []fieldRow
	for _, it := range items {
		if it.Result == nil {
			continue
		}
		res := it.Result
		for _, field := range orderedFields(res) {
			row := fieldRow{
				document: it.Name,
				docType:  string(res.DocumentType),
				field:    field,
				value:    res.Data[field],
				status:   StatusOK,
			}
			if msg, bad := res.Validation.Errors[field]; bad {
				row.status, row.message = StatusError, msg
			} else if msg, warned := res.Validation.Warnings[field]; warned {
				row.status, row.message = StatusWarning, msg
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func orderedFields(res *domain.DocumentResult) []string {
	seen := make(map[string]bool, len(res.Data))
	var out []string
	for _, f := range domain.FieldsFor(res.DocumentType) {
		if _, ok := res.Data[f]; ok {
			out = append(out, f)
			seen[f] = true
		}
	}
	var extra []string
	for f := range res.Data {
		if !seen[f] {
			extra = append(extra, f)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func formatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)
	multiUnderscore = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename replaces characters other than letters, digits, "-" and
// "_" with "_", collapses runs of "_" and truncates to 100 characters.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns "{sanitized base}_{YYYY-MM-DD}.{ext}".
func BuildFilename(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(base), now.Format("2006-01-02"), ext)
}
