package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExtractedRecord is the output of a single extraction strategy. Present values
// are non-empty and trimmed; absent values are nil.
type ExtractedRecord struct {
	Fields     map[string]*string `json:"fields"`
	Confidence float64            `json:"confidence"`
	Method     Method             `json:"method"`
}

// NewExtractedRecord builds a record from raw values, trimming each value and
// dropping the empty ones.
func NewExtractedRecord(method Method, confidence float64, values map[string]string) *ExtractedRecord {
	r := &ExtractedRecord{
		Fields:     make(map[string]*string, len(values)),
		Confidence: confidence,
		Method:     method,
	}
	for k, v := range values {
		r.set(k, v)
	}
	return r
}

func (r *ExtractedRecord) set(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		r.Fields[field] = nil
		return
	}
	r.Fields[field] = &value
}

// Get returns the value of a field, or "" when absent.
func (r *ExtractedRecord) Get(field string) string {
	if r == nil {
		return ""
	}
	if v := r.Fields[field]; v != nil {
		return *v
	}
	return ""
}

// Has reports whether the field carries a value.
func (r *ExtractedRecord) Has(field string) bool {
	return r.Get(field) != ""
}

// Count returns the number of fields with a value.
func (r *ExtractedRecord) Count() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, v := range r.Fields {
		if v != nil {
			n++
		}
	}
	return n
}

// Values returns the present fields as a plain map.
func (r *ExtractedRecord) Values() map[string]string {
	out := make(map[string]string)
	if r == nil {
		return out
	}
	for k, v := range r.Fields {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// With returns a copy of the record with one field replaced.
func (r *ExtractedRecord) With(field, value string) *ExtractedRecord {
	cp := r.Clone()
	cp.set(field, value)
	return cp
}

// Clone returns a deep copy.
func (r *ExtractedRecord) Clone() *ExtractedRecord {
	cp := &ExtractedRecord{
		Fields:     make(map[string]*string, len(r.Fields)),
		Confidence: r.Confidence,
		Method:     r.Method,
	}
	for k, v := range r.Fields {
		if v == nil {
			cp.Fields[k] = nil
			continue
		}
		s := *v
		cp.Fields[k] = &s
	}
	return cp
}

// FieldNames returns the names of present fields, sorted.
func (r *ExtractedRecord) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for k, v := range r.Fields {
		if v != nil {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// MergedRecord is the reconciled output of the merger.
type MergedRecord struct {
	Fields     map[string]*string `json:"fields"`
	Confidence float64            `json:"confidence"`
	Method     string             `json:"method"`
}

// Get returns the value of a field, or "" when absent.
func (m *MergedRecord) Get(field string) string {
	if m == nil {
		return ""
	}
	if v := m.Fields[field]; v != nil {
		return *v
	}
	return ""
}

// Values returns the present fields as a plain map.
func (m *MergedRecord) Values() map[string]string {
	out := make(map[string]string)
	if m == nil {
		return out
	}
	for k, v := range m.Fields {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// IsEmpty reports whether no field carries a value.
func (m *MergedRecord) IsEmpty() bool {
	return len(m.Values()) == 0
}

// ValidationResult is the output of the field validator.
type ValidationResult struct {
	Cleaned  map[string]string `json:"cleaned"`
	Errors   map[string]string `json:"errors"`
	Warnings map[string]string `json:"warnings"`
}

// HasErrors reports whether any field failed validation.
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// ValidationSummary is the validation block of a DocumentResult.
type ValidationSummary struct {
	Errors        map[string]string `json:"errors"`
	Warnings      map[string]string `json:"warnings"`
	TotalErrors   int               `json:"total_errors"`
	TotalWarnings int               `json:"total_warnings"`
}

// DocumentResult is the per-document output of the extraction pipeline.
type DocumentResult struct {
	RunID        uuid.UUID         `json:"run_id"`
	DocumentType DocumentType      `json:"document_type"`
	Success      bool              `json:"success"`
	Data         map[string]string `json:"data"`
	Validation   ValidationSummary `json:"validation"`
	Confidence   float64           `json:"confidence"`
	Method       string            `json:"method"`
	Message      string            `json:"message,omitempty"`
	OCRTextLen   int               `json:"ocr_text_length"`

	Grouped *RepresentativeView `json:"grouped,omitempty"`
}

// RepresentativeView groups representative-form data the way the form
// presents it. Empty groups are omitted.
type RepresentativeView struct {
	AttorneyName map[string]string `json:"attorney_name,omitempty"`
	FirmName     string            `json:"firm_name,omitempty"`
	Address      map[string]string `json:"address,omitempty"`
	Contact      map[string]string `json:"contact,omitempty"`
	Eligibility  map[string]string `json:"eligibility,omitempty"`
}

// FormFieldMap maps destination-form field identifiers to non-empty values.
type FormFieldMap map[string]string

// Keys returns the destination identifiers, sorted.
func (f FormFieldMap) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FieldFillKind is the control type a value was injected into.
type FieldFillKind string

const (
	FillKindInput  FieldFillKind = "input"
	FillKindSelect FieldFillKind = "select"
	FillKindRadio  FieldFillKind = "radio"
)

// FieldFill records the outcome of injecting one value.
type FieldFill struct {
	Field    string        `json:"field"`
	Value    string        `json:"value"`
	Selector string        `json:"selector,omitempty"`
	Kind     FieldFillKind `json:"type"`
	Filled   bool          `json:"filled"`
	Error    string        `json:"error,omitempty"`
}

// FillReport is returned by the form-filling collaborator.
type FillReport struct {
	Success     bool        `json:"success"`
	FilledCount int         `json:"filled_count"`
	Fields      []FieldFill `json:"fields"`
	Errors      []string    `json:"errors"`
	Screenshot  string      `json:"screenshot,omitempty"`
}

// FillResult is the combined output of a fill request.
type FillResult struct {
	Passport       *DocumentResult `json:"passport,omitempty"`
	Representative *DocumentResult `json:"representative,omitempty"`
	Fields         FormFieldMap    `json:"fields"`
	Report         *FillReport     `json:"report,omitempty"`
}

// ExtractionRun is the persisted audit record of one document extraction.
type ExtractionRun struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	DocumentType  DocumentType `db:"document_type" json:"document_type"`
	FileName      string       `db:"file_name" json:"file_name"`
	StorageKey    string       `db:"storage_key" json:"storage_key"`
	Status        RunStatus    `db:"status" json:"status"`
	Method        string       `db:"method" json:"method"`
	Confidence    float64      `db:"confidence" json:"confidence"`
	FieldCount    int          `db:"field_count" json:"field_count"`
	TotalErrors   int          `db:"total_errors" json:"total_errors"`
	TotalWarnings int          `db:"total_warnings" json:"total_warnings"`
	DurationMS    int64        `db:"duration_ms" json:"duration_ms"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}
