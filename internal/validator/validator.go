// Package validator normalizes and checks extracted field values.
package validator

import (
	"sort"
	"time"

	"docfill/internal/domain"
)

// FieldValidator validates a flat field map. It holds no per-call state and
// is safe for concurrent use.
type FieldValidator struct {
	registry *Registry
	strict   bool
	now      func() time.Time
}

// Option configures a FieldValidator.
type Option func(*FieldValidator)

// WithStrict makes fields with errors unusable downstream.
func WithStrict() Option {
	return func(v *FieldValidator) { v.strict = true }
}

// WithClock overrides the clock used for birth-date plausibility checks.
func WithClock(now func() time.Time) Option {
	return func(v *FieldValidator) { v.now = now }
}

// WithRegistry replaces the default routing table.
func WithRegistry(r *Registry) Option {
	return func(v *FieldValidator) { v.registry = r }
}

// New creates a FieldValidator with the default routing table.
func New(opts ...Option) *FieldValidator {
	v := &FieldValidator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = DefaultRegistry(func() time.Time { return v.now() })
	}
	return v
}

// Strict reports whether the validator runs in strict mode.
func (v *FieldValidator) Strict() bool {
	return v.strict
}

// CategoryOf returns the category a field name routes to.
func (v *FieldValidator) CategoryOf(field string) Category {
	if rule, ok := v.registry.Get(field); ok {
		return rule.Category
	}
	return CategoryText
}

// Validate runs the routed rule for a single field.
func (v *FieldValidator) Validate(field, value string) Outcome {
	rule, ok := v.registry.Get(field)
	if !ok {
		return Outcome{Valid: true, Cleaned: value}
	}
	return rule.Validate(field, value)
}

// ValidateAll validates every field. Empty values are passed through
// unchanged unless the field is a required name or passport number. A field
// appears in at most one of Errors and Warnings.
func (v *FieldValidator) ValidateAll(fields map[string]string) *domain.ValidationResult {
	res := &domain.ValidationResult{
		Cleaned:  make(map[string]string, len(fields)),
		Errors:   make(map[string]string),
		Warnings: make(map[string]string),
	}

	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, field := range names {
		value := fields[field]
		if value == "" && !v.required(field) {
			res.Cleaned[field] = value
			continue
		}
		out := v.Validate(field, value)
		res.Cleaned[field] = out.Cleaned
		if out.Message == "" {
			continue
		}
		if out.Valid {
			res.Warnings[field] = out.Message
		} else {
			res.Errors[field] = out.Message
		}
	}
	return res
}

func (v *FieldValidator) required(field string) bool {
	switch v.CategoryOf(field) {
	case CategoryName, CategoryPassport:
		return true
	}
	return false
}

// Passed reports whether the result allows the document to proceed: always
// true in permissive mode, error-free in strict mode.
func (v *FieldValidator) Passed(res *domain.ValidationResult) bool {
	return !v.strict || !res.HasErrors()
}

// Usable returns the cleaned values that may be used downstream. In strict
// mode fields with errors are withheld.
func (v *FieldValidator) Usable(res *domain.ValidationResult) map[string]string {
	out := make(map[string]string, len(res.Cleaned))
	for k, val := range res.Cleaned {
		if v.strict {
			if _, bad := res.Errors[k]; bad {
				continue
			}
		}
		out[k] = val
	}
	return out
}
