// Package extractor pulls field values out of raw OCR text with ordered
// regular-expression candidates, one table per document type.
package extractor

import (
	"regexp"
	"strings"

	"docfill/internal/domain"
)

// PostFunc cleans a matched value. Returning false rejects the match and the
// next candidate pattern is tried.
type PostFunc func(string) (string, bool)

// Rule is the ordered candidate list for one field. The first candidate that
// matches and survives Post wins; later candidates are not tried.
type Rule struct {
	Field      string
	Candidates []*regexp.Regexp
	Post       PostFunc
}

// Patterns extracts the fields of one document type from OCR text. Fields
// that are not found are omitted from the result.
type Patterns interface {
	Extract(text string) map[string]string
}

// For returns the pattern set for a document type.
func For(dt domain.DocumentType) (Patterns, error) {
	switch dt {
	case domain.DocumentTypePassport:
		return NewPassportPatterns(), nil
	case domain.DocumentTypeRepresentative:
		return NewRepresentativePatterns(), nil
	default:
		return nil, domain.ErrUnknownDocumentType
	}
}

func apply(rules []Rule, text string, out map[string]string) {
	for _, r := range rules {
		if _, done := out[r.Field]; done {
			continue
		}
		if v, ok := firstMatch(r, text); ok {
			out[r.Field] = v
		}
	}
}

func firstMatch(r Rule, text string) (string, bool) {
	for _, re := range r.Candidates {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if r.Post != nil {
			var ok bool
			if v, ok = r.Post(v); !ok {
				continue
			}
		}
		if v != "" {
			return v, true
		}
	}
	return "", false
}

func compile(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

var nonDigit = regexp.MustCompile(`\D`)

// phoneDigits keeps the first ten digits of a match with at least ten.
func phoneDigits(v string) (string, bool) {
	d := nonDigit.ReplaceAllString(v, "")
	if len(d) < 10 {
		return "", false
	}
	return d[:10], true
}

func hasDigit(v string) (string, bool) {
	return v, strings.ContainsAny(v, "0123456789")
}

func trimPunct(v string) (string, bool) {
	return strings.Trim(v, " ,.;:-"), true
}

// SplitStreet separates a leading house number (digits, optionally with
// hyphens) from the street name. A street without one is returned whole as
// number with an empty name.
func SplitStreet(street string) (number, name string) {
	street = strings.TrimSpace(street)
	first, rest, _ := strings.Cut(street, " ")
	digits := strings.ReplaceAll(first, "-", "")
	if digits != "" && strings.Trim(digits, "0123456789") == "" {
		return first, strings.TrimSpace(rest)
	}
	return street, ""
}
