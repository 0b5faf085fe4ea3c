package browser

import (
	"fmt"
	"strings"

	"docfill/internal/country"
	"docfill/internal/extractor"
)

// Selectors returns the lookup cascade for a destination field id, most
// specific first.
func Selectors(id string) []string {
	return []string{
		"#" + id,
		fmt.Sprintf("[name='%s']", id),
		fmt.Sprintf("[id*='%s']", id),
		fmt.Sprintf("[name*='%s']", id),
	}
}

var sexLabels = map[string]string{"M": "Male", "F": "Female", "X": "Unspecified"}

// OptionLabel is the visible text a select option for value is expected to
// carry: country names for ISO codes, state names for USPS codes and the
// long form of a sex code.
func OptionLabel(value string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	if l, ok := sexLabels[upper]; ok {
		return l
	}
	if name := extractor.StateName(upper); name != "" {
		return name
	}
	if country.IsCode(upper) {
		return country.NameFor(upper)
	}
	return value
}

// RadioMatches reports whether a radio option value stands for value.
// "M" matches "male" and vice versa.
func RadioMatches(value, option string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	o := strings.ToLower(strings.TrimSpace(option))
	if v == "" || o == "" {
		return false
	}
	return v == o || v[:1] == o[:1] && (len(v) == 1 || len(o) == 1)
}
