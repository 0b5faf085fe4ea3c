package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"docfill/internal/domain"
)

// SampleConfidence is the confidence reported for synthesized sample data.
const SampleConfidence = 0.10

// SampleRepresentative returns the demonstration record served when sample
// fallback is enabled and nothing usable was read from a representative form.
func SampleRepresentative() map[string]string {
	return map[string]string{
		domain.FieldAttorneyLast:   "Smith",
		domain.FieldAttorneyFirst:  "John",
		domain.FieldAttorneyMiddle: "Michael",
		domain.FieldFirmName:       "Smith & Associates Law Firm",
		domain.FieldBarNumber:      "NY123456",
		domain.FieldBarState:       "NY",
		domain.FieldStreet:         "123 Broadway",
		domain.FieldSuite:          "Suite 1500",
		domain.FieldCity:           "New York",
		domain.FieldState:          "NY",
		domain.FieldZip:            "10001",
		domain.FieldPhone:          "2125551234",
		domain.FieldMobile:         "9175555678",
		domain.FieldEmail:          "jsmith@smithlaw.com",
		domain.FieldFax:            "2125551235",
		domain.FieldUSCISAccount:   "A12345678",
		domain.FieldEligibility:    string(domain.EligibilityAttorney),
	}
}

var (
	// fieldValue captures what follows a field-border glyph or a "Label:" colon.
	fieldValue  = regexp.MustCompile(`(?:[\[\|\{]|:)[ \t]*([^\n\[\|\{]*)`)
	instruction = regexp.MustCompile(`(?i)^\s*(?:NOTE|Instructions?)\b`)
	// labelStart matches text that is itself a template label, such as the
	// next item number or caption on the same OCR line.
	labelStart  = regexp.MustCompile(`(?i)^(?:\d+\.(?:[a-z]\.)?\s|\(?(?:if\s+any|if\s+applicable)\)?$|(?:Family|Given|Middle|Last|First)\s+Name|Name\s+of|Street|Apt|City|State|ZIP|Postal|Country|Province|Daytime|Mobile|Email|Fax|Bar\s+Number|Licensing|Part\s+\d)`)
)

// LooksBlank reports whether representative-form OCR text reads like the
// unfilled template: the name labels are there but no field glyph or colon is
// followed by a value.
func LooksBlank(text string) bool {
	if !strings.Contains(text, "Family Name") || !strings.Contains(text, "(Last Name)") {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		if instruction.MatchString(line) {
			continue
		}
		for _, m := range fieldValue.FindAllStringSubmatch(line, -1) {
			v := strings.Trim(m[1], " \t]}_")
			if v == "" || !hasAlnum(v) || labelStart.MatchString(v) {
				continue
			}
			return false
		}
	}
	return true
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0
}
