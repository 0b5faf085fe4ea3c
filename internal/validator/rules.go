package validator

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"docfill/internal/country"
)

// Outcome is the result of validating a single value.
type Outcome struct {
	Valid   bool
	Cleaned string
	Message string
}

func ok(cleaned string) Outcome { return Outcome{Valid: true, Cleaned: cleaned} }

func warn(cleaned, msg string) Outcome { return Outcome{Valid: true, Cleaned: cleaned, Message: msg} }

func fail(cleaned, msg string) Outcome { return Outcome{Valid: false, Cleaned: cleaned, Message: msg} }

const (
	maxNameLen      = 50
	minNameLen      = 2
	maxOrgNameLen   = 100
	minPhoneDigits  = 10
	maxPhoneDigits  = 15
	minPassportLen  = 6
	maxPassportLen  = 15
	maxPostalLen    = 10
	minBarNumberLen = 4
	maxBarNumberLen = 20
	maxAgeYears     = 120
)

var (
	nameCharsPattern    = regexp.MustCompile(`^[A-Za-z\s\-'.]+$`)
	nameInvalidChars    = regexp.MustCompile(`[^A-Za-z\s\-'.]`)
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	canadianPostal      = regexp.MustCompile(`^[A-Z]\d[A-Z]\d[A-Z]\d$`)
	nonDigits           = regexp.MustCompile(`\D`)
	collapseWhitespaces = regexp.MustCompile(`\s+`)
)

// ValidateName checks a personal-name field.
func ValidateName(value, field string) Outcome {
	if value == "" {
		return fail(value, fmt.Sprintf("%s is required", field))
	}
	cleaned := strings.Join(strings.Fields(value), " ")

	if strings.IndexFunc(cleaned, unicode.IsDigit) >= 0 {
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return -1
			}
			return r
		}, cleaned)
		return fail(stripped, fmt.Sprintf("%s should not contain numbers", field))
	}

	if !nameCharsPattern.MatchString(cleaned) {
		return fail(nameInvalidChars.ReplaceAllString(cleaned, ""), fmt.Sprintf("%s contains invalid characters", field))
	}

	runes := []rune(cleaned)
	if len(runes) < minNameLen {
		return fail(cleaned, fmt.Sprintf("%s is too short", field))
	}
	if len(runes) > maxNameLen {
		return warn(string(runes[:maxNameLen]), fmt.Sprintf("%s is very long, might be truncated", field))
	}
	return ok(cleaned)
}

// ValidateOrganizationName collapses whitespace in a firm or organization name.
// Punctuation such as "&" and "," is legal here, unlike personal names.
func ValidateOrganizationName(value, field string) Outcome {
	if value == "" {
		return ok(value)
	}
	cleaned := collapseWhitespaces.ReplaceAllString(strings.TrimSpace(value), " ")
	if runes := []rune(cleaned); len(runes) > maxOrgNameLen {
		return warn(string(runes[:maxOrgNameLen]), fmt.Sprintf("%s is very long, might be truncated", field))
	}
	return ok(cleaned)
}

// ValidateEmail lower-cases and checks an email address.
func ValidateEmail(value string) Outcome {
	if value == "" {
		return ok(value)
	}
	cleaned := strings.ToLower(strings.TrimSpace(value))
	if !emailPattern.MatchString(cleaned) {
		return fail(cleaned, fmt.Sprintf("Invalid email format: %s", value))
	}
	return ok(cleaned)
}

// ValidatePhone reduces a phone number to digits and formats US numbers.
func ValidatePhone(value, field string) Outcome {
	if value == "" {
		return ok(value)
	}
	digits := nonDigits.ReplaceAllString(value, "")
	switch {
	case digits == "":
		return fail(value, fmt.Sprintf("%s must contain numbers", field))
	case len(digits) < minPhoneDigits:
		return fail(digits, fmt.Sprintf("%s is too short (minimum 10 digits)", field))
	case len(digits) > maxPhoneDigits:
		return fail(digits[:maxPhoneDigits], fmt.Sprintf("%s is too long (maximum 15 digits)", field))
	case len(digits) == 10:
		return ok(fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]))
	case len(digits) == 11 && digits[0] == '1':
		return ok(fmt.Sprintf("+1 (%s) %s-%s", digits[1:4], digits[4:7], digits[7:]))
	default:
		return ok(digits)
	}
}

// ValidateDate normalizes a date to YYYY-MM-DD. Birth-date fields are also
// checked for plausibility against now.
func ValidateDate(value, field string, now time.Time) Outcome {
	if value == "" {
		return ok(value)
	}
	t, err := ParseDate(value)
	if err != nil {
		return fail(value, fmt.Sprintf("Invalid date format for %s: %s", field, value))
	}
	formatted := t.Format(ISODate)
	if isBirthField(field) {
		if t.After(now) {
			return fail(formatted, fmt.Sprintf("%s cannot be in the future", field))
		}
		if now.Sub(t) > time.Duration(maxAgeYears*365)*24*time.Hour {
			return warn(formatted, fmt.Sprintf("%s indicates age over 120 years", field))
		}
	}
	return ok(formatted)
}

// ValidatePassportNumber upper-cases and checks a passport document number.
func ValidatePassportNumber(value string) Outcome {
	if value == "" {
		return fail(value, "Passport number is required")
	}
	cleaned := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "")
	if !isAlnum(cleaned) {
		return fail(keepAlnum(cleaned), "Passport number should contain only letters and numbers")
	}
	if len(cleaned) < minPassportLen {
		return fail(cleaned, "Passport number is too short")
	}
	if len(cleaned) > maxPassportLen {
		return fail(cleaned[:maxPassportLen], "Passport number is too long")
	}
	return ok(cleaned)
}

// ValidateZip formats US ZIP and Canadian postal codes.
func ValidateZip(value string) Outcome {
	if value == "" {
		return ok(value)
	}
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(value))

	if isDigits(cleaned) {
		switch len(cleaned) {
		case 5:
			return ok(cleaned)
		case 9:
			return ok(cleaned[:5] + "-" + cleaned[5:])
		default:
			truncated := cleaned
			if len(truncated) > 5 {
				truncated = truncated[:5]
			}
			return fail(truncated, fmt.Sprintf("Invalid ZIP code length: %s", value))
		}
	}

	upper := strings.ToUpper(cleaned)
	if len(cleaned) == 6 && canadianPostal.MatchString(upper) {
		return ok(upper[:3] + " " + upper[3:])
	}

	if len(cleaned) > maxPostalLen {
		return warn(cleaned[:maxPostalLen], "ZIP/postal code is very long")
	}
	return ok(cleaned)
}

// ValidateBarNumber normalizes an attorney bar number. Problems are reported
// as warnings only.
func ValidateBarNumber(value string) Outcome {
	if value == "" {
		return ok(value)
	}
	cleaned := strings.NewReplacer("-", "", " ", "").Replace(strings.ToUpper(strings.TrimSpace(value)))
	if !isAlnum(cleaned) {
		return warn(keepAlnum(cleaned), "Bar number contains special characters")
	}
	if len(cleaned) < minBarNumberLen {
		return warn(cleaned, "Bar number seems short")
	}
	if len(cleaned) > maxBarNumberLen {
		return warn(cleaned[:maxBarNumberLen], "Bar number is very long")
	}
	return ok(cleaned)
}

// ValidateCountry reduces a country value to an ISO code.
func ValidateCountry(value string) Outcome {
	if value == "" {
		return ok(value)
	}
	cleaned := strings.ToUpper(strings.TrimSpace(value))
	if (len(cleaned) == 2 || len(cleaned) == 3) && isAlpha(cleaned) {
		return ok(cleaned)
	}
	if len(cleaned) > 3 {
		if code := country.CodeFor(cleaned); code != "" {
			return ok(code)
		}
		letters := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) {
				return r
			}
			return -1
		}, cleaned)
		if runes := []rune(letters); len(runes) > 3 {
			letters = string(runes[:3])
		}
		return warn(letters, fmt.Sprintf("Country code extracted from: %s", value))
	}
	return ok(cleaned)
}

func isBirthField(field string) bool {
	f := strings.ToLower(field)
	return f == "dob" || strings.Contains(f, "birth")
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func keepAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
