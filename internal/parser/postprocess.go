package parser

import (
	"regexp"
	"strings"

	"docfill/internal/country"
	"docfill/internal/domain"
	"docfill/internal/extractor"
	"docfill/internal/validator"
)

var sexCodes = map[string]string{
	"M": "M", "MALE": "M", "H": "M", "HOMME": "M", "MASCULIN": "M", "MASCULINO": "M", "MANNLICH": "M", "MÄNNLICH": "M",
	"F": "F", "FEMALE": "F", "FEMME": "F", "FEMININ": "F", "FÉMININ": "F", "FEMENINO": "F", "FEMININO": "F", "W": "F", "WEIBLICH": "F",
}

var (
	multiSpace = regexp.MustCompile(`\s+`)
	nonDigit   = regexp.MustCompile(`\D`)
)

// PostProcess normalizes model output for a document type. It is applied to
// every language-model result regardless of provider.
func PostProcess(dt domain.DocumentType, fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	switch dt {
	case domain.DocumentTypePassport:
		postProcessPassport(out)
	case domain.DocumentTypeRepresentative:
		postProcessRepresentative(out)
	}
	return out
}

func postProcessPassport(f map[string]string) {
	for _, k := range []string{domain.FieldDateOfBirth, domain.FieldIssueDate, domain.FieldExpiryDate} {
		if v, ok := f[k]; ok {
			f[k] = validator.NormalizeDate(v)
		}
	}

	if surname, given := f[domain.FieldSurname], f[domain.FieldGivenNames]; surname != "" && given != "" {
		if stripped := stripSurname(given, surname); stripped != given {
			if stripped == "" {
				delete(f, domain.FieldGivenNames)
			} else {
				f[domain.FieldGivenNames] = stripped
			}
		}
	}

	if v, ok := f[domain.FieldSex]; ok {
		if code, known := sexCodes[strings.ToUpper(strings.TrimSpace(v))]; known {
			f[domain.FieldSex] = code
		} else {
			delete(f, domain.FieldSex)
		}
	}

	reconcileCountry(f)
}

// stripSurname removes a case-insensitive occurrence of surname from given.
func stripSurname(given, surname string) string {
	upperGiven, upperSurname := strings.ToUpper(given), strings.ToUpper(surname)
	if len(upperGiven) != len(given) || len(upperSurname) != len(surname) {
		return given
	}
	idx := strings.Index(upperGiven, upperSurname)
	if idx < 0 {
		return given
	}
	rest := given[:idx] + given[idx+len(surname):]
	return strings.TrimSpace(multiSpace.ReplaceAllString(rest, " "))
}

// reconcileCountry keeps nationality as a display name and country_code as
// an ISO-3 code, deriving whichever is missing.
func reconcileCountry(f map[string]string) {
	nat := f[domain.FieldNationality]
	code := f[domain.FieldCountryCode]

	if nat != "" {
		upper := strings.ToUpper(nat)
		if upper == "ARE" || strings.Contains(upper, "EMIRATES") || strings.Contains(upper, "UAE") {
			f[domain.FieldNationality] = country.NameFor("ARE")
			f[domain.FieldCountryCode] = "ARE"
			return
		}
		if country.IsCode(nat) {
			if code == "" {
				f[domain.FieldCountryCode] = strings.ToUpper(nat)
			}
			f[domain.FieldNationality] = country.NameFor(nat)
		} else if code == "" {
			if derived := country.CodeFor(nat); derived != "" {
				f[domain.FieldCountryCode] = derived
			}
		}
	}

	if code != "" && !country.IsCode(code) {
		if derived := country.CodeFor(code); derived != "" {
			f[domain.FieldCountryCode] = derived
		}
	} else if code != "" {
		f[domain.FieldCountryCode] = strings.ToUpper(code)
	}
}

func postProcessRepresentative(f map[string]string) {
	for _, k := range []string{domain.FieldPhone, domain.FieldMobile, domain.FieldFax} {
		v, ok := f[k]
		if !ok {
			continue
		}
		d := nonDigit.ReplaceAllString(v, "")
		if len(d) == 11 && d[0] == '1' {
			d = d[1:]
		}
		if len(d) < 10 {
			delete(f, k)
			continue
		}
		f[k] = d[:10]
	}

	for _, k := range []string{domain.FieldState, domain.FieldBarState} {
		v, ok := f[k]
		if !ok {
			continue
		}
		if code, known := extractor.StateCode(v); known {
			f[k] = code
		}
	}

	if v, ok := f[domain.FieldEligibility]; ok {
		lower := strings.ToLower(v)
		switch {
		case strings.Contains(lower, "accredited") || strings.Contains(lower, "representative"):
			f[domain.FieldEligibility] = string(domain.EligibilityRepresentative)
		case strings.Contains(lower, "attorney") || strings.Contains(lower, "lawyer"):
			f[domain.FieldEligibility] = string(domain.EligibilityAttorney)
		default:
			delete(f, domain.FieldEligibility)
		}
	}
}
