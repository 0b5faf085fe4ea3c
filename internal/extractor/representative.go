package extractor

import (
	"regexp"
	"strings"

	"docfill/internal/domain"
)

// bracket matches the glyph OCR produces for a form-field border: a label is
// followed on the same line by one of [ | { and then the filled value.
const bracket = `[^\[\|\{\n]*[\[\|\{]\s*`

// RepresentativePatterns extracts attorney appearance form fields.
type RepresentativePatterns struct {
	rules      []Rule
	combined   *regexp.Regexp
	fullName   *regexp.Regexp
	email      *regexp.Regexp
	attorneyKW *regexp.Regexp
	accreditKW *regexp.Regexp
}

// NewRepresentativePatterns compiles the representative-form pattern table.
func NewRepresentativePatterns() *RepresentativePatterns {
	phone := `([\d\s().\-]+)`
	return &RepresentativePatterns{
		rules: []Rule{
			{Field: domain.FieldUSCISAccount, Candidates: compile(
				`(?i)(?:USCIS\s*Online\s*Account\s*Number|Account\s*Number)[:\s\[\|\{]*([A-Z0-9]{8,12})\b`,
				`(?i)Online\s*Account`+bracket+`([A-Z0-9]{8,12})\b`,
			), Post: hasDigit},
			{Field: domain.FieldAttorneyLast, Candidates: compile(
				`(?i)(?:Family\s*Name|Last\s*Name)`+bracket+`([A-Za-z][A-Za-z'\-]+)`,
				`(?i)2\.a\.\s*Family`+bracket+`([A-Za-z][A-Za-z'\-]+)`,
				`(?i)\(Last\s*Name\)\s*[\[\|\{]\s*([A-Za-z][A-Za-z'\-]+)`,
				`(?i)(?:Family|Last)\s*Name\s*[:.]\s*([A-Za-z][A-Za-z'\-]+)`,
			)},
			{Field: domain.FieldAttorneyFirst, Candidates: compile(
				`(?i)\(First\s*Name\)\s*[\[\|\{]\s*([A-Za-z][A-Za-z'\-]+)`,
				`(?i)(?:Given\s*Name|First\s*Name)`+bracket+`([A-Za-z][A-Za-z'\-]+)`,
				`(?i)2\.b\.\s*Given`+bracket+`([A-Za-z][A-Za-z'\-]+)`,
				`(?i)(?:Given|First)\s*Name\s*[:.]\s*([A-Za-z][A-Za-z'\-]+)`,
			)},
			{Field: domain.FieldAttorneyMiddle, Candidates: compile(
				`(?i)Middle\s*Name`+bracket+`([A-Za-z][A-Za-z'\-]+)`,
				`(?i)2\.c\.\s*Middle`+bracket+`([A-Za-z][A-Za-z'\-]+)`,
				`(?i)Middle\s*Name\s*[:.]\s*([A-Za-z][A-Za-z'\-]+)`,
			)},
			{Field: domain.FieldFirmName, Candidates: compile(
				`(?i)(?:Name\s*of\s*)?Law\s*Firm(?:\s*or\s*Organization)?`+bracket+`([^\n\]\|\[]+)`,
				`(?im)(?:Law\s*)?Firm(?:\s*or\s*Organization)?(?:\s*\(if\s*applicable\))?\s*:\s*([A-Za-z0-9 &,.'\-]+?)\s*$`,
				`\b([A-Z][A-Za-z&,.'\-]*(?: [A-Za-z&,.'\-]+){0,3}? (?:LLP|LLC|PLLC|P\.C\.|Law (?:Firm|Offices?|Group)))(?:[^A-Za-z]|$)`,
			), Post: trimPunct},
			{Field: domain.FieldStreet, Candidates: compile(
				`(?i)(?:Street\s*Number(?:\s*and\s*Name)?|Address)`+bracket+`([0-9][A-Za-z0-9 ,.\-]*)`,
				`(?i)3\.a\.\s*Street`+bracket+`([0-9][A-Za-z0-9 ,.\-]*)`,
				`(?i)(?:Street|Address)\s*:\s*([0-9][A-Za-z0-9 ,.\-]*?)\s*(?:\n|Suite|Ste\.|Apt|Floor|$)`,
			), Post: trimPunct},
			{Field: domain.FieldSuite, Candidates: compile(
				`(?i)(?:Apt\.?|Ste\.|Suite|Flr\.?|Floor|Unit)`+bracket+`([A-Za-z0-9\-]*\d[A-Za-z0-9\-]*)`,
				`(?i)3\.b\.`+bracket+`([A-Za-z0-9\-]*\d[A-Za-z0-9\-]*)`,
				`(?i)\b(?:Suite|Ste\.|Apt\.?|Floor|Unit)[:\s#]*([A-Za-z0-9\-]*\d[A-Za-z0-9\-]*)`,
			)},
			{Field: domain.FieldCity, Candidates: compile(
				`(?i)City(?:\s*or\s*Town)?`+bracket+`([A-Za-z][A-Za-z .'\-]*)`,
				`(?i)3\.c\.`+bracket+`([A-Za-z][A-Za-z .'\-]*)`,
				`(?i)City(?:\s*or\s*Town)?\s*:\s*([A-Za-z][A-Za-z .'\-]*?)\s*(?:\n|State|$)`,
			), Post: trimPunct},
			{Field: domain.FieldState, Candidates: compile(
				`(?i)(?:State|Province)`+bracket+`([A-Za-z][A-Za-z ]*)`,
				`(?i)3\.d\.`+bracket+`([A-Za-z][A-Za-z ]*)`,
				`(?i)State\s*:\s*([A-Za-z][A-Za-z ]*)`,
			), Post: StateCode},
			{Field: domain.FieldZip, Candidates: compile(
				`(?i)(?:ZIP\s*Code|Postal\s*Code)`+bracket+`(\d{5}(?:-\d{4})?)`,
				`(?i)3\.e\.`+bracket+`(\d{5}(?:-\d{4})?)`,
				`(?i)(?:ZIP|Postal)(?:\s*Code)?[:\s]*(\d{5}(?:-\d{4})?)`,
			)},
			{Field: domain.FieldCountry, Candidates: compile(
				`(?i)3\.h\.\s*Country`+bracket+`([A-Za-z][A-Za-z ]*)`,
				`(?i)Country`+bracket+`([A-Za-z][A-Za-z ]*)`,
				`(?i)Country\s*:\s*([A-Za-z][A-Za-z ]*)`,
			), Post: trimPunct},
			{Field: domain.FieldPhone, Candidates: compile(
				`(?i)Daytime\s*(?:Telephone|Phone)(?:\s*Number)?`+bracket+phone,
				`(?i)4\.\s*Daytime`+bracket+phone,
				`(?i)(?:Daytime\s*)?(?:Telephone|Phone|Tel)(?:\s*Number)?\s*:\s*`+phone,
			), Post: phoneDigits},
			{Field: domain.FieldMobile, Candidates: compile(
				`(?i)(?:Mobile|Cell)(?:\s*(?:Telephone|Phone))?(?:\s*Number)?`+bracket+phone,
				`(?i)5\.\s*Mobile`+bracket+phone,
				`(?i)(?:Mobile|Cell)(?:\s*Phone)?[:\s]*`+phone,
			), Post: phoneDigits},
			{Field: domain.FieldFax, Candidates: compile(
				`(?i)(?:Fax|Facsimile)(?:\s*Number)?`+bracket+phone,
				`(?i)(?:Fax|Facsimile)(?:\s*Number)?[:\s]*`+phone,
			), Post: phoneDigits},
			{Field: domain.FieldBarNumber, Candidates: compile(
				`(?i)(?:Bar|License)\s*(?:Number|#|No\.?)`+bracket+`([A-Z0-9\-]{4,})`,
				`(?i)(?:Bar|License)\s*(?:Number|#|No\.?)\s*:?\s*([A-Z0-9\-]{4,})`,
			), Post: hasDigit},
			{Field: domain.FieldBarState, Candidates: compile(
				`(?i)Licensing\s*Authority`+bracket+`([A-Za-z][A-Za-z ]*)`,
				`(?i)highest\s*court\s*(?:of|in)\s*(?:the\s*)?(?:State\s*of\s*)?([A-Za-z][A-Za-z ]*)`,
				`(?i)admitted\s*to\s*practice\s*in\s*(?:the\s*)?(?:State\s*of\s*)?([A-Za-z][A-Za-z ]*)`,
			), Post: StateCode},
		},
		combined:   regexp.MustCompile(`([A-Za-z][A-Za-z .]*?),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)`),
		fullName:   regexp.MustCompile(`(?i)Name\s*\(Last,?\s*First,?\s*Middle\)\s*[:\[\|\{]?\s*([A-Za-z'\-]+)[,\s]+([A-Za-z'\-]+)(?:[,\s]+([A-Za-z'\-]+))?`),
		email:      regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`),
		attorneyKW: regexp.MustCompile(`(?i)\b(?:attorney|lawyer|esquire|esq)\b`),
		accreditKW: regexp.MustCompile(`(?i)accredited\s*representative`),
	}
}

// Extract applies the pattern table to text. Absent fields are omitted.
func (p *RepresentativePatterns) Extract(text string) map[string]string {
	out := make(map[string]string)
	if strings.TrimSpace(text) == "" {
		return out
	}

	apply(p.rules, text, out)

	if _, ok := out[domain.FieldAttorneyLast]; !ok {
		if m := p.fullName.FindStringSubmatch(text); m != nil {
			out[domain.FieldAttorneyLast] = m[1]
			setMissing(out, domain.FieldAttorneyFirst, m[2])
			setMissing(out, domain.FieldAttorneyMiddle, m[3])
		}
	}

	_, hasCity := out[domain.FieldCity]
	_, hasState := out[domain.FieldState]
	_, hasZip := out[domain.FieldZip]
	if !hasCity || !hasState || !hasZip {
		if m := p.combined.FindStringSubmatch(text); m != nil {
			setMissing(out, domain.FieldCity, strings.TrimSpace(m[1]))
			setMissing(out, domain.FieldState, m[2])
			setMissing(out, domain.FieldZip, m[3])
		}
	}

	if e := p.email.FindString(text); e != "" {
		out[domain.FieldEmail] = e
	}

	if kind := p.eligibility(text, out); kind != "" {
		out[domain.FieldEligibility] = kind
	}
	return out
}

// eligibility infers attorney or accredited representative from keywords.
// The printed form carries both words in its headings, so when both appear
// the presence of bar data decides.
func (p *RepresentativePatterns) eligibility(text string, found map[string]string) string {
	att := p.attorneyKW.MatchString(text)
	rep := p.accreditKW.MatchString(text)
	_, barNum := found[domain.FieldBarNumber]
	_, barState := found[domain.FieldBarState]
	bar := barNum || barState

	switch {
	case rep && !att:
		return string(domain.EligibilityRepresentative)
	case att && !rep:
		return string(domain.EligibilityAttorney)
	case bar:
		return string(domain.EligibilityAttorney)
	}
	return ""
}

func setMissing(out map[string]string, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if _, ok := out[field]; !ok {
		out[field] = value
	}
}
