package extractor

import (
	"regexp"
	"strings"

	"docfill/internal/domain"
	"docfill/internal/validator"
)

// PatternConfidence is the confidence assigned to pattern-extracted records.
const PatternConfidence = 0.70

const (
	// bilingual skips a translated label such as "Surname / Nom".
	bilingual = `(?:\s*/\s*[A-Za-z.' ]+?)?`
	sep       = `\s*[:.]?\s*`
	upperName = `([A-Z][A-Z'\-]+(?: [A-Z][A-Z'\-]+)*)`
	dateValue = `(\d{1,2}[\s/.\-]*[A-Za-z]{3,9}\.?(?:\s*/\s*[A-Za-z]{3,9})?[\s/.\-]*\d{4}|\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4}|\d{4}[/.\-]\d{1,2}[/.\-]\d{1,2})`
)

// labelWords never belong to a value; an uppercase run is cut at the first one.
var labelWords = map[string]bool{
	"SURNAME": true, "NOM": true, "GIVEN": true, "NAMES": true, "NAME": true,
	"PRENOMS": true, "PRÉNOMS": true, "NATIONALITY": true, "NATIONALITE": true,
	"DATE": true, "BIRTH": true, "SEX": true, "SEXE": true, "PLACE": true,
	"LIEU": true, "PASSPORT": true, "NO": true, "TYPE": true, "CODE": true,
	"AUTHORITY": true, "ISSUE": true, "EXPIRY": true, "SIGNATURE": true,
	"HOLDER": true, "CITIZENSHIP": true,
}

var nameFallbackSkip = []string{"PASSPORT", "REPUBLIC", "CITIZEN", "NUMBER", "NATIONALITY", "KINGDOM"}

var fallbackLine = regexp.MustCompile(`^[A-Z][A-Z '\-]+$`)

// PassportPatterns extracts passport data-page fields from OCR text.
type PassportPatterns struct {
	rules []Rule
}

// NewPassportPatterns compiles the passport pattern table.
func NewPassportPatterns() *PassportPatterns {
	label := func(words string) string { return `(?i:\b(?:` + words + `))` + bilingual + sep }
	return &PassportPatterns{rules: []Rule{
		{Field: domain.FieldPassportNumber, Candidates: compile(
			label(`passport\s*(?:no\.?|number|#)`)+`([A-Z0-9]{6,9})\b`,
			label(`document\s*(?:no\.?|number)`)+`([A-Z0-9]{6,9})\b`,
			`\b([A-Z]{1,2}\d{6,9})\b`,
		), Post: hasDigit},
		{Field: domain.FieldSurname, Candidates: compile(
			label(`surname|last\s*name|family\s*name`) + upperName,
		), Post: cutLabels},
		{Field: domain.FieldGivenNames, Candidates: compile(
			label(`given\s*names?|first\s*names?|forenames?|pr[ée]noms?`) + upperName,
		), Post: cutLabels},
		{Field: domain.FieldNationality, Candidates: compile(
			label(`nationality|citizenship`) + upperName,
		), Post: cutLabels},
		{Field: domain.FieldDateOfBirth, Candidates: compile(
			label(`date\s*of\s*birth|birth\s*date|d\.?o\.?b\.?|born`) + dateValue,
		), Post: isoDate},
		{Field: domain.FieldIssueDate, Candidates: compile(
			label(`date\s*of\s*issue|issue\s*date|issued(?:\s*on)?`) + dateValue,
		), Post: isoDate},
		{Field: domain.FieldExpiryDate, Candidates: compile(
			label(`date\s*of\s*expiry|expiry\s*date|date\s*of\s*expiration|expiration\s*date|expires?|valid\s*until`) + dateValue,
		), Post: isoDate},
		{Field: domain.FieldSex, Candidates: compile(
			label(`sex|gender`)+`([MF])\b`,
			label(`sex|gender`)+`((?i:female|male))\b`,
		), Post: sexCode},
		{Field: domain.FieldPlaceOfBirth, Candidates: compile(
			label(`place\s*of\s*birth|birth\s*place`) + upperName,
		), Post: cutLabels},
	}}
}

// Extract applies the pattern table to text. Lines are joined with spaces
// first so labels and values split across lines still pair up.
func (p *PassportPatterns) Extract(text string) map[string]string {
	out := make(map[string]string)
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return out
	}

	apply(p.rules, strings.Join(lines, " "), out)

	_, hasSurname := out[domain.FieldSurname]
	_, hasGiven := out[domain.FieldGivenNames]
	if !hasSurname && !hasGiven {
		names := uppercaseNameLines(lines, 10)
		if len(names) > 0 {
			out[domain.FieldSurname] = names[0]
		}
		if len(names) > 1 {
			out[domain.FieldGivenNames] = names[1]
		}
	}
	return out
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// uppercaseNameLines returns all-caps lines among the first limit lines that
// look like a printed name rather than a heading.
func uppercaseNameLines(lines []string, limit int) []string {
	if len(lines) > limit {
		lines = lines[:limit]
	}
	var out []string
	for _, l := range lines {
		if len(l) <= 3 || !fallbackLine.MatchString(l) {
			continue
		}
		skip := false
		for _, w := range nameFallbackSkip {
			if strings.Contains(l, w) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, l)
		}
	}
	return out
}

func cutLabels(v string) (string, bool) {
	var kept []string
	for _, tok := range strings.Fields(v) {
		if labelWords[tok] {
			if len(kept) > 0 {
				break
			}
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, " "), true
}

var isoPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func isoDate(v string) (string, bool) {
	out := validator.NormalizeDate(v)
	return out, isoPattern.MatchString(out)
}

func sexCode(v string) (string, bool) {
	switch strings.ToUpper(v) {
	case "M", "MALE":
		return "M", true
	case "F", "FEMALE":
		return "F", true
	}
	return "", false
}
