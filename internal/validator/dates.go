package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts is the ordered list of accepted input formats; the first match wins.
var dateLayouts = []string{
	"2006-1-2",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"1-2-2006",
	"2-1-2006",
	"January 2, 2006",
	"2 January 2006",
}

// ISODate is the canonical output layout.
const ISODate = "2006-01-02"

// ParseDate tries each accepted layout in order.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

var (
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericDMY     = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})`)
	numericYMD     = regexp.MustCompile(`(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})`)
	dayMonthYear   = regexp.MustCompile(`(\d{1,2})[\s/.\-]*([A-Za-z]{3,9})(?:\s*/\s*[A-Za-z]{3,9})?\.?[\s/.\-]*(\d{4})`)
	monthDayYear   = regexp.MustCompile(`([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})`)
	// English abbreviations plus the French forms printed on bilingual passports.
	monthAbbrevs = map[string]int{
		"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
		"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
		"AVR": 4, "MAI": 5, "JANV": 1, "FEVR": 2, "JUIN": 6, "JUIL": 7, "AOUT": 8,
	}
)

// NormalizeDate converts the loosely formatted dates produced by OCR and
// language models to YYYY-MM-DD. Numeric dates are read day-first; when the
// second component is above 12 it cannot be a month and the date is read
// month-first instead. Values that cannot be interpreted are returned unchanged.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || isoDatePattern.MatchString(s) {
		return s
	}

	if m := numericYMD.FindStringSubmatch(s); m != nil {
		if out, ok := compose(m[1], m[2], m[3]); ok {
			return out
		}
	}
	if m := numericDMY.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		day, month := m[1], m[2]
		if a <= 12 && b > 12 {
			day, month = m[2], m[1]
		}
		if out, ok := compose(m[3], month, day); ok {
			return out
		}
	}
	if m := dayMonthYear.FindStringSubmatch(s); m != nil {
		if month := monthNumber(m[2]); month > 0 {
			if out, ok := compose(m[3], strconv.Itoa(month), m[1]); ok {
				return out
			}
		}
	}
	if m := monthDayYear.FindStringSubmatch(s); m != nil {
		if month := monthNumber(m[1]); month > 0 {
			if out, ok := compose(m[3], strconv.Itoa(month), m[2]); ok {
				return out
			}
		}
	}
	return s
}

func monthNumber(name string) int {
	upper := strings.ToUpper(name)
	if len(upper) >= 4 {
		if n, ok := monthAbbrevs[upper[:4]]; ok {
			return n
		}
	}
	if len(upper) < 3 {
		return 0
	}
	return monthAbbrevs[upper[:3]]
}

func compose(year, month, day string) (string, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}
