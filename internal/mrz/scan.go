package mrz

import (
	"fmt"
	"regexp"
	"strings"
)

const manualMinLen = 30

var (
	fillerLookalikes = strings.NewReplacer("«", "<", "‹", "<", "(", "<", "{", "<", "[", "<", " ", "")
	fillerRunK       = regexp.MustCompile(`K{3,}`)

	// Letters OCR substitutes for digits in numeric MRZ positions.
	digitLookalikes = map[byte]byte{'O': '0', 'Q': '0', 'D': '0', 'I': '1', 'L': '1', 'Z': '2', 'S': '5', 'B': '8', 'G': '6'}
)

// FindLines returns the MRZ lines of exactly the expected length found in
// OCR text, preferring the last complete block. It does not repair anything.
func FindLines(text string) []string {
	var td3, td1 []string
	for _, raw := range strings.Split(text, "\n") {
		l := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
		if !mrzCharset.MatchString(l) || !strings.Contains(l, "<") {
			continue
		}
		switch len(l) {
		case td3LineLen:
			td3 = append(td3, l)
		case td1LineLen:
			td1 = append(td1, l)
		}
	}
	if len(td3) >= 2 {
		return td3[len(td3)-2:]
	}
	if len(td1) >= 3 {
		return td1[len(td1)-3:]
	}
	return nil
}

// ParseManual scans free OCR text for two MRZ-shaped lines (longer than 30
// characters and containing '<'), repairs common misreads and decodes them
// with the TD3 field layout. It is the fallback when no exact block is found.
func ParseManual(text string) (*Record, error) {
	var candidates []string
	for _, raw := range strings.Split(text, "\n") {
		l := cleanLine(raw)
		if len(l) > manualMinLen && strings.Contains(l, "<") {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) < 2 {
		return nil, fmt.Errorf("%w: %d candidate lines", ErrNoMRZ, len(candidates))
	}

	first, second := candidates[len(candidates)-2], candidates[len(candidates)-1]
	for i := 0; i < len(candidates)-1; i++ {
		if strings.HasPrefix(candidates[i], "P") {
			first, second = candidates[i], candidates[i+1]
			break
		}
	}

	l1 := fit(first)
	l2 := repairNumeric(fit(second))
	if !mrzCharset.MatchString(l1) || !mrzCharset.MatchString(l2) {
		return nil, fmt.Errorf("%w: unreadable characters", ErrMalformedMRZ)
	}
	r := parseTD3(l1, l2)
	if r.Surname == "" && r.Number == "" {
		return nil, fmt.Errorf("%w: no name or document number", ErrMalformedMRZ)
	}
	return r, nil
}

func cleanLine(raw string) string {
	l := strings.ToUpper(strings.TrimSpace(raw))
	l = fillerLookalikes.Replace(l)
	return fillerRunK.ReplaceAllStringFunc(l, func(run string) string {
		return strings.Repeat("<", len(run))
	})
}

// fit pads or truncates a line to the TD3 length and drops characters that
// can never appear in an MRZ.
func fit(l string) string {
	var b strings.Builder
	for i := 0; i < len(l); i++ {
		c := l[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '<' {
			b.WriteByte(c)
		}
	}
	out := b.String()
	if len(out) >= td3LineLen {
		return out[:td3LineLen]
	}
	return out + strings.Repeat("<", td3LineLen-len(out))
}

// repairNumeric fixes letter-for-digit confusions in the date and check
// digit positions of the second TD3 line.
func repairNumeric(l2 string) string {
	b := []byte(l2)
	for _, span := range [][2]int{{9, 10}, {13, 20}, {21, 28}, {43, 44}} {
		for i := span[0]; i < span[1]; i++ {
			if d, ok := digitLookalikes[b[i]]; ok {
				b[i] = d
			}
		}
	}
	return string(b)
}
