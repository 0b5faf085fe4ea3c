package merge

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Heuristics holds the tunable data behind the MRZ name suspicion check.
type Heuristics struct {
	// SuspiciousNames are tokens known to come out of misread Arabic-script MRZ lines.
	SuspiciousNames []string `yaml:"suspicious_names"`
	// MinNameLength is the shortest surname or given name accepted from the MRZ.
	MinNameLength int `yaml:"min_name_length"`
}

// DefaultHeuristics returns the built-in denylist and threshold.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		SuspiciousNames: []string{"ONG", "SALEHSALE"},
		MinNameLength:   2,
	}
}

// LoadHeuristics reads a YAML heuristics file. An empty path yields the
// defaults; keys missing from the file keep their default values.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()
	if path == "" {
		return h, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("reading heuristics file: %w", err)
	}

	var file struct {
		SuspiciousNames []string `yaml:"suspicious_names"`
		MinNameLength   *int     `yaml:"min_name_length"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return h, fmt.Errorf("parsing heuristics file %s: %w", path, err)
	}
	if file.SuspiciousNames != nil {
		h.SuspiciousNames = file.SuspiciousNames
	}
	if file.MinNameLength != nil {
		h.MinNameLength = *file.MinNameLength
	}
	return h, nil
}

// Suspicious reports whether an MRZ-derived name looks like a misread: it
// contains a denylisted token or is shorter than MinNameLength.
func (h Heuristics) Suspicious(names ...string) bool {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len([]rune(name)) < h.MinNameLength {
			return true
		}
		tokens := strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool { return !unicode.IsLetter(r) })
		for _, tok := range tokens {
			for _, bad := range h.SuspiciousNames {
				if tok == strings.ToUpper(bad) {
					return true
				}
			}
		}
	}
	return false
}
