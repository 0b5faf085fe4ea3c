package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoJSON is returned when a model response holds no JSON object.
var ErrNoJSON = errors.New("no JSON object in response")

// FirstJSONObject returns the first balanced {...} block in s. Braces inside
// string literals are ignored, so prose and code fences around the object are
// skipped.
func FirstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	for start >= 0 {
		if end := matchBrace(s, start); end > 0 {
			return s[start : end+1], true
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

func matchBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// DecodeFields parses the first JSON object of a model response into a flat
// field map. Scalars are stringified; null and empty values are dropped. The
// second return reports the {"blank_form": true} sentinel.
func DecodeFields(response string) (map[string]string, bool, error) {
	block, ok := FirstJSONObject(response)
	if !ok {
		return nil, false, ErrNoJSON
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return nil, false, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(block, 500))
	}

	if blank, _ := raw["blank_form"].(bool); blank {
		return nil, true, nil
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case float64:
			s = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
			continue
		}
		out[k] = s
	}
	return out, false, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
