package extractor

import "strings"

var usStates = map[string]string{
	"ALABAMA": "AL", "ALASKA": "AK", "ARIZONA": "AZ", "ARKANSAS": "AR", "CALIFORNIA": "CA",
	"COLORADO": "CO", "CONNECTICUT": "CT", "DELAWARE": "DE", "DISTRICT OF COLUMBIA": "DC",
	"FLORIDA": "FL", "GEORGIA": "GA", "HAWAII": "HI", "IDAHO": "ID", "ILLINOIS": "IL",
	"INDIANA": "IN", "IOWA": "IA", "KANSAS": "KS", "KENTUCKY": "KY", "LOUISIANA": "LA",
	"MAINE": "ME", "MARYLAND": "MD", "MASSACHUSETTS": "MA", "MICHIGAN": "MI", "MINNESOTA": "MN",
	"MISSISSIPPI": "MS", "MISSOURI": "MO", "MONTANA": "MT", "NEBRASKA": "NE", "NEVADA": "NV",
	"NEW HAMPSHIRE": "NH", "NEW JERSEY": "NJ", "NEW MEXICO": "NM", "NEW YORK": "NY",
	"NORTH CAROLINA": "NC", "NORTH DAKOTA": "ND", "OHIO": "OH", "OKLAHOMA": "OK", "OREGON": "OR",
	"PENNSYLVANIA": "PA", "PUERTO RICO": "PR", "RHODE ISLAND": "RI", "SOUTH CAROLINA": "SC",
	"SOUTH DAKOTA": "SD", "TENNESSEE": "TN", "TEXAS": "TX", "UTAH": "UT", "VERMONT": "VT",
	"VIRGINIA": "VA", "WASHINGTON": "WA", "WEST VIRGINIA": "WV", "WISCONSIN": "WI", "WYOMING": "WY",
	"GUAM": "GU", "VIRGIN ISLANDS": "VI",
}

var stateCodes = func() map[string]bool {
	m := make(map[string]bool, len(usStates))
	for _, code := range usStates {
		m[code] = true
	}
	return m
}()

// StateCode resolves a two-letter code or a full state name at the start of
// value. Unknown values report false.
func StateCode(value string) (string, bool) {
	tokens := strings.Fields(strings.ToUpper(value))
	if len(tokens) == 0 {
		return "", false
	}
	if len(tokens[0]) == 2 && stateCodes[tokens[0]] {
		return tokens[0], true
	}
	for n := len(tokens); n > 0; n-- {
		if code, ok := usStates[strings.Join(tokens[:n], " ")]; ok {
			return code, true
		}
	}
	return "", false
}

// StateName returns the title-cased name for a two-letter code, or "".
func StateName(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	for name, c := range usStates {
		if c == code {
			words := strings.Fields(strings.ToLower(name))
			for i, w := range words {
				if w != "of" {
					words[i] = strings.ToUpper(w[:1]) + w[1:]
				}
			}
			return strings.Join(words, " ")
		}
	}
	return ""
}
