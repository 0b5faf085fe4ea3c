// Package country holds the ISO 3166-1 alpha-3 table shared by the field
// validator and the LLM post-processor.
package country

import (
	"sort"
	"strings"
)

// Country is one entry of the table.
type Country struct {
	Code    string   // ISO 3166-1 alpha-3
	Alpha2  string   // ISO 3166-1 alpha-2
	Name    string   // English display name
	Aliases []string // upper-case alternate names and demonyms
}

var table = []Country{
	{"USA", "US", "United States", []string{"UNITED STATES OF AMERICA", "AMERICA", "AMERICAN"}},
	{"GBR", "GB", "United Kingdom", []string{"GREAT BRITAIN", "UK", "BRITISH", "BRITAIN"}},
	{"CAN", "CA", "Canada", []string{"CANADIAN"}},
	{"AUS", "AU", "Australia", []string{"AUSTRALIAN"}},
	{"NLD", "NL", "Netherlands", []string{"HOLLAND", "DUTCH"}},
	{"DEU", "DE", "Germany", []string{"GERMAN", "DEUTSCHLAND"}},
	{"FRA", "FR", "France", []string{"FRENCH", "FRANCAISE"}},
	{"ITA", "IT", "Italy", []string{"ITALIAN", "ITALIA"}},
	{"ESP", "ES", "Spain", []string{"SPANISH", "ESPANA"}},
	{"IND", "IN", "India", []string{"INDIAN", "REPUBLIC OF INDIA"}},
	{"CHN", "CN", "China", []string{"CHINESE", "PEOPLE'S REPUBLIC OF CHINA"}},
	{"JPN", "JP", "Japan", []string{"JAPANESE"}},
	{"KOR", "KR", "South Korea", []string{"KOREA", "REPUBLIC OF KOREA", "KOREAN"}},
	{"MEX", "MX", "Mexico", []string{"MEXICAN", "MEXICANA"}},
	{"BRA", "BR", "Brazil", []string{"BRAZILIAN", "BRASIL"}},
	{"ARG", "AR", "Argentina", []string{"ARGENTINE", "ARGENTINIAN"}},
	{"RUS", "RU", "Russia", []string{"RUSSIAN FEDERATION", "RUSSIAN"}},
	{"SAU", "SA", "Saudi Arabia", []string{"SAUDI"}},
	{"ARE", "AE", "United Arab Emirates", []string{"UAE", "U.A.E", "EMIRATES", "EMIRATI"}},
	{"EGY", "EG", "Egypt", []string{"EGYPTIAN"}},
	{"ZAF", "ZA", "South Africa", []string{"SOUTH AFRICAN"}},
	{"NGA", "NG", "Nigeria", []string{"NIGERIAN"}},
	{"KEN", "KE", "Kenya", []string{"KENYAN"}},
	{"MAR", "MA", "Morocco", []string{"MOROCCAN"}},
	{"POL", "PL", "Poland", []string{"POLISH"}},
	{"UKR", "UA", "Ukraine", []string{"UKRAINIAN"}},
	{"SWE", "SE", "Sweden", []string{"SWEDISH"}},
	{"NOR", "NO", "Norway", []string{"NORWEGIAN"}},
	{"DNK", "DK", "Denmark", []string{"DANISH"}},
	{"FIN", "FI", "Finland", []string{"FINNISH"}},
	{"ISL", "IS", "Iceland", []string{"ICELANDIC"}},
	{"IRL", "IE", "Ireland", []string{"IRISH"}},
	{"BEL", "BE", "Belgium", []string{"BELGIAN"}},
	{"CHE", "CH", "Switzerland", []string{"SWISS"}},
	{"AUT", "AT", "Austria", []string{"AUSTRIAN"}},
	{"PRT", "PT", "Portugal", []string{"PORTUGUESE"}},
	{"GRC", "GR", "Greece", []string{"GREEK", "HELLENIC REPUBLIC"}},
	{"TUR", "TR", "Turkey", []string{"TURKIYE", "TURKISH"}},
	{"ISR", "IL", "Israel", []string{"ISRAELI"}},
	{"THA", "TH", "Thailand", []string{"THAI"}},
	{"SGP", "SG", "Singapore", []string{"SINGAPOREAN"}},
	{"MYS", "MY", "Malaysia", []string{"MALAYSIAN"}},
	{"IDN", "ID", "Indonesia", []string{"INDONESIAN"}},
	{"PHL", "PH", "Philippines", []string{"FILIPINO", "PHILIPPINE"}},
	{"VNM", "VN", "Vietnam", []string{"VIET NAM", "VIETNAMESE"}},
	{"BGD", "BD", "Bangladesh", []string{"BANGLADESHI"}},
	{"PAK", "PK", "Pakistan", []string{"PAKISTANI"}},
	{"AFG", "AF", "Afghanistan", []string{"AFGHAN"}},
	{"IRN", "IR", "Iran", []string{"IRANIAN", "ISLAMIC REPUBLIC OF IRAN"}},
	{"IRQ", "IQ", "Iraq", []string{"IRAQI"}},
	{"SYR", "SY", "Syria", []string{"SYRIAN", "SYRIAN ARAB REPUBLIC"}},
	{"YEM", "YE", "Yemen", []string{"YEMENI"}},
	{"KWT", "KW", "Kuwait", []string{"KUWAITI"}},
	{"QAT", "QA", "Qatar", []string{"QATARI"}},
	{"BHR", "BH", "Bahrain", []string{"BAHRAINI"}},
	{"OMN", "OM", "Oman", []string{"OMANI"}},
	{"JOR", "JO", "Jordan", []string{"JORDANIAN"}},
	{"LBN", "LB", "Lebanon", []string{"LEBANESE"}},
}

var (
	byCode  = map[string]*Country{}
	byName  = map[string]*Country{}
	needles []needle
)

type needle struct {
	text    string
	country *Country
}

func init() {
	for i := range table {
		c := &table[i]
		byCode[c.Code] = c
		byName[c.Code] = c
		byName[c.Alpha2] = c
		byName[strings.ToUpper(c.Name)] = c
		for _, a := range c.Aliases {
			byName[a] = c
		}
	}
	// Substring search only uses names long enough not to collide with
	// fragments of other words; longest first so "SOUTH AFRICA" beats "AFRICA".
	for name, c := range byName {
		if len(name) >= 4 {
			needles = append(needles, needle{text: name, country: c})
		}
	}
	sort.Slice(needles, func(i, j int) bool {
		if len(needles[i].text) != len(needles[j].text) {
			return len(needles[i].text) > len(needles[j].text)
		}
		return needles[i].text < needles[j].text
	})
}

// Lookup returns the entry for an exact code, alpha-2 code, name or alias.
func Lookup(value string) (Country, bool) {
	c, ok := byName[normalize(value)]
	if !ok {
		return Country{}, false
	}
	return *c, true
}

// CodeFor returns the alpha-3 code for a name, alias or code, or "" if unknown.
// When no exact entry exists, a table name contained in value is accepted.
func CodeFor(value string) string {
	if c, ok := Lookup(value); ok {
		return c.Code
	}
	if c, ok := Find(value); ok {
		return c.Code
	}
	return ""
}

// NameFor returns the display name for an alpha-3 code, or "" if unknown.
func NameFor(code string) string {
	if c, ok := byCode[normalize(code)]; ok {
		return c.Name
	}
	return ""
}

// Find returns the first table entry whose name or alias occurs inside value.
func Find(value string) (Country, bool) {
	v := normalize(value)
	if v == "" {
		return Country{}, false
	}
	for _, n := range needles {
		if containsWord(v, n.text) {
			return *n.country, true
		}
	}
	return Country{}, false
}

// containsWord reports whether word occurs in s bounded by non-letters, so
// "OMAN" does not match inside "ROMANIA".
func containsWord(s, word string) bool {
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(word)
		if (start == 0 || !isLetter(s[start-1])) && (end == len(s) || !isLetter(s[end])) {
			return true
		}
		from = start + 1
	}
	return false
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// IsCode reports whether value is a known alpha-3 code.
func IsCode(value string) bool {
	_, ok := byCode[normalize(value)]
	return ok
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
