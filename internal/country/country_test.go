package country_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docfill/internal/country"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"United Arab Emirates", "ARE"},
		{"uae", "ARE"},
		{"AE", "ARE"},
		{"ARE", "ARE"},
		{"united   states", "USA"},
		{"UNITED STATES OF AMERICA", "USA"},
		{"Republic of South Africa", "ZAF"},
		{"Emirati", "ARE"},
		{"Atlantis", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, country.CodeFor(tt.in))
		})
	}
}

func TestNameFor(t *testing.T) {
	assert.Equal(t, "United Arab Emirates", country.NameFor("ARE"))
	assert.Equal(t, "Ukraine", country.NameFor("ukr"))
	assert.Equal(t, "", country.NameFor("XXX"))
}

func TestRoundTrip_EveryCodeResolvesToItsName(t *testing.T) {
	for _, code := range []string{"USA", "GBR", "IND", "ARE", "LBN", "YEM", "ISL"} {
		name := country.NameFor(code)
		assert.NotEmpty(t, name, code)
		assert.Equal(t, code, country.CodeFor(name), name)
	}
}

func TestFind_PrefersLongestName(t *testing.T) {
	c, ok := country.Find("CITIZEN OF SOUTH AFRICA")
	assert.True(t, ok)
	assert.Equal(t, "ZAF", c.Code)
}

func TestIsCode(t *testing.T) {
	assert.True(t, country.IsCode("deu"))
	assert.False(t, country.IsCode("DE"))
}

func TestFind_RequiresWholeWords(t *testing.T) {
	_, ok := country.Find("ROMANIAN")
	assert.False(t, ok)
}
