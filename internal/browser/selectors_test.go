package browser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"docfill/internal/browser"
	"docfill/internal/config"
	"docfill/internal/domain"
)

func TestSelectors(t *testing.T) {
	assert.Equal(t, []string{
		"#passport-number",
		"[name='passport-number']",
		"[id*='passport-number']",
		"[name*='passport-number']",
	}, browser.Selectors("passport-number"))
}

func TestOptionLabel(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"M", "Male"},
		{"f", "Female"},
		{"NY", "New York"},
		{"DC", "District of Columbia"},
		{"ARE", "United Arab Emirates"},
		{"Attorney", "Attorney"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, browser.OptionLabel(tt.value))
		})
	}
}

func TestRadioMatches(t *testing.T) {
	assert.True(t, browser.RadioMatches("M", "male"))
	assert.True(t, browser.RadioMatches("Female", "F"))
	assert.True(t, browser.RadioMatches("F", "f"))
	assert.False(t, browser.RadioMatches("M", "female"))
	assert.False(t, browser.RadioMatches("Male", "Mixed"))
	assert.False(t, browser.RadioMatches("", "M"))
}

func TestFill_RequiresURL(t *testing.T) {
	f := browser.NewFormFiller(config.BrowserConfig{Headless: true})

	_, err := f.Fill(context.Background(), "", domain.FormFieldMap{"city": "Boston"})

	assert.ErrorIs(t, err, domain.ErrFormFillerDisabled)
	assert.NoError(t, f.Close())
}
