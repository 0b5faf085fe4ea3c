package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docfill/internal/domain"
	"docfill/internal/parser"
)

func TestPostProcess_Passport(t *testing.T) {
	in := map[string]string{
		domain.FieldSurname:     "AL-HASHIMI",
		domain.FieldGivenNames:  "Omar Al-Hashimi",
		domain.FieldDateOfBirth: "15/03/1985",
		domain.FieldIssueDate:   "2021-03-15",
		domain.FieldExpiryDate:  "14 MAR 2031",
		domain.FieldSex:         "Male",
		domain.FieldNationality: "UAE",
	}

	got := parser.PostProcess(domain.DocumentTypePassport, in)

	assert.Equal(t, "Omar", got[domain.FieldGivenNames])
	assert.Equal(t, "1985-03-15", got[domain.FieldDateOfBirth])
	assert.Equal(t, "2021-03-15", got[domain.FieldIssueDate])
	assert.Equal(t, "2031-03-14", got[domain.FieldExpiryDate])
	assert.Equal(t, "M", got[domain.FieldSex])
	assert.Equal(t, "United Arab Emirates", got[domain.FieldNationality])
	assert.Equal(t, "ARE", got[domain.FieldCountryCode])

	// input is not mutated
	assert.Equal(t, "Omar Al-Hashimi", in[domain.FieldGivenNames])
}

func TestPostProcess_PassportCountry(t *testing.T) {
	tests := []struct {
		name     string
		in       map[string]string
		wantNat  string
		wantCode string
	}{
		{"code as nationality", map[string]string{domain.FieldNationality: "IND"}, "India", "IND"},
		{"name derives code", map[string]string{domain.FieldNationality: "Saudi Arabia"}, "Saudi Arabia", "SAU"},
		{"code kept", map[string]string{domain.FieldNationality: "India", domain.FieldCountryCode: "ind"}, "India", "IND"},
		{"emirates overrides code", map[string]string{domain.FieldNationality: "Emirates", domain.FieldCountryCode: "SAU"}, "United Arab Emirates", "ARE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.PostProcess(domain.DocumentTypePassport, tt.in)
			assert.Equal(t, tt.wantNat, got[domain.FieldNationality])
			assert.Equal(t, tt.wantCode, got[domain.FieldCountryCode])
		})
	}
}

func TestPostProcess_PassportDropsUnknownSexAndSurnameOnlyGiven(t *testing.T) {
	got := parser.PostProcess(domain.DocumentTypePassport, map[string]string{
		domain.FieldSurname:    "LEE",
		domain.FieldGivenNames: "lee",
		domain.FieldSex:        "X",
	})

	assert.NotContains(t, got, domain.FieldGivenNames)
	assert.NotContains(t, got, domain.FieldSex)
	assert.Equal(t, "LEE", got[domain.FieldSurname])
}

func TestPostProcess_Representative(t *testing.T) {
	got := parser.PostProcess(domain.DocumentTypeRepresentative, map[string]string{
		domain.FieldPhone:       "+1 (212) 555-1234",
		domain.FieldMobile:      "555-1234",
		domain.FieldFax:         "212.555.1235 ext 9",
		domain.FieldState:       "New York",
		domain.FieldBarState:    "ca",
		domain.FieldEligibility: "I am an Attorney eligible to practice law",
		domain.FieldCity:        "New York",
	})

	assert.Equal(t, "2125551234", got[domain.FieldPhone])
	assert.NotContains(t, got, domain.FieldMobile)
	assert.Equal(t, "2125551235", got[domain.FieldFax])
	assert.Equal(t, "NY", got[domain.FieldState])
	assert.Equal(t, "CA", got[domain.FieldBarState])
	assert.Equal(t, string(domain.EligibilityAttorney), got[domain.FieldEligibility])
	assert.Equal(t, "New York", got[domain.FieldCity])
}

func TestPostProcess_RepresentativeEligibility(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"accredited_representative", string(domain.EligibilityRepresentative), true},
		{"Accredited Representative", string(domain.EligibilityRepresentative), true},
		{"attorney", string(domain.EligibilityAttorney), true},
		{"lawyer", string(domain.EligibilityAttorney), true},
		{"paralegal", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parser.PostProcess(domain.DocumentTypeRepresentative, map[string]string{domain.FieldEligibility: tt.in})
			v, ok := got[domain.FieldEligibility]
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}
