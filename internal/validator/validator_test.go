package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/validator"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
}

func TestCategoryOf(t *testing.T) {
	v := validator.New()
	tests := map[string]validator.Category{
		"surname":              validator.CategoryName,
		"attorney_first_name":  validator.CategoryName,
		"Family":               validator.CategoryName,
		"email":                validator.CategoryEmail,
		"daytime_phone":        validator.CategoryPhone,
		"mobile_phone":         validator.CategoryPhone,
		"fax_number":           validator.CategoryPhone,
		"date_of_birth":        validator.CategoryDate,
		"expiry_date":          validator.CategoryDate,
		"passport_number":      validator.CategoryPassport,
		"zip_code":             validator.CategoryZip,
		"postal":               validator.CategoryZip,
		"bar_number":           validator.CategoryBarNumber,
		"nationality":          validator.CategoryCountry,
		"country_code":         validator.CategoryCountry,
		"firm_name":            validator.CategoryOrganization,
		"place_of_birth":       validator.CategoryText,
		"city":                 validator.CategoryText,
		"uscis_account_number": validator.CategoryText,
	}
	for field, want := range tests {
		assert.Equal(t, want, v.CategoryOf(field), field)
	}
}

func TestValidateAll_PassportRecord(t *testing.T) {
	v := validator.New(validator.WithClock(fixedClock))

	res := v.ValidateAll(map[string]string{
		"surname":         "AL-ALI",
		"given_names":     "SALEM",
		"passport_number": "x1234567",
		"date_of_birth":   "1985-03-15",
		"expiry_date":     "2031-03-14",
		"nationality":     "United Arab Emirates",
		"country_code":    "ARE",
		"sex":             "M",
		"place_of_birth":  "DUBAI",
		"issue_date":      "",
	})

	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "X1234567", res.Cleaned["passport_number"])
	assert.Equal(t, "ARE", res.Cleaned["nationality"])
	assert.Equal(t, "DUBAI", res.Cleaned["place_of_birth"])
	assert.Equal(t, "", res.Cleaned["issue_date"])
	assert.Len(t, res.Cleaned, 10)
}

func TestValidateAll_ErrorsAndWarningsAreDisjoint(t *testing.T) {
	v := validator.New(validator.WithClock(fixedClock))

	res := v.ValidateAll(map[string]string{
		"attorney_last_name": "Sm1th",
		"daytime_phone":      "12345",
		"bar_number":         "NY#1",
		"country":            "Wakanda",
		"zip_code":           "100015678",
		"email":              "bad@",
	})

	assert.Contains(t, res.Errors, "attorney_last_name")
	assert.Contains(t, res.Errors, "daytime_phone")
	assert.Contains(t, res.Errors, "email")
	assert.Contains(t, res.Warnings, "bar_number")
	assert.Contains(t, res.Warnings, "country")
	assert.Equal(t, "10001-5678", res.Cleaned["zip_code"])
	for field := range res.Errors {
		assert.NotContains(t, res.Warnings, field)
	}
}

func TestValidateAll_Idempotent(t *testing.T) {
	v := validator.New(validator.WithClock(fixedClock))
	input := map[string]string{
		"attorney_first_name": "  John ",
		"daytime_phone":       "212.555.0100",
		"mobile_phone":        "12125550101",
		"zip_code":            "100015678",
		"email":               "JOHN@FIRM.COM",
		"country":             "United States",
		"date_of_birth":       "03/15/1985",
		"passport_number":     "ab 123456",
		"bar_number":          "ny-123456",
		"firm_name":           "Smith  &  Associates",
	}

	first := v.ValidateAll(input)
	require.Empty(t, first.Errors)

	second := v.ValidateAll(first.Cleaned)
	assert.Equal(t, first.Cleaned, second.Cleaned)
	assert.Empty(t, second.Errors)
	assert.Empty(t, second.Warnings)
	assert.Equal(t, "Smith & Associates", second.Cleaned["firm_name"])
	assert.Equal(t, "+1 (212) 555-0101", second.Cleaned["mobile_phone"])
}

func TestValidateAll_ResetBetweenCalls(t *testing.T) {
	v := validator.New()

	first := v.ValidateAll(map[string]string{"email": "broken"})
	require.Len(t, first.Errors, 1)

	second := v.ValidateAll(map[string]string{"email": "ok@example.com"})
	assert.Empty(t, second.Errors)
	assert.Len(t, first.Errors, 1)
}

func TestStrictMode(t *testing.T) {
	input := map[string]string{"email": "broken", "city": "New York"}

	permissive := validator.New()
	res := permissive.ValidateAll(input)
	assert.True(t, permissive.Passed(res))
	assert.Equal(t, "broken", permissive.Usable(res)["email"])

	strict := validator.New(validator.WithStrict())
	res = strict.ValidateAll(input)
	assert.False(t, strict.Passed(res))
	usable := strict.Usable(res)
	assert.NotContains(t, usable, "email")
	assert.Equal(t, "New York", usable["city"])
}

func TestNormalizeDate(t *testing.T) {
	tests := map[string]string{
		"1985-03-15":       "1985-03-15",
		"15/03/1985":       "1985-03-15",
		"15.03.1985":       "1985-03-15",
		"03/15/1985":       "1985-03-15",
		"05/04/1985":       "1985-04-05",
		"1985/3/5":         "1985-03-05",
		"15 MAR 1985":      "1985-03-15",
		"15 MAR/MARS 1985": "1985-03-15",
		"15MAR1985":        "1985-03-15",
		"March 15, 1985":   "1985-03-15",
		"15 JUIN 1985":     "1985-06-15",
		"unknown":          "unknown",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, validator.NormalizeDate(in), in)
	}
}

func TestValidateAll_CleansValuesNotFieldNames(t *testing.T) {
	v := validator.New(validator.WithClock(fixedClock))

	res := v.ValidateAll(map[string]string{
		"surname":            "AL-ALI",
		"given_names":        "Salem  Omar",
		"attorney_last_name": "Doe",
		"daytime_phone":      "617-555-0100",
		"fax_number":         "6175550199",
		"firm_name":          "Doe  Law Group",
	})

	require.Empty(t, res.Errors)
	assert.Equal(t, "AL-ALI", res.Cleaned["surname"])
	assert.Equal(t, "Salem Omar", res.Cleaned["given_names"])
	assert.Equal(t, "Doe", res.Cleaned["attorney_last_name"])
	assert.Equal(t, "(617) 555-0100", res.Cleaned["daytime_phone"])
	assert.Equal(t, "(617) 555-0199", res.Cleaned["fax_number"])
	assert.Equal(t, "Doe Law Group", res.Cleaned["firm_name"])
}

func TestValidateAll_EmptyRequiredFields(t *testing.T) {
	v := validator.New()

	res := v.ValidateAll(map[string]string{
		"surname":         "",
		"passport_number": "",
		"email":           "",
		"daytime_phone":   "",
		"city":            "",
	})

	assert.Equal(t, "surname is required", res.Errors["surname"])
	assert.Equal(t, "Passport number is required", res.Errors["passport_number"])
	assert.Len(t, res.Errors, 2)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "", res.Cleaned["email"])
}
