package formmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docfill/internal/domain"
	"docfill/internal/formmap"
)

func merged(values map[string]string) *domain.MergedRecord {
	rec := domain.NewExtractedRecord(domain.MethodMRZ, 0.9, values)
	return &domain.MergedRecord{Fields: rec.Fields, Confidence: rec.Confidence, Method: string(rec.Method)}
}

func TestMap_Full(t *testing.T) {
	passport := merged(map[string]string{
		domain.FieldSurname:        "AL-ALI",
		domain.FieldGivenNames:     "SALEM AHMED",
		domain.FieldPassportNumber: "A1234567",
		domain.FieldNationality:    "United Arab Emirates",
		domain.FieldCountryCode:    "ARE",
		domain.FieldDateOfBirth:    "1985-03-15",
		domain.FieldIssueDate:      "2021-03-15",
		domain.FieldExpiryDate:     "2031-03-14",
		domain.FieldSex:            "M",
		domain.FieldPlaceOfBirth:   "DUBAI",
	})
	rep := merged(map[string]string{
		domain.FieldAttorneyLast:  "Smith",
		domain.FieldAttorneyFirst: "John",
		domain.FieldFirmName:      "Smith & Associates Law Firm",
		domain.FieldStreet:        "123 Broadway",
		domain.FieldSuite:         "Suite 1500",
		domain.FieldCity:          "New York",
		domain.FieldState:         "NY",
		domain.FieldZip:           "10001",
		domain.FieldCountry:       "United States",
		domain.FieldPhone:         "2125551234",
		domain.FieldEmail:         "jsmith@smithlaw.com",
		domain.FieldBarNumber:     "NY123456",
		domain.FieldBarState:      "NY",
		domain.FieldUSCISAccount:  "A12345678",
		domain.FieldEligibility:   string(domain.EligibilityAttorney),
	})

	got := formmap.Map(passport, rep)

	assert.Equal(t, domain.FormFieldMap{
		"family-name":          "AL-ALI",
		"given-name":           "SALEM",
		"middle-name":          "AHMED",
		"passport-number":      "A1234567",
		"country":              "ARE",
		"nationality":          "United Arab Emirates",
		"date-of-birth":        "1985-03-15",
		"passport-issue-date":  "2021-03-15",
		"passport-expiry":      "2031-03-14",
		"passport-sex":         "M",
		"place-of-birth":       "DUBAI",
		"attorney-family-name": "Smith",
		"attorney-given-name":  "John",
		"attorney-middle-name": "AHMED",
		"street-number":        "123",
		"street-name":          "Broadway",
		"apt-number":           "Suite 1500",
		"city":                 "New York",
		"state":                "NY",
		"zip":                  "10001",
		"address-country":      "United States",
		"daytime-phone":        "2125551234",
		"email":                "jsmith@smithlaw.com",
		"firm-name":            "Smith & Associates Law Firm",
		"bar-number":           "NY123456",
		"licensing-authority":  "NY",
		"online-account":       "A12345678",
		"eligibility":          "attorney",
	}, got)
}

func TestMap_RepresentativeCityWithoutPassportCity(t *testing.T) {
	got := formmap.Map(merged(map[string]string{domain.FieldSurname: "DOE"}), merged(map[string]string{domain.FieldCity: "New York"}))

	assert.Equal(t, "New York", got["city"])
}

func TestMap_MissingFieldsAreOmitted(t *testing.T) {
	got := formmap.Map(merged(map[string]string{domain.FieldSurname: "DOE"}), merged(map[string]string{domain.FieldEmail: "a@b.com"}))

	_, hasCity := got["city"]
	assert.False(t, hasCity)
	for k, v := range got {
		assert.NotEmpty(t, v, k)
	}
}

func TestMap_PassportOnlyFallsBackForAttorneyName(t *testing.T) {
	got := formmap.Map(merged(map[string]string{
		domain.FieldSurname:    "ERIKSSON",
		domain.FieldFirstName:  "ANNA",
		domain.FieldMiddleName: "MARIA",
	}), nil)

	assert.Equal(t, "ERIKSSON", got["attorney-family-name"])
	assert.Equal(t, "ANNA", got["attorney-given-name"])
	assert.Equal(t, "MARIA", got["attorney-middle-name"])
	assert.Equal(t, "ERIKSSON", got["family-name"])
	assert.Equal(t, "ANNA", got["given-name"])
	assert.Equal(t, "MARIA", got["middle-name"])
}

func TestMap_PassportFieldsIgnoreRepresentative(t *testing.T) {
	got := formmap.Map(nil, merged(map[string]string{
		domain.FieldAttorneyLast: "Smith",
		domain.FieldStreet:       "Broadway",
	}))

	_, hasFamily := got["family-name"]
	assert.False(t, hasFamily)
	assert.Equal(t, "Smith", got["attorney-family-name"])
	assert.Equal(t, "Broadway", got["street-number"])
	_, hasStreetName := got["street-name"]
	assert.False(t, hasStreetName)
}

func TestMap_BothNil(t *testing.T) {
	assert.Empty(t, formmap.Map(nil, nil))
}

func TestMap_CountryFallsBackToNationality(t *testing.T) {
	got := formmap.Map(merged(map[string]string{domain.FieldNationality: "India"}), nil)

	assert.Equal(t, "India", got["country"])
}

func TestDestinations(t *testing.T) {
	dests := formmap.Destinations()

	assert.Len(t, dests, 30)
	assert.Equal(t, "family-name", dests[0])
	assert.Contains(t, dests, "licensing-authority")
}
