package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docfill/internal/domain"
	"docfill/internal/service"
)

func TestFormatPassport(t *testing.T) {
	in := map[string]string{
		domain.FieldSurname:     "AL-ALI",
		domain.FieldGivenNames:  "SALEM AHMED",
		domain.FieldNationality: "ARE",
	}

	out := service.FormatPassport(in)

	assert.Equal(t, "SALEM", out[domain.FieldFirstName])
	assert.Equal(t, "AHMED", out[domain.FieldMiddleName])
	assert.Equal(t, "AL-ALI", out[domain.FieldLastName])
	assert.Equal(t, "SALEM AHMED AL-ALI", out[domain.FieldFullName])
	assert.Equal(t, "United Arab Emirates", out[domain.FieldNationality])
	assert.Equal(t, "ARE", out[domain.FieldCountryCode])
	assert.Equal(t, "ARE", in[domain.FieldNationality], "input must not be modified")
}

func TestFormatPassport_SurnameOnly(t *testing.T) {
	out := service.FormatPassport(map[string]string{domain.FieldSurname: "DOE"})

	assert.Equal(t, "DOE", out[domain.FieldFullName])
	assert.NotContains(t, out, domain.FieldFirstName)
	assert.NotContains(t, out, domain.FieldMiddleName)
}

func TestGroupRepresentative(t *testing.T) {
	view := service.GroupRepresentative(map[string]string{
		domain.FieldAttorneyLast: "Doe",
		domain.FieldFirmName:     "Doe Law",
		domain.FieldCity:         "Boston",
		domain.FieldBarNumber:    "BBO12345",
	})

	assert.Equal(t, map[string]string{"last": "Doe"}, view.AttorneyName)
	assert.Equal(t, "Doe Law", view.FirmName)
	assert.Equal(t, map[string]string{"city": "Boston"}, view.Address)
	assert.Nil(t, view.Contact)
	assert.Equal(t, map[string]string{"bar_number": "BBO12345"}, view.Eligibility)
}
