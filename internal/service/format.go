package service

import (
	"strings"

	"docfill/internal/country"
	"docfill/internal/domain"
)

// FormatPassport adds the derived name fields and turns an ISO-3
// nationality into a country name. The input is not modified.
func FormatPassport(values map[string]string) map[string]string {
	out := make(map[string]string, len(values)+4)
	for k, v := range values {
		out[k] = v
	}

	surname := strings.TrimSpace(out[domain.FieldSurname])
	given := strings.Fields(out[domain.FieldGivenNames])

	var first, middle string
	if len(given) > 0 {
		first = given[0]
		middle = strings.Join(given[1:], " ")
	}

	var full []string
	for _, part := range []string{first, middle, surname} {
		if part != "" {
			full = append(full, part)
		}
	}

	setIfPresent(out, domain.FieldFirstName, first)
	setIfPresent(out, domain.FieldMiddleName, middle)
	setIfPresent(out, domain.FieldLastName, surname)
	setIfPresent(out, domain.FieldFullName, strings.Join(full, " "))

	if nat := out[domain.FieldNationality]; country.IsCode(nat) {
		if out[domain.FieldCountryCode] == "" {
			out[domain.FieldCountryCode] = strings.ToUpper(nat)
		}
		out[domain.FieldNationality] = country.NameFor(nat)
	}
	return out
}

// GroupRepresentative builds the grouped view of representative data.
func GroupRepresentative(values map[string]string) *domain.RepresentativeView {
	pick := func(pairs ...string) map[string]string {
		m := make(map[string]string)
		for i := 0; i+1 < len(pairs); i += 2 {
			if v := values[pairs[i+1]]; v != "" {
				m[pairs[i]] = v
			}
		}
		if len(m) == 0 {
			return nil
		}
		return m
	}

	return &domain.RepresentativeView{
		AttorneyName: pick(
			"last", domain.FieldAttorneyLast,
			"first", domain.FieldAttorneyFirst,
			"middle", domain.FieldAttorneyMiddle,
		),
		FirmName: values[domain.FieldFirmName],
		Address: pick(
			"street", domain.FieldStreet,
			"suite", domain.FieldSuite,
			"city", domain.FieldCity,
			"state", domain.FieldState,
			"zip", domain.FieldZip,
			"country", domain.FieldCountry,
		),
		Contact: pick(
			"phone", domain.FieldPhone,
			"mobile", domain.FieldMobile,
			"email", domain.FieldEmail,
			"fax", domain.FieldFax,
		),
		Eligibility: pick(
			"type", domain.FieldEligibility,
			"bar_number", domain.FieldBarNumber,
			"bar_state", domain.FieldBarState,
			"uscis_account", domain.FieldUSCISAccount,
		),
	}
}

func setIfPresent(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}
