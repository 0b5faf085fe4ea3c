// Package formmap turns merged passport and representative records into the
// flat destination-field map consumed by the form filler.
package formmap

import (
	"strings"

	"docfill/internal/domain"
	"docfill/internal/extractor"
)

// Destination field identifiers of the target form.
const (
	DestFamilyName         = "family-name"
	DestGivenName          = "given-name"
	DestMiddleName         = "middle-name"
	DestPassportNumber     = "passport-number"
	DestCountry            = "country"
	DestNationality        = "nationality"
	DestDateOfBirth        = "date-of-birth"
	DestIssueDate          = "passport-issue-date"
	DestExpiryDate         = "passport-expiry"
	DestSex                = "passport-sex"
	DestPlaceOfBirth       = "place-of-birth"
	DestAttorneyFamily     = "attorney-family-name"
	DestAttorneyGiven      = "attorney-given-name"
	DestAttorneyMiddle     = "attorney-middle-name"
	DestStreetNumber       = "street-number"
	DestStreetName         = "street-name"
	DestAptNumber          = "apt-number"
	DestCity               = "city"
	DestState              = "state"
	DestZip                = "zip"
	DestAddressCountry     = "address-country"
	DestDaytimePhone       = "daytime-phone"
	DestMobilePhone        = "mobile-phone"
	DestEmail              = "email"
	DestFax                = "fax-number"
	DestFirmName           = "firm-name"
	DestBarNumber          = "bar-number"
	DestLicensingAuthority = "licensing-authority"
	DestOnlineAccount      = "online-account"
	DestEligibility        = "eligibility"
)

type source func(r *domain.MergedRecord) string

func field(name string) source {
	return func(r *domain.MergedRecord) string { return r.Get(name) }
}

// entry resolves one destination field: the representative source wins and
// the passport source is the fallback. Either may be nil.
type entry struct {
	dest           string
	representative source
	passport       source
}

var table = []entry{
	{dest: DestFamilyName, passport: field(domain.FieldSurname)},
	{dest: DestGivenName, passport: firstName},
	{dest: DestMiddleName, passport: middleName},
	{dest: DestPassportNumber, passport: field(domain.FieldPassportNumber)},
	{dest: DestCountry, passport: passportCountry},
	{dest: DestNationality, passport: field(domain.FieldNationality)},
	{dest: DestDateOfBirth, passport: field(domain.FieldDateOfBirth)},
	{dest: DestIssueDate, passport: field(domain.FieldIssueDate)},
	{dest: DestExpiryDate, passport: field(domain.FieldExpiryDate)},
	{dest: DestSex, passport: field(domain.FieldSex)},
	{dest: DestPlaceOfBirth, passport: field(domain.FieldPlaceOfBirth)},

	{dest: DestAttorneyFamily, representative: field(domain.FieldAttorneyLast), passport: field(domain.FieldSurname)},
	{dest: DestAttorneyGiven, representative: field(domain.FieldAttorneyFirst), passport: firstName},
	{dest: DestAttorneyMiddle, representative: field(domain.FieldAttorneyMiddle), passport: middleName},
	{dest: DestStreetNumber, representative: streetNumber},
	{dest: DestStreetName, representative: streetName},
	{dest: DestAptNumber, representative: field(domain.FieldSuite)},
	{dest: DestCity, representative: field(domain.FieldCity)},
	{dest: DestState, representative: field(domain.FieldState)},
	{dest: DestZip, representative: field(domain.FieldZip)},
	{dest: DestAddressCountry, representative: field(domain.FieldCountry)},
	{dest: DestDaytimePhone, representative: field(domain.FieldPhone)},
	{dest: DestMobilePhone, representative: field(domain.FieldMobile)},
	{dest: DestEmail, representative: field(domain.FieldEmail)},
	{dest: DestFax, representative: field(domain.FieldFax)},
	{dest: DestFirmName, representative: field(domain.FieldFirmName)},
	{dest: DestBarNumber, representative: field(domain.FieldBarNumber)},
	{dest: DestLicensingAuthority, representative: field(domain.FieldBarState)},
	{dest: DestOnlineAccount, representative: field(domain.FieldUSCISAccount)},
	{dest: DestEligibility, representative: field(domain.FieldEligibility)},
}

// Map builds the destination map from either or both records. Fields with no
// resolved value are left out.
func Map(passport, representative *domain.MergedRecord) domain.FormFieldMap {
	out := make(domain.FormFieldMap, len(table))
	for _, e := range table {
		var v string
		if e.representative != nil {
			v = strings.TrimSpace(e.representative(representative))
		}
		if v == "" && e.passport != nil {
			v = strings.TrimSpace(e.passport(passport))
		}
		if v != "" {
			out[e.dest] = v
		}
	}
	return out
}

// Destinations lists every destination identifier in table order.
func Destinations() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.dest
	}
	return out
}

func firstName(r *domain.MergedRecord) string {
	if v := r.Get(domain.FieldFirstName); v != "" {
		return v
	}
	parts := strings.Fields(r.Get(domain.FieldGivenNames))
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func middleName(r *domain.MergedRecord) string {
	if v := r.Get(domain.FieldMiddleName); v != "" {
		return v
	}
	if r.Get(domain.FieldFirstName) != "" {
		return ""
	}
	parts := strings.Fields(r.Get(domain.FieldGivenNames))
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}

func passportCountry(r *domain.MergedRecord) string {
	if v := r.Get(domain.FieldCountryCode); v != "" {
		return v
	}
	return r.Get(domain.FieldNationality)
}

func streetNumber(r *domain.MergedRecord) string {
	n, _ := extractor.SplitStreet(r.Get(domain.FieldStreet))
	return n
}

func streetName(r *domain.MergedRecord) string {
	_, name := extractor.SplitStreet(r.Get(domain.FieldStreet))
	return name
}
