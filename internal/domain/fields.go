package domain

// Passport field vocabulary.
const (
	FieldSurname        = "surname"
	FieldGivenNames     = "given_names"
	FieldPassportNumber = "passport_number"
	FieldDateOfBirth    = "date_of_birth"
	FieldNationality    = "nationality"
	FieldCountryCode    = "country_code"
	FieldSex            = "sex"
	FieldIssueDate      = "issue_date"
	FieldExpiryDate     = "expiry_date"
	FieldPlaceOfBirth   = "place_of_birth"
)

// Derived passport output fields, added when a passport record is formatted.
const (
	FieldFullName   = "full_name"
	FieldFirstName  = "first_name"
	FieldMiddleName = "middle_name"
	FieldLastName   = "last_name"
)

// Representative (G-28) field vocabulary.
const (
	FieldAttorneyLast   = "attorney_last_name"
	FieldAttorneyFirst  = "attorney_first_name"
	FieldAttorneyMiddle = "attorney_middle_name"
	FieldFirmName       = "firm_name"
	FieldStreet         = "street_address"
	FieldSuite          = "suite_floor_apt"
	FieldCity           = "city"
	FieldState          = "state"
	FieldZip            = "zip_code"
	FieldCountry        = "country"
	FieldPhone          = "daytime_phone"
	FieldMobile         = "mobile_phone"
	FieldEmail          = "email"
	FieldFax            = "fax_number"
	FieldBarNumber      = "bar_number"
	FieldBarState       = "bar_state"
	FieldUSCISAccount   = "uscis_account_number"
	FieldEligibility    = "attorney_or_representative"
)

// PassportFields returns the passport vocabulary in output order.
func PassportFields() []string {
	return []string{
		FieldSurname,
		FieldGivenNames,
		FieldPassportNumber,
		FieldDateOfBirth,
		FieldNationality,
		FieldCountryCode,
		FieldSex,
		FieldIssueDate,
		FieldExpiryDate,
		FieldPlaceOfBirth,
	}
}

// RepresentativeFields returns the representative-form vocabulary in output order.
func RepresentativeFields() []string {
	return []string{
		FieldAttorneyLast,
		FieldAttorneyFirst,
		FieldAttorneyMiddle,
		FieldFirmName,
		FieldStreet,
		FieldSuite,
		FieldCity,
		FieldState,
		FieldZip,
		FieldCountry,
		FieldPhone,
		FieldMobile,
		FieldEmail,
		FieldFax,
		FieldBarNumber,
		FieldBarState,
		FieldUSCISAccount,
		FieldEligibility,
	}
}

// FieldsFor returns the vocabulary of a document type.
func FieldsFor(dt DocumentType) []string {
	if dt == DocumentTypePassport {
		return PassportFields()
	}
	return RepresentativeFields()
}
