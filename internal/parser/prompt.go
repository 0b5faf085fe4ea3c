package parser

import "docfill/internal/domain"

// SystemPrompt is sent as the system message where the provider supports one.
const SystemPrompt = "You are a form data extraction assistant. Extract information accurately and return only valid JSON."

// MaxPromptText is the number of OCR characters sent with a text prompt.
const MaxPromptText = 4000

const bracketHint = `The OCR text comes from a fillable form. Form-field borders are often read as
bracket-like glyphs, so the filled-in value usually follows a label after [ or | or {. For example:
- "(First Name) [Nour" means the first name is "Nour"
- "Middle Name |Desouki" means the middle name is "Desouki"
- "Street Number {75122 blossom hill" means the street is "75122 blossom hill"
Labels printed on the form are NOT data. Only text after such a glyph, or clearly written next to a
label, is a value.`

const representativeSchema = `{
  "attorney_last_name": "family name or null",
  "attorney_first_name": "given name or null",
  "attorney_middle_name": "middle name or null",
  "firm_name": "law firm or organization or null",
  "bar_number": "bar number or null",
  "bar_state": "two letter state code of the licensing authority or null",
  "street_address": "street number and name or null",
  "suite_floor_apt": "suite, floor or apartment or null",
  "city": "city or null",
  "state": "two letter state code or null",
  "zip_code": "5 or 9 digit ZIP code or null",
  "country": "country or null",
  "daytime_phone": "digits or null",
  "mobile_phone": "digits or null",
  "email": "email address or null",
  "fax_number": "digits or null",
  "uscis_account_number": "USCIS online account number or null",
  "attorney_or_representative": "attorney" or "accredited_representative" or null
}`

const passportSchema = `{
  "surname": "family name, including AL-/EL- prefixes",
  "given_names": "first and middle names, excluding the surname",
  "passport_number": "complete passport number",
  "nationality": "full country name, e.g. United Arab Emirates",
  "country_code": "3-letter ISO code of the issuing country, e.g. ARE",
  "date_of_birth": "YYYY-MM-DD",
  "place_of_birth": "city or location",
  "sex": "M or F",
  "issue_date": "YYYY-MM-DD",
  "expiry_date": "YYYY-MM-DD"
}`

const passportRules = `Rules for Arabic names:
1. AL- and EL- prefixes are PART OF THE SURNAME.
   - "SALEM AL-ALI" gives surname "AL-ALI" and given_names "SALEM"
   - "MOHAMMED BIN RASHID AL MAKTOUM" gives surname "AL MAKTOUM" and given_names "MOHAMMED BIN RASHID"
2. Do not read Arabic script as random Latin letters such as "ONG" or "SALEHSALE".
3. Passport numbers may start with letters (e.g. X12A45678).
4. nationality is the full country name ("United Arab Emirates", not "ARE"); country_code is the 3-letter ISO code.`

// RepresentativeTextPrompt builds the prompt for OCR text of a representative form.
func RepresentativeTextPrompt(text string) string {
	return `Extract attorney or accredited representative information from this G-28 form OCR text.

` + bracketHint + `

Phone numbers have 10 digits. Email addresses contain @.

If this is a BLANK form with no data after the glyphs, return {"blank_form": true}.

Otherwise return ONLY a JSON object with this schema, using null for missing values:
` + representativeSchema + `

Form text:
` + truncateRunes(text, MaxPromptText)
}

// RepresentativeImagePrompt builds the vision prompt for a representative form.
func RepresentativeImagePrompt() string {
	return `Read this G-28 (Notice of Entry of Appearance as Attorney or Accredited Representative) form image
and extract the FILLED-IN values from Part 1 and Part 2. Printed labels are not data.

If the form is blank, return {"blank_form": true}.

Otherwise return ONLY a JSON object with this schema, using null for missing values:
` + representativeSchema
}

// PassportTextPrompt builds the prompt for OCR text of a passport data page.
func PassportTextPrompt(text string) string {
	return `Extract the holder's data from this passport OCR text. The passport may be from any
country, including the UAE, Saudi Arabia or other Arabic-speaking countries. The text may include
the machine readable zone (lines of capital letters, digits and < characters).

` + passportRules + `

Return ONLY a JSON object with this schema, using null for missing values:
` + passportSchema + `

Passport text:
` + truncateRunes(text, MaxPromptText)
}

// PassportImagePrompt builds the vision prompt for a passport data page.
func PassportImagePrompt() string {
	return `Analyze this passport image and extract ALL holder information. The passport may be from any
country, including the UAE, Saudi Arabia or other Arabic-speaking countries. Read both the printed
fields and the machine readable zone at the bottom.

` + passportRules + `

Return ONLY a JSON object with this schema, using null for missing values:
` + passportSchema
}

// TextPrompt returns the text prompt for a document type.
func TextPrompt(dt domain.DocumentType, text string) (string, error) {
	switch dt {
	case domain.DocumentTypePassport:
		return PassportTextPrompt(text), nil
	case domain.DocumentTypeRepresentative:
		return RepresentativeTextPrompt(text), nil
	}
	return "", domain.ErrUnknownDocumentType
}

// ImagePrompt returns the vision prompt for a document type.
func ImagePrompt(dt domain.DocumentType) (string, error) {
	switch dt {
	case domain.DocumentTypePassport:
		return PassportImagePrompt(), nil
	case domain.DocumentTypeRepresentative:
		return RepresentativeImagePrompt(), nil
	}
	return "", domain.ErrUnknownDocumentType
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
