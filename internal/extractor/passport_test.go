package extractor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docfill/internal/domain"
	"docfill/internal/extractor"
)

func TestPassportPatterns_LabelledDataPage(t *testing.T) {
	text := `PASSPORT
UNITED ARAB EMIRATES
Passport No. A1234567
Surname
AL-ALI
Given Names
SALEM
Nationality UNITED ARAB EMIRATES
Date of Birth 15 MAR 1985
Sex M
Place of Birth DUBAI
Date of Issue 15/03/2021
Date of Expiry 14/03/2031`

	got := extractor.NewPassportPatterns().Extract(text)

	assert.Equal(t, map[string]string{
		domain.FieldPassportNumber: "A1234567",
		domain.FieldSurname:        "AL-ALI",
		domain.FieldGivenNames:     "SALEM",
		domain.FieldNationality:    "UNITED ARAB EMIRATES",
		domain.FieldDateOfBirth:    "1985-03-15",
		domain.FieldSex:            "M",
		domain.FieldPlaceOfBirth:   "DUBAI",
		domain.FieldIssueDate:      "2021-03-15",
		domain.FieldExpiryDate:     "2031-03-14",
	}, got)
}

func TestPassportPatterns_BilingualLabels(t *testing.T) {
	text := "Surname / Nom AL-ALI\nSex / Sexe F\nDate of birth / Date de naissance 1985-03-15"

	got := extractor.NewPassportPatterns().Extract(text)

	assert.Equal(t, "AL-ALI", got[domain.FieldSurname])
	assert.Equal(t, "F", got[domain.FieldSex])
	assert.Equal(t, "1985-03-15", got[domain.FieldDateOfBirth])
}

func TestPassportPatterns_UppercaseLineFallback(t *testing.T) {
	text := `REPUBLIC OF UTOPIA
PASSPORT
ERIKSSON
ANNA MARIA
P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<`

	got := extractor.NewPassportPatterns().Extract(text)

	assert.Equal(t, "ERIKSSON", got[domain.FieldSurname])
	assert.Equal(t, "ANNA MARIA", got[domain.FieldGivenNames])
	assert.NotContains(t, got, domain.FieldPassportNumber)
}

func TestPassportPatterns_BareNumberAndWordSex(t *testing.T) {
	got := extractor.NewPassportPatterns().Extract("No label here X98765432\nGender: Female")

	assert.Equal(t, "X98765432", got[domain.FieldPassportNumber])
	assert.Equal(t, "F", got[domain.FieldSex])
}

func TestPassportPatterns_UnparseableDateOmitted(t *testing.T) {
	got := extractor.NewPassportPatterns().Extract("Date of Expiry 99/99/2031")
	assert.NotContains(t, got, domain.FieldExpiryDate)
}

func TestPassportPatterns_Empty(t *testing.T) {
	assert.Empty(t, extractor.NewPassportPatterns().Extract("\n \n"))
}
