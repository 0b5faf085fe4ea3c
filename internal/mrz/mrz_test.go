package mrz_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/domain"
	"docfill/internal/mrz"
)

const (
	icaoLine1 = "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<"
	icaoLine2 = "L898902C36UTO7408122F1204159ZE184226B<<<<<10"

	uaeLine1 = "P<AREAL<ALI<<SALEM<<<<<<<<<<<<<<<<<<<<<<<<<<"
	uaeLine2 = "A1234567<6ARE8503150M3103142<<<<<<<<<<<<<<06"
)

var now = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)

func TestParse_TD3(t *testing.T) {
	rec, err := mrz.Parse([]string{icaoLine1, icaoLine2})
	require.NoError(t, err)

	assert.Equal(t, mrz.FormatTD3, rec.Format)
	assert.Equal(t, "P", rec.DocumentCode)
	assert.Equal(t, "UTO", rec.IssuingCountry)
	assert.Equal(t, "ERIKSSON", rec.Surname)
	assert.Equal(t, "ANNA MARIA", rec.GivenNames)
	assert.Equal(t, "L898902C3", rec.Number)
	assert.Equal(t, "UTO", rec.Nationality)
	assert.Equal(t, "740812", rec.BirthDate)
	assert.Equal(t, "F", rec.Sex)
	assert.Equal(t, "120415", rec.ExpiryDate)
	assert.Equal(t, "ZE184226B", rec.PersonalNumber)
	assert.True(t, rec.CheckDigitsValid)
	assert.True(t, rec.Complete())
}

func TestParse_TD1(t *testing.T) {
	rec, err := mrz.Parse([]string{
		"I<UTOD231458907<<<<<<<<<<<<<<<",
		"7408122F1204159UTO<<<<<<<<<<<6",
		"ERIKSSON<<ANNA<MARIA<<<<<<<<<<",
	})
	require.NoError(t, err)

	assert.Equal(t, mrz.FormatTD1, rec.Format)
	assert.Equal(t, "D23145890", rec.Number)
	assert.Equal(t, "ERIKSSON", rec.Surname)
	assert.Equal(t, "ANNA MARIA", rec.GivenNames)
	assert.Equal(t, "F", rec.Sex)
	assert.True(t, rec.CheckDigitsValid)
}

func TestParse_ArabicPrefixStaysInSurname(t *testing.T) {
	rec, err := mrz.Parse([]string{uaeLine1, uaeLine2})
	require.NoError(t, err)

	assert.Equal(t, "AL-ALI", rec.Surname)
	assert.Equal(t, "SALEM", rec.GivenNames)
	assert.Equal(t, "A1234567", rec.Number)
	assert.Equal(t, "M", rec.Sex)
	assert.True(t, rec.CheckDigitsValid)
}

func TestParse_BadCheckDigitStillParses(t *testing.T) {
	line2 := "L898902C35UTO7408122F1204159ZE184226B<<<<<10"
	rec, err := mrz.Parse([]string{icaoLine1, line2})
	require.NoError(t, err)

	assert.False(t, rec.CheckDigitsValid)
	assert.Equal(t, "L898902C3", rec.Number)
}

func TestParse_Rejects(t *testing.T) {
	_, err := mrz.Parse([]string{icaoLine1})
	assert.ErrorIs(t, err, mrz.ErrMalformedMRZ)

	_, err = mrz.Parse([]string{icaoLine1, "short<<"})
	assert.ErrorIs(t, err, mrz.ErrMalformedMRZ)

	_, err = mrz.Parse([]string{icaoLine1, "l898902c36UTO7408122F1204159ZE184226B<<<<<10"})
	assert.ErrorIs(t, err, mrz.ErrMalformedMRZ)
}

func TestToExtracted(t *testing.T) {
	rec, err := mrz.Parse([]string{uaeLine1, uaeLine2})
	require.NoError(t, err)

	out := mrz.ToExtracted(rec, domain.MethodMRZ, now)
	assert.Equal(t, domain.MethodMRZ, out.Method)
	assert.Equal(t, 0.98, out.Confidence)
	assert.Equal(t, "AL-ALI", out.Get(domain.FieldSurname))
	assert.Equal(t, "1985-03-15", out.Get(domain.FieldDateOfBirth))
	assert.Equal(t, "2031-03-14", out.Get(domain.FieldExpiryDate))
	assert.Equal(t, "ARE", out.Get(domain.FieldNationality))
	assert.Equal(t, "ARE", out.Get(domain.FieldCountryCode))

	manual := mrz.ToExtracted(rec, domain.MethodManualMRZ, now)
	assert.Equal(t, 0.85, manual.Confidence)
}

func TestToExtracted_IncompleteKeepsBaseConfidence(t *testing.T) {
	rec := &mrz.Record{Surname: "DOE", Number: "123456789"}

	out := mrz.ToExtracted(rec, domain.MethodMRZ, now)
	assert.Equal(t, 0.95, out.Confidence)
	assert.False(t, out.Has(domain.FieldDateOfBirth))
}

func TestExpandYear(t *testing.T) {
	assert.Equal(t, 2036, mrz.ExpandYear(36, now))
	assert.Equal(t, 1937, mrz.ExpandYear(37, now))
	assert.Equal(t, 2000, mrz.ExpandYear(0, now))
	assert.Equal(t, 1999, mrz.ExpandYear(99, now))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "1974-08-12", mrz.FormatDate("740812", now))
	assert.Equal(t, "2031-03-14", mrz.FormatDate("310314", now))
	assert.Equal(t, "", mrz.FormatDate("741312", now))
	assert.Equal(t, "", mrz.FormatDate("74081", now))
	assert.Equal(t, "", mrz.FormatDate("7408A2", now))
}

func TestDateRoundTrip(t *testing.T) {
	for year := now.Year() - 89; year <= now.Year()+10; year++ {
		compact := fmt.Sprintf("%02d0229", year%100)
		if year%4 != 0 {
			compact = fmt.Sprintf("%02d0615", year%100)
		}
		iso := mrz.FormatDate(compact, now)
		require.NotEmpty(t, iso, compact)
		assert.Equal(t, year, mustYear(t, iso), compact)
		assert.Equal(t, compact, mrz.CompactDate(iso), iso)
	}
}

func mustYear(t *testing.T, iso string) int {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", iso)
	require.NoError(t, err)
	return parsed.Year()
}

func TestCheckDigit(t *testing.T) {
	assert.Equal(t, byte('6'), mrz.CheckDigit("L898902C3"))
	assert.Equal(t, byte('2'), mrz.CheckDigit("740812"))
	assert.Equal(t, byte('9'), mrz.CheckDigit("120415"))
}
