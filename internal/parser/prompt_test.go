package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/domain"
	"docfill/internal/parser"
)

func TestTextPrompt(t *testing.T) {
	p, err := parser.TextPrompt(domain.DocumentTypeRepresentative, "FORM BODY")
	require.NoError(t, err)
	assert.Contains(t, p, "FORM BODY")
	assert.Contains(t, p, `{"blank_form": true}`)
	assert.Contains(t, p, domain.FieldAttorneyLast)

	p, err = parser.TextPrompt(domain.DocumentTypePassport, "PASSPORT BODY")
	require.NoError(t, err)
	assert.Contains(t, p, "PASSPORT BODY")
	assert.Contains(t, p, domain.FieldPassportNumber)

	_, err = parser.TextPrompt("visa", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestTextPrompt_TruncatesLongText(t *testing.T) {
	text := strings.Repeat("é", parser.MaxPromptText+50)

	p, err := parser.TextPrompt(domain.DocumentTypePassport, text)

	require.NoError(t, err)
	assert.Equal(t, parser.MaxPromptText, strings.Count(p, "é"))
}

func TestImagePrompt(t *testing.T) {
	p, err := parser.ImagePrompt(domain.DocumentTypeRepresentative)
	require.NoError(t, err)
	assert.Contains(t, p, "G-28")

	p, err = parser.ImagePrompt(domain.DocumentTypePassport)
	require.NoError(t, err)
	assert.Contains(t, p, "machine readable zone")

	_, err = parser.ImagePrompt("visa")
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}
