package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/parser"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a":"b"}`, `{"a":"b"}`, true},
		{"code fence", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", `Here you go: {"a":{"b":2}} hope it helps`, `{"a":{"b":2}}`, true},
		{"brace in string", `{"a":"x}y"}`, `{"a":"x}y"}`, true},
		{"escaped quote", `{"a":"say \"}\""}`, `{"a":"say \"}\""}`, true},
		{"unbalanced then valid", `{ oops { "a": 1 }`, `{ "a": 1 }`, true},
		{"none", "no json here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parser.FirstJSONObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeFields_Scalars(t *testing.T) {
	fields, blank, err := parser.DecodeFields("```json\n" + `{
		"surname": " SMITH ",
		"given_names": null,
		"zip_code": 10001,
		"email": "",
		"city": "null",
		"state": "None",
		"nested": {"x": 1},
		"flag": true
	}` + "\n```")

	require.NoError(t, err)
	assert.False(t, blank)
	assert.Equal(t, map[string]string{"surname": "SMITH", "zip_code": "10001"}, fields)
}

func TestDecodeFields_BlankForm(t *testing.T) {
	fields, blank, err := parser.DecodeFields(`{"blank_form": true}`)

	require.NoError(t, err)
	assert.True(t, blank)
	assert.Nil(t, fields)
}

func TestDecodeFields_NoJSON(t *testing.T) {
	_, _, err := parser.DecodeFields("I could not read the document.")

	assert.ErrorIs(t, err, parser.ErrNoJSON)
}

func TestDecodeFields_Malformed(t *testing.T) {
	_, _, err := parser.DecodeFields(`{"a": tru}`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing LLM JSON output")
}
