package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docfill/internal/domain"
	"docfill/internal/parser"
	"docfill/internal/port"
	"docfill/mocks"
)

const filledFormText = `Part 1. Information About Attorney
2.a. Family Name (Last Name) [ SMITH
2.b. Given Name (First Name) [ JOHN
Name of Law Firm [ SMITH LAW GROUP
Email Address [ jsmith@smithlaw.com`

func TestLLMExtractor_ExtractFromText_Representative(t *testing.T) {
	gen := new(mocks.MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return in.Image == nil && in.MaxTokens == 1000 && in.Temperature == 0.1
	})).Return(&port.GenerateOutput{
		Text: "```json\n" + `{"attorney_last_name":"Smith","attorney_first_name":"John","daytime_phone":"(212) 555-1234",` +
			`"email":"jsmith@smithlaw.com","invoice_total":"99","state":null}` + "\n```",
		ModelUsed: "test-model",
	}, nil)

	rec, err := parser.NewLLMExtractor(gen).ExtractFromText(context.Background(), domain.DocumentTypeRepresentative, filledFormText)

	require.NoError(t, err)
	assert.Equal(t, domain.MethodOCRLLM, rec.Method)
	assert.Equal(t, parser.TextConfidence, rec.Confidence)
	assert.Equal(t, map[string]string{
		domain.FieldAttorneyLast:  "Smith",
		domain.FieldAttorneyFirst: "John",
		domain.FieldPhone:         "2125551234",
		domain.FieldEmail:         "jsmith@smithlaw.com",
	}, rec.Values())
	gen.AssertExpectations(t)
}

func TestLLMExtractor_ExtractFromText_BlankFormSkipsModel(t *testing.T) {
	gen := new(mocks.MockGenerator)
	blank := `2.a. Family Name (Last Name)
2.b. Given Name (First Name)
3.a. Street Number and Name`

	rec, err := parser.NewLLMExtractor(gen).ExtractFromText(context.Background(), domain.DocumentTypeRepresentative, blank)

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrBlankForm)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestLLMExtractor_ExtractFromText_ModelReportsBlank(t *testing.T) {
	gen := new(mocks.MockGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(&port.GenerateOutput{Text: `{"blank_form": true}`}, nil)

	_, err := parser.NewLLMExtractor(gen).ExtractFromText(context.Background(), domain.DocumentTypeRepresentative, filledFormText)

	assert.ErrorIs(t, err, domain.ErrBlankForm)
}

func TestLLMExtractor_Failures(t *testing.T) {
	tests := []struct {
		name   string
		output *port.GenerateOutput
		err    error
		reason string
	}{
		{"model error", nil, errors.New("boom"), "model call failed"},
		{"no json", &port.GenerateOutput{Text: "sorry"}, nil, "malformed response"},
		{"only unknown keys", &port.GenerateOutput{Text: `{"foo":"bar"}`}, nil, "no fields in response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := new(mocks.MockGenerator)
			gen.On("Generate", mock.Anything, mock.Anything).Return(tt.output, tt.err)

			rec, err := parser.NewLLMExtractor(gen).ExtractFromText(context.Background(), domain.DocumentTypePassport, "PASSPORT SMITH")

			assert.Nil(t, rec)
			var failure *domain.ExtractionFailure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, domain.MethodOCRLLM, failure.Strategy)
			assert.Equal(t, tt.reason, failure.Reason)
		})
	}
}

func TestLLMExtractor_NoGenerator(t *testing.T) {
	ex := parser.NewLLMExtractor(nil)

	assert.False(t, ex.Enabled())
	_, err := ex.ExtractFromText(context.Background(), domain.DocumentTypePassport, "text")
	assert.Error(t, err)
	_, err = ex.ExtractFromImage(context.Background(), domain.DocumentTypePassport, []byte{1}, "image/png")
	assert.Error(t, err)
}

func TestLLMExtractor_EmptyInputs(t *testing.T) {
	gen := new(mocks.MockGenerator)
	ex := parser.NewLLMExtractor(gen)

	_, err := ex.ExtractFromText(context.Background(), domain.DocumentTypePassport, "   ")
	assert.Error(t, err)
	_, err = ex.ExtractFromImage(context.Background(), domain.DocumentTypePassport, nil, "image/png")
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestLLMExtractor_ExtractFromImage_Passport(t *testing.T) {
	gen := new(mocks.MockGenerator)
	img := []byte{0x89, 'P', 'N', 'G'}
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return len(in.Image) == 4 && in.MimeType == "image/png"
	})).Return(&port.GenerateOutput{
		Text: `{"surname":"AL-ALI","given_names":"SALEM AL-ALI","passport_number":"A1234567",` +
			`"nationality":"UAE","date_of_birth":"15/03/1985","sex":"male"}`,
	}, nil)

	rec, err := parser.NewLLMExtractor(gen).ExtractFromImage(context.Background(), domain.DocumentTypePassport, img, "image/png")

	require.NoError(t, err)
	assert.Equal(t, domain.MethodVisionLLM, rec.Method)
	assert.Equal(t, parser.VisionConfidence, rec.Confidence)
	assert.Equal(t, "SALEM", rec.Get(domain.FieldGivenNames))
	assert.Equal(t, "United Arab Emirates", rec.Get(domain.FieldNationality))
	assert.Equal(t, "ARE", rec.Get(domain.FieldCountryCode))
	assert.Equal(t, "1985-03-15", rec.Get(domain.FieldDateOfBirth))
	assert.Equal(t, "M", rec.Get(domain.FieldSex))
}
