package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfill/internal/config"
	"docfill/internal/parser"
	"docfill/internal/parser/gemini"
	"docfill/internal/port"
)

func newTestGenerator(serverURL string) *gemini.Generator {
	return gemini.NewGeneratorWithEndpoint(&config.ParserProviderConfig{
		Provider:     "gemini",
		APIKey:       "test-api-key",
		DefaultModel: "gemini-2.5-flash",
	}, serverURL)
}

func successResponse(parts ...string) map[string]interface{} {
	ps := make([]map[string]interface{}, 0, len(parts))
	for _, p := range parts {
		ps = append(ps, map[string]interface{}{"text": p})
	}
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": ps}, "finishReason": "STOP"},
		},
	}
}

func TestGenerator_ImageRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))

		sys := reqBody["systemInstruction"].(map[string]interface{})["parts"].([]interface{})[0].(map[string]interface{})
		assert.Equal(t, parser.SystemPrompt, sys["text"])

		parts := reqBody["contents"].([]interface{})[0].(map[string]interface{})["parts"].([]interface{})
		assert.Len(t, parts, 2)
		inline := parts[0].(map[string]interface{})["inline_data"].(map[string]interface{})
		assert.Equal(t, "image/jpeg", inline["mime_type"])
		assert.Equal(t, "read passport", parts[1].(map[string]interface{})["text"])

		genConfig := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, "application/json", genConfig["responseMimeType"])
		assert.Equal(t, float64(1000), genConfig["maxOutputTokens"])
		assert.Equal(t, 0.1, genConfig["temperature"])

		_ = json.NewEncoder(w).Encode(successResponse(`{"surname":`, `"AL-ALI"}`))
	}))
	defer server.Close()

	out, err := newTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{
		Prompt: "read passport", Image: []byte{0xff, 0xd8}, MimeType: "image/jpeg", Temperature: 0.1, MaxTokens: 1000,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"surname":"AL-ALI"}`, out.Text)
	assert.Equal(t, "gemini-2.5-flash", out.ModelUsed)
}

func TestGenerator_UnsupportedMimeType(t *testing.T) {
	_, err := newTestGenerator("http://127.0.0.1:0").Generate(context.Background(), port.GenerateInput{
		Prompt: "x", Image: []byte("GIF89a"), MimeType: "image/gif",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestGenerator_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{Prompt: "x"})

	var rlErr *parser.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Equal(t, float64(60), rlErr.RetryAfter.Seconds())
}

func TestGenerator_ResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no candidates", `{"candidates":[]}`, "no candidates"},
		{"no parts", `{"candidates":[{"content":{"parts":[]}}]}`, "no parts"},
		{"truncated", `{"candidates":[{"content":{"parts":[{"text":"{"}]},"finishReason":"MAX_TOKENS"}]}`, "truncated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestGenerator(server.URL).Generate(context.Background(), port.GenerateInput{Prompt: "x"})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
