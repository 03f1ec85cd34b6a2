package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqGenerateInference(t *testing.T) {
	var captured groqRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		resp := groqResponse{
			Choices: []groqChoice{
				{Message: Message{Role: "assistant", Content: "42"}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := &GroqClient{
		apiKey:     "test-key",
		httpClient: server.Client(),
		url:        server.URL,
		model:      "llama-3.3-70b-versatile",
	}

	var got string
	err := client.GenerateInference(t.Context(),
		[]Message{{Role: RoleHuman, Content: "meaning of life?"}},
		func(chunk string) error { got = chunk; return nil },
		WithSystemPrompt("answer tersely"),
		WithTemperature(0.2),
	)

	require.NoError(t, err)
	assert.Equal(t, "42", got)

	// system prompt travels as the leading message, roles normalized
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, 0.2, captured.Temperature)
}

func TestGroqSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &GroqClient{
		apiKey:     "test-key",
		httpClient: server.Client(),
		url:        server.URL,
		model:      "llama-3.3-70b-versatile",
	}

	err := client.GenerateInference(t.Context(), []Message{{Role: RoleHuman, Content: "hi"}},
		func(string) error { return nil })
	assert.ErrorContains(t, err, "status 429")
}
