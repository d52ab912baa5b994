package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(endpoint string) *openAIClient {
	return &openAIClient{
		apiKey:     "test-key",
		model:      "gpt-4o-mini",
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", req["model"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Comida"}}]}`))
	}))
	defer server.Close()

	client := newTestOpenAIClient(server.URL)

	answer, err := client.Complete(context.Background(), "categorize this")

	require.NoError(t, err)
	assert.Equal(t, "Comida", answer)
}

func TestOpenAIClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit"}}`))
	}))
	defer server.Close()

	client := newTestOpenAIClient(server.URL)

	_, err := client.Complete(context.Background(), "categorize this")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestOpenAIClient_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestOpenAIClient(server.URL)

	_, err := client.Complete(context.Background(), "categorize this")

	assert.Error(t, err)
}

func TestNewClient_UnsupportedProvider(t *testing.T) {
	_, err := NewClient(Config{Provider: "mainframe", APIKey: "key"})

	assert.Error(t, err)
}
