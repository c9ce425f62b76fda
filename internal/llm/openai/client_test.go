package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/fda483/internal/common"
	"github.com/complianceworks/fda483/internal/llm"
)

func chatResponse(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func TestCompleteJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.InDelta(t, 0.3, body["temperature"], 1e-6)
		rf, ok := body["response_format"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "json_object", rf["type"])
		msgs, ok := body["messages"].([]any)
		require.True(t, ok)
		require.Len(t, msgs, 2)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatResponse(`{"firm": "Acme Pharma Inc", "fei": "3001234567"}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4o-mini"}, nil)

	out, err := c.CompleteJSON(context.Background(), llm.ChatRequest{
		System:      "Return only valid JSON.",
		User:        "Extract the firm.",
		Temperature: 0.3,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"firm": "Acme Pharma Inc", "fei": "3001234567"}`, string(out))
}

func TestCompleteJSONHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, err := c.CompleteJSON(context.Background(), llm.ChatRequest{User: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtraction))
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteJSONMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, err := c.CompleteJSON(context.Background(), llm.ChatRequest{User: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtraction))
}

func TestCompleteJSONNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, err := c.CompleteJSON(context.Background(), llm.ChatRequest{User: "hi"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExtraction))
	assert.Contains(t, err.Error(), "no choices")
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil)

	assert.Equal(t, "gpt-4o-mini", c.Model())
	assert.Equal(t, "https://api.openai.com/v1", c.cfg.BaseURL)
}
