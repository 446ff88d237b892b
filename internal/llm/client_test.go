package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadsense/internal/config"
)

func TestComplete(t *testing.T) {
	var gotAuth string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  hello there  "}}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.LLM{Endpoint: srv.URL, APIKey: "test-key", Model: "test-model"})
	content, err := c.Complete(context.Background(), "system prompt", "user prompt", 0.3)

	require.NoError(t, err)
	assert.Equal(t, "hello there", content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotPayload["model"])
	assert.Equal(t, 0.3, gotPayload["temperature"])
}

func TestComplete_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.LLM{Endpoint: srv.URL, APIKey: "test-key", Model: "test-model"})
	_, err := c.Complete(context.Background(), "s", "u", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestComplete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(config.LLM{Endpoint: srv.URL, APIKey: "test-key"})
	_, err := c.Complete(context.Background(), "s", "u", 0)

	require.Error(t, err)
}

func TestComplete_MissingKey(t *testing.T) {
	c := NewClient(config.LLM{Endpoint: "http://localhost"})
	_, err := c.Complete(context.Background(), "s", "u", 0)

	require.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "bare object", in: `{"a": 1}`, want: `{"a": 1}`},
		{name: "prose around it", in: `Sure! Here you go: {"a": 1} hope that helps`, want: `{"a": 1}`},
		{name: "markdown fence", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "nested braces", in: `{"a": {"b": 2}}`, want: `{"a": {"b": 2}}`},
		{name: "no object", in: "there is no json here", want: ""},
		{name: "unbalanced", in: `{"a": 1`, want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.in))
		})
	}
}
