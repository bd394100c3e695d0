package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderSelection(t *testing.T) {
	for _, name := range []string{"anthropic", "openai", "gemini"} {
		p, err := NewProvider(ProviderConfig{Name: name, APIKey: "k", Model: "m"}, time.Second)
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := NewProvider(ProviderConfig{Name: "anthropic", Model: "m"}, time.Second)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewProvider(ProviderConfig{Name: "mystery", APIKey: "k"}, time.Second)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnthropicWireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-sonnet-4-5", req["model"])

		fmt.Fprint(w, `{"content":[{"type":"text","text":".fg-input{color:red}"}]}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{
		Name: "anthropic", APIKey: "test-key", Model: "claude-sonnet-4-5", BaseURL: srv.URL,
	}, time.Second)
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, ".fg-input{color:red}", out)
}

func TestOpenAIWireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices":[{"message":{"content":".fg-input{color:blue}"}}]}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{
		Name: "openai", APIKey: "test-key", Model: "gpt-4o", BaseURL: srv.URL,
	}, time.Second)
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, ".fg-input{color:blue}", out)
}

func TestGeminiWireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":".fg-input{color:green}"}]}}]}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{
		Name: "gemini", APIKey: "test-key", Model: "gemini-pro", BaseURL: srv.URL,
	}, time.Second)
	require.NoError(t, err)

	out, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, ".fg-input{color:green}", out)
}

func TestProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":"overloaded"}`)
	}))
	defer srv.Close()

	p, err := NewProvider(ProviderConfig{
		Name: "anthropic", APIKey: "test-key", Model: "m", BaseURL: srv.URL,
	}, time.Second)
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
