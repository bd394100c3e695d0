package webhook

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

func TestSendSuccess(t *testing.T) {
	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewClient()
	res := client.Send(context.Background(), srv.URL, map[string]interface{}{
		"form_id": float64(3),
		"email":   "a@b.com",
	})

	assert.True(t, res.Success)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, `{"ok":true}`, res.Body)
	assert.Empty(t, res.Message)
	assert.Equal(t, "a@b.com", received["email"])
}

func TestSendNon2xx(t *testing.T) {
	for _, code := range []int{http.StatusMultipleChoices, http.StatusNotFound, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			w.Write([]byte("nope"))
		}))

		res := NewClient().Send(context.Background(), srv.URL, map[string]interface{}{})
		srv.Close()

		assert.False(t, res.Success, "status %d should not be a success", code)
		assert.Equal(t, code, res.Code)
		assert.Equal(t, "nope", res.Body)
	}
}

func TestSend2xxBoundary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	res := NewClient().Send(context.Background(), srv.URL, nil)
	assert.True(t, res.Success)
	assert.Equal(t, http.StatusAccepted, res.Code)
}

func TestSendTransportError(t *testing.T) {
	// nobody listening here
	res := NewClient().Send(context.Background(), "http://127.0.0.1:1", nil)

	assert.False(t, res.Success)
	assert.Zero(t, res.Code)
	assert.NotEmpty(t, res.Message)
}

func TestSendContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res := NewClient().Send(ctx, srv.URL, nil)

	assert.False(t, res.Success)
	assert.Zero(t, res.Code)
	assert.NotEmpty(t, res.Message)
}

func TestClientHasNoFixedTimeout(t *testing.T) {
	// the per-call context carries the configured deadline; a client-level
	// timeout would cap long form-configured timeouts
	assert.Zero(t, NewClient().httpClient.Timeout)
}

func TestSendOutlastsShortFixedTimeouts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(120 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res := NewClient().Send(ctx, srv.URL, nil)

	assert.True(t, res.Success)
}

func TestSendTruncatesLongBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i := 0; i < 1024; i++ {
			w.Write([]byte("0123456789abcdef"))
		}
	}))
	defer srv.Close()

	res := NewClient().Send(context.Background(), srv.URL, nil)
	assert.True(t, res.Success)
	assert.Len(t, res.Body, maxBodyBytes)
}
