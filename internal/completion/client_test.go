package completion

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

func TestComplete_EmptyPromptFailsBeforeNetwork(t *testing.T) {
	client := New("http://127.0.0.1:1", "key", "", 0)

	_, err := client.Complete(context.Background(), "   \n\t", Options{})

	var invalidErr *InvalidArgumentError
	require.ErrorAs(t, err, &invalidErr)
}

func TestComplete_MissingCredentialFailsBeforeNetwork(t *testing.T) {
	client := New("http://127.0.0.1:1", "", "", 0)

	_, err := client.Complete(context.Background(), "prompt", Options{})

	var credErr *MissingCredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestComplete_SendsExpectedRequest(t *testing.T) {
	var got requestPayload
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"output_text": "the narrative"})
	}))
	defer server.Close()

	client := New(server.URL, "secret-key", "gpt-4o-mini", time.Second)

	text, err := client.Complete(context.Background(), "summarize the run", Options{})
	require.NoError(t, err)

	assert.Equal(t, "the narrative", text)
	assert.Equal(t, "Bearer secret-key", auth)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, "summarize the run", got.Input)
	assert.NotEmpty(t, got.Instructions)
	assert.InDelta(t, 0.3, got.Temperature, 1e-9)
}

func TestComplete_OptionsOverrideModel(t *testing.T) {
	var got requestPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]any{"output_text": "ok"})
	}))
	defer server.Close()

	client := New(server.URL, "key", "gpt-4o-mini", time.Second)

	_, err := client.Complete(context.Background(), "prompt", Options{Model: "gpt-4.1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", got.Model)
}

func TestComplete_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := New(server.URL, "key", "", time.Second)

	_, err := client.Complete(context.Background(), "prompt", Options{})

	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.Status)
	assert.Contains(t, upstreamErr.Body, "rate limited")
}

func TestComplete_TimeoutIsDistinct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]any{"output_text": "too late"})
	}))
	defer server.Close()

	client := New(server.URL, "key", "", time.Second)

	start := time.Now()
	_, err := client.Complete(context.Background(), "prompt", Options{Timeout: 50 * time.Millisecond})
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 50*time.Millisecond, timeoutErr.Timeout)
	assert.Less(t, elapsed, 150*time.Millisecond, "request must be aborted at the bound")
}

func TestComplete_EmptyAnswerIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"output": []any{}})
	}))
	defer server.Close()

	client := New(server.URL, "key", "", time.Second)

	text, err := client.Complete(context.Background(), "prompt", Options{})
	require.NoError(t, err)
	assert.Equal(t, "", text)
}
