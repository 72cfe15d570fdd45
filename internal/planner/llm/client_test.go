package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildwise/buildwise-backend/internal/planner/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url, key string) *Client {
	return New(Options{
		BaseURL:           url,
		APIKey:            key,
		Model:             "llama-3.1-8b-instant",
		Temperature:       0.5,
		MaxTokens:         4096,
		Timeout:           5 * time.Second,
		RequestsPerMinute: 6000,
	})
}

func TestCompleteJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.1-8b-instant", req.Model)
		assert.Equal(t, 0.5, req.Temperature)
		assert.Equal(t, 4096, req.MaxTokens)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","choices":[{"index":0,"message":{"role":"assistant","content":"{\"summary\":\"ok\"}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL+"/", "test-key")
	out, err := client.CompleteJSON(context.Background(), []Message{
		{Role: RoleSystem, Content: "system"},
		{Role: RoleUser, Content: "user"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)
}

func TestCompleteJSON_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"tokens"}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "k").CompleteJSON(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelFailure))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Rate limit reached", apiErr.Message)
	assert.Equal(t, "tokens", apiErr.Type)
}

func TestCompleteJSON_PlainTextError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "k").CompleteJSON(context.Background(), nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "upstream down", apiErr.Message)
}

func TestCompleteJSON_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"c1","choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "k").CompleteJSON(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrModelFailure))
}

func TestCompleteJSON_NotConfigured(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1", "")
	assert.False(t, client.Configured())

	_, err := client.CompleteJSON(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrLLMNotConfigured))
}

func TestCompleteJSON_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL, "k").CompleteJSON(ctx, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrModelFailure))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
