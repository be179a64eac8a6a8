package llm

import (
	"Pantry-API/domain"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetRetriesUntilSuccess(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"ingredient":"milk"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, BaseDelay: 10 * time.Millisecond})

	var out struct {
		Ingredient string `json:"ingredient"`
	}
	start := time.Now()
	err := client.Get(context.Background(), "/llm/food/risky-check", nil, &out)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Equal(t, int32(3), attempts.Load())
	require.Equal(t, "milk", out.Ingredient)
	// Two backoff waits: base delay, then doubled.
	require.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, BaseDelay: time.Millisecond})

	err := client.Get(context.Background(), "/llm/risky-check", nil, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrLLMUnavailable)
	require.Contains(t, err.Error(), "llm api error")
	require.Equal(t, int32(3), attempts.Load())
}

func TestGetEncodesQuery(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	query := url.Values{}
	query.Set("ingredient", "peanut butter")
	require.NoError(t, client.Get(context.Background(), "/llm/food/risky-check", query, nil))
	require.Equal(t, "peanut butter", gotQuery.Get("ingredient"))
}

func TestPostSendsJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	var got payload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		fmt.Fprint(w, `{"name":"echo"}`)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	var out payload
	err := client.Post(context.Background(), "/llm/embedding/ingredient", payload{Name: "egg"}, &out)
	require.NoError(t, err)
	require.Equal(t, "egg", got.Name)
	require.Equal(t, "echo", out.Name)
}

func TestGetStopsBackoffOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, BaseDelay: 10 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := client.Get(ctx, "/llm/food/comment", nil, nil)
	require.Error(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestStreamDeliversChunksWithoutRetry(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		fmt.Fprint(w, "{\"seq\":1}\n{\"seq\":2}\n\n{\"seq\":3}\n")
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	var chunks []json.RawMessage
	err := client.Stream(context.Background(), http.MethodPost, "/llm/meal-plan", nil, func(chunk json.RawMessage) {
		chunks = append(chunks, chunk)
	})

	require.NoError(t, err)
	require.Len(t, chunks, 3)
	require.Equal(t, int32(1), attempts.Load())
	require.JSONEq(t, `{"seq":2}`, string(chunks[1]))
}

func TestStreamErrorIsNotRetried(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL})

	err := client.Stream(context.Background(), http.MethodPost, "/llm/meal-plan", nil, func(json.RawMessage) {})
	require.Error(t, err)
	require.Equal(t, int32(1), attempts.Load())
}
