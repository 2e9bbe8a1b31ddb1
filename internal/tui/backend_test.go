package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "3f1c2a9e-8d4b-4c6e-9a7f-2b5d8e1c0f3a"

func newTestAPI(t *testing.T, handler http.HandlerFunc) *RemoteClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewRemoteClient(srv.URL+"/", testClientID)
}

func TestRemoteClient_Generate(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/generate", r.URL.Path)
		assert.Equal(t, testClientID, r.Header.Get(auth.HeaderClientID))

		var input content.BrandInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "Acme", input.BrandName)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"captions": []string{"a", "b", "c"},
			"hashtags": []string{"#Acme", "#tech"},
			"usage":    studio.Usage{Count: 3, Date: "2026-10-18", Limit: 5, Remaining: 2},
		})
	})

	result, err := client.Generate(context.Background(), content.BrandInput{BrandName: "Acme"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, result.Bundle.Captions)
	assert.Equal(t, []string{"#Acme", "#tech"}, result.Bundle.Hashtags)
	assert.Equal(t, 2, result.Usage.Remaining)
}

func TestRemoteClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"quota", http.StatusTooManyRequests, `{"error":"quota_exhausted","message":"limit"}`, usage.ErrQuotaExhausted},
		{"validation", http.StatusBadRequest, `{"error":"validation_failed","message":"m","details":"missing industry"}`, content.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Generate(context.Background(), content.BrandInput{})
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestRemoteClient_UnstructuredError(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := client.Usage(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRemoteClient_Usage(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/usage", r.URL.Path)
		_ = json.NewEncoder(w).Encode(studio.Usage{Count: 1, Date: "2026-10-18", Limit: 5, Remaining: 4})
	})

	u, err := client.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, studio.Usage{Count: 1, Date: "2026-10-18", Limit: 5, Remaining: 4}, u)
}

func TestLoadOrCreateClientID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "client_id")

	first, err := LoadOrCreateClientID(path)
	require.NoError(t, err)
	assert.True(t, auth.ValidClientID(first))

	second, err := LoadOrCreateClientID(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	third, err := LoadOrCreateClientID(path)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.True(t, auth.ValidClientID(third))
}
