package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/contentstudio/server/internal/config"
	apierrors "codeberg.org/contentstudio/server/internal/errors"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment:     "development",
		Port:            "0",
		UsageStore:      config.StoreMemory,
		SessionSecret:   "test-secret-key-for-testing",
		DailyLimit:      2,
		GenerationDelay: 0,
		Location:        time.UTC,
		RequestRate:     "100-M",
		CORSOrigins:     []string{"http://localhost:5173"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, err := NewServer(context.Background(), testConfig())
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	return srv
}

func TestRoutes_Health(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/api/v1/ping", "/api/v1/options"} {
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRoutes_GenerateUsesCookieIdentity(t *testing.T) {
	srv := newTestServer(t)
	body := `{"brand_name":"Acme","industry":"tech","target_audience":"developers"}`

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}

		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRoutes_CORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestInitializeServices_UnknownStoreFallsBackToMemory(t *testing.T) {
	cfg := testConfig()
	cfg.UsageStore = ""

	services, err := InitializeServices(context.Background(), cfg)
	require.NoError(t, err)
	defer services.Close()

	assert.Nil(t, services.Redis)
	assert.Nil(t, services.DB)
	assert.Equal(t, 2, services.Tracker.Limit())
}

func TestRoutes_UnknownPathNotFound(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/strudels", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodeNotFound, resp.Error)
	assert.Equal(t, "route not found", resp.Message)
}
