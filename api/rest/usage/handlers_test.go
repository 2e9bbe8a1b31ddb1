package usage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/studio"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// usage reader fake with an overridable body
type fakeReader struct {
	usageFn func(ctx context.Context, clientKey string) (studio.Usage, error)
}

func (f fakeReader) Usage(ctx context.Context, clientKey string) (studio.Usage, error) {
	return f.usageFn(ctx, clientKey)
}

func newTestRouter(t *testing.T, reader UsageReader) *gin.Engine {
	t.Helper()

	sessions, err := auth.NewSessionStore(auth.Options{Secret: "test-secret-key-for-testing"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(auth.ClientMiddleware(sessions))
	RegisterRoutes(router.Group("/api/v1"), reader)

	return router
}

func TestGetUsage(t *testing.T) {
	clientID := auth.NewClientID()

	var gotKey string
	router := newTestRouter(t, fakeReader{usageFn: func(_ context.Context, key string) (studio.Usage, error) {
		gotKey = key
		return studio.Usage{Count: 2, Date: "2026-10-18", Limit: 5, Remaining: 3}, nil
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil)
	req.Header.Set(auth.HeaderClientID, clientID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, clientID, gotKey)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, studio.Usage{Count: 2, Date: "2026-10-18", Limit: 5, Remaining: 3}, resp)
}

func TestGetUsage_StoreError(t *testing.T) {
	router := newTestRouter(t, fakeReader{usageFn: func(context.Context, string) (studio.Usage, error) {
		return studio.Usage{}, errors.New("redis: connection refused")
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/usage", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
