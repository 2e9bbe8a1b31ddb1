package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"codeberg.org/contentstudio/server/internal/auth"
	"codeberg.org/contentstudio/server/internal/content"
	apierrors "codeberg.org/contentstudio/server/internal/errors"
	"codeberg.org/contentstudio/server/internal/notifications"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/usage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testClientID = "3f1c2a9e-8d4b-4c6e-9a7f-2b5d8e1c0f3a"

func init() {
	gin.SetMode(gin.TestMode)
}

// studio fake returning a fixed error
type failingStudio struct {
	err error
}

func (f failingStudio) Generate(context.Context, string, content.BrandInput) (*studio.Result, error) {
	return nil, f.err
}

func (failingStudio) Limit() int { return usage.MaxFreeUsage }

func newTestStudio(t *testing.T) (*studio.Studio, *usage.MemoryStore) {
	t.Helper()

	store := usage.NewMemoryStore()
	clock := usage.NewFakeClock(time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC))
	tracker := usage.NewTracker(store, clock, usage.WithLocation(time.UTC))
	gen := content.NewTemplateGenerator(content.WithDelay(content.NoDelay{}))

	return studio.New(tracker, gen), store
}

func newTestRouter(t *testing.T, s ContentStudio) *gin.Engine {
	t.Helper()

	sessions, err := auth.NewSessionStore(auth.Options{Secret: "test-secret-key-for-testing"})
	require.NoError(t, err)

	router := gin.New()
	router.Use(auth.ClientMiddleware(sessions))
	RegisterRoutes(router.Group("/api/v1"), s)

	return router
}

func post(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.HeaderClientID, testClientID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validBody = `{"brand_name":"Sarah's Cafe","industry":"food-beverage","target_audience":"young professionals"}`

func TestHandler_Success(t *testing.T) {
	s, _ := newTestStudio(t)
	router := newTestRouter(t, s)

	w := post(router, validBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Len(t, resp.Captions, 3)
	assert.Len(t, resp.CaptionLengths, 3)
	assert.Len(t, resp.Hashtags, 10)
	assert.Equal(t, "#Sarah'sCafe", resp.Hashtags[0])
	assert.Equal(t, studio.Usage{Count: 1, Date: "2026-10-18", Limit: 5, Remaining: 4}, resp.Usage)
	assert.Equal(t, "Content generated!", resp.Notification.Title)
	assert.Equal(t, "4 free generations remaining today.", resp.Notification.Description)
}

func TestHandler_ValidationFailed(t *testing.T) {
	s, store := newTestStudio(t)
	router := newTestRouter(t, s)

	w := post(router, `{"brand_name":"Sarah's Cafe","industry":"food-beverage"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodeValidationFailed, resp.Error)
	assert.Equal(t, "Please fill in brand name, industry, and target audience.", resp.Message)
	assert.Contains(t, resp.Details, "target_audience")

	stored, err := store.Load(context.Background(), testClientID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestHandler_MalformedBody(t *testing.T) {
	s, _ := newTestStudio(t)
	router := newTestRouter(t, s)

	w := post(router, `{"brand_name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodeBadRequest, resp.Error)
}

func TestHandler_QuotaExhausted(t *testing.T) {
	s, store := newTestStudio(t)
	router := newTestRouter(t, s)

	require.NoError(t, store.Save(context.Background(), testClientID, usage.Record{Count: 5, Date: "2026-10-18"}))

	w := post(router, validBody)
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodeQuotaExhausted, resp.Error)
	assert.Equal(t, notifications.For(studio.Outcome{Kind: studio.OutcomeQuotaExhausted}, 5).Description, resp.Message)
}

func TestHandler_SixthRequestRefused(t *testing.T) {
	s, _ := newTestStudio(t)
	router := newTestRouter(t, s)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, post(router, validBody).Code)
	}

	assert.Equal(t, http.StatusTooManyRequests, post(router, validBody).Code)
}

func TestHandler_InternalError(t *testing.T) {
	router := newTestRouter(t, failingStudio{err: errors.New("generator exploded")})

	w := post(router, validBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierrors.CodeGenerationFailed, resp.Error)
	assert.Equal(t, "Something went wrong. Please try again.", resp.Message)
}
