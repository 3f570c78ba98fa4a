package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type fakeAuditLog struct {
	entries []models.AuditLogEntry
	listErr error

	gotLimit  int
	gotOffset int
}

func (f *fakeAuditLog) Append(_ context.Context, entry models.AuditLogEntry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditLog) List(_ context.Context, limit, offset int) ([]models.AuditLogEntry, error) {
	f.gotLimit = limit
	f.gotOffset = offset
	return f.entries, f.listErr
}

func newAuditLogRouter(store *fakeAuditLog) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := HandlerSet{audit: store, log: zerolog.Nop()}

	router := gin.New()
	router.GET("/audit-log", h.ListAuditLog)
	return router
}

func TestListAuditLogReturnsEntries(t *testing.T) {
	store := &fakeAuditLog{
		entries: []models.AuditLogEntry{{
			ID:        "entry-1",
			UserID:    "user-1",
			Action:    "clock_in",
			Details:   `{"userId":"user-1"}`,
			Timestamp: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
		}},
	}
	router := newAuditLogRouter(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit-log", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"entry-1"`)
	require.Contains(t, rec.Body.String(), `"clock_in"`)
	require.Equal(t, 50, store.gotLimit)
	require.Equal(t, 0, store.gotOffset)
}

func TestListAuditLogPagination(t *testing.T) {
	store := &fakeAuditLog{}
	router := newAuditLogRouter(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit-log?perPage=20&page=3", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 20, store.gotLimit)
	require.Equal(t, 40, store.gotOffset)
}

func TestListAuditLogStorageFailure(t *testing.T) {
	store := &fakeAuditLog{listErr: errors.New("connection reset")}
	router := newAuditLogRouter(store)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/audit-log", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "internal_error")
}
