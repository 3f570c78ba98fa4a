package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/security"
)

type fakeAuditStore struct {
	entries []models.AuditLogEntry
	err     error
}

func (s *fakeAuditStore) Append(_ context.Context, entry models.AuditLogEntry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, entry)
	return nil
}

func auditRouter(store *fakeAuditStore, handlerHit *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	fixed := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return fixed }

	router := gin.New()
	router.POST("/action",
		Auth(testSecret),
		Audit(store, clock, zerolog.Nop(), "clock_in"),
		func(c *gin.Context) {
			*handlerHit = true
			c.JSON(http.StatusOK, gin.H{"success": true})
		},
	)
	return router
}

func TestAuditRecordsActionBeforeHandler(t *testing.T) {
	store := &fakeAuditStore{}
	handlerHit := false
	router := auditRouter(store, &handlerHit)

	token, err := security.GenerateToken(testSecret, "user-7", "role-user", "user", time.Hour)
	require.NoError(t, err)

	body := `{"userId":"user-7","latitude":1.5,"longitude":2.5}`
	req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, handlerHit)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	require.Equal(t, "user-7", entry.UserID)
	require.Equal(t, "clock_in", entry.Action)
	require.JSONEq(t, body, entry.Details)
	require.Equal(t, time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC), entry.Timestamp)
	require.NotEmpty(t, entry.ID)
}

func TestAuditFailureBlocksAction(t *testing.T) {
	store := &fakeAuditStore{err: errors.New("connection refused")}
	handlerHit := false
	router := auditRouter(store, &handlerHit)

	token, err := security.GenerateToken(testSecret, "user-7", "role-user", "user", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(`{"userId":"user-7"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.JSONEq(t, `{"error":"audit_unavailable"}`, rec.Body.String())
	require.False(t, handlerHit, "handler must not run when the audit append fails")
}

func TestAuditActorFallsBackToPayload(t *testing.T) {
	store := &fakeAuditStore{}
	gin.SetMode(gin.TestMode)

	clock := func() time.Time { return time.Now() }
	router := gin.New()
	router.POST("/action", Audit(store, clock, zerolog.Nop(), "leave_request"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/action", strings.NewReader(`{"userId":"body-user"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.entries, 1)
	require.Equal(t, "body-user", store.entries[0].UserID)
}
