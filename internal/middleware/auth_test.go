package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/security"
)

const testSecret = "middleware-test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	authed := router.Group("/", Auth(testSecret))
	authed.GET("/me", func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": claims.UserID})
	})
	authed.GET("/manager", RequireRoles(models.RoleManager, models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	authed.GET("/admin", RequireRoles(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func issueToken(t *testing.T, roleName string, ttl time.Duration) string {
	t.Helper()

	token, err := security.GenerateToken(testSecret, "user-1", "role-"+roleName, roleName, ttl)
	require.NoError(t, err)
	return token
}

func TestAuthMissingToken(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, "/me", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"missing_token"}`, rec.Body.String())
}

func TestAuthInvalidToken(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, "/me", "garbage")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid_token"}`, rec.Body.String())
}

func TestAuthExpiredToken(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, "/me", issueToken(t, "user", -time.Minute))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"invalid_token"}`, rec.Body.String())
}

func TestAuthAttachesClaims(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(t, router, "/me", issueToken(t, "user", time.Hour))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"userId":"user-1"}`, rec.Body.String())
}

func TestRequireRoles(t *testing.T) {
	router := newTestRouter()

	managerToken := issueToken(t, "manager", time.Hour)
	adminToken := issueToken(t, "admin", time.Hour)
	userToken := issueToken(t, "user", time.Hour)

	t.Run("manager passes manager gate", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doRequest(t, router, "/manager", managerToken).Code)
	})

	t.Run("admin passes both gates", func(t *testing.T) {
		require.Equal(t, http.StatusOK, doRequest(t, router, "/manager", adminToken).Code)
		require.Equal(t, http.StatusOK, doRequest(t, router, "/admin", adminToken).Code)
	})

	t.Run("manager is forbidden on admin gate", func(t *testing.T) {
		rec := doRequest(t, router, "/admin", managerToken)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"error":"forbidden"}`, rec.Body.String())
	})

	t.Run("plain user is forbidden on both gates", func(t *testing.T) {
		require.Equal(t, http.StatusForbidden, doRequest(t, router, "/manager", userToken).Code)
		require.Equal(t, http.StatusForbidden, doRequest(t, router, "/admin", userToken).Code)
	})
}
