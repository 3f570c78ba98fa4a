package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/ids"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type AuditStore interface {
	Append(ctx context.Context, entry models.AuditLogEntry) error
}

// Audit records the named action with the full request payload before the
// handler runs. A failed append aborts the request: the trail is only useful
// if every sensitive action that executed is in it, so the action is refused
// rather than performed unrecorded. The 503 here is distinct from any failure
// the wrapped handler itself can produce.
func Audit(store AuditStore, clock func() time.Time, log zerolog.Logger, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawBody, err := c.GetRawData()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))

		entry := models.AuditLogEntry{
			ID:        ids.New(),
			UserID:    auditActor(c, rawBody),
			Action:    action,
			Details:   string(rawBody),
			Timestamp: clock(),
		}

		if err := store.Append(c.Request.Context(), entry); err != nil {
			log.Error().Err(err).Str("action", action).Msg("audit append failed")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "audit_unavailable"})
			return
		}

		c.Next()
	}
}

// auditActor prefers the verified token identity; unauthenticated actions
// fall back to the userId field of the payload, if any.
func auditActor(c *gin.Context, rawBody []byte) string {
	if claims, ok := ClaimsFrom(c); ok {
		return claims.UserID
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(rawBody, &body); err == nil {
		return body.UserID
	}
	return ""
}
