package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type auditEntryView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func (h HandlerSet) ListAuditLog(c *gin.Context) {
	limit := 50
	offset := 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}

	entries, err := h.audit.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]auditEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, auditEntryView{
			ID:        entry.ID,
			UserID:    entry.UserID,
			Action:    entry.Action,
			Details:   entry.Details,
			Timestamp: entry.Timestamp,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "auditLog": views})
}
