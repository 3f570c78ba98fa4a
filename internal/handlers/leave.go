package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asafarviv55/attendance-system-backend/internal/middleware"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type leaveRequestBody struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

func (h HandlerSet) RequestLeave(c *gin.Context) {
	var req leaveRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid startDate, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid endDate, expected YYYY-MM-DD"})
		return
	}

	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}

	created, err := h.leaves.Request(c.Request.Context(), claims.UserID, startDate, endDate, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Leave request submitted successfully",
		"requestId": created.ID,
	})
}

type leaveView struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

func (h HandlerSet) ListLeaveRequests(c *gin.Context) {
	requests, err := h.leaves.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]leaveView, 0, len(requests))
	for _, req := range requests {
		views = append(views, leaveView{
			ID:        req.ID,
			UserID:    req.UserID,
			StartDate: req.StartDate.Format("2006-01-02"),
			EndDate:   req.EndDate.Format("2006-01-02"),
			Reason:    req.Reason,
			Status:    string(req.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leaveRequests": views})
}

type leaveDecisionBody struct {
	RequestID string `json:"requestId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

func (h HandlerSet) ApproveDenyLeave(c *gin.Context) {
	var req leaveDecisionBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.leaves.ApproveDeny(c.Request.Context(), req.RequestID, models.RequestStatus(req.Status)); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Leave request " + req.Status})
}
