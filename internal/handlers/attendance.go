package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asafarviv55/attendance-system-backend/internal/middleware"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type clockRequest struct {
	UserID    string  `json:"userId" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h HandlerSet) ClockIn(c *gin.Context) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.attendance.ClockIn(c.Request.Context(), req.UserID, req.Latitude, req.Longitude)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Clocked in successfully",
		"attendanceId": record.ID,
		"clockInTime":  record.ClockIn,
	})
}

func (h HandlerSet) ClockOut(c *gin.Context) {
	var req clockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.attendance.ClockOut(c.Request.Context(), req.UserID, req.Latitude, req.Longitude)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Clocked out successfully",
		"clockOutTime": result.ClockOut,
		"totalHours":   result.TotalHours,
	})
}

type correctionRequestBody struct {
	AttendanceID string `json:"attendanceId" binding:"required"`
	Reason       string `json:"reason" binding:"required"`
}

func (h HandlerSet) RequestCorrection(c *gin.Context) {
	var req correctionRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}

	created, err := h.corrections.Request(c.Request.Context(), claims.UserID, req.AttendanceID, req.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Correction request submitted",
		"requestId": created.ID,
	})
}

type correctionResponseBody struct {
	RequestID string `json:"requestId" binding:"required"`
	Status    string `json:"status" binding:"required"`
	Response  string `json:"response"`
}

func (h HandlerSet) RespondCorrection(c *gin.Context) {
	var req correctionResponseBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.corrections.Respond(c.Request.Context(), req.RequestID, models.RequestStatus(req.Status), req.Response)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Correction request " + req.Status})
}

type correctionView struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	AttendanceID    string     `json:"attendanceId"`
	Reason          string     `json:"reason"`
	RequestDate     time.Time  `json:"requestDate"`
	Status          string     `json:"status"`
	ManagerResponse *string    `json:"managerResponse,omitempty"`
	ResponseDate    *time.Time `json:"responseDate,omitempty"`
}

func (h HandlerSet) ListCorrections(c *gin.Context) {
	requests, err := h.corrections.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]correctionView, 0, len(requests))
	for _, req := range requests {
		views = append(views, correctionView{
			ID:              req.ID,
			UserID:          req.UserID,
			AttendanceID:    req.AttendanceID,
			Reason:          req.RequestReason,
			RequestDate:     req.RequestDate,
			Status:          string(req.Status),
			ManagerResponse: req.ManagerResponse,
			ResponseDate:    req.ResponseDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "corrections": views})
}

type attendanceView struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	WorkDate   string     `json:"workDate"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
	TotalHours *float64   `json:"totalHours,omitempty"`
	AutoClosed bool       `json:"autoClosed"`
}

func (h HandlerSet) ListAttendance(c *gin.Context) {
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

	records, err := h.records.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]attendanceView, 0, len(records))
	for _, record := range records {
		views = append(views, attendanceView{
			ID:         record.ID,
			UserID:     record.UserID,
			WorkDate:   record.WorkDate.Format("2006-01-02"),
			ClockIn:    record.ClockIn,
			ClockOut:   record.ClockOut,
			TotalHours: record.TotalHours,
			AutoClosed: record.AutoClosed,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "attendance": views})
}
