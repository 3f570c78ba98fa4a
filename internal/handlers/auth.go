package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleName string `json:"roleName" binding:"required"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signInResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	RoleName string `json:"roleName"`
}

func (h HandlerSet) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password, models.RoleName(req.RoleName))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, signInResponse{
		Success:  true,
		Token:    result.Token,
		UserID:   result.UserID,
		RoleName: string(result.RoleName),
	})
}

func (h HandlerSet) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, signInResponse{
		Success:  true,
		Token:    result.Token,
		UserID:   result.UserID,
		RoleName: string(result.RoleName),
	})
}

type requestResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) RequestReset(c *gin.Context) {
	var req requestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email exists, a reset link has been sent"})
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated"})
}
