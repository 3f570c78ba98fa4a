package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asafarviv55/attendance-system-backend/internal/ids"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

type userView struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	RoleID   string `json:"roleId"`
	RoleName string `json:"roleName"`
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, userView{
			ID:       user.ID,
			Email:    user.Email,
			RoleID:   user.RoleID,
			RoleName: string(user.RoleName),
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": views})
}

func (h HandlerSet) ListRoles(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]gin.H, 0, len(roles))
	for _, role := range roles {
		views = append(views, gin.H{"id": role.ID, "roleName": role.RoleName})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "roles": views})
}

type updateUserBody struct {
	Email string `json:"email" binding:"required,email"`
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	var req updateUserBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateEmail(c.Request.Context(), c.Param("id"), req.Email); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User details updated successfully"})
}

type updateUserRoleBody struct {
	RoleID string `json:"roleId" binding:"required"`
}

func (h HandlerSet) UpdateUserRole(c *gin.Context) {
	var req updateUserRoleBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), req.RoleID); err != nil {
		h.fail(c, err)
		return
	}

	// Tokens already issued keep the old role until they expire or the user
	// signs in again.
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User role updated successfully"})
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

type locationView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h HandlerSet) ListLocations(c *gin.Context) {
	locations, err := h.locations.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]locationView, 0, len(locations))
	for _, loc := range locations {
		views = append(views, locationView{
			ID:        loc.ID,
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "locations": views})
}

type createLocationBody struct {
	Name      string   `json:"name" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

func (h HandlerSet) CreateLocation(c *gin.Context) {
	var req createLocationBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := models.AuthorizedLocation{
		ID:        ids.New(),
		Name:      req.Name,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}

	if err := h.locations.Create(c.Request.Context(), loc); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "locationId": loc.ID})
}

func (h HandlerSet) DeleteLocation(c *gin.Context) {
	if err := h.locations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Location deleted successfully"})
}
