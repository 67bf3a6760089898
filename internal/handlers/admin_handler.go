package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  NewBaseHandler(logger),
		adminService: adminService,
	}
}

// GetStats returns the platform counters.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListUsers returns the user table with optional role/query filters.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filters := repositories.UserFilters{Query: c.Query("q")}
	if v := c.Query("role"); v != "" {
		role := models.UserRole(v)
		filters.Role = &role
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filters.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filters.Offset = v
	}

	resp, err := h.adminService.ListUsers(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateUserRole changes a user's role.
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var req services.RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Rôle invalide"})
		return
	}

	user, err := h.adminService.UpdateUserRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

// DeleteUser removes a user and cascades to their data. Admins cannot
// delete their own account.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	callerID := c.GetString("user_id")

	if err := h.adminService.DeleteUser(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Utilisateur supprimé avec succès"})
}

// ListCourses returns the admin course table with relation counts.
func (h *AdminHandler) ListCourses(c *gin.Context) {
	courses, err := h.adminService.ListCourses(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

// SeedImages assigns every course a random image from the fixed pool.
func (h *AdminHandler) SeedImages(c *gin.Context) {
	result, err := h.adminService.SeedCourseImages(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export streams the users/courses workbook.
func (h *AdminHandler) Export(c *gin.Context) {
	result, err := h.adminService.Export(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

func (h *AdminHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Rôle invalide", Details: validationErrors})
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Vous ne pouvez pas supprimer votre propre compte"})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Utilisateur introuvable."})
	default:
		h.LogError(c, err, "Unexpected admin service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Erreur lors du traitement de la requête administrateur"})
	}
}
