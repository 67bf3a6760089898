package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// CreateCourse publishes a new course owned by the caller.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Requête invalide.", Details: err.Error()})
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise pour publier un cours."})
		return
	}

	course, err := h.courseService.Create(c.Request.Context(), &req, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// GetCourse returns a course with its slots and derived joinability.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// ListCourses is the public catalog with filters and pagination.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	filters := parseCourseFilters(c)

	resp, err := h.courseService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteCourse removes the caller's own course with all slots and
// requests.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MyCourses is the owner's dashboard.
func (h *CourseHandler) MyCourses(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
		return
	}

	resp, err := h.courseService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SeedDemo inserts demo data when the catalog is empty.
func (h *CourseHandler) SeedDemo(c *gin.Context) {
	result, err := h.courseService.SeedDemo(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Demo seed failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Impossible d'insérer les données de démonstration."})
		return
	}

	status := http.StatusOK
	if result.Seeded {
		status = http.StatusCreated
	}
	c.JSON(status, SuccessResponse{Message: result.Message})
}

func parseCourseFilters(c *gin.Context) repositories.CourseFilters {
	filters := repositories.CourseFilters{
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
	}

	if v := c.Query("subject"); v != "" {
		filters.Subject = &v
	}
	if v := c.Query("level"); v != "" {
		filters.Level = &v
	}
	if v := c.Query("offerType"); v != "" {
		t := models.OfferType(v)
		filters.OfferType = &t
	}
	if v := c.Query("modality"); v != "" {
		m := models.Modality(v)
		filters.Modality = &m
	}
	if v := c.Query("teacherId"); v != "" {
		filters.TeacherID = &v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filters.Limit = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filters.Offset = v
	}

	return filters
}

func (h *CourseHandler) handleServiceError(c *gin.Context, err error) {
	var missingFields *services.MissingFieldsError
	if errors.As(err, &missingFields) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:         "Tous les champs obligatoires ne sont pas remplis (au moins un créneau requis).",
			MissingFields: missingFields.MissingFields,
		})
		return
	}

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Requête invalide.",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Tu ne peux supprimer que tes propres cours."})
		return
	}

	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cours introuvable."})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
	default:
		h.LogError(c, err, "Unexpected course service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Une erreur est survenue lors du traitement du cours."})
	}
}
