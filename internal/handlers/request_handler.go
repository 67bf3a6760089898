package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

type RequestHandler struct {
	BaseHandler
	requestService services.RequestService
}

func NewRequestHandler(requestService services.RequestService, logger utils.Logger) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    NewBaseHandler(logger),
		requestService: requestService,
	}
}

// CreateRequest submits a join request for a course.
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	identity := IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Tu dois être connecté pour demander à rejoindre un cours."})
		return
	}

	var req services.RequestCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Merci de renseigner le mode de paiement, un créneau et ton email."})
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), c.Param("id"), &req, identity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}

// DecideRequest records the owning teacher's accept/decline.
func (h *RequestHandler) DecideRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
		return
	}

	var req services.RequestDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Statut invalide. Utilise ACCEPTED ou DECLINED."})
		return
	}

	request, err := h.requestService.Decide(c.Request.Context(), c.Param("id"), req.Status, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

// ListCourseRequests returns a course's requests for its owner.
func (h *RequestHandler) ListCourseRequests(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
		return
	}

	requests, err := h.requestService.ListByCourse(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		message := "Merci de renseigner le mode de paiement, un créneau et ton email."
		for _, ve := range validationErrors {
			if ve.Field == "status" {
				message = "Statut invalide. Utilise ACCEPTED ou DECLINED."
				break
			}
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Details: validationErrors})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Tu ne peux gérer que les demandes de tes propres cours."})
		return
	}

	switch {
	case errors.Is(err, services.ErrCourseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Cours introuvable."})
	case errors.Is(err, services.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Demande introuvable."})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise."})
	default:
		h.LogError(c, err, "Unexpected request service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Une erreur est survenue lors du traitement de la demande."})
	}
}
