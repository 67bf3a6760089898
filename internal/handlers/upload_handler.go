package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(uploadService services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler:   NewBaseHandler(logger),
		uploadService: uploadService,
	}
}

// Upload stores a course image and returns its public URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	if c.GetString("user_id") == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentification requise pour uploader une image."})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Aucun fichier fourni."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.LogError(c, err, "Failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Une erreur est survenue lors de l'upload."})
		return
	}
	defer file.Close()

	result, err := h.uploadService.SaveCourseImage(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *UploadHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoFileProvided):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Aucun fichier fourni."})
	case errors.Is(err, services.ErrFileTypeInvalid):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Type de fichier non autorisé. Utilisez JPG, PNG ou WEBP."})
	case errors.Is(err, services.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Le fichier est trop volumineux. Taille maximale : 5MB."})
	default:
		h.LogError(c, err, "Upload failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Une erreur est survenue lors de l'upload."})
	}
}
