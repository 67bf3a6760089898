package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/utils"
)

// ErrorResponse is the error body. The "error" key carries the
// user-facing French message; missingFields is only set by the course
// create contract.
type ErrorResponse struct {
	Error         string      `json:"error"`
	MissingFields []string    `json:"missingFields,omitempty"`
	Details       interface{} `json:"details,omitempty"`
}

// SuccessResponse is used for operations without a natural entity
// body.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// BaseHandler carries the shared handler dependencies.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}
