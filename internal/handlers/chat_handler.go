package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/entrenouscours/course-service/internal/services"
	"github.com/entrenouscours/course-service/internal/utils"
)

type ChatHandler struct {
	BaseHandler
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		chatService: chatService,
	}
}

// Chat forwards the question to the assistant. No conversation state
// is kept server-side; the widget resends its history.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Merci de saisir un message pour poser ta question."})
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ChatHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors

	switch {
	case errors.Is(err, services.ErrEmptyChatMessage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Merci de saisir un message pour poser ta question."})
	case errors.As(err, &validationErrors):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Requête invalide.", Details: validationErrors})
	case errors.Is(err, services.ErrChatNotConfigured):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Le chatbot n'est pas configuré côté serveur (clé OpenAI manquante). Contacte l'administrateur."})
	default:
		h.LogError(c, err, "Chat completion failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Une erreur est survenue lors de la génération de la réponse du chatbot. Réessaie dans quelques instants."})
	}
}
