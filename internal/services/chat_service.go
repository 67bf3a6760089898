package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/entrenouscours/course-service/internal/validator"
)

const chatSystemPrompt = "Tu es un assistant francophone pour la plateforme EntreNousCours, " +
	"un site de mise en relation pour des cours entre étudiants et enseignants tunisiens. " +
	"Explique clairement le fonctionnement du site (création de cours, demandes pour rejoindre un cours, " +
	"paiement, échanges de services, Google Meet, présentiel, etc.). " +
	"Réponds toujours en français. Si la question n'a rien à voir avec EntreNousCours, " +
	"réponds poliment que tu es spécialisé sur la plateforme et propose d'aider sur ce sujet."

const chatFallbackAnswer = "Je n'ai pas pu générer de réponse pour le moment."

// completionClient is the slice of the OpenAI client the service
// needs; tests substitute a stub.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type chatService struct {
	client    completionClient
	model     string
	validator *validator.Validator
	logger    *slog.Logger
}

// NewChatService builds the assistant. An empty API key yields a
// service that reports ErrChatNotConfigured instead of failing at
// startup; the platform works without the chatbot.
func NewChatService(apiKey, model string, v *validator.Validator, logger *slog.Logger) ChatService {
	s := &chatService{model: model, validator: v, logger: logger}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

func newChatServiceWithClient(client completionClient, model string, v *validator.Validator, logger *slog.Logger) ChatService {
	return &chatService{client: client, model: model, validator: v, logger: logger}
}

func (s *chatService) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if s.client == nil {
		return nil, ErrChatNotConfigured
	}

	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyChatMessage
	}

	if errs := s.validator.GetBusinessValidator().ValidateChat(req); len(errs) > 0 {
		return nil, errs
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: chatSystemPrompt,
	})
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
	})
	if err != nil {
		s.logger.Error("Chat completion failed", "error", err)
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	answer := chatFallbackAnswer
	if len(resp.Choices) > 0 && strings.TrimSpace(resp.Choices[0].Message.Content) != "" {
		answer = resp.Choices[0].Message.Content
	}

	return &ChatResponse{Answer: answer}, nil
}
