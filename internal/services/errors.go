package services

import (
	"errors"
	"fmt"

	"github.com/entrenouscours/course-service/internal/validator"
)

// ValidationErrors is re-exported so handlers match on a single
// package.
type ValidationErrors = validator.ValidationErrors

// ===== SENTINEL ERRORS =====

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrRequestNotFound = errors.New("course request not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("profile not found")

	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("insufficient permissions")

	// ErrChatNotConfigured is returned when no API key is set; the
	// handler maps it to the configuration message, not a generic 500.
	ErrChatNotConfigured = errors.New("chat assistant not configured")
	ErrEmptyChatMessage  = errors.New("chat message is empty")

	ErrNoFileProvided  = errors.New("no file provided")
	ErrFileTypeInvalid = errors.New("file type not allowed")
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
)

// ===== TYPED ERRORS =====

// PermissionError carries who tried what on which resource.
type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %s: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// BusinessRuleError is a rejected operation that passed validation but
// broke a domain rule.
type BusinessRuleError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule %s violated: %s", e.Code, e.Message)
}

func NewBusinessRuleError(code, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{Code: code, Message: message, Context: context}
}

// MissingFieldsError keeps the course-create contract: the response
// body must contain the exact list of offending field names.
type MissingFieldsError struct {
	MissingFields []string `json:"missingFields"`
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.MissingFields)
}

func NewMissingFieldsError(fields []string) *MissingFieldsError {
	return &MissingFieldsError{MissingFields: fields}
}
