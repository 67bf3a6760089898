package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/entrenouscours/course-service/internal/events"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/validator"
)

type requestService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewRequestService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) RequestService {
	return &requestService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (s *requestService) Create(ctx context.Context, courseID string, req *RequestCreateRequest, student *Identity) (*models.CourseRequest, error) {
	if student == nil || student.ID == "" {
		return nil, ErrUnauthorized
	}

	exists, err := s.repo.Course().ExistsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to check course: %w", err)
	}
	if !exists {
		return nil, ErrCourseNotFound
	}

	if errs := s.validator.GetBusinessValidator().ValidateRequestCreate(req); len(errs) > 0 {
		return nil, errs
	}

	request := &models.CourseRequest{
		CourseID:      courseID,
		StudentID:     &student.ID,
		StudentEmail:  req.ContactEmail,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		ProposedTime:  req.ProposedTime,
	}
	if student.Name != "" {
		name := student.Name
		request.StudentName = &name
	}
	if req.ProposedLocation != nil && *req.ProposedLocation != "" {
		request.ProposedLocation = req.ProposedLocation
	}
	if req.Message != nil && *req.Message != "" {
		request.Message = req.Message
	}

	if err := s.repo.Request().Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.publishEvent(ctx, events.EventRequestCreated, events.RequestEvent{
		RequestID:    request.ID,
		CourseID:     request.CourseID,
		StudentEmail: request.StudentEmail,
		Status:       request.Status,
	})

	s.logger.Info("Join request created",
		"request_id", request.ID, "course_id", courseID, "student_id", student.ID)
	return request, nil
}

// Decide records the owner's accept/decline. Repeated decisions are
// allowed and last-write-wins, so a double accept is harmless and a
// later decline overwrites an earlier accept.
func (s *requestService) Decide(ctx context.Context, requestID string, status models.RequestStatus, userID string) (*models.CourseRequest, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	if !status.ValidDecision() {
		return nil, ValidationErrors{{
			Field:   "status",
			Message: "must be ACCEPTED or DECLINED",
			Value:   status,
			Rule:    "request_decision",
		}}
	}

	request, err := s.repo.Request().GetWithCourse(ctx, requestID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.Course == nil || request.Course.TeacherID == nil || *request.Course.TeacherID != userID {
		return nil, NewPermissionError(userID, requestID, "course_request", "decide", "not the owner of the course")
	}

	if err := s.repo.Request().UpdateStatus(ctx, requestID, status); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}
	request.Status = status

	s.publishEvent(ctx, events.EventRequestDecided, events.RequestEvent{
		RequestID:    request.ID,
		CourseID:     request.CourseID,
		StudentEmail: request.StudentEmail,
		Status:       status,
	})

	s.logger.Info("Join request decided",
		"request_id", requestID, "status", status, "teacher_id", userID)
	return request, nil
}

// ListByCourse returns a course's requests, newest first. Only the
// owning teacher may read them.
func (s *requestService) ListByCourse(ctx context.Context, courseID string, userID string) ([]*models.CourseRequest, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if course.TeacherID == nil || *course.TeacherID != userID {
		return nil, NewPermissionError(userID, courseID, "course_request", "list", "not the owner of the course")
	}

	requests, _, err := s.repo.Request().List(ctx, repositories.RequestFilters{CourseID: &courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

func (s *requestService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}
