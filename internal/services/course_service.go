package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/entrenouscours/course-service/internal/events"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewCourseService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) CourseService {
	return &courseService{
		repo:      repo,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *courseService) Create(ctx context.Context, req *CourseCreateRequest, teacherID string) (*models.Course, error) {
	s.logger.Info("Creating course", "teacher_id", teacherID, "title", req.Title)

	bv := s.validator.GetBusinessValidator()

	// The create contract reports every absent required field at once.
	if missing := bv.MissingCourseFields(req); len(missing) > 0 {
		return nil, NewMissingFieldsError(missing)
	}

	if errs := bv.ValidateCourseCreate(req); len(errs) > 0 {
		return nil, errs
	}

	course := s.buildCourse(req, teacherID)

	slots, err := s.buildSlots(req.Slots)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Course().CreateWithSlots(ctx, course, slots); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.publishEvent(ctx, events.EventCourseCreated, events.CourseEvent{
		CourseID:  course.ID,
		Title:     course.Title,
		TeacherID: course.TeacherID,
	})

	s.logger.Info("Course created successfully", "course_id", course.ID)
	return course, nil
}

func (s *courseService) Get(ctx context.Context, id string) (*CourseResponse, error) {
	course, err := s.repo.Course().GetWithSlots(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return decorateCourse(course, time.Now()), nil
}

func (s *courseService) List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}

	courses, total, err := s.repo.Course().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	now := time.Now()
	responses := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, decorateCourse(c, now))
	}

	return &CourseListResponse{
		Courses: responses,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	}, nil
}

func (s *courseService) Delete(ctx context.Context, id string, userID string) error {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	// Ownerless courses (demo seed) belong to nobody and cannot be
	// deleted through this path.
	if course.TeacherID == nil || *course.TeacherID != userID {
		return NewPermissionError(userID, id, "course", "delete", "not the course owner")
	}

	if err := s.repo.Course().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.publishEvent(ctx, events.EventCourseDeleted, events.CourseEvent{
		CourseID:  course.ID,
		Title:     course.Title,
		TeacherID: course.TeacherID,
	})

	s.logger.Info("Course deleted", "course_id", id, "teacher_id", userID)
	return nil
}

func (s *courseService) ListByOwner(ctx context.Context, teacherID string) (*MyCoursesResponse, error) {
	courses, err := s.repo.Course().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to list own courses: %w", err)
	}

	stats, err := s.repo.Dashboard().GetOwnerStats(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owner stats: %w", err)
	}

	now := time.Now()
	responses := make([]*CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, decorateCourse(c, now))
	}

	return &MyCoursesResponse{Courses: responses, Stats: stats}, nil
}

// ===== HELPERS =====

func (s *courseService) buildCourse(req *CourseCreateRequest, teacherID string) *models.Course {
	course := &models.Course{
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		Level:           req.Level,
		GoogleMeetURL:   req.GoogleMeetURL,
		ImageURL:        req.ImageURL,
		OfferType:       models.OfferType(req.OfferType),
		PricePerHour:    req.PricePerHour,
		Currency:        req.Currency,
		Modality:        models.Modality(req.Modality),
		Availability:    req.Availability,
		ExchangeSubject: req.ExchangeSubject,
		Capacity:        req.Capacity,
	}

	if course.OfferType == "" {
		course.OfferType = models.OfferPaid
	}
	if course.Modality == "" {
		course.Modality = models.ModalityOnline
	}
	if course.Currency == "" {
		course.Currency = "TND"
	}
	if course.Availability == "" {
		course.Availability = "Voir créneaux"
	}
	if teacherID != "" {
		course.TeacherID = &teacherID
	}

	return course
}

func (s *courseService) buildSlots(reqs []SlotRequest) ([]models.CourseSlot, error) {
	valid := validator.FilterSlots(reqs)
	slots := make([]models.CourseSlot, 0, len(valid))
	for _, sr := range valid {
		start, end, err := validator.ParseSlot(sr)
		if err != nil {
			return nil, ValidationErrors{{
				Field:   "slots",
				Message: "contains an invalid timestamp",
				Value:   sr.StartTime,
				Rule:    "timestamp",
			}}
		}
		slots = append(slots, models.CourseSlot{
			StartTime: start,
			EndTime:   end,
			Location:  sr.Location,
			Notes:     sr.Notes,
		})
	}
	return slots, nil
}

func (s *courseService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}

// decorateCourse computes the read-time fields: a course is joinable
// when any slot covers now; otherwise the earliest upcoming slot is
// surfaced so callers can show the next start instead of a join
// action.
func decorateCourse(course *models.Course, now time.Time) *CourseResponse {
	resp := &CourseResponse{Course: course}

	var next *models.CourseSlot
	for i := range course.Slots {
		slot := &course.Slots[i]
		if slot.ActiveAt(now) {
			resp.Joinable = true
			resp.NextSlot = nil
			return resp
		}
		if slot.StartTime.After(now) && (next == nil || slot.StartTime.Before(next.StartTime)) {
			next = slot
		}
	}

	resp.NextSlot = next
	return resp
}
