package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/entrenouscours/course-service/internal/events"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/validator"
)

func newTestCourseService(repo *mockRepository) (CourseService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(nil)
	return NewCourseService(repo, logger, validator.New(), publisher), publisher
}

func validCourseRequest() *CourseCreateRequest {
	return &CourseCreateRequest{
		Title:         "Maths Bac",
		Description:   "Révisions ciblées",
		Subject:       "Mathématiques",
		Level:         "Bac",
		GoogleMeetURL: "https://meet.google.com/abc-defg-hij",
		OfferType:     "FREE",
		Slots: []SlotRequest{
			{StartTime: time.Now().Add(time.Hour).Format(time.RFC3339)},
		},
	}
}

func TestCourseService_Create_MissingFields(t *testing.T) {
	service, _ := newTestCourseService(newMockRepository())

	req := &CourseCreateRequest{
		Subject: "Mathématiques",
		Slots:   []SlotRequest{{StartTime: "   "}, {}},
	}

	_, err := service.Create(context.Background(), req, "teacher-1")
	if err == nil {
		t.Fatal("Expected error for missing fields")
	}

	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingFieldsError, got %T: %v", err, err)
	}

	want := []string{"title", "description", "level", "googleMeetUrl", "slots"}
	if len(missing.MissingFields) != len(want) {
		t.Fatalf("Expected missing fields %v, got %v", want, missing.MissingFields)
	}
	for i, field := range want {
		if missing.MissingFields[i] != field {
			t.Errorf("Expected missing field %q at position %d, got %q", field, i, missing.MissingFields[i])
		}
	}
}

func TestCourseService_Create_FiltersBlankSlots(t *testing.T) {
	repo := newMockRepository()
	service, publisher := newTestCourseService(repo)

	req := validCourseRequest()
	req.Slots = append(req.Slots, SlotRequest{StartTime: ""})

	course, err := service.Create(context.Background(), req, "teacher-1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	stored := repo.courses[course.ID]
	if stored == nil {
		t.Fatal("Course was not persisted")
	}
	if len(stored.Slots) != 1 {
		t.Errorf("Expected 1 slot after filtering, got %d", len(stored.Slots))
	}
	if stored.TeacherID == nil || *stored.TeacherID != "teacher-1" {
		t.Error("Expected teacher id to be captured from the caller")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventCourseCreated {
		t.Errorf("Expected one %s event, got %v", events.EventCourseCreated, published)
	}
}

func TestCourseService_Create_SlotChronology(t *testing.T) {
	service, _ := newTestCourseService(newMockRepository())

	start := time.Now().Add(2 * time.Hour)
	end := start.Add(-time.Hour)
	req := validCourseRequest()
	endStr := end.Format(time.RFC3339)
	req.Slots = []SlotRequest{{StartTime: start.Format(time.RFC3339), EndTime: &endStr}}

	_, err := service.Create(context.Background(), req, "teacher-1")
	var validationErrors ValidationErrors
	if !errors.As(err, &validationErrors) {
		t.Fatalf("Expected validation errors for reversed slot, got %v", err)
	}
}

func TestCourseService_Delete_Ownership(t *testing.T) {
	repo := newMockRepository()
	service, publisher := newTestCourseService(repo)

	owner := "teacher-1"
	repo.courses["c1"] = &models.Course{ID: "c1", Title: "Cours", TeacherID: &owner}
	repo.courses["c2"] = &models.Course{ID: "c2", Title: "Sans prof"}

	// Not the owner
	err := service.Delete(context.Background(), "c1", "intruder")
	var permErr *PermissionError
	if !errors.As(err, &permErr) {
		t.Fatalf("Expected PermissionError, got %v", err)
	}

	// Ownerless course cannot be deleted by anyone
	if err := service.Delete(context.Background(), "c2", owner); !errors.As(err, &permErr) {
		t.Fatalf("Expected PermissionError for ownerless course, got %v", err)
	}

	// Unknown course
	if err := service.Delete(context.Background(), "nope", owner); !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Expected ErrCourseNotFound, got %v", err)
	}

	// Owner succeeds
	if err := service.Delete(context.Background(), "c1", owner); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	if _, ok := repo.courses["c1"]; ok {
		t.Error("Course should be gone after delete")
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 1 || published[0].Type != events.EventCourseDeleted {
		t.Errorf("Expected one %s event, got %d events", events.EventCourseDeleted, len(published))
	}
}

func TestCourseService_Get_Joinability(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestCourseService(repo)
	now := time.Now()

	past := now.Add(-time.Hour)
	futureStart := now.Add(3 * time.Hour)
	nearFuture := now.Add(time.Hour)
	end := now.Add(time.Hour)

	repo.courses["active"] = &models.Course{
		ID: "active",
		Slots: []models.CourseSlot{
			{ID: "s1", StartTime: past, EndTime: &end},
		},
	}
	repo.courses["upcoming"] = &models.Course{
		ID: "upcoming",
		Slots: []models.CourseSlot{
			{ID: "s2", StartTime: futureStart},
			{ID: "s3", StartTime: nearFuture},
		},
	}
	repo.courses["unbounded"] = &models.Course{
		ID: "unbounded",
		Slots: []models.CourseSlot{
			{ID: "s4", StartTime: past},
		},
	}

	resp, err := service.Get(context.Background(), "active")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !resp.Joinable || resp.NextSlot != nil {
		t.Error("Expected active course to be joinable with no next slot")
	}

	resp, _ = service.Get(context.Background(), "upcoming")
	if resp.Joinable {
		t.Error("Course with only future slots must not be joinable")
	}
	if resp.NextSlot == nil || resp.NextSlot.ID != "s3" {
		t.Error("Expected the earliest upcoming slot to be surfaced")
	}

	// A started slot without an end time stays active.
	resp, _ = service.Get(context.Background(), "unbounded")
	if !resp.Joinable {
		t.Error("Unbounded started slot should keep the course joinable")
	}
}

func TestCourseService_SeedDemo(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestCourseService(repo)

	result, err := service.SeedDemo(context.Background())
	if err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	if !result.Seeded {
		t.Fatal("Expected seed on empty catalog")
	}
	if len(repo.courses) != 3 {
		t.Fatalf("Expected 3 demo courses, got %d", len(repo.courses))
	}
	for _, c := range repo.courses {
		if len(c.Slots) != 2 {
			t.Errorf("Expected 2 slots per demo course, got %d", len(c.Slots))
		}
		if c.TeacherID != nil {
			t.Error("Demo courses must be ownerless")
		}
	}

	// Second call is a no-op
	result, err = service.SeedDemo(context.Background())
	if err != nil {
		t.Fatalf("Second SeedDemo failed: %v", err)
	}
	if result.Seeded || len(repo.courses) != 3 {
		t.Error("Seed must not run when courses exist")
	}
}
