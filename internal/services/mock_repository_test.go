package services

import (
	"context"
	"sort"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/google/uuid"
)

// mockRepository is a minimal in-memory Repository for service tests.
type mockRepository struct {
	courses  map[string]*models.Course
	requests map[string]*models.CourseRequest
	profiles map[string]*models.Profile
	users    map[string]*models.User
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		courses:  make(map[string]*models.Course),
		requests: make(map[string]*models.CourseRequest),
		profiles: make(map[string]*models.Profile),
		users:    make(map[string]*models.User),
	}
}

func (m *mockRepository) Course() repositories.CourseRepository       { return &mockCourseRepo{m} }
func (m *mockRepository) Request() repositories.RequestRepository     { return &mockRequestRepo{m} }
func (m *mockRepository) Profile() repositories.ProfileRepository     { return &mockProfileRepo{m} }
func (m *mockRepository) User() repositories.UserRepository           { return &mockUserRepo{m} }
func (m *mockRepository) Dashboard() repositories.DashboardRepository { return &mockDashboardRepo{m} }

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== COURSES =====

type mockCourseRepo struct{ m *mockRepository }

func (r *mockCourseRepo) CreateWithSlots(ctx context.Context, course *models.Course, slots []models.CourseSlot) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
		slots[i].CourseID = course.ID
	}
	course.Slots = slots
	r.m.courses[course.ID] = course
	return nil
}

func (r *mockCourseRepo) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, ok := r.m.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return course, nil
}

func (r *mockCourseRepo) GetWithSlots(ctx context.Context, id string) (*models.Course, error) {
	return r.GetByID(ctx, id)
}

func (r *mockCourseRepo) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	out := r.all()
	return out, int64(len(out)), nil
}

func (r *mockCourseRepo) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range r.all() {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *mockCourseRepo) ListAll(ctx context.Context) ([]*models.Course, error) {
	return r.all(), nil
}

func (r *mockCourseRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.courses, id)
	for rid, req := range r.m.requests {
		if req.CourseID == id {
			delete(r.m.requests, rid)
		}
	}
	return nil
}

func (r *mockCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.courses)), nil
}

func (r *mockCourseRepo) CountRelations(ctx context.Context, courseIDs []string) (map[string]repositories.CourseCounts, error) {
	out := make(map[string]repositories.CourseCounts)
	for _, id := range courseIDs {
		counts := repositories.CourseCounts{CourseID: id}
		if c, ok := r.m.courses[id]; ok {
			counts.SlotCount = int64(len(c.Slots))
		}
		for _, req := range r.m.requests {
			if req.CourseID == id {
				counts.RequestCount++
			}
		}
		out[id] = counts
	}
	return out, nil
}

func (r *mockCourseRepo) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	course, ok := r.m.courses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	course.ImageURL = &imageURL
	return nil
}

func (r *mockCourseRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.m.courses[id]
	return ok, nil
}

func (r *mockCourseRepo) all() []*models.Course {
	out := make([]*models.Course, 0, len(r.m.courses))
	for _, c := range r.m.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ===== REQUESTS =====

type mockRequestRepo struct{ m *mockRepository }

func (r *mockRequestRepo) Create(ctx context.Context, request *models.CourseRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	r.m.requests[request.ID] = request
	return nil
}

func (r *mockRequestRepo) GetByID(ctx context.Context, id string) (*models.CourseRequest, error) {
	request, ok := r.m.requests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return request, nil
}

func (r *mockRequestRepo) GetWithCourse(ctx context.Context, id string) (*models.CourseRequest, error) {
	request, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	request.Course = r.m.courses[request.CourseID]
	return request, nil
}

func (r *mockRequestRepo) List(ctx context.Context, filters repositories.RequestFilters) ([]*models.CourseRequest, int64, error) {
	var out []*models.CourseRequest
	for _, req := range r.m.requests {
		if filters.CourseID != nil && req.CourseID != *filters.CourseID {
			continue
		}
		if filters.Status != nil && req.Status != *filters.Status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (r *mockRequestRepo) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	request, ok := r.m.requests[id]
	if !ok {
		return repositories.ErrNotFound
	}
	request.Status = status
	return nil
}

// ===== PROFILES =====

type mockProfileRepo struct{ m *mockRepository }

func (r *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	profile, ok := r.m.profiles[userID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return profile, nil
}

func (r *mockProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	if existing, ok := r.m.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	r.m.profiles[profile.UserID] = profile
	return nil
}

// ===== USERS =====

type mockUserRepo struct{ m *mockRepository }

func (r *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetWithProfile(ctx context.Context, id string) (*models.User, error) {
	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Profile = r.m.profiles[id]
	return user, nil
}

func (r *mockUserRepo) UpsertFromIdentity(ctx context.Context, user *models.User) (*models.User, error) {
	if existing, ok := r.m.users[user.ID]; ok {
		existing.Name = user.Name
		existing.Email = user.Email
		existing.Image = user.Image
		return existing, nil
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}
	r.m.users[user.ID] = user
	return user, nil
}

func (r *mockUserRepo) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range r.m.users {
		if filters.Role != nil && u.Role != *filters.Role {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	user.Role = role
	return user, nil
}

func (r *mockUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.m.users, id)
	delete(r.m.profiles, id)
	return nil
}

func (r *mockUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, ok := r.m.users[id]
	return ok, nil
}

// ===== DASHBOARD =====

type mockDashboardRepo struct{ m *mockRepository }

func (r *mockDashboardRepo) GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	stats := &repositories.PlatformStats{
		TotalUsers:   int64(len(r.m.users)),
		TotalCourses: int64(len(r.m.courses)),
	}
	for _, u := range r.m.users {
		switch u.Role {
		case models.RoleStudent:
			stats.TotalStudents++
		case models.RoleTeacher:
			stats.TotalTeachers++
		}
	}
	for _, req := range r.m.requests {
		switch req.Status {
		case models.RequestPending:
			stats.PendingRequests++
		case models.RequestAccepted:
			stats.AcceptedRequests++
		case models.RequestDeclined:
			stats.DeclinedRequests++
		}
	}
	return stats, nil
}

func (r *mockDashboardRepo) GetOwnerStats(ctx context.Context, teacherID string) (*repositories.OwnerStats, error) {
	stats := &repositories.OwnerStats{}
	owned := make(map[string]bool)
	for id, c := range r.m.courses {
		if c.TeacherID != nil && *c.TeacherID == teacherID {
			owned[id] = true
			stats.TotalCourses++
		}
	}
	for _, req := range r.m.requests {
		if !owned[req.CourseID] {
			continue
		}
		stats.TotalRequests++
		switch req.Status {
		case models.RequestPending:
			stats.PendingRequests++
		case models.RequestAccepted:
			stats.AcceptedRequests++
		case models.RequestDeclined:
			stats.DeclinedRequests++
		}
	}
	return stats, nil
}
