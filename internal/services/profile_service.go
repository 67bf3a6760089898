package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/validator"
	"gorm.io/datatypes"
)

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, v *validator.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		logger:    logger,
		validator: v,
	}
}

func (s *profileService) GetOwn(ctx context.Context, userID string) (*ProfileResponse, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	profile, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// No profile yet is a normal state, not an error.
			return &ProfileResponse{Profile: nil, CompletenessScore: 0}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &ProfileResponse{
		Profile:           profile,
		CompletenessScore: CompletenessScore(profile),
	}, nil
}

func (s *profileService) GetPublic(ctx context.Context, userID string) (*PublicProfileResponse, error) {
	user, err := s.repo.User().GetWithProfile(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := &PublicProfileResponse{
		User: &PublicUser{ID: user.ID, Name: user.Name, Image: user.Image},
	}
	if user.Profile != nil {
		resp.Profile = user.Profile
		resp.CompletenessScore = CompletenessScore(user.Profile)
	}
	return resp, nil
}

func (s *profileService) Upsert(ctx context.Context, userID string, req *ProfileUpdateRequest) (*ProfileResponse, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}

	if errs := s.validator.GetBusinessValidator().ValidateProfileUpdate(req); len(errs) > 0 {
		return nil, errs
	}

	profile, err := s.buildProfile(userID, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Profile().Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	stored, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload profile: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return &ProfileResponse{
		Profile:           stored,
		CompletenessScore: CompletenessScore(stored),
	}, nil
}

// buildProfile sanitizes the payload into the persistable row. Every
// list is filtered and then written as-is; clearing a list therefore
// works (an empty filtered list overwrites the stored one).
func (s *profileService) buildProfile(userID string, req *ProfileUpdateRequest) (*models.Profile, error) {
	videos := filterBlank(req.Videos)
	images := filterBlank(req.Images)

	links := make([]models.ProjectLink, 0, len(req.ProjectLinks))
	for _, l := range req.ProjectLinks {
		if strings.TrimSpace(l.Name) != "" && strings.TrimSpace(l.URL) != "" {
			links = append(links, l)
		}
	}

	certs := make([]models.Certificate, 0, len(req.Certificates))
	for _, c := range req.Certificates {
		if strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Issuer) != "" {
			certs = append(certs, c)
		}
	}

	profile := &models.Profile{
		UserID:    userID,
		Bio:       emptyToNil(req.Bio),
		Phone:     emptyToNil(req.Phone),
		Location:  emptyToNil(req.Location),
		ResumeURL: emptyToNil(req.ResumeURL),
	}

	var err error
	if profile.Videos, err = toJSON(videos); err != nil {
		return nil, err
	}
	if profile.Images, err = toJSON(images); err != nil {
		return nil, err
	}
	if profile.ProjectLinks, err = toJSON(links); err != nil {
		return nil, err
	}
	if profile.Certificates, err = toJSON(certs); err != nil {
		return nil, err
	}

	return profile, nil
}

// CompletenessScore derives the 0-6 profile score: one point each for
// a bio, at least one video, one image, one project link, a resume
// URL and one certificate. Recomputed on every view, never stored.
func CompletenessScore(p *models.Profile) int {
	if p == nil {
		return 0
	}

	score := 0
	if p.Bio != nil && strings.TrimSpace(*p.Bio) != "" {
		score++
	}
	if jsonListLen(p.Videos) > 0 {
		score++
	}
	if jsonListLen(p.Images) > 0 {
		score++
	}
	if jsonListLen(p.ProjectLinks) > 0 {
		score++
	}
	if p.ResumeURL != nil && strings.TrimSpace(*p.ResumeURL) != "" {
		score++
	}
	if jsonListLen(p.Certificates) > 0 {
		score++
	}
	return score
}

func filterBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile list: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func jsonListLen(raw datatypes.JSON) int {
	if len(raw) == 0 {
		return 0
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}
