package profile

import (
	"context"
	"errors"

	"tixly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

// FallbackDisplayName is used wherever a display name cannot be resolved.
const FallbackDisplayName = "unknown customer"

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error)
	// DisplayName resolves a user's display name, falling back instead of
	// failing so callers can always render something.
	DisplayName(ctx context.Context, userID uuid.UUID) string
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return toResponse(p), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	updates := make(map[string]interface{})
	var fields []string

	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
		fields = append(fields, "display_name")
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
		fields = append(fields, "phone")
	}
	if req.Language != nil {
		updates["language"] = *req.Language
		fields = append(fields, "language")
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}

	p, err := s.repo.Update(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	s.log.LogProfileUpdated(ctx, userID.String(), fields)
	return toResponse(p), nil
}

func (s *service) DisplayName(ctx context.Context, userID uuid.UUID) string {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil || p.DisplayName == "" {
		return FallbackDisplayName
	}
	return p.DisplayName
}

func toResponse(p *Profile) *ProfileResponse {
	return &ProfileResponse{
		UserID:      p.UserID.String(),
		DisplayName: p.DisplayName,
		Phone:       p.Phone,
		Language:    p.Language,
		Role:        p.Role,
		UpdatedAt:   p.UpdatedAt,
	}
}
