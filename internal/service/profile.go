package service

import (
	"context"
	"strings"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(ctx, userID)
}

// Update changes the display name and the timezone weekly goals are computed in.
// Goals already created keep the week bounds they were created with.
func (s *ProfileService) Update(ctx context.Context, userID, name, timezone string) (*model.Profile, error) {
	name = strings.TrimSpace(name)
	timezone = strings.TrimSpace(timezone)

	err := validation.ValidateName(name)
	if err != nil {
		return nil, invalid("name", err)
	}
	err = validation.ValidateTimezone(timezone)
	if err != nil {
		return nil, invalid("timezone", err)
	}

	err = s.profileRepo.Update(ctx, userID, name, timezone)
	if err != nil {
		return nil, err
	}

	return s.profileRepo.ByUserID(ctx, userID)
}
