package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/pkg/utils"
)

// ErrProfileNotFound is returned when no profile has the requested name
var ErrProfileNotFound = errors.New("profile not found")

// DefaultProfileListLimit bounds profile listings when no limit is given
const DefaultProfileListLimit = 50

// ProfileService manages saved traveler profiles
type ProfileService interface {
	Save(ctx context.Context, input TravelerInput) (*entity.SavedProfile, error)
	List(ctx context.Context, limit int) ([]*entity.SavedProfile, error)
	Get(ctx context.Context, name string) (*entity.SavedProfile, error)
	Delete(ctx context.Context, name string) error
}

type profileServiceImpl struct {
	profileRepo port.ProfileRepository
	txManager   port.TransactionManager
	logger      Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo port.ProfileRepository, txManager port.TransactionManager, logger Logger) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Save validates the traveler and upserts it by full name
func (s *profileServiceImpl) Save(ctx context.Context, input TravelerInput) (*entity.SavedProfile, error) {
	traveler, err := input.toProfile()
	if err != nil {
		return nil, err
	}

	profile := &entity.SavedProfile{
		FullName:   traveler.Name,
		Position:   traveler.Position,
		Grade:      traveler.Grade,
		Department: traveler.Department,
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		return s.profileRepo.Save(txCtx, profile)
	})
	if err != nil {
		s.logger.Error("Failed to save profile", "name", profile.FullName, "error", err)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("Profile saved", "id", profile.ID, "name", profile.FullName)
	return profile, nil
}

// List returns the most recently used profiles
func (s *profileServiceImpl) List(ctx context.Context, limit int) ([]*entity.SavedProfile, error) {
	if limit <= 0 || limit > DefaultProfileListLimit {
		limit = DefaultProfileListLimit
	}
	profiles, err := s.profileRepo.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list profiles", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Get loads a profile and marks it as used
func (s *profileServiceImpl) Get(ctx context.Context, name string) (*entity.SavedProfile, error) {
	name = utils.SanitizeString(name)

	profile, err := s.profileRepo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error("Failed to get profile", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	if err := s.profileRepo.Touch(ctx, name); err != nil {
		// selection still succeeds
		s.logger.Error("Failed to touch profile", "name", name, "error", err)
	}
	return profile, nil
}

// Delete removes a profile by name
func (s *profileServiceImpl) Delete(ctx context.Context, name string) error {
	name = utils.SanitizeString(name)

	deleted, err := s.profileRepo.Delete(ctx, name)
	if err != nil {
		s.logger.Error("Failed to delete profile", "name", name, "error", err)
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
	}

	s.logger.Info("Profile deleted", "name", name)
	return nil
}
