package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/pkg/utils"
)

// ErrDraftNotFound is returned when no draft has the requested id
var ErrDraftNotFound = errors.New("draft not found")

// DefaultDraftListLimit bounds draft listings when no limit is given
const DefaultDraftListLimit = 100

// DraftService stores unfinished claims. Drafts may be incomplete, so the
// payload is not validated beyond being a ClaimInput.
type DraftService interface {
	Save(ctx context.Context, name string, input *ClaimInput) (*entity.Draft, error)
	List(ctx context.Context, limit int) ([]*entity.Draft, error)
	Load(ctx context.Context, publicID string) (*entity.Draft, *ClaimInput, error)
	Delete(ctx context.Context, publicID string) error
}

type draftServiceImpl struct {
	draftRepo port.DraftRepository
	logger    Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(draftRepo port.DraftRepository, logger Logger) DraftService {
	return &draftServiceImpl{
		draftRepo: draftRepo,
		logger:    logger,
	}
}

// Save stores the input under name
func (s *draftServiceImpl) Save(ctx context.Context, name string, input *ClaimInput) (*entity.Draft, error) {
	name = utils.SanitizeString(name)
	if err := utils.ValidateName("draft name", name); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidValue, err)
	}
	if input == nil {
		input = &ClaimInput{}
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft: %w", err)
	}

	draft := &entity.Draft{Name: name, Payload: payload}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		s.logger.Error("Failed to save draft", "name", name, "error", err)
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Info("Draft saved", "id", draft.PublicID, "name", name, "bytes", len(payload))
	return draft, nil
}

// List returns drafts newest first, without payloads
func (s *draftServiceImpl) List(ctx context.Context, limit int) ([]*entity.Draft, error) {
	if limit <= 0 || limit > DefaultDraftListLimit {
		limit = DefaultDraftListLimit
	}
	drafts, err := s.draftRepo.List(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list drafts", "error", err)
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	return drafts, nil
}

// Load returns the draft and its decoded input
func (s *draftServiceImpl) Load(ctx context.Context, publicID string) (*entity.Draft, *ClaimInput, error) {
	draft, err := s.draftRepo.GetByPublicID(ctx, publicID)
	if err != nil {
		s.logger.Error("Failed to load draft", "id", publicID, "error", err)
		return nil, nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if draft == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrDraftNotFound, publicID)
	}

	var input ClaimInput
	if err := json.Unmarshal(draft.Payload, &input); err != nil {
		s.logger.Error("Corrupt draft payload", "id", publicID, "error", err)
		return nil, nil, fmt.Errorf("failed to decode draft %s: %w", publicID, err)
	}
	return draft, &input, nil
}

// Delete removes a draft
func (s *draftServiceImpl) Delete(ctx context.Context, publicID string) error {
	deleted, err := s.draftRepo.Delete(ctx, publicID)
	if err != nil {
		s.logger.Error("Failed to delete draft", "id", publicID, "error", err)
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrDraftNotFound, publicID)
	}
	s.logger.Info("Draft deleted", "id", publicID)
	return nil
}
