package port

import (
	"context"

	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
)

// TransactionManager runs fn inside one database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ProfileRepository persists traveler profiles keyed by full name.
type ProfileRepository interface {
	// Save inserts or updates the profile with the same full name and
	// marks it as used now. The ID is filled in on return.
	Save(ctx context.Context, profile *entity.SavedProfile) error
	// List returns profiles, most recently used first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*entity.SavedProfile, error)
	// GetByName returns nil when no profile has that name.
	GetByName(ctx context.Context, fullName string) (*entity.SavedProfile, error)
	Touch(ctx context.Context, fullName string) error
	Delete(ctx context.Context, fullName string) (bool, error)
}

// DraftRepository persists saved calculation requests.
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	// List returns drafts newest first without their payloads.
	List(ctx context.Context, limit int) ([]*entity.Draft, error)
	// GetByPublicID returns nil when the draft does not exist.
	GetByPublicID(ctx context.Context, publicID string) (*entity.Draft, error)
	Delete(ctx context.Context, publicID string) (bool, error)
}
