package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/domain/entity"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/persistence/sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftRepository implements port.DraftRepository
type DraftRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *sql.DB, logger *zap.Logger) *DraftRepository {
	return &DraftRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a draft, assigning a public id when none is set
func (r *DraftRepository) Create(ctx context.Context, draft *entity.Draft) error {
	query := `
		INSERT INTO drafts (public_id, name, payload, created_at)
		VALUES (?, ?, ?, ?)
	`

	if draft.PublicID == "" {
		draft.PublicID = uuid.NewString()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now().UTC()
	}

	result, err := r.getExecutor(ctx).ExecContext(ctx, query,
		draft.PublicID,
		draft.Name,
		string(draft.Payload),
		draft.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create draft",
			zap.String("name", draft.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create draft: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	draft.ID = id
	return nil
}

// List returns drafts newest first, without payloads
func (r *DraftRepository) List(ctx context.Context, limit int) ([]*entity.Draft, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, public_id, name, created_at
		FROM drafts
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list drafts", zap.Error(err))
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*entity.Draft
	for rows.Next() {
		var d entity.Draft
		if err := rows.Scan(&d.ID, &d.PublicID, &d.Name, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, &d)
	}
	return drafts, rows.Err()
}

// GetByPublicID retrieves a draft with its payload, or nil when missing
func (r *DraftRepository) GetByPublicID(ctx context.Context, publicID string) (*entity.Draft, error) {
	query := `
		SELECT id, public_id, name, payload, created_at
		FROM drafts
		WHERE public_id = ?
	`

	var d entity.Draft
	var payload string
	err := r.getExecutor(ctx).QueryRowContext(ctx, query, publicID).Scan(
		&d.ID,
		&d.PublicID,
		&d.Name,
		&payload,
		&d.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get draft",
			zap.String("public_id", publicID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	d.Payload = []byte(payload)
	return &d, nil
}

// Delete removes a draft and reports whether it existed
func (r *DraftRepository) Delete(ctx context.Context, publicID string) (bool, error) {
	result, err := r.getExecutor(ctx).ExecContext(ctx, "DELETE FROM drafts WHERE public_id = ?", publicID)
	if err != nil {
		r.logger.Error("Failed to delete draft",
			zap.String("public_id", publicID),
			zap.Error(err))
		return false, fmt.Errorf("failed to delete draft: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *DraftRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.DraftRepository = (*DraftRepository)(nil)
