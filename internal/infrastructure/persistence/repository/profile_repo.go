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
	"go.uber.org/zap"
)

// ProfileRepository implements port.ProfileRepository
type ProfileRepository struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Save upserts the profile by full name and refreshes last_used
func (r *ProfileRepository) Save(ctx context.Context, profile *entity.SavedProfile) error {
	query := `
		INSERT INTO profiles (full_name, position, grade, department, last_used)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(full_name) DO UPDATE SET
			position = excluded.position,
			grade = excluded.grade,
			department = excluded.department,
			last_used = excluded.last_used
	`

	profile.LastUsed = r.now()
	exec := r.getExecutor(ctx)

	if _, err := exec.ExecContext(ctx, query,
		profile.FullName,
		profile.Position,
		profile.Grade.String(),
		profile.Department,
		profile.LastUsed,
	); err != nil {
		r.logger.Error("Failed to save profile",
			zap.String("full_name", profile.FullName),
			zap.Error(err))
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := exec.QueryRowContext(ctx,
		"SELECT id FROM profiles WHERE full_name = ?", profile.FullName,
	).Scan(&profile.ID); err != nil {
		return fmt.Errorf("failed to read profile id: %w", err)
	}
	return nil
}

// List returns profiles most recently used first
func (r *ProfileRepository) List(ctx context.Context, limit int) ([]*entity.SavedProfile, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
		SELECT id, full_name, position, grade, department, last_used
		FROM profiles
		ORDER BY last_used DESC, id DESC
		LIMIT ?
	`

	rows, err := r.getExecutor(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*entity.SavedProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetByName retrieves a profile, or nil when none matches
func (r *ProfileRepository) GetByName(ctx context.Context, fullName string) (*entity.SavedProfile, error) {
	query := `
		SELECT id, full_name, position, grade, department, last_used
		FROM profiles
		WHERE full_name = ?
	`

	p, err := scanProfile(r.getExecutor(ctx).QueryRowContext(ctx, query, fullName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get profile",
			zap.String("full_name", fullName),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// Touch marks a profile as used now
func (r *ProfileRepository) Touch(ctx context.Context, fullName string) error {
	_, err := r.getExecutor(ctx).ExecContext(ctx,
		"UPDATE profiles SET last_used = ? WHERE full_name = ?", r.now(), fullName)
	if err != nil {
		return fmt.Errorf("failed to touch profile: %w", err)
	}
	return nil
}

// Delete removes a profile and reports whether it existed
func (r *ProfileRepository) Delete(ctx context.Context, fullName string) (bool, error) {
	result, err := r.getExecutor(ctx).ExecContext(ctx, "DELETE FROM profiles WHERE full_name = ?", fullName)
	if err != nil {
		r.logger.Error("Failed to delete profile",
			zap.String("full_name", fullName),
			zap.Error(err))
		return false, fmt.Errorf("failed to delete profile: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*entity.SavedProfile, error) {
	var p entity.SavedProfile
	var grade string
	if err := row.Scan(&p.ID, &p.FullName, &p.Position, &grade, &p.Department, &p.LastUsed); err != nil {
		return nil, err
	}
	g, err := entity.ParseGrade(grade)
	if err != nil {
		return nil, fmt.Errorf("profile %d: %w", p.ID, err)
	}
	p.Grade = g
	return &p, nil
}

func (r *ProfileRepository) getExecutor(ctx context.Context) sqlite.Executor {
	return sqlite.ExecutorFrom(ctx, r.db)
}

// Verify interface compliance
var _ port.ProfileRepository = (*ProfileRepository)(nil)
