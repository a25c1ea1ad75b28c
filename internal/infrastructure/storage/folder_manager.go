package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/pkg/utils"
	"go.uber.org/zap"
)

// LocalFolderManager implements port.FolderManager on the local filesystem.
// Every generated claim gets its own folder under baseDir.
type LocalFolderManager struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalFolderManager creates a new LocalFolderManager
func NewLocalFolderManager(baseDir string, logger *zap.Logger) *LocalFolderManager {
	return &LocalFolderManager{
		baseDir: baseDir,
		logger:  logger,
	}
}

// CreateFolder creates the folder for name and returns its full path.
// Creating an existing folder is not an error.
func (m *LocalFolderManager) CreateFolder(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("cannot create folder: empty name")
	}

	folderPath := m.GetPath(name)
	if err := m.within(folderPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(folderPath, 0755); err != nil {
		m.logger.Error("Failed to create folder",
			zap.String("name", name),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create folder: %w", err)
	}

	m.logger.Debug("Created folder",
		zap.String("name", name),
		zap.String("folder_path", folderPath))
	return folderPath, nil
}

// GetPath returns the folder path for name without creating it
func (m *LocalFolderManager) GetPath(name string) string {
	return filepath.Join(m.baseDir, m.SanitizeName(name))
}

// Exists checks if the folder already exists
func (m *LocalFolderManager) Exists(name string) bool {
	info, err := os.Stat(m.GetPath(name))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Delete removes a folder and all contents. Missing folders are ignored.
func (m *LocalFolderManager) Delete(ctx context.Context, name string) error {
	folderPath := m.GetPath(name)
	if err := m.within(folderPath); err != nil {
		return err
	}

	if err := os.RemoveAll(folderPath); err != nil {
		m.logger.Error("Failed to delete folder",
			zap.String("name", name),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	m.logger.Debug("Deleted folder", zap.String("folder_path", folderPath))
	return nil
}

// PruneOlderThan removes output folders last modified before cutoff and
// returns how many were removed. Loose files in baseDir are left alone.
func (m *LocalFolderManager) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	entries, err := os.ReadDir(m.baseDir)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to list output folders: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := m.Delete(ctx, entry.Name()); err != nil {
			return removed, err
		}
		removed++
	}

	if removed > 0 {
		m.logger.Info("Pruned output folders",
			zap.Int("removed", removed),
			zap.Time("cutoff", cutoff))
	}
	return removed, nil
}

// SanitizeName returns a single path element safe to create under baseDir.
// Thai names are kept readable.
func (m *LocalFolderManager) SanitizeName(name string) string {
	return utils.SanitizeFileName(name)
}

// within rejects paths that resolve outside baseDir or to baseDir itself.
func (m *LocalFolderManager) within(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	absBase, err := filepath.Abs(m.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", path)
	}
	return nil
}

// Verify interface compliance
var (
	_ port.FolderManager = (*LocalFolderManager)(nil)
	_ port.FolderPruner  = (*LocalFolderManager)(nil)
)
