package port

import (
	"context"
	"time"
)

// FolderManager manages one output folder per generated claim
type FolderManager interface {
	CreateFolder(ctx context.Context, name string) (string, error)
	GetPath(name string) string
	Exists(name string) bool
	Delete(ctx context.Context, name string) error
	SanitizeName(name string) string
}

// FolderPruner removes output folders that are no longer needed
type FolderPruner interface {
	PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
