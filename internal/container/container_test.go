package container

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/gov-travel-expense/internal/application/service"
	"github.com/garyjia/gov-travel-expense/pkg/database"
)

func testConfig(t *testing.T) *Config {
	cfg := DefaultConfig()
	cfg.Database.Path = database.MemoryPath
	cfg.Document.OutputDir = filepath.Join(t.TempDir(), "forms")
	cfg.Document.FontPath = filepath.Join(t.TempDir(), "missing.ttf")
	cfg.Routing.Enabled = false
	cfg.Server.Mode = "test"
	return cfg
}

func TestNewContainer(t *testing.T) {
	logger := zap.NewNop()

	t.Run("requires config", func(t *testing.T) {
		_, err := NewContainer(nil, logger)
		assert.Error(t, err)
	})

	t.Run("requires logger", func(t *testing.T) {
		_, err := NewContainer(DefaultConfig(), nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing tables", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Tables = nil
		_, err := NewContainer(cfg, logger)
		assert.ErrorContains(t, err, "regulation tables")
	})
}

func TestContainer_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(testConfig(t), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, c.Start(ctx))
	assert.True(t, c.Ready())
	assert.Error(t, c.Start(ctx), "second start is rejected")

	services := c.Services()
	require.NotNil(t, services)
	assert.Equal(t, 1, c.Workers().Count(), "cleanup worker registered")
	assert.True(t, c.Workers().IsRunning())

	_, err = services.Distance.RoadDistance(ctx, "a", "b")
	assert.ErrorIs(t, err, service.ErrRoutingDisabled)

	profile, err := services.Profiles.Save(ctx, service.TravelerInput{Name: "สมชาย ใจดี", Grade: "C5"})
	require.NoError(t, err)
	assert.NotZero(t, profile.ID)

	health := c.Health(ctx)
	assert.True(t, health.Overall)
	assert.Equal(t, "disabled", health.Components["routing"].Message)

	w := httptest.NewRecorder()
	c.Server().Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.False(t, c.Workers().IsRunning())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(ctx))

	assert.False(t, c.Health(ctx).Overall)
}

func TestContainer_StartFailsOnMissingTemplate(t *testing.T) {
	cfg := testConfig(t)
	cfg.Document.ExcelTemplate = filepath.Join(t.TempDir(), "missing.xlsx")

	c, err := NewContainer(cfg, zap.NewNop())
	require.NoError(t, err)

	err = c.Start(context.Background())
	assert.ErrorContains(t, err, "template")
	assert.False(t, c.Ready())
}

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	adapter := &zapLoggerAdapter{logger: zap.New(core)}

	adapter.Info("Profile saved", "name", "สมชาย", "id", int64(7), 42, "ignored")
	adapter.Error("Render failed", "error", errors.New("disk full"))

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "สมชาย", fields["name"])
	assert.Equal(t, int64(7), fields["id"])
	assert.Len(t, fields, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "disk full", entries[1].ContextMap()["error"])
}
