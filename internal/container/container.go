package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/application/service"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/worker"
	httpapi "github.com/garyjia/gov-travel-expense/internal/interfaces/http"
	"github.com/garyjia/gov-travel-expense/pkg/database"
	"go.uber.org/zap"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	// Infrastructure - Data
	db           *database.DB
	txManager    port.TransactionManager
	repositories *RepositoryBundle

	// Infrastructure - Documents and routing
	documents *DocumentBundle
	distance  port.DistanceProvider

	// Application
	services *ServiceBundle

	// Background jobs
	workers *worker.Manager

	// Interfaces
	server *httpapi.Server

	// Lifecycle
	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// RepositoryBundle groups all repositories for convenient access.
type RepositoryBundle struct {
	Profile port.ProfileRepository
	Draft   port.DraftRepository
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Calculation service.CalculationService
	Documents   service.DocumentService
	Profiles    service.ProfileService
	Drafts      service.DraftService
	Distance    service.DistanceService
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order: database and
// repositories, document renderers, routing client, application services,
// background workers, then the HTTP server. It does not start listening.
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization")

	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized", zap.String("path", c.config.Database.Path))

	if err := c.initDocuments(); err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize documents: %w", err)
	}
	c.logger.Info("Document renderers initialized", zap.String("output_dir", c.config.Document.OutputDir))

	c.distance = ProvideDistanceProvider(&c.config.Routing, c.logger)
	c.logger.Info("Routing initialized", zap.Bool("enabled", c.distance != nil))

	if err := c.initServices(); err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.logger.Info("Application services initialized")

	if err := c.initWorkers(ctx); err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize workers: %w", err)
	}
	c.logger.Info("Workers started", zap.Int("count", c.workers.Count()))

	c.initServer()

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop server: %w", err))
		}
	}

	if c.workers != nil {
		if err := c.workers.StopAll(); err != nil {
			errs = append(errs, fmt.Errorf("stop workers: %w", err))
		}
	}

	if err := c.closeDatabase(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors: %v", len(errs), errs)
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if err := pingFunc(c.db)(ctx); err != nil {
		status.Components["database"] = ComponentHealth{Healthy: false, Message: err.Error()}
		status.Overall = false
	} else {
		status.Components["database"] = ComponentHealth{Healthy: true}
	}

	if c.services != nil {
		status.Components["services"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["services"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.workers != nil && c.workers.IsRunning() {
		status.Components["workers"] = ComponentHealth{Healthy: true, Message: fmt.Sprintf("worker count: %d", c.workers.Count())}
	} else {
		status.Components["workers"] = ComponentHealth{Healthy: false, Message: "not running"}
		status.Overall = false
	}

	if c.distance != nil {
		status.Components["routing"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["routing"] = ComponentHealth{Healthy: true, Message: "disabled"}
	}

	return status
}

func (c *Container) initDatabase() error {
	dbBundle, err := ProvideDatabase(&c.config.Database, c.logger)
	if err != nil {
		return err
	}
	c.db = dbBundle.DB
	c.txManager = dbBundle.TransactionMgr

	repos, err := ProvideRepositories(c.db, c.logger)
	if err != nil {
		c.closeDatabase()
		return err
	}
	c.repositories = repos
	return nil
}

func (c *Container) initDocuments() error {
	docs, err := ProvideDocuments(&c.config.Document, c.logger)
	if err != nil {
		return err
	}
	c.documents = docs
	return nil
}

func (c *Container) initServices() error {
	services, err := ProvideServices(&ServiceDeps{
		Repos:     c.repositories,
		TxManager: c.txManager,
		Documents: c.documents,
		Distance:  c.distance,
		Config:    c.config,
		Logger:    c.logger,
	})
	if err != nil {
		return err
	}
	c.services = services
	return nil
}

func (c *Container) initWorkers(ctx context.Context) error {
	workers, err := ProvideWorkers(&c.config.Document, c.documents, c.logger)
	if err != nil {
		return err
	}
	c.workers = workers
	return c.workers.StartAll(ctx)
}

func (c *Container) initServer() {
	srv := c.config.Server
	c.server = httpapi.NewServer(httpapi.ServerConfig{
		Host:            srv.Host,
		Port:            srv.Port,
		Mode:            srv.Mode,
		ReadTimeout:     srv.ReadTimeout,
		WriteTimeout:    srv.WriteTimeout,
		ShutdownTimeout: srv.ShutdownTimeout,
		AllowedOrigins:  srv.AllowedOrigins,
	}, httpapi.Services{
		Calculation: c.services.Calculation,
		Documents:   c.services.Documents,
		Profiles:    c.services.Profiles,
		Drafts:      c.services.Drafts,
		Distance:    c.services.Distance,
		Health:      pingFunc(c.db),
	}, &zapLoggerAdapter{logger: c.logger.Named("http")})
}

func (c *Container) closeDatabase() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	if err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
	} else {
		c.logger.Info("Database closed")
	}
	c.db = nil
	return err
}

// Getters for accessing container components

// DB returns the transaction manager.
func (c *Container) DB() port.TransactionManager {
	return c.txManager
}

// Repositories returns all repositories.
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Workers returns the background worker manager.
func (c *Container) Workers() *worker.Manager {
	return c.workers
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Server returns the HTTP server, built by Start.
func (c *Container) Server() *httpapi.Server {
	return c.server
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the container's configuration.
func (c *Container) Config() *Config {
	return c.config
}

// zapLoggerAdapter adapts zap.Logger to the service and http Logger interfaces.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keysAndValues[i+1].(error); isErr {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
