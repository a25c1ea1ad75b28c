package container

import (
	"context"
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/garyjia/gov-travel-expense/internal/application/service"
	"github.com/garyjia/gov-travel-expense/internal/domain/expense"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/document"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/external/routing"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/persistence/repository"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/storage"
	"github.com/garyjia/gov-travel-expense/internal/infrastructure/worker"
	"github.com/garyjia/gov-travel-expense/pkg/database"
	"go.uber.org/zap"
)

// DatabaseBundle holds database-related components.
type DatabaseBundle struct {
	DB             *database.DB
	TransactionMgr *sqlite.TxManager
}

// DocumentBundle holds the form renderers.
type DocumentBundle struct {
	PDF           port.PDFWriter
	Workbook      port.SpreadsheetWriter
	Preview       port.PreviewRenderer
	FolderManager port.FolderManager
	Pruner        port.FolderPruner
}

// ProvideDatabase opens the profile and draft store and applies the
// embedded schema.
func ProvideDatabase(cfg *DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(db, logger).Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		DB:             db,
		TransactionMgr: sqlite.NewTxManager(db.DB, logger),
	}, nil
}

// ProvideRepositories creates all repositories from a database connection.
func ProvideRepositories(db *database.DB, logger *zap.Logger) (*RepositoryBundle, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &RepositoryBundle{
		Profile: repository.NewProfileRepository(db.DB, logger),
		Draft:   repository.NewDraftRepository(db.DB, logger),
	}, nil
}

// ProvideDocuments creates the PDF and workbook renderers and the output
// folder manager.
func ProvideDocuments(cfg *DocumentConfig, logger *zap.Logger) (*DocumentBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("document config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	workbook, err := document.NewExcelFiller(cfg.ExcelTemplate, cfg.WorkbookFont, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create workbook renderer: %w", err)
	}

	folders := storage.NewLocalFolderManager(cfg.OutputDir, logger)
	return &DocumentBundle{
		PDF:           document.NewPDFRenderer(cfg.FontPath, logger),
		Workbook:      workbook,
		Preview:       document.NewPreviewRenderer(cfg.PreviewDPI, logger),
		FolderManager: folders,
		Pruner:        folders,
	}, nil
}

// ProvideDistanceProvider creates the road distance client, or nil when
// lookups are disabled.
func ProvideDistanceProvider(cfg *RoutingConfig, logger *zap.Logger) port.DistanceProvider {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	return routing.NewClient(routing.Options{
		NominatimURL:      cfg.NominatimURL,
		OSRMURL:           cfg.OSRMURL,
		UserAgent:         cfg.UserAgent,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.Timeout,
	}, logger)
}

// ProvideWorkers creates the worker manager with the output cleanup worker
// registered when a retention is configured. Workers are not started.
func ProvideWorkers(cfg *DocumentConfig, docs *DocumentBundle, logger *zap.Logger) (*worker.Manager, error) {
	if cfg == nil || docs == nil {
		return nil, fmt.Errorf("document config and renderers are required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	manager := worker.NewManager(logger)
	if cfg.Retention > 0 {
		manager.Register(worker.NewCleanupWorker(worker.CleanupConfig{
			Interval:  cfg.CleanupInterval,
			Retention: cfg.Retention,
		}, docs.Pruner, logger))
	}
	return manager, nil
}

// ServiceDeps holds dependencies required for creating services.
type ServiceDeps struct {
	Repos     *RepositoryBundle
	TxManager port.TransactionManager
	Documents *DocumentBundle
	Distance  port.DistanceProvider
	Config    *Config
	Logger    *zap.Logger
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if deps.TxManager == nil {
		return nil, fmt.Errorf("transaction manager is required")
	}
	if deps.Documents == nil {
		return nil, fmt.Errorf("document renderers are required")
	}
	if deps.Config == nil || deps.Config.Tables == nil {
		return nil, fmt.Errorf("regulation tables are required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := &zapLoggerAdapter{logger: deps.Logger}

	calculation := service.NewCalculationService(expense.NewCalculator(deps.Config.Tables), serviceLogger)

	return &ServiceBundle{
		Calculation: calculation,
		Documents: service.NewDocumentService(
			calculation,
			deps.Documents.FolderManager,
			deps.Documents.PDF,
			deps.Documents.Workbook,
			deps.Documents.Preview,
			serviceLogger,
		),
		Profiles: service.NewProfileService(deps.Repos.Profile, deps.TxManager, serviceLogger),
		Drafts:   service.NewDraftService(deps.Repos.Draft, serviceLogger),
		Distance: service.NewDistanceService(deps.Distance, serviceLogger),
	}, nil
}

// pingFunc adapts a database ping to the HTTP health check
func pingFunc(db *database.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if db == nil {
			return fmt.Errorf("database not initialized")
		}
		return db.PingContext(ctx)
	}
}
