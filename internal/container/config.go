// Package container provides dependency injection and lifecycle management
// for the travel expense service.
package container

import (
	"fmt"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/domain/ratetable"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Document rendering configuration
	Document DocumentConfig

	// Road distance lookup configuration
	Routing RoutingConfig

	// Server configuration
	Server ServerConfig

	// Tables are the regulation rates every calculation reads
	Tables *ratetable.Tables
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration
}

// DocumentConfig holds form rendering settings.
type DocumentConfig struct {
	// OutputDir receives one folder per generated form
	OutputDir string

	// FontPath is the Thai TrueType font embedded in PDFs
	FontPath string

	// WorkbookFont is the font family name set on generated workbooks
	WorkbookFont string

	// ExcelTemplate is an optional workbook to fill instead of a blank one
	ExcelTemplate string

	// PreviewDPI is the rasterisation resolution of page previews
	PreviewDPI float64

	// Retention is how long generated folders are kept; zero keeps them forever
	Retention time.Duration

	// CleanupInterval is how often expired folders are swept
	CleanupInterval time.Duration
}

// RoutingConfig holds road distance lookup settings.
type RoutingConfig struct {
	Enabled           bool
	NominatimURL      string
	OSRMURL           string
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string
	Port            int
	Mode            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "data/travel_expense.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Document: DocumentConfig{
			OutputDir:       "generated_forms",
			FontPath:        "assets/fonts/THSarabunNew.ttf",
			WorkbookFont:    "TH Sarabun New",
			PreviewDPI:      110,
			Retention:       24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Routing: RoutingConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			Timeout:           10 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Mode:            "release",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Tables: ratetable.Default(),
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Document.OutputDir == "" {
		return fmt.Errorf("document.output_dir is required")
	}
	if c.Tables == nil {
		return fmt.Errorf("regulation tables are required")
	}
	return nil
}
