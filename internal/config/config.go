package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Document   DocumentConfig   `mapstructure:"document"`
	Routing    RoutingConfig    `mapstructure:"routing"`
	Regulation RegulationConfig `mapstructure:"regulation"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// DocumentConfig holds form generation configuration
type DocumentConfig struct {
	OutputDir     string  `mapstructure:"output_dir"`
	FontPath      string  `mapstructure:"font_path"`
	WorkbookFont  string  `mapstructure:"workbook_font"`
	ExcelTemplate string  `mapstructure:"excel_template"`
	PreviewDPI    float64 `mapstructure:"preview_dpi"`

	Retention       time.Duration `mapstructure:"retention"` // 0 keeps generated forms forever
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RoutingConfig holds road distance lookup configuration
type RoutingConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	NominatimURL      string        `mapstructure:"nominatim_url"`
	OSRMURL           string        `mapstructure:"osrm_url"`
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// LoadDotEnv loads environment variables from the given .env files.
// Missing files are skipped; variables already set are kept.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := gotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from file and environment variables.
// An empty configPath uses defaults and environment only.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.path", "data/travel_expense.db")
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)

	// Document defaults
	v.SetDefault("document.output_dir", "generated_forms")
	v.SetDefault("document.font_path", "assets/fonts/THSarabunNew.ttf")
	v.SetDefault("document.workbook_font", "TH Sarabun New")
	v.SetDefault("document.preview_dpi", 110)
	v.SetDefault("document.retention", 24*time.Hour)
	v.SetDefault("document.cleanup_interval", time.Hour)

	// Routing defaults
	v.SetDefault("routing.enabled", true)
	v.SetDefault("routing.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("routing.osrm_url", "https://router.project-osrm.org")
	v.SetDefault("routing.user_agent", "GovExpense-Distance-Calculator/1.0")
	v.SetDefault("routing.requests_per_second", 1.0)
	v.SetDefault("routing.timeout", 10*time.Second)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds deployment overrides to configuration keys
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.mode", "GIN_MODE")
	_ = v.BindEnv("database.path", "DATABASE_PATH")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("document.font_path", "THAI_FONT_PATH")
	_ = v.BindEnv("document.output_dir", "DOCUMENT_OUTPUT_DIR")
	_ = v.BindEnv("routing.user_agent", "ROUTING_USER_AGENT")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Document.OutputDir == "" {
		return fmt.Errorf("document.output_dir is required")
	}
	if c.Document.PreviewDPI < 0 {
		return fmt.Errorf("document.preview_dpi must not be negative")
	}
	if c.Document.Retention < 0 {
		return fmt.Errorf("document.retention must not be negative")
	}
	if c.Document.Retention > 0 && c.Document.CleanupInterval <= 0 {
		return fmt.Errorf("document.cleanup_interval must be positive when retention is set")
	}
	if c.Routing.Enabled && c.Routing.RequestsPerSecond <= 0 {
		return fmt.Errorf("routing.requests_per_second must be positive")
	}

	// Validate regulation tables
	if _, err := c.Regulation.Tables(); err != nil {
		return fmt.Errorf("regulation: %w", err)
	}

	return nil
}
