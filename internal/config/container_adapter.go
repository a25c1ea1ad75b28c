package config

import (
	"fmt"

	"github.com/garyjia/gov-travel-expense/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This bridges the file-based config loaded by viper and the container's
// configuration structure, building the regulation tables on the way.
func (c *Config) ToContainerConfig() (*container.Config, error) {
	tables, err := c.Regulation.Tables()
	if err != nil {
		return nil, fmt.Errorf("invalid regulation config: %w", err)
	}

	return &container.Config{
		Database: container.DatabaseConfig{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
		},
		Document: container.DocumentConfig{
			OutputDir:       c.Document.OutputDir,
			FontPath:        c.Document.FontPath,
			WorkbookFont:    c.Document.WorkbookFont,
			ExcelTemplate:   c.Document.ExcelTemplate,
			PreviewDPI:      c.Document.PreviewDPI,
			Retention:       c.Document.Retention,
			CleanupInterval: c.Document.CleanupInterval,
		},
		Routing: container.RoutingConfig{
			Enabled:           c.Routing.Enabled,
			NominatimURL:      c.Routing.NominatimURL,
			OSRMURL:           c.Routing.OSRMURL,
			UserAgent:         c.Routing.UserAgent,
			RequestsPerSecond: c.Routing.RequestsPerSecond,
			Timeout:           c.Routing.Timeout,
		},
		Server: container.ServerConfig{
			Host:            c.Server.Host,
			Port:            c.Server.Port,
			Mode:            c.Server.Mode,
			ReadTimeout:     c.Server.ReadTimeout,
			WriteTimeout:    c.Server.WriteTimeout,
			ShutdownTimeout: c.Server.ShutdownTimeout,
			AllowedOrigins:  c.Server.AllowedOrigins,
		},
		Tables: tables,
	}, nil
}
