// Package app provides the application context for loadout.
// It allows dependency injection for testing.
package app

import (
	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/config"
	"github.com/loadstone/loadout/internal/errors"
)

// App holds the application dependencies
type App struct {
	// Paths holds the configured paths
	Paths *config.Paths
}

// Option is a function that configures the App
type Option func(*App)

// WithPaths sets custom paths
func WithPaths(paths *config.Paths) Option {
	return func(a *App) {
		a.Paths = paths
	}
}

// New creates a new App with the given options
func New(opts ...Option) *App {
	app := &App{
		Paths: config.DefaultPaths(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// LoadSettings reads the optional tool configuration file. A broken or
// invalid file maps to the config-error exit code; a missing file is fine.
func (a *App) LoadSettings() (*config.Settings, error) {
	settings, err := config.LoadSettings(a.Paths.ConfigFile)
	if err != nil {
		return nil, errors.ConfigError("configuration unusable", err)
	}
	return settings, nil
}

// AuditLogger returns a logger appending to the configured audit log.
// Each call mints a fresh run ID, so commands construct one logger per
// invocation and thread it through.
func (a *App) AuditLogger() *audit.Logger {
	return audit.NewLogger(a.Paths.AuditLog)
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
