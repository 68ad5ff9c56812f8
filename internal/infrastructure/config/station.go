package config

import "time"

// StationConfig holds crafting station runtime configuration
type StationConfig struct {
	// How often the daemon advances in-progress work
	TickInterval time.Duration `mapstructure:"tick_interval"`

	// Seed for the success roller. Zero means derive from the current time.
	RollSeed int64 `mapstructure:"roll_seed"`

	// Optional recipe catalog file loaded at startup (YAML)
	CatalogFile string `mapstructure:"catalog_file"`

	// Automatically unlock locked recipes when queued materials could
	// satisfy them
	AutoDiscover bool `mapstructure:"auto_discover"`

	// Grace period for in-flight work during daemon shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// PID file guarding against a second daemon instance
	PIDFile string `mapstructure:"pid_file"`
}

// MetricsConfig holds Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Output string `mapstructure:"output"`
}
