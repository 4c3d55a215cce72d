package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	SRS     SRSConfig     `mapstructure:"srs"`
}

// ServerConfig contains the settings of the local command surface the GUI
// talks to.
type ServerConfig struct {
	// Host defaults to loopback; the command surface is not meant to be
	// reachable from other machines.
	Host     string `mapstructure:"host"      validate:"required"`
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the storage layout settings. Dir is the root
// directory holding Users.txt, the deck files, and the Log/ subdirectory.
// The launcher resolves a platform-specific default; the core never
// computes paths itself.
type StorageConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// SRSConfig overrides the scheduler parameters. Zero values keep the
// defaults (hard x1.2 floored at 1 day, ok +1, easy x2).
type SRSConfig struct {
	MinIntervalDays int     `mapstructure:"min_interval_days" validate:"gte=0"`
	HardMultiplier  float64 `mapstructure:"hard_multiplier"   validate:"gte=0"`
	OkIncrementDays int     `mapstructure:"ok_increment_days" validate:"gte=0"`
	EasyMultiplier  float64 `mapstructure:"easy_multiplier"   validate:"gte=0"`
}
