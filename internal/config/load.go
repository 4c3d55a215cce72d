package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default values applied before any file, environment, or flag input.
const (
	defaultHost     = "127.0.0.1"
	defaultPort     = 8417
	defaultLogLevel = "info"
)

// Load builds the configuration from defaults, an optional config file,
// environment variables, and command-line flags, in ascending precedence.
//
// Environment variables use the FLASHCARDS_ prefix with underscores for
// nesting (e.g. FLASHCARDS_STORAGE_DIR, FLASHCARDS_SERVER_LOG_LEVEL).
// configFile may be empty; flags may be nil. defaultStorageDir is the
// platform-specific directory resolved by the launcher.
// Returns a validated Config or an error describing what failed.
func Load(configFile string, flags *pflag.FlagSet, defaultStorageDir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", defaultHost)
	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("storage.dir", defaultStorageDir)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configFile, err)
		}
	}

	v.SetEnvPrefix("FLASHCARDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate runs struct validation and translates the first failure into a
// readable error.
func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Errorf(
			"invalid configuration: field %q failed rule %q",
			first.Namespace(),
			first.Tag(),
		)
	}

	return fmt.Errorf("invalid configuration: %w", err)
}
