package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jamapp/jam-admin/internal/logging"
)

// EnvPrefix is the prefix for environment overrides, e.g. JAM_SERVICE__LOG_LEVEL.
const EnvPrefix = "JAM_"

// Config holds the application configuration
type Config struct {
	App     AppConfig     `koanf:"app"`
	Service ServiceConfig `koanf:"service"`
	Catalog CatalogConfig `koanf:"catalog"`
}

// AppConfig holds the HTTP application settings
type AppConfig struct {
	Port   int    `koanf:"port"`
	AppURL string `koanf:"app_url"`
}

// ServiceConfig holds the service configuration
type ServiceConfig struct {
	StateFile       string        `koanf:"state_file"`
	LogLevel        string        `koanf:"log_level"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CatalogConfig lists the activity and serving tags seeded into an empty database
type CatalogConfig struct {
	Activities []string `koanf:"activities"`
	Servings   []string `koanf:"servings"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.port":                 8080,
		"app.app_url":              "http://localhost:8080",
		"service.state_file":       "data/jam-admin.db",
		"service.log_level":        "info",
		"service.read_timeout":     "15s",
		"service.write_timeout":    "15s",
		"service.shutdown_timeout": "5s",
		"catalog.activities":       []string{},
		"catalog.servings":         []string{},
	}
}

// Load reads configuration from defaults, the TOML file at path and the
// environment, in that order. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load default configuration: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		logger.Debug().Str("path", path).Msg("Configuration file loaded")
	}

	envProvider := env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", ".")
			if strings.HasPrefix(key, "catalog.") {
				return key, splitList(value)
			}
			return key, value
		},
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment configuration: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	// PORT is honoured for container platforms that inject it
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable %q: %w", portStr, err)
		}
		cfg.App.Port = port
	}

	if err := resolveStateFile(&cfg, path); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// splitList turns a comma separated environment value into trimmed items
func splitList(value string) []string {
	items := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// resolveStateFile makes the state file path absolute. Relative paths are
// taken from the parent of the config file directory, or the working
// directory when no file was given.
func resolveStateFile(cfg *Config, path string) error {
	if cfg.Service.StateFile == "" || filepath.IsAbs(cfg.Service.StateFile) {
		return nil
	}
	if path != "" {
		configDir := filepath.Dir(path)
		abs, err := filepath.Abs(filepath.Join(configDir, "..", cfg.Service.StateFile))
		if err != nil {
			return fmt.Errorf("failed to resolve state file path: %w", err)
		}
		cfg.Service.StateFile = abs
		return nil
	}
	abs, err := filepath.Abs(cfg.Service.StateFile)
	if err != nil {
		return fmt.Errorf("failed to resolve state file path: %w", err)
	}
	cfg.Service.StateFile = abs
	return nil
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.App.Port < 1 || cfg.App.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.App.Port)
	}

	if cfg.Service.StateFile == "" {
		return fmt.Errorf("state file is required")
	}

	if !logging.IsValidLevel(cfg.Service.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.Service.LogLevel)
	}

	if cfg.Service.ReadTimeout <= 0 || cfg.Service.WriteTimeout <= 0 {
		return fmt.Errorf("read and write timeouts must be positive")
	}

	if cfg.Service.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	for _, name := range append(append([]string{}, cfg.Catalog.Activities...), cfg.Catalog.Servings...) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("catalog entries cannot be blank")
		}
	}

	return nil
}
