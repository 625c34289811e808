package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/container-optimizer/internal/packer"
	"github.com/eugenenazirov/container-optimizer/internal/shipping"
	"github.com/eugenenazirov/container-optimizer/internal/storage"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
	defaultEnvFile        = ".env"
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
	LogLevel             string

	Storage        storage.Options
	PackerStrategy string
	ReadyThreshold float64
	ContainerTypes shipping.Catalogue
	Containers     []shipping.Slot
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string             `yaml:"port"`
	LogLevel             string             `yaml:"log_level"`
	ShutdownGracePeriod  string             `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string             `yaml:"read_header_timeout"`
	WriteTimeout         string             `yaml:"write_timeout"`
	IdleTimeout          string             `yaml:"idle_timeout"`
	EnableRequestLogging *bool              `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit      `yaml:"rate_limit"`
	Storage              storage.Options    `yaml:"storage"`
	Packer               yamlPacker         `yaml:"packer"`
	ContainerTypes       shipping.Catalogue `yaml:"container_types"`
	Containers           []shipping.Slot    `yaml:"containers"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// yamlPacker represents the packer section in YAML.
type yamlPacker struct {
	Strategy       string   `yaml:"strategy"`
	ReadyThreshold *float64 `yaml:"ready_threshold"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	EnvFile        string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
	LogLevel       *string
	StorageBackend *string
	SQLitePath     *string
	Strategy       *string
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Populate the environment from a dotenv file; variables already set win
	envFile, required := defaultEnvFile, false
	if overrides != nil && overrides.EnvFile != "" {
		envFile, required = overrides.EnvFile, true
	}
	if err := loadEnvFile(envFile, required); err != nil {
		return Config{}, err
	}

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyYAMLConfig(&cfg, yamlCfg); err != nil {
			return Config{}, err
		}
	}

	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
		LogLevel:             defaultLogLevel,
		Storage:              storage.DefaultOptions(),
		PackerStrategy:       packer.StrategyFirstFit,
		ReadyThreshold:       packer.DefaultReadyThreshold,
		ContainerTypes:       shipping.DefaultCatalogue(),
		Containers:           shipping.DefaultLayout(),
	}
}

func loadEnvFile(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !required && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) error {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}

	durations := []struct {
		name   string
		raw    string
		target *time.Duration
	}{
		{"shutdown_grace_period", yamlCfg.ShutdownGracePeriod, &cfg.ShutdownGracePeriod},
		{"read_header_timeout", yamlCfg.ReadHeaderTimeout, &cfg.ReadHeaderTimeout},
		{"write_timeout", yamlCfg.WriteTimeout, &cfg.WriteTimeout},
		{"idle_timeout", yamlCfg.IdleTimeout, &cfg.IdleTimeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		value, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.name, err)
		}
		*d.target = value
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}

	mergeStorage(&cfg.Storage, yamlCfg.Storage)

	if yamlCfg.Packer.Strategy != "" {
		cfg.PackerStrategy = yamlCfg.Packer.Strategy
	}
	if yamlCfg.Packer.ReadyThreshold != nil {
		cfg.ReadyThreshold = *yamlCfg.Packer.ReadyThreshold
	}

	// Catalogue entries replace defaults per type
	for t, spec := range yamlCfg.ContainerTypes {
		cfg.ContainerTypes[t] = spec
	}
	if len(yamlCfg.Containers) > 0 {
		cfg.Containers = yamlCfg.Containers
	}
	return nil
}

func mergeStorage(dst *storage.Options, src storage.Options) {
	if src.Backend != "" {
		dst.Backend = src.Backend
	}
	if src.SQLitePath != "" {
		dst.SQLitePath = src.SQLitePath
	}
	if src.PostgresDSN != "" {
		dst.PostgresDSN = src.PostgresDSN
	}
	if src.RedisAddr != "" {
		dst.RedisAddr = src.RedisAddr
	}
	if src.RedisPassword != "" {
		dst.RedisPassword = src.RedisPassword
	}
	if src.RedisDB != 0 {
		dst.RedisDB = src.RedisDB
	}
	if src.RedisPrefix != "" {
		dst.RedisPrefix = src.RedisPrefix
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) error {
	if port := env("PORT"); port != "" {
		cfg.Port = port
	}
	if level := env("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if rps := env("RATE_LIMIT_RPS"); rps != "" {
		value, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_RPS: %w", err)
		}
		cfg.RateLimitRPS = value
	}
	if burst := env("RATE_LIMIT_BURST"); burst != "" {
		value, err := strconv.Atoi(burst)
		if err != nil {
			return fmt.Errorf("parse RATE_LIMIT_BURST: %w", err)
		}
		cfg.RateLimitBurst = value
	}

	mergeStorage(&cfg.Storage, storage.Options{
		Backend:       env("STORAGE_BACKEND"),
		SQLitePath:    env("SQLITE_PATH"),
		PostgresDSN:   env("POSTGRES_DSN"),
		RedisAddr:     env("REDIS_ADDR"),
		RedisPassword: env("REDIS_PASSWORD"),
		RedisPrefix:   env("REDIS_PREFIX"),
	})
	if db := env("REDIS_DB"); db != "" {
		value, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("parse REDIS_DB: %w", err)
		}
		cfg.Storage.RedisDB = value
	}

	if strategy := env("PACKER_STRATEGY"); strategy != "" {
		cfg.PackerStrategy = strategy
	}
	if threshold := env("READY_THRESHOLD"); threshold != "" {
		value, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return fmt.Errorf("parse READY_THRESHOLD: %w", err)
		}
		cfg.ReadyThreshold = value
	}
	return nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.StorageBackend != nil && *overrides.StorageBackend != "" {
		cfg.Storage.Backend = *overrides.StorageBackend
	}
	if overrides.SQLitePath != nil && *overrides.SQLitePath != "" {
		cfg.Storage.SQLitePath = *overrides.SQLitePath
	}
	if overrides.Strategy != nil && *overrides.Strategy != "" {
		cfg.PackerStrategy = *overrides.Strategy
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	switch cfg.Storage.Backend {
	case storage.BackendMemory, storage.BackendSQLite, storage.BackendRedis:
	case storage.BackendPostgres:
		if cfg.Storage.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("%w: %q", storage.ErrUnsupportedBackend, cfg.Storage.Backend)
	}

	if cfg.PackerStrategy != packer.StrategyFirstFit && cfg.PackerStrategy != packer.StrategyBestFit {
		return fmt.Errorf("%w: %q", packer.ErrUnknownStrategy, cfg.PackerStrategy)
	}
	if !(cfg.ReadyThreshold > 0 && cfg.ReadyThreshold <= 1) {
		return fmt.Errorf("ready threshold must be in (0, 1], got %v", cfg.ReadyThreshold)
	}

	if err := cfg.ContainerTypes.Validate(); err != nil {
		return fmt.Errorf("container types: %w", err)
	}
	total := 0
	for _, slot := range cfg.Containers {
		if _, err := cfg.ContainerTypes.Lookup(slot.Type); err != nil {
			return fmt.Errorf("containers: %w", err)
		}
		if slot.Count < 0 {
			return fmt.Errorf("containers: count for %s must be >= 0, got %d", slot.Type, slot.Count)
		}
		total += slot.Count
	}
	if total == 0 {
		return fmt.Errorf("containers: layout must define at least one container")
	}
	return nil
}
