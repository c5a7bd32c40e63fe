package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const MAIN_DATA_RESOURCE = "main_data.csv"

const (
	DATASET_SOURCE_FILE = "file"
	DATASET_SOURCE_HTTP = "http"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	API     APIConfig     `mapstructure:"api"`
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatasetConfig struct {
	Source          string        `mapstructure:"source"`
	Path            string        `mapstructure:"path"`
	URL             string        `mapstructure:"url"`
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	// RefreshInterval of zero disables periodic reloads.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type APIConfig struct {
	RateLimit       int           `mapstructure:"rate_limit"`
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// Load reads config.yaml (optional) from the working directory, ./config or
// /etc/bikeshare-dashboard, then applies environment overrides such as
// DATASET_PATH or CACHE_ENABLED.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/bikeshare-dashboard/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = GetResourcePath(MAIN_DATA_RESOURCE)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bikeshare-dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.shutdown_timeout", "5s")

	v.SetDefault("dataset.source", DATASET_SOURCE_FILE)
	v.SetDefault("dataset.path", "")
	v.SetDefault("dataset.url", "")
	v.SetDefault("dataset.download_timeout", "30s")
	v.SetDefault("dataset.refresh_interval", "0s")

	v.SetDefault("redis.address", "redis:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.rate_limit_window", "1s")
}

func validateConfig(cfg *Config) error {
	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		return fmt.Errorf("app port %d out of range", cfg.App.Port)
	}
	switch cfg.Dataset.Source {
	case DATASET_SOURCE_FILE:
		if cfg.Dataset.Path == "" {
			return fmt.Errorf("dataset path must not be empty")
		}
	case DATASET_SOURCE_HTTP:
		if cfg.Dataset.URL == "" {
			return fmt.Errorf("dataset url must not be empty when source is %q", DATASET_SOURCE_HTTP)
		}
	default:
		return fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
	if cfg.Dataset.RefreshInterval < 0 {
		return fmt.Errorf("dataset refresh interval must not be negative")
	}
	if cfg.Cache.Enabled {
		if cfg.Redis.Address == "" {
			return fmt.Errorf("redis address must not be empty when cache is enabled")
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("cache ttl must be positive")
		}
	}
	if cfg.API.RateLimit <= 0 || cfg.API.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit and window must be positive")
	}
	return nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
