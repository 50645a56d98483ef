// Package config loads ai-stack settings from defaults, ai-stack.yaml,
// .env and AI_STACK_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ai-stack/stackbuilder/internal/storage"
)

// EnvPrefix is prepended to every environment override, with dots in keys
// replaced by underscores: AI_STACK_SERVER_PORT sets server.port.
const EnvPrefix = "AI_STACK"

// FileName is the config file base name, without extension.
const FileName = "ai-stack"

// Config represents the ai-stack configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Preview PreviewConfig `mapstructure:"preview"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig configures ai-stack serve.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// RateLimit is the number of preview and analyze requests one client
	// may make per minute. Zero disables limiting.
	RateLimit int `mapstructure:"rate_limit"`
}

// PreviewConfig configures preview generation.
type PreviewConfig struct {
	Debounce  time.Duration `mapstructure:"debounce"`
	CacheSize int           `mapstructure:"cache_size"`
}

// StorageConfig selects the save slot backend.
type StorageConfig struct {
	Driver        string `mapstructure:"driver"`
	Dir           string `mapstructure:"dir"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	DSN           string `mapstructure:"dsn"`
	SlotKey       string `mapstructure:"slot_key"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dev   bool   `mapstructure:"dev"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8787)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.request_timeout", "15s")
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("preview.debounce", "500ms")
	v.SetDefault("preview.cache_size", 256)
	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.dir", ".ai-stack")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_password", "")
	v.SetDefault("storage.redis_db", 0)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.slot_key", "ai-stack-config")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dev", false)
}

// Load loads the configuration from the current directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads dir/.env and dir/ai-stack.yaml when present.
func LoadFrom(dir string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got: %d", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive, got: %s", c.Server.RequestTimeout)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got: %d", c.Server.RateLimit)
	}
	if c.Preview.Debounce < 0 {
		return fmt.Errorf("preview.debounce must not be negative, got: %s", c.Preview.Debounce)
	}
	if c.Preview.CacheSize <= 0 {
		return fmt.Errorf("preview.cache_size must be positive, got: %d", c.Preview.CacheSize)
	}
	switch c.Storage.Driver {
	case storage.DriverMemory, storage.DriverFile, storage.DriverRedis:
	case storage.DriverSQL:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the sql driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory, file, redis, sql, got: %s", c.Storage.Driver)
	}
	return nil
}

// Address is the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// StorageOptions converts the storage section for storage.Open.
func (c *Config) StorageOptions() storage.Config {
	return storage.Config{
		Driver:        c.Storage.Driver,
		Dir:           c.Storage.Dir,
		RedisAddr:     c.Storage.RedisAddr,
		RedisPassword: c.Storage.RedisPassword,
		RedisDB:       c.Storage.RedisDB,
		DSN:           c.Storage.DSN,
	}
}
