// Package config loads server settings from dex.yaml, DEX_* environment
// variables and an optional .env file.
package config

import (
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/KirkDiggler/dex-api/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g. DEX_SERVER_PORT
const EnvPrefix = "DEX"

// Keys shared by viper defaults, cobra flag bindings and the yaml file
const (
	KeyServerPort       = "server.port"
	KeyDataDir          = "data.dir"
	KeyAssetsBaseURL    = "assets.base_url"
	KeyRedisEndpoint    = "redis.endpoint"
	KeyRedisTTL         = "redis.ttl"
	KeyLogLevel         = "log.level"
	KeyLogFormat        = "log.format"
	KeyTelemetryEnabled = "telemetry.enabled"
	KeyEngineSeed       = "engine.seed"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config is the full server configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Assets    AssetsConfig    `mapstructure:"assets"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Engine    EngineConfig    `mapstructure:"engine"`
}

// ServerConfig holds the gRPC listener settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DataConfig points at the CSV dataset. An empty Dir uses the embedded one.
type DataConfig struct {
	Dir string `mapstructure:"dir"`
}

// AssetsConfig holds the artwork CDN
type AssetsConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// RedisConfig enables the species view cache when Endpoint is set
type RedisConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig toggles the OTLP exporter
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// EngineConfig seeds the move engine. Zero uses the crypto roller.
type EngineConfig struct {
	Seed int64 `mapstructure:"seed"`
}

// New returns a viper instance with defaults, env overrides and the
// dex.yaml search path set up
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyServerPort, 50051)
	v.SetDefault(KeyDataDir, "")
	v.SetDefault(KeyAssetsBaseURL, "")
	v.SetDefault(KeyRedisEndpoint, "")
	v.SetDefault(KeyRedisTTL, time.Hour)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyTelemetryEnabled, false)
	v.SetDefault(KeyEngineSeed, 0)

	v.SetConfigName("dex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadEnvFile loads a .env file into the process environment. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "failed to load env file %s", path)
	}
	return nil
}

// Load reads the config file if one is found and decodes v into a Config
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.InvalidArgument("viper instance is required")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks ranges and enums
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange(KeyServerPort, c.Server.Port, 1, 65535, vb)
	errors.ValidateEnum(KeyLogLevel, strings.ToLower(c.Log.Level), logLevels, vb)
	errors.ValidateEnum(KeyLogFormat, strings.ToLower(c.Log.Format), logFormats, vb)
	if c.Redis.TTL < 0 {
		vb.Fieldf(KeyRedisTTL, "must not be negative, got %s", c.Redis.TTL)
	}
	if c.Assets.BaseURL != "" {
		if u, err := url.Parse(c.Assets.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			vb.InvalidField(KeyAssetsBaseURL, "must be an absolute URL")
		}
	}

	return vb.Build()
}

// SlogLevel maps the configured level name to a slog.Level
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds a logger writing to w in the configured format
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.ToLower(c.Format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
