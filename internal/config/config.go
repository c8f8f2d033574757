package config

import (
	"ctchen222/Criss-Cross/internal/validator"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	RelayMemory = "memory"
	RelayRedis  = "redis"
)

type Config struct {
	LogLevel        string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	HTTPAddr        string        `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown-timeout" env:"SHUTDOWN_TIMEOUT" env-default:"5s" validate:"gt=0"`
	// AllowedOrigins lists the origins allowed to open a websocket. Empty allows any.
	AllowedOrigins []string  `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-separator:","`
	Game           Game      `yaml:"game"`
	Relay          Relay     `yaml:"relay"`
	Redis          Redis     `yaml:"redis"`
	Telemetry      Telemetry `yaml:"telemetry"`
}

type Game struct {
	Size        int    `yaml:"size" env:"GAME_SIZE" env-default:"3" validate:"min=2"`
	BotStrategy string `yaml:"bot-strategy" env:"BOT_STRATEGY" env-default:"first-available" validate:"required"`
}

type Relay struct {
	Backend string `yaml:"backend" env:"RELAY_BACKEND" env-default:"memory" validate:"oneof=memory redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Telemetry struct {
	Enabled bool `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
	// Endpoint is the OTLP gRPC collector address. Traces go to stdout when empty.
	Endpoint    string `yaml:"endpoint" env:"OTEL_COLLECTOR_ADDR"`
	ServiceName string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"criss-cross"`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(cfg)
	} else {
		err = cleanenv.ReadConfig(path, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for program start-up.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (r *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
