package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

var (
	ErrInvalidLogLevel         = errors.New("invalid log level")
	ErrInvalidBlendProbability = errors.New("blend probability must be within [0, 1]")
	ErrInvalidReplyDelay       = errors.New("reply delay must not be negative")
)

type Config struct {
	LogLevel          string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"7070"`
	Redis             Redis     `yaml:"redis"`
	SQLiteStoragePath string    `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./storage/matches.db"`
	Engine            Engine    `yaml:"engine"`
	Telemetry         Telemetry `yaml:"telemetry"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Engine struct {
	// Difficulty is used when a new game does not name one.
	Difficulty string `yaml:"difficulty" env:"ENGINE_DIFFICULTY" env-default:"medium"`
	// ReplyDelay is how long the computer waits before answering a human move.
	ReplyDelay       time.Duration `yaml:"reply-delay" env:"ENGINE_REPLY_DELAY" env-default:"400ms"`
	BlendProbability float64       `yaml:"blend-probability" env:"ENGINE_BLEND_PROBABILITY" env-default:"0.5"`
	// Seed makes the engine reproducible; zero draws the seed from system entropy.
	Seed uint64 `yaml:"seed" env:"ENGINE_SEED" env-default:"0"`
}

type Telemetry struct {
	Enabled bool `yaml:"enabled" env:"TELEMETRY_ENABLED" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the yaml file at path, applies env overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, that.LogLevel)
	}

	if that.Engine.BlendProbability < 0 || that.Engine.BlendProbability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidBlendProbability, that.Engine.BlendProbability)
	}

	if _, err := engine.ParseDifficulty(that.Engine.Difficulty); err != nil {
		return fmt.Errorf("engine difficulty: %w", err)
	}

	if that.Engine.ReplyDelay < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidReplyDelay, that.Engine.ReplyDelay)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
