// Package config loads pathgrid settings from the environment and command-line
// flags. Flags override environment values; environment values override the
// defaults in the struct tags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/pathgrid/pathfinder"
	"github.com/katalvlaran/pathgrid/playfield"
)

var (
	// ErrBadPort indicates a port outside 1..65535 with no Addr override.
	ErrBadPort = errors.New("config: port must be in 1..65535")

	// ErrBadLimits indicates a non-positive grid limit.
	ErrBadLimits = errors.New("config: grid limits must be positive")

	// ErrBadTimeout indicates a non-positive server timeout.
	ErrBadTimeout = errors.New("config: timeouts must be positive")
)

// Config holds pathgrid server and CLI configuration.
type Config struct {
	Port              int           `env:"PATHGRID_PORT" envDefault:"8080"`
	Addr              string        `env:"PATHGRID_ADDR"`
	MaxWidth          int           `env:"PATHGRID_MAX_WIDTH" envDefault:"1024"`
	MaxHeight         int           `env:"PATHGRID_MAX_HEIGHT" envDefault:"1024"`
	LogLevel          string        `env:"PATHGRID_LOG_LEVEL" envDefault:"info"`
	LogJSON           bool          `env:"PATHGRID_LOG_JSON" envDefault:"false"`
	Relaxation        string        `env:"PATHGRID_RELAXATION" envDefault:"overwrite"`
	ReadHeaderTimeout time.Duration `env:"PATHGRID_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"PATHGRID_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ParseConfig parses environment and flags into a validated Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("config: flag set is required")
	}
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The HTTP server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The HTTP server listen address (overrides -port)")
	fs.IntVar(&cfg.MaxWidth, "max-width", cfg.MaxWidth, "Largest accepted grid width")
	fs.IntVar(&cfg.MaxHeight, "max-height", cfg.MaxHeight, "Largest accepted grid height")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Emit logs as JSON")
	fs.StringVar(&cfg.Relaxation, "relaxation", cfg.Relaxation, "Relaxation mode: overwrite or strict")
	fs.DurationVar(&cfg.ReadHeaderTimeout, "read-header-timeout", cfg.ReadHeaderTimeout, "HTTP read header timeout")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" && (c.Port <= 0 || c.Port > 65535) {
		return fmt.Errorf("%w: %d", ErrBadPort, c.Port)
	}
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrBadLimits, c.MaxWidth, c.MaxHeight)
	}
	if c.ReadHeaderTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return ErrBadTimeout
	}
	if _, err := pathfinder.ParseRelaxation(c.Relaxation); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ListenAddr returns Addr when set, otherwise ":<Port>".
func (c Config) ListenAddr() string {
	if addr := strings.TrimSpace(c.Addr); addr != "" {
		return addr
	}
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// Limits returns the configured grid limits.
func (c Config) Limits() playfield.Limits {
	return playfield.Limits{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// PathOptions translates c into pathfinder options. c must be valid.
func (c Config) PathOptions(logger logrus.FieldLogger) []pathfinder.Option {
	relax, err := pathfinder.ParseRelaxation(c.Relaxation)
	if err != nil {
		relax = pathfinder.RelaxOverwrite
	}
	return []pathfinder.Option{
		pathfinder.WithLimits(c.Limits()),
		pathfinder.WithRelaxation(relax),
		pathfinder.WithLogger(logger),
	}
}

// NewLogger builds a logrus logger writing to stderr at the configured level.
func (c Config) NewLogger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	if c.LogJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
