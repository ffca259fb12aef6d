// Package config reads runtime settings from an optional YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nathoo/retrodungeon/engine"
	"github.com/nathoo/retrodungeon/engine/monster"
)

// Environment variables that override the file.
const (
	EnvLogLevel = "RETRODUNGEON_LOG_LEVEL"
	EnvLogFile  = "RETRODUNGEON_LOG_FILE"
	EnvSeed     = "RETRODUNGEON_SEED"
	EnvWorld    = "RETRODUNGEON_WORLD"
)

type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	// Seed 0 asks the caller to pick a time-based seed.
	Seed  int64  `yaml:"seed"`
	World string `yaml:"world"` // directory of .lua files; empty uses the built-in dungeon

	MaxMessages    int           `yaml:"max_messages"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	MoveInterval   time.Duration `yaml:"monster_move_interval"`
	AttackInterval time.Duration `yaml:"monster_attack_interval"`
	PhaseDuration  time.Duration `yaml:"ending_phase_duration"`
}

// Default returns the standard settings.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		MaxMessages:    35,
		TickInterval:   60 * time.Millisecond,
		MoveInterval:   300 * time.Millisecond,
		AttackInterval: 2 * time.Second,
		PhaseDuration:  1500 * time.Millisecond,
	}
}

// Load starts from Default, applies the YAML file at path if path is not
// empty, then the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode rejects unknown keys so typos surface instead of being ignored.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.LogFile = getEnv(EnvLogFile, c.LogFile)
	c.World = getEnv(EnvWorld, c.World)

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.MaxMessages < 1 {
		return fmt.Errorf("max_messages must be positive, got %d", c.MaxMessages)
	}
	for name, d := range map[string]time.Duration{
		"tick_interval":           c.TickInterval,
		"monster_move_interval":   c.MoveInterval,
		"monster_attack_interval": c.AttackInterval,
		"ending_phase_duration":   c.PhaseDuration,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

// Timing converts the intervals into engine seconds.
func (c *Config) Timing() engine.Timing {
	return engine.Timing{
		Monster: monster.Timing{
			MoveInterval:   c.MoveInterval.Seconds(),
			AttackInterval: c.AttackInterval.Seconds(),
		},
		PhaseDuration: c.PhaseDuration.Seconds(),
	}
}

func parseLogLevel(level string) slog.Level {
	if l, ok := logLevels[strings.ToLower(level)]; ok {
		return l
	}
	return slog.LevelInfo
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
