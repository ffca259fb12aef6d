package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "retrodungeon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvLogLevel, EnvLogFile, EnvSeed, EnvWorld} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	timing := cfg.Timing()
	assert.InDelta(t, 0.3, timing.Monster.MoveInterval, 1e-9)
	assert.InDelta(t, 2.0, timing.Monster.AttackInterval, 1e-9)
	assert.InDelta(t, 1.5, timing.PhaseDuration, 1e-9)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
log_level: debug
log_file: /tmp/rd.log
seed: 42
world: ./worlds/alt
max_messages: 50
tick_interval: 30ms
monster_move_interval: 500ms
monster_attack_interval: 1s
ending_phase_duration: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, "/tmp/rd.log", cfg.LogFile)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "./worlds/alt", cfg.World)
	assert.Equal(t, 50, cfg.MaxMessages)
	assert.Equal(t, 30*time.Millisecond, cfg.TickInterval)
	assert.InDelta(t, 0.5, cfg.Timing().Monster.MoveInterval, 1e-9)
	assert.InDelta(t, 2.0, cfg.Timing().PhaseDuration, 1e-9)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "seed: 7\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 35, cfg.MaxMessages)
	assert.Equal(t, 60*time.Millisecond, cfg.TickInterval)
}

func TestLoad_EmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "log_level: error\nseed: 1\n")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvWorld, "/srv/world")
	t.Setenv(EnvLogFile, "game.log")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "/srv/world", cfg.World)
	assert.Equal(t, "game.log", cfg.LogFile)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "unknown key", body: "colour: red\n", want: "colour"},
		{name: "bad duration", body: "tick_interval: soon\n", want: "parsing config"},
		{name: "bad level", body: "log_level: loud\n", want: `unknown log level "loud"`},
		{name: "zero messages", body: "max_messages: 0\n", want: "max_messages must be positive"},
		{name: "negative interval", body: "monster_move_interval: -1s\n", want: "monster_move_interval must be positive"},
		{name: "bad seed env", env: map[string]string{EnvSeed: "abc"}, want: EnvSeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
