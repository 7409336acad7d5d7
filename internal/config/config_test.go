package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	// Given: a config file with the engine section
	path := writeConfig(t, `
log-level: debug
http-port: "8080"
redis:
  host: redis
  port: "6380"
sqlite-storage-path: /tmp/matches.db
engine:
  difficulty: master
  reply-delay: 1s
  blend-probability: 0.75
  seed: 42
telemetry:
  enabled: true
`)

	// When: it is loaded
	conf, err := Load(path)

	// Then: every field is read
	require.NoError(t, err)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, "8080", conf.HTTPPort)
	assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
	assert.Equal(t, "/tmp/matches.db", conf.SQLiteStoragePath)
	assert.Equal(t, "master", conf.Engine.Difficulty)
	assert.Equal(t, time.Second, conf.Engine.ReplyDelay)
	assert.InDelta(t, 0.75, conf.Engine.BlendProbability, 1e-9)
	assert.Equal(t, uint64(42), conf.Engine.Seed)
	assert.True(t, conf.Telemetry.Enabled)
}

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(writeConfig(t, "log-level: info\n"))

	require.NoError(t, err)
	assert.Equal(t, "9090", conf.HTTPPort)
	assert.Equal(t, "7070", conf.SocketPort)
	assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	assert.Equal(t, "medium", conf.Engine.Difficulty)
	assert.Equal(t, 400*time.Millisecond, conf.Engine.ReplyDelay)
	assert.InDelta(t, 0.5, conf.Engine.BlendProbability, 1e-9)
	assert.False(t, conf.Telemetry.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ENGINE_DIFFICULTY", "expert")

	conf, err := Load(writeConfig(t, "engine:\n  difficulty: easy\n"))

	require.NoError(t, err)
	assert.Equal(t, "expert", conf.Engine.Difficulty)
}

func TestValidate(t *testing.T) {
	t.Run("blend probability out of range", func(t *testing.T) {
		_, err := Load(writeConfig(t, "engine:\n  blend-probability: 1.5\n"))
		assert.ErrorIs(t, err, ErrInvalidBlendProbability)
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log-level: verbose\n"))
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})

	t.Run("negative reply delay", func(t *testing.T) {
		conf := &Config{LogLevel: "info", Engine: Engine{Difficulty: "medium", ReplyDelay: -time.Second}}
		assert.ErrorIs(t, conf.Validate(), ErrInvalidReplyDelay)
	})

	t.Run("unknown engine difficulty", func(t *testing.T) {
		// Given: a config file with a misspelled default difficulty
		path := writeConfig(t, "engine:\n  difficulty: impossible\n")

		// When: it is loaded
		conf, err := Load(path)

		// Then: loading fails instead of the first computer game
		require.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
		assert.Nil(t, conf)
	})

	t.Run("unknown engine difficulty from env", func(t *testing.T) {
		t.Setenv("ENGINE_DIFFICULTY", "godlike")

		_, err := Load(writeConfig(t, "log-level: info\n"))
		assert.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}
