package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/everypolitician/commons-tools/pkg/logging"
)

func TestNewLoggerFromConfig(t *testing.T) {
	t.Run("json file output respects level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.json")

		logger := logging.NewLoggerFromConfig(logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})
		logger.Info().Msg("info message")
		logger.Warn().Msg("warn message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "info message")
		assert.Contains(t, string(content), "warn message")
	})

	t.Run("console format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.txt")

		logger := logging.NewLoggerFromConfig(logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Str("key", "value").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "console test")
		assert.Contains(t, string(content), "INF")
	})

	t.Run("auto format on a file is json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "auto.log")

		logger := logging.NewLoggerFromConfig(logging.Config{Level: "info", Format: "auto", Output: path})
		logger.Info().Msg("auto")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"message":"auto"`)
	})

	t.Run("discard output", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(logging.Config{Level: "info", Format: "auto", Output: "discard"})
		assert.NotPanics(t, func() { logger.Info().Msg("dropped") })
	})

	t.Run("unknown level means info", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.json")

		logger := logging.NewLoggerFromConfig(logging.Config{Level: "loud", Format: "json", Output: path})
		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "hidden")
		assert.Contains(t, string(content), "shown")
	})

	t.Run("caller", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "log.json")

		logger := logging.NewLoggerFromConfig(logging.Config{Level: "debug", Format: "json", Output: path, Caller: true})
		logger.Debug().Msg("where")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"caller":`)
		assert.Contains(t, string(content), "config_test.go")
	})
}
