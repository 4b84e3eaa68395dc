// internal/observability/logger_test.go
package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/waozixyz/kryon-gui/internal/config"
)

func initForTest(t *testing.T, cfg config.LoggerConfig) *bytes.Buffer {
	t.Helper()
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(cfg, zapcore.AddSync(&buf))
	return &buf
}

func TestInitializeJSON(t *testing.T) {
	buf := initForTest(t, config.LoggerConfig{Level: "info", Format: "json", ServiceName: "kryon"})

	GetLogger().Named("layout").Info("Layout: all UI entities resolved again")
	GetLogger().Debug("filtered out")
	Sync()

	out := buf.String()
	assert.Contains(t, out, `"level":"INFO"`)
	assert.Contains(t, out, `"logger":"kryon.layout"`)
	assert.Contains(t, out, "resolved again")
	assert.NotContains(t, out, "filtered out")
}

func TestInitializeConsole(t *testing.T) {
	buf := initForTest(t, config.LoggerConfig{Level: "debug", Format: "console"})

	GetLogger().Debug("Scene: importing sub-scene")
	Sync()

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "Scene: importing sub-scene")
}

func TestInitializeBadLevelDefaultsToInfo(t *testing.T) {
	buf := initForTest(t, config.LoggerConfig{Level: "loud", Format: "json"})

	GetLogger().Debug("hidden")
	GetLogger().Info("shown")
	Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitializeOnlyOnce(t *testing.T) {
	first := initForTest(t, config.LoggerConfig{Level: "info", Format: "json"})

	var second bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, zapcore.AddSync(&second))
	GetLogger().Info("once")
	Sync()

	assert.Contains(t, first.String(), "once")
	assert.Empty(t, second.String())
}

func TestInitializeFileSink(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "kryon.log")
	initForTest(t, config.LoggerConfig{Level: "info", Format: "console", LogFile: logFile, MaxSize: 1})

	GetLogger().Warn("Layout: UI entities left without a rect")
	Sync()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	assert.True(t, strings.HasPrefix(line, "{"), "file sink is JSON")
	assert.Contains(t, line, `"level":"WARN"`)
}

func TestGetLoggerFallback(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Nil(t, globalLogger.Load(), "fallback is not stored")
}
