package logging

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codesnap-dev/codesnap/internal/domain"
)

func TestLoggerWritesGlobalAndTaskFiles(t *testing.T) {
	snapDir := t.TempDir()
	logger := New(snapDir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("", "init", "repository initialized")
	logger.Info("login-fix", "commit", "snapshot recorded")

	global, err := os.ReadFile(domain.GlobalLogPath(snapDir))
	require.NoError(t, err)
	assert.Contains(t, string(global), "[global] [init] repository initialized")
	assert.Contains(t, string(global), "[task-login-fix] [commit] snapshot recorded")

	task, err := os.ReadFile(domain.TaskLogPath(snapDir, "login-fix"))
	require.NoError(t, err)
	assert.Contains(t, string(task), "snapshot recorded")
	assert.NotContains(t, string(task), "repository initialized")
}

func TestLoggerLevelFiltering(t *testing.T) {
	snapDir := t.TempDir()
	logger := New(snapDir, slog.LevelWarn)
	defer func() { _ = logger.Close() }()

	logger.Debug("", "noise", "dropped")
	logger.Info("", "noise", "dropped")
	logger.Error("", "merge", "kept")

	global, err := os.ReadFile(domain.GlobalLogPath(snapDir))
	require.NoError(t, err)
	assert.NotContains(t, string(global), "dropped")
	assert.Contains(t, string(global), "[ERROR] [global] [merge] kept")
}

func TestLoggerDisabled(t *testing.T) {
	logger := New("", slog.LevelDebug)
	logger.Info("x", "y", "z") // must not panic or create files
	require.NoError(t, logger.Close())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
