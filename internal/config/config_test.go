package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 200*time.Millisecond, cfg.Animation.Turn)
	assert.Equal(t, 200*time.Millisecond, cfg.Animation.Undo)
	assert.Equal(t, 100*time.Millisecond, cfg.Animation.Shuffle)
	assert.Equal(t, 150*time.Millisecond, cfg.Animation.Solve)
	assert.Equal(t, 6, cfg.Shuffle.Count)
	assert.Equal(t, 60, cfg.Animation.FrameRate)
	assert.Equal(t, "search", cfg.Solver.Strategy)
	assert.Equal(t, 5, cfg.Solver.MaxDepth)
	assert.Equal(t, "reject", cfg.Engine.BusyPolicy)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, `
animation:
  turn: 50ms
  frame_rate: 30
shuffle:
  count: 12
solver:
  strategy: reverse
engine:
  busy_policy: queue
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Animation.Turn)
	assert.Equal(t, 200*time.Millisecond, cfg.Animation.Undo)
	assert.Equal(t, 30, cfg.Animation.FrameRate)
	assert.Equal(t, 12, cfg.Shuffle.Count)
	assert.Equal(t, "reverse", cfg.Solver.Strategy)
	assert.Equal(t, "queue", cfg.Engine.BusyPolicy)
	assert.Equal(t, 50*time.Millisecond, cfg.Durations().Turn)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "shuffle:\n  count: 12\n")
	t.Setenv("GOCUBE_SHUFFLE_COUNT", "20")
	t.Setenv("GOCUBE_SOLVE_DURATION", "1s")
	t.Setenv("GOCUBE_DB", "/tmp/cube.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Shuffle.Count)
	assert.Equal(t, time.Second, cfg.Animation.Solve)
	assert.Equal(t, "/tmp/cube.db", cfg.Storage.DBPath)
}

func TestLoadMissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "shuffle: [\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Shuffle.Count = 0
	cfg.Animation.FrameRate = -1
	cfg.Solver.Strategy = "magic"
	cfg.Engine.BusyPolicy = "drop"
	cfg.Animation.Turn = -time.Second

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"shuffle.count", "frame_rate", "magic", "drop", "animation.turn"} {
		assert.Contains(t, err.Error(), want)
	}
}
