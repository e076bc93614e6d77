package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gocube.log")
	logger, err := New("debug", path, true)
	require.NoError(t, err)

	logger.Info("turn finished")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "turn finished")
}

func TestNewQuietWithoutFileDiscards(t *testing.T) {
	logger, err := New("info", "", true)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(0))
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New("loud", "", false)
	assert.Error(t, err)
}
