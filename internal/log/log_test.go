package log_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/animefilter/internal/config"
	"github.com/theplant/animefilter/internal/log"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := log.ParseLevel(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := log.ParseLevel("loud")
	require.Error(t, err)
}

func TestNew_TerminalAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animefilter.log")
	var terminal bytes.Buffer

	logger, closer, err := log.New(config.LogConfig{
		Level:    "info",
		JSON:     true,
		File:     path,
		Rotation: config.RotationConfig{MaxSize: 1},
	}, &terminal)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("evaluate preset", "preset", 3)
	require.NoError(t, closer.Close())

	var line map[string]any
	require.NoError(t, json.Unmarshal(terminal.Bytes(), &line))
	assert.Equal(t, "evaluate preset", line["msg"])
	assert.EqualValues(t, 3, line["preset"])

	file, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, terminal.String(), string(file))
}

func TestNew_Text(t *testing.T) {
	var terminal bytes.Buffer
	logger, closer, err := log.New(config.LogConfig{Level: "debug"}, &terminal)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("filtered entities", "matched", 2)
	assert.Contains(t, terminal.String(), `level=DEBUG msg="filtered entities" matched=2`)
}
