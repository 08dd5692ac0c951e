package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theplant/animefilter/expression"
	"github.com/theplant/animefilter/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	v := viper.New()
	require.NoError(t, config.Init(v, ""))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, config.Default(), *cfg)
	assert.Equal(t, expression.DefaultLimits, cfg.Evaluation.Complexity.Limits())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animefilter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  dsn: host=localhost dbname=anime
evaluation:
  concurrency: 8
log:
  json: true
  rotation:
    compress: true
`), 0o644))

	t.Setenv("ANIMEFILTER_LOG_LEVEL", "debug")
	t.Setenv("ANIMEFILTER_EVALUATION_COMPLEXITY_MAX_DEPTH", "7")

	v := viper.New()
	require.NoError(t, config.Init(v, path))
	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost dbname=anime", cfg.Database.DSN)
	assert.Equal(t, 8, cfg.Evaluation.Concurrency)
	assert.Equal(t, 7, cfg.Evaluation.Complexity.MaxDepth)
	assert.Equal(t, 256, cfg.Evaluation.Complexity.MaxNodes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.Log.Rotation.Compress)
	assert.Equal(t, 128, cfg.Log.Rotation.MaxSize)
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		set  map[string]any
		want string
	}{
		{"unknown driver", map[string]any{"database.driver": "mysql"}, "database.driver must be sqlite or postgres"},
		{"empty dsn", map[string]any{"database.dsn": ""}, "database.dsn is required"},
		{"negative concurrency", map[string]any{"evaluation.concurrency": -1}, "evaluation.concurrency must not be negative"},
		{"cursor key not base64", map[string]any{"evaluation.cursor_key": "%%"}, "evaluation.cursor_key is not base64"},
		{"cursor key length", map[string]any{"evaluation.cursor_key": "c2hvcnQ="}, "must decode to 16, 24 or 32 bytes, got 5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range c.set {
				v.Set(k, val)
			}
			_, err := config.Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestComplexityConfig_Limits(t *testing.T) {
	assert.Nil(t, config.ComplexityConfig{}.Limits())
	assert.Equal(t, &expression.ComplexityLimits{MaxNodes: 3}, config.ComplexityConfig{MaxNodes: 3}.Limits())
}
