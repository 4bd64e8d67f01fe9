package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	base := filepath.FromSlash("/work")

	t.Run("defaults", func(t *testing.T) {
		p := ResolvePaths(Default(), base)

		assert.Equal(t, base, p.WorkingDir)
		assert.Equal(t, filepath.Join(base, "data"), p.DataDir)
		assert.Equal(t, filepath.Join(base, "data", "dependent-vars"), p.Dependent.SourceDir)
		assert.Equal(t, filepath.Join(base, "data", "independent-vars"), p.Independent.SourceDir)
		assert.Equal(t, filepath.Join(base, "data", "dependent_variables.csv"), p.Dependent.OutputFile)
		assert.Equal(t, filepath.Join(base, "data", "independent_variables.csv"), p.Independent.OutputFile)
		assert.Empty(t, p.LogFile)
		assert.Empty(t, p.MetricsFile)
	})

	t.Run("absolute paths are kept", func(t *testing.T) {
		cfg := Default()
		cfg.Paths.DataDir = filepath.FromSlash("/srv/data")
		cfg.Paths.IndependentOutput = filepath.FromSlash("/tmp/out/ind.csv")

		p := ResolvePaths(cfg, base)
		assert.Equal(t, filepath.FromSlash("/srv/data/dependent-vars"), p.Dependent.SourceDir)
		assert.Equal(t, filepath.FromSlash("/tmp/out/ind.csv"), p.Independent.OutputFile)
	})

	t.Run("log and metrics files", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Output = "both"
		cfg.Telemetry.MetricsFile = "metrics/combine.prom"

		p := ResolvePaths(cfg, base)
		assert.Equal(t, filepath.Join(base, "logs", "combine.log"), p.LogFile)
		assert.Equal(t, filepath.Join(base, "metrics", "combine.prom"), p.MetricsFile)
	})
}

func TestGetPaths_UsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	p, err := GetPaths(Default())
	require.NoError(t, err)
	assert.Equal(t, wd, p.WorkingDir)
	assert.Equal(t, filepath.Join(wd, "data", "dependent-vars"), p.Dependent.SourceDir)
}
