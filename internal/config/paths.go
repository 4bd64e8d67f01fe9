package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// GroupPaths locates the input directory and output file of one indicator group
type GroupPaths struct {
	SourceDir  string
	OutputFile string
}

// Paths contains the resolved application paths.
// Relative configuration is resolved against the working directory, never the executable.
type Paths struct {
	WorkingDir  string
	DataDir     string
	LogFile     string
	MetricsFile string

	Dependent   GroupPaths
	Independent GroupPaths
}

// GetPaths resolves cfg against the current working directory
func GetPaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(cfg, wd), nil
}

// ResolvePaths resolves cfg against base. Group directories and outputs live under DataDir.
func ResolvePaths(cfg *Config, base string) *Paths {
	dataDir := resolve(base, cfg.Paths.DataDir)

	p := &Paths{
		WorkingDir: base,
		DataDir:    dataDir,
		Dependent: GroupPaths{
			SourceDir:  resolve(dataDir, cfg.Paths.DependentDir),
			OutputFile: resolve(dataDir, cfg.Paths.DependentOutput),
		},
		Independent: GroupPaths{
			SourceDir:  resolve(dataDir, cfg.Paths.IndependentDir),
			OutputFile: resolve(dataDir, cfg.Paths.IndependentOutput),
		},
	}
	if cfg.Logging.Output != "console" && cfg.Logging.FilePath != "" {
		p.LogFile = resolve(base, cfg.Logging.FilePath)
	}
	if cfg.Telemetry.MetricsFile != "" {
		p.MetricsFile = resolve(base, cfg.Telemetry.MetricsFile)
	}
	return p
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Debug("Resolved paths",
		slog.String("working_dir", p.WorkingDir),
		slog.String("data_dir", p.DataDir),
		slog.String("dependent_dir", p.Dependent.SourceDir),
		slog.String("independent_dir", p.Independent.SourceDir),
		slog.String("dependent_output", p.Dependent.OutputFile),
		slog.String("independent_output", p.Independent.OutputFile))
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
