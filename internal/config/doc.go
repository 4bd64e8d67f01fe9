// Package config provides configuration loading for the indicator combiner.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//	1. Default() values, which reproduce the plain no-argument behaviour
//	2. An optional YAML file: $COMBINE_CONFIG_FILE, combine.yaml or configs/combine.yaml
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern COMBINE_<SECTION>_<FIELD>:
//
//	COMBINE_PATHS_DATA_DIR=data
//	COMBINE_PROCESSING_FILL_LIMIT=11
//	COMBINE_PROCESSING_PARALLEL=true
//	COMBINE_LOGGING_LEVEL=debug
//	COMBINE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Path Management
//
// Paths resolves configured paths against the current working directory.
// Group source directories and output files are relative to the data directory:
//
//	paths, err := config.GetPaths(cfg)
//	paths.Dependent.SourceDir   // <cwd>/data/dependent-vars
//	paths.Dependent.OutputFile  // <cwd>/data/dependent_variables.csv
//
// # Validation
//
// Fields are validated with go-playground/validator struct tags at load time.
package config
