package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. COMBINE_PROCESSING_FILL_LIMIT
const EnvPrefix = "COMBINE"

// Config represents the complete application configuration
type Config struct {
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// PathsConfig contains file system paths, relative to the working directory
type PathsConfig struct {
	DataDir           string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	DependentDir      string `yaml:"dependent_dir" envconfig:"DEPENDENT_DIR" validate:"required"`
	IndependentDir    string `yaml:"independent_dir" envconfig:"INDEPENDENT_DIR" validate:"required"`
	DependentOutput   string `yaml:"dependent_output" envconfig:"DEPENDENT_OUTPUT" validate:"required,nefield=IndependentOutput"`
	IndependentOutput string `yaml:"independent_output" envconfig:"INDEPENDENT_OUTPUT" validate:"required"`
}

// ProcessingConfig controls the combine pipeline
type ProcessingConfig struct {
	// FillLimit bounds how many consecutive missing months a value is carried into
	FillLimit int `yaml:"fill_limit" envconfig:"FILL_LIMIT" validate:"gte=0"`
	// Parallel processes the two groups concurrently
	Parallel     bool   `yaml:"parallel" envconfig:"PARALLEL"`
	RateVariable string `yaml:"rate_variable" envconfig:"RATE_VARIABLE" validate:"required"`
	// BOM prefixes output files with a UTF-8 byte order mark
	BOM bool `yaml:"bom" envconfig:"BOM"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TelemetryConfig contains tracing and metrics export configuration
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	// MetricsFile receives the Prometheus text exposition after a run; empty disables it
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Default returns the configuration used when no file or environment is present
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:           "data",
			DependentDir:      "dependent-vars",
			IndependentDir:    "independent-vars",
			DependentOutput:   "dependent_variables.csv",
			IndependentOutput: "independent_variables.csv",
		},
		Processing: ProcessingConfig{
			FillLimit:    11,
			RateVariable: "rate_of_inflation",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/combine.log",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
		},
	}
}

// Load builds the configuration from defaults, the first config file found
// and finally the environment, which takes precedence
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file; an empty path skips the file
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg; keys absent from the file keep their value
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

var validate = validator.New()

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s: %q fails %s", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag())
		}
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"combine.yaml",
		"configs/combine.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use defaults and env vars only
}
