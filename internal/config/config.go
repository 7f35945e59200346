// Package config loads the pipeline configuration from a YAML file
// and TOC_-prefixed environment variables, environment taking
// precedence over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// envPrefix namespaces the environment variables, e.g. TOC_LOGGING_LEVEL.
const envPrefix = "TOC"

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/tocetl.log" validate:"required"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports" validate:"required"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs" validate:"required"`
}

// ProcessingConfig contains pipeline behavior configuration
type ProcessingConfig struct {
	// DefaultSheet is used when no sheet is named on the command
	// line; empty means the workbook's active sheet.
	DefaultSheet string `yaml:"default_sheet" envconfig:"DEFAULT_SHEET"`
	// CSVExport additionally writes each report table as CSV next
	// to the workbook.
	CSVExport bool `yaml:"csv_export" envconfig:"CSV_EXPORT" default:"false"`
}

// Load loads configuration with precedence environment > config file
// > struct-tag defaults. The path may be empty for env/defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	// Defaults come from the envconfig struct tags.
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config into env config. A file value wins
// unless the matching environment variable was explicitly set.
func mergeConfigs(fileConfig, envConfig Config) Config {
	keep := func(envVar, fileVal string) bool {
		_, set := os.LookupEnv(envVar)
		return set || fileVal == ""
	}

	if !keep("TOC_LOGGING_LEVEL", fileConfig.Logging.Level) {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if !keep("TOC_LOGGING_OUTPUT", fileConfig.Logging.Output) {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if !keep("TOC_LOGGING_FILE_PATH", fileConfig.Logging.FilePath) {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if !keep("TOC_PATHS_DATA_DIR", fileConfig.Paths.DataDir) {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if !keep("TOC_PATHS_REPORTS_DIR", fileConfig.Paths.ReportsDir) {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if !keep("TOC_PATHS_LOGS_DIR", fileConfig.Paths.LogsDir) {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}
	if !keep("TOC_PROCESSING_DEFAULT_SHEET", fileConfig.Processing.DefaultSheet) {
		envConfig.Processing.DefaultSheet = fileConfig.Processing.DefaultSheet
	}
	if _, set := os.LookupEnv("TOC_PROCESSING_CSV_EXPORT"); !set && fileConfig.Processing.CSVExport {
		envConfig.Processing.CSVExport = true
	}

	return envConfig
}

// Validate checks the configuration against the struct constraints.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// The tag defaults always validate; reaching here means the
		// environment holds an unusable override.
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return cfg
}

// EnsureDirectories creates the configured directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPath resolves a log file name inside the configured logs dir.
func (c *Config) LogPath(name string) string {
	return filepath.Join(c.Paths.LogsDir, name)
}
