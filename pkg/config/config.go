// Package config loads run settings from defaults, a YAML file, a
// .env file and the process environment, in that order of
// precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"digital.vasic.seqtest/pkg/logging"
	"digital.vasic.seqtest/pkg/snapshot"
	"digital.vasic.seqtest/pkg/test"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SEQTEST_"

// Report formats accepted in Config.Reports.
var ReportFormats = []string{"json", "yaml", "md", "html"}

// Config holds run settings.
type Config struct {
	// Snapshot sets the recursion budget and the sequence item
	// cap of every snapshot taken during the run.
	Snapshot snapshot.Config `yaml:"snapshot" envPrefix:"SNAPSHOT_"`

	// Timeout bounds each method. Zero disables it.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`

	ResultsDir string   `yaml:"results_dir" env:"RESULTS_DIR"`
	Reports    []string `yaml:"reports" env:"REPORTS" envSeparator:","`
	History    string   `yaml:"history" env:"HISTORY"`
	Plan       string   `yaml:"plan" env:"PLAN"`

	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"`
	LogFile   string `yaml:"log_file" env:"LOG_FILE"`

	// MonitorAddr is where the live monitor listens. Empty
	// disables it.
	MonitorAddr string `yaml:"monitor_addr" env:"MONITOR_ADDR"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Snapshot:   snapshot.Config{Recursion: 0, MaxItems: 100},
		Timeout:    time.Minute,
		ResultsDir: "results",
		Reports:    []string{"json", "md"},
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// Load builds a Config. path names an optional YAML file and
// envFile an optional .env file; either may be empty. Variables
// from the process environment override those from envFile.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	vars := map[string]string{}
	if envFile != "" {
		dot, err := ReadDotEnv(envFile)
		if err != nil {
			return nil, err
		}
		vars = dot
	}
	for k, v := range env.ToMap(os.Environ()) {
		vars[k] = v
	}

	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: vars,
	}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	var errs []error
	if c.Snapshot.Recursion < 0 {
		errs = append(errs, errors.New("snapshot recursion must not be negative"))
	}
	if c.Snapshot.MaxItems < 0 {
		errs = append(errs, errors.New("snapshot max_items must not be negative"))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	for _, f := range c.Reports {
		if !slices.Contains(ReportFormats, f) {
			errs = append(errs, fmt.Errorf("unknown report format %q", f))
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Marshaler returns a snapshot marshaler for the configured
// budgets.
func (c *Config) Marshaler(opts ...snapshot.Option) *snapshot.Marshaler {
	return snapshot.New(append([]snapshot.Option{
		snapshot.WithConfig(c.Snapshot),
	}, opts...)...)
}

// Tester returns a tester that snapshots with Marshaler.
func (c *Config) Tester(opts ...test.TesterOption) *test.Tester {
	return test.NewTester(append([]test.TesterOption{
		test.WithMarshaler(c.Marshaler()),
	}, opts...)...)
}

// Logger builds the configured logger: console or zap JSON to
// stdout, plus a zap JSON file when LogFile is set.
func (c *Config) Logger() (logging.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	var primary logging.Logger
	if c.LogFormat == "json" {
		zl, err := logging.NewZapLogger(logging.LoggerConfig{Level: level})
		if err != nil {
			return nil, err
		}
		primary = zl
	} else {
		primary = logging.NewConsoleLogger(level == logging.LevelDebug)
	}
	if c.LogFile == "" {
		return primary, nil
	}

	file, err := logging.NewZapLogger(logging.LoggerConfig{
		OutputPath: c.LogFile,
		Level:      level,
	})
	if err != nil {
		return nil, err
	}
	return logging.NewMultiLogger(primary, file), nil
}
