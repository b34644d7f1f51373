// Package config loads analyzer settings from a YAML file, an optional .env
// file and environment variables, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"financial_analyzer/pkg/core/extract"
	"financial_analyzer/pkg/core/ingest"
	"financial_analyzer/pkg/core/pipeline"
	"financial_analyzer/pkg/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "config/analyzer.yaml"

// Source kinds.
const (
	SourceScreener = "screener"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config is the full analyzer configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Log      LogConfig      `yaml:"log"`
	API      APIConfig      `yaml:"api"`
}

// SourceConfig selects and configures the document source.
type SourceConfig struct {
	Kind              string        `yaml:"kind"`
	BaseURL           string        `yaml:"base_url"`
	UserAgent         string        `yaml:"user_agent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	PagesDir          string        `yaml:"pages_dir"`
	DatabaseURL       string        `yaml:"database_url"`
}

// SectionsConfig names the page sections holding each statement.
type SectionsConfig struct {
	ProfitLoss   string `yaml:"profit_loss"`
	BalanceSheet string `yaml:"balance_sheet"`
}

// AnalysisConfig tunes the pipeline.
type AnalysisConfig struct {
	Sections    SectionsConfig `yaml:"sections"`
	MaxYears    int            `yaml:"max_years"`
	AnchorYears []string       `yaml:"anchor_years"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// APIConfig configures the HTTP server.
type APIConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:              SourceScreener,
			BaseURL:           ingest.DefaultBaseURL,
			UserAgent:         ingest.DefaultUserAgent,
			Timeout:           ingest.DefaultTimeout,
			RequestsPerSecond: ingest.DefaultRateLimit,
			PagesDir:          "pages",
		},
		Analysis: AnalysisConfig{
			Sections: SectionsConfig{
				ProfitLoss:   extract.SectionProfitLoss,
				BalanceSheet: extract.SectionBalanceSheet,
			},
			MaxYears: extract.MaxYears,
		},
		Log: LogConfig{Level: "info"},
		API: APIConfig{Addr: ":8080"},
	}
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// .env and environment overrides, then validates. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setString("ANALYZER_SOURCE", &c.Source.Kind)
	setString("SCREENER_BASE_URL", &c.Source.BaseURL)
	setString("ANALYZER_PAGES_DIR", &c.Source.PagesDir)
	setString("DATABASE_URL", &c.Source.DatabaseURL)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FILE", &c.Log.File)
	setString("API_ADDR", &c.API.Addr)

	if v := os.Getenv("SCREENER_RATE_LIMIT"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SCREENER_RATE_LIMIT %q: %w", v, err)
		}
		c.Source.RequestsPerSecond = rps
	}
	return nil
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	c.Source.Kind = strings.ToLower(strings.TrimSpace(c.Source.Kind))
	switch c.Source.Kind {
	case SourceScreener, SourceFile, SourcePostgres:
	default:
		return fmt.Errorf("unknown source kind %q (want screener, file or postgres)", c.Source.Kind)
	}
	if c.Source.Kind == SourcePostgres && c.Source.DatabaseURL == "" {
		return fmt.Errorf("source kind postgres requires database_url or DATABASE_URL")
	}
	if c.Analysis.MaxYears < 1 || c.Analysis.MaxYears > extract.MaxYears {
		return fmt.Errorf("max_years must be between 1 and %d, got %d", extract.MaxYears, c.Analysis.MaxYears)
	}
	if n := len(c.Analysis.AnchorYears); n != 0 && n != 2 {
		return fmt.Errorf("anchor_years must list exactly two years, got %d", n)
	}
	return nil
}

// PipelineOptions converts the analysis section to pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.Options{
		ProfitLossSection:   c.Analysis.Sections.ProfitLoss,
		BalanceSheetSection: c.Analysis.Sections.BalanceSheet,
		MaxYears:            c.Analysis.MaxYears,
	}
	for _, y := range c.Analysis.AnchorYears {
		opts.AnchorYears = append(opts.AnchorYears, models.YearLabel(y))
	}
	return opts
}

// ScreenerOptions converts the source section to ScreenerSource options.
func (c *Config) ScreenerOptions() []ingest.ScreenerOption {
	return []ingest.ScreenerOption{
		ingest.WithBaseURL(c.Source.BaseURL),
		ingest.WithUserAgent(c.Source.UserAgent),
		ingest.WithTimeout(c.Source.Timeout),
		ingest.WithRateLimit(c.Source.RequestsPerSecond),
	}
}
