package pipeline

import (
	"fmt"
	"time"

	"github.com/gacabartosz/mcp-universal-adapter/generator"
	"github.com/gacabartosz/mcp-universal-adapter/internal/options"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// Option is a function that configures a pipeline run.
type Option func(*config) error

// config holds configuration for a pipeline run.
type config struct {
	// Input source (exactly one must be set)
	location  *string
	specBytes []byte

	outputDir   string
	target      string
	serverName  string
	dryRun      bool
	httpTimeout time.Duration
	logger      parser.Logger
}

// applyOptions applies option functions and validates configuration.
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		target: generator.TargetPython,
		logger: parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne(
		"pipeline: must specify an input source (use WithLocation or WithSpecBytes)",
		"pipeline: must specify exactly one input source",
		cfg.location != nil, cfg.specBytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLocation specifies a file path or URL as the input source.
// URLs (http:// or https://) are fetched; anything else is read as a file.
func WithLocation(location string) Option {
	return func(cfg *config) error {
		cfg.location = &location
		return nil
	}
}

// WithSpecBytes specifies an in-memory document as the input source.
func WithSpecBytes(data []byte) Option {
	return func(cfg *config) error {
		if data == nil {
			return fmt.Errorf("pipeline: spec bytes cannot be nil")
		}
		cfg.specBytes = data
		return nil
	}
}

// WithOutputDir sets the directory the artifact set is written into. The
// directory is created if it does not exist. When empty (the default) nothing
// is written and the run stays entirely in memory.
func WithOutputDir(dir string) Option {
	return func(cfg *config) error {
		cfg.outputDir = dir
		return nil
	}
}

// WithTarget specifies the target language selector.
// Default: generator.TargetPython
func WithTarget(target string) Option {
	return func(cfg *config) error {
		if target == "" {
			return fmt.Errorf("pipeline: target cannot be empty")
		}
		cfg.target = target
		return nil
	}
}

// WithServerName overrides the name the generated server identifies itself
// with. Default: the specification's API title.
func WithServerName(name string) Option {
	return func(cfg *config) error {
		cfg.serverName = name
		return nil
	}
}

// WithDryRun renders and validates the artifact set without writing anything
// to disk, even when an output directory is configured.
func WithDryRun(enabled bool) Option {
	return func(cfg *config) error {
		cfg.dryRun = enabled
		return nil
	}
}

// WithHTTPTimeout sets the timeout for fetching remote documents.
// A value of 0 means use the default (parser.DefaultHTTPTimeout).
// Returns an error if the timeout is negative.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(cfg *config) error {
		if timeout < 0 {
			return fmt.Errorf("pipeline: httpTimeout cannot be negative")
		}
		cfg.httpTimeout = timeout
		return nil
	}
}

// WithLogger sets a structured logger shared by every stage of the run.
// By default, no logging is performed.
func WithLogger(l parser.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}
