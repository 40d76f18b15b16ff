package normalizer

import (
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// Option is a function that configures a normalization run.
type Option func(*config) error

type config struct {
	logger parser.Logger

	// anySentinelResponses controls whether unresolvable response schemas
	// degrade to the visible any sentinel (true, the default) or abort the
	// run like input schemas do.
	anySentinelResponses bool
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		logger:               parser.NopLogger{},
		anySentinelResponses: true,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithLogger sets a structured logger for debug output during normalization.
// By default, no logging is performed.
func WithLogger(l parser.Logger) Option {
	return func(cfg *config) error {
		if l != nil {
			cfg.logger = l
		}
		return nil
	}
}

// WithAnySentinelResponses controls how response schemas with absent or
// unrecognized types are handled. When enabled (the default) they degrade to
// the visible "any" sentinel with a warning; when disabled they fail the run
// with a NormalizationError, the same way input schemas do.
func WithAnySentinelResponses(enabled bool) Option {
	return func(cfg *config) error {
		cfg.anySentinelResponses = enabled
		return nil
	}
}
