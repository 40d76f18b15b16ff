package generator

import (
	"fmt"
	"time"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// Severity indicates the severity level of a generation issue
type Severity = report.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = report.SeverityInfo
	// SeverityWarning indicates features that may not generate perfectly
	SeverityWarning = report.SeverityWarning
	// SeverityError indicates validation errors
	SeverityError = report.SeverityError
	// SeverityCritical indicates features that cannot be generated
	SeverityCritical = report.SeverityCritical
)

// Issue represents a single generation issue or limitation
type Issue = report.Issue

// Registered target selectors.
const (
	// TargetPython renders a FastMCP server in Python
	TargetPython = "python"
	// TargetGo renders an MCP server in Go
	TargetGo = "go"
)

// Result contains the artifacts rendered for one target.
type Result struct {
	// Files contains the rendered artifact set, in emission order
	Files []File
	// Target is the target selector the artifacts were rendered for
	Target string
	// ServerName is the name the generated server identifies itself with
	ServerName string
	// ToolNames lists the generated tool names in declaration order
	ToolNames []string
	// Issues contains all generation issues grouped by severity
	Issues []Issue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// GenerateTime is the time taken to render the artifact set
	GenerateTime time.Duration
}

// HasWarnings returns true if there are any warnings.
func (r *Result) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the rendered file with the given name, or nil if not found.
func (r *Result) GetFile(name string) *File {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	spec       *apispec.NormalizedAPISpec
	target     string
	serverName string
	logger     parser.Logger
}

// Generate renders the artifact set for a normalized specification using
// functional options.
//
// Example:
//
//	result, err := generator.Generate(
//	    generator.WithSpec(spec),
//	    generator.WithTarget(generator.TargetGo),
//	    generator.WithServerName("petstore"),
//	)
func Generate(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	backend, err := Get(cfg.target)
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("rendering artifacts",
		"target", cfg.target,
		"endpoints", len(cfg.spec.Endpoints))

	start := time.Now()
	files, issues, err := backend.Render(cfg.spec, Config{ServerName: cfg.serverName})
	if err != nil {
		return nil, err
	}

	for _, issue := range issues {
		switch issue.Severity {
		case report.SeverityWarning, report.SeverityCritical:
			cfg.logger.Warn(issue.Message, "check", issue.Check, "endpoint", issue.Endpoint)
		default:
			cfg.logger.Debug(issue.Message, "check", issue.Check, "endpoint", issue.Endpoint)
		}
	}

	result := &Result{
		Files:        files,
		Target:       cfg.target,
		ServerName:   serverName(cfg.spec, cfg.serverName),
		ToolNames:    cfg.spec.EndpointNames(),
		Issues:       issues,
		GenerateTime: time.Since(start),
	}
	_, result.WarningCount, result.InfoCount, result.CriticalCount = report.Count(issues)
	result.Success = result.CriticalCount == 0

	cfg.logger.Info("generation complete",
		"target", cfg.target,
		"files", len(result.Files),
		"tools", len(result.ToolNames),
		"warnings", result.WarningCount,
		"duration", result.GenerateTime)

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		target: TargetPython,
		logger: parser.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.spec == nil {
		return nil, fmt.Errorf("generator: must specify a source spec (use WithSpec)")
	}

	return cfg, nil
}

// WithSpec specifies the normalized specification to render. Required.
func WithSpec(spec *apispec.NormalizedAPISpec) Option {
	return func(cfg *generateConfig) error {
		if spec == nil {
			return fmt.Errorf("generator: spec cannot be nil")
		}
		cfg.spec = spec
		return nil
	}
}

// WithTarget specifies the target language selector.
// Default: TargetPython
func WithTarget(target string) Option {
	return func(cfg *generateConfig) error {
		if target == "" {
			return fmt.Errorf("generator: target cannot be empty")
		}
		cfg.target = target
		return nil
	}
}

// WithServerName overrides the name the generated server identifies itself
// with. Default: the specification's API title.
func WithServerName(name string) Option {
	return func(cfg *generateConfig) error {
		cfg.serverName = name
		return nil
	}
}

// WithLogger sets the logger used during generation. A nil logger leaves the
// default in place.
// Default: parser.NopLogger
func WithLogger(logger parser.Logger) Option {
	return func(cfg *generateConfig) error {
		if logger != nil {
			cfg.logger = logger
		}
		return nil
	}
}

// serverName resolves the display name for the generated server.
func serverName(spec *apispec.NormalizedAPISpec, override string) string {
	if override != "" {
		return override
	}
	if spec.Name != "" {
		return spec.Name
	}
	return "API"
}
