package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/generator"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/normalizer"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
	"github.com/gacabartosz/mcp-universal-adapter/validator"
)

// Issue represents a single pipeline finding.
type Issue = report.Issue

// Timing records the wall-clock duration of each pipeline stage.
type Timing struct {
	// Parse is the time spent loading and resolving the source document
	Parse time.Duration
	// Normalize is the time spent building the normalized specification
	Normalize time.Duration
	// Generate is the time spent rendering the artifact set
	Generate time.Duration
	// Write is the time spent writing artifacts to disk (zero for dry runs)
	Write time.Duration
	// Validate is the time spent checking the artifact set
	Validate time.Duration
	// Total is the end-to-end duration of the run
	Total time.Duration
}

// Result carries the output of every stage of one pipeline run.
type Result struct {
	// Parse is the parse stage output, including source metadata and warnings
	Parse *parser.ParseResult
	// Spec is the normalized specification the artifacts were rendered from
	Spec *apispec.NormalizedAPISpec
	// NormalizeIssues contains findings recorded while normalizing
	NormalizeIssues []Issue
	// Generate is the rendered artifact set with its generation issues
	Generate *generator.Result
	// Report is the validation report for the artifact set
	Report *validator.Report
	// OutputDir is the configured output directory, empty for in-memory runs
	OutputDir string
	// WrittenPaths lists every file written to disk, in emission order
	WrittenPaths []string
	// DryRun is true when writing was suppressed
	DryRun bool
	// Timing records per-stage durations
	Timing Timing
}

// Run executes the full pipeline: parse, normalize, generate, write, and
// validate, in that order. Each stage consumes the previous stage's output;
// a stage failure aborts the run and returns that stage's typed error.
//
// Writing is skipped when no output directory is configured or WithDryRun is
// set. Validation always runs against the in-memory artifact set, so dry runs
// produce the same report as real ones. A failed validation is not an error:
// the report rides in the result with Report.Valid == false and written
// artifacts stay on disk for inspection.
//
// The context is checked between stages; cancellation aborts the run with
// ctx.Err(). Remote fetches are bounded by WithHTTPTimeout.
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: invalid options: %w", err)
	}

	total := time.Now()
	res := &Result{
		OutputDir: cfg.outputDir,
		DryRun:    cfg.dryRun,
	}

	// Parse.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	parseOpts := []parser.Option{parser.WithLogger(cfg.logger)}
	if cfg.location != nil {
		parseOpts = append(parseOpts, parser.WithLocation(*cfg.location))
	} else {
		parseOpts = append(parseOpts, parser.WithBytes(cfg.specBytes))
	}
	if cfg.httpTimeout > 0 {
		parseOpts = append(parseOpts, parser.WithHTTPTimeout(cfg.httpTimeout))
	}
	parsed, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return nil, err
	}
	res.Parse = parsed
	res.Timing.Parse = time.Since(start)

	// Normalize.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	norm, err := normalizer.Normalize(parsed.Extraction, normalizer.WithLogger(cfg.logger))
	if err != nil {
		return nil, err
	}
	res.Spec = norm.Spec
	res.NormalizeIssues = norm.Issues
	res.Timing.Normalize = time.Since(start)

	// Generate.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start = time.Now()
	genOpts := []generator.Option{
		generator.WithSpec(norm.Spec),
		generator.WithTarget(cfg.target),
		generator.WithLogger(cfg.logger),
	}
	if cfg.serverName != "" {
		genOpts = append(genOpts, generator.WithServerName(cfg.serverName))
	}
	gen, err := generator.Generate(genOpts...)
	if err != nil {
		return nil, err
	}
	res.Generate = gen
	res.Timing.Generate = time.Since(start)

	// Write.
	if cfg.outputDir != "" && !cfg.dryRun {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start = time.Now()
		if err := gen.WriteFiles(cfg.outputDir); err != nil {
			return nil, err
		}
		res.WrittenPaths = make([]string, len(gen.Files))
		for i := range gen.Files {
			res.WrittenPaths[i] = filepath.Join(cfg.outputDir, gen.Files[i].Name)
		}
		res.Timing.Write = time.Since(start)
	}

	// Validate.
	start = time.Now()
	res.Report = validator.ValidateResult(gen)
	res.Timing.Validate = time.Since(start)

	res.Timing.Total = time.Since(total)
	cfg.logger.Info("pipeline complete",
		"target", cfg.target,
		"tools", len(gen.ToolNames),
		"files", len(gen.Files),
		"written", len(res.WrittenPaths),
		"valid", res.Report.Valid,
		"duration", res.Timing.Total)

	return res, nil
}
