//go:build integration

// Package harness provides the integration test framework for mcp-adapt.
// It enables declarative scenario-driven testing via YAML files: each
// scenario names a base document, a generation target, and the expected
// outcome of a full pipeline run.
package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gacabartosz/mcp-universal-adapter/pipeline"
	"github.com/gacabartosz/mcp-universal-adapter/validator"
)

// Outcome values a scenario may expect from its pipeline run.
const (
	// OutcomeSuccess means the run completes and the artifact set validates.
	OutcomeSuccess = "success"
	// OutcomeError means the run itself fails with an error.
	OutcomeError = "error"
	// OutcomeInvalid means the run completes but validation reports errors.
	OutcomeInvalid = "invalid"
)

// Scenario represents a complete integration test scenario.
type Scenario struct {
	// Name is a short, descriptive name for the scenario
	Name string `yaml:"name"`
	// Description provides additional context about what the scenario tests
	Description string `yaml:"description,omitempty"`
	// Base is the name of the base document from bases/ directory (without path)
	Base string `yaml:"base,omitempty"`
	// Target selects the generation backend (defaults to python)
	Target string `yaml:"target,omitempty"`
	// ServerName overrides the derived server name
	ServerName string `yaml:"server-name,omitempty"`
	// DryRun renders artifacts without writing them to disk
	DryRun bool `yaml:"dry-run,omitempty"`
	// Expect defines the expected outcome of the run
	Expect Expectation `yaml:"expect"`
	// Skip provides a reason to skip this scenario (if set, scenario is skipped)
	Skip string `yaml:"skip,omitempty"`

	// filePath is the path to the scenario file (set by loader)
	filePath string
}

// Expectation describes what a scenario expects from its pipeline run.
type Expectation struct {
	// Outcome is success, error, or invalid (defaults to success)
	Outcome string `yaml:"outcome,omitempty"`
	// ErrorContains checks that the run error message contains this substring
	ErrorContains string `yaml:"error-contains,omitempty"`
	// Tools lists the exact tool names the run must produce, in order
	Tools []string `yaml:"tools,omitempty"`
	// Artifacts lists file names that must appear in the artifact set
	Artifacts []string `yaml:"artifacts,omitempty"`
	// Auth is the expected document-level auth kind (e.g. bearer, api_key)
	Auth string `yaml:"auth,omitempty"`
	// BaseURL is the expected base URL after normalization
	BaseURL string `yaml:"base-url,omitempty"`
	// MinWarnings asserts at least this many parse+normalize warnings
	MinWarnings *int `yaml:"min-warnings,omitempty"`
}

// RunResult contains the outcome of executing a scenario.
type RunResult struct {
	// Scenario is the scenario that was executed
	Scenario *Scenario
	// Result is the pipeline result, nil when the run errored
	Result *pipeline.Result
	// Err is the error returned by the run, if any
	Err error
	// Failures lists expectation checks that did not hold
	Failures []string
	// Success indicates all expectations held
	Success bool
	// Duration is the total scenario execution time
	Duration time.Duration
}

// RunScenario executes a scenario against the pipeline and checks its
// expectations. Artifacts are written into a test temp directory unless the
// scenario is a dry run.
func RunScenario(t *testing.T, scenario *Scenario, basesDir string) *RunResult {
	t.Helper()

	start := time.Now()
	result := &RunResult{Scenario: scenario}

	if scenario.Skip != "" {
		t.Skipf("Skipping: %s", scenario.Skip)
		return result
	}

	basePath, err := resolveBase(basesDir, scenario.Base)
	if err != nil {
		result.Err = err
		result.Failures = append(result.Failures, err.Error())
		result.Duration = time.Since(start)
		return result
	}

	opts := []pipeline.Option{
		pipeline.WithLocation(basePath),
	}
	if scenario.Target != "" {
		opts = append(opts, pipeline.WithTarget(scenario.Target))
	}
	if scenario.ServerName != "" {
		opts = append(opts, pipeline.WithServerName(scenario.ServerName))
	}
	if scenario.DryRun {
		opts = append(opts, pipeline.WithDryRun(true))
	} else {
		opts = append(opts, pipeline.WithOutputDir(t.TempDir()))
	}

	result.Result, result.Err = pipeline.Run(context.Background(), opts...)
	result.Duration = time.Since(start)

	checkExpectations(result)
	return result
}

// resolveBase locates a base document inside basesDir, trying the name as
// given and with a .yaml extension appended.
func resolveBase(basesDir, base string) (string, error) {
	if base == "" {
		return "", fmt.Errorf("harness: scenario has no base document")
	}
	candidates := []string{
		filepath.Join(basesDir, base),
		filepath.Join(basesDir, base+".yaml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("harness: base document not found: %s", base)
}

// checkExpectations evaluates the scenario's expectations against the run
// outcome and records each failed check.
func checkExpectations(r *RunResult) {
	expect := r.Scenario.Expect
	outcome := expect.Outcome
	if outcome == "" {
		outcome = OutcomeSuccess
	}

	fail := func(format string, args ...any) {
		r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	}

	switch outcome {
	case OutcomeError:
		if r.Err == nil {
			fail("expected the run to fail, but it succeeded")
			break
		}
		if expect.ErrorContains != "" && !strings.Contains(r.Err.Error(), expect.ErrorContains) {
			fail("error %q does not contain %q", r.Err.Error(), expect.ErrorContains)
		}
	case OutcomeInvalid:
		if r.Err != nil {
			fail("expected an invalid artifact set, but the run failed: %v", r.Err)
			break
		}
		if r.Result.Report == nil {
			fail("run produced no validation report")
		} else if r.Result.Report.Valid {
			fail("expected validation errors, but the artifact set is valid")
		}
	case OutcomeSuccess:
		if r.Err != nil {
			fail("run failed: %v", r.Err)
			break
		}
		if r.Result.Report != nil && !r.Result.Report.Valid {
			fail("artifact set failed validation with %d error(s)", r.Result.Report.ErrorCount)
		}
	}

	if r.Err == nil && r.Result != nil {
		checkResultExpectations(r, &expect, fail)
	}

	r.Success = len(r.Failures) == 0
}

// checkResultExpectations checks the expectations that require a completed
// pipeline result.
func checkResultExpectations(r *RunResult, expect *Expectation, fail func(string, ...any)) {
	res := r.Result

	if len(expect.Tools) > 0 {
		var got []string
		if res.Spec != nil {
			got = res.Spec.EndpointNames()
		}
		if !slices.Equal(got, expect.Tools) {
			fail("tools %v do not match expected %v", got, expect.Tools)
		}
	}

	if len(expect.Artifacts) > 0 {
		var names []string
		if res.Generate != nil {
			for _, f := range res.Generate.Files {
				names = append(names, f.Name)
			}
		}
		for _, want := range expect.Artifacts {
			if !slices.Contains(names, want) {
				fail("artifact %s missing from generated set %v", want, names)
			}
		}
	}

	if expect.Auth != "" {
		got := "none"
		if res.Spec != nil && res.Spec.Auth != nil {
			got = string(res.Spec.Auth.Kind)
		}
		if got != expect.Auth {
			fail("auth kind %s does not match expected %s", got, expect.Auth)
		}
	}

	if expect.BaseURL != "" {
		var got string
		if res.Spec != nil {
			got = res.Spec.BaseURL
		}
		if got != expect.BaseURL {
			fail("base URL %s does not match expected %s", got, expect.BaseURL)
		}
	}

	if expect.MinWarnings != nil {
		count := 0
		if res.Parse != nil {
			count += len(res.Parse.Warnings)
		}
		count += len(res.NormalizeIssues)
		if count < *expect.MinWarnings {
			fail("expected at least %d warnings, got %d", *expect.MinWarnings, count)
		}
	}

	// Written artifact sets must survive a standalone re-validation.
	if !r.Scenario.DryRun && res.OutputDir != "" && res.Report != nil && res.Report.Valid {
		var toolNames []string
		if res.Spec != nil {
			toolNames = res.Spec.EndpointNames()
		}
		report, err := validator.ValidateDir(res.OutputDir, res.Report.Target, toolNames)
		if err != nil {
			fail("re-validating written artifacts: %v", err)
		} else if !report.Valid {
			fail("written artifacts failed re-validation with %d error(s)", report.ErrorCount)
		}
	}
}
