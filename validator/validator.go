package validator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/generator"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
)

// Severity indicates the severity level of a validation issue
type Severity = report.Severity

const (
	// SeverityError indicates a failed check that makes the artifact set invalid
	SeverityError = report.SeverityError
	// SeverityWarning indicates a finding that does not fail validation
	SeverityWarning = report.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = report.SeverityInfo
	// SeverityCritical indicates artifacts that could not be checked at all
	SeverityCritical = report.SeverityCritical
)

// Issue represents a single validation finding.
type Issue = report.Issue

// Report contains the results of validating one generated artifact set.
type Report struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Target is the target language the artifact set was generated for
	Target string
	// Errors contains the findings that fail validation
	Errors []Issue
	// Warnings contains the findings that do not fail validation
	Warnings []Issue
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ValidateTime is the time taken to run all checks
	ValidateTime time.Duration
}

// Err folds the report into an error: nil when the report is valid, a
// ValidationFailure enumerating every failed check otherwise.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	violations := make([]string, len(r.Errors))
	for i := range r.Errors {
		violations[i] = r.Errors[i].String()
	}
	return &adaptererrors.ValidationFailure{
		Target:     r.Target,
		ErrorCount: r.ErrorCount,
		Violations: violations,
	}
}

// ValidateResult validates a freshly generated artifact set in memory.
func ValidateResult(res *generator.Result) *Report {
	start := time.Now()
	if res == nil || len(res.Files) == 0 {
		return buildReport("", []Issue{{
			Check:    "completeness",
			Message:  "no artifacts to validate",
			Severity: report.SeverityCritical,
		}}, start)
	}

	artifacts := artifactSet(res.Target, res)
	files := make(map[string][]byte, len(res.Files))
	for i := range res.Files {
		files[res.Files[i].Name] = res.Files[i].Content
	}

	issues := runChecks(artifacts, res.ToolNames, files)
	return buildReport(res.Target, issues, start)
}

// ValidateDir validates an artifact set previously written to dir. toolNames
// enables the tool presence checks; pass nil to check structure only. The
// error return covers unregistered targets and unreadable files; a missing
// artifact is a validation finding, not an error.
func ValidateDir(dir, target string, toolNames []string) (*Report, error) {
	start := time.Now()
	backend, err := generator.Get(target)
	if err != nil {
		return nil, err
	}

	artifacts := backend.Artifacts()
	files := make(map[string][]byte, len(artifacts))
	for _, name := range artifacts {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read artifact %s: %w", name, err)
		}
		files[name] = data
	}

	issues := runChecks(artifacts, toolNames, files)
	return buildReport(target, issues, start), nil
}

// artifactSet returns the expected artifact names for a target, falling back
// to the result's own file names when the target is not registered.
func artifactSet(target string, res *generator.Result) []string {
	if backend, err := generator.Get(target); err == nil {
		return backend.Artifacts()
	}
	names := make([]string, len(res.Files))
	for i := range res.Files {
		names[i] = res.Files[i].Name
	}
	return names
}

// runChecks runs every check over the artifact set. Per-artifact checks run
// concurrently; results land in fixed slots so the merged issue list follows
// artifact order and repeated runs produce identical reports. The cross-file
// checks (tool presence, credentials) run after the merge.
func runChecks(artifacts []string, toolNames []string, files map[string][]byte) []Issue {
	slots := make([][]Issue, len(artifacts))
	var g errgroup.Group
	for i, name := range artifacts {
		g.Go(func() error {
			content, ok := files[name]
			if !ok {
				slots[i] = []Issue{{
					Check:    "completeness",
					Artifact: name,
					Message:  "required artifact is missing",
					Severity: report.SeverityError,
				}}
				return nil
			}
			if len(content) == 0 {
				slots[i] = []Issue{{
					Check:    "completeness",
					Artifact: name,
					Message:  "required artifact is empty",
					Severity: report.SeverityError,
				}}
				return nil
			}
			slots[i] = checkArtifact(name, content, toolNames)
			return nil
		})
	}
	_ = g.Wait() // check closures never return an error

	var issues []Issue
	for _, slot := range slots {
		issues = append(issues, slot...)
	}
	if len(artifacts) > 0 {
		// The first artifact of a set is the server source by construction.
		issues = append(issues, checkToolPresence(artifacts[0], toolNames, files)...)
		issues = append(issues, checkCredentials(artifacts[0], files)...)
	}
	return issues
}

// checkArtifact dispatches the syntax check for one artifact.
func checkArtifact(name string, content []byte, toolNames []string) []Issue {
	switch name {
	case "server.py":
		return checkPythonSource(name, content, len(toolNames))
	case "pyproject.toml":
		return checkPyproject(name, content)
	case "main.go":
		return checkGoSource(name, content)
	case "go.mod":
		return checkGoMod(name, content)
	case "tools.json":
		return checkToolsManifest(name, content, toolNames)
	default:
		return nil
	}
}

// checkToolPresence verifies every tool is registered in the server source and
// listed in the usage notes. Missing artifacts are skipped here; completeness
// already flags them.
func checkToolPresence(serverSource string, toolNames []string, files map[string][]byte) []Issue {
	var issues []Issue
	src := files[serverSource]
	readme := files["README.md"]
	for _, name := range toolNames {
		if src != nil && !bytes.Contains(src, []byte(strconv.Quote(name))) {
			issues = append(issues, Issue{
				Check:    "tools",
				Artifact: serverSource,
				Endpoint: name,
				Message:  fmt.Sprintf("tool %q is not registered in the server source", name),
				Severity: report.SeverityError,
			})
		}
		if readme != nil && !bytes.Contains(readme, []byte("`"+name+"`")) {
			issues = append(issues, Issue{
				Check:    "tools",
				Artifact: "README.md",
				Endpoint: name,
				Message:  fmt.Sprintf("tool %q is missing from the usage notes", name),
				Severity: report.SeverityError,
			})
		}
	}
	return issues
}

// checkCredentials verifies the credential template declares the base URL
// override and that the server source reads every variable the template
// declares.
func checkCredentials(serverSource string, files map[string][]byte) []Issue {
	env := files[".env.example"]
	if env == nil {
		return nil
	}

	var issues []Issue
	vars := envVarNames(env)
	declaresBaseURL := false
	for _, name := range vars {
		if name == apispec.EnvBaseURL {
			declaresBaseURL = true
			break
		}
	}
	if !declaresBaseURL {
		issues = append(issues, Issue{
			Check:    "credentials",
			Artifact: ".env.example",
			Message:  fmt.Sprintf("credential template does not declare %s", apispec.EnvBaseURL),
			Severity: report.SeverityError,
		})
	}

	src := files[serverSource]
	if src == nil {
		return issues
	}
	for _, name := range vars {
		// Generated sources read credentials as os.getenv("NAME") or
		// os.Getenv("NAME"), so the quoted name must appear.
		if !bytes.Contains(src, []byte(`"`+name+`"`)) {
			issues = append(issues, Issue{
				Check:    "credentials",
				Artifact: serverSource,
				Message:  fmt.Sprintf("credential variable %s is declared in the template but never read by the server", name),
				Severity: report.SeverityError,
			})
		}
	}
	return issues
}

// envVarNames extracts the variable names a dotenv-style template declares,
// in declaration order.
func envVarNames(env []byte) []string {
	var names []string
	for _, line := range bytes.Split(env, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		eq := bytes.IndexByte(line, '=')
		if eq <= 0 {
			continue
		}
		names = append(names, string(line[:eq]))
	}
	return names
}

// buildReport splits issues by severity and finalizes the report.
func buildReport(target string, issues []Issue, start time.Time) *Report {
	r := &Report{Target: target}
	for _, issue := range issues {
		switch issue.Severity {
		case report.SeverityError, report.SeverityCritical:
			r.Errors = append(r.Errors, issue)
		default:
			r.Warnings = append(r.Warnings, issue)
		}
	}
	r.ErrorCount = len(r.Errors)
	r.WarningCount = len(r.Warnings)
	r.Valid = r.ErrorCount == 0
	r.ValidateTime = time.Since(start)
	return r
}
