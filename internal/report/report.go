// Package report provides the shared issue and severity types used by the
// parser, normalizer, generator, and validator packages.
//
// All severity levels are re-exported by each public package that surfaces
// them:
//   - SeverityInfo: informational notices about choices made
//   - SeverityWarning: degraded handling that did not stop the run
//   - SeverityError: violations that fail a check or abort a stage
//   - SeverityCritical: data that could not be processed at all
package report

import "fmt"

// Severity indicates how serious an issue found during parsing,
// normalization, generation, or artifact validation is.
type Severity int

const (
	// SeverityError indicates a violation that fails a check or aborts a
	// pipeline stage.
	SeverityError Severity = iota

	// SeverityWarning indicates degraded handling, such as a response schema
	// downgraded to the any sentinel or a non-standard status code.
	SeverityWarning

	// SeverityInfo indicates informational notices about processing choices,
	// such as an endpoint renamed during deduplication.
	SeverityInfo

	// SeverityCritical indicates data that could not be processed at all.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Issue represents a single problem found by a pipeline stage.
type Issue struct {
	// Check names the check or stage that raised the issue
	// (e.g., "syntax", "completeness", "naming", "auth")
	Check string
	// Path is the document or artifact path to the problematic element
	// (e.g., "paths./pets.get.parameters.0" or "server.py")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity Severity
	// Artifact is the artifact file name the issue relates to (validator use)
	Artifact string
	// Endpoint is the normalized endpoint name the issue relates to, when one
	// applies
	Endpoint string
	// Value is the problematic value (optional)
	Value any
	// Line is the 1-based line number in the source document (0 if unknown)
	Line int
	// Column is the 1-based column number in the source document (0 if unknown)
	Column int
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case SeverityError, SeverityCritical:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	case SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Path
	if where == "" {
		where = i.Artifact
	}
	if i.Endpoint != "" {
		where = fmt.Sprintf("%s [%s]", where, i.Endpoint)
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, where, i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
}

// Location returns the source location in IDE-friendly format, or the path
// when no line information is known.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Path
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Count returns how many of the given issues carry each severity.
func Count(issues []Issue) (errors, warnings, infos, criticals int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		case SeverityCritical:
			criticals++
		}
	}
	return errors, warnings, infos, criticals
}
