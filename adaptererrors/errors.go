package adaptererrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrSpecFetch indicates the source document could not be read or fetched.
	ErrSpecFetch = errors.New("spec fetch error")

	// ErrSpecFormat indicates the source document is malformed or structurally
	// invalid.
	ErrSpecFormat = errors.New("spec format error")

	// ErrUnsupportedVersion indicates the document declares an OpenAPI version
	// outside the supported set.
	ErrUnsupportedVersion = errors.New("unsupported spec version")

	// ErrCyclicReference indicates a circular $ref was detected during
	// resolution.
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrNormalization indicates the parsed document could not be normalized
	// into the intermediate representation.
	ErrNormalization = errors.New("normalization error")

	// ErrUnsupportedTarget indicates the requested target language has no
	// registered generator backend.
	ErrUnsupportedTarget = errors.New("unsupported target")

	// ErrTemplateRender indicates required data was absent while rendering an
	// artifact.
	ErrTemplateRender = errors.New("render error")

	// ErrValidation indicates the emitted artifact set failed validation.
	ErrValidation = errors.New("validation failure")
)

// SpecFetchError represents a failure to read the source document from disk
// or fetch it over HTTP. Fetches are never retried; remote documents are
// assumed static for the duration of a run.
type SpecFetchError struct {
	// Location is the file path or URL that failed
	Location string
	// StatusCode is the HTTP status received, when the failure was an
	// unexpected response (0 otherwise)
	StatusCode int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SpecFetchError) Error() string {
	msg := "spec fetch error"
	if e.Location != "" {
		msg += " for " + e.Location
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SpecFetchError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SpecFetchError) Is(target error) bool {
	return target == ErrSpecFetch
}

// SpecFormatError represents a malformed or structurally invalid source
// document. This includes YAML/JSON deserialization failures, missing
// required sections, and unresolvable (non-cyclic) references.
type SpecFormatError struct {
	// Location is the file path or URL of the document
	Location string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Ref is the reference string involved, when the failure concerns a $ref
	Ref string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SpecFormatError) Error() string {
	msg := "spec format error"
	if e.Location != "" {
		msg += " in " + e.Location
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Ref != "" {
		msg += " (ref " + e.Ref + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SpecFormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SpecFormatError) Is(target error) bool {
	return target == ErrSpecFormat
}

// UnsupportedVersionError indicates the document declares an OpenAPI version
// outside the supported set. Only 3.x documents are accepted.
type UnsupportedVersionError struct {
	// Declared is the version string the document carries (e.g., "2.0");
	// empty when no version field was present
	Declared string
	// Supported lists the accepted major versions
	Supported []string
}

// Error returns a human-readable error message.
func (e *UnsupportedVersionError) Error() string {
	msg := "unsupported spec version"
	if e.Declared != "" {
		msg += " " + e.Declared
	} else {
		msg += ": document declares no openapi version"
	}
	if len(e.Supported) > 0 {
		msg += fmt.Sprintf(" (supported: %s)", strings.Join(e.Supported, ", "))
	}
	return msg
}

// Unwrap returns nil as UnsupportedVersionError has no underlying cause.
func (e *UnsupportedVersionError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// CyclicReferenceError indicates a $ref cycle. The intermediate
// representation stores fully inlined schemas and cannot hold cycles, so
// resolution fails rather than unrolling.
type CyclicReferenceError struct {
	// Ref is the reference that closed the cycle
	Ref string
	// Chain is the resolution path that led back to Ref, in order
	Chain []string
}

// Error returns a human-readable error message.
func (e *CyclicReferenceError) Error() string {
	msg := "cyclic reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if len(e.Chain) > 0 {
		msg += " (via " + strings.Join(e.Chain, " -> ") + ")"
	}
	return msg
}

// Unwrap returns nil as CyclicReferenceError has no underlying cause.
func (e *CyclicReferenceError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *CyclicReferenceError) Is(target error) bool {
	return target == ErrCyclicReference
}

// NormalizationError represents a violation found while building the
// intermediate representation. Normalization aborts the whole run on the
// first violation; a partial model could generate a server with
// systematically wrong behavior for the dropped operation.
type NormalizationError struct {
	// Path is the document path to the offending element
	// (e.g., "paths./pets.get.parameters.0")
	Path string
	// Endpoint is the normalized endpoint name, when one was derived
	Endpoint string
	// Parameter is the parameter name, when the violation concerns one
	Parameter string
	// Message describes the violation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *NormalizationError) Error() string {
	msg := "normalization error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Endpoint != "" {
		msg += " (endpoint " + e.Endpoint
		if e.Parameter != "" {
			msg += ", parameter " + e.Parameter
		}
		msg += ")"
	} else if e.Parameter != "" {
		msg += " (parameter " + e.Parameter + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *NormalizationError) Is(target error) bool {
	return target == ErrNormalization
}

// UnsupportedTargetError indicates the requested target language has no
// registered generator backend.
type UnsupportedTargetError struct {
	// Target is the requested target selector
	Target string
	// Registered lists the available target selectors
	Registered []string
}

// Error returns a human-readable error message.
func (e *UnsupportedTargetError) Error() string {
	msg := "unsupported target"
	if e.Target != "" {
		msg += fmt.Sprintf(" %q", e.Target)
	}
	if len(e.Registered) > 0 {
		msg += fmt.Sprintf(" (registered: %s)", strings.Join(e.Registered, ", "))
	}
	return msg
}

// Unwrap returns nil as UnsupportedTargetError has no underlying cause.
func (e *UnsupportedTargetError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *UnsupportedTargetError) Is(target error) bool {
	return target == ErrUnsupportedTarget
}

// TemplateRenderError indicates required data was absent while rendering an
// artifact. Rendering fails hard rather than substituting a blank value,
// since a silently blank field corrupts the generated server.
type TemplateRenderError struct {
	// Target is the target language being rendered
	Target string
	// Artifact is the artifact file name being rendered
	Artifact string
	// Field names the missing or empty data
	Field string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *TemplateRenderError) Error() string {
	msg := "render error"
	if e.Target != "" {
		msg += " for target " + e.Target
	}
	if e.Artifact != "" {
		msg += " in " + e.Artifact
	}
	if e.Field != "" {
		msg += " (field " + e.Field + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *TemplateRenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *TemplateRenderError) Is(target error) bool {
	return target == ErrTemplateRender
}

// ValidationFailure indicates the emitted artifact set failed one or more
// validation checks. Already-written artifacts are left on disk so the
// faulty output can be inspected.
type ValidationFailure struct {
	// Target is the target language that was validated
	Target string
	// ErrorCount is the number of failed checks
	ErrorCount int
	// Violations holds one formatted line per failed check
	Violations []string
}

// Error returns a human-readable error message.
func (e *ValidationFailure) Error() string {
	msg := "validation failure"
	if e.Target != "" {
		msg += " for target " + e.Target
	}
	if e.ErrorCount > 0 {
		msg += fmt.Sprintf(": %d check(s) failed", e.ErrorCount)
	}
	if len(e.Violations) > 0 {
		msg += "\n    " + strings.Join(e.Violations, "\n    ")
	}
	return msg
}

// Unwrap returns nil as ValidationFailure has no underlying cause.
func (e *ValidationFailure) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ValidationFailure) Is(target error) bool {
	return target == ErrValidation
}
