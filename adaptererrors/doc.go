// Package adaptererrors provides structured error types for the pipeline.
//
// Import path: github.com/gacabartosz/mcp-universal-adapter/adaptererrors
//
// This package enables programmatic error handling via [errors.Is] and
// [errors.As], allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Types
//
// The package provides eight core error types, one per pipeline failure mode:
//
//   - [SpecFetchError]: source document could not be read or fetched
//   - [SpecFormatError]: malformed or structurally invalid documents
//   - [UnsupportedVersionError]: OpenAPI version outside the supported set
//   - [CyclicReferenceError]: circular $ref detected during resolution
//   - [NormalizationError]: intermediate representation construction failed
//   - [UnsupportedTargetError]: no generator backend for the target selector
//   - [TemplateRenderError]: required data absent while rendering an artifact
//   - [ValidationFailure]: the emitted artifact set failed validation checks
//
// # Sentinel Errors
//
// Each type matches a sentinel through errors.Is, so callers can branch on
// categories without type assertions:
//
//	result, err := pipeline.Run(ctx, pipeline.WithLocation("api.yaml"))
//	if errors.Is(err, adaptererrors.ErrCyclicReference) {
//	    var cerr *adaptererrors.CyclicReferenceError
//	    if errors.As(err, &cerr) {
//	        log.Printf("cycle via %s", strings.Join(cerr.Chain, " -> "))
//	    }
//	}
//
// # Propagation Policy
//
// Fetch and parse errors are never retried automatically; remote documents
// are assumed static for the duration of a run. Normalization errors abort
// the entire run rather than dropping the offending operation. Validation
// failures are reported but never delete already-written artifacts.
package adaptererrors
