// Package normalizer turns a parser extraction into the immutable
// intermediate representation consumed by the generator.
//
// Normalization owns every semantic decision between the source document and
// the IR: endpoint naming and deduplication, security scheme merging, type
// resolution through typemap, default value coercion, and request body
// flattening. The parser hands over raw declared values; everything the
// generator renders was decided here.
//
// The normalizer is strict about tool inputs and lenient about outputs. A
// parameter whose schema type is absent or unrecognized aborts the run with a
// NormalizationError, because a wrong input schema produces a server that
// systematically rejects valid calls. A response schema with the same problem
// degrades to the visible "any" sentinel with a warning, since response
// schemas are documentation for the model, not a contract the server
// enforces.
//
// Usage:
//
//	result, err := normalizer.Normalize(parseResult.Extraction)
//	if err != nil {
//	    var normErr *adaptererrors.NormalizationError
//	    if errors.As(err, &normErr) {
//	        log.Fatalf("cannot build IR at %s: %s", normErr.Path, normErr.Message)
//	    }
//	}
//	spec := result.Spec
package normalizer
