// Package naming provides shared identifier normalization for the pipeline.
//
// This internal package contains the pure string transformations used when
// deriving tool names, environment variable names, and generated-code
// identifiers: Words, Identifier, EnvName, Pascal, Camel, and Kebab. The
// conversions are total over string inputs and deterministic, which the
// generator relies on for reproducible output.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
