// Package validator checks generated MCP server artifact sets before they are
// handed to users.
//
// Validation runs against the artifacts themselves, not the source
// specification: the emitted server source must be syntactically sound, the
// artifact set must be complete for its target, every tool must be registered
// in the server source and documented in the usage notes and manifest, and
// every credential variable the template declares must be read by the server.
// The validator only reports; it never fixes or deletes anything.
//
// Two entry points cover the two places artifacts live:
//
//	result, _ := generator.Generate(generator.WithSpec(spec))
//	report := validator.ValidateResult(result)
//	if err := report.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// ValidateDir performs the same checks against artifacts already written to
// disk, which is how the CLI validates a previously generated output
// directory.
//
// Per-artifact checks run concurrently; the report lists issues in the
// target's artifact order regardless, so repeated runs produce identical
// reports.
package validator
