// Package pipeline runs the full spec-to-server pipeline with a single call.
//
// Run executes parse, normalize, generate, write, and validate as a strict
// sequential pipeline and returns every stage's output in one Result. It is
// the entry point the CLI and the MCP serve mode consume; library users who
// need finer control can call the stage packages directly.
//
//	result, err := pipeline.Run(ctx,
//	    pipeline.WithLocation("https://example.com/openapi.json"),
//	    pipeline.WithOutputDir("./generated-server"),
//	    pipeline.WithTarget("python"),
//	)
//	if err != nil {
//	    // a stage failed; err matches one of the adaptererrors sentinels
//	}
//	if !result.Report.Valid {
//	    // artifacts were written but failed validation; they stay on disk
//	}
//
// Failures before generation abort the run with the stage's typed error.
// Validation failures do not: the report rides in the result with
// Report.Valid == false and any written artifacts are left in place for
// inspection.
package pipeline
