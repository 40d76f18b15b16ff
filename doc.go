// Package mcpadapter turns machine-readable API descriptions into ready-to-run
// MCP (Model Context Protocol) servers.
//
// Given an OpenAPI 3.x document (JSON or YAML, local file or URL), the module
// parses it into a unified intermediate representation and deterministically
// emits a complete server project in a target language, where every API
// operation is exposed as one callable MCP tool. The emitted artifact set is
// then validated for syntax, completeness, and tool coverage.
//
// # Overview
//
// The pipeline is split into one package per stage:
//
//   - parser: fetch, decode, and extract OpenAPI documents, with eager $ref
//     resolution and cycle detection
//   - normalizer: build the canonical NormalizedAPISpec from a parsed document
//   - apispec: the intermediate representation consumed by all generators
//   - typemap: map schema types to wire and native type tokens
//   - generator: render the IR into a per-target artifact set
//   - validator: check an emitted artifact set and report violations
//   - pipeline: run all stages end to end with a single call
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/gacabartosz/mcp-universal-adapter
//
// # Quick Start
//
// Generate a Python MCP server from a spec:
//
//	import "github.com/gacabartosz/mcp-universal-adapter/pipeline"
//
//	result, err := pipeline.Run(ctx,
//	    pipeline.WithLocation("https://example.com/openapi.json"),
//	    pipeline.WithOutputDir("./generated-server"),
//	    pipeline.WithTarget("python"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Report.Valid {
//	    fmt.Printf("generated with %d validation error(s)\n", result.Report.ErrorCount)
//	}
//
// Run the stages individually:
//
//	pres, err := parser.ParseWithOptions(parser.WithFilePath("openapi.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nres, err := normalizer.Normalize(pres.Extraction)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	gres, err := generator.Generate(
//	    generator.WithSpec(nres.Spec),
//	    generator.WithTarget("python"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := validator.ValidateResult(gres)
//
// # Output Artifacts
//
// Each target renders the same artifact roles:
//
//   - runnable server source (server.py or main.go)
//   - dependency manifest (pyproject.toml or go.mod)
//   - credential template (.env.example)
//   - usage notes (README.md)
//   - tool manifest (tools.json)
//
// Generation is deterministic: the same IR and target always produce
// byte-identical artifacts, so emitted projects can be diffed and rebuilt
// reproducibly.
//
// # Authentication
//
// Security schemes declared in the source document are carried into the
// generated server. Credentials are read from environment variables with
// deterministically derived names (for example a Bearer scheme reads
// BEARER_TOKEN, an X-API-Key header scheme reads X_API_KEY), while the
// original header or query parameter casing is preserved on the wire. The
// generated server also honors API_BASE_URL to override the spec's server URL.
//
// # Error Handling
//
// All failure modes are typed in the adaptererrors package: SpecFetchError,
// SpecFormatError, UnsupportedVersionError, CyclicReferenceError,
// NormalizationError, UnsupportedTargetError, TemplateRenderError, and
// ValidationFailure. Every type matches a sentinel with errors.Is and exposes
// its fields through errors.As:
//
//	if errors.Is(err, adaptererrors.ErrCyclicReference) {
//	    var cerr *adaptererrors.CyclicReferenceError
//	    if errors.As(err, &cerr) {
//	        fmt.Printf("cycle: %s\n", strings.Join(cerr.Chain, " -> "))
//	    }
//	}
//
// Validation failures are reported, never auto-fixed, and never delete
// already-written artifacts.
//
// # Command-Line Interface
//
// The mcp-adapt command wraps the pipeline:
//
//	# Generate a Python MCP server
//	mcp-adapt generate -output ./server https://example.com/openapi.json
//
//	# Inspect the normalized model without generating
//	mcp-adapt parse openapi.yaml
//
//	# Re-check artifacts already on disk
//	mcp-adapt validate -dir ./server -spec openapi.yaml
//
//	# Serve the pipeline itself as MCP tools over stdio
//	mcp-adapt serve
//
// Install the CLI:
//
//	go install github.com/gacabartosz/mcp-universal-adapter/cmd/mcp-adapt@latest
//
// # Limitations
//
//   - Only OpenAPI 3.x input is supported; Swagger 2.0 documents fail fast
//     with UnsupportedVersionError
//   - $ref resolution is document-local; references to other files or URLs
//     are rejected
//   - Cyclic schema references are rejected rather than unrolled, since the
//     intermediate representation holds fully inlined schemas
//   - Generated servers are not executed or verified against a live API
package mcpadapter
