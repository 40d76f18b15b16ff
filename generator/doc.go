// Package generator renders MCP server artifact sets from a normalized API
// specification.
//
// Each supported target language is a Backend registered under a selector
// ("python", "go"). A backend renders a fixed artifact set: the runnable
// server source, a dependency manifest, usage notes, a credential template,
// and a tool manifest. Rendering is a set of pure functions over typed view
// structs built once from the specification; there is no template engine, so
// every field an artifact needs is checked at build time and a missing one
// fails the render instead of leaving a blank in the output.
//
// # Quick Start
//
// Generate a Python server using functional options:
//
//	result, err := generator.Generate(
//		generator.WithSpec(spec),
//		generator.WithTarget(generator.TargetPython),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := result.WriteFiles("./out"); err != nil {
//		log.Fatal(err)
//	}
//
// # Determinism
//
// Rendering the same specification twice yields byte-identical artifacts.
// Tools are emitted in the specification's declaration order, artifact
// content carries no timestamps, and no render path iterates a map. Stable
// bytes keep repeated runs diffable and let the validator compare outputs.
//
// # Failure Modes
//
// A selector with no registered backend returns an
// [adaptererrors.UnsupportedTargetError] listing the registered targets.
// Required data missing from the specification (no endpoints, no base URL,
// an endpoint without a name, a parameter with a blank wire type) returns a
// [adaptererrors.TemplateRenderError] naming the artifact and field.
package generator
