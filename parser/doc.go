// Package parser loads OpenAPI 3.x documents and turns them into the
// parser-local extraction the normalizer consumes.
//
// Parsing covers four stages: loading the raw bytes (file, URL, reader, or
// in-memory slice), detecting the source format and OpenAPI version, resolving
// every local $ref eagerly, and extracting operations in declaration order.
// Documents are decoded through a yaml.Node tree for both YAML and JSON input,
// which preserves mapping key order and line/column positions; JSON content is
// recognized with a cheap validity probe before decoding.
//
// Reference resolution is eager and local-only: every $ref is replaced with a
// deep copy of its target before extraction, so downstream stages never see a
// reference. A reference cycle is a hard error
// (adaptererrors.CyclicReferenceError), not a silently deferred pointer.
//
// # Usage
//
//	result, err := parser.ParseWithOptions(
//		parser.WithLocation("openapi.yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("parsed %d operations\n", len(result.Extraction.Operations))
//
// Errors are typed: fetch failures return *adaptererrors.SpecFetchError,
// undecodable or structurally invalid documents return
// *adaptererrors.SpecFormatError, and non-3.x documents return
// *adaptererrors.UnsupportedVersionError.
package parser
