// Package apispec defines the normalized intermediate representation shared by
// every parser front-end and generator back-end in this module.
//
// A NormalizedAPISpec is produced exactly once per run by the normalizer and is
// treated as read-only afterwards: generators and validators consume it, none of
// them mutate it, and it holds no references back into parser state. Any future
// source format (GraphQL, HAR, Postman collections) must normalize into these
// same types, which is what keeps the generator back-ends format-agnostic.
//
// Two naming domains meet in this package and must never be conflated:
//
//   - Identifier names (Endpoint.Name, Parameter.Name, CredentialVar.Name) are
//     normalized for the generated code: snake_case tool and argument names,
//     uppercase environment variable names.
//   - Wire names (Parameter.WireName, AuthConfig.Name) keep the casing declared
//     in the source document and are what the generated server sends on the
//     wire at request time.
//
// Example:
//
//	for _, ep := range spec.Endpoints {
//		fmt.Printf("%s %s -> tool %q\n", ep.Method, ep.Path, ep.Name)
//	}
//	if spec.Auth != nil {
//		for _, cv := range spec.Auth.CredentialVars() {
//			fmt.Printf("reads $%s\n", cv.Name)
//		}
//	}
package apispec
