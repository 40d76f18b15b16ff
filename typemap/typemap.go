// Package typemap maps OpenAPI schema types to the type tokens used in
// generated servers.
//
// Every mapping carries two distinct vocabularies: the wire token advertised
// in a tool's externally visible input schema, and the native token used in
// the generated code's execution logic. The two are derived from the same
// Mapping value so they can never drift apart.
//
// Map is pure and total: any (type, format) pair produces a usable Mapping.
// Unrecognized input maps to the explicit Any value, whose wire token is
// "any" and never the empty string — an empty type token corrupts generated
// schema documents, so it cannot be produced here at all. Callers that must
// not accept unknown types (tool input parameters) check Known() and reject.
package typemap

// Kind is the semantic type category of a schema node.
type Kind string

// Recognized kinds. KindUnknown is the explicit outcome for unrecognized
// input, forcing callers to decide between rejecting and substituting a
// visible sentinel.
const (
	KindUnknown Kind = "unknown"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// Mapping is the resolved type of a schema node. The zero value is the
// unknown mapping.
type Mapping struct {
	// Kind is the semantic category
	Kind Kind `json:"kind,omitempty"`
	// Format is the schema format hint ("int64", "date-time", ...), kept
	// verbatim
	Format string `json:"format,omitempty"`
	// Elem is the element mapping for arrays; nil means an array of unknown
	// element type
	Elem *Mapping `json:"elem,omitempty"`
}

// Any is the explicit mapping for unrecognized or absent schema types.
var Any = Mapping{Kind: KindUnknown}

// Map resolves a schema type and format pair to a Mapping. It is pure and
// total: every input produces a valid Mapping, with unrecognized types
// mapping to Any. Array mappings produced here have an unknown element;
// use ArrayOf once the element mapping is resolved.
func Map(schemaType, schemaFormat string) Mapping {
	switch schemaType {
	case "string":
		return Mapping{Kind: KindString, Format: schemaFormat}
	case "integer":
		return Mapping{Kind: KindInteger, Format: schemaFormat}
	case "number":
		return Mapping{Kind: KindNumber, Format: schemaFormat}
	case "boolean":
		return Mapping{Kind: KindBoolean, Format: schemaFormat}
	case "array":
		return Mapping{Kind: KindArray}
	case "object":
		return Mapping{Kind: KindObject, Format: schemaFormat}
	default:
		return Any
	}
}

// ArrayOf returns an array mapping with the given element mapping.
func ArrayOf(elem Mapping) Mapping {
	return Mapping{Kind: KindArray, Elem: &elem}
}

// Known reports whether the mapping resolved to a recognized kind. Array
// mappings are known regardless of their element; the element carries its
// own Known state.
func (m Mapping) Known() bool {
	return m.Kind != KindUnknown && m.Kind != ""
}

// Element returns the element mapping of an array, or Any when the element
// type is unresolved or the mapping is not an array.
func (m Mapping) Element() Mapping {
	if m.Elem == nil {
		return Any
	}
	return *m.Elem
}

// Wire returns the type token advertised in generated tool input schemas.
// It is never empty: unknown mappings yield "any".
func (m Mapping) Wire() string {
	switch m.Kind {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "any"
	}
}

// Python returns the native Python type annotation for the mapping.
func (m Mapping) Python() string {
	switch m.Kind {
	case KindString:
		switch m.Format {
		case "byte", "binary":
			return "bytes"
		default:
			return "str"
		}
	case KindInteger:
		return "int"
	case KindNumber:
		return "float"
	case KindBoolean:
		return "bool"
	case KindArray:
		if m.Elem != nil && m.Elem.Known() {
			return "list[" + m.Elem.Python() + "]"
		}
		return "list"
	case KindObject:
		return "dict"
	default:
		return "Any"
	}
}

// Go returns the native Go type for the mapping.
func (m Mapping) Go() string {
	switch m.Kind {
	case KindString:
		switch m.Format {
		case "byte", "binary":
			return "[]byte"
		default:
			return "string"
		}
	case KindInteger:
		if m.Format == "int32" {
			return "int32"
		}
		return "int64"
	case KindNumber:
		if m.Format == "float" {
			return "float32"
		}
		return "float64"
	case KindBoolean:
		return "bool"
	case KindArray:
		return "[]" + m.Element().Go()
	case KindObject:
		return "map[string]any"
	default:
		return "any"
	}
}

// String returns the wire token, with the format appended when present.
// Used in log output and error messages.
func (m Mapping) String() string {
	if m.Format != "" {
		return m.Wire() + "/" + m.Format
	}
	return m.Wire()
}
