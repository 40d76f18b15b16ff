package apispec

import (
	"fmt"

	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

// Method is an uppercase HTTP method name.
type Method string

// HTTP methods recognized in path items.
const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodHead    Method = "HEAD"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
)

// Location identifies where a parameter travels in an HTTP request.
type Location string

// Parameter locations (used in Parameter.Location and AuthConfig.In).
const (
	// LocationPath indicates the parameter substitutes a {placeholder} in the path
	LocationPath Location = "path"
	// LocationQuery indicates the parameter is passed in the query string
	LocationQuery Location = "query"
	// LocationHeader indicates the parameter is passed as a request header
	LocationHeader Location = "header"
	// LocationCookie indicates the parameter is passed as a cookie
	LocationCookie Location = "cookie"
	// LocationBody indicates the parameter is a field of the JSON request body
	LocationBody Location = "body"
)

// NormalizedAPISpec is the root aggregate every generator consumes.
//
// Endpoints preserve declaration order from the source document, and that order
// is the order tools are emitted in, so repeated runs over the same document
// stay diffable. Built exclusively by the normalizer; treat as immutable after.
type NormalizedAPISpec struct {
	// Name is the API title from the source document's info block
	Name string `json:"name"`
	// Version is the API version string (not the OpenAPI version)
	Version string `json:"version"`
	// Description is the API description, if any
	Description string `json:"description,omitempty"`
	// BaseURL is the primary server URL (first declared server)
	BaseURL string `json:"baseUrl,omitempty"`
	// Servers lists every declared server URL in declaration order
	Servers []string `json:"servers,omitempty"`
	// Endpoints holds one entry per operation, in declaration order
	Endpoints []Endpoint `json:"endpoints"`
	// Auth is the document-level authentication mechanism; nil means the API
	// is unauthenticated unless an endpoint declares its own requirement
	Auth *AuthConfig `json:"auth,omitempty"`
	// Schemas holds the named component schemas in declaration order
	Schemas []*SchemaModel `json:"schemas,omitempty"`
	// SourceFormat records the input encoding ("json" or "yaml")
	SourceFormat string `json:"sourceFormat,omitempty"`
}

// EndpointNames returns every endpoint name in declaration order.
func (s *NormalizedAPISpec) EndpointNames() []string {
	names := make([]string, len(s.Endpoints))
	for i := range s.Endpoints {
		names[i] = s.Endpoints[i].Name
	}
	return names
}

// EndpointByName returns the endpoint with the given tool name, or nil.
func (s *NormalizedAPISpec) EndpointByName(name string) *Endpoint {
	for i := range s.Endpoints {
		if s.Endpoints[i].Name == name {
			return &s.Endpoints[i]
		}
	}
	return nil
}

// Summary returns a short human-readable description of the spec, suitable
// for CLI output.
func (s *NormalizedAPISpec) Summary() string {
	auth := "none"
	if s.Auth != nil {
		auth = string(s.Auth.Kind)
	}
	base := s.BaseURL
	if base == "" {
		base = "not specified"
	}
	return fmt.Sprintf("%s v%s\nEndpoints: %d\nAuth: %s\nBase URL: %s",
		s.Name, s.Version, len(s.Endpoints), auth, base)
}

// Endpoint is one normalized API operation, exposed as one MCP tool.
type Endpoint struct {
	// Name is the unique snake_case tool name
	Name string `json:"name"`
	// OperationID is the source operationId, when one was declared
	OperationID string `json:"operationId,omitempty"`
	Method      Method `json:"method"`
	// Path is the path template and may contain {param} placeholders
	Path        string       `json:"path"`
	Summary     string       `json:"summary,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Parameters  []Parameter  `json:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Responses   []Response   `json:"responses,omitempty"`
	// Auth is the effective mechanism after merging document-level and
	// operation-level security; nil means this endpoint is unauthenticated
	Auth       *AuthConfig `json:"auth,omitempty"`
	Deprecated bool        `json:"deprecated,omitempty"`
}

// ParametersIn returns the endpoint's parameters at the given location,
// preserving order.
func (e *Endpoint) ParametersIn(loc Location) []Parameter {
	var out []Parameter
	for _, p := range e.Parameters {
		if p.Location == loc {
			out = append(out, p)
		}
	}
	return out
}

// PathParameters returns only path parameters.
func (e *Endpoint) PathParameters() []Parameter { return e.ParametersIn(LocationPath) }

// QueryParameters returns only query parameters.
func (e *Endpoint) QueryParameters() []Parameter { return e.ParametersIn(LocationQuery) }

// HeaderParameters returns only header parameters.
func (e *Endpoint) HeaderParameters() []Parameter { return e.ParametersIn(LocationHeader) }

// BodyParameters returns the parameters flattened out of the request body.
func (e *Endpoint) BodyParameters() []Parameter { return e.ParametersIn(LocationBody) }

// PrimaryTag returns the endpoint's first tag, or "" when untagged.
func (e *Endpoint) PrimaryTag() string {
	if len(e.Tags) == 0 {
		return ""
	}
	return e.Tags[0]
}

// PrimaryResponse returns the endpoint's preferred success response, or nil.
// The normalizer orders Responses with the preferred one first.
func (e *Endpoint) PrimaryResponse() *Response {
	if len(e.Responses) == 0 {
		return nil
	}
	return &e.Responses[0]
}

// Parameter is one input to an endpoint.
//
// Name and WireName are distinct values: Name is the normalized snake_case
// identifier used in generated signatures and tool input schemas, WireName is
// the name sent on the wire with its declared casing intact. For body-derived
// parameters WireName is the JSON property name.
type Parameter struct {
	Name     string   `json:"name"`
	WireName string   `json:"wireName"`
	Location Location `json:"location"`
	// Type is never the unknown mapping; normalization rejects parameters
	// whose schema type cannot be resolved
	Type     typemap.Mapping `json:"type"`
	Required bool            `json:"required,omitempty"`
	// Default is the decoded default value, coerced to the declared type
	Default any `json:"default,omitempty"`
	// DefaultLiteral is Default pre-rendered as a target-neutral literal
	// ("42", "true", "fifty"), empty when no default was declared
	DefaultLiteral string   `json:"defaultLiteral,omitempty"`
	Description    string   `json:"description,omitempty"`
	Enum           []string `json:"enum,omitempty"`
}

// HasDefaultValue reports whether the parameter declared a default.
func (p *Parameter) HasDefaultValue() bool { return p.Default != nil }

// RequestBody describes an endpoint's request body. When the body schema is an
// object its first-level properties are flattened into LocationBody parameters;
// a non-object body becomes a single opaque "body" parameter.
type RequestBody struct {
	Required    bool         `json:"required,omitempty"`
	ContentType string       `json:"contentType"`
	Schema      *SchemaModel `json:"schema,omitempty"`
}

// Response describes one documented response of an endpoint.
type Response struct {
	// Status is the declared status code key ("200", "404", "default")
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	// Schema may carry the unknown "any" mapping for response-only schemas
	// the normalizer could not resolve
	Schema *SchemaModel `json:"schema,omitempty"`
}

// SchemaModel is a named or inline schema after reference resolution. No
// unresolved references ever reach this type.
type SchemaModel struct {
	Name        string          `json:"name,omitempty"`
	Type        typemap.Mapping `json:"type"`
	Description string          `json:"description,omitempty"`
	// Properties lists first-level object properties in declaration order
	Properties []Property `json:"properties,omitempty"`
	// Items is the element schema when Type is an array
	Items *SchemaModel `json:"items,omitempty"`
}

// RequiredProperties returns the names of the schema's required properties,
// in declaration order.
func (m *SchemaModel) RequiredProperties() []string {
	var out []string
	for _, p := range m.Properties {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// Property is one first-level property of an object schema.
type Property struct {
	// Name is the JSON property name as declared
	Name     string          `json:"name"`
	Type     typemap.Mapping `json:"type"`
	Required bool            `json:"required,omitempty"`
	Default  any             `json:"default,omitempty"`
	// DefaultLiteral mirrors Parameter.DefaultLiteral
	DefaultLiteral string   `json:"defaultLiteral,omitempty"`
	Description    string   `json:"description,omitempty"`
	Enum           []string `json:"enum,omitempty"`
}
