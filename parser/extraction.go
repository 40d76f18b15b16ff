package parser

// Extraction is the parser-local model handed to the normalizer: the
// interesting parts of an OpenAPI document after reference resolution, in
// declaration order, with none of the document's nesting left to navigate.
type Extraction struct {
	// Title is the API title from the info block
	Title string
	// Version is the API version from the info block
	Version string
	// Description is the API description, if any
	Description string
	// Servers lists declared server URLs in declaration order
	Servers []string
	// Operations lists every operation in paths-mapping declaration order,
	// then path-item method declaration order
	Operations []Operation
	// SecuritySchemes lists components.securitySchemes in declaration order
	SecuritySchemes []SecurityScheme
	// GlobalSecurity is the document-level security requirement;
	// nil when the document declares none
	GlobalSecurity *SecurityRequirement
	// Schemas lists components.schemas in declaration order
	Schemas []*RawSchema
	// Format is the detected source format
	Format SourceFormat
}

// Operation is one method+path pair extracted from the paths mapping.
type Operation struct {
	// Method is the uppercase HTTP method
	Method string
	// Path is the path template as declared, possibly with {param} placeholders
	Path        string
	OperationID string
	Summary     string
	Description string
	Tags        []string
	// Parameters holds path-item-level parameters merged with operation-level
	// ones (operation wins on the same name+location), in declaration order
	Parameters []RawParameter
	// Body is the request body, nil when the operation declares none
	Body *RawBody
	// Responses lists documented responses in declaration order
	Responses []RawResponse
	// Security is the operation-level requirement override; nil means inherit
	// the document-level requirement, non-nil with no schemes means the
	// operation is explicitly unauthenticated
	Security   *SecurityRequirement
	Deprecated bool
	// Line records where the operation starts in the source document
	Line int
}

// RawParameter is one declared parameter before normalization.
type RawParameter struct {
	Name        string
	In          string
	Required    bool
	Description string
	Schema      *RawSchema
	// Line records where the parameter is declared
	Line int
}

// RawBody is an operation's request body with its selected media type.
type RawBody struct {
	Required bool
	// ContentType is the selected media type: application/json when declared,
	// otherwise the first declared media type
	ContentType string
	Schema      *RawSchema
}

// RawResponse is one documented response.
type RawResponse struct {
	// Status is the response key as declared ("200", "404", "default")
	Status      string
	Description string
	// Schema is the application/json schema, nil when the response declares
	// no JSON content
	Schema *RawSchema
}

// RawSchema is a schema subtree after reference resolution. Values are
// decoded but not yet coerced; the normalizer owns type mapping and default
// coercion.
type RawSchema struct {
	// Name is the component name when the schema came from components.schemas
	Name        string
	Type        string
	Format      string
	Description string
	// Enum holds the declared enum values, decoded but unconverted
	Enum []any
	// Default holds the declared default value, decoded but unconverted
	Default any
	// HasDefault distinguishes an explicit null default from no default
	HasDefault bool
	// Properties lists object properties in declaration order
	Properties []RawProperty
	// RequiredProps lists the declared required property names
	RequiredProps []string
	// Items is the element schema for arrays
	Items *RawSchema
	// Line records where the schema is declared
	Line int
}

// RawProperty is one named property of an object schema.
type RawProperty struct {
	Name   string
	Schema *RawSchema
}

// SecurityScheme is one entry of components.securitySchemes.
type SecurityScheme struct {
	// Key is the scheme's name in the securitySchemes mapping, referenced by
	// security requirements
	Key string
	// Type is the declared scheme type (apiKey, http, oauth2, openIdConnect)
	Type string
	// Name is the header/query/cookie name carrying the credential (apiKey)
	Name string
	// In is where the credential travels (apiKey)
	In string
	// Scheme is the HTTP auth scheme (http): "bearer", "basic"
	Scheme      string
	Description string
	// OAuth2 flow details from the first usable flow
	AuthorizationURL string
	TokenURL         string
	Scopes           []string
}

// SecurityRequirement is a flattened security requirement: the scheme keys it
// references, in declaration order. A requirement with no schemes means
// explicitly unauthenticated.
type SecurityRequirement struct {
	SchemeKeys []string
}
