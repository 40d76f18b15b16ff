package apispec

import "github.com/gacabartosz/mcp-universal-adapter/internal/naming"

// AuthKind identifies an authentication mechanism family.
type AuthKind string

// Authentication kinds produced by normalization.
const (
	// AuthNone is used for display only; an unauthenticated endpoint carries
	// a nil *AuthConfig, never an AuthConfig with this kind
	AuthNone AuthKind = "none"
	// AuthAPIKey sends a key in a header, query parameter, or cookie
	AuthAPIKey AuthKind = "api_key"
	// AuthBearer sends "Authorization: Bearer <token>"
	AuthBearer AuthKind = "bearer"
	// AuthBasic sends "Authorization: Basic <base64(user:pass)>"
	AuthBasic AuthKind = "basic"
	// AuthOAuth2 sends an OAuth2 access token as a bearer credential
	AuthOAuth2 AuthKind = "oauth2"
	// AuthCustom marks a security scheme kind this module does not model
	AuthCustom AuthKind = "custom"
)

// EnvBaseURL is the environment variable every generated server reads to
// override the base URL baked in at generation time.
const EnvBaseURL = "API_BASE_URL"

// Credential environment variable names fixed per mechanism kind.
const (
	EnvBearerToken      = "BEARER_TOKEN"
	EnvBasicUsername    = "API_USERNAME"
	EnvBasicPassword    = "API_PASSWORD"
	EnvOAuthAccessToken = "OAUTH_ACCESS_TOKEN"
)

// AuthConfig describes one authentication mechanism, either document-level
// (NormalizedAPISpec.Auth) or effective per endpoint (Endpoint.Auth).
//
// Name keeps the declared casing of the header or query parameter carrying the
// credential ("X-API-Key"); the environment variable the generated server reads
// the secret from is derived separately by CredentialVars. The two are never
// interchangeable.
type AuthConfig struct {
	Kind AuthKind `json:"kind"`
	// Name is the wire name carrying the credential, for api_key schemes
	Name string `json:"name,omitempty"`
	// In says where the credential travels (header, query, or cookie)
	In Location `json:"in,omitempty"`
	// Scheme is the HTTP auth scheme ("Bearer", "Basic")
	Scheme      string `json:"scheme,omitempty"`
	Description string `json:"description,omitempty"`
	// OAuth2 flow details, informational only
	AuthorizationURL string   `json:"authorizationUrl,omitempty"`
	TokenURL         string   `json:"tokenUrl,omitempty"`
	Scopes           []string `json:"scopes,omitempty"`
}

// CredentialVar is one environment variable a generated server reads a
// credential from.
type CredentialVar struct {
	// Name is a valid uppercase environment variable identifier
	Name string `json:"name"`
	// Placeholder is the sample value written to .env.example
	Placeholder string `json:"placeholder"`
	// Comment is the explanatory line above the variable, empty to omit
	Comment string `json:"comment,omitempty"`
}

// CredentialVars derives the environment variables for this mechanism. The
// derivation is deterministic: api_key uses the wire name mapped to an
// uppercase identifier (X-API-Key becomes X_API_KEY), the other kinds use
// fixed names. Unmodeled kinds derive nothing.
func (a *AuthConfig) CredentialVars() []CredentialVar {
	switch a.Kind {
	case AuthAPIKey:
		comment := a.Description
		if comment == "" {
			comment = "API authentication key"
		}
		return []CredentialVar{
			{Name: naming.EnvName(a.Name), Placeholder: "your_api_key_here", Comment: comment},
		}
	case AuthBearer:
		return []CredentialVar{
			{Name: EnvBearerToken, Placeholder: "your_bearer_token_here", Comment: "Bearer token for authentication"},
		}
	case AuthBasic:
		return []CredentialVar{
			{Name: EnvBasicUsername, Placeholder: "your_username", Comment: "Basic authentication credentials"},
			{Name: EnvBasicPassword, Placeholder: "your_password"},
		}
	case AuthOAuth2:
		return []CredentialVar{
			{Name: EnvOAuthAccessToken, Placeholder: "your_access_token_here", Comment: "OAuth2 access token"},
		}
	default:
		return nil
	}
}
