package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
)

// TestNormalizeAuthKinds tests scheme conversion per declared type
func TestNormalizeAuthKinds(t *testing.T) {
	t.Run("api key header", func(t *testing.T) {
		spec := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
security:
  - keyAuth: []
paths: {}
components:
  securitySchemes:
    keyAuth:
      type: apiKey
      name: X-API-Key
      in: header
      description: Service API key
`).Spec

		require.NotNil(t, spec.Auth)
		assert.Equal(t, apispec.AuthAPIKey, spec.Auth.Kind)
		assert.Equal(t, "X-API-Key", spec.Auth.Name)
		assert.Equal(t, apispec.LocationHeader, spec.Auth.In)
		assert.Equal(t, "Service API key", spec.Auth.Description)

		vars := spec.Auth.CredentialVars()
		require.Len(t, vars, 1)
		assert.Equal(t, "X_API_KEY", vars[0].Name)
	})

	t.Run("api key query", func(t *testing.T) {
		spec := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
security:
  - keyAuth: []
paths: {}
components:
  securitySchemes:
    keyAuth:
      type: apiKey
      name: api_key
      in: query
`).Spec

		require.NotNil(t, spec.Auth)
		assert.Equal(t, apispec.LocationQuery, spec.Auth.In)
		assert.Equal(t, "api_key", spec.Auth.Name)
	})

	t.Run("basic", func(t *testing.T) {
		spec := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
security:
  - basicAuth: []
paths: {}
components:
  securitySchemes:
    basicAuth:
      type: http
      scheme: basic
`).Spec

		require.NotNil(t, spec.Auth)
		assert.Equal(t, apispec.AuthBasic, spec.Auth.Kind)
		assert.Equal(t, "Basic", spec.Auth.Scheme)

		vars := spec.Auth.CredentialVars()
		require.Len(t, vars, 2)
		assert.Equal(t, "API_USERNAME", vars[0].Name)
		assert.Equal(t, "API_PASSWORD", vars[1].Name)
	})

	t.Run("oauth2", func(t *testing.T) {
		spec := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
security:
  - oauth: [read]
paths: {}
components:
  securitySchemes:
    oauth:
      type: oauth2
      flows:
        authorizationCode:
          authorizationUrl: https://auth.example.com/authorize
          tokenUrl: https://auth.example.com/token
          scopes:
            read: Read access
`).Spec

		require.NotNil(t, spec.Auth)
		assert.Equal(t, apispec.AuthOAuth2, spec.Auth.Kind)
		assert.Equal(t, "https://auth.example.com/authorize", spec.Auth.AuthorizationURL)
		assert.Equal(t, "https://auth.example.com/token", spec.Auth.TokenURL)
		assert.Equal(t, []string{"read"}, spec.Auth.Scopes)
	})
}

// TestNormalizeUnknownAuthKinds tests the custom fallback with warnings
func TestNormalizeUnknownAuthKinds(t *testing.T) {
	result := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
security:
  - oidc: []
paths: {}
components:
  securitySchemes:
    oidc:
      type: openIdConnect
      description: OIDC login
    digestAuth:
      type: http
      scheme: digest
`)

	require.NotNil(t, result.Spec.Auth)
	assert.Equal(t, apispec.AuthCustom, result.Spec.Auth.Kind)
	assert.Nil(t, result.Spec.Auth.CredentialVars())

	warnings := 0
	for _, issue := range result.Issues {
		if issue.Check == "auth" && issue.Severity == report.SeverityWarning {
			warnings++
		}
	}
	assert.Equal(t, 2, warnings, "one warning per unsupported scheme")
}

// TestNormalizeAuthWithoutRequirement tests the first-declared-scheme
// fallback when the document declares schemes but no requirement
func TestNormalizeAuthWithoutRequirement(t *testing.T) {
	spec := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
paths: {}
components:
  securitySchemes:
    first:
      type: http
      scheme: bearer
    second:
      type: apiKey
      name: X-Key
      in: header
`).Spec

	require.NotNil(t, spec.Auth)
	assert.Equal(t, apispec.AuthBearer, spec.Auth.Kind)
}

// TestNormalizeNoAuthAtAll tests the fully unauthenticated document
func TestNormalizeNoAuthAtAll(t *testing.T) {
	spec := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
paths:
  /items:
    get:
      operationId: listItems
      responses:
        "200":
          description: ok
`).Spec

	assert.Nil(t, spec.Auth)
	assert.Nil(t, spec.EndpointByName("list_items").Auth)
}

// TestNormalizeUndeclaredRequirementScheme tests requirements referencing
// schemes that were never declared
func TestNormalizeUndeclaredRequirementScheme(t *testing.T) {
	result := normalizeYAML(t, `
openapi: 3.0.0
info:
  title: T
  version: 1.0.0
security:
  - ghost: []
  - realAuth: []
paths: {}
components:
  securitySchemes:
    realAuth:
      type: http
      scheme: bearer
`)

	// The undeclared key is skipped with a warning; the next key resolves
	require.NotNil(t, result.Spec.Auth)
	assert.Equal(t, apispec.AuthBearer, result.Spec.Auth.Kind)

	found := false
	for _, issue := range result.Issues {
		if issue.Check == "auth" && issue.Severity == report.SeverityWarning {
			found = true
			assert.Contains(t, issue.Message, `"ghost"`)
		}
	}
	assert.True(t, found)
}

// TestNormalizeEndpointAuthIsDetached tests that endpoints own their auth
// copies
func TestNormalizeEndpointAuthIsDetached(t *testing.T) {
	spec := normalizeYAML(t, petstoreDoc).Spec

	list := spec.EndpointByName("list_pets")
	require.NotNil(t, list)
	require.NotNil(t, list.Auth)
	assert.NotSame(t, spec.Auth, list.Auth)
	assert.Equal(t, *spec.Auth, *list.Auth)
}
