package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

func renderError(t *testing.T, err error) *adaptererrors.TemplateRenderError {
	t.Helper()
	require.Error(t, err)
	var renderErr *adaptererrors.TemplateRenderError
	require.ErrorAs(t, err, &renderErr)
	return renderErr
}

func TestBuildServerViewNilSpec(t *testing.T) {
	_, _, err := buildServerView(nil, Config{}, TargetPython, "server.py")
	renderErr := renderError(t, err)
	assert.Equal(t, "spec", renderErr.Field)
	assert.Equal(t, TargetPython, renderErr.Target)
	assert.Equal(t, "server.py", renderErr.Artifact)
}

func TestBuildServerViewNoEndpoints(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = nil
	_, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	assert.Equal(t, "endpoints", renderError(t, err).Field)
}

func TestBuildServerViewNoBaseURL(t *testing.T) {
	spec := minimalSpec()
	spec.BaseURL = ""
	_, _, err := buildServerView(spec, Config{}, TargetGo, "main.go")
	renderErr := renderError(t, err)
	assert.Equal(t, "baseUrl", renderErr.Field)
	assert.Equal(t, TargetGo, renderErr.Target)
}

func TestBuildServerViewUnnamedEndpoint(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Name = ""
	_, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	renderErr := renderError(t, err)
	assert.Equal(t, "name", renderErr.Field)
	assert.Contains(t, renderErr.Message, "GET /ping")
}

func TestBuildServerViewUnnamedParameter(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{WireName: "X-Limit", Location: apispec.LocationHeader, Type: typemap.Map("integer", "")},
	}
	_, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	renderErr := renderError(t, err)
	assert.Equal(t, "parameters", renderErr.Field)
	assert.Contains(t, renderErr.Message, `"X-Limit"`)
}

func TestBuildServerViewFallbacks(t *testing.T) {
	spec := minimalSpec()
	spec.Version = ""
	spec.Description = ""
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", view.Version)
	assert.Equal(t, "MCP server for Ping Service", view.Description)
}

func TestBuildServerViewBaseURL(t *testing.T) {
	spec := minimalSpec()
	spec.BaseURL = "https://ping.example.com/v2/"
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.Equal(t, "https://ping.example.com/v2", view.BaseURL)

	spec.BaseURL = "/"
	view, _, err = buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.Equal(t, "/", view.BaseURL)
}

func TestBuildServerViewPackageName(t *testing.T) {
	view, _, err := buildServerView(petSpec(), Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.Equal(t, "Swagger Petstore", view.Name)
	assert.Equal(t, "swagger-petstore", view.PackageName)
}

func TestPathParameterForcedRequired(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Path = "/ping/{id}"
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "id", WireName: "id", Location: apispec.LocationPath, Type: typemap.Map("string", "")},
	}
	view, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.Empty(t, issues)

	param := view.Tools[0].Params[0]
	assert.True(t, param.Required)
	assert.Equal(t, "string", param.GoType)
}

func TestSigParamsRequiredFirst(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "opt_a", WireName: "opt_a", Location: apispec.LocationQuery, Type: typemap.Map("string", "")},
		{Name: "req_b", WireName: "req_b", Location: apispec.LocationQuery, Type: typemap.Map("string", ""), Required: true},
		{Name: "opt_c", WireName: "opt_c", Location: apispec.LocationQuery, Type: typemap.Map("string", "")},
	}
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	sig := view.Tools[0].SigParams
	require.Len(t, sig, 3)
	assert.Equal(t, "req_b", sig[0].Name)
	assert.Equal(t, "opt_a", sig[1].Name)
	assert.Equal(t, "opt_c", sig[2].Name)
}

func TestParameterRename(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "limit", WireName: "limit", Location: apispec.LocationQuery, Type: typemap.Map("integer", "")},
		{Name: "limit", WireName: "X-Limit", Location: apispec.LocationHeader, Type: typemap.Map("integer", "")},
	}
	view, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	params := view.Tools[0].Params
	require.Len(t, params, 2)
	assert.Equal(t, "limit", params[0].Name)
	assert.Equal(t, "limit_header", params[1].Name)
	assert.Equal(t, "X-Limit", params[1].WireName)
	assert.Equal(t, "LimitHeader", params[1].GoField)

	require.Len(t, issues, 1)
	assert.Equal(t, "naming", issues[0].Check)
	assert.Equal(t, report.SeverityInfo, issues[0].Severity)
	assert.Contains(t, issues[0].Message, `renamed to "limit_header"`)
}

func TestGoFieldCollision(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "pet_id", WireName: "pet_id", Location: apispec.LocationQuery, Type: typemap.Map("integer", "")},
		{Name: "petId", WireName: "petId", Location: apispec.LocationQuery, Type: typemap.Map("integer", "")},
	}
	view, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.Empty(t, issues)

	params := view.Tools[0].Params
	assert.Equal(t, "PetId", params[0].GoField)
	assert.Equal(t, "PetId2", params[1].GoField)
}

func TestToolFuncCollision(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = []apispec.Endpoint{
		{Name: "get_pet", Method: apispec.MethodGet, Path: "/a"},
		{Name: "getPet", Method: apispec.MethodGet, Path: "/b"},
	}
	view, _, err := buildServerView(spec, Config{}, TargetGo, "main.go")
	require.NoError(t, err)

	assert.Equal(t, "handleGetPet", view.Tools[0].GoFunc)
	assert.Equal(t, "getPetArgs", view.Tools[0].GoArgsType)
	assert.Equal(t, "handleGetPet2", view.Tools[1].GoFunc)
	assert.Equal(t, "getPet2Args", view.Tools[1].GoArgsType)

	// The snake_case forms stay distinct on the Python side.
	assert.Equal(t, "get_pet", view.Tools[0].PyFunc)
	assert.Equal(t, "getPet", view.Tools[1].PyFunc)
}

func TestPythonKeywordEscaping(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = []apispec.Endpoint{
		{
			Name:   "import",
			Method: apispec.MethodGet,
			Path:   "/import",
			Parameters: []apispec.Parameter{
				{Name: "from", WireName: "from", Location: apispec.LocationQuery, Type: typemap.Map("string", "")},
			},
		},
	}
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	assert.Equal(t, "import_", view.Tools[0].PyFunc)
	assert.Equal(t, "import", view.Tools[0].Name)
	assert.Equal(t, "from_", view.Tools[0].Params[0].PyName)
	assert.Equal(t, "from", view.Tools[0].Params[0].WireName)
}

func TestTagGroups(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = []apispec.Endpoint{
		{Name: "a", Method: apispec.MethodGet, Path: "/a", Tags: []string{"pets"}},
		{Name: "b", Method: apispec.MethodGet, Path: "/b"},
		{Name: "c", Method: apispec.MethodGet, Path: "/c", Tags: []string{"store", "pets"}},
		{Name: "d", Method: apispec.MethodGet, Path: "/d", Tags: []string{"pets"}},
	}
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	require.Len(t, view.TagGroups, 3)
	assert.Equal(t, "pets", view.TagGroups[0].Tag)
	assert.Equal(t, "General", view.TagGroups[1].Tag)
	assert.Equal(t, "store", view.TagGroups[2].Tag)
	require.Len(t, view.TagGroups[0].Tools, 2)
	assert.Equal(t, "a", view.TagGroups[0].Tools[0].Name)
	assert.Equal(t, "d", view.TagGroups[0].Tools[1].Name)
}

func TestOpaqueBodyDetection(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = []apispec.Endpoint{
		{
			Name:   "upload",
			Method: apispec.MethodPost,
			Path:   "/upload",
			Parameters: []apispec.Parameter{
				{Name: "body", WireName: "body", Location: apispec.LocationBody, Type: typemap.Map("string", "binary"), Required: true},
			},
			RequestBody: &apispec.RequestBody{
				Required:    true,
				ContentType: "application/octet-stream",
				Schema:      &apispec.SchemaModel{Type: typemap.Map("string", "binary")},
			},
		},
	}
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.True(t, view.Tools[0].OpaqueBody)

	flattened, _, err := buildServerView(petSpec(), Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	assert.False(t, flattened.Tools[2].OpaqueBody)
	assert.Len(t, flattened.Tools[2].BodyParams, 2)
}

func TestCustomAuthWarning(t *testing.T) {
	spec := minimalSpec()
	spec.Auth = &apispec.AuthConfig{Kind: apispec.AuthCustom, Name: "openIdConnect"}
	view, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	require.Len(t, view.Auths, 1)
	require.Len(t, issues, 1)
	assert.Equal(t, "auth", issues[0].Check)
	assert.Equal(t, report.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, `"openIdConnect"`)
}

func TestAuthUnion(t *testing.T) {
	spec := minimalSpec()
	spec.Auth = &apispec.AuthConfig{Kind: apispec.AuthBearer, Scheme: "bearer"}
	spec.Endpoints = []apispec.Endpoint{
		{
			Name: "a", Method: apispec.MethodGet, Path: "/a",
			Auth: &apispec.AuthConfig{Kind: apispec.AuthBearer, Scheme: "bearer"},
		},
		{
			Name: "b", Method: apispec.MethodGet, Path: "/b",
			Auth: &apispec.AuthConfig{Kind: apispec.AuthAPIKey, Name: "X-API-Key", In: apispec.LocationHeader},
		},
	}
	view, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	require.Len(t, view.Auths, 2)
	assert.Equal(t, apispec.AuthBearer, view.Auths[0].Kind)
	assert.Equal(t, apispec.AuthAPIKey, view.Auths[1].Kind)

	require.Len(t, issues, 1)
	assert.Equal(t, "auth", issues[0].Check)
	assert.Equal(t, report.SeverityInfo, issues[0].Severity)

	names := make([]string, len(view.Credentials))
	for i, v := range view.Credentials {
		names[i] = v.Name
	}
	assert.Equal(t, []string{apispec.EnvBearerToken, "X_API_KEY"}, names)
}

func TestPathPlaceholderWarning(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Path = "/ping/{id}"
	_, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, "paths", issues[0].Check)
	assert.Equal(t, report.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "{id}")
	assert.Equal(t, "ping", issues[0].Endpoint)
}

func TestDeprecatedEndpointInfo(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Deprecated = true
	view, issues, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	assert.True(t, view.Tools[0].Deprecated)
	require.Len(t, issues, 1)
	assert.Equal(t, "rendering", issues[0].Check)
	assert.Equal(t, report.SeverityInfo, issues[0].Severity)
}

func TestOptionalParameterTypes(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "count", WireName: "count", Location: apispec.LocationQuery, Type: typemap.Map("integer", "int32")},
		{Name: "tags", WireName: "tags", Location: apispec.LocationQuery, Type: typemap.ArrayOf(typemap.Map("string", ""))},
		{Name: "filter", WireName: "filter", Location: apispec.LocationQuery, Type: typemap.Map("object", "")},
		{Name: "extra", WireName: "extra", Location: apispec.LocationQuery, Type: typemap.Any},
	}
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)

	params := view.Tools[0].Params
	assert.Equal(t, "*int32", params[0].GoType)
	assert.Equal(t, "[]string", params[1].GoType)
	assert.Equal(t, "map[string]any", params[2].GoType)
	assert.Equal(t, "any", params[3].GoType)

	assert.Equal(t, "int", params[0].PyType)
	assert.Equal(t, "list[str]", params[1].PyType)
	assert.Equal(t, "dict", params[2].PyType)
	assert.Equal(t, "Any", params[3].PyType)

	assert.Equal(t, "any", params[3].Wire)
}

func TestDefaultRendering(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{
			Name: "status", WireName: "status", Location: apispec.LocationQuery,
			Type: typemap.Map("string", ""), Default: "available", DefaultLiteral: "available",
		},
		{
			Name: "page", WireName: "page", Location: apispec.LocationQuery,
			Type: typemap.Map("integer", ""), Default: int64(1), DefaultLiteral: "1",
		},
		{
			Name: "verbose", WireName: "verbose", Location: apispec.LocationQuery,
			Type: typemap.Map("boolean", ""), Default: false, DefaultLiteral: "false",
		},
		{
			Name: "tags", WireName: "tags", Location: apispec.LocationQuery,
			Type: typemap.ArrayOf(typemap.Map("string", "")), Default: []any{"a", "b"},
		},
	}
	view, _, err := buildServerView(spec, Config{}, TargetPython, "server.py")
	require.NoError(t, err)
	params := view.Tools[0].Params

	assert.Equal(t, `"available"`, params[0].DefaultJSON)
	assert.Equal(t, `"available"`, params[0].PyDefault)
	assert.Equal(t, `"available"`, params[0].GoValue)
	assert.True(t, params[0].bakedDefault())
	assert.True(t, params[0].alwaysSent())

	assert.Equal(t, "1", params[1].DefaultJSON)
	assert.Equal(t, "1", params[1].PyDefault)

	assert.Equal(t, "false", params[2].DefaultJSON)
	assert.Equal(t, "False", params[2].PyDefault)
	assert.Equal(t, "false", params[2].GoValue)
	assert.True(t, params[2].bakedDefault())

	// Composite defaults stay schema annotations and are never baked into
	// signatures.
	assert.Equal(t, `["a","b"]`, params[3].DefaultJSON)
	assert.Empty(t, params[3].PyDefault)
	assert.False(t, params[3].bakedDefault())
	assert.False(t, params[3].alwaysSent())
}
