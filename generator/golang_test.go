package generator

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mod/modfile"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

// renderGo generates the Go artifact set and returns one artifact's content.
func renderGo(t *testing.T, spec *apispec.NormalizedAPISpec, name string) string {
	t.Helper()
	result, err := Generate(WithSpec(spec), WithTarget(TargetGo))
	require.NoError(t, err)
	file := result.GetFile(name)
	require.NotNil(t, file, "artifact %s not generated", name)
	return string(file.Content)
}

func TestGoServerParses(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "main.go", main, parser.AllErrors)
	require.NoError(t, err, "generated main.go must be valid Go source")

	assert.True(t, strings.HasPrefix(main, "// Code generated by mcp-adapt. DO NOT EDIT.\n"))
	assert.Contains(t, main, "// Command swagger-petstore is an MCP server exposing the Swagger Petstore API over stdio.")
	assert.Contains(t, main, "package main\n")
}

func TestGoArgumentStructs(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, "type getPetArgs struct {\n\tPetId int64 `json:\"pet_id\"`\n}")

	assert.Contains(t, main, "type listPetsArgs struct {")
	assert.Contains(t, main, "*int32")
	assert.Contains(t, main, "`json:\"limit,omitempty\"`")
	assert.Contains(t, main, "`json:\"status,omitempty\"`")

	assert.Contains(t, main, "type createPetArgs struct {")
	assert.Contains(t, main, "`json:\"name\"`")
	assert.Contains(t, main, "`json:\"tag,omitempty\"`")
}

func TestGoHandlers(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, "func handleListPets(ctx context.Context, _ *mcp.CallToolRequest, args listPetsArgs) (*mcp.CallToolResult, any, error) {")
	assert.Contains(t, main, "func handleGetPet(ctx context.Context, _ *mcp.CallToolRequest, args getPetArgs) (*mcp.CallToolResult, any, error) {")
	assert.Contains(t, main, "func handleCreatePet(ctx context.Context, _ *mcp.CallToolRequest, args createPetArgs) (*mcp.CallToolResult, any, error) {")
}

func TestGoPathExpression(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, `path := "/pets"`)
	assert.Contains(t, main, `path := "/pets/" + fmt.Sprint(args.PetId)`)
}

func TestGoQueryParams(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, "query := url.Values{}")
	assert.Contains(t, main, "if args.Limit != nil {\n\t\tquery.Set(\"limit\", fmt.Sprint(*args.Limit))\n\t}")
	assert.Contains(t, main, `query.Set("status", valueOr(args.Status, "available"))`)
	assert.Contains(t, main, "requestOptions{\n\t\tquery: query,\n\t}")
}

func TestGoBodyParams(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, "payload := map[string]any{}")
	assert.Contains(t, main, "payload[\"name\"] = args.Name")
	assert.Contains(t, main, "if args.Tag != nil {\n\t\tpayload[\"tag\"] = *args.Tag\n\t}")
	assert.Contains(t, main, "payload: payload,")
}

func TestGoRuntimeHelpers(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, "func baseURL() string {")
	assert.Contains(t, main, `if v := os.Getenv("API_BASE_URL"); v != "" {`)
	assert.Contains(t, main, `return "https://petstore.example.com/v1"`)
	assert.Contains(t, main, "func setAuth(req *http.Request) {")
	assert.Contains(t, main, `if token := os.Getenv("BEARER_TOKEN"); token != "" {`)
	assert.Contains(t, main, `req.Header.Set("Authorization", "Bearer "+token)`)
	assert.Contains(t, main, "func callAPI(ctx context.Context, method, path string, opts requestOptions) (string, error) {")
	assert.Contains(t, main, "func textResult(text string) *mcp.CallToolResult {")
	assert.Contains(t, main, "func errorResult(err error) *mcp.CallToolResult {")
	assert.Contains(t, main, "func mustSchema(raw string) *jsonschema.Schema {")
	assert.Contains(t, main, "func valueOr[T any](v *T, fallback T) T {")
}

func TestGoValueOrOmittedWithoutDefaults(t *testing.T) {
	main := renderGo(t, minimalSpec(), "main.go")
	assert.NotContains(t, main, "func valueOr")
}

func TestGoMain(t *testing.T) {
	main := renderGo(t, petSpec(), "main.go")

	assert.Contains(t, main, "server := mcp.NewServer(&mcp.Implementation{\n\t\tName:    \"swagger-petstore\",\n\t\tVersion: \"1.0.0\",\n\t}, &mcp.ServerOptions{\n\t\tInstructions: \"A sample pet store API\",\n\t})")
	assert.Contains(t, main, `Name:        "list_pets",`)
	assert.Contains(t, main, `Description: "List all pets",`)
	assert.Contains(t, main, `mustSchema("{\"type\":\"object\"`)
	assert.Contains(t, main, "}, handleListPets)")
	assert.Contains(t, main, "}, handleGetPet)")
	assert.Contains(t, main, "}, handleCreatePet)")
	assert.Contains(t, main, "if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {")
	assert.Contains(t, main, "log.Fatal(err)")
}

func TestGoNoParamsTool(t *testing.T) {
	main := renderGo(t, minimalSpec(), "main.go")

	assert.Contains(t, main, "type pingArgs struct{}")
	assert.Contains(t, main, `out, err := callAPI(ctx, "GET", path, requestOptions{})`)
}

func TestGoArrayQueryParam(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "tags", WireName: "tags", Location: apispec.LocationQuery, Type: typemap.ArrayOf(typemap.Map("string", ""))},
	}
	main := renderGo(t, spec, "main.go")

	assert.Contains(t, main, "for _, v := range args.Tags {\n\t\tquery.Add(\"tags\", fmt.Sprint(v))\n\t}")
}

func TestGoHeaderAndCookieParams(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Parameters = []apispec.Parameter{
		{Name: "request_id", WireName: "X-Request-Id", Location: apispec.LocationHeader, Type: typemap.Map("integer", ""), Required: true},
		{Name: "session", WireName: "session", Location: apispec.LocationCookie, Type: typemap.Map("string", "")},
	}
	main := renderGo(t, spec, "main.go")

	assert.Contains(t, main, "headers := map[string]string{}")
	assert.Contains(t, main, `headers["X-Request-Id"] = fmt.Sprint(args.RequestId)`)
	assert.Contains(t, main, "cookies := map[string]string{}")
	assert.Contains(t, main, "if args.Session != nil {\n\t\tcookies[\"session\"] = *args.Session\n\t}")
	assert.Contains(t, main, "headers: headers,")
	assert.Contains(t, main, "cookies: cookies,")
}

func TestGoOpaqueBody(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = []apispec.Endpoint{
		{
			Name:   "submit",
			Method: apispec.MethodPost,
			Path:   "/submit",
			Parameters: []apispec.Parameter{
				{Name: "body", WireName: "body", Location: apispec.LocationBody, Type: typemap.ArrayOf(typemap.Map("string", "")), Required: true},
			},
			RequestBody: &apispec.RequestBody{
				Required:    true,
				ContentType: "application/json",
				Schema:      &apispec.SchemaModel{Type: typemap.ArrayOf(typemap.Map("string", ""))},
			},
		},
	}
	main := renderGo(t, spec, "main.go")

	assert.Contains(t, main, "payload: args.Body,")
	assert.NotContains(t, main, "map[string]any{}")
}

func TestGoOptionalOpaqueBody(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints = []apispec.Endpoint{
		{
			Name:   "submit",
			Method: apispec.MethodPost,
			Path:   "/submit",
			Parameters: []apispec.Parameter{
				{Name: "body", WireName: "body", Location: apispec.LocationBody, Type: typemap.ArrayOf(typemap.Map("string", ""))},
			},
			RequestBody: &apispec.RequestBody{
				ContentType: "application/json",
				Schema:      &apispec.SchemaModel{Type: typemap.ArrayOf(typemap.Map("string", ""))},
			},
		},
	}
	main := renderGo(t, spec, "main.go")

	assert.Contains(t, main, "var payload any\n\tif args.Body != nil {\n\t\tpayload = args.Body\n\t}")
	assert.Contains(t, main, "payload: payload,")
}

func TestGoAuthMechanisms(t *testing.T) {
	spec := minimalSpec()
	spec.Auth = &apispec.AuthConfig{Kind: apispec.AuthAPIKey, Name: "X-API-Key", In: apispec.LocationHeader}
	spec.Endpoints[0].Auth = &apispec.AuthConfig{Kind: apispec.AuthBasic, Scheme: "basic"}
	main := renderGo(t, spec, "main.go")

	assert.Contains(t, main, `if key := os.Getenv("X_API_KEY"); key != "" {`)
	assert.Contains(t, main, `req.Header.Set("X-API-Key", key)`)
	assert.Contains(t, main, `if user := os.Getenv("API_USERNAME"); user != "" {`)
	assert.Contains(t, main, `req.SetBasicAuth(user, os.Getenv("API_PASSWORD"))`)
}

func TestGoUndeclaredPlaceholderStaysLiteral(t *testing.T) {
	spec := minimalSpec()
	spec.Endpoints[0].Path = "/ping/{id}"
	main := renderGo(t, spec, "main.go")

	assert.Contains(t, main, `path := "/ping/{id}"`)
}

func TestGoModFile(t *testing.T) {
	content := renderGo(t, petSpec(), "go.mod")

	f, err := modfile.Parse("go.mod", []byte(content), nil)
	require.NoError(t, err)

	assert.Equal(t, "swagger-petstore", f.Module.Mod.Path)
	require.NotNil(t, f.Go)
	assert.Equal(t, "1.24", f.Go.Version)

	require.Len(t, f.Require, 2)
	versions := map[string]string{}
	for _, r := range f.Require {
		versions[r.Mod.Path] = r.Mod.Version
	}
	assert.Equal(t, "v0.4.2", versions["github.com/google/jsonschema-go"])
	assert.Equal(t, "v1.3.1", versions["github.com/modelcontextprotocol/go-sdk"])
}

func TestGoReadme(t *testing.T) {
	readme := renderGo(t, petSpec(), "README.md")

	assert.Contains(t, readme, "# Swagger Petstore MCP Server\n")
	assert.Contains(t, readme, "```bash\ngo mod tidy\ngo build -o swagger-petstore .\n```\n")
	assert.Contains(t, readme, "```bash\n./swagger-petstore\n```\n")
	assert.Contains(t, readme, "\"command\": \"/path/to/swagger-petstore\"\n")
	assert.Contains(t, readme, "| `BEARER_TOKEN` | Bearer token for authentication |\n")
}
