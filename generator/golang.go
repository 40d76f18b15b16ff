package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/fileutil"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/imports"
)

func init() {
	Register(&goBackend{})
}

// Modules required by generated Go servers.
const (
	mcpSDKModule      = "github.com/modelcontextprotocol/go-sdk"
	mcpSDKVersion     = "v1.3.1"
	jsonschemaModule  = "github.com/google/jsonschema-go"
	jsonschemaVersion = "v0.4.2"
	goDirective       = "1.24"
)

// goBackend renders a Go server package: a single main.go with one typed
// handler per tool, its go.mod, usage notes, the credential template, and
// the tool manifest.
type goBackend struct{}

func (b *goBackend) Target() string { return TargetGo }

func (b *goBackend) Artifacts() []string {
	return []string{"main.go", "go.mod", "README.md", ".env.example", "tools.json"}
}

func (b *goBackend) Render(spec *apispec.NormalizedAPISpec, cfg Config) ([]File, []Issue, error) {
	view, issues, err := buildServerView(spec, cfg, TargetGo, "main.go")
	if err != nil {
		return nil, nil, err
	}
	mainSrc, err := b.renderMainGo(view)
	if err != nil {
		return nil, nil, err
	}
	modSrc, err := renderGoMod(view)
	if err != nil {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   TargetGo,
			Artifact: "go.mod",
			Message:  "module file cannot be rendered",
			Cause:    err,
		}
	}
	manifest, err := renderToolsJSON(view)
	if err != nil {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   TargetGo,
			Artifact: "tools.json",
			Message:  "tool manifest cannot be encoded",
			Cause:    err,
		}
	}
	files := []File{
		{Name: "main.go", Content: mainSrc, Mode: fileutil.ReadableByAll},
		{Name: "go.mod", Content: modSrc, Mode: fileutil.ReadableByAll},
		{Name: "README.md", Content: b.renderReadme(view), Mode: fileutil.ReadableByAll},
		{Name: ".env.example", Content: renderEnvExample(view), Mode: fileutil.OwnerReadWrite},
		{Name: "tools.json", Content: manifest, Mode: fileutil.ReadableByAll},
	}
	return files, issues, nil
}

// renderMainGo renders main.go and runs it through goimports processing,
// which formats the source, prunes unused imports, and rejects anything that
// does not parse.
func (b *goBackend) renderMainGo(view *serverView) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by mcp-adapt. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "// Command %s is an MCP server exposing the %s API over stdio.\n", view.PackageName, view.Name)
	buf.WriteString("package main\n\n")
	buf.WriteString(goImportsBlock)

	b.writeRuntime(&buf, view)
	for i := range view.Tools {
		b.writeTool(&buf, &view.Tools[i])
	}
	b.writeMain(&buf, view)

	formatted, err := imports.Process("main.go", buf.Bytes(), nil)
	if err != nil {
		return nil, &adaptererrors.TemplateRenderError{
			Target:   TargetGo,
			Artifact: "main.go",
			Field:    "source",
			Message:  "generated source does not parse",
			Cause:    err,
		}
	}
	return formatted, nil
}

// goImportsBlock is the import superset; goimports processing drops whatever
// a particular server does not use.
const goImportsBlock = `import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

`

// writeRuntime writes the request plumbing shared by every handler.
func (b *goBackend) writeRuntime(buf *bytes.Buffer, view *serverView) {
	fmt.Fprintf(buf, "func baseURL() string {\n\tif v := os.Getenv(%q); v != \"\" {\n\t\treturn v\n\t}\n\treturn %s\n}\n\n",
		apispec.EnvBaseURL, strconv.Quote(view.BaseURL))

	buf.WriteString("// setAuth attaches every configured credential to the request.\n")
	buf.WriteString("func setAuth(req *http.Request) {\n")
	for _, a := range view.Auths {
		switch a.Kind {
		case apispec.AuthBearer:
			fmt.Fprintf(buf, "\tif token := os.Getenv(%q); token != \"\" {\n\t\treq.Header.Set(\"Authorization\", \"Bearer \"+token)\n\t}\n",
				apispec.EnvBearerToken)
		case apispec.AuthOAuth2:
			fmt.Fprintf(buf, "\tif token := os.Getenv(%q); token != \"\" {\n\t\treq.Header.Set(\"Authorization\", \"Bearer \"+token)\n\t}\n",
				apispec.EnvOAuthAccessToken)
		case apispec.AuthAPIKey:
			switch a.In {
			case apispec.LocationHeader:
				fmt.Fprintf(buf, "\tif key := os.Getenv(%q); key != \"\" {\n\t\treq.Header.Set(%s, key)\n\t}\n",
					apiKeyEnv(a), strconv.Quote(a.Name))
			case apispec.LocationQuery:
				fmt.Fprintf(buf, "\tif key := os.Getenv(%q); key != \"\" {\n\t\tq := req.URL.Query()\n\t\tq.Set(%s, key)\n\t\treq.URL.RawQuery = q.Encode()\n\t}\n",
					apiKeyEnv(a), strconv.Quote(a.Name))
			case apispec.LocationCookie:
				fmt.Fprintf(buf, "\tif key := os.Getenv(%q); key != \"\" {\n\t\treq.AddCookie(&http.Cookie{Name: %s, Value: key})\n\t}\n",
					apiKeyEnv(a), strconv.Quote(a.Name))
			}
		case apispec.AuthBasic:
			fmt.Fprintf(buf, "\tif user := os.Getenv(%q); user != \"\" {\n\t\treq.SetBasicAuth(user, os.Getenv(%q))\n\t}\n",
				apispec.EnvBasicUsername, apispec.EnvBasicPassword)
		}
	}
	buf.WriteString("}\n\n")

	buf.WriteString(goRuntimeHelpers)

	if viewHasBakedDefault(view) {
		buf.WriteString("func valueOr[T any](v *T, fallback T) T {\n\tif v != nil {\n\t\treturn *v\n\t}\n\treturn fallback\n}\n\n")
	}
}

const goRuntimeHelpers = `type requestOptions struct {
	query   url.Values
	headers map[string]string
	cookies map[string]string
	payload any
}

// callAPI executes one request against the API and returns the response body.
func callAPI(ctx context.Context, method, path string, opts requestOptions) (string, error) {
	u := baseURL() + path
	if len(opts.query) > 0 {
		u += "?" + opts.query.Encode()
	}
	var body io.Reader
	if opts.payload != nil {
		data, err := json.Marshal(opts.payload)
		if err != nil {
			return "", fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	if opts.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range opts.headers {
		req.Header.Set(name, value)
	}
	for name, value := range opts.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	setAuth(req)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, strings.TrimSpace(string(data)))
	}
	return string(data), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func mustSchema(raw string) *jsonschema.Schema {
	var s jsonschema.Schema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		panic(err)
	}
	return &s
}

`

// writeTool writes one tool's argument struct and handler.
func (b *goBackend) writeTool(buf *bytes.Buffer, t *toolView) {
	if len(t.Params) == 0 {
		fmt.Fprintf(buf, "type %s struct{}\n\n", t.GoArgsType)
	} else {
		fmt.Fprintf(buf, "type %s struct {\n", t.GoArgsType)
		for i := range t.Params {
			p := &t.Params[i]
			tag := p.Name
			if !p.Required {
				tag += ",omitempty"
			}
			fmt.Fprintf(buf, "\t%s %s `json:%s`\n", p.GoField, p.GoType, strconv.Quote(tag))
		}
		buf.WriteString("}\n\n")
	}

	fmt.Fprintf(buf, "func %s(ctx context.Context, _ *mcp.CallToolRequest, args %s) (*mcp.CallToolResult, any, error) {\n",
		t.GoFunc, t.GoArgsType)
	fmt.Fprintf(buf, "\tpath := %s\n", goPathExpr(t))

	if len(t.QueryParams) > 0 {
		buf.WriteString("\tquery := url.Values{}\n")
		for _, p := range t.QueryParams {
			writeGoQuerySet(buf, p)
		}
	}
	if len(t.HeaderParams) > 0 {
		buf.WriteString("\theaders := map[string]string{}\n")
		for _, p := range t.HeaderParams {
			writeGoMapSet(buf, p, "headers")
		}
	}
	if len(t.CookieParams) > 0 {
		buf.WriteString("\tcookies := map[string]string{}\n")
		for _, p := range t.CookieParams {
			writeGoMapSet(buf, p, "cookies")
		}
	}

	opaque := t.OpaqueBody && len(t.BodyParams) == 1
	if opaque && !t.BodyParams[0].Required {
		p := t.BodyParams[0]
		deref := "args." + p.GoField
		if strings.HasPrefix(p.GoType, "*") {
			deref = "*" + deref
		}
		buf.WriteString("\tvar payload any\n")
		fmt.Fprintf(buf, "\tif args.%s != nil {\n\t\tpayload = %s\n\t}\n", p.GoField, deref)
	} else if !opaque && len(t.BodyParams) > 0 {
		buf.WriteString("\tpayload := map[string]any{}\n")
		for _, p := range t.BodyParams {
			writeGoBodySet(buf, p)
		}
	}

	var optLines []string
	if len(t.QueryParams) > 0 {
		optLines = append(optLines, "\t\tquery: query,\n")
	}
	if len(t.HeaderParams) > 0 {
		optLines = append(optLines, "\t\theaders: headers,\n")
	}
	if len(t.CookieParams) > 0 {
		optLines = append(optLines, "\t\tcookies: cookies,\n")
	}
	if opaque && t.BodyParams[0].Required {
		optLines = append(optLines, fmt.Sprintf("\t\tpayload: args.%s,\n", t.BodyParams[0].GoField))
	} else if len(t.BodyParams) > 0 {
		optLines = append(optLines, "\t\tpayload: payload,\n")
	}
	if len(optLines) == 0 {
		fmt.Fprintf(buf, "\tout, err := callAPI(ctx, %q, path, requestOptions{})\n", t.Method)
	} else {
		fmt.Fprintf(buf, "\tout, err := callAPI(ctx, %q, path, requestOptions{\n", t.Method)
		for _, line := range optLines {
			buf.WriteString(line)
		}
		buf.WriteString("\t})\n")
	}
	buf.WriteString("\tif err != nil {\n\t\treturn errorResult(err), nil, nil\n\t}\n")
	buf.WriteString("\treturn textResult(out), nil, nil\n}\n\n")
}

// writeGoQuerySet writes the statements recording one query parameter.
// Array values are exploded into repeated keys, matching how the Python
// server's HTTP client encodes lists.
func writeGoQuerySet(buf *bytes.Buffer, p *paramView) {
	field := "args." + p.GoField
	if p.Mapping.Kind == typemap.KindArray {
		fmt.Fprintf(buf, "\tfor _, v := range %s {\n\t\tquery.Add(%q, fmt.Sprint(v))\n\t}\n", field, p.WireName)
		return
	}
	switch {
	case p.Required:
		fmt.Fprintf(buf, "\tquery.Set(%q, %s)\n", p.WireName, goStringExpr(field, p.GoType))
	case p.bakedDefault():
		base := strings.TrimPrefix(p.GoType, "*")
		expr := fmt.Sprintf("valueOr(%s, %s)", field, p.GoValue)
		fmt.Fprintf(buf, "\tquery.Set(%q, %s)\n", p.WireName, goStringExpr(expr, base))
	case strings.HasPrefix(p.GoType, "*"):
		base := strings.TrimPrefix(p.GoType, "*")
		fmt.Fprintf(buf, "\tif %s != nil {\n\t\tquery.Set(%q, %s)\n\t}\n", field, p.WireName, goStringExpr("*"+field, base))
	default:
		fmt.Fprintf(buf, "\tif %s != nil {\n\t\tquery.Set(%q, %s)\n\t}\n", field, p.WireName, goStringExpr(field, p.GoType))
	}
}

// writeGoMapSet writes the statements recording one header or cookie value.
func writeGoMapSet(buf *bytes.Buffer, p *paramView, container string) {
	field := "args." + p.GoField
	switch {
	case p.Required:
		fmt.Fprintf(buf, "\t%s[%q] = %s\n", container, p.WireName, goStringExpr(field, p.GoType))
	case p.bakedDefault():
		base := strings.TrimPrefix(p.GoType, "*")
		expr := fmt.Sprintf("valueOr(%s, %s)", field, p.GoValue)
		fmt.Fprintf(buf, "\t%s[%q] = %s\n", container, p.WireName, goStringExpr(expr, base))
	case strings.HasPrefix(p.GoType, "*"):
		base := strings.TrimPrefix(p.GoType, "*")
		fmt.Fprintf(buf, "\tif %s != nil {\n\t\t%s[%q] = %s\n\t}\n", field, container, p.WireName, goStringExpr("*"+field, base))
	default:
		fmt.Fprintf(buf, "\tif %s != nil {\n\t\t%s[%q] = %s\n\t}\n", field, container, p.WireName, goStringExpr(field, p.GoType))
	}
}

// writeGoBodySet writes the statements recording one body property.
func writeGoBodySet(buf *bytes.Buffer, p *paramView) {
	field := "args." + p.GoField
	switch {
	case p.Required:
		fmt.Fprintf(buf, "\tpayload[%q] = %s\n", p.WireName, field)
	case p.bakedDefault():
		fmt.Fprintf(buf, "\tpayload[%q] = valueOr(%s, %s)\n", p.WireName, field, p.GoValue)
	case strings.HasPrefix(p.GoType, "*"):
		fmt.Fprintf(buf, "\tif %s != nil {\n\t\tpayload[%q] = *%s\n\t}\n", field, p.WireName, field)
	default:
		fmt.Fprintf(buf, "\tif %s != nil {\n\t\tpayload[%q] = %s\n\t}\n", field, p.WireName, field)
	}
}

// goStringExpr wraps expr so it evaluates to a string.
func goStringExpr(expr, goType string) string {
	if goType == "string" {
		return expr
	}
	return "fmt.Sprint(" + expr + ")"
}

// goPathExpr renders the Go expression producing the request path. Declared
// placeholders become argument references; an undeclared one survives as a
// literal.
func goPathExpr(t *toolView) string {
	var parts []string
	rest := t.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(rest[open:], '}')
		if closing < 0 {
			break
		}
		wire := rest[open+1 : open+closing]
		param := findWire(t.PathParams, wire)
		if param == nil {
			parts = append(parts, strconv.Quote(rest[:open+closing+1]))
			rest = rest[open+closing+1:]
			continue
		}
		if open > 0 {
			parts = append(parts, strconv.Quote(rest[:open]))
		}
		if param.GoType == "string" {
			parts = append(parts, "args."+param.GoField)
		} else {
			parts = append(parts, "fmt.Sprint(args."+param.GoField+")")
		}
		rest = rest[open+closing+1:]
	}
	if rest != "" || len(parts) == 0 {
		parts = append(parts, strconv.Quote(rest))
	}
	return strings.Join(parts, " + ")
}

// writeMain writes the entrypoint registering every tool with an explicit
// input schema.
func (b *goBackend) writeMain(buf *bytes.Buffer, view *serverView) {
	buf.WriteString("func main() {\n")
	fmt.Fprintf(buf, "\tserver := mcp.NewServer(&mcp.Implementation{\n\t\tName:    %s,\n\t\tVersion: %s,\n\t}, &mcp.ServerOptions{\n\t\tInstructions: %s,\n\t})\n\n",
		strconv.Quote(view.PackageName), strconv.Quote(view.Version), strconv.Quote(view.Description))
	for i := range view.Tools {
		t := &view.Tools[i]
		fmt.Fprintf(buf, "\tmcp.AddTool(server, &mcp.Tool{\n\t\tName:        %s,\n\t\tDescription: %s,\n\t\tInputSchema: mustSchema(%s),\n\t}, %s)\n",
			strconv.Quote(t.Name), strconv.Quote(t.Description), strconv.Quote(t.Schema), t.GoFunc)
	}
	buf.WriteString("\n\tif err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {\n\t\tlog.Fatal(err)\n\t}\n}\n")
}

func viewHasBakedDefault(view *serverView) bool {
	for i := range view.Tools {
		for j := range view.Tools[i].Params {
			if view.Tools[i].Params[j].bakedDefault() {
				return true
			}
		}
	}
	return false
}

// renderGoMod renders the generated module's go.mod.
func renderGoMod(view *serverView) ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt(view.PackageName); err != nil {
		return nil, err
	}
	if err := f.AddGoStmt(goDirective); err != nil {
		return nil, err
	}
	if err := f.AddRequire(jsonschemaModule, jsonschemaVersion); err != nil {
		return nil, err
	}
	if err := f.AddRequire(mcpSDKModule, mcpSDKVersion); err != nil {
		return nil, err
	}
	return f.Format()
}

// renderReadme renders the usage notes for the Go package.
func (b *goBackend) renderReadme(view *serverView) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s MCP Server\n\n", view.Name)
	fmt.Fprintf(&buf, "%s\n\n", view.Description)

	writeOverviewSection(&buf, view)

	buf.WriteString("## Installation\n\n")
	fmt.Fprintf(&buf, "```bash\ngo mod tidy\ngo build -o %s .\n```\n\n", view.PackageName)

	writeConfigurationSection(&buf, view)

	buf.WriteString("## Usage\n\n")
	buf.WriteString("Run the server over stdio:\n\n")
	fmt.Fprintf(&buf, "```bash\n./%s\n```\n\n", view.PackageName)
	buf.WriteString("Claude Desktop configuration:\n\n")
	buf.WriteString("```json\n")
	buf.WriteString("{\n")
	buf.WriteString("  \"mcpServers\": {\n")
	fmt.Fprintf(&buf, "    %s: {\n", jsonString(view.PackageName))
	fmt.Fprintf(&buf, "      \"command\": \"/path/to/%s\"\n", view.PackageName)
	buf.WriteString("    }\n")
	buf.WriteString("  }\n")
	buf.WriteString("}\n")
	buf.WriteString("```\n\n")

	writeToolsSection(&buf, view)
	return buf.Bytes()
}
