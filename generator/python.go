package generator

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/fileutil"
)

func init() {
	Register(&pythonBackend{})
}

// pythonBackend renders a FastMCP server package: the server source, its
// pyproject.toml, usage notes, the credential template, and the tool
// manifest.
type pythonBackend struct{}

func (b *pythonBackend) Target() string { return TargetPython }

func (b *pythonBackend) Artifacts() []string {
	return []string{"server.py", "pyproject.toml", "README.md", ".env.example", "tools.json"}
}

func (b *pythonBackend) Render(spec *apispec.NormalizedAPISpec, cfg Config) ([]File, []Issue, error) {
	view, issues, err := buildServerView(spec, cfg, TargetPython, "server.py")
	if err != nil {
		return nil, nil, err
	}
	manifest, err := renderToolsJSON(view)
	if err != nil {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   TargetPython,
			Artifact: "tools.json",
			Message:  "tool manifest cannot be encoded",
			Cause:    err,
		}
	}
	files := []File{
		{Name: "server.py", Content: b.renderServer(view), Mode: fileutil.ReadableByAll},
		{Name: "pyproject.toml", Content: b.renderPyproject(view), Mode: fileutil.ReadableByAll},
		{Name: "README.md", Content: b.renderReadme(view), Mode: fileutil.ReadableByAll},
		{Name: ".env.example", Content: renderEnvExample(view), Mode: fileutil.OwnerReadWrite},
		{Name: "tools.json", Content: manifest, Mode: fileutil.ReadableByAll},
	}
	return files, issues, nil
}

// renderServer renders server.py. Layout: module docstring, imports, server
// setup, credential helpers, one decorated async function per tool, then the
// stdio entrypoint.
func (b *pythonBackend) renderServer(view *serverView) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "\"\"\"%s MCP server.\n\nGenerated by mcp-adapt. Do not edit.\n\"\"\"\n\n", pyDocText(view.Name))
	buf.WriteString("import os\n")
	if pyNeedsAny(view) {
		buf.WriteString("from typing import Any\n")
	}
	buf.WriteString("\n")
	buf.WriteString("import httpx\n")
	buf.WriteString("from dotenv import load_dotenv\n")
	buf.WriteString("from mcp.server.fastmcp import FastMCP\n")
	buf.WriteString("\n")
	buf.WriteString("load_dotenv()\n")
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "BASE_URL = os.getenv(%q, %s)\n", apispec.EnvBaseURL, pyString(view.BaseURL))
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "mcp = FastMCP(%s)\n", pyString(view.Name))

	b.writeAuthHelpers(&buf, view)

	for i := range view.Tools {
		b.writeTool(&buf, view, &view.Tools[i])
	}

	buf.WriteString("\n\nif __name__ == \"__main__\":\n    mcp.run()\n")
	return buf.Bytes()
}

// writeAuthHelpers writes get_headers plus the helpers the configured
// mechanisms need. get_headers is always present so every tool builds its
// request the same way.
func (b *pythonBackend) writeAuthHelpers(buf *bytes.Buffer, view *serverView) {
	buf.WriteString("\n\ndef get_headers() -> dict:\n")
	buf.WriteString("    \"\"\"Build request headers from the configured credentials.\"\"\"\n")
	buf.WriteString("    headers = {\"Accept\": \"application/json\"}\n")
	for _, a := range view.Auths {
		switch a.Kind {
		case apispec.AuthBearer:
			fmt.Fprintf(buf, "    token = os.getenv(%q)\n", apispec.EnvBearerToken)
			buf.WriteString("    if token:\n")
			buf.WriteString("        headers[\"Authorization\"] = f\"Bearer {token}\"\n")
		case apispec.AuthOAuth2:
			fmt.Fprintf(buf, "    token = os.getenv(%q)\n", apispec.EnvOAuthAccessToken)
			buf.WriteString("    if token:\n")
			buf.WriteString("        headers[\"Authorization\"] = f\"Bearer {token}\"\n")
		case apispec.AuthAPIKey:
			if a.In == apispec.LocationHeader {
				fmt.Fprintf(buf, "    api_key = os.getenv(%q)\n", apiKeyEnv(a))
				buf.WriteString("    if api_key:\n")
				fmt.Fprintf(buf, "        headers[%s] = api_key\n", pyString(a.Name))
			}
		}
	}
	buf.WriteString("    return headers\n")

	if view.hasAuthKind(apispec.AuthBasic) {
		buf.WriteString("\n\ndef get_auth() -> httpx.BasicAuth | None:\n")
		buf.WriteString("    \"\"\"Build basic auth credentials when configured.\"\"\"\n")
		fmt.Fprintf(buf, "    username = os.getenv(%q)\n", apispec.EnvBasicUsername)
		fmt.Fprintf(buf, "    password = os.getenv(%q)\n", apispec.EnvBasicPassword)
		buf.WriteString("    if username and password:\n")
		buf.WriteString("        return httpx.BasicAuth(username, password)\n")
		buf.WriteString("    return None\n")
	}

	if view.hasAPIKeyIn(apispec.LocationQuery) {
		buf.WriteString("\n\ndef get_query_params() -> dict:\n")
		buf.WriteString("    \"\"\"Build query parameters carrying the configured credentials.\"\"\"\n")
		buf.WriteString("    params = {}\n")
		for _, a := range view.Auths {
			if a.Kind == apispec.AuthAPIKey && a.In == apispec.LocationQuery {
				fmt.Fprintf(buf, "    api_key = os.getenv(%q)\n", apiKeyEnv(a))
				buf.WriteString("    if api_key:\n")
				fmt.Fprintf(buf, "        params[%s] = api_key\n", pyString(a.Name))
			}
		}
		buf.WriteString("    return params\n")
	}

	if view.hasAPIKeyIn(apispec.LocationCookie) {
		buf.WriteString("\n\ndef get_cookies() -> dict:\n")
		buf.WriteString("    \"\"\"Build cookies carrying the configured credentials.\"\"\"\n")
		buf.WriteString("    cookies = {}\n")
		for _, a := range view.Auths {
			if a.Kind == apispec.AuthAPIKey && a.In == apispec.LocationCookie {
				fmt.Fprintf(buf, "    api_key = os.getenv(%q)\n", apiKeyEnv(a))
				buf.WriteString("    if api_key:\n")
				fmt.Fprintf(buf, "        cookies[%s] = api_key\n", pyString(a.Name))
			}
		}
		buf.WriteString("    return cookies\n")
	}
}

// writeTool writes one decorated tool function. Locals are underscore
// prefixed; parameter identifiers never start with an underscore, so the two
// cannot collide.
func (b *pythonBackend) writeTool(buf *bytes.Buffer, view *serverView, t *toolView) {
	queryAuth := view.hasAPIKeyIn(apispec.LocationQuery)
	cookieAuth := view.hasAPIKeyIn(apispec.LocationCookie)
	basicAuth := view.hasAuthKind(apispec.AuthBasic)
	hasQuery := len(t.QueryParams) > 0 || queryAuth
	hasHeaders := len(t.HeaderParams) > 0
	hasCookies := len(t.CookieParams) > 0 || cookieAuth
	opaque := t.OpaqueBody && len(t.BodyParams) == 1
	hasBody := len(t.BodyParams) > 0

	buf.WriteString("\n\n")
	fmt.Fprintf(buf, "@mcp.tool(name=%s, description=%s)\n", pyString(t.Name), pyString(t.Description))
	fmt.Fprintf(buf, "async def %s(%s) -> str:\n", t.PyFunc, pySignature(t))

	fmt.Fprintf(buf, "    _url = f\"{BASE_URL}%s\"\n", pyPathTemplate(t))

	if hasQuery {
		if queryAuth {
			buf.WriteString("    _params = get_query_params()\n")
		} else {
			buf.WriteString("    _params = {}\n")
		}
		for _, p := range t.QueryParams {
			writePyAssign(buf, p, "_params", false)
		}
	}
	if hasHeaders {
		buf.WriteString("    _headers = get_headers()\n")
		for _, p := range t.HeaderParams {
			writePyAssign(buf, p, "_headers", true)
		}
	}
	if hasCookies {
		if cookieAuth {
			buf.WriteString("    _cookies = get_cookies()\n")
		} else {
			buf.WriteString("    _cookies = {}\n")
		}
		for _, p := range t.CookieParams {
			writePyAssign(buf, p, "_cookies", true)
		}
	}
	if hasBody && !opaque {
		buf.WriteString("    _body = {}\n")
		for _, p := range t.BodyParams {
			writePyAssign(buf, p, "_body", false)
		}
	}

	buf.WriteString("    async with httpx.AsyncClient(timeout=30.0) as _client:\n")
	buf.WriteString("        _response = await _client.request(\n")
	fmt.Fprintf(buf, "            %s,\n", pyString(t.Method))
	buf.WriteString("            _url,\n")
	if hasQuery {
		buf.WriteString("            params=_params,\n")
	}
	if hasHeaders {
		buf.WriteString("            headers=_headers,\n")
	} else {
		buf.WriteString("            headers=get_headers(),\n")
	}
	if hasCookies {
		buf.WriteString("            cookies=_cookies,\n")
	}
	if basicAuth {
		buf.WriteString("            auth=get_auth(),\n")
	}
	if hasBody {
		if opaque {
			fmt.Fprintf(buf, "            json=%s,\n", t.BodyParams[0].PyName)
		} else {
			buf.WriteString("            json=_body,\n")
		}
	}
	buf.WriteString("        )\n")
	buf.WriteString("        _response.raise_for_status()\n")
	buf.WriteString("        return _response.text\n")
}

// pySignature renders the tool's parameter list. Required parameters come
// first; Python rejects a parameter without a default after one with a
// default.
func pySignature(t *toolView) string {
	parts := make([]string, 0, len(t.SigParams))
	for _, p := range t.SigParams {
		switch {
		case p.Required:
			parts = append(parts, fmt.Sprintf("%s: %s", p.PyName, p.PyType))
		case p.bakedDefault():
			parts = append(parts, fmt.Sprintf("%s: %s = %s", p.PyName, p.PyType, p.PyDefault))
		default:
			parts = append(parts, fmt.Sprintf("%s: %s | None = None", p.PyName, p.PyType))
		}
	}
	return strings.Join(parts, ", ")
}

// writePyAssign writes the statement recording one parameter into a request
// container, guarded when the parameter may be absent. Header and cookie
// values are str() wrapped.
func writePyAssign(buf *bytes.Buffer, p *paramView, container string, asString bool) {
	value := p.PyName
	if asString && p.PyType != "str" {
		value = "str(" + p.PyName + ")"
	}
	if p.alwaysSent() {
		fmt.Fprintf(buf, "    %s[%s] = %s\n", container, pyString(p.WireName), value)
	} else {
		fmt.Fprintf(buf, "    if %s is not None:\n", p.PyName)
		fmt.Fprintf(buf, "        %s[%s] = %s\n", container, pyString(p.WireName), value)
	}
}

// pyPathTemplate renders the tool path as an f-string fragment. All braces
// are escaped first, then each path parameter's placeholder is rebound to
// the parameter identifier, so an undeclared placeholder survives as a
// literal instead of breaking the f-string.
func pyPathTemplate(t *toolView) string {
	path := strings.ReplaceAll(t.Path, "\\", "\\\\")
	path = strings.ReplaceAll(path, "\"", "\\\"")
	path = strings.ReplaceAll(path, "{", "{{")
	path = strings.ReplaceAll(path, "}", "}}")
	for _, p := range t.PathParams {
		path = strings.ReplaceAll(path, "{{"+p.WireName+"}}", "{"+p.PyName+"}")
	}
	return path
}

// pyString renders s as a Python string literal. Go's quoting rules produce
// escapes Python also accepts.
func pyString(s string) string { return strconv.Quote(s) }

// pyDocText makes s safe inside a triple-quoted docstring.
func pyDocText(s string) string {
	s = strings.ReplaceAll(s, `"""`, "'''")
	return strings.TrimRight(s, `\`)
}

// pyNeedsAny reports whether any parameter annotation uses typing.Any.
func pyNeedsAny(view *serverView) bool {
	for i := range view.Tools {
		for j := range view.Tools[i].Params {
			if strings.Contains(view.Tools[i].Params[j].PyType, "Any") {
				return true
			}
		}
	}
	return false
}

// renderPyproject renders pyproject.toml for the generated package.
func (b *pythonBackend) renderPyproject(view *serverView) []byte {
	var buf bytes.Buffer

	buf.WriteString("[build-system]\n")
	buf.WriteString("requires = [\"hatchling\"]\n")
	buf.WriteString("build-backend = \"hatchling.build\"\n")
	buf.WriteString("\n")
	buf.WriteString("[project]\n")
	fmt.Fprintf(&buf, "name = %s\n", tomlString(view.PackageName))
	fmt.Fprintf(&buf, "version = %s\n", tomlString(view.Version))
	fmt.Fprintf(&buf, "description = %s\n", tomlString(view.Description))
	buf.WriteString("requires-python = \">=3.10\"\n")
	buf.WriteString("dependencies = [\n")
	buf.WriteString("    \"mcp>=1.0.0\",\n")
	buf.WriteString("    \"httpx>=0.27.0\",\n")
	buf.WriteString("    \"python-dotenv>=1.0.0\",\n")
	buf.WriteString("]\n")
	buf.WriteString("\n")
	buf.WriteString("[tool.hatch.build.targets.wheel]\n")
	buf.WriteString("include = [\"server.py\"]\n")
	return buf.Bytes()
}

// tomlString renders s as a TOML basic string.
func tomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// renderReadme renders the usage notes for the Python package.
func (b *pythonBackend) renderReadme(view *serverView) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s MCP Server\n\n", view.Name)
	fmt.Fprintf(&buf, "%s\n\n", view.Description)

	writeOverviewSection(&buf, view)

	buf.WriteString("## Installation\n\n")
	buf.WriteString("```bash\npip install -e .\n```\n\n")

	writeConfigurationSection(&buf, view)

	buf.WriteString("## Usage\n\n")
	buf.WriteString("Run the server over stdio:\n\n")
	buf.WriteString("```bash\npython server.py\n```\n\n")
	buf.WriteString("Claude Desktop configuration:\n\n")
	buf.WriteString("```json\n")
	buf.WriteString("{\n")
	buf.WriteString("  \"mcpServers\": {\n")
	fmt.Fprintf(&buf, "    %s: {\n", jsonString(view.PackageName))
	buf.WriteString("      \"command\": \"python\",\n")
	buf.WriteString("      \"args\": [\"/path/to/server.py\"]\n")
	buf.WriteString("    }\n")
	buf.WriteString("  }\n")
	buf.WriteString("}\n")
	buf.WriteString("```\n\n")

	writeToolsSection(&buf, view)
	return buf.Bytes()
}

// writeOverviewSection writes the Overview section shared by both targets.
func writeOverviewSection(buf *bytes.Buffer, view *serverView) {
	buf.WriteString("## Overview\n\n")
	fmt.Fprintf(buf, "This server exposes the %s API as [MCP](https://modelcontextprotocol.io) tools over stdio.\n\n", view.Name)
	buf.WriteString("| Property | Value |\n")
	buf.WriteString("|----------|-------|\n")
	fmt.Fprintf(buf, "| API Version | %s |\n", tableCell(view.Version))
	fmt.Fprintf(buf, "| Base URL | `%s` |\n", tableCell(view.BaseURL))
	fmt.Fprintf(buf, "| Tools | %d |\n", len(view.Tools))
	fmt.Fprintf(buf, "| Authentication | %s |\n", tableCell(authSummary(view)))
	buf.WriteString("\n")
}

// writeConfigurationSection writes the Configuration section shared by both
// targets.
func writeConfigurationSection(buf *bytes.Buffer, view *serverView) {
	buf.WriteString("## Configuration\n\n")
	if len(view.Credentials) > 0 {
		buf.WriteString("Copy the example environment file and fill in your credentials:\n\n")
	} else {
		buf.WriteString("Copy the example environment file to override the defaults:\n\n")
	}
	buf.WriteString("```bash\ncp .env.example .env\n```\n\n")
	buf.WriteString("| Variable | Description |\n")
	buf.WriteString("|----------|-------------|\n")
	for _, v := range view.Credentials {
		fmt.Fprintf(buf, "| `%s` | %s |\n", v.Name, tableCell(v.Comment))
	}
	fmt.Fprintf(buf, "| `%s` | Override the default base URL (`%s`) |\n", apispec.EnvBaseURL, tableCell(view.BaseURL))
	buf.WriteString("\n")
}

// writeToolsSection writes the Available Tools section, grouped by tag when
// the API declares more than one.
func writeToolsSection(buf *bytes.Buffer, view *serverView) {
	buf.WriteString("## Available Tools\n\n")
	for _, group := range view.TagGroups {
		if len(view.TagGroups) > 1 || group.Tag != "General" {
			fmt.Fprintf(buf, "### %s\n\n", group.Tag)
		}
		buf.WriteString("| Tool | Method | Path | Description |\n")
		buf.WriteString("|------|--------|------|-------------|\n")
		for _, t := range group.Tools {
			desc := t.Description
			if t.Deprecated {
				desc += " *(deprecated)*"
			}
			fmt.Fprintf(buf, "| `%s` | %s | `%s` | %s |\n", t.Name, t.Method, tableCell(t.Path), tableCell(desc))
		}
		buf.WriteString("\n")
	}
}
