package generator

import (
	"fmt"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/internal/naming"
	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
	segjson "github.com/segmentio/encoding/json"
)

// serverView is the root render context shared by every artifact of a
// target. It is built once per render; the render functions read it and
// never touch the specification again.
type serverView struct {
	// Name is the display name the server identifies itself with
	Name string
	// PackageName is the distribution package name (kebab-case)
	PackageName string
	Version     string
	Description string
	BaseURL     string
	Target      string
	// Tools holds one entry per endpoint, in declaration order
	Tools []toolView
	// Auths lists the distinct authentication mechanisms, document level
	// first, then first appearance per endpoint
	Auths []*apispec.AuthConfig
	// Credentials lists the environment variables the server reads, deduped
	// by name
	Credentials []apispec.CredentialVar
	// TagGroups groups tools by primary tag in order of first appearance
	TagGroups []tagGroup
}

// tagGroup is one tag section of the usage notes.
type tagGroup struct {
	Tag   string
	Tools []*toolView
}

// toolView is the render context for one generated tool.
type toolView struct {
	Name string
	// PyFunc is the Python function name, keyword-escaped
	PyFunc string
	// GoFunc is the Go handler function name
	GoFunc string
	// GoArgsType is the Go argument struct type name
	GoArgsType string
	// Description is the one-line description advertised for the tool
	Description string
	Method      string
	Path        string
	Tag         string
	Deprecated  bool
	ContentType string
	// Params holds every parameter in declaration order: declared parameters
	// first, then body-derived ones
	Params       []paramView
	PathParams   []*paramView
	QueryParams  []*paramView
	HeaderParams []*paramView
	CookieParams []*paramView
	BodyParams   []*paramView
	// SigParams is the Python signature order: required parameters first,
	// optional after, declaration order within each group
	SigParams []*paramView
	// OpaqueBody is true when the request body is a single opaque "body"
	// parameter rather than flattened object properties
	OpaqueBody bool
	// Schema is the tool's input schema as compact JSON, built from the
	// parameters' wire type tokens
	Schema string
}

// paramView is the render context for one tool parameter.
type paramView struct {
	// Name is the identifier used in schemas and signatures, deduped within
	// the tool
	Name     string
	WireName string
	Location apispec.Location
	Required bool
	Mapping  typemap.Mapping
	// Wire is the type token advertised in the input schema, never empty
	Wire string
	// PyName is Name with Python keywords escaped
	PyName string
	PyType string
	// GoField is the exported Go struct field name
	GoField string
	// GoType is the Go field type, pointer-wrapped for optional scalars
	GoType     string
	HasDefault bool
	// DefaultJSON is the default value as JSON for the schema annotation
	DefaultJSON string
	// PyDefault is the default as a Python literal, "" when not bakeable
	PyDefault string
	// GoValue is the default as a Go expression, "" when not bakeable
	GoValue     string
	Description string
	Enum        []string
}

// buildServerView builds the shared render context for one target. It fails
// with a TemplateRenderError when data every artifact requires is missing:
// no endpoints, no base URL, an unnamed endpoint, an unnamed parameter.
func buildServerView(spec *apispec.NormalizedAPISpec, cfg Config, target, sourceArtifact string) (*serverView, []report.Issue, error) {
	if spec == nil {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   target,
			Artifact: sourceArtifact,
			Field:    "spec",
			Message:  "nothing to render (nil specification)",
		}
	}
	if len(spec.Endpoints) == 0 {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   target,
			Artifact: sourceArtifact,
			Field:    "endpoints",
			Message:  "specification has no endpoints",
		}
	}
	if spec.BaseURL == "" {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   target,
			Artifact: sourceArtifact,
			Field:    "baseUrl",
			Message:  "specification has no server URL",
		}
	}

	name := serverName(spec, cfg.ServerName)
	view := &serverView{
		Name:        name,
		PackageName: packageName(name),
		Version:     spec.Version,
		Description: spec.Description,
		BaseURL:     spec.BaseURL,
		Target:      target,
	}
	if len(view.BaseURL) > 1 {
		view.BaseURL = strings.TrimRight(view.BaseURL, "/")
	}
	if view.Version == "" {
		view.Version = "0.0.0"
	}
	if view.Description == "" {
		view.Description = "MCP server for " + name
	}

	var issues []report.Issue
	view.Tools = make([]toolView, 0, len(spec.Endpoints))
	for i := range spec.Endpoints {
		ep := &spec.Endpoints[i]
		tool, toolIssues, err := buildToolView(ep, i, target, sourceArtifact)
		if err != nil {
			return nil, nil, err
		}
		issues = append(issues, toolIssues...)
		view.Tools = append(view.Tools, *tool)
	}
	uniquifyTools(view.Tools)

	view.Auths, view.Credentials = collectAuth(spec)
	for _, a := range view.Auths {
		if a.Kind == apispec.AuthCustom {
			issues = append(issues, report.Issue{
				Check:    "auth",
				Artifact: sourceArtifact,
				Message:  fmt.Sprintf("authentication scheme %q is not modeled, generated server sends no credentials for it", customAuthName(a)),
				Severity: report.SeverityWarning,
			})
		}
	}
	if len(view.Auths) > 1 {
		issues = append(issues, report.Issue{
			Check:    "auth",
			Artifact: sourceArtifact,
			Message:  "multiple authentication mechanisms declared, generated server attaches every configured credential",
			Severity: report.SeverityInfo,
		})
	}

	view.TagGroups = groupByTag(view.Tools)

	return view, issues, nil
}

// buildToolView builds the render context for one endpoint.
func buildToolView(ep *apispec.Endpoint, index int, target, sourceArtifact string) (*toolView, []report.Issue, error) {
	if ep.Name == "" {
		return nil, nil, &adaptererrors.TemplateRenderError{
			Target:   target,
			Artifact: sourceArtifact,
			Field:    "name",
			Message:  fmt.Sprintf("endpoint %d (%s %s) has no name", index, ep.Method, ep.Path),
		}
	}

	tool := &toolView{
		Name:        ep.Name,
		PyFunc:      pyIdentifier(ep.Name),
		GoFunc:      "handle" + naming.Pascal(ep.Name),
		GoArgsType:  naming.Camel(ep.Name) + "Args",
		Description: toolDescription(ep),
		Method:      string(ep.Method),
		Path:        ep.Path,
		Tag:         ep.PrimaryTag(),
		Deprecated:  ep.Deprecated,
	}
	if tool.Tag == "" {
		tool.Tag = "General"
	}
	if rb := ep.RequestBody; rb != nil {
		tool.ContentType = rb.ContentType
		tool.OpaqueBody = rb.Schema != nil &&
			(rb.Schema.Type.Kind != typemap.KindObject || len(rb.Schema.Properties) == 0)
	}

	var issues []report.Issue
	usedNames := make(map[string]bool)
	usedFields := make(map[string]bool)
	tool.Params = make([]paramView, 0, len(ep.Parameters))
	for i := range ep.Parameters {
		p := &ep.Parameters[i]
		pv, err := buildParamView(p, ep, target, sourceArtifact)
		if err != nil {
			return nil, nil, err
		}
		if renamed := claimParamName(pv, usedNames, usedFields); renamed {
			issues = append(issues, report.Issue{
				Check:    "naming",
				Endpoint: ep.Name,
				Message:  fmt.Sprintf("parameter %q renamed to %q to keep tool argument names unique", p.Name, pv.Name),
				Severity: report.SeverityInfo,
			})
		}
		tool.Params = append(tool.Params, *pv)
	}

	// Location slices point into Params, which is complete at this point.
	for i := range tool.Params {
		pv := &tool.Params[i]
		switch pv.Location {
		case apispec.LocationPath:
			tool.PathParams = append(tool.PathParams, pv)
		case apispec.LocationQuery:
			tool.QueryParams = append(tool.QueryParams, pv)
		case apispec.LocationHeader:
			tool.HeaderParams = append(tool.HeaderParams, pv)
		case apispec.LocationCookie:
			tool.CookieParams = append(tool.CookieParams, pv)
		case apispec.LocationBody:
			tool.BodyParams = append(tool.BodyParams, pv)
		}
		if pv.Required {
			tool.SigParams = append(tool.SigParams, pv)
		}
	}
	for i := range tool.Params {
		if pv := &tool.Params[i]; !pv.Required {
			tool.SigParams = append(tool.SigParams, pv)
		}
	}

	for _, placeholder := range pathPlaceholders(ep.Path) {
		if findWire(tool.PathParams, placeholder) == nil {
			issues = append(issues, report.Issue{
				Check:    "paths",
				Endpoint: ep.Name,
				Message:  fmt.Sprintf("path placeholder {%s} has no declared parameter", placeholder),
				Severity: report.SeverityWarning,
			})
		}
	}

	if ep.Deprecated {
		issues = append(issues, report.Issue{
			Check:    "rendering",
			Endpoint: ep.Name,
			Message:  "endpoint is deprecated in the source document",
			Severity: report.SeverityInfo,
		})
	}

	tool.Schema = toolInputSchema(tool.Params)

	return tool, issues, nil
}

// buildParamView builds the render context for one parameter.
func buildParamView(p *apispec.Parameter, ep *apispec.Endpoint, target, sourceArtifact string) (*paramView, error) {
	if p.Name == "" {
		return nil, &adaptererrors.TemplateRenderError{
			Target:   target,
			Artifact: sourceArtifact,
			Field:    "parameters",
			Message:  fmt.Sprintf("endpoint %s has a parameter with no name (wire name %q)", ep.Name, p.WireName),
		}
	}
	// Path parameters are always required; an omitted one has no sane wire
	// form.
	required := p.Required || p.Location == apispec.LocationPath

	pv := &paramView{
		Name:        p.Name,
		WireName:    p.WireName,
		Location:    p.Location,
		Required:    required,
		Mapping:     p.Type,
		Wire:        p.Type.Wire(),
		PyType:      p.Type.Python(),
		GoType:      goParamType(p.Type, required),
		HasDefault:  p.HasDefaultValue(),
		Description: cleanDescription(p.Description),
		Enum:        p.Enum,
	}
	if pv.HasDefault {
		data, err := segjson.Marshal(p.Default)
		if err != nil {
			return nil, &adaptererrors.TemplateRenderError{
				Target:   target,
				Artifact: sourceArtifact,
				Field:    p.Name,
				Message:  fmt.Sprintf("endpoint %s parameter %s default cannot be rendered", ep.Name, p.Name),
				Cause:    err,
			}
		}
		pv.DefaultJSON = string(data)
		pv.PyDefault = pyLiteral(p.Type.Kind, p.DefaultLiteral)
		pv.GoValue = goLiteral(p.Type.Kind, p.DefaultLiteral)
	}
	return pv, nil
}

// claimParamName makes the parameter's identifier and Go field unique within
// the tool, suffixing with the location and then a counter. Reports whether
// the identifier was renamed.
func claimParamName(pv *paramView, usedNames, usedFields map[string]bool) bool {
	renamed := false
	if usedNames[pv.Name] {
		candidate := pv.Name + "_" + string(pv.Location)
		for n := 2; usedNames[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%s_%d", pv.Name, pv.Location, n)
		}
		pv.Name = candidate
		renamed = true
	}
	usedNames[pv.Name] = true
	pv.PyName = pyIdentifier(pv.Name)

	field := naming.Pascal(pv.Name)
	for n := 2; usedFields[field]; n++ {
		field = fmt.Sprintf("%s%d", naming.Pascal(pv.Name), n)
	}
	usedFields[field] = true
	pv.GoField = field

	return renamed
}

// goParamType maps a parameter type to its Go field type. Optional scalars
// become pointers so an omitted argument is distinguishable from a zero
// value; slices, maps, byte slices, and any are already nilable.
func goParamType(m typemap.Mapping, required bool) string {
	base := m.Go()
	if required {
		return base
	}
	switch {
	case strings.HasPrefix(base, "[]"), strings.HasPrefix(base, "map["), base == "any":
		return base
	default:
		return "*" + base
	}
}

// collectAuth gathers the distinct authentication mechanisms and their
// credential variables: the document-level mechanism first, then each
// endpoint's in declaration order, deduped by identity.
func collectAuth(spec *apispec.NormalizedAPISpec) ([]*apispec.AuthConfig, []apispec.CredentialVar) {
	var auths []*apispec.AuthConfig
	seen := make(map[string]bool)
	add := func(a *apispec.AuthConfig) {
		if a == nil {
			return
		}
		key := string(a.Kind) + "\x00" + a.Name + "\x00" + string(a.In) + "\x00" + a.Scheme
		if seen[key] {
			return
		}
		seen[key] = true
		auths = append(auths, a)
	}
	add(spec.Auth)
	for i := range spec.Endpoints {
		add(spec.Endpoints[i].Auth)
	}

	var vars []apispec.CredentialVar
	seenVars := make(map[string]bool)
	for _, a := range auths {
		for _, v := range a.CredentialVars() {
			if seenVars[v.Name] {
				continue
			}
			seenVars[v.Name] = true
			vars = append(vars, v)
		}
	}
	return auths, vars
}

// hasAuthKind reports whether any collected mechanism has the given kind.
func (v *serverView) hasAuthKind(kind apispec.AuthKind) bool {
	for _, a := range v.Auths {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// hasAPIKeyIn reports whether an api_key mechanism travels at the given
// location.
func (v *serverView) hasAPIKeyIn(loc apispec.Location) bool {
	for _, a := range v.Auths {
		if a.Kind == apispec.AuthAPIKey && a.In == loc {
			return true
		}
	}
	return false
}

// bakedDefault reports whether the parameter's default is baked into
// generated signatures. Only scalar defaults are baked; composite defaults
// stay schema annotations.
func (p *paramView) bakedDefault() bool { return p.HasDefault && p.PyDefault != "" }

// alwaysSent reports whether the generated code sends the parameter
// unconditionally.
func (p *paramView) alwaysSent() bool { return p.Required || p.bakedDefault() }

// customAuthName returns a display identity for an unmodeled mechanism.
func customAuthName(a *apispec.AuthConfig) string {
	if a.Name != "" {
		return a.Name
	}
	if a.Scheme != "" {
		return a.Scheme
	}
	return "custom"
}

// authLabel returns a short human label for an authentication mechanism.
func authLabel(a *apispec.AuthConfig) string {
	switch a.Kind {
	case apispec.AuthAPIKey:
		if a.Name != "" {
			return fmt.Sprintf("API key (%s %s)", a.Name, a.In)
		}
		return "API key"
	case apispec.AuthBearer:
		return "bearer token"
	case apispec.AuthBasic:
		return "basic authentication"
	case apispec.AuthOAuth2:
		return "OAuth2 access token"
	default:
		return fmt.Sprintf("custom (%s)", customAuthName(a))
	}
}

// authSummary returns the mechanism labels joined for display, "none" for an
// unauthenticated API.
func authSummary(v *serverView) string {
	if len(v.Auths) == 0 {
		return "none"
	}
	labels := make([]string, len(v.Auths))
	for i, a := range v.Auths {
		labels[i] = authLabel(a)
	}
	return strings.Join(labels, ", ")
}

// apiKeyEnv returns the environment variable carrying an api_key credential.
func apiKeyEnv(a *apispec.AuthConfig) string {
	vars := a.CredentialVars()
	if len(vars) == 0 {
		return ""
	}
	return vars[0].Name
}

// tableCell escapes a value for use inside a Markdown table row.
func tableCell(s string) string { return strings.ReplaceAll(s, "|", "\\|") }

// groupByTag groups tools by primary tag in order of first appearance.
func groupByTag(tools []toolView) []tagGroup {
	var groups []tagGroup
	index := make(map[string]int)
	for i := range tools {
		tool := &tools[i]
		at, ok := index[tool.Tag]
		if !ok {
			at = len(groups)
			index[tool.Tag] = at
			groups = append(groups, tagGroup{Tag: tool.Tag})
		}
		groups[at].Tools = append(groups[at].Tools, tool)
	}
	return groups
}

// pathPlaceholders returns the {placeholder} names in a path template, in
// order.
func pathPlaceholders(path string) []string {
	var names []string
	for {
		open := strings.IndexByte(path, '{')
		if open < 0 {
			return names
		}
		closing := strings.IndexByte(path[open:], '}')
		if closing < 0 {
			return names
		}
		names = append(names, path[open+1:open+closing])
		path = path[open+closing+1:]
	}
}

func findWire(params []*paramView, wireName string) *paramView {
	for _, p := range params {
		if p.WireName == wireName {
			return p
		}
	}
	return nil
}

// uniquifyTools keeps the generated function and type names unique. Distinct
// snake_case tool names can collapse to the same identifier after case
// mapping or keyword escaping; later occurrences get a numeric suffix.
func uniquifyTools(tools []toolView) {
	usedGo := make(map[string]bool)
	usedPy := make(map[string]bool)
	for i := range tools {
		t := &tools[i]
		fn := t.GoFunc
		for n := 2; usedGo[fn]; n++ {
			fn = fmt.Sprintf("%s%d", t.GoFunc, n)
		}
		if fn != t.GoFunc {
			t.GoArgsType = strings.TrimSuffix(t.GoArgsType, "Args") + strings.TrimPrefix(fn, t.GoFunc) + "Args"
			t.GoFunc = fn
		}
		usedGo[fn] = true

		py := t.PyFunc
		for n := 2; usedPy[py]; n++ {
			py = fmt.Sprintf("%s_%d", t.PyFunc, n)
		}
		t.PyFunc = py
		usedPy[py] = true
	}
}
