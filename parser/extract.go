package parser

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
)

// httpMethods are the path item keys recognized as operations, matched in
// lowercase. Iteration order in the document decides extraction order.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// extractDocument walks a fully resolved document tree and pulls out the
// parser-local model. Operations appear in paths-mapping declaration order,
// then path-item method declaration order.
func extractDocument(root *yaml.Node, format SourceFormat) (*Extraction, []string, error) {
	var warnings []string

	info := mappingValue(root, "info")
	if info == nil {
		return nil, nil, &adaptererrors.SpecFormatError{
			Line:    root.Line,
			Column:  root.Column,
			Message: "document has no info block",
		}
	}

	title := stringAt(info, "title")
	if title == "" {
		title = "API"
		warnings = append(warnings, "info.title is missing, using \"API\"")
	}
	version := stringAt(info, "version")
	if version == "" {
		version = "1.0.0"
		warnings = append(warnings, "info.version is missing, using \"1.0.0\"")
	}

	ext := &Extraction{
		Title:       title,
		Version:     version,
		Description: stringAt(info, "description"),
		Servers:     extractServers(root),
		Format:      format,
	}

	paths := mappingValue(root, "paths")
	if paths == nil {
		return nil, nil, &adaptererrors.SpecFormatError{
			Line:    root.Line,
			Column:  root.Column,
			Message: "document has no paths block",
		}
	}

	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		if strings.HasPrefix(path, "x-") {
			continue
		}
		item := deref(paths.Content[i+1])
		if item == nil || item.Kind != yaml.MappingNode {
			continue
		}
		if !strings.HasPrefix(path, "/") {
			warnings = append(warnings, fmt.Sprintf("skipping path %q: path keys must start with /", path))
			continue
		}

		baseParams, paramWarnings := extractParameters(mappingValue(item, "parameters"), path)
		warnings = append(warnings, paramWarnings...)

		for j := 0; j+1 < len(item.Content); j += 2 {
			method := item.Content[j].Value
			if !httpMethods[method] {
				continue
			}
			op, opWarnings := extractOperation(strings.ToUpper(method), path, deref(item.Content[j+1]), baseParams)
			warnings = append(warnings, opWarnings...)
			ext.Operations = append(ext.Operations, op)
		}
	}

	components := mappingValue(root, "components")
	ext.SecuritySchemes = extractSecuritySchemes(components)
	ext.Schemas = extractComponentSchemas(components)

	if sec := mappingValue(root, "security"); sec != nil {
		ext.GlobalSecurity = flattenRequirement(sec)
	}

	return ext, warnings, nil
}

// extractServers pulls the declared server URLs in order.
func extractServers(root *yaml.Node) []string {
	servers := mappingValue(root, "servers")
	servers = deref(servers)
	if servers == nil || servers.Kind != yaml.SequenceNode {
		return nil
	}
	var out []string
	for _, s := range servers.Content {
		if url := stringAt(s, "url"); url != "" {
			out = append(out, url)
		}
	}
	return out
}

// extractOperation builds one Operation from an operation node, merging the
// path-item-level parameters with the operation's own. An operation parameter
// replaces a path-item parameter with the same name and location.
func extractOperation(method, path string, op *yaml.Node, baseParams []RawParameter) (Operation, []string) {
	var warnings []string

	out := Operation{
		Method:      method,
		Path:        path,
		OperationID: stringAt(op, "operationId"),
		Summary:     stringAt(op, "summary"),
		Description: stringAt(op, "description"),
		Tags:        stringsAt(op, "tags"),
		Deprecated:  boolAt(op, "deprecated"),
		Line:        op.Line,
	}

	ownParams, paramWarnings := extractParameters(mappingValue(op, "parameters"), path)
	warnings = append(warnings, paramWarnings...)
	out.Parameters = mergeParameters(baseParams, ownParams)

	if body := mappingValue(op, "requestBody"); body != nil {
		out.Body = extractBody(body)
	}

	var respWarnings []string
	out.Responses, respWarnings = extractResponses(mappingValue(op, "responses"), method, path)
	warnings = append(warnings, respWarnings...)

	if sec := mappingValue(op, "security"); sec != nil {
		out.Security = flattenRequirement(sec)
	}

	return out, warnings
}

// extractParameters pulls a parameters sequence in declaration order.
func extractParameters(seq *yaml.Node, path string) ([]RawParameter, []string) {
	seq = deref(seq)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil, nil
	}
	var warnings []string
	out := make([]RawParameter, 0, len(seq.Content))
	for _, p := range seq.Content {
		p = deref(p)
		if p == nil || p.Kind != yaml.MappingNode {
			continue
		}
		name := stringAt(p, "name")
		in := stringAt(p, "in")
		if name == "" || in == "" {
			warnings = append(warnings, fmt.Sprintf("skipping parameter without name or location in %s", path))
			continue
		}
		out = append(out, RawParameter{
			Name: name,
			In:   in,
			// Path parameters are always required per the OpenAPI spec
			Required:    boolAt(p, "required") || in == "path",
			Description: stringAt(p, "description"),
			Schema:      extractSchema(mappingValue(p, "schema"), ""),
			Line:        p.Line,
		})
	}
	return out, warnings
}

// mergeParameters overlays operation-level parameters onto path-item-level
// ones. Same name+location replaces in place; new parameters append after.
func mergeParameters(base, own []RawParameter) []RawParameter {
	if len(base) == 0 {
		return own
	}
	merged := make([]RawParameter, len(base))
	copy(merged, base)
	for _, p := range own {
		replaced := false
		for i := range merged {
			if merged[i].Name == p.Name && merged[i].In == p.In {
				merged[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, p)
		}
	}
	return merged
}

// extractBody pulls a requestBody node, preferring application/json and
// falling back to the first declared media type.
func extractBody(body *yaml.Node) *RawBody {
	out := &RawBody{Required: boolAt(body, "required")}

	content := mappingValue(body, "content")
	content = deref(content)
	if content == nil || content.Kind != yaml.MappingNode || len(content.Content) == 0 {
		return out
	}

	media := mappingValue(content, "application/json")
	if media != nil {
		out.ContentType = "application/json"
	} else {
		out.ContentType = content.Content[0].Value
		media = deref(content.Content[1])
	}
	out.Schema = extractSchema(mappingValue(media, "schema"), "")
	return out
}

// extractResponses pulls a responses mapping in declaration order. Only
// application/json content contributes a schema. Status keys outside the
// standard ranges produce warnings, not errors.
func extractResponses(responses *yaml.Node, method, path string) ([]RawResponse, []string) {
	responses = deref(responses)
	if responses == nil || responses.Kind != yaml.MappingNode {
		return nil, nil
	}
	var warnings []string
	var out []RawResponse
	for i := 0; i+1 < len(responses.Content); i += 2 {
		status := responses.Content[i].Value
		if strings.HasPrefix(status, "x-") {
			continue
		}
		if !isStandardStatus(status) {
			warnings = append(warnings, fmt.Sprintf("non-standard status code %q in %s %s", status, method, path))
		}
		resp := deref(responses.Content[i+1])
		r := RawResponse{
			Status:      status,
			Description: stringAt(resp, "description"),
		}
		if content := mappingValue(resp, "content"); content != nil {
			if media := mappingValue(content, "application/json"); media != nil {
				r.Schema = extractSchema(mappingValue(media, "schema"), "")
			}
		}
		out = append(out, r)
	}
	return out, warnings
}

// isStandardStatus reports whether a response key is a three-digit HTTP
// status in the 1xx-5xx range or the literal "default".
func isStandardStatus(status string) bool {
	if status == "default" {
		return true
	}
	if len(status) != 3 {
		return false
	}
	if status[0] < '1' || status[0] > '5' {
		return false
	}
	return status[1] >= '0' && status[1] <= '9' && status[2] >= '0' && status[2] <= '9'
}

// extractSchema pulls a schema subtree. Declared values are decoded but not
// coerced; type inference and coercion belong to the normalizer.
func extractSchema(n *yaml.Node, name string) *RawSchema {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	out := &RawSchema{
		Name:        name,
		Type:        schemaType(n),
		Format:      stringAt(n, "format"),
		Description: stringAt(n, "description"),
		Line:        n.Line,
	}

	if enum := mappingValue(n, "enum"); enum != nil && enum.Kind == yaml.SequenceNode {
		for _, v := range enum.Content {
			out.Enum = append(out.Enum, decodeScalar(v))
		}
	}
	if def := mappingValue(n, "default"); def != nil {
		out.HasDefault = true
		out.Default = decodeScalar(def)
	}

	if props := mappingValue(n, "properties"); props != nil && props.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(props.Content); i += 2 {
			out.Properties = append(out.Properties, RawProperty{
				Name:   props.Content[i].Value,
				Schema: extractSchema(props.Content[i+1], ""),
			})
		}
	}
	out.RequiredProps = stringsAt(n, "required")
	out.Items = extractSchema(mappingValue(n, "items"), "")

	return out
}

// schemaType reads a schema's type, accepting the OpenAPI 3.1 array form by
// taking the first non-"null" entry.
func schemaType(n *yaml.Node) string {
	t := mappingValue(n, "type")
	t = deref(t)
	if t == nil {
		return ""
	}
	if t.Kind == yaml.SequenceNode {
		for _, v := range t.Content {
			if s := scalarString(v); s != "" && s != "null" {
				return s
			}
		}
		return ""
	}
	return t.Value
}

// extractSecuritySchemes pulls components.securitySchemes in declaration
// order.
func extractSecuritySchemes(components *yaml.Node) []SecurityScheme {
	schemes := mappingValue(components, "securitySchemes")
	schemes = deref(schemes)
	if schemes == nil || schemes.Kind != yaml.MappingNode {
		return nil
	}
	var out []SecurityScheme
	for i := 0; i+1 < len(schemes.Content); i += 2 {
		key := schemes.Content[i].Value
		node := deref(schemes.Content[i+1])
		scheme := SecurityScheme{
			Key:         key,
			Type:        stringAt(node, "type"),
			Name:        stringAt(node, "name"),
			In:          stringAt(node, "in"),
			Scheme:      stringAt(node, "scheme"),
			Description: stringAt(node, "description"),
		}
		if flows := mappingValue(node, "flows"); flows != nil {
			fillOAuthFlow(&scheme, flows)
		}
		out = append(out, scheme)
	}
	return out
}

// fillOAuthFlow copies the first usable OAuth2 flow into the scheme, trying
// authorizationCode, implicit, then password.
func fillOAuthFlow(scheme *SecurityScheme, flows *yaml.Node) {
	for _, name := range []string{"authorizationCode", "implicit", "password"} {
		flow := mappingValue(flows, name)
		if flow == nil {
			continue
		}
		scheme.AuthorizationURL = stringAt(flow, "authorizationUrl")
		scheme.TokenURL = stringAt(flow, "tokenUrl")
		if scopes := mappingValue(flow, "scopes"); scopes != nil && scopes.Kind == yaml.MappingNode {
			for i := 0; i+1 < len(scopes.Content); i += 2 {
				scheme.Scopes = append(scheme.Scopes, scopes.Content[i].Value)
			}
		}
		return
	}
}

// extractComponentSchemas pulls components.schemas in declaration order,
// carrying each component's name.
func extractComponentSchemas(components *yaml.Node) []*RawSchema {
	schemas := mappingValue(components, "schemas")
	schemas = deref(schemas)
	if schemas == nil || schemas.Kind != yaml.MappingNode {
		return nil
	}
	var out []*RawSchema
	for i := 0; i+1 < len(schemas.Content); i += 2 {
		if s := extractSchema(schemas.Content[i+1], schemas.Content[i].Value); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// flattenRequirement flattens a security requirement list into the scheme
// keys it references, in declaration order. An empty list yields a
// requirement with no schemes, which means explicitly unauthenticated.
func flattenRequirement(seq *yaml.Node) *SecurityRequirement {
	seq = deref(seq)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return &SecurityRequirement{}
	}
	req := &SecurityRequirement{}
	for _, item := range seq.Content {
		item = deref(item)
		if item == nil || item.Kind != yaml.MappingNode {
			continue
		}
		for i := 0; i+1 < len(item.Content); i += 2 {
			req.SchemeKeys = append(req.SchemeKeys, item.Content[i].Value)
		}
	}
	return req
}
