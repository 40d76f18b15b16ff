package generator

import (
	"strconv"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/typemap"
	segjson "github.com/segmentio/encoding/json"
)

// toolInputSchema renders a tool's input schema as compact JSON. Property
// order follows parameter declaration order, so repeated runs over the same
// specification produce identical bytes.
func toolInputSchema(params []paramView) string {
	var b strings.Builder
	b.WriteString(`{"type":"object","properties":{`)
	for i := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(jsonString(params[i].Name))
		b.WriteByte(':')
		writeParamSchema(&b, &params[i])
	}
	b.WriteByte('}')
	var required []string
	for i := range params {
		if params[i].Required {
			required = append(required, params[i].Name)
		}
	}
	if len(required) > 0 {
		b.WriteString(`,"required":[`)
		for i, name := range required {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(jsonString(name))
		}
		b.WriteByte(']')
	}
	b.WriteByte('}')
	return b.String()
}

// writeParamSchema writes one property's schema. Unknown types are advertised
// as unconstrained, keeping annotations but no type token.
func writeParamSchema(b *strings.Builder, p *paramView) {
	b.WriteByte('{')
	n := 0
	field := func(key, rawValue string) {
		if n > 0 {
			b.WriteByte(',')
		}
		n++
		b.WriteString(jsonString(key))
		b.WriteByte(':')
		b.WriteString(rawValue)
	}
	if p.Mapping.Known() {
		field("type", jsonString(p.Wire))
		if p.Mapping.Kind == typemap.KindArray {
			field("items", mappingSchema(p.Mapping.Element()))
		}
	}
	if p.Description != "" {
		field("description", jsonString(p.Description))
	}
	if len(p.Enum) > 0 {
		field("enum", enumJSON(p.Mapping.Kind, p.Enum))
	}
	if p.HasDefault {
		field("default", p.DefaultJSON)
	}
	b.WriteByte('}')
}

// mappingSchema renders a bare mapping as a schema fragment, {} when the
// type is unknown.
func mappingSchema(m typemap.Mapping) string {
	if !m.Known() {
		return "{}"
	}
	var b strings.Builder
	b.WriteString(`{"type":`)
	b.WriteString(jsonString(m.Wire()))
	if m.Kind == typemap.KindArray {
		b.WriteString(`,"items":`)
		b.WriteString(mappingSchema(m.Element()))
	}
	b.WriteByte('}')
	return b.String()
}

// enumJSON renders enum values typed to match the advertised type: integer
// and number enums as numbers, boolean enums as true/false, everything else
// as strings. Values that do not parse as the declared type fall back to
// strings so the document stays valid.
func enumJSON(kind typemap.Kind, values []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(enumValueJSON(kind, v))
	}
	b.WriteByte(']')
	return b.String()
}

func enumValueJSON(kind typemap.Kind, value string) string {
	switch kind {
	case typemap.KindInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			return value
		}
	case typemap.KindNumber:
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return value
		}
	case typemap.KindBoolean:
		if value == "true" || value == "false" {
			return value
		}
	}
	return jsonString(value)
}

func jsonString(s string) string {
	data, _ := segjson.Marshal(s)
	return string(data)
}

// toolsManifest is the tools.json document shape.
type toolsManifest struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Tools   []manifestTool `json:"tools"`
}

type manifestTool struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema segjson.RawMessage `json:"inputSchema"`
}

// renderToolsJSON renders the tools.json manifest: the server identity plus
// every tool's name, description, and input schema, in tool order. The
// manifest is target-independent; both backends emit identical bytes for the
// same specification.
func renderToolsJSON(view *serverView) ([]byte, error) {
	manifest := toolsManifest{
		Name:    view.Name,
		Version: view.Version,
		Tools:   make([]manifestTool, 0, len(view.Tools)),
	}
	for i := range view.Tools {
		tool := &view.Tools[i]
		manifest.Tools = append(manifest.Tools, manifestTool{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: segjson.RawMessage(tool.Schema),
		})
	}
	data, err := segjson.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
