package parser

import (
	"strings"

	segjson "github.com/segmentio/encoding/json"
	"go.yaml.in/yaml/v4"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
)

// SupportedVersions lists the OpenAPI major versions this module accepts.
var SupportedVersions = []string{"3.0", "3.1"}

// probeJSON reports whether data is syntactically valid JSON. Used as the
// format-detection fast path before the full decode.
func probeJSON(data []byte) bool {
	return segjson.Valid(data)
}

// decodeDocument decodes raw bytes into a yaml.Node tree and returns the root
// mapping node. JSON input decodes through the same path since JSON is a YAML
// subset; going through the node tree keeps mapping key order and source
// positions available to later stages.
func decodeDocument(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &adaptererrors.SpecFormatError{
			Message: "failed to decode document",
			Cause:   err,
		}
	}

	root := documentRoot(&doc)
	if root == nil {
		return nil, &adaptererrors.SpecFormatError{
			Message: "document is empty",
		}
	}
	if root.Kind != yaml.MappingNode {
		return nil, &adaptererrors.SpecFormatError{
			Line:    root.Line,
			Column:  root.Column,
			Message: "document root must be an object",
		}
	}
	return root, nil
}

// detectVersion checks the document's version declaration. Only OpenAPI 3.x
// documents are accepted; anything else (including Swagger 2.0) reports the
// declared version in the error.
func detectVersion(root *yaml.Node) (string, error) {
	if v := mappingValue(root, "openapi"); v != nil {
		version := deref(v).Value
		if strings.HasPrefix(version, "3.") {
			return version, nil
		}
		return "", &adaptererrors.UnsupportedVersionError{
			Declared:  version,
			Supported: SupportedVersions,
		}
	}
	if v := mappingValue(root, "swagger"); v != nil {
		return "", &adaptererrors.UnsupportedVersionError{
			Declared:  deref(v).Value,
			Supported: SupportedVersions,
		}
	}
	return "", &adaptererrors.UnsupportedVersionError{
		Supported: SupportedVersions,
	}
}

// documentRoot unwraps a DocumentNode to its content node.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return deref(doc.Content[0])
	}
	if doc.Kind == 0 {
		return nil
	}
	return deref(doc)
}

// deref follows alias nodes to their anchor target. The yaml decoder rejects
// self-containing anchors, so this cannot loop.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	n = deref(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return deref(n.Content[i+1])
		}
	}
	return nil
}

// scalarString returns the string value of a scalar node, or "" for nil and
// non-scalar nodes.
func scalarString(n *yaml.Node) string {
	n = deref(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// stringAt returns the scalar string value for key in a mapping node.
func stringAt(n *yaml.Node, key string) string {
	return scalarString(mappingValue(n, key))
}

// boolAt returns the boolean value for key in a mapping node, false when the
// key is absent or not a boolean.
func boolAt(n *yaml.Node, key string) bool {
	v := mappingValue(n, key)
	if v == nil {
		return false
	}
	var b bool
	if err := v.Decode(&b); err != nil {
		return false
	}
	return b
}

// decodeScalar decodes any node into its natural Go value (string, int,
// float64, bool, nil, maps, slices).
func decodeScalar(n *yaml.Node) any {
	n = deref(n)
	if n == nil {
		return nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil
	}
	return v
}

// stringsAt returns the sequence of scalar strings for key in a mapping node.
func stringsAt(n *yaml.Node, key string) []string {
	seq := mappingValue(n, key)
	seq = deref(seq)
	if seq == nil || seq.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(seq.Content))
	for _, item := range seq.Content {
		out = append(out, scalarString(item))
	}
	return out
}
