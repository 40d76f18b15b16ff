package parser

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/gacabartosz/mcp-universal-adapter/adaptererrors"
)

// resolveState tracks where a reference is in its resolution lifecycle.
type resolveState int

const (
	stateUnresolved resolveState = iota
	stateResolving
	stateResolved
)

// refEntry is one arena slot, keyed by the reference string.
type refEntry struct {
	state resolveState
	node  *yaml.Node
}

// resolver eagerly replaces every local $ref in a document with a deep copy
// of its target subtree.
//
// The arena keeps one entry per distinct reference string with an explicit
// state. Hitting an entry that is already in the resolving state means the
// resolution path has looped back on itself, which is reported as a
// CyclicReferenceError carrying the chain; references are never left in place.
type resolver struct {
	root     *yaml.Node
	arena    map[string]*refEntry
	chain    []string
	maxDepth int
	logger   Logger
}

func newResolver(root *yaml.Node, maxDepth int, logger Logger) *resolver {
	return &resolver{
		root:     root,
		arena:    make(map[string]*refEntry),
		maxDepth: maxDepth,
		logger:   logger,
	}
}

// resolveDocument walks the whole document and resolves every $ref in place.
// After a successful pass no $ref mappings remain anywhere in the tree.
func (r *resolver) resolveDocument() error {
	return r.resolveNode(r.root, 0)
}

// resolveNode recursively resolves refs under n. A mapping that carries a
// $ref key is replaced wholesale by its resolved target; sibling keys next to
// $ref are discarded, matching JSON Reference semantics.
func (r *resolver) resolveNode(n *yaml.Node, depth int) error {
	if depth > r.maxDepth {
		return &adaptererrors.SpecFormatError{
			Line:    n.Line,
			Column:  n.Column,
			Message: "structure exceeds maximum nesting depth of " + strconv.Itoa(r.maxDepth),
		}
	}

	n = deref(n)
	if n == nil {
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		if ref := refValue(n); ref != "" {
			resolved, err := r.resolveRef(ref, n, depth)
			if err != nil {
				return err
			}
			replaceNode(n, resolved)
			return nil
		}
		for i := 1; i < len(n.Content); i += 2 {
			if err := r.resolveNode(n.Content[i], depth+1); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if err := r.resolveNode(item, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveRef resolves a single reference through the arena. The entry stays
// in the resolving state while its target subtree is processed, so a schema
// that reaches itself (directly or through intermediaries) is detected.
func (r *resolver) resolveRef(ref string, origin *yaml.Node, depth int) (*yaml.Node, error) {
	entry, ok := r.arena[ref]
	if !ok {
		entry = &refEntry{}
		r.arena[ref] = entry
	}

	switch entry.state {
	case stateResolved:
		return entry.node, nil
	case stateResolving:
		return nil, &adaptererrors.CyclicReferenceError{
			Ref:   ref,
			Chain: append(append([]string{}, r.chain...), ref),
		}
	}

	// A reference to the document root can only contain itself.
	if ref == "#" || ref == "#/" {
		return nil, &adaptererrors.CyclicReferenceError{
			Ref:   ref,
			Chain: append(append([]string{}, r.chain...), ref),
		}
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, &adaptererrors.SpecFormatError{
			Line:    origin.Line,
			Column:  origin.Column,
			Ref:     ref,
			Message: "only local references are supported",
		}
	}

	target, err := r.lookup(ref, origin)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("resolving reference", "ref", ref, "depth", depth)
	entry.state = stateResolving
	r.chain = append(r.chain, ref)
	resolveErr := r.resolveNode(target, depth+1)
	r.chain = r.chain[:len(r.chain)-1]
	if resolveErr != nil {
		return nil, resolveErr
	}

	entry.state = stateResolved
	entry.node = deref(target)
	return entry.node, nil
}

// lookup walks a local JSON Pointer ("#/components/schemas/Pet") through the
// document tree and returns the target node.
func (r *resolver) lookup(ref string, origin *yaml.Node) (*yaml.Node, error) {
	parts := strings.Split(strings.TrimPrefix(ref, "#/"), "/")

	current := r.root
	for i, part := range parts {
		part = unescapeJSONPointer(part)
		current = deref(current)

		switch current.Kind {
		case yaml.MappingNode:
			next := mappingValue(current, part)
			if next == nil {
				return nil, &adaptererrors.SpecFormatError{
					Line:    origin.Line,
					Column:  origin.Column,
					Ref:     ref,
					Message: "reference not found (missing key: " + part + ")",
				}
			}
			current = next

		case yaml.SequenceNode:
			// Array indexing per RFC 6901
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, &adaptererrors.SpecFormatError{
					Line:    origin.Line,
					Column:  origin.Column,
					Ref:     ref,
					Message: "invalid array index " + strconv.Quote(part) + " in reference",
				}
			}
			if index < 0 || index >= len(current.Content) {
				return nil, &adaptererrors.SpecFormatError{
					Line:    origin.Line,
					Column:  origin.Column,
					Ref:     ref,
					Message: "array index " + part + " out of bounds (length " + strconv.Itoa(len(current.Content)) + ")",
				}
			}
			current = current.Content[index]

		default:
			return nil, &adaptererrors.SpecFormatError{
				Line:    origin.Line,
				Column:  origin.Column,
				Ref:     ref,
				Message: "cannot traverse scalar at segment " + strconv.Quote(strings.Join(parts[:i+1], "/")),
			}
		}
	}

	return deref(current), nil
}

// refValue returns the $ref string of a mapping node, or "".
func refValue(n *yaml.Node) string {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == "$ref" {
			return scalarString(n.Content[i+1])
		}
	}
	return ""
}

// replaceNode overwrites dst in place with a deep copy of src, keeping dst's
// source position for error reporting.
func replaceNode(dst, src *yaml.Node) {
	line, column := dst.Line, dst.Column
	*dst = *deepCopyNode(src)
	dst.Line = line
	dst.Column = column
}

// deepCopyNode copies a node subtree. Aliases are flattened into their anchor
// targets so the copy is self-contained; resolved subtrees are copied rather
// than shared to keep later in-place edits independent.
func deepCopyNode(n *yaml.Node) *yaml.Node {
	n = deref(n)
	if n == nil {
		return nil
	}
	out := &yaml.Node{
		Kind:        n.Kind,
		Style:       n.Style,
		Tag:         n.Tag,
		Value:       n.Value,
		HeadComment: n.HeadComment,
		LineComment: n.LineComment,
		FootComment: n.FootComment,
		Line:        n.Line,
		Column:      n.Column,
	}
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = deepCopyNode(c)
		}
	}
	return out
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
