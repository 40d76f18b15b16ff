package normalizer

import (
	"fmt"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/internal/naming"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// baseEndpointName derives the tool name for one operation: the normalized
// operationId when present, otherwise a verb plus the last static path
// segment.
//
//	GET  /users       -> list_users
//	GET  /users/{id}  -> get_users
//	POST /users       -> create_users
func baseEndpointName(op *parser.Operation) string {
	if op.OperationID != "" {
		if id := naming.Identifier(op.OperationID); id != "" {
			return id
		}
	}

	resource := lastStaticSegment(op.Path)
	if resource == "" {
		resource = "resource"
	}
	return naming.Identifier(methodVerb(op.Method, op.Path) + " " + resource)
}

// methodVerb picks the naming verb for a method. GET distinguishes item
// lookups (a templated path) from collection listings.
func methodVerb(method, path string) string {
	switch method {
	case "GET":
		if strings.Contains(path, "{") {
			return "get"
		}
		return "list"
	case "POST":
		return "create"
	case "PUT", "PATCH":
		return "update"
	case "DELETE":
		return "delete"
	default:
		return strings.ToLower(method)
	}
}

// lastStaticSegment returns the last path segment that is not a {placeholder},
// or "" when the path has none.
func lastStaticSegment(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if s := segments[i]; s != "" && !strings.HasPrefix(s, "{") {
			return s
		}
	}
	return ""
}

// nameTable hands out unique endpoint names in claim order.
type nameTable struct {
	used map[string]bool
}

func newNameTable() *nameTable {
	return &nameTable{used: make(map[string]bool)}
}

// claim reserves a unique name. The first holder keeps the base name;
// a collision tries the method suffix, then a counter. The outcome depends
// only on claim order, which follows document declaration order.
func (t *nameTable) claim(base, method string) (name string, renamed bool) {
	name = base
	if !t.used[name] {
		t.used[name] = true
		return name, false
	}
	name = base + "_" + strings.ToLower(method)
	for i := 2; t.used[name]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	t.used[name] = true
	return name, true
}
