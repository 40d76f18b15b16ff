// This file implements name and literal conversion from normalized
// identifiers to valid identifiers and literals in the target languages,
// including reserved word escaping and description formatting.

package generator

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/typemap"
)

// maxDescriptionLength is the maximum length for descriptions in generated
// doc lines before truncation.
const maxDescriptionLength = 200

// pythonReservedWords contains the Python keywords that cannot be used as
// parameter or function names. Soft keywords (match, case) are legal
// identifiers and are not escaped.
var pythonReservedWords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

// pyIdentifier escapes a normalized identifier that collides with a Python
// keyword by appending an underscore. Normalized identifiers are already
// lowercase snake_case, so the lookup is direct.
func pyIdentifier(name string) string {
	if pythonReservedWords[name] {
		return name + "_"
	}
	return name
}

// pythonName converts an API title to a valid Python identifier: every rune
// that is not a letter, digit, or underscore becomes an underscore, the
// result is trimmed and lowercased, a leading digit gets an "api_" prefix,
// and an empty result falls back to "api".
func pythonName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	s := strings.ToLower(strings.Trim(b.String(), "_"))
	if s == "" {
		return "api"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "api_" + s
	}
	return s
}

// packageName derives the distribution package name used in manifests: the
// Python identifier form with underscores swapped for dashes.
func packageName(name string) string {
	return strings.ReplaceAll(pythonName(name), "_", "-")
}

// pyLiteral renders a coerced default value as a Python literal for use in a
// generated signature. Composite defaults (arrays, objects) are not baked
// into signatures and return "".
func pyLiteral(kind typemap.Kind, literal string) string {
	switch kind {
	case typemap.KindString:
		return strconv.Quote(literal)
	case typemap.KindBoolean:
		if literal == "true" {
			return "True"
		}
		return "False"
	case typemap.KindInteger, typemap.KindNumber:
		return literal
	default:
		return ""
	}
}

// goLiteral renders a coerced default value as a Go expression. Composite
// defaults return "".
func goLiteral(kind typemap.Kind, literal string) string {
	switch kind {
	case typemap.KindString:
		return strconv.Quote(literal)
	case typemap.KindBoolean, typemap.KindInteger, typemap.KindNumber:
		return literal
	default:
		return ""
	}
}

// cleanDescription prepares a source description for a single generated doc
// line. It collapses newlines, trims whitespace, and truncates long text at
// a rune boundary.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxDescriptionLength {
		runes := []rune(s)
		if len(runes) > maxDescriptionLength-3 {
			s = string(runes[:maxDescriptionLength-3]) + "..."
		}
	}
	return s
}

// toolDescription derives the one-line description advertised for a tool:
// the summary, the first line of the description, or the method and path.
func toolDescription(ep *apispec.Endpoint) string {
	if ep.Summary != "" {
		return cleanDescription(ep.Summary)
	}
	if ep.Description != "" {
		return cleanDescription(ep.Description)
	}
	return string(ep.Method) + " " + ep.Path
}
