package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var titleCaser = cases.Title(language.English, cases.NoLower)

// RemoveAccents folds accented characters to their base forms.
// Example: "café" -> "cafe"
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Words splits a string into lowercase words. Word boundaries are every
// non-alphanumeric rune and every camelCase transition. Consecutive
// uppercase runs are kept as one word until a lowercase rune follows, so
// "XMLHttpRequest" splits into "xml", "http", "request". Accents are folded
// first. Runes that are neither ASCII letters nor digits are dropped.
// Example: "getUserByID" -> ["get", "user", "by", "id"]
// Example: "/pets/{petId}" -> ["pets", "pet", "id"]
func Words(s string) []string {
	s = RemoveAccents(s)

	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			current.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if i > 0 && isLowerOrDigit(rs[i-1]) {
				// lower -> upper transition starts a word
				flush()
			} else if i > 0 && isUpper(rs[i-1]) && i+1 < len(rs) && isLower(rs[i+1]) {
				// end of an acronym run: "XMLHttp" -> "XML", "Http"
				flush()
			}
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()

	return words
}

// Identifier converts any string to a normalized snake_case identifier:
// lowercase words joined with underscores. The conversion is pure and total;
// inputs with no usable runes produce the empty string, and callers supply
// their own positional fallback for that case. A leading digit gets an
// underscore prefix so the result is always a valid identifier in the
// generated languages.
// Example: "getUserById" -> "get_user_by_id"
// Example: "List Pets" -> "list_pets"
func Identifier(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	id := strings.Join(words, "_")
	if id[0] >= '0' && id[0] <= '9' {
		id = "_" + id
	}
	return id
}

// EnvName converts a credential carrier name to the uppercase environment
// variable identifier the generated server reads it from. Every
// non-alphanumeric rune maps to an underscore, runs collapse, and a leading
// digit gets an "API_" prefix. Empty input falls back to "API_KEY". The
// result is always a valid uppercase identifier, distinct from the original
// header or query parameter name whose casing is preserved on the wire.
// Example: "X-API-Key" -> "X_API_KEY"
// Example: "session token" -> "SESSION_TOKEN"
func EnvName(s string) string {
	s = RemoveAccents(s)

	var b strings.Builder
	lastUnderscore := true // trims leading separators
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(unicode.ToUpper(r))
			lastUnderscore = false
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}

	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		return "API_KEY"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "API_" + name
	}
	return name
}

// Pascal converts a string to PascalCase using Unicode-correct title casing.
// Example: "user_profile" -> "UserProfile"
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(titleCaser.String(w))
	}
	return b.String()
}

// Camel converts a string to camelCase.
// Example: "user_profile" -> "userProfile"
func Camel(s string) string {
	pascal := Pascal(s)
	if pascal == "" {
		return ""
	}
	rs := []rune(pascal)
	rs[0] = unicode.ToLower(rs[0])
	return string(rs)
}

// Kebab converts a string to kebab-case.
// Example: "Swagger Petstore" -> "swagger-petstore"
func Kebab(s string) string {
	return strings.Join(Words(s), "-")
}

func isLower(r rune) bool        { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool        { return r >= 'A' && r <= 'Z' }
func isLowerOrDigit(r rune) bool { return isLower(r) || r >= '0' && r <= '9' }
