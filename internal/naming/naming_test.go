package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty string", input: "", want: nil},
		{name: "single word", input: "pets", want: []string{"pets"}},
		{name: "camelCase", input: "getUserById", want: []string{"get", "user", "by", "id"}},
		{name: "PascalCase", input: "UserProfile", want: []string{"user", "profile"}},
		{name: "acronym run", input: "XMLHttpRequest", want: []string{"xml", "http", "request"}},
		{name: "trailing acronym", input: "getUserByID", want: []string{"get", "user", "by", "id"}},
		{name: "snake_case", input: "list_pets", want: []string{"list", "pets"}},
		{name: "kebab-case", input: "list-pets", want: []string{"list", "pets"}},
		{name: "path template", input: "/pets/{petId}", want: []string{"pets", "pet", "id"}},
		{name: "spaces", input: "List All Pets", want: []string{"list", "all", "pets"}},
		{name: "digits stay attached", input: "api2Client", want: []string{"api2", "client"}},
		{name: "digit then upper splits", input: "v2Beta", want: []string{"v2", "beta"}},
		{name: "accents folded", input: "crèmeBrûlée", want: []string{"creme", "brulee"}},
		{name: "only separators", input: "-_./", want: nil},
		{name: "unicode symbols dropped", input: "pets★shop", want: []string{"pets", "shop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "operation id", input: "getUserById", want: "get_user_by_id"},
		{name: "spaces", input: "List Pets", want: "list_pets"},
		{name: "already snake", input: "list_pets", want: "list_pets"},
		{name: "path segment", input: "{petId}", want: "pet_id"},
		{name: "leading digit guarded", input: "2fa", want: "_2fa"},
		{name: "punctuation only", input: "!!!", want: ""},
		{name: "mixed separators", input: "get.user-by/id", want: "get_user_by_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identifier(tt.input))
		})
	}
}

func TestEnvName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "api key header", input: "X-API-Key", want: "X_API_KEY"},
		{name: "lowercase header", input: "api_key", want: "API_KEY"},
		{name: "spaces", input: "session token", want: "SESSION_TOKEN"},
		{name: "preserves digits", input: "key2", want: "KEY2"},
		{name: "leading digit prefixed", input: "2key", want: "API_2KEY"},
		{name: "empty falls back", input: "", want: "API_KEY"},
		{name: "separators collapse", input: "x--api--key", want: "X_API_KEY"},
		{name: "trailing separator trimmed", input: "token-", want: "TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvName(tt.input))
		})
	}
}

func TestPascalAndCamel(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantPascal string
		wantCamel  string
	}{
		{name: "empty", input: "", wantPascal: "", wantCamel: ""},
		{name: "snake", input: "user_profile", wantPascal: "UserProfile", wantCamel: "userProfile"},
		{name: "spaces", input: "Swagger Petstore", wantPascal: "SwaggerPetstore", wantCamel: "swaggerPetstore"},
		{name: "camel round trip", input: "getUserById", wantPascal: "GetUserById", wantCamel: "getUserById"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPascal, Pascal(tt.input))
			assert.Equal(t, tt.wantCamel, Camel(tt.input))
		})
	}
}

func TestKebab(t *testing.T) {
	assert.Equal(t, "swagger-petstore", Kebab("Swagger Petstore"))
	assert.Equal(t, "pet-api", Kebab("petAPI"))
	assert.Equal(t, "", Kebab("***"))
}

func TestRemoveAccents(t *testing.T) {
	assert.Equal(t, "cafe", RemoveAccents("café"))
	assert.Equal(t, "Uber", RemoveAccents("Über"))
	assert.Equal(t, "plain", RemoveAccents("plain"))
}
