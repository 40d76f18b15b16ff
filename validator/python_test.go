package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPythonSourceClean(t *testing.T) {
	src := `"""Demo server."""

import os

# a comment with ) and ] and } inside
WELCOME = "brackets in strings ((([[[ are fine"
PATH = f"{BASE}/pets/{pet_id}"


async def list_pets(limit: int | None = None) -> str:
    data = {"a": [1, 2, (3, 4)]}
    return str(data)
`
	assert.Empty(t, checkPythonSource("server.py", []byte(src), 1))
}

func TestCheckPythonSourceUnbalanced(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
		line int
	}{
		{
			name: "unclosed paren",
			src:  "x = (1 + 2\ny = 3\n",
			want: `unclosed "("`,
			line: 1,
		},
		{
			name: "unexpected closing",
			src:  "x = 1)\n",
			want: `unexpected closing ")"`,
			line: 1,
		},
		{
			name: "mismatched pair",
			src:  "x = [1, 2\ny = x)\n",
			want: `closing ")" does not match "[" opened on line 1`,
			line: 2,
		},
		{
			name: "unterminated string",
			src:  "x = \"oops\ny = 2\n",
			want: "unterminated string literal",
			line: 1,
		},
		{
			name: "unterminated triple",
			src:  "x = 1\ns = \"\"\"docs\nmore\n",
			want: "unterminated triple-quoted string",
			line: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := checkPythonSource("server.py", []byte(tt.src), 0)
			require.NotEmpty(t, issues)
			assert.Equal(t, tt.want, issues[0].Message)
			assert.Equal(t, tt.line, issues[0].Line)
			assert.Equal(t, "syntax", issues[0].Check)
		})
	}
}

func TestCheckPythonSourceEscapedQuote(t *testing.T) {
	src := "x = \"he said \\\"hi\\\"\"\ny = (1)\n"
	assert.Empty(t, checkPythonSource("server.py", []byte(src), 0))
}

func TestCheckPythonSourceLineNumbers(t *testing.T) {
	src := "a = 1\nb = 2\nc = (\n"
	issues := checkPythonSource("server.py", []byte(src), 0)
	require.Len(t, issues, 1)
	assert.Equal(t, 3, issues[0].Line)
}

func TestCheckPythonSourceToolCount(t *testing.T) {
	src := "async def one():\n    pass\n"
	issues := checkPythonSource("server.py", []byte(src), 2)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "1 async function(s) for 2 tool(s)")

	assert.Empty(t, checkPythonSource("server.py", []byte(src), 1))
}

func TestCheckPyproject(t *testing.T) {
	valid := `[build-system]
requires = ["hatchling"]

[project]
name = "demo"
version = "1.0.0"
`
	assert.Empty(t, checkPyproject("pyproject.toml", []byte(valid)))
}

func TestCheckPyprojectMissingTable(t *testing.T) {
	issues := checkPyproject("pyproject.toml", []byte("[build-system]\nrequires = []\n"))
	require.Len(t, issues, 1)
	assert.Equal(t, "missing [project] table", issues[0].Message)
}

func TestCheckPyprojectMissingFields(t *testing.T) {
	issues := checkPyproject("pyproject.toml", []byte("[project]\ndescription = \"x\"\n"))
	require.Len(t, issues, 2)
	assert.Equal(t, "[project] table declares no name", issues[0].Message)
	assert.Equal(t, "[project] table declares no version", issues[1].Message)
}
