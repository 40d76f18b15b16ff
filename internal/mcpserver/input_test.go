package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapConfig replaces the active config for one test and restores it after.
func swapConfig(t *testing.T, c *serverConfig) {
	t.Helper()
	old := cfg
	cfg = c
	t.Cleanup(func() { cfg = old })
}

func TestSpecInput_ResolveFile(t *testing.T) {
	input := specInput{File: "../../parser/testdata/petstore.yaml"}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", result.Version)
	assert.Len(t, result.Extraction.Operations, 5)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	content := `openapi: "3.0.0"
info:
  title: Test
  version: "1.0"
paths: {}
`
	input := specInput{Content: content}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", result.Version)
	assert.Equal(t, "Test", result.Extraction.Title)
}

func TestSpecInput_ResolveNoneProvided(t *testing.T) {
	input := specInput{}
	_, err := input.resolve()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSpecInput_ResolveMultipleProvided(t *testing.T) {
	input := specInput{File: "foo.yaml", Content: "bar"}
	_, err := input.resolve()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	input := specInput{File: "/nonexistent/path.yaml"}
	_, err := input.resolve()
	assert.Error(t, err)
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	swapConfig(t, &serverConfig{MaxInlineSize: 16, MaxArtifactBytes: cfg.MaxArtifactBytes, HTTPTimeout: cfg.HTTPTimeout})

	input := specInput{Content: `openapi: "3.0.0" plus enough padding to cross the limit`}
	_, err := input.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
	assert.Contains(t, err.Error(), "MCP_ADAPT_MAX_INLINE_SIZE")
}
