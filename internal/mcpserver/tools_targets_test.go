package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTargetsTool(t *testing.T) {
	result, output, err := handleListTargets(context.Background(), &mcp.CallToolRequest{}, listTargetsInput{})
	require.NoError(t, err)
	require.Nil(t, result)

	require.Len(t, output.Targets, 2)

	// Targets() returns sorted selectors, go before python.
	assert.Equal(t, "go", output.Targets[0].Target)
	assert.Equal(t, []string{"main.go", "go.mod", "README.md", ".env.example", "tools.json"},
		output.Targets[0].Artifacts)

	assert.Equal(t, "python", output.Targets[1].Target)
	assert.Equal(t, []string{"server.py", "pyproject.toml", "README.md", ".env.example", "tools.json"},
		output.Targets[1].Artifacts)
}
