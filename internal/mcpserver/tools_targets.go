package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gacabartosz/mcp-universal-adapter/generator"
)

type listTargetsInput struct{}

type targetInfo struct {
	Target    string   `json:"target"`
	Artifacts []string `json:"artifacts"`
}

type listTargetsOutput struct {
	Targets []targetInfo `json:"targets"`
}

func handleListTargets(_ context.Context, _ *mcp.CallToolRequest, _ listTargetsInput) (*mcp.CallToolResult, listTargetsOutput, error) {
	names := generator.Targets()

	output := listTargetsOutput{Targets: make([]targetInfo, 0, len(names))}
	for _, name := range names {
		backend, err := generator.Get(name)
		if err != nil {
			return errResult(err), listTargetsOutput{}, nil
		}
		output.Targets = append(output.Targets, targetInfo{
			Target:    backend.Target(),
			Artifacts: backend.Artifacts(),
		})
	}

	return nil, output, nil
}
