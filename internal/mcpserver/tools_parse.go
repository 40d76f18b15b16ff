package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gacabartosz/mcp-universal-adapter/normalizer"
)

type parseSpecInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document to parse"`
}

// toolPreview is one line of the MCP surface summary: the tool one endpoint
// would generate.
type toolPreview struct {
	Name       string `json:"name"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Summary    string `json:"summary,omitempty"`
	ParamCount int    `json:"param_count"`
	HasBody    bool   `json:"has_body,omitempty"`
	Auth       string `json:"auth,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

type parseSpecOutput struct {
	Name           string        `json:"name"`
	Version        string        `json:"version"`
	Description    string        `json:"description,omitempty"`
	SpecVersion    string        `json:"spec_version"`
	Format         string        `json:"format"`
	BaseURL        string        `json:"base_url,omitempty"`
	Auth           string        `json:"auth"`
	CredentialVars []string      `json:"credential_vars,omitempty"`
	ToolCount      int           `json:"tool_count"`
	Tools          []toolPreview `json:"tools"`
	Warnings       []string      `json:"warnings,omitempty"`
}

func handleParseSpec(_ context.Context, _ *mcp.CallToolRequest, input parseSpecInput) (*mcp.CallToolResult, parseSpecOutput, error) {
	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseSpecOutput{}, nil
	}

	norm, err := normalizer.Normalize(parsed.Extraction)
	if err != nil {
		return errResult(err), parseSpecOutput{}, nil
	}
	spec := norm.Spec

	output := parseSpecOutput{
		Name:        spec.Name,
		Version:     spec.Version,
		Description: spec.Description,
		SpecVersion: parsed.Version,
		Format:      string(parsed.SourceFormat),
		BaseURL:     spec.BaseURL,
		Auth:        "none",
		ToolCount:   len(spec.Endpoints),
	}
	if spec.Auth != nil {
		output.Auth = string(spec.Auth.Kind)
		for _, v := range spec.Auth.CredentialVars() {
			output.CredentialVars = append(output.CredentialVars, v.Name)
		}
	}

	output.Tools = makeSlice[toolPreview](len(spec.Endpoints))
	for i := range spec.Endpoints {
		ep := &spec.Endpoints[i]
		preview := toolPreview{
			Name:       ep.Name,
			Method:     string(ep.Method),
			Path:       ep.Path,
			Summary:    ep.Summary,
			ParamCount: len(ep.Parameters),
			HasBody:    ep.RequestBody != nil,
			Deprecated: ep.Deprecated,
		}
		if ep.Auth != nil {
			preview.Auth = string(ep.Auth.Kind)
		}
		output.Tools = append(output.Tools, preview)
	}

	output.Warnings = append(output.Warnings, parsed.Warnings...)
	for _, issue := range norm.Issues {
		output.Warnings = append(output.Warnings, issue.String())
	}

	return nil, output, nil
}
