package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gacabartosz/mcp-universal-adapter/generator"
	"github.com/gacabartosz/mcp-universal-adapter/normalizer"
	"github.com/gacabartosz/mcp-universal-adapter/validator"
)

type generateServerInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI document to generate from"`
	Target         string    `json:"target,omitempty"          jsonschema:"Target language: python or go (default: python)"`
	ServerName     string    `json:"server_name,omitempty"     jsonschema:"Name the generated server identifies itself with (default: the API title)"`
	OutputDir      string    `json:"output_dir,omitempty"      jsonschema:"Directory to write the artifact set to; omit to keep the run in memory"`
	IncludeContent bool      `json:"include_content,omitempty" jsonschema:"Return artifact contents inline, subject to the per-file size cap"`
}

type artifactInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	// Content carries the artifact inline when include_content is set and the
	// artifact fits under MCP_ADAPT_MAX_ARTIFACT_BYTES.
	Content        string `json:"content,omitempty"`
	ContentOmitted bool   `json:"content_omitted,omitempty"`
}

type validationSummary struct {
	Valid        bool     `json:"valid"`
	ErrorCount   int      `json:"error_count"`
	WarningCount int      `json:"warning_count"`
	Errors       []string `json:"errors,omitempty"`
}

type generateServerOutput struct {
	Success       bool              `json:"success"`
	Target        string            `json:"target"`
	ServerName    string            `json:"server_name"`
	ToolCount     int               `json:"tool_count"`
	ToolNames     []string          `json:"tool_names"`
	Artifacts     []artifactInfo    `json:"artifacts"`
	Written       bool              `json:"written"`
	OutputDir     string            `json:"output_dir,omitempty"`
	WarningCount  int               `json:"warning_count"`
	CriticalCount int               `json:"critical_count"`
	Validation    validationSummary `json:"validation"`
}

func handleGenerateServer(_ context.Context, _ *mcp.CallToolRequest, input generateServerInput) (*mcp.CallToolResult, generateServerOutput, error) {
	parsed, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateServerOutput{}, nil
	}

	norm, err := normalizer.Normalize(parsed.Extraction)
	if err != nil {
		return errResult(err), generateServerOutput{}, nil
	}

	opts := []generator.Option{generator.WithSpec(norm.Spec)}
	if input.Target != "" {
		opts = append(opts, generator.WithTarget(input.Target))
	}
	if input.ServerName != "" {
		opts = append(opts, generator.WithServerName(input.ServerName))
	}

	result, err := generator.Generate(opts...)
	if err != nil {
		return errResult(err), generateServerOutput{}, nil
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write artifacts: %w", err)), generateServerOutput{}, nil
		}
	}

	report := validator.ValidateResult(result)

	output := generateServerOutput{
		Success:       result.Success && report.Valid,
		Target:        result.Target,
		ServerName:    result.ServerName,
		ToolCount:     len(result.ToolNames),
		ToolNames:     result.ToolNames,
		Written:       input.OutputDir != "",
		OutputDir:     input.OutputDir,
		WarningCount:  result.WarningCount,
		CriticalCount: result.CriticalCount,
		Validation: validationSummary{
			Valid:        report.Valid,
			ErrorCount:   report.ErrorCount,
			WarningCount: report.WarningCount,
		},
	}

	output.Validation.Errors = makeSlice[string](len(report.Errors))
	for _, issue := range report.Errors {
		output.Validation.Errors = append(output.Validation.Errors, issue.String())
	}

	output.Artifacts = makeSlice[artifactInfo](len(result.Files))
	for i := range result.Files {
		f := &result.Files[i]
		info := artifactInfo{Name: f.Name, Size: len(f.Content)}
		if input.IncludeContent {
			if len(f.Content) <= cfg.MaxArtifactBytes {
				info.Content = string(f.Content)
			} else {
				info.ContentOmitted = true
			}
		}
		output.Artifacts = append(output.Artifacts, info)
	}

	return nil, output, nil
}
