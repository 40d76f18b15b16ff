// This file implements the tools.json manifest check: the document must be
// well-formed, every tool needs a name and a compilable input schema, and the
// listed tools must match the generated set in order.

package validator

import (
	"fmt"

	segjson "github.com/segmentio/encoding/json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
)

type manifestDoc struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Tools   []struct {
		Name        string             `json:"name"`
		Description string             `json:"description"`
		InputSchema segjson.RawMessage `json:"inputSchema"`
	} `json:"tools"`
}

// checkToolsManifest validates the tool manifest. When toolNames is non-empty
// the manifest's tool list must match it exactly, in order.
func checkToolsManifest(artifact string, src []byte, toolNames []string) []Issue {
	fail := func(msg string, severity Severity) Issue {
		return Issue{
			Check:    "syntax",
			Artifact: artifact,
			Message:  msg,
			Severity: severity,
		}
	}

	var manifest manifestDoc
	if err := segjson.Unmarshal(src, &manifest); err != nil {
		return []Issue{fail(fmt.Sprintf("manifest does not parse: %v", err), report.SeverityError)}
	}

	var issues []Issue
	if manifest.Name == "" {
		issues = append(issues, fail("manifest declares no server name", report.SeverityError))
	}
	for i, tool := range manifest.Tools {
		if tool.Name == "" {
			issues = append(issues, fail(fmt.Sprintf("manifest tool %d has no name", i), report.SeverityError))
			continue
		}
		if len(tool.InputSchema) == 0 {
			issues = append(issues, Issue{
				Check:    "syntax",
				Artifact: artifact,
				Endpoint: tool.Name,
				Message:  "manifest tool has no input schema",
				Severity: report.SeverityError,
			})
			continue
		}
		if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(tool.InputSchema)); err != nil {
			issues = append(issues, Issue{
				Check:    "syntax",
				Artifact: artifact,
				Endpoint: tool.Name,
				Message:  fmt.Sprintf("tool input schema does not compile: %v", err),
				Severity: report.SeverityError,
			})
		}
	}

	if len(toolNames) == 0 {
		return issues
	}
	if len(manifest.Tools) != len(toolNames) {
		issues = append(issues, Issue{
			Check:    "tools",
			Artifact: artifact,
			Message:  fmt.Sprintf("manifest lists %d tool(s), expected %d", len(manifest.Tools), len(toolNames)),
			Severity: report.SeverityError,
		})
		return issues
	}
	for i, name := range toolNames {
		if manifest.Tools[i].Name != name {
			issues = append(issues, Issue{
				Check:    "tools",
				Artifact: artifact,
				Endpoint: name,
				Message:  fmt.Sprintf("manifest tool %d is %q, expected %q", i, manifest.Tools[i].Name, name),
				Severity: report.SeverityError,
			})
		}
	}
	return issues
}
