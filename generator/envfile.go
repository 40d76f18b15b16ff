package generator

import (
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
)

// renderEnvExample renders .env.example: one commented entry per credential
// variable, then the base URL override. Shared by every target. The file is
// the template users copy their secrets into, so it is emitted owner-only.
func renderEnvExample(view *serverView) []byte {
	lines := []string{
		"# Environment variables for MCP server",
		"# Generated for: " + view.Name,
		"",
	}
	if len(view.Credentials) > 0 {
		for _, v := range view.Credentials {
			if v.Comment != "" {
				lines = append(lines, "# "+v.Comment)
			}
			lines = append(lines, v.Name+"="+v.Placeholder)
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		"# API Base URL (optional, override default)",
		apispec.EnvBaseURL+"="+view.BaseURL,
	)
	return []byte(strings.Join(lines, "\n") + "\n")
}
