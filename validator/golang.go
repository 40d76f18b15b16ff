// This file implements the checks for generated Go artifacts: main.go must
// parse as a main package and go.mod must declare a module, a Go directive,
// and the server's dependencies.

package validator

import (
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"

	"golang.org/x/mod/modfile"

	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
)

// checkGoSource parses a generated Go source file and reports every parse
// error with its location.
func checkGoSource(artifact string, src []byte) []Issue {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, artifact, src, parser.AllErrors)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) {
			issues := make([]Issue, 0, len(list))
			for _, e := range list {
				issues = append(issues, Issue{
					Check:    "syntax",
					Artifact: artifact,
					Message:  e.Msg,
					Severity: report.SeverityError,
					Line:     e.Pos.Line,
					Column:   e.Pos.Column,
				})
			}
			return issues
		}
		return []Issue{{
			Check:    "syntax",
			Artifact: artifact,
			Message:  fmt.Sprintf("source does not parse: %v", err),
			Severity: report.SeverityError,
		}}
	}

	if file.Name.Name != "main" {
		return []Issue{{
			Check:    "syntax",
			Artifact: artifact,
			Message:  fmt.Sprintf("generated server must be package main, found package %s", file.Name.Name),
			Severity: report.SeverityError,
		}}
	}
	return nil
}

// checkGoMod parses the generated go.mod and verifies it can actually build
// the server: a module path, a Go directive, and at least one requirement.
func checkGoMod(artifact string, src []byte) []Issue {
	fail := func(msg string) []Issue {
		return []Issue{{
			Check:    "syntax",
			Artifact: artifact,
			Message:  msg,
			Severity: report.SeverityError,
		}}
	}

	f, err := modfile.Parse(artifact, src, nil)
	if err != nil {
		return fail(fmt.Sprintf("module file does not parse: %v", err))
	}

	var issues []Issue
	if f.Module == nil || f.Module.Mod.Path == "" {
		issues = append(issues, fail("module file declares no module path")...)
	}
	if f.Go == nil || f.Go.Version == "" {
		issues = append(issues, fail("module file declares no go directive")...)
	}
	if len(f.Require) == 0 {
		issues = append(issues, fail("module file declares no requirements; the generated server imports the MCP SDK")...)
	}
	return issues
}
