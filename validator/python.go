// This file implements the lexical checks for generated Python artifacts:
// bracket balance and string termination for server.py, and a minimal
// project-table scan for pyproject.toml.

package validator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/internal/report"
)

// checkPythonSource lexically scans a generated Python source file. Brackets
// must balance outside strings and comments, every string literal must
// terminate, and the file must define at least one async function per tool.
// This is not a Python parser; it catches the corruption classes a text
// renderer can produce.
func checkPythonSource(artifact string, src []byte, toolCount int) []Issue {
	var issues []Issue
	lineFor := func(msg string, line int) Issue {
		return Issue{
			Check:    "syntax",
			Artifact: artifact,
			Message:  msg,
			Severity: report.SeverityError,
			Line:     line,
		}
	}

	type opening struct {
		ch   byte
		line int
	}
	var stack []opening
	match := map[byte]byte{')': '(', ']': '[', '}': '{'}
	line := 1

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '\n':
			line++
		case '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
			i-- // the loop increment lands on the newline
		case '\'', '"':
			quote := c
			start := line
			if i+2 < len(src) && src[i+1] == quote && src[i+2] == quote {
				i += 3
				closed := false
				for i < len(src) {
					if src[i] == '\\' {
						if i+1 < len(src) && src[i+1] == '\n' {
							line++
						}
						i += 2
						continue
					}
					if src[i] == quote && i+2 < len(src) && src[i+1] == quote && src[i+2] == quote {
						i += 2
						closed = true
						break
					}
					if src[i] == '\n' {
						line++
					}
					i++
				}
				if !closed {
					issues = append(issues, lineFor("unterminated triple-quoted string", start))
				}
			} else {
				j := i + 1
				closed := false
				for j < len(src) {
					if src[j] == '\\' {
						j += 2
						continue
					}
					if src[j] == quote {
						closed = true
						break
					}
					if src[j] == '\n' {
						break
					}
					j++
				}
				if closed {
					i = j
				} else {
					issues = append(issues, lineFor("unterminated string literal", start))
					i = j - 1 // reprocess the newline so line counting stays right
				}
			}
		case '(', '[', '{':
			stack = append(stack, opening{ch: c, line: line})
		case ')', ']', '}':
			switch {
			case len(stack) == 0:
				issues = append(issues, lineFor(fmt.Sprintf("unexpected closing %q", string(c)), line))
			case stack[len(stack)-1].ch != match[c]:
				top := stack[len(stack)-1]
				issues = append(issues, lineFor(
					fmt.Sprintf("closing %q does not match %q opened on line %d", string(c), string(top.ch), top.line), line))
				stack = stack[:len(stack)-1]
			default:
				stack = stack[:len(stack)-1]
			}
		}
	}
	for _, o := range stack {
		issues = append(issues, lineFor(fmt.Sprintf("unclosed %q", string(o.ch)), o.line))
	}

	if toolCount > 0 {
		if defs := bytes.Count(src, []byte("async def ")); defs < toolCount {
			issues = append(issues, Issue{
				Check:    "syntax",
				Artifact: artifact,
				Message:  fmt.Sprintf("server defines %d async function(s) for %d tool(s)", defs, toolCount),
				Severity: report.SeverityError,
			})
		}
	}
	return issues
}

// checkPyproject scans pyproject.toml for a populated [project] table. A full
// TOML parse is not needed; the generated manifest is flat.
func checkPyproject(artifact string, src []byte) []Issue {
	var issues []Issue
	fail := func(msg string) {
		issues = append(issues, Issue{
			Check:    "syntax",
			Artifact: artifact,
			Message:  msg,
			Severity: report.SeverityError,
		})
	}

	inProject := false
	foundProject := false
	hasName := false
	hasVersion := false
	for _, raw := range strings.Split(string(src), "\n") {
		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "[") {
			inProject = line == "[project]"
			if inProject {
				foundProject = true
			}
			continue
		}
		if !inProject {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "name ="); ok && strings.TrimSpace(rest) != "" {
			hasName = true
		}
		if rest, ok := strings.CutPrefix(line, "version ="); ok && strings.TrimSpace(rest) != "" {
			hasVersion = true
		}
	}

	switch {
	case !foundProject:
		fail("missing [project] table")
	default:
		if !hasName {
			fail("[project] table declares no name")
		}
		if !hasVersion {
			fail("[project] table declares no version")
		}
	}
	return issues
}
