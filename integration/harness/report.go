//go:build integration

package harness

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// PrintScenarioHeader prints the header for a scenario.
func PrintScenarioHeader(t *testing.T, scenario *Scenario) {
	t.Helper()

	t.Logf("")
	t.Logf("Scenario: %s", scenario.Name)
	if scenario.Description != "" {
		t.Logf("  %s", scenario.Description)
	}
	if scenario.Base != "" {
		t.Logf("  Base: %s", scenario.Base)
	}
	if scenario.Target != "" {
		t.Logf("  Target: %s", scenario.Target)
	}
}

// PrintRunResult prints a summary of a scenario's pipeline run.
func PrintRunResult(t *testing.T, result *RunResult) {
	t.Helper()

	status := "PASS"
	if !result.Success {
		status = "FAIL"
	}

	var extra string
	if res := result.Result; res != nil {
		if res.Parse != nil {
			extra += fmt.Sprintf(" - OpenAPI %s", res.Parse.Version)
		}
		if res.Spec != nil {
			extra += fmt.Sprintf(", %d tools", len(res.Spec.Endpoints))
		}
		if res.Generate != nil {
			extra += fmt.Sprintf(", %d artifacts", len(res.Generate.Files))
		}
		if res.Report != nil {
			if res.Report.Valid {
				extra += ", valid"
			} else {
				extra += fmt.Sprintf(", %d validation errors", res.Report.ErrorCount)
			}
		}
	}

	t.Logf("  %s (%s)%s", status, formatDuration(result.Duration), extra)

	if result.Err != nil {
		t.Logf("    Error: %v", result.Err)
	}
	for _, failure := range result.Failures {
		t.Logf("    Check failed: %s", failure)
	}
}

// PrintSummary prints a summary of all scenario results.
func PrintSummary(t *testing.T, results []*RunResult, duration time.Duration) {
	t.Helper()

	passed := 0
	failed := 0
	skipped := 0

	for _, r := range results {
		switch {
		case r.Scenario.Skip != "":
			skipped++
		case r.Success:
			passed++
		default:
			failed++
		}
	}

	t.Logf("")
	t.Logf("%s", strings.Repeat("=", 80))
	t.Logf("INTEGRATION TEST SUMMARY")
	t.Logf("%s", strings.Repeat("=", 80))
	t.Logf("Scenarios:  %d passed, %d failed, %d skipped", passed, failed, skipped)
	t.Logf("Duration:   %s", formatDuration(duration))
	t.Logf("%s", strings.Repeat("=", 80))

	if failed > 0 {
		t.Logf("")
		t.Logf("Failed scenarios:")
		for _, r := range results {
			if !r.Success && r.Scenario.Skip == "" {
				t.Logf("  - %s: %s", r.Scenario.Name, strings.Join(r.Failures, "; "))
			}
		}
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
