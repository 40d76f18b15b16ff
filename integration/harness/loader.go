//go:build integration

package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/gacabartosz/mcp-universal-adapter/generator"
)

// LoadScenario loads a single scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to read scenario file %s: %w", path, err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("harness: failed to parse scenario file %s: %w", path, err)
	}

	scenario.filePath = path

	if err := ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("harness: invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// LoadAllScenarios loads all scenarios from a directory recursively.
func LoadAllScenarios(dir string) ([]*Scenario, error) {
	var scenarios []*Scenario

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		scenario, err := LoadScenario(path)
		if err != nil {
			return err
		}

		scenarios = append(scenarios, scenario)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("harness: failed to load scenarios from %s: %w", dir, err)
	}

	return scenarios, nil
}

// ValidateScenario validates a scenario's structure and required fields.
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario must have a name")
	}

	if s.Base == "" {
		return fmt.Errorf("scenario '%s' has no base document", s.Name)
	}

	if s.Target != "" {
		if _, err := generator.Get(s.Target); err != nil {
			return fmt.Errorf("scenario '%s': %w", s.Name, err)
		}
	}

	switch s.Expect.Outcome {
	case "", OutcomeSuccess, OutcomeError, OutcomeInvalid:
	default:
		return fmt.Errorf("scenario '%s': invalid outcome '%s' (must be %s, %s, or %s)",
			s.Name, s.Expect.Outcome, OutcomeSuccess, OutcomeError, OutcomeInvalid)
	}

	if s.Expect.ErrorContains != "" && s.Expect.Outcome != OutcomeError {
		return fmt.Errorf("scenario '%s': error-contains requires outcome '%s'", s.Name, OutcomeError)
	}

	return nil
}

// ScenarioPath returns the relative path of the scenario file for display.
func ScenarioPath(s *Scenario, baseDir string) string {
	if s.filePath == "" {
		return s.Name
	}
	rel, err := filepath.Rel(baseDir, s.filePath)
	if err != nil {
		return s.filePath
	}
	return rel
}

// ScenarioTestName returns a test-friendly name for the scenario.
func ScenarioTestName(s *Scenario, baseDir string) string {
	path := ScenarioPath(s, baseDir)
	path = strings.TrimSuffix(path, ".yaml")
	path = strings.TrimSuffix(path, ".yml")
	return strings.ReplaceAll(path, string(filepath.Separator), "/")
}
