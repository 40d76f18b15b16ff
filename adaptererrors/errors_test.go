package adaptererrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSpecFetchError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &SpecFetchError{
			Location:   "https://example.com/openapi.json",
			StatusCode: 503,
			Message:    "unexpected response",
			Cause:      cause,
		}

		want := "spec fetch error for https://example.com/openapi.json (status 503): unexpected response: connection refused"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &SpecFetchError{}
		if err.Error() != "spec fetch error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &SpecFetchError{Location: "api.yaml"}
		if !errors.Is(err, ErrSpecFetch) {
			t.Error("expected errors.Is(err, ErrSpecFetch) to be true")
		}
		if errors.Is(err, ErrSpecFormat) {
			t.Error("SpecFetchError should not match ErrSpecFormat")
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &SpecFetchError{Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("expected wrapped cause to match")
		}
	})
}

func TestSpecFormatError(t *testing.T) {
	t.Run("Error message with location info", func(t *testing.T) {
		err := &SpecFormatError{
			Location: "api.yaml",
			Line:     42,
			Column:   10,
			Message:  "mapping values are not allowed here",
		}

		want := "spec format error in api.yaml at line 42, column 10: mapping values are not allowed here"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with ref", func(t *testing.T) {
		err := &SpecFormatError{
			Ref:     "#/components/schemas/Missing",
			Message: "reference target not found",
		}
		want := "spec format error (ref #/components/schemas/Missing): reference target not found"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &SpecFormatError{}
		if !errors.Is(err, ErrSpecFormat) {
			t.Error("expected errors.Is(err, ErrSpecFormat) to be true")
		}
	})

	t.Run("survives wrapping", func(t *testing.T) {
		inner := &SpecFormatError{Message: "bad yaml"}
		wrapped := fmt.Errorf("parse: %w", inner)

		if !errors.Is(wrapped, ErrSpecFormat) {
			t.Error("wrapped error should match sentinel")
		}
		var out *SpecFormatError
		if !errors.As(wrapped, &out) {
			t.Fatal("errors.As should find SpecFormatError")
		}
		if out.Message != "bad yaml" {
			t.Errorf("unexpected message: %s", out.Message)
		}
	})
}

func TestUnsupportedVersionError(t *testing.T) {
	t.Run("with declared version", func(t *testing.T) {
		err := &UnsupportedVersionError{Declared: "2.0", Supported: []string{"3.x"}}
		want := "unsupported spec version 2.0 (supported: 3.x)"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("without declared version", func(t *testing.T) {
		err := &UnsupportedVersionError{}
		if err.Error() != "unsupported spec version: document declares no openapi version" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &UnsupportedVersionError{Declared: "2.0"}
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Error("expected errors.Is(err, ErrUnsupportedVersion) to be true")
		}
	})
}

func TestCyclicReferenceError(t *testing.T) {
	t.Run("Error message with chain", func(t *testing.T) {
		err := &CyclicReferenceError{
			Ref:   "#/components/schemas/A",
			Chain: []string{"#/components/schemas/A", "#/components/schemas/B"},
		}
		want := "cyclic reference: #/components/schemas/A (via #/components/schemas/A -> #/components/schemas/B)"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &CyclicReferenceError{Ref: "#/components/schemas/A"}
		if !errors.Is(err, ErrCyclicReference) {
			t.Error("expected errors.Is(err, ErrCyclicReference) to be true")
		}
	})
}

func TestNormalizationError(t *testing.T) {
	t.Run("Error message with endpoint and parameter", func(t *testing.T) {
		err := &NormalizationError{
			Path:      "paths./pets.get.parameters.0",
			Endpoint:  "list_pets",
			Parameter: "limit",
			Message:   "schema type is missing",
		}
		want := "normalization error at paths./pets.get.parameters.0 (endpoint list_pets, parameter limit): schema type is missing"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with parameter only", func(t *testing.T) {
		err := &NormalizationError{Parameter: "limit", Message: "unknown type"}
		want := "normalization error (parameter limit): unknown type"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &NormalizationError{}
		if !errors.Is(err, ErrNormalization) {
			t.Error("expected errors.Is(err, ErrNormalization) to be true")
		}
	})
}

func TestUnsupportedTargetError(t *testing.T) {
	t.Run("Error message lists registered targets", func(t *testing.T) {
		err := &UnsupportedTargetError{
			Target:     "rust",
			Registered: []string{"go", "python"},
		}
		want := `unsupported target "rust" (registered: go, python)`
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &UnsupportedTargetError{Target: "rust"}
		if !errors.Is(err, ErrUnsupportedTarget) {
			t.Error("expected errors.Is(err, ErrUnsupportedTarget) to be true")
		}
	})
}

func TestTemplateRenderError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &TemplateRenderError{
			Target:   "python",
			Artifact: "server.py",
			Field:    "base_url",
			Message:  "spec has no server URL",
		}
		want := "render error for target python in server.py (field base_url): spec has no server URL"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &TemplateRenderError{}
		if !errors.Is(err, ErrTemplateRender) {
			t.Error("expected errors.Is(err, ErrTemplateRender) to be true")
		}
	})
}

func TestValidationFailure(t *testing.T) {
	t.Run("Error message enumerates violations", func(t *testing.T) {
		err := &ValidationFailure{
			Target:     "python",
			ErrorCount: 2,
			Violations: []string{
				"server.py: unbalanced brackets",
				"README.md: missing tool list_pets",
			},
		}
		msg := err.Error()
		if msg == "" {
			t.Fatal("empty message")
		}
		for _, want := range []string{"validation failure for target python", "2 check(s) failed", "unbalanced brackets", "missing tool list_pets"} {
			if !strings.Contains(msg, want) {
				t.Errorf("message %q missing %q", msg, want)
			}
		}
	})

	t.Run("matches sentinel", func(t *testing.T) {
		var err error = &ValidationFailure{}
		if !errors.Is(err, ErrValidation) {
			t.Error("expected errors.Is(err, ErrValidation) to be true")
		}
	})
}
