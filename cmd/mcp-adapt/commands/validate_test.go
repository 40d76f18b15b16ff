package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/gacabartosz/mcp-universal-adapter/pipeline"
)

func TestSetupValidateFlags(t *testing.T) {
	fs, flags := SetupValidateFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.Dir != "" {
			t.Errorf("expected Dir to be empty by default, got '%s'", flags.Dir)
		}
		if flags.Target != "python" {
			t.Errorf("expected Target 'python' by default, got '%s'", flags.Target)
		}
		if flags.Spec != "" {
			t.Errorf("expected Spec to be empty by default, got '%s'", flags.Spec)
		}
		if flags.Format != FormatText {
			t.Errorf("expected Format 'text' by default, got '%s'", flags.Format)
		}
		if flags.Quiet {
			t.Error("expected Quiet to be false by default")
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--dir", "./out", "--target", "go", "--spec", "spec.yaml", "--format", "json", "-q"}
		if err := fs.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if flags.Dir != "./out" {
			t.Errorf("expected Dir './out', got '%s'", flags.Dir)
		}
		if flags.Target != "go" {
			t.Errorf("expected Target 'go', got '%s'", flags.Target)
		}
		if flags.Spec != "spec.yaml" {
			t.Errorf("expected Spec 'spec.yaml', got '%s'", flags.Spec)
		}
		if flags.Format != FormatJSON {
			t.Errorf("expected Format 'json', got '%s'", flags.Format)
		}
		if !flags.Quiet {
			t.Error("expected Quiet to be true")
		}
	})
}

func TestHandleValidate_NoDir(t *testing.T) {
	err := HandleValidate([]string{})
	if err == nil {
		t.Fatal("expected error when no directory provided")
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected *UsageError, got %T", err)
	}
}

func TestHandleValidate_Help(t *testing.T) {
	err := HandleValidate([]string{"--help"})
	if err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleValidate_PositionalArgs(t *testing.T) {
	err := HandleValidate([]string{"--dir", "./out", "extra.yaml"})
	if err == nil {
		t.Fatal("expected error for positional arguments")
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected *UsageError, got %T", err)
	}
}

// generateArtifacts renders the petstore fixture into a fresh directory.
func generateArtifacts(t *testing.T, target string) string {
	t.Helper()
	outDir := t.TempDir()
	_, err := pipeline.Run(context.Background(),
		pipeline.WithLocation(petstorePath),
		pipeline.WithTarget(target),
		pipeline.WithOutputDir(outDir),
	)
	if err != nil {
		t.Fatalf("generating artifacts: %v", err)
	}
	return outDir
}

func TestHandleValidate_ValidArtifacts(t *testing.T) {
	outDir := generateArtifacts(t, "python")
	err := HandleValidate([]string{"--dir", outDir})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHandleValidate_GoArtifacts(t *testing.T) {
	outDir := generateArtifacts(t, "go")
	err := HandleValidate([]string{"--dir", outDir, "--target", "go"})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHandleValidate_WithSpec(t *testing.T) {
	outDir := generateArtifacts(t, "python")
	err := HandleValidate([]string{"--dir", outDir, "--spec", petstorePath})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHandleValidate_EmptyDir(t *testing.T) {
	err := HandleValidate([]string{"-q", "--dir", t.TempDir()})
	if err == nil {
		t.Error("expected error for a directory with no artifacts")
	}
}

func TestHandleValidate_WrongTarget(t *testing.T) {
	// Python artifacts checked as a go artifact set must fail.
	outDir := generateArtifacts(t, "python")
	err := HandleValidate([]string{"-q", "--dir", outDir, "--target", "go"})
	if err == nil {
		t.Error("expected error when validating against the wrong target")
	}
}

func TestHandleValidate_UnknownTarget(t *testing.T) {
	err := HandleValidate([]string{"--dir", t.TempDir(), "--target", "rust"})
	if err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestHandleValidate_JSONFormat(t *testing.T) {
	outDir := generateArtifacts(t, "python")
	err := HandleValidate([]string{"--dir", outDir, "--format", "json"})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
