package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// petstorePath points at the shared parser fixture from this package.
const petstorePath = "../../../parser/testdata/petstore.yaml"

func TestSetupGenerateFlags(t *testing.T) {
	fs, flags := SetupGenerateFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.Output != "" {
			t.Errorf("expected Output to be empty by default, got '%s'", flags.Output)
		}
		if flags.Target != "python" {
			t.Errorf("expected Target 'python' by default, got '%s'", flags.Target)
		}
		if flags.Name != "" {
			t.Errorf("expected Name to be empty by default, got '%s'", flags.Name)
		}
		if flags.Timeout != 0 {
			t.Errorf("expected Timeout 0 by default, got %v", flags.Timeout)
		}
		if flags.DryRun {
			t.Error("expected DryRun to be false by default")
		}
		if flags.Format != FormatText {
			t.Errorf("expected Format 'text' by default, got '%s'", flags.Format)
		}
		if flags.Verbose {
			t.Error("expected Verbose to be false by default")
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-o", "./output", "-t", "go", "--name", "myserver", "--timeout", "5s", "--dry-run", "--format", "json", "spec.yaml"}
		if err := fs.Parse(args); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}

		if flags.Output != "./output" {
			t.Errorf("expected Output './output', got '%s'", flags.Output)
		}
		if flags.Target != "go" {
			t.Errorf("expected Target 'go', got '%s'", flags.Target)
		}
		if flags.Name != "myserver" {
			t.Errorf("expected Name 'myserver', got '%s'", flags.Name)
		}
		if flags.Timeout != 5*time.Second {
			t.Errorf("expected Timeout 5s, got %v", flags.Timeout)
		}
		if !flags.DryRun {
			t.Error("expected DryRun to be true")
		}
		if flags.Format != FormatJSON {
			t.Errorf("expected Format 'json', got '%s'", flags.Format)
		}
		if fs.Arg(0) != "spec.yaml" {
			t.Errorf("expected file arg 'spec.yaml', got '%s'", fs.Arg(0))
		}
	})
}

func TestHandleGenerate_NoArgs(t *testing.T) {
	err := HandleGenerate([]string{})
	if err == nil {
		t.Fatal("expected error when no file provided")
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected *UsageError, got %T", err)
	}
}

func TestHandleGenerate_Help(t *testing.T) {
	err := HandleGenerate([]string{"--help"})
	if err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleGenerate_NoOutput(t *testing.T) {
	err := HandleGenerate([]string{"spec.yaml"})
	if err == nil {
		t.Fatal("expected error when no output directory provided")
	}
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Errorf("expected *UsageError, got %T", err)
	}
}

func TestHandleGenerate_InvalidFormat(t *testing.T) {
	err := HandleGenerate([]string{"--format", "xml", "-o", t.TempDir(), "spec.yaml"})
	if err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestHandleGenerate_WritesArtifacts(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "server")
	err := HandleGenerate([]string{"-o", outDir, petstorePath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"server.py", "pyproject.toml", "README.md", ".env.example", "tools.json"} {
		if _, statErr := os.Stat(filepath.Join(outDir, name)); statErr != nil {
			t.Errorf("expected artifact %s to exist: %v", name, statErr)
		}
	}
}

func TestHandleGenerate_GoTarget(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "server")
	err := HandleGenerate([]string{"-t", "go", "-o", outDir, petstorePath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"main.go", "go.mod", "tools.json"} {
		if _, statErr := os.Stat(filepath.Join(outDir, name)); statErr != nil {
			t.Errorf("expected artifact %s to exist: %v", name, statErr)
		}
	}
}

func TestHandleGenerate_DryRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "server")
	err := HandleGenerate([]string{"--dry-run", "-o", outDir, petstorePath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, statErr := os.Stat(outDir); !os.IsNotExist(statErr) {
		t.Errorf("expected no output directory after dry run, stat err = %v", statErr)
	}
}

func TestHandleGenerate_DryRunWithoutOutput(t *testing.T) {
	err := HandleGenerate([]string{"--dry-run", petstorePath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleGenerate_JSONFormat(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "server")
	err := HandleGenerate([]string{"--format", "json", "-o", outDir, petstorePath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandleGenerate_UnknownTarget(t *testing.T) {
	err := HandleGenerate([]string{"-t", "rust", "-o", t.TempDir(), petstorePath})
	if err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestHandleGenerate_SymlinkOutput(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmpDir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	err := HandleGenerate([]string{"-o", link, petstorePath})
	if err == nil {
		t.Error("expected error for symlink output directory")
	}
}
