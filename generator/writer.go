package generator

import (
	"fmt"
	"path/filepath"

	"github.com/gacabartosz/mcp-universal-adapter/internal/fileutil"
)

// WriteFiles writes all generated files to the specified output directory.
// The directory is created if it doesn't exist. Writes are atomic, and each
// file keeps the mode its backend assigned, so the credential template lands
// owner-only even inside a fresh directory.
func (r *Result) WriteFiles(outputDir string) error {
	if err := fileutil.EnsureDir(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for i := range r.Files {
		if err := r.Files[i].WriteFile(outputDir); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile writes one generated file into dir under its own name.
func (f *File) WriteFile(dir string) error {
	safeName := filepath.Base(f.Name)
	if safeName != f.Name || safeName == "." || safeName == ".." {
		return fmt.Errorf("invalid file name %q: must not contain path separators", f.Name)
	}

	mode := f.Mode
	if mode == 0 {
		mode = fileutil.ReadableByAll
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, safeName), f.Content, mode); err != nil {
		return fmt.Errorf("failed to write file %s: %w", f.Name, err)
	}

	return nil
}
