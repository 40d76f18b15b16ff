// Package commands provides CLI command handlers for mcp-adapt.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	segjson "github.com/segmentio/encoding/json"

	mcpadapter "github.com/gacabartosz/mcp-universal-adapter"
	"github.com/gacabartosz/mcp-universal-adapter/internal/cliutil"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// UsageError marks an error caused by a bad invocation rather than by a
// failed run. main exits with code 2 when a handler returns one.
type UsageError struct {
	msg string
}

// Error implements error.
func (e *UsageError) Error() string { return e.msg }

// usageErrorf builds a UsageError from a format string.
func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON {
		return usageErrorf("invalid format '%s'. Valid formats: %s, %s", format, FormatText, FormatJSON)
	}
	return nil
}

// OutputStructured outputs data as indented JSON to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	if format != FormatJSON {
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	bytes, err := segjson.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	fmt.Println(string(bytes))
	return nil
}

// FormatSpecPath returns a display-friendly path for the specification.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// OutputSpecHeader outputs the common specification header to stderr.
// This includes mcp-adapt version, specification path, and OpenAPI version.
func OutputSpecHeader(specPath, version string) {
	Writef(os.Stderr, "mcp-adapt version: %s\n", mcpadapter.Version())
	Writef(os.Stderr, "Specification: %s\n", FormatSpecPath(specPath))
	Writef(os.Stderr, "OpenAPI Version: %s\n", version)
}

// readSpecInput reads document bytes when the spec argument is StdinFilePath,
// and otherwise reports the argument as a location (file path or URL).
func readSpecInput(specPath string, stdin io.Reader) (data []byte, isStdin bool, err error) {
	if specPath != StdinFilePath {
		return nil, false, nil
	}
	data, err = io.ReadAll(stdin)
	if err != nil {
		return nil, true, fmt.Errorf("reading stdin: %w", err)
	}
	return data, true, nil
}

// RejectSymlinkOutput checks if the output path is a symlink and returns an
// error if so. This prevents a symlink from redirecting generated artifacts
// to an unintended location.
func RejectSymlinkOutput(cleanedPath string) error {
	info, err := os.Lstat(cleanedPath)
	if os.IsNotExist(err) {
		// Directory doesn't exist yet — safe to create.
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", cleanedPath)
	}
	return nil
}

// verboseLogger builds the parser.Logger installed by the -v flag: a text
// slog handler on stderr at debug level, so stdout stays clean for piping.
func verboseLogger() parser.Logger {
	return parser.NewSlogAdapter(newStderrLogger(slog.LevelDebug))
}

// newStderrLogger builds a text slog logger writing to stderr at the given level.
func newStderrLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
