package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gacabartosz/mcp-universal-adapter/generator"
	"github.com/gacabartosz/mcp-universal-adapter/normalizer"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
	"github.com/gacabartosz/mcp-universal-adapter/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Dir    string
	Target string
	Spec   string
	Format string
	Quiet  bool
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Dir, "dir", "", "directory containing the generated artifact set (required)")
	fs.StringVar(&flags.Target, "target", generator.TargetPython, "target language the artifacts were generated for")
	fs.StringVar(&flags.Spec, "spec", "", "specification file or URL to check tool coverage against (optional)")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the validation result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the validation result, no diagnostic messages")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: mcp-adapt validate [flags]\n\n")
		Writef(fs.Output(), "Validate a previously generated MCP server artifact set.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nChecks:\n")
		Writef(fs.Output(), "  - Every required artifact for the target is present and non-empty\n")
		Writef(fs.Output(), "  - Server source is structurally sound (syntax, balance, manifest schemas)\n")
		Writef(fs.Output(), "  - Credential variables referenced in code appear in .env.example\n")
		Writef(fs.Output(), "  - With --spec: every tool from the specification appears in the server source\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  mcp-adapt validate --dir ./petstore-server\n")
		Writef(fs.Output(), "  mcp-adapt validate --dir ./server --target go\n")
		Writef(fs.Output(), "  mcp-adapt validate --dir ./server --spec petstore.yaml\n")
		Writef(fs.Output(), "  mcp-adapt validate --dir ./server --format json | jq '.valid'\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Validation successful\n")
		Writef(fs.Output(), "  1    Validation failed with errors\n")
		Writef(fs.Output(), "  2    Invalid usage\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return usageErrorf("validate command takes no positional arguments (use --dir)")
	}

	if flags.Dir == "" {
		fs.Usage()
		return usageErrorf("artifact directory is required (use --dir)")
	}

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	// When a specification is given, derive the expected tool names from it so
	// the tool presence checks run.
	var toolNames []string
	if flags.Spec != "" {
		parsed, err := parser.ParseWithOptions(parser.WithLocation(flags.Spec))
		if err != nil {
			return fmt.Errorf("parsing specification: %w", err)
		}
		norm, err := normalizer.Normalize(parsed.Extraction)
		if err != nil {
			return fmt.Errorf("normalizing specification: %w", err)
		}
		toolNames = norm.Spec.EndpointNames()
	}

	report, err := validator.ValidateDir(flags.Dir, flags.Target, toolNames)
	if err != nil {
		return fmt.Errorf("validating artifact set: %w", err)
	}

	// Handle structured output format
	if flags.Format == FormatJSON {
		if err := OutputStructured(newValidationOutput(report), flags.Format); err != nil {
			return err
		}
		if !report.Valid {
			return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount)
		}
		return nil
	}

	// Text format output (always to stderr so stdout stays clean for piping)
	if !flags.Quiet {
		Writef(os.Stderr, "MCP Server Artifact Validator\n")
		Writef(os.Stderr, "=============================\n\n")
		Writef(os.Stderr, "Artifact Directory: %s\n", flags.Dir)
		Writef(os.Stderr, "Target: %s\n", report.Target)
		if flags.Spec != "" {
			Writef(os.Stderr, "Specification: %s\n", flags.Spec)
			Writef(os.Stderr, "Expected Tools: %d\n", len(toolNames))
		}
		Writef(os.Stderr, "Validate Time: %v\n\n", report.ValidateTime)

		if len(report.Errors) > 0 {
			Writef(os.Stderr, "Errors (%d):\n", report.ErrorCount)
			for _, e := range report.Errors {
				Writef(os.Stderr, "  %s\n", e.String())
			}
			Writef(os.Stderr, "\n")
		}

		if len(report.Warnings) > 0 {
			Writef(os.Stderr, "Warnings (%d):\n", report.WarningCount)
			for _, warning := range report.Warnings {
				Writef(os.Stderr, "  %s\n", warning.String())
			}
			Writef(os.Stderr, "\n")
		}
	}

	if report.Valid {
		if !flags.Quiet {
			Writef(os.Stderr, "✓ Validation passed")
			if report.WarningCount > 0 {
				Writef(os.Stderr, " with %d warning(s)", report.WarningCount)
			}
			Writef(os.Stderr, "\n")
		}
		return nil
	}

	if !flags.Quiet {
		Writef(os.Stderr, "✗ Validation failed: %d error(s)", report.ErrorCount)
		if report.WarningCount > 0 {
			Writef(os.Stderr, ", %d warning(s)", report.WarningCount)
		}
		Writef(os.Stderr, "\n")
	}
	return fmt.Errorf("validation failed with %d error(s)", report.ErrorCount)
}

// newValidationOutput flattens a validation report into its JSON rendering.
func newValidationOutput(report *validator.Report) validationOutput {
	errs := make([]string, 0, len(report.Errors))
	for _, e := range report.Errors {
		errs = append(errs, e.String())
	}
	warnings := make([]string, 0, len(report.Warnings))
	for _, w := range report.Warnings {
		warnings = append(warnings, w.String())
	}
	return validationOutput{
		Valid:        report.Valid,
		ErrorCount:   report.ErrorCount,
		WarningCount: report.WarningCount,
		Errors:       errs,
		Warnings:     warnings,
	}
}
