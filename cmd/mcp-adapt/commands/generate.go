package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	mcpadapter "github.com/gacabartosz/mcp-universal-adapter"
	"github.com/gacabartosz/mcp-universal-adapter/generator"
	"github.com/gacabartosz/mcp-universal-adapter/internal/cliutil"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
	"github.com/gacabartosz/mcp-universal-adapter/pipeline"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output  string
	Target  string
	Name    string
	Timeout time.Duration
	DryRun  bool
	Format  string
	Verbose bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for the generated server (required unless --dry-run)")
	fs.StringVar(&flags.Output, "output", "", "output directory for the generated server (required unless --dry-run)")
	fs.StringVar(&flags.Target, "t", generator.TargetPython, "target language for the generated server")
	fs.StringVar(&flags.Target, "target", generator.TargetPython, "target language for the generated server")
	fs.StringVar(&flags.Name, "name", "", "server name (default: the API title from the specification)")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "timeout for fetching remote specifications (default 30s)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "render and validate without writing any files")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")
	fs.BoolVar(&flags.Verbose, "v", false, "enable verbose logging to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose logging to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: mcp-adapt generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate an MCP server project from an OpenAPI 3.x specification.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nTargets:\n")
		cliutil.Writef(fs.Output(), "  python (default)  FastMCP server: server.py, pyproject.toml, README.md, .env.example, tools.json\n")
		cliutil.Writef(fs.Output(), "  go                MCP SDK server: main.go, go.mod, README.md, .env.example, tools.json\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  mcp-adapt generate -o ./petstore-server petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  mcp-adapt generate -t go -o ./server openapi.json\n")
		cliutil.Writef(fs.Output(), "  mcp-adapt generate --name weather -o ./weather https://example.com/api/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  mcp-adapt generate --dry-run openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  mcp-adapt generate --format json -o ./out openapi.yaml | jq '.validation.valid'\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | mcp-adapt generate -o ./server -\n")
		cliutil.Writef(fs.Output(), "\nPipelining:\n")
		cliutil.Writef(fs.Output(), "  Use '-' as the file path to read the specification from stdin.\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Every run validates the generated artifact set; failures exit non-zero\n")
		cliutil.Writef(fs.Output(), "  - Validated artifacts stay on disk even when validation fails\n")
		cliutil.Writef(fs.Output(), "  - Generated servers read credentials from environment variables (see .env.example)\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Generation and validation successful\n")
		cliutil.Writef(fs.Output(), "  1    Generation or validation failed\n")
		cliutil.Writef(fs.Output(), "  2    Invalid usage\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return usageErrorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	if flags.Output == "" && !flags.DryRun {
		fs.Usage()
		return usageErrorf("output directory is required (use -o or --output, or --dry-run)")
	}

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	if flags.Output != "" {
		if err := RejectSymlinkOutput(filepath.Clean(flags.Output)); err != nil {
			return err
		}
	}

	// Build pipeline options
	opts := []pipeline.Option{
		pipeline.WithTarget(flags.Target),
		pipeline.WithOutputDir(flags.Output),
		pipeline.WithDryRun(flags.DryRun),
	}
	if flags.Name != "" {
		opts = append(opts, pipeline.WithServerName(flags.Name))
	}
	if flags.Timeout > 0 {
		opts = append(opts, pipeline.WithHTTPTimeout(flags.Timeout))
	}
	if flags.Verbose {
		opts = append(opts, pipeline.WithLogger(verboseLogger()))
	}

	data, isStdin, err := readSpecInput(specPath, os.Stdin)
	if err != nil {
		return err
	}
	if isStdin {
		opts = append(opts, pipeline.WithSpecBytes(data))
	} else {
		opts = append(opts, pipeline.WithLocation(specPath))
	}

	result, err := pipeline.Run(context.Background(), opts...)
	if err != nil {
		return fmt.Errorf("generating server: %w", err)
	}

	// Handle structured output format
	if flags.Format == FormatJSON {
		if err := OutputStructured(newGenerateOutput(specPath, result), flags.Format); err != nil {
			return err
		}
		return generateRunError(result)
	}

	// Text format output
	fmt.Printf("MCP Server Generator\n")
	fmt.Printf("====================\n\n")
	fmt.Printf("mcp-adapt version: %s\n", mcpadapter.Version())
	fmt.Printf("Specification: %s\n", FormatSpecPath(specPath))
	fmt.Printf("OpenAPI Version: %s\n", result.Parse.Version)
	fmt.Printf("Source Size: %s\n", parser.FormatBytes(result.Parse.SourceSize))
	fmt.Printf("API: %s v%s\n", result.Spec.Name, result.Spec.Version)
	fmt.Printf("Target: %s\n", result.Generate.Target)
	fmt.Printf("Server Name: %s\n", result.Generate.ServerName)
	fmt.Printf("Tools: %d\n", len(result.Generate.ToolNames))
	fmt.Printf("Total Time: %v\n\n", result.Timing.Total)

	// Print parse warnings and normalization findings
	warnings := runWarnings(result)
	if len(warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", len(warnings))
		for _, warning := range warnings {
			fmt.Printf("  %s\n", warning)
		}
		fmt.Println()
	}

	// Print generation issues
	if len(result.Generate.Issues) > 0 {
		fmt.Printf("Generation Issues (%d):\n", len(result.Generate.Issues))
		for _, issue := range result.Generate.Issues {
			fmt.Printf("  %s\n", issue.String())
		}
		fmt.Println()
	}

	// Print generated files
	if result.DryRun {
		fmt.Printf("Dry run — artifacts rendered but not written (%d):\n", len(result.Generate.Files))
		for _, file := range result.Generate.Files {
			fmt.Printf("  - %s (%d bytes)\n", file.Name, len(file.Content))
		}
	} else {
		fmt.Printf("Generated Files (%d):\n", len(result.Generate.Files))
		for _, file := range result.Generate.Files {
			fmt.Printf("  - %s (%d bytes)\n", filepath.Join(result.OutputDir, file.Name), len(file.Content))
		}
	}
	fmt.Println()

	// Print validation findings
	report := result.Report
	if len(report.Errors) > 0 {
		fmt.Printf("Validation Errors (%d):\n", report.ErrorCount)
		for _, e := range report.Errors {
			fmt.Printf("  %s\n", e.String())
		}
		fmt.Println()
	}
	if len(report.Warnings) > 0 {
		fmt.Printf("Validation Warnings (%d):\n", report.WarningCount)
		for _, w := range report.Warnings {
			fmt.Printf("  %s\n", w.String())
		}
		fmt.Println()
	}

	// Print summary
	if result.Generate.Success && report.Valid {
		fmt.Printf("✓ Generation successful")
		if result.Generate.InfoCount > 0 || result.Generate.WarningCount > 0 {
			fmt.Printf(" (%d info, %d warnings)", result.Generate.InfoCount, result.Generate.WarningCount)
		}
		fmt.Println()
		return nil
	}

	if !result.Generate.Success {
		fmt.Printf("✗ Generation completed with %d critical issue(s)\n", result.Generate.CriticalCount)
	}
	if !report.Valid {
		fmt.Printf("✗ Validation failed: %d error(s)\n", report.ErrorCount)
	}
	return generateRunError(result)
}

// generateRunError folds a completed run into the command's error result:
// nil on success, an error naming the failing stage otherwise.
func generateRunError(result *pipeline.Result) error {
	if !result.Generate.Success {
		return fmt.Errorf("generation failed with %d critical issue(s)", result.Generate.CriticalCount)
	}
	if !result.Report.Valid {
		return fmt.Errorf("validation failed with %d error(s)", result.Report.ErrorCount)
	}
	return nil
}

// runWarnings collects parse warnings and normalization findings into one
// display list.
func runWarnings(result *pipeline.Result) []string {
	out := make([]string, 0, len(result.Parse.Warnings)+len(result.NormalizeIssues))
	out = append(out, result.Parse.Warnings...)
	for _, issue := range result.NormalizeIssues {
		out = append(out, issue.String())
	}
	return out
}

// generateOutput is the JSON rendering of one generate run.
type generateOutput struct {
	Specification  string             `json:"specification"`
	OpenAPIVersion string             `json:"openapiVersion"`
	API            string             `json:"api"`
	APIVersion     string             `json:"apiVersion"`
	Target         string             `json:"target"`
	ServerName     string             `json:"serverName"`
	Tools          []string           `json:"tools"`
	Files          []generateFileInfo `json:"files"`
	OutputDir      string             `json:"outputDir,omitempty"`
	DryRun         bool               `json:"dryRun,omitempty"`
	Warnings       []string           `json:"warnings,omitempty"`
	Issues         []string           `json:"issues,omitempty"`
	Validation     validationOutput   `json:"validation"`
	Success        bool               `json:"success"`
	TotalTime      string             `json:"totalTime"`
}

// generateFileInfo describes one artifact in JSON output.
type generateFileInfo struct {
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
	Size    int    `json:"size"`
	Written bool   `json:"written"`
}

// validationOutput is the JSON rendering of a validation report.
type validationOutput struct {
	Valid        bool     `json:"valid"`
	ErrorCount   int      `json:"errorCount"`
	WarningCount int      `json:"warningCount"`
	Errors       []string `json:"errors,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
}

// newGenerateOutput flattens a pipeline result into its JSON rendering.
func newGenerateOutput(specPath string, result *pipeline.Result) generateOutput {
	files := make([]generateFileInfo, len(result.Generate.Files))
	for i, file := range result.Generate.Files {
		files[i] = generateFileInfo{
			Name:    file.Name,
			Size:    len(file.Content),
			Written: i < len(result.WrittenPaths),
		}
		if i < len(result.WrittenPaths) {
			files[i].Path = result.WrittenPaths[i]
		}
	}

	issues := make([]string, 0, len(result.Generate.Issues))
	for _, issue := range result.Generate.Issues {
		issues = append(issues, issue.String())
	}

	return generateOutput{
		Specification:  FormatSpecPath(specPath),
		OpenAPIVersion: result.Parse.Version,
		API:            result.Spec.Name,
		APIVersion:     result.Spec.Version,
		Target:         result.Generate.Target,
		ServerName:     result.Generate.ServerName,
		Tools:          result.Generate.ToolNames,
		Files:          files,
		OutputDir:      result.OutputDir,
		DryRun:         result.DryRun,
		Warnings:       runWarnings(result),
		Issues:         issues,
		Validation:     newValidationOutput(result.Report),
		Success:        result.Generate.Success && result.Report.Valid,
		TotalTime:      result.Timing.Total.String(),
	}
}
