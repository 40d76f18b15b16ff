package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gacabartosz/mcp-universal-adapter/apispec"
	"github.com/gacabartosz/mcp-universal-adapter/normalizer"
	"github.com/gacabartosz/mcp-universal-adapter/parser"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Format  string
	Quiet   bool
	Verbose bool
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the tool preview, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the tool preview, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "enable verbose logging to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose logging to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: mcp-adapt parse [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Parse an OpenAPI 3.x specification and preview the MCP server it would produce.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable tool preview\n")
		Writef(fs.Output(), "  json            JSON summary for programmatic processing\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  mcp-adapt parse petstore.yaml\n")
		Writef(fs.Output(), "  mcp-adapt parse https://example.com/api/openapi.yaml\n")
		Writef(fs.Output(), "  mcp-adapt parse --format json openapi.json | jq '.tools[].name'\n")
		Writef(fs.Output(), "  cat openapi.yaml | mcp-adapt parse -q -\n")
		Writef(fs.Output(), "\nPipelining:\n")
		Writef(fs.Output(), "  - Use '-' as the file path to read from stdin\n")
		Writef(fs.Output(), "  - Use --quiet/-q to suppress diagnostic output for pipelining\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Parse successful\n")
		Writef(fs.Output(), "  1    Parse failed\n")
		Writef(fs.Output(), "  2    Invalid usage\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return usageErrorf("parse command requires exactly one file path, URL, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	// Validate format flag early to fail fast before expensive operations
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	var parseOpts []parser.Option
	var normOpts []normalizer.Option
	if flags.Verbose {
		logger := verboseLogger()
		parseOpts = append(parseOpts, parser.WithLogger(logger))
		normOpts = append(normOpts, normalizer.WithLogger(logger))
	}

	data, isStdin, err := readSpecInput(specPath, os.Stdin)
	if err != nil {
		return err
	}
	if isStdin {
		parseOpts = append(parseOpts, parser.WithBytes(data))
	} else {
		parseOpts = append(parseOpts, parser.WithLocation(specPath))
	}

	parsed, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return fmt.Errorf("parsing specification: %w", err)
	}

	norm, err := normalizer.Normalize(parsed.Extraction, normOpts...)
	if err != nil {
		return fmt.Errorf("normalizing specification: %w", err)
	}
	spec := norm.Spec

	// Handle structured output format
	if flags.Format == FormatJSON {
		return OutputStructured(newParseOutput(specPath, parsed, norm), flags.Format)
	}

	// Text format output: diagnostics to stderr, tool preview to stdout
	if !flags.Quiet {
		OutputSpecHeader(specPath, parsed.Version)
		Writef(os.Stderr, "Source Size: %s\n", parser.FormatBytes(parsed.SourceSize))
		Writef(os.Stderr, "Load Time: %v\n\n", parsed.LoadTime)

		warnings := collectWarnings(parsed, norm)
		if len(warnings) > 0 {
			Writef(os.Stderr, "Warnings (%d):\n", len(warnings))
			for _, warning := range warnings {
				Writef(os.Stderr, "  %s\n", warning)
			}
			Writef(os.Stderr, "\n")
		}
	}

	fmt.Printf("%s\n\n", spec.Summary())
	fmt.Printf("Tools (%d):\n", len(spec.Endpoints))
	for i := range spec.Endpoints {
		ep := &spec.Endpoints[i]
		marker := ""
		if ep.Deprecated {
			marker = "  [deprecated]"
		}
		fmt.Printf("  %-24s %-7s %s%s\n", ep.Name, ep.Method, ep.Path, marker)
	}

	if vars := credentialVarNames(spec.Auth); len(vars) > 0 {
		fmt.Printf("\nCredential Variables:\n")
		for _, name := range vars {
			fmt.Printf("  %s\n", name)
		}
	}

	return nil
}

// collectWarnings merges parse warnings and normalization findings into one
// display list.
func collectWarnings(parsed *parser.ParseResult, norm *normalizer.Result) []string {
	out := make([]string, 0, len(parsed.Warnings)+len(norm.Issues))
	out = append(out, parsed.Warnings...)
	for _, issue := range norm.Issues {
		out = append(out, issue.String())
	}
	return out
}

// credentialVarNames returns the derived credential variable names, nil when
// the API is unauthenticated.
func credentialVarNames(auth *apispec.AuthConfig) []string {
	if auth == nil {
		return nil
	}
	vars := auth.CredentialVars()
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	return names
}

// parseOutput is the JSON rendering of one parse run.
type parseOutput struct {
	Specification  string       `json:"specification"`
	OpenAPIVersion string       `json:"openapiVersion"`
	Format         string       `json:"format"`
	Name           string       `json:"name"`
	Version        string       `json:"version"`
	Description    string       `json:"description,omitempty"`
	BaseURL        string       `json:"baseUrl,omitempty"`
	Auth           string       `json:"auth"`
	CredentialVars []string     `json:"credentialVars,omitempty"`
	ToolCount      int          `json:"toolCount"`
	Tools          []parsedTool `json:"tools"`
	Warnings       []string     `json:"warnings,omitempty"`
}

// parsedTool is one previewed tool in JSON output.
type parsedTool struct {
	Name       string `json:"name"`
	Method     string `json:"method"`
	Path       string `json:"path"`
	Summary    string `json:"summary,omitempty"`
	ParamCount int    `json:"paramCount"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

// newParseOutput flattens a parsed and normalized specification into its JSON
// rendering.
func newParseOutput(specPath string, parsed *parser.ParseResult, norm *normalizer.Result) parseOutput {
	spec := norm.Spec

	auth := string(apispec.AuthNone)
	if spec.Auth != nil {
		auth = string(spec.Auth.Kind)
	}

	tools := make([]parsedTool, len(spec.Endpoints))
	for i := range spec.Endpoints {
		ep := &spec.Endpoints[i]
		tools[i] = parsedTool{
			Name:       ep.Name,
			Method:     string(ep.Method),
			Path:       ep.Path,
			Summary:    ep.Summary,
			ParamCount: len(ep.Parameters),
			Deprecated: ep.Deprecated,
		}
	}

	return parseOutput{
		Specification:  FormatSpecPath(specPath),
		OpenAPIVersion: parsed.Version,
		Format:         string(parsed.SourceFormat),
		Name:           spec.Name,
		Version:        spec.Version,
		Description:    spec.Description,
		BaseURL:        spec.BaseURL,
		Auth:           auth,
		CredentialVars: credentialVarNames(spec.Auth),
		ToolCount:      len(spec.Endpoints),
		Tools:          tools,
		Warnings:       collectWarnings(parsed, norm),
	}
}
