package main

import (
	"errors"
	"fmt"
	"os"

	mcpadapter "github.com/gacabartosz/mcp-universal-adapter"
	"github.com/gacabartosz/mcp-universal-adapter/cmd/mcp-adapt/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("mcp-adapt v%s\n", mcpadapter.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		exitOnError(commands.HandleGenerate(args))
	case "parse":
		exitOnError(commands.HandleParse(args))
	case "validate":
		exitOnError(commands.HandleValidate(args))
	case "targets":
		exitOnError(commands.HandleTargets(args))
	case "serve":
		exitOnError(commands.HandleServe(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(2)
	}
}

// exitOnError prints the error and exits: 2 for bad invocations, 1 for failed
// runs. A nil error returns normally.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var usageErr *commands.UsageError
	if errors.As(err, &usageErr) {
		os.Exit(2)
	}
	os.Exit(1)
}

// commandNames lists every command suggestCommand may propose.
var commandNames = []string{"generate", "parse", "validate", "targets", "serve", "version", "help"}

// suggestCommand returns the known command closest to input within an edit
// distance of 2, or "" when nothing is close enough to be a likely typo.
func suggestCommand(input string) string {
	const maxDistance = 2
	best := ""
	bestDist := maxDistance + 1
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`mcp-adapt - Generate MCP servers from OpenAPI specifications

Usage:
  mcp-adapt <command> [options]

Commands:
  generate    Generate an MCP server project from an OpenAPI 3.x specification
  parse       Parse a specification and preview the MCP server it would produce
  validate    Validate a previously generated artifact set
  targets     List the supported target languages and their artifact sets
  serve       Run mcp-adapt as an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  mcp-adapt generate -o ./petstore-server petstore.yaml
  mcp-adapt generate -t go -o ./server https://example.com/api/openapi.yaml
  mcp-adapt parse --format json openapi.yaml
  mcp-adapt validate --dir ./petstore-server --spec petstore.yaml
  mcp-adapt serve --log-level debug

Run 'mcp-adapt <command> --help' for more information on a command.`)
}
