package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpadapter "github.com/gacabartosz/mcp-universal-adapter"
	"github.com/gacabartosz/mcp-universal-adapter/internal/mcpserver"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	LogLevel string
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
func SetupServeFlags() (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.LogLevel, "log-level", "info", "log level: debug, info, warn, or error")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: mcp-adapt serve [flags]\n\n")
		Writef(fs.Output(), "Run mcp-adapt as an MCP server over stdio.\n\n")
		Writef(fs.Output(), "The server exposes the generation pipeline as MCP tools (parse_spec,\n")
		Writef(fs.Output(), "generate_server, list_targets) so MCP clients can turn OpenAPI documents\n")
		Writef(fs.Output(), "into server projects. stdout carries the MCP protocol; logs go to stderr.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nConfiguration:\n")
		Writef(fs.Output(), "  MCP_ADAPT_MAX_INLINE_SIZE      max inline spec content size in bytes (default 10485760)\n")
		Writef(fs.Output(), "  MCP_ADAPT_MAX_ARTIFACT_BYTES   max artifact content returned inline per file (default 262144)\n")
		Writef(fs.Output(), "  MCP_ADAPT_HTTP_TIMEOUT         timeout for fetching specs from URLs (default 30s)\n")
		Writef(fs.Output(), "  MCP_ADAPT_ALLOW_PRIVATE_IPS    allow fetching specs from private addresses (default false)\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  mcp-adapt serve\n")
		Writef(fs.Output(), "  mcp-adapt serve --log-level debug\n")
		Writef(fs.Output(), "\nMCP client configuration (claude_desktop_config.json or similar):\n")
		Writef(fs.Output(), "  {\"mcpServers\": {\"mcp-adapt\": {\"command\": \"mcp-adapt\", \"args\": [\"serve\"]}}}\n")
	}

	return fs, flags
}

// HandleServe executes the serve command
func HandleServe(args []string) error {
	fs, flags := SetupServeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return usageErrorf("serve command takes no positional arguments")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(flags.LogLevel)); err != nil {
		return usageErrorf("invalid log level '%s'. Valid levels: debug, info, warn, error", flags.LogLevel)
	}

	// stdout carries the MCP protocol; all logging goes to stderr.
	slog.SetDefault(newStderrLogger(level))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting MCP server", "version", mcpadapter.Version(), "transport", "stdio")
	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running MCP server: %w", err)
	}
	slog.Info("MCP server stopped")
	return nil
}
