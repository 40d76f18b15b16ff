package commands

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/gacabartosz/mcp-universal-adapter/generator"
)

// TargetsFlags contains flags for the targets command
type TargetsFlags struct {
	Format string
}

// SetupTargetsFlags creates and configures a FlagSet for the targets command.
// Returns the FlagSet and a TargetsFlags struct with bound flag variables.
func SetupTargetsFlags() (*flag.FlagSet, *TargetsFlags) {
	fs := flag.NewFlagSet("targets", flag.ContinueOnError)
	flags := &TargetsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: mcp-adapt targets [flags]\n\n")
		Writef(fs.Output(), "List the supported target languages and their artifact sets.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  mcp-adapt targets\n")
		Writef(fs.Output(), "  mcp-adapt targets --format json | jq '.targets[].target'\n")
	}

	return fs, flags
}

// HandleTargets executes the targets command
func HandleTargets(args []string) error {
	fs, flags := SetupTargetsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return usageErrorf("%v", err)
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return usageErrorf("targets command takes no positional arguments")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	names := generator.Targets()
	infos := make([]targetInfo, 0, len(names))
	for _, name := range names {
		backend, err := generator.Get(name)
		if err != nil {
			return fmt.Errorf("looking up target %s: %w", name, err)
		}
		infos = append(infos, targetInfo{Target: name, Artifacts: backend.Artifacts()})
	}

	if flags.Format == FormatJSON {
		return OutputStructured(targetsOutput{Targets: infos}, flags.Format)
	}

	fmt.Printf("Supported Targets (%d):\n\n", len(infos))
	for _, info := range infos {
		fmt.Printf("%s\n", info.Target)
		fmt.Printf("  Artifacts: %s\n\n", strings.Join(info.Artifacts, ", "))
	}
	return nil
}

// targetsOutput is the JSON rendering of the targets command.
type targetsOutput struct {
	Targets []targetInfo `json:"targets"`
}

// targetInfo describes one registered target in JSON output.
type targetInfo struct {
	Target    string   `json:"target"`
	Artifacts []string `json:"artifacts"`
}
