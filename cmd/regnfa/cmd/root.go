// Package cmd implements the regnfa command line tool.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Exit statuses, as in grep(1).
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

// errNoMatch makes the process exit with status 1 without printing anything.
var errNoMatch = errors.New("no match")

// app holds state shared by all subcommands of one invocation.
type app struct {
	cfgFile string
	verbose bool

	config *Config
	logger *slog.Logger
}

// NewRootCmd builds the command tree. Each call returns independent commands
// and flag state.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	root := &cobra.Command{
		Use:   "regnfa",
		Short: "Regular expression search built on a breadth-first NFA",
		Long: `regnfa searches text with regular expressions compiled to a Thompson NFA
and simulated breadth-first, so matching never backtracks.

Pattern flags can be given inline ((?imsx) at the start of the pattern),
as command line flags, or as defaults in a config file.

Commands:
  grep     - print lines that contain a match
  find     - print every match with its groups
  replace  - substitute matches in a file or stdin`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output on stderr")

	root.AddCommand(newGrepCmd(a))
	root.AddCommand(newFindCmd(a))
	root.AddCommand(newReplaceCmd(a))
	return root
}

// setup configures logging and loads the config file.
func (a *app) setup(stderr io.Writer) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a.config = DefaultConfig()
	if a.cfgFile == "" {
		return nil
	}
	cfg, err := LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger.Debug("loaded config", "path", a.cfgFile, "flags", cfg.Flags, "color", cfg.Color)
	return nil
}

// Execute runs the root command with os.Args and returns the exit status.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return exitMatch
	case errors.Is(err, errNoMatch):
		return exitNoMatch
	default:
		fmt.Fprintf(stderr, "regnfa: %v\n", err)
		return exitError
	}
}
