package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type replaceOptions struct {
	pattern patternOptions
	count   int
	literal bool
}

func newReplaceCmd(a *app) *cobra.Command {
	opts := &replaceOptions{}
	cmd := &cobra.Command{
		Use:   "replace [flags] PATTERN REPLACEMENT [FILE]",
		Short: "Replace matches in a file or standard input",
		Long: `Writes FILE (or standard input) to standard output with matches of PATTERN
replaced by REPLACEMENT. In REPLACEMENT, $0..$9 and ${n} refer to groups
and $$ is a literal dollar sign, unless --literal is given.

Examples:
  regnfa replace '(\w+)@(\w+)' '$2 at $1' contacts.txt
  regnfa replace --count 1 'foo' 'bar' < input.txt`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplace(cmd, opts, args)
		},
	}
	addPatternFlags(cmd.Flags(), &opts.pattern)
	cmd.Flags().IntVar(&opts.count, "count", -1, "replace at most this many matches (negative: all)")
	cmd.Flags().BoolVar(&opts.literal, "literal", false, "insert REPLACEMENT without $ expansion")
	return cmd
}

func (a *app) runReplace(cmd *cobra.Command, opts *replaceOptions, args []string) error {
	re, err := a.compile(args[0], &opts.pattern)
	if err != nil {
		return err
	}

	path := stdinName
	if len(args) == 3 {
		path = args[2]
	}
	data, release, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	text := string(data)
	if err := release(); err != nil {
		a.logger.Warn("cannot release input", "path", path, "error", err)
	}

	repl := args[1]
	if opts.literal {
		repl = escapeDollars(repl)
	}
	result, n := re.ReplaceN(text, repl, opts.count)
	a.logger.Debug("replaced", "path", path, "replacements", n)

	if _, err := io.WriteString(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// escapeDollars doubles every '$' so the template expands to s itself.
func escapeDollars(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '$' {
			out = append(out, '$')
		}
		out = append(out, s[i])
	}
	return string(out)
}
