package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	opts := &patternOptions{}
	cmd := &cobra.Command{
		Use:   "find [flags] PATTERN [TEXT]",
		Short: "Print every match with its span and groups",
		Long: `Prints each non-overlapping match of PATTERN in TEXT, one per line, as
"start-end<TAB>quoted text". Capturing groups follow on indented lines.
Offsets count characters, not bytes. Without TEXT, standard input is read.

Examples:
  regnfa find '(\w+)@(\w+)' 'alice@example bob@test'
  regnfa find -i 'go+' < notes.txt`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, opts, args)
		},
	}
	addPatternFlags(cmd.Flags(), opts)
	return cmd
}

func (a *app) runFind(cmd *cobra.Command, opts *patternOptions, args []string) error {
	re, err := a.compile(args[0], opts)
	if err != nil {
		return err
	}

	var text string
	if len(args) == 2 {
		text = args[1]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	out := cmd.OutOrStdout()
	var b strings.Builder
	n := 0
	for m := range re.All(text) {
		n++
		start, end := m.Span()
		fmt.Fprintf(&b, "%d-%d\t%q\n", start, end, m.Text())
		for i, g := range m.Groups() {
			if g.Matched {
				fmt.Fprintf(&b, "\t%d\t%d-%d\t%q\n", i+1, g.Start, g.End, g.Text)
			} else {
				fmt.Fprintf(&b, "\t%d\t<unset>\n", i+1)
			}
		}
	}
	if _, err := io.WriteString(out, b.String()); err != nil {
		return err
	}

	a.logger.Debug("find finished", "matches", n)
	if n == 0 {
		return errNoMatch
	}
	return nil
}
