package cmd

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/coregx/regnfa"
)

type grepOptions struct {
	pattern      patternOptions
	lineNumbers  bool
	count        bool
	onlyMatching bool
	recursive    bool
	color        string
}

func newGrepCmd(a *app) *cobra.Command {
	opts := &grepOptions{}
	cmd := &cobra.Command{
		Use:   "grep [flags] PATTERN [FILE...]",
		Short: "Print lines that contain a match",
		Long: `Prints every line of the input files that contains a match of PATTERN.
Without FILE, or when FILE is -, standard input is read.

The exit status is 0 if a line matched, 1 if none did, and 2 on error.

Examples:
  regnfa grep 'err(or)?' app.log
  regnfa grep -i -n todo main.go
  regnfa grep -r -c '\bfunc\b' ./src
  regnfa grep -o '\d+' < numbers.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGrep(cmd, opts, args)
		},
	}

	addPatternFlags(cmd.Flags(), &opts.pattern)
	cmd.Flags().BoolVarP(&opts.lineNumbers, "line-number", "n", false, "prefix each line with its line number")
	cmd.Flags().BoolVarP(&opts.count, "count", "c", false, "print only the number of matching lines")
	cmd.Flags().BoolVarP(&opts.onlyMatching, "only-matching", "o", false, "print only the matched parts of a line")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "search directories recursively")
	cmd.Flags().StringVar(&opts.color, "color", "", "highlight matches: auto, always or never")
	return cmd
}

func (a *app) runGrep(cmd *cobra.Command, opts *grepOptions, args []string) error {
	re, err := a.compile(args[0], &opts.pattern)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("line-number") {
		opts.lineNumbers = a.config.LineNumbers
	}
	if opts.color == "" {
		opts.color = a.config.Color
	}

	paths := args[1:]
	if len(paths) == 0 {
		paths = []string{stdinName}
	}
	if opts.recursive {
		if paths, err = expandDirs(paths); err != nil {
			return err
		}
	}

	g := &grepper{
		re:        re,
		opts:      opts,
		out:       cmd.OutOrStdout(),
		paint:     newPainter(cmd.OutOrStdout(), opts.color),
		withNames: len(paths) > 1 || opts.recursive,
	}

	matched, failed := false, false
	for _, path := range paths {
		data, release, err := readInput(path, cmd.InOrStdin())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "regnfa: %v\n", err)
			failed = true
			continue
		}
		n := g.grep(displayName(path), data)
		if err := release(); err != nil {
			a.logger.Warn("cannot release input", "path", path, "error", err)
		}
		a.logger.Debug("searched", "path", path, "bytes", len(data), "matching_lines", n)
		matched = matched || n > 0
	}

	switch {
	case failed:
		return fmt.Errorf("some inputs could not be read")
	case !matched:
		return errNoMatch
	}
	return nil
}

func displayName(path string) string {
	if path == stdinName {
		return "(standard input)"
	}
	return path
}

// expandDirs replaces directories by the regular files below them.
func expandDirs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == stdinName {
			out = append(out, p)
			continue
		}
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// grepper writes the matching lines of one input at a time.
type grepper struct {
	re        *regnfa.Regex
	opts      *grepOptions
	out       io.Writer
	paint     *painter
	withNames bool
}

// grep searches data line by line and returns the number of matching lines.
func (g *grepper) grep(name string, data []byte) int {
	matching := 0
	lineNo := 0
	for len(data) > 0 {
		lineNo++
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}

		text := string(line)
		if !g.re.IsMatch(text) {
			continue
		}
		matching++
		if g.opts.count {
			continue
		}

		prefix := g.prefix(name, lineNo)
		if g.opts.onlyMatching {
			for m := range g.re.All(text) {
				if m.Len() > 0 {
					fmt.Fprintf(g.out, "%s%s\n", prefix, g.paint.paint(m.Text()))
				}
			}
			continue
		}
		fmt.Fprintf(g.out, "%s%s\n", prefix, g.paint.highlight(g.re, text))
	}

	if g.opts.count {
		prefix := ""
		if g.withNames {
			prefix = name + ":"
		}
		fmt.Fprintf(g.out, "%s%d\n", prefix, matching)
	}
	return matching
}

func (g *grepper) prefix(name string, lineNo int) string {
	var b []byte
	if g.withNames {
		b = append(b, name...)
		b = append(b, ':')
	}
	if g.opts.lineNumbers {
		b = strconv.AppendInt(b, int64(lineNo), 10)
		b = append(b, ':')
	}
	return string(b)
}
