package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"

	"github.com/coregx/regnfa"
	"github.com/coregx/regnfa/syntax"
)

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// patternOptions are the pattern flags shared by all commands.
type patternOptions struct {
	ignoreCase  bool
	dotAll      bool
	multiline   bool
	freeSpacing bool
}

func addPatternFlags(fs *pflag.FlagSet, p *patternOptions) {
	fs.BoolVarP(&p.ignoreCase, "ignore-case", "i", false, "case-insensitive matching")
	fs.BoolVarP(&p.dotAll, "dot-all", "s", false, "'.' also matches newline")
	fs.BoolVarP(&p.multiline, "multiline", "m", false, "'^' and '$' match at line boundaries")
	fs.BoolVarP(&p.freeSpacing, "extended", "x", false, "ignore whitespace and #-comments in the pattern")
}

func (p *patternOptions) flags() syntax.Flags {
	var f syntax.Flags
	if p.ignoreCase {
		f |= syntax.FlagIgnoreCase
	}
	if p.dotAll {
		f |= syntax.FlagDotAll
	}
	if p.multiline {
		f |= syntax.FlagMultiline
	}
	if p.freeSpacing {
		f |= syntax.FlagFreeSpacing
	}
	return f
}

// compile compiles pattern with the config defaults plus the command line
// flags.
func (a *app) compile(pattern string, p *patternOptions) (*regnfa.Regex, error) {
	re, err := regnfa.CompileWithConfig(pattern, a.config.compileConfig(p.flags()))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("compiled pattern",
		"pattern", pattern,
		"flags", re.Flags().String(),
		"groups", re.GroupCount(),
		"nfa", re.NFA().String(),
	)
	return re, nil
}

// painter highlights matched text.
type painter struct {
	style   lipgloss.Style
	enabled bool
}

// newPainter resolves mode ("auto", "always", "never") for output w.
func newPainter(w io.Writer, mode string) *painter {
	enabled := false
	switch mode {
	case colorAlways:
		enabled = true
	case colorAuto:
		if f, ok := w.(*os.File); ok {
			enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
	}

	r := lipgloss.NewRenderer(w)
	if enabled {
		r.SetColorProfile(termenv.ANSI)
	}
	return &painter{
		style:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		enabled: enabled,
	}
}

func (p *painter) paint(s string) string {
	if !p.enabled || s == "" {
		return s
	}
	return p.style.Render(s)
}

// highlight paints every non-empty match in line.
func (p *painter) highlight(re *regnfa.Regex, line string) string {
	if !p.enabled {
		return line
	}
	return re.ReplaceAllFunc(line, func(m *regnfa.Match) string {
		return p.paint(m.Text())
	})
}
