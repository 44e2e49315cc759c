package regnfa

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
	"gotest.tools/v3/assert"

	"github.com/coregx/regnfa/syntax"
)

type fixture struct {
	Name    string         `yaml:"name"`
	Pattern string         `yaml:"pattern"`
	Flags   string         `yaml:"flags"`
	Text    string         `yaml:"text"`
	Matches []fixtureMatch `yaml:"matches"`
	Error   string         `yaml:"error"`
}

type fixtureMatch struct {
	Span   [2]int    `yaml:"span"`
	Groups []*string `yaml:"groups"`
}

func loadFixtures(t *testing.T, name string) []fixture {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	assert.NilError(t, err)

	var fixtures []fixture
	assert.NilError(t, yaml.Unmarshal(data, &fixtures))
	assert.Assert(t, len(fixtures) > 0, "no fixtures in %s", name)
	return fixtures
}

// toFixture converts a match into the fixture form. Groups are only listed
// when the pattern has any.
func toFixture(m *Match) fixtureMatch {
	start, end := m.Span()
	out := fixtureMatch{Span: [2]int{start, end}}
	for _, g := range m.Groups() {
		if !g.Matched {
			out.Groups = append(out.Groups, nil)
			continue
		}
		text := g.Text
		out.Groups = append(out.Groups, &text)
	}
	return out
}

func TestFixtures(t *testing.T) {
	for _, fx := range loadFixtures(t, "matches.yaml") {
		t.Run(fx.Name, func(t *testing.T) {
			flags, ok := syntax.ParseFlags(fx.Flags)
			assert.Assert(t, ok, "bad flags %q", fx.Flags)

			re, err := CompileFlags(fx.Pattern, flags)
			if fx.Error != "" {
				var se *syntax.Error
				assert.Assert(t, errors.As(err, &se), "want %q, got %v", fx.Error, err)
				assert.Equal(t, se.Code.String(), fx.Error)
				return
			}
			assert.NilError(t, err)

			var got []fixtureMatch
			for m := range re.All(fx.Text) {
				got = append(got, toFixture(m))
			}
			if diff := cmp.Diff(fx.Matches, got); diff != "" {
				t.Errorf("%q over %q mismatch (-want +got):\n%s", fx.Pattern, fx.Text, diff)
			}
		})
	}
}
