package inspect

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/lamafmt/pkg/layout"
)

// frontier returns a two-candidate set: "abc\nd" and "abcd".
func frontier() layout.Set {
	cfg := layout.Config{Width: 10}
	return layout.Choose(cfg.Text("abcd"), layout.Above(cfg.Text("abc"), cfg.Text("d")))
}

func TestRows(t *testing.T) {
	s := frontier()
	want := [][]string{
		{"0", "1", "4", "4", "4", "4"},
		{"1", "2", "3", "3", "1", "3"},
	}
	if diff := cmp.Diff(want, Rows(s)); diff != "" {
		t.Errorf("Rows mismatch (-want +got):\n%s", diff)
	}
	if got := Best(s); got != 0 {
		t.Errorf("Best = %d, want 0", got)
	}
	if got := Best(layout.NewSet(10)); got != -1 {
		t.Errorf("Best(empty) = %d, want -1", got)
	}
}

func TestTable(t *testing.T) {
	out := Table(frontier(), lipgloss.NewStyle().Bold(true))
	for _, h := range Headers {
		if !strings.Contains(out, h) {
			t.Errorf("table missing header %q:\n%s", h, out)
		}
	}
	if lines := strings.Count(out, "\n") + 1; lines < 6 {
		t.Errorf("table has %d lines, want at least 6:\n%s", lines, out)
	}
}

func TestToDOT(t *testing.T) {
	cfg := layout.Config{Width: 20}
	s := layout.Above(cfg.Text("if x then"), layout.ShiftRight(3, cfg.Text("y")))
	f, err := layout.PickBest(s)
	if err != nil {
		t.Fatal(err)
	}

	dot := ToDOT(f)
	for _, want := range []string{
		"digraph Layout {",
		`[label="if x then", shape=box`,
		`[label="y", shape=box`,
		`label="above\n`,
		`label="indent 3\n`,
		"n0 -> n1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("DOT should be closed")
	}
}

func TestToDOTRawLiteral(t *testing.T) {
	f := layout.AddBeside(layout.Line("s = "), layout.Raw("\"a\nb\""))
	dot := ToDOT(f)
	if want := `[label="\"a\nb\"", shape=box`; !strings.Contains(dot, want) {
		t.Errorf("DOT missing %q:\n%s", want, dot)
	}
}

func TestToDOTNil(t *testing.T) {
	if got := ToDOT(nil); !strings.Contains(got, "digraph Layout {") {
		t.Errorf("ToDOT(nil) = %q", got)
	}
}

func TestRenderSVG(t *testing.T) {
	f := layout.Line("x := 1")
	svg, err := RenderSVG(context.Background(), ToDOT(f))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}
