package layout

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func mustRender(t *testing.T, s Set) string {
	t.Helper()
	out, err := Render(s)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return out
}

func TestRenderLiteral(t *testing.T) {
	cfg := Config{Width: 80}
	if got := mustRender(t, cfg.Text("x")); got != "x" {
		t.Errorf("Render = %q, want %q", got, "x")
	}
}

func TestRenderBeside(t *testing.T) {
	cfg := Config{Width: 80}
	if got := mustRender(t, Beside(cfg.Text("a"), cfg.Text("b"))); got != "ab" {
		t.Errorf("Render = %q, want %q", got, "ab")
	}
}

func TestRenderAbove(t *testing.T) {
	cfg := Config{Width: 80}
	if got := mustRender(t, Above(cfg.Text("line1"), cfg.Text("line2"))); got != "line1\nline2" {
		t.Errorf("Render = %q, want %q", got, "line1\nline2")
	}
}

func TestChooseRespectsWidth(t *testing.T) {
	cfg := Config{Width: 4}
	flat := Beside(cfg.Text("f(x,"), cfg.Text("y)"))
	stacked := Above(cfg.Text("f(x,"), ShiftRight(2, cfg.Text("y)")))

	if !flat.IsEmpty() {
		t.Errorf("flat layout should exceed width 4, got %v", flat)
	}
	if got := mustRender(t, Choose(flat, stacked)); got != "f(x,\n  y)" {
		t.Errorf("Render = %q, want %q", got, "f(x,\n  y)")
	}
}

func TestChoosePrefersFewerLines(t *testing.T) {
	cfg := Config{Width: 80}
	flat := Beside(cfg.Text("f(x,"), cfg.Text("y)"))
	stacked := Above(cfg.Text("f(x,"), ShiftRight(2, cfg.Text("y)")))
	if got := mustRender(t, Choose(stacked, flat)); got != "f(x,y)" {
		t.Errorf("Render = %q, want %q", got, "f(x,y)")
	}
}

func TestFilterByHeightEmpty(t *testing.T) {
	cfg := Config{Width: 80}
	s := FilterByHeight(cfg.Text("a\nb"), 1)
	if !s.IsEmpty() {
		t.Fatalf("FilterByHeight should drop all candidates, got %d", s.Len())
	}
	if _, err := Render(s); !errors.Is(err, ErrEmptyCandidateSet) {
		t.Errorf("Render error = %v, want ErrEmptyCandidateSet", err)
	}
	if _, err := PickBest(s); !errors.Is(err, ErrEmptyCandidateSet) {
		t.Errorf("PickBest error = %v, want ErrEmptyCandidateSet", err)
	}
	if _, err := s.MaxWidth(); !errors.Is(err, ErrEmptyCandidateSet) {
		t.Errorf("MaxWidth error = %v, want ErrEmptyCandidateSet", err)
	}
	if _, err := s.MinHeight(); !errors.Is(err, ErrEmptyCandidateSet) {
		t.Errorf("MinHeight error = %v, want ErrEmptyCandidateSet", err)
	}
}

func TestEmptySetPropagates(t *testing.T) {
	cfg := Config{Width: 80}
	none := FilterByHeight(cfg.Text("a\nb"), 1)
	if s := Beside(cfg.Text("x"), none); !s.IsEmpty() {
		t.Errorf("Beside with empty set = %v, want empty", s)
	}
	if s := Above(none, cfg.Text("x")); !s.IsEmpty() {
		t.Errorf("Above with empty set = %v, want empty", s)
	}
}

func TestZeroSetRenderFails(t *testing.T) {
	if _, err := Render(Set{}); !errors.Is(err, ErrEmptyCandidateSet) {
		t.Errorf("Render(Set{}) error = %v", err)
	}
}

func TestOversizedLiteralKept(t *testing.T) {
	cfg := Config{Width: 3}
	s := cfg.Text("abcdef")
	if s.Len() != 1 {
		t.Fatalf("oversized literal should be kept, got %d candidates", s.Len())
	}
	if got := mustRender(t, s); got != "abcdef" {
		t.Errorf("Render = %q", got)
	}
}

func TestIdentityLaws(t *testing.T) {
	cfg := Config{Width: 20}
	s := Choose(
		Beside(cfg.Text("alpha"), cfg.Text("beta")),
		Above(cfg.Text("alpha"), cfg.Text("beta")),
	)
	want := mustRender(t, s)

	cases := map[string]Set{
		"beside left":  Beside(cfg.Empty(), s),
		"beside right": Beside(s, cfg.Empty()),
		"above left":   Above(cfg.Empty(), s),
		"above right":  Above(s, cfg.Empty()),
		"fill left":    Fill(cfg.Empty(), s, 3),
		"fill right":   Fill(s, cfg.Empty(), 3),
		"choose self":  Choose(s, s),
	}
	for name, c := range cases {
		if got := mustRender(t, c); got != want {
			t.Errorf("%s: Render = %q, want %q", name, got, want)
		}
		if c.Len() != s.Len() {
			t.Errorf("%s: Len = %d, want %d", name, c.Len(), s.Len())
		}
	}
}

func TestBesideSpaceAndAboveBlank(t *testing.T) {
	cfg := Config{Width: 80}
	if got := mustRender(t, BesideSpace(cfg.Text("a"), cfg.Text("b"))); got != "a b" {
		t.Errorf("BesideSpace = %q", got)
	}
	if got := mustRender(t, AboveBlank(cfg.Text("a"), cfg.Text("b"))); got != "a\n\nb" {
		t.Errorf("AboveBlank = %q", got)
	}
}

func TestFillSet(t *testing.T) {
	cfg := Config{Width: 80}
	args := Above(cfg.Text("x,"), cfg.Text("y)"))
	if got := mustRender(t, Fill(cfg.Text("call("), args, 2)); got != "call(x,\n  y)" {
		t.Errorf("Fill = %q", got)
	}
}

func TestShiftRight(t *testing.T) {
	cfg := Config{Width: 6}
	s := Choose(cfg.Text("abcd"), cfg.Text("a\nb"))
	if s.Len() != 2 {
		t.Fatalf("Choose kept %d candidates, want 2", s.Len())
	}
	shifted := ShiftRight(3, s)
	if shifted.Len() != 1 {
		t.Fatalf("ShiftRight kept %d candidates, want 1", shifted.Len())
	}
	if got := mustRender(t, shifted); got != "   a\n   b" {
		t.Errorf("ShiftRight = %q", got)
	}
}

func TestShiftRightNonPositive(t *testing.T) {
	cfg := Config{Width: 6}
	s := cfg.Text("abcdef")
	for _, shift := range []int{0, -2} {
		got := ShiftRight(shift, s)
		if got.Len() != 1 || got.Candidates()[0].First != 6 {
			t.Errorf("ShiftRight(%d) = %v, want s unchanged", shift, got)
		}
	}
}

func TestRawSetKeepsLiteral(t *testing.T) {
	cfg := Config{Width: 20}
	s := Beside(cfg.Text("var s = "), Beside(cfg.Raw("\"a  \nb\""), cfg.Text(";")))
	got := mustRender(t, ShiftRight(3, Above(cfg.Text("{"), s)))
	if want := "   {\n   var s = \"a  \nb\";"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestChooseWidth(t *testing.T) {
	a := Config{Width: 10}.Text("a")
	b := Config{Width: 40}.Text("b")
	if got := Choose(a, b).Width(); got != 40 {
		t.Errorf("Choose width = %d, want 40", got)
	}
}

func TestChooseWith(t *testing.T) {
	narrow := Config{Width: 4}
	wide := Config{Width: 10}
	a := narrow.Text("ab\ncd")
	b := Beside(wide.Text("abcd"), wide.Text("ef"))

	got, err := ChooseWith(WidthMax, a, b)
	if err != nil || got.Width() != 10 || got.Len() != 2 {
		t.Errorf("WidthMax = %v, %v", got, err)
	}

	got, err = ChooseWith(WidthMin, a, b)
	if err != nil {
		t.Fatalf("WidthMin error: %v", err)
	}
	if got.Width() != 4 || got.Len() != 1 {
		t.Errorf("WidthMin = %v, want width 4 with one candidate", got)
	}

	if _, err := ChooseWith(WidthEqual, a, b); !errors.Is(err, ErrWidthMismatch) {
		t.Errorf("WidthEqual error = %v, want ErrWidthMismatch", err)
	}
	if _, err := ChooseWith(WidthEqual, a, a); err != nil {
		t.Errorf("WidthEqual with equal widths: %v", err)
	}
	if _, err := ChooseWith(WidthPolicy(42), a, b); err == nil {
		t.Error("unknown policy should fail")
	}
}

func TestParseWidthPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    WidthPolicy
		wantErr bool
	}{
		{"", WidthMax, false},
		{"max", WidthMax, false},
		{"min", WidthMin, false},
		{"equal", WidthEqual, false},
		{"MAX", WidthMax, true},
		{"widest", WidthMax, true},
	}
	for _, tt := range tests {
		got, err := ParseWidthPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWidthPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseWidthPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPickBestTieBreak(t *testing.T) {
	a := Line("aaaa")
	b := Line("bb")
	// Built directly so the list is not pruned.
	c := AddBeside(AddAbove(Line("c"), Line("")), Line("c"))
	s := Set{width: 80, candidates: []*Format{c, a, b}}
	best, err := PickBest(s)
	if err != nil {
		t.Fatal(err)
	}
	if best != a {
		t.Errorf("PickBest = %q, want the first one-line candidate", best.Text())
	}
}

func TestChooseAll(t *testing.T) {
	cfg := Config{Width: 80}
	s := ChooseAll(cfg.Text("aaa"), cfg.Text("bb"), cfg.Text("c"))
	if s.Len() != 1 {
		t.Errorf("ChooseAll Len = %d, want 1", s.Len())
	}
	if got := mustRender(t, s); got != "c" {
		t.Errorf("ChooseAll = %q", got)
	}
	if !ChooseAll().IsEmpty() {
		t.Error("ChooseAll() should be empty")
	}
}

func TestNewSet(t *testing.T) {
	s := NewSet(3, Line("abcd"), Line("ab"), Line("abc"))
	if s.Len() != 1 {
		t.Fatalf("NewSet Len = %d, want 1", s.Len())
	}
	if got := s.Candidates()[0].Text(); got != "ab" {
		t.Errorf("NewSet kept %q", got)
	}
}

func TestCandidatesIsCopy(t *testing.T) {
	s := Config{Width: 80}.Text("x")
	c := s.Candidates()
	c[0] = Line("mutated")
	if got := mustRender(t, s); got != "x" {
		t.Errorf("Set modified through Candidates(): %q", got)
	}
}

// randomSet composes sets with every operator.
func randomSet(r *rand.Rand, cfg Config, depth int) Set {
	if depth == 0 {
		return cfg.Text(strings.Repeat("w", 1+r.IntN(6)))
	}
	a, b := randomSet(r, cfg, depth-1), randomSet(r, cfg, depth-1)
	switch r.IntN(6) {
	case 0:
		return Above(a, b)
	case 1:
		return Beside(a, b)
	case 2:
		return BesideSpace(a, b)
	case 3:
		return Fill(a, b, r.IntN(4))
	case 4:
		return ShiftRight(r.IntN(3), a)
	default:
		return Choose(Beside(a, b), Above(a, b))
	}
}

func TestCompositionInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	cfg := Config{Width: 12}
	for i := 0; i < 300; i++ {
		s := randomSet(r, cfg, 1+r.IntN(4))
		cs := s.Candidates()
		for x := range cs {
			if TotalWidth(cs[x]) > cfg.Width {
				t.Fatalf("case %d: candidate %q exceeds width %d", i, cs[x].Text(), cfg.Width)
			}
			for y := range cs {
				if x != y && Dominates(cs[x].Measures, cs[y].Measures) {
					t.Fatalf("case %d: %v dominates %v", i, cs[x].Measures, cs[y].Measures)
				}
			}
		}
	}
}

func TestCommentIgnoresWidth(t *testing.T) {
	cfg := Config{Width: 10}
	s := Above(cfg.Comment("-- a comment that is far too long"), cfg.Text("x := 1"))
	if s.IsEmpty() {
		t.Fatal("comment pushed the layout over the budget")
	}
	want := "-- a comment that is far too long\nx := 1"
	if got := mustRender(t, s); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
