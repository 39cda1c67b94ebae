package lama

import (
	"testing"
)

func TestParseDefinitions(t *testing.T) {
	src := `import Std;
public fun f (x, _) { x }
infixl ++ at + (a, b) { a }
var a, b = 1;
f(a, b)`

	doc, err := Parse("defs.lama", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	u := doc.Unit
	if len(u.Imports) != 1 || u.Imports[0].Name != "Std" {
		t.Fatalf("imports = %+v", u.Imports)
	}
	if got := len(u.Body.Definitions); got != 3 {
		t.Fatalf("expected 3 definitions, got %d", got)
	}

	fn := u.Body.Definitions[0].Fun
	if fn == nil || !fn.Public || fn.Name != "f" || len(fn.Args) != 2 {
		t.Fatalf("unexpected function definition: %+v", fn)
	}
	if !fn.Args[1].Head.Wildcard {
		t.Errorf("second argument should be a wildcard")
	}

	inf := u.Body.Definitions[1].Infix
	if inf == nil || inf.Kind != "infixl" || inf.Op != "++" || inf.Level != "at" || inf.Other != "+" {
		t.Fatalf("unexpected infix definition: %+v", inf)
	}

	v := u.Body.Definitions[2].Var
	if v == nil || v.Public || len(v.Items) != 2 || v.Items[0].Value != nil || v.Items[1].Value == nil {
		t.Fatalf("unexpected variable definition: %+v", v)
	}

	if u.Body.Expr == nil || u.Body.Expr.Head == nil {
		t.Fatal("expected trailing expression")
	}
	if got := u.Body.Expr.Pos.Line; got != 5 {
		t.Errorf("expression line = %d, want 5", got)
	}
}

func TestParseCaseStopsAtBar(t *testing.T) {
	doc, err := Parse("", "case x of A -> a || b | B -> c esac")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	c := doc.Unit.Body.Expr.Head.Head.Primary.Case
	if c == nil {
		t.Fatal("expected case expression")
	}
	if len(c.Branches) != 2 {
		t.Fatalf("expected 2 branches, got %d", len(c.Branches))
	}
	ops := c.Branches[0].Body.Expr.Head.Ops
	if len(ops) != 1 || ops[0].Op != "||" {
		t.Errorf("first branch operators = %+v, want [||]", ops)
	}
}

func TestParsePatterns(t *testing.T) {
	doc, err := Parse("", "case x of Cons(h, t@Nil) -> h | y@#array -> y | {a, b} : rest -> a | -1 -> 0 | #str -> 1 esac")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	branches := doc.Unit.Body.Expr.Head.Head.Primary.Case.Branches
	if len(branches) != 5 {
		t.Fatalf("expected 5 branches, got %d", len(branches))
	}

	sexp := branches[0].Pattern.Head.Sexp
	if sexp == nil || sexp.Tag != "Cons" || len(sexp.Args) != 2 {
		t.Fatalf("unexpected sexp pattern: %+v", sexp)
	}
	if as := sexp.Args[1].Head.As; as == nil || as.Bound == nil {
		t.Errorf("expected as-pattern t@Nil, got %+v", as)
	}
	if as := branches[1].Pattern.Head.As; as == nil || as.Shape == nil || *as.Shape != "array" {
		t.Errorf("expected shape as-pattern, got %+v", as)
	}
	if p := branches[2].Pattern; p.Head.List == nil || p.Tail == nil {
		t.Errorf("expected cons of list pattern, got %+v", p)
	}
	if n := branches[3].Pattern.Head.Number; n == nil || *n != "-1" {
		t.Errorf("expected number pattern -1, got %v", n)
	}
	if s := branches[4].Pattern.Head.Shape; s == nil || *s != "str" {
		t.Errorf("expected shape pattern, got %v", s)
	}
}

func TestParseKeywordPrefixIdent(t *testing.T) {
	doc, err := Parse("", "index := done + iffy")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	head := doc.Unit.Body.Expr.Head
	if got := *head.Head.Primary.Ident; got != "index" {
		t.Errorf("first identifier = %q", got)
	}
	if len(head.Ops) != 2 {
		t.Errorf("expected 2 operators, got %d", len(head.Ops))
	}
}

func TestScanComments(t *testing.T) {
	src := "-- one\nx (* two\nlines *) y\n-- three"
	comments, err := scanComments("", src)
	if err != nil {
		t.Fatal(err)
	}
	want := []Comment{
		{Text: "-- one", StartLine: 1, EndLine: 1},
		{Text: "(* two\nlines *)", StartLine: 2, EndLine: 3},
		{Text: "-- three", StartLine: 4, EndLine: 4},
	}
	if len(comments) != len(want) {
		t.Fatalf("got %d comments, want %d", len(comments), len(want))
	}
	for i := range want {
		if comments[i] != want[i] {
			t.Errorf("comment %d = %+v, want %+v", i, comments[i], want[i])
		}
	}
}

func TestDedentBlockComment(t *testing.T) {
	tests := []struct {
		text   string
		column int
		want   string
	}{
		{"(* one line *)", 4, "(* one line *)"},
		{"(* a\n     b *)", 4, "(* a\n b *)"},
		{"(* a\n  b\n\n    c *)", 8, "(* a\nb\n\n  c *)"},
		{"(* a\n\tb *)", 1, "(* a\nb *)"},
		{"(* a\nb *)", 6, "(* a\nb *)"},
	}
	for _, tt := range tests {
		if got := dedent(tt.text, tt.column); got != tt.want {
			t.Errorf("dedent(%q, %d) = %q, want %q", tt.text, tt.column, got, tt.want)
		}
	}
}

func TestScanCommentsDedentsBlock(t *testing.T) {
	comments, err := scanComments("", "fun f (x) {\n   (* block\n      comment *)\n   x\n}")
	if err != nil {
		t.Fatal(err)
	}
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if want := "(* block\n   comment *)"; comments[0].Text != want {
		t.Errorf("Text = %q, want %q", comments[0].Text, want)
	}
}

func TestParseSyntax(t *testing.T) {
	doc, err := Parse("", "syntax (-x=a[1, 2]* $(y) {x} | (b | c)+)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	g := doc.Unit.Body.Expr.Head.Head.Primary.Syntax
	if g == nil || len(g.Alts) != 2 {
		t.Fatalf("expected syntax with 2 alternatives, got %+v", g)
	}

	first := g.Alts[0]
	if len(first.Bindings) != 2 || first.Action == nil {
		t.Fatalf("first alternative = %+v", first)
	}
	b := first.Bindings[0]
	if !b.Omit || b.Pattern == nil || b.Pattern.Head.As == nil || b.Pattern.Head.As.Name != "x" {
		t.Errorf("first binding = %+v", b)
	}
	if r := b.Item.Primary.Rule; r == nil || r.Name != "a" || len(r.Args) != 1 || len(r.Args[0].Exprs) != 2 {
		t.Errorf("rule = %+v", r)
	}
	if b.Item.Repeat != "*" {
		t.Errorf("Repeat = %q, want *", b.Item.Repeat)
	}
	if first.Bindings[1].Item.Primary.Escape == nil {
		t.Error("second binding should be an escaped expression")
	}

	second := g.Alts[1].Bindings[0].Item
	if second.Primary.Group == nil || len(second.Primary.Group.Alts) != 2 || second.Repeat != "+" {
		t.Errorf("second alternative = %+v", second)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"fun (",
		"if x then y",
		"case x of esac",
		"var ;",
		"x := ",
		"syntax ()",
	}
	for _, src := range tests {
		if _, err := Parse("bad.lama", src); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
		}
	}
}
