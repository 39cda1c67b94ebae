package lama

import (
	"strings"

	"github.com/matzehuels/lamafmt/pkg/layout"
)

// printer turns a syntax tree into a layout.Set. Every construct is visited
// exactly once and in source order, so comments are consumed in order.
type printer struct {
	cfg      layout.Config
	indent   int
	policy   layout.WidthPolicy
	comments []Comment
	next     int
	stats    Stats
	err      error
}

func newPrinter(opts Options, comments []Comment) *printer {
	return &printer{
		cfg:      layout.Config{Width: opts.Width},
		indent:   opts.Indent,
		policy:   opts.Policy,
		comments: comments,
	}
}

// =============================================================================
// Combinator shorthands
// =============================================================================

func (p *printer) text(s string) layout.Set { return p.cfg.Text(s) }

// literal keeps a token that may span lines, such as a string, as one raw
// node so its value survives formatting.
func (p *printer) literal(s string) layout.Set { return p.cfg.Raw(s) }

func (p *printer) empty() layout.Set { return p.cfg.Empty() }

func (p *printer) choose(a, b layout.Set) layout.Set {
	s, err := layout.ChooseWith(p.policy, a, b)
	if err != nil {
		if p.err == nil {
			p.err = err
		}
		s = layout.Choose(a, b)
	}
	p.stats.Choices++
	p.stats.PeakCandidates = max(p.stats.PeakCandidates, s.Len())
	return s
}

func (p *printer) nest(s layout.Set) layout.Set { return layout.ShiftRight(p.indent, s) }

func flat(s layout.Set) layout.Set { return layout.FilterByHeight(s, 1) }

func (p *printer) wrap(open string, s layout.Set, close string) layout.Set {
	return layout.Beside(layout.Beside(p.text(open), s), p.text(close))
}

// lineOrColumn joins items with commas, either on one line or one per line.
func (p *printer) lineOrColumn(items []layout.Set) layout.Set {
	switch len(items) {
	case 0:
		return p.empty()
	case 1:
		return items[0]
	}
	line, column := items[0], items[0]
	for _, it := range items[1:] {
		line = layout.BesideSpace(layout.Beside(line, p.text(",")), it)
		column = layout.Above(layout.Beside(column, p.text(",")), it)
	}
	return p.choose(line, column)
}

// block offers "head body tail" on one line or the body nested between head
// and tail.
func (p *printer) block(head, body layout.Set, tail string) layout.Set {
	return p.choose(
		layout.Above(layout.Above(head, p.nest(body)), p.text(tail)),
		layout.Beside(layout.Beside(head, flat(body)), p.text(tail)),
	)
}

// leading takes the comments that end before line. Call it before visiting
// the construct that starts on line so nested constructs cannot claim them.
func (p *printer) leading(line int) []string {
	var lines []string
	for p.next < len(p.comments) && p.comments[p.next].EndLine < line {
		lines = append(lines, p.comments[p.next].Text)
		p.next++
	}
	return lines
}

// attach places comment lines above s.
func (p *printer) attach(lines []string, s layout.Set) layout.Set {
	if len(lines) == 0 {
		return s
	}
	return layout.Above(p.cfg.Comment(strings.Join(lines, "\n")), s)
}

// trailing appends the comments that were not placed yet.
func (p *printer) trailing(s layout.Set) layout.Set {
	if p.next >= len(p.comments) {
		return s
	}
	lines := make([]string, 0, len(p.comments)-p.next)
	for _, c := range p.comments[p.next:] {
		lines = append(lines, c.Text)
	}
	p.next = len(p.comments)
	return layout.Above(s, p.cfg.Comment(strings.Join(lines, "\n")))
}

// =============================================================================
// Definitions
// =============================================================================

func (p *printer) unit(u *Unit) layout.Set {
	if len(u.Imports) == 0 {
		return p.trailing(p.scope(u.Body))
	}

	imports := p.empty()
	for _, imp := range u.Imports {
		lead := p.leading(imp.Pos.Line)
		line := layout.Beside(layout.BesideSpace(p.text("import"), p.text(imp.Name)), p.text(";"))
		imports = layout.Above(imports, p.attach(lead, line))
	}
	if u.Body.IsEmpty() {
		return p.trailing(imports)
	}
	return p.trailing(layout.AboveBlank(imports, p.scope(u.Body)))
}

func (p *printer) scope(s *Scope) layout.Set {
	if s.IsEmpty() {
		return p.empty()
	}

	var defs layout.Set
	for i, d := range s.Definitions {
		if i == 0 {
			defs = p.definition(d)
		} else {
			defs = layout.Above(defs, p.definition(d))
		}
	}
	switch {
	case s.Expr == nil:
		return defs
	case len(s.Definitions) == 0:
		return p.expr(s.Expr)
	}
	expr := p.expr(s.Expr)
	return p.choose(
		layout.AboveBlank(defs, expr),
		layout.BesideSpace(flat(defs), flat(expr)),
	)
}

func (p *printer) definition(d *Definition) layout.Set {
	lead := p.leading(d.Pos.Line)
	var s layout.Set
	switch {
	case d.Fun != nil:
		s = p.funDef(d.Fun)
	case d.Infix != nil:
		s = p.infixDef(d.Infix)
	default:
		s = p.varDef(d.Var)
	}
	return p.attach(lead, s)
}

func (p *printer) funDef(f *FunDef) layout.Set {
	kw := "fun"
	if f.Public {
		kw = "public fun"
	}
	head := layout.BesideSpace(p.text(kw), p.text(f.Name))
	head = layout.BesideSpace(layout.BesideSpace(head, p.args(f.Args)), p.text("{"))
	return p.block(head, p.scope(f.Body), "}")
}

func (p *printer) infixDef(f *InfixDef) layout.Set {
	kw := f.Kind
	if f.Public {
		kw = "public " + f.Kind
	}
	head := p.text(kw)
	for _, w := range []string{f.Op, f.Level, f.Other} {
		head = layout.BesideSpace(head, p.text(w))
	}
	head = layout.BesideSpace(layout.BesideSpace(head, p.args(f.Args)), p.text("{"))
	return p.block(head, p.scope(f.Body), "}")
}

func (p *printer) args(args []*Pattern) layout.Set {
	items := make([]layout.Set, len(args))
	for i, a := range args {
		items[i] = p.pattern(a)
	}
	return p.wrap("(", p.lineOrColumn(items), ")")
}

// varDef lists plain names first and aligns the "=" of initialized names.
func (p *printer) varDef(v *VarDef) layout.Set {
	kw := "var"
	if v.Public {
		kw = "public"
	}

	var names []string
	var inits []*VarItem
	pad := 0
	for _, it := range v.Items {
		if it.Value == nil {
			names = append(names, it.Name)
			continue
		}
		inits = append(inits, it)
		pad = max(pad, len(it.Name))
	}

	plain := make([]layout.Set, len(names))
	for i, n := range names {
		plain[i] = p.text(n)
	}
	assigned := make([]layout.Set, len(inits))
	for i, it := range inits {
		name := it.Name + strings.Repeat(" ", pad-len(it.Name))
		assigned[i] = layout.BesideSpace(layout.BesideSpace(p.text(name), p.text("=")), p.basic(it.Value))
	}

	var body layout.Set
	switch {
	case len(plain) > 0 && len(assigned) > 0:
		bare, vals := p.lineOrColumn(plain), p.lineOrColumn(assigned)
		body = p.choose(
			layout.BesideSpace(layout.Beside(bare, p.text(",")), vals),
			layout.Above(layout.Beside(bare, p.text(",")), vals),
		)
	case len(plain) > 0:
		body = p.lineOrColumn(plain)
	default:
		body = p.lineOrColumn(assigned)
	}
	return layout.Beside(layout.BesideSpace(p.text(kw), body), p.text(";"))
}

// =============================================================================
// Expressions
// =============================================================================

func (p *printer) expr(e *Expr) layout.Set {
	lead := p.leading(e.Pos.Line)
	if e.Let != nil {
		return p.attach(lead, p.letIn(e.Let))
	}

	head := p.attach(lead, p.basic(e.Head))
	if e.Tail == nil {
		return head
	}
	tail := p.expr(e.Tail)
	stmt := layout.Beside(head, p.text(";"))
	return p.choose(
		layout.Above(stmt, tail),
		layout.BesideSpace(stmt, flat(tail)),
	)
}

func (p *printer) letIn(l *LetIn) layout.Set {
	bind := layout.BesideSpace(layout.BesideSpace(p.pattern(l.Pattern), p.text("=")), p.expr(l.Value))
	head := layout.BesideSpace(layout.BesideSpace(p.text("let"), bind), p.text("in"))
	body := p.expr(l.Body)
	return p.choose(
		layout.BesideSpace(head, flat(body)),
		layout.Above(head, p.nest(body)),
	)
}

// basic offers an operator chain on one line or broken after each operator.
func (p *printer) basic(b *BasicExpr) layout.Set {
	first := p.postfix(b.Head)
	if len(b.Ops) == 0 {
		return first
	}
	line, column := first, first
	for _, op := range b.Ops {
		right := p.postfix(op.Right)
		sym := p.text(string(op.Op))
		line = layout.BesideSpace(layout.BesideSpace(line, sym), right)
		column = layout.Above(layout.BesideSpace(column, sym), right)
	}
	return p.choose(line, column)
}

func (p *printer) postfix(e *PostfixExpr) layout.Set {
	s := p.primary(e.Primary)
	if e.Neg {
		s = layout.Beside(p.text("-"), s)
	}
	if len(e.Suffixes) == 0 {
		return s
	}

	first := p.suffix(e.Suffixes[0])
	line, column := first, first
	for _, sfx := range e.Suffixes[1:] {
		next := p.suffix(sfx)
		line = layout.Beside(line, next)
		column = layout.Above(column, next)
	}
	return p.choose(layout.Beside(s, line), layout.Beside(s, column))
}

func (p *printer) suffix(s *Postfix) layout.Set {
	switch {
	case s.Call != nil:
		return p.call(s.Call)
	case s.Index != nil:
		return p.wrap("[", p.expr(s.Index), "]")
	default:
		name := p.text("." + s.Field.Name)
		if s.Field.Call == nil {
			return name
		}
		return layout.Beside(name, p.call(s.Field.Call))
	}
}

func (p *printer) call(c *Call) layout.Set {
	if len(c.Args) == 0 {
		return p.text("()")
	}
	return p.wrap("(", p.exprs(c.Args), ")")
}

func (p *printer) exprs(es []*Expr) layout.Set {
	items := make([]layout.Set, len(es))
	for i, e := range es {
		items[i] = p.expr(e)
	}
	return p.lineOrColumn(items)
}

func (p *printer) primary(e *Primary) layout.Set {
	switch {
	case e.Number != nil:
		return p.text(*e.Number)
	case e.String != nil:
		return p.literal(*e.String)
	case e.Char != nil:
		return p.text(*e.Char)
	case e.Bool != nil:
		return p.text(*e.Bool)
	case e.Infix != nil:
		return p.text("infix " + *e.Infix)
	case e.Lambda != nil:
		head := layout.BesideSpace(layout.BesideSpace(p.text("fun"), p.args(e.Lambda.Args)), p.text("{"))
		return p.block(head, p.scope(e.Lambda.Body), "}")
	case e.Skip:
		return p.text("skip")
	case e.List != nil:
		if len(e.List.Elems) == 0 {
			return p.text("{}")
		}
		return p.wrap("{", p.exprs(e.List.Elems), "}")
	case e.Array != nil:
		if len(e.Array.Elems) == 0 {
			return p.text("[]")
		}
		return p.wrap("[", p.exprs(e.Array.Elems), "]")
	case e.Sexp != nil:
		tag := p.text(e.Sexp.Tag)
		if len(e.Sexp.Args) == 0 {
			return tag
		}
		return layout.Beside(tag, p.wrap("(", p.exprs(e.Sexp.Args), ")"))
	case e.If != nil:
		return p.ifExpr(e.If)
	case e.While != nil:
		head := layout.BesideSpace(layout.BesideSpace(p.text("while"), p.expr(e.While.Cond)), p.text("do"))
		return p.loop(head, p.scope(e.While.Body))
	case e.DoWhile != nil:
		return p.doWhile(e.DoWhile)
	case e.For != nil:
		cond := p.lineOrColumn([]layout.Set{p.scope(e.For.Init), p.expr(e.For.Cond), p.expr(e.For.Step)})
		head := layout.BesideSpace(layout.BesideSpace(p.text("for"), cond), p.text("do"))
		return p.loop(head, p.scope(e.For.Body))
	case e.Case != nil:
		return p.caseExpr(e.Case)
	case e.Lazy != nil:
		return layout.BesideSpace(p.text("lazy"), p.basic(e.Lazy))
	case e.Eta != nil:
		return layout.BesideSpace(p.text("eta"), p.basic(e.Eta))
	case e.Syntax != nil:
		return layout.BesideSpace(p.text("syntax"), p.syntaxGroup(e.Syntax))
	case e.Paren != nil:
		return p.block(p.text("("), p.scope(e.Paren), ")")
	default:
		return p.text(*e.Ident)
	}
}

// loop lays out "head body od" for while and for loops.
func (p *printer) loop(head, body layout.Set) layout.Set {
	return p.choose(
		layout.BesideSpace(layout.BesideSpace(flat(head), flat(body)), p.text("od")),
		layout.Above(layout.Above(head, p.nest(body)), p.text("od")),
	)
}

func (p *printer) doWhile(d *DoWhile) layout.Set {
	body := p.scope(d.Body)
	tail := layout.BesideSpace(layout.BesideSpace(p.text("while"), p.expr(d.Cond)), p.text("od"))
	return p.choose(
		layout.BesideSpace(layout.BesideSpace(p.text("do"), flat(body)), flat(tail)),
		layout.Above(layout.Above(p.text("do"), p.nest(body)), tail),
	)
}

// branch lays out "kw cond then body" with the then part on the same line or
// on the next one.
func (p *printer) branch(kw string, cond *Expr, body *Scope) layout.Set {
	head := layout.BesideSpace(p.text(kw), p.expr(cond))
	then := layout.BesideSpace(p.text("then"), p.scope(body))
	return p.choose(
		layout.Above(head, then),
		layout.BesideSpace(flat(head), flat(then)),
	)
}

func (p *printer) ifExpr(e *If) layout.Set {
	first := p.branch("if", e.Cond, e.Then)
	rest, ok := p.elsePart(e.Elifs, e.Else)
	if !ok {
		return p.choose(
			layout.Above(first, p.text("fi")),
			layout.BesideSpace(flat(first), p.text("fi")),
		)
	}
	return p.choose(
		layout.Above(layout.Above(first, rest), p.text("fi")),
		layout.BesideSpace(layout.BesideSpace(flat(first), flat(rest)), p.text("fi")),
	)
}

// elsePart folds elif chains the way nested else-parts read: each elif owns
// everything after it.
func (p *printer) elsePart(elifs []*Elif, els *Scope) (layout.Set, bool) {
	if len(elifs) == 0 {
		if els == nil {
			return layout.Set{}, false
		}
		return layout.BesideSpace(p.text("else"), p.scope(els)), true
	}
	first := p.branch("elif", elifs[0].Cond, elifs[0].Then)
	rest, ok := p.elsePart(elifs[1:], els)
	if !ok {
		return first, true
	}
	return p.choose(
		layout.Above(first, rest),
		layout.BesideSpace(flat(first), flat(rest)),
	), true
}

// caseExpr aligns the arrows of all branches. Patterns are rendered first so
// they can be padded to the widest one.
func (p *printer) caseExpr(c *Case) layout.Set {
	head := layout.BesideSpace(layout.BesideSpace(p.text("case"), p.expr(c.Subject)), p.text("of"))

	patterns := make([]*layout.Format, len(c.Branches))
	pad := 0
	for i, b := range c.Branches {
		f, err := layout.PickBest(p.pattern(b.Pattern))
		if err != nil {
			if p.err == nil {
				p.err = err
			}
			return p.empty()
		}
		patterns[i] = f
		pad = max(pad, f.Last)
	}

	s := head
	for i, b := range c.Branches {
		f := patterns[i]
		pat := layout.Beside(layout.NewSet(p.cfg.Width, f), p.text(strings.Repeat(" ", pad-f.Last)))
		var arm layout.Set
		if i == 0 {
			arm = layout.ShiftRight(2, pat)
		} else {
			arm = layout.BesideSpace(p.text("|"), pat)
		}
		arm = p.attach(p.leading(b.Pos.Line), arm)
		s = layout.BesideSpace(layout.BesideSpace(layout.Above(s, arm), p.text("->")), p.scope(b.Body))
	}
	return layout.Above(s, p.text("esac"))
}

// =============================================================================
// Syntax expressions
// =============================================================================

// syntaxGroup offers the alternatives on one line or one per line with the
// "|" ending each line but the last.
func (p *printer) syntaxGroup(g *SyntaxGroup) layout.Set {
	first := p.syntaxSeq(g.Alts[0])
	line, column := first, first
	for _, alt := range g.Alts[1:] {
		next := p.syntaxSeq(alt)
		line = layout.BesideSpace(layout.BesideSpace(line, p.text("|")), next)
		column = layout.Above(layout.BesideSpace(column, p.text("|")), next)
	}
	if len(g.Alts) > 1 {
		line = p.choose(line, column)
	}
	return p.wrap("(", line, ")")
}

func (p *printer) syntaxSeq(s *SyntaxSeq) layout.Set {
	bindings := p.syntaxBinding(s.Bindings[0])
	for _, b := range s.Bindings[1:] {
		bindings = layout.BesideSpace(bindings, p.syntaxBinding(b))
	}
	if s.Action == nil {
		return bindings
	}
	action := p.scope(s.Action)
	return p.choose(
		layout.BesideSpace(flat(bindings), p.wrap("{", flat(action), "}")),
		layout.Above(layout.Above(layout.BesideSpace(bindings, p.text("{")), p.nest(action)), p.text("}")),
	)
}

func (p *printer) syntaxBinding(b *SyntaxBinding) layout.Set {
	s := p.empty()
	if b.Omit {
		s = p.text("-")
	}
	if b.Pattern != nil {
		s = layout.Beside(layout.Beside(s, p.pattern(b.Pattern)), p.text("="))
	}
	item := p.syntaxPrimary(b.Item.Primary)
	if b.Item.Repeat != "" {
		item = layout.Beside(item, p.text(b.Item.Repeat))
	}
	return layout.Beside(s, item)
}

func (p *printer) syntaxPrimary(sp *SyntaxPrimary) layout.Set {
	switch {
	case sp.Rule != nil:
		s := p.text(sp.Rule.Name)
		for _, a := range sp.Rule.Args {
			s = layout.Beside(s, p.wrap("[", p.exprs(a.Exprs), "]"))
		}
		return s
	case sp.Group != nil:
		return p.syntaxGroup(sp.Group)
	default:
		return p.wrap("$(", p.expr(sp.Escape), ")")
	}
}

// =============================================================================
// Patterns
// =============================================================================

func (p *printer) pattern(pt *Pattern) layout.Set {
	head := p.simplePattern(pt.Head)
	if pt.Tail == nil {
		return head
	}
	return layout.BesideSpace(layout.BesideSpace(head, p.text(":")), p.pattern(pt.Tail))
}

func (p *printer) patterns(ps []*Pattern) layout.Set {
	items := make([]layout.Set, len(ps))
	for i, pt := range ps {
		items[i] = p.pattern(pt)
	}
	return p.lineOrColumn(items)
}

func (p *printer) simplePattern(sp *SimplePattern) layout.Set {
	switch {
	case sp.Wildcard:
		return p.text("_")
	case sp.Sexp != nil:
		tag := p.text(sp.Sexp.Tag)
		if len(sp.Sexp.Args) == 0 {
			return tag
		}
		return layout.Beside(tag, p.wrap("(", p.patterns(sp.Sexp.Args), ")"))
	case sp.Array != nil:
		if len(sp.Array.Elems) == 0 {
			return p.text("[]")
		}
		return p.wrap("[", p.patterns(sp.Array.Elems), "]")
	case sp.List != nil:
		if len(sp.List.Elems) == 0 {
			return p.text("{}")
		}
		return p.wrap("{", p.patterns(sp.List.Elems), "}")
	case sp.As != nil:
		name := p.text(sp.As.Name)
		switch {
		case sp.As.Bound != nil:
			return layout.Beside(layout.Beside(name, p.text("@")), p.pattern(sp.As.Bound))
		case sp.As.Shape != nil:
			return layout.Beside(name, p.text("@#"+*sp.As.Shape))
		}
		return name
	case sp.Number != nil:
		return p.text(*sp.Number)
	case sp.String != nil:
		return p.literal(*sp.String)
	case sp.Char != nil:
		return p.text(*sp.Char)
	case sp.Bool != nil:
		return p.text(*sp.Bool)
	case sp.Shape != nil:
		return p.text("#" + *sp.Shape)
	default:
		return p.wrap("(", p.pattern(sp.Paren), ")")
	}
}
