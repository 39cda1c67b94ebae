package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Kind identifies the layout node a Format is built from.
type Kind int

const (
	// KindEmpty renders nothing. It is the identity of every combinator.
	KindEmpty Kind = iota
	// KindLine is a single line of literal text.
	KindLine
	// KindAbove stacks the left child over the right child.
	KindAbove
	// KindBeside continues the right child after the left child's last line.
	KindBeside
	// KindFill is like KindBeside, but the right child's continuation lines
	// hang at a fixed column.
	KindFill
	// KindIndent shifts its child to the right.
	KindIndent
	// KindRaw is literal text spanning several lines. Its line breaks belong
	// to the text, so nothing is inserted after them.
	KindRaw
)

var kindNames = [...]string{
	KindEmpty:  "empty",
	KindLine:   "line",
	KindAbove:  "above",
	KindBeside: "beside",
	KindFill:   "fill",
	KindIndent: "indent",
	KindRaw:    "raw",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Format is one candidate rendering: its measures plus the layout node that
// produces the text.
//
// Formats are immutable. Combinators never modify their operands; they return
// new nodes that reference them, so subtrees are shared freely.
type Format struct {
	Measures

	kind  Kind
	text  string // KindLine, KindRaw
	shift int    // KindFill, KindIndent
	left  *Format
	right *Format // nil for KindIndent, whose child is left
}

// Kind returns the node kind of f.
func (f *Format) Kind() Kind { return f.kind }

// Literal returns the text of a KindLine or KindRaw node and "" otherwise.
func (f *Format) Literal() string { return f.text }

// Shift returns the column offset of KindFill and KindIndent nodes.
func (f *Format) Shift() int { return f.shift }

// Children returns the child nodes of f in rendering order.
func (f *Format) Children() []*Format {
	switch f.kind {
	case KindAbove, KindBeside, KindFill:
		return []*Format{f.left, f.right}
	case KindIndent:
		return []*Format{f.left}
	default:
		return nil
	}
}

// Text renders f starting at column zero.
func (f *Format) Text() string {
	return render(f, 0, "")
}

// TrimmedText renders f like [Format.Text] but drops the whitespace at the end
// of every line. Text inside a KindRaw node is kept as is.
func (f *Format) TrimmedText() string {
	w := &writer{trim: true}
	w.format(f, 0)
	return w.b.String()
}

var empty = &Format{kind: KindEmpty}

// Empty returns the format with no lines.
func Empty() *Format { return empty }

// Line returns a one-line format for text. Text containing newlines is
// split with [FromString].
func Line(text string) *Format {
	if strings.Contains(text, "\n") {
		return FromString(text)
	}
	w := runewidth.StringWidth(text)
	return &Format{
		Measures: Measures{Height: 1, First: w, Middle: w, Last: w},
		kind:     KindLine,
		text:     text,
	}
}

// Verbatim returns a one-line format whose text is not measured. It occupies
// a row but counts as zero columns wide, so it never pushes a candidate over
// the width budget.
func Verbatim(text string) *Format {
	return &Format{
		Measures: Measures{Height: 1},
		kind:     KindLine,
		text:     text,
	}
}

// Raw returns a literal whose newlines are part of its text, such as a string
// literal spanning lines. Lines after the first are written exactly as given:
// no margin is inserted after its newlines and [Format.TrimmedText] leaves
// them alone. They start at column zero whatever the ambient indent, so their
// widths are measured from there. Text without a newline is a plain [Line].
func Raw(text string) *Format {
	lines := strings.Split(text, "\n")
	h := len(lines)
	if h == 1 {
		return Line(text)
	}
	first := runewidth.StringWidth(lines[0])
	middle := first
	if h > 2 {
		middle = 0
		for _, l := range lines[1 : h-1] {
			middle = max(middle, runewidth.StringWidth(l))
		}
	}
	return &Format{
		Measures: Measures{Height: h, First: first, Middle: middle, Last: runewidth.StringWidth(lines[h-1])},
		kind:     KindRaw,
		text:     text,
	}
}

// FromString splits s on newlines and stacks the lines.
func FromString(s string) *Format {
	f := Empty()
	for _, l := range strings.Split(s, "\n") {
		f = AddAbove(f, Line(l))
	}
	return f
}

// Indent shifts every line of f right by shift columns. Line breaks inside f
// keep the increased margin. A shift below one returns f unchanged.
func Indent(shift int, f *Format) *Format {
	if shift <= 0 || f.Height == 0 {
		return f
	}
	return &Format{
		Measures: Measures{
			Height: f.Height,
			First:  shift + f.First,
			Middle: shift + f.Middle,
			Last:   shift + f.Last,
		},
		kind:  KindIndent,
		shift: shift,
		left:  f,
	}
}

// AddAbove stacks a over b.
//
// A one-line operand has no independent middle, and a two-line operand's
// last line becomes interior once stacked, so the middle width depends on
// both heights.
func AddAbove(a, b *Format) *Format {
	if a.Height == 0 {
		return b
	}
	if b.Height == 0 {
		return a
	}

	var middle int
	switch {
	case a.Height == 1 && b.Height == 1:
		middle = a.First
	case a.Height == 1 && b.Height == 2:
		middle = b.First
	case a.Height == 1:
		middle = max(b.First, b.Middle)
	case a.Height == 2 && b.Height == 1:
		middle = a.Last
	case b.Height == 1:
		middle = max(a.Middle, a.Last)
	default:
		middle = max(a.Middle, a.Last, b.First, b.Middle)
	}

	return &Format{
		Measures: Measures{
			Height: a.Height + b.Height,
			First:  a.First,
			Middle: middle,
			Last:   b.Last,
		},
		kind:  KindAbove,
		left:  a,
		right: b,
	}
}

// AddBeside places b immediately after the last line of a. Lines of b after
// its first are aligned under the end of a.
func AddBeside(a, b *Format) *Format {
	if a.Height == 0 {
		return b
	}
	if b.Height == 0 {
		return a
	}

	var middle int
	switch {
	case a.Height == 1 && b.Height <= 2:
		middle = a.First + b.First
	case a.Height == 1:
		middle = a.First + b.Middle
	case a.Height == 2 && b.Height == 1:
		middle = a.First
	case b.Height == 1:
		middle = a.Middle
	default:
		middle = max(a.Middle, a.Last+b.First, a.Last+b.Middle)
	}

	first := a.First
	if a.Height == 1 {
		first = a.First + b.First
	}

	return &Format{
		Measures: Measures{
			Height: a.Height + b.Height - 1,
			First:  first,
			Middle: middle,
			Last:   a.Last + b.Last,
		},
		kind:  KindBeside,
		left:  a,
		right: b,
	}
}

// AddFill places b after the last line of a like [AddBeside], but hangs the
// continuation lines of b at column shift instead of under the end of a.
func AddFill(a, b *Format, shift int) *Format {
	if a.Height == 0 {
		return b
	}
	if b.Height == 0 {
		return a
	}

	var middle int
	switch {
	case a.Height == 1 && b.Height <= 2:
		middle = a.First + b.First
	case a.Height == 1:
		middle = shift + b.Middle
	case a.Height == 2 && b.Height > 2:
		middle = max(a.Last+b.First, shift+b.Middle)
	case a.Height == 2 && b.Height == 1:
		middle = a.First
	case b.Height == 1:
		middle = a.Middle
	case a.Height > 2 && b.Height == 2:
		middle = max(a.Middle, a.Last+b.First)
	default:
		middle = max(a.Middle, a.Last+b.First, shift+b.Middle)
	}

	first := a.First
	if a.Height == 1 {
		first = a.First + b.First
	}
	last := b.Last + shift
	if b.Height == 1 {
		last = b.Last + a.Last
	}

	return &Format{
		Measures: Measures{
			Height: a.Height + b.Height - 1,
			First:  first,
			Middle: middle,
			Last:   last,
		},
		kind:  KindFill,
		shift: shift,
		left:  a,
		right: b,
	}
}
