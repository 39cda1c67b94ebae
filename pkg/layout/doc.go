// Package layout implements the width-budgeted layout algebra behind lamafmt.
//
// # Overview
//
// A [Format] is one concrete candidate rendering of some content. It records
// four shape measures (height, first line width, middle width, last line
// width) and a tree of layout nodes that a single stateless renderer turns
// into text. Formats are immutable: every combinator returns a new value and
// shares its operands.
//
// A [Set] pairs a page-width budget with a Pareto-optimal list of candidate
// Formats. Composition operators ([Above], [Beside], [Fill], ...) take the
// cross product of two Sets, discard candidates that exceed the budget and
// prune the survivors to an antichain under the dominance order ([Dominates]).
// [Choose] offers alternatives, [FilterByHeight] forces single-line variants
// and [Render] picks the candidate with the fewest lines.
//
// # Building Layouts
//
// Leaf Sets come from a [Config], which carries the width budget explicitly:
//
//	cfg := layout.Config{Width: 80}
//	call := layout.Beside(cfg.Text("f(x,"), cfg.Text("y)"))
//	stacked := layout.Above(cfg.Text("f(x,"), layout.ShiftRight(2, cfg.Text("y)")))
//	out, err := layout.Render(layout.Choose(call, stacked))
//
// # Measures
//
// For a candidate of height h:
//   - First and Last are the widths of the first and last line
//   - Middle bounds the lines strictly between them (it equals First for h <= 2)
//   - [TotalWidth] is the worst line width and is tested against the budget
//
// # Width Budget
//
// Every candidate produced by a composition operator fits the budget of its
// left operand. The one exception is a leaf built from a literal wider than
// the budget: there is no narrower alternative to offer, so it is kept.
//
// # Raw Text
//
// [Raw] holds text whose newlines belong to it, such as a string literal that
// spans lines. The renderer writes it verbatim and never inserts a margin
// after its newlines. [Format.TrimmedText] strips trailing whitespace from
// every other line.
//
// # Concurrency
//
// All operations are pure. Formats and Sets can be shared across goroutines
// without locking.
package layout
