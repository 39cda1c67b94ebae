package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultWidth is the page width used when no width is configured.
const DefaultWidth = 126

// ErrEmptyCandidateSet is returned when a Set with no candidates is selected
// from or rendered. It means every alternative offered for some construct
// exceeded the width budget or was filtered away.
var ErrEmptyCandidateSet = errors.New("empty candidate set")

// ErrWidthMismatch is returned by [ChooseWith] under [WidthEqual] when the two
// Sets were built against different budgets.
var ErrWidthMismatch = errors.New("width budgets differ")

// Config carries the page-width budget into leaf constructors. A leaf Set
// captures the width at construction time.
type Config struct {
	Width int
}

// DefaultConfig returns a Config with [DefaultWidth].
func DefaultConfig() Config {
	return Config{Width: DefaultWidth}
}

// Set is a width budget paired with a Pareto-optimal list of candidates.
//
// The zero value has no candidates and width zero; rendering it fails with
// [ErrEmptyCandidateSet]. Sets are values: operators return new Sets and never
// modify their operands.
type Set struct {
	width      int
	candidates []*Format
}

// NewSet builds a Set from arbitrary candidates. Candidates wider than width
// are dropped and the rest are pruned with [Factorize].
func NewSet(width int, candidates ...*Format) Set {
	fits := make([]*Format, 0, len(candidates))
	for _, f := range candidates {
		if TotalWidth(f) <= width {
			fits = append(fits, f)
		}
	}
	return Set{width: width, candidates: Factorize(fits)}
}

// Width returns the budget the Set was produced under.
func (s Set) Width() int { return s.width }

// Len returns the number of surviving candidates.
func (s Set) Len() int { return len(s.candidates) }

// IsEmpty reports whether the Set has no candidates.
func (s Set) IsEmpty() bool { return len(s.candidates) == 0 }

// Candidates returns a copy of the candidate list.
func (s Set) Candidates() []*Format { return slices.Clone(s.candidates) }

func (s Set) String() string {
	return fmt.Sprintf("Set(width=%d, candidates=%d)", s.width, len(s.candidates))
}

// =============================================================================
// Leaf Constructors
// =============================================================================

// Empty returns the identity Set: a single candidate with no lines.
func (c Config) Empty() Set {
	return Set{width: c.Width, candidates: []*Format{Empty()}}
}

// Text returns a Set holding the literal text s, split on newlines.
//
// The literal is kept even when it is wider than the budget.
func (c Config) Text(s string) Set {
	return Set{width: c.Width, candidates: []*Format{FromString(s)}}
}

// Raw returns a Set holding s as one [Raw] node. Its newlines are kept as
// they are and no margin is inserted after them.
func (c Config) Raw(s string) Set {
	return Set{width: c.Width, candidates: []*Format{Raw(s)}}
}

// Comment returns a Set holding s as unmeasured lines, split on newlines.
// Comments are kept verbatim and do not compete for the width budget.
func (c Config) Comment(s string) Set {
	f := Empty()
	for _, l := range strings.Split(s, "\n") {
		f = AddAbove(f, Verbatim(l))
	}
	return Set{width: c.Width, candidates: []*Format{f}}
}

// BlankLine returns a Set holding one empty line.
func (c Config) BlankLine() Set {
	return Set{width: c.Width, candidates: []*Format{Line("")}}
}

// =============================================================================
// Composition
// =============================================================================

// Cross applies op to every pair of candidates, left candidates in the outer
// loop, drops results wider than width and prunes the rest.
func Cross(op func(a, b *Format) *Format, width int, a, b []*Format) []*Format {
	out := make([]*Format, 0, len(a)*len(b))
	for _, fa := range a {
		for _, fb := range b {
			if f := op(fa, fb); TotalWidth(f) <= width {
				out = append(out, f)
			}
		}
	}
	return Factorize(out)
}

// Above stacks every candidate of a over every candidate of b.
func Above(a, b Set) Set {
	return Set{width: a.width, candidates: Cross(AddAbove, a.width, a.candidates, b.candidates)}
}

// AboveBlank stacks a over b with an empty line between them.
func AboveBlank(a, b Set) Set {
	return Above(Above(a, Config{Width: a.width}.BlankLine()), b)
}

// Beside places every candidate of b after every candidate of a.
func Beside(a, b Set) Set {
	return Set{width: a.width, candidates: Cross(AddBeside, a.width, a.candidates, b.candidates)}
}

// BesideSpace places b after a with a single space between them.
func BesideSpace(a, b Set) Set {
	return Beside(Beside(a, Config{Width: a.width}.Text(" ")), b)
}

// Fill places b after a with the continuation lines of b hanging at column
// shift.
func Fill(a, b Set, shift int) Set {
	op := func(fa, fb *Format) *Format { return AddFill(fa, fb, shift) }
	return Set{width: a.width, candidates: Cross(op, a.width, a.candidates, b.candidates)}
}

// ShiftRight indents every candidate of s by shift columns, dropping those
// that would no longer fit the budget. A shift below one returns s unchanged.
func ShiftRight(shift int, s Set) Set {
	if shift <= 0 {
		return s
	}
	out := make([]*Format, 0, len(s.candidates))
	for _, f := range s.candidates {
		if TotalWidth(f) <= s.width-shift {
			out = append(out, Indent(shift, f))
		}
	}
	return Set{width: s.width, candidates: out}
}

// FilterByHeight keeps the candidates of s with at most n lines. The result
// may be empty; composing with an empty Set yields an empty Set.
func FilterByHeight(s Set, n int) Set {
	out := make([]*Format, 0, len(s.candidates))
	for _, f := range s.candidates {
		if f.Height <= n {
			out = append(out, f)
		}
	}
	return Set{width: s.width, candidates: out}
}

// Choose offers the candidates of a and b as alternatives. The result is the
// pruned union of both lists; its budget is the larger of the two.
//
// Candidates validated only against the looser budget survive the merge. Use
// [ChooseWith] to pick a different policy.
func Choose(a, b Set) Set {
	return Set{
		width:      max(a.width, b.width),
		candidates: Factorize(slices.Concat(a.candidates, b.candidates)),
	}
}

// ChooseAll folds [Choose] over sets. With no arguments it returns the zero
// Set.
func ChooseAll(sets ...Set) Set {
	if len(sets) == 0 {
		return Set{}
	}
	out := sets[0]
	for _, s := range sets[1:] {
		out = Choose(out, s)
	}
	return out
}

// =============================================================================
// Selection
// =============================================================================

// PickBest returns the candidate with the fewest lines. Ties go to the
// candidate that comes first.
func PickBest(s Set) (*Format, error) {
	if len(s.candidates) == 0 {
		return nil, ErrEmptyCandidateSet
	}
	best := s.candidates[0]
	for _, f := range s.candidates[1:] {
		if f.Height < best.Height {
			best = f
		}
	}
	return best, nil
}

// Render materializes the best candidate of s.
func Render(s Set) (string, error) {
	best, err := PickBest(s)
	if err != nil {
		return "", err
	}
	return best.Text(), nil
}
