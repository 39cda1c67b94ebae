package layout

import (
	"fmt"
	"slices"
)

// WidthPolicy decides the budget of a Set produced by [ChooseWith].
type WidthPolicy int

const (
	// WidthMax keeps the larger budget. This is what [Choose] does.
	WidthMax WidthPolicy = iota
	// WidthMin keeps the smaller budget and drops candidates that exceed it.
	WidthMin
	// WidthEqual requires both budgets to match.
	WidthEqual
)

var policyNames = map[WidthPolicy]string{
	WidthMax:   "max",
	WidthMin:   "min",
	WidthEqual: "equal",
}

func (p WidthPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("WidthPolicy(%d)", int(p))
}

// ParseWidthPolicy parses "max", "min" or "equal". The empty string means
// [WidthMax].
func ParseWidthPolicy(s string) (WidthPolicy, error) {
	if s == "" {
		return WidthMax, nil
	}
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return WidthMax, fmt.Errorf("unknown width policy %q (must be one of: max, min, equal)", s)
}

// ChooseWith is [Choose] under an explicit width policy.
func ChooseWith(p WidthPolicy, a, b Set) (Set, error) {
	switch p {
	case WidthMax:
		return Choose(a, b), nil
	case WidthMin:
		width := min(a.width, b.width)
		merged := make([]*Format, 0, len(a.candidates)+len(b.candidates))
		for _, f := range slices.Concat(a.candidates, b.candidates) {
			if TotalWidth(f) <= width {
				merged = append(merged, f)
			}
		}
		return Set{width: width, candidates: Factorize(merged)}, nil
	case WidthEqual:
		if a.width != b.width {
			return Set{}, fmt.Errorf("%w: %d and %d", ErrWidthMismatch, a.width, b.width)
		}
		return Choose(a, b), nil
	default:
		return Set{}, fmt.Errorf("unknown width policy %d", int(p))
	}
}

// MinHeight returns the height of the best candidate of s.
func (s Set) MinHeight() (int, error) {
	best, err := PickBest(s)
	if err != nil {
		return 0, err
	}
	return best.Height, nil
}

// MaxWidth returns the largest total width among the candidates of s.
func (s Set) MaxWidth() (int, error) {
	if len(s.candidates) == 0 {
		return 0, ErrEmptyCandidateSet
	}
	w := 0
	for _, f := range s.candidates {
		w = max(w, TotalWidth(f))
	}
	return w, nil
}
