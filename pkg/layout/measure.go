package layout

import "fmt"

// Measures describes the shape of a candidate rendering.
//
// All widths are in terminal columns and relative to the column at which the
// candidate starts. Height is the number of rendered lines; zero means the
// candidate renders nothing.
type Measures struct {
	Height int `json:"height"`
	First  int `json:"first"`
	Middle int `json:"middle"`
	Last   int `json:"last"`
}

// TotalWidth returns the widest line a candidate with these measures can
// produce.
func (m Measures) TotalWidth() int {
	return max(m.First, m.Middle, m.Last)
}

// String formats the measures as "h=3 first=10 middle=12 last=4".
func (m Measures) String() string {
	return fmt.Sprintf("h=%d first=%d middle=%d last=%d", m.Height, m.First, m.Middle, m.Last)
}

// Dominates reports whether a is no worse than b in every measure.
//
// Dominance is a partial order: two candidates where neither dominates the
// other are incomparable and both survive pruning. Equal measures dominate
// each other.
func Dominates(a, b Measures) bool {
	return a.Height <= b.Height &&
		a.First <= b.First &&
		a.Middle <= b.Middle &&
		a.Last <= b.Last
}

// Compare orders two measures under dominance. It returns -1 when a strictly
// dominates b, 1 when b strictly dominates a, and 0 when they are equal or
// incomparable.
func Compare(a, b Measures) int {
	ab, ba := Dominates(a, b), Dominates(b, a)
	switch {
	case ab && !ba:
		return -1
	case ba && !ab:
		return 1
	default:
		return 0
	}
}

// TotalWidth returns the worst line width of f.
func TotalWidth(f *Format) int {
	return f.Measures.TotalWidth()
}
