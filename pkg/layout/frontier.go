package layout

// Factorize prunes candidates to an antichain under [Dominates].
//
// A candidate dominated by another one in the list is dropped. Of several
// candidates with equal measures the first encountered survives; they are
// interchangeable for layout purposes. The input slice is not modified and the
// survivors keep their relative order.
func Factorize(candidates []*Format) []*Format {
	alive := make([]bool, len(candidates))
	for i := range alive {
		alive[i] = true
	}

	for i, a := range candidates {
		if !alive[i] {
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			if !alive[j] {
				continue
			}
			b := candidates[j]
			if Dominates(a.Measures, b.Measures) {
				alive[j] = false
			} else if Dominates(b.Measures, a.Measures) {
				alive[i] = false
				break
			}
		}
	}

	out := make([]*Format, 0, len(candidates))
	for i, f := range candidates {
		if alive[i] {
			out = append(out, f)
		}
	}
	return out
}
