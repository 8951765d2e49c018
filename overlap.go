// ◄◄◄ overlap.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// lastOverlapIndexes computes, for each of the first coarse-1 coarse cells,
// the index of the last fine cell that overlaps it. The entry for the final
// coarse cell is implicit: every remaining fine cell belongs to it.
//
// The convention is that coarse cell k spans the global coordinate [k, k+1),
// so fine cell kk spans [kk*coarse/fine, (kk+1)*coarse/fine). The last fine
// cell overlapping coarse cell k is then the largest kk such that
// kk*coarse < (k+1)*fine. That characterization needs only integer
// multiplication, and because the kk candidates are swept in order, each
// product is formed incrementally: whenever the next candidate fails the
// inequality, the current kk is the answer for this k.
//
// Floating point must not be used here: whether a fine cell ends exactly on
// a coarse boundary decides which antiderivative formulas apply to it.
// The running products are kept in int64 so that coarse*fine cannot wrap
// for any realistic image dimensions.
//
// Requires fine >= coarse. When fine == coarse the map is the identity.
func lastOverlapIndexes(coarse, fine int) []int {
	last := make([]int, coarse-1)

	if fine == coarse {
		for k := range last {
			last[k] = k
		}
		return last
	}

	o := int64(coarse)
	oo := int64(fine)

	kPlusOneTimesFine := oo

	kk := 0
	kkPlusOneTimesCoarse := o

	for k := range last {
		// Because coarse < fine, the first overlapping fine cell cannot also
		// be the last one, so the first increment needs no check.
		kk++
		kkPlusOneTimesCoarse += o

		for kkPlusOneTimesCoarse < kPlusOneTimesFine {
			kk++
			kkPlusOneTimesCoarse += o
		}

		last[k] = kk
		kPlusOneTimesFine += oo
	}
	return last
}
