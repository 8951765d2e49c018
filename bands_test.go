// ◄◄◄ bands_test.go ►►►

package earesize

import "math"
import "testing"

// homeCells inverts an overlap map: for each fine cell, the coarse cell it
// begins in.
func homeCells(lastOverlap []int, coarse, fine int) []int {
	home := make([]int, fine)
	k := 0
	for kk := range home {
		for k < coarse-1 && kk > lastOverlap[k] {
			k++
		}
		home[kk] = k
	}
	return home
}

// With no enlargement the fine-cell integrals reduce to the full spline
// integrals, which are the rows of the solver's matrix.
func TestBandsIdentity(t *testing.T) {
	const n = 15
	last := lastOverlapIndexes(n, n)
	b := makeBandCoefficients(n, n, last, BoundaryNatural)

	check := func(name string, got, want float64, kk int) {
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("%s[%d] is %v, expected %v", name, kk, got, want)
		}
	}

	check("center", b.center[0], 5., 0)
	check("right", b.right[0], 1., 0)
	for kk := 1; kk < n-1; kk++ {
		check("left", b.left[kk], 1., kk)
		check("center", b.center[kk], 4., kk)
		check("right", b.right[kk], 1., kk)
	}
	check("left", b.left[n-1], 1., n-1)
	check("center", b.center[n-1], 5., n-1)
	for k, v := range b.farright {
		check("farright", v, 0., k)
	}
}

// The basis functions of each coarse cell have constant derivative sum, so
// the band values of any one fine cell must total six times its width.
func TestBandsPartitionOfUnity(t *testing.T) {
	cases := []struct{ coarse, fine int }{
		{15, 16},
		{15, 30},
		{15, 37},
		{16, 40},
		{20, 57},
	}
	for _, c := range cases {
		last := lastOverlapIndexes(c.coarse, c.fine)
		b := makeBandCoefficients(c.coarse, c.fine, last, BoundaryNatural)
		home := homeCells(last, c.coarse, c.fine)
		want := 6. * float64(c.coarse) / float64(c.fine)

		for kk := 0; kk < c.fine; kk++ {
			sum := b.left[kk] + b.center[kk] + b.right[kk]
			k := home[kk]
			if k <= c.coarse-3 && kk == last[k] {
				sum += b.farright[k]
			}
			if math.Abs(sum-want) > 1e-9 {
				t.Errorf("%d->%d: fine cell %d sums to %v, expected %v",
					c.coarse, c.fine, kk, sum, want)
			}
		}
	}
}

// The end condition must only influence fine cells near the first and last
// coarse cells; the interior band values are shared.
func TestBandsEndConditionLocality(t *testing.T) {
	const coarse, fine = 15, 37
	last := lastOverlapIndexes(coarse, fine)
	nat := makeBandCoefficients(coarse, fine, last, BoundaryNatural)
	nak := makeBandCoefficients(coarse, fine, last, BoundaryNotAKnot)

	if nat.center[0] == nak.center[0] {
		t.Error("first-cell center band did not react to the end condition")
	}

	for kk := last[0] + 1; kk <= last[coarse-3]; kk++ {
		if nat.left[kk] != nak.left[kk] ||
			nat.center[kk] != nak.center[kk] ||
			nat.right[kk] != nak.right[kk] {
			t.Errorf("interior fine cell %d differs between end conditions", kk)
		}
	}
}
