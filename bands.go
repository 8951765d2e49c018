// ◄◄◄ bands.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// This file computes, for one axis, the tensor components of the linear map
// from spline control coefficients to fine-cell integrals: for every fine
// cell, the definite integral over that cell of each quadratic B-spline
// basis function whose support reaches it.

// A BoundaryCondition selects the spline basis used at the first and last
// coarse cells of each axis. The interior basis is the same for both.
type BoundaryCondition int

const (
	// BoundaryNatural forces the reconstruction's second derivative to zero
	// at the image edges. This is the default.
	BoundaryNatural BoundaryCondition = iota

	// BoundaryNotAKnot uses the not-a-knot end condition instead.
	BoundaryNotAKnot
)

// Antiderivatives of the pieces of the centered (interior) cardinal
// B-spline, with integration constants chosen so each is zero at the left
// boundary of the cell of interest. Structured a la Horner.
//
// The basis functions are scaled so that one full coarse cell integrates
// the three overlapping splines to 1 + 4 + 1; the control-coefficient
// solver inverts the matching banded system, so no normalization is needed
// here.

func leftBspline(x float64) float64 { return x * x * x }

func centerBspline(x float64) float64 { return x * (3. - x*(-3.+x+x)) }

func rightBspline(x float64) float64 { return x * (3. + x*(-3.+x)) }

// splineForms is one boundary-condition formula set: the antiderivatives of
// the (truncated) boundary splines, and their full integrals over the first
// coarse cell.
type splineForms struct {
	leftBdry       func(float64) float64
	leftBdryLeft   func(float64) float64
	rightBdry      func(float64) float64
	rightBdryRight func(float64) float64

	leftBdryIntegral     float64
	leftBdryLeftIntegral float64
}

var naturalForms = splineForms{
	leftBdry:       func(x float64) float64 { return x * (6. - x*x) },
	leftBdryLeft:   func(x float64) float64 { return x * x * x },
	rightBdry:      func(x float64) float64 { return x * (3. + x*(3.-x)) },
	rightBdryRight: func(x float64) float64 { return x * (3. + x*(-3.+x)) },

	leftBdryIntegral:     5.,
	leftBdryLeftIntegral: 1.,
}

var notAKnotForms = splineForms{
	leftBdry:       func(x float64) float64 { return x * (12. + x*(-6.+x)) },
	leftBdryLeft:   func(x float64) float64 { return x * (-9. + x*(9.-(x+x))) },
	rightBdry:      func(x float64) float64 { return x * (3. + x*(3.+x)) },
	rightBdryRight: func(x float64) float64 { return x * (3. + x*(-3.-(x+x))) },

	leftBdryIntegral:     7.,
	leftBdryLeftIntegral: -2.,
}

func (bc BoundaryCondition) forms() *splineForms {
	if bc == BoundaryNotAKnot {
		return &notAKnotForms
	}
	return &naturalForms
}

// bandCoefficients is one axis's set of integral vectors. For fine cell kk
// whose home coarse cell is k, the reconstruction integrates to
//
//	left[kk]*a[k-1] + center[kk]*a[k] + right[kk]*a[k+1]
//
// plus, only when kk is the last fine cell overlapping k, a spill term
// farright[k]*a[k+2] for the one cell whose footprint can reach into the
// second-next coarse cell.
//
// The first fine/coarse + 1 entries of left and the trailing entries of
// right receive no value (no basis function from that side reaches them).
type bandCoefficients struct {
	left     []float64
	center   []float64
	right    []float64
	farright []float64
}

// makeBandCoefficients computes the band vectors for one axis with coarse
// input cells, fine output cells, and the given overlap map.
//
// Every value is a difference of two antiderivative evaluations: the
// running position x advances by the fine cell width h through the current
// coarse cell's local coordinates, and each band entry subtracts the
// previous evaluation at the shared boundary. Crossing into the next coarse
// cell swaps each band onto the next piece of its spline (the contribution
// from the right neighbor uses the left piece of that neighbor's spline,
// and so on), which handles both the straddling and the exactly-aligned
// case: when a fine cell ends exactly on a coarse boundary the next piece
// evaluates to zero there.
func makeBandCoefficients(coarse, fine int, lastOverlap []int, bc BoundaryCondition) *bandCoefficients {
	f := bc.forms()

	b := new(bandCoefficients)
	b.left = make([]float64, fine)
	b.center = make([]float64, fine)
	b.right = make([]float64, fine)
	b.farright = make([]float64, coarse-1)

	oneOverFine := 1. / float64(fine)
	h := float64(coarse) * oneOverFine

	var x float64
	var prevL, prevC, prevR float64

	// Fine cells fully inside the first coarse cell. The center contribution
	// comes from the boundary spline itself, the right contribution from the
	// left piece of the second cell's spline.
	kk := 0
	for ; kk < lastOverlap[0]; kk++ {
		x += h

		ic := f.leftBdry(x)
		b.center[kk] = ic - prevC
		prevC = ic

		ir := f.leftBdryLeft(x)
		b.right[kk] = ir - prevR
		prevR = ir
	}

	// The last fine cell overlapping the first coarse cell. Its right
	// endpoint, in the second coarse cell's local coordinate, is computed
	// with integer products so that it is exact even for large axes.
	x = float64(int64(kk+1)*int64(coarse)-int64(fine)) * oneOverFine

	prevL = rightBspline(x)
	b.center[kk] = prevL + (f.leftBdryIntegral - prevC)

	prevC = centerBspline(x)
	b.right[kk] = prevC + (f.leftBdryLeftIntegral - prevR)

	prevR = leftBspline(x)
	b.farright[0] = prevR

	// Interior coarse cells.
	for k := 1; k < coarse-1; k++ {
		lastKK := lastOverlap[k]

		for kk++; kk < lastKK; kk++ {
			x += h

			il := rightBspline(x)
			b.left[kk] = il - prevL
			prevL = il

			ic := centerBspline(x)
			b.center[kk] = ic - prevC
			prevC = ic

			ir := leftBspline(x)
			b.right[kk] = ir - prevR
			prevR = ir
		}

		// Boundary-straddling fine cell of coarse cell k. The left spline is
		// exhausted here (its remaining integral is 1 - prevL); the others
		// continue on their next pieces in cell k+1's local coordinate.
		x = float64(int64(kk+1)*int64(coarse)-int64(k+1)*int64(fine)) * oneOverFine

		b.left[kk] = 1. - prevL

		prevL = rightBspline(x)
		b.center[kk] = prevL + (4. - prevC)

		prevC = centerBspline(x)
		b.right[kk] = prevC + (1. - prevR)

		prevR = leftBspline(x)
		b.farright[k] = prevR
	}

	// The very last coarse cell. If the magnification is not an integer, the
	// straddling cell above was computed with the generic interior formulas
	// before it was known that the next cell is the boundary one; redo those
	// pieces with the boundary splines. (For natural boundary conditions the
	// right boundary spline's right piece equals the interior one, so only
	// the center piece needs fixing; not-a-knot needs both.)
	if fine%coarse != 0 {
		if bc == BoundaryNotAKnot {
			b.center[kk] -= prevL
			prevL = f.rightBdryRight(x)
			b.center[kk] += prevL
		}
		b.right[kk] -= prevC
		prevC = f.rightBdry(x)
		b.right[kk] += prevC
	}

	// Fine cells fully inside the last coarse cell.
	for kk++; kk < fine; kk++ {
		x += h

		il := f.rightBdryRight(x)
		b.left[kk] = il - prevL
		prevL = il

		ic := f.rightBdry(x)
		b.center[kk] = ic - prevC
		prevC = ic
	}

	return b
}
