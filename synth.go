// ◄◄◄ synth.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// This file turns the control grid into output rows. The work per output
// sample is a contraction of up to 4x4 control coefficients against one
// vertical and one horizontal band each: first the 3 or 4 grid rows
// relevant to the output row are folded into a single partial-sum row using
// the vertical band weights, then a 3- or 4-tap window slides across that
// row, contracted against the horizontal bands.
//
// Each axis walks the same four-state machine over its coarse cells: the
// first cell has no "left" neighbor term, interior cells carry all three
// plus the far spill at their boundary-straddling fine cell, the
// second-to-last cell has no far spill, and the last cell also drops the
// "right" term. The states are the image of the natural-boundary basis
// truncation in bands.go, and must not be approximated by the interior
// formula.

// tapWindow is the horizontal sliding window: for the current coarse
// column j, the per-channel partial sums of control columns j-1 .. j+2.
// Advancing by one coarse column is a single shift; three of the four taps
// are reused, so the synthesis stays O(1) per output sample per channel.
type tapWindow struct {
	left, center, right, far []float64
}

func newTapWindow(channels int) *tapWindow {
	t := new(tapWindow)
	t.left = make([]float64, channels)
	t.center = make([]float64, channels)
	t.right = make([]float64, channels)
	t.far = make([]float64, channels)
	return t
}

// shift advances the window by one coarse column, loading src (the next
// column's partial sums) into the far tap. A nil src shifts in zeros, for
// the columns within reach of the image's right edge.
func (t *tapWindow) shift(src []float64) {
	t.left, t.center, t.right, t.far = t.center, t.right, t.far, t.left
	for c := range t.far {
		if src != nil {
			t.far[c] = src[c]
		} else {
			t.far[c] = 0
		}
	}
}

type synthesizer struct {
	grid *controlGrid

	hBands *bandCoefficients
	vBands *bandCoefficients

	lastOverlapX []int
	lastOverlapY []int

	fineW  int
	fineH  int
	maxVal int

	// vrow holds the vertical partial sums for the current output row:
	// grid.Stride samples, already weighted by the vertical bands.
	vrow []float64
}

func newSynthesizer(g *controlGrid, hBands, vBands *bandCoefficients,
	lastOverlapX, lastOverlapY []int, fineW, fineH, maxVal int) *synthesizer {
	sy := new(synthesizer)
	sy.grid = g
	sy.hBands = hBands
	sy.vBands = vBands
	sy.lastOverlapX = lastOverlapX
	sy.lastOverlapY = lastOverlapY
	sy.fineW = fineW
	sy.fineH = fineH
	sy.maxVal = maxVal
	sy.vrow = make([]float64, g.Stride)
	return sy
}

func roundAndClamp(x float64, maxVal int) uint16 {
	v := int(x + .5)
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return uint16(maxVal)
	}
	return uint16(v)
}

// buildVRow folds the given grid rows, weighted, into sy.vrow.
func (sy *synthesizer) buildVRow(rows []int, weights []float64) {
	vrow := sy.vrow
	r0 := sy.grid.row(rows[0])
	w0 := weights[0]
	for s := range vrow {
		vrow[s] = w0 * float64(r0[s])
	}
	for t := 1; t < len(rows); t++ {
		rt := sy.grid.row(rows[t])
		wt := weights[t]
		for s := range vrow {
			vrow[s] += wt * float64(rt[s])
		}
	}
}

// vblock returns the partial-sum block of coarse column j, or nil past the
// right edge.
func (sy *synthesizer) vblock(j int) []float64 {
	if j >= sy.grid.W {
		return nil
	}
	ch := sy.grid.Channels
	return sy.vrow[j*ch : (j+1)*ch]
}

// synthRow contracts the current vertical partial sums against the
// horizontal bands, producing one complete output row.
func (sy *synthesizer) synthRow(out []uint16) {
	ch := sy.grid.Channels
	n := sy.grid.W
	hb := sy.hBands
	maxVal := sy.maxVal

	t := newTapWindow(ch)
	copy(t.center, sy.vblock(0))
	copy(t.right, sy.vblock(1))
	copy(t.far, sy.vblock(2))

	o := 0 // next output sample index

	// First coarse column: no left tap.
	jj := 0
	for ; jj < sy.lastOverlapX[0]; jj++ {
		cw, rw := hb.center[jj], hb.right[jj]
		for c := 0; c < ch; c++ {
			out[o] = roundAndClamp(t.center[c]*cw+t.right[c]*rw, maxVal)
			o++
		}
	}
	cw, rw, fw := hb.center[jj], hb.right[jj], hb.farright[0]
	for c := 0; c < ch; c++ {
		out[o] = roundAndClamp(t.center[c]*cw+t.right[c]*rw+t.far[c]*fw, maxVal)
		o++
	}
	jj++

	// Interior coarse columns.
	for j := 1; j < n-2; j++ {
		t.shift(sy.vblock(j + 2))

		for ; jj < sy.lastOverlapX[j]; jj++ {
			lw, cw, rw := hb.left[jj], hb.center[jj], hb.right[jj]
			for c := 0; c < ch; c++ {
				out[o] = roundAndClamp(t.left[c]*lw+t.center[c]*cw+t.right[c]*rw, maxVal)
				o++
			}
		}
		lw, cw, rw, fw := hb.left[jj], hb.center[jj], hb.right[jj], hb.farright[j]
		for c := 0; c < ch; c++ {
			out[o] = roundAndClamp(t.left[c]*lw+t.center[c]*cw+t.right[c]*rw+t.far[c]*fw, maxVal)
			o++
		}
		jj++
	}

	// Second-to-last coarse column: no far spill, so its boundary cell needs
	// no special case.
	t.shift(nil)
	for ; jj <= sy.lastOverlapX[n-2]; jj++ {
		lw, cw, rw := hb.left[jj], hb.center[jj], hb.right[jj]
		for c := 0; c < ch; c++ {
			out[o] = roundAndClamp(t.left[c]*lw+t.center[c]*cw+t.right[c]*rw, maxVal)
			o++
		}
	}

	// Last coarse column: left and center taps only.
	t.shift(nil)
	for ; jj < sy.fineW; jj++ {
		lw, cw := hb.left[jj], hb.center[jj]
		for c := 0; c < ch; c++ {
			out[o] = roundAndClamp(t.left[c]*lw+t.center[c]*cw, maxVal)
			o++
		}
	}
}

// run streams every output row, in order, to dst. The vertical state
// machine mirrors the horizontal one in synthRow: the far (farbottom) grid
// row participates only in the single output row straddling a coarse-row
// boundary.
func (sy *synthesizer) run(dst RowWriter) error {
	m := sy.grid.H
	vb := sy.vBands
	out := make([]uint16, sy.fineW*sy.grid.Channels)

	rows := make([]int, 0, 4)
	weights := make([]float64, 0, 4)

	emit := func() error {
		sy.buildVRow(rows, weights)
		sy.synthRow(out)
		return dst.WriteRow(out)
	}

	ii := 0

	// First coarse row.
	for ; ii <= sy.lastOverlapY[0]; ii++ {
		rows = append(rows[:0], 0, 1)
		weights = append(weights[:0], vb.center[ii], vb.right[ii])
		if ii == sy.lastOverlapY[0] {
			rows = append(rows, 2)
			weights = append(weights, vb.farright[0])
		}
		if err := emit(); err != nil {
			return err
		}
	}

	// Interior coarse rows.
	for i := 1; i < m-2; i++ {
		for ; ii <= sy.lastOverlapY[i]; ii++ {
			rows = append(rows[:0], i-1, i, i+1)
			weights = append(weights[:0], vb.left[ii], vb.center[ii], vb.right[ii])
			if ii == sy.lastOverlapY[i] {
				rows = append(rows, i+2)
				weights = append(weights, vb.farright[i])
			}
			if err := emit(); err != nil {
				return err
			}
		}
	}

	// Second-to-last coarse row: no farbottom exists, so its boundary output
	// row is handled like an interior one.
	for ; ii <= sy.lastOverlapY[m-2]; ii++ {
		rows = append(rows[:0], m-3, m-2, m-1)
		weights = append(weights[:0], vb.left[ii], vb.center[ii], vb.right[ii])
		if err := emit(); err != nil {
			return err
		}
	}

	// Last coarse row.
	for ; ii < sy.fineH; ii++ {
		rows = append(rows[:0], m-2, m-1)
		weights = append(weights[:0], vb.left[ii], vb.center[ii])
		if err := emit(); err != nil {
			return err
		}
	}

	return nil
}
