// ◄◄◄ engine.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

import "fmt"
import "runtime"

// minAxisLen is the smallest supported coarse width or height. The solver
// treats its elimination multiplier as constant after six steps; axes
// shorter than this would make that shortcut visible in the output.
const minAxisLen = 15

// A RowReader supplies the engine with successive coarse sample rows.
// ReadRow must fill dst completely (coarse width times channels samples,
// each in [0, maxval]) or return an error.
type RowReader interface {
	ReadRow(dst []uint16) error
}

// A RowWriter consumes the engine's fine sample rows, in top-to-bottom
// order. The slice passed to WriteRow is reused; implementations must not
// retain it.
type RowWriter interface {
	WriteRow(src []uint16) error
}

// Engine upsizes a stream of sample rows so that every output sample is
// the exact area average, over that sample's footprint, of the natural
// biquadratic histospline reconstruction of the input. There is one Engine
// per fixed geometry; Upsample may be called repeatedly with new streams.
type Engine struct {
	coarseW, coarseH int
	fineW, fineH     int
	channels         int
	maxVal           int

	boundary BoundaryCondition

	numWorkers int // Number of worker goroutines we will use
	maxWorkers int // Max number requested by caller. 0 = not set.

	progressCallback func(msg string)
}

// NewEngine validates the geometry and returns an engine for it.
//
// The coarse dimensions must be at least 15, the fine dimensions at least
// the coarse ones (this engine only upsizes), channels between 1 and 4,
// and maxVal either 255 or 65535.
func NewEngine(coarseW, coarseH, fineW, fineH, channels, maxVal int) (*Engine, error) {
	if coarseW < minAxisLen || coarseH < minAxisLen {
		return nil, fmt.Errorf("input image must be at least %dx%d; got %dx%d",
			minAxisLen, minAxisLen, coarseW, coarseH)
	}
	if fineW < coarseW || fineH < coarseH {
		return nil, fmt.Errorf("target size %dx%d does not upsize input %dx%d",
			fineW, fineH, coarseW, coarseH)
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	if maxVal != 255 && maxVal != 65535 {
		return nil, fmt.Errorf("unsupported sample range 0..%d", maxVal)
	}

	e := new(Engine)
	e.coarseW, e.coarseH = coarseW, coarseH
	e.fineW, e.fineH = fineW, fineH
	e.channels = channels
	e.maxVal = maxVal
	return e, nil
}

// SetBoundaryCondition selects the spline end condition. The default is
// BoundaryNatural. This must be called before Upsample.
func (e *Engine) SetBoundaryCondition(bc BoundaryCondition) {
	e.boundary = bc
}

// SetMaxWorkerThreads tells the engine the maximum number of goroutines it
// should use simultaneously for the solver passes. 0 means default.
func (e *Engine) SetMaxWorkerThreads(n int) {
	e.maxWorkers = n
}

// (This is a debugging method. Please don't use.)
func (e *Engine) SetProgressCallback(fn func(msg string)) {
	e.progressCallback = fn
}

func (e *Engine) progressMsgf(format string, a ...interface{}) {
	if e.progressCallback == nil {
		return
	}
	e.progressCallback(fmt.Sprintf(format, a...))
}

// readGrid reads every coarse row from src into a fresh control grid,
// rescaling each sample by (fineW*fineH)/(coarseW*coarseH). That factor is
// the reciprocal of the fine-cell area under the unit-square input-cell
// convention; folding it in here, where there are fewer samples, means the
// synthesized integrals need no further scaling to become averages.
func (e *Engine) readGrid(src RowReader) (*controlGrid, error) {
	g := newControlGrid(e.coarseW, e.coarseH, e.channels)

	rescale := float32(float64(e.fineW) * float64(e.fineH) /
		(float64(e.coarseW) * float64(e.coarseH)))

	scratch := make([]uint16, e.coarseW*e.channels)
	for i := 0; i < e.coarseH; i++ {
		if err := src.ReadRow(scratch); err != nil {
			return nil, fmt.Errorf("reading input row %d: %w", i, err)
		}
		row := g.row(i)
		for s, v := range scratch {
			row[s] = float32(v) * rescale
		}
	}
	return g, nil
}

// Upsample runs the full transform: read and rescale the coarse samples,
// solve for the spline control coefficients, and stream the synthesized
// fine rows to dst. If the input stream fails, no output row is written.
func (e *Engine) Upsample(src RowReader, dst RowWriter) error {
	e.numWorkers = runtime.GOMAXPROCS(0)
	if e.numWorkers < 1 {
		e.numWorkers = 1
	}
	if e.maxWorkers > 0 && e.numWorkers > e.maxWorkers {
		e.numWorkers = e.maxWorkers
	}

	// The overlap maps and band vectors depend only on the geometry, not on
	// any pixel, so they are ready before the first sample arrives.
	lastOverlapX := lastOverlapIndexes(e.coarseW, e.fineW)
	lastOverlapY := lastOverlapIndexes(e.coarseH, e.fineH)

	hBands := makeBandCoefficients(e.coarseW, e.fineW, lastOverlapX, e.boundary)
	vBands := makeBandCoefficients(e.coarseH, e.fineH, lastOverlapY, e.boundary)

	e.progressMsgf("Reading %d input rows", e.coarseH)
	g, err := e.readGrid(src)
	if err != nil {
		return err
	}

	e.progressMsgf("Solving control coefficients, %dx%d", e.coarseW, e.coarseH)
	solveRows(g, e.numWorkers)
	solveColumns(g, e.numWorkers)

	e.progressMsgf("Synthesizing %d output rows", e.fineH)
	sy := newSynthesizer(g, hBands, vBands, lastOverlapX, lastOverlapY,
		e.fineW, e.fineH, e.maxVal)
	return sy.run(dst)
}
