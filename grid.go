// ◄◄◄ grid.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// controlGrid holds the quadratic-spline control coefficients for one
// invocation. Its internal structure is designed to be similar to Go's
// standard image structs: one flat sample slice plus a stride.
//
// The grid has the same dimensions as the coarse input image. It is written
// once by the two solver passes and is read-only during synthesis.
type controlGrid struct {
	// A slice containing all coefficients. Channels consecutive samples make
	// one coefficient block; W consecutive blocks make a row.
	Coef     []float32
	Stride   int // Samples per row (W * Channels)
	W, H     int
	Channels int
}

func newControlGrid(w, h, channels int) *controlGrid {
	g := new(controlGrid)
	g.W = w
	g.H = h
	g.Channels = channels
	g.Stride = w * channels
	g.Coef = make([]float32, g.Stride*h)
	return g
}

// row returns the samples of coarse row i.
func (g *controlGrid) row(i int) []float32 {
	return g.Coef[i*g.Stride : (i+1)*g.Stride]
}

// block returns the Channels samples of the coefficient at (row i, column j).
func (g *controlGrid) block(i, j int) []float32 {
	off := i*g.Stride + j*g.Channels
	return g.Coef[off : off+g.Channels]
}
