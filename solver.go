// ◄◄◄ solver.go ►►►
// Copyright © 2024 Marc Lagacé

package earesize

// This file converts raw (rescaled) samples into quadratic-spline control
// coefficients. Per axis, the cell-average conditions form the banded system
//
//	| 5 1         |
//	| 1 4 1       |
//	|   . . .     | * a = r
//	|     1 4 1   |
//	|       1 5   |
//
// (natural boundary conditions), solved by LU forward/back substitution.
// The elimination multipliers 1/5, 1/(4-1/5), ... converge geometrically to
// the fixed point of 1/(4-c), which is 2-sqrt(3); after six steps the exact
// value and the limit agree to single precision, so the limit is used for
// the rest of the row or column. The final-row multiplier is the limit of
// 1/(5-c), which is (3-sqrt(3))/6. The minimum supported axis length of 15
// keeps at least seven genuinely asymptotic steps in every solve.

var elimHead = [6]float32{
	.2000000,
	.2631579,
	.2676056,
	.2679245,
	.2679474,
	.2679491,
}

const (
	elimAsymptotic float32 = .2679492 // 2 - sqrt(3), to float precision
	elimLast       float32 = .2113249 // (3 - sqrt(3)) / 6
)

func elimMultiplier(step int) float32 {
	if step < len(elimHead) {
		return elimHead[step]
	}
	return elimAsymptotic
}

// eliminate solves one banded system in place. The unknowns are count
// vectors of width samples each; unknown s starts at sam[s*stride]. The
// row pass uses width = stride = channels (one system per row, all channels
// eliminated in lockstep); the column pass uses width = row length and
// stride = row stride (one sweep eliminates every column of the grid).
func eliminate(sam []float32, count, width, stride int) {
	// Forward substitution.
	for s := 1; s < count; s++ {
		mult := elimMultiplier(s - 1)
		cur := sam[s*stride : s*stride+width]
		prev := sam[(s-1)*stride:]
		for c := range cur {
			cur[c] -= prev[c] * mult
		}
	}

	// Back substitution.
	last := sam[(count-1)*stride : (count-1)*stride+width]
	for c := range last {
		last[c] *= elimLast
	}
	for s := count - 2; s >= 0; s-- {
		mult := elimMultiplier(s)
		cur := sam[s*stride : s*stride+width]
		next := sam[(s+1)*stride:]
		for c := range cur {
			cur[c] = (cur[c] - next[c]) * mult
		}
	}
}

type solveWorkItem struct {
	// sam is a reference to a set of samples within the control grid.
	sam     []float32
	count   int
	width   int
	stride  int
	stopNow bool
}

// Read workItems (each an independent banded system) from workQueue, and
// solve them.
func solveWorker(workQueue chan solveWorkItem) {
	for {
		wi := <-workQueue
		if wi.stopNow {
			return
		}
		eliminate(wi.sam, wi.count, wi.width, wi.stride)
	}
}

// solveRows runs the per-row elimination over every grid row, distributed
// across numWorkers goroutines.
func solveRows(g *controlGrid, numWorkers int) {
	var wi solveWorkItem
	wi.count = g.W
	wi.width = g.Channels
	wi.stride = g.Channels

	workQueue := make(chan solveWorkItem)

	for i := 0; i < numWorkers; i++ {
		go solveWorker(workQueue)
	}

	for i := 0; i < g.H; i++ {
		wi.sam = g.row(i)
		// This struct is passed by value, so it's okay to modify it and pass
		// it again.
		workQueue <- wi
	}

	// Tell the workers to stop, and block until they all receive the stop
	// message; after that every row has been solved.
	wi.stopNow = true
	for i := 0; i < numWorkers; i++ {
		workQueue <- wi
	}
}

// solveColumns runs the per-column elimination down the grid. A single
// sweep handles a contiguous range of sample columns, so the row width is
// split into one chunk per worker.
func solveColumns(g *controlGrid, numWorkers int) {
	var wi solveWorkItem
	wi.count = g.H
	wi.stride = g.Stride

	chunks := numWorkers
	if chunks > g.Stride {
		chunks = g.Stride
	}

	workQueue := make(chan solveWorkItem)

	for i := 0; i < numWorkers; i++ {
		go solveWorker(workQueue)
	}

	pos := 0
	for i := 0; i < chunks; i++ {
		end := ((i + 1) * g.Stride) / chunks
		wi.sam = g.Coef[pos:]
		wi.width = end - pos
		workQueue <- wi
		pos = end
	}

	wi.stopNow = true
	for i := 0; i < numWorkers; i++ {
		workQueue <- wi
	}
}
