package main

import (
	"math"

	"github.com/jakecoffman/cp"
)

// maxSpatialCells bounds the grid allocation for very fine cell sizes
const maxSpatialCells = 64 * 64

// SpatialGrid is a uniform grid over the domain for broad-phase collision queries.
// Entries are bullet indices.
type SpatialGrid struct {
	cellSize   float64
	cols, rows int
	cells      [][]int
}

// NewSpatialGrid covers a width x height domain with cells of at least cellSize
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	if !(cellSize > 0) {
		cellSize = math.Max(width, height)
	}
	if !(cellSize > 0) {
		cellSize = 1
	}
	// Coarsen until the cell count is bounded
	for gridCols(width, cellSize)*gridCols(height, cellSize) > maxSpatialCells {
		cellSize *= 2
	}
	cols := gridCols(width, cellSize)
	rows := gridCols(height, cellSize)
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]int, cols*rows),
	}
}

func gridCols(extent, cellSize float64) int {
	n := int(math.Ceil(extent/cellSize)) + 1
	if n < 1 {
		n = 1
	}
	return n
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) span(center cp.Vector, radius float64) (minCX, maxCX, minCY, maxCY int) {
	minCX = g.clampCol(int(math.Floor((center.X - radius) / g.cellSize)))
	maxCX = g.clampCol(int(math.Floor((center.X + radius) / g.cellSize)))
	minCY = g.clampRow(int(math.Floor((center.Y - radius) / g.cellSize)))
	maxCY = g.clampRow(int(math.Floor((center.Y + radius) / g.cellSize)))
	return
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// InsertCircle adds an entry to all cells overlapping the circle's bounding box
func (g *SpatialGrid) InsertCircle(center cp.Vector, radius float64, idx int) {
	minCX, maxCX, minCY, maxCY := g.span(center, radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			i := cy*g.cols + cx
			g.cells[i] = append(g.cells[i], idx)
		}
	}
}

// QueryBuf appends entries in cells overlapping the bounding box to buf.
// An entry spanning several cells is appended once per cell.
func (g *SpatialGrid) QueryBuf(center cp.Vector, radius float64, buf []int) []int {
	minCX, maxCX, minCY, maxCY := g.span(center, radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}
