package main

import (
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestSpatialGridInsertAndQuery(t *testing.T) {
	grid := NewSpatialGrid(1000, 1000, 50)
	grid.Clear()

	grid.InsertCircle(cp.Vector{X: 100, Y: 100}, 1, 0)

	// Query around (100,100) should find it
	results := grid.QueryBuf(cp.Vector{X: 100, Y: 100}, 50, nil)
	if !slices.Contains(results, 0) {
		t.Error("expected to find entry at (100,100)")
	}

	// Query far away should not find it
	results = grid.QueryBuf(cp.Vector{X: 900, Y: 900}, 50, nil)
	if slices.Contains(results, 0) {
		t.Error("should not find entry at (900,900)")
	}
}

func TestSpatialGridClear(t *testing.T) {
	grid := NewSpatialGrid(1000, 1000, 50)
	grid.InsertCircle(cp.Vector{X: 500, Y: 500}, 1, 0)
	grid.Clear()

	results := grid.QueryBuf(cp.Vector{X: 500, Y: 500}, 100, nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results after clear, got %d", len(results))
	}
}

func TestSpatialGridInsertCircle(t *testing.T) {
	grid := NewSpatialGrid(1000, 1000, 50)

	// A large circle spans several cells
	grid.InsertCircle(cp.Vector{X: 160, Y: 160}, 40, 3)

	// Query at edge of bounding box should find it
	results := grid.QueryBuf(cp.Vector{X: 120, Y: 120}, 5, nil)
	if !slices.Contains(results, 3) {
		t.Error("expected to find circle entry near its edge")
	}
}

func TestSpatialGridBoundaryClamp(t *testing.T) {
	grid := NewSpatialGrid(1000, 1000, 50)

	// Negative coords should clamp to 0
	grid.InsertCircle(cp.Vector{X: -10, Y: -10}, 1, 0)
	if !slices.Contains(grid.QueryBuf(cp.Vector{}, 50, nil), 0) {
		t.Error("expected to find entry inserted at negative coords")
	}

	// Beyond world edge should clamp to max
	grid.InsertCircle(cp.Vector{X: 5000, Y: 5000}, 1, 1)
	if !slices.Contains(grid.QueryBuf(cp.Vector{X: 1000, Y: 1000}, 50, nil), 1) {
		t.Error("expected to find entry inserted beyond world edge")
	}
}

func TestSpatialGridCellCap(t *testing.T) {
	grid := NewSpatialGrid(1e6, 1e6, 1)
	if grid.cols*grid.rows > maxSpatialCells {
		t.Errorf("expected at most %d cells, got %d", maxSpatialCells, grid.cols*grid.rows)
	}
}

func TestSpatialGridQueryReusesBuffer(t *testing.T) {
	grid := NewSpatialGrid(100, 100, 10)
	grid.InsertCircle(cp.Vector{X: 50, Y: 50}, 1, 7)

	buf := make([]int, 0, 8)
	buf = grid.QueryBuf(cp.Vector{X: 50, Y: 50}, 1, buf[:0])
	buf = grid.QueryBuf(cp.Vector{X: 50, Y: 50}, 1, buf[:0])
	if !slices.Contains(buf, 7) {
		t.Error("expected entry after buffer reuse")
	}
}
