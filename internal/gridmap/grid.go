// Package gridmap defines the immutable 2D obstacle map CBS plans over.
package gridmap

import "fmt"

// Coord is an integer grid position.
type Coord struct {
	X, Y int
}

// Add returns the coordinate obtained by translating c by dx, dy.
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Grid is a width x height obstacle bitmap. Zero value is not usable; build
// one with New. A Grid is immutable after construction.
type Grid struct {
	w, h int
	// obstacle is a row-major bitmap, one byte per cell: 0 = free, non-zero = obstacle.
	obstacle []byte
}

// New builds a Grid from a row-major obstacle bitmap of length w*h.
func New(w, h int, obstacle []byte) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("gridmap: invalid dimensions %dx%d", w, h)
	}
	if len(obstacle) != w*h {
		return nil, fmt.Errorf("gridmap: obstacle bitmap has %d cells, want %d", len(obstacle), w*h)
	}
	cells := make([]byte, len(obstacle))
	copy(cells, obstacle)
	return &Grid{w: w, h: h, obstacle: cells}, nil
}

// W returns the grid width.
func (g *Grid) W() int { return g.w }

// H returns the grid height.
func (g *Grid) H() int { return g.h }

// InBounds reports whether (x, y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// IsObstacle reports whether (x, y) is blocked. Out-of-bounds cells are
// treated as obstacles.
func (g *Grid) IsObstacle(x, y int) bool {
	if !g.InBounds(x, y) {
		return true
	}
	return g.obstacle[y*g.w+x] != 0
}
