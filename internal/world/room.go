package world

import "github.com/samdwyer/lantern/internal/rng"

// Room is an axis-aligned rectangle. Its outer ring becomes wall; only the
// cells strictly inside are carved to floor.
type Room struct {
	X, Y          int // Top-left corner position
	Width, Height int // Dimensions including the border ring
}

// Center returns the center coordinates of the room.
func (r Room) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Overlaps reports whether the two rooms, each grown by one cell on every side,
// intersect.
func (r Room) Overlaps(o Room) bool {
	return r.X-1 < o.X+o.Width+1 &&
		r.X+r.Width+1 > o.X-1 &&
		r.Y-1 < o.Y+o.Height+1 &&
		r.Y+r.Height+1 > o.Y-1
}

// Interior returns the floor cells, column by column from the left.
func (r Room) Interior() []Point {
	if r.Width < 3 || r.Height < 3 {
		return nil
	}
	cells := make([]Point, 0, (r.Width-2)*(r.Height-2))
	for x := r.X + 1; x < r.X+r.Width-1; x++ {
		for y := r.Y + 1; y < r.Y+r.Height-1; y++ {
			cells = append(cells, Point{X: x, Y: y})
		}
	}
	return cells
}

// RandomInterior draws one interior cell: x first, then y.
func (r Room) RandomInterior(src *rng.Rand) Point {
	x := r.X + 1 + src.IntN(r.Width-2)
	y := r.Y + 1 + src.IntN(r.Height-2)
	return Point{X: x, Y: y}
}

// carve sets every interior cell to floor.
func (r Room) carve(g *Grid) {
	for _, p := range r.Interior() {
		g.Set(p, TileFloor)
	}
}
