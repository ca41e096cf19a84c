package world

// Hallway is an L-shaped corridor: one axis walked fully, then the other.
type Hallway struct {
	Path []Point
}

// NewLHallway builds the path from a to b, both endpoints included.
func NewLHallway(a, b Point, horizontalFirst bool) Hallway {
	path := make([]Point, 0, Manhattan(a, b)+1)
	path = append(path, a)

	cur := a
	if horizontalFirst {
		path, cur = walk(path, cur, b.X-cur.X, 0)
		path, _ = walk(path, cur, 0, b.Y-cur.Y)
	} else {
		path, cur = walk(path, cur, 0, b.Y-cur.Y)
		path, _ = walk(path, cur, b.X-cur.X, 0)
	}
	return Hallway{Path: path}
}

// walk appends |dx|+|dy| unit steps (one of them is zero) starting after cur.
func walk(path []Point, cur Point, dx, dy int) ([]Point, Point) {
	sx, sy := sign(dx), sign(dy)
	for steps := abs(dx) + abs(dy); steps > 0; steps-- {
		cur = cur.Add(sx, sy)
		path = append(path, cur)
	}
	return path, cur
}

// carve sets every path cell to floor, whatever was there before.
func (h Hallway) carve(g *Grid) {
	for _, p := range h.Path {
		g.Set(p, TileFloor)
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
