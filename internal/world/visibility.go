package world

// VisibilityMask marks the cells visible from one observer position. It is
// rebuilt from scratch on every query.
type VisibilityMask struct {
	Width, Height int
	Origin        Point
	Radius        int
	visible       [][]bool
}

// Visible reports whether p is visible. Cells off the grid never are.
func (m *VisibilityMask) Visible(p Point) bool {
	if p.X < 0 || p.X >= m.Width || p.Y < 0 || p.Y >= m.Height {
		return false
	}
	return m.visible[p.Y][p.X]
}

// Count returns the number of visible cells.
func (m *VisibilityMask) Count() int {
	n := 0
	for y := range m.visible {
		for _, v := range m.visible[y] {
			if v {
				n++
			}
		}
	}
	return n
}

// ComputeVisibility marks every cell within Euclidean distance radius of origin
// whose sampled straight path is free of walls.
//
// The path to a target offset (dx, dy) is sampled at steps = max(|dx|, |dy|)
// points, point i being origin + i*(dx, dy)/steps with truncating division.
// Only intermediate points (0 < i < steps) can occlude: a wall at the end of a
// clear path is itself visible, so room outlines show up.
func ComputeVisibility(g *Grid, origin Point, radius int) *VisibilityMask {
	m := &VisibilityMask{
		Width:   g.Width,
		Height:  g.Height,
		Origin:  origin,
		Radius:  radius,
		visible: make([][]bool, g.Height),
	}
	for y := range m.visible {
		m.visible[y] = make([]bool, g.Width)
	}
	if radius < 0 {
		return m
	}

	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			target := origin.Add(dx, dy)
			if !g.InBounds(target) || dx*dx+dy*dy > r2 {
				continue
			}
			if occluded(g, origin, dx, dy) {
				continue
			}
			m.visible[target.Y][target.X] = true
		}
	}
	return m
}

// occluded reports whether a wall sits on an intermediate sample of the path.
func occluded(g *Grid, origin Point, dx, dy int) bool {
	steps := max(abs(dx), abs(dy))
	for i := 1; i < steps; i++ {
		p := origin.Add(i*dx/steps, i*dy/steps)
		if g.InBounds(p) && g.At(p).BlocksSight() {
			return true
		}
	}
	return false
}
