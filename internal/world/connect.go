package world

// connectMST joins all rooms into a tree, Prim style: starting from room 0 it
// repeatedly links the closest (connected, unconnected) pair by center
// Manhattan distance. Ties go to the lowest connected index, then the lowest
// unconnected index.
func (g *Generator) connectMST() {
	if len(g.rooms) == 0 {
		return
	}

	connected := make([]bool, len(g.rooms))
	connected[0] = true
	order := []int{0}

	for len(order) < len(g.rooms) {
		bestA, bestB, bestDist := -1, -1, 0
		for _, a := range order {
			ca := g.rooms[a].Center()
			for b := range g.rooms {
				if connected[b] {
					continue
				}
				d := Manhattan(ca, g.rooms[b].Center())
				if bestA < 0 || d < bestDist || (d == bestDist && (a < bestA || (a == bestA && b < bestB))) {
					bestA, bestB, bestDist = a, b, d
				}
			}
		}

		g.connectPair(bestA, bestB)
		connected[bestB] = true
		order = append(order, bestB)
	}
}

// nearestRoom returns the index of the room whose center is closest to room
// target, scanning by index so the first of equal candidates wins. It returns
// -1 when target is the only room.
func (g *Generator) nearestRoom(target int) int {
	nearest, bestDist := -1, 0
	c := g.rooms[target].Center()
	for i, r := range g.rooms {
		if i == target {
			continue
		}
		d := Manhattan(c, r.Center())
		if nearest < 0 || d < bestDist {
			nearest, bestDist = i, d
		}
	}
	return nearest
}

// connectPair draws one interior point in each room and an axis order, then
// carves the hallway.
func (g *Generator) connectPair(a, b int) {
	p1 := g.rooms[a].RandomInterior(g.rng)
	p2 := g.rooms[b].RandomInterior(g.rng)
	h := NewLHallway(p1, p2, g.rng.Bool())

	g.hallways = append(g.hallways, h)
	h.carve(g.grid)
	g.metrics.IncHallways()
}
