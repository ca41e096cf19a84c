package world

// refine keeps adding rooms until the grid is dense enough, the extra room
// budget is spent, or a placement round finds no space.
func (g *Generator) refine() {
	extra := 0
	for {
		if g.grid.FillRatio() >= MinFillRatio {
			g.stats.Stop = RefineFillReached
			break
		}
		if extra >= MaxExtraRooms {
			g.stats.Stop = RefineExtraBudget
			break
		}

		idx, ok := g.tryPlaceRoom()
		if !ok {
			g.stats.Stop = RefinePlacementFailed
			break
		}
		// a lone room (initial phase placed nothing) has no one to connect to
		if nearest := g.nearestRoom(idx); nearest >= 0 {
			g.connectPair(nearest, idx)
		}
		extra++
		g.metrics.IncRoomsPlaced("refine")
	}
	g.stats.ExtraRooms += extra
}
