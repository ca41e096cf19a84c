package world

import "github.com/zyedidia/generic/mapset"

// itemCandidates lists room interiors in room order, then hallway paths in
// carving order, keeping only the first occurrence of each cell.
func (g *Generator) itemCandidates() []Point {
	seen := mapset.New[Point]()
	var cells []Point
	add := func(p Point) {
		if seen.Has(p) {
			return
		}
		seen.Put(p)
		cells = append(cells, p)
	}
	for _, r := range g.rooms {
		for _, p := range r.Interior() {
			add(p)
		}
	}
	for _, h := range g.hallways {
		for _, p := range h.Path {
			add(p)
		}
	}
	return cells
}

// placeItems shuffles the candidates and turns the first ItemTarget into items.
func (g *Generator) placeItems() {
	cells := g.itemCandidates()
	g.rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	count := min(ItemTarget, len(cells))
	for _, p := range cells[:count] {
		g.grid.Set(p, TileItem)
	}
	g.items = count
}
