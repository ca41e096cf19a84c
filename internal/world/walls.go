package world

import "github.com/zyedidia/generic/mapset"

// floorCells returns the union of room interiors and hallway paths.
func (g *Generator) floorCells() mapset.Set[Point] {
	cells := mapset.New[Point]()
	for _, r := range g.rooms {
		for _, p := range r.Interior() {
			cells.Put(p)
		}
	}
	for _, h := range g.hallways {
		for _, p := range h.Path {
			cells.Put(p)
		}
	}
	return cells
}

// synthesizeWalls encloses everything carved so far. It must run after the
// last hallway is carved, or later carving would punch through the walls.
func (g *Generator) synthesizeWalls() {
	SynthesizeWalls(g.grid, g.floorCells())
}

// SynthesizeWalls turns every empty in-bounds 4-neighbor of the given floor
// cells into wall. Order does not matter.
func SynthesizeWalls(grid *Grid, floors mapset.Set[Point]) {
	floors.Each(func(p Point) {
		for _, n := range p.Neighbors() {
			if grid.InBounds(n) && grid.At(n) == TileEmpty {
				grid.Set(n, TileWall)
			}
		}
	})
}

// FloorSet collects every Floor and Item cell of a grid.
func FloorSet(grid *Grid) mapset.Set[Point] {
	cells := mapset.New[Point]()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.Tiles[y][x].IsPassable() {
				cells.Put(Point{X: x, Y: y})
			}
		}
	}
	return cells
}
