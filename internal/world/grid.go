package world

// Grid is a fixed-size tile map indexed as Tiles[y][x].
type Grid struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewGrid creates a grid filled with TileEmpty.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// At returns the tile at p, or TileEmpty outside the grid.
func (g *Grid) At(p Point) Tile {
	if !g.InBounds(p) {
		return TileEmpty
	}
	return g.Tiles[p.Y][p.X]
}

// Set writes a tile at p. Writes outside the grid are ignored.
func (g *Grid) Set(p Point, t Tile) {
	if g.InBounds(p) {
		g.Tiles[p.Y][p.X] = t
	}
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(p Point) bool {
	return g.At(p).IsPassable()
}

// Count returns how many cells hold tile t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for y := range g.Tiles {
		for _, tile := range g.Tiles[y] {
			if tile == t {
				n++
			}
		}
	}
	return n
}

// FillRatio is the share of cells that are Floor or Item.
func (g *Grid) FillRatio() float64 {
	total := g.Width * g.Height
	if total == 0 {
		return 0
	}
	return float64(g.Count(TileFloor)+g.Count(TileItem)) / float64(total)
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Width, g.Height)
	for y := range g.Tiles {
		copy(c.Tiles[y], g.Tiles[y])
	}
	return c
}

// Equal reports whether both grids have the same size and tiles.
func (g *Grid) Equal(o *Grid) bool {
	if g.Width != o.Width || g.Height != o.Height {
		return false
	}
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			if g.Tiles[y][x] != o.Tiles[y][x] {
				return false
			}
		}
	}
	return true
}
