package world

// FindSpawn returns the first Floor cell scanning rows from y = 0 up, left to
// right. An empty dungeon yields ErrNoSpawn, which callers should treat as a
// startup failure.
func FindSpawn(g *Grid) (Point, error) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if g.Tiles[y][x] == TileFloor {
				return Point{X: x, Y: y}, nil
			}
		}
	}
	return Point{}, ErrNoSpawn
}
