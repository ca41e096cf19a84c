// Package world provides dungeon generation, the tile grid and line of sight.
package world

// Tile tags a single grid cell. Tiles compare by value.
type Tile uint8

const (
	// TileEmpty is unused space outside the dungeon.
	TileEmpty Tile = iota
	// TileFloor is walkable floor carved by a room or hallway.
	TileFloor
	// TileWall encloses floor and blocks sight.
	TileWall
	// TileItem is a floor cell holding a collectible coin.
	TileItem
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TileItem
}

// BlocksSight reports whether the tile occludes line of sight.
func (t Tile) BlocksSight() bool {
	return t == TileWall
}

// Rune returns the tile's default display character.
func (t Tile) Rune() rune {
	switch t {
	case TileFloor:
		return '.'
	case TileWall:
		return '#'
	case TileItem:
		return '$'
	default:
		return ' '
	}
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileItem:
		return "item"
	default:
		return "unknown"
	}
}
