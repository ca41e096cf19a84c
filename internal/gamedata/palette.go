package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/lantern/internal/world"
)

// GlyphDef describes how one thing is drawn, as loaded from JSON.
type GlyphDef struct {
	Glyph string `json:"glyph"`          // Single character (e.g., "#")
	FG    string `json:"fg"`             // Foreground hex color (e.g., "#FF0000")
	BG    string `json:"bg,omitempty"`   // Optional background hex color
	Bold  bool   `json:"bold,omitempty"` // Bold attribute
}

// Rune returns the glyph as a rune for rendering.
func (d GlyphDef) Rune() rune {
	for _, r := range d.Glyph {
		return r
	}
	return '?'
}

// Style converts the colors to a tcell style.
func (d GlyphDef) Style() (tcell.Style, error) {
	style := tcell.StyleDefault
	fg, err := ParseHexColor(d.FG)
	if err != nil {
		return style, err
	}
	style = style.Foreground(fg)
	if d.BG != "" {
		bg, err := ParseHexColor(d.BG)
		if err != nil {
			return style, err
		}
		style = style.Background(bg)
	}
	return style.Bold(d.Bold), nil
}

// PaletteFile represents the structure of palette.json.
type PaletteFile struct {
	Tiles  map[string]GlyphDef `json:"tiles"`
	Avatar GlyphDef            `json:"avatar"`
	HUD    GlyphDef            `json:"hud"`
	Hidden GlyphDef            `json:"hidden"`
}

// Cell is a resolved glyph and style.
type Cell struct {
	Rune  rune
	Style tcell.Style
}

// Palette maps tiles and overlays to resolved cells.
type Palette struct {
	tiles  map[world.Tile]Cell
	Avatar Cell
	HUD    Cell
	Hidden Cell
}

// Tile returns the cell for a tile, falling back to the tile's own rune.
func (p *Palette) Tile(t world.Tile) Cell {
	if c, ok := p.tiles[t]; ok {
		return c
	}
	return Cell{Rune: t.Rune(), Style: tcell.StyleDefault}
}

var tileKinds = []world.Tile{world.TileEmpty, world.TileFloor, world.TileWall, world.TileItem}

// NewPalette resolves a palette file. Every tile kind must be present.
func NewPalette(file PaletteFile) (*Palette, error) {
	p := &Palette{tiles: make(map[world.Tile]Cell, len(tileKinds))}
	for _, t := range tileKinds {
		def, ok := file.Tiles[t.String()]
		if !ok {
			return nil, fmt.Errorf("palette has no entry for tile %q", t)
		}
		cell, err := resolve(def)
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", t, err)
		}
		p.tiles[t] = cell
	}

	var err error
	if p.Avatar, err = resolve(file.Avatar); err != nil {
		return nil, fmt.Errorf("avatar: %w", err)
	}
	if p.HUD, err = resolve(file.HUD); err != nil {
		return nil, fmt.Errorf("hud: %w", err)
	}
	if p.Hidden, err = resolve(file.Hidden); err != nil {
		return nil, fmt.Errorf("hidden: %w", err)
	}
	return p, nil
}

func resolve(def GlyphDef) (Cell, error) {
	style, err := def.Style()
	if err != nil {
		return Cell{}, err
	}
	return Cell{Rune: def.Rune(), Style: style}, nil
}

// LoadPalette loads and resolves the embedded palette.json.
func LoadPalette() (*Palette, error) {
	file, err := Load[PaletteFile]("palette.json")
	if err != nil {
		return nil, err
	}
	return NewPalette(file)
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *Palette {
	p, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return p
}
