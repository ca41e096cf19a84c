package gamedata

import (
	"testing"
	"testing/fstest"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/lantern/internal/world"
)

func TestLoadPalette(t *testing.T) {
	p, err := LoadPalette()
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}

	tests := []struct {
		tile world.Tile
		want rune
	}{
		{world.TileEmpty, ' '},
		{world.TileFloor, '.'},
		{world.TileWall, '#'},
		{world.TileItem, '$'},
	}
	for _, tt := range tests {
		if got := p.Tile(tt.tile).Rune; got != tt.want {
			t.Errorf("Tile(%v).Rune = %q, want %q", tt.tile, got, tt.want)
		}
	}
	if p.Avatar.Rune != '@' {
		t.Errorf("Avatar.Rune = %q, want '@'", p.Avatar.Rune)
	}
}

func TestPaletteFallback(t *testing.T) {
	p := MustLoadPalette()
	if got := p.Tile(world.Tile(42)).Rune; got != world.Tile(42).Rune() {
		t.Errorf("unknown tile rune = %q, want fallback %q", got, world.Tile(42).Rune())
	}
}

func TestNewPaletteMissingTile(t *testing.T) {
	file := PaletteFile{
		Tiles: map[string]GlyphDef{
			"floor": {Glyph: ".", FG: "#FFFFFF"},
		},
	}
	if _, err := NewPalette(file); err == nil {
		t.Error("NewPalette should fail when tiles are missing")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#FF0000", tcell.NewRGBColor(255, 0, 0), false},
		{"00ff80", tcell.NewRGBColor(0, 255, 128), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GG0000", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGlyphRuneEmpty(t *testing.T) {
	if got := (GlyphDef{}).Rune(); got != '?' {
		t.Errorf("empty glyph rune = %q, want '?'", got)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"custom.json": {Data: []byte(`{"avatar":{"glyph":"&","fg":"#00FF00"}}`)},
		"broken.json": {Data: []byte(`{`)},
	}

	file, err := LoadFS[PaletteFile](fsys, "custom.json")
	if err != nil {
		t.Fatalf("LoadFS() error = %v", err)
	}
	if file.Avatar.Rune() != '&' {
		t.Errorf("Avatar glyph = %q, want '&'", file.Avatar.Rune())
	}

	if _, err := LoadFS[PaletteFile](fsys, "broken.json"); err == nil {
		t.Error("LoadFS should fail on invalid JSON")
	}
	if _, err := LoadFS[PaletteFile](fsys, "missing.json"); err == nil {
		t.Error("LoadFS should fail on a missing file")
	}
}
