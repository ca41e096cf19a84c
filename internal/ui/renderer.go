package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/samdwyer/lantern/internal/gamedata"
	"github.com/samdwyer/lantern/internal/session"
	"github.com/samdwyer/lantern/internal/world"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen  *Screen
	palette *gamedata.Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the dungeon, the avatar and the HUD line below the map. With
// line of sight on, cells the avatar cannot see are drawn as hidden.
func (r *Renderer) Render(s *session.Session, radius int) {
	r.screen.Clear()

	var mask *world.VisibilityMask
	if s.LOSEnabled {
		mask = s.Visibility(radius)
	}

	grid := s.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			p := world.Pt(x, y)
			cell := r.palette.Tile(grid.At(p))
			if mask != nil && !mask.Visible(p) {
				cell = r.palette.Hidden
			}
			r.screen.SetContent(x, y, cell.Rune, cell.Style)
		}
	}

	r.screen.SetContent(s.Avatar.Pos.X, s.Avatar.Pos.Y, r.palette.Avatar.Rune, r.palette.Avatar.Style)
	r.screen.DrawText(0, grid.Height, HUDLine(s), r.palette.HUD.Style)

	r.screen.Show()
}

// HUDLine formats the status line.
func HUDLine(s *session.Session) string {
	los := "OFF"
	if s.LOSEnabled {
		los = "ON"
	}
	return fmt.Sprintf("Coins: %d/%d LOS: %s", s.CoinsCollected(), s.TotalItems, los)
}

// RenderLines clears the screen and draws lines centered on it.
func (r *Renderer) RenderLines(lines ...string) {
	r.screen.Clear()

	width, height := r.screen.Size()
	top := height/2 - len(lines)
	for i, line := range lines {
		x := (width - utf8.RuneCountInString(line)) / 2
		r.screen.DrawText(max(x, 0), max(top+i*2, 0), line, r.palette.HUD.Style)
	}

	r.screen.Show()
}

// RenderMessage displays a message on row y without clearing the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, r.palette.HUD.Style)
	r.screen.Show()
}
