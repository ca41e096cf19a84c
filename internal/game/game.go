package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/lantern/internal/config"
	"github.com/samdwyer/lantern/internal/save"
	"github.com/samdwyer/lantern/internal/session"
	"github.com/samdwyer/lantern/internal/telemetry"
	"github.com/samdwyer/lantern/internal/ui"
	"github.com/samdwyer/lantern/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *save.Store
	screen   *ui.Screen
	renderer *ui.Renderer
	genOpts  []world.Option

	session   *session.Session
	slot      int // slot the session was loaded from, -1 for none
	state     State
	seedInput string
	message   string
	running   bool
}

// New creates a new game instance. Generator options (logger, metrics) are
// passed to every dungeon the game generates.
func New(cfg *config.Config, log *zap.Logger, store *save.Store, screen *ui.Screen, renderer *ui.Renderer, opts ...world.Option) *Game {
	return &Game{
		cfg:      cfg,
		log:      log,
		store:    store,
		screen:   screen,
		renderer: renderer,
		genOpts:  opts,
		slot:     -1,
		state:    StateMenu,
		running:  true,
	}
}

// State returns the current screen.
func (g *Game) State() State {
	return g.state
}

// Session returns the session being played, or nil.
func (g *Game) Session() *session.Session {
	return g.session
}

// Slot returns the save slot the session came from or was last saved to
// on exit, or -1.
func (g *Game) Slot() int {
	return g.slot
}

// Running reports whether the loop should continue.
func (g *Game) Running() bool {
	return g.running
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	for g.running {
		g.draw()

		switch ev := g.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if err := g.HandleKey(ctx, ev); err != nil {
				return err
			}
		case *tcell.EventResize:
			g.screen.Sync()
		case nil:
			// screen finalized
			return nil
		}
	}
	return nil
}

// draw renders the current screen.
func (g *Game) draw() {
	switch g.state {
	case StateMenu:
		g.renderer.RenderLines("LANTERN", "(N) New Game", "(L) Load Game", "(P) Load from Slot", "(Q) Quit", g.message)
	case StateSeedEntry:
		g.renderer.RenderLines("Enter Seed, Then Press S to Start:", g.seedInput)
	case StateSlotSelect:
		g.renderer.RenderLines("Load From Slot",
			fmt.Sprintf("Press 1-%d to load a save slot", save.MaxSlots),
			"Press B to go back", g.message)
	case StatePlay, StateCommand:
		g.renderer.Render(g.session, g.cfg.LOSRadius)
		if g.state == StateCommand {
			g.renderer.RenderMessage(fmt.Sprintf(":  Q save & quit, 1-%d save to slot & quit  %s", save.MaxSlots, g.message), g.session.Grid.Height+1)
		}
	case StateVictory:
		g.renderer.RenderLines("VICTORY!",
			fmt.Sprintf("You collected all %d coins!", g.session.TotalItems),
			"Press any key to exit")
	}
}

// HandleKey processes a single key event. A returned error is fatal.
func (g *Game) HandleKey(ctx context.Context, ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return nil
	}

	switch g.state {
	case StateMenu:
		return g.handleMenu(ctx, ev)
	case StateSeedEntry:
		return g.handleSeedEntry(ctx, ev)
	case StateSlotSelect:
		return g.handleSlotSelect(ctx, ev)
	case StatePlay:
		g.handlePlay(ev)
	case StateCommand:
		g.handleCommand(ev)
	case StateVictory:
		g.running = false
	}
	return nil
}

func (g *Game) handleMenu(ctx context.Context, ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyEscape {
		g.running = false
		return nil
	}
	if ev.Key() != tcell.KeyRune {
		return nil
	}

	switch ev.Rune() {
	case 'n', 'N':
		if g.cfg.Seed != 0 {
			return g.startGame(ctx, g.cfg.Seed)
		}
		g.seedInput = ""
		g.state = StateSeedEntry
	case 'l', 'L':
		return g.loadSlot(ctx, save.QuickSlot)
	case 'p', 'P':
		g.message = ""
		g.state = StateSlotSelect
	case 'q', 'Q':
		g.running = false
	}
	return nil
}

func (g *Game) handleSeedEntry(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape:
		g.state = StateMenu
		return nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(g.seedInput) > 0 {
			g.seedInput = g.seedInput[:len(g.seedInput)-1]
		}
		return nil
	case tcell.KeyRune:
	default:
		return nil
	}

	ch := ev.Rune()
	switch {
	case ch >= '0' && ch <= '9':
		g.seedInput += string(ch)
	case ch == 's' || ch == 'S':
		if g.seedInput == "" {
			return nil
		}
		seed, err := strconv.ParseInt(g.seedInput, 10, 64)
		if err != nil {
			// more digits than an int64 holds
			g.seedInput = ""
			return nil
		}
		return g.startGame(ctx, seed)
	}
	return nil
}

func (g *Game) handleSlotSelect(ctx context.Context, ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyEscape {
		g.state = StateMenu
		return nil
	}
	if ev.Key() != tcell.KeyRune {
		return nil
	}

	ch := ev.Rune()
	switch {
	case ch >= '1' && ch <= '0'+save.MaxSlots:
		return g.loadSlot(ctx, int(ch-'0'))
	case ch == 'b' || ch == 'B':
		g.message = ""
		g.state = StateMenu
	}
	return nil
}

func (g *Game) handlePlay(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		g.running = false
		return
	}
	if dx, dy, ok := moveDelta(ev); ok {
		g.tryMove(dx, dy)
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}

	ch := ev.Rune()
	switch {
	case ch == ':':
		g.message = g.slotHint()
		g.state = StateCommand
	case ch >= '1' && ch <= '0'+save.MaxSlots:
		if g.saveTo(int(ch - '0')) {
			g.message = fmt.Sprintf("Saved to slot %c", ch)
			g.session = nil
			g.state = StateMenu
		}
	case ch == 'o' || ch == 'O':
		on := g.session.ToggleLOS()
		g.log.Debug("line of sight toggled", zap.Bool("enabled", on))
	}
}

func (g *Game) handleCommand(ev *tcell.EventKey) {
	g.state = StatePlay
	g.message = ""
	if ev.Key() != tcell.KeyRune {
		return
	}

	ch := ev.Rune()
	switch {
	case ch == 'q' || ch == 'Q':
		if g.saveTo(save.QuickSlot) {
			g.running = false
		}
	case ch >= '1' && ch <= '0'+save.MaxSlots:
		slot := int(ch - '0')
		if g.saveTo(slot) {
			g.slot = slot
			g.running = false
		}
	default:
		g.log.Debug("save cancelled", zap.String("key", string(ch)))
	}
}

// slotHint names the lowest free numbered slot for the command prompt.
func (g *Game) slotHint() string {
	slot, ok, err := g.store.FirstAvailableSlot()
	switch {
	case err != nil:
		g.log.Warn("slot scan failed", zap.Error(err))
		return ""
	case !ok:
		return "(all slots in use)"
	default:
		return fmt.Sprintf("(slot %d is free)", slot)
	}
}

// moveDelta maps WASD and the arrow keys to a step.
func moveDelta(ev *tcell.EventKey) (int, int, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return 0, -1, true
	case tcell.KeyDown:
		return 0, 1, true
	case tcell.KeyLeft:
		return -1, 0, true
	case tcell.KeyRight:
		return 1, 0, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return 0, -1, true
		case 's', 'S':
			return 0, 1, true
		case 'a', 'A':
			return -1, 0, true
		case 'd', 'D':
			return 1, 0, true
		}
	}
	return 0, 0, false
}

// tryMove attempts to move the avatar by the given delta.
func (g *Game) tryMove(dx, dy int) {
	res := g.session.Move(dx, dy)
	if res.Collected {
		g.log.Debug("coin collected",
			zap.Int("collected", g.session.CoinsCollected()),
			zap.Int("total", g.session.TotalItems),
		)
	}
	if res.Won {
		g.log.Info("all coins collected", zap.Int64("seed", g.session.Seed))
		g.state = StateVictory
	}
}

// params returns the generation parameters for a seed.
func (g *Game) params(seed int64) session.Params {
	return session.Params{Width: g.cfg.Width, Height: g.cfg.Height, Seed: seed}
}

// startGame generates a new dungeon. A dungeon without floor is a
// configuration problem and ends the game with an error.
func (g *Game) startGame(ctx context.Context, seed int64) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	s, err := session.New(ctx, g.params(seed), g.genOpts...)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to start game: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.Int("avatar.x", s.Avatar.Pos.X),
		attribute.Int("avatar.y", s.Avatar.Pos.Y),
		attribute.Int("game.total_items", s.TotalItems),
	)
	g.log.Info("new game", zap.Int64("seed", seed), zap.Int("items", s.TotalItems))

	g.begin(s, -1)
	return nil
}

// loadSlot restores a saved session. Missing or unreadable saves keep the
// player on the menu with a message.
func (g *Game) loadSlot(ctx context.Context, slot int) error {
	rec, err := g.store.Load(slot)
	if err != nil {
		if errors.Is(err, save.ErrSlotEmpty) {
			g.message = "No saved game"
		} else {
			g.message = fmt.Sprintf("Failed to load slot %d", slot)
			g.log.Warn("load failed", zap.Int("slot", slot), zap.Error(err))
		}
		g.state = StateMenu
		return nil
	}

	ctx, span := telemetry.Tracer("game").Start(ctx, "game.restore")
	defer span.End()
	span.SetAttributes(attribute.Int("save.slot", slot), attribute.Int64("game.seed", rec.Seed))

	s, err := session.Restore(ctx, g.params(rec.Seed), rec, g.genOpts...)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to restore slot %d: %w", slot, err)
	}
	if s.Dropped > 0 {
		g.log.Warn("saved coins missing from regenerated dungeon",
			zap.Int("slot", slot),
			zap.Int("dropped", s.Dropped),
			zap.Int("width", s.Grid.Width),
			zap.Int("height", s.Grid.Height),
		)
	}

	g.begin(s, slot)
	return nil
}

func (g *Game) begin(s *session.Session, slot int) {
	g.session = s
	g.slot = slot
	g.message = ""
	g.state = StatePlay
}

// saveTo writes the session to a slot and reports success.
func (g *Game) saveTo(slot int) bool {
	if _, err := g.store.Save(slot, g.session.Record()); err != nil {
		g.log.Error("save failed", zap.Int("slot", slot), zap.Error(err))
		g.message = fmt.Sprintf("Save failed: %v", err)
		return false
	}
	return true
}
