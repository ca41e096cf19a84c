// Package session holds the state of one play-through: the generated grid,
// the avatar, and the coins collected so far.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/samdwyer/lantern/internal/entity"
	"github.com/samdwyer/lantern/internal/world"
)

// Params identify a dungeon. The same params always generate the same grid.
type Params struct {
	Width  int
	Height int
	Seed   int64
}

// Record is the persisted part of a session. The grid is not stored: it is
// regenerated from the seed and size, and the collected coins are removed again.
type Record struct {
	ID        string        `json:"id"`
	Seed      int64         `json:"seed"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Avatar    world.Point   `json:"avatar"`
	Collected []world.Point `json:"collected"`
	SavedAt   time.Time     `json:"saved_at"`
}

// Session is owned by the game loop and mutated only from it.
type Session struct {
	Seed       int64
	Grid       *world.Grid
	Avatar     *entity.Avatar
	TotalItems int
	Collected  []world.Point
	LOSEnabled bool

	// Dropped counts recorded coins that were not coins on the regenerated
	// grid. Only Restore sets it.
	Dropped int

	gen *world.Generator
}

// MoveResult describes what a single step did.
type MoveResult struct {
	Moved     bool
	Collected bool
	Won       bool
}

// New generates a fresh dungeon and places the avatar on the first floor cell.
func New(ctx context.Context, p Params, opts ...world.Option) (*Session, error) {
	gen := world.NewGenerator(p.Width, p.Height, p.Seed, opts...)
	grid := gen.Generate(ctx)

	spawn, err := world.FindSpawn(grid)
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", p.Seed, err)
	}

	return &Session{
		Seed:       p.Seed,
		Grid:       grid,
		Avatar:     entity.NewAvatar(spawn),
		TotalItems: gen.ItemCount(),
		gen:        gen,
	}, nil
}

// Restore regenerates the dungeon of a saved record, turns the already
// collected coins back into floor and puts the avatar where it was. The
// record's size wins over p; p only fills in for records without one.
// Recorded positions that are not coins on the regenerated grid are dropped
// and counted in Dropped.
func Restore(ctx context.Context, p Params, rec Record, opts ...world.Option) (*Session, error) {
	p.Seed = rec.Seed
	if rec.Width > 0 && rec.Height > 0 {
		p.Width, p.Height = rec.Width, rec.Height
	}
	s, err := New(ctx, p, opts...)
	if err != nil {
		return nil, err
	}

	for _, pos := range rec.Collected {
		if s.Grid.At(pos) != world.TileItem {
			s.Dropped++
			continue
		}
		s.Grid.Set(pos, world.TileFloor)
		s.Collected = append(s.Collected, pos)
	}

	if s.Grid.IsPassable(rec.Avatar) {
		s.Avatar.MoveTo(rec.Avatar)
	}
	return s, nil
}

// Move steps the avatar by dx, dy. Walls, empty space and the grid edge block
// the step. Stepping on a coin collects it.
func (s *Session) Move(dx, dy int) MoveResult {
	target := s.Avatar.Target(dx, dy)
	if !s.Grid.IsPassable(target) {
		return MoveResult{}
	}

	res := MoveResult{Moved: true}
	if s.Grid.At(target) == world.TileItem {
		s.Grid.Set(target, world.TileFloor)
		s.Collected = append(s.Collected, target)
		res.Collected = true
	}
	s.Avatar.MoveTo(target)
	res.Won = s.Won()
	return res
}

// Won reports whether every placed coin has been collected.
func (s *Session) Won() bool {
	return s.TotalItems > 0 && len(s.Collected) >= s.TotalItems
}

// CoinsCollected returns the number of coins picked up so far.
func (s *Session) CoinsCollected() int {
	return len(s.Collected)
}

// ToggleLOS switches line of sight rendering on or off.
func (s *Session) ToggleLOS() bool {
	s.LOSEnabled = !s.LOSEnabled
	return s.LOSEnabled
}

// Visibility recomputes what the avatar can see.
func (s *Session) Visibility(radius int) *world.VisibilityMask {
	return s.gen.ComputeVisibility(s.Avatar.Pos, radius)
}

// Record snapshots the session for saving.
func (s *Session) Record() Record {
	collected := make([]world.Point, len(s.Collected))
	copy(collected, s.Collected)
	return Record{
		Seed:      s.Seed,
		Width:     s.Grid.Width,
		Height:    s.Grid.Height,
		Avatar:    s.Avatar.Pos,
		Collected: collected,
	}
}
