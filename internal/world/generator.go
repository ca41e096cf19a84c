package world

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/lantern/internal/rng"
	"github.com/samdwyer/lantern/internal/telemetry"
)

const (
	// Default dungeon dimensions
	DefaultWidth  = 80
	DefaultHeight = 30

	// Room size limits, inclusive, border ring included
	MinRoomWidth  = 6
	MaxRoomWidth  = 14
	MinRoomHeight = 6
	MaxRoomHeight = 12

	TargetRooms   = 8    // rooms wanted by the initial population
	MaxAttempts   = 1000 // placement attempts per room
	MinFillRatio  = 0.7  // refinement stops once reached
	MaxExtraRooms = 100  // refinement room budget
	ItemTarget    = 10   // coins per dungeon

	// DefaultLOSRadius is the line of sight radius used by the game.
	DefaultLOSRadius = 8

	// Smallest grid where the smallest room and its margin can fit.
	MinGridWidth  = MinRoomWidth + 3
	MinGridHeight = MinRoomHeight + 3
)

var (
	// ErrGridTooSmall is returned by ValidateDimensions for grids that cannot
	// hold a single room.
	ErrGridTooSmall = errors.New("grid too small for any room")
	// ErrNoSpawn means the grid has no floor cell to start on.
	ErrNoSpawn = errors.New("no valid spawn")
)

// ValidateDimensions reports ErrGridTooSmall when no room could ever be
// placed. Generation itself does not call it: an undersized generator simply
// yields an empty grid.
func ValidateDimensions(width, height int) error {
	if width < MinGridWidth || height < MinGridHeight {
		return fmt.Errorf("%dx%d (minimum %dx%d): %w",
			width, height, MinGridWidth, MinGridHeight, ErrGridTooSmall)
	}
	return nil
}

// RefineStop records why the refinement loop ended.
type RefineStop int

const (
	// RefineNotRun means Generate has not been called.
	RefineNotRun RefineStop = iota
	// RefineFillReached means the fill ratio met MinFillRatio.
	RefineFillReached
	// RefineExtraBudget means MaxExtraRooms rooms were added.
	RefineExtraBudget
	// RefinePlacementFailed means a placement round found no space.
	RefinePlacementFailed
)

// String returns a human-readable stop reason.
func (s RefineStop) String() string {
	switch s {
	case RefineNotRun:
		return "not_run"
	case RefineFillReached:
		return "fill_reached"
	case RefineExtraBudget:
		return "extra_budget"
	case RefinePlacementFailed:
		return "placement_failed"
	default:
		return "unknown"
	}
}

// Stats summarizes a generation run.
type Stats struct {
	InitialRooms int
	ExtraRooms   int
	Hallways     int
	FillRatio    float64
	Items        int
	Stop         RefineStop
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// Generator owns the grid and the random stream for one dungeon.
//
// Every step draws from the same stream in a fixed order: initial placement,
// MST connection, refinement, then item shuffling. A fresh Generator with the
// same size and seed reproduces the same grid. Calling Generate again on the
// same instance keeps consuming the stream and does not.
type Generator struct {
	width, height int
	seed          int64

	rng      *rng.Rand
	grid     *Grid
	rooms    []Room
	hallways []Hallway
	items    int
	stats    Stats

	log     *zap.Logger
	metrics *telemetry.Metrics
}

// NewGenerator creates a generator over an all-empty grid.
func NewGenerator(width, height int, seed int64, opts ...Option) *Generator {
	g := &Generator{
		width:  width,
		height: height,
		seed:   seed,
		rng:    rng.New(seed),
		grid:   NewGrid(width, height),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs placement, connection, refinement, wall synthesis and item
// placement, then returns the grid. The caller owns further mutation.
func (g *Generator) Generate(ctx context.Context) *Grid {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	_, placeSpan := tracer.Start(ctx, "dungeon.place_rooms")
	g.placeInitialRooms()
	placeSpan.End()

	_, mstSpan := tracer.Start(ctx, "dungeon.connect_mst")
	g.connectMST()
	mstSpan.End()

	_, refineSpan := tracer.Start(ctx, "dungeon.refine")
	g.refine()
	refineSpan.SetAttributes(
		attribute.Int("dungeon.extra_rooms", g.stats.ExtraRooms),
		attribute.String("dungeon.refine_stop", g.stats.Stop.String()),
	)
	refineSpan.End()

	g.synthesizeWalls()
	g.placeItems()

	g.stats.Hallways = len(g.hallways)
	g.stats.FillRatio = g.grid.FillRatio()
	g.stats.Items = g.items
	elapsed := time.Since(startTime)

	g.metrics.ObserveGeneration(elapsed, g.stats.FillRatio, g.items)

	span.SetAttributes(
		attribute.Int("dungeon.width", g.width),
		attribute.Int("dungeon.height", g.height),
		attribute.Int64("dungeon.seed", g.seed),
		attribute.Int("dungeon.room_count", len(g.rooms)),
		attribute.Int("dungeon.hallway_count", len(g.hallways)),
		attribute.Float64("dungeon.fill_ratio", g.stats.FillRatio),
		attribute.Int("dungeon.items", g.items),
		attribute.Int64("dungeon.generation_ms", elapsed.Milliseconds()),
	)

	g.log.Debug("dungeon generated",
		zap.Int64("seed", g.seed),
		zap.Int("rooms", len(g.rooms)),
		zap.Int("hallways", len(g.hallways)),
		zap.Float64("fill_ratio", g.stats.FillRatio),
		zap.String("refine_stop", g.stats.Stop.String()),
		zap.Int("items", g.items),
		zap.Uint64("draws", g.rng.Draws()),
	)

	return g.grid
}

// Grid returns the grid being generated.
func (g *Generator) Grid() *Grid {
	return g.grid
}

// Seed returns the seed the generator was built with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// ItemCount returns how many items the last Generate placed.
func (g *Generator) ItemCount() int {
	return g.items
}

// Rooms returns the accepted rooms in placement order.
func (g *Generator) Rooms() []Room {
	return g.rooms
}

// Hallways returns the carved hallways in carving order.
func (g *Generator) Hallways() []Hallway {
	return g.hallways
}

// Stats returns a summary of the last Generate.
func (g *Generator) Stats() Stats {
	return g.stats
}

// ComputeVisibility runs line of sight over the generator's grid.
func (g *Generator) ComputeVisibility(origin Point, radius int) *VisibilityMask {
	g.metrics.IncVisibility()
	return ComputeVisibility(g.grid, origin, radius)
}
