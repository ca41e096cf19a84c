package world

import (
	"testing"

	"github.com/samdwyer/lantern/internal/rng"
)

func TestTileString(t *testing.T) {
	tests := []struct {
		tile     Tile
		expected string
		passable bool
	}{
		{TileEmpty, "empty", false},
		{TileFloor, "floor", true},
		{TileWall, "wall", false},
		{TileItem, "item", true},
		{Tile(99), "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.tile.String(); got != tt.expected {
			t.Errorf("Tile(%d).String() = %q, want %q", tt.tile, got, tt.expected)
		}
		if got := tt.tile.IsPassable(); got != tt.passable {
			t.Errorf("Tile(%d).IsPassable() = %v, want %v", tt.tile, got, tt.passable)
		}
	}
}

func TestRoomOverlapsWithMargin(t *testing.T) {
	base := Room{X: 10, Y: 10, Width: 6, Height: 6}
	tests := []struct {
		name  string
		other Room
		want  bool
	}{
		{"same", base, true},
		{"touching", Room{X: 16, Y: 10, Width: 6, Height: 6}, true},
		{"one cell gap", Room{X: 17, Y: 10, Width: 6, Height: 6}, true},
		{"two cell gap", Room{X: 18, Y: 10, Width: 6, Height: 6}, false},
		{"far below", Room{X: 10, Y: 30, Width: 6, Height: 6}, false},
	}

	for _, tt := range tests {
		if got := base.Overlaps(tt.other); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
		if got := tt.other.Overlaps(base); got != tt.want {
			t.Errorf("%s: Overlaps is not symmetric", tt.name)
		}
	}
}

func TestRoomInterior(t *testing.T) {
	r := Room{X: 2, Y: 3, Width: 6, Height: 7}
	cells := r.Interior()

	if len(cells) != 4*5 {
		t.Fatalf("Interior() has %d cells, want 20", len(cells))
	}
	if cells[0] != Pt(3, 4) {
		t.Errorf("first interior cell = %v, want (3,4)", cells[0])
	}
	for _, p := range cells {
		if p.X <= r.X || p.X >= r.X+r.Width-1 || p.Y <= r.Y || p.Y >= r.Y+r.Height-1 {
			t.Errorf("interior cell %v touches the border", p)
		}
	}
}

func TestRoomRandomInterior(t *testing.T) {
	r := Room{X: 5, Y: 5, Width: 6, Height: 6}
	src := rng.New(1)
	interior := make(map[Point]bool)
	for _, p := range r.Interior() {
		interior[p] = true
	}

	for i := 0; i < 200; i++ {
		if p := r.RandomInterior(src); !interior[p] {
			t.Fatalf("RandomInterior returned %v outside the interior", p)
		}
	}
}

func TestLHallway(t *testing.T) {
	a, b := Pt(2, 2), Pt(5, 4)

	h := NewLHallway(a, b, true)
	want := []Point{{2, 2}, {3, 2}, {4, 2}, {5, 2}, {5, 3}, {5, 4}}
	assertPath(t, "horizontal first", h.Path, want)

	v := NewLHallway(a, b, false)
	want = []Point{{2, 2}, {2, 3}, {2, 4}, {3, 4}, {4, 4}, {5, 4}}
	assertPath(t, "vertical first", v.Path, want)

	back := NewLHallway(b, a, true)
	want = []Point{{5, 4}, {4, 4}, {3, 4}, {2, 4}, {2, 3}, {2, 2}}
	assertPath(t, "reversed", back.Path, want)

	single := NewLHallway(a, a, true)
	assertPath(t, "single cell", single.Path, []Point{a})
}

func TestHallwayCarveOverwrites(t *testing.T) {
	g := NewGrid(6, 3)
	g.Set(Pt(2, 1), TileWall)
	NewLHallway(Pt(0, 1), Pt(5, 1), true).carve(g)

	for x := 0; x < 6; x++ {
		if g.At(Pt(x, 1)) != TileFloor {
			t.Errorf("(%d,1) = %v, want floor", x, g.At(Pt(x, 1)))
		}
	}
}

func assertPath(t *testing.T, name string, got, want []Point) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: path length %d, want %d (%v)", name, len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: step %d = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(Pt(-1, 0), TileFloor)
	g.Set(Pt(4, 0), TileFloor)

	if g.Count(TileFloor) != 0 {
		t.Error("out of bounds Set should be ignored")
	}
	if g.At(Pt(10, 10)) != TileEmpty {
		t.Error("out of bounds At should be empty")
	}

	g.Set(Pt(1, 1), TileFloor)
	g.Set(Pt(2, 1), TileItem)
	if got := g.FillRatio(); got != 2.0/12.0 {
		t.Errorf("FillRatio() = %v, want %v", got, 2.0/12.0)
	}
}
