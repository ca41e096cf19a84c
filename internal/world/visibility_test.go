package world

import (
	"context"
	"testing"
)

func TestVisibilityBlockedByWall(t *testing.T) {
	g := NewGrid(5, 5)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			g.Set(Pt(x, y), TileFloor)
		}
	}
	g.Set(Pt(2, 2), TileWall)

	mask := ComputeVisibility(g, Pt(0, 2), 8)
	if mask.Visible(Pt(4, 2)) {
		t.Error("(4,2) should be hidden behind the wall at (2,2)")
	}
	if !mask.Visible(Pt(2, 2)) {
		t.Error("the wall itself should be visible")
	}

	g.Set(Pt(2, 2), TileFloor)
	mask = ComputeVisibility(g, Pt(0, 2), 8)
	if !mask.Visible(Pt(4, 2)) {
		t.Error("(4,2) should be visible once the wall is removed")
	}
}

func TestVisibilityRadius(t *testing.T) {
	g := NewGrid(30, 30)
	origin := Pt(15, 15)
	radius := 5

	mask := ComputeVisibility(g, origin, radius)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			dx, dy := x-origin.X, y-origin.Y
			inside := dx*dx+dy*dy <= radius*radius
			if got := mask.Visible(Pt(x, y)); got != inside {
				t.Errorf("(%d,%d) visible = %v, want %v", x, y, got, inside)
			}
		}
	}
	if !mask.Visible(origin) {
		t.Error("origin should always be visible")
	}
}

func TestVisibilityNeverBeyondRadius(t *testing.T) {
	_, grid := generate(t, DefaultWidth, DefaultHeight, 21)
	origin, err := FindSpawn(grid)
	if err != nil {
		t.Fatal(err)
	}

	mask := ComputeVisibility(grid, origin, DefaultLOSRadius)
	r2 := DefaultLOSRadius * DefaultLOSRadius
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			dx, dy := x-origin.X, y-origin.Y
			if dx*dx+dy*dy > r2 && mask.Visible(Pt(x, y)) {
				t.Errorf("(%d,%d) is visible beyond the radius", x, y)
			}
		}
	}
}

func TestVisibilityRecomputedPerCall(t *testing.T) {
	g := NewGenerator(DefaultWidth, DefaultHeight, 4)
	grid := g.Generate(context.Background())
	origin, err := FindSpawn(grid)
	if err != nil {
		t.Fatal(err)
	}

	before := g.ComputeVisibility(origin, DefaultLOSRadius)
	// Opening the map up must be reflected by the next query
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if grid.Tiles[y][x] == TileWall {
				grid.Tiles[y][x] = TileFloor
			}
		}
	}
	after := g.ComputeVisibility(origin, DefaultLOSRadius)

	if after.Count() < before.Count() {
		t.Errorf("visible cells dropped from %d to %d after removing walls", before.Count(), after.Count())
	}
	if before.Visible(Pt(-1, -1)) {
		t.Error("off-grid cells are never visible")
	}
}

func TestVisibilityNegativeRadius(t *testing.T) {
	mask := ComputeVisibility(NewGrid(5, 5), Pt(2, 2), -1)
	if mask.Count() != 0 {
		t.Errorf("negative radius made %d cells visible", mask.Count())
	}
}
