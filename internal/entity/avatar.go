// Package entity provides the things that move around the dungeon.
package entity

import "github.com/samdwyer/lantern/internal/world"

// Avatar is the player's position in the dungeon.
type Avatar struct {
	Pos world.Point
}

// NewAvatar creates an avatar at the given position.
func NewAvatar(pos world.Point) *Avatar {
	return &Avatar{Pos: pos}
}

// Target returns where a move by dx, dy would land.
func (a *Avatar) Target(dx, dy int) world.Point {
	return a.Pos.Add(dx, dy)
}

// MoveTo places the avatar at p.
func (a *Avatar) MoveTo(p world.Point) {
	a.Pos = p
}
