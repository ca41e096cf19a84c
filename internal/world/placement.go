package world

// placeRoom draws one candidate room and accepts it if it keeps a one-cell
// margin from every accepted room. It returns false for no placement.
func (g *Generator) placeRoom() (Room, bool) {
	w := g.rng.Range(MinRoomWidth, MaxRoomWidth+1)
	h := g.rng.Range(MinRoomHeight, MaxRoomHeight+1)

	// x is drawn from [1, width-w-1); an empty range means the room cannot fit
	if g.width-w-1 <= 1 || g.height-h-1 <= 1 {
		return Room{}, false
	}
	candidate := Room{
		X:      g.rng.Range(1, g.width-w-1),
		Y:      g.rng.Range(1, g.height-h-1),
		Width:  w,
		Height: h,
	}

	for _, existing := range g.rooms {
		if candidate.Overlaps(existing) {
			return Room{}, false
		}
	}
	return candidate, true
}

// tryPlaceRoom retries placeRoom up to MaxAttempts times and carves the first
// accepted room.
func (g *Generator) tryPlaceRoom() (int, bool) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		room, ok := g.placeRoom()
		if !ok {
			continue
		}
		g.rooms = append(g.rooms, room)
		room.carve(g.grid)
		return len(g.rooms) - 1, true
	}
	return -1, false
}

// placeInitialRooms populates up to TargetRooms rooms. A room that exhausts its
// attempt budget ends the phase with whatever was placed.
func (g *Generator) placeInitialRooms() {
	for len(g.rooms) < TargetRooms {
		if _, ok := g.tryPlaceRoom(); !ok {
			g.log.Debug("initial placement budget exhausted")
			break
		}
		g.stats.InitialRooms++
		g.metrics.IncRoomsPlaced("initial")
	}
}
