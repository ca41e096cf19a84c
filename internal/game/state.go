// Package game provides the main game loop and state management.
package game

// State represents which screen the game is on.
type State int

const (
	// StateMenu is the title menu.
	StateMenu State = iota
	// StateSeedEntry collects digits for a new game's seed.
	StateSeedEntry
	// StateSlotSelect picks a save slot to load.
	StateSlotSelect
	// StatePlay is the exploration mode.
	StatePlay
	// StateCommand follows ':' in play and waits for the save target.
	StateCommand
	// StateVictory is shown once every coin is collected.
	StateVictory
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateSeedEntry:
		return "seed_entry"
	case StateSlotSelect:
		return "slot_select"
	case StatePlay:
		return "play"
	case StateCommand:
		return "command"
	case StateVictory:
		return "victory"
	default:
		return "unknown"
	}
}
