package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-defense/internal/core"
)

// EventKind identifies a notification raised by the simulation.
type EventKind uint8

const (
	EventMissileLaunched EventKind = iota
	EventPlayerBlast
	EventThreatSpawned
	EventThreatImpact
	EventThreatDestroyed
	EventStructureDestroyed
	EventBatteryDestroyed
	EventGameWon
	EventGameLost
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventMissileLaunched:
		return "missile-launched"
	case EventPlayerBlast:
		return "player-blast"
	case EventThreatSpawned:
		return "threat-spawned"
	case EventThreatImpact:
		return "threat-impact"
	case EventThreatDestroyed:
		return "threat-destroyed"
	case EventStructureDestroyed:
		return "structure-destroyed"
	case EventBatteryDestroyed:
		return "battery-destroyed"
	case EventGameWon:
		return "game-won"
	case EventGameLost:
		return "game-lost"
	default:
		return "unknown"
	}
}

// Event is a one-shot notification for audio/UI collaborators. Events are not
// part of the simulation state; dropping them has no effect on later frames.
type Event struct {
	Kind   EventKind
	Frame  uint64
	Pos    core.Vec2
	Entity EntityID // Missile, threat or explosion involved, if any
	Index  int      // Battery or structure ID, if any
}

// String formats the event for logs.
func (e Event) String() string {
	return fmt.Sprintf("%s@%d (%.0f,%.0f)", e.Kind, e.Frame, e.Pos.X, e.Pos.Y)
}
