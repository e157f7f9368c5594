package battle

import (
	"time"

	"github.com/KirkDiggler/dex-api/internal/engine"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
)

// CombatantInput describes one side by species. Zero values fall back to
// the species: MaxHP to base HP, Stats to base stats, Types to the
// species types.
type CombatantInput struct {
	SpeciesID int
	Level     int
	MaxHP     int
	Stats     *dex.Stats
	Types     []string
	Stages    engine.Stages
	Ailments  []string
}

// ResolveMoveInput selects a move by id or, when the id is zero, by name
type ResolveMoveInput struct {
	MoveID   int
	MoveName string
	Attacker CombatantInput
	Defender CombatantInput
}

// ResolveMoveOutput is a resolved turn
type ResolveMoveOutput struct {
	TurnID     string
	ResolvedAt time.Time
	Move       *dex.Move
	Result     *engine.MoveResult
}
