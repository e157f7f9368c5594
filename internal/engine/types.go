package engine

import (
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
)

// Stages are the in-battle stat modifiers, each within [-6, 6]
type Stages struct {
	HP       int
	Atk      int
	Def      int
	SAtk     int
	SDef     int
	Spd      int
	Evasion  int
	Accuracy int
}

// Combatant is a snapshot of one side of the exchange
type Combatant struct {
	Level    int
	MaxHP    int
	Stats    dex.Stats
	Stages   Stages
	Ailments []string
	Types    []string
}

// HasType reports whether the combatant carries the named type
func (c *Combatant) HasType(name string) bool {
	id := dex.TypeID(name)
	if id == 0 {
		return false
	}
	for _, t := range c.Types {
		if dex.TypeID(t) == id {
			return true
		}
	}
	return false
}

// ResolveMoveInput is one move use
type ResolveMoveInput struct {
	Move     *dex.Move
	Attacker *Combatant
	Defender *Combatant
}

// MoveResult is the outcome of a move use. Damage and Healing are truncated
// toward zero; the Raw fields keep the exact values. Damage is reported
// even when Success is false.
type MoveResult struct {
	Success     bool
	Hits        int
	Damage      int
	RawDamage   float64
	Healing     int
	RawHealing  float64
	Ailment     string
	Messages    []string
	StatChanges []dex.StatChange
}

// Effectiveness messages
const (
	MessageImmune           = "It's not effective..."
	MessageSuperEffective   = "It's super effective!"
	MessageNotVeryEffective = "It's not very effective..."
)
