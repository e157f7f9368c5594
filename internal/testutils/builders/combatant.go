// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/dex-api/internal/engine"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
)

// CombatantBuilder provides a fluent interface for building test combatants
type CombatantBuilder struct {
	combatant *engine.Combatant
}

// NewCombatantBuilder creates a level 50 combatant with 100 in every stat
// and no type
func NewCombatantBuilder() *CombatantBuilder {
	return &CombatantBuilder{
		combatant: &engine.Combatant{
			Level: 50,
			MaxHP: 100,
			Stats: dex.Stats{HP: 100, Atk: 100, Def: 100, SAtk: 100, SDef: 100, Spd: 100},
		},
	}
}

// FromSpecies copies base stats and types from a species
func (b *CombatantBuilder) FromSpecies(sp *dex.Species) *CombatantBuilder {
	b.combatant.Stats = sp.BaseStats
	b.combatant.MaxHP = sp.BaseStats.HP
	b.combatant.Types = append([]string(nil), sp.Types...)
	return b
}

// WithLevel sets the level
func (b *CombatantBuilder) WithLevel(level int) *CombatantBuilder {
	b.combatant.Level = level
	return b
}

// WithMaxHP sets max hp
func (b *CombatantBuilder) WithMaxHP(hp int) *CombatantBuilder {
	b.combatant.MaxHP = hp
	return b
}

// WithStats replaces the stat block
func (b *CombatantBuilder) WithStats(stats dex.Stats) *CombatantBuilder {
	b.combatant.Stats = stats
	return b
}

// WithStages replaces the stage block
func (b *CombatantBuilder) WithStages(stages engine.Stages) *CombatantBuilder {
	b.combatant.Stages = stages
	return b
}

// WithTypes sets the types
func (b *CombatantBuilder) WithTypes(types ...string) *CombatantBuilder {
	b.combatant.Types = types
	return b
}

// WithAilments sets the active ailments
func (b *CombatantBuilder) WithAilments(ailments ...string) *CombatantBuilder {
	b.combatant.Ailments = ailments
	return b
}

// Build returns the combatant
func (b *CombatantBuilder) Build() *engine.Combatant {
	return b.combatant
}
