package dex

import (
	"strconv"
	"strings"
)

// DamageClass splits moves into status, physical and special
type DamageClass int

// Damage classes
const (
	DamageClassStatus   DamageClass = 1
	DamageClassPhysical DamageClass = 2
	DamageClassSpecial  DamageClass = 3
)

func (c DamageClass) String() string {
	switch c {
	case DamageClassStatus:
		return "Status"
	case DamageClassPhysical:
		return "Physical"
	case DamageClassSpecial:
		return "Special"
	default:
		return ""
	}
}

// Ailment names keyed by meta ailment id
var ailmentNames = map[int]string{
	-1: "????",
	0:  "none",
	1:  AilmentParalysis,
	2:  AilmentSleep,
	3:  AilmentFreeze,
	4:  AilmentBurn,
	5:  "Poison",
	6:  "Confusion",
	7:  "Infatuation",
	8:  "Trap",
	9:  "Nightmare",
	12: "Torment",
	13: "Disable",
	14: "Yawn",
	15: "Heal Block",
	17: "No type immunity",
	18: "Leech Seed",
	19: "Embargo",
	20: "Perish Song",
	21: "Ingrain",
	24: "Silence",
}

// Ailments that gate move use
const (
	AilmentParalysis = "Paralysis"
	AilmentSleep     = "Sleep"
	AilmentFreeze    = "Freeze"
	AilmentBurn      = "Burn"
)

var metaCategories = [...]string{
	"Inflicts damage",
	"No damage; inflicts status ailment",
	"No damage; lowers target's stats or raises user's stats",
	"No damage; heals the user",
	"Inflicts damage; inflicts status ailment",
	"No damage; inflicts status ailment; raises target's stats",
	"Inflicts damage; lowers target's stats",
	"Inflicts damage; raises user's stats",
	"Inflicts damage; absorbs damage done to heal the user",
	"One-hit KO",
	"Effect on the whole field",
	"Effect on one side of the field",
	"Forces target to switch out",
	"Unique effect",
}

var moveTargets = [...]string{
	"",
	"One specific move. How this move is chosen depends upon on the move being used.",
	"One other Pokémon on the field, selected by the trainer. Stolen moves reuse the same target.",
	"The user's ally (if any).",
	"The user's side of the field. Affects the user and its ally (if any).",
	"Either the user or its ally, selected by the trainer.",
	"The opposing side of the field. Affects opposing Pokémon.",
	"The user.",
	"One opposing Pokémon, selected at random.",
	"Every other Pokémon on the field.",
	"One other Pokémon on the field, selected by the trainer.",
	"All opposing Pokémon.",
	"The entire field. Affects all Pokémon.",
	"The user and its allies.",
	"Every Pokémon on the field.",
}

var statNames = [...]string{"hp", "atk", "def", "satk", "sdef", "spd", "evasion", "accuracy"}

// StatChange is a stage delta a move may apply
type StatChange struct {
	StatID int `json:"stat_id"`
	Change int `json:"change"`
}

// Stat is the short stat name, or "" for an unknown id
func (c StatChange) Stat() string {
	if c.StatID < 1 || c.StatID > len(statNames) {
		return ""
	}
	return statNames[c.StatID-1]
}

// MoveMeta carries the battle-relevant numbers of a move
type MoveMeta struct {
	CategoryID    int
	AilmentID     int
	Drain         int
	Healing       int
	CritRate      int
	AilmentChance int
	FlinchChance  int
	StatChance    int
	MinHits       *int
	MaxHits       *int
	MinTurns      *int
	MaxTurns      *int
	StatChanges   []StatChange
}

// Category is the meta category description
func (m MoveMeta) Category() string {
	if m.CategoryID < 0 || m.CategoryID >= len(metaCategories) {
		return ""
	}
	return metaCategories[m.CategoryID]
}

// Ailment is the name of the ailment the move can inflict. "none" when it
// inflicts nothing.
func (m MoveMeta) Ailment() string {
	return ailmentNames[m.AilmentID]
}

// MoveEffect is shared effect prose. Description may contain the
// "{effect_chance}" placeholder.
type MoveEffect struct {
	ID          int
	Description string
}

const effectChancePlaceholder = "{effect_chance}"

// Move is a battle action. Power is nil for moves that deal no direct
// damage. Accuracy is nil for moves that bypass the accuracy check.
type Move struct {
	ID           int
	Slug         string
	Name         string
	Power        *int
	PP           int
	Accuracy     *int
	Priority     int
	TargetID     int
	TypeID       int
	DamageClass  DamageClass
	EffectID     int
	EffectChance *int
	Meta         MoveMeta
}

func (m *Move) String() string {
	return m.Name
}

// Type is the move's type name
func (m *Move) Type() string {
	return TypeName(m.TypeID)
}

// TargetText describes who the move targets
func (m *Move) TargetText() string {
	if m.TargetID < 1 || m.TargetID >= len(moveTargets) {
		return ""
	}
	return moveTargets[m.TargetID]
}

// IsStatus reports whether the move skips accuracy and damage
func (m *Move) IsStatus() bool {
	return m.DamageClass == DamageClassStatus || m.Power == nil
}

// Description renders the effect prose with the move's effect chance
func (m *Move) Description(effect *MoveEffect) string {
	if effect == nil {
		return ""
	}
	chance := ""
	if m.EffectChance != nil {
		chance = strconv.Itoa(*m.EffectChance)
	}
	return strings.ReplaceAll(effect.Description, effectChancePlaceholder, chance)
}
