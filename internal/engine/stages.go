package engine

import (
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

// Stage bounds
const (
	MinStage = -6
	MaxStage = 6
)

// stageMultipliers is indexed by stage + 6
var stageMultipliers = [13]float64{
	2.0 / 8, 2.0 / 7, 2.0 / 6, 2.0 / 5, 2.0 / 4, 2.0 / 3,
	1,
	3.0 / 2, 4.0 / 2, 5.0 / 2, 6.0 / 2, 7.0 / 2, 8.0 / 2,
}

// StageMultiplier returns the stat multiplier for a stage in [-6, 6]
func StageMultiplier(stage int) (float64, error) {
	if stage < MinStage || stage > MaxStage {
		return 0, errors.OutOfRangef("stage %d is outside [%d, %d]", stage, MinStage, MaxStage)
	}
	return stageMultipliers[stage-MinStage], nil
}

func (s Stages) validate(who string) error {
	stages := []struct {
		name  string
		value int
	}{
		{"hp", s.HP}, {"atk", s.Atk}, {"def", s.Def}, {"satk", s.SAtk},
		{"sdef", s.SDef}, {"spd", s.Spd}, {"evasion", s.Evasion}, {"accuracy", s.Accuracy},
	}
	for _, st := range stages {
		if st.value < MinStage || st.value > MaxStage {
			return errors.OutOfRangef("%s %s stage %d is outside [%d, %d]", who, st.name, st.value, MinStage, MaxStage).
				WithMeta("stage", st.name)
		}
	}
	return nil
}

// TypeEffectiveness multiplies the chart entries for a move type against
// each defender type. Types off the chart are neutral.
func TypeEffectiveness(moveTypeID int, defenderTypes []string) float64 {
	multiplier := 1.0
	for _, t := range defenderTypes {
		if m, ok := dex.TypeEfficacy(moveTypeID, dex.TypeID(t)); ok {
			multiplier *= m
		}
	}
	return multiplier
}
