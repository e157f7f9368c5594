package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/internal/engine"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/store"
	"github.com/KirkDiggler/dex-api/internal/testutils"
	"github.com/KirkDiggler/dex-api/internal/testutils/builders"
)

// Move ids in the embedded dataset
const (
	moveDoubleSlap   = 3
	moveTackle       = 33
	moveGrowl        = 45
	moveEmber        = 52
	moveThundershock = 84
	moveLeechLife    = 141
	moveFlameWheel   = 172
	moveSnore        = 173
	moveMetalClaw    = 232
)

type EngineTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *store.Store
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupSuite() {
	s.store = testutils.LoadStore(s.T())
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *EngineTestSuite) newEngine(rolls ...int) (engine.Engine, *testutils.ScriptedRoller) {
	roller := testutils.NewScriptedRoller(rolls...)
	eng, err := engine.New(&engine.Config{Roller: roller})
	s.Require().NoError(err)
	return eng, roller
}

func (s *EngineTestSuite) move(id int) *dex.Move {
	m := s.store.Move(id)
	s.Require().NotNil(m, "move %d", id)
	return m
}

func (s *EngineTestSuite) resolve(eng engine.Engine, move *dex.Move, attacker, defender *engine.Combatant) *engine.MoveResult {
	result, err := eng.ResolveMove(s.ctx, &engine.ResolveMoveInput{
		Move:     move,
		Attacker: attacker,
		Defender: defender,
	})
	s.Require().NoError(err)
	return result
}

func intPtr(v int) *int {
	return &v
}

func (s *EngineTestSuite) TestNewDefaultsRoller() {
	eng, err := engine.New(&engine.Config{})
	s.Require().NoError(err)
	s.NotNil(eng)

	_, err = engine.New(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *EngineTestSuite) TestBaseDamage() {
	// floor((2*50/5+2) * 40 * 100 / 100 / 50 + 2) = floor(19.6)
	eng, roller := s.newEngine(1)

	result := s.resolve(eng, s.move(moveTackle),
		builders.NewCombatantBuilder().Build(),
		builders.NewCombatantBuilder().Build())

	s.True(result.Success)
	s.Equal(19, result.Damage)
	s.InDelta(19.0, result.RawDamage, 1e-9)
	s.Equal(1, result.Hits)
	s.Equal(0, result.Healing)
	s.Empty(result.Ailment)
	s.Empty(result.Messages)
	s.Empty(result.StatChanges)
	s.Equal([]int{100}, roller.Sizes())
	s.Zero(roller.Remaining())
}

func (s *EngineTestSuite) TestDamageStages() {
	testCases := []struct {
		name     string
		attacker engine.Stages
		defender engine.Stages
		expected int
	}{
		{
			name:     "neutral",
			expected: 19,
		},
		{
			name:     "attack +2",
			attacker: engine.Stages{Atk: 2},
			expected: 37,
		},
		{
			name:     "defense -6",
			defender: engine.Stages{Def: -6},
			expected: 72,
		},
		{
			name:     "special stages ignored by physical move",
			attacker: engine.Stages{SAtk: 6},
			defender: engine.Stages{SDef: -6},
			expected: 19,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			eng, _ := s.newEngine(1)

			result := s.resolve(eng, s.move(moveTackle),
				builders.NewCombatantBuilder().WithStages(tc.attacker).Build(),
				builders.NewCombatantBuilder().WithStages(tc.defender).Build())

			s.Equal(tc.expected, result.Damage)
		})
	}
}

func (s *EngineTestSuite) TestAccuracy() {
	move := &dex.Move{
		ID:          9001,
		Power:       intPtr(40),
		Accuracy:    intPtr(50),
		TypeID:      1,
		DamageClass: dex.DamageClassPhysical,
	}

	testCases := []struct {
		name     string
		roll     int
		attacker engine.Stages
		defender engine.Stages
		hit      bool
	}{
		{name: "inside", roll: 50, hit: true},
		{name: "boundary", roll: 51, hit: false},
		{name: "accuracy +1 widens", roll: 75, attacker: engine.Stages{Accuracy: 1}, hit: true},
		{name: "accuracy +1 boundary", roll: 76, attacker: engine.Stages{Accuracy: 1}, hit: false},
		{name: "evasion +1 narrows", roll: 34, defender: engine.Stages{Evasion: 1}, hit: true},
		{name: "evasion +1 boundary", roll: 35, defender: engine.Stages{Evasion: 1}, hit: false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			eng, _ := s.newEngine(tc.roll)

			result := s.resolve(eng, move,
				builders.NewCombatantBuilder().WithStages(tc.attacker).Build(),
				builders.NewCombatantBuilder().WithStages(tc.defender).Build())

			s.Equal(tc.hit, result.Success)
			// damage is reported even on a miss
			s.Equal(19, result.Damage)
		})
	}
}

func (s *EngineTestSuite) TestNeverMissingMove() {
	move := s.move(moveTackle)
	swift := *move
	swift.Accuracy = nil

	eng, _ := s.newEngine(100)
	result := s.resolve(eng, &swift,
		builders.NewCombatantBuilder().Build(),
		builders.NewCombatantBuilder().Build())

	s.True(result.Success)
}

func (s *EngineTestSuite) TestStatusMove() {
	eng, roller := s.newEngine()

	result := s.resolve(eng, s.move(moveGrowl),
		builders.NewCombatantBuilder().WithStages(engine.Stages{Accuracy: -6}).Build(),
		builders.NewCombatantBuilder().WithStages(engine.Stages{Evasion: 6}).Build())

	s.True(result.Success)
	s.Equal(0, result.Damage)
	s.Equal(0, result.Hits)
	// growl has a zero stat chance, so its change is never drawn
	s.Empty(result.StatChanges)
	s.Empty(roller.Sizes())
}

func (s *EngineTestSuite) TestSelfHealingStatusMove() {
	move := &dex.Move{
		ID:          9002,
		TypeID:      1,
		DamageClass: dex.DamageClassStatus,
		Meta:        dex.MoveMeta{Healing: 50},
	}
	eng, _ := s.newEngine()

	result := s.resolve(eng, move,
		builders.NewCombatantBuilder().WithMaxHP(121).Build(),
		builders.NewCombatantBuilder().Build())

	s.True(result.Success)
	s.Equal(60, result.Healing)
	s.InDelta(60.5, result.RawHealing, 1e-9)
}

func (s *EngineTestSuite) TestMultiHit() {
	eng, roller := s.newEngine(1, 3)

	result := s.resolve(eng, s.move(moveDoubleSlap),
		builders.NewCombatantBuilder().Build(),
		builders.NewCombatantBuilder().Build())

	s.Equal(4, result.Hits)
	s.Equal([]string{"It hit 4 times!"}, result.Messages)
	s.Equal([]int{100, 4}, roller.Sizes())
}

func (s *EngineTestSuite) TestTypeEffectivenessMessages() {
	testCases := []struct {
		name     string
		types    []string
		damage   int
		raw      float64
		messages []string
	}{
		{name: "immune", types: []string{"Ghost"}, damage: 0, raw: 0, messages: []string{engine.MessageImmune}},
		{name: "resisted", types: []string{"Rock"}, damage: 9, raw: 9.5, messages: []string{engine.MessageNotVeryEffective}},
		{name: "neutral", types: []string{"Fire"}, damage: 19, raw: 19, messages: nil},
		{name: "unknown type is neutral", types: []string{"Shadow"}, damage: 19, raw: 19, messages: nil},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			eng, _ := s.newEngine(1)

			result := s.resolve(eng, s.move(moveTackle),
				builders.NewCombatantBuilder().Build(),
				builders.NewCombatantBuilder().WithTypes(tc.types...).Build())

			s.Equal(tc.damage, result.Damage)
			s.InDelta(tc.raw, result.RawDamage, 1e-9)
			s.Equal(tc.messages, result.Messages)
		})
	}
}

func (s *EngineTestSuite) TestDualTypeAndAilment() {
	// thunder shock: 19 * 4 against water/flying, paralysis drawn at 10%
	eng, _ := s.newEngine(1, 10)

	result := s.resolve(eng, s.move(moveThundershock),
		builders.NewCombatantBuilder().Build(),
		builders.NewCombatantBuilder().WithTypes("Water", "Flying").Build())

	s.Equal(76, result.Damage)
	s.Equal(dex.AilmentParalysis, result.Ailment)
	s.Equal([]string{engine.MessageSuperEffective}, result.Messages)
}

func (s *EngineTestSuite) TestAilmentChanceMissed() {
	eng, _ := s.newEngine(1, 11)

	result := s.resolve(eng, s.move(moveThundershock),
		builders.NewCombatantBuilder().Build(),
		builders.NewCombatantBuilder().Build())

	s.Empty(result.Ailment)
}

func (s *EngineTestSuite) TestSameTypeBonus() {
	// ember: 19 * 2 against grass, then * 1.5 for a fire attacker
	eng, _ := s.newEngine(1, 100)

	result := s.resolve(eng, s.move(moveEmber),
		builders.NewCombatantBuilder().WithTypes("Fire").Build(),
		builders.NewCombatantBuilder().WithTypes("Grass").Build())

	s.Equal(57, result.Damage)
	s.Empty(result.Ailment)
	s.Equal([]string{engine.MessageSuperEffective}, result.Messages)
}

func (s *EngineTestSuite) TestAttackerAilments() {
	testCases := []struct {
		name     string
		moveID   int
		ailments []string
		rolls    []int
		success  bool
		damage   int
	}{
		{name: "paralysis blocks on a one in four", moveID: moveTackle, ailments: []string{dex.AilmentParalysis}, rolls: []int{1, 1}, success: false, damage: 19},
		{name: "paralysis passes otherwise", moveID: moveTackle, ailments: []string{dex.AilmentParalysis}, rolls: []int{1, 2}, success: true, damage: 19},
		{name: "sleep blocks", moveID: moveTackle, ailments: []string{dex.AilmentSleep}, rolls: []int{1}, success: false, damage: 19},
		{name: "snore works while asleep", moveID: moveSnore, ailments: []string{dex.AilmentSleep}, rolls: []int{1}, success: true, damage: 24},
		{name: "freeze blocks", moveID: moveTackle, ailments: []string{dex.AilmentFreeze}, rolls: []int{1}, success: false, damage: 19},
		{name: "flame wheel thaws", moveID: moveFlameWheel, ailments: []string{dex.AilmentFreeze}, rolls: []int{1, 100}, success: true, damage: 28},
		{name: "burn halves physical", moveID: moveTackle, ailments: []string{dex.AilmentBurn}, rolls: []int{1}, success: true, damage: 9},
		{name: "burn ignores special", moveID: moveEmber, ailments: []string{dex.AilmentBurn}, rolls: []int{1, 100}, success: true, damage: 19},
		{name: "other ailments do nothing", moveID: moveTackle, ailments: []string{"Confusion", "Trap"}, rolls: []int{1}, success: true, damage: 19},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			eng, roller := s.newEngine(tc.rolls...)

			result := s.resolve(eng, s.move(tc.moveID),
				builders.NewCombatantBuilder().WithAilments(tc.ailments...).Build(),
				builders.NewCombatantBuilder().Build())

			s.Equal(tc.success, result.Success)
			s.Equal(tc.damage, result.Damage)
			s.Zero(roller.Remaining())
		})
	}
}

func (s *EngineTestSuite) TestDrainUsesDamageBeforeBurn() {
	// leech life: floor(22*80/50+2) = 37, drain 50%
	eng, _ := s.newEngine(1)

	result := s.resolve(eng, s.move(moveLeechLife),
		builders.NewCombatantBuilder().WithAilments(dex.AilmentBurn).Build(),
		builders.NewCombatantBuilder().Build())

	s.Equal(18, result.Damage)
	s.InDelta(18.5, result.RawDamage, 1e-9)
	s.Equal(18, result.Healing)
	s.InDelta(18.5, result.RawHealing, 1e-9)
}

func (s *EngineTestSuite) TestStatChanges() {
	s.Run("drawn under the chance", func() {
		eng, _ := s.newEngine(1, 10)

		result := s.resolve(eng, s.move(moveMetalClaw),
			builders.NewCombatantBuilder().Build(),
			builders.NewCombatantBuilder().Build())

		s.Equal(24, result.Damage)
		s.Equal([]dex.StatChange{{StatID: 2, Change: 1}}, result.StatChanges)
	})

	s.Run("missed chance", func() {
		eng, _ := s.newEngine(1, 11)

		result := s.resolve(eng, s.move(moveMetalClaw),
			builders.NewCombatantBuilder().Build(),
			builders.NewCombatantBuilder().Build())

		s.Empty(result.StatChanges)
	})

	s.Run("each change drawn independently", func() {
		move := &dex.Move{
			ID:          9003,
			Power:       intPtr(40),
			Accuracy:    intPtr(100),
			TypeID:      1,
			DamageClass: dex.DamageClassPhysical,
			Meta: dex.MoveMeta{
				StatChance: 50,
				StatChanges: []dex.StatChange{
					{StatID: 2, Change: -1},
					{StatID: 3, Change: -1},
					{StatID: 6, Change: -1},
				},
			},
		}
		eng, _ := s.newEngine(1, 50, 51, 1)

		result := s.resolve(eng, move,
			builders.NewCombatantBuilder().Build(),
			builders.NewCombatantBuilder().Build())

		s.Equal([]dex.StatChange{{StatID: 2, Change: -1}, {StatID: 6, Change: -1}}, result.StatChanges)
	})
}

func (s *EngineTestSuite) TestDeterministic() {
	attacker := builders.NewCombatantBuilder().WithTypes("Fire").WithAilments(dex.AilmentParalysis).Build()
	defender := builders.NewCombatantBuilder().WithTypes("Grass", "Bug").Build()

	first, _ := s.newEngine(37, 3, 4)
	second, _ := s.newEngine(37, 3, 4)

	s.Equal(
		s.resolve(first, s.move(moveEmber), attacker, defender),
		s.resolve(second, s.move(moveEmber), attacker, defender),
	)

	seeded := func() *engine.MoveResult {
		eng, err := engine.New(&engine.Config{Roller: engine.NewSeededRoller(42)})
		s.Require().NoError(err)
		return s.resolve(eng, s.move(moveEmber), attacker, defender)
	}
	s.Equal(seeded(), seeded())
}

func (s *EngineTestSuite) TestInvalidInput() {
	tackle := s.move(moveTackle)
	valid := builders.NewCombatantBuilder().Build()

	testCases := []struct {
		name     string
		input    *engine.ResolveMoveInput
		expected errors.Code
	}{
		{
			name:     "nil input",
			expected: errors.CodeInvalidArgument,
		},
		{
			name:     "missing move",
			input:    &engine.ResolveMoveInput{Attacker: valid, Defender: valid},
			expected: errors.CodeInvalidArgument,
		},
		{
			name:     "missing combatants",
			input:    &engine.ResolveMoveInput{Move: tackle},
			expected: errors.CodeInvalidArgument,
		},
		{
			name: "attacker stage above range",
			input: &engine.ResolveMoveInput{
				Move:     tackle,
				Attacker: builders.NewCombatantBuilder().WithStages(engine.Stages{Atk: 7}).Build(),
				Defender: valid,
			},
			expected: errors.CodeOutOfRange,
		},
		{
			name: "defender stage below range",
			input: &engine.ResolveMoveInput{
				Move:     tackle,
				Attacker: valid,
				Defender: builders.NewCombatantBuilder().WithStages(engine.Stages{Evasion: -7}).Build(),
			},
			expected: errors.CodeOutOfRange,
		},
		{
			name: "zero defense",
			input: &engine.ResolveMoveInput{
				Move:     tackle,
				Attacker: valid,
				Defender: builders.NewCombatantBuilder().WithStats(dex.Stats{HP: 10}).Build(),
			},
			expected: errors.CodeInvalidArgument,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			eng, _ := s.newEngine()

			result, err := eng.ResolveMove(s.ctx, tc.input)
			s.Require().Error(err)
			s.Nil(result)
			s.Equal(tc.expected, errors.GetCode(err))
		})
	}
}

func (s *EngineTestSuite) TestRollerErrorsPropagate() {
	eng, _ := s.newEngine()

	_, err := eng.ResolveMove(s.ctx, &engine.ResolveMoveInput{
		Move:     s.move(moveTackle),
		Attacker: builders.NewCombatantBuilder().Build(),
		Defender: builders.NewCombatantBuilder().Build(),
	})
	s.Error(err)
}
