package battle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dex-api/internal/engine"
	enginemock "github.com/KirkDiggler/dex-api/internal/engine/mock"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/pkg/idgen"
	idgenmock "github.com/KirkDiggler/dex-api/internal/pkg/idgen/mock"
	"github.com/KirkDiggler/dex-api/internal/store"
	"github.com/KirkDiggler/dex-api/internal/store/index"
	"github.com/KirkDiggler/dex-api/internal/testutils"
)

var testNow = time.Date(2024, 11, 2, 12, 0, 0, 0, time.UTC)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	store      *store.Store
	index      *index.Index
	mockEngine *enginemock.MockEngine
	mockIDGen  *idgenmock.MockGenerator
	svc        battle.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupSuite() {
	s.store = testutils.LoadStore(s.T())
	s.index = index.New(s.store)
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockIDGen = idgenmock.NewMockGenerator(s.ctrl)

	svc, err := battle.NewOrchestrator(&battle.Config{
		Store:       s.store,
		Index:       s.index,
		Engine:      s.mockEngine,
		IDGenerator: s.mockIDGen,
		Clock:       clock.NewFixed(testNow),
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := battle.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = battle.NewOrchestrator(&battle.Config{Store: s.store, Index: s.index})
	s.Require().Error(err)
	s.Contains(err.Error(), "Engine")
	s.Contains(err.Error(), "IDGenerator")
	s.Contains(err.Error(), "Clock")
}

func (s *OrchestratorTestSuite) TestResolveMoveBuildsCombatants() {
	custom := dex.Stats{HP: 200, Atk: 150, Def: 90, SAtk: 80, SDef: 70, Spd: 60}
	expected := &engine.MoveResult{Success: true, Hits: 1, Damage: 12}

	s.mockEngine.EXPECT().
		ResolveMove(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *engine.ResolveMoveInput) (*engine.MoveResult, error) {
			s.Equal(33, input.Move.ID)

			s.Equal(&engine.Combatant{
				Level:    20,
				MaxHP:    35,
				Stats:    dex.Stats{HP: 35, Atk: 55, Def: 40, SAtk: 50, SDef: 50, Spd: 90},
				Stages:   engine.Stages{Atk: 1},
				Ailments: []string{dex.AilmentBurn},
				Types:    []string{"Electric"},
			}, input.Attacker)

			s.Equal(&engine.Combatant{
				Level: 30,
				MaxHP: 180,
				Stats: custom,
				Types: []string{"Water"},
			}, input.Defender)

			return expected, nil
		})
	s.mockIDGen.EXPECT().Generate().Return("turn_1")

	out, err := s.svc.ResolveMove(s.ctx, &battle.ResolveMoveInput{
		MoveName: "TACKLE",
		Attacker: battle.CombatantInput{
			SpeciesID: testutils.SpeciesPikachu,
			Level:     20,
			Stages:    engine.Stages{Atk: 1},
			Ailments:  []string{dex.AilmentBurn},
		},
		Defender: battle.CombatantInput{
			SpeciesID: testutils.SpeciesBulbasaur,
			Level:     30,
			MaxHP:     180,
			Stats:     &custom,
			Types:     []string{"Water"},
		},
	})
	s.Require().NoError(err)
	s.Equal("turn_1", out.TurnID)
	s.Equal(testNow, out.ResolvedAt)
	s.Equal("Tackle", out.Move.Name)
	s.Same(expected, out.Result)
}

func (s *OrchestratorTestSuite) TestResolveMoveErrors() {
	valid := battle.CombatantInput{SpeciesID: 1, Level: 50}

	testCases := []struct {
		name     string
		input    *battle.ResolveMoveInput
		expected errors.Code
	}{
		{
			name:     "nil input",
			expected: errors.CodeInvalidArgument,
		},
		{
			name:     "level out of range",
			input:    &battle.ResolveMoveInput{MoveID: 33, Attacker: battle.CombatantInput{SpeciesID: 1, Level: 101}, Defender: valid},
			expected: errors.CodeInvalidArgument,
		},
		{
			name:     "no move",
			input:    &battle.ResolveMoveInput{Attacker: valid, Defender: valid},
			expected: errors.CodeInvalidArgument,
		},
		{
			name:     "unknown move id",
			input:    &battle.ResolveMoveInput{MoveID: 10001, Attacker: valid, Defender: valid},
			expected: errors.CodeNotFound,
		},
		{
			name:     "unknown move name",
			input:    &battle.ResolveMoveInput{MoveName: "hyper beam", Attacker: valid, Defender: valid},
			expected: errors.CodeNotFound,
		},
		{
			name:     "unknown species",
			input:    &battle.ResolveMoveInput{MoveID: 33, Attacker: valid, Defender: battle.CombatantInput{SpeciesID: 9999, Level: 5}},
			expected: errors.CodeNotFound,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.svc.ResolveMove(s.ctx, tc.input)
			s.Require().Error(err)
			s.Nil(out)
			s.Equal(tc.expected, errors.GetCode(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestResolveMoveEngineError() {
	s.mockEngine.EXPECT().
		ResolveMove(gomock.Any(), gomock.Any()).
		Return(nil, errors.OutOfRange("stage 7 is outside [-6, 6]"))

	_, err := s.svc.ResolveMove(s.ctx, &battle.ResolveMoveInput{
		MoveID:   33,
		Attacker: battle.CombatantInput{SpeciesID: 1, Level: 5, Stages: engine.Stages{Atk: 7}},
		Defender: battle.CombatantInput{SpeciesID: 1, Level: 5},
	})
	s.Require().Error(err)
	s.True(errors.IsOutOfRange(err))
}

func (s *OrchestratorTestSuite) TestResolveMoveWithRealEngine() {
	// thunder shock from pikachu into bulbasaur:
	// floor(22*40*50/65/50+2) = 15, * 0.5 resisted, * 1.5 same type
	eng, err := engine.New(&engine.Config{Roller: testutils.NewScriptedRoller(1, 100)})
	s.Require().NoError(err)

	svc, err := battle.NewOrchestrator(&battle.Config{
		Store:       s.store,
		Index:       s.index,
		Engine:      eng,
		IDGenerator: idgen.NewSequential("turn"),
		Clock:       clock.NewFixed(testNow),
	})
	s.Require().NoError(err)

	out, err := svc.ResolveMove(s.ctx, &battle.ResolveMoveInput{
		MoveName: "Thunder Shock",
		Attacker: battle.CombatantInput{SpeciesID: testutils.SpeciesPikachu, Level: 50},
		Defender: battle.CombatantInput{SpeciesID: testutils.SpeciesBulbasaur, Level: 50},
	})
	s.Require().NoError(err)

	s.Equal("turn_1", out.TurnID)
	s.True(out.Result.Success)
	s.Equal(11, out.Result.Damage)
	s.InDelta(11.25, out.Result.RawDamage, 1e-9)
	s.Empty(out.Result.Ailment)
	s.Equal([]string{engine.MessageNotVeryEffective}, out.Result.Messages)
}
