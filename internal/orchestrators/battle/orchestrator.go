// Package battle resolves single turns between two species snapshots
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/dex-api/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KirkDiggler/dex-api/internal/engine"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/pkg/idgen"
	"github.com/KirkDiggler/dex-api/internal/store"
	"github.com/KirkDiggler/dex-api/internal/store/index"
	"github.com/KirkDiggler/dex-api/internal/telemetry"
)

// Level bounds
const (
	MinLevel = 1
	MaxLevel = 100
)

// Service defines the battle operations
type Service interface {
	ResolveMove(ctx context.Context, input *ResolveMoveInput) (*ResolveMoveOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	Store       *store.Store
	Index       *index.Index
	Engine      engine.Engine
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Index == nil {
		vb.RequiredField("Index")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	store  *store.Store
	index  *index.Index
	engine engine.Engine
	idGen  idgen.Generator
	clock  clock.Clock
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		store:  cfg.Store,
		index:  cfg.Index,
		engine: cfg.Engine,
		idGen:  cfg.IDGenerator,
		clock:  cfg.Clock,
	}, nil
}

func (o *orchestrator) ResolveMove(ctx context.Context, input *ResolveMoveInput) (*ResolveMoveOutput, error) {
	ctx, span := telemetry.Tracer("orchestrators.battle").Start(ctx, "battle.resolve_move")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("attacker.level", input.Attacker.Level, MinLevel, MaxLevel, vb)
	errors.ValidateRange("defender.level", input.Defender.Level, MinLevel, MaxLevel, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	move, err := o.findMove(input.MoveID, input.MoveName)
	if err != nil {
		return nil, err
	}

	attacker, err := o.combatant("attacker", input.Attacker)
	if err != nil {
		return nil, err
	}
	defender, err := o.combatant("defender", input.Defender)
	if err != nil {
		return nil, err
	}

	result, err := o.engine.ResolveMove(ctx, &engine.ResolveMoveInput{
		Move:     move,
		Attacker: attacker,
		Defender: defender,
	})
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrapf(err, "failed to resolve %s", move.Name)
	}

	turnID := o.idGen.Generate()
	span.SetAttributes(
		attribute.String("turn.id", turnID),
		attribute.Int("move.id", move.ID),
	)
	slog.InfoContext(ctx, "move resolved",
		"turn_id", turnID,
		"move", move.Slug,
		"attacker_species", input.Attacker.SpeciesID,
		"defender_species", input.Defender.SpeciesID,
		"success", result.Success,
		"damage", result.Damage)

	return &ResolveMoveOutput{
		TurnID:     turnID,
		ResolvedAt: o.clock.Now(),
		Move:       move,
		Result:     result,
	}, nil
}

func (o *orchestrator) findMove(id int, name string) (*dex.Move, error) {
	switch {
	case id > 0:
		m := o.store.Move(id)
		if m == nil {
			return nil, errors.NotFoundf("move %d not found", id).WithMeta("move_id", id)
		}
		return m, nil
	case name != "":
		m := o.index.MoveByName(name)
		if m == nil {
			return nil, errors.NotFoundf("no move named %q", name)
		}
		return m, nil
	default:
		return nil, errors.InvalidArgument("move id or name is required")
	}
}

func (o *orchestrator) combatant(side string, in CombatantInput) (*engine.Combatant, error) {
	sp := o.store.Species(in.SpeciesID)
	if sp == nil {
		return nil, errors.NotFoundf("%s species %d not found", side, in.SpeciesID).
			WithMeta("species_id", in.SpeciesID)
	}

	c := &engine.Combatant{
		Level:    in.Level,
		MaxHP:    in.MaxHP,
		Stats:    sp.BaseStats,
		Stages:   in.Stages,
		Ailments: in.Ailments,
		Types:    sp.Types,
	}
	if in.Stats != nil {
		c.Stats = *in.Stats
	}
	if c.MaxHP == 0 {
		c.MaxHP = c.Stats.HP
	}
	if len(in.Types) > 0 {
		c.Types = in.Types
	}

	return c, nil
}
