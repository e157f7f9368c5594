// Package dex serves species lookups, searches, evolution families and
// spawns over the loaded store, with rendered species views cached
package dex

//go:generate mockgen -destination=mock/mock_service.go -package=dexmock github.com/KirkDiggler/dex-api/internal/orchestrators/dex Service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
	"github.com/KirkDiggler/dex-api/internal/repositories/speciesview"
	"github.com/KirkDiggler/dex-api/internal/store"
	"github.com/KirkDiggler/dex-api/internal/store/evolution"
	"github.com/KirkDiggler/dex-api/internal/store/index"
	"github.com/KirkDiggler/dex-api/internal/telemetry"
)

// shinyOdds is the one-in-N chance a spawn is shiny
const shinyOdds = 4096

// Service defines the species read operations
type Service interface {
	GetSpecies(ctx context.Context, input *GetSpeciesInput) (*GetSpeciesOutput, error)
	SearchSpecies(ctx context.Context, input *SearchSpeciesInput) (*SearchSpeciesOutput, error)
	GetEvolution(ctx context.Context, input *GetEvolutionInput) (*GetEvolutionOutput, error)
	RandomSpawn(ctx context.Context, input *RandomSpawnInput) (*RandomSpawnOutput, error)
}

// Config holds the dependencies for the dex orchestrator
type Config struct {
	Store     *store.Store
	Index     *index.Index
	Evolution *evolution.Resolver
	ViewRepo  speciesview.Repository
	Clock     clock.Clock
	// Roller defaults to dice.DefaultRoller
	Roller  dice.Roller
	ViewTTL time.Duration
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
	if c.Evolution == nil {
		vb.RequiredField("Evolution")
	}
	if c.ViewRepo == nil {
		vb.RequiredField("ViewRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type orchestrator struct {
	store     *store.Store
	index     *index.Index
	evolution *evolution.Resolver
	viewRepo  speciesview.Repository
	clock     clock.Clock
	roller    dice.Roller
	viewTTL   time.Duration

	renders singleflight.Group
}

// NewOrchestrator creates a new dex orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	ttl := cfg.ViewTTL
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}

	return &orchestrator{
		store:     cfg.Store,
		index:     cfg.Index,
		evolution: cfg.Evolution,
		viewRepo:  cfg.ViewRepo,
		clock:     cfg.Clock,
		roller:    roller,
		viewTTL:   ttl,
	}, nil
}

func (o *orchestrator) GetSpecies(ctx context.Context, input *GetSpeciesInput) (*GetSpeciesOutput, error) {
	ctx, span := telemetry.Tracer("orchestrators.dex").Start(ctx, "dex.get_species")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sp, err := o.findSpecies(input.SpeciesID, input.Name)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("species.id", sp.ID))

	if !input.SkipCache {
		cached, err := o.viewRepo.Get(ctx, &speciesview.GetInput{SpeciesID: sp.ID})
		switch {
		case err == nil:
			return &GetSpeciesOutput{View: cached.View, Cached: true}, nil
		case errors.IsNotFound(err):
		default:
			// cache read errors count as a miss
			slog.WarnContext(ctx, "species view cache read failed",
				"species_id", sp.ID,
				"error", err)
		}
	}

	// concurrent misses for one species render it once
	v, err, _ := o.renders.Do(strconv.Itoa(sp.ID), func() (interface{}, error) {
		view, err := o.render(sp)
		if err != nil {
			return nil, err
		}

		if _, err := o.viewRepo.Put(ctx, &speciesview.PutInput{View: view, TTL: o.viewTTL}); err != nil {
			slog.WarnContext(ctx, "species view cache write failed",
				"species_id", sp.ID,
				"error", err)
		}
		return view, nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	view, ok := v.(*speciesview.View)
	if !ok {
		return nil, errors.Internalf("unexpected render result %T", v)
	}

	return &GetSpeciesOutput{View: view}, nil
}

func (o *orchestrator) findSpecies(id int, name string) (*dex.Species, error) {
	switch {
	case id > 0:
		sp := o.store.Species(id)
		if sp == nil {
			return nil, errors.NotFoundf("species %d not found", id).WithMeta("species_id", id)
		}
		return sp, nil
	case name != "":
		sp := o.index.SpeciesByName(name)
		if sp == nil {
			return nil, errors.NotFoundf("no species named %q", name)
		}
		return sp, nil
	default:
		return nil, errors.InvalidArgument("species id or name is required")
	}
}

func (o *orchestrator) render(sp *dex.Species) (*speciesview.View, error) {
	moveset, err := o.store.Moveset(sp)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve moveset for species %d", sp.ID)
	}

	view := &speciesview.View{
		ID:        sp.ID,
		DexNumber: sp.DexNumber,
		Name:      sp.Name(),
		Slug:      sp.Slug,
		Types:     append([]string(nil), sp.Types...),
		Region:    sp.Region,
		BaseStats: speciesview.Stats{
			HP:   sp.BaseStats.HP,
			Atk:  sp.BaseStats.Atk,
			Def:  sp.BaseStats.Def,
			SAtk: sp.BaseStats.SAtk,
			SDef: sp.BaseStats.SDef,
			Spd:  sp.BaseStats.Spd,
		},
		Height:        sp.Height,
		Weight:        sp.Weight,
		Rarity:        string(rarityOf(sp)),
		ImageURL:      o.store.ImageURL(sp, false, false),
		ShinyImageURL: o.store.ImageURL(sp, true, false),
		RenderedAt:    o.clock.Now(),
	}

	if gender, ok := sp.DefaultGender(); ok {
		view.DefaultGender = string(gender)
	}
	if text, ok := o.evolution.Text(sp.ID); ok {
		view.EvolutionText = text
	}
	for _, member := range o.evolution.Line(sp.ID) {
		view.EvolutionLine = append(view.EvolutionLine, member.ID)
	}
	for _, m := range moveset {
		view.Moveset = append(view.Moveset, m.ID)
	}
	for _, ref := range []*int{sp.MegaID, sp.MegaXID, sp.MegaYID} {
		if ref != nil {
			view.MegaIDs = append(view.MegaIDs, *ref)
		}
	}

	return view, nil
}

func rarityOf(sp *dex.Species) index.Rarity {
	switch {
	case sp.Mythical:
		return index.RarityMythical
	case sp.Legendary:
		return index.RarityLegendary
	case sp.UltraBeast:
		return index.RarityUltraBeast
	default:
		return index.RarityNormal
	}
}

func (o *orchestrator) SearchSpecies(ctx context.Context, input *SearchSpeciesInput) (*SearchSpeciesOutput, error) {
	_, span := telemetry.Tracer("orchestrators.dex").Start(ctx, "dex.search_species")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	dim, ok := index.ParseDimension(input.Dimension)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown search dimension %q", input.Dimension).
			WithMeta("dimension", input.Dimension)
	}
	span.SetAttributes(attribute.String("search.dimension", dim.String()))

	var ids []int
	if dim == index.DimensionName && input.ExpandVariants {
		ids = o.index.FindAllMatches(input.Key)
	} else {
		ids = o.index.LookupBy(dim, input.Key)
	}

	slog.DebugContext(ctx, "species search",
		"dimension", dim.String(),
		"key", input.Key,
		"matches", len(ids))

	return &SearchSpeciesOutput{SpeciesIDs: append([]int{}, ids...)}, nil
}

func (o *orchestrator) GetEvolution(ctx context.Context, input *GetEvolutionInput) (*GetEvolutionOutput, error) {
	_, span := telemetry.Tracer("orchestrators.dex").Start(ctx, "dex.get_evolution")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if o.store.Species(input.SpeciesID) == nil {
		return nil, errors.NotFoundf("species %d not found", input.SpeciesID).WithMeta("species_id", input.SpeciesID)
	}

	out := &GetEvolutionOutput{Line: []int{}}
	for _, sp := range o.evolution.Line(input.SpeciesID) {
		out.Line = append(out.Line, sp.ID)
	}
	if text, ok := o.evolution.Text(input.SpeciesID); ok {
		out.Text = text
	}
	for _, evo := range o.evolution.TradeEvolutions(input.SpeciesID) {
		out.TradeEvolutions = append(out.TradeEvolutions, evo.TargetID)
	}

	return out, nil
}

func (o *orchestrator) RandomSpawn(ctx context.Context, input *RandomSpawnInput) (*RandomSpawnOutput, error) {
	_, span := telemetry.Tracer("orchestrators.dex").Start(ctx, "dex.random_spawn")
	defer span.End()

	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	rarity := input.Rarity
	if rarity == "" {
		rarity = string(index.RarityNormal)
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("rarity", rarity, index.Rarities, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	sp, err := o.index.RandomSpawn(index.Rarity(rarity), o.roller)
	if err != nil {
		return nil, err
	}

	shinyRoll, err := o.roller.Roll(shinyOdds)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll shiny")
	}

	span.SetAttributes(attribute.Int("species.id", sp.ID))
	slog.InfoContext(ctx, "species spawned",
		"species_id", sp.ID,
		"rarity", rarity)

	return &RandomSpawnOutput{Species: sp, Shiny: shinyRoll == 1}, nil
}
