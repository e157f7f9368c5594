// Package v1alpha1 handles the dex grpc service interface
package v1alpha1

import (
	"context"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/battle"
	dexorchestrator "github.com/KirkDiggler/dex-api/internal/orchestrators/dex"
)

// HandlerConfig holds dependencies for the dex handler
type HandlerConfig struct {
	DexService    dexorchestrator.Service
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.DexService == nil {
		vb.RequiredField("DexService")
	}
	if c.BattleService == nil {
		vb.RequiredField("BattleService")
	}
	return vb.Build()
}

// Handler implements DexServiceServer
type Handler struct {
	dexService    dexorchestrator.Service
	battleService battle.Service
}

var _ DexServiceServer = (*Handler)(nil)

// NewHandler creates a new dex handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		dexService:    cfg.DexService,
		battleService: cfg.BattleService,
	}, nil
}

func respond(body map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(body)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return out, nil
}

// GetSpecies returns a rendered species by species_id or name
func (h *Handler) GetSpecies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := newFields(req, "")
	input := &dexorchestrator.GetSpeciesInput{
		SpeciesID: f.getInt("species_id"),
		Name:      f.getString("name"),
		SkipCache: f.getBool("skip_cache"),
	}
	if f.err != nil {
		return nil, errors.ToGRPCError(f.err)
	}
	if input.SpeciesID == 0 && input.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("species_id or name is required"))
	}

	out, err := h.dexService.GetSpecies(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]interface{}{
		"species": viewToMap(out.View),
		"cached":  out.Cached,
	})
}

// SearchSpecies runs an index lookup
func (h *Handler) SearchSpecies(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := newFields(req, "")
	input := &dexorchestrator.SearchSpeciesInput{
		Dimension:      f.getString("dimension"),
		Key:            f.getString("key"),
		ExpandVariants: f.getBool("expand_variants"),
	}
	if f.err != nil {
		return nil, errors.ToGRPCError(f.err)
	}
	if input.Dimension == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("dimension is required"))
	}

	out, err := h.dexService.SearchSpecies(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]interface{}{
		"species_ids": intList(out.SpeciesIDs),
	})
}

// GetEvolution describes a species' evolution family
func (h *Handler) GetEvolution(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := newFields(req, "")
	speciesID := f.getInt("species_id")
	if f.err != nil {
		return nil, errors.ToGRPCError(f.err)
	}
	if speciesID == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("species_id is required"))
	}

	out, err := h.dexService.GetEvolution(ctx, &dexorchestrator.GetEvolutionInput{SpeciesID: speciesID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]interface{}{
		"line":             intList(out.Line),
		"text":             out.Text,
		"trade_evolutions": intList(out.TradeEvolutions),
	})
}

// RandomSpawn picks a species from a rarity pool
func (h *Handler) RandomSpawn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := newFields(req, "")
	rarity := f.getString("rarity")
	if f.err != nil {
		return nil, errors.ToGRPCError(f.err)
	}

	out, err := h.dexService.RandomSpawn(ctx, &dexorchestrator.RandomSpawnInput{Rarity: rarity})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]interface{}{
		"species_id": out.Species.ID,
		"name":       out.Species.Name(),
		"shiny":      out.Shiny,
	})
}

// ResolveMove resolves one move use between two species
func (h *Handler) ResolveMove(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := newFields(req, "")
	input := &battle.ResolveMoveInput{
		MoveID:   f.getInt("move_id"),
		MoveName: f.getString("move_name"),
		Attacker: f.combatant("attacker"),
		Defender: f.combatant("defender"),
	}
	if f.err != nil {
		return nil, errors.ToGRPCError(f.err)
	}

	out, err := h.battleService.ResolveMove(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]interface{}{
		"turn_id":     out.TurnID,
		"resolved_at": out.ResolvedAt.Format(time.RFC3339),
		"move": map[string]interface{}{
			"id":   out.Move.ID,
			"name": out.Move.Name,
		},
		"result": resultToMap(out.Result),
	})
}
