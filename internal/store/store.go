// Package store builds the immutable entity graph from source rows and
// resolves the id references between records.
package store

import (
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/memo"
	"github.com/KirkDiggler/dex-api/internal/rows"
)

// Config holds the inputs for building a Store
type Config struct {
	Rows   *rows.Set
	Assets *Assets
}

// Validate ensures all required inputs are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Rows == nil {
		vb.RequiredField("Rows")
	}

	return vb.Build()
}

// Store is the read-only registry of every record. Lookups by id return nil
// for unknown ids; the All* accessors return records in table order.
type Store struct {
	species      map[int]*dex.Species
	speciesOrder []*dex.Species
	moves        map[int]*dex.Move
	moveOrder    []*dex.Move
	items        map[int]*dex.Item
	itemOrder    []*dex.Item
	effects      map[int]*dex.MoveEffect
	effectOrder  []*dex.MoveEffect

	assets *Assets

	inheritedMoves memo.Map[int, []dex.SpeciesMove]
	movesets       memo.Map[int, []*dex.Move]
}

// New builds a Store and checks that every present reference resolves
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	assets := cfg.Assets
	if assets == nil {
		assets = &Assets{}
	}

	s := &Store{
		species: make(map[int]*dex.Species),
		moves:   make(map[int]*dex.Move),
		items:   make(map[int]*dex.Item),
		effects: make(map[int]*dex.MoveEffect),
		assets:  assets,
	}

	if err := s.loadEffects(cfg.Rows.Effects); err != nil {
		return nil, err
	}
	skipped, err := s.loadMoves(cfg.Rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadItems(cfg.Rows.Items); err != nil {
		return nil, err
	}
	if err := s.loadSpecies(cfg.Rows.Species, cfg.Rows.Evolutions); err != nil {
		return nil, err
	}
	if err := s.loadSpeciesMoves(cfg.Rows.SpeciesMoves, skipped); err != nil {
		return nil, err
	}
	if err := s.checkReferences(); err != nil {
		return nil, err
	}

	return s, nil
}

// Species returns the species with id, or nil
func (s *Store) Species(id int) *dex.Species {
	return s.species[id]
}

// Move returns the move with id, or nil
func (s *Store) Move(id int) *dex.Move {
	return s.moves[id]
}

// Item returns the item with id, or nil
func (s *Store) Item(id int) *dex.Item {
	return s.items[id]
}

// Effect returns the move effect with id, or nil
func (s *Store) Effect(id int) *dex.MoveEffect {
	return s.effects[id]
}

// AllSpecies returns every enabled species
func (s *Store) AllSpecies() []*dex.Species {
	return s.speciesOrder
}

// AllMoves returns every loaded move
func (s *Store) AllMoves() []*dex.Move {
	return s.moveOrder
}

// AllItems returns every item
func (s *Store) AllItems() []*dex.Item {
	return s.itemOrder
}

// AllEffects returns every move effect
func (s *Store) AllEffects() []*dex.MoveEffect {
	return s.effectOrder
}

// Assets is the asset URL builder the store was configured with
func (s *Store) Assets() *Assets {
	return s.assets
}
