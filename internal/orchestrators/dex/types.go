package dex

import (
	"time"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/repositories/speciesview"
)

// GetSpeciesInput selects a species by id or, when the id is zero, by name
type GetSpeciesInput struct {
	SpeciesID int
	Name      string
	// SkipCache renders fresh and refreshes the cached copy
	SkipCache bool
}

// GetSpeciesOutput holds the rendered species
type GetSpeciesOutput struct {
	View   *speciesview.View
	Cached bool
}

// SearchSpeciesInput runs an index lookup. Dimension is one of type,
// region, move, name, dex_number or gender.
type SearchSpeciesInput struct {
	Dimension string
	Key       string
	// ExpandVariants replaces name matches with every variant sharing
	// their dex number
	ExpandVariants bool
}

// SearchSpeciesOutput lists matches in table order. No match is an empty
// list, not an error.
type SearchSpeciesOutput struct {
	SpeciesIDs []int
}

// GetEvolutionInput selects a species
type GetEvolutionInput struct {
	SpeciesID int
}

// GetEvolutionOutput describes a species' evolution family
type GetEvolutionOutput struct {
	Line []int
	// Text is empty when the species neither evolves nor evolves from anything
	Text            string
	TradeEvolutions []int
}

// RandomSpawnInput picks a spawn pool. Empty means normal.
type RandomSpawnInput struct {
	Rarity string
}

// RandomSpawnOutput holds the spawned species
type RandomSpawnOutput struct {
	Species *dex.Species
	Shiny   bool
}

// DefaultViewTTL is how long rendered views stay cached
const DefaultViewTTL = time.Hour
