// Package speciesview caches rendered species summaries so repeated reads
// skip the evolution and moveset walks
package speciesview

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=speciesviewmock github.com/KirkDiggler/dex-api/internal/repositories/speciesview Repository

// Stats mirrors the base stat block
type Stats struct {
	HP   int `json:"hp"`
	Atk  int `json:"atk"`
	Def  int `json:"def"`
	SAtk int `json:"satk"`
	SDef int `json:"sdef"`
	Spd  int `json:"spd"`
}

// View is a species rendered for display
type View struct {
	ID            int       `json:"id"`
	DexNumber     int       `json:"dex_number"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Types         []string  `json:"types"`
	Region        string    `json:"region,omitempty"`
	BaseStats     Stats     `json:"base_stats"`
	Height        float64   `json:"height"`
	Weight        float64   `json:"weight"`
	Rarity        string    `json:"rarity"`
	DefaultGender string    `json:"default_gender,omitempty"`
	ImageURL      string    `json:"image_url"`
	ShinyImageURL string    `json:"shiny_image_url"`
	EvolutionText string    `json:"evolution_text,omitempty"`
	EvolutionLine []int     `json:"evolution_line"`
	Moveset       []int     `json:"moveset"`
	MegaIDs       []int     `json:"mega_ids,omitempty"`
	RenderedAt    time.Time `json:"rendered_at"`
}

// GetInput selects a cached view
type GetInput struct {
	SpeciesID int
}

// GetOutput holds a cached view
type GetOutput struct {
	View *View
}

// PutInput stores a view. A zero TTL uses the repository default.
type PutInput struct {
	View *View
	TTL  time.Duration
}

// PutOutput reports when the stored view expires
type PutOutput struct {
	ExpiresAt time.Time
}

// DeleteInput drops a cached view
type DeleteInput struct {
	SpeciesID int
}

// DeleteOutput reports whether a view was removed
type DeleteOutput struct {
	Deleted bool
}

// Repository stores rendered species views
type Repository interface {
	// Get returns NotFound when nothing is cached for the species
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Put stores or replaces a view
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)

	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}
