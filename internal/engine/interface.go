// Package engine resolves a single use of a move between two combatants
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/dex-api/internal/engine Engine

import (
	"context"
)

// Engine computes move outcomes. It holds no state besides its random
// source; the caller applies the result.
type Engine interface {
	ResolveMove(ctx context.Context, input *ResolveMoveInput) (*MoveResult, error)
}
