// Package idgen generates identifiers for resolved turns and other
// records handed back to callers
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/dex-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUID yields "<prefix>_<uuid>", or a bare uuid without a prefix
type UUID struct {
	prefix string
}

// NewUUID creates a uuid generator
func NewUUID(prefix string) *UUID {
	return &UUID{prefix: prefix}
}

// Generate implements Generator
func (g *UUID) Generate() string {
	return withPrefix(g.prefix, uuid.NewString())
}

// Sequential yields "<prefix>_1", "<prefix>_2", ... for tests and replays
type Sequential struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequential creates a sequential generator
func NewSequential(prefix string) *Sequential {
	return &Sequential{prefix: prefix}
}

// Generate implements Generator
func (g *Sequential) Generate() string {
	return withPrefix(g.prefix, fmt.Sprintf("%d", g.counter.Add(1)))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
