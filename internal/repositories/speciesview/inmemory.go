package speciesview

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/pkg/clock"
)

type entry struct {
	view      View
	expiresAt time.Time
}

// InMemoryRepository is the cache used when no Redis endpoint is set
type InMemoryRepository struct {
	mu      sync.RWMutex
	clock   clock.Clock
	ttl     time.Duration
	entries map[int]entry
}

// NewInMemory creates an in-memory view cache. A nil clock uses the system
// clock and a zero ttl uses DefaultTTL.
func NewInMemory(c clock.Clock, ttl time.Duration) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &InMemoryRepository{
		clock:   c,
		ttl:     ttl,
		entries: make(map[int]entry),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Get returns a copy of the cached view
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.SpeciesID <= 0 {
		return nil, errors.InvalidArgument(errSpeciesIDZero)
	}

	r.mu.RLock()
	e, ok := r.entries[input.SpeciesID]
	r.mu.RUnlock()

	if !ok || !r.clock.Now().Before(e.expiresAt) {
		return nil, errors.NotFoundf("no cached view for species %d", input.SpeciesID)
	}

	view := e.view
	return &GetOutput{View: &view}, nil
}

// Put stores a copy of the view
func (r *InMemoryRepository) Put(_ context.Context, input *PutInput) (*PutOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.View == nil {
		return nil, errors.InvalidArgument(errViewNil)
	}
	if input.View.ID <= 0 {
		return nil, errors.InvalidArgument(errSpeciesIDZero)
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = r.ttl
	}
	expiresAt := r.clock.Now().Add(ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[input.View.ID] = entry{view: *input.View, expiresAt: expiresAt}

	return &PutOutput{ExpiresAt: expiresAt}, nil
}

// Delete drops the view
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputNil)
	}
	if input.SpeciesID <= 0 {
		return nil, errors.InvalidArgument(errSpeciesIDZero)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.entries[input.SpeciesID]
	delete(r.entries, input.SpeciesID)
	return &DeleteOutput{Deleted: ok}, nil
}
