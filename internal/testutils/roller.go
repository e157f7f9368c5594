package testutils

import (
	"fmt"
	"sync"
)

// ScriptedRoller returns preset results in order. Each result must fit the
// requested die size; running out of results or a result that does not fit
// is an error so tests fail loudly on an unexpected draw.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []int
	sizes []int
}

// NewScriptedRoller creates a roller that yields rolls in order
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Roll implements dice.Roller
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if size <= 0 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}
	if len(r.rolls) == 0 {
		return 0, fmt.Errorf("no scripted roll left for d%d", size)
	}

	next := r.rolls[0]
	if next < 1 || next > size {
		return 0, fmt.Errorf("scripted roll %d does not fit d%d", next, size)
	}
	r.rolls = r.rolls[1:]
	r.sizes = append(r.sizes, size)
	return next, nil
}

// RollN implements dice.Roller
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, 0, count)
	for i := 0; i < count; i++ {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Remaining is the number of unused results
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rolls)
}

// Sizes lists the die size of every roll made so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}
