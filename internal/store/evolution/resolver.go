// Package evolution walks the evolution graph of a store: evolution line
// closures, trade evolutions and the natural-language evolution sentence.
package evolution

import (
	"sort"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/pkg/memo"
	"github.com/KirkDiggler/dex-api/internal/store"
)

// Resolver answers evolution queries. Results are memoized per species.
type Resolver struct {
	store *store.Store

	lines memo.Map[int, []*dex.Species]
	texts memo.Map[int, string]
}

// New creates a resolver over st
func New(st *store.Store) *Resolver {
	return &Resolver{store: st}
}

// Line returns every species reachable from id through evolution edges in
// either direction, id included, ordered by dex number. Unknown ids yield
// an empty line.
func (r *Resolver) Line(id int) []*dex.Species {
	line, _ := r.lines.Get(id, func() ([]*dex.Species, error) {
		return r.buildLine(id), nil
	})
	return line
}

func (r *Resolver) buildLine(id int) []*dex.Species {
	root := r.store.Species(id)
	if root == nil {
		return nil
	}

	visited := map[int]bool{root.ID: true}
	queue := []*dex.Species{root}
	var line []*dex.Species

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		line = append(line, current)

		for _, evo := range edges(current) {
			if visited[evo.TargetID] {
				continue
			}
			visited[evo.TargetID] = true
			if target := r.store.Species(evo.TargetID); target != nil {
				queue = append(queue, target)
			}
		}
	}

	position := make(map[int]int, len(r.store.AllSpecies()))
	for i, sp := range r.store.AllSpecies() {
		position[sp.ID] = i
	}
	sort.SliceStable(line, func(i, j int) bool {
		if line[i].DexNumber != line[j].DexNumber {
			return line[i].DexNumber < line[j].DexNumber
		}
		return position[line[i].ID] < position[line[j].ID]
	})
	return line
}

// edges lists from-edges then to-edges
func edges(sp *dex.Species) []dex.Evolution {
	var out []dex.Evolution
	for _, list := range []*dex.EvolutionList{sp.Evolutions.From, sp.Evolutions.To} {
		if list != nil {
			out = append(out, list.Items...)
		}
	}
	return out
}

// TradeEvolutions lists the outgoing evolutions of id triggered by trade
func (r *Resolver) TradeEvolutions(id int) []dex.Evolution {
	sp := r.store.Species(id)
	if sp == nil || sp.Evolutions.To == nil {
		return nil
	}

	var out []dex.Evolution
	for _, evo := range sp.Evolutions.To.Items {
		if _, ok := evo.Trigger.(dex.TradeTrigger); ok {
			out = append(out, evo)
		}
	}
	return out
}

// Text describes how id evolves, e.g. "Ivysaur evolves from Bulbasaur
// starting from level 16 and evolves to Venusaur starting from level 32."
// ok is false when the species has nothing to describe.
func (r *Resolver) Text(id int) (string, bool) {
	text, _ := r.texts.Get(id, func() (string, error) {
		return r.buildText(id), nil
	})
	return text, text != ""
}
