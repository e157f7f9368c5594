// Package index derives secondary lookup tables over a store. Each table is
// built on first use and read-only afterwards; unknown keys yield empty
// results rather than errors.
package index

import (
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/store"
)

// Dimension selects the table LookupBy reads
type Dimension int

// Lookup dimensions
const (
	DimensionType Dimension = iota + 1
	DimensionRegion
	DimensionMove
	DimensionName
	DimensionDexNumber
	DimensionGender
)

func (d Dimension) String() string {
	switch d {
	case DimensionType:
		return "type"
	case DimensionRegion:
		return "region"
	case DimensionMove:
		return "move"
	case DimensionName:
		return "name"
	case DimensionDexNumber:
		return "dex_number"
	case DimensionGender:
		return "gender"
	default:
		return "unknown"
	}
}

// ParseDimension is the inverse of Dimension.String
func ParseDimension(s string) (Dimension, bool) {
	for d := DimensionType; d <= DimensionGender; d++ {
		if d.String() == strings.ToLower(s) {
			return d, true
		}
	}
	return 0, false
}

// noDefaultGender keys species that can be either gender
const noDefaultGender = ""

// Index holds the lazily built lookup tables
type Index struct {
	store *store.Store

	typeOnce sync.Once
	byType   map[string][]int

	regionOnce sync.Once
	byRegion   map[string][]int

	moveOnce sync.Once
	byMove   map[int][]int
	withMove []int

	nameOnce sync.Once
	byName   map[string][]*dex.Species

	dexOnce     sync.Once
	byDexNumber map[int][]*dex.Species

	genderOnce sync.Once
	byGender   map[string][]int

	itemOnce   sync.Once
	itemByName map[string]*dex.Item

	moveNameOnce sync.Once
	moveByName   map[string]*dex.Move

	gmaxOnce sync.Once
	gmax     map[int]*dex.Species
	gmaxIDs  []int
}

// New creates an index over st. No tables are built until first use.
func New(st *store.Store) *Index {
	return &Index{store: st}
}

// LookupBy returns species ids matching key in the given dimension, in
// table order
func (i *Index) LookupBy(dim Dimension, key string) []int {
	switch dim {
	case DimensionType:
		i.typeOnce.Do(i.buildTypes)
		return slices.Clone(i.byType[Fold(key)])
	case DimensionRegion:
		i.regionOnce.Do(i.buildRegions)
		return slices.Clone(i.byRegion[Fold(key)])
	case DimensionMove:
		return i.ListMove(key)
	case DimensionName:
		return speciesIDs(i.named(key))
	case DimensionDexNumber:
		number, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			return nil
		}
		return speciesIDs(i.numbered(number))
	case DimensionGender:
		i.genderOnce.Do(i.buildGenders)
		return slices.Clone(i.byGender[Fold(key)])
	default:
		return nil
	}
}

func speciesIDs(list []*dex.Species) []int {
	if len(list) == 0 {
		return nil
	}
	ids := make([]int, 0, len(list))
	for _, sp := range list {
		ids = append(ids, sp.ID)
	}
	return ids
}

func (i *Index) buildTypes() {
	i.byType = make(map[string][]int)
	for _, sp := range i.store.AllSpecies() {
		for _, t := range sp.Types {
			key := Fold(t)
			i.byType[key] = append(i.byType[key], sp.ID)
		}
	}
}

func (i *Index) buildRegions() {
	i.byRegion = make(map[string][]int)
	for _, sp := range i.store.AllSpecies() {
		key := Fold(sp.Region)
		i.byRegion[key] = append(i.byRegion[key], sp.ID)
	}
}

func (i *Index) buildMoves() {
	i.byMove = make(map[int][]int)
	for _, sp := range i.store.AllSpecies() {
		learnset, err := i.store.Moves(sp)
		if err != nil || len(learnset) == 0 {
			continue
		}
		i.withMove = append(i.withMove, sp.ID)

		seen := make(map[int]bool, len(learnset))
		for _, lm := range learnset {
			if seen[lm.MoveID] {
				continue
			}
			seen[lm.MoveID] = true
			i.byMove[lm.MoveID] = append(i.byMove[lm.MoveID], sp.ID)
		}
	}
}

func (i *Index) buildNames() {
	i.byName = make(map[string][]*dex.Species)
	for _, sp := range i.store.AllSpecies() {
		for _, alias := range i.aliases(sp) {
			i.byName[alias] = append(i.byName[alias], sp)
		}
	}
}

func (i *Index) buildDexNumbers() {
	i.byDexNumber = make(map[int][]*dex.Species)
	for _, sp := range i.store.AllSpecies() {
		i.byDexNumber[sp.ID] = append(i.byDexNumber[sp.ID], sp)
		if sp.ID != sp.DexNumber {
			i.byDexNumber[sp.DexNumber] = append(i.byDexNumber[sp.DexNumber], sp)
		}
	}
}

func (i *Index) buildGenders() {
	i.byGender = make(map[string][]int)
	for _, sp := range i.store.AllSpecies() {
		key := noDefaultGender
		if gender, ok := sp.DefaultGender(); ok {
			key = Fold(string(gender))
		}
		i.byGender[key] = append(i.byGender[key], sp.ID)
	}
}

// ListMove returns species that learn the named move. An empty name lists
// every species with a learnset.
func (i *Index) ListMove(name string) []int {
	i.moveOnce.Do(i.buildMoves)
	if name == "" {
		return slices.Clone(i.withMove)
	}
	move := i.MoveByName(name)
	if move == nil {
		return nil
	}
	return slices.Clone(i.byMove[move.ID])
}

// SpeciesByName returns the first species known by name, or nil
func (i *Index) SpeciesByName(name string) *dex.Species {
	matches := i.named(name)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// AllSpeciesByName returns every species known by name
func (i *Index) AllSpeciesByName(name string) []*dex.Species {
	return slices.Clone(i.named(name))
}

// named returns the shared table slice; callers must not modify it
func (i *Index) named(name string) []*dex.Species {
	i.nameOnce.Do(i.buildNames)
	return i.byName[Fold(name)]
}

// FindAllMatches returns the ids of every species known by name together
// with their variants, without duplicates
func (i *Index) FindAllMatches(name string) []int {
	var out []int
	seen := make(map[int]bool)
	for _, sp := range i.named(name) {
		for _, variant := range i.numbered(sp.ID) {
			if seen[variant.ID] {
				continue
			}
			seen[variant.ID] = true
			out = append(out, variant.ID)
		}
	}
	return out
}

// AllSpeciesByNumber returns the species with id number followed by every
// variant sharing that dex number
func (i *Index) AllSpeciesByNumber(number int) []*dex.Species {
	return slices.Clone(i.numbered(number))
}

func (i *Index) numbered(number int) []*dex.Species {
	i.dexOnce.Do(i.buildDexNumbers)
	return i.byDexNumber[number]
}

// SpeciesByNumber returns the species with the given id, or nil
func (i *Index) SpeciesByNumber(number int) *dex.Species {
	return i.store.Species(number)
}

// Variants returns every species sharing sp's dex number
func (i *Index) Variants(sp *dex.Species) []*dex.Species {
	return i.AllSpeciesByNumber(sp.DexNumber)
}

// ItemByName finds an item by display name, ignoring case and accents
func (i *Index) ItemByName(name string) *dex.Item {
	i.itemOnce.Do(func() {
		i.itemByName = make(map[string]*dex.Item)
		for _, item := range i.store.AllItems() {
			key := Fold(item.Name)
			if _, exists := i.itemByName[key]; !exists {
				i.itemByName[key] = item
			}
		}
	})
	return i.itemByName[Fold(name)]
}

// MoveByName finds a move by display name, ignoring case and accents
func (i *Index) MoveByName(name string) *dex.Move {
	i.moveNameOnce.Do(func() {
		i.moveByName = make(map[string]*dex.Move)
		for _, move := range i.store.AllMoves() {
			key := foldMoveName(move.Name)
			if _, exists := i.moveByName[key]; !exists {
				i.moveByName[key] = move
			}
		}
	})
	return i.moveByName[foldMoveName(name)]
}
