package index

import (
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

// Rarity selects the spawn pool
type Rarity string

// Spawn pools
const (
	RarityNormal     Rarity = "normal"
	RarityMythical   Rarity = "mythical"
	RarityLegendary  Rarity = "legendary"
	RarityUltraBeast Rarity = "ultra_beast"
)

// Rarities lists the recognized spawn pools
var Rarities = []string{
	string(RarityNormal),
	string(RarityMythical),
	string(RarityLegendary),
	string(RarityUltraBeast),
}

// variantIDFloor separates base species ids from variant ids
const variantIDFloor = 10000

var (
	alolanIDs = []int{
		10091, 10092, 10093, 10100, 10101, 10102, 10103, 10104, 10105, 10106, 10107,
		10108, 10109, 10110, 10111, 10112, 10113, 10114, 10115, 50076, 50168,
	}
	galarianIDs = []int{
		10158, 10159, 10160, 10161, 10162, 10163, 10164, 10165, 10166, 10167, 10168,
		10169, 10170, 10171, 10172, 10173, 10174, 10175, 10176, 10177, 50053,
	}
	hisuianIDs = []int{
		10221, 10222, 10223, 10224, 10225, 10226, 10227, 10228, 10229, 10230, 10231,
		10232, 10233, 10234, 10235, 10236, 10237, 10238, 10239, 50145, 50198,
	}
	paldeanIDs = []int{10250, 10251, 10252, 10253}
	paradoxIDs = []int{
		984, 985, 986, 987, 988, 989, 990, 991, 992, 993, 994, 995,
		1005, 1006, 1007, 1008, 1009, 1010, 1020, 1021, 1022, 1023,
	}
)

// gmaxPairs maps a species id to its gigantamax variant id
var gmaxPairs = [][2]int{
	{3, 10186}, {6, 10187}, {9, 10188}, {12, 10189}, {25, 10190}, {52, 10191},
	{68, 10192}, {94, 10193}, {99, 10194}, {131, 10195}, {133, 10196}, {143, 10197},
	{569, 10198}, {809, 10199}, {812, 10200}, {815, 10201}, {818, 10202}, {823, 10203},
	{826, 10204}, {834, 10205}, {839, 10206}, {841, 10207}, {842, 10208}, {844, 10209},
	{849, 10210}, {851, 10211}, {858, 10212}, {861, 10213}, {869, 10214}, {879, 10215},
	{884, 10216}, {890, 10217}, {892, 10218}, {10183, 10219}, {10178, 10220},
}

// Alolan lists the Alolan regional form ids
func (i *Index) Alolan() []int { return slices.Clone(alolanIDs) }

// Galarian lists the Galarian regional form ids
func (i *Index) Galarian() []int { return slices.Clone(galarianIDs) }

// Hisuian lists the Hisuian regional form ids
func (i *Index) Hisuian() []int { return slices.Clone(hisuianIDs) }

// Paldean lists the Paldean regional form ids
func (i *Index) Paldean() []int { return slices.Clone(paldeanIDs) }

// Paradox lists the paradox species ids
func (i *Index) Paradox() []int { return slices.Clone(paradoxIDs) }

func (i *Index) filter(keep func(*dex.Species) bool) []int {
	var ids []int
	for _, sp := range i.store.AllSpecies() {
		if keep(sp) {
			ids = append(ids, sp.ID)
		}
	}
	return ids
}

// Mythical lists mythical species ids
func (i *Index) Mythical() []int {
	return i.filter(func(sp *dex.Species) bool { return sp.Mythical })
}

// Legendary lists legendary species ids
func (i *Index) Legendary() []int {
	return i.filter(func(sp *dex.Species) bool { return sp.Legendary })
}

// UltraBeast lists ultra beast species ids
func (i *Index) UltraBeast() []int {
	return i.filter(func(sp *dex.Species) bool { return sp.UltraBeast })
}

// EventSpecies lists event species ids
func (i *Index) EventSpecies() []int {
	return i.filter(func(sp *dex.Species) bool { return sp.Event })
}

// Mega lists mega evolution ids: every plain mega, then X megas, then Y megas
func (i *Index) Mega() []int {
	var ids []int
	for _, pick := range []func(*dex.Species) *int{
		func(sp *dex.Species) *int { return sp.MegaID },
		func(sp *dex.Species) *int { return sp.MegaXID },
		func(sp *dex.Species) *int { return sp.MegaYID },
	} {
		for _, sp := range i.store.AllSpecies() {
			if ref := pick(sp); ref != nil {
				ids = append(ids, *ref)
			}
		}
	}
	return ids
}

func (i *Index) buildGmax() {
	i.gmax = make(map[int]*dex.Species)
	for _, pair := range gmaxPairs {
		variant := i.store.Species(pair[1])
		if variant == nil {
			continue
		}
		i.gmax[pair[0]] = variant
		i.gmaxIDs = append(i.gmaxIDs, variant.ID)
	}
}

// Gmax returns the gigantamax variant of species id, or nil
func (i *Index) Gmax(id int) *dex.Species {
	i.gmaxOnce.Do(i.buildGmax)
	return i.gmax[id]
}

// IsGmax reports whether id is a gigantamax variant
func (i *Index) IsGmax(id int) bool {
	i.gmaxOnce.Do(i.buildGmax)
	for _, gid := range i.gmaxIDs {
		if gid == id {
			return true
		}
	}
	return false
}

// ListGmax lists every known gigantamax variant id
func (i *Index) ListGmax() []int {
	i.gmaxOnce.Do(i.buildGmax)
	return slices.Clone(i.gmaxIDs)
}

// TotalPokedexCount counts catchable base species
func (i *Index) TotalPokedexCount() int {
	return len(i.filter(func(sp *dex.Species) bool {
		return sp.Catchable && sp.ID < variantIDFloor
	}))
}

// SpawnPool lists the catchable species of a rarity. Unrecognized
// rarities use the normal pool.
func (i *Index) SpawnPool(rarity Rarity) []*dex.Species {
	var keep func(*dex.Species) bool
	switch rarity {
	case RarityMythical:
		keep = func(sp *dex.Species) bool { return sp.Mythical }
	case RarityLegendary:
		keep = func(sp *dex.Species) bool { return sp.Legendary }
	case RarityUltraBeast:
		keep = func(sp *dex.Species) bool { return sp.UltraBeast }
	default:
		keep = func(*dex.Species) bool { return true }
	}

	var pool []*dex.Species
	for _, sp := range i.store.AllSpecies() {
		if sp.Catchable && keep(sp) {
			pool = append(pool, sp)
		}
	}
	return pool
}

// RandomSpawn picks a species from the rarity pool weighted by abundance
func (i *Index) RandomSpawn(rarity Rarity, roller dice.Roller) (*dex.Species, error) {
	if roller == nil {
		roller = dice.DefaultRoller
	}

	pool := i.SpawnPool(rarity)
	total := 0
	for _, sp := range pool {
		total += sp.Abundance
	}
	if total <= 0 {
		return nil, errors.FailedPrecondition("no species can spawn at rarity " + string(rarity))
	}

	roll, err := roller.Roll(total)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll spawn")
	}

	for _, sp := range pool {
		roll -= sp.Abundance
		if roll <= 0 {
			return sp, nil
		}
	}
	return pool[len(pool)-1], nil
}
