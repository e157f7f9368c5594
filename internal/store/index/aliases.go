package index

import (
	"strings"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
)

// aliasRule adds accepted names to a promotional variant. Inherit lists
// species whose accepted names also identify the variant.
type aliasRule struct {
	Inherit []int
	Names   []string
}

// extraAliases covers promotional variants whose dex number cannot point
// at every species they resemble
var extraAliases = map[int]aliasRule{
	// Elsa Galarian Ponyta
	50053: {Inherit: []int{10159}},
	// Halloween Alolan Ninetales
	50076: {Inherit: []int{10104}},
	// Pride Gardevoir & Delphox
	50107: {Inherit: []int{655}, Names: []string{"pride gardevoir", "pride delphox"}},
	// Santa Hisuian Zorua
	50145: {Inherit: []int{10230}, Names: []string{"christmas zorua"}},
	// Reindeer Deerling
	50147: {Names: []string{"christmas deerling"}},
	// Pyjama Plusle & Minun
	50149: {Inherit: []int{312}, Names: []string{"christmas minun"}},
	// Birthday Cake Alolan Vulpix
	50168: {Inherit: []int{10103}, Names: []string{"anniversary alolan vulpix", "anniversary vulpix"}},
	// La Catrina Hisuian Lilligant
	50198: {Inherit: []int{10229}, Names: []string{"dia de muertos lilligant", "day of the dead hisuian lilligant"}},
	// Grinch Grimmsnarl
	50207: {Names: []string{"christmas grimmsnarl"}},
}

// Día de Muertos variants are also known as "day of the dead <base>"
const (
	dayOfTheDeadFirst    = 50192
	dayOfTheDeadLast     = 50198
	dayOfTheDeadTemplate = "day of the dead {base}"
)

// aliases returns every name that identifies sp, without duplicates
func (i *Index) aliases(sp *dex.Species) []string {
	return i.aliasesSeen(sp, map[int]bool{})
}

func (i *Index) aliasesSeen(sp *dex.Species, visiting map[int]bool) []string {
	if visiting[sp.ID] {
		return nil
	}
	visiting[sp.ID] = true

	var out []string
	inherit := func(id int) {
		if other := i.store.Species(id); other != nil {
			out = append(out, i.aliasesSeen(other, visiting)...)
		}
	}

	if sp.IsForm || sp.Event {
		inherit(sp.DexNumber)
	}
	if strings.Contains(sp.Slug, "nidoran") {
		out = append(out, "nidoran")
	}
	if sp.ID >= dayOfTheDeadFirst && sp.ID <= dayOfTheDeadLast {
		if base := i.store.Species(sp.DexNumber); base != nil {
			out = append(out, strings.ReplaceAll(dayOfTheDeadTemplate, "{base}", strings.ToLower(base.Name())))
		}
	}
	if rule, ok := extraAliases[sp.ID]; ok {
		for _, id := range rule.Inherit {
			inherit(id)
		}
		out = append(out, rule.Names...)
	}
	for _, n := range sp.Names {
		out = append(out, n.Name)
	}
	out = append(out, sp.Slug)

	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, alias := range out {
		key := Fold(alias)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, key)
	}
	delete(visiting, sp.ID)
	return deduped
}
