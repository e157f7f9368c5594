package store

import (
	"regexp"
	"sort"
	"strings"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/rows"
)

const (
	// englishLanguageID selects move names in the canonical locale
	englishLanguageID = 9

	// variantIDFloor marks ids reserved for variant records. Moves above
	// it are not loaded.
	variantIDFloor = 10000

	// happinessItemID stands in for friendship-based level triggers
	happinessItemID = 14001

	levelUpMethodID = 1
)

// Evolution trigger ids in evolution rows
const (
	triggerLevelUp = 1
	triggerTrade   = 2
	triggerUseItem = 3
)

var descriptionLinkRegex = regexp.MustCompile(`\[.*?\]\{.*?:(.*?)\}`)

var speciesRequired = []string{
	"id", "slug", "dex_number", "name.en",
	"base.hp", "base.atk", "base.def", "base.satk", "base.sdef", "base.spd",
	"height", "weight", "region",
}

var moveRequired = []string{
	"id", "identifier", "pp", "priority", "type_id", "target_id", "damage_class_id", "effect_id",
}

// namedLocales lists name columns in display order
var namedLocales = []struct {
	column string
	locale dex.Locale
}{
	{"name.ja", dex.LocaleJapanese},
	{"name.ja_r", dex.LocaleJapaneseRoman},
	{"name.ja_t", dex.LocaleJapaneseTrade},
	{"name.en", dex.LocaleEnglish},
	{"name.en2", dex.LocaleEnglish},
	{"name.de", dex.LocaleGerman},
	{"name.fr", dex.LocaleFrench},
}

func missingColumn(row rows.Row, required []string) (string, bool) {
	for _, col := range required {
		if !row.Has(col) {
			return col, true
		}
	}
	return "", false
}

func mustInt(row rows.Row, table, col string) (int, error) {
	v, ok := row.Int(col)
	if !ok {
		return 0, errors.DataIntegrityf("%s: column %s is not an integer", table, col)
	}
	return v, nil
}

func intOr(row rows.Row, col string, fallback int) int {
	if v, ok := row.Int(col); ok {
		return v
	}
	return fallback
}

func stringOr(row rows.Row, col string) string {
	v, _ := row.String(col)
	return v
}

func (s *Store) loadEffects(data []rows.Row) error {
	for _, row := range data {
		id, err := mustInt(row, rows.FileEffects, "move_effect_id")
		if err != nil {
			return err
		}
		text := descriptionLinkRegex.ReplaceAllString(stringOr(row, "short_effect"), "$1")
		text = strings.ReplaceAll(text, "$effect_chance", "{effect_chance}")

		effect := &dex.MoveEffect{ID: id, Description: text}
		if _, exists := s.effects[id]; !exists {
			s.effectOrder = append(s.effectOrder, effect)
		}
		s.effects[id] = effect
	}
	return nil
}

// loadMoves returns the ids of moves deliberately left out so that
// learnsets can drop them without treating them as broken references.
func (s *Store) loadMoves(set *rows.Set) (map[int]bool, error) {
	names := make(map[int]string)
	for _, row := range set.MoveNames {
		if lang, _ := row.Int("local_language_id"); lang != englishLanguageID {
			continue
		}
		id, err := mustInt(row, rows.FileMoveNames, "move_id")
		if err != nil {
			return nil, err
		}
		names[id] = stringOr(row, "name")
	}

	meta := make(map[int]rows.Row)
	for _, row := range set.MoveMeta {
		id, err := mustInt(row, rows.FileMoveMeta, "move_id")
		if err != nil {
			return nil, err
		}
		meta[id] = row
	}

	statChanges := make(map[int][]dex.StatChange)
	for _, row := range set.MoveStatChanges {
		id, err := mustInt(row, rows.FileMoveStatChanges, "move_id")
		if err != nil {
			return nil, err
		}
		statChanges[id] = append(statChanges[id], dex.StatChange{
			StatID: intOr(row, "stat_id", 0),
			Change: intOr(row, "change", 0),
		})
	}

	skipped := make(map[int]bool)
	for _, row := range set.Moves {
		id, err := mustInt(row, rows.FileMoves, "id")
		if err != nil {
			return nil, err
		}
		// variant and meta-less moves are dropped before their columns are checked
		metaRow, hasMeta := meta[id]
		if id > variantIDFloor || !hasMeta {
			skipped[id] = true
			continue
		}
		if col, missing := missingColumn(row, moveRequired); missing {
			return nil, errors.DataIntegrityf("%s: row is missing column %s", rows.FileMoves, col).
				WithMeta("move_id", id)
		}

		name, ok := names[id]
		if !ok {
			return nil, errors.DataIntegrityf("move %d has no English name", id)
		}

		effectID := intOr(row, "effect_id", 0)
		effect, ok := s.effects[effectID]
		if !ok {
			return nil, errors.DataIntegrityf("move %d references unknown effect %d", id, effectID)
		}

		accuracy := row.IntPtr("accuracy")
		if strings.Contains(strings.ToLower(effect.Description), "never misses") {
			full := 100
			accuracy = &full
		}

		move := &dex.Move{
			ID:           id,
			Slug:         stringOr(row, "identifier"),
			Name:         name,
			Power:        row.IntPtr("power"),
			PP:           intOr(row, "pp", 0),
			Accuracy:     accuracy,
			Priority:     intOr(row, "priority", 0),
			TargetID:     intOr(row, "target_id", 0),
			TypeID:       intOr(row, "type_id", 0),
			DamageClass:  dex.DamageClass(intOr(row, "damage_class_id", 0)),
			EffectID:     effectID,
			EffectChance: row.IntPtr("effect_chance"),
			Meta: dex.MoveMeta{
				CategoryID:    intOr(metaRow, "meta_category_id", 0),
				AilmentID:     intOr(metaRow, "meta_ailment_id", 0),
				Drain:         intOr(metaRow, "drain", 0),
				Healing:       intOr(metaRow, "healing", 0),
				CritRate:      intOr(metaRow, "crit_rate", 0),
				AilmentChance: intOr(metaRow, "ailment_chance", 0),
				FlinchChance:  intOr(metaRow, "flinch_chance", 0),
				StatChance:    intOr(metaRow, "stat_chance", 0),
				MinHits:       metaRow.IntPtr("min_hits"),
				MaxHits:       metaRow.IntPtr("max_hits"),
				MinTurns:      metaRow.IntPtr("min_turns"),
				MaxTurns:      metaRow.IntPtr("max_turns"),
				StatChanges:   statChanges[id],
			},
		}

		if _, exists := s.moves[id]; !exists {
			s.moveOrder = append(s.moveOrder, move)
		}
		s.moves[id] = move
	}

	return skipped, nil
}

func (s *Store) loadItems(data []rows.Row) error {
	for _, row := range data {
		id, err := mustInt(row, rows.FileItems, "id")
		if err != nil {
			return err
		}
		name, ok := row.String("name")
		if !ok {
			return errors.DataIntegrityf("item %d has no name", id)
		}

		item := &dex.Item{
			ID:          id,
			Name:        name,
			Description: stringOr(row, "description"),
			Cost:        intOr(row, "cost", 0),
			Page:        intOr(row, "page", 0),
			Action:      stringOr(row, "action"),
			Inline:      !row.Has("separate"),
			Emote:       stringOr(row, "emote"),
			Shard:       row.Has("shard"),
		}
		if _, exists := s.items[id]; !exists {
			s.itemOrder = append(s.itemOrder, item)
		}
		s.items[id] = item
	}
	return nil
}

// evolutionTriggers maps evolved species id to the trigger of the first
// evolution row naming it
func evolutionTriggers(data []rows.Row) map[int]dex.Trigger {
	triggers := make(map[int]dex.Trigger)
	for _, row := range data {
		id, ok := row.Int("evolved_species_id")
		if !ok {
			continue
		}
		if _, seen := triggers[id]; seen {
			continue
		}
		triggers[id] = triggerFromRow(row)
	}
	return triggers
}

func triggerFromRow(row rows.Row) dex.Trigger {
	kind, _ := row.Int("evolution_trigger_id")
	switch kind {
	case triggerLevelUp:
		if row.Has("location_id") {
			return dex.OtherTrigger{}
		}
		trigger := dex.LevelTrigger{
			Level:      row.IntPtr("minimum_level"),
			ItemID:     row.IntPtr("held_item_id"),
			MoveID:     row.IntPtr("known_move_id"),
			MoveTypeID: row.IntPtr("known_move_type_id"),
			Time:       stringOr(row, "time_of_day"),
			GenderID:   row.IntPtr("gender_id"),
		}
		if row.Has("minimum_happiness") {
			item := happinessItemID
			trigger.ItemID = &item
		}
		if rel, ok := row.Int("relative_physical_stats"); ok {
			stats := dex.RelativeStats(rel)
			trigger.RelativeStats = &stats
		}
		if natures, ok := row.String("natures"); ok {
			for _, n := range strings.Split(natures, ",") {
				if n = strings.TrimSpace(n); n != "" {
					trigger.Natures = append(trigger.Natures, n)
				}
			}
		}
		return trigger
	case triggerTrade:
		return dex.TradeTrigger{ItemID: row.IntPtr("held_item_id")}
	case triggerUseItem:
		if item, ok := row.Int("trigger_item_id"); ok {
			return dex.ItemTrigger{ItemID: item}
		}
		return dex.OtherTrigger{}
	default:
		return dex.OtherTrigger{}
	}
}

func (s *Store) loadSpecies(data, evolutionRows []rows.Row) error {
	triggers := evolutionTriggers(evolutionRows)
	triggerFor := func(id int) dex.Trigger {
		if t, ok := triggers[id]; ok {
			return t
		}
		return dex.OtherTrigger{}
	}

	for _, row := range data {
		if !row.Has("enabled") {
			continue
		}
		if col, missing := missingColumn(row, speciesRequired); missing {
			id, _ := row.String("id")
			return errors.DataIntegrityf("species %q is missing column %s", id, col)
		}

		species, err := speciesFromRow(row)
		if err != nil {
			return err
		}

		if row.Has("evo.from") {
			from, err := mustInt(row, rows.FileSpecies, "evo.from")
			if err != nil {
				return err
			}
			species.Evolutions.From = &dex.EvolutionList{Items: []dex.Evolution{{
				TargetID:  from,
				Direction: dex.DirectionFrom,
				Trigger:   triggerFor(species.ID),
			}}}
		}

		targets, err := row.Ints("evo.to")
		if err != nil {
			return errors.WrapWithCode(err, errors.CodeDataIntegrity, "invalid evo.to")
		}
		if len(targets) > 0 {
			list := &dex.EvolutionList{}
			for _, target := range targets {
				list.Items = append(list.Items, dex.Evolution{
					TargetID:  target,
					Direction: dex.DirectionTo,
					Trigger:   triggerFor(target),
				})
			}
			species.Evolutions.To = list
		}

		if _, exists := s.species[species.ID]; exists {
			return errors.DataIntegrityf("species %d is defined twice", species.ID)
		}
		s.species[species.ID] = species
		s.speciesOrder = append(s.speciesOrder, species)
	}
	return nil
}

func speciesFromRow(row rows.Row) (*dex.Species, error) {
	ints := make(map[string]int)
	for _, col := range []string{"id", "dex_number", "base.hp", "base.atk", "base.def", "base.satk", "base.sdef", "base.spd", "height", "weight"} {
		v, err := mustInt(row, rows.FileSpecies, col)
		if err != nil {
			return nil, err
		}
		ints[col] = v
	}

	var names []dex.LocalizedName
	for _, nl := range namedLocales {
		name, ok := row.String(nl.column)
		if !ok {
			continue
		}
		if nl.column == "name.ja_t" && name == stringOr(row, "name.ja_r") {
			continue
		}
		names = append(names, dex.LocalizedName{Locale: nl.locale, Name: name})
	}

	var types []string
	for _, col := range []string{"type.0", "type.1"} {
		if t, ok := row.String(col); ok {
			types = append(types, t)
		}
	}

	return &dex.Species{
		ID:        ints["id"],
		DexNumber: ints["dex_number"],
		Slug:      stringOr(row, "slug"),
		Names:     names,
		BaseStats: dex.Stats{
			HP:   ints["base.hp"],
			Atk:  ints["base.atk"],
			Def:  ints["base.def"],
			SAtk: ints["base.satk"],
			SDef: ints["base.sdef"],
			Spd:  ints["base.spd"],
		},
		Types:                types,
		Height:               float64(ints["height"]) / 10,
		Weight:               float64(ints["weight"]) / 10,
		Catchable:            row.Has("catchable"),
		Abundance:            intOr(row, "abundance", 0),
		GenderRate:           intOr(row, "gender_rate", -1),
		HasGenderDifferences: intOr(row, "has_gender_differences", 0) == 1,
		Description:          stringOr(row, "description"),
		Region:               stringOr(row, "region"),
		Mythical:             row.Has("mythical"),
		Legendary:            row.Has("legendary"),
		UltraBeast:           row.Has("ultra_beast"),
		Event:                row.Has("event"),
		IsForm:               row.Has("is_form"),
		MegaID:               row.IntPtr("evo.mega"),
		MegaXID:              row.IntPtr("evo.mega_x"),
		MegaYID:              row.IntPtr("evo.mega_y"),
		FormItemID:           row.IntPtr("form_item"),
	}, nil
}

// loadSpeciesMoves keeps level-up moves from each species' latest version
// group, ordered by level
func (s *Store) loadSpeciesMoves(data []rows.Row, skipped map[int]bool) error {
	latest := make(map[int]int)
	for _, row := range data {
		pid, _ := row.Int("pokemon_id")
		if vg, ok := row.Int("version_group_id"); ok && vg > latest[pid] {
			latest[pid] = vg
		}
	}

	for _, row := range data {
		pid, _ := row.Int("pokemon_id")
		species, ok := s.species[pid]
		if !ok {
			continue
		}
		if method, _ := row.Int("pokemon_move_method_id"); method != levelUpMethodID {
			continue
		}
		if vg, _ := row.Int("version_group_id"); vg != latest[pid] {
			continue
		}

		moveID, err := mustInt(row, rows.FileSpeciesMoves, "move_id")
		if err != nil {
			return err
		}
		if _, ok := s.moves[moveID]; !ok {
			if skipped[moveID] {
				continue
			}
			return errors.DataIntegrityf("species %d learns unknown move %d", pid, moveID)
		}

		species.Moves = append(species.Moves, dex.SpeciesMove{
			MoveID: moveID,
			Method: dex.MoveMethod{Level: intOr(row, "level", 0)},
		})
	}

	for _, species := range s.speciesOrder {
		sort.SliceStable(species.Moves, func(i, j int) bool {
			return species.Moves[i].Method.Level < species.Moves[j].Method.Level
		})
	}
	return nil
}

// checkReferences verifies every present foreign key resolves
func (s *Store) checkReferences() error {
	for _, sp := range s.speciesOrder {
		for label, ref := range map[string]*int{"mega": sp.MegaID, "mega_x": sp.MegaXID, "mega_y": sp.MegaYID} {
			if ref != nil && s.species[*ref] == nil {
				return errors.DataIntegrityf("species %d: %s target %d does not exist", sp.ID, label, *ref)
			}
		}
		if sp.FormItemID != nil && s.items[*sp.FormItemID] == nil {
			return errors.DataIntegrityf("species %d: form item %d does not exist", sp.ID, *sp.FormItemID)
		}
		if sp.ID != sp.DexNumber && s.species[sp.DexNumber] == nil {
			return errors.DataIntegrityf("species %d: base species %d does not exist", sp.ID, sp.DexNumber)
		}

		for _, list := range []*dex.EvolutionList{sp.Evolutions.From, sp.Evolutions.To} {
			if list == nil {
				continue
			}
			for _, evo := range list.Items {
				if s.species[evo.TargetID] == nil {
					return errors.DataIntegrityf("species %d: evolution target %d does not exist", sp.ID, evo.TargetID)
				}
				if _, err := s.TriggerItem(evo.Trigger); err != nil {
					return errors.Wrapf(err, "species %d", sp.ID)
				}
				if _, err := s.TriggerMove(evo.Trigger); err != nil {
					return errors.Wrapf(err, "species %d", sp.ID)
				}
			}
		}
	}
	return nil
}
