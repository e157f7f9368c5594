package store_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/dex-api/data"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/rows"
	"github.com/KirkDiggler/dex-api/internal/store"
)

type StoreTestSuite struct {
	suite.Suite
	store *store.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	set, err := rows.LoadFS(data.FS())
	s.Require().NoError(err)

	s.store, err = store.New(&store.Config{Rows: set})
	s.Require().NoError(err)
}

func (s *StoreTestSuite) TestNewRequiresRows() {
	_, err := store.New(&store.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = store.New(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestDisabledSpeciesSkipped() {
	s.Len(s.store.AllSpecies(), 30)
	s.Nil(s.store.Species(10034))
	s.Equal(1, s.store.AllSpecies()[0].ID)
}

func (s *StoreTestSuite) TestSpeciesFields() {
	sp := s.store.Species(1)
	s.Require().NotNil(sp)

	s.Equal("Bulbasaur", sp.Name())
	s.Equal("bulbasaur", sp.Slug)
	s.Equal([]string{"Grass", "Poison"}, sp.Types)
	s.InDelta(0.7, sp.Height, 1e-9)
	s.InDelta(6.9, sp.Weight, 1e-9)
	s.True(sp.Catchable)
	s.Equal(200, sp.Abundance)
	s.Equal(1, sp.GenderRate)
	s.False(sp.HasGenderDifferences)
	s.Equal("kanto", sp.Region)

	// the trade-name column duplicates the romanized one and is dropped
	s.Equal([]dex.LocalizedName{
		{Locale: dex.LocaleJapanese, Name: "フシギダネ"},
		{Locale: dex.LocaleJapaneseRoman, Name: "Fushigidane"},
		{Locale: dex.LocaleEnglish, Name: "Bulbasaur"},
		{Locale: dex.LocaleGerman, Name: "Bisasam"},
		{Locale: dex.LocaleFrench, Name: "Bulbizarre"},
	}, sp.Names)

	mew := s.store.Species(151)
	s.True(mew.Mythical)
	s.Equal(-1, mew.GenderRate)

	mega := s.store.Species(10033)
	s.True(mega.IsForm)
	s.False(mega.Catchable)
	s.Equal(0, mega.Abundance)
}

func (s *StoreTestSuite) TestLearnsetLatestLevelUpOnly() {
	moves, err := s.store.Moves(s.store.Species(1))
	s.Require().NoError(err)

	s.Equal([]dex.SpeciesMove{
		{MoveID: 33, Method: dex.MoveMethod{Level: 1}},
		{MoveID: 45, Method: dex.MoveMethod{Level: 3}},
		{MoveID: 22, Method: dex.MoveMethod{Level: 7}},
		{MoveID: 73, Method: dex.MoveMethod{Level: 9}},
	}, moves)
	s.Equal("Level 9", moves[3].Method.Text())
}

func (s *StoreTestSuite) TestVariantsInheritLearnset() {
	mega, err := s.store.Moveset(s.store.Species(10033))
	s.Require().NoError(err)

	var ids []int
	for _, m := range mega {
		ids = append(ids, m.ID)
	}
	s.Equal([]int{33, 45, 22, 73}, ids)

	own, err := s.store.Moves(s.store.Species(10007))
	s.Require().NoError(err)
	s.Require().Len(own, 1)
	s.Equal(247, own[0].MoveID)
}

func (s *StoreTestSuite) TestMoves() {
	s.Nil(s.store.Move(10001))

	tackle := s.store.Move(33)
	s.Require().NotNil(tackle)
	s.Equal("Tackle", tackle.Name)
	s.Equal("Normal", tackle.Type())
	s.Equal(dex.DamageClassPhysical, tackle.DamageClass)

	swift := s.store.Move(129)
	s.Require().NotNil(swift.Accuracy)
	s.Equal(100, *swift.Accuracy)

	s.Nil(s.store.Move(214).Accuracy)

	growl := s.store.Move(45)
	s.Nil(growl.Power)
	s.Equal([]dex.StatChange{{StatID: 2, Change: -1}}, growl.Meta.StatChanges)

	doubleSlap := s.store.Move(3)
	s.Require().NotNil(doubleSlap.Meta.MinHits)
	s.Equal(2, *doubleSlap.Meta.MinHits)
	s.Equal(5, *doubleSlap.Meta.MaxHits)
}

func (s *StoreTestSuite) TestMoveDescriptions() {
	s.Equal("Has a {effect_chance}% chance to burn the target.", s.store.Effect(5).Description)
	s.Equal("Lowers the target's attack by one stat-modifier.", s.store.Effect(19).Description)

	text, err := s.store.MoveDescription(s.store.Move(52))
	s.Require().NoError(err)
	s.Equal("Has a 10% chance to burn the target.", text)

	text, err = s.store.MoveDescription(s.store.Move(33))
	s.Require().NoError(err)
	s.Equal("Inflicts regular damage.", text)
}

func (s *StoreTestSuite) TestItems() {
	booster := s.store.Item(1)
	s.Require().NotNil(booster)
	s.False(booster.Inline)
	s.True(booster.Shard)

	stone := s.store.Item(82)
	s.Equal("Fire Stone", stone.Name)
	s.True(stone.Inline)
	s.False(stone.Shard)
	s.Len(s.store.AllItems(), 7)
}

func (s *StoreTestSuite) TestEvolutionTriggers() {
	ivysaur := s.store.Species(2)
	s.Require().NotNil(ivysaur.Evolutions.From)
	from := ivysaur.Evolutions.From.Items[0]
	s.Equal(1, from.TargetID)
	s.Equal(dex.DirectionFrom, from.Direction)
	level, ok := from.Trigger.(dex.LevelTrigger)
	s.Require().True(ok)
	s.Equal(16, *level.Level)

	eevee := s.store.Species(133)
	s.Require().NotNil(eevee.Evolutions.To)
	s.Len(eevee.Evolutions.To.Items, 4)
	s.Equal(dex.ItemTrigger{ItemID: 84}, eevee.Evolutions.To.Items[0].Trigger)

	// the first evolution row wins over the later location-based one
	espeon, ok := eevee.Evolutions.To.Items[3].Trigger.(dex.LevelTrigger)
	s.Require().True(ok)
	s.Equal(14001, *espeon.ItemID)
	s.Equal("day", espeon.Time)
	s.Nil(espeon.Level)

	onix := s.store.Species(95)
	metalCoat := 233
	s.Equal(dex.TradeTrigger{ItemID: &metalCoat}, onix.Evolutions.To.Items[0].Trigger)

	kadabra := s.store.Species(64)
	s.Equal(dex.TradeTrigger{}, kadabra.Evolutions.To.Items[0].Trigger)

	s.Nil(s.store.Species(151).Evolutions.From)
	s.Nil(s.store.Species(151).Evolutions.To)
}

func (s *StoreTestSuite) TestResolvers() {
	venusaur := s.store.Species(3)

	mega, err := s.store.Mega(venusaur)
	s.Require().NoError(err)
	s.Equal(10033, mega.ID)

	megaX, err := s.store.MegaX(venusaur)
	s.NoError(err)
	s.Nil(megaX)

	base, err := s.store.BaseSpecies(mega)
	s.Require().NoError(err)
	s.Equal(3, base.ID)

	base, err = s.store.BaseSpecies(venusaur)
	s.NoError(err)
	s.Nil(base)

	orb, err := s.store.FormItem(s.store.Species(10007))
	s.Require().NoError(err)
	s.Equal("Griseous Orb", orb.Name)

	target, err := s.store.EvolutionTarget(dex.Evolution{TargetID: 2, Direction: dex.DirectionTo})
	s.Require().NoError(err)
	s.Equal("Ivysaur", target.Name())

	_, err = s.store.EvolutionTarget(dex.Evolution{TargetID: 9999})
	s.True(errors.IsDataIntegrity(err))

	move, err := s.store.TriggerMove(s.store.Species(648).Evolutions.To.Items[0].Trigger)
	s.Require().NoError(err)
	s.Equal("Relic Song", move.Name)

	item, err := s.store.TriggerItem(dex.OtherTrigger{})
	s.NoError(err)
	s.Nil(item)

	_, err = s.store.TriggerItem(dex.ItemTrigger{ItemID: 999})
	s.True(errors.IsDataIntegrity(err))
}

func (s *StoreTestSuite) TestImageURL() {
	bulbasaur := s.store.Species(1)
	venusaur := s.store.Species(3)

	s.Equal("https://cdn.poketwo.net/images/1.png", s.store.ImageURL(bulbasaur, false, false))
	s.Equal("https://cdn.poketwo.net/images/1.png", s.store.ImageURL(bulbasaur, false, true))
	s.Equal("https://cdn.poketwo.net/shiny/3F.png", s.store.ImageURL(venusaur, true, true))
	s.Equal("https://cdn.poketwo.net/shiny/3.png", s.store.ImageURL(venusaur, true, false))

	assets := &store.Assets{BaseURL: "https://assets.example.com/dex/"}
	s.Equal("https://assets.example.com/images/25F.png", assets.SpeciesImage(25, false, true))
}

// minimalSet is a tiny consistent dataset that tests corrupt one table at a time
func minimalSet() *rows.Set {
	return &rows.Set{
		Species: []rows.Row{
			{"id": 1, "dex_number": 1, "slug": "one", "name.en": "One", "base.hp": 1, "base.atk": 1, "base.def": 1,
				"base.satk": 1, "base.sdef": 1, "base.spd": 1, "height": 1, "weight": 1, "region": "kanto", "enabled": 1},
		},
		Moves: []rows.Row{
			{"id": 33, "identifier": "tackle", "pp": 35, "priority": 0, "type_id": 1, "target_id": 10,
				"damage_class_id": 2, "effect_id": 1, "power": 40, "accuracy": 100},
		},
		MoveNames:    []rows.Row{{"move_id": 33, "local_language_id": 9, "name": "Tackle"}},
		MoveMeta:     []rows.Row{{"move_id": 33, "meta_category_id": 0}},
		Effects:      []rows.Row{{"move_effect_id": 1, "short_effect": "Inflicts regular damage."}},
		Items:        []rows.Row{{"id": 82, "name": "Fire Stone"}},
		SpeciesMoves: []rows.Row{{"pokemon_id": 1, "version_group_id": 20, "move_id": 33, "pokemon_move_method_id": 1, "level": 1}},
	}
}

func (s *StoreTestSuite) TestDataIntegrity() {
	testCases := []struct {
		name    string
		corrupt func(set *rows.Set)
	}{
		{
			name:    "missing English name",
			corrupt: func(set *rows.Set) { delete(set.Species[0], "name.en") },
		},
		{
			name:    "missing region",
			corrupt: func(set *rows.Set) { delete(set.Species[0], "region") },
		},
		{
			name: "learnset references unknown move",
			corrupt: func(set *rows.Set) {
				set.SpeciesMoves = append(set.SpeciesMoves, rows.Row{
					"pokemon_id": 1, "version_group_id": 20, "move_id": 999, "pokemon_move_method_id": 1, "level": 5,
				})
			},
		},
		{
			name:    "unknown evolution target",
			corrupt: func(set *rows.Set) { set.Species[0]["evo.to"] = 2 },
		},
		{
			name:    "unknown mega target",
			corrupt: func(set *rows.Set) { set.Species[0]["evo.mega"] = 10033 },
		},
		{
			name:    "unknown form item",
			corrupt: func(set *rows.Set) { set.Species[0]["form_item"] = 112 },
		},
		{
			name: "unknown trigger item",
			corrupt: func(set *rows.Set) {
				set.Species = append(set.Species, rows.Row{
					"id": 2, "dex_number": 2, "slug": "two", "name.en": "Two", "base.hp": 1, "base.atk": 1, "base.def": 1,
					"base.satk": 1, "base.sdef": 1, "base.spd": 1, "height": 1, "weight": 1, "region": "kanto",
					"enabled": 1, "evo.from": 1,
				})
				set.Evolutions = []rows.Row{{"evolved_species_id": 2, "evolution_trigger_id": 3, "trigger_item_id": 84}}
			},
		},
		{
			name: "unknown trigger move",
			corrupt: func(set *rows.Set) {
				set.Species = append(set.Species, rows.Row{
					"id": 2, "dex_number": 2, "slug": "two", "name.en": "Two", "base.hp": 1, "base.atk": 1, "base.def": 1,
					"base.satk": 1, "base.sdef": 1, "base.spd": 1, "height": 1, "weight": 1, "region": "kanto",
					"enabled": 1, "evo.from": 1,
				})
				set.Evolutions = []rows.Row{{"evolved_species_id": 2, "evolution_trigger_id": 1, "known_move_id": 547}}
			},
		},
		{
			name:    "move references unknown effect",
			corrupt: func(set *rows.Set) { set.Moves[0]["effect_id"] = 77 },
		},
		{
			name:    "variant without base species",
			corrupt: func(set *rows.Set) { set.Species[0]["dex_number"] = 5 },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			set := minimalSet()
			tc.corrupt(set)

			_, err := store.New(&store.Config{Rows: set})
			s.Require().Error(err)
			s.True(errors.IsDataIntegrity(err), "got %v", err)
		})
	}
}

func (s *StoreTestSuite) TestSkippedMovesDroppedFromLearnset() {
	set := minimalSet()
	set.Moves = append(set.Moves, rows.Row{
		"id": 10001, "identifier": "shadow-rush", "pp": 10, "priority": 0, "type_id": 1, "target_id": 10,
		"damage_class_id": 2, "effect_id": 1,
	})
	set.SpeciesMoves = append(set.SpeciesMoves, rows.Row{
		"pokemon_id": 1, "version_group_id": 20, "move_id": 10001, "pokemon_move_method_id": 1, "level": 3,
	})

	st, err := store.New(&store.Config{Rows: set})
	s.Require().NoError(err)

	moves, err := st.Moves(st.Species(1))
	s.Require().NoError(err)
	s.Len(moves, 1)
	s.Len(st.AllMoves(), 1)
}

func (s *StoreTestSuite) TestSkippedMovesNeedNoColumns() {
	testCases := []struct {
		name string
		row  rows.Row
	}{
		{
			name: "variant id without pp",
			row: rows.Row{
				"id": 10001, "identifier": "shadow-rush", "priority": 0, "type_id": 1, "target_id": 10,
				"damage_class_id": 2, "effect_id": 1,
			},
		},
		{
			name: "no meta row and no pp",
			row:  rows.Row{"id": 900, "identifier": "unfinished", "effect_id": 1},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			set := minimalSet()
			set.Moves = append(set.Moves, tc.row)

			st, err := store.New(&store.Config{Rows: set})
			s.Require().NoError(err)
			s.Len(st.AllMoves(), 1)
		})
	}
}

func (s *StoreTestSuite) TestMoveMissingColumn() {
	set := minimalSet()
	delete(set.Moves[0], "pp")

	_, err := store.New(&store.Config{Rows: set})
	s.Require().Error(err)
	s.True(errors.IsDataIntegrity(err))
	s.Contains(err.Error(), "missing column pp")
}
