package store

import (
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
)

// Resolver accessors return (nil, nil) when the optional key is absent and
// a DATA_INTEGRITY error when it is present but does not resolve.

func (s *Store) speciesRef(owner *dex.Species, label string, ref *int) (*dex.Species, error) {
	if ref == nil {
		return nil, nil
	}
	target := s.species[*ref]
	if target == nil {
		return nil, errors.DataIntegrityf("species %d: %s %d does not exist", owner.ID, label, *ref)
	}
	return target, nil
}

// Mega is the mega evolution of sp
func (s *Store) Mega(sp *dex.Species) (*dex.Species, error) {
	return s.speciesRef(sp, "mega", sp.MegaID)
}

// MegaX is the X mega evolution of sp
func (s *Store) MegaX(sp *dex.Species) (*dex.Species, error) {
	return s.speciesRef(sp, "mega_x", sp.MegaXID)
}

// MegaY is the Y mega evolution of sp
func (s *Store) MegaY(sp *dex.Species) (*dex.Species, error) {
	return s.speciesRef(sp, "mega_y", sp.MegaYID)
}

// BaseSpecies is the species a variant belongs to. Base forms have none.
func (s *Store) BaseSpecies(sp *dex.Species) (*dex.Species, error) {
	if sp.IsBaseForm() {
		return nil, nil
	}
	dexNumber := sp.DexNumber
	return s.speciesRef(sp, "base species", &dexNumber)
}

// FormItem is the item that unlocks sp as a form
func (s *Store) FormItem(sp *dex.Species) (*dex.Item, error) {
	if sp.FormItemID == nil {
		return nil, nil
	}
	item := s.items[*sp.FormItemID]
	if item == nil {
		return nil, errors.DataIntegrityf("species %d: form item %d does not exist", sp.ID, *sp.FormItemID)
	}
	return item, nil
}

// EvolutionTarget is the species at the far end of evo
func (s *Store) EvolutionTarget(evo dex.Evolution) (*dex.Species, error) {
	target := s.species[evo.TargetID]
	if target == nil {
		return nil, errors.DataIntegrityf("evolution target %d does not exist", evo.TargetID)
	}
	return target, nil
}

// TriggerItem is the item a trigger refers to, if any
func (s *Store) TriggerItem(trigger dex.Trigger) (*dex.Item, error) {
	var ref *int
	switch t := trigger.(type) {
	case dex.LevelTrigger:
		ref = t.ItemID
	case dex.ItemTrigger:
		id := t.ItemID
		ref = &id
	case dex.TradeTrigger:
		ref = t.ItemID
	case dex.OtherTrigger, nil:
		return nil, nil
	}
	if ref == nil {
		return nil, nil
	}

	item := s.items[*ref]
	if item == nil {
		return nil, errors.DataIntegrityf("trigger item %d does not exist", *ref)
	}
	return item, nil
}

// TriggerMove is the move a level trigger requires, if any
func (s *Store) TriggerMove(trigger dex.Trigger) (*dex.Move, error) {
	level, ok := trigger.(dex.LevelTrigger)
	if !ok || level.MoveID == nil {
		return nil, nil
	}
	move := s.moves[*level.MoveID]
	if move == nil {
		return nil, errors.DataIntegrityf("trigger move %d does not exist", *level.MoveID)
	}
	return move, nil
}

// MoveEffect is the effect prose of m
func (s *Store) MoveEffect(m *dex.Move) (*dex.MoveEffect, error) {
	effect := s.effects[m.EffectID]
	if effect == nil {
		return nil, errors.DataIntegrityf("move %d: effect %d does not exist", m.ID, m.EffectID)
	}
	return effect, nil
}

// MoveDescription renders the effect prose of m with its effect chance
func (s *Store) MoveDescription(m *dex.Move) (string, error) {
	effect, err := s.MoveEffect(m)
	if err != nil {
		return "", err
	}
	return m.Description(effect), nil
}

// Moves is the learnset of sp. Variants without their own learnset use
// their base species' moves.
func (s *Store) Moves(sp *dex.Species) ([]dex.SpeciesMove, error) {
	return s.inheritedMoves.Get(sp.ID, func() ([]dex.SpeciesMove, error) {
		if len(sp.Moves) > 0 {
			return sp.Moves, nil
		}
		base, err := s.BaseSpecies(sp)
		if err != nil || base == nil {
			return sp.Moves, err
		}
		return s.Moves(base)
	})
}

// Moveset is the learnset of sp resolved to move records
func (s *Store) Moveset(sp *dex.Species) ([]*dex.Move, error) {
	return s.movesets.Get(sp.ID, func() ([]*dex.Move, error) {
		learnset, err := s.Moves(sp)
		if err != nil {
			return nil, err
		}
		moves := make([]*dex.Move, 0, len(learnset))
		for _, lm := range learnset {
			move := s.moves[lm.MoveID]
			if move == nil {
				return nil, errors.DataIntegrityf("species %d: move %d does not exist", sp.ID, lm.MoveID)
			}
			moves = append(moves, move)
		}
		return moves, nil
	})
}

// ImageURL is the artwork URL for sp. The female variant is only used when
// the species has gender differences.
func (s *Store) ImageURL(sp *dex.Species, shiny, female bool) string {
	return s.assets.SpeciesImage(sp.ID, shiny, female && sp.HasGenderDifferences)
}
