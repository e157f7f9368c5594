package evolution

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
)

func (r *Resolver) buildText(id int) string {
	sp := r.store.Species(id)
	if sp == nil {
		return ""
	}

	// a species already named in the sentence is never described again
	visited := map[int]bool{sp.ID: true}

	var text string
	if sp.IsForm && sp.FormItemID != nil {
		base := r.store.Species(sp.DexNumber)
		item, err := r.store.FormItem(sp)
		if base != nil && err == nil && item != nil {
			text = fmt.Sprintf(" transforms from %s when given a %s", base.Name(), item.Name)
		}
	} else if from := r.listText(sp, sp.Evolutions.From, visited); from != "" {
		text = " " + from
	}

	if to := r.listText(sp, sp.Evolutions.To, visited); to != "" {
		if text != "" {
			text += " and"
		}
		text += " " + to
	}

	if text == "" {
		return ""
	}
	return sp.Name() + text + "."
}

func (r *Resolver) listText(owner *dex.Species, list *dex.EvolutionList, visited map[int]bool) string {
	if list == nil {
		return ""
	}

	var parts []string
	for _, evo := range list.Items {
		if visited[evo.TargetID] {
			continue
		}
		target := r.store.Species(evo.TargetID)
		if target == nil {
			continue
		}
		visited[target.ID] = true

		part := fmt.Sprintf("%s %s %s %s", action(owner, target, evo.Direction), evo.Direction, target.Name(), r.triggerText(evo.Trigger))
		if next := r.listText(target, target.Evolutions.List(evo.Direction), visited); next != "" {
			part += ", which " + next
		}
		parts = append(parts, part)
	}
	return joinList(parts, "and")
}

// action is "transforms" between a species and its own forms
func action(current, target *dex.Species, dir dex.Direction) string {
	toOwnForm := target.IsForm && target.DexNumber == current.DexNumber && dir != dex.DirectionFrom
	fromBase := current.IsForm && target.ID == current.DexNumber
	if toOwnForm || fromBase {
		return "transforms"
	}
	return "evolves"
}

// joinList renders "a", "a and b" or "a, b and c"
func joinList(items []string, conjunction string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " " + conjunction + " " + items[len(items)-1]
	}
}

func (r *Resolver) triggerText(trigger dex.Trigger) string {
	switch t := trigger.(type) {
	case dex.LevelTrigger:
		return r.levelText(t)
	case dex.ItemTrigger:
		item, err := r.store.TriggerItem(t)
		if err != nil || item == nil {
			return "somehow"
		}
		return "using a " + item.Name
	case dex.TradeTrigger:
		item, err := r.store.TriggerItem(t)
		if err != nil || item == nil {
			return "when traded"
		}
		return "when traded while holding a " + item.Name
	case dex.OtherTrigger:
		return "somehow"
	default:
		return "somehow"
	}
}

func (r *Resolver) levelText(t dex.LevelTrigger) string {
	var b strings.Builder

	if t.Level == nil {
		b.WriteString("when leveled up")
	} else {
		fmt.Fprintf(&b, "starting from level %d", *t.Level)
	}

	if t.GenderID != nil {
		if gender, ok := dex.GenderByID[*t.GenderID]; ok {
			b.WriteString(" as " + string(gender))
		}
	}
	if item, err := r.store.TriggerItem(t); err == nil && item != nil {
		b.WriteString(" while holding a " + item.Name)
	}
	if move, err := r.store.TriggerMove(t); err == nil && move != nil {
		b.WriteString(" while knowing " + move.Name)
	}
	if t.MoveTypeID != nil {
		if name := dex.TypeName(*t.MoveTypeID); name != "" {
			fmt.Fprintf(&b, " while knowing a %s-type move", name)
		}
	}

	if t.RelativeStats != nil {
		switch *t.RelativeStats {
		case dex.AttackAboveDefense:
			b.WriteString(" when its Attack is higher than its Defense")
		case dex.AttackBelowDefense:
			b.WriteString(" when its Defense is higher than its Attack")
		case dex.AttackEqualDefense:
			b.WriteString(" when its Attack is equal to its Defense")
		}
	}

	if t.Time != "" {
		b.WriteString(" in the " + t.Time + "time")
	}
	if len(t.Natures) > 0 {
		b.WriteString(" with a Nature of " + joinList(t.Natures, "or"))
	}

	return b.String()
}
