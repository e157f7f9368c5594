package v1alpha1

import (
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/dex-api/internal/engine"
	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/dex-api/internal/repositories/speciesview"
)

// fields reads typed values out of a request struct. The first bad field
// is kept in err so callers can read everything and check once.
type fields struct {
	prefix string
	values map[string]*structpb.Value
	err    error
}

func newFields(s *structpb.Struct, prefix string) *fields {
	f := &fields{prefix: prefix}
	if s != nil {
		f.values = s.GetFields()
	}
	return f
}

func (f *fields) name(key string) string {
	if f.prefix == "" {
		return key
	}
	return f.prefix + "." + key
}

func (f *fields) fail(key, want string) {
	if f.err == nil {
		f.err = errors.InvalidArgumentf("%s must be %s", f.name(key), want).WithMeta("field", f.name(key))
	}
}

func (f *fields) getInt(key string) int {
	v, ok := f.values[key]
	if !ok {
		return 0
	}
	n, isNum := v.GetKind().(*structpb.Value_NumberValue)
	if !isNum || !isInt(n.NumberValue) {
		f.fail(key, "an integer")
		return 0
	}
	return int(n.NumberValue)
}

// isInt reports whether x is whole and fits in an int. float64(math.MaxInt)
// rounds up to 2^63, hence the strict upper bound.
func isInt(x float64) bool {
	return x == math.Trunc(x) && x >= math.MinInt && x < math.MaxInt
}

func (f *fields) getString(key string) string {
	v, ok := f.values[key]
	if !ok {
		return ""
	}
	s, isStr := v.GetKind().(*structpb.Value_StringValue)
	if !isStr {
		f.fail(key, "a string")
		return ""
	}
	return s.StringValue
}

func (f *fields) getBool(key string) bool {
	v, ok := f.values[key]
	if !ok {
		return false
	}
	b, isBool := v.GetKind().(*structpb.Value_BoolValue)
	if !isBool {
		f.fail(key, "a bool")
		return false
	}
	return b.BoolValue
}

func (f *fields) getStrings(key string) []string {
	v, ok := f.values[key]
	if !ok {
		return nil
	}
	list, isList := v.GetKind().(*structpb.Value_ListValue)
	if !isList {
		f.fail(key, "a list of strings")
		return nil
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, isStr := item.GetKind().(*structpb.Value_StringValue)
		if !isStr {
			f.fail(key, "a list of strings")
			return nil
		}
		out = append(out, s.StringValue)
	}
	return out
}

func (f *fields) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *fields) nested(key string) *fields {
	child := &fields{prefix: f.name(key)}
	v, ok := f.values[key]
	if !ok {
		return child
	}
	s, isStruct := v.GetKind().(*structpb.Value_StructValue)
	if !isStruct {
		f.fail(key, "an object")
		return child
	}
	child.values = s.StructValue.GetFields()
	return child
}

// done folds a nested reader's error into its parent
func (f *fields) done(child *fields) {
	if f.err == nil {
		f.err = child.err
	}
}

func (f *fields) stats() dex.Stats {
	return dex.Stats{
		HP:   f.getInt("hp"),
		Atk:  f.getInt("atk"),
		Def:  f.getInt("def"),
		SAtk: f.getInt("satk"),
		SDef: f.getInt("sdef"),
		Spd:  f.getInt("spd"),
	}
}

func (f *fields) stages() engine.Stages {
	return engine.Stages{
		HP:       f.getInt("hp"),
		Atk:      f.getInt("atk"),
		Def:      f.getInt("def"),
		SAtk:     f.getInt("satk"),
		SDef:     f.getInt("sdef"),
		Spd:      f.getInt("spd"),
		Evasion:  f.getInt("evasion"),
		Accuracy: f.getInt("accuracy"),
	}
}

func (f *fields) combatant(key string) battle.CombatantInput {
	c := f.nested(key)
	in := battle.CombatantInput{
		SpeciesID: c.getInt("species_id"),
		Level:     c.getInt("level"),
		MaxHP:     c.getInt("max_hp"),
		Types:     c.getStrings("types"),
		Ailments:  c.getStrings("ailments"),
	}
	if c.has("stats") {
		sf := c.nested("stats")
		stats := sf.stats()
		c.done(sf)
		in.Stats = &stats
	}
	stf := c.nested("stages")
	in.Stages = stf.stages()
	c.done(stf)

	f.done(c)
	return in
}

func intList(ids []int) []interface{} {
	out := make([]interface{}, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func stringList(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func viewToMap(v *speciesview.View) map[string]interface{} {
	return map[string]interface{}{
		"id":         v.ID,
		"dex_number": v.DexNumber,
		"name":       v.Name,
		"slug":       v.Slug,
		"types":      stringList(v.Types),
		"region":     v.Region,
		"base_stats": map[string]interface{}{
			"hp":   v.BaseStats.HP,
			"atk":  v.BaseStats.Atk,
			"def":  v.BaseStats.Def,
			"satk": v.BaseStats.SAtk,
			"sdef": v.BaseStats.SDef,
			"spd":  v.BaseStats.Spd,
		},
		"height":          v.Height,
		"weight":          v.Weight,
		"rarity":          v.Rarity,
		"default_gender":  v.DefaultGender,
		"image_url":       v.ImageURL,
		"shiny_image_url": v.ShinyImageURL,
		"evolution_text":  v.EvolutionText,
		"evolution_line":  intList(v.EvolutionLine),
		"moveset":         intList(v.Moveset),
		"mega_ids":        intList(v.MegaIDs),
		"rendered_at":     v.RenderedAt.Format(time.RFC3339),
	}
}

func resultToMap(r *engine.MoveResult) map[string]interface{} {
	changes := make([]interface{}, 0, len(r.StatChanges))
	for _, c := range r.StatChanges {
		changes = append(changes, map[string]interface{}{
			"stat":   c.Stat(),
			"change": c.Change,
		})
	}

	return map[string]interface{}{
		"success":      r.Success,
		"hits":         r.Hits,
		"damage":       r.Damage,
		"raw_damage":   r.RawDamage,
		"healing":      r.Healing,
		"raw_healing":  r.RawHealing,
		"ailment":      r.Ailment,
		"messages":     stringList(r.Messages),
		"stat_changes": changes,
	}
}
