// Package dex holds the static records of the creature data graph: species,
// moves, items and evolution edges. Records reference each other by id only;
// resolution lives in the store package.
package dex

import "strconv"

// EntityTypeSpecies is returned by Species.GetType
const EntityTypeSpecies = "species"

// Locale identifies the language of a localized name
type Locale string

// Locales carried by species rows
const (
	LocaleJapanese      Locale = "ja"
	LocaleJapaneseRoman Locale = "ja-Latn"
	LocaleJapaneseTrade Locale = "ja-Hrkt"
	LocaleEnglish       Locale = "en"
	LocaleGerman        Locale = "de"
	LocaleFrench        Locale = "fr"
)

// LocalizedName is one display name of a species
type LocalizedName struct {
	Locale Locale
	Name   string
}

// Stats is a base stat block
type Stats struct {
	HP   int
	Atk  int
	Def  int
	SAtk int
	SDef int
	Spd  int
}

// Total is the base stat total
func (s Stats) Total() int {
	return s.HP + s.Atk + s.Def + s.SAtk + s.SDef + s.Spd
}

// MoveMethod is how a species learns a move. Only level-up is loaded.
type MoveMethod struct {
	Level int
}

// Text renders the method for listings
func (m MoveMethod) Text() string {
	return "Level " + strconv.Itoa(m.Level)
}

// SpeciesMove is one entry of a species' learnset
type SpeciesMove struct {
	MoveID int
	Method MoveMethod
}

// Species is a creature kind, including forms, megas and event variants.
// A species whose ID differs from its DexNumber is a variant of the species
// with ID == DexNumber.
type Species struct {
	ID                   int
	DexNumber            int
	Slug                 string
	Names                []LocalizedName
	BaseStats            Stats
	Types                []string
	Height               float64
	Weight               float64
	Catchable            bool
	Abundance            int
	GenderRate           int
	HasGenderDifferences bool
	Description          string
	Region               string

	Mythical   bool
	Legendary  bool
	UltraBeast bool
	Event      bool
	IsForm     bool

	MegaID     *int
	MegaXID    *int
	MegaYID    *int
	FormItemID *int

	Moves      []SpeciesMove
	Evolutions Evolutions
}

// GetID implements core.Entity
func (s *Species) GetID() string {
	return strconv.Itoa(s.ID)
}

// GetType implements core.Entity
func (s *Species) GetType() string {
	return EntityTypeSpecies
}

// Name is the canonical English display name
func (s *Species) Name() string {
	return s.LocalizedName(LocaleEnglish)
}

// LocalizedName returns the first name in the given locale, or ""
func (s *Species) LocalizedName(locale Locale) string {
	for _, n := range s.Names {
		if n.Locale == locale {
			return n.Name
		}
	}
	return ""
}

func (s *Species) String() string {
	return s.Name()
}

// IsBaseForm reports whether the species is the root of its dex number
func (s *Species) IsBaseForm() bool {
	return s.ID == s.DexNumber
}

// HasType reports whether the species carries the named type
func (s *Species) HasType(name string) bool {
	id := TypeID(name)
	if id == 0 {
		return false
	}
	for _, t := range s.Types {
		if TypeID(t) == id {
			return true
		}
	}
	return false
}

// Gender is the sex a creature is assigned when a species only has one
type Gender string

// Genders
const (
	GenderUnknown Gender = "Unknown"
	GenderFemale  Gender = "Female"
	GenderMale    Gender = "Male"
)

// GenderByID maps evolution-row gender ids to genders
var GenderByID = map[int]Gender{
	0: GenderUnknown,
	1: GenderFemale,
	2: GenderMale,
}

// genderRates maps gender_rate (eighths female) to [male%, female%]
var genderRates = map[int][2]float64{
	0: {100, 0},
	1: {87.5, 12.5},
	2: {75, 25},
	4: {50, 50},
	6: {25, 75},
	7: {12.5, 87.5},
	8: {0, 100},
}

// GenderRatios returns the male and female percentages. ok is false for
// genderless species and for rates outside the table.
func (s *Species) GenderRatios() (ratios [2]float64, ok bool) {
	ratios, ok = genderRates[s.GenderRate]
	return ratios, ok
}

// DefaultGender is the only gender a species can have, if it has exactly one
// possibility. Genderless species default to GenderUnknown.
func (s *Species) DefaultGender() (Gender, bool) {
	if s.GenderRate == -1 {
		return GenderUnknown, true
	}

	ratios, ok := s.GenderRatios()
	if !ok {
		return "", false
	}
	switch {
	case ratios[0] == 100:
		return GenderMale, true
	case ratios[1] == 100:
		return GenderFemale, true
	default:
		return "", false
	}
}
