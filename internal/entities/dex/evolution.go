package dex

// Direction is the side of an evolution edge relative to its owner
type Direction int

// Directions
const (
	DirectionTo Direction = iota + 1
	DirectionFrom
)

func (d Direction) String() string {
	switch d {
	case DirectionTo:
		return "to"
	case DirectionFrom:
		return "from"
	default:
		return "??"
	}
}

// Evolution is a directed edge from its owning species to TargetID
type Evolution struct {
	TargetID  int
	Direction Direction
	Trigger   Trigger
}

// EvolutionList is the ordered set of edges in one direction
type EvolutionList struct {
	Items []Evolution
}

// Evolutions holds a species' outgoing edges, split by direction. Either
// side may be nil.
type Evolutions struct {
	From *EvolutionList
	To   *EvolutionList
}

// List returns the edges for a direction
func (e Evolutions) List(dir Direction) *EvolutionList {
	switch dir {
	case DirectionTo:
		return e.To
	case DirectionFrom:
		return e.From
	default:
		return nil
	}
}

// Trigger is the condition on an evolution edge. The set of implementations
// is closed: LevelTrigger, ItemTrigger, TradeTrigger and OtherTrigger.
type Trigger interface {
	isTrigger()
}

// RelativeStats compares Attack against Defense for level triggers
type RelativeStats int

// Relative stat conditions
const (
	AttackBelowDefense RelativeStats = -1
	AttackEqualDefense RelativeStats = 0
	AttackAboveDefense RelativeStats = 1
)

// LevelTrigger fires on level-up, with optional extra conditions
type LevelTrigger struct {
	Level         *int
	ItemID        *int
	MoveID        *int
	MoveTypeID    *int
	Time          string
	RelativeStats *RelativeStats
	GenderID      *int
	Natures       []string
}

// ItemTrigger fires when an item is used on the species
type ItemTrigger struct {
	ItemID int
}

// TradeTrigger fires on trade, optionally while holding an item
type TradeTrigger struct {
	ItemID *int
}

// OtherTrigger covers every condition without a structured form
type OtherTrigger struct{}

func (LevelTrigger) isTrigger() {}
func (ItemTrigger) isTrigger()  {}
func (TradeTrigger) isTrigger() {}
func (OtherTrigger) isTrigger() {}
