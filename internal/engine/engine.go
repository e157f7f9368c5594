package engine

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.opentelemetry.io/otel/attribute"

	"github.com/KirkDiggler/dex-api/internal/entities/dex"
	"github.com/KirkDiggler/dex-api/internal/errors"
	"github.com/KirkDiggler/dex-api/internal/telemetry"
)

// Moves that still work while the user is asleep
var sleepExempt = []int{173, 214}

// Moves that still work while the user is frozen
var freezeExempt = []int{588, 172, 221, 293, 503, 592}

const (
	stabMultiplier = 1.5
	burnDivisor    = 2
	defaultHits    = 1
	percent        = 100
)

// Config holds the dependencies for the engine
type Config struct {
	// Roller is the random source. Defaults to dice.DefaultRoller.
	Roller dice.Roller
}

// Validate fills defaults. There is nothing to reject.
func (c *Config) Validate() error {
	if c.Roller == nil {
		c.Roller = dice.DefaultRoller
	}
	return nil
}

type engine struct {
	roller dice.Roller
}

// New creates an engine
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &engine{roller: cfg.Roller}, nil
}

// ResolveMove computes one use of input.Move by the attacker on the
// defender. A miss or a blocked move is a result with Success false.
func (e *engine) ResolveMove(ctx context.Context, input *ResolveMoveInput) (*MoveResult, error) {
	_, span := telemetry.Tracer("engine").Start(ctx, "engine.resolve_move")
	defer span.End()

	if err := validateInput(input); err != nil {
		span.RecordError(err)
		return nil, err
	}

	move := input.Move
	attacker := input.Attacker
	defender := input.Defender
	span.SetAttributes(
		attribute.Int("move.id", move.ID),
		attribute.Int("attacker.level", attacker.Level),
	)

	result := &MoveResult{Success: true}
	var damage float64

	if !move.IsStatus() {
		hit, err := e.rollHit(move, attacker, defender)
		if err != nil {
			return nil, err
		}
		result.Success = hit

		hits, err := e.rollHits(move)
		if err != nil {
			return nil, err
		}
		result.Hits = hits

		damage, err = baseDamage(move, attacker, defender)
		if err != nil {
			return nil, err
		}
	}

	healing := damage*float64(move.Meta.Drain)/percent +
		float64(attacker.MaxHP)*float64(move.Meta.Healing)/percent

	gated, err := e.applyAilments(move, attacker, damage)
	if err != nil {
		return nil, err
	}
	damage = gated.damage
	if gated.blocked {
		result.Success = false
	}

	result.Ailment, err = e.rollAilment(move)
	if err != nil {
		return nil, err
	}

	typeMultiplier := TypeEffectiveness(move.TypeID, defender.Types)
	damage *= typeMultiplier
	result.Messages = effectivenessMessages(typeMultiplier, result.Hits)

	result.StatChanges, err = e.rollStatChanges(move)
	if err != nil {
		return nil, err
	}

	if attacker.HasType(move.Type()) {
		damage *= stabMultiplier
	}

	result.RawDamage = damage
	result.Damage = int(damage)
	result.RawHealing = healing
	result.Healing = int(healing)

	span.SetAttributes(
		attribute.Bool("result.success", result.Success),
		attribute.Int("result.damage", result.Damage),
		attribute.Int("result.hits", result.Hits),
	)

	return result, nil
}

func validateInput(input *ResolveMoveInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Move == nil {
		vb.RequiredField("move")
	}
	if input.Attacker == nil {
		vb.RequiredField("attacker")
	}
	if input.Defender == nil {
		vb.RequiredField("defender")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if err := input.Attacker.Stages.validate("attacker"); err != nil {
		return err
	}
	if err := input.Defender.Stages.validate("defender"); err != nil {
		return err
	}

	if !input.Move.IsStatus() {
		def := input.Defender.Stats.Def
		if input.Move.DamageClass != dex.DamageClassPhysical {
			def = input.Defender.Stats.SDef
		}
		if def <= 0 {
			return errors.InvalidArgumentf("defender defense must be positive, got %d", def)
		}
	}

	return nil
}

// percentRoll draws uniformly from [0, 100)
func (e *engine) percentRoll() (int, error) {
	v, err := e.roller.Roll(percent)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll")
	}
	return v - 1, nil
}

func (e *engine) rollHit(move *dex.Move, attacker, defender *Combatant) (bool, error) {
	accuracy := percent
	if move.Accuracy != nil {
		accuracy = *move.Accuracy
	}

	// Stages were validated up front
	accMult, _ := StageMultiplier(attacker.Stages.Accuracy)
	evaMult, _ := StageMultiplier(defender.Stages.Evasion)

	draw, err := e.percentRoll()
	if err != nil {
		return false, err
	}
	return float64(draw) < float64(accuracy)*accMult/evaMult, nil
}

func (e *engine) rollHits(move *dex.Move) (int, error) {
	lo, hi := defaultHits, defaultHits
	if move.Meta.MinHits != nil {
		lo = *move.Meta.MinHits
	}
	if move.Meta.MaxHits != nil {
		hi = *move.Meta.MaxHits
	}
	if hi <= lo {
		return lo, nil
	}

	v, err := e.roller.Roll(hi - lo + 1)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll hit count")
	}
	return lo + v - 1, nil
}

func baseDamage(move *dex.Move, attacker, defender *Combatant) (float64, error) {
	atk, atkStage := attacker.Stats.SAtk, attacker.Stages.SAtk
	def, defStage := defender.Stats.SDef, defender.Stages.SDef
	if move.DamageClass == dex.DamageClassPhysical {
		atk, atkStage = attacker.Stats.Atk, attacker.Stages.Atk
		def, defStage = defender.Stats.Def, defender.Stages.Def
	}

	atkMult, err := StageMultiplier(atkStage)
	if err != nil {
		return 0, err
	}
	defMult, err := StageMultiplier(defStage)
	if err != nil {
		return 0, err
	}

	a := float64(atk) * atkMult
	d := float64(def) * defMult
	level := float64(attacker.Level)

	return math.Floor((2*level/5+2)*float64(*move.Power)*a/d/50 + 2), nil
}

type gating struct {
	blocked bool
	damage  float64
}

// applyAilments checks the attacker's ailments in a fixed order:
// paralysis, sleep, freeze, burn.
func (e *engine) applyAilments(move *dex.Move, attacker *Combatant, damage float64) (gating, error) {
	out := gating{damage: damage}

	if slices.Contains(attacker.Ailments, dex.AilmentParalysis) {
		v, err := e.roller.Roll(4)
		if err != nil {
			return out, errors.Wrap(err, "failed to roll paralysis")
		}
		if v == 1 {
			out.blocked = true
		}
	}
	if slices.Contains(attacker.Ailments, dex.AilmentSleep) && !slices.Contains(sleepExempt, move.ID) {
		out.blocked = true
	}
	if slices.Contains(attacker.Ailments, dex.AilmentFreeze) && !slices.Contains(freezeExempt, move.ID) {
		out.blocked = true
	}
	if slices.Contains(attacker.Ailments, dex.AilmentBurn) && move.DamageClass == dex.DamageClassPhysical {
		out.damage /= burnDivisor
	}

	return out, nil
}

// inflictable maps the meta ailment to a name, or "" when the move has none
func inflictable(move *dex.Move) string {
	switch name := move.Meta.Ailment(); name {
	case "none", "????":
		return ""
	default:
		return name
	}
}

func (e *engine) rollAilment(move *dex.Move) (string, error) {
	name := inflictable(move)
	if name == "" || move.Meta.AilmentChance <= 0 {
		return "", nil
	}

	draw, err := e.percentRoll()
	if err != nil {
		return "", err
	}
	if draw < move.Meta.AilmentChance {
		return name, nil
	}
	return "", nil
}

func (e *engine) rollStatChanges(move *dex.Move) ([]dex.StatChange, error) {
	if move.Meta.StatChance <= 0 {
		return nil, nil
	}

	var changes []dex.StatChange
	for _, change := range move.Meta.StatChanges {
		draw, err := e.percentRoll()
		if err != nil {
			return nil, err
		}
		if draw < move.Meta.StatChance {
			changes = append(changes, change)
		}
	}
	return changes, nil
}

func effectivenessMessages(multiplier float64, hits int) []string {
	var messages []string
	switch {
	case multiplier == 0:
		messages = append(messages, MessageImmune)
	case multiplier > 1:
		messages = append(messages, MessageSuperEffective)
	case multiplier < 1:
		messages = append(messages, MessageNotVeryEffective)
	}

	if hits > 1 {
		messages = append(messages, fmt.Sprintf("It hit %d times!", hits))
	}
	return messages
}
