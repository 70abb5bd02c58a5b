package battle

import (
	"sort"

	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// sideScopedEvents and fieldScopedEvents name the events whose untagged
// (ModNone) side/field-condition callbacks still participate per gathering
// rules 5 and 6; for every other event, a side/field condition's callback
// must be explicitly tagged ModSide/ModField to be gathered.
var sideScopedEvents = map[Event]bool{
	EventSideStart: true,
	EventSideEnd:   true,
}

var fieldScopedEvents = map[Event]bool{
	EventFieldResidual: true,
	EventResidual:      true,
}

// relation describes how a candidate creature X relates to the event's
// primary target M, which modifiers from X may be gathered.
type relation int

const (
	relSelf relation = iota
	relAlly
	relFoe
)

func relationOf(target, candidate *Creature, targetSide, candidateSide int) relation {
	if target == candidate {
		return relSelf
	}
	if targetSide == candidateSide {
		return relAlly
	}
	return relFoe
}

// gather implements the seven gathering rules for an event targeting
// creature M (ctx.Target) with an optional source (ctx.Source).
func (b *Battle) gather(ctx *Context) []gatheredCallback {
	var out []gatheredCallback
	event := ctx.Event

	target := ctx.Target
	var targetSideID, targetPlayerIdx, targetSlot int
	hasTarget := target != nil
	if hasTarget {
		targetSideID = target.ID.Side
		targetPlayerIdx = target.ID.Player
		targetSlot = target.ID.Slot
		_ = targetPlayerIdx
		_ = targetSlot
	}

	addInstance := func(ei *EffectInstance, ownerID CreatureID, hasOwner bool, allowed func(EventModifier) bool) {
		if ei == nil {
			return
		}
		for _, mod := range []EventModifier{ModNone, ModAlly, ModAny, ModFoe, ModSource, ModSide, ModField} {
			if !allowed(mod) {
				continue
			}
			key := CallbackKey{Event: event, Modifier: mod}
			if cb, ok := ei.Callbacks[key]; ok {
				var speed int
				if hasOwner {
					if c := b.creatureAt(ownerID); c != nil {
						speed = c.EffectiveSpeed()
					}
				}
				out = append(out, gatheredCallback{
					key: key, cb: cb, owner: ei, ownerRef: ownerID, hasOwner: hasOwner,
				})
				_ = speed
			}
		}
	}

	// Rules 1-4: creature-attached effects (ability/item/status/volatiles,
	// and persistent move callbacks), scoped by relation to the target.
	// Only active creatures participate: a benched creature's ability,
	// item, or status does not fire on battle events.
	for _, side := range b.Sides {
		for pIdx, player := range side.Players {
			for slotIdx, activeSlot := range player.ActiveSlots {
				c := activeSlot.Occupant
				if c == nil {
					continue
				}
				candID := CreatureID{Side: side.ID, Player: pIdx, Slot: slotIdx}
				var rel relation
				isSource := ctx.Source == c
				if hasTarget {
					rel = relationOf(target, c, targetSideID, side.ID)
				} else {
					rel = relAlly
				}

				allowed := func(mod EventModifier) bool {
					switch rel {
					case relSelf:
						if mod == ModNone {
							return true
						}
						if mod == ModSource && isSource {
							return true
						}
						return false
					case relAlly:
						return mod == ModAlly || mod == ModAny
					case relFoe:
						if mod == ModFoe || mod == ModAny {
							return true
						}
						if mod == ModSource && isSource {
							return true
						}
						return false
					}
					return false
				}

				if !c.AbilitySuppressed {
					addInstance(c.AbilityEffect, candID, true, allowed)
				}
				addInstance(c.ItemEffect, candID, true, allowed)
				addInstance(c.StatusEffect, candID, true, allowed)
				for _, volID := range c.VolatileOrder {
					addInstance(c.Volatiles[volID], candID, true, allowed)
				}
				// Rule 2: the move actually being executed contributes its own
				// persistent callbacks, self-scope only (e.g. a move's own
				// Hit/AfterMove hook) — gated on ctx.Move so merely knowing a
				// move with a Hit callback doesn't fire it on unrelated hits.
				if rel == relSelf && ctx.Move != nil {
					ms := ctx.Move
					if ms.Data != nil && len(ms.Data.Callbacks) > 0 {
						key := CallbackKey{Event: event, Modifier: ModNone}
						if cb, ok := ms.Data.Callbacks[key]; ok {
							out = append(out, gatheredCallback{key: key, cb: cb, ownerRef: candID, hasOwner: true})
						}
					}
				}
			}
		}
	}

	// Rule 5: side conditions of the target's side.
	sideScoped := sideScopedEvents[event]
	if hasTarget {
		for _, ei := range b.Sides[targetSideID].Conditions {
			allowed := func(mod EventModifier) bool {
				if mod == ModSide {
					return true
				}
				return sideScoped && mod == ModNone
			}
			addInstance(ei, CreatureID{}, false, allowed)
		}
	}

	// Rule 6: field conditions, weather, terrain, pseudo-weather.
	fieldScoped := fieldScopedEvents[event]
	fieldAllowed := func(mod EventModifier) bool {
		if mod == ModField {
			return true
		}
		return fieldScoped && mod == ModNone
	}
	if b.Field.Weather != nil {
		addInstance(b.Field.Weather.Effect, CreatureID{}, false, fieldAllowed)
	}
	if b.Field.Terrain != nil {
		addInstance(b.Field.Terrain.Effect, CreatureID{}, false, fieldAllowed)
	}
	for _, ei := range b.Field.PseudoWeather {
		addInstance(ei, CreatureID{}, false, fieldAllowed)
	}

	// Rule 7: format clauses, always included with declared ordering.
	for _, ei := range b.Field.Clauses {
		addInstance(ei, CreatureID{}, false, func(EventModifier) bool { return true })
	}

	return out
}

// ownerSpeed resolves the effective speed used for sorting a gathered
// callback: the owning creature's speed if attached to one, else 0 (side
// conditions, field conditions use side-scoped speed 0 per spec §4.4).
func (b *Battle) ownerSpeed(gc gatheredCallback) int {
	if !gc.hasOwner {
		return 0
	}
	c := b.creatureAt(gc.ownerRef)
	if c == nil {
		return 0
	}
	// Deliberately the creature's own EffectiveSpeed, not Battle.EffectiveSpeed:
	// this orders gathered callbacks during a dispatch, including a dispatch of
	// EventModifySpe itself, so layering item/ability speed modifiers in here
	// would recurse into gather/sort indefinitely.
	return c.EffectiveSpeed()
}

// sortCallbacks orders gathered callbacks by order asc, priority desc,
// speed desc (tie-broken per Options.TieBreak), sub_order asc. Stable
// sorts are applied least-significant key first so the final pass (order)
// dominates.
func (b *Battle) sortCallbacks(list []gatheredCallback) ([]gatheredCallback, error) {
	work := append([]gatheredCallback(nil), list...)

	sort.SliceStable(work, func(i, j int) bool {
		return work[i].cb.SubOrder < work[j].cb.SubOrder
	})

	speeds := make([]int, len(work))
	for i, gc := range work {
		speeds[i] = b.ownerSpeed(gc)
	}
	sort.SliceStable(work, func(i, j int) bool { return speeds[i] > speeds[j] })
	// Recompute speeds in the new order for tie-run detection.
	for i, gc := range work {
		speeds[i] = b.ownerSpeed(gc)
	}
	if err := b.resolveSpeedTies(work, speeds); err != nil {
		return nil, err
	}

	sort.SliceStable(work, func(i, j int) bool { return work[i].cb.Priority > work[j].cb.Priority })
	sort.SliceStable(work, func(i, j int) bool { return work[i].cb.Order < work[j].cb.Order })

	return work, nil
}

// resolveSpeedTies shuffles (TieRandom), leaves (TieKeepOrder), or rejects
// (TieFail) contiguous runs of equal speed in place.
func (b *Battle) resolveSpeedTies(work []gatheredCallback, speeds []int) error {
	i := 0
	for i < len(work) {
		j := i + 1
		for j < len(work) && speeds[j] == speeds[i] {
			j++
		}
		if j-i > 1 {
			switch b.Options.TieBreak {
			case TieFail:
				return b.fail(rpgerr.EngineInvariant("unresolved speed tie with TieFail policy"))
			case TieRandom:
				run := work[i:j]
				b.RNG.Shuffle(len(run), func(a, c int) { run[a], run[c] = run[c], run[a] })
			case TieKeepOrder:
				// no-op: stable sort already preserved insertion order
			}
		}
		i = j
	}
	return nil
}

// RunEvent gathers and runs every callback relevant to event in ctx,
// ignoring return values except for Prevent/Stop control flow. Returns
// whether the operation was prevented and, if so, the reason.
func (b *Battle) RunEvent(ctx *Context) (prevented bool, reason string, err error) {
	ctx.Battle = b
	gathered := b.gather(ctx)
	sorted, serr := b.sortCallbacks(gathered)
	if serr != nil {
		return false, "", serr
	}
	for _, gc := range sorted {
		_, outcome := gc.cb.Fn(ctx)
		switch outcome {
		case OutcomePrevent:
			return true, ctx.FailReason, nil
		case OutcomeStop:
			return false, "", nil
		}
	}
	return false, "", nil
}

// RunModifier threads initial through every gathered callback's Fn,
// returning the final accumulated value.
func (b *Battle) RunModifier(ctx *Context, initial any) (any, error) {
	ctx.Battle = b
	ctx.Value = initial
	gathered := b.gather(ctx)
	sorted, err := b.sortCallbacks(gathered)
	if err != nil {
		return initial, err
	}
	value := initial
	for _, gc := range sorted {
		ctx.Value = value
		v, outcome := gc.cb.Fn(ctx)
		if outcome == OutcomeStop {
			return v, nil
		}
		value = v
	}
	return value, nil
}

// RunBooleanEvent runs gathered callbacks until one returns a definitive
// bool via OutcomeStop; returns false if none do.
func (b *Battle) RunBooleanEvent(ctx *Context) (bool, error) {
	ctx.Battle = b
	gathered := b.gather(ctx)
	sorted, err := b.sortCallbacks(gathered)
	if err != nil {
		return false, err
	}
	for _, gc := range sorted {
		v, outcome := gc.cb.Fn(ctx)
		if outcome == OutcomeStop {
			if bv, ok := v.(bool); ok {
				return bv, nil
			}
			return true, nil
		}
	}
	return false, nil
}
