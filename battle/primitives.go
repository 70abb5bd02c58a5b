package battle

import (
	"strconv"

	"github.com/jackson-nestelroad/battlecore/core"
	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// These are the only legal mutators of Battle state; every higher-level
// operation (move executor, scheduler, residuals) goes through them so that
// log emission and event firing stay centralized in one place, per §4.2.

// SetHP clamps target's HP into [0, max], emits `damage` or `heal` when HP
// changed, fires EventDamage (or EventTryHeal when HP did not drop), and
// detects faint. delta is signed: negative damages, positive heals.
func (b *Battle) SetHP(target *Creature, delta int, cause string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	before := target.HP
	after := before + delta
	if after < 0 {
		after = 0
	}
	if after > target.MaxHP {
		after = target.MaxHP
	}
	target.HP = after

	tag := "heal"
	if after < before {
		tag = "damage"
	}
	if after != before {
		b.log(tag,
			F("mon", monRef(target.ID)),
			F("health", strconv.Itoa(after)+"/"+strconv.Itoa(target.MaxHP)),
			F("from", cause),
		)
	}

	ev := EventDamage
	if tag == "heal" {
		ev = EventTryHeal
	}
	if _, _, err := b.RunEvent(&Context{Event: ev, Target: target}); err != nil {
		return err
	}

	if after == 0 && before > 0 {
		return b.faint(target)
	}
	return nil
}

func (b *Battle) faint(target *Creature) error {
	b.log("faint", F("mon", monRef(target.ID)))
	if target.Dynamaxed {
		b.revertDynamax(target)
	}
	if _, _, err := b.RunEvent(&Context{Event: EventFaint, Target: target}); err != nil {
		return err
	}
	if target.IsActive {
		target.IsActive = false
	}
	return nil
}

// SetStatus applies a primary status to target, respecting the "at most
// one primary status" invariant (setting replaces any existing status).
// status == StatusNone cures, logging `curestatus` with cause as its source.
func (b *Battle) SetStatus(target *Creature, status PrimaryStatus, source *Creature, cause string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	srcPtr := source
	ctx := &Context{Event: EventSetStatus, Target: target, Source: srcPtr}
	prevented, _, err := b.RunEvent(ctx)
	if err != nil {
		return err
	}
	if prevented {
		return nil
	}

	if status == StatusNone {
		if target.Status != StatusNone {
			b.log("curestatus", F("mon", monRef(target.ID)), F("from", cause))
		}
		target.Status = StatusNone
		target.StatusCounter = 0
		target.StatusEffect = nil
		if _, _, err := b.RunEvent(&Context{Event: EventCureStatus, Target: target}); err != nil {
			return err
		}
		return nil
	}

	target.Status = status
	target.StatusCounter = 0
	if def, derr := b.Data.Status(statusName(status)); derr == nil && def != nil {
		ei := NewEffectInstance(EffectStatus, nil, def.Callbacks)
		if source != nil {
			ei.SetSource(source.ID)
		}
		target.StatusEffect = ei
	} else {
		target.StatusEffect = nil
	}
	b.log("status", F("mon", monRef(target.ID)), F("status", statusName(status)), F("from", cause))
	if _, _, err := b.RunEvent(&Context{Event: EventAfterSetStatus, Target: target}); err != nil {
		return err
	}
	return nil
}

func statusName(s PrimaryStatus) string {
	switch s {
	case StatusBurn:
		return "brn"
	case StatusFreeze:
		return "frz"
	case StatusParalysis:
		return "par"
	case StatusPoison:
		return "psn"
	case StatusBadPoison:
		return "tox"
	case StatusSleep:
		return "slp"
	default:
		return "none"
	}
}

// AddVolatile attaches a new volatile condition instance to target, keyed
// by effect id; a creature has at most one instance per id.
func (b *Battle) AddVolatile(target *Creature, id *core.Ref, def *StatusCondition, source *Creature) (*EffectInstance, error) {
	if err := b.checkNotFailed(); err != nil {
		return nil, err
	}
	if target.Volatiles == nil {
		target.Volatiles = make(map[string]*EffectInstance)
	}
	if _, exists := target.Volatiles[def.ID]; exists {
		return nil, nil
	}
	ei := NewEffectInstance(EffectVolatile, id, def.Callbacks)
	ei.State["duration"] = def.Duration
	if source != nil {
		ei.SetSource(source.ID)
	}
	target.Volatiles[def.ID] = ei
	target.VolatileOrder = append(target.VolatileOrder, def.ID)

	prevented, _, err := b.RunEvent(&Context{Event: EventAddVolatile, Target: target, Source: source})
	if err != nil {
		return nil, err
	}
	if prevented {
		delete(target.Volatiles, def.ID)
		target.VolatileOrder = removeString(target.VolatileOrder, def.ID)
		return nil, nil
	}
	b.log("start", F("mon", monRef(target.ID)), F("move", def.Name))
	return ei, nil
}

// RemoveVolatile detaches a volatile condition by id.
func (b *Battle) RemoveVolatile(target *Creature, id string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if _, ok := target.Volatiles[id]; !ok {
		return nil
	}
	delete(target.Volatiles, id)
	target.VolatileOrder = removeString(target.VolatileOrder, id)
	b.log("end", F("mon", monRef(target.ID)), F("move", id))
	_, _, err := b.RunEvent(&Context{Event: EventRemoveVolatile, Target: target})
	return err
}

func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

// AddSideCondition attaches a condition to a side (screens, hazards,
// tailwind-class effects).
func (b *Battle) AddSideCondition(side *Side, id *core.Ref, def *StatusCondition, source *Creature) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if _, exists := side.Conditions[def.ID]; exists {
		return nil
	}
	ei := NewEffectInstance(EffectSideCondition, id, def.Callbacks)
	ei.State["duration"] = def.Duration
	if source != nil {
		ei.SetSource(source.ID)
	}
	side.Conditions[def.ID] = ei
	b.log("sidestart", F("side", strconv.Itoa(side.ID)), F("move", def.Name))
	_, _, err := b.RunEvent(&Context{Event: EventSideStart, Side: side})
	return err
}

// RemoveSideCondition detaches a side condition by id.
func (b *Battle) RemoveSideCondition(side *Side, id string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if _, ok := side.Conditions[id]; !ok {
		return nil
	}
	delete(side.Conditions, id)
	b.log("sideend", F("side", strconv.Itoa(side.ID)), F("move", id))
	_, _, err := b.RunEvent(&Context{Event: EventSideEnd, Side: side})
	return err
}

// SetWeather replaces the field's current weather.
func (b *Battle) SetWeather(id string, def *StatusCondition, source *Creature, turns int) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	ei := NewEffectInstance(EffectWeather, core.MustNewRef(core.RefInput{Module: "battle", Type: "weather", Value: id}), def.Callbacks)
	if source != nil {
		ei.SetSource(source.ID)
	}
	b.Field.Weather = &Weather{ID: id, Effect: ei, TurnsRemaining: turns}
	b.log("weather", F("weather", def.Name))
	return nil
}

// SetTerrain replaces the field's current terrain.
func (b *Battle) SetTerrain(id string, def *StatusCondition, source *Creature, turns int) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	ei := NewEffectInstance(EffectTerrain, core.MustNewRef(core.RefInput{Module: "battle", Type: "terrain", Value: id}), def.Callbacks)
	if source != nil {
		ei.SetSource(source.ID)
	}
	b.Field.Terrain = &Terrain{ID: id, Effect: ei, TurnsRemaining: turns}
	b.log("fieldstart", F("terrain", def.Name))
	return nil
}

// AddPseudoWeather attaches a field-scoped room/gravity-class effect keyed
// by id; an instance already present under that id is replaced and
// `fieldstart` is logged again (callers decide toggle semantics themselves,
// e.g. Trick Room turning itself back off on reuse).
func (b *Battle) AddPseudoWeather(id string, def *StatusCondition, source *Creature, turns int) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	ei := NewEffectInstance(EffectPseudoWeather, core.MustNewRef(core.RefInput{Module: "battle", Type: "pseudoweather", Value: id}), def.Callbacks)
	ei.State["duration"] = turns
	if source != nil {
		ei.SetSource(source.ID)
	}
	b.Field.PseudoWeather[id] = ei
	b.log("fieldstart", F("move", def.Name))
	return nil
}

// RemovePseudoWeather detaches a field-scoped room/gravity-class effect.
func (b *Battle) RemovePseudoWeather(id, name string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if _, ok := b.Field.PseudoWeather[id]; !ok {
		return nil
	}
	delete(b.Field.PseudoWeather, id)
	b.log("fieldend", F("move", name))
	return nil
}

// HasPseudoWeather reports whether a field-scoped effect is currently active.
func (b *Battle) HasPseudoWeather(id string) bool {
	_, ok := b.Field.PseudoWeather[id]
	return ok
}

// BoostStat adjusts target's stage for stat by delta, clamped to [-6, +6]
// per the stat-stage-bounds property. Logs `boost`/`unboost`, or a
// capped-at-N log when the attempt is fully absorbed by the clamp.
func (b *Battle) BoostStat(target *Creature, stat Stat, delta int, cause string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	adjusted := delta

	before := target.Boosts.Get(stat)
	after := before + adjusted
	if after > 6 {
		after = 6
	}
	if after < -6 {
		after = -6
	}
	target.Boosts.Set(stat, after)

	if after == before {
		b.log("boost-fail", F("mon", monRef(target.ID)), F("stat", statName(stat)))
		return nil
	}
	tag := "boost"
	if after < before {
		tag = "unboost"
	}
	b.log(tag, F("mon", monRef(target.ID)), F("stat", statName(stat)), F("from", cause))
	return nil
}

func boostModifyEvent(s Stat) Event {
	switch s {
	case StatAtk:
		return EventModifyAtk
	case StatDef:
		return EventModifyDef
	case StatSpA:
		return EventModifySpA
	case StatSpD:
		return EventModifySpD
	case StatSpe:
		return EventModifySpe
	default:
		return EventModifyAtk
	}
}

func statName(s Stat) string {
	switch s {
	case StatHP:
		return "hp"
	case StatAtk:
		return "atk"
	case StatDef:
		return "def"
	case StatSpA:
		return "spa"
	case StatSpD:
		return "spd"
	case StatSpe:
		return "spe"
	default:
		return "unknown"
	}
}

// SwitchIn places creature into the given active slot, clearing its
// boosts/volatiles (switch invariant), stamping its CreatureID to this slot
// so any effect Source pointing at the slot now resolves to it, and firing
// SwitchIn.
func (b *Battle) SwitchIn(slot *ActiveSlot, creature *Creature) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if slot.Occupant != nil {
		if err := b.SwitchOut(slot, "switch"); err != nil {
			return err
		}
	}
	playerIdx, slotIdx := b.findSlotIndices(slot)
	creature.clearVolatilesAndBoosts()
	creature.IsActive = true
	creature.ID = CreatureID{Side: slot.Side, Player: playerIdx, Slot: slotIdx}
	slot.Occupant = creature
	b.log("switch", F("mon", monRef(creature.ID)), F("species", creature.SpeciesID))
	_, _, err := b.RunEvent(&Context{Event: EventSwitchIn, Target: creature})
	return err
}

// findSlotIndices locates slot's (player index, active-slot index) within
// its side, the two coordinates CreatureID needs beyond the side id already
// on the slot itself.
func (b *Battle) findSlotIndices(slot *ActiveSlot) (playerIdx, slotIdx int) {
	if slot.Side < 0 || slot.Side >= len(b.Sides) {
		return 0, 0
	}
	for pIdx, player := range b.Sides[slot.Side].Players {
		for sIdx, s := range player.ActiveSlots {
			if s == slot {
				return pIdx, sIdx
			}
		}
	}
	return 0, 0
}

// SwitchOut clears the occupant of slot, firing SwitchOut first.
func (b *Battle) SwitchOut(slot *ActiveSlot, cause string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if slot.Occupant == nil {
		return nil
	}
	creature := slot.Occupant
	if _, _, err := b.RunEvent(&Context{Event: EventSwitchOut, Target: creature}); err != nil {
		return err
	}
	creature.IsActive = false
	slot.Occupant = nil
	return nil
}

// DeductPP lowers a move slot's PP by count (1 normally, 2 under Pressure),
// clamped at 0.
func (b *Battle) DeductPP(ms *MoveSlot, count int) {
	ms.PP -= count
	if ms.PP < 0 {
		ms.PP = 0
	}
}

// DisableMove marks a move slot disabled with the given reason.
func (b *Battle) DisableMove(ms *MoveSlot, reason string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	ms.Disabled = true
	ms.DisableReason = reason
	return nil
}

// ChoiceLock locks a creature to the given move id until it switches or
// loses the locking item/effect.
func (b *Battle) ChoiceLock(target *Creature, moveID string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	target.ChoiceLockedMove = moveID
	return nil
}

// EnsureInvariant is a thin wrapper used by callers that detect an
// inconsistent state (e.g. an active slot referencing a missing creature)
// so it always routes through the same fatal path.
func (b *Battle) EnsureInvariant(ok bool, description string) error {
	if ok {
		return nil
	}
	return b.fail(rpgerr.EngineInvariant(description))
}
