package battle

import (
	"sort"
	"strconv"
	"time"

	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// ActionKind classifies one scheduled action into the bucket the scheduler
// sorts on, per §4.5.
type ActionKind int

const (
	ActionForfeit ActionKind = iota
	ActionSwitch
	ActionTransform // mega/ultra-burst/dynamax/terastallize, pre-move
	ActionMove
	ActionItem
	ActionResidual
)

// scheduledAction is one entry in a turn's action list before sorting.
type scheduledAction struct {
	Kind ActionKind

	Actor CreatureID

	// ActionSwitch
	SwitchToTeamIndex int

	// ActionMove / ActionItem
	MoveSlotIndex int
	TargetSpec    string
	UsedItemID    string

	// ActionTransform
	TransformFlag string

	// sort keys, filled in by classify before sorting
	priority int
	speed    int

	// ActionForfeit
	forfeitTime time.Time

	// ActionResidual fixed declared order (weather tick, side durations,
	// status damage, ...)
	residualSubOrder int
}

func (a *scheduledAction) classBucket() int {
	switch a.Kind {
	case ActionForfeit:
		return 0
	case ActionSwitch, ActionTransform:
		return 1
	case ActionMove, ActionItem:
		return 2
	case ActionResidual:
		return 3
	default:
		return 4
	}
}

// QueueSwitch schedules a switch action for the upcoming turn.
func (b *Battle) QueueSwitch(actor CreatureID, teamIndex int) {
	b.scheduled = append(b.scheduled, scheduledAction{Kind: ActionSwitch, Actor: actor, SwitchToTeamIndex: teamIndex})
}

// QueueMove schedules a move action for the upcoming turn.
func (b *Battle) QueueMove(actor CreatureID, moveSlotIndex int, targetSpec string) {
	b.scheduled = append(b.scheduled, scheduledAction{Kind: ActionMove, Actor: actor, MoveSlotIndex: moveSlotIndex, TargetSpec: targetSpec})
}

// QueueTransform schedules a pre-move transformation (dynamax is the only
// flag wired end to end; mega/ultra/tera parse but are no-ops for now) for
// the upcoming turn, in the same class bucket as switches.
func (b *Battle) QueueTransform(actor CreatureID, flag string) {
	b.scheduled = append(b.scheduled, scheduledAction{Kind: ActionTransform, Actor: actor, TransformFlag: flag})
}

// QueueForfeit schedules a forfeit, ordered by declaration time.
func (b *Battle) QueueForfeit(actor CreatureID, at time.Time) {
	b.scheduled = append(b.scheduled, scheduledAction{Kind: ActionForfeit, Actor: actor, forfeitTime: at})
}

// effectiveSpeedForSort applies field-level speed multipliers (tailwind,
// trick room) on top of the creature's own EffectiveSpeed. Trick Room does
// not change the computed number; it reverses how ties/ordering compare,
// applied by sortActions.
func (b *Battle) effectiveSpeedForSort(id CreatureID) int {
	c := b.creatureAt(id)
	if c == nil {
		return 0
	}
	speed := b.EffectiveSpeed(c)
	if side := b.Sides[id.Side]; side != nil {
		if _, ok := side.Conditions["tailwind"]; ok {
			speed *= 2
		}
	}
	return speed
}

// sortActions orders the scheduled action list by class bucket, then move
// priority, then effective speed (reversed under Trick Room), then the
// configured tie-break policy, then forfeit timestamp, then residual
// sub-order.
func (b *Battle) sortActions(actions []scheduledAction) ([]scheduledAction, error) {
	work := append([]scheduledAction(nil), actions...)

	for i := range work {
		if work[i].Kind == ActionMove {
			if c := b.creatureAt(work[i].Actor); c != nil && work[i].MoveSlotIndex < len(c.Moves) {
				work[i].priority = c.Moves[work[i].MoveSlotIndex].Data.Priority
			}
		}
		work[i].speed = b.effectiveSpeedForSort(work[i].Actor)
	}

	sort.SliceStable(work, func(i, j int) bool { return work[i].residualSubOrder < work[j].residualSubOrder })
	sort.SliceStable(work, func(i, j int) bool { return work[i].forfeitTime.Before(work[j].forfeitTime) })

	reversed := b.Field.TrickRoomActive()
	sort.SliceStable(work, func(i, j int) bool {
		if work[i].speed == work[j].speed {
			return false
		}
		if reversed {
			return work[i].speed < work[j].speed
		}
		return work[i].speed > work[j].speed
	})
	if err := b.resolveActionSpeedTies(work, reversed); err != nil {
		return nil, err
	}

	sort.SliceStable(work, func(i, j int) bool { return work[i].priority > work[j].priority })
	sort.SliceStable(work, func(i, j int) bool { return work[i].classBucket() < work[j].classBucket() })

	return work, nil
}

func (b *Battle) resolveActionSpeedTies(work []scheduledAction, reversed bool) error {
	i := 0
	for i < len(work) {
		j := i + 1
		for j < len(work) && work[j].speed == work[i].speed {
			j++
		}
		if j-i > 1 {
			switch b.Options.TieBreak {
			case TieFail:
				return b.fail(rpgerr.EngineInvariant("unresolved action speed tie with TieFail policy"))
			case TieRandom:
				run := work[i:j]
				b.RNG.Shuffle(len(run), func(a, c int) { run[a], run[c] = run[c], run[a] })
			case TieKeepOrder:
			}
		}
		i = j
	}
	return nil
}

// RunTurn sorts and executes every scheduled action, then runs end-of-turn
// residuals, advances the turn counter and logs `turn` last. After each
// action it queues forced-switch requests for empty active slots and returns
// early while any are outstanding; a fainted creature stays in its slot, so
// a faint by itself does not cause that early return.
func (b *Battle) RunTurn() error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	b.clearTurnScopedFlags()
	sorted, err := b.sortActions(b.scheduled)
	if err != nil {
		return err
	}
	b.scheduled = nil

	for _, action := range sorted {
		if err := b.checkNotFailed(); err != nil {
			return err
		}
		if !b.actionStillLegal(action) {
			continue
		}
		if err := b.execute(action); err != nil {
			return err
		}
		if err := b.queueForcedSwitches(); err != nil {
			return err
		}
		if len(b.outstanding) > 0 {
			return nil // suspend; resumed via SetChoice once answered
		}
	}

	if err := b.runResiduals(); err != nil {
		return err
	}
	b.Turn++
	b.log("turn", F("turn", strconv.Itoa(b.Turn)))
	return nil
}

// clearTurnScopedFlags resets protect and destiny-bond's one-turn arming at
// the start of every turn, before this turn's own protect/destiny-bond move
// (if any) re-arms them for its own duration.
func (b *Battle) clearTurnScopedFlags() {
	for _, side := range b.Sides {
		for _, player := range side.Players {
			for _, slot := range player.ActiveSlots {
				if slot.Occupant == nil {
					continue
				}
				slot.Occupant.Protected = false
				slot.Occupant.DestinyBondArmed = false
			}
		}
	}
}

func (b *Battle) actionStillLegal(a scheduledAction) bool {
	c := b.creatureAt(a.Actor)
	if c == nil || c.Fainted() {
		return false
	}
	if a.Kind == ActionMove {
		if a.MoveSlotIndex >= len(c.Moves) {
			return false
		}
		if c.Moves[a.MoveSlotIndex].Disabled {
			return false
		}
	}
	return true
}

func (b *Battle) execute(a scheduledAction) error {
	c := b.creatureAt(a.Actor)
	switch a.Kind {
	case ActionMove:
		return b.ExecuteMove(c, a.MoveSlotIndex, a.TargetSpec)
	case ActionSwitch:
		player := b.Sides[a.Actor.Side].Players[a.Actor.Player]
		slot := b.findSlotFor(player, c)
		target := player.Team[a.SwitchToTeamIndex]
		if slot == nil {
			return b.fail(rpgerr.EngineInvariant("switch action has no active slot"))
		}
		return b.SwitchIn(slot, target)
	case ActionTransform:
		return b.Transform(c, a.TransformFlag)
	case ActionResidual:
		return nil
	default:
		return nil
	}
}

func (b *Battle) findSlotFor(player *Player, occupant *Creature) *ActiveSlot {
	for _, s := range player.ActiveSlots {
		if s.Occupant == occupant {
			return s
		}
	}
	if len(player.ActiveSlots) > 0 {
		return player.ActiveSlots[0]
	}
	return nil
}

// queueForcedSwitches emits a RequestSwitch for any player with an empty
// active slot and usable bench creatures, per §4.5's pause-for-forced-
// switch rule.
func (b *Battle) queueForcedSwitches() error {
	for _, side := range b.Sides {
		for pIdx, player := range side.Players {
			for slotIdx, slot := range player.ActiveSlots {
				if slot.Occupant != nil {
					continue
				}
				if len(player.BenchedUsable()) == 0 {
					continue
				}
				player.PendingRequest = Request{Kind: RequestSwitch, ForcedSlots: []int{slotIdx}}
				player.HasRequest = true
				b.outstanding[requestKey{Side: side.ID, Player: pIdx}] = true
			}
		}
	}
	return nil
}

// runResiduals runs end-of-turn weather/terrain ticks, status damage, and
// side/field duration decrements, firing Residual/FieldResidual.
func (b *Battle) runResiduals() error {
	for _, side := range b.Sides {
		for _, player := range side.Players {
			for _, slot := range player.ActiveSlots {
				c := slot.Occupant
				if c == nil || c.Fainted() {
					continue
				}
				if _, _, err := b.RunEvent(&Context{Event: EventResidual, Target: c}); err != nil {
					return err
				}
			}
		}
	}
	if _, _, err := b.RunEvent(&Context{Event: EventFieldResidual, Field: b.Field}); err != nil {
		return err
	}
	b.tickDurations()
	return nil
}

func (b *Battle) tickDurations() {
	if b.Field.Weather != nil && b.Field.Weather.TurnsRemaining > 0 {
		b.Field.Weather.TurnsRemaining--
		if b.Field.Weather.TurnsRemaining == 0 {
			b.Field.Weather = nil
		}
	}
	if b.Field.Terrain != nil && b.Field.Terrain.TurnsRemaining > 0 {
		b.Field.Terrain.TurnsRemaining--
		if b.Field.Terrain.TurnsRemaining == 0 {
			b.Field.Terrain = nil
		}
	}
	for id, ei := range b.Field.PseudoWeather {
		if d, ok := ei.State["duration"].(int); ok && d > 0 {
			d--
			ei.State["duration"] = d
			if d == 0 {
				delete(b.Field.PseudoWeather, id)
			}
		}
	}
	for _, side := range b.Sides {
		for id, ei := range side.Conditions {
			if d, ok := ei.State["duration"].(int); ok && d > 0 {
				d--
				ei.State["duration"] = d
				if d == 0 {
					delete(side.Conditions, id)
				}
			}
		}
	}
}
