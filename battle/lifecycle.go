package battle

import (
	"strconv"

	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// Start returns the recorded failure if the battle has already failed;
// otherwise it emits a turn request to each player with a usable creature
// and marks those requests outstanding. It does not validate teams or the
// format, and it never emits a team-preview request.
func (b *Battle) Start() error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	return b.emitTurnRequests()
}

// SetChoice answers the outstanding request for (sideID, playerID) with a
// raw choice string. If the choice is illegal for the current request, the
// error is returned and state is left unchanged (invalid-input policy,
// §7). Once every outstanding request for the turn is answered, the turn
// runs automatically and emits the next turn's requests.
func (b *Battle) SetChoice(sideID, playerID int, raw string) error {
	if !b.Mu.TryLock() {
		return rpgerr.New(rpgerr.CodeInvalidState, "concurrent SetChoice call on the same battle")
	}
	defer b.Mu.Unlock()

	if err := b.checkNotFailed(); err != nil {
		return err
	}
	key := requestKey{Side: sideID, Player: playerID}
	if !b.outstanding[key] {
		return rpgerr.InvalidChoice("no outstanding request for this player")
	}

	player := b.Sides[sideID].Players[playerID]
	choices, err := ParseChoice(raw)
	if err != nil {
		return err
	}

	switch player.PendingRequest.Kind {
	case RequestTurn:
		if err := b.applyTurnChoices(sideID, playerID, choices); err != nil {
			return err
		}
	case RequestSwitch:
		if err := b.applyForcedSwitch(sideID, playerID, choices); err != nil {
			return err
		}
	default:
		return rpgerr.InvalidChoicef("unsupported request kind for SetChoice")
	}

	delete(b.outstanding, key)
	player.HasRequest = false

	if len(b.outstanding) == 0 {
		return b.advance()
	}
	return nil
}

// advance runs the turn (or resumes it, if we were paused for forced
// switches) and, once it completes without pausing again, emits the next
// turn's requests.
func (b *Battle) advance() error {
	if err := b.RunTurn(); err != nil {
		return err
	}
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if len(b.outstanding) > 0 {
		return nil // still paused for forced switches
	}
	if side, won := b.Winner(); won {
		b.log("win", F("side", strconv.Itoa(side)))
		return nil
	}
	return b.emitTurnRequests()
}

func (b *Battle) applyTurnChoices(sideID, playerID int, choices []*Choice) error {
	player := b.Sides[sideID].Players[playerID]
	for i, c := range choices {
		if i >= len(player.ActiveSlots) {
			return rpgerr.InvalidChoicef("more choices than active slots")
		}
		slot := player.ActiveSlots[i]
		actor := b.idFor(player, slot.Occupant)
		switch c.Kind {
		case ChoiceMove:
			if slot.Occupant == nil {
				return rpgerr.InvalidChoice("no creature in this active slot")
			}
			if c.MoveIndex < 0 || c.MoveIndex >= len(slot.Occupant.Moves) {
				return rpgerr.InvalidChoicef("move index %d out of range", c.MoveIndex)
			}
			ms := slot.Occupant.Moves[c.MoveIndex]
			if slot.Occupant.ChoiceLockedMove != "" && slot.Occupant.ChoiceLockedMove != ms.ID {
				return rpgerr.InvalidChoicef("cannot move: %s's %s is disabled", slot.Occupant.Nickname, ms.Data.Name)
			}
			if !ms.Selectable() {
				return rpgerr.InvalidChoicef("move %s has no PP or is disabled", ms.ID)
			}
			if c.Flag != "" {
				b.QueueTransform(actor, c.Flag)
			}
			b.QueueMove(actor, c.MoveIndex, c.Target)
		case ChoiceSwitch:
			if c.SwitchIndex < 0 || c.SwitchIndex >= len(player.Team) {
				return rpgerr.InvalidChoicef("switch index %d out of range", c.SwitchIndex)
			}
			if player.Team[c.SwitchIndex].Fainted() {
				return rpgerr.InvalidChoice("cannot switch to a fainted creature")
			}
			b.QueueSwitch(actor, c.SwitchIndex)
		case ChoicePass:
			// no-op: this slot takes no action this turn.
		case ChoiceForfeit:
			player.Forfeited = true
			b.QueueForfeit(actor, player.ForfeitTime)
		default:
			return rpgerr.InvalidChoicef("choice kind not valid for a turn request")
		}
	}
	return nil
}

func lockedMoveName(c *Creature) string {
	for _, ms := range c.Moves {
		if ms.ID == c.ChoiceLockedMove {
			continue
		}
		return ms.Data.Name
	}
	return "that move"
}

func (b *Battle) applyForcedSwitch(sideID, playerID int, choices []*Choice) error {
	player := b.Sides[sideID].Players[playerID]
	if len(choices) == 0 || choices[0].Kind != ChoiceSwitch {
		return rpgerr.InvalidChoice("forced switch request requires a switch choice")
	}
	idx := choices[0].SwitchIndex
	if idx < 0 || idx >= len(player.Team) || player.Team[idx].Fainted() {
		return rpgerr.InvalidChoicef("switch index %d is not a legal replacement", idx)
	}
	slotIdx := 0
	if len(player.PendingRequest.ForcedSlots) > 0 {
		slotIdx = player.PendingRequest.ForcedSlots[0]
	}
	return b.SwitchIn(player.ActiveSlots[slotIdx], player.Team[idx])
}

func (b *Battle) idFor(player *Player, occupant *Creature) CreatureID {
	if occupant != nil {
		return occupant.ID
	}
	return CreatureID{}
}

// emitTurnRequests builds and records a RequestTurn for every player with a
// usable creature, per §6.
func (b *Battle) emitTurnRequests() error {
	for _, side := range b.Sides {
		for pIdx, player := range side.Players {
			if player.Forfeited || !player.HasUsableCreature() {
				continue
			}
			req := b.buildTurnRequest(player)
			player.PendingRequest = req
			player.HasRequest = true
			b.outstanding[requestKey{Side: side.ID, Player: pIdx}] = true
		}
	}
	return nil
}

// buildTurnRequest lists, per active slot, the selectable moves (honoring
// choice-lock — only the locked move is selectable, unless it has no PP,
// in which case struggle is implied by CanSwitch/BenchedUsable staying
// available) and legal switch targets.
func (b *Battle) buildTurnRequest(player *Player) Request {
	var actives []ActiveRequest
	for slotIdx, slot := range player.ActiveSlots {
		ar := ActiveRequest{Slot: slotIdx, CanSwitch: true, SwitchIndices: player.BenchedUsable()}
		if slot.Occupant == nil {
			actives = append(actives, ar)
			continue
		}
		c := slot.Occupant
		for i, ms := range c.Moves {
			opt := MoveChoiceOption{Index: i, Name: ms.Data.Name, PP: ms.PP, MaxPP: ms.MaxPP, Disabled: ms.Disabled}
			if c.ChoiceLockedMove != "" && ms.ID != c.ChoiceLockedMove {
				opt.Disabled = true
			}
			ar.Moves = append(ar.Moves, opt)
		}
		actives = append(actives, ar)
	}
	return Request{Kind: RequestTurn, Actives: actives}
}
