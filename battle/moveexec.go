package battle

import (
	"strconv"

	"github.com/jackson-nestelroad/battlecore/core"
	"github.com/jackson-nestelroad/battlecore/fxnum"
	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// ExecuteMove runs the full move pipeline described in §4.6 for one
// declared action (attacker, move slot, target selection).
func (b *Battle) ExecuteMove(attacker *Creature, moveSlotIndex int, targetSpec string) error {
	if err := b.checkNotFailed(); err != nil {
		return err
	}
	if moveSlotIndex < 0 || moveSlotIndex >= len(attacker.Moves) {
		return rpgerr.InvalidChoice("move index out of range")
	}
	ms := attacker.Moves[moveSlotIndex]
	move := ms.Data
	if attacker.Dynamaxed && move.Category != CategoryStatus {
		move = b.maxMoveFor(attacker, move)
	}

	// 1. Pre-move check.
	outcome, err := b.preMoveCheck(attacker, ms)
	if err != nil {
		return err
	}
	switch outcome {
	case preMoveFail:
		b.log("fail", F("mon", monRef(attacker.ID)))
		return nil
	case preMoveRecharge:
		b.log("fail", F("mon", monRef(attacker.ID)), F("reason", "must recharge"))
		return nil
	case preMoveSkip:
		b.DeductPP(ms, 1)
		return nil
	case preMoveSelfHit:
		b.DeductPP(ms, 1)
		return b.SetHP(attacker, -b.confusionSelfDamage(attacker), "confusion")
	}

	// 2. PP deduction (+1 extra per opposing Pressure ability).
	b.DeductPP(ms, 1+b.pressureExtraDeduction(attacker))

	b.log("move", F("mon", monRef(attacker.ID)), F("name", move.Name))

	// Two-turn (charge) moves: the first use only charges, per §4.6's
	// move-with-charge state machine; the second use (ChargingMove already
	// set to this slot) falls through to the normal hit loop below and
	// clears the charge.
	if move.Flags["charge"] {
		if attacker.ChargingMove != ms.ID {
			attacker.ChargingMove = ms.ID
			b.log("prepare", F("mon", monRef(attacker.ID)), F("move", move.Name))
			b.afterMove(attacker, ms)
			return nil
		}
		attacker.ChargingMove = ""
	}

	// 3. Target resolution.
	targets, noTarget := b.resolveTargets(attacker, move, targetSpec)
	if noTarget {
		b.log("fail", F("mon", monRef(attacker.ID)), F("reason", "notarget"))
		if move.Target == TargetSelf {
			targets = []*Creature{attacker}
		} else {
			b.afterMove(attacker, ms)
			return nil
		}
	}

	// 4. Hit loop.
	hits := b.hitCount(attacker, move)
	for hit := 0; hit < hits; hit++ {
		for _, target := range targets {
			if target.Fainted() {
				continue
			}
			if err := b.resolveOneHit(attacker, ms, move, target, len(targets)); err != nil {
				return err
			}
		}
	}

	// 5. After move.
	if move.Flags["recharge"] {
		attacker.MustRecharge = true
	}
	b.afterMove(attacker, ms)
	return nil
}

type preMoveOutcome int

const (
	preMoveContinue preMoveOutcome = iota
	preMoveSkip
	preMoveSelfHit
	preMoveFail
	preMoveRecharge
)

// preMoveCheck fires BeforeMove; a prevented outcome maps to skip (a
// status/flinch-class condition consumed the turn) unless the context
// marks a self-hit (confusion) or a hard fail.
func (b *Battle) preMoveCheck(attacker *Creature, ms *MoveSlot) (preMoveOutcome, error) {
	if attacker.MustRecharge {
		attacker.MustRecharge = false
		return preMoveRecharge, nil
	}
	if attacker.ChoiceLockedMove != "" && attacker.ChoiceLockedMove != ms.ID {
		return preMoveFail, rpgerr.InvalidChoicef(
			"cannot move: %s's %s is disabled", attacker.Nickname, ms.Data.Name)
	}
	ctx := &Context{Event: EventBeforeMove, Target: attacker, Move: ms}
	prevented, reason, err := b.RunEvent(ctx)
	if err != nil {
		return preMoveContinue, err
	}
	if prevented {
		switch reason {
		case "selfhit":
			return preMoveSelfHit, nil
		case "fail":
			return preMoveFail, nil
		default:
			return preMoveSkip, nil
		}
	}
	return preMoveContinue, nil
}

func (b *Battle) confusionSelfDamage(c *Creature) int {
	// 40-power typeless physical hit against self, per generations where
	// confusion self-hits use the standard damage formula with A=D=c's
	// own Atk/Def.
	atk := applyBoost(c.Stats.Get(StatAtk), c.Boosts.Get(StatAtk))
	def := applyBoost(c.Stats.Get(StatDef), c.Boosts.Get(StatDef))
	base := (((2*c.Level/5+2)*40*atk/def)/50 + 2)
	return base
}

func (b *Battle) pressureExtraDeduction(attacker *Creature) int {
	extra := 0
	for _, side := range b.Sides {
		if side.ID == attacker.ID.Side {
			continue
		}
		for _, c := range side.ActiveCreatures() {
			if c.AbilityID == "pressure" && !c.AbilitySuppressed {
				extra++
			}
		}
	}
	return extra
}

// resolveTargets computes the effective target set from the move's target
// class, the declared selection, and RedirectTarget.
func (b *Battle) resolveTargets(attacker *Creature, move *MoveData, spec string) (targets []*Creature, noTarget bool) {
	switch move.Target {
	case TargetSelf, TargetFieldTarget, TargetSideTarget:
		return []*Creature{attacker}, false
	case TargetAllAdjacentFoes, TargetAllAdjacent:
		var out []*Creature
		for _, side := range b.Sides {
			if move.Target == TargetAllAdjacent || side.ID != attacker.ID.Side {
				out = append(out, side.ActiveCreatures()...)
			}
		}
		if len(out) == 0 {
			return nil, true
		}
		return out, false
	case TargetAllAllies:
		var out []*Creature
		for _, c := range b.Sides[attacker.ID.Side].ActiveCreatures() {
			if c != attacker {
				out = append(out, c)
			}
		}
		return out, len(out) == 0
	default:
		t := b.resolveSingleTarget(attacker, spec)
		if t == nil {
			return nil, true
		}
		redirected := b.redirectTarget(attacker, t)
		return []*Creature{redirected}, false
	}
}

func (b *Battle) resolveSingleTarget(attacker *Creature, spec string) *Creature {
	for _, side := range b.Sides {
		if side.ID == attacker.ID.Side {
			continue
		}
		foes := side.ActiveCreatures()
		if len(foes) == 0 {
			continue
		}
		idx := 0
		if n, err := strconv.Atoi(spec); err == nil && n >= 0 && n < len(foes) {
			idx = n
		}
		return foes[idx]
	}
	return nil
}

// redirectTarget runs RedirectTarget to let abilities like Lightning Rod
// steal the targeting.
func (b *Battle) redirectTarget(attacker, original *Creature) *Creature {
	v, err := b.RunModifier(&Context{Event: EventRedirectTarget, Target: original, Source: attacker}, original)
	if err != nil {
		return original
	}
	if c, ok := v.(*Creature); ok && c != nil {
		return c
	}
	return original
}

// hitCount determines the number of hits for multi-hit moves before the
// loop begins, per §4.6.4.
func (b *Battle) hitCount(attacker *Creature, move *MoveData) int {
	if move.MultiHitMax <= move.MultiHitMin {
		if move.MultiHitMin > 0 {
			return move.MultiHitMin
		}
		return 1
	}
	span := move.MultiHitMax - move.MultiHitMin + 1
	return move.MultiHitMin + b.RNG.Range(0, span-1)
}

// resolveOneHit runs TryMove/TryHit, accuracy, immunity, damage, shields,
// secondary effects, and recoil/drain for a single (hit, target) pair.
func (b *Battle) resolveOneHit(attacker *Creature, ms *MoveSlot, move *MoveData, target *Creature, numTargets int) error {
	// Protect, Substitute, and Destiny Bond are self-targeted status moves
	// that arm a shield/flag rather than running the normal hit pipeline.
	if move.Flags["protect"] {
		target.Protected = true
		b.log("activate", F("mon", monRef(target.ID)), F("move", move.Name))
		return nil
	}
	if move.Flags["substitute"] {
		return b.activateSubstitute(target, move)
	}
	if move.Flags["destinybond"] {
		target.DestinyBondArmed = true
		b.log("activate", F("mon", monRef(target.ID)), F("move", move.Name))
		return nil
	}

	tryCtx := &Context{Event: EventTryHit, Target: target, Source: attacker, Move: ms}
	prevented, reason, err := b.RunEvent(tryCtx)
	if err != nil {
		return err
	}
	if prevented {
		b.log(reason, F("mon", monRef(target.ID)))
		return nil
	}

	if target.Protected && !move.Flags["unblockable"] {
		b.log("activate", F("mon", monRef(target.ID)), F("from", "protect"))
		return nil
	}

	if move.Accuracy > 0 {
		hit, err := b.rollAccuracy(attacker, target, move)
		if err != nil {
			return err
		}
		if !hit {
			b.log("miss", F("mon", monRef(target.ID)))
			return nil
		}
	}

	if immune, err := b.checkImmunity(attacker, target, move); err != nil {
		return err
	} else if immune {
		b.log("immune", F("mon", monRef(target.ID)))
		return nil
	}

	if move.Flags["ohko"] {
		if attacker.Level < target.Level {
			b.log("immune", F("mon", monRef(target.ID)))
			return nil
		}
		b.log("ohko", F("mon", monRef(target.ID)))
		if err := b.SetHP(target, -target.HP, "move:"+move.Name); err != nil {
			return err
		}
		return b.checkDestinyBond(attacker, target)
	}

	var damage int
	absorbedBySubstitute := false
	if move.Category != CategoryStatus {
		crit := b.rollCrit(attacker, move)
		dmg, err := b.computeDamage(attacker, target, move, numTargets, crit)
		if err != nil {
			return err
		}
		damage = dmg
		if damage > 0 {
			absorbedBySubstitute = target.SubstituteHP > 0 && !move.Flags["authentic"]
			if absorbedBySubstitute {
				b.damageSubstitute(target, damage)
			} else if err := b.SetHP(target, -damage, "move:"+move.Name); err != nil {
				return err
			}
			if _, _, err := b.RunEvent(&Context{Event: EventDamagingHit, Target: target, Source: attacker, Move: ms}); err != nil {
				return err
			}
			if !absorbedBySubstitute {
				if _, _, err := b.RunEvent(&Context{Event: EventAfterDamage, Target: target, Source: attacker, Move: ms}); err != nil {
					return err
				}
				if err := b.checkDestinyBond(attacker, target); err != nil {
					return err
				}
			}
			if move.RecoilNum > 0 {
				recoil := fxnum.ModifyInt(uint32(damage), uint32(move.RecoilNum), uint32(move.RecoilDen))
				if err := b.SetHP(attacker, -int(recoil), "recoil"); err != nil {
					return err
				}
			}
			if move.DrainNum > 0 {
				drain := fxnum.ModifyInt(uint32(damage), uint32(move.DrainNum), uint32(move.DrainDen))
				if err := b.SetHP(attacker, int(drain), "drain"); err != nil {
					return err
				}
			}
		}
	}

	if _, _, err := b.RunEvent(&Context{Event: EventHit, Target: target, Source: attacker, Move: ms}); err != nil {
		return err
	}

	// Substitute blocks most secondary effects for the hit it absorbed.
	if absorbedBySubstitute {
		return nil
	}
	return b.applySecondaries(attacker, target, move)
}

// activateSubstitute spends a quarter of target's max HP (minimum 1) to
// raise a substitute shield; fails if target is already substituted or too
// weak to pay the cost, per the real games' "must leave at least 1 HP" rule.
func (b *Battle) activateSubstitute(target *Creature, move *MoveData) error {
	if target.SubstituteHP > 0 {
		b.log("fail", F("mon", monRef(target.ID)))
		return nil
	}
	cost := target.MaxHP / 4
	if cost < 1 {
		cost = 1
	}
	if target.HP <= cost {
		b.log("fail", F("mon", monRef(target.ID)))
		return nil
	}
	if err := b.SetHP(target, -cost, "move:"+move.Name); err != nil {
		return err
	}
	target.SubstituteHP = cost
	b.log("activate", F("mon", monRef(target.ID)), F("move", move.Name))
	return nil
}

// damageSubstitute reduces target's substitute HP pool instead of target.HP,
// logging its absorption and removal if it breaks.
func (b *Battle) damageSubstitute(target *Creature, damage int) {
	if damage > target.SubstituteHP {
		damage = target.SubstituteHP
	}
	target.SubstituteHP -= damage
	b.log("activate", F("mon", monRef(target.ID)), F("from", "substitute"))
	if target.SubstituteHP <= 0 {
		target.SubstituteHP = 0
		b.log("end", F("mon", monRef(target.ID)), F("move", "Substitute"))
	}
}

// checkDestinyBond fells attacker if target just fainted while destiny bond
// was armed, per §4.6's destiny-bond state machine, then disarms it.
func (b *Battle) checkDestinyBond(attacker, target *Creature) error {
	if !target.Fainted() || !target.DestinyBondArmed {
		return nil
	}
	target.DestinyBondArmed = false
	if attacker.Fainted() {
		return nil
	}
	b.log("activate", F("mon", monRef(target.ID)), F("move", "Destiny Bond"))
	return b.SetHP(attacker, -attacker.HP, "Destiny Bond")
}

func (b *Battle) rollAccuracy(attacker, target *Creature, move *MoveData) (bool, error) {
	acc := move.Accuracy
	v, err := b.RunModifier(&Context{Event: EventModifyAccuracy, Target: target, Source: attacker}, acc)
	if err != nil {
		return false, err
	}
	finalAcc, _ := v.(int)
	if finalAcc <= 0 {
		return false, nil
	}
	if finalAcc >= 100 {
		return true, nil
	}
	return b.RNG.Chance(finalAcc, 100), nil
}

func (b *Battle) checkImmunity(attacker, target *Creature, move *MoveData) (bool, error) {
	chart := b.Data.TypeChart()
	for _, defType := range target.Species.Types {
		num, den := chart.Multiplier(move.Type, defType)
		if num == 0 {
			return true, nil
		}
		_ = den
	}
	immune, err := b.RunBooleanEvent(&Context{Event: EventImmunity, Target: target, Source: attacker, Move: findMoveSlot(attacker, move)})
	if err != nil {
		return false, err
	}
	return immune, nil
}

func findMoveSlot(c *Creature, move *MoveData) *MoveSlot {
	for _, ms := range c.Moves {
		if ms.Data == move {
			return ms
		}
	}
	return nil
}

func (b *Battle) rollCrit(attacker *Creature, move *MoveData) bool {
	stage := move.CritRatio
	v, err := b.RunModifier(&Context{Event: EventModifyCritRatio, Target: attacker}, stage)
	if err == nil {
		if s, ok := v.(int); ok {
			stage = s
		}
	}
	num, den := critOdds(stage)
	return b.RNG.Chance(num, den)
}

// critOdds is the standard stage->odds table: 1/24 at stage 0 or below,
// 1/8 at stage 1, 1/2 at stage 2, and a guaranteed crit at stage 3+.
func critOdds(stage int) (num, den int) {
	switch {
	case stage <= 0:
		return 1, 24
	case stage == 1:
		return 1, 8
	case stage == 2:
		return 1, 2
	default:
		return 1, 1
	}
}

// computeDamage implements the standard damage formula from §4.6.4,
// including the target-count multiplier, STAB, type effectiveness,
// critical-hit stage ignoring, burn halving, and the chained
// ModifyDamage/SourceModifyDamage/Weaken events, finishing with the
// 85-100 randomization band via fxnum.Modify-consistent integer math.
func (b *Battle) computeDamage(attacker, target *Creature, move *MoveData, numTargets int, crit bool) (int, error) {
	level := attacker.Level
	var atkStat, defStat Stat
	if move.Category == CategoryPhysical {
		atkStat, defStat = StatAtk, StatDef
	} else {
		atkStat, defStat = StatSpA, StatSpD
	}

	atkBoost := attacker.Boosts.Get(atkStat)
	defBoost := target.Boosts.Get(defStat)
	if crit {
		if atkBoost < 0 {
			atkBoost = 0
		}
		if defBoost > 0 {
			defBoost = 0
		}
	}
	atk := applyBoost(attacker.Stats.Get(atkStat), atkBoost)
	def := applyBoost(target.Stats.Get(defStat), defBoost)

	if v, err := b.RunModifier(&Context{Event: boostModifyEvent(atkStat), Target: attacker, Source: attacker}, atk); err == nil {
		if iv, ok := v.(int); ok {
			atk = iv
		}
	}
	if v, err := b.RunModifier(&Context{Event: boostModifyEvent(defStat), Target: target, Source: attacker}, def); err == nil {
		if iv, ok := v.(int); ok {
			def = iv
		}
	}
	if def <= 0 {
		def = 1
	}

	base := (((2*level/5 + 2) * move.Power * atk / def) / 50) + 2

	if numTargets > 1 {
		base = int(fxnum.ModifyInt(uint32(base), 3, 4))
	}

	if attacker.Status == StatusBurn && move.Category == CategoryPhysical {
		burnHalved, err := b.RunBooleanEvent(&Context{Event: EventWeaken, Target: attacker})
		if err != nil {
			return 0, err
		}
		if !burnHalved {
			base = int(fxnum.ModifyInt(uint32(base), 1, 2))
		}
	}

	if crit {
		base = int(fxnum.ModifyInt(uint32(base), 3, 2))
	}

	for _, t := range attacker.Species.Types {
		if t == move.Type {
			base = int(fxnum.ModifyInt(uint32(base), 3, 2))
			break
		}
	}

	chart := b.Data.TypeChart()
	effNum, effDen := 1, 1
	for _, defType := range target.Species.Types {
		num, den := chart.Multiplier(move.Type, defType)
		effNum *= num
		effDen *= den
	}
	if effNum != effDen {
		base = int(fxnum.ModifyInt(uint32(base), uint32(effNum), uint32(effDen)))
	}

	v, err := b.RunModifier(&Context{Event: EventModifyDamage, Target: target, Source: attacker}, base)
	if err != nil {
		return 0, err
	}
	base, _ = v.(int)
	v, err = b.RunModifier(&Context{Event: EventSourceModifyDamage, Target: target, Source: attacker}, base)
	if err != nil {
		return 0, err
	}
	base, _ = v.(int)

	if base <= 0 {
		return 0, nil
	}

	roll := 100
	switch b.Options.DamageRoll {
	case DamageRollMax:
		roll = 100
	case DamageRollMin:
		roll = 85
	default:
		roll = b.RNG.Range(85, 100)
	}
	base = int(fxnum.ModifyInt(uint32(base), uint32(roll), 100))
	if base < 1 {
		base = 1
	}
	return base, nil
}

func (b *Battle) applySecondaries(attacker, target *Creature, move *MoveData) error {
	for _, sec := range move.Secondaries {
		chance := sec.Chance
		if chance <= 0 {
			chance = 100
		}
		v, err := b.RunModifier(&Context{Event: EventModifyMove, Target: attacker}, chance)
		if err == nil {
			if c, ok := v.(int); ok {
				chance = c
			}
		}
		if chance < 100 && !b.RNG.Chance(chance, 100) {
			continue
		}
		if sec.Status != StatusNone && target.Status == StatusNone {
			if err := b.SetStatus(target, sec.Status, attacker, "move secondary"); err != nil {
				return err
			}
		}
		for s := StatHP; s <= StatSpe; s++ {
			if delta := sec.Boosts.Get(s); delta != 0 {
				if err := b.BoostStat(target, s, delta, "move secondary"); err != nil {
					return err
				}
			}
		}
		if sec.VolatileID != "" {
			def, err := b.Data.Status(sec.VolatileID)
			if err != nil || def == nil {
				return b.fail(rpgerr.DataErrorf("volatile %q: %v", sec.VolatileID, err))
			}
			ref := core.MustNewRef(core.RefInput{Module: "battle", Type: "volatile", Value: def.ID})
			if _, err := b.AddVolatile(target, ref, def, attacker); err != nil {
				return err
			}
		}
		if sec.Flinch {
			def, err := b.Data.Status("flinch")
			if err != nil || def == nil {
				return b.fail(rpgerr.DataErrorf("volatile %q: %v", "flinch", err))
			}
			ref := core.MustNewRef(core.RefInput{Module: "battle", Type: "volatile", Value: def.ID})
			if _, err := b.AddVolatile(target, ref, def, attacker); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Battle) afterMove(attacker *Creature, ms *MoveSlot) {
	attacker.LastMoveID = ms.ID
	ms.UsedThisTurn = true
	_, _, _ = b.RunEvent(&Context{Event: EventAfterMove, Target: attacker, Move: ms})
}
