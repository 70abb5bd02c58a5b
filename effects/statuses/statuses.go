// Package statuses defines the primary-status and volatile-condition
// callback tables consumed by battle.DataStore implementations. Each
// exported *battle.StatusCondition is a ready-to-register definition; none
// of them hold per-battle state themselves, since that lives on the
// resulting battle.EffectInstance.
package statuses

import (
	"github.com/jackson-nestelroad/battlecore/battle"
)

// Poison deals 1/8 max HP at the end of every turn.
var Poison = &battle.StatusCondition{
	ID:   "psn",
	Name: "Poison",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventResidual, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				target := ctx.Target
				dmg := target.MaxHP / 8
				if dmg < 1 {
					dmg = 1
				}
				_ = ctx.Battle.SetHP(target, -dmg, "status:Poison")
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// BadPoison (toxic) deals an increasing fraction of max HP each turn:
// n/16 on the nth residual tick since it was applied.
var BadPoison = &battle.StatusCondition{
	ID:   "tox",
	Name: "Bad Poison",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventResidual, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				target := ctx.Target
				target.StatusCounter++
				dmg := (target.MaxHP * target.StatusCounter) / 16
				if dmg < 1 {
					dmg = 1
				}
				_ = ctx.Battle.SetHP(target, -dmg, "status:Toxic")
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// Burn deals 1/16 max HP at the end of every turn; the attack-halving half
// of burn is applied directly in the damage formula (battle.computeDamage),
// gated by the EventWeaken hook this definition leaves unset (no ability
// override here).
var Burn = &battle.StatusCondition{
	ID:   "brn",
	Name: "Burn",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventResidual, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				target := ctx.Target
				dmg := target.MaxHP / 16
				if dmg < 1 {
					dmg = 1
				}
				_ = ctx.Battle.SetHP(target, -dmg, "status:Burn")
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// Paralysis has a 25% chance to fully prevent the move each turn; the
// speed-halving half is applied in Creature.EffectiveSpeed.
var Paralysis = &battle.StatusCondition{
	ID:   "par",
	Name: "Paralysis",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventBeforeMove, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Battle.RNG.Chance(1, 4) {
					ctx.FailReason = "par"
					return nil, battle.OutcomePrevent
				}
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// Freeze has a 20% chance to thaw before the move; otherwise the move is
// prevented outright.
var Freeze = &battle.StatusCondition{
	ID:   "frz",
	Name: "Freeze",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventBeforeMove, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Battle.RNG.Chance(20, 100) {
					_ = ctx.Battle.SetStatus(ctx.Target, battle.StatusNone, nil, "thaw")
					return nil, battle.OutcomeContinue
				}
				ctx.FailReason = "frz"
				return nil, battle.OutcomePrevent
			},
		},
	},
}

// Sleep rolls a 1-3 turn duration when first applied (AfterSetStatus) and
// counts it down on every attempted move, curing on expiry.
var Sleep = &battle.StatusCondition{
	ID:   "slp",
	Name: "Sleep",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventAfterSetStatus, Modifier: battle.ModNone}: {
			Order: 0,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Target.Status == battle.StatusSleep && ctx.Target.StatusCounter == 0 {
					ctx.Target.StatusCounter = ctx.Battle.RNG.Range(1, 3)
				}
				return nil, battle.OutcomeContinue
			},
		},
		{Event: battle.EventBeforeMove, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				target := ctx.Target
				if target.StatusCounter > 0 {
					target.StatusCounter--
				}
				if target.StatusCounter == 0 {
					_ = ctx.Battle.SetStatus(target, battle.StatusNone, nil, "woke up")
					return nil, battle.OutcomeContinue
				}
				ctx.FailReason = "slp"
				return nil, battle.OutcomePrevent
			},
		},
	},
}

// All lists every primary status definition, for bulk registration.
var All = []*battle.StatusCondition{Poison, BadPoison, Burn, Paralysis, Freeze, Sleep}

// Volatiles lists every volatile-condition definition, for bulk
// registration (these share the DataStore's Status lookup with primary
// statuses, since both are keyed purely by callbacks and a duration).
var Volatiles = []*battle.StatusCondition{LeechSeed, Flinch}

// TrickRoomRoom is the pseudo-weather definition Trick Room installs; it
// carries no callbacks of its own since the speed-order reversal it causes
// is consulted directly by the scheduler via Field.TrickRoomActive.
var TrickRoomRoom = &battle.StatusCondition{
	ID:       "trickroom",
	Name:     "Trick Room",
	Duration: 5,
}

// LeechSeed is a volatile condition: every residual tick it damages the
// seeded creature 1/8 max HP and heals whatever creature currently occupies
// the seed's source slot (per the stable CreatureID backref, the drain
// follows a switched-in replacement rather than the original attacker).
var LeechSeed = &battle.StatusCondition{
	ID:       "leechseed",
	Name:     "Leech Seed",
	Duration: 0,
	Callbacks: battle.CallbackTable{
		{Event: battle.EventResidual, Modifier: battle.ModNone}: {
			Order: 2,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				target := ctx.Target
				ei := target.Volatiles["leechseed"]
				if ei == nil {
					return nil, battle.OutcomeContinue
				}
				dmg := target.MaxHP / 8
				if dmg < 1 {
					dmg = 1
				}
				_ = ctx.Battle.SetHP(target, -dmg, "move:Leech Seed")
				if ei.HasSource {
					if src := ctx.Battle.CreatureAt(ei.Source); src != nil && !src.Fainted() {
						_ = ctx.Battle.SetHP(src, dmg, "move:Leech Seed")
					}
				}
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// Flinch prevents the afflicted creature's move for exactly the turn it was
// applied; it is removed the moment it is consumed, since a fresh flinch is
// re-applied by its triggering hit every time, never carried over.
var Flinch = &battle.StatusCondition{
	ID:   "flinch",
	Name: "Flinch",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventBeforeMove, Modifier: battle.ModNone}: {
			Order: 0,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				_ = ctx.Battle.RemoveVolatile(ctx.Target, "flinch")
				ctx.FailReason = "flinch"
				return nil, battle.OutcomePrevent
			},
		},
	},
}
