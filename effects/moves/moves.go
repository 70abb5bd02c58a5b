// Package moves defines battle.MoveData entries covering the engine's
// end-to-end scenarios: a plain physical hit, a status-inflicting powder, an
// OHKO move, a pure stat-boosting move, a field-effect move, a
// volatile-seeding move, a Grass-type hit for exercising dynamax's Max Move
// substitution, Protect/Substitute/Destiny Bond for the shield and
// faint-class state machines, and a charge/recharge pair for the two-turn
// and must-recharge move state machines.
package moves

import (
	"github.com/jackson-nestelroad/battlecore/battle"
	"github.com/jackson-nestelroad/battlecore/effects/statuses"
)

// Tackle is a baseline neutral physical hit with no secondary effects.
var Tackle = &battle.MoveData{
	ID:       "tackle",
	Name:     "Tackle",
	Type:     battle.TypeNormal,
	Category: battle.CategoryPhysical,
	Power:    40,
	Accuracy: 100,
	PP:       35,
	Target:   battle.TargetAdjacent,
	Flags:    map[string]bool{"contact": true},
}

// PoisonPowder always poisons its target on a successful hit; it deals no
// direct damage (status category, power is irrelevant to computeDamage
// since it short-circuits before the damage branch whenever Category is
// Status — see ExecuteMove/resolveOneHit).
var PoisonPowder = &battle.MoveData{
	ID:       "poisonpowder",
	Name:     "Poison Powder",
	Type:     battle.TypePoison,
	Category: battle.CategoryStatus,
	Accuracy: 75,
	PP:       35,
	Target:   battle.TargetAdjacent,
	Secondaries: []battle.SecondaryEffect{
		{Chance: 100, Status: battle.StatusPoison},
	},
}

// Fissure is an OHKO move: the move executor special-cases move.Flags["ohko"]
// entirely, bypassing the standard damage formula.
var Fissure = &battle.MoveData{
	ID:       "fissure",
	Name:     "Fissure",
	Type:     battle.TypeGround,
	Category: battle.CategoryPhysical,
	Accuracy: 30,
	PP:       5,
	Target:   battle.TargetAdjacent,
	Flags:    map[string]bool{"ohko": true},
}

// Agility sharply raises the user's Speed by two stages and deals no
// damage.
var Agility = &battle.MoveData{
	ID:       "agility",
	Name:     "Agility",
	Type:     battle.TypePsychic,
	Category: battle.CategoryStatus,
	Accuracy: 0,
	PP:       30,
	Target:   battle.TargetSelf,
	Secondaries: []battle.SecondaryEffect{
		{Chance: 100, Boosts: boostOf(battle.StatSpe, 2)},
	},
}

// TrickRoom reverses speed-order resolution for five turns; using it again
// while already active turns it back off early.
var TrickRoom = &battle.MoveData{
	ID:       "trickroom",
	Name:     "Trick Room",
	Type:     battle.TypePsychic,
	Category: battle.CategoryStatus,
	Accuracy: 0,
	PP:       5,
	Target:   battle.TargetFieldTarget,
	Callbacks: battle.CallbackTable{
		{Event: battle.EventHit, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Battle.HasPseudoWeather("trickroom") {
					_ = ctx.Battle.RemovePseudoWeather("trickroom", "Trick Room")
				} else {
					_ = ctx.Battle.AddPseudoWeather("trickroom", statuses.TrickRoomRoom, ctx.Source, statuses.TrickRoomRoom.Duration)
				}
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// HyperVoice is a plain neutral special hit, used alongside Tackle to
// exercise choice-lock's move-switch rejection.
var HyperVoice = &battle.MoveData{
	ID:       "hypervoice",
	Name:     "Hyper Voice",
	Type:     battle.TypeNormal,
	Category: battle.CategorySpecial,
	Power:    90,
	Accuracy: 100,
	PP:       10,
	Target:   battle.TargetAdjacent,
}

// LeechSeed plants the leechseed volatile on the target, which drains HP to
// the seed's source on every residual tick (see statuses.LeechSeed).
var LeechSeed = &battle.MoveData{
	ID:       "leechseed",
	Name:     "Leech Seed",
	Type:     battle.TypeGrass,
	Category: battle.CategoryStatus,
	Accuracy: 90,
	PP:       10,
	Target:   battle.TargetAdjacent,
	Secondaries: []battle.SecondaryEffect{
		{Chance: 100, VolatileID: "leechseed"},
	},
}

// VineWhip is a plain Grass-type physical hit, used to exercise dynamax's
// Max Move substitution (a gigantamax Venusaur using it becomes G-Max Vine
// Lash instead of the generic Max Overgrowth).
var VineWhip = &battle.MoveData{
	ID:       "vinewhip",
	Name:     "Vine Whip",
	Type:     battle.TypeGrass,
	Category: battle.CategoryPhysical,
	Power:    45,
	Accuracy: 100,
	PP:       25,
	Target:   battle.TargetAdjacent,
	Flags:    map[string]bool{"contact": true},
}

// Protect blocks every incoming hit for the rest of this turn, unless the move
// is flagged unblockable; the move executor special-cases move.Flags["protect"]
// rather than running the normal hit pipeline against its own user.
var Protect = &battle.MoveData{
	ID:       "protect",
	Name:     "Protect",
	Type:     battle.TypeNormal,
	Category: battle.CategoryStatus,
	Accuracy: 0,
	PP:       10,
	Priority: 4,
	Target:   battle.TargetSelf,
	Flags:    map[string]bool{"protect": true},
}

// Substitute spends a quarter of the user's max HP to raise a shield that
// absorbs damage (and blocks most secondary effects) until it breaks.
var Substitute = &battle.MoveData{
	ID:       "substitute",
	Name:     "Substitute",
	Type:     battle.TypeNormal,
	Category: battle.CategoryStatus,
	Accuracy: 0,
	PP:       10,
	Target:   battle.TargetSelf,
	Flags:    map[string]bool{"substitute": true},
}

// DestinyBond arms the user: if it faints from an opponent's direct move
// this turn, that opponent faints too.
var DestinyBond = &battle.MoveData{
	ID:       "destinybond",
	Name:     "Destiny Bond",
	Type:     battle.TypeGhost,
	Category: battle.CategoryStatus,
	Accuracy: 0,
	PP:       5,
	Target:   battle.TargetSelf,
	Flags:    map[string]bool{"destinybond": true},
}

// SolarBeam is a two-turn move: it charges on the first turn it is selected
// (no hit, no target resolution) and fires on the second, per move.Flags["charge"].
var SolarBeam = &battle.MoveData{
	ID:       "solarbeam",
	Name:     "Solar Beam",
	Type:     battle.TypeGrass,
	Category: battle.CategorySpecial,
	Power:    120,
	Accuracy: 100,
	PP:       10,
	Target:   battle.TargetAdjacent,
	Flags:    map[string]bool{"charge": true},
}

// HyperBeam hits immediately but forces the user to recharge (skip its next
// move) afterward, per move.Flags["recharge"].
var HyperBeam = &battle.MoveData{
	ID:       "hyperbeam",
	Name:     "Hyper Beam",
	Type:     battle.TypeNormal,
	Category: battle.CategorySpecial,
	Power:    150,
	Accuracy: 90,
	PP:       5,
	Target:   battle.TargetAdjacent,
	Flags:    map[string]bool{"recharge": true},
}

func boostOf(stat battle.Stat, delta int) battle.StatTable {
	var t battle.StatTable
	t.Set(stat, delta)
	return t
}

// All lists every move definition, for bulk registration.
var All = []*battle.MoveData{
	Tackle, PoisonPowder, Fissure, Agility, TrickRoom, LeechSeed, HyperVoice, VineWhip,
	Protect, Substitute, DestinyBond, SolarBeam, HyperBeam,
}
