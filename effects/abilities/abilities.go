// Package abilities defines battle.AbilityData callback tables for a small
// set of abilities covering the engine's end-to-end scenarios: type-based
// immunity (Levitate), a foe-facing PP cost modifier (Pressure), and a
// secondary-chance doubler (Serene Grace).
package abilities

import "github.com/jackson-nestelroad/battlecore/battle"

// Levitate grants immunity to Ground-type moves via the Immunity hook.
var Levitate = &battle.AbilityData{
	ID:   "levitate",
	Name: "Levitate",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventImmunity, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Move != nil && ctx.Move.Data != nil && ctx.Move.Data.Type == battle.TypeGround {
					return true, battle.OutcomeStop
				}
				return false, battle.OutcomeContinue
			},
		},
	},
}

// Pressure has no callback here: the extra PP deduction it causes is a
// cross-creature effect resolved directly by the move executor
// (pressureExtraDeduction), since no single event in the table scopes
// "every opposing Pressure holder" as a modifier target. This entry exists
// so Pressure has a data-store identity distinct creatures can carry.
var Pressure = &battle.AbilityData{
	ID:   "pressure",
	Name: "Pressure",
}

// SereneGrace doubles the chance of a move's secondary effects by modifying
// the chance value threaded through ModifyMove during applySecondaries.
var SereneGrace = &battle.AbilityData{
	ID:   "serenegrace",
	Name: "Serene Grace",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventModifyMove, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				chance, _ := ctx.Value.(int)
				chance *= 2
				if chance > 100 {
					chance = 100
				}
				return chance, battle.OutcomeContinue
			},
		},
	},
}

// All lists every ability definition, for bulk registration.
var All = []*battle.AbilityData{Levitate, Pressure, SereneGrace}
