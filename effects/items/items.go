// Package items defines battle.ItemData callback tables for held items.
package items

import "github.com/jackson-nestelroad/battlecore/battle"

// ChoiceBand boosts the holder's Attack by 50% (applied as a ModifyAtk
// hook) and locks the holder into its first-used move for as long as it is
// active, via AfterMove.
var ChoiceBand = &battle.ItemData{
	ID:   "choiceband",
	Name: "Choice Band",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventModifyAtk, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				v, _ := ctx.Value.(int)
				return v + v/2, battle.OutcomeContinue
			},
		},
		{Event: battle.EventAfterMove, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Target.ChoiceLockedMove == "" && ctx.Move != nil {
					_ = ctx.Battle.ChoiceLock(ctx.Target, ctx.Move.ID)
				}
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// ChoiceScarf boosts the holder's Speed by 50% and locks it into its
// first-used move, same as Choice Band's lock but on the Speed stat instead
// of Attack.
var ChoiceScarf = &battle.ItemData{
	ID:   "choicescarf",
	Name: "Choice Scarf",
	Callbacks: battle.CallbackTable{
		{Event: battle.EventModifySpe, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				v, _ := ctx.Value.(int)
				return v + v/2, battle.OutcomeContinue
			},
		},
		{Event: battle.EventAfterMove, Modifier: battle.ModNone}: {
			Order: 1,
			Fn: func(ctx *battle.Context) (any, battle.Outcome) {
				if ctx.Target.ChoiceLockedMove == "" && ctx.Move != nil {
					_ = ctx.Battle.ChoiceLock(ctx.Target, ctx.Move.ID)
				}
				return nil, battle.OutcomeContinue
			},
		},
	},
}

// All lists every item definition, for bulk registration.
var All = []*battle.ItemData{ChoiceBand, ChoiceScarf}
