package battle

import "github.com/jackson-nestelroad/battlecore/core"

// EffectKind tags what kind of thing an EffectInstance represents.
type EffectKind int

const (
	EffectAbility EffectKind = iota
	EffectItem
	EffectMove
	EffectStatus
	EffectVolatile
	EffectSideCondition
	EffectFieldCondition
	EffectPseudoWeather
	EffectClause
	EffectWeather
	EffectTerrain
	EffectFormatRule
)

// Outcome is what a handler tells the bus to do after it runs.
type Outcome int

const (
	// OutcomeContinue lets the bus move on to the next gathered callback.
	OutcomeContinue Outcome = iota
	// OutcomePrevent aborts the surrounding operation; Context.FailReason
	// explains why (protect, immunity, already-statused, ...). This is an
	// in-world outcome, not an engine error.
	OutcomePrevent
	// OutcomeStop ends the dispatch immediately with this handler's
	// returned value, skipping every callback still queued behind it.
	OutcomeStop
)

// Context is threaded through one event dispatch. It carries everything a
// handler might need; unused fields are left zero. Handlers mutate Extra
// for effect-local scratch state that must survive to later callbacks in
// the same dispatch (e.g. "this hit became a critical").
type Context struct {
	Battle   *Battle
	Event    Event
	Modifier EventModifier

	// Target is the creature the event is happening to (the "M" of the
	// spec's gathering rules). Source is the creature that caused it, if
	// any (the attacker for a move-triggered event).
	Target *Creature
	Source *Creature

	// Side/Field are set for side- and field-scoped events instead of, or
	// in addition to, Target.
	Side  *Side
	Field *Field

	// Move is the move being executed, for move-pipeline events.
	Move *MoveSlot

	// Value is the accumulator for run_modifier dispatches: handlers read
	// it and return the next value via their HandlerFunc return.
	Value any

	// FailReason is set by a handler returning OutcomePrevent.
	FailReason string

	// Extra is free-form per-dispatch scratch data.
	Extra map[string]any
}

// Set stores a value in Extra, creating the map if needed.
func (c *Context) Set(key string, value any) {
	if c.Extra == nil {
		c.Extra = make(map[string]any)
	}
	c.Extra[key] = value
}

// Get reads a value from Extra.
func (c *Context) Get(key string) (any, bool) {
	if c.Extra == nil {
		return nil, false
	}
	v, ok := c.Extra[key]
	return v, ok
}

// HandlerFunc is one callback's native-Go implementation. It reads
// ctx.Value (for modifier events) and returns the (possibly unchanged)
// value plus an Outcome telling the bus how to proceed.
type HandlerFunc func(ctx *Context) (value any, outcome Outcome)

// Callback is one entry in an effect's callback table: a handler plus the
// order triple used to sort it against every other gathered callback.
type Callback struct {
	Order    int
	Priority int
	SubOrder int
	Fn       HandlerFunc
}

// CallbackTable maps (event, modifier) to the callback an effect defines
// for that slot. Most effects populate only a handful of keys.
type CallbackTable map[CallbackKey]Callback

// Extend merges patch's callbacks over base, returning a new table. Patch
// entries win on key collision. This is how generational effect overrides
// are applied without mutating the original definition.
func (base CallbackTable) Extend(patch CallbackTable) CallbackTable {
	merged := make(CallbackTable, len(base)+len(patch))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// CreatureID is a backreference to an active slot: side index, player
// index within that side, and position within that player's ActiveSlots.
// Effect instances keep this instead of a long-lived creature pointer
// because the referent may faint, switch out, or be replaced between
// application and firing (Design Notes, cyclic references) — and because
// naming the slot rather than the creature is what lets a Source backref
// transfer to whatever switches into that slot later.
type CreatureID struct {
	Side   int
	Player int
	Slot   int
}

// gatheredCallback is one callback after gathering, paired with the
// context needed to resolve its effective speed at sort time.
type gatheredCallback struct {
	key      CallbackKey
	cb       Callback
	owner    *EffectInstance
	ownerRef CreatureID
	hasOwner bool
}

// EffectInstance is one applied effect: an ability, item, move, status,
// volatile, side/field condition, weather, terrain, or clause attached to
// some container, plus whatever per-instance state it has accumulated.
type EffectInstance struct {
	Kind EffectKind
	ID   *core.Ref

	// Source is who applied this effect, for attribution only. Never
	// dereferenced for ownership; must tolerate the referent being gone.
	Source   CreatureID
	HasSource bool

	Callbacks CallbackTable

	// State holds per-instance scratch values (counters, stored values)
	// such as a volatile's remaining duration or a substitute's HP.
	State map[string]any
}

// NewEffectInstance constructs an EffectInstance with an empty state map.
func NewEffectInstance(kind EffectKind, id *core.Ref, callbacks CallbackTable) *EffectInstance {
	return &EffectInstance{
		Kind:      kind,
		ID:        id,
		Callbacks: callbacks,
		State:     make(map[string]any),
	}
}

// SetSource records the attributed source creature for this instance.
func (e *EffectInstance) SetSource(id CreatureID) {
	e.Source = id
	e.HasSource = true
}
