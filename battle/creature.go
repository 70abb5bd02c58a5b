package battle

// Creature is one team member: identity, current stats, moves, status, and
// the volatile conditions/effect instances attached directly to it.
type Creature struct {
	// Identity, fixed at creation.
	SpeciesID string
	Species   *SpeciesData
	Nickname  string
	Level     int
	Nature    Nature
	IVs       StatTable
	EVs       StatTable
	Gender    string

	// Computed stats (base+level+nature+IV+EV), recomputed whenever level,
	// nature, or forme changes; never mutated directly elsewhere.
	Stats StatTable

	// Stages in [-6, +6] per stat (HP unused). Cleared on switch-out.
	Boosts StatTable

	Moves []*MoveSlot

	HeldItem   string
	ItemEffect *EffectInstance

	AbilityID      string
	AbilitySuppressed bool
	AbilityEffect  *EffectInstance

	Volatiles map[string]*EffectInstance // keyed by effect id, insertion order not preserved by map; see VolatileOrder
	VolatileOrder []string

	Status        PrimaryStatus
	StatusCounter int // sleep turns remaining / toxic counter, depending on Status
	StatusEffect  *EffectInstance

	HP    int
	MaxHP int

	Friendship int
	Experience int
	HiddenPowerType Type

	Forme       string
	TeraType    Type
	TeraActive  bool
	Dynamaxed   bool
	Megaed      bool
	GigantamaxFactor bool

	// OrigMaxHP holds MaxHP from just before dynamax's HP scaling, restored
	// by revertDynamax. Zero whenever Dynamaxed is false.
	OrigMaxHP int

	// Position, filled in when the creature occupies an active slot;
	// IsActive is false while benched.
	IsActive bool
	ID       CreatureID

	// LastMove/consecutive-use bookkeeping for rage/fury-cutter-class
	// moves and choice-lock enforcement. LastMoveID is set after each move;
	// ConsecutiveMoveUses is reset on switch-out and not incremented anywhere.
	LastMoveID        string
	ConsecutiveMoveUses int
	ChoiceLockedMove  string

	// Two-turn move state machine (Idle/Charging/Executing handled by
	// fields, not a separate type, to keep serialization simple).
	ChargingMove string
	MustRecharge bool

	// DestinyBondArmed is true for the one turn destiny bond is active.
	DestinyBondArmed bool

	// Protected is true for the remainder of the turn a protect-class move
	// is used; cleared at the start of the next turn by clearTurnScopedFlags.
	Protected bool

	// SubstituteHP is the remaining HP of an active substitute shield, 0
	// meaning none is up. Damage is absorbed here instead of HP while > 0.
	SubstituteHP int
}

// Fainted reports whether this creature has 0 HP.
func (c *Creature) Fainted() bool {
	return c.HP <= 0
}

// EffectiveSpeed returns the creature's Speed stat after boosts and status,
// not yet including item/ability modifiers (choice scarf, speed-boosting
// weather abilities) or field-level multipliers (trick room, tailwind);
// callers within Battle use Battle.EffectiveSpeed, which layers the
// item/ability modifiers on. Field-level effects are applied by the
// scheduler when it sorts actions.
func (c *Creature) EffectiveSpeed() int {
	speed := applyBoost(c.Stats.Get(StatSpe), c.Boosts.Get(StatSpe))
	if c.Status == StatusParalysis {
		speed /= 2
	}
	return speed
}

// EffectiveSpeed runs c's base EffectiveSpeed through any gathered
// EventModifySpe callbacks (choice scarf, speed-boosting weather abilities).
// Field-level effects are not applied here: the scheduler doubles speed for
// tailwind when sorting, and trick room reverses the ordering comparison
// rather than the number.
func (b *Battle) EffectiveSpeed(c *Creature) int {
	speed := c.EffectiveSpeed()
	v, err := b.RunModifier(&Context{Event: EventModifySpe, Target: c}, speed)
	if err != nil {
		return speed
	}
	if iv, ok := v.(int); ok {
		return iv
	}
	return speed
}

// applyBoost scales a stat by its stage using the standard 2/6 step table:
// positive stages multiply by (2+n)/2, negative stages by 2/(2-n).
func applyBoost(stat, stage int) int {
	if stage > 6 {
		stage = 6
	}
	if stage < -6 {
		stage = -6
	}
	if stage == 0 {
		return stat
	}
	if stage > 0 {
		return stat * (2 + stage) / 2
	}
	return stat * 2 / (2 - stage)
}

// clearVolatilesAndBoosts resets everything switch-out must clear, per the
// switch-invariant testable property: stages and volatiles are empty on
// switch-in.
func (c *Creature) clearVolatilesAndBoosts() {
	c.Boosts = StatTable{}
	c.Volatiles = make(map[string]*EffectInstance)
	c.VolatileOrder = nil
	c.ConsecutiveMoveUses = 0
	c.ChargingMove = ""
	c.MustRecharge = false
	c.DestinyBondArmed = false
	c.Protected = false
	c.SubstituteHP = 0
	c.ChoiceLockedMove = ""
}
