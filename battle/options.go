package battle

// TieBreak selects how the event bus and scheduler resolve a sort key tie
// (equal speed, equal order/priority/sub_order). Stored on Battle.Options,
// never a package-level global, per the specification's explicit design
// note that the tie policy is an engine option.
type TieBreak int

const (
	// TieRandom breaks ties with an RNG draw (the usual in-game behavior).
	TieRandom TieBreak = iota
	// TieKeepOrder preserves gathering/insertion order on a tie.
	TieKeepOrder
	// TieFail treats any unresolved tie as an engine invariant violation,
	// useful for tests asserting a scenario never actually ties.
	TieFail
)

// DamageRoll selects how the final damage-roll band (85-100 of the
// computed base damage) is sampled.
type DamageRoll int

const (
	// DamageRollRandom samples uniformly in [85, 100] of base damage.
	DamageRollRandom DamageRoll = iota
	// DamageRollMax always takes the top of the band (100/100).
	DamageRollMax
	// DamageRollMin always takes the bottom of the band (85/100).
	DamageRollMin
)

// Options configures engine behavior that is not itself game data: tie
// resolution, damage-roll forcing for deterministic tests, and the event
// recursion guard.
type Options struct {
	TieBreak   TieBreak
	DamageRoll DamageRoll

	// MaxEventDepth bounds reentrant event dispatch recursion (a handler
	// firing a primitive which fires another event, and so on). Zero means
	// use the default.
	MaxEventDepth int
}

const defaultMaxEventDepth = 24

func (o Options) maxEventDepth() int {
	if o.MaxEventDepth <= 0 {
		return defaultMaxEventDepth
	}
	return o.MaxEventDepth
}
