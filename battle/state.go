package battle

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jackson-nestelroad/battlecore/dice"
	"github.com/jackson-nestelroad/battlecore/rpgerr"
)

// FormatDescriptor names the battle format (singles/doubles, level cap,
// active rules) that was used to build this battle.
type FormatDescriptor struct {
	ID        string
	Name      string
	ActiveFmt int // creatures active per side, e.g. 1 for singles, 2 for doubles
}

// Battle is the root entity: format, RNG, sides, field, turn number,
// request queue, event log, id allocator, and the data store reference.
// It is single-threaded and synchronous; Mu exists only to turn accidental
// concurrent access from two goroutines into a clear engine error instead
// of a data race, per the concurrency model — it is not a concurrency
// feature.
type Battle struct {
	Mu sync.Mutex

	// ID is a random correlation id for this battle instance, useful for
	// tying log lines from an embedder's own request tracing back to one
	// battle (mirrors a web server's per-session correlation id).
	ID string

	Format  FormatDescriptor
	Options Options
	RNG     dice.Source
	Data    DataStore

	Sides []*Side
	Field *Field

	Turn int

	Log []LogEntry

	nextID int

	Failed    bool
	FailError error

	// outstanding tracks which (side, player) pairs have unanswered
	// requests; the engine refuses further progress while non-empty.
	outstanding map[requestKey]bool
	pendingKind RequestKind

	scheduled []scheduledAction
}

type requestKey struct {
	Side   int
	Player int
}

// NewBattle constructs an empty battle shell; callers add sides/players via
// AddSide/AddPlayer before calling Start.
func NewBattle(format FormatDescriptor, data DataStore, seed uint64, opts Options) *Battle {
	return &Battle{
		ID:          uuid.NewString(),
		Format:      format,
		Options:     opts,
		RNG:         dice.NewSplitMix64Source(seed),
		Data:        data,
		Field:       NewField(),
		outstanding: make(map[requestKey]bool),
	}
}

// AddSide appends a new side and returns it.
func (b *Battle) AddSide() *Side {
	s := NewSide(len(b.Sides))
	b.Sides = append(b.Sides, s)
	return s
}

// allocID returns a fresh monotonically increasing id.
func (b *Battle) allocID() int {
	b.nextID++
	return b.nextID
}

// fail marks the battle as permanently failed due to an engine invariant
// violation or data error; no further progress is permitted afterward.
func (b *Battle) fail(err error) error {
	b.Failed = true
	b.FailError = err
	return err
}

// checkNotFailed returns the recorded failure as an error if the battle has
// already failed, nil otherwise. Every mutating entry point calls this
// first.
func (b *Battle) checkNotFailed() error {
	if b.Failed {
		return rpgerr.Wrap(b.FailError, "battle has failed and cannot proceed")
	}
	return nil
}

// Winner returns the winning side's id and true, or (-1, false) if the
// battle has not concluded.
func (b *Battle) Winner() (int, bool) {
	remaining := -1
	count := 0
	for _, s := range b.Sides {
		if !s.Won() {
			remaining = s.ID
			count++
		}
	}
	if count == 1 {
		return remaining, true
	}
	return -1, false
}

// CreatureAt resolves a CreatureID to whichever creature currently occupies
// that active slot, or nil if the slot is empty or the indices are stale.
// Exported for effect callback packages that hold a CreatureID (e.g. an
// effect's Source) and need to resolve it at fire time. Because a
// CreatureID names an active slot rather than a specific creature, an
// effect's Source backref automatically follows a replacement that
// switches into the same slot (the Leech Seed "heal the new occupant"
// behavior), rather than chasing the original creature onto the bench.
func (b *Battle) CreatureAt(id CreatureID) *Creature {
	return b.creatureAt(id)
}

// creatureAt resolves a CreatureID to the current occupant of that active
// slot, or nil if the slot is empty or the indices are stale.
func (b *Battle) creatureAt(id CreatureID) *Creature {
	if id.Side < 0 || id.Side >= len(b.Sides) {
		return nil
	}
	side := b.Sides[id.Side]
	if id.Player < 0 || id.Player >= len(side.Players) {
		return nil
	}
	player := side.Players[id.Player]
	if id.Slot < 0 || id.Slot >= len(player.ActiveSlots) {
		return nil
	}
	return player.ActiveSlots[id.Slot].Occupant
}
