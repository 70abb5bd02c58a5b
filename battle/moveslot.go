package battle

// MoveSlot is one of a creature's known moves: a reference to its data plus
// the creature-specific mutable state (remaining PP, disable status, and
// the used-this-turn flag the scheduler and choice-lock logic consult).
type MoveSlot struct {
	ID     string
	Data   *MoveData
	PP     int
	MaxPP  int

	Disabled       bool
	DisableReason  string
	UsedThisTurn   bool
}

// NewMoveSlot builds a MoveSlot at full PP from a MoveData definition.
func NewMoveSlot(data *MoveData) *MoveSlot {
	return &MoveSlot{
		ID:    data.ID,
		Data:  data,
		PP:    data.PP,
		MaxPP: data.PP,
	}
}

// Selectable reports whether this move can currently be chosen: it has PP,
// and it is not disabled.
func (m *MoveSlot) Selectable() bool {
	return m.PP > 0 && !m.Disabled
}
