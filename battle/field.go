package battle

// Weather is the field's current weather: a kind name, the effect instance
// that applied it (for attribution and removal), and remaining turns (0
// means indefinite, as with some ability-sustained weather).
type Weather struct {
	ID             string
	Effect         *EffectInstance
	TurnsRemaining int
}

// Terrain mirrors Weather for the terrain slot.
type Terrain struct {
	ID             string
	Effect         *EffectInstance
	TurnsRemaining int
}

// Field owns whole-battle conditions: weather, terrain, and field-scoped
// pseudo-weather (room-class effects like Trick Room).
type Field struct {
	Weather *Weather
	Terrain *Terrain

	// PseudoWeather is keyed by effect id; Trick Room, Gravity, and similar
	// room-class effects live here.
	PseudoWeather map[string]*EffectInstance

	// Clauses are format-level rules active for the whole battle (sleep
	// clause, species clause, OHKO clause, ...), always gathered with
	// their declared ordering.
	Clauses []*EffectInstance
}

// NewField returns an empty Field.
func NewField() *Field {
	return &Field{PseudoWeather: make(map[string]*EffectInstance)}
}

// TrickRoomActive reports whether Trick Room's speed-order reversal is in
// effect, consulted by the scheduler's speed sort.
func (f *Field) TrickRoomActive() bool {
	_, ok := f.PseudoWeather["trickroom"]
	return ok
}
