package battle

import (
	"strconv"

	"github.com/jackson-nestelroad/battlecore/fxnum"
)

// dynamaxHPMultiplierNum/Den scales max HP while dynamaxed. The real games
// use a lookup table keyed by base HP stat; this engine applies one flat
// ratio for every species, a deliberate simplification (see DESIGN.md).
const (
	dynamaxHPMultiplierNum = 3
	dynamaxHPMultiplierDen = 2
)

// Transform applies a pre-move transformation flag queued by a "move
// ...,<flag>" choice. Only "dyna" is wired end to end; mega/ultra-burst/
// terastallize parse in the choice grammar but have no effect yet.
func (b *Battle) Transform(c *Creature, flag string) error {
	if flag == "dyna" {
		return b.dynamax(c)
	}
	return nil
}

// dynamax scales target's max HP, logs gigantamax (if its species carries a
// gigantamax form and GigantamaxFactor is set) then dynamax, per §4.5's
// pre-move transformation bucket.
func (b *Battle) dynamax(target *Creature) error {
	if target.Dynamaxed {
		return nil
	}
	if target.GigantamaxFactor && target.Species.GigantamaxName != "" {
		target.Forme = target.Species.GigantamaxName
		b.log("gigantamax", F("mon", monRef(target.ID)), F("species", target.Forme))
	}

	target.Dynamaxed = true
	target.OrigMaxHP = target.MaxHP
	newMax := int(fxnum.ModifyInt(uint32(target.MaxHP), dynamaxHPMultiplierNum, dynamaxHPMultiplierDen))
	target.HP += newMax - target.MaxHP
	target.MaxHP = newMax

	b.log("dynamax", F("mon", monRef(target.ID)), F("maxhp", strconv.Itoa(target.MaxHP)))
	return nil
}

// revertDynamax reverts dynamax (and gigantamax, if active) state, in the
// gigantamax-then-dynamax log order. Called from faint; a real game also
// reverts at the end of the declaring player's third turn, which this
// engine does not model since none of its scenarios run a dynamaxed
// creature that long without fainting.
func (b *Battle) revertDynamax(target *Creature) {
	if !target.Dynamaxed {
		return
	}
	if target.GigantamaxFactor && target.Forme != "" {
		b.log("revertgigantamax", F("mon", monRef(target.ID)))
		target.Forme = ""
	}
	b.log("revertdynamax", F("mon", monRef(target.ID)))
	target.Dynamaxed = false
	target.MaxHP = target.OrigMaxHP
	target.OrigMaxHP = 0
}

// maxMoveFor builds the Max Move (or signature Gigantamax Move) that stands
// in for move while attacker is dynamaxed: renamed, repowered off the
// standard base-power tier table, and stripped of secondary effects,
// recoil/drain, and extra hits, matching how Max Moves behave regardless of
// the move they were generated from.
func (b *Battle) maxMoveFor(attacker *Creature, move *MoveData) *MoveData {
	m := *move
	m.Name = maxMoveName(attacker, move)
	m.Power = maxMovePower(move.Power)
	m.Accuracy = 0
	m.CritRatio = 0
	m.MultiHitMin, m.MultiHitMax = 0, 0
	m.RecoilNum, m.RecoilDen = 0, 0
	m.DrainNum, m.DrainDen = 0, 0
	m.Secondaries = nil
	m.Flags = nil
	m.Callbacks = nil
	return &m
}

func maxMoveName(attacker *Creature, move *MoveData) string {
	species := attacker.Species
	if attacker.GigantamaxFactor && species.GigantamaxMoveName != "" && move.Type == species.GigantamaxMoveType {
		return species.GigantamaxMoveName
	}
	return genericMaxMoveName(move.Type)
}

// genericMaxMoveNames are the standard Max Move names, one per type.
var genericMaxMoveNames = map[Type]string{
	TypeNormal:   "Max Strike",
	TypeFighting: "Max Knuckle",
	TypeFlying:   "Max Airstream",
	TypePoison:   "Max Ooze",
	TypeGround:   "Max Quake",
	TypeRock:     "Max Rockfall",
	TypeBug:      "Max Flutterby",
	TypeGhost:    "Max Phantasm",
	TypeSteel:    "Max Steelspike",
	TypeFire:     "Max Flare",
	TypeWater:    "Max Geyser",
	TypeGrass:    "Max Overgrowth",
	TypeElectric: "Max Lightning",
	TypePsychic:  "Max Mindstorm",
	TypeIce:      "Max Hailstorm",
	TypeDragon:   "Max Wyrmwind",
	TypeDark:     "Max Darkness",
}

func genericMaxMoveName(t Type) string {
	if n, ok := genericMaxMoveNames[t]; ok {
		return n
	}
	return "Max Strike"
}

// maxMovePower converts a move's base power into its Max Move tier, per the
// standard conversion table.
func maxMovePower(base int) int {
	switch {
	case base <= 0:
		return 100
	case base <= 40:
		return 90
	case base <= 50:
		return 100
	case base <= 60:
		return 110
	case base <= 70:
		return 120
	case base <= 100:
		return 130
	case base <= 140:
		return 140
	default:
		return 150
	}
}
