package data

import (
	"github.com/jackson-nestelroad/battlecore/battle"
	"github.com/jackson-nestelroad/battlecore/effects/abilities"
	"github.com/jackson-nestelroad/battlecore/effects/items"
	"github.com/jackson-nestelroad/battlecore/effects/moves"
	"github.com/jackson-nestelroad/battlecore/effects/statuses"
)

// typeOverride is one cell of the type chart that deviates from the
// neutral x1 default.
type typeOverride struct {
	Attacker, Defender battle.Type
	Num                int // numerator over 2: 0, 1, 2, or 4
}

// classicChart lists the well-known non-neutral matchups for the 17
// non-Fairy types (this engine's Type enum predates Fairy, matching
// hiddenPowerOrder's 16-type span). Anything not listed here defaults to
// neutral (x1) in NewClassicTypeChart.
var classicChart = []typeOverride{
	{battle.TypeNormal, battle.TypeRock, 1}, {battle.TypeNormal, battle.TypeGhost, 0},
	{battle.TypeFighting, battle.TypeFlying, 1}, {battle.TypeFighting, battle.TypePoison, 1},
	{battle.TypeFighting, battle.TypeRock, 4}, {battle.TypeFighting, battle.TypeBug, 1},
	{battle.TypeFighting, battle.TypeGhost, 0}, {battle.TypeFighting, battle.TypeSteel, 4},
	{battle.TypeFighting, battle.TypePsychic, 1}, {battle.TypeFighting, battle.TypeIce, 4},
	{battle.TypeFighting, battle.TypeDark, 4},
	{battle.TypeFlying, battle.TypeFighting, 4}, {battle.TypeFlying, battle.TypeRock, 1},
	{battle.TypeFlying, battle.TypeBug, 4}, {battle.TypeFlying, battle.TypeSteel, 1},
	{battle.TypeFlying, battle.TypeGrass, 4}, {battle.TypeFlying, battle.TypeElectric, 1},
	{battle.TypeFlying, battle.TypeRock, 1},
	{battle.TypePoison, battle.TypePoison, 1}, {battle.TypePoison, battle.TypeGround, 1},
	{battle.TypePoison, battle.TypeRock, 1}, {battle.TypePoison, battle.TypeGhost, 1},
	{battle.TypePoison, battle.TypeSteel, 0}, {battle.TypePoison, battle.TypeGrass, 4},
	{battle.TypeGround, battle.TypeFlying, 0}, {battle.TypeGround, battle.TypePoison, 4},
	{battle.TypeGround, battle.TypeRock, 4}, {battle.TypeGround, battle.TypeBug, 1},
	{battle.TypeGround, battle.TypeSteel, 4}, {battle.TypeGround, battle.TypeFire, 4},
	{battle.TypeGround, battle.TypeGrass, 1}, {battle.TypeGround, battle.TypeElectric, 4},
	{battle.TypeRock, battle.TypeFighting, 1}, {battle.TypeRock, battle.TypeFlying, 4},
	{battle.TypeRock, battle.TypeGround, 1}, {battle.TypeRock, battle.TypeSteel, 1},
	{battle.TypeRock, battle.TypeFire, 4}, {battle.TypeRock, battle.TypeIce, 4},
	{battle.TypeBug, battle.TypeFighting, 1}, {battle.TypeBug, battle.TypeFlying, 1},
	{battle.TypeBug, battle.TypeGhost, 1}, {battle.TypeBug, battle.TypeSteel, 1},
	{battle.TypeBug, battle.TypeFire, 1}, {battle.TypeBug, battle.TypeGrass, 4},
	{battle.TypeBug, battle.TypePsychic, 4}, {battle.TypeBug, battle.TypeDark, 4},
	{battle.TypeGhost, battle.TypeNormal, 0}, {battle.TypeGhost, battle.TypeGhost, 4},
	{battle.TypeGhost, battle.TypeDark, 1},
	{battle.TypeSteel, battle.TypeRock, 4}, {battle.TypeSteel, battle.TypeSteel, 1},
	{battle.TypeSteel, battle.TypeFire, 1}, {battle.TypeSteel, battle.TypeWater, 1},
	{battle.TypeSteel, battle.TypeElectric, 1}, {battle.TypeSteel, battle.TypeIce, 4},
	{battle.TypeFire, battle.TypeRock, 1}, {battle.TypeFire, battle.TypeBug, 4},
	{battle.TypeFire, battle.TypeSteel, 4}, {battle.TypeFire, battle.TypeFire, 1},
	{battle.TypeFire, battle.TypeWater, 1}, {battle.TypeFire, battle.TypeGrass, 4},
	{battle.TypeFire, battle.TypeIce, 4}, {battle.TypeFire, battle.TypeDragon, 1},
	{battle.TypeWater, battle.TypeGround, 4}, {battle.TypeWater, battle.TypeRock, 4},
	{battle.TypeWater, battle.TypeFire, 4}, {battle.TypeWater, battle.TypeWater, 1},
	{battle.TypeWater, battle.TypeGrass, 1}, {battle.TypeWater, battle.TypeDragon, 1},
	{battle.TypeGrass, battle.TypeFlying, 1}, {battle.TypeGrass, battle.TypePoison, 1},
	{battle.TypeGrass, battle.TypeGround, 4}, {battle.TypeGrass, battle.TypeRock, 4},
	{battle.TypeGrass, battle.TypeBug, 1}, {battle.TypeGrass, battle.TypeSteel, 1},
	{battle.TypeGrass, battle.TypeFire, 1}, {battle.TypeGrass, battle.TypeWater, 4},
	{battle.TypeGrass, battle.TypeGrass, 1}, {battle.TypeGrass, battle.TypeDragon, 1},
	{battle.TypeElectric, battle.TypeFlying, 4}, {battle.TypeElectric, battle.TypeGround, 0},
	{battle.TypeElectric, battle.TypeWater, 4}, {battle.TypeElectric, battle.TypeGrass, 1},
	{battle.TypeElectric, battle.TypeElectric, 1}, {battle.TypeElectric, battle.TypeDragon, 1},
	{battle.TypePsychic, battle.TypeFighting, 4}, {battle.TypePsychic, battle.TypePoison, 4},
	{battle.TypePsychic, battle.TypeSteel, 1}, {battle.TypePsychic, battle.TypePsychic, 1},
	{battle.TypePsychic, battle.TypeDark, 0},
	{battle.TypeIce, battle.TypeFlying, 4}, {battle.TypeIce, battle.TypeGround, 4},
	{battle.TypeIce, battle.TypeSteel, 1}, {battle.TypeIce, battle.TypeFire, 1},
	{battle.TypeIce, battle.TypeWater, 1}, {battle.TypeIce, battle.TypeGrass, 4},
	{battle.TypeIce, battle.TypeIce, 1}, {battle.TypeIce, battle.TypeDragon, 4},
	{battle.TypeDragon, battle.TypeSteel, 1}, {battle.TypeDragon, battle.TypeDragon, 4},
	{battle.TypeDark, battle.TypeFighting, 1}, {battle.TypeDark, battle.TypeGhost, 4},
	{battle.TypeDark, battle.TypePsychic, 4}, {battle.TypeDark, battle.TypeDark, 1},
}

// NewClassicTypeChart builds a 17x17 chart from classicChart, defaulting
// every unlisted cell to neutral (x1).
func NewClassicTypeChart() *battle.TypeChart {
	const n = 17
	eff := make([][]int, n)
	for i := range eff {
		eff[i] = make([]int, n)
		for j := range eff[i] {
			eff[i][j] = 2
		}
	}
	for _, o := range classicChart {
		eff[o.Attacker][o.Defender] = o.Num
	}
	return &battle.TypeChart{Effectiveness: eff}
}

// NewFixtureStore returns a MemoryStore populated with the species, moves,
// abilities, items, statuses, and type chart needed to drive the engine's
// own end-to-end scenario tests. It is not a production Pokédex — just
// enough real data to exercise every pipeline stage.
func NewFixtureStore() *MemoryStore {
	s := NewMemoryStore()
	s.SetTypeChart(NewClassicTypeChart())

	s.RegisterSpecies(&battle.SpeciesData{
		ID: "venomoth", Name: "Venomoth",
		BaseStats: battle.StatTable{70, 65, 60, 90, 75, 90},
		Types:     []battle.Type{battle.TypeBug, battle.TypePoison},
		Abilities: []string{"shielddust"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "charizard", Name: "Charizard",
		BaseStats: battle.StatTable{78, 84, 78, 109, 85, 100},
		Types:     []battle.Type{battle.TypeFire, battle.TypeFlying},
		Abilities: []string{"blaze"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "eevee", Name: "Eevee",
		BaseStats: battle.StatTable{55, 55, 50, 45, 65, 55},
		Types:     []battle.Type{battle.TypeNormal},
		Abilities: []string{"runaway"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "exeggcute", Name: "Exeggcute",
		BaseStats: battle.StatTable{60, 40, 80, 60, 45, 40},
		Types:     []battle.Type{battle.TypeGrass, battle.TypePsychic},
		Abilities: []string{"chlorophyll"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "venusaur", Name: "Venusaur",
		BaseStats: battle.StatTable{80, 82, 83, 100, 100, 80},
		Types:     []battle.Type{battle.TypeGrass, battle.TypePoison},
		Abilities: []string{"overgrow"},

		GigantamaxName:     "Venusaur-Gmax",
		GigantamaxMoveName: "G-Max Vine Lash",
		GigantamaxMoveType: battle.TypeGrass,
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "ivysaur", Name: "Ivysaur",
		BaseStats: battle.StatTable{60, 62, 63, 80, 80, 60},
		Types:     []battle.Type{battle.TypeGrass, battle.TypePoison},
		Abilities: []string{"overgrow"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "swampert", Name: "Swampert",
		BaseStats: battle.StatTable{100, 110, 90, 85, 90, 60},
		Types:     []battle.Type{battle.TypeWater, battle.TypeGround},
		Abilities: []string{"torrent"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "porygonz", Name: "Porygon-Z",
		BaseStats: battle.StatTable{85, 80, 70, 135, 75, 90},
		Types:     []battle.Type{battle.TypeNormal},
		Abilities: []string{"adaptability"},
	})
	s.RegisterSpecies(&battle.SpeciesData{
		ID: "deoxysspeed", Name: "Deoxys-Speed",
		BaseStats: battle.StatTable{50, 95, 90, 95, 90, 180},
		Types:     []battle.Type{battle.TypePsychic},
		Abilities: []string{"pressure"},
	})

	for _, m := range moves.All {
		s.RegisterMove(m)
	}
	for _, a := range abilities.All {
		s.RegisterAbility(a)
	}
	for _, it := range items.All {
		s.RegisterItem(it)
	}
	for _, st := range statuses.All {
		s.RegisterStatus(st)
	}
	for _, v := range statuses.Volatiles {
		s.RegisterStatus(v)
	}
	s.RegisterStatus(statuses.TrickRoomRoom)

	s.RegisterLevelingCurve("medium-fast", func(level int) int { return level * level * level })

	s.RegisterFormatRule(&battle.FormatRuleData{ID: "singles", Name: "Singles"})

	return s
}
