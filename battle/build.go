package battle

import "github.com/jackson-nestelroad/battlecore/core"

// CreatureSpec is the plain data a caller supplies to build one team
// member; NewCreature resolves it against a DataStore into a live Creature
// with computed stats and wired ability/item effect instances.
type CreatureSpec struct {
	SpeciesID string
	Nickname  string
	Level     int
	Nature    Nature
	IVs       StatTable
	EVs       StatTable
	Gender    string
	MoveIDs   []string
	AbilityID string // empty uses the species' first listed ability
	ItemID    string // empty means no held item

	// GigantamaxFactor marks this individual as able to gigantamax when
	// dynamaxed, per species that carry SpeciesData.GigantamaxName.
	GigantamaxFactor bool
}

// NewCreature resolves spec against store into a fully-stated Creature: its
// computed stats, hidden power type, move slots, and ability/item effect
// instances, ready to be placed into a team via Battle.SetTeam.
func NewCreature(store DataStore, spec CreatureSpec) (*Creature, error) {
	species, err := store.Species(spec.SpeciesID)
	if err != nil {
		return nil, err
	}

	c := &Creature{
		SpeciesID: spec.SpeciesID,
		Species:   species,
		Nickname:  spec.Nickname,
		Level:     spec.Level,
		Nature:    spec.Nature,
		IVs:       spec.IVs,
		EVs:       spec.EVs,
		Gender:    spec.Gender,
	}
	if c.Nickname == "" {
		c.Nickname = species.Name
	}

	c.Stats = CalculateStats(species.BaseStats, spec.IVs, spec.EVs, spec.Level, spec.Nature)
	c.HiddenPowerType = CalculateHiddenPowerType(spec.IVs)
	c.MaxHP = c.Stats.Get(StatHP)
	c.HP = c.MaxHP
	c.Volatiles = make(map[string]*EffectInstance)
	c.GigantamaxFactor = spec.GigantamaxFactor

	for _, moveID := range spec.MoveIDs {
		moveData, err := store.Move(moveID)
		if err != nil {
			return nil, err
		}
		c.Moves = append(c.Moves, NewMoveSlot(moveData))
	}

	abilityID := spec.AbilityID
	if abilityID == "" && len(species.Abilities) > 0 {
		abilityID = species.Abilities[0]
	}
	if abilityID != "" {
		if def, err := store.Ability(abilityID); err == nil && def != nil {
			c.AbilityID = abilityID
			ref := core.MustNewRef(core.RefInput{Module: "battle", Type: "ability", Value: abilityID})
			c.AbilityEffect = NewEffectInstance(EffectAbility, ref, def.Callbacks)
		}
	}

	if spec.ItemID != "" {
		if def, err := store.Item(spec.ItemID); err == nil && def != nil {
			c.HeldItem = spec.ItemID
			ref := core.MustNewRef(core.RefInput{Module: "battle", Type: "item", Value: spec.ItemID})
			c.ItemEffect = NewEffectInstance(EffectItem, ref, def.Callbacks)
		}
	}

	return c, nil
}

// AddPlayer appends a new player to side, with numActive empty active
// slots, and returns it.
func (b *Battle) AddPlayer(side *Side, numActive int, externalID, displayName string, playerType PlayerType) *Player {
	p := &Player{ExternalID: externalID, DisplayName: displayName, Type: playerType}
	for i := 0; i < numActive; i++ {
		p.ActiveSlots = append(p.ActiveSlots, &ActiveSlot{Side: side.ID, Position: i})
	}
	side.Players = append(side.Players, p)
	return p
}

// SetTeam assigns team as player's roster. A creature's CreatureID is not
// stamped here: it identifies the active slot a creature occupies, and is
// assigned by SwitchIn, so an effect's Source backref naturally follows
// whichever creature now holds that slot across switches (see
// Battle.CreatureAt).
func (b *Battle) SetTeam(player *Player, team []*Creature) {
	player.Team = team
}
