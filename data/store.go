// Package data provides the in-memory battle.DataStore fixture used by the
// engine's own tests and available to embedders as a reference
// implementation. It is deliberately small — a couple dozen species, moves,
// abilities, and items covering the end-to-end scenarios — since the
// production catalogue is explicitly out of scope for this module; what
// matters is that the engine consumes any conforming store.
package data

import (
	"fmt"
	"sync"

	"github.com/jackson-nestelroad/battlecore/battle"
)

// MemoryStore is a mutex-guarded, map-backed battle.DataStore, grounded on
// the teacher's feature registry's register/get pattern.
type MemoryStore struct {
	mu sync.RWMutex

	species map[string]*battle.SpeciesData
	moves   map[string]*battle.MoveData
	abilities map[string]*battle.AbilityData
	items   map[string]*battle.ItemData
	statuses map[string]*battle.StatusCondition
	formats map[string]*battle.FormatRuleData
	curves  map[string]battle.LevelingCurve
	chart   *battle.TypeChart
}

// NewMemoryStore returns an empty store; callers register entries with
// RegisterSpecies/RegisterMove/etc. before handing it to battle.NewBattle.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		species:   make(map[string]*battle.SpeciesData),
		moves:     make(map[string]*battle.MoveData),
		abilities: make(map[string]*battle.AbilityData),
		items:     make(map[string]*battle.ItemData),
		statuses:  make(map[string]*battle.StatusCondition),
		formats:   make(map[string]*battle.FormatRuleData),
		curves:    make(map[string]battle.LevelingCurve),
	}
}

func (s *MemoryStore) RegisterSpecies(d *battle.SpeciesData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.species[d.ID] = d
}

func (s *MemoryStore) RegisterMove(d *battle.MoveData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moves[d.ID] = d
}

func (s *MemoryStore) RegisterAbility(d *battle.AbilityData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abilities[d.ID] = d
}

func (s *MemoryStore) RegisterItem(d *battle.ItemData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[d.ID] = d
}

func (s *MemoryStore) RegisterStatus(d *battle.StatusCondition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[d.ID] = d
}

func (s *MemoryStore) RegisterFormatRule(d *battle.FormatRuleData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formats[d.ID] = d
}

func (s *MemoryStore) RegisterLevelingCurve(id string, curve battle.LevelingCurve) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.curves[id] = curve
}

func (s *MemoryStore) SetTypeChart(chart *battle.TypeChart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chart = chart
}

func (s *MemoryStore) Species(id string) (*battle.SpeciesData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.species[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown species %q", id)
	}
	return d, nil
}

func (s *MemoryStore) Move(id string) (*battle.MoveData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.moves[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown move %q", id)
	}
	return d, nil
}

func (s *MemoryStore) Ability(id string) (*battle.AbilityData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.abilities[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown ability %q", id)
	}
	return d, nil
}

func (s *MemoryStore) Item(id string) (*battle.ItemData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown item %q", id)
	}
	return d, nil
}

func (s *MemoryStore) Status(id string) (*battle.StatusCondition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.statuses[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown status %q", id)
	}
	return d, nil
}

func (s *MemoryStore) TypeChart() *battle.TypeChart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chart
}

func (s *MemoryStore) LevelingCurve(id string) (battle.LevelingCurve, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.curves[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown leveling curve %q", id)
	}
	return c, nil
}

func (s *MemoryStore) FormatRule(id string) (*battle.FormatRuleData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.formats[id]
	if !ok {
		return nil, fmt.Errorf("data: unknown format rule %q", id)
	}
	return d, nil
}
