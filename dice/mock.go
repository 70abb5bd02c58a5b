// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dice

import "fmt"

// FakeSource is a Source whose individual draws can be pinned by call
// index, for tests that need an exact roll sequence ("the third Range call
// returns 5") rather than a round-robin queue. Draws beyond the configured
// indices fall back to an underlying Source (zero-value SplitMix64Source
// seeded at 1, unless Fallback is set).
type FakeSource struct {
	Fallback Source

	calls   int
	at      map[int]uint64
	chances map[int]bool
}

// NewFakeSource creates an empty FakeSource. Use SetU64At/SetChanceAt to pin
// specific draws before running the code under test.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		Fallback: NewSplitMix64Source(1),
		at:       make(map[int]uint64),
		chances:  make(map[int]bool),
	}
}

// SetU64At pins the raw value returned by the call at the given index
// (0-based, counting every NextU64/Range/SampleOne/Shuffle-internal draw).
func (f *FakeSource) SetU64At(index int, value uint64) {
	f.at[index] = value
}

// SetChanceAt forces the Chance call at the given index to return the given
// result, independent of num/den.
func (f *FakeSource) SetChanceAt(index int, result bool) {
	f.chances[index] = result
}

func (f *FakeSource) NextU64() uint64 {
	idx := f.calls
	f.calls++
	if v, ok := f.at[idx]; ok {
		return v
	}
	return f.Fallback.NextU64()
}

func (f *FakeSource) Range(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("dice: invalid range [%d, %d]", lo, hi))
	}
	span := uint64(hi-lo) + 1
	return lo + int(f.NextU64()%span)
}

func (f *FakeSource) Chance(num, den int) bool {
	if den <= 0 || num < 0 || num > den {
		panic(fmt.Sprintf("dice: invalid chance %d/%d", num, den))
	}
	idx := f.calls
	f.calls++
	if result, ok := f.chances[idx]; ok {
		return result
	}
	return f.Fallback.Range(0, den-1) < num
}

func (f *FakeSource) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := f.Range(0, i)
		swap(i, j)
	}
}

func (f *FakeSource) SampleOne(n int) int {
	if n <= 0 {
		return -1
	}
	return f.Range(0, n-1)
}
