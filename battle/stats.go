package battle

// CalculateStats derives a creature's current stats from base stats, IVs,
// EVs, level, and nature, per §4.7 (ported verbatim from
// original_source/battler/src/battle/calculations.rs's calculate_mon_stats
// and apply_nature_to_stats — this spec's stat formula is not given
// directly in spec.md's data model and is resolved from the original
// source as §9 instructs).
func CalculateStats(base, ivs, evs StatTable, level int, nature Nature) StatTable {
	var stats StatTable
	for s := StatHP; s <= StatSpe; s++ {
		value := 2*base.Get(s) + creatureIVStat(ivs, s) + creatureEVStat(evs, s)/4
		value = value * level / 100
		if s == StatHP {
			value += level + 10
		} else {
			value += 5
		}
		stats.Set(s, value)
	}
	return applyNature(stats, nature)
}

// creatureIVStat and creatureEVStat are split into their own one-line
// helpers so the EV path reads .EVs and the IV path reads .IVs — the
// source's helper famously reads .ivs while computing the EV contribution;
// spec.md §9 says not to reproduce that, so these two do not share a body.
func creatureIVStat(ivs StatTable, s Stat) int { return ivs.Get(s) }
func creatureEVStat(evs StatTable, s Stat) int { return evs.Get(s) }

// applyNature boosts one stat 10% and drops another 10% (ceil), leaving a
// neutral nature (boost == drop) unchanged. This deliberately does not cap
// the result at any prior maximum, matching the reference implementation's
// overflow behavior.
func applyNature(stats StatTable, nature Nature) StatTable {
	if nature.Boost == nature.Drop {
		return stats
	}
	boosted := stats.Get(nature.Boost)
	stats.Set(nature.Boost, boosted+(boosted*10)/100)

	dropped := stats.Get(nature.Drop)
	stats.Set(nature.Drop, dropped-ceilDiv(dropped*10, 100))

	return stats
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}

// CalculateHiddenPowerType ports calculate_hidden_power_type verbatim: the
// parity bit of each IV, in the fixed HP/Atk/Def/Spe/SpA/SpD order, forms a
// 6-bit weighted sum that maps (after scaling by 15/63) onto one of the 16
// non-Normal types.
func CalculateHiddenPowerType(ivs StatTable) Type {
	order := [6]Stat{StatHP, StatAtk, StatDef, StatSpe, StatSpA, StatSpD}
	hpType := 0
	weight := 1
	for _, s := range order {
		hpType += weight * (ivs.Get(s) & 1)
		weight *= 2
	}
	hpType = hpType * 15 / 63
	if hpType < 0 || hpType > 15 {
		return TypeNormal
	}
	return hiddenPowerOrder[hpType]
}
