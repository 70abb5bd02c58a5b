// Package dice provides the battle engine's random number source.
//
// Purpose:
// Every random decision a battle makes (accuracy checks, critical hits,
// damage rolls, secondary-effect chances, speed-tie breaks, move-target
// shuffles) goes through a single Source so that a battle can be replayed
// bit-for-bit from its seed and its log.
//
// Scope:
//   - A splittable, explicitly-seeded 64-bit generator (the production path)
//   - next_u64 / range / chance / shuffle / sample_one primitives
//   - A fake source that returns index-addressed preloaded values, for
//     pinning exact rolls in tests
//
// Non-Goals:
//   - Dice notation ("2d6+3"): this is not a tabletop dice package, it is a
//     battle RNG. There are no die faces, only integer ranges and odds.
//   - Cryptographic unpredictability: CryptoSource exists for embedders that
//     want it, but it is not the default, because it cannot be reseeded.
package dice
