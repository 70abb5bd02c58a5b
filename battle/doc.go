// Package battle implements the deterministic, turn-based creature-combat
// engine: state, effect registry, event bus, action scheduler, and move
// executor described by the project specification. It is deliberately one
// cohesive package — state, scheduling, and move resolution are too
// entangled to split without constant import cycles, the same choice the
// reference engine and Pokémon Showdown itself make.
//
// Species/move/ability/item/type-chart/leveling/format-rule data is
// consumed only through the DataStore interface defined in this package;
// concrete catalogues live in package data and in effects/*, which import
// battle, never the reverse.
package battle
