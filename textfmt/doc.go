// Package textfmt implements the line-oriented text serialization of a
// revision root described in the branch model's external interface: a
// deterministic, round-trippable dump of a family's id ranges and every
// branch instance's element map, and the parser that reconstructs a
// revision root from it.
package textfmt
