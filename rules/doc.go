// Package rules provides pluggable, expression-based policy hooks for the
// editor façade: a payload-property comparator used to refine the
// structural diff of §4.11 beyond plain equality, and a naming policy an
// editor can enforce on every add/alter operation. Both are backed by CEL
// (github.com/google/cel-go), compiled once and evaluated per call.
package rules
