// Package editor implements the validated command sink described as the
// editor façade (§4.10): a small set of tree-mutating operations, each
// passed through an optional cancellation hook and, in debug mode, a
// reentrancy check. Two decorators are provided — a trace wrapper and a
// change-detection wrapper — composed around any Editor implementation.
package editor
