// Package rules implements the independent similarity heuristics that score a
// candidate image against one registered original.
//
// Each Rule declares a fixed maximum and returns a Result whose score never
// exceeds it. Rules convert every collaborator failure into a zero-score,
// not-fired result with evidence text, so one failing rule never blocks the
// others. Evaluate adds a final clamp and turns a panic into the same kind of
// sentinel result.
//
// The four built-in rules are:
//
//   - metadata (30): byte size ratio, dimension ratio and colour mode equality
//   - histogram (30): correlation of 8x8x8 joint RGB histograms
//   - template (40): normalized cross-correlation of the smaller image inside
//     the larger one
//   - keypoint (40): cross-checked Hamming matches of FAST/BRIEF features
//
// A Set keeps rules in registration order; Build assembles one from rule
// names.
package rules
