// Package match provides identifier normalization, Levenshtein distance and
// "did you mean" suggestion ranking for authoring diagnostics.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankNames / Suggest: rank known names against a misspelled one
package match
