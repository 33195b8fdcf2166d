// Package gen provides deterministic Go code generation for builders.
//
// Generation approach uses text/template + go/format, one file per target
// type, written next to the target's declaration.
//
// For a target T the generated file holds:
//   - TBuilder, with one option.Option slot per field
//   - NewTBuilder, which pre-populates accumulating slots with empty sequences
//   - a whole-value setter per field unless suppressed by its item setter
//   - an item setter per accumulating field
//   - Build, which fails with a construct error on the first unset field
package gen
