// Package sorted verifies that enumerated alternatives are declared in
// case-insensitive alphabetical order.
//
// A const block opts in with the //typesynth:sorted directive in its doc
// comment. Only the first violation of a block is reported and the source is
// never rewritten.
//
//	//typesynth:sorted
//	const (
//		Alpha = iota
//		Beta
//		Gamma
//	)
package sorted
