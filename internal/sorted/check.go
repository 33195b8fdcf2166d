package sorted

import (
	"fmt"
	"go/token"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Variant is one named alternative in declaration order.
type Variant struct {
	Name string
	Pos  token.Pos
}

// VariantList is the ordered list of alternatives of one declaration.
type VariantList []Variant

// Names returns the variant names in declaration order.
func (l VariantList) Names() []string {
	out := make([]string, len(l))
	for i, v := range l {
		out[i] = v.Name
	}

	return out
}

// Violation is the first out-of-order variant of a list.
type Violation struct {
	// Offending is the variant that sorts before an earlier one.
	Offending Variant
	// Before is the first variant of the whole list that Offending should precede.
	Before Variant
}

// Message returns the diagnostic text, e.g. "Alpha should sort before Beta".
func (v Violation) Message() string {
	return fmt.Sprintf("%s should sort before %s", v.Offending.Name, v.Before.Name)
}

// newFolder returns a case folder. A cases.Caser keeps state between calls.
func newFolder() func(string) string {
	c := cases.Fold()

	return func(s string) string {
		return c.String(norm.NFC.String(s))
	}
}

// Check reports the first variant that is out of case-insensitive order.
//
// The empty string is the initial previous name, so the first variant is
// always accepted.
func Check(list VariantList) (Violation, bool) {
	fold := newFolder()

	folded := make([]string, len(list))
	for i, v := range list {
		folded[i] = fold(v.Name)
	}

	previous := ""

	for i, name := range folded {
		if name >= previous {
			previous = name

			continue
		}

		for j, other := range folded {
			if other > name {
				return Violation{Offending: list[i], Before: list[j]}, true
			}
		}
	}

	return Violation{}, false
}
