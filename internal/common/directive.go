package common

import (
	"go/ast"
	"strings"
)

// DirectivePrefix is the namespace of typesynth comment directives.
const DirectivePrefix = "//typesynth:"

// Directive looks for "//typesynth:<name>" in a comment group and returns the
// text that follows the name. Like //go: directives there is no space after
// the slashes.
func Directive(cg *ast.CommentGroup, name string) (string, bool) {
	if cg == nil {
		return "", false
	}

	want := DirectivePrefix + name
	for _, c := range cg.List {
		rest, ok := strings.CutPrefix(c.Text, want)
		if !ok {
			continue
		}

		if rest == "" {
			return "", true
		}

		if rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest), true
		}
	}

	return "", false
}
