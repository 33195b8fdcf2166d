package common

import (
	"path"
	"regexp"
	"strings"
)

var majorVersionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// PkgAlias guesses the package name of an import path when the real name is
// not known: the last element, skipping a major version element ("/v2") and
// dropping a ".vN" suffix and a "go-" prefix. Returns "" for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if majorVersionSuffix.MatchString(base) {
		if dir := path.Dir(pkgPath); dir != "." {
			base = path.Base(dir)
		}
	}

	if i := strings.Index(base, ".v"); i > 0 {
		base = base[:i]
	}

	base = strings.TrimPrefix(base, "go-")

	return strings.ReplaceAll(base, "-", "")
}
