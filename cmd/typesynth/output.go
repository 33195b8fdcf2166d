package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"typesynth/internal/diagnostic"
)

// printDiagnostics writes one line per diagnostic in vet style with the
// severity in front.
func printDiagnostics(w io.Writer, diags []diagnostic.Diagnostic, useColor bool) {
	for _, d := range diags {
		sev := color.New(severityAttrs(d.Severity)...)
		hint := color.New(color.Faint)

		if useColor {
			sev.EnableColor()
			hint.EnableColor()
		} else {
			sev.DisableColor()
			hint.DisableColor()
		}

		loc := d.Pos.String()
		if !d.Pos.IsValid() {
			loc = d.Target
		}

		fmt.Fprintf(w, "%s: %s: %s [%s]", loc, sev.Sprint(d.Severity), d.Message, d.Code)

		if len(d.Suggestions) > 0 {
			hint.Fprintf(w, " (did you mean %s?)", strings.Join(d.Suggestions, ", "))
		}

		fmt.Fprintln(w)
	}
}

func severityAttrs(s diagnostic.Severity) []color.Attribute {
	switch s {
	case diagnostic.SeverityError:
		return []color.Attribute{color.FgRed, color.Bold}
	case diagnostic.SeverityWarning:
		return []color.Attribute{color.FgYellow, color.Bold}
	default:
		return []color.Attribute{color.FgCyan}
	}
}
