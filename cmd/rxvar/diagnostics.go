package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"rxvar/internal/diag"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	codeColor    = color.New(color.Faint)
	subjectColor = color.New(color.Bold)
)

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

// printDiagnostics writes one line per diagnostic, followed by its notes.
func printDiagnostics(w io.Writer, bag *diag.Bag) {
	for _, d := range bag.Items() {
		line := severityColor(d.Severity).Sprint(d.Severity.String()) + " " + codeColor.Sprint("["+d.Code.ID()+"]")
		if d.Subject != "" {
			line += " " + subjectColor.Sprint(d.Subject)
		}
		fmt.Fprintf(w, "%s: %s\n", line, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  note: %s\n", n)
		}
	}
}
