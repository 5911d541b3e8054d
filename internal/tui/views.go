package tui

import (
	"fmt"
	"strings"

	"basejump/internal/numeral"
	"basejump/internal/session"
)

func renderWelcome(snap session.Snapshot) string {
	bases := make([]string, len(snap.OutputBases))
	for i, base := range snap.OutputBases {
		bases[i] = fmt.Sprintf("%d", base)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Welcome to basejump.") + "\n")
	b.WriteString(fmt.Sprintf("Input base: %d\n", snap.InputBase))
	b.WriteString(fmt.Sprintf("Output bases: %s\n", strings.Join(bases, ", ")))
	b.WriteString(StatusStyle.Render("Please enter your numbers and expressions.") + "\n\n")
	return b.String()
}

// renderPrompt shows the buffers plus the live conversion of the pending
// input into every configured output base.
func renderPrompt(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Expression (base %d): %s\n", snap.InputBase, snap.Expression))
	b.WriteString(fmt.Sprintf("Input (base %d): %s\n", snap.InputBase, snap.Input))

	value := snap.InputValue()
	for _, base := range snap.OutputBases {
		b.WriteString(fmt.Sprintf("Base %d: %s\n", base, numeral.Encode(value, base)))
	}
	return b.String()
}

func renderResult(snap session.Snapshot) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Expression (base %d): %s\n", snap.InputBase, snap.LastExpression))
	b.WriteString(ResultStyle.Render(fmt.Sprintf("Result (base %d): %s",
		snap.InputBase, numeral.Encode(snap.Result, snap.InputBase))) + "\n")
	for _, base := range snap.OutputBases {
		b.WriteString(fmt.Sprintf("Base %d: %s\n", base, numeral.Encode(snap.Result, base)))
	}
	return b.String()
}

// renderHistory lists every recorded evaluation in insertion order, each
// rendered with the base it was recorded under, not the current base.
func renderHistory(snap session.Snapshot) string {
	var b strings.Builder
	for _, entry := range snap.History {
		b.WriteString(fmt.Sprintf("Expression (base %d): %s\n", entry.Base, entry.Expression))
		b.WriteString(fmt.Sprintf("Result (base %d): %s\n", entry.Base, numeral.Encode(entry.Result, entry.Base)))
	}
	return b.String()
}
