// Package abitui renders pipeline progress in the terminal with Bubble Tea.
//
// [GenerateTUI] wraps a [Runner] (usually a [generate.Generator]), runs it in
// the background and draws a spinner for the active stage. Finished stages
// are printed above the spinner with a check or cross mark. Log records
// written through the TUI are printed the same way.
package abitui
