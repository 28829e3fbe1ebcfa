// Package cli holds the presentation pieces of the interactive client:
// colored output, table-formatted listings and prompt completion.
package cli

import "github.com/fatih/color"

// Palette groups the colors used by the shell for different message kinds.
type Palette struct {
	Prompt  *color.Color
	Info    *color.Color
	Success *color.Color
	Error   *color.Color
}

// DefaultPalette returns the standard shell colors.
func DefaultPalette() *Palette {
	return &Palette{
		Prompt:  color.New(color.FgGreen),
		Info:    color.New(color.FgCyan),
		Success: color.New(color.FgGreen),
		Error:   color.New(color.FgRed),
	}
}
