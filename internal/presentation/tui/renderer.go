package tui

import (
	"github.com/charmbracelet/glamour"
)

// Render turns markdown into terminal output.
type Render func(markdown string) (string, error)

// NewRenderer returns a glamour-backed Render that wraps at width columns.
// When styled is false the markdown is returned as is, which keeps piped
// output free of escape sequences.
func NewRenderer(styled bool, width int) (Render, error) {
	if !styled {
		return func(markdown string) (string, error) { return markdown, nil }, nil
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}
