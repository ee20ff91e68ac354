package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the pvalue banner to w using the given color profile.
// With termenv.Ascii the banner is printed without colors.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{"                  _            ", "#818cf8"},
		{"  _ ____   ____ _| |_   _  ___ ", "#a78bfa"},
		{" | '_ \\ \\ / / _` | | | | |/ _ \\", "#c084fc"},
		{" | |_) \\ V / (_| | | |_| |  __/", "#e879f9"},
		{" | .__/ \\_/ \\__,_|_|\\__,_|\\___|", "#f472b6"},
		{" |_|                           ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
