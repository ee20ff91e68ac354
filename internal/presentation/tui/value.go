package tui

import (
	"github.com/muesli/termenv"

	"github.com/aretw0/pvalue/pkg/value"
)

// Palette assigns a color to each leaf kind. Null payloads of event,
// machine and model values use the KindNull entry.
var Palette = map[value.Kind]string{
	value.KindNull:    "#6b7280",
	value.KindBool:    "#f59e0b",
	value.KindInt:     "#38bdf8",
	value.KindEvent:   "#a78bfa",
	value.KindMachine: "#34d399",
	value.KindModel:   "#f472b6",
	value.KindForeign: "#fb7185",
}

// Colorize renders v like v.String() with leaves colored by kind.
// Brackets and separators stay uncolored.
func Colorize(v *value.Value, p termenv.Profile) string {
	if p == termenv.Ascii {
		return v.String()
	}
	return v.Format(func(k value.Kind, text string) string {
		c, ok := Palette[k]
		if !ok {
			return text
		}
		return termenv.String(text).Foreground(p.Color(c)).String()
	})
}
