package render

import (
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names accepted in configuration
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleTokyoNight = "tokyonight"
	StyleDracula    = "dracula"
	StylePink       = "pink"
	StyleASCII      = "ascii"
	StyleNoTTY      = "notty"
)

// standardStyleName maps a configured style to glamour's standard style name.
// ok is false when style is not built in and should be treated as a JSON file path.
func standardStyleName(style string) (string, bool) {
	switch style {
	case "", StyleDark:
		return styles.DarkStyle, true
	case StyleLight:
		return styles.LightStyle, true
	case StyleTokyoNight, styles.TokyoNightStyle:
		return styles.TokyoNightStyle, true
	case StyleDracula:
		return styles.DraculaStyle, true
	case StylePink:
		return styles.PinkStyle, true
	case StyleASCII:
		return styles.AsciiStyle, true
	case StyleNoTTY:
		return styles.NoTTYStyle, true
	default:
		return "", false
	}
}

// IsBuiltinStyle reports whether style names a built-in glamour style
func IsBuiltinStyle(style string) bool {
	_, ok := standardStyleName(style)
	return ok
}

// BuiltinStyles lists the style names accepted without a file path
func BuiltinStyles() []string {
	return []string{StyleDark, StyleLight, StyleTokyoNight, StyleDracula, StylePink, StyleASCII, StyleNoTTY}
}
