package render

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the colour scheme of the terminal interface
type TUITheme struct {
	Name        string
	Description string

	// Surfaces
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accents: Primary for the brand and focus, Secondary for user bubbles
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Notification colours
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

var tuiThemes = map[string]TUITheme{
	"tokyonight": {
		Name:        "tokyonight",
		Description: "Tokyo Night, dark with blue accents",
		Background:  lipgloss.Color("#1a1b26"),
		Surface:     lipgloss.Color("#24283b"),
		Border:      lipgloss.Color("#414868"),
		Primary:     lipgloss.Color("#7aa2f7"),
		Secondary:   lipgloss.Color("#2ac3de"),
		Accent:      lipgloss.Color("#bb9af7"),
		Success:     lipgloss.Color("#9ece6a"),
		Warning:     lipgloss.Color("#e0af68"),
		Error:       lipgloss.Color("#f7768e"),
		Text:        lipgloss.Color("#c0caf5"),
		TextDim:     lipgloss.Color("#565f89"),
	},
	"catppuccin": {
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, warm pastels",
		Background:  lipgloss.Color("#1e1e2e"),
		Surface:     lipgloss.Color("#313244"),
		Border:      lipgloss.Color("#45475a"),
		Primary:     lipgloss.Color("#89b4fa"),
		Secondary:   lipgloss.Color("#74c7ec"),
		Accent:      lipgloss.Color("#cba6f7"),
		Success:     lipgloss.Color("#a6e3a1"),
		Warning:     lipgloss.Color("#f9e2af"),
		Error:       lipgloss.Color("#f38ba8"),
		Text:        lipgloss.Color("#cdd6f4"),
		TextDim:     lipgloss.Color("#6c7086"),
	},
	"nord": {
		Name:        "nord",
		Description: "Nord, cool arctic tones",
		Background:  lipgloss.Color("#2e3440"),
		Surface:     lipgloss.Color("#3b4252"),
		Border:      lipgloss.Color("#4c566a"),
		Primary:     lipgloss.Color("#88c0d0"),
		Secondary:   lipgloss.Color("#81a1c1"),
		Accent:      lipgloss.Color("#b48ead"),
		Success:     lipgloss.Color("#a3be8c"),
		Warning:     lipgloss.Color("#ebcb8b"),
		Error:       lipgloss.Color("#bf616a"),
		Text:        lipgloss.Color("#eceff4"),
		TextDim:     lipgloss.Color("#7b88a1"),
	},
	"light": {
		Name:        "light",
		Description: "Light background with slate accents",
		Background:  lipgloss.Color("#ffffff"),
		Surface:     lipgloss.Color("#f1f5f9"),
		Border:      lipgloss.Color("#cbd5e1"),
		Primary:     lipgloss.Color("#0f172a"),
		Secondary:   lipgloss.Color("#2563eb"),
		Accent:      lipgloss.Color("#7c3aed"),
		Success:     lipgloss.Color("#16a34a"),
		Warning:     lipgloss.Color("#ca8a04"),
		Error:       lipgloss.Color("#dc2626"),
		Text:        lipgloss.Color("#0f172a"),
		TextDim:     lipgloss.Color("#64748b"),
	},
}

// DefaultTUITheme names the theme used when none is configured
const DefaultTUITheme = "tokyonight"

var (
	themeMu      sync.RWMutex
	currentTheme = tuiThemes[DefaultTUITheme]
)

// GetTUITheme returns the active TUI theme
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTUITheme activates the theme with the given name; unknown names are ignored
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// GetTUIThemeByName looks up a theme
func GetTUIThemeByName(name string) (TUITheme, bool) {
	theme, ok := tuiThemes[name]
	return theme, ok
}

// TUIThemeNames returns the theme names in alphabetical order
func TUIThemeNames() []string {
	names := make([]string, 0, len(tuiThemes))
	for name := range tuiThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
