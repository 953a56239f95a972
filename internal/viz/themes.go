package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome of the live view. Bodies always keep their own
// color; a theme with Glow set paints every highlighted body in it instead
// of the body's glow color.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Border lipgloss.Color
	Chart  lipgloss.Color
	Glow   lipgloss.Color
	Alert  lipgloss.Color
}

var themes = []Theme{
	{
		Name:   "glow",
		Title:  lipgloss.Color("#ffff00"),
		Border: lipgloss.Color("#5b2a86"),
		Chart:  lipgloss.Color("#c9a0ff"),
		Alert:  lipgloss.Color("#ff5f5f"),
	},
	{
		Name:   "amethyst",
		Title:  lipgloss.Color("#b48ef0"),
		Border: lipgloss.Color("#3b2360"),
		Chart:  lipgloss.Color("#8c5fd6"),
		Glow:   lipgloss.Color("#f5e663"),
		Alert:  lipgloss.Color("#ff6b81"),
	},
	{
		Name:   "mono",
		Title:  lipgloss.Color("#e0e0e0"),
		Border: lipgloss.Color("#4a4a4a"),
		Chart:  lipgloss.Color("#9e9e9e"),
		Glow:   lipgloss.Color("#ffffff"),
		Alert:  lipgloss.Color("#d0d0d0"),
	},
}

var current = 0

// CurrentTheme returns the active theme.
func CurrentTheme() Theme {
	return themes[current]
}

// UseTheme activates the named theme and reports whether it exists.
func UseTheme(name string) bool {
	for i, t := range themes {
		if t.Name == name {
			current = i
			return true
		}
	}
	return false
}

// NextTheme advances to the following theme, wrapping at the end.
func NextTheme() Theme {
	current = (current + 1) % len(themes)
	return themes[current]
}

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// highlightColor is the fill for a highlighted body under the active theme.
func highlightColor(bodyGlow lipgloss.Color) lipgloss.Color {
	if g := CurrentTheme().Glow; g != "" {
		return g
	}
	return bodyGlow
}
