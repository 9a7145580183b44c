package salesdash

import (
	"sort"
	"strings"
)

// ThemePalette carries the resolved design tokens of a theme.
type ThemePalette struct {
	Name       string
	ChartTheme string
	Tokens     map[string]string
}

var themeTokens = map[Theme]map[string]string{
	ThemeLight: {
		"background":   "#f9fafb",
		"surface":      "#ffffff",
		"surface-alt":  "#f3f4f6",
		"border":       "#e5e7eb",
		"text":         "#1f2937",
		"text-muted":   "#6b7280",
		"accent":       "#3b82f6",
		"success":      "#22c55e",
		"warning":      "#f59e0b",
		"progress-bg":  "#e5e7eb",
		"chart-grid":   "#eeeeee",
		"chart-target": "#dddddd",
	},
	ThemeDark: {
		"background":   "#111827",
		"surface":      "#1f2937",
		"surface-alt":  "#374151",
		"border":       "#374151",
		"text":         "#ffffff",
		"text-muted":   "#9ca3af",
		"accent":       "#2563eb",
		"success":      "#22c55e",
		"warning":      "#f59e0b",
		"progress-bg":  "#4b5563",
		"chart-grid":   "#444444",
		"chart-target": "#666666",
	},
}

// Palette resolves the tokens for theme.
func Palette(theme Theme) ThemePalette {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	tokens := make(map[string]string, len(themeTokens[theme]))
	for key, value := range themeTokens[theme] {
		tokens[key] = value
	}
	return ThemePalette{
		Name:       string(theme),
		ChartTheme: ChartTheme(theme),
		Tokens:     tokens,
	}
}

// CSSVariables maps each token to a custom property name ("accent" becomes
// "--accent"). Blank token names are skipped.
func (p ThemePalette) CSSVariables() map[string]string {
	if len(p.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(p.Tokens))
	for token, value := range p.Tokens {
		if prop := cssProperty(token); prop != "" {
			vars[prop] = value
		}
	}
	return vars
}

// CSSVariablesInline renders the non-empty variables as a style attribute
// value, sorted by name.
func (p ThemePalette) CSSVariablesInline() string {
	vars := p.CSSVariables()
	decls := make([]string, 0, len(vars))
	for prop, value := range vars {
		if value != "" {
			decls = append(decls, prop+": "+value+";")
		}
	}
	sort.Strings(decls)
	return strings.Join(decls, " ")
}

func cssProperty(token string) string {
	token = strings.TrimLeft(strings.TrimSpace(token), "-")
	if token == "" {
		return ""
	}
	return "--" + token
}
