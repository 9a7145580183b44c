package salesdash

import (
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
)

func TestPaletteFallsBackToLight(t *testing.T) {
	palette := Palette("sepia")
	assert.Equal(t, "light", palette.Name)
	assert.Equal(t, types.ThemeWesteros, palette.ChartTheme)
	assert.Equal(t, "#ffffff", palette.Tokens["surface"])
}

func TestPaletteTokensAreCopies(t *testing.T) {
	palette := Palette(ThemeDark)
	palette.Tokens["surface"] = "red"
	assert.Equal(t, "#1f2937", Palette(ThemeDark).Tokens["surface"])
}

func TestCSSVariables(t *testing.T) {
	palette := ThemePalette{Tokens: map[string]string{
		"accent":    "#000",
		"--surface": "#fff",
		" ":         "ignored",
		"empty":     "",
	}}
	vars := palette.CSSVariables()
	assert.Equal(t, "#000", vars["--accent"])
	assert.Equal(t, "#fff", vars["--surface"])
	assert.NotContains(t, vars, "--")

	assert.Equal(t, "--accent: #000; --surface: #fff;", palette.CSSVariablesInline())
	assert.Empty(t, ThemePalette{}.CSSVariablesInline())
}
