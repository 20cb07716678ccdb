package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// AppTheme tightens the default theme and colors the progress states
type AppTheme struct {
	base fyne.Theme
}

// NewAppTheme creates the application theme
func NewAppTheme() fyne.Theme {
	return &AppTheme{base: theme.DefaultTheme()}
}

var themeColors = map[fyne.ThemeColorName]color.Color{
	theme.ColorNameSuccess: color.RGBA{R: 30, G: 185, B: 84, A: 255},
	theme.ColorNameError:   color.RGBA{R: 198, G: 40, B: 40, A: 255},
	theme.ColorNameWarning: color.RGBA{R: 245, G: 166, B: 35, A: 255},
	theme.ColorNamePrimary: color.RGBA{R: 211, G: 47, B: 47, A: 255},
}

var themeSizes = map[fyne.ThemeSizeName]float32{
	theme.SizeNamePadding:        3,
	theme.SizeNameInnerPadding:   6,
	theme.SizeNameLineSpacing:    2,
	theme.SizeNameText:           13,
	theme.SizeNameHeadingText:    17,
	theme.SizeNameSubHeadingText: 14,
	theme.SizeNameCaptionText:    10,
	theme.SizeNameInputRadius:    3,
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := themeColors[name]; ok {
		return c
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := themeSizes[name]; ok {
		return s
	}
	return t.base.Size(name)
}
