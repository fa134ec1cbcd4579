package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Brand colors. The primary matches the indigo used in exported documents.
var (
	brandPrimary = color.NRGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF}
	brandFocus   = color.NRGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0x80}
)

// SheetQuoteTheme wraps the default Fyne theme with an indigo accent and
// slightly compact sizing for the form-heavy quoting layout.
type SheetQuoteTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool
}

// NewSheetQuoteTheme creates a theme following the system light/dark preference.
func NewSheetQuoteTheme() *SheetQuoteTheme {
	return &SheetQuoteTheme{base: theme.DefaultTheme()}
}

// ThemeForSetting builds a theme from the saved "light", "dark" or "system" setting.
func ThemeForSetting(setting string) *SheetQuoteTheme {
	t := NewSheetQuoteTheme()
	t.SetSetting(setting)
	return t
}

// SetSetting pins the variant for "light" and "dark"; anything else follows the system.
func (t *SheetQuoteTheme) SetSetting(setting string) {
	switch strings.ToLower(setting) {
	case "light":
		t.variant, t.fixed = theme.VariantLight, true
	case "dark":
		t.variant, t.fixed = theme.VariantDark, true
	default:
		t.fixed = false
	}
}

func (t *SheetQuoteTheme) resolve(variant fyne.ThemeVariant) fyne.ThemeVariant {
	if t.fixed {
		return t.variant
	}
	return variant
}

// Color overrides the accent colors and delegates the rest.
func (t *SheetQuoteTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameHyperlink:
		return brandPrimary
	case theme.ColorNameFocus:
		return brandFocus
	}
	return t.base.Color(name, t.resolve(variant))
}

// Font delegates to the base theme.
func (t *SheetQuoteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *SheetQuoteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *SheetQuoteTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 22
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 7
	default:
		return t.base.Size(name)
	}
}
