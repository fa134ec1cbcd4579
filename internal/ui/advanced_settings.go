package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// showCutSettingsDialog edits the machine settings used for cutting programs.
// Changes apply when saved.
func (a *App) showCutSettingsDialog() {
	s := a.config.Cutting

	floatEntry := func(val *float64, format string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf(format, *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil && v >= 0 {
				*val = v
			}
		}
		return e
	}
	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(strconv.Itoa(*val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil && v > 0 {
				*val = v
			}
		}
		return e
	}

	profileSelect := widget.NewSelect(model.GetProfileNames(), func(selected string) {
		s.GCodeProfile = selected
	})
	profileSelect.SetSelected(model.GetProfile(s.GCodeProfile).Name)
	manageProfileBtn := widget.NewButtonWithIcon("Manage", theme.SettingsIcon(), func() {
		a.showProfileManager(func() {
			profileSelect.SetOptions(model.GetProfileNames())
			profileSelect.SetSelected(model.GetProfile(s.GCodeProfile).Name)
		})
	})

	profileSection := widget.NewCard("Controller", "Post-processor used for cutting programs",
		container.NewGridWithColumns(2,
			widget.NewLabel("Active Profile"), container.NewBorder(nil, nil, nil, manageProfileBtn, profileSelect),
		))

	motionSection := widget.NewCard("Motion",
		"Feed rate 0 derives the speed from the price catalog",
		container.NewGridWithColumns(2,
			widget.NewLabel("Feed Rate (in/min)"), floatEntry(&s.FeedRate, "%.0f"),
			widget.NewLabel("Arc Segments per Circle"), intEntry(&s.ArcSegments),
		))

	pierceSection := widget.NewCard("Pierce and Torch Height", "Heights apply to profiles with torch height moves",
		container.NewGridWithColumns(2,
			widget.NewLabel("Pierce Delay (s)"), floatEntry(&s.PierceDelay, "%.2f"),
			widget.NewLabel("Safe Height (in)"), floatEntry(&s.SafeHeight, "%.3f"),
			widget.NewLabel("Pierce Height (in)"), floatEntry(&s.PierceHeight, "%.3f"),
			widget.NewLabel("Cut Height (in)"), floatEntry(&s.CutHeight, "%.3f"),
		))

	clearanceSection := widget.NewCard("Clearance Check",
		"Warn when a hole leaves less material than this to the part edge",
		container.NewGridWithColumns(2,
			widget.NewLabel("Minimum Web (in)"), floatEntry(&s.MinWeb, "%.4f"),
		))

	content := container.NewVScroll(container.NewVBox(
		profileSection,
		motionSection,
		pierceSection,
		clearanceSection,
	))

	d := dialog.NewCustomConfirm("Cutting Settings", "Save", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		a.config.Cutting = s
		if err := a.saveConfig(); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save cutting settings: %w", err), a.window)
		}
	}, a.window)
	d.Resize(fyne.NewSize(560, 560))
	d.Show()
}
