package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/project"
)

// savePresetDialog stores the current request under a name for reuse.
func (a *App) savePresetDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(a.label)
	nameEntry.SetPlaceHolder("Preset name")

	form := dialog.NewForm("Save Part Preset", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.presets.Save(nameEntry.Text, a.current.Request); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.persistPresets()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 150))
	form.Show()
}

// loadPresetDialog lists saved presets; loading one becomes a new snapshot.
func (a *App) loadPresetDialog() {
	if len(a.presets.Presets) == 0 {
		dialog.ShowInformation("No presets", "Save a part as a preset first.", a.window)
		return
	}

	var d dialog.Dialog
	list := container.NewVBox()
	var refresh func()
	refresh = func() {
		list.RemoveAll()
		for _, p := range a.presets.Presets {
			list.Add(container.NewHBox(
				widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
				widget.NewLabel(fmt.Sprintf("%s, qty %d", p.Request.Part.Template.DisplayName(), p.Request.Quantity)),
				layout.NewSpacer(),
				widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), func() {
					a.apply("Load "+p.Name, p.Request)
					a.label = p.Name
					a.syncForm()
					d.Hide()
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					a.presets.Remove(p.Name)
					a.persistPresets()
					refresh()
				}),
			))
		}
		list.Refresh()
	}
	refresh()

	d = dialog.NewCustom("Part Presets", "Close", container.NewVScroll(list), a.window)
	d.Resize(fyne.NewSize(560, 420))
	d.Show()
}

func (a *App) persistPresets() {
	path, err := project.DefaultPresetsPath()
	if err == nil {
		err = project.SavePresets(path, a.presets)
	}
	if err != nil {
		slog.Error("failed to save presets", "error", err)
		dialog.ShowError(err, a.window)
	}
}
