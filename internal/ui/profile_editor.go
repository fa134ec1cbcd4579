package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/gcode"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
)

const noProfileSelected = "Select a profile to view details."

// samplePart is the coupon cut in the profile editor's program preview.
var samplePart = model.PartSpec{
	Template:     model.TemplateRectHoles,
	Width:        2,
	Height:       1,
	HoleDiameter: 0.25,
	HoleOffset:   0.25,
}

// showProfileManager opens the window where users view, create, duplicate,
// edit, delete, import and export cutting controller profiles.
func (a *App) showProfileManager(onChanged func()) {
	w := a.fyneApp.NewWindow("Cutting Profile Manager")
	w.Resize(fyne.NewSize(720, 520))

	selectedIdx := -1
	profiles := model.AllProfiles()
	detail := container.NewVBox(widget.NewLabel(noProfileSelected))

	var list *widget.List
	reload := func() {
		profiles = model.AllProfiles()
		selectedIdx = -1
		list.UnselectAll()
		list.Refresh()
		detail.RemoveAll()
		detail.Add(widget.NewLabel(noProfileSelected))
		detail.Refresh()
		if onChanged != nil {
			onChanged()
		}
	}

	list = widget.NewList(
		func() int { return len(profiles) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Profile Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			box.Objects[1].(*widget.Label).SetText(profiles[id].Name)
			tag := "(custom)"
			if profiles[id].IsBuiltIn {
				tag = "(built-in)"
			}
			box.Objects[3].(*widget.Label).SetText(tag)
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		a.showProfileDetail(detail, profiles[id], w, reload)
	}

	selected := func(action string) (model.GCodeProfile, bool) {
		if selectedIdx < 0 || selectedIdx >= len(profiles) {
			dialog.ShowInformation("No Selection", "Select a profile to "+action+".", w)
			return model.GCodeProfile{}, false
		}
		return profiles[selectedIdx], true
	}

	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		a.promptProfileName("New Custom Profile", "", w, func(name string) error {
			return model.AddCustomProfile(model.NewCustomProfile(name))
		}, reload)
	})
	duplicateBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		src, ok := selected("duplicate")
		if !ok {
			return
		}
		a.promptProfileName("Duplicate Profile", src.Name+" (Copy)", w, func(name string) error {
			dup := src
			dup.Name = name
			dup.Description = "Copy of " + src.Name
			dup.StartCode = append([]string(nil), src.StartCode...)
			dup.EndCode = append([]string(nil), src.EndCode...)
			return model.AddCustomProfile(dup)
		}, reload)
	})
	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		a.importProfileDialog(w, reload)
	})
	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		if p, ok := selected("export"); ok {
			a.exportProfileDialog(p, w)
		}
	})
	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected("delete")
		if !ok {
			return
		}
		if p.IsBuiltIn {
			dialog.ShowInformation("Cannot Delete", "Built-in profiles cannot be deleted.", w)
			return
		}
		dialog.ShowConfirm("Delete Profile", fmt.Sprintf("Delete custom profile %q?", p.Name), func(ok bool) {
			if !ok {
				return
			}
			if err := model.RemoveCustomProfile(p.Name); err != nil {
				dialog.ShowError(err, w)
				return
			}
			a.persistCustomProfiles(w)
			reload()
		}, w)
	})

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(newBtn, duplicateBtn, importBtn, exportBtn, deleteBtn),
		nil, nil,
		list,
	)
	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profile Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(detail),
	)

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.35)
	w.SetContent(split)
	w.Show()
}

// promptProfileName asks for a profile name and hands it to create.
func (a *App) promptProfileName(title, initial string, w fyne.Window, create func(name string) error, onCreated func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(initial)
	nameEntry.SetPlaceHolder("My Cutting Profile")

	form := dialog.NewForm(title, "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Profile Name", nameEntry)},
		func(ok bool) {
			if !ok {
				return
			}
			if err := create(strings.TrimSpace(nameEntry.Text)); err != nil {
				dialog.ShowError(err, w)
				return
			}
			a.persistCustomProfiles(w)
			onCreated()
		},
		w,
	)
	form.Resize(fyne.NewSize(400, 150))
	form.Show()
}

// showProfileDetail populates the detail pane with profile information and an edit button.
func (a *App) showProfileDetail(c *fyne.Container, p model.GCodeProfile, w fyne.Window, onChanged func()) {
	c.RemoveAll()

	bold := fyne.TextStyle{Bold: true}
	info := container.NewVBox(
		widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, bold),
		widget.NewLabel(p.Description),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewLabel("Units:"), widget.NewLabel(p.Units),
			widget.NewLabel("Decimal Places:"), widget.NewLabel(strconv.Itoa(p.DecimalPlaces)),
			widget.NewLabel("Torch Height Moves:"), widget.NewLabel(fmt.Sprintf("%v", p.UsesZ)),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Motion Commands", fyne.TextAlignLeading, bold),
		container.NewGridWithColumns(2,
			widget.NewLabel("Rapid Move:"), widget.NewLabel(p.RapidMove),
			widget.NewLabel("Feed Move:"), widget.NewLabel(p.FeedMove),
			widget.NewLabel("Absolute Mode:"), widget.NewLabel(p.AbsoluteMode),
		),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Beam Commands", fyne.TextAlignLeading, bold),
		container.NewGridWithColumns(2,
			widget.NewLabel("Beam On:"), widget.NewLabel(p.BeamOn),
			widget.NewLabel("Beam Off:"), widget.NewLabel(p.BeamOff),
			widget.NewLabel("Pierce Dwell:"), widget.NewLabel(p.Dwell),
		),
		widget.NewSeparator(),
		container.NewGridWithColumns(2,
			widget.NewLabel("Comment Prefix:"), widget.NewLabel(fmt.Sprintf("%q", p.CommentPrefix)),
			widget.NewLabel("Comment Suffix:"), widget.NewLabel(fmt.Sprintf("%q", p.CommentSuffix)),
		),
		widget.NewLabelWithStyle("Start Code", fyne.TextAlignLeading, bold),
		widget.NewLabel(strings.Join(p.StartCode, "\n")),
		widget.NewLabelWithStyle("End Code", fyne.TextAlignLeading, bold),
		widget.NewLabel(strings.Join(p.EndCode, "\n")),
	)

	if p.IsBuiltIn {
		c.Add(widget.NewLabel("Built-in profiles are read-only. Duplicate to customize."))
	} else {
		c.Add(widget.NewButtonWithIcon("Edit Profile", theme.DocumentCreateIcon(), func() {
			a.showEditProfileDialog(p, onChanged)
		}))
	}
	c.Add(info)
	c.Refresh()
}

// showEditProfileDialog opens a tabbed editor for a custom profile. The
// preview tab runs the real generator on a small coupon.
func (a *App) showEditProfileDialog(p model.GCodeProfile, onSaved func()) {
	editWindow := a.fyneApp.NewWindow("Edit Profile: " + p.Name)

	entry := func(text string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(text)
		return e
	}
	nameEntry := entry(p.Name)
	descEntry := entry(p.Description)
	decimalEntry := entry(strconv.Itoa(p.DecimalPlaces))
	usesZCheck := widget.NewCheck("", nil)
	usesZCheck.SetChecked(p.UsesZ)
	rapidEntry := entry(p.RapidMove)
	feedEntry := entry(p.FeedMove)
	absoluteEntry := entry(p.AbsoluteMode)
	beamOnEntry := entry(p.BeamOn)
	beamOffEntry := entry(p.BeamOff)
	dwellEntry := entry(p.Dwell)
	commentPrefixEntry := entry(p.CommentPrefix)
	commentSuffixEntry := entry(p.CommentSuffix)

	startCodeEntry := widget.NewMultiLineEntry()
	startCodeEntry.SetText(strings.Join(p.StartCode, "\n"))
	startCodeEntry.SetMinRowsVisible(4)
	endCodeEntry := widget.NewMultiLineEntry()
	endCodeEntry.SetText(strings.Join(p.EndCode, "\n"))
	endCodeEntry.SetMinRowsVisible(4)

	collect := func() (model.GCodeProfile, error) {
		name := strings.TrimSpace(nameEntry.Text)
		if name == "" {
			return model.GCodeProfile{}, fmt.Errorf("profile name cannot be empty")
		}
		decimals, err := strconv.Atoi(decimalEntry.Text)
		if err != nil || decimals < 0 || decimals > 6 {
			return model.GCodeProfile{}, fmt.Errorf("decimal places must be a number between 0 and 6")
		}
		return model.GCodeProfile{
			Name:          name,
			Description:   descEntry.Text,
			Units:         "inches",
			StartCode:     splitLines(startCodeEntry.Text),
			BeamOn:        beamOnEntry.Text,
			BeamOff:       beamOffEntry.Text,
			Dwell:         dwellEntry.Text,
			AbsoluteMode:  absoluteEntry.Text,
			RapidMove:     rapidEntry.Text,
			FeedMove:      feedEntry.Text,
			UsesZ:         usesZCheck.Checked,
			EndCode:       splitLines(endCodeEntry.Text),
			CommentPrefix: commentPrefixEntry.Text,
			CommentSuffix: commentSuffixEntry.Text,
			DecimalPlaces: decimals,
		}, nil
	}

	preview := widget.NewMultiLineEntry()
	preview.SetMinRowsVisible(12)
	preview.TextStyle = fyne.TextStyle{Monospace: true}
	updatePreview := func() {
		prof, err := collect()
		if err != nil {
			preview.SetText(err.Error())
			return
		}
		preview.SetText(profilePreview(prof, a.config.Cutting))
	}
	updatePreview()

	tabs := container.NewAppTabs(
		container.NewTabItem("General", container.NewGridWithColumns(2,
			widget.NewLabel("Name"), nameEntry,
			widget.NewLabel("Description"), descEntry,
			widget.NewLabel("Decimal Places"), decimalEntry,
			widget.NewLabel("Torch Height Moves"), usesZCheck,
		)),
		container.NewTabItem("Motion", container.NewGridWithColumns(2,
			widget.NewLabel("Rapid Move Command"), rapidEntry,
			widget.NewLabel("Feed Move Command"), feedEntry,
			widget.NewLabel("Absolute Mode"), absoluteEntry,
		)),
		container.NewTabItem("Beam", container.NewGridWithColumns(2,
			widget.NewLabel("Beam On"), beamOnEntry,
			widget.NewLabel("Beam Off"), beamOffEntry,
			widget.NewLabel("Dwell (use %.2f for seconds)"), dwellEntry,
			widget.NewLabel("Comment Prefix"), commentPrefixEntry,
			widget.NewLabel("Comment Suffix"), commentSuffixEntry,
		)),
		container.NewTabItem("Start/End Code", container.NewVBox(
			widget.NewLabelWithStyle("Start Code (one command per line)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			startCodeEntry,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("End Code (one command per line)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			endCodeEntry,
		)),
		container.NewTabItem("Preview", container.NewBorder(
			widget.NewButtonWithIcon("Refresh Preview", theme.ViewRefreshIcon(), updatePreview),
			nil, nil, nil,
			preview,
		)),
	)

	saveBtn := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		updated, err := collect()
		if err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		if err := model.AddCustomProfile(updated); err != nil {
			dialog.ShowError(err, editWindow)
			return
		}
		if updated.Name != p.Name {
			_ = model.RemoveCustomProfile(p.Name)
		}
		a.persistCustomProfiles(editWindow)
		onSaved()
		editWindow.Close()
	})
	saveBtn.Importance = widget.HighImportance

	editWindow.SetContent(container.NewBorder(
		nil,
		container.NewHBox(layout.NewSpacer(), saveBtn),
		nil, nil,
		tabs,
	))
	editWindow.Resize(fyne.NewSize(600, 500))
	editWindow.Show()
}

// profilePreview generates the sample coupon's program with a profile that
// has not been registered yet.
func profilePreview(p model.GCodeProfile, settings model.CutSettings) string {
	profile, ok := engine.CutProfileFor(samplePart)
	if !ok {
		return ""
	}
	return gcode.NewWithProfile(settings, p).Generate(profile, "Sample coupon")
}

// importProfileDialog opens a file dialog to import a profile from JSON.
func (a *App) importProfileDialog(w fyne.Window, onImported func()) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		profile, err := project.ImportProfile(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if err := model.AddCustomProfile(profile); err != nil {
			dialog.ShowError(err, w)
			return
		}
		a.persistCustomProfiles(w)
		onImported()
		dialog.ShowInformation("Import Complete", fmt.Sprintf("Profile %q imported.", profile.Name), w)
	}, w)
}

// exportProfileDialog opens a file save dialog to export a profile to JSON.
func (a *App) exportProfileDialog(p model.GCodeProfile, w fyne.Window) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()

		if err := project.ExportProfile(writer.URI().Path(), p); err != nil {
			dialog.ShowError(err, w)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Profile %q exported.", p.Name), w)
	}, w)
	d.SetFileName(strings.ReplaceAll(strings.ToLower(p.Name), " ", "_") + "_profile.json")
	d.Show()
}

// persistCustomProfiles saves the current custom profiles to disk.
func (a *App) persistCustomProfiles(w fyne.Window) {
	if err := project.SaveCustomProfilesToDefault(model.CustomProfiles); err != nil {
		dialog.ShowError(err, w)
	}
}

// splitLines splits a multiline string into trimmed, non-empty lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
