package ui

import (
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
)

// showSettingsDialog edits the application preferences and new-quote defaults.
func (a *App) showSettingsDialog() {
	cfg := a.config

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	materials := materialChoices(&a.catalog)
	thicknessSelect := widget.NewSelect(nil, func(selected string) {
		cfg.DefaultThickness = idForLabel(thicknessChoices(&a.catalog, cfg.DefaultMaterial), selected)
	})
	syncThickness := func() {
		opts := thicknessChoices(&a.catalog, cfg.DefaultMaterial)
		thicknessSelect.SetOptions(choiceLabels(opts))
		selectID(thicknessSelect, opts, cfg.DefaultThickness)
	}
	materialSelect := widget.NewSelect(choiceLabels(materials), func(selected string) {
		cfg.DefaultMaterial = idForLabel(materials, selected)
		if !a.catalog.AllowsThickness(cfg.DefaultMaterial, cfg.DefaultThickness) {
			cfg.DefaultThickness = ""
		}
		syncThickness()
	})
	selectID(materialSelect, materials, cfg.DefaultMaterial)
	syncThickness()

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText(strconv.Itoa(cfg.DefaultQuantity))
	qtyEntry.OnChanged = func(text string) {
		if v := parseQuantity(text); v > 0 {
			cfg.DefaultQuantity = v
		}
	}

	catalogEntry := widget.NewEntry()
	catalogEntry.SetText(cfg.CatalogPath)
	catalogEntry.SetPlaceHolder("~/.sheetquote/catalog.json")

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Price catalog file", catalogEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default material", materialSelect),
		widget.NewFormItem("Default thickness", thicknessSelect),
		widget.NewFormItem("Default quantity", qtyEntry),
	}

	d := dialog.NewForm("Preferences", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			catalogChanged := cfg.CatalogPath != catalogEntry.Text
			cfg.CatalogPath = catalogEntry.Text
			a.config = cfg
			a.theme.SetSetting(cfg.Theme)
			a.fyneApp.Settings().SetTheme(a.theme)
			if catalogChanged {
				catalog, err := project.ResolveCatalog(cfg.CatalogPath)
				if err != nil {
					dialog.ShowError(fmt.Errorf("failed to load price catalog: %w", err), a.window)
				}
				a.setCatalog(catalog)
			}
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 380))
	d.Show()
}

// showImportExportDialog backs up or restores preferences, prices,
// cutting profiles and part presets.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		a.saveFileDialog("sheetquote-backup.json", func(path string) error {
			return project.ExportAllData(path, a.config, a.catalog, model.CustomProfiles, a.presets.Presets)
		})
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your preferences, prices, cutting profiles and presets.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if ok {
					a.openFileDialog(a.restoreBackup)
				}
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data to a backup file,\nor restore from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Backup / Restore", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

func (a *App) restoreBackup(path string) {
	backup, err := project.ImportAllData(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.config = backup.Config
	model.CustomProfiles = backup.Profiles
	a.presets = project.PresetStore{Presets: backup.Presets}
	if err := a.saveConfig(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
		return
	}
	if err := a.saveCatalog(backup.Catalog); err != nil {
		slog.Error("failed to save imported catalog", "error", err)
	}
	a.persistCustomProfiles(a.window)
	a.persistPresets()
	a.theme.SetSetting(a.config.Theme)
	a.fyneApp.Settings().SetTheme(a.theme)
	a.setCatalog(backup.Catalog)

	slog.Info("backup restored", "path", path, "created_at", backup.CreatedAt)
	dialog.ShowInformation("Import Complete",
		fmt.Sprintf("Data restored from the backup created at %s.", backup.CreatedAt), a.window)
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveDefaultAppConfig(a.config)
}
