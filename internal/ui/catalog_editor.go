package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
)

// ─── Price Catalog Dialog ──────────────────────────────────

// showCatalogDialog edits a working copy of the price table. Nothing is
// applied until Save, which validates the table first.
func (a *App) showCatalogDialog() {
	working := a.catalog.Clone()
	priceList := container.NewVBox()
	var refreshList func()

	cutRateEntry := widget.NewEntry()
	minimumEntry := widget.NewEntry()
	syncRates := func() {
		cutRateEntry.SetText(strconv.FormatFloat(working.CostPerSecondCutting, 'f', -1, 64))
		minimumEntry.SetText(strconv.FormatFloat(working.MinimumPartCost, 'f', -1, 64))
	}
	cutRateEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			working.CostPerSecondCutting = v
		}
	}
	minimumEntry.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			working.MinimumPartCost = v
		}
	}

	refreshList = func() {
		priceList.RemoveAll()
		bold := fyne.TextStyle{Bold: true}
		priceList.Add(container.NewGridWithColumns(6,
			widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("Thickness", fyne.TextAlignLeading, bold),
			widget.NewLabelWithStyle("$ / sq in", fyne.TextAlignTrailing, bold),
			widget.NewLabelWithStyle("Cut speed (in/s)", fyne.TextAlignTrailing, bold),
			widget.NewLabel(""),
			widget.NewLabel(""),
		))
		priceList.Add(widget.NewSeparator())

		for _, m := range working.Materials {
			for _, th := range m.Thicknesses {
				material, thickness := m.ID, th.ID
				pm, priced := working.Lookup(material, thickness)
				price, speed := "not priced", ""
				if priced {
					price = fmt.Sprintf("%.4f", pm.CostPerSqInch)
					speed = fmt.Sprintf("%.1f", pm.CutSpeedInPerSec)
				}
				remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					working.RemovePrice(material, thickness)
					refreshList()
				})
				if !priced {
					remove.Disable()
				}
				priceList.Add(container.NewGridWithColumns(6,
					widget.NewLabel(m.Name),
					widget.NewLabel(th.Label),
					widget.NewLabelWithStyle(price, fyne.TextAlignTrailing, fyne.TextStyle{}),
					widget.NewLabelWithStyle(speed, fyne.TextAlignTrailing, fyne.TextStyle{}),
					widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
						a.showEditPriceDialog(&working, material, thickness, refreshList)
					}),
					remove,
				))
			}
		}
		priceList.Refresh()
	}
	syncRates()
	refreshList()

	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.openFileDialog(func(path string) {
			imported, err := project.ImportCatalog(path)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			working = imported
			syncRates()
			refreshList()
		})
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		snapshot := working.Clone()
		a.saveFileDialog("catalog.json", func(path string) error {
			return project.ExportCatalog(path, snapshot)
		})
	})
	resetBtn := widget.NewButtonWithIcon("Reset to Defaults", theme.ViewRefreshIcon(), func() {
		working = model.DefaultCatalog()
		syncRates()
		refreshList()
	})

	rates := container.NewGridWithColumns(4,
		widget.NewLabel("Cutting $/s"), cutRateEntry,
		widget.NewLabel("Minimum part $"), minimumEntry,
	)
	toolbar := container.NewHBox(resetBtn, layout.NewSpacer(), importBtn, exportBtn)

	content := container.NewBorder(
		container.NewVBox(toolbar, rates),
		nil, nil, nil,
		container.NewVScroll(priceList),
	)

	d := dialog.NewCustomConfirm("Price Catalog", "Save", "Cancel", content, func(ok bool) {
		if !ok {
			return
		}
		if err := a.saveCatalog(working); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.setCatalog(working)
	}, a.window)
	d.Resize(fyne.NewSize(760, 540))
	d.Show()
}

// showEditPriceDialog sets the price model of one material and thickness.
func (a *App) showEditPriceDialog(c *model.Catalog, material, thickness string, onDone func()) {
	pm, _ := c.Lookup(material, thickness)

	priceEntry := widget.NewEntry()
	priceEntry.SetText(strconv.FormatFloat(pm.CostPerSqInch, 'f', -1, 64))
	speedEntry := widget.NewEntry()
	speedEntry.SetText(strconv.FormatFloat(pm.CutSpeedInPerSec, 'f', -1, 64))

	title := fmt.Sprintf("%s, %s", c.MaterialName(material), c.ThicknessLabel(material, thickness))
	form := dialog.NewForm(title, "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Material cost ($ / sq in)", priceEntry),
			widget.NewFormItem("Cut speed (in / s)", speedEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			price, err1 := strconv.ParseFloat(priceEntry.Text, 64)
			speed, err2 := strconv.ParseFloat(speedEntry.Text, 64)
			if err1 != nil || err2 != nil || price <= 0 || speed <= 0 {
				dialog.ShowError(fmt.Errorf("cost and cut speed must be numbers greater than 0"), a.window)
				return
			}
			c.SetPrice(material, thickness, model.PriceModel{CostPerSqInch: price, CutSpeedInPerSec: speed})
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(420, 220))
	form.Show()
}

// catalogFile is where the active price table is stored.
func (a *App) catalogFile() (string, error) {
	if a.config.CatalogPath != "" {
		return a.config.CatalogPath, nil
	}
	return project.DefaultCatalogPath()
}

// saveCatalog validates and persists a price table.
func (a *App) saveCatalog(c model.Catalog) error {
	path, err := a.catalogFile()
	if err != nil {
		return err
	}
	return project.SaveCatalog(path, c)
}
