package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/export"
	"github.com/piwi3910/SheetQuote/internal/gcode"
	partimporter "github.com/piwi3910/SheetQuote/internal/importer"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/ui/widgets"
)

// saveFileDialog asks for a destination and hands the path to write.
func (a *App) saveFileDialog(fileName string, write func(path string) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := write(path); err != nil {
			slog.Error("export failed", "path", path, "error", err)
			dialog.ShowError(err, a.window)
			return
		}
		a.recordExport(path)
		dialog.ShowInformation("Export Complete", "Saved "+path, a.window)
	}, a.window)
	d.SetFileName(fileName)
	d.Show()
}

// openFileDialog asks for a file and hands its path to open.
func (a *App) openFileDialog(open func(path string)) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		open(path)
	}, a.window)
}

// ─── Single part exports ───────────────────────────────────

func (a *App) exportPDF() {
	if !a.quote.Result.Estimable {
		dialog.ShowInformation("No estimate", "Complete the part so it can be priced automatically first.", a.window)
		return
	}
	doc := export.NewQuoteDocument(a.partLabel(), a.quote, a.catalog)
	a.saveFileDialog(exportFileName(a.partLabel(), "pdf"), func(path string) error {
		return export.ExportQuotePDF(path, doc)
	})
}

// cutProfile returns the current part's cutting geometry or explains why there is none.
func (a *App) cutProfile() (model.CutProfile, bool) {
	profile, ok := engine.CutProfileFor(a.current.Request.Part)
	if !ok || !a.quote.Geometry.Valid {
		dialog.ShowInformation("Part incomplete", "The part geometry is not valid yet:\n\n"+issueLines(a.quote.Geometry.Issues), a.window)
		return model.CutProfile{}, false
	}
	return profile, true
}

func (a *App) showCutFileMenu() {
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Cut Profile (DXF)...", a.exportDXF),
		fyne.NewMenuItem("Cutting Program (G-code)...", a.exportGCode),
		fyne.NewMenuItem("Preview (SVG)...", a.exportSVG),
	)
	widget.ShowPopUpMenuAtRelativePosition(menu, a.window.Canvas(),
		fyne.NewPos(0, a.cutFileButton.Size().Height), a.cutFileButton)
}

func (a *App) exportDXF() {
	profile, ok := a.cutProfile()
	if !ok {
		return
	}
	a.saveFileDialog(exportFileName(a.partLabel(), "dxf"), func(path string) error {
		return export.ExportDXF(path, profile)
	})
}

func (a *App) exportSVG() {
	g := a.quote.Geometry
	if !g.Valid {
		dialog.ShowInformation("Part incomplete", "The part geometry is not valid yet:\n\n"+issueLines(g.Issues), a.window)
		return
	}
	a.saveFileDialog(exportFileName(a.partLabel(), "svg"), func(path string) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := export.WriteSVG(f, g); err != nil {
			f.Close()
			return fmt.Errorf("failed to write preview: %w", err)
		}
		return f.Close()
	})
}

// exportGCode previews the cutting program before saving it.
func (a *App) exportGCode() {
	profile, ok := a.cutProfile()
	if !ok {
		return
	}
	req := a.current.Request
	settings := a.config.Cutting
	if pm, priced := a.catalog.Lookup(req.Material, req.Thickness); priced {
		settings.FeedRate = settings.FeedRateFor(pm)
	}
	program := gcode.New(settings).Generate(profile, a.partLabel())

	content := container.NewVBox(widgets.RenderToolpathPreview(profile, program, settings.FeedRate))
	for _, warn := range gcode.FormatWebWarnings(gcode.CheckWebs(profile, settings.MinWeb)) {
		l := widget.NewLabel("⚠ " + warn)
		l.Importance = widget.WarningImportance
		content.Add(l)
	}
	content.Add(widget.NewLabel("Profile: " + model.GetProfile(settings.GCodeProfile).Name))

	d := dialog.NewCustomConfirm("Cutting Program", "Save...", "Close", content, func(save bool) {
		if !save {
			return
		}
		a.saveFileDialog(exportFileName(a.partLabel(), "nc"), func(path string) error {
			if err := os.WriteFile(path, []byte(program), 0644); err != nil {
				return fmt.Errorf("failed to write cutting program: %w", err)
			}
			return nil
		})
	}, a.window)
	d.Resize(fyne.NewSize(600, 560))
	d.Show()
}

// ─── Material comparison ──────────────────────────────────

func (a *App) compareMaterials() {
	if !a.quote.Geometry.Valid {
		dialog.ShowInformation("Part incomplete", "Enter valid part dimensions to compare materials.", a.window)
		return
	}
	rows := a.pricer.CompareMaterials(a.quote.Geometry, a.current.Request)
	if len(rows) == 0 {
		dialog.ShowInformation("Nothing to compare", "The price catalog has no priced materials.", a.window)
		return
	}

	bold := fyne.TextStyle{Bold: true}
	grid := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Material", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Thickness", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Unit price", fyne.TextAlignTrailing, bold),
		widget.NewLabelWithStyle("Total", fyne.TextAlignTrailing, bold),
	)
	req := a.current.Request
	for _, row := range rows {
		style := fyne.TextStyle{}
		if row.Key.Material == req.Material && row.Key.Thickness == req.Thickness {
			style = bold
		}
		grid.Add(widget.NewLabelWithStyle(row.MaterialName, fyne.TextAlignLeading, style))
		grid.Add(widget.NewLabelWithStyle(row.ThicknessLabel, fyne.TextAlignLeading, style))
		grid.Add(widget.NewLabelWithStyle(model.FormatCurrency(row.Result.SelectedUnitCost), fyne.TextAlignTrailing, style))
		grid.Add(widget.NewLabelWithStyle(model.FormatCurrency(row.Result.TotalCost), fyne.TextAlignTrailing, style))
	}

	label := a.partLabel()
	d := dialog.NewCustomConfirm(fmt.Sprintf("Material Comparison (qty %d)", req.Quantity), "Save as Excel...", "Close",
		container.NewVScroll(grid), func(save bool) {
			if !save {
				return
			}
			a.saveFileDialog(exportFileName(label+" comparison", "xlsx"), func(path string) error {
				return export.ExportComparisonXLSX(path, label, rows)
			})
		}, a.window)
	d.Resize(fyne.NewSize(620, 480))
	d.Show()
}

// ─── Imports ───────────────────────────────────────────────

// importPartDXF recognizes a template in a drawing and loads its dimensions.
func (a *App) importPartDXF() {
	a.openFileDialog(func(path string) {
		res := partimporter.ImportPartDXF(path)
		if !res.OK() {
			slog.Warn("DXF part not recognized", "path", path, "errors", res.Errors)
			dialog.ShowError(errors.New(strings.Join(res.Errors, "\n")), a.window)
			return
		}
		a.edit("Import DXF", func(r model.QuoteRequest) model.QuoteRequest {
			r.Part = res.Spec
			return r
		})
		a.label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		a.syncForm()
		if len(res.Warnings) > 0 {
			dialog.ShowInformation("Imported with warnings", strings.Join(res.Warnings, "\n"), a.window)
		}
	})
}

// batchQuote prices every row of a CSV or Excel file.
func (a *App) batchQuote() {
	a.openFileDialog(func(path string) {
		result := partimporter.ImportFile(path, a.catalog)
		for _, w := range result.Warnings {
			slog.Warn("batch import", "path", path, "warning", w)
		}
		if len(result.Rows) == 0 {
			msg := "No parts found in " + filepath.Base(path)
			if len(result.Errors) > 0 {
				msg += ":\n\n" + strings.Join(result.Errors, "\n")
			}
			dialog.ShowError(errors.New(msg), a.window)
			return
		}
		a.showBatchResults(result)
	})
}

func (a *App) showBatchResults(result partimporter.ImportResult) {
	quotes := a.pricer.EvaluateAll(result.Requests())
	docs := make([]export.QuoteDocument, len(quotes))
	var grandTotal float64
	for i, q := range quotes {
		docs[i] = export.NewQuoteDocument(result.Rows[i].Label, q, a.catalog)
		if q.Result.Estimable {
			grandTotal += q.Result.TotalCost
		}
	}

	var d dialog.Dialog
	bold := fyne.TextStyle{Bold: true}
	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Part", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Quantity", fyne.TextAlignTrailing, bold),
		widget.NewLabelWithStyle("Total", fyne.TextAlignTrailing, bold),
		widget.NewLabelWithStyle("Status", fyne.TextAlignLeading, bold),
		widget.NewLabel(""),
	)
	for i, q := range quotes {
		row := result.Rows[i]
		total := "-"
		if q.Result.Estimable {
			total = model.FormatCurrency(q.Result.TotalCost)
		}
		grid.Add(widget.NewLabel(row.Label))
		grid.Add(widget.NewLabelWithStyle(fmt.Sprint(q.Request.Quantity), fyne.TextAlignTrailing, fyne.TextStyle{}))
		grid.Add(widget.NewLabelWithStyle(total, fyne.TextAlignTrailing, fyne.TextStyle{}))
		grid.Add(widget.NewLabel(statusFor(q).String()))
		grid.Add(widget.NewButton("Open", func() {
			a.apply("Open "+row.Label, row.Request)
			a.label = row.Label
			a.syncForm()
			d.Hide()
		}))
	}

	content := container.NewVBox(
		widget.NewLabelWithStyle("Estimated total: "+model.FormatCurrency(grandTotal), fyne.TextAlignLeading, bold),
		grid,
	)
	if len(result.Errors) > 0 {
		errs := widget.NewLabel(strings.Join(result.Errors, "\n"))
		errs.Importance = widget.DangerImportance
		errs.Wrapping = fyne.TextWrapWord
		content.Add(widget.NewCard("Skipped rows", "", errs))
	}

	buttons := container.NewHBox(
		widget.NewButton("Export Excel...", func() {
			a.saveFileDialog("batch_quote.xlsx", func(path string) error {
				return export.ExportBatchXLSX(path, docs)
			})
		}),
		widget.NewButton("Export Labels...", func() {
			a.saveFileDialog("batch_labels.pdf", func(path string) error {
				return export.ExportLabels(path, docs)
			})
		}),
	)

	d = dialog.NewCustom(fmt.Sprintf("Batch Quote (%d parts)", len(quotes)), "Close",
		container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(content)), a.window)
	d.Resize(fyne.NewSize(760, 560))
	d.Show()
}

func issueLines(issues []model.Issue) string {
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = "• " + issue.Message()
	}
	return strings.Join(msgs, "\n")
}
