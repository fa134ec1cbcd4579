package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// refreshQuote redraws the preview and the summary panel from the latest
// evaluation and gates the export actions.
func (a *App) refreshQuote() {
	a.refreshPreview()
	if a.summary == nil {
		return
	}
	q := a.quote
	a.summary.RemoveAll()

	status := statusFor(q)
	headline := widget.NewLabelWithStyle(status.String(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	switch status {
	case statusEstimate:
		headline.Importance = widget.SuccessImportance
	case statusEstimateReview, statusManualReview:
		headline.Importance = widget.WarningImportance
	default:
		headline.Importance = widget.DangerImportance
	}
	a.summary.Add(headline)

	r := q.Result
	if r.Estimable {
		total := canvas.NewText(model.FormatCurrency(r.TotalCost), theme.Color(theme.ColorNamePrimary))
		total.TextSize = 30
		total.TextStyle = fyne.TextStyle{Bold: true}
		a.summary.Add(total)
		a.summary.Add(widget.NewLabel(fmt.Sprintf("%s each × %d", model.FormatCurrency(r.SelectedUnitCost), q.Request.Quantity)))
	}

	if lines := metricLines(q); len(lines) > 0 {
		grid := container.NewGridWithColumns(2)
		for _, l := range lines {
			grid.Add(widget.NewLabel(l.Label))
			grid.Add(widget.NewLabelWithStyle(l.Value, fyne.TextAlignTrailing, fyne.TextStyle{}))
		}
		a.summary.Add(widget.NewCard("Part", "", grid))
	}

	if len(r.Tiers) > 0 {
		a.summary.Add(widget.NewCard("Quantity pricing", "", tierTable(r)))
	}

	if issues := q.Issues(); len(issues) > 0 {
		list := container.NewVBox()
		for _, issue := range issues {
			l := widget.NewLabel("• " + issue.Message())
			l.Wrapping = fyne.TextWrapWord
			list.Add(l)
		}
		a.summary.Add(widget.NewCard("Before we can quote", "", list))
	}
	a.summary.Refresh()

	setEnabled(a.pdfButton, r.Estimable)
	setEnabled(a.cutFileButton, q.Geometry.Valid)
	setEnabled(a.compareButton, q.Geometry.Valid)
}

// tierTable lists the unit price at every quantity break, the selected tier in bold.
func tierTable(r model.QuoteResult) fyne.CanvasObject {
	bold := fyne.TextStyle{Bold: true}
	grid := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Quantity", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Discount", fyne.TextAlignLeading, bold),
		widget.NewLabelWithStyle("Unit price", fyne.TextAlignTrailing, bold),
	)
	for i, tp := range r.Tiers {
		style := fyne.TextStyle{}
		if i == r.SelectedTier {
			style = bold
		}
		grid.Add(widget.NewLabelWithStyle(tp.Tier.Range, fyne.TextAlignLeading, style))
		grid.Add(widget.NewLabelWithStyle(discountText(tp.Tier.Multiplier), fyne.TextAlignLeading, style))
		grid.Add(widget.NewLabelWithStyle(model.FormatCurrency(tp.UnitCost), fyne.TextAlignTrailing, style))
	}
	return grid
}

func setEnabled(b *ttwidget.Button, enabled bool) {
	if b == nil {
		return
	}
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}
