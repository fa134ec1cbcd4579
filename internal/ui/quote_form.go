package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
)

// quoteForm holds the input widgets of the quote panel.
type quoteForm struct {
	label     *widget.Entry
	templates map[model.Template]*templateButton

	dims         *fyne.Container
	dimTemplate  model.Template
	dimFields    []dimensionField
	dimEntries   []*widget.Entry
	noDimensions *widget.Label

	material          *widget.Select
	thickness         *widget.Select
	otherMaterial     *widget.Entry
	otherThickness    *widget.Entry
	otherMaterialRow  *fyne.Container
	otherThicknessRow *fyne.Container

	quantity      *widget.Entry
	finishing     *widget.Select
	color         *widget.Entry
	finishDesc    *widget.Entry
	colorRow      *fyne.Container
	finishDescRow *fyne.Container
	materialOpts  []choice
	thicknessOpts []choice
	finishingOpts []choice
}

func formRow(label string, input fyne.CanvasObject) *fyne.Container {
	return container.NewGridWithColumns(2, widget.NewLabel(label), input)
}

func (a *App) buildQuoteForm() fyne.CanvasObject {
	f := &a.form

	f.label = widget.NewEntry()
	f.label.SetPlaceHolder("Part name or drawing number")
	f.label.OnChanged = func(text string) {
		if !a.syncing {
			a.label = text
		}
	}

	f.templates = make(map[model.Template]*templateButton)
	templateGrid := container.NewGridWithColumns(2)
	for _, t := range model.Templates() {
		btn := newTemplateButton(t.DisplayName(), func() {
			if a.current.Request.Part.Template == t {
				return
			}
			a.edit("Choose "+t.DisplayName(), func(r model.QuoteRequest) model.QuoteRequest {
				return r.WithTemplate(t)
			})
			a.syncForm()
		}, func(hovered bool) {
			if hovered {
				a.hovered = t
			} else if a.hovered == t {
				a.hovered = model.TemplateNone
			}
			a.refreshPreview()
		})
		f.templates[t] = btn
		templateGrid.Add(btn)
	}

	f.noDimensions = widget.NewLabel("Choose a part template to enter its dimensions.")
	f.dims = container.NewVBox(f.noDimensions)

	f.material = widget.NewSelect(nil, func(selected string) {
		id := idForLabel(f.materialOpts, selected)
		if a.syncing || id == a.current.Request.Material {
			return
		}
		a.edit("Change Material", func(r model.QuoteRequest) model.QuoteRequest {
			return r.WithMaterial(&a.catalog, id)
		})
		a.syncForm()
	})
	f.material.PlaceHolder = "Select material"
	f.thickness = widget.NewSelect(nil, func(selected string) {
		id := idForLabel(f.thicknessOpts, selected)
		if a.syncing || id == a.current.Request.Thickness {
			return
		}
		a.edit("Change Thickness", func(r model.QuoteRequest) model.QuoteRequest {
			r.Thickness = id
			return r
		})
		a.syncForm()
	})
	f.thickness.PlaceHolder = "Select thickness"

	f.otherMaterial = a.textEntry("Describe the material", "Describe Material", func(r *model.QuoteRequest, text string) {
		r.OtherMaterial = text
	})
	f.otherThickness = a.textEntry(`e.g. 0.040"`, "Describe Thickness", func(r *model.QuoteRequest, text string) {
		r.OtherThickness = text
	})
	f.otherMaterialRow = formRow("Material details", f.otherMaterial)
	f.otherThicknessRow = formRow("Thickness details", f.otherThickness)

	f.quantity = a.textEntry("1", "Change Quantity", func(r *model.QuoteRequest, text string) {
		r.Quantity = parseQuantity(text)
	})
	f.finishing = widget.NewSelect(nil, func(selected string) {
		id := idForLabel(f.finishingOpts, selected)
		if a.syncing || id == a.current.Request.Finishing {
			return
		}
		a.edit("Change Finishing", func(r model.QuoteRequest) model.QuoteRequest {
			r.Finishing = id
			return r
		})
		a.syncForm()
	})
	f.color = a.textEntry("RAL or vendor color code", "Change Color", func(r *model.QuoteRequest, text string) {
		r.PowderCoatColor = text
	})
	f.finishDesc = a.textEntry("Describe the finish", "Describe Finishing", func(r *model.QuoteRequest, text string) {
		r.CustomFinishDescription = text
	})
	f.colorRow = formRow("Powder coat color", f.color)
	f.finishDescRow = formRow("Finish description", f.finishDesc)

	return container.NewVBox(
		widget.NewCard("Part", "", container.NewVBox(
			formRow("Label", f.label),
			templateGrid,
		)),
		widget.NewCard("Dimensions", "", f.dims),
		widget.NewCard("Material", "", container.NewVBox(
			formRow("Material", f.material),
			f.otherMaterialRow,
			formRow("Thickness", f.thickness),
			f.otherThicknessRow,
		)),
		widget.NewCard("Order", "", container.NewVBox(
			formRow("Quantity", f.quantity),
			formRow("Finishing", f.finishing),
			f.colorRow,
			f.finishDescRow,
		)),
	)
}

// textEntry creates an entry whose edits become new snapshots.
func (a *App) textEntry(placeholder, label string, set func(r *model.QuoteRequest, text string)) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	e.OnChanged = func(text string) {
		a.typeEdit(label, func(r model.QuoteRequest) model.QuoteRequest {
			set(&r, text)
			return r
		})
	}
	return e
}

// rebuildDimensions swaps the dimension inputs for a template's fields.
func (a *App) rebuildDimensions(t model.Template) {
	f := &a.form
	f.dimTemplate = t
	f.dimFields = dimensionFields(t)
	f.dimEntries = make([]*widget.Entry, len(f.dimFields))
	f.dims.RemoveAll()
	if len(f.dimFields) == 0 {
		f.dims.Add(f.noDimensions)
		f.dims.Refresh()
		return
	}
	for i, field := range f.dimFields {
		e := widget.NewEntry()
		e.SetPlaceHolder("inches")
		e.OnChanged = func(text string) {
			a.typeEdit("Change "+field.Label, func(r model.QuoteRequest) model.QuoteRequest {
				*field.Field(&r.Part) = parseDimension(text)
				return r
			})
		}
		f.dimEntries[i] = e
		f.dims.Add(formRow(field.Label, e))
	}
	f.dims.Refresh()
}

// syncForm makes every input mirror the current snapshot without
// recording new snapshots.
func (a *App) syncForm() {
	f := &a.form
	if f.dims == nil {
		return
	}
	a.syncing = true
	defer func() { a.syncing = false }()

	req := a.current.Request
	setText(f.label, a.label)

	for t, btn := range f.templates {
		if t == req.Part.Template {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}

	if f.dimTemplate != req.Part.Template || len(f.dimEntries) != len(dimensionFields(req.Part.Template)) {
		a.rebuildDimensions(req.Part.Template)
	}
	for i, field := range f.dimFields {
		part := req.Part
		v := *field.Field(&part)
		if parseDimension(f.dimEntries[i].Text) != v {
			f.dimEntries[i].SetText(formatDimension(v))
		}
	}

	f.materialOpts = materialChoices(&a.catalog)
	f.material.SetOptions(choiceLabels(f.materialOpts))
	selectID(f.material, f.materialOpts, req.Material)

	f.thicknessOpts = thicknessChoices(&a.catalog, req.Material)
	f.thickness.SetOptions(choiceLabels(f.thicknessOpts))
	selectID(f.thickness, f.thicknessOpts, req.Thickness)
	if req.Material == "" {
		f.thickness.Disable()
	} else {
		f.thickness.Enable()
	}

	setText(f.otherMaterial, req.OtherMaterial)
	setText(f.otherThickness, req.OtherThickness)
	showIf(f.otherMaterialRow, req.Material == model.OtherOption)
	showIf(f.otherThicknessRow, req.Thickness == model.OtherOption)

	if parseQuantity(f.quantity.Text) != req.Quantity {
		f.quantity.SetText(strconv.Itoa(req.Quantity))
	}

	f.finishingOpts = finishingChoices(&a.catalog)
	f.finishing.SetOptions(choiceLabels(f.finishingOpts))
	selectID(f.finishing, f.finishingOpts, req.Finishing)
	setText(f.color, req.PowderCoatColor)
	setText(f.finishDesc, req.CustomFinishDescription)
	showIf(f.colorRow, req.Finishing == model.FinishingPowderCoated)
	showIf(f.finishDescRow, req.Finishing == model.FinishingCustom)
}

// refreshPreview draws the hovered template's placeholder, or the current part.
func (a *App) refreshPreview() {
	if a.preview == nil {
		return
	}
	if a.hovered.Known() {
		a.preview.SetGeometry(engine.Resolve(model.Placeholder{Template: a.hovered}))
		return
	}
	a.preview.SetGeometry(previewGeometry(a.quote))
}

func setText(e *widget.Entry, text string) {
	if e.Text != text {
		e.SetText(text)
	}
}

func selectID(s *widget.Select, opts []choice, id string) {
	if label := labelForID(opts, id); label != "" {
		s.SetSelected(label)
		return
	}
	s.ClearSelected()
}

func showIf(o fyne.CanvasObject, visible bool) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}
