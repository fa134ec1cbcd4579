// Package export renders priced quotes to files: PDF quote sheets, label
// sheets, DXF cut profiles, SVG previews and XLSX price tables.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/SheetQuote/internal/model"
)

// QuoteDocument bundles a priced quote with the catalog it was priced
// against and a reference for the customer to quote back.
type QuoteDocument struct {
	Reference string        `json:"reference"`
	CreatedAt time.Time     `json:"created_at"`
	Label     string        `json:"label"`
	Quote     model.Quote   `json:"quote"`
	Catalog   model.Catalog `json:"-"`
}

// NewQuoteDocument stamps a quote with a fresh reference.
func NewQuoteDocument(label string, q model.Quote, catalog model.Catalog) QuoteDocument {
	if label == "" {
		label = q.Request.Part.Template.DisplayName()
	}
	return QuoteDocument{
		Reference: "Q-" + strings.ToUpper(uuid.New().String()[:8]),
		CreatedAt: time.Now(),
		Label:     label,
		Quote:     q,
		Catalog:   catalog,
	}
}

// SpecLine is one row of the specification summary.
type SpecLine struct {
	Label string
	Value string
}

// Summary describes the part and its options in display form.
func (d QuoteDocument) Summary() []SpecLine {
	req := d.Quote.Request
	lines := []SpecLine{
		{"Template", req.Part.Template.DisplayName()},
		{"Dimensions", DimensionText(req.Part)},
	}
	if req.Part.Template.HasHoles() {
		lines = append(lines, SpecLine{"Holes", fmt.Sprintf("%d x %s dia., %s from corners",
			req.Part.Template.HoleCount(), inches(req.Part.HoleDiameter), inches(req.Part.HoleOffset))})
	}
	lines = append(lines,
		SpecLine{"Material", d.MaterialText()},
		SpecLine{"Thickness", d.ThicknessText()},
		SpecLine{"Finishing", d.FinishingText()},
		SpecLine{"Quantity", fmt.Sprintf("%d", req.Quantity)},
	)
	return lines
}

// MaterialText returns the material name, or the customer's description for "other".
func (d QuoteDocument) MaterialText() string {
	req := d.Quote.Request
	if req.Material == model.OtherOption {
		return "Other: " + req.OtherMaterial
	}
	return d.Catalog.MaterialName(req.Material)
}

// ThicknessText returns the thickness label, or the customer's description for "other".
func (d QuoteDocument) ThicknessText() string {
	req := d.Quote.Request
	if req.Thickness == model.OtherOption {
		return "Other: " + req.OtherThickness
	}
	return d.Catalog.ThicknessLabel(req.Material, req.Thickness)
}

// FinishingText returns the finishing name with its color or description.
func (d QuoteDocument) FinishingText() string {
	req := d.Quote.Request
	id := req.Finishing
	if id == "" {
		id = model.FinishingNone
	}
	name := id
	if f := d.Catalog.FindFinishing(id); f != nil {
		name = f.Name
	}
	switch id {
	case model.FinishingPowderCoated:
		return fmt.Sprintf("%s (%s)", name, req.PowderCoatColor)
	case model.FinishingCustom:
		return fmt.Sprintf("%s: %s", name, req.CustomFinishDescription)
	}
	return name
}

// DimensionText formats a part's size the way it is entered for its template.
func DimensionText(spec model.PartSpec) string {
	switch spec.Template {
	case model.TemplateRectangle, model.TemplateRectHoles:
		return fmt.Sprintf("%s x %s", inches(spec.Width), inches(spec.Height))
	case model.TemplateCircle:
		return inches(spec.Diameter) + " dia."
	case model.TemplateTriangleHoles:
		return fmt.Sprintf("base %s, height %s", inches(spec.Base), inches(spec.Height))
	}
	return "-"
}

func inches(v float64) string {
	return fmt.Sprintf(`%.3f"`, v)
}

// labelInfo is the payload encoded into QR codes on labels and quote sheets.
func (d QuoteDocument) labelInfo() LabelInfo {
	return LabelInfo{
		Reference: d.Reference,
		Label:     d.Label,
		Size:      DimensionText(d.Quote.Request.Part),
		Material:  d.MaterialText(),
		Thickness: d.ThicknessText(),
		Finishing: d.FinishingText(),
		Quantity:  d.Quote.Request.Quantity,
		UnitCost:  d.Quote.Result.SelectedUnitCost,
		Total:     d.Quote.Result.TotalCost,
	}
}

// ErrNotEstimable is returned when a document is asked to render prices it does not have.
var ErrNotEstimable = errors.New("quote has no automatic estimate")
