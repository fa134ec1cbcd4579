package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SheetQuote/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// rgb is a fill or stroke color.
type rgb struct {
	R, G, B int
}

// Part colors match the preview widget.
var (
	outlineFill   = rgb{R: 165, G: 180, B: 252}
	outlineStroke = rgb{R: 79, G: 70, B: 229}
	holeFill      = rgb{R: 255, G: 255, B: 255}
	holeStroke    = rgb{R: 236, G: 72, B: 153}
	accent        = rgb{R: 238, G: 242, B: 255}
)

// Page layout constants (US Letter portrait in mm).
const (
	pageWidth    = 215.9
	pageHeight   = 279.4
	marginLeft   = 18.0
	marginRight  = 18.0
	marginTop    = 18.0
	marginBottom = 15.0
	headerHeight = 12.0
	contentWidth = pageWidth - marginLeft - marginRight
	drawingSize  = 80.0 // mm square the 100-unit preview canvas is mapped into
	stampSize    = 28.0
	rowHeight    = 6.5
)

// ExportQuotePDF writes a one-page quote sheet for an estimable quote.
func ExportQuotePDF(path string, doc QuoteDocument) error {
	pdf, err := buildQuotePDF(doc)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteQuotePDF renders the quote sheet to w.
func WriteQuotePDF(w io.Writer, doc QuoteDocument) error {
	pdf, err := buildQuotePDF(doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildQuotePDF(doc QuoteDocument) (*fpdf.Fpdf, error) {
	if !doc.Quote.Result.Estimable {
		return nil, ErrNotEstimable
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle("Quote "+doc.Reference, true)
	pdf.AddPage()

	renderHeader(pdf, doc)
	top := marginTop + headerHeight + 6
	renderDrawing(pdf, doc.Quote.Geometry, marginLeft, top)
	if err := renderStamp(pdf, doc, pageWidth-marginRight-stampSize, top); err != nil {
		return nil, err
	}
	y := renderSpecTable(pdf, doc, marginLeft+drawingSize+6, top)
	if y < top+drawingSize {
		y = top + drawingSize
	}
	y = renderMetrics(pdf, doc.Quote, y+6)
	y = renderTierTable(pdf, doc.Quote, y+6)
	y = renderTotals(pdf, doc.Quote, y+4)
	if doc.Quote.Result.ManualReview {
		renderReviewNote(pdf, y+4)
	}
	renderFooter(pdf, doc)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render quote PDF: %w", err)
	}
	return pdf, nil
}

func renderHeader(pdf *fpdf.Fpdf, doc QuoteDocument) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(outlineStroke.R, outlineStroke.G, outlineStroke.B)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(contentWidth/2, headerHeight, "Sheet Metal Quote", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft+contentWidth/2, marginTop)
	ref := fmt.Sprintf("%s  |  %s", doc.Reference, doc.CreatedAt.Format("2006-01-02"))
	pdf.CellFormat(contentWidth/2, headerHeight, ref, "", 0, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop+headerHeight-1)
	pdf.CellFormat(contentWidth, 6, doc.Label, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(outlineFill.R, outlineFill.G, outlineFill.B)
	pdf.SetLineWidth(0.6)
	pdf.Line(marginLeft, marginTop+headerHeight+5, pageWidth-marginRight, marginTop+headerHeight+5)
}

// renderDrawing maps the preview primitives from canvas units into a
// square on the page.
func renderDrawing(pdf *fpdf.Fpdf, g model.GeometryResult, x, y float64) {
	pdf.SetFillColor(250, 250, 255)
	pdf.SetDrawColor(220, 220, 230)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, drawingSize, drawingSize, "FD")

	k := drawingSize / 100
	for _, p := range g.Primitives {
		fill, stroke := outlineFill, outlineStroke
		if p.Role == model.RoleHole {
			fill, stroke = holeFill, holeStroke
		}
		pdf.SetFillColor(fill.R, fill.G, fill.B)
		pdf.SetDrawColor(stroke.R, stroke.G, stroke.B)
		pdf.SetLineWidth(0.4)

		switch p.Kind {
		case model.ShapeRect:
			pdf.Rect(x+p.X*k, y+p.Y*k, p.W*k, p.H*k, "FD")
		case model.ShapeCircle:
			pdf.Circle(x+p.CX*k, y+p.CY*k, p.R*k, "FD")
		case model.ShapePolygon:
			points := make([]fpdf.PointType, len(p.Points))
			for i, v := range p.Points {
				points[i] = fpdf.PointType{X: x + v.X*k, Y: y + v.Y*k}
			}
			pdf.Polygon(points, "FD")
		}
	}
}

// renderStamp places a QR code carrying the reference and price.
func renderStamp(pdf *fpdf.Fpdf, doc QuoteDocument, x, y float64) error {
	data, err := json.Marshal(doc.labelInfo())
	if err != nil {
		return fmt.Errorf("failed to marshal quote stamp: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	name := "stamp_" + doc.Reference
	pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(name, x, y, stampSize, stampSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return nil
}

// renderSpecTable lists the part and its options, returning the y below it.
func renderSpecTable(pdf *fpdf.Fpdf, doc QuoteDocument, x, y float64) float64 {
	labelW := 24.0
	valueW := pageWidth - marginRight - stampSize - 4 - x - labelW

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(x, y)
	pdf.CellFormat(labelW+valueW, rowHeight, "Specification", "", 0, "L", false, 0, "")
	y += rowHeight + 1

	for _, line := range doc.Summary() {
		pdf.SetXY(x, y)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(labelW, rowHeight, line.Label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(valueW, rowHeight, line.Value, "", "L", false)
		y = pdf.GetY()
	}
	return y
}

// renderMetrics prints the measured geometry and cost build-up.
func renderMetrics(pdf *fpdf.Fpdf, q model.Quote, y float64) float64 {
	r := q.Result
	g := q.Geometry
	metrics := []SpecLine{
		{"Area", fmt.Sprintf("%.3f sq in", g.Area)},
		{"Perimeter", fmt.Sprintf("%.3f in", g.Perimeter)},
		{"Holes", fmt.Sprintf("%d (%.3f in cut)", g.HoleCount, g.HoleCutLength)},
		{"Cut length", fmt.Sprintf("%.3f in", r.CutLength)},
		{"Cut time", fmt.Sprintf("%.1f s", r.CutTimeSeconds)},
		{"Material cost", model.FormatCurrency(r.MaterialCost)},
		{"Cutting cost", model.FormatCurrency(r.CuttingCost)},
		{"Base unit cost", model.FormatCurrency(r.BaseUnitCost)},
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, rowHeight, "Estimate Details", "", 0, "L", false, 0, "")
	y += rowHeight + 1

	colW := contentWidth / 4
	for i, m := range metrics {
		col := i % 2
		if col == 0 && i > 0 {
			y += rowHeight
		}
		x := marginLeft + float64(col)*2*colW
		pdf.SetXY(x, y)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(colW, rowHeight, m.Label, "B", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(colW, rowHeight, m.Value, "B", 0, "R", false, 0, "")
	}
	return y + rowHeight
}

// renderTierTable lists the unit price at every quantity tier and
// highlights the tier the order quantity falls in.
func renderTierTable(pdf *fpdf.Fpdf, q model.Quote, y float64) float64 {
	r := q.Result
	widths := []float64{contentWidth * 0.4, contentWidth * 0.3, contentWidth * 0.3}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(contentWidth, rowHeight, "Quantity Pricing", "", 0, "L", false, 0, "")
	y += rowHeight + 1

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(outlineStroke.R, outlineStroke.G, outlineStroke.B)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 210)
	pdf.SetLineWidth(0.2)
	pdf.SetXY(marginLeft, y)
	for i, h := range []string{"Quantity", "Discount", "Unit Price"} {
		pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
	}
	y += rowHeight

	pdf.SetTextColor(0, 0, 0)
	for i, tp := range r.Tiers {
		selected := i == r.SelectedTier
		style := ""
		if selected {
			style = "B"
			pdf.SetFillColor(accent.R, accent.G, accent.B)
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(widths[0], rowHeight, tp.Tier.Range, "1", 0, "C", selected, 0, "")
		pdf.CellFormat(widths[1], rowHeight, discountText(tp.Tier.Multiplier), "1", 0, "C", selected, 0, "")
		pdf.CellFormat(widths[2], rowHeight, model.FormatCurrency(tp.UnitCost), "1", 0, "R", selected, 0, "")
		y += rowHeight
	}
	return y
}

func discountText(multiplier float64) string {
	off := (1 - multiplier) * 100
	if off < 0.05 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", off)
}

func renderTotals(pdf *fpdf.Fpdf, q model.Quote, y float64) float64 {
	r := q.Result
	labelW := contentWidth * 0.7

	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(labelW, rowHeight, fmt.Sprintf("Unit price at quantity %d", q.Request.Quantity), "", 0, "R", false, 0, "")
	pdf.CellFormat(contentWidth-labelW, rowHeight, model.FormatCurrency(r.SelectedUnitCost), "", 0, "R", false, 0, "")
	y += rowHeight

	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(outlineStroke.R, outlineStroke.G, outlineStroke.B)
	pdf.CellFormat(labelW, rowHeight+2, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(contentWidth-labelW, rowHeight+2, model.FormatCurrency(r.TotalCost), "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return y + rowHeight + 2
}

func renderReviewNote(pdf *fpdf.Fpdf, y float64) {
	pdf.SetXY(marginLeft, y)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(holeStroke.R, holeStroke.G, holeStroke.B)
	pdf.MultiCell(contentWidth, 5,
		"Custom finishing is not included in this estimate. Final pricing will be confirmed after review.",
		"", "L", false)
	pdf.SetTextColor(0, 0, 0)
}

func renderFooter(pdf *fpdf.Fpdf, doc QuoteDocument) {
	pdf.SetXY(marginLeft, pageHeight-marginBottom-5)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(140, 140, 140)
	footer := fmt.Sprintf("Estimate %s generated %s. Prices are per part and exclude shipping.",
		doc.Reference, doc.CreatedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(contentWidth, 5, footer, "T", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
