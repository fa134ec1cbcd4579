package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each quote label's QR code.
type LabelInfo struct {
	Reference string  `json:"ref"`
	Label     string  `json:"label"`
	Size      string  `json:"size"`
	Material  string  `json:"material"`
	Thickness string  `json:"thickness"`
	Finishing string  `json:"finishing"`
	Quantity  int     `json:"qty"`
	UnitCost  float64 `json:"unit_cost"`
	Total     float64 `json:"total"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per quote, to tag
// finished batches with. Quotes without an automatic estimate are skipped.
func ExportLabels(path string, docs []QuoteDocument) error {
	labels := CollectLabelInfos(docs)
	if len(labels) == 0 {
		return fmt.Errorf("no estimable quotes to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, index int, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%d", info.Reference, index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Part label (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, tr(truncate(pdf, info.Label, textW)), "", 1, "L", false, 0, "")

	// Dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, tr(truncate(pdf, info.Size, textW)), "", 1, "L", false, 0, "")

	// Material and thickness
	pdf.SetXY(textX, y+labelPadding+8.5)
	stock := fmt.Sprintf("%s, %s", info.Material, info.Thickness)
	pdf.CellFormat(textW, 3.5, tr(truncate(pdf, stock, textW)), "", 1, "L", false, 0, "")

	// Finishing
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, tr(truncate(pdf, info.Finishing, textW)), "", 1, "L", false, 0, "")

	// Quote reference and quantity
	pdf.SetXY(textX, y+labelPadding+16)
	pdf.SetFont("Helvetica", "B", 6)
	pdf.SetTextColor(79, 70, 229)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%s  x%d", info.Reference, info.Quantity), "", 0, "L", false, 0, "")

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis until it fits in width. Whole runes
// are removed so multibyte characters are never split.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
	}
	return s + "..."
}

// CollectLabelInfos extracts label information from estimable quotes
// for use in testing or alternative export formats.
func CollectLabelInfos(docs []QuoteDocument) []LabelInfo {
	var labels []LabelInfo
	for _, d := range docs {
		if !d.Quote.Result.Estimable {
			continue
		}
		labels = append(labels, d.labelInfo())
	}
	return labels
}
