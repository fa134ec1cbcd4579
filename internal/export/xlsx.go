package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	comparisonSheet = "Comparison"
	batchSheet      = "Quotes"
	currencyFormat  = "$#,##0.00"
)

// ExportComparisonXLSX writes a material comparison to a spreadsheet, one
// row per material and thickness, cheapest first.
func ExportComparisonXLSX(path string, label string, rows []engine.MaterialComparison) error {
	if len(rows) == 0 {
		return fmt.Errorf("no priced materials to compare")
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", comparisonSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetCellValue(comparisonSheet, "A1", "Material comparison: "+label); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}
	headers := []interface{}{"Material", "Thickness", "Material Cost", "Cutting Cost", "Base Unit Cost", "Unit Price", "Total"}
	if err := writeHeader(f, comparisonSheet, 3, headers, styles); err != nil {
		return err
	}

	for i, c := range rows {
		r := c.Result
		row := []interface{}{
			c.MaterialName, c.ThicknessLabel,
			round2(r.MaterialCost), round2(r.CuttingCost), round2(r.BaseUnitCost),
			round2(r.SelectedUnitCost), round2(r.TotalCost),
		}
		if err := writeRow(f, comparisonSheet, i+4, row); err != nil {
			return err
		}
	}
	last := len(rows) + 3
	if err := f.SetCellStyle(comparisonSheet, "C4", fmt.Sprintf("G%d", last), styles.currency); err != nil {
		return fmt.Errorf("failed to style prices: %w", err)
	}
	if err := f.SetColWidth(comparisonSheet, "A", "B", 24); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(comparisonSheet, "C", "G", 15); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// ExportBatchXLSX writes one row per quote. Quotes without an estimate are
// listed with their issues instead of prices.
func ExportBatchXLSX(path string, docs []QuoteDocument) error {
	if len(docs) == 0 {
		return fmt.Errorf("no quotes to export")
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", batchSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	styles, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	headers := []interface{}{"Reference", "Label", "Template", "Dimensions", "Material", "Thickness",
		"Finishing", "Quantity", "Unit Price", "Total", "Status"}
	if err := writeHeader(f, batchSheet, 1, headers, styles); err != nil {
		return err
	}

	var grandTotal float64
	for i, d := range docs {
		q := d.Quote
		row := []interface{}{
			d.Reference, d.Label, q.Request.Part.Template.DisplayName(), DimensionText(q.Request.Part),
			d.MaterialText(), d.ThicknessText(), d.FinishingText(), q.Request.Quantity,
		}
		if q.Result.Estimable {
			row = append(row, round2(q.Result.SelectedUnitCost), round2(q.Result.TotalCost), statusText(q))
			grandTotal += q.Result.TotalCost
		} else {
			row = append(row, nil, nil, statusText(q))
		}
		if err := writeRow(f, batchSheet, i+2, row); err != nil {
			return err
		}
	}

	last := len(docs) + 1
	totalRow := last + 1
	if err := writeRow(f, batchSheet, totalRow, []interface{}{nil, nil, nil, nil, nil, nil, nil, "Total", round2(grandTotal)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(batchSheet, "I2", fmt.Sprintf("J%d", last), styles.currency); err != nil {
		return fmt.Errorf("failed to style prices: %w", err)
	}
	if err := f.SetCellStyle(batchSheet, fmt.Sprintf("H%d", totalRow), fmt.Sprintf("I%d", totalRow), styles.total); err != nil {
		return fmt.Errorf("failed to style total: %w", err)
	}
	if err := f.SetColWidth(batchSheet, "A", "K", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// statusText summarizes whether a quote was priced automatically.
func statusText(q model.Quote) string {
	switch {
	case q.Result.Estimable && q.Result.ManualReview:
		return "Estimate, finishing needs review"
	case q.Result.Estimable:
		return "Estimate"
	case q.Result.ManualReview:
		return "Manual review: " + issueText(q)
	default:
		return "Invalid: " + issueText(q)
	}
}

func issueText(q model.Quote) string {
	var msgs []string
	for _, i := range q.Issues() {
		msgs = append(msgs, i.Message())
	}
	return strings.Join(msgs, "; ")
}

type sheetStyles struct {
	header   int
	currency int
	total    int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F46E5"}, Pattern: 1},
	})
	if err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	numFmt := currencyFormat
	s.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return s, fmt.Errorf("failed to create currency style: %w", err)
	}
	s.total, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
	})
	if err != nil {
		return s, fmt.Errorf("failed to create total style: %w", err)
	}
	return s, nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []interface{}, styles sheetStyles) error {
	if err := writeRow(f, sheet, row, headers); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return fmt.Errorf("failed to address header: %w", err)
	}
	if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), end, styles.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
