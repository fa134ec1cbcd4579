package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/export"
	"github.com/piwi3910/SheetQuote/internal/importer"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/spf13/cobra"
)

var (
	batchXLSX   string
	batchLabels string
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Price every part listed in a CSV or XLSX file",
	Long: `Import parts from a CSV or XLSX file, price each one and print a table.

Columns are matched by header (label, template, width, height, diameter,
base, hole diameter, hole offset, material, thickness, quantity, finishing,
color, finish description). Files without a header use that order.

Exit codes:
  0 - Every row imported and has an automatic estimate
  1 - Error (unreadable file, export failed)
  2 - Some rows failed to import or need manual review`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pricer, _, err := loadPricer()
		if err != nil {
			return err
		}
		code := runBatch(os.Stdout, pricer, args[0], batchXLSX, batchLabels, IsJSONOutput())
		if code != exitError {
			cfg := loadAppConfig()
			for _, out := range []string{batchXLSX, batchLabels} {
				if out != "" {
					recordExport(cfg, out)
				}
			}
		}
		exitWith(code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "Write the priced batch to an XLSX workbook")
	batchCmd.Flags().StringVar(&batchLabels, "labels", "", "Write an Avery 5160 label sheet PDF for the estimable parts")
}

// batchOutput is the --json shape of a batch run.
type batchOutput struct {
	Quotes     []export.QuoteDocument `json:"quotes"`
	Errors     []string               `json:"errors,omitempty"`
	Warnings   []string               `json:"warnings,omitempty"`
	GrandTotal float64                `json:"grand_total"`
}

// runBatch imports, prices and optionally exports a batch file, returning
// the exit code.
func runBatch(w io.Writer, pricer *engine.Pricer, path, xlsxPath, labelsPath string, asJSON bool) int {
	imported := importer.ImportFile(path, pricer.Catalog)
	if len(imported.Rows) == 0 {
		for _, e := range imported.Errors {
			fmt.Fprintf(w, "Error: %s\n", e)
		}
		if len(imported.Errors) == 0 {
			fmt.Fprintln(w, "Error: no parts found in", path)
		}
		return exitError
	}
	slog.Debug("batch imported", "path", path, "rows", len(imported.Rows), "errors", len(imported.Errors))

	quotes := pricer.EvaluateAll(imported.Requests())
	docs := make([]export.QuoteDocument, len(quotes))
	var grandTotal float64
	allEstimable := true
	for i, q := range quotes {
		docs[i] = export.NewQuoteDocument(imported.Rows[i].Label, q, pricer.Catalog)
		if q.Result.Estimable {
			grandTotal += q.Result.TotalCost
		} else {
			allEstimable = false
		}
	}

	if asJSON {
		data, err := json.MarshalIndent(batchOutput{
			Quotes:     docs,
			Errors:     imported.Errors,
			Warnings:   imported.Warnings,
			GrandTotal: grandTotal,
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, formatBatchHuman(path, docs, imported, grandTotal))
	}

	if xlsxPath != "" {
		if err := export.ExportBatchXLSX(xlsxPath, docs); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		slog.Info("batch workbook exported", "path", xlsxPath, "rows", len(docs))
	}
	if labelsPath != "" {
		if err := export.ExportLabels(labelsPath, docs); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		slog.Info("labels exported", "path", labelsPath)
	}

	if len(imported.Errors) > 0 || !allEstimable {
		return exitNotQuoted
	}
	return exitOK
}

func formatBatchHuman(path string, docs []export.QuoteDocument, imported importer.ImportResult, grandTotal float64) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Batch %s  (%d parts)", path, len(docs))))
	sb.WriteString("\n")

	rows := make([][]string, len(docs))
	for i, d := range docs {
		q := d.Quote
		unit, total, status := "-", "-", statusOK.Render("estimate")
		switch {
		case q.Result.Estimable:
			unit = model.FormatCurrency(q.Result.SelectedUnitCost)
			total = model.FormatCurrency(q.Result.TotalCost)
			if q.Result.ManualReview {
				status = statusWarning.Render("estimate, review finish")
			}
		case q.Result.ManualReview:
			status = statusWarning.Render("manual review")
		default:
			status = statusCritical.Render("invalid")
		}
		rows[i] = []string{
			d.Label,
			export.DimensionText(q.Request.Part),
			d.MaterialText(),
			d.ThicknessText(),
			strconv.Itoa(q.Request.Quantity),
			unit,
			total,
			status,
		}
	}
	sb.WriteString(renderTable([]string{"Label", "Size", "Material", "Thickness", "Qty", "Unit", "Total", "Status"}, rows, nil))
	sb.WriteString("\n")
	sb.WriteString(keyValue("Grand total", statusOK.Render(model.FormatCurrency(grandTotal))))

	for _, d := range docs {
		if d.Quote.Result.Estimable {
			continue
		}
		var msgs []string
		for _, issue := range d.Quote.Issues() {
			msgs = append(msgs, issue.Message())
		}
		sb.WriteString(hintStyle.Render(fmt.Sprintf("  %s: %s", d.Label, strings.Join(msgs, "; "))))
		sb.WriteString("\n")
	}
	for _, e := range imported.Errors {
		sb.WriteString(statusCritical.Render("✗ ") + e + "\n")
	}
	for _, warn := range imported.Warnings {
		sb.WriteString(statusWarning.Render("! ") + warn + "\n")
	}
	return sb.String()
}
