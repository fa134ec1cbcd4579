package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/export"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/spf13/cobra"
)

var quoteFlags partFlags

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a single part",
	Long: `Price a single part and print the quote.

Examples:
  quotectl quote --template rect_holes --width 10 --height 5 \
    --hole-diameter 0.25 --hole-offset 0.5 --material aluminum_3003 --thickness 0.063 --qty 25
  quotectl quote --from-dxf bracket.dxf --material "Mild Steel A36" --thickness 0.119

Exit codes:
  0 - Automatic estimate available
  1 - Error (bad flags, unreadable catalog or drawing)
  2 - No automatic estimate (invalid input or manual review)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pricer, catalog, err := loadPricer()
		if err != nil {
			return err
		}
		label, req, warnings, err := quoteFlags.request(catalog, loadAppConfig())
		if err != nil {
			return err
		}
		exitWith(runQuote(os.Stdout, pricer, label, req, warnings, IsJSONOutput()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteFlags.register(quoteCmd)
}

// quoteOutput is the --json shape of a single quote.
type quoteOutput struct {
	export.QuoteDocument
	Warnings []string `json:"warnings,omitempty"`
}

// runQuote evaluates one request and returns the exit code.
func runQuote(w io.Writer, pricer *engine.Pricer, label string, req model.QuoteRequest, warnings []string, asJSON bool) int {
	q := pricer.Evaluate(req)
	doc := export.NewQuoteDocument(label, q, pricer.Catalog)

	if asJSON {
		data, err := json.MarshalIndent(quoteOutput{QuoteDocument: doc, Warnings: warnings}, "", "  ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, formatQuoteHuman(doc, warnings))
	}

	if !q.Result.Estimable {
		return exitNotQuoted
	}
	return exitOK
}

// formatQuoteHuman renders a quote for the terminal.
func formatQuoteHuman(doc export.QuoteDocument, warnings []string) string {
	var sb strings.Builder
	q := doc.Quote
	r := q.Result

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Quote %s  %s", doc.Reference, doc.Label)))
	sb.WriteString("\n")
	for _, line := range doc.Summary() {
		sb.WriteString(keyValue(line.Label, line.Value))
	}

	if q.Geometry.Valid {
		sb.WriteString(sectionStyle.Render("Geometry"))
		sb.WriteString("\n")
		sb.WriteString(keyValue("Area", fmt.Sprintf("%.3f sq in", q.Geometry.Area)))
		sb.WriteString(keyValue("Cut length", fmt.Sprintf("%.3f in", q.Geometry.CutLength())))
		if r.Valid {
			sb.WriteString(keyValue("Cut time", fmt.Sprintf("%.1f s", r.CutTimeSeconds)))
		}
	}

	if r.Valid {
		sb.WriteString(sectionStyle.Render("Pricing"))
		sb.WriteString("\n")
		sb.WriteString(keyValue("Material cost", model.FormatCurrency(r.MaterialCost)))
		sb.WriteString(keyValue("Cutting cost", model.FormatCurrency(r.CuttingCost)))
		sb.WriteString(keyValue("Base unit cost", model.FormatCurrency(r.BaseUnitCost)))
		sb.WriteString("\n")
		sb.WriteString(formatTiers(r))
		sb.WriteString("\n")
		sb.WriteString(keyValue("Unit price", model.FormatCurrency(r.SelectedUnitCost)))
		sb.WriteString(keyValue("Total", statusOK.Render(model.FormatCurrency(r.TotalCost))))
	}

	sb.WriteString("\n")
	sb.WriteString(formatStatus(q))
	for _, w := range warnings {
		sb.WriteString(statusWarning.Render("! ") + w + "\n")
	}
	return sb.String()
}

// formatTiers renders the quantity tier table with the selected tier marked.
func formatTiers(r model.QuoteResult) string {
	rows := make([][]string, len(r.Tiers))
	for i, t := range r.Tiers {
		marker := ""
		if i == r.SelectedTier {
			marker = "<"
		}
		rows[i] = []string{t.Tier.Range, discountLabel(t.Tier.Multiplier), model.FormatCurrency(t.UnitCost), marker}
	}
	return renderTable([]string{"Qty", "Discount", "Unit", ""}, rows, func(i int) bool {
		return i == r.SelectedTier
	})
}

func discountLabel(multiplier float64) string {
	if multiplier >= 1 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", (1-multiplier)*100)
}

// formatStatus states whether the quote is an automatic estimate and lists
// whatever prevents one.
func formatStatus(q model.Quote) string {
	var sb strings.Builder
	switch {
	case q.Result.Estimable && q.Result.ManualReview:
		sb.WriteString(statusWarning.Render("✓ Estimate, finishing needs manual review"))
	case q.Result.Estimable:
		sb.WriteString(statusOK.Render("✓ Estimate"))
	case q.Result.ManualReview:
		sb.WriteString(statusWarning.Render("! Manual review required"))
	default:
		sb.WriteString(statusCritical.Render("✗ Cannot quote"))
	}
	sb.WriteString("\n")
	for _, issue := range q.Issues() {
		sb.WriteString(hintStyle.Render("  - "+issue.Message()) + "\n")
	}
	return sb.String()
}
