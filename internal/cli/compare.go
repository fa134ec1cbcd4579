package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/export"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/spf13/cobra"
)

var (
	compareFlags partFlags
	compareXLSX  string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Price one part in every stocked material and thickness",
	Long: `Price the same part against every priced material and thickness in the
catalog, cheapest first. Quantity and finishing are kept.

Exit codes:
  0 - At least one material could be priced
  1 - Error (bad flags, export failed)
  2 - The part geometry is invalid`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pricer, catalog, err := loadPricer()
		if err != nil {
			return err
		}
		cfg := loadAppConfig()
		label, req, _, err := compareFlags.request(catalog, cfg)
		if err != nil {
			return err
		}
		code := runCompare(os.Stdout, pricer, label, req, compareXLSX, IsJSONOutput())
		if code == exitOK && compareXLSX != "" {
			recordExport(cfg, compareXLSX)
		}
		exitWith(code)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareFlags.register(compareCmd)
	compareCmd.Flags().StringVar(&compareXLSX, "xlsx", "", "Also write the comparison to an XLSX workbook")
}

// comparisonRow is the --json shape of one compared material.
type comparisonRow struct {
	Material  string  `json:"material"`
	Thickness string  `json:"thickness"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
	Estimable bool    `json:"estimable"`
}

// runCompare prices the request in every material and returns the exit code.
func runCompare(w io.Writer, pricer *engine.Pricer, label string, req model.QuoteRequest, xlsxPath string, asJSON bool) int {
	g := engine.Resolve(model.Concrete{Spec: req.Part})
	if !g.Valid {
		fmt.Fprint(w, formatStatus(model.Quote{Request: req, Geometry: g}))
		return exitNotQuoted
	}
	if label == "" {
		label = req.Part.Template.DisplayName()
	}

	rows := pricer.CompareMaterials(g, req)
	if asJSON {
		out := make([]comparisonRow, len(rows))
		for i, c := range rows {
			out[i] = comparisonRow{
				Material:  c.Key.Material,
				Thickness: c.Key.Thickness,
				UnitPrice: c.Result.SelectedUnitCost,
				Total:     c.Result.TotalCost,
				Estimable: c.Result.Estimable,
			}
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprint(w, formatComparisonHuman(label, req.Quantity, rows))
	}

	if xlsxPath != "" {
		if err := export.ExportComparisonXLSX(xlsxPath, label, rows); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitError
		}
		slog.Info("comparison exported", "path", xlsxPath, "rows", len(rows))
	}
	return exitOK
}

func formatComparisonHuman(label string, qty int, rows []engine.MaterialComparison) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Material comparison  %s  (qty %d)", label, qty)))
	sb.WriteString("\n")
	if len(rows) == 0 {
		sb.WriteString(hintStyle.Render("  No material in the catalog can price this part."))
		sb.WriteString("\n")
		return sb.String()
	}

	table := make([][]string, len(rows))
	for i, c := range rows {
		table[i] = []string{
			c.MaterialName,
			c.ThicknessLabel,
			model.FormatCurrency(c.Result.SelectedUnitCost),
			model.FormatCurrency(c.Result.TotalCost),
		}
	}
	sb.WriteString(renderTable([]string{"Material", "Thickness", "Unit", "Total"}, table, func(i int) bool {
		return i == 0
	}))
	return sb.String()
}
