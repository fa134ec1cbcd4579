package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
	"github.com/spf13/cobra"
)

var catalogInit string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the active price catalog",
	Long: `Print the materials, thicknesses, quantity tiers and finishings the
active catalog prices.

Use --init PATH to write the built-in catalog as a starting point for a
custom price table.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if catalogInit != "" {
			return runCatalogInit(os.Stdout, catalogInit)
		}
		_, catalog, err := loadPricer()
		if err != nil {
			return err
		}
		return runCatalog(os.Stdout, catalog, IsJSONOutput())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVar(&catalogInit, "init", "", "Write the built-in catalog to PATH")
}

// runCatalogInit writes the built-in catalog, refusing to overwrite.
func runCatalogInit(w io.Writer, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := project.SaveCatalog(path, model.DefaultCatalog()); err != nil {
		return err
	}
	slog.Info("catalog written", "path", path)
	fmt.Fprintf(w, "%s %s\n", statusOK.Render("✓ Wrote"), path)
	return nil
}

func runCatalog(w io.Writer, catalog model.Catalog, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}
	fmt.Fprint(w, formatCatalogHuman(catalog))
	return nil
}

func formatCatalogHuman(c model.Catalog) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Price catalog"))
	sb.WriteString("\n")

	var rows [][]string
	for _, m := range c.Materials {
		for _, t := range m.Thicknesses {
			pm, ok := c.Lookup(m.ID, t.ID)
			if !ok {
				rows = append(rows, []string{m.Name, t.Label, "not priced", ""})
				continue
			}
			rows = append(rows, []string{
				m.Name,
				t.Label,
				fmt.Sprintf("$%.4f/sq in", pm.CostPerSqInch),
				fmt.Sprintf("%.2f in/s", pm.CutSpeedInPerSec),
			})
		}
	}
	sb.WriteString(sectionStyle.Render("Materials"))
	sb.WriteString("\n")
	sb.WriteString(renderTable([]string{"Material", "Thickness", "Material rate", "Cut speed"}, rows, nil))

	tiers := make([][]string, len(c.Tiers))
	for i, t := range c.Tiers {
		tiers[i] = []string{t.Range, fmt.Sprintf("%d", t.MinQuantity), discountLabel(t.Multiplier)}
	}
	sb.WriteString(sectionStyle.Render("Quantity tiers"))
	sb.WriteString("\n")
	sb.WriteString(renderTable([]string{"Range", "From", "Discount"}, tiers, nil))

	sb.WriteString(sectionStyle.Render("Finishings"))
	sb.WriteString("\n")
	for _, f := range c.Finishings {
		sb.WriteString(keyValue(f.ID, f.Name))
	}

	sb.WriteString("\n")
	sb.WriteString(keyValue("Cutting rate", fmt.Sprintf("$%.4f/s", c.CostPerSecondCutting)))
	sb.WriteString(keyValue("Minimum part", model.FormatCurrency(c.MinimumPartCost)))
	return sb.String()
}
