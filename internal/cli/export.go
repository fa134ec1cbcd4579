package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/export"
	"github.com/piwi3910/SheetQuote/internal/gcode"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
	"github.com/spf13/cobra"
)

// Export formats.
const (
	formatPDF   = "pdf"
	formatDXF   = "dxf"
	formatGCode = "gcode"
	formatSVG   = "svg"
)

var exportFormats = []string{formatPDF, formatDXF, formatGCode, formatSVG}

var (
	exportFlags  partFlags
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a quote sheet, cut profile, cutting program or preview",
	Long: `Write one part to a file.

Formats:
  pdf    Quote sheet (requires an automatic estimate)
  dxf    Cut profile with OUTLINE and HOLES layers
  gcode  Cutting program for the configured G-code profile
  svg    Preview drawing`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pricer, catalog, err := loadPricer()
		if err != nil {
			return err
		}
		if _, err := project.LoadCustomProfilesFromDefault(); err != nil {
			slog.Warn("failed to load custom G-code profiles", "error", err)
		}
		cfg := loadAppConfig()
		label, req, warnings, err := exportFlags.request(catalog, cfg)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			slog.Warn(w)
		}
		if err := runExport(os.Stdout, pricer, cfg.Cutting, label, req, exportFormat, exportOut); err != nil {
			return err
		}
		recordExport(cfg, exportOut)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", formatPDF, "Output format: "+strings.Join(exportFormats, ", "))
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	_ = exportCmd.MarkFlagRequired("out")
}

// runExport writes the part in the requested format.
func runExport(w io.Writer, pricer *engine.Pricer, settings model.CutSettings, label string, req model.QuoteRequest, format, out string) error {
	if out == "" {
		return fmt.Errorf("an output path is required")
	}
	q := pricer.Evaluate(req)
	if label == "" {
		label = req.Part.Template.DisplayName()
	}

	format = strings.ToLower(format)
	switch format {
	case formatPDF:
		if err := export.ExportQuotePDF(out, export.NewQuoteDocument(label, q, pricer.Catalog)); err != nil {
			return fmt.Errorf("failed to export quote sheet: %w", err)
		}
	case formatSVG:
		if err := writeSVGFile(out, q.Geometry); err != nil {
			return err
		}
	case formatDXF, formatGCode:
		profile, ok := engine.CutProfileFor(req.Part)
		if !ok || !q.Geometry.Valid {
			return fmt.Errorf("part geometry is invalid: %s", issueList(q.Geometry.Issues))
		}
		if format == formatDXF {
			if err := export.ExportDXF(out, profile); err != nil {
				return err
			}
			break
		}
		if pm, priced := pricer.Catalog.Lookup(req.Material, req.Thickness); priced {
			settings.FeedRate = settings.FeedRateFor(pm)
		}
		for _, warn := range gcode.FormatWebWarnings(gcode.CheckWebs(profile, settings.MinWeb)) {
			fmt.Fprintln(w, statusWarning.Render("! ")+warn)
		}
		program := gcode.New(settings).Generate(profile, label)
		if err := os.WriteFile(out, []byte(program), 0644); err != nil {
			return fmt.Errorf("failed to write cutting program: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(exportFormats, ", "))
	}

	slog.Info("part exported", "format", format, "path", out, "label", label)
	fmt.Fprintf(w, "%s %s\n", statusOK.Render("✓ Wrote"), out)
	return nil
}

func writeSVGFile(path string, g model.GeometryResult) error {
	if !g.Valid {
		return fmt.Errorf("part geometry is invalid: %s", issueList(g.Issues))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteSVG(f, g); err != nil {
		f.Close()
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return f.Close()
}

func issueList(issues []model.Issue) string {
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.Message()
	}
	return strings.Join(msgs, "; ")
}
