package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/importer"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/spf13/cobra"
)

// partFlags are the part and option flags shared by quote, compare and export.
type partFlags struct {
	label        string
	template     string
	fromDXF      string
	width        float64
	height       float64
	diameter     float64
	base         float64
	holeDiameter float64
	holeOffset   float64
	material     string
	thickness    string
	quantity     int
	finishing    string
	color        string
	finishDesc   string
}

func (f *partFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.label, "label", "", "Part label shown on documents (default: template name)")
	fl.StringVar(&f.template, "template", "", "Part template: rectangle, circle, rect_holes, triangle_holes")
	fl.StringVar(&f.fromDXF, "from-dxf", "", "Read the part outline and holes from a DXF drawing")
	fl.Float64Var(&f.width, "width", 0, "Width in inches (rectangles)")
	fl.Float64Var(&f.height, "height", 0, "Height in inches (rectangles and triangles)")
	fl.Float64Var(&f.diameter, "diameter", 0, "Diameter in inches (circles)")
	fl.Float64Var(&f.base, "base", 0, "Base width in inches (triangles)")
	fl.Float64Var(&f.holeDiameter, "hole-diameter", 0, "Hole diameter in inches")
	fl.Float64Var(&f.holeOffset, "hole-offset", 0, "Hole center distance from each corner in inches")
	fl.StringVar(&f.material, "material", "", "Material id or name, or \"other\" plus a description")
	fl.StringVar(&f.thickness, "thickness", "", "Thickness id or value in inches")
	fl.IntVar(&f.quantity, "qty", 0, "Quantity (default: saved default, else 1)")
	fl.StringVar(&f.finishing, "finishing", "", "Finishing: none, powder_coated, matte, custom")
	fl.StringVar(&f.color, "color", "", "Powder coat color")
	fl.StringVar(&f.finishDesc, "finish-desc", "", "Custom finishing description")
}

// fields maps the flags onto importer column names. Zero lengths are left
// out so the geometry resolver reports them as missing.
func (f partFlags) fields() map[string]string {
	fields := map[string]string{
		"label":       f.label,
		"template":    f.template,
		"material":    f.material,
		"thickness":   f.thickness,
		"finishing":   f.finishing,
		"color":       f.color,
		"finish_desc": f.finishDesc,
	}
	lengths := map[string]float64{
		"width":         f.width,
		"height":        f.height,
		"diameter":      f.diameter,
		"base":          f.base,
		"hole_diameter": f.holeDiameter,
		"hole_offset":   f.holeOffset,
	}
	for name, v := range lengths {
		if v != 0 {
			fields[name] = formatLength(v)
		}
	}
	if f.quantity != 0 {
		fields["quantity"] = strconv.Itoa(f.quantity)
	}
	return fields
}

// applySpec overwrites the template and dimensions with a part read from
// a drawing.
func applySpec(fields map[string]string, spec model.PartSpec) {
	fields["template"] = string(spec.Template)
	for name, v := range map[string]float64{
		"width":         spec.Width,
		"height":        spec.Height,
		"diameter":      spec.Diameter,
		"base":          spec.Base,
		"hole_diameter": spec.HoleDiameter,
		"hole_offset":   spec.HoleOffset,
	} {
		delete(fields, name)
		if v != 0 {
			fields[name] = formatLength(v)
		}
	}
}

func formatLength(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// request builds the quote request the flags describe. Saved defaults fill
// material, thickness and quantity when the flags leave them out. The
// returned warnings come from DXF import and name resolution.
func (f partFlags) request(catalog model.Catalog, cfg model.AppConfig) (string, model.QuoteRequest, []string, error) {
	fields := f.fields()
	var warnings []string

	if f.fromDXF != "" {
		imp := importer.ImportPartDXF(f.fromDXF)
		if !imp.OK() {
			return "", model.QuoteRequest{}, nil, fmt.Errorf("failed to read %s: %s", f.fromDXF, strings.Join(imp.Errors, "; "))
		}
		applySpec(fields, imp.Spec)
		warnings = append(warnings, imp.Warnings...)
	}

	row, rowWarnings, err := importer.ParseFields(fields, catalog)
	if err != nil {
		return "", model.QuoteRequest{}, nil, err
	}
	warnings = append(warnings, rowWarnings...)

	req := cfg.ApplyToRequest(row.Request)
	if f.quantity > 0 {
		req.Quantity = f.quantity
	}
	return f.label, req, warnings, nil
}
