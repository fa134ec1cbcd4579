package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// Preview palette, as hex strings for SVG.
const (
	svgOutlineFill   = "#e0e7ff"
	svgOutlineStroke = "#a5b4fc"
	svgHoleFill      = "#fbcfe8"
	svgHoleStroke    = "#f472b6"
)

// WriteSVG renders a geometry result's preview primitives as a standalone
// SVG document on the 100x100 canvas.
func WriteSVG(w io.Writer, g model.GeometryResult) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" width="400" height="400">`)
	for _, p := range g.Primitives {
		fill, stroke := svgOutlineFill, svgOutlineStroke
		if p.Role == model.RoleHole {
			fill, stroke = svgHoleFill, svgHoleStroke
		}
		style := fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="0.6"`, fill, stroke)
		if p.Placeholder {
			style += ` stroke-dasharray="2 1.5" opacity="0.6"`
		}

		switch p.Kind {
		case model.ShapeRect:
			fmt.Fprintf(bw, "  <rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\" %s/>\n",
				num(p.X), num(p.Y), num(p.W), num(p.H), style)
		case model.ShapeCircle:
			fmt.Fprintf(bw, "  <circle cx=\"%s\" cy=\"%s\" r=\"%s\" %s/>\n",
				num(p.CX), num(p.CY), num(p.R), style)
		case model.ShapePolygon:
			pts := make([]string, len(p.Points))
			for i, v := range p.Points {
				pts[i] = num(v.X) + "," + num(v.Y)
			}
			fmt.Fprintf(bw, "  <polygon points=\"%s\" %s/>\n", strings.Join(pts, " "), style)
		}
	}
	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

// num formats a canvas coordinate without trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
