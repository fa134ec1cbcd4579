package engine

import (
	"math"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// Preview canvas, in abstract units. Parts are scaled to fit the span and
// centered, leaving the padding on the longer axis.
const (
	CanvasSize    = 100.0
	CanvasPadding = 5.0
	CanvasSpan    = CanvasSize - 2*CanvasPadding
)

// PreviewPrimitives projects a cut profile onto the preview canvas and
// returns the scale factor used along with the shapes to draw.
func PreviewPrimitives(p model.CutProfile, placeholder bool) (float64, []model.Primitive) {
	longest := math.Max(p.Width, p.Height)
	if longest <= 0 {
		return 0, nil
	}
	s := CanvasSpan / longest
	ox := (CanvasSize - p.Width*s) / 2
	oy := (CanvasSize - p.Height*s) / 2
	project := func(pt model.Point2D) model.Point2D {
		return model.Point2D{X: ox + pt.X*s, Y: oy + pt.Y*s}
	}

	var prims []model.Primitive
	switch p.Shape {
	case model.ShapeRect:
		prims = append(prims, model.Primitive{
			Kind: model.ShapeRect, Role: model.RoleOutline,
			X: ox, Y: oy, W: p.Width * s, H: p.Height * s,
			Placeholder: placeholder,
		})
	case model.ShapeCircle:
		c := project(p.Center())
		prims = append(prims, model.Primitive{
			Kind: model.ShapeCircle, Role: model.RoleOutline,
			CX: c.X, CY: c.Y, R: p.Radius * s,
			Placeholder: placeholder,
		})
	case model.ShapePolygon:
		points := make([]model.Point2D, len(p.Outline))
		for i, v := range p.Outline {
			points[i] = project(v)
		}
		prims = append(prims, model.Primitive{
			Kind: model.ShapePolygon, Role: model.RoleOutline,
			Points:      points,
			Placeholder: placeholder,
		})
	default:
		return 0, nil
	}

	for _, h := range p.Holes {
		c := project(h.Center)
		prims = append(prims, model.Primitive{
			Kind: model.ShapeCircle, Role: model.RoleHole,
			CX: c.X, CY: c.Y, R: h.Diameter / 2 * s,
			Placeholder: placeholder,
		})
	}
	return s, prims
}
