package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
)

// DXF layer names. Cutting software maps layers to operations, so the
// outline and holes are kept apart.
const (
	LayerOutline = "OUTLINE"
	LayerHoles   = "HOLES"
)

// ExportDXF writes a cut profile as a DXF drawing in inches. The profile is
// y-down; DXF is y-up, so y is flipped about the bounding box.
func ExportDXF(path string, p model.CutProfile) error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("profile has no geometry to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerOutline, color.White, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerOutline, err)
	}
	if _, err := d.AddLayer(LayerHoles, color.Magenta, table.LT_CONTINUOUS, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerHoles, err)
	}

	flip := func(pt model.Point2D) (float64, float64) {
		return pt.X, p.Height - pt.Y
	}

	if err := d.ChangeLayer(LayerOutline); err != nil {
		return fmt.Errorf("failed to select layer %s: %w", LayerOutline, err)
	}
	switch p.Shape {
	case model.ShapeCircle:
		cx, cy := flip(p.Center())
		if _, err := d.Circle(cx, cy, 0, p.Radius); err != nil {
			return fmt.Errorf("failed to write outline: %w", err)
		}
	default:
		vertices := make([][]float64, len(p.Outline))
		for i, v := range p.Outline {
			x, y := flip(v)
			vertices[i] = []float64{round6(x), round6(y)}
		}
		if _, err := d.LwPolyline(true, vertices...); err != nil {
			return fmt.Errorf("failed to write outline: %w", err)
		}
	}

	if len(p.Holes) > 0 {
		if err := d.ChangeLayer(LayerHoles); err != nil {
			return fmt.Errorf("failed to select layer %s: %w", LayerHoles, err)
		}
		for i, h := range p.Holes {
			x, y := flip(h.Center)
			if _, err := d.Circle(round6(x), round6(y), 0, h.Diameter/2); err != nil {
				return fmt.Errorf("failed to write hole %d: %w", i+1, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

// round6 trims float noise from the bisector math so the file diffs cleanly.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
