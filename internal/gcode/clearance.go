package gcode

import (
	"fmt"
	"math"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// WebViolation reports a strip of material between two cuts that is
// narrower than the configured minimum web.
type WebViolation struct {
	Hole  int     // index of the hole in the profile
	Other int     // index of the other hole, or -1 for the part outline
	Web   float64 // material left between the two cuts, in
}

// CheckWebs measures the material left between every hole and the outline,
// and between every pair of holes. Geometry that passes the quoting rules
// can still leave webs too thin to survive cutting; this catches those.
func CheckWebs(p model.CutProfile, minWeb float64) []WebViolation {
	if minWeb <= 0 {
		return nil
	}

	var violations []WebViolation
	for i, h := range p.Holes {
		r := h.Diameter / 2
		if web := distanceToOutline(p, h.Center) - r; web < minWeb {
			violations = append(violations, WebViolation{Hole: i, Other: -1, Web: web})
		}
		for j := i + 1; j < len(p.Holes); j++ {
			o := p.Holes[j]
			d := math.Hypot(h.Center.X-o.Center.X, h.Center.Y-o.Center.Y)
			if web := d - r - o.Diameter/2; web < minWeb {
				violations = append(violations, WebViolation{Hole: i, Other: j, Web: web})
			}
		}
	}
	return violations
}

// distanceToOutline computes the distance from an interior point to the
// nearest edge of the part.
func distanceToOutline(p model.CutProfile, pt model.Point2D) float64 {
	if p.Shape == model.ShapeCircle {
		c := p.Center()
		return p.Radius - math.Hypot(pt.X-c.X, pt.Y-c.Y)
	}

	best := math.Inf(1)
	n := len(p.Outline)
	for i := range p.Outline {
		d := distanceToSegment(pt, p.Outline[i], p.Outline[(i+1)%n])
		if d < best {
			best = d
		}
	}
	return best
}

// distanceToSegment returns the distance from pt to the segment ab.
func distanceToSegment(pt, a, b model.Point2D) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(pt.X-a.X, pt.Y-a.Y)
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(pt.X-(a.X+t*dx), pt.Y-(a.Y+t*dy))
}

// FormatWebWarnings produces human-readable warning messages from web violations.
func FormatWebWarnings(violations []WebViolation) []string {
	var warnings []string
	for _, v := range violations {
		target := "the part edge"
		if v.Other >= 0 {
			target = fmt.Sprintf("hole %d", v.Other+1)
		}
		warnings = append(warnings, fmt.Sprintf(
			"Hole %d leaves only %.3f in of material to %s", v.Hole+1, v.Web, target))
	}
	return warnings
}
