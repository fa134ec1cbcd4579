package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// DXFImport is the outcome of recognizing a part template in a DXF drawing.
// Spec is only meaningful when Errors is empty.
type DXFImport struct {
	Spec     model.PartSpec
	Errors   []string
	Warnings []string
}

// OK reports whether a template was recognized.
func (r DXFImport) OK() bool {
	return len(r.Errors) == 0
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// circle is a CIRCLE entity in drawing coordinates.
type circle struct {
	center model.Point2D
	radius float64
}

// ImportPartDXF reads a drawing in inches and matches it against the part
// templates. The largest closed shape is the part; circles inside it are
// holes. The recognized dimensions are checked by regenerating the part and
// comparing hole positions.
func ImportPartDXF(path string) DXFImport {
	result := DXFImport{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	var circles []circle
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if hasBulge(e) {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with arc segments: rounded outlines do not match a template")
				continue
			}
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			circles = append(circles, circle{
				center: model.Point2D{X: e.Center[0], Y: e.Center[1]},
				radius: e.Radius,
			})

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Arc:
			result.Warnings = append(result.Warnings, "Skipped ARC: arcs do not match a template")
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.001)...)

	body, ok := largestShape(outlines, circles)
	if !ok {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	var holes []circle
	outside, cutouts := 0, 0
	for i, c := range circles {
		if body.isCircle && i == body.index {
			continue
		}
		if body.contains(c.center) {
			holes = append(holes, c)
		} else {
			outside++
		}
	}
	for i, o := range outlines {
		if !body.isCircle && i == body.index {
			continue
		}
		if body.contains(o[0]) {
			cutouts++
		} else {
			outside++
		}
	}
	if cutouts > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d non-circular cutout(s) inside the part", cutouts))
	}
	if outside > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d shape(s) outside the part", outside))
	}

	if body.isCircle {
		result.Spec = model.PartSpec{Template: model.TemplateCircle, Diameter: 2 * body.circle.radius}
		if len(holes) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Circle parts have no holes; ignored %d hole(s)", len(holes)))
		}
		return result
	}

	outline := simplifyOutline(body.outline)
	switch {
	case len(outline) == 4 && isAxisAligned(outline):
		result.Spec, result.Warnings = matchRectangle(outline, holes, result.Warnings)
	case len(outline) == 3:
		spec, warnings, errMsg := matchTriangle(outline, holes, result.Warnings)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			return result
		}
		result.Spec, result.Warnings = spec, warnings
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("Outline with %d corners does not match any part template", len(outline)))
	}
	return result
}

// shape is the part body: either an outline or a circle.
type shape struct {
	isCircle bool
	index    int
	outline  model.Outline
	circle   circle
}

func (s shape) contains(p model.Point2D) bool {
	if s.isCircle {
		return math.Hypot(p.X-s.circle.center.X, p.Y-s.circle.center.Y) < s.circle.radius
	}
	return pointInPolygon(p, s.outline)
}

// largestShape picks the closed shape with the greatest area.
func largestShape(outlines []model.Outline, circles []circle) (shape, bool) {
	best := shape{index: -1}
	bestArea := 0.0
	for i, o := range outlines {
		if a := outlineArea(o); a > bestArea {
			best, bestArea = shape{index: i, outline: o}, a
		}
	}
	for i, c := range circles {
		if a := math.Pi * c.radius * c.radius; a > bestArea {
			best, bestArea = shape{isCircle: true, index: i, circle: c}, a
		}
	}
	return best, best.index >= 0
}

// toProfile converts a drawing point to the y-down coordinates of a cut
// profile whose bounding box is min..max.
func toProfile(p, min, max model.Point2D) model.Point2D {
	return model.Point2D{X: p.X - min.X, Y: max.Y - p.Y}
}

// matchRectangle recognizes a rectangle, with corner holes when four equal
// holes sit at a common offset from the corners.
func matchRectangle(outline model.Outline, holes []circle, warnings []string) (model.PartSpec, []string) {
	min, max := outline.BoundingBox()
	spec := model.PartSpec{Template: model.TemplateRectangle, Width: max.X - min.X, Height: max.Y - min.Y}
	if len(holes) == 0 {
		return spec, warnings
	}

	first := toProfile(holes[0].center, min, max)
	candidate := spec
	candidate.Template = model.TemplateRectHoles
	candidate.HoleDiameter = 2 * holes[0].radius
	candidate.HoleOffset = math.Min(first.X, spec.Width-first.X)

	if len(holes) == 4 && holesMatch(candidate, holes, min, max) {
		return candidate, warnings
	}
	return spec, append(warnings,
		fmt.Sprintf("%d hole(s) do not form an equal corner pattern; quoted without holes", len(holes)))
}

// matchTriangle recognizes an isosceles triangle standing on a horizontal
// base, with one hole per corner on the angle bisectors.
func matchTriangle(outline model.Outline, holes []circle, warnings []string) (model.PartSpec, []string, string) {
	min, max := outline.BoundingBox()
	tol := tolerance(max.X-min.X, max.Y-min.Y)

	baseIdx := -1
	for i := range outline {
		a, b := outline[i], outline[(i+1)%3]
		if math.Abs(a.Y-b.Y) <= tol {
			baseIdx = i
			break
		}
	}
	if baseIdx < 0 {
		return model.PartSpec{}, warnings, "Triangle has no horizontal base"
	}
	a, b := outline[baseIdx], outline[(baseIdx+1)%3]
	apex := outline[(baseIdx+2)%3]
	if math.Abs(apex.X-(a.X+b.X)/2) > tol {
		return model.PartSpec{}, warnings, "Triangle is not isosceles: the apex must sit over the middle of the base"
	}
	if apex.Y < a.Y {
		return model.PartSpec{}, warnings, "Triangle apex must point up"
	}

	spec := model.PartSpec{
		Template: model.TemplateTriangleHoles,
		Base:     math.Abs(b.X - a.X),
		Height:   apex.Y - a.Y,
	}
	if len(holes) != 3 {
		return spec, append(warnings,
			fmt.Sprintf("Found %d hole(s), expected 3; enter hole diameter and offset", len(holes))), ""
	}

	// Offset is the distance from the nearest corner to the first hole.
	offset := math.Inf(1)
	for _, v := range outline {
		offset = math.Min(offset, math.Hypot(v.X-holes[0].center.X, v.Y-holes[0].center.Y))
	}
	candidate := spec
	candidate.HoleDiameter = 2 * holes[0].radius
	candidate.HoleOffset = offset
	if holesMatch(candidate, holes, min, max) {
		return candidate, warnings, ""
	}
	return spec, append(warnings, "Holes are not on the corner bisectors; enter hole diameter and offset"), ""
}

// holesMatch regenerates the candidate part and checks that every expected
// hole has a drawn hole of the same size at the same place.
func holesMatch(candidate model.PartSpec, holes []circle, min, max model.Point2D) bool {
	profile, ok := engine.CutProfileFor(candidate)
	if !ok || len(profile.Holes) != len(holes) {
		return false
	}
	tol := tolerance(profile.Width, profile.Height)
	used := make([]bool, len(holes))
	for _, want := range profile.Holes {
		found := false
		for i, h := range holes {
			if used[i] {
				continue
			}
			got := toProfile(h.center, min, max)
			if pointsClose(got, want.Center, tol) && math.Abs(2*h.radius-want.Diameter) <= tol {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// tolerance scales the matching tolerance with the part size.
func tolerance(w, h float64) float64 {
	return math.Max(1e-4, 1e-4*math.Max(w, h))
}

func hasBulge(lw *entity.LwPolyline) bool {
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

// lwPolylineToOutline converts a straight-sided DXF LWPOLYLINE entity to an Outline.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	outline := make(model.Outline, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		outline = append(outline, model.Point2D{X: v[0], Y: v[1]})
	}
	return outline
}

// simplifyOutline drops repeated points and vertices that lie on a straight
// edge, so a rectangle drawn as eight lines still has four corners.
func simplifyOutline(o model.Outline) model.Outline {
	min, max := o.BoundingBox()
	tol := tolerance(max.X-min.X, max.Y-min.Y)

	var dedup model.Outline
	for _, p := range o {
		if len(dedup) == 0 || !pointsClose(dedup[len(dedup)-1], p, tol) {
			dedup = append(dedup, p)
		}
	}
	if len(dedup) > 1 && pointsClose(dedup[0], dedup[len(dedup)-1], tol) {
		dedup = dedup[:len(dedup)-1]
	}

	var out model.Outline
	n := len(dedup)
	for i, p := range dedup {
		prev, next := dedup[(i+n-1)%n], dedup[(i+1)%n]
		cross := (p.X-prev.X)*(next.Y-p.Y) - (p.Y-prev.Y)*(next.X-p.X)
		edge := math.Hypot(next.X-prev.X, next.Y-prev.Y)
		if edge > 0 && math.Abs(cross)/edge <= tol {
			continue
		}
		out = append(out, p)
	}
	return out
}

// isAxisAligned reports whether every edge is horizontal or vertical.
func isAxisAligned(o model.Outline) bool {
	min, max := o.BoundingBox()
	tol := tolerance(max.X-min.X, max.Y-min.Y)
	for i := range o {
		a, b := o[i], o[(i+1)%len(o)]
		if math.Abs(a.X-b.X) > tol && math.Abs(a.Y-b.Y) > tol {
			return false
		}
	}
	return true
}

// pointInPolygon tests containment by ray casting.
func pointInPolygon(p model.Point2D, o model.Outline) bool {
	inside := false
	n := len(o)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := o[i], o[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) []model.Outline {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines []model.Outline

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Only closed chains describe a part
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, model.Outline(chain[:len(chain)-1]))
		}
	}

	// Sort outlines by area (largest first) for consistent ordering
	sort.Slice(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o model.Outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
