package engine

import (
	"math"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// Resolve derives area, perimeter, hole cut length and preview primitives
// from a part. It never fails: problems are reported through Valid and Issues.
func Resolve(input model.GeometryInput) model.GeometryResult {
	switch in := input.(type) {
	case model.Concrete:
		return resolve(in.Spec, false)
	case model.Placeholder:
		return resolve(model.PlaceholderSpec(in.Template), true)
	default:
		return model.GeometryResult{Issues: []model.Issue{model.IssueNoTemplate}}
	}
}

func resolve(spec model.PartSpec, placeholder bool) model.GeometryResult {
	result := model.GeometryResult{Template: spec.Template}

	area, perimeter, ok := measure(spec)
	if !ok {
		if !spec.Template.Known() {
			result.Issues = []model.Issue{model.IssueNoTemplate}
		} else {
			result.Issues = []model.Issue{model.IssueMissingDimension}
		}
		return result
	}

	result.Area = area
	result.Perimeter = perimeter
	result.HoleCount = spec.Template.HoleCount()
	result.Valid = true
	result.Placeholder = placeholder

	holesOK := true
	if result.HoleCount > 0 {
		if issue := holeIssue(spec); issue != "" && !placeholder {
			result.Valid = false
			result.Issues = append(result.Issues, issue)
			holesOK = false
		} else {
			result.HoleCutLength = float64(result.HoleCount) * math.Pi * spec.HoleDiameter
		}
	}

	profile := cutProfile(spec, holesOK)
	result.ScaleFactor, result.Primitives = PreviewPrimitives(profile, placeholder)
	return result
}

// measure returns the area and outline perimeter of a part, or false when
// the dimensions its template needs are missing, not positive or not finite.
func measure(spec model.PartSpec) (area, perimeter float64, ok bool) {
	switch spec.Template {
	case model.TemplateRectangle, model.TemplateRectHoles:
		if !positive(spec.Width) || !positive(spec.Height) {
			return 0, 0, false
		}
		return spec.Width * spec.Height, 2 * (spec.Width + spec.Height), true
	case model.TemplateCircle:
		if !positive(spec.Diameter) {
			return 0, 0, false
		}
		r := spec.Diameter / 2
		return math.Pi * r * r, math.Pi * spec.Diameter, true
	case model.TemplateTriangleHoles:
		if !positive(spec.Base) || !positive(spec.Height) {
			return 0, 0, false
		}
		side := math.Sqrt(math.Pow(spec.Base/2, 2) + math.Pow(spec.Height, 2))
		return 0.5 * spec.Base * spec.Height, spec.Base + 2*side, true
	default:
		return 0, 0, false
	}
}

// positive reports whether v is a usable length: finite and above zero.
// NaN fails every comparison, so the check is written in the positive form.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// smallestDimension is the dimension hole placement is checked against.
func smallestDimension(spec model.PartSpec) float64 {
	if spec.Template == model.TemplateTriangleHoles {
		return math.Min(spec.Base, spec.Height)
	}
	return math.Min(spec.Width, spec.Height)
}

// holeIssue reports why the requested holes cannot be cut, or "" if they can.
func holeIssue(spec model.PartSpec) model.Issue {
	if !positive(spec.HoleDiameter) || !positive(spec.HoleOffset) {
		return model.IssueMissingHoleParams
	}
	smallest := smallestDimension(spec)
	if 2*spec.HoleOffset >= smallest || spec.HoleDiameter >= smallest {
		return model.IssueHolesInfeasible
	}
	return ""
}

// CutProfileFor returns the part outline and hole centers in inches. The
// second return value is false when the part's dimensions are missing.
// Holes are only included when they are feasible.
func CutProfileFor(spec model.PartSpec) (model.CutProfile, bool) {
	if _, _, ok := measure(spec); !ok {
		return model.CutProfile{}, false
	}
	return cutProfile(spec, holeIssue(spec) == ""), true
}

func cutProfile(spec model.PartSpec, withHoles bool) model.CutProfile {
	switch spec.Template {
	case model.TemplateRectangle, model.TemplateRectHoles:
		w, h := spec.Width, spec.Height
		p := model.CutProfile{
			Shape:   model.ShapeRect,
			Width:   w,
			Height:  h,
			Outline: model.Outline{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}},
		}
		if withHoles && spec.Template.HasHoles() {
			o := spec.HoleOffset
			for _, c := range []model.Point2D{{X: o, Y: o}, {X: w - o, Y: o}, {X: o, Y: h - o}, {X: w - o, Y: h - o}} {
				p.Holes = append(p.Holes, model.Hole{Center: c, Diameter: spec.HoleDiameter})
			}
		}
		return p
	case model.TemplateCircle:
		return model.CutProfile{
			Shape:  model.ShapeCircle,
			Width:  spec.Diameter,
			Height: spec.Diameter,
			Radius: spec.Diameter / 2,
		}
	case model.TemplateTriangleHoles:
		b, h := spec.Base, spec.Height
		outline := model.Outline{{X: 0, Y: h}, {X: b, Y: h}, {X: b / 2, Y: 0}}
		p := model.CutProfile{
			Shape:   model.ShapePolygon,
			Width:   b,
			Height:  h,
			Outline: outline,
		}
		if withHoles {
			for _, c := range bisectorHoleCenters(outline, spec.HoleOffset) {
				p.Holes = append(p.Holes, model.Hole{Center: c, Diameter: spec.HoleDiameter})
			}
		}
		return p
	default:
		return model.CutProfile{}
	}
}

// bisectorHoleCenters places one hole per vertex, offset along the interior
// angle bisector.
func bisectorHoleCenters(vertices model.Outline, offset float64) []model.Point2D {
	n := len(vertices)
	centers := make([]model.Point2D, 0, n)
	for i, v := range vertices {
		prev := vertices[(i+n-1)%n]
		next := vertices[(i+1)%n]

		bisector := normalize(add(normalize(sub(prev, v)), normalize(sub(next, v))))
		toOpposite := sub(midpoint(prev, next), v)
		if dot(bisector, toOpposite) < 0 {
			bisector = scale(bisector, -1)
		}
		centers = append(centers, add(v, scale(bisector, offset)))
	}
	return centers
}
