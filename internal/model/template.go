package model

import "strings"

// Template identifies one of the part shapes the calculator can price.
type Template string

const (
	TemplateNone          Template = ""
	TemplateRectangle     Template = "rectangle"
	TemplateCircle        Template = "circle"
	TemplateRectHoles     Template = "rect_holes"
	TemplateTriangleHoles Template = "triangle_holes"
)

var templateOrder = []Template{
	TemplateRectangle,
	TemplateCircle,
	TemplateRectHoles,
	TemplateTriangleHoles,
}

var templateNames = map[Template]string{
	TemplateRectangle:     "Rectangle / Square",
	TemplateCircle:        "Circle / Disc",
	TemplateRectHoles:     "Rectangle w/ Holes",
	TemplateTriangleHoles: "Triangle w/ Holes",
}

// Templates returns every supported template in display order.
func Templates() []Template {
	out := make([]Template, len(templateOrder))
	copy(out, templateOrder)
	return out
}

// ParseTemplate accepts a template id or its display name, case-insensitively.
func ParseTemplate(s string) (Template, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range templateOrder {
		if s == string(t) || s == strings.ToLower(templateNames[t]) {
			return t, true
		}
	}
	return TemplateNone, false
}

// DisplayName returns the label shown on template buttons.
func (t Template) DisplayName() string {
	if name, ok := templateNames[t]; ok {
		return name
	}
	return "None"
}

// Known reports whether t is one of the supported templates.
func (t Template) Known() bool {
	_, ok := templateNames[t]
	return ok
}

// HoleCount is the number of holes the template places (one per corner or vertex).
func (t Template) HoleCount() int {
	switch t {
	case TemplateRectHoles:
		return 4
	case TemplateTriangleHoles:
		return 3
	default:
		return 0
	}
}

// HasHoles reports whether the template takes hole diameter and offset inputs.
func (t Template) HasHoles() bool {
	return t.HoleCount() > 0
}

// IsRectangular reports whether the template is dimensioned by width and height.
func (t Template) IsRectangular() bool {
	return t == TemplateRectangle || t == TemplateRectHoles
}

// PartSpec is the numeric description of one part. All lengths are inches;
// zero means the field has not been entered. Triangles use Base and Height
// (the altitude from the base).
type PartSpec struct {
	Template     Template `json:"template"`
	Width        float64  `json:"width,omitempty"`
	Height       float64  `json:"height,omitempty"`
	Diameter     float64  `json:"diameter,omitempty"`
	Base         float64  `json:"base,omitempty"`
	HoleDiameter float64  `json:"hole_diameter,omitempty"`
	HoleOffset   float64  `json:"hole_offset,omitempty"`
}

// GeometryInput is what the geometry resolver accepts: either a concrete
// part or a bare template to draw with representative dimensions.
type GeometryInput interface {
	geometryInput()
}

// Concrete wraps a user-entered part specification.
type Concrete struct {
	Spec PartSpec
}

// Placeholder asks for a generic preview of a template.
type Placeholder struct {
	Template Template
}

func (Concrete) geometryInput()    {}
func (Placeholder) geometryInput() {}

// Representative dimensions used to draw a template before the user enters any.
const (
	placeholderRectWidth    = 70.0
	placeholderRectHeight   = 50.0
	placeholderCircleRadius = 30.0
	placeholderTriBase      = 70.0
	placeholderTriHeight    = 60.0
	placeholderHoleDiameter = 8.0
	placeholderHoleOffset   = 10.0
)

// PlaceholderSpec returns the fixed preview dimensions for a template.
func PlaceholderSpec(t Template) PartSpec {
	spec := PartSpec{Template: t}
	switch t {
	case TemplateRectangle:
		spec.Width, spec.Height = placeholderRectWidth, placeholderRectHeight
	case TemplateCircle:
		spec.Diameter = placeholderCircleRadius * 2
	case TemplateRectHoles:
		spec.Width, spec.Height = placeholderRectWidth, placeholderRectHeight
		spec.HoleDiameter, spec.HoleOffset = placeholderHoleDiameter, placeholderHoleOffset
	case TemplateTriangleHoles:
		spec.Base, spec.Height = placeholderTriBase, placeholderTriHeight
		spec.HoleDiameter, spec.HoleOffset = placeholderHoleDiameter, placeholderHoleOffset
	}
	return spec
}
