package model

import "math"

// Point2D represents a 2D coordinate. Part geometry is in inches; preview
// primitives use the 0-100 canvas space.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Perimeter returns the length of the closed outline.
func (o Outline) Perimeter() float64 {
	if len(o) < 2 {
		return 0
	}
	var total float64
	for i := range o {
		next := o[(i+1)%len(o)]
		total += math.Hypot(next.X-o[i].X, next.Y-o[i].Y)
	}
	return total
}

// Hole is a round hole cut through the part.
type Hole struct {
	Center   Point2D `json:"center"`
	Diameter float64 `json:"diameter"` // inches
}

// ShapeKind identifies how an outline or primitive is drawn.
type ShapeKind string

const (
	ShapeRect    ShapeKind = "rect"
	ShapeCircle  ShapeKind = "circle"
	ShapePolygon ShapeKind = "polygon"
)

// CutProfile is the cuttable geometry of a part in real units (inches).
// Coordinates are y-down with the origin at the top-left corner of the
// bounding box, the same orientation the preview canvas uses.
type CutProfile struct {
	Shape   ShapeKind `json:"shape"`
	Width   float64   `json:"width"`   // bounding box width
	Height  float64   `json:"height"`  // bounding box height
	Outline Outline   `json:"outline"` // nil for circles
	Radius  float64   `json:"radius"`  // circles only
	Holes   []Hole    `json:"holes,omitempty"`
}

// Center returns the middle of the profile's bounding box.
func (p CutProfile) Center() Point2D {
	return Point2D{X: p.Width / 2, Y: p.Height / 2}
}

// PrimitiveRole tells the renderer whether a primitive is the part body or a hole.
type PrimitiveRole string

const (
	RoleOutline PrimitiveRole = "outline"
	RoleHole    PrimitiveRole = "hole"
)

// Primitive is one renderable shape on the 100x100 preview canvas.
type Primitive struct {
	Kind        ShapeKind     `json:"kind"`
	Role        PrimitiveRole `json:"role"`
	X           float64       `json:"x,omitempty"` // rect top-left
	Y           float64       `json:"y,omitempty"`
	W           float64       `json:"w,omitempty"`
	H           float64       `json:"h,omitempty"`
	CX          float64       `json:"cx,omitempty"` // circle center
	CY          float64       `json:"cy,omitempty"`
	R           float64       `json:"r,omitempty"`
	Points      []Point2D     `json:"points,omitempty"` // polygon vertices
	Placeholder bool          `json:"placeholder,omitempty"`
}

// GeometryResult holds everything derived from one part specification.
type GeometryResult struct {
	Template      Template    `json:"template"`
	Valid         bool        `json:"valid"`
	Placeholder   bool        `json:"placeholder"`
	Area          float64     `json:"area"`            // sq in
	Perimeter     float64     `json:"perimeter"`       // in
	HoleCount     int         `json:"hole_count"`      // 0, 3 or 4
	HoleCutLength float64     `json:"hole_cut_length"` // in
	ScaleFactor   float64     `json:"scale_factor"`    // canvas units per inch
	Primitives    []Primitive `json:"primitives"`
	Issues        []Issue     `json:"issues,omitempty"`
}

// CutLength returns the total tool path: outline plus every hole circumference.
func (g GeometryResult) CutLength() float64 {
	return g.Perimeter + g.HoleCutLength
}

// Outline returns the outline primitive, if any.
func (g GeometryResult) Outline() (Primitive, bool) {
	for _, p := range g.Primitives {
		if p.Role == RoleOutline {
			return p, true
		}
	}
	return Primitive{}, false
}

// Holes returns the hole primitives in drawing order.
func (g GeometryResult) Holes() []Primitive {
	var holes []Primitive
	for _, p := range g.Primitives {
		if p.Role == RoleHole {
			holes = append(holes, p)
		}
	}
	return holes
}
