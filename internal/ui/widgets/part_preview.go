package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// canvasUnits is the side of the square preview canvas primitives are laid out on.
const canvasUnits = 100

// Preview palette.
var (
	colorOutlineFill   = color.NRGBA{R: 224, G: 231, B: 255, A: 255}
	colorOutlineStroke = color.NRGBA{R: 165, G: 180, B: 252, A: 255}
	colorHoleFill      = color.NRGBA{R: 251, G: 207, B: 232, A: 255}
	colorHoleStroke    = color.NRGBA{R: 244, G: 114, B: 182, A: 255}
	colorBackdrop      = color.NRGBA{R: 248, G: 250, B: 252, A: 255}
)

// placeholderAlpha fades hover previews so they read as "not your part yet".
const placeholderAlpha = 110

// PartPreview renders a geometry result's primitives, scaled from the
// 100x100 canvas into the widget's square area.
type PartPreview struct {
	widget.BaseWidget
	geometry model.GeometryResult
	minSide  float32
}

// NewPartPreview creates an empty preview at least minSide pixels square.
func NewPartPreview(minSide float32) *PartPreview {
	p := &PartPreview{minSide: minSide}
	p.ExtendBaseWidget(p)
	return p
}

// SetGeometry replaces the drawn geometry.
func (p *PartPreview) SetGeometry(g model.GeometryResult) {
	p.geometry = g
	p.Refresh()
}

// Geometry returns the geometry being drawn.
func (p *PartPreview) Geometry() model.GeometryResult {
	return p.geometry
}

func (p *PartPreview) CreateRenderer() fyne.WidgetRenderer {
	r := &partPreviewRenderer{p: p}
	r.rebuild()
	return r
}

type partPreviewRenderer struct {
	p       *PartPreview
	size    fyne.Size
	objects []fyne.CanvasObject
}

// PreviewTransform returns the pixels per canvas unit and the top-left
// offset that center the square canvas in an area of the given size.
func PreviewTransform(size fyne.Size) (float32, fyne.Position) {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	if side <= 0 {
		return 0, fyne.NewPos(0, 0)
	}
	return side / canvasUnits, fyne.NewPos((size.Width-side)/2, (size.Height-side)/2)
}

func (r *partPreviewRenderer) rebuild() {
	r.objects = nil

	size := r.size
	if size.Width <= 0 || size.Height <= 0 {
		size = fyne.NewSize(r.p.minSide, r.p.minSide)
	}
	scale, offset := PreviewTransform(size)

	bg := canvas.NewRectangle(colorBackdrop)
	bg.CornerRadius = theme.InputRadiusSize()
	bg.Resize(fyne.NewSize(canvasUnits*scale, canvasUnits*scale))
	bg.Move(offset)
	r.objects = append(r.objects, bg)

	g := r.p.geometry
	if len(g.Primitives) == 0 {
		hint := canvas.NewText("Choose a part template", theme.Color(theme.ColorNamePlaceHolder))
		hint.Alignment = fyne.TextAlignCenter
		hint.Move(fyne.NewPos(offset.X+canvasUnits*scale/2, offset.Y+canvasUnits*scale/2-hint.TextSize))
		r.objects = append(r.objects, hint)
		return
	}

	at := func(x, y float64) fyne.Position {
		return fyne.NewPos(offset.X+float32(x)*scale, offset.Y+float32(y)*scale)
	}

	for _, prim := range g.Primitives {
		fill, stroke := colorOutlineFill, colorOutlineStroke
		if prim.Role == model.RoleHole {
			fill, stroke = colorHoleFill, colorHoleStroke
		}
		if prim.Placeholder {
			fill.A, stroke.A = placeholderAlpha, placeholderAlpha
		}

		switch prim.Kind {
		case model.ShapeRect:
			rect := canvas.NewRectangle(fill)
			rect.StrokeColor = stroke
			rect.StrokeWidth = 2
			rect.Resize(fyne.NewSize(float32(prim.W)*scale, float32(prim.H)*scale))
			rect.Move(at(prim.X, prim.Y))
			r.objects = append(r.objects, rect)

		case model.ShapeCircle:
			circle := canvas.NewCircle(fill)
			circle.StrokeColor = stroke
			circle.StrokeWidth = 2
			d := float32(prim.R*2) * scale
			circle.Resize(fyne.NewSize(d, d))
			circle.Move(at(prim.CX-prim.R, prim.CY-prim.R))
			r.objects = append(r.objects, circle)

		case model.ShapePolygon:
			r.objects = append(r.objects, polygonFill(prim.Points, fill, scale, offset, size))
			for i := range prim.Points {
				a, b := prim.Points[i], prim.Points[(i+1)%len(prim.Points)]
				edge := canvas.NewLine(stroke)
				edge.StrokeWidth = 2
				edge.Position1 = at(a.X, a.Y)
				edge.Position2 = at(b.X, b.Y)
				r.objects = append(r.objects, edge)
			}
		}
	}
}

// polygonFill rasterizes a filled polygon over the whole preview area.
// Fyne has no polygon primitive, so pixels are tested against the outline.
func polygonFill(points []model.Point2D, fill color.NRGBA, scale float32, offset fyne.Position, area fyne.Size) fyne.CanvasObject {
	pts := make([]model.Point2D, len(points))
	copy(pts, points)
	raster := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		if w == 0 || h == 0 || scale == 0 {
			return color.Transparent
		}
		// Raster pixels may be denser than layout units on HiDPI screens.
		px := float32(x) * area.Width / float32(w)
		py := float32(y) * area.Height / float32(h)
		u := float64((px - offset.X) / scale)
		v := float64((py - offset.Y) / scale)
		if PointInPolygon(model.Point2D{X: u, Y: v}, pts) {
			return fill
		}
		return color.Transparent
	})
	raster.Resize(area)
	raster.Move(fyne.NewPos(0, 0))
	return raster
}

// PointInPolygon reports whether pt lies inside the polygon (even-odd rule).
func PointInPolygon(pt model.Point2D, poly []model.Point2D) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) && pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func (r *partPreviewRenderer) Layout(size fyne.Size) {
	if size != r.size {
		r.size = size
		r.rebuild()
	}
}

func (r *partPreviewRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.p)
}

func (r *partPreviewRenderer) Destroy()                     {}
func (r *partPreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *partPreviewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.p.minSide, r.p.minSide)
}
