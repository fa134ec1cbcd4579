package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/SheetQuote/internal/gcode"
	"github.com/piwi3910/SheetQuote/internal/model"
)

// Toolpath colors for different move types.
var (
	colorRapid   = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // Red for rapid moves
	colorFeed    = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // Blue for cutting moves
	colorPierce  = color.NRGBA{R: 50, G: 200, B: 50, A: 220}   // Green for pierce points
	colorTorchZ  = color.NRGBA{R: 180, G: 180, B: 0, A: 180}   // Yellow for torch height moves
	colorSheet   = color.NRGBA{R: 226, G: 232, B: 240, A: 255} // Steel gray for the sheet
	colorPartOut = color.NRGBA{R: 100, G: 130, B: 180, A: 160} // Part outline under the path
)

// previewMargin keeps pierce markers on the edge of the part visible.
const previewMargin = 12

// ToolpathPreview renders a cutting program over the part it cuts. Program
// coordinates are y-up with the origin at the part's bottom-left corner.
type ToolpathPreview struct {
	widget.BaseWidget
	moves     []gcode.GCodeMove
	profile   model.CutProfile
	maxWidth  float32
	maxHeight float32
}

// NewToolpathPreview creates a preview of moves cut from profile.
func NewToolpathPreview(moves []gcode.GCodeMove, profile model.CutProfile, maxW, maxH float32) *ToolpathPreview {
	tp := &ToolpathPreview{
		moves:     moves,
		profile:   profile,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	tp.ExtendBaseWidget(tp)
	return tp
}

// CreateRenderer implements fyne.Widget.
func (tp *ToolpathPreview) CreateRenderer() fyne.WidgetRenderer {
	r := &toolpathPreviewRenderer{tp: tp}
	r.rebuild()
	return r
}

type toolpathPreviewRenderer struct {
	tp      *ToolpathPreview
	objects []fyne.CanvasObject
}

func (tp *ToolpathPreview) scale() float32 {
	w, h := float32(tp.profile.Width), float32(tp.profile.Height)
	if w <= 0 || h <= 0 {
		return 0
	}
	scale := (tp.maxWidth - previewMargin*2) / w
	if s := (tp.maxHeight - previewMargin*2) / h; s < scale {
		scale = s
	}
	if scale <= 0 {
		scale = 1
	}
	return scale
}

func (r *toolpathPreviewRenderer) rebuild() {
	r.objects = nil

	tp := r.tp
	p := tp.profile
	scale := tp.scale()
	if scale == 0 {
		return
	}

	// Profile space is y-down; program space is y-up.
	profilePos := func(x, y float64) fyne.Position {
		return fyne.NewPos(previewMargin+float32(x)*scale, previewMargin+float32(y)*scale)
	}
	programPos := func(x, y float64) fyne.Position {
		return profilePos(x, p.Height-y)
	}

	bg := canvas.NewRectangle(colorSheet)
	bg.Resize(fyne.NewSize(float32(p.Width)*scale+previewMargin*2, float32(p.Height)*scale+previewMargin*2))
	r.objects = append(r.objects, bg)

	// Part outline and holes
	switch p.Shape {
	case model.ShapeCircle:
		r.addCircleOutline(profilePos(p.Width/2-p.Radius, p.Height/2-p.Radius), float32(p.Radius*2)*scale)
	default:
		for i := range p.Outline {
			a, b := p.Outline[i], p.Outline[(i+1)%len(p.Outline)]
			edge := canvas.NewLine(colorPartOut)
			edge.StrokeWidth = 1.5
			edge.Position1 = profilePos(a.X, a.Y)
			edge.Position2 = profilePos(b.X, b.Y)
			r.objects = append(r.objects, edge)
		}
	}
	for _, h := range p.Holes {
		rad := h.Diameter / 2
		r.addCircleOutline(profilePos(h.Center.X-rad, h.Center.Y-rad), float32(h.Diameter)*scale)
	}

	// Toolpath
	cutting := false
	for _, m := range tp.moves {
		from := programPos(m.FromX, m.FromY)
		to := programPos(m.ToX, m.ToY)
		xyDist := m.Length()

		switch m.Type {
		case gcode.MoveRapid:
			cutting = false
			if xyDist < 0.001 {
				continue
			}
			line := canvas.NewLine(colorRapid)
			line.StrokeWidth = 1
			line.Position1 = from
			line.Position2 = to
			r.objects = append(r.objects, line)
			r.drawDashedOverlay(from, to)

		case gcode.MoveFeed:
			if xyDist < 0.001 {
				continue
			}
			if !cutting {
				r.addMarker(from, 5, colorPierce)
			}
			cutting = true
			line := canvas.NewLine(colorFeed)
			line.StrokeWidth = 2
			line.Position1 = from
			line.Position2 = to
			r.objects = append(r.objects, line)

		case gcode.MovePlunge, gcode.MoveRetract:
			if m.Type == gcode.MoveRetract {
				cutting = false
			}
			r.addMarker(from, 3, colorTorchZ)
		}
	}
}

func (r *toolpathPreviewRenderer) addCircleOutline(pos fyne.Position, d float32) {
	c := canvas.NewCircle(color.Transparent)
	c.StrokeColor = colorPartOut
	c.StrokeWidth = 1.5
	c.Resize(fyne.NewSize(d, d))
	c.Move(pos)
	r.objects = append(r.objects, c)
}

func (r *toolpathPreviewRenderer) addMarker(at fyne.Position, size float32, col color.NRGBA) {
	marker := canvas.NewCircle(col)
	marker.Resize(fyne.NewSize(size, size))
	marker.Move(fyne.NewPos(at.X-size/2, at.Y-size/2))
	r.objects = append(r.objects, marker)
}

// drawDashedOverlay adds alternating gaps along a rapid move line for dashed appearance.
func (r *toolpathPreviewRenderer) drawDashedOverlay(from, to fyne.Position) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	// Overlay background-colored segments for gaps
	cursor := dashLen
	for cursor+gapLen < length {
		gap := canvas.NewLine(colorSheet)
		gap.StrokeWidth = 2.5
		gap.Position1 = fyne.NewPos(from.X+nx*cursor, from.Y+ny*cursor)
		gap.Position2 = fyne.NewPos(from.X+nx*(cursor+gapLen), from.Y+ny*(cursor+gapLen))
		r.objects = append(r.objects, gap)

		cursor += dashLen + gapLen
	}
}

func (r *toolpathPreviewRenderer) Layout(size fyne.Size)        {}
func (r *toolpathPreviewRenderer) Refresh()                     { r.rebuild() }
func (r *toolpathPreviewRenderer) Destroy()                     {}
func (r *toolpathPreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *toolpathPreviewRenderer) MinSize() fyne.Size {
	tp := r.tp
	scale := tp.scale()
	if scale == 0 {
		return fyne.NewSize(100, 100)
	}
	return fyne.NewSize(
		float32(tp.profile.Width)*scale+previewMargin*2,
		float32(tp.profile.Height)*scale+previewMargin*2,
	)
}

// RenderToolpathPreview creates a preview panel for a part's cutting
// program: the toolpath drawing, a color legend and the program statistics.
func RenderToolpathPreview(profile model.CutProfile, program string, feedRate float64) fyne.CanvasObject {
	moves := gcode.ParseGCode(program)
	preview := NewToolpathPreview(moves, profile, 520, 360)

	stats := widget.NewLabel(fmt.Sprintf(
		"Cut length: %.2f in | Pierces: %d | Estimated cut time: %.0f s",
		gcode.CutLength(moves), gcode.PierceCount(moves), gcode.EstimateCutTime(moves, feedRate),
	))
	stats.TextStyle = fyne.TextStyle{Bold: true}

	legend := container.NewHBox(
		legendItem(colorFeed, "Cut"),
		legendItem(colorRapid, "Rapid"),
		legendItem(colorPierce, "Pierce"),
		legendItem(colorTorchZ, "Torch height"),
	)
	return container.NewVBox(preview, legend, stats)
}

func legendItem(col color.NRGBA, text string) fyne.CanvasObject {
	swatch := canvas.NewRectangle(col)
	swatch.SetMinSize(fyne.NewSize(14, 14))
	return container.NewHBox(swatch, widget.NewLabel(text))
}
