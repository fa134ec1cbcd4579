package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// defaultFeedRate is used when the settings carry no feed rate, in/min.
const defaultFeedRate = 300.0

// Generator produces a cutting program for a single quoted part.
type Generator struct {
	Settings model.CutSettings
	profile  model.GCodeProfile
}

// New creates a generator using the profile named in the settings.
func New(settings model.CutSettings) *Generator {
	return NewWithProfile(settings, model.GetProfile(settings.GCodeProfile))
}

// NewWithProfile creates a generator for a profile that need not be registered.
func NewWithProfile(settings model.CutSettings, profile model.GCodeProfile) *Generator {
	return &Generator{
		Settings: settings,
		profile:  profile,
	}
}

// contour is one closed cut path in machine coordinates.
type contour struct {
	name   string
	points []model.Point2D
}

// Generate produces the cutting program for a part profile. Holes are cut
// before the outline so the part stays anchored in the sheet until last.
// Machine coordinates put the origin at the bottom-left of the part.
func (g *Generator) Generate(p model.CutProfile, label string) string {
	var b strings.Builder

	contours := g.contours(p)
	g.writeHeader(&b, p, label, len(contours))
	for _, c := range contours {
		g.writeContour(&b, c)
	}
	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) feedRate() float64 {
	if g.Settings.FeedRate > 0 {
		return g.Settings.FeedRate
	}
	return defaultFeedRate
}

func (g *Generator) segments() int {
	if g.Settings.ArcSegments < 8 {
		return 8
	}
	return g.Settings.ArcSegments
}

// contours flips the profile to CAD orientation (y up) and returns the holes
// followed by the outline.
func (g *Generator) contours(p model.CutProfile) []contour {
	flip := func(pt model.Point2D) model.Point2D {
		return model.Point2D{X: pt.X, Y: p.Height - pt.Y}
	}

	// Holes first
	var out []contour
	for i, h := range p.Holes {
		out = append(out, contour{
			name:   fmt.Sprintf("Hole %d (d=%s)", i+1, g.format(h.Diameter)),
			points: g.circlePoints(flip(h.Center), h.Diameter/2),
		})
	}

	// Outline last, closed back onto its first point
	switch p.Shape {
	case model.ShapeCircle:
		out = append(out, contour{
			name:   fmt.Sprintf("Outline (d=%s)", g.format(p.Radius*2)),
			points: g.circlePoints(flip(p.Center()), p.Radius),
		})
	case model.ShapeRect, model.ShapePolygon:
		if len(p.Outline) < 3 {
			break
		}
		pts := make([]model.Point2D, 0, len(p.Outline)+1)
		for _, v := range p.Outline {
			pts = append(pts, flip(v))
		}
		pts = append(pts, pts[0])
		out = append(out, contour{
			name:   fmt.Sprintf("Outline (%s x %s)", g.format(p.Width), g.format(p.Height)),
			points: pts,
		})
	}
	return out
}

// circlePoints approximates a circle with chords, starting and ending at
// the rightmost point.
func (g *Generator) circlePoints(c model.Point2D, r float64) []model.Point2D {
	n := g.segments()
	pts := make([]model.Point2D, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i%n) / float64(n)
		pts = append(pts, model.Point2D{X: c.X + r*math.Cos(a), Y: c.Y + r*math.Sin(a)})
	}
	return pts
}

func (g *Generator) writeHeader(b *strings.Builder, p model.CutProfile, label string, count int) {
	pr := g.profile

	// Write file header comment
	b.WriteString(g.comment(fmt.Sprintf("SheetQuote cutting program: %s", label)))
	b.WriteString(g.comment(fmt.Sprintf("Part: %s x %s in, %d holes", g.format(p.Width), g.format(p.Height), len(p.Holes))))
	b.WriteString(g.comment(fmt.Sprintf("Contours: %d, Feed: %.0f in/min, Pierce delay: %.2fs", count, g.feedRate(), g.Settings.PierceDelay)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", pr.Name)))
	b.WriteString("\n")

	// Write startup codes
	for _, code := range pr.StartCode {
		b.WriteString(code + "\n")
	}
	// Initial safe torch height, then home over the part origin
	if pr.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s\n", pr.RapidMove, g.format(g.Settings.SafeHeight)))
	}
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", pr.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

func (g *Generator) writeContour(b *strings.Builder, c contour) {
	pr := g.profile
	if len(c.points) < 2 {
		b.WriteString(g.comment(fmt.Sprintf("WARNING: %s has no cut path, skipping", c.name)))
		return
	}

	b.WriteString(g.comment("--- " + c.name + " ---"))
	// Rapid to first point
	start := c.points[0]
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", pr.RapidMove, g.format(start.X), g.format(start.Y)))

	// Pierce
	if pr.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s\n", pr.RapidMove, g.format(g.Settings.PierceHeight)))
	}
	b.WriteString(pr.BeamOn + "\n")
	if g.Settings.PierceDelay > 0 && pr.Dwell != "" {
		b.WriteString(fmt.Sprintf(pr.Dwell+"\n", g.Settings.PierceDelay))
	}
	if pr.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", pr.FeedMove, g.format(g.Settings.CutHeight), g.format(g.feedRate())))
	}

	// Cut
	for i, pt := range c.points[1:] {
		if i == 0 {
			b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", pr.FeedMove, g.format(pt.X), g.format(pt.Y), g.format(g.feedRate())))
			continue
		}
		b.WriteString(fmt.Sprintf("%s X%s Y%s\n", pr.FeedMove, g.format(pt.X), g.format(pt.Y)))
	}

	// Beam off and retract
	b.WriteString(pr.BeamOff + "\n")
	if pr.UsesZ {
		b.WriteString(fmt.Sprintf("%s Z%s\n", pr.RapidMove, g.format(g.Settings.SafeHeight)))
	}
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	b.WriteString(g.comment("=== Job complete ==="))
	// Write end codes
	for _, code := range g.profile.EndCode {
		// Replace [SafeZ] placeholder
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeHeight))
		b.WriteString(code + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}
