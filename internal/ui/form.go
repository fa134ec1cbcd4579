package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
)

// otherLabel is shown for the manual-quote sentinel in material and thickness selects.
const otherLabel = "Other (manual quote)"

// choice pairs a stored id with the text shown in a select.
type choice struct {
	ID    string
	Label string
}

func materialChoices(c *model.Catalog) []choice {
	out := make([]choice, 0, len(c.Materials)+1)
	for _, m := range c.Materials {
		out = append(out, choice{ID: m.ID, Label: m.Name})
	}
	return append(out, choice{ID: model.OtherOption, Label: otherLabel})
}

// thicknessChoices lists the priced thicknesses of a material followed by
// Other. An Other material only offers Other.
func thicknessChoices(c *model.Catalog, material string) []choice {
	var out []choice
	if material != model.OtherOption {
		for _, t := range c.PricedThicknesses(material) {
			out = append(out, choice{ID: t.ID, Label: t.Label})
		}
	}
	return append(out, choice{ID: model.OtherOption, Label: otherLabel})
}

func finishingChoices(c *model.Catalog) []choice {
	out := make([]choice, len(c.Finishings))
	for i, f := range c.Finishings {
		out[i] = choice{ID: f.ID, Label: f.Name}
	}
	return out
}

func choiceLabels(cs []choice) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Label
	}
	return out
}

func idForLabel(cs []choice, label string) string {
	for _, c := range cs {
		if c.Label == label {
			return c.ID
		}
	}
	return ""
}

func labelForID(cs []choice, id string) string {
	for _, c := range cs {
		if c.ID == id {
			return c.Label
		}
	}
	return ""
}

// dimensionField is one numeric input of the part form.
type dimensionField struct {
	Label string
	Field func(*model.PartSpec) *float64
}

var (
	fieldWidth        = dimensionField{"Width (in)", func(s *model.PartSpec) *float64 { return &s.Width }}
	fieldHeight       = dimensionField{"Height (in)", func(s *model.PartSpec) *float64 { return &s.Height }}
	fieldDiameter     = dimensionField{"Diameter (in)", func(s *model.PartSpec) *float64 { return &s.Diameter }}
	fieldBase         = dimensionField{"Base (in)", func(s *model.PartSpec) *float64 { return &s.Base }}
	fieldHoleDiameter = dimensionField{"Hole diameter (in)", func(s *model.PartSpec) *float64 { return &s.HoleDiameter }}
	fieldHoleOffset   = dimensionField{"Hole offset (in)", func(s *model.PartSpec) *float64 { return &s.HoleOffset }}
)

// dimensionFields returns the inputs a template is dimensioned by, in form order.
func dimensionFields(t model.Template) []dimensionField {
	switch t {
	case model.TemplateRectangle:
		return []dimensionField{fieldWidth, fieldHeight}
	case model.TemplateCircle:
		return []dimensionField{fieldDiameter}
	case model.TemplateRectHoles:
		return []dimensionField{fieldWidth, fieldHeight, fieldHoleDiameter, fieldHoleOffset}
	case model.TemplateTriangleHoles:
		return []dimensionField{fieldBase, fieldHeight, fieldHoleDiameter, fieldHoleOffset}
	default:
		return nil
	}
}

// parseDimension reads an inch value. Blank, unreadable or non-finite text is 0, which
// the resolver reports as a missing dimension. A trailing inch mark is allowed.
func parseDimension(text string) float64 {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(text, `"`), "in"))
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func formatDimension(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseQuantity reads a part count; unreadable text is 0 so the engine flags it.
func parseQuantity(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0
	}
	return n
}

// summaryLine is one label/value row of the quote summary panel.
type summaryLine struct {
	Label string
	Value string
}

// metricLines describes the part geometry and the cost build-up. Costs are
// only listed once the combination has been priced.
func metricLines(q model.Quote) []summaryLine {
	g := q.Geometry
	if !g.Valid {
		return nil
	}
	lines := []summaryLine{
		{"Area", fmt.Sprintf("%s sq in", humanize.FormatFloat("#,###.##", g.Area))},
		{"Perimeter", fmt.Sprintf("%.2f in", g.Perimeter)},
	}
	if g.HoleCount > 0 {
		lines = append(lines, summaryLine{"Holes", fmt.Sprintf("%d (%.2f in of cut)", g.HoleCount, g.HoleCutLength)})
	}
	lines = append(lines, summaryLine{"Cut length", fmt.Sprintf("%.2f in", g.CutLength())})

	r := q.Result
	if r.Estimable || len(r.Tiers) > 0 {
		lines = append(lines,
			summaryLine{"Cut time", fmt.Sprintf("%.1f s", r.CutTimeSeconds)},
			summaryLine{"Material", model.FormatCurrency(r.MaterialCost)},
			summaryLine{"Cutting", model.FormatCurrency(r.CuttingCost)},
			summaryLine{"Base unit cost", model.FormatCurrency(r.BaseUnitCost)},
		)
	}
	return lines
}

// quoteStatus is the headline of the summary panel.
type quoteStatus int

const (
	statusEstimate quoteStatus = iota
	statusEstimateReview
	statusManualReview
	statusInvalid
)

func statusFor(q model.Quote) quoteStatus {
	switch {
	case q.Result.Estimable && q.Result.ManualReview:
		return statusEstimateReview
	case q.Result.Estimable:
		return statusEstimate
	case q.Result.ManualReview:
		return statusManualReview
	default:
		return statusInvalid
	}
}

func (s quoteStatus) String() string {
	switch s {
	case statusEstimate:
		return "Instant estimate"
	case statusEstimateReview:
		return "Estimate, finishing needs manual review"
	case statusManualReview:
		return "Manual review required"
	default:
		return "Cannot quote yet"
	}
}

// discountText shows a tier multiplier as a percentage off.
func discountText(multiplier float64) string {
	if multiplier >= 1 {
		return "-"
	}
	return fmt.Sprintf("%.0f%% off", (1-multiplier)*100)
}

// exportFileName builds a default file name from the part label.
func exportFileName(label, ext string) string {
	name := strings.ToLower(strings.TrimSpace(label))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
	if name == "" {
		name = "part"
	}
	return name + "." + ext
}

// previewGeometry picks what the preview draws for a quote: the part itself
// when it resolves, else the chosen template's placeholder shape.
func previewGeometry(q model.Quote) model.GeometryResult {
	if len(q.Geometry.Primitives) > 0 {
		return q.Geometry
	}
	if t := q.Request.Part.Template; t.Known() {
		return engine.Resolve(model.Placeholder{Template: t})
	}
	return model.GeometryResult{}
}
