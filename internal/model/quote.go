package model

import (
	"math"

	"github.com/dustin/go-humanize"
)

// Issue is a machine-readable reason a part or quote is not fully valid.
type Issue string

const (
	IssueNoTemplate         Issue = "no_template"
	IssueMissingDimension   Issue = "missing_dimension"
	IssueMissingHoleParams  Issue = "missing_hole_params"
	IssueHolesInfeasible    Issue = "holes_infeasible"
	IssuePlaceholder        Issue = "placeholder_geometry"
	IssueNoMaterial         Issue = "no_material"
	IssueNoThickness        Issue = "no_thickness"
	IssueOtherMaterial      Issue = "other_material"
	IssueOtherThickness     Issue = "other_thickness"
	IssueMissingOtherDetail Issue = "missing_other_detail"
	IssueUnpriced           Issue = "unpriced_combination"
	IssueMissingColor       Issue = "missing_powder_coat_color"
	IssueMissingFinishDesc  Issue = "missing_custom_finish_description"
	IssueInvalidQuantity    Issue = "invalid_quantity"
)

var issueMessages = map[Issue]string{
	IssueNoTemplate:         "Select a part template",
	IssueMissingDimension:   "Enter all dimensions as positive numbers",
	IssueMissingHoleParams:  "Enter a positive hole diameter and offset",
	IssueHolesInfeasible:    "Holes are too large or too far from the corners for this part",
	IssuePlaceholder:        "Preview only",
	IssueNoMaterial:         "Select a material",
	IssueNoThickness:        "Select a thickness",
	IssueOtherMaterial:      "Custom material requires a manual quote",
	IssueOtherThickness:     "Custom thickness requires a manual quote",
	IssueMissingOtherDetail: "Describe the custom material or thickness",
	IssueUnpriced:           "This material and thickness combination is not priced",
	IssueMissingColor:       "Enter a powder coat color code",
	IssueMissingFinishDesc:  "Describe the custom finishing",
	IssueInvalidQuantity:    "Quantity must be at least 1",
}

// Message returns a human-readable description of the issue.
func (i Issue) Message() string {
	if msg, ok := issueMessages[i]; ok {
		return msg
	}
	return string(i)
}

// QuoteRequest is an immutable snapshot of everything the user has entered.
// It is passed by value; edits build a new snapshot rather than patching one.
type QuoteRequest struct {
	Part                    PartSpec `json:"part"`
	Material                string   `json:"material"`
	OtherMaterial           string   `json:"other_material,omitempty"`
	Thickness               string   `json:"thickness"`
	OtherThickness          string   `json:"other_thickness,omitempty"`
	Quantity                int      `json:"quantity"`
	Finishing               string   `json:"finishing"`
	PowderCoatColor         string   `json:"powder_coat_color,omitempty"`
	CustomFinishDescription string   `json:"custom_finish_description,omitempty"`
}

// NewQuoteRequest returns an empty request with quantity 1 and no finishing.
func NewQuoteRequest() QuoteRequest {
	return QuoteRequest{
		Quantity:  1,
		Finishing: FinishingNone,
	}
}

// WithTemplate returns a copy for a different template. Dimensions and hole
// parameters are cleared; material, thickness, quantity and finishing carry over.
func (r QuoteRequest) WithTemplate(t Template) QuoteRequest {
	r.Part = PartSpec{Template: t}
	return r
}

// WithMaterial returns a copy with a new material. A thickness the new
// material does not stock is cleared.
func (r QuoteRequest) WithMaterial(c *Catalog, material string) QuoteRequest {
	r.Material = material
	if r.Thickness != "" && material != "" && !c.AllowsThickness(material, r.Thickness) {
		r.Thickness = ""
	}
	return r
}

// IsOther reports whether material or thickness is the manual-quote sentinel.
func (r QuoteRequest) IsOther() bool {
	return r.Material == OtherOption || r.Thickness == OtherOption
}

// FinishingIssues returns the missing details required by the chosen finishing.
func (r QuoteRequest) FinishingIssues() []Issue {
	switch r.Finishing {
	case FinishingPowderCoated:
		if r.PowderCoatColor == "" {
			return []Issue{IssueMissingColor}
		}
	case FinishingCustom:
		if r.CustomFinishDescription == "" {
			return []Issue{IssueMissingFinishDesc}
		}
	}
	return nil
}

// TierPrice is the floored per-unit price at one quantity tier.
type TierPrice struct {
	Tier     QuantityTier `json:"tier"`
	UnitCost float64      `json:"unit_cost"`
}

// QuoteResult holds the outcome of pricing one request. Cost fields are only
// populated when Valid is true.
type QuoteResult struct {
	Valid            bool        `json:"valid"`
	Estimable        bool        `json:"estimable"`
	ManualReview     bool        `json:"manual_review"` // other material/thickness or custom finishing
	MaterialCost     float64     `json:"material_cost"`
	CutLength        float64     `json:"cut_length"`       // in
	CutTimeSeconds   float64     `json:"cut_time_seconds"` // s
	CuttingCost      float64     `json:"cutting_cost"`
	BaseUnitCost     float64     `json:"base_unit_cost"`
	Tiers            []TierPrice `json:"tiers,omitempty"`
	SelectedTier     int         `json:"selected_tier"` // index into Tiers, -1 when unpriced
	SelectedUnitCost float64     `json:"selected_unit_cost"`
	TotalCost        float64     `json:"total_cost"`
	Issues           []Issue     `json:"issues,omitempty"`
}

// Quote pairs a request with everything derived from it.
type Quote struct {
	Request  QuoteRequest   `json:"request"`
	Geometry GeometryResult `json:"geometry"`
	Result   QuoteResult    `json:"result"`
}

// Issues returns geometry issues followed by pricing issues, without duplicates.
func (q Quote) Issues() []Issue {
	seen := make(map[Issue]bool)
	var out []Issue
	for _, list := range [][]Issue{q.Geometry.Issues, q.Result.Issues} {
		for _, i := range list {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	return out
}

// FormatCurrency renders an amount as dollars with thousands separators,
// rounded to cents.
func FormatCurrency(v float64) string {
	v = math.Round(v*100) / 100
	return "$" + humanize.FormatFloat("#,###.##", v)
}
