package engine

import (
	"math"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// Pricer turns resolved geometry and a quote request into a cost estimate.
type Pricer struct {
	Catalog model.Catalog
}

func New(catalog model.Catalog) *Pricer {
	return &Pricer{Catalog: catalog}
}

// Price computes per-unit and total cost for a part. Cost fields are only
// filled in when the result is Valid; every reason it is not is listed in
// Issues.
func (p *Pricer) Price(g model.GeometryResult, req model.QuoteRequest) model.QuoteResult {
	result := model.QuoteResult{SelectedTier: -1}
	var issues []model.Issue

	if g.Placeholder {
		issues = append(issues, model.IssuePlaceholder)
	}

	switch req.Material {
	case "":
		issues = append(issues, model.IssueNoMaterial)
	case model.OtherOption:
		result.ManualReview = true
		issues = append(issues, model.IssueOtherMaterial)
		if req.OtherMaterial == "" {
			issues = append(issues, model.IssueMissingOtherDetail)
		}
	}
	switch req.Thickness {
	case "":
		issues = append(issues, model.IssueNoThickness)
	case model.OtherOption:
		result.ManualReview = true
		issues = append(issues, model.IssueOtherThickness)
		if req.OtherThickness == "" {
			issues = append(issues, model.IssueMissingOtherDetail)
		}
	}

	var pm model.PriceModel
	priced := false
	if req.Material != "" && req.Thickness != "" && !req.IsOther() {
		pm, priced = p.Catalog.Lookup(req.Material, req.Thickness)
		if !priced {
			issues = append(issues, model.IssueUnpriced)
		}
	}

	finishing := req.FinishingIssues()
	issues = append(issues, finishing...)
	if req.Finishing == model.FinishingCustom {
		result.ManualReview = true
	}

	if req.Quantity < 1 {
		issues = append(issues, model.IssueInvalidQuantity)
	}

	result.Issues = dedupe(issues)
	result.Valid = g.Valid && !g.Placeholder && priced && len(finishing) == 0 && req.Quantity >= 1
	result.Estimable = result.Valid && !req.IsOther()
	if !result.Valid {
		return result
	}

	result.MaterialCost = g.Area * pm.CostPerSqInch
	result.CutLength = g.CutLength()
	result.CutTimeSeconds = result.CutLength / pm.CutSpeedInPerSec
	result.CuttingCost = result.CutTimeSeconds * p.Catalog.CostPerSecondCutting
	result.BaseUnitCost = result.MaterialCost + result.CuttingCost
	result.Tiers = TierPrices(result.BaseUnitCost, p.Catalog.Tiers, p.Catalog.MinimumPartCost)

	result.SelectedTier = SelectTier(p.Catalog.Tiers, req.Quantity)
	if result.SelectedTier >= 0 {
		result.SelectedUnitCost = result.Tiers[result.SelectedTier].UnitCost
		result.TotalCost = result.SelectedUnitCost * float64(req.Quantity)
	}
	return result
}

// TierPrices applies each tier's multiplier to the base unit cost, never
// going below the minimum part cost.
func TierPrices(baseUnitCost float64, tiers []model.QuantityTier, minimum float64) []model.TierPrice {
	prices := make([]model.TierPrice, len(tiers))
	for i, t := range tiers {
		prices[i] = model.TierPrice{
			Tier:     t,
			UnitCost: math.Max(baseUnitCost*t.Multiplier, minimum),
		}
	}
	return prices
}

// SelectTier returns the index of the last tier whose minimum quantity does
// not exceed qty, or -1 if none applies.
func SelectTier(tiers []model.QuantityTier, qty int) int {
	selected := -1
	for i, t := range tiers {
		if t.MinQuantity <= qty {
			selected = i
		}
	}
	return selected
}

func dedupe(issues []model.Issue) []model.Issue {
	if len(issues) == 0 {
		return nil
	}
	seen := make(map[model.Issue]bool, len(issues))
	out := issues[:0]
	for _, i := range issues {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
