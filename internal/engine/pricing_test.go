package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cents = 1e-6

func aluminumRequest(spec model.PartSpec, qty int) model.QuoteRequest {
	r := model.NewQuoteRequest()
	r.Part = spec
	r.Material = "aluminum_3003"
	r.Thickness = "0.032"
	r.Quantity = qty
	return r
}

func rect10x5() model.PartSpec {
	return model.PartSpec{Template: model.TemplateRectangle, Width: 10, Height: 5}
}

func TestPrice_EndToEndRectangle(t *testing.T) {
	p := New(model.DefaultCatalog())
	q := p.Evaluate(aluminumRequest(rect10x5(), 1))
	r := q.Result

	require.True(t, r.Valid)
	assert.True(t, r.Estimable)
	assert.False(t, r.ManualReview)
	assert.InDelta(t, 4.375, r.MaterialCost, cents)
	assert.InDelta(t, 30.0, r.CutLength, cents)
	assert.InDelta(t, 6.0, r.CutTimeSeconds, cents)
	assert.InDelta(t, 0.525, r.CuttingCost, cents)
	assert.InDelta(t, 4.90, r.BaseUnitCost, cents)
	assert.Equal(t, 0, r.SelectedTier)
	assert.InDelta(t, 4.90, r.SelectedUnitCost, cents)
	assert.InDelta(t, 4.90, r.TotalCost, cents)
	assert.Empty(t, r.Issues)
	assert.Equal(t, "$4.90", model.FormatCurrency(r.TotalCost))
}

func TestPrice_QuantityTiers(t *testing.T) {
	p := New(model.DefaultCatalog())
	r := p.Evaluate(aluminumRequest(rect10x5(), 25)).Result

	require.True(t, r.Valid)
	require.Len(t, r.Tiers, 4)
	assert.Equal(t, 1, r.SelectedTier)
	assert.InDelta(t, 4.41, r.SelectedUnitCost, cents)
	assert.InDelta(t, 110.25, r.TotalCost, cents)
	assert.InDelta(t, 3.92, r.Tiers[2].UnitCost, cents)
	// 4.90 * 0.5 = 2.45 falls under the minimum part cost
	assert.InDelta(t, 2.625, r.Tiers[3].UnitCost, cents)
}

func TestPrice_TiersAreNonIncreasing(t *testing.T) {
	p := New(model.DefaultCatalog())
	for _, spec := range []model.PartSpec{
		rect10x5(),
		{Template: model.TemplateCircle, Diameter: 30},
		{Template: model.TemplateRectangle, Width: 1, Height: 1},
	} {
		r := p.Evaluate(aluminumRequest(spec, 1)).Result
		require.True(t, r.Valid)
		for i := 1; i < len(r.Tiers); i++ {
			assert.LessOrEqual(t, r.Tiers[i].UnitCost, r.Tiers[i-1].UnitCost)
		}
	}
}

func TestPrice_MinimumPartCostFloor(t *testing.T) {
	p := New(model.DefaultCatalog())
	r := p.Evaluate(aluminumRequest(model.PartSpec{Template: model.TemplateRectangle, Width: 1, Height: 1}, 500)).Result

	require.True(t, r.Valid)
	assert.Less(t, r.BaseUnitCost, 2.625)
	for _, tp := range r.Tiers {
		assert.InDelta(t, 2.625, tp.UnitCost, cents)
	}
	assert.Equal(t, 3, r.SelectedTier)
	assert.InDelta(t, 2.625*500, r.TotalCost, cents)
}

func TestPrice_HolesAddCutTime(t *testing.T) {
	p := New(model.DefaultCatalog())
	plain := p.Evaluate(aluminumRequest(model.PartSpec{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: 0.25, HoleOffset: 0.5}, 1)).Result
	require.True(t, plain.Valid)

	assert.Greater(t, plain.CutLength, 30.0)
	assert.Greater(t, plain.BaseUnitCost, 4.90)
}

func TestSelectTier(t *testing.T) {
	tiers := model.DefaultCatalog().Tiers
	tests := []struct {
		qty  int
		want int
	}{
		{0, -1},
		{1, 0},
		{20, 0},
		{21, 1},
		{50, 1},
		{51, 2},
		{100, 2},
		{101, 3},
		{100000, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectTier(tiers, tt.qty), "qty %d", tt.qty)
	}
}

func TestPrice_OtherMaterial(t *testing.T) {
	p := New(model.DefaultCatalog())
	req := aluminumRequest(rect10x5(), 1)
	req.Material = model.OtherOption

	r := p.Evaluate(req).Result
	assert.False(t, r.Valid)
	assert.False(t, r.Estimable)
	assert.True(t, r.ManualReview)
	assert.Zero(t, r.TotalCost)
	assert.Empty(t, r.Tiers)
	assert.Equal(t, -1, r.SelectedTier)
	assert.Contains(t, r.Issues, model.IssueOtherMaterial)
	assert.Contains(t, r.Issues, model.IssueMissingOtherDetail)

	req.OtherMaterial = "Copper C110"
	r = p.Evaluate(req).Result
	assert.True(t, r.ManualReview)
	assert.NotContains(t, r.Issues, model.IssueMissingOtherDetail)
}

func TestPrice_OtherThickness(t *testing.T) {
	p := New(model.DefaultCatalog())
	req := aluminumRequest(rect10x5(), 1)
	req.Thickness = model.OtherOption
	req.OtherThickness = `0.250"`

	r := p.Evaluate(req).Result
	assert.False(t, r.Estimable)
	assert.True(t, r.ManualReview)
	assert.Equal(t, []model.Issue{model.IssueOtherThickness}, r.Issues)
}

func TestPrice_UnpricedCombination(t *testing.T) {
	p := New(model.DefaultCatalog())
	req := aluminumRequest(rect10x5(), 1)
	req.Thickness = "0.060"

	r := p.Evaluate(req).Result
	assert.False(t, r.Valid)
	assert.False(t, r.ManualReview)
	assert.Equal(t, []model.Issue{model.IssueUnpriced}, r.Issues)
}

func TestPrice_MissingSelections(t *testing.T) {
	p := New(model.DefaultCatalog())
	req := model.NewQuoteRequest()
	req.Part = rect10x5()

	r := p.Evaluate(req).Result
	assert.False(t, r.Valid)
	assert.Equal(t, []model.Issue{model.IssueNoMaterial, model.IssueNoThickness}, r.Issues)
}

func TestPrice_FinishingRequirements(t *testing.T) {
	p := New(model.DefaultCatalog())

	req := aluminumRequest(rect10x5(), 1)
	req.Finishing = model.FinishingPowderCoated
	r := p.Evaluate(req).Result
	assert.False(t, r.Valid)
	assert.Contains(t, r.Issues, model.IssueMissingColor)

	req.PowderCoatColor = "RAL 9005"
	r = p.Evaluate(req).Result
	assert.True(t, r.Valid)
	assert.True(t, r.Estimable)

	req.Finishing = model.FinishingCustom
	r = p.Evaluate(req).Result
	assert.False(t, r.Valid)
	assert.True(t, r.ManualReview)
	assert.Contains(t, r.Issues, model.IssueMissingFinishDesc)

	req.CustomFinishDescription = "Brushed, then clear anodize"
	r = p.Evaluate(req).Result
	assert.True(t, r.Valid)
	assert.True(t, r.ManualReview)
}

func TestPrice_InvalidQuantity(t *testing.T) {
	p := New(model.DefaultCatalog())
	r := p.Evaluate(aluminumRequest(rect10x5(), 0)).Result

	assert.False(t, r.Valid)
	assert.Equal(t, []model.Issue{model.IssueInvalidQuantity}, r.Issues)
}

func TestPrice_InvalidGeometry(t *testing.T) {
	p := New(model.DefaultCatalog())
	q := p.Evaluate(aluminumRequest(model.PartSpec{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: 0.25, HoleOffset: 3}, 1))

	assert.False(t, q.Result.Valid)
	assert.False(t, q.Result.Estimable)
	assert.Zero(t, q.Result.TotalCost)
	assert.Equal(t, []model.Issue{model.IssueHolesInfeasible}, q.Issues())
}

func TestPrice_PlaceholderIsNeverPriced(t *testing.T) {
	p := New(model.DefaultCatalog())
	g := Resolve(model.Placeholder{Template: model.TemplateRectangle})
	r := p.Price(g, aluminumRequest(model.PartSpec{}, 1))

	assert.False(t, r.Valid)
	assert.Contains(t, r.Issues, model.IssuePlaceholder)
}

func TestPrice_Idempotent(t *testing.T) {
	p := New(model.DefaultCatalog())
	req := aluminumRequest(model.PartSpec{Template: model.TemplateTriangleHoles, Base: 6, Height: 4, HoleDiameter: 0.25, HoleOffset: 0.5}, 60)
	assert.Equal(t, p.Evaluate(req), p.Evaluate(req))
}

func TestPrice_CustomCatalog(t *testing.T) {
	c := model.DefaultCatalog()
	c.Prices["aluminum_3003"]["0.032"] = model.PriceModel{CostPerSqInch: 1, CutSpeedInPerSec: 1}
	p := New(c)

	r := p.Evaluate(aluminumRequest(rect10x5(), 1)).Result
	require.True(t, r.Valid)
	assert.InDelta(t, 50+30*c.CostPerSecondCutting, r.BaseUnitCost, cents)
}

func TestEvaluateAll(t *testing.T) {
	p := New(model.DefaultCatalog())
	quotes := p.EvaluateAll([]model.QuoteRequest{
		aluminumRequest(rect10x5(), 1),
		aluminumRequest(model.PartSpec{Template: model.TemplateCircle}, 1),
	})

	require.Len(t, quotes, 2)
	assert.True(t, quotes[0].Result.Estimable)
	assert.False(t, quotes[1].Result.Estimable)
}

func TestPrice_NonFiniteInputNeverPriced(t *testing.T) {
	p := New(model.DefaultCatalog())
	specs := []model.PartSpec{
		{Template: model.TemplateRectangle, Width: math.NaN(), Height: 5},
		{Template: model.TemplateRectangle, Width: math.Inf(1), Height: 5},
		{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: math.NaN(), HoleOffset: 0.5},
	}
	for _, spec := range specs {
		r := p.Evaluate(aluminumRequest(spec, 1)).Result
		assert.False(t, r.Valid, "%+v", spec)
		assert.False(t, r.Estimable)
		assert.Empty(t, r.Tiers)
		assert.Zero(t, r.TotalCost)
		assert.False(t, math.IsNaN(r.BaseUnitCost))
	}
}
