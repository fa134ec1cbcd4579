package model

import (
	"math"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c := DefaultCatalog()
	if err := c.Validate(); err != nil {
		t.Fatalf("default catalog failed validation: %v", err)
	}
	if len(c.Materials) != 3 {
		t.Errorf("expected 3 materials, got %d", len(c.Materials))
	}
	if math.Abs(c.CostPerSecondCutting-0.0875) > 1e-12 {
		t.Errorf("expected cost per second 0.0875, got %f", c.CostPerSecondCutting)
	}
	if math.Abs(c.MinimumPartCost-2.625) > 1e-12 {
		t.Errorf("expected minimum part cost 2.625, got %f", c.MinimumPartCost)
	}
}

func TestLookup(t *testing.T) {
	c := DefaultCatalog()

	pm, ok := c.Lookup("stainless_304", "0.120")
	if !ok {
		t.Fatal("expected stainless_304/0.120 to be priced")
	}
	if math.Abs(pm.CostPerSqInch-0.2625) > 1e-12 || pm.CutSpeedInPerSec != 3 {
		t.Errorf("unexpected price model %+v", pm)
	}

	if _, ok := c.Lookup("aluminum_3003", "0.030"); ok {
		t.Error("aluminum_3003/0.030 should not be priced")
	}
	if _, ok := c.Lookup("titanium", "0.032"); ok {
		t.Error("unknown material should not be priced")
	}
	if _, ok := c.LookupKey(MaterialThicknessKey{Material: "mild_steel_a36", Thickness: "0.179"}); !ok {
		t.Error("expected mild_steel_a36/0.179 to be priced")
	}
}

func TestPricedThicknessesSkipsUnpriced(t *testing.T) {
	c := DefaultCatalog()
	delete(c.Prices["aluminum_3003"], "0.125")

	got := c.PricedThicknesses("aluminum_3003")
	if len(got) != 2 {
		t.Fatalf("expected 2 priced thicknesses, got %d", len(got))
	}
	if got[0].ID != "0.032" || got[1].ID != "0.063" {
		t.Errorf("unexpected order %v", got)
	}
	if c.PricedThicknesses("unknown") != nil {
		t.Error("unknown material should have no thicknesses")
	}
}

func TestAllowsThickness(t *testing.T) {
	c := DefaultCatalog()
	if !c.AllowsThickness("aluminum_3003", "0.063") {
		t.Error("aluminum should offer 0.063")
	}
	if c.AllowsThickness("aluminum_3003", "0.060") {
		t.Error("aluminum should not offer 0.060")
	}
	if !c.AllowsThickness("aluminum_3003", OtherOption) {
		t.Error("other thickness should always be allowed")
	}
	if !c.AllowsThickness(OtherOption, "0.060") {
		t.Error("any thickness should be allowed with other material")
	}
}

func TestCatalogLabels(t *testing.T) {
	c := DefaultCatalog()
	if c.MaterialName("mild_steel_a36") != "Mild Steel A36" {
		t.Errorf("unexpected name %q", c.MaterialName("mild_steel_a36"))
	}
	if c.MaterialName("brass") != "brass" {
		t.Error("unknown material should fall back to its id")
	}
	if c.ThicknessLabel("aluminum_3003", "0.032") != `0.032" (20 ga)` {
		t.Errorf("unexpected label %q", c.ThicknessLabel("aluminum_3003", "0.032"))
	}
	if c.FindFinishing(FinishingPowderCoated) == nil {
		t.Error("expected powder coated finishing")
	}
	if c.FindFinishing("anodized") != nil {
		t.Error("anodized is not offered")
	}
	if len(c.Keys()) != 9 {
		t.Errorf("expected 9 priced keys, got %d", len(c.Keys()))
	}
}

func TestValidateRejectsBadTiers(t *testing.T) {
	tests := []struct {
		name  string
		tiers []QuantityTier
	}{
		{"empty", nil},
		{"first not one", []QuantityTier{{Range: "2+", MinQuantity: 2, Multiplier: 1}}},
		{"first discounted", []QuantityTier{{Range: "1+", MinQuantity: 1, Multiplier: 0.9}}},
		{"not ascending", []QuantityTier{
			{MinQuantity: 1, Multiplier: 1},
			{MinQuantity: 50, Multiplier: 0.9},
			{MinQuantity: 20, Multiplier: 0.8},
		}},
		{"multiplier increases", []QuantityTier{
			{MinQuantity: 1, Multiplier: 1},
			{MinQuantity: 20, Multiplier: 0.8},
			{MinQuantity: 50, Multiplier: 0.9},
		}},
	}
	for _, tt := range tests {
		c := DefaultCatalog()
		c.Tiers = tt.tiers
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestValidateRejectsNonPositivePrice(t *testing.T) {
	c := DefaultCatalog()
	c.Prices["aluminum_3003"]["0.032"] = PriceModel{CostPerSqInch: 0.1, CutSpeedInPerSec: 0}
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero cut speed")
	}

	c = DefaultCatalog()
	c.MinimumPartCost = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for zero minimum part cost")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := DefaultCatalog()
	c := orig.Clone()

	c.SetPrice("aluminum_3003", "0.032", PriceModel{CostPerSqInch: 9, CutSpeedInPerSec: 1})
	c.Materials[0].Thicknesses[0].Label = "changed"
	c.Tiers[1].Multiplier = 0.1

	pm, _ := orig.Lookup("aluminum_3003", "0.032")
	if pm.CostPerSqInch == 9 {
		t.Error("SetPrice on the clone changed the original prices")
	}
	if orig.Materials[0].Thicknesses[0].Label == "changed" {
		t.Error("clone shares thickness labels with the original")
	}
	if orig.Tiers[1].Multiplier == 0.1 {
		t.Error("clone shares tiers with the original")
	}
}

func TestSetAndRemovePrice(t *testing.T) {
	c := DefaultCatalog()

	c.SetPrice("stainless_304", "0.030", PriceModel{CostPerSqInch: 0.1, CutSpeedInPerSec: 4})
	if pm, ok := c.Lookup("stainless_304", "0.030"); !ok || pm.CutSpeedInPerSec != 4 {
		t.Errorf("SetPrice did not replace the price, got %+v", pm)
	}

	for _, th := range []string{"0.030", "0.060", "0.120"} {
		c.RemovePrice("stainless_304", th)
	}
	if _, ok := c.Prices["stainless_304"]; ok {
		t.Error("material with no prices left should be dropped from the table")
	}
	if len(c.PricedThicknesses("stainless_304")) != 0 {
		t.Error("removed prices are still offered")
	}

	var empty Catalog
	empty.SetPrice("copper", "0.040", PriceModel{CostPerSqInch: 1, CutSpeedInPerSec: 1})
	if _, ok := empty.Lookup("copper", "0.040"); !ok {
		t.Error("SetPrice on an empty catalog should create the table")
	}
}
