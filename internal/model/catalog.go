package model

import (
	"errors"
	"fmt"
)

// OtherOption is the sentinel material/thickness value that routes a request
// to manual quoting.
const OtherOption = "other"

// Thickness is one gauge a material is stocked in.
type Thickness struct {
	ID    string `json:"id"`    // e.g. "0.032"
	Label string `json:"label"` // e.g. `0.032" (20 ga)`
}

// Material is a sheet stock the shop cuts.
type Material struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Thicknesses []Thickness `json:"thicknesses"`
}

// MaterialThicknessKey addresses one row of the price table.
type MaterialThicknessKey struct {
	Material  string
	Thickness string
}

// PriceModel is the cost model for one material and thickness.
type PriceModel struct {
	CostPerSqInch    float64 `json:"cost_per_sq_inch"`     // currency per sq in
	CutSpeedInPerSec float64 `json:"cut_speed_in_per_sec"` // inches per second
}

// QuantityTier is a per-unit discount bracket.
type QuantityTier struct {
	Range       string  `json:"range"` // e.g. "21-50"
	MinQuantity int     `json:"min_quantity"`
	Multiplier  float64 `json:"multiplier"`
}

// Finishing is a surface treatment option.
type Finishing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Finishing ids with extra input requirements.
const (
	FinishingNone         = "none"
	FinishingPowderCoated = "powder_coated"
	FinishingMatte        = "matte"
	FinishingCustom       = "custom"
)

// Catalog holds every static table the pricing engine reads. It is
// configuration data and can be swapped without touching engine logic.
type Catalog struct {
	Materials            []Material                       `json:"materials"`
	Prices               map[string]map[string]PriceModel `json:"prices"` // material -> thickness -> model
	Tiers                []QuantityTier                   `json:"tiers"`
	Finishings           []Finishing                      `json:"finishings"`
	CostPerSecondCutting float64                          `json:"cost_per_second_cutting"`
	MinimumPartCost      float64                          `json:"minimum_part_cost"`
}

// markup is applied to every base rate in the default table.
const markup = 1.75

// DefaultCatalog returns the shop's standard price table.
func DefaultCatalog() Catalog {
	return Catalog{
		Materials: []Material{
			{ID: "aluminum_3003", Name: "Aluminum 3003", Thicknesses: []Thickness{
				{ID: "0.032", Label: `0.032" (20 ga)`},
				{ID: "0.063", Label: `0.063" (14 ga)`},
				{ID: "0.125", Label: `0.125" (1/8")`},
			}},
			{ID: "stainless_304", Name: "Stainless Steel 304", Thicknesses: []Thickness{
				{ID: "0.030", Label: `0.030" (22 ga)`},
				{ID: "0.060", Label: `0.060" (16 ga)`},
				{ID: "0.120", Label: `0.120" (~1/8")`},
			}},
			{ID: "mild_steel_a36", Name: "Mild Steel A36", Thicknesses: []Thickness{
				{ID: "0.059", Label: `0.059" (16 ga)`},
				{ID: "0.119", Label: `0.119" (11 ga)`},
				{ID: "0.179", Label: `0.179" (7 ga)`},
			}},
		},
		Prices: map[string]map[string]PriceModel{
			"aluminum_3003": {
				"0.032": {CostPerSqInch: 0.05 * markup, CutSpeedInPerSec: 5},
				"0.063": {CostPerSqInch: 0.05 * markup, CutSpeedInPerSec: 5},
				"0.125": {CostPerSqInch: 0.07 * markup, CutSpeedInPerSec: 3},
			},
			"stainless_304": {
				"0.030": {CostPerSqInch: 0.10 * markup, CutSpeedInPerSec: 5},
				"0.060": {CostPerSqInch: 0.10 * markup, CutSpeedInPerSec: 5},
				"0.120": {CostPerSqInch: 0.15 * markup, CutSpeedInPerSec: 3},
			},
			"mild_steel_a36": {
				"0.059": {CostPerSqInch: 0.05 * markup, CutSpeedInPerSec: 5},
				"0.119": {CostPerSqInch: 0.07 * markup, CutSpeedInPerSec: 3},
				"0.179": {CostPerSqInch: 0.07 * markup, CutSpeedInPerSec: 3},
			},
		},
		Tiers: []QuantityTier{
			{Range: "1-20", MinQuantity: 1, Multiplier: 1.0},
			{Range: "21-50", MinQuantity: 21, Multiplier: 0.90},
			{Range: "51-100", MinQuantity: 51, Multiplier: 0.80},
			{Range: "101+", MinQuantity: 101, Multiplier: 0.50},
		},
		Finishings: []Finishing{
			{ID: FinishingNone, Name: "None (Raw Material)"},
			{ID: FinishingPowderCoated, Name: "Powder Coated"},
			{ID: FinishingMatte, Name: "Matte Finish (Ready for Paint)"},
			{ID: FinishingCustom, Name: "Custom Finishing"},
		},
		CostPerSecondCutting: 0.05 * markup,
		MinimumPartCost:      1.50 * markup,
	}
}

// Lookup returns the price model for a material and thickness.
func (c Catalog) Lookup(material, thickness string) (PriceModel, bool) {
	byThickness, ok := c.Prices[material]
	if !ok {
		return PriceModel{}, false
	}
	pm, ok := byThickness[thickness]
	return pm, ok
}

// LookupKey is Lookup addressed by a MaterialThicknessKey.
func (c Catalog) LookupKey(k MaterialThicknessKey) (PriceModel, bool) {
	return c.Lookup(k.Material, k.Thickness)
}

// Clone returns a deep copy that can be edited without touching c.
func (c Catalog) Clone() Catalog {
	out := c
	out.Materials = make([]Material, len(c.Materials))
	for i, m := range c.Materials {
		m.Thicknesses = append([]Thickness(nil), m.Thicknesses...)
		out.Materials[i] = m
	}
	out.Prices = make(map[string]map[string]PriceModel, len(c.Prices))
	for mat, byThickness := range c.Prices {
		cp := make(map[string]PriceModel, len(byThickness))
		for th, pm := range byThickness {
			cp[th] = pm
		}
		out.Prices[mat] = cp
	}
	out.Tiers = append([]QuantityTier(nil), c.Tiers...)
	out.Finishings = append([]Finishing(nil), c.Finishings...)
	return out
}

// SetPrice adds or replaces the price model of a material and thickness.
func (c *Catalog) SetPrice(material, thickness string, pm PriceModel) {
	if c.Prices == nil {
		c.Prices = make(map[string]map[string]PriceModel)
	}
	if c.Prices[material] == nil {
		c.Prices[material] = make(map[string]PriceModel)
	}
	c.Prices[material][thickness] = pm
}

// RemovePrice takes a material and thickness off the price table. The
// thickness stays stocked but is no longer offered for instant quotes.
func (c *Catalog) RemovePrice(material, thickness string) {
	delete(c.Prices[material], thickness)
	if len(c.Prices[material]) == 0 {
		delete(c.Prices, material)
	}
}

// FindMaterial returns a pointer to the material with the given id, or nil.
func (c *Catalog) FindMaterial(id string) *Material {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			return &c.Materials[i]
		}
	}
	return nil
}

// FindFinishing returns a pointer to the finishing with the given id, or nil.
func (c *Catalog) FindFinishing(id string) *Finishing {
	for i := range c.Finishings {
		if c.Finishings[i].ID == id {
			return &c.Finishings[i]
		}
	}
	return nil
}

// PricedThicknesses lists the thicknesses of a material that have a price
// entry, in stocking order. Unknown materials yield nil.
func (c *Catalog) PricedThicknesses(material string) []Thickness {
	m := c.FindMaterial(material)
	if m == nil {
		return nil
	}
	var out []Thickness
	for _, t := range m.Thicknesses {
		if _, ok := c.Lookup(material, t.ID); ok {
			out = append(out, t)
		}
	}
	return out
}

// AllowsThickness reports whether a thickness can stay selected for a material.
// The "other" thickness is always allowed.
func (c *Catalog) AllowsThickness(material, thickness string) bool {
	if thickness == OtherOption || material == OtherOption {
		return true
	}
	m := c.FindMaterial(material)
	if m == nil {
		return false
	}
	for _, t := range m.Thicknesses {
		if t.ID == thickness {
			return true
		}
	}
	return false
}

// ThicknessLabel returns the display label for a thickness, falling back to the id.
func (c *Catalog) ThicknessLabel(material, thickness string) string {
	if m := c.FindMaterial(material); m != nil {
		for _, t := range m.Thicknesses {
			if t.ID == thickness {
				return t.Label
			}
		}
	}
	return thickness
}

// MaterialName returns the display name for a material, falling back to the id.
func (c *Catalog) MaterialName(id string) string {
	if m := c.FindMaterial(id); m != nil {
		return m.Name
	}
	return id
}

// Keys lists every priced material/thickness pair in catalog order.
func (c *Catalog) Keys() []MaterialThicknessKey {
	var keys []MaterialThicknessKey
	for _, m := range c.Materials {
		for _, t := range c.PricedThicknesses(m.ID) {
			keys = append(keys, MaterialThicknessKey{Material: m.ID, Thickness: t.ID})
		}
	}
	return keys
}

// Validate checks the invariants the pricing engine relies on.
func (c Catalog) Validate() error {
	if len(c.Tiers) == 0 {
		return errors.New("catalog has no quantity tiers")
	}
	if c.Tiers[0].MinQuantity != 1 || c.Tiers[0].Multiplier != 1.0 {
		return fmt.Errorf("first quantity tier must be {1, 1.0}, got {%d, %.2f}",
			c.Tiers[0].MinQuantity, c.Tiers[0].Multiplier)
	}
	for i := 1; i < len(c.Tiers); i++ {
		prev, cur := c.Tiers[i-1], c.Tiers[i]
		if cur.MinQuantity <= prev.MinQuantity {
			return fmt.Errorf("tier %d: min quantity %d is not above %d", i+1, cur.MinQuantity, prev.MinQuantity)
		}
		if cur.Multiplier > prev.Multiplier {
			return fmt.Errorf("tier %d: multiplier %.2f exceeds previous %.2f", i+1, cur.Multiplier, prev.Multiplier)
		}
		if cur.Multiplier <= 0 {
			return fmt.Errorf("tier %d: multiplier must be positive", i+1)
		}
	}
	if c.CostPerSecondCutting <= 0 {
		return errors.New("cost per second of cutting must be positive")
	}
	if c.MinimumPartCost <= 0 {
		return errors.New("minimum part cost must be positive")
	}
	for material, byThickness := range c.Prices {
		for thickness, pm := range byThickness {
			if pm.CostPerSqInch <= 0 || pm.CutSpeedInPerSec <= 0 {
				return fmt.Errorf("%s %s: cost and cut speed must be positive", material, thickness)
			}
		}
	}
	return nil
}
