package engine

import (
	"sort"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// MaterialComparison holds the price of one part in one material and
// thickness.
type MaterialComparison struct {
	Key            model.MaterialThicknessKey
	MaterialName   string
	ThicknessLabel string
	Result         model.QuoteResult
}

// CompareMaterials prices the same geometry against every priced material
// and thickness in the catalog, keeping the request's quantity and
// finishing. Results are sorted by selected unit cost, cheapest first;
// combinations that cannot be priced are left out.
func (p *Pricer) CompareMaterials(g model.GeometryResult, req model.QuoteRequest) []MaterialComparison {
	keys := p.Catalog.Keys()
	results := make([]MaterialComparison, 0, len(keys))

	for _, key := range keys {
		alt := req
		alt.Material = key.Material
		alt.Thickness = key.Thickness
		alt.OtherMaterial = ""
		alt.OtherThickness = ""

		res := p.Price(g, alt)
		if !res.Valid {
			continue
		}
		results = append(results, MaterialComparison{
			Key:            key,
			MaterialName:   p.Catalog.MaterialName(key.Material),
			ThicknessLabel: p.Catalog.ThicknessLabel(key.Material, key.Thickness),
			Result:         res,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Result.SelectedUnitCost < results[j].Result.SelectedUnitCost
	})
	return results
}
