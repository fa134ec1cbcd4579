package export

import (
	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
)

func quoteFor(spec model.PartSpec, material, thickness string, qty int) model.Quote {
	req := model.NewQuoteRequest()
	req.Part = spec
	req.Material = material
	req.Thickness = thickness
	req.Quantity = qty
	return engine.New(model.DefaultCatalog()).Evaluate(req)
}

func bracketDoc() QuoteDocument {
	spec := model.PartSpec{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: 0.25, HoleOffset: 0.5}
	return NewQuoteDocument("Mounting Bracket", quoteFor(spec, "aluminum_3003", "0.032", 25), model.DefaultCatalog())
}

func gussetDoc() QuoteDocument {
	spec := model.PartSpec{Template: model.TemplateTriangleHoles, Base: 6, Height: 4, HoleDiameter: 0.25, HoleOffset: 0.75}
	return NewQuoteDocument("Gusset", quoteFor(spec, "mild_steel_a36", "0.059", 4), model.DefaultCatalog())
}

func discDoc() QuoteDocument {
	spec := model.PartSpec{Template: model.TemplateCircle, Diameter: 4}
	return NewQuoteDocument("", quoteFor(spec, "stainless_304", "0.060", 1), model.DefaultCatalog())
}

func manualDoc() QuoteDocument {
	spec := model.PartSpec{Template: model.TemplateRectangle, Width: 3, Height: 3}
	q := quoteFor(spec, model.OtherOption, model.OtherOption, 2)
	q.Request.OtherMaterial = "Copper C110"
	q.Request.OtherThickness = "0.040"
	return NewQuoteDocument("Bus Bar", q, model.DefaultCatalog())
}
