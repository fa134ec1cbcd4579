package cli

import (
	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
)

func testPricer() *engine.Pricer {
	return engine.New(model.DefaultCatalog())
}

func bracketRequest() model.QuoteRequest {
	req := model.NewQuoteRequest()
	req.Part = model.PartSpec{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: 0.25, HoleOffset: 0.5}
	req.Material = "aluminum_3003"
	req.Thickness = "0.063"
	req.Quantity = 25
	return req
}

func manualRequest() model.QuoteRequest {
	req := bracketRequest()
	req.Material = model.OtherOption
	req.OtherMaterial = "Copper C110"
	req.Thickness = model.OtherOption
	req.OtherThickness = "0.040"
	return req
}
