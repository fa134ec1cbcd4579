package engine

import "github.com/piwi3910/SheetQuote/internal/model"

// Evaluate resolves the request's part and prices it in one pass. Callers
// re-run it on every new snapshot; nothing is cached between calls.
func (p *Pricer) Evaluate(req model.QuoteRequest) model.Quote {
	g := Resolve(model.Concrete{Spec: req.Part})
	return model.Quote{
		Request:  req,
		Geometry: g,
		Result:   p.Price(g, req),
	}
}

// EvaluateAll prices a batch of requests in order.
func (p *Pricer) EvaluateAll(reqs []model.QuoteRequest) []model.Quote {
	quotes := make([]model.Quote, len(reqs))
	for i, r := range reqs {
		quotes[i] = p.Evaluate(r)
	}
	return quotes
}
