package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Catalog to price against; empty means the built-in table or ~/.sheetquote/catalog.json
	CatalogPath string `json:"catalog_path"`

	// Defaults applied to a fresh quote
	DefaultMaterial  string `json:"default_material"`
	DefaultThickness string `json:"default_thickness"`
	DefaultQuantity  int    `json:"default_quantity"`

	// Cutting program output
	Cutting CutSettings `json:"cutting"`

	// Application preferences
	RecentExports []string `json:"recent_exports"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// maxRecentExports bounds the recent exports list.
const maxRecentExports = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultQuantity: 1,
		Cutting:         DefaultCutSettings(),
		RecentExports:   []string{},
		Theme:           "system",
	}
}

// ApplyToRequest fills a new quote request with the user's saved defaults.
// Fields the request already carries are left alone.
func (c AppConfig) ApplyToRequest(r QuoteRequest) QuoteRequest {
	if r.Material == "" {
		r.Material = c.DefaultMaterial
	}
	if r.Thickness == "" {
		r.Thickness = c.DefaultThickness
	}
	if c.DefaultQuantity > 0 && r.Quantity <= 1 {
		r.Quantity = c.DefaultQuantity
	}
	return r
}

// AddRecentExport records a path at the front of the recent exports list,
// removing any earlier occurrence.
func (c *AppConfig) AddRecentExport(path string) {
	list := []string{path}
	for _, p := range c.RecentExports {
		if p != path {
			list = append(list, p)
		}
	}
	if len(list) > maxRecentExports {
		list = list[:maxRecentExports]
	}
	c.RecentExports = list
}
