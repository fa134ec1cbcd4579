package project

import (
	"fmt"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// DefaultCatalogPath returns ~/.sheetquote/catalog.json.
func DefaultCatalogPath() (string, error) {
	return defaultFile("catalog.json")
}

// LoadCatalog reads a price table. A missing file yields the built-in
// catalog. Loaded tables must pass validation.
func LoadCatalog(path string) (model.Catalog, error) {
	var catalog model.Catalog
	found, err := readJSON(path, &catalog)
	if err != nil {
		return model.DefaultCatalog(), err
	}
	if !found {
		return model.DefaultCatalog(), nil
	}
	if err := catalog.Validate(); err != nil {
		return model.DefaultCatalog(), fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}

// SaveCatalog validates and writes a price table.
func SaveCatalog(path string, catalog model.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid catalog: %w", err)
	}
	return writeJSON(path, catalog)
}

// ResolveCatalog loads the catalog at path, falling back to the default
// location when path is empty.
func ResolveCatalog(path string) (model.Catalog, error) {
	if path == "" {
		var err error
		if path, err = DefaultCatalogPath(); err != nil {
			return model.DefaultCatalog(), err
		}
	}
	return LoadCatalog(path)
}

// ExportCatalog writes a catalog to a user-chosen file for sharing.
func ExportCatalog(path string, catalog model.Catalog) error {
	return SaveCatalog(path, catalog)
}

// ImportCatalog reads a shared catalog. Unlike LoadCatalog, a missing file
// is an error.
func ImportCatalog(path string) (model.Catalog, error) {
	var catalog model.Catalog
	found, err := readJSON(path, &catalog)
	if err != nil {
		return model.Catalog{}, err
	}
	if !found {
		return model.Catalog{}, fmt.Errorf("catalog file not found: %s", path)
	}
	if err := catalog.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return catalog, nil
}
