package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCatalog_Human(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCatalog(&buf, model.DefaultCatalog(), false))

	out := buf.String()
	for _, want := range []string{"Aluminum 3003", `0.179" (7 ga)`, "101+", "50%", "powder_coated", "Minimum part"} {
		assert.Contains(t, out, want)
	}
}

func TestRunCatalog_UnpricedThickness(t *testing.T) {
	catalog := model.DefaultCatalog()
	delete(catalog.Prices["stainless_304"], "0.120")

	var buf bytes.Buffer
	require.NoError(t, runCatalog(&buf, catalog, false))
	assert.Contains(t, buf.String(), "not priced")
}

func TestRunCatalog_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runCatalog(&buf, model.DefaultCatalog(), true))

	var parsed model.Catalog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.NoError(t, parsed.Validate())
	assert.Len(t, parsed.Materials, 3)
}

func TestRunCatalogInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")

	var buf bytes.Buffer
	require.NoError(t, runCatalogInit(&buf, path))
	assert.Contains(t, buf.String(), path)

	loaded, err := project.LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Tiers, 4)

	assert.Error(t, runCatalogInit(&buf, path), "refuses to overwrite")
}
