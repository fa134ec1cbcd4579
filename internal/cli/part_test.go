package cli

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/export"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartFlagsRequest(t *testing.T) {
	f := partFlags{
		label:        "Bracket",
		template:     "rect_holes",
		width:        10,
		height:       5,
		holeDiameter: 0.25,
		holeOffset:   0.5,
		material:     "Aluminum 3003",
		thickness:    "0.063",
		quantity:     25,
		finishing:    "powder",
		color:        "Black",
	}

	label, req, warnings, err := f.request(model.DefaultCatalog(), model.DefaultAppConfig())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Bracket", label)
	assert.Equal(t, model.TemplateRectHoles, req.Part.Template)
	assert.Equal(t, 10.0, req.Part.Width)
	assert.Equal(t, 0.5, req.Part.HoleOffset)
	assert.Equal(t, "aluminum_3003", req.Material)
	assert.Equal(t, "0.063", req.Thickness)
	assert.Equal(t, 25, req.Quantity)
	assert.Equal(t, model.FinishingPowderCoated, req.Finishing)
	assert.Equal(t, "Black", req.PowderCoatColor)
}

func TestPartFlagsRequest_SavedDefaults(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.DefaultMaterial = "stainless_304"
	cfg.DefaultThickness = "0.060"
	cfg.DefaultQuantity = 10

	f := partFlags{template: "circle", diameter: 4}
	_, req, _, err := f.request(model.DefaultCatalog(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "stainless_304", req.Material)
	assert.Equal(t, "0.060", req.Thickness)
	assert.Equal(t, 10, req.Quantity)

	f.quantity = 1
	_, req, _, err = f.request(model.DefaultCatalog(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, req.Quantity, "explicit quantity wins over the saved default")
}

func TestPartFlagsRequest_UnknownMaterialWarns(t *testing.T) {
	f := partFlags{template: "rectangle", width: 2, height: 2, material: "Titanium", thickness: "0.040"}

	_, req, warnings, err := f.request(model.DefaultCatalog(), model.DefaultAppConfig())
	require.NoError(t, err)
	assert.Equal(t, model.OtherOption, req.Material)
	assert.Equal(t, "Titanium", req.OtherMaterial)
	assert.Len(t, warnings, 2)
}

func TestPartFlagsRequest_Errors(t *testing.T) {
	_, _, _, err := partFlags{width: 2}.request(model.DefaultCatalog(), model.DefaultAppConfig())
	assert.Error(t, err, "template is required")

	_, _, _, err = partFlags{template: "hexagon"}.request(model.DefaultCatalog(), model.DefaultAppConfig())
	assert.Error(t, err)

	_, _, _, err = partFlags{template: "circle", finishing: "chrome"}.request(model.DefaultCatalog(), model.DefaultAppConfig())
	assert.Error(t, err)

	_, _, _, err = partFlags{template: "circle", diameter: math.NaN()}.request(model.DefaultCatalog(), model.DefaultAppConfig())
	assert.Error(t, err, "NaN diameter")

	_, _, _, err = partFlags{template: "rectangle", width: math.Inf(1), height: 5}.request(model.DefaultCatalog(), model.DefaultAppConfig())
	assert.Error(t, err, "infinite width")
}

func TestPartFlagsRequest_FromDXF(t *testing.T) {
	spec := model.PartSpec{Template: model.TemplateTriangleHoles, Base: 6, Height: 4, HoleDiameter: 0.25, HoleOffset: 0.75}
	profile, ok := engine.CutProfileFor(spec)
	require.True(t, ok)
	path := filepath.Join(t.TempDir(), "gusset.dxf")
	require.NoError(t, export.ExportDXF(path, profile))

	f := partFlags{fromDXF: path, template: "circle", diameter: 9, material: "mild_steel_a36", thickness: "0.059"}
	_, req, _, err := f.request(model.DefaultCatalog(), model.DefaultAppConfig())
	require.NoError(t, err)
	assert.Equal(t, model.TemplateTriangleHoles, req.Part.Template)
	assert.Equal(t, 0.0, req.Part.Diameter, "drawing replaces the flag dimensions")
	assert.InDelta(t, 6, req.Part.Base, 1e-4)
	assert.InDelta(t, 4, req.Part.Height, 1e-4)
	assert.InDelta(t, 0.75, req.Part.HoleOffset, 1e-4)
}

func TestPartFlagsRequest_FromMissingDXF(t *testing.T) {
	f := partFlags{fromDXF: filepath.Join(t.TempDir(), "missing.dxf")}
	_, _, _, err := f.request(model.DefaultCatalog(), model.DefaultAppConfig())
	assert.Error(t, err)
}
