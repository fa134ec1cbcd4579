package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_RectWithHoles(t *testing.T) {
	spec := model.PartSpec{Template: model.TemplateRectHoles, Width: 10, Height: 5, HoleDiameter: 0.25, HoleOffset: 0.5}
	p, ok := engine.CutProfileFor(spec)
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "bracket.dxf")
	require.NoError(t, ExportDXF(path, p))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var polylines []*entity.LwPolyline
	var circles []*entity.Circle
	for _, e := range drawing.Entities() {
		switch v := e.(type) {
		case *entity.LwPolyline:
			polylines = append(polylines, v)
		case *entity.Circle:
			circles = append(circles, v)
		}
	}
	require.Len(t, polylines, 1)
	require.Len(t, circles, 4)
	assert.Len(t, polylines[0].Vertices, 4)
	for _, c := range circles {
		assert.InDelta(t, 0.125, c.Radius, 1e-9)
	}
}

func TestExportDXF_TriangleFlipped(t *testing.T) {
	spec := model.PartSpec{Template: model.TemplateTriangleHoles, Base: 6, Height: 4, HoleDiameter: 0.25, HoleOffset: 0.75}
	p, ok := engine.CutProfileFor(spec)
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "gusset.dxf")
	require.NoError(t, ExportDXF(path, p))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var apexY float64
	for _, e := range drawing.Entities() {
		if pl, ok := e.(*entity.LwPolyline); ok {
			for _, v := range pl.Vertices {
				if v[1] > apexY {
					apexY = v[1]
				}
			}
		}
	}
	// The apex sits at y=0 in the profile and at the top in the drawing.
	assert.InDelta(t, 4.0, apexY, 1e-6)
}

func TestExportDXF_Circle(t *testing.T) {
	p, ok := engine.CutProfileFor(model.PartSpec{Template: model.TemplateCircle, Diameter: 4})
	require.True(t, ok)

	path := filepath.Join(t.TempDir(), "disc.dxf")
	require.NoError(t, ExportDXF(path, p))

	drawing, err := dxf.Open(path)
	require.NoError(t, err)

	var circles []*entity.Circle
	for _, e := range drawing.Entities() {
		if c, ok := e.(*entity.Circle); ok {
			circles = append(circles, c)
		}
	}
	require.Len(t, circles, 1)
	assert.InDelta(t, 2.0, circles[0].Radius, 1e-9)
	assert.InDelta(t, 2.0, circles[0].Center[0], 1e-9)
	assert.InDelta(t, 2.0, circles[0].Center[1], 1e-9)
}

func TestExportDXF_EmptyProfile(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "none.dxf"), model.CutProfile{})
	assert.Error(t, err)
}
