package model

import (
	"math"
	"testing"
)

func TestAllProfilesIncludesBuiltInAndCustom(t *testing.T) {
	CustomProfiles = nil

	builtInCount := len(GCodeProfiles)
	all := AllProfiles()
	if len(all) != builtInCount {
		t.Errorf("expected %d profiles with no custom, got %d", builtInCount, len(all))
	}

	CustomProfiles = []GCodeProfile{
		{Name: "Custom1", Description: "Test custom"},
	}
	defer func() { CustomProfiles = nil }()

	all = AllProfiles()
	if len(all) != builtInCount+1 {
		t.Errorf("expected %d profiles with 1 custom, got %d", builtInCount+1, len(all))
	}
}

func TestGetProfileFindsCustom(t *testing.T) {
	CustomProfiles = []GCodeProfile{
		{Name: "MyCustom", Description: "Custom profile", RapidMove: "G0", FeedMove: "G1"},
	}
	defer func() { CustomProfiles = nil }()

	p := GetProfile("MyCustom")
	if p.Name != "MyCustom" {
		t.Errorf("expected MyCustom, got %s", p.Name)
	}
}

func TestGetProfileFallsBackToGenericLaser(t *testing.T) {
	p := GetProfile("NoSuchController")
	if p.Name != "Generic Laser" {
		t.Errorf("expected Generic Laser fallback, got %s", p.Name)
	}
	if !p.IsBuiltIn {
		t.Error("fallback profile should be built-in")
	}
}

func TestFeedRateFor_ModelDefaults(t *testing.T) {
	s := DefaultCutSettings()
	pm := PriceModel{CostPerSqInch: 0.1, CutSpeedInPerSec: 5}

	if got := s.FeedRateFor(pm); got != 300 {
		t.Errorf("expected derived feed 300 in/min, got %f", got)
	}
	s.FeedRate = 120
	if got := s.FeedRateFor(pm); got != 120 {
		t.Errorf("expected configured feed 120 in/min, got %f", got)
	}
}

func TestOutlinePerimeterAndBoundingBox(t *testing.T) {
	o := Outline{{X: 0, Y: 4}, {X: 6, Y: 4}, {X: 3, Y: 0}}

	want := 6 + 2*5.0
	if got := o.Perimeter(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected perimeter %f, got %f", want, got)
	}

	min, max := o.BoundingBox()
	if min.X != 0 || min.Y != 0 || max.X != 6 || max.Y != 4 {
		t.Errorf("unexpected bounding box %v %v", min, max)
	}

	moved := o.Translate(1, 2)
	if moved[2].X != 4 || moved[2].Y != 2 {
		t.Errorf("unexpected translated apex %v", moved[2])
	}
	if o[2].X != 3 {
		t.Error("Translate must not modify the receiver")
	}
}

func TestGeometryResultAccessors(t *testing.T) {
	g := GeometryResult{
		Perimeter:     30,
		HoleCutLength: 12,
		Primitives: []Primitive{
			{Kind: ShapeRect, Role: RoleOutline},
			{Kind: ShapeCircle, Role: RoleHole},
			{Kind: ShapeCircle, Role: RoleHole},
		},
	}

	if g.CutLength() != 42 {
		t.Errorf("expected cut length 42, got %f", g.CutLength())
	}
	if _, ok := g.Outline(); !ok {
		t.Error("expected an outline primitive")
	}
	if len(g.Holes()) != 2 {
		t.Errorf("expected 2 holes, got %d", len(g.Holes()))
	}

	var empty GeometryResult
	if _, ok := empty.Outline(); ok {
		t.Error("empty result should have no outline")
	}
}
