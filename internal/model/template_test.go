package model

import (
	"testing"
)

func TestParseTemplate(t *testing.T) {
	tests := []struct {
		in   string
		want Template
		ok   bool
	}{
		{"rectangle", TemplateRectangle, true},
		{"RECT_HOLES", TemplateRectHoles, true},
		{" circle ", TemplateCircle, true},
		{"Triangle w/ Holes", TemplateTriangleHoles, true},
		{"circle / disc", TemplateCircle, true},
		{"square", TemplateNone, false},
		{"", TemplateNone, false},
		{"hexagon", TemplateNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseTemplate(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseTemplate(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTemplateHoleCount(t *testing.T) {
	want := map[Template]int{
		TemplateRectangle:     0,
		TemplateCircle:        0,
		TemplateRectHoles:     4,
		TemplateTriangleHoles: 3,
		TemplateNone:          0,
	}
	for tmpl, n := range want {
		if got := tmpl.HoleCount(); got != n {
			t.Errorf("%q.HoleCount() = %d, want %d", tmpl, got, n)
		}
		if tmpl.HasHoles() != (n > 0) {
			t.Errorf("%q.HasHoles() inconsistent with HoleCount", tmpl)
		}
	}
}

func TestTemplatesReturnsCopy(t *testing.T) {
	a := Templates()
	if len(a) != 4 {
		t.Fatalf("expected 4 templates, got %d", len(a))
	}
	a[0] = TemplateNone
	if Templates()[0] != TemplateRectangle {
		t.Error("mutating the returned slice changed the template order")
	}
}

func TestDisplayName(t *testing.T) {
	if TemplateRectHoles.DisplayName() != "Rectangle w/ Holes" {
		t.Errorf("unexpected display name %q", TemplateRectHoles.DisplayName())
	}
	if TemplateNone.DisplayName() != "None" {
		t.Errorf("expected None for empty template, got %q", TemplateNone.DisplayName())
	}
}

func TestPlaceholderSpec(t *testing.T) {
	rect := PlaceholderSpec(TemplateRectHoles)
	if rect.Width != 70 || rect.Height != 50 {
		t.Errorf("expected 70x50 rectangle placeholder, got %vx%v", rect.Width, rect.Height)
	}
	if rect.HoleDiameter != 8 || rect.HoleOffset != 10 {
		t.Errorf("expected hole 8/10, got %v/%v", rect.HoleDiameter, rect.HoleOffset)
	}

	circle := PlaceholderSpec(TemplateCircle)
	if circle.Diameter != 60 {
		t.Errorf("expected circle diameter 60, got %v", circle.Diameter)
	}

	tri := PlaceholderSpec(TemplateTriangleHoles)
	if tri.Base != 70 || tri.Height != 60 {
		t.Errorf("expected triangle 70x60, got %vx%v", tri.Base, tri.Height)
	}

	if plain := PlaceholderSpec(TemplateRectangle); plain.HoleDiameter != 0 {
		t.Error("plain rectangle placeholder should not carry hole parameters")
	}
}
