package model

import "testing"

func withCustomProfiles(t *testing.T) {
	t.Helper()
	saved := CustomProfiles
	CustomProfiles = nil
	t.Cleanup(func() { CustomProfiles = saved })
}

func TestFeedRateFor(t *testing.T) {
	pm := PriceModel{CutSpeedInPerSec: 2}
	s := DefaultCutSettings()
	if got := s.FeedRateFor(pm); got != 120 {
		t.Errorf("derived feed rate = %v, want 120", got)
	}
	s.FeedRate = 90
	if got := s.FeedRateFor(pm); got != 90 {
		t.Errorf("configured feed rate = %v, want 90", got)
	}
}

func TestGetProfile_FallsBackToGenericLaser(t *testing.T) {
	if got := GetProfile("no such profile").Name; got != "Generic Laser" {
		t.Errorf("fallback profile = %q, want Generic Laser", got)
	}
	if got := GetProfile("Waterjet").Name; got != "Waterjet" {
		t.Errorf("GetProfile(Waterjet) = %q", got)
	}
}

func TestCustomProfileLifecycle(t *testing.T) {
	withCustomProfiles(t)

	p := NewCustomProfile("Shop Laser")
	if p.IsBuiltIn {
		t.Fatal("new custom profile should not be built in")
	}
	p.StartCode[0] = "G91"
	if GCodeProfiles[len(GCodeProfiles)-1].StartCode[0] == "G91" {
		t.Fatal("NewCustomProfile shares StartCode with the built-in profile")
	}

	if err := AddCustomProfile(p); err != nil {
		t.Fatalf("AddCustomProfile: %v", err)
	}
	if got := GetProfile("Shop Laser").StartCode[0]; got != "G91" {
		t.Errorf("registered profile start code = %q", got)
	}

	p.Description = "updated"
	if err := AddCustomProfile(p); err != nil {
		t.Fatalf("AddCustomProfile replace: %v", err)
	}
	if len(CustomProfiles) != 1 || CustomProfiles[0].Description != "updated" {
		t.Errorf("replace kept %d profiles, description %q", len(CustomProfiles), CustomProfiles[0].Description)
	}

	if err := RemoveCustomProfile("Shop Laser"); err != nil {
		t.Fatalf("RemoveCustomProfile: %v", err)
	}
	if err := RemoveCustomProfile("Shop Laser"); err == nil {
		t.Error("removing a missing profile should fail")
	}
}

func TestAddCustomProfile_Rejects(t *testing.T) {
	withCustomProfiles(t)

	if err := AddCustomProfile(GCodeProfile{}); err == nil {
		t.Error("empty name should be rejected")
	}
	if err := AddCustomProfile(GCodeProfile{Name: "Waterjet"}); err == nil {
		t.Error("built-in name should be rejected")
	}
	if len(CustomProfiles) != 0 {
		t.Errorf("rejected profiles were registered: %v", CustomProfiles)
	}
}
