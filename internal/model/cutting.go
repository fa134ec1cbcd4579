package model

import (
	"errors"
	"fmt"
)

// CutSettings holds the machine configuration used when a quoted part is
// turned into a cutting program.
type CutSettings struct {
	GCodeProfile string  `json:"gcode_profile"` // Name of the post-processor profile
	FeedRate     float64 `json:"feed_rate"`     // Cutting feed rate in/min, 0 = derive from price model
	PierceDelay  float64 `json:"pierce_delay"`  // Dwell after beam on, seconds
	ArcSegments  int     `json:"arc_segments"`  // Chords used to approximate a full circle
	SafeHeight   float64 `json:"safe_height"`   // Rapid traverse height in
	PierceHeight float64 `json:"pierce_height"` // Torch height while piercing in
	CutHeight    float64 `json:"cut_height"`    // Torch height while cutting in
	MinWeb       float64 `json:"min_web"`       // Narrowest material left between cuts in
}

// DefaultCutSettings returns settings suited to a small fiber laser.
func DefaultCutSettings() CutSettings {
	return CutSettings{
		GCodeProfile: "Generic Laser",
		FeedRate:     0,
		PierceDelay:  0.5,
		ArcSegments:  72,
		SafeHeight:   0.5,
		PierceHeight: 0.15,
		CutHeight:    0.06,
		MinWeb:       0.0625,
	}
}

// FeedRateFor returns the configured feed rate, or the price model's cut
// speed converted from in/s to in/min when none is configured.
func (s CutSettings) FeedRateFor(pm PriceModel) float64 {
	if s.FeedRate > 0 {
		return s.FeedRate
	}
	return pm.CutSpeedInPerSec * 60
}

// GCodeProfile defines a post-processor configuration for a cutting controller.
type GCodeProfile struct {
	Name        string `json:"name"`        // Profile name
	Description string `json:"description"` // Profile description
	Units       string `json:"units"`       // Always "inches" for quoted parts

	// Startup codes
	StartCode []string `json:"start_code"` // Commands at start of file
	BeamOn    string   `json:"beam_on"`    // Laser/torch/jet on
	BeamOff   string   `json:"beam_off"`   // Laser/torch/jet off
	Dwell     string   `json:"dwell"`      // Dwell command, e.g. "G4 P%.2f"

	// Motion settings
	AbsoluteMode string `json:"absolute_mode"` // G90 or equivalent
	RapidMove    string `json:"rapid_move"`    // G0 or equivalent
	FeedMove     string `json:"feed_move"`     // G1 or equivalent
	UsesZ        bool   `json:"uses_z"`        // Emit torch height moves

	// End codes
	EndCode []string `json:"end_code"` // Commands at end of file

	// Comment style
	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")")

	// Number formatting
	DecimalPlaces int `json:"decimal_places"` // Number of decimal places for coordinates

	IsBuiltIn bool `json:"-"`
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		IsBuiltIn:     true,
		Name:          "Plasma THC",
		Description:   "Plasma table with torch height control",
		Units:         "inches",
		StartCode:     []string{"G90", "G20", "G17", "G94"},
		BeamOn:        "M3",
		BeamOff:       "M5",
		Dwell:         "G4 P%.2f",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		UsesZ:         true,
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M2"},
		CommentPrefix: "(",
		CommentSuffix: ")",
		DecimalPlaces: 4,
	},
	{
		IsBuiltIn:     true,
		Name:          "Waterjet",
		Description:   "Abrasive waterjet controller",
		Units:         "inches",
		StartCode:     []string{"G90", "G20", "G17"},
		BeamOn:        "M62",
		BeamOff:       "M63",
		Dwell:         "G4 P%.2f",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"G0 X0 Y0", "M30"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		IsBuiltIn:     true,
		Name:          "Generic Laser",
		Description:   "Generic fiber or CO2 laser (Grbl laser mode)",
		Units:         "inches",
		StartCode:     []string{"G90", "G20"},
		BeamOn:        "M4",
		BeamOff:       "M5",
		Dwell:         "G4 P%.2f",
		AbsoluteMode:  "G90",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// CustomProfiles holds user-defined profiles loaded from disk.
var CustomProfiles []GCodeProfile

// AllProfiles returns the built-in profiles followed by the custom ones.
func AllProfiles() []GCodeProfile {
	all := make([]GCodeProfile, 0, len(GCodeProfiles)+len(CustomProfiles))
	all = append(all, GCodeProfiles...)
	return append(all, CustomProfiles...)
}

// GetProfile returns a GCode profile by name, or the generic laser profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1] // Generic Laser (last built-in)
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}

// NewCustomProfile returns an editable profile seeded from the generic laser profile.
func NewCustomProfile(name string) GCodeProfile {
	p := GCodeProfiles[len(GCodeProfiles)-1]
	p.Name = name
	p.Description = "Custom profile"
	p.IsBuiltIn = false
	p.StartCode = append([]string(nil), p.StartCode...)
	p.EndCode = append([]string(nil), p.EndCode...)
	return p
}

// AddCustomProfile registers a custom profile, replacing one with the same name.
func AddCustomProfile(p GCodeProfile) error {
	if p.Name == "" {
		return errors.New("profile name cannot be empty")
	}
	for _, b := range GCodeProfiles {
		if b.Name == p.Name {
			return fmt.Errorf("profile %q is built in", p.Name)
		}
	}
	p.IsBuiltIn = false
	for i, c := range CustomProfiles {
		if c.Name == p.Name {
			CustomProfiles[i] = p
			return nil
		}
	}
	CustomProfiles = append(CustomProfiles, p)
	return nil
}

// RemoveCustomProfile deletes a custom profile by name.
func RemoveCustomProfile(name string) error {
	for i, c := range CustomProfiles {
		if c.Name == name {
			CustomProfiles = append(CustomProfiles[:i], CustomProfiles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("custom profile %q not found", name)
}
