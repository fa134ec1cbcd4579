package project

import (
	"errors"
	"fmt"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// DefaultProfilesPath returns the default file path for custom profiles.
func DefaultProfilesPath() (string, error) {
	return defaultFile("profiles.json")
}

// SaveCustomProfiles saves custom profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.GCodeProfile) error {
	return writeJSON(path, profiles)
}

// LoadCustomProfiles loads custom profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.GCodeProfile, error) {
	var profiles []model.GCodeProfile
	if _, err := readJSON(path, &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		return []model.GCodeProfile{}, nil
	}

	// Ensure loaded profiles are not marked as built-in
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// LoadCustomProfilesFromDefault loads custom profiles from the default path
// and registers them so GetProfile can find them.
func LoadCustomProfilesFromDefault() ([]model.GCodeProfile, error) {
	path, err := DefaultProfilesPath()
	if err != nil {
		return nil, err
	}
	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return nil, err
	}
	model.CustomProfiles = profiles
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.GCodeProfile) error {
	profile.IsBuiltIn = false
	return writeJSON(path, profile)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.GCodeProfile, error) {
	var profile model.GCodeProfile
	found, err := readJSON(path, &profile)
	if err != nil {
		return model.GCodeProfile{}, err
	}
	if !found {
		return model.GCodeProfile{}, fmt.Errorf("profile file not found: %s", path)
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.GCodeProfile{}, errors.New("imported profile has no name")
	}
	for _, p := range model.GCodeProfiles {
		if p.Name == profile.Name {
			return model.GCodeProfile{}, fmt.Errorf("profile %q would shadow a built-in profile", profile.Name)
		}
	}
	return profile, nil
}

// SaveCustomProfilesToDefault saves custom profiles to the default path.
func SaveCustomProfilesToDefault(profiles []model.GCodeProfile) error {
	path, err := DefaultProfilesPath()
	if err != nil {
		return err
	}
	return SaveCustomProfiles(path, profiles)
}
