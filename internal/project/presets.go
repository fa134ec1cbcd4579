package project

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// PartPreset is a named quote request the user can reload, e.g. a bracket
// they reorder every month.
type PartPreset struct {
	Name      string             `json:"name"`
	CreatedAt string             `json:"created_at"`
	Request   model.QuoteRequest `json:"request"`
}

// PresetStore holds saved presets ordered by name.
type PresetStore struct {
	Presets []PartPreset `json:"presets"`
}

// NewPresetStore returns an empty store.
func NewPresetStore() PresetStore {
	return PresetStore{Presets: []PartPreset{}}
}

// Save adds or replaces the preset with the given name.
func (s *PresetStore) Save(name string, req model.QuoteRequest) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("preset name is required")
	}
	if !req.Part.Template.Known() {
		return fmt.Errorf("preset %q has no part template", name)
	}
	preset := PartPreset{
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Request:   req,
	}
	for i, p := range s.Presets {
		if strings.EqualFold(p.Name, name) {
			s.Presets[i] = preset
			return nil
		}
	}
	s.Presets = append(s.Presets, preset)
	sort.Slice(s.Presets, func(i, j int) bool {
		return strings.ToLower(s.Presets[i].Name) < strings.ToLower(s.Presets[j].Name)
	})
	return nil
}

// Find returns the preset with the given name, ignoring case.
func (s PresetStore) Find(name string) (PartPreset, bool) {
	for _, p := range s.Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return PartPreset{}, false
}

// Remove deletes a preset and reports whether it existed.
func (s *PresetStore) Remove(name string) bool {
	for i, p := range s.Presets {
		if strings.EqualFold(p.Name, name) {
			s.Presets = append(s.Presets[:i], s.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// Names lists the preset names in display order.
func (s PresetStore) Names() []string {
	names := make([]string, len(s.Presets))
	for i, p := range s.Presets {
		names[i] = p.Name
	}
	return names
}

// DefaultPresetsPath returns ~/.sheetquote/presets.json.
func DefaultPresetsPath() (string, error) {
	return defaultFile("presets.json")
}

// SavePresets writes the preset store to a JSON file.
func SavePresets(path string, store PresetStore) error {
	return writeJSON(path, store)
}

// LoadPresets reads a preset store. If the file does not exist, returns an
// empty store.
func LoadPresets(path string) (PresetStore, error) {
	store := NewPresetStore()
	if _, err := readJSON(path, &store); err != nil {
		return NewPresetStore(), err
	}
	if store.Presets == nil {
		store.Presets = []PartPreset{}
	}
	return store, nil
}
