package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/SheetQuote/internal/model"
)

// BackupVersion is written into every backup bundle.
const BackupVersion = "1.0.0"

// BackupData bundles all persisted settings into one file.
type BackupData struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.AppConfig      `json:"config"`
	Catalog   model.Catalog        `json:"catalog"`
	Profiles  []model.GCodeProfile `json:"profiles,omitempty"`
	Presets   []PartPreset         `json:"presets,omitempty"`
}

// ExportAllData writes config, catalog, custom profiles and presets to a
// single backup file.
func ExportAllData(path string, cfg model.AppConfig, catalog model.Catalog, profiles []model.GCodeProfile, presets []PartPreset) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    cfg,
		Catalog:   catalog,
		Profiles:  profiles,
		Presets:   presets,
	}
	return writeJSON(path, backup)
}

// ImportAllData reads a backup file and checks its version and catalog.
func ImportAllData(path string) (BackupData, error) {
	var backup BackupData
	found, err := readJSON(path, &backup)
	if err != nil {
		return BackupData{}, err
	}
	if !found {
		return BackupData{}, fmt.Errorf("backup file not found: %s", path)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version")
	}
	if err := backup.Catalog.Validate(); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup catalog: %w", err)
	}
	if backup.Config.RecentExports == nil {
		backup.Config.RecentExports = []string{}
	}
	for i := range backup.Profiles {
		backup.Profiles[i].IsBuiltIn = false
	}
	return backup, nil
}
