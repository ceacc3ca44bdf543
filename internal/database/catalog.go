package database

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// CatalogEntry is one incident type in the seed file.
type CatalogEntry struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
}

// catalogFile is the on-disk shape of the incident catalog seed.
type catalogFile struct {
	IncidentTypes []CatalogEntry `yaml:"incident_types"`
}

// LoadCatalog reads the incident catalog seed file. A missing file is
// not an error: deployments without a seed simply start with an empty
// catalog.
func LoadCatalog(path string) ([]CatalogEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return file.IncidentTypes, nil
}

// SeedIncidentTypes creates any catalog entries that do not exist yet.
// Existing types are left untouched: the catalog file only ever adds,
// deactivation happens through the API.
func SeedIncidentTypes(db *gorm.DB, entries []CatalogEntry) error {
	for _, entry := range entries {
		if entry.Label == "" {
			continue
		}

		incidentType := IncidentType{
			Label:       entry.Label,
			Description: entry.Description,
			Active:      true,
		}
		result := db.Where("label = ?", entry.Label).FirstOrCreate(&incidentType)
		if result.Error != nil {
			return fmt.Errorf("failed to seed incident type %q: %w", entry.Label, result.Error)
		}
		if result.RowsAffected > 0 {
			log.Printf("Seeded incident type: %s", entry.Label)
		}
	}
	return nil
}
