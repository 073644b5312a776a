package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"proximity-route-service/internal/domain"
)

type LocationSeed struct {
	ID  string  `json:"id" yaml:"id"`
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Read a location list from a JSON or YAML file (chosen by extension).
// File order is preserved; it becomes the registry order.
func LoadSeedFile(path string) ([]domain.Location, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var data []LocationSeed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("load seed: parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(bytes, &data); err != nil {
			return nil, fmt.Errorf("load seed: parse json: %w", err)
		}
	}

	locs := make([]domain.Location, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return nil, fmt.Errorf("load seed: item at index %d: id cannot be empty: %w", i+1, domain.ErrInvalidConfig)
		}
		locs = append(locs, domain.Location{
			ID:          id,
			Coordinates: domain.Coordinates{Lat: item.Lat, Lon: item.Lon},
		})
	}

	return locs, nil
}
