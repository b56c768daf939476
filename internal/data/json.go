package data

import (
	"encoding/json"
	"fmt"
	"os"

	"heat-demand/internal/model"
)

// LoadClimateJSON reads a climate year from a JSON file and validates it.
func LoadClimateJSON(path string) (*model.ClimateYear, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var year model.ClimateYear
	if err := json.Unmarshal(raw, &year); err != nil {
		return nil, fmt.Errorf("climate %s: %w", path, err)
	}
	if err := year.Validate(); err != nil {
		return nil, err
	}
	return &year, nil
}

// ParseClimateJSON decodes a climate year from raw bytes (API payloads).
func ParseClimateJSON(raw []byte) (*model.ClimateYear, error) {
	var year model.ClimateYear
	if err := json.Unmarshal(raw, &year); err != nil {
		return nil, err
	}
	if err := year.Validate(); err != nil {
		return nil, err
	}
	return &year, nil
}
