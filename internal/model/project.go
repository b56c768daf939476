package model

import (
	"fmt"
	"sort"
)

// Project is the immutable input snapshot for one calculation batch.
type Project struct {
	Name        string
	LatitudeDeg float64

	Zones    []ThermalZone
	Profiles map[string]UsageProfile
	Units    map[string]VentilationUnit
}

// Profile resolves a usage profile, falling back to the builtin catalog.
func (p *Project) Profile(id string) (UsageProfile, bool) {
	if prof, ok := p.Profiles[id]; ok {
		return prof, true
	}
	prof, ok := BuiltinProfiles()[id]
	return prof, ok
}

// UnitsForZone implements EquipmentRegistry over the project's unit table.
// Unknown unit ids are skipped; the airflow model substitutes its virtual
// fallback when nothing resolves.
func (p *Project) UnitsForZone(zoneID string) []VentilationUnit {
	var zone *ThermalZone
	for i := range p.Zones {
		if p.Zones[i].ID == zoneID {
			zone = &p.Zones[i]
			break
		}
	}
	if zone == nil {
		return nil
	}
	out := make([]VentilationUnit, 0, len(zone.VentilationUnitIDs))
	for _, id := range zone.VentilationUnitIDs {
		if u, ok := p.Units[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// OrderedZones returns the zones sorted by id for deterministic batches.
func (p *Project) OrderedZones() []ThermalZone {
	out := make([]ThermalZone, len(p.Zones))
	copy(out, p.Zones)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Validate checks project-level references. Zone-level problems are
// handled per zone during the batch, not here.
func (p *Project) Validate() error {
	seen := map[string]bool{}
	for i := range p.Zones {
		id := p.Zones[i].ID
		if seen[id] {
			return fmt.Errorf("duplicate zone id %q", id)
		}
		seen[id] = true
	}
	for id, u := range p.Units {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("unit %s: %w", id, err)
		}
	}
	for id, prof := range p.Profiles {
		if err := prof.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", id, err)
		}
	}
	return nil
}
