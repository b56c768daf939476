package model

import "fmt"

// VentType classifies a mechanical ventilation unit.
type VentType string

const (
	VentBalanced    VentType = "balanced"
	VentSupplyOnly  VentType = "supply"
	VentExhaustOnly VentType = "exhaust"
)

// Determination records whether the unit's seasonal operation is known.
// Undetermined units fall under the standard's fallback rule: seasonal
// window-ventilation effects are excluded from the time-constant sizing
// coefficient. Keep the branch; it is a standards interpretation, not a
// simplification to collapse.
type Determination string

const (
	DeterminationDetermined   Determination = "determined"
	DeterminationUndetermined Determination = "undetermined"
)

// VentilationUnit is one mechanical ventilation device serving a zone.
// Units:
// - SupplyM3H / ExhaustM3H: m3/h
// - HeatRecovery: 0..1
// - DailyHours: h/d on operating days
// - SpecificFanPowerWhM3: Wh per m3 moved, for auxiliary energy
type VentilationUnit struct {
	ID   string
	Type VentType

	SupplyM3H  float64
	ExhaustM3H float64

	HeatRecovery float64
	DailyHours   float64

	WeekendOperation bool
	Determination    Determination

	SpecificFanPowerWhM3 float64
}

// Virtual reports whether this is the substituted fallback system for zones
// with no linked equipment. Virtual units move hygienic air without fan
// power or heat recovery so demand can still be estimated to the standard.
func (u *VentilationUnit) Virtual() bool {
	return u.ID == VirtualUnitID
}

// VirtualUnitID marks the fallback unit substituted when a zone links no
// real equipment.
const VirtualUnitID = "__virtual__"

// NewVirtualUnit builds the fallback system for a zone and profile. Supply
// matches the hygienic requirement, recovery is zero, operating hours come
// from the usage profile.
func NewVirtualUnit(zone *ThermalZone, profile *UsageProfile) VentilationUnit {
	supply := profile.MinAirflowM3HM2 * zone.FloorAreaM2
	return VentilationUnit{
		ID:            VirtualUnitID,
		Type:          VentBalanced,
		SupplyM3H:     supply,
		ExhaustM3H:    supply,
		HeatRecovery:  0,
		DailyHours:    profile.HVACDailyHours,
		Determination: DeterminationUndetermined,
	}
}

func (u *VentilationUnit) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("ventilation unit id is required")
	}
	switch u.Type {
	case VentBalanced, VentSupplyOnly, VentExhaustOnly:
	default:
		return fmt.Errorf("unit %s: unknown type %q", u.ID, u.Type)
	}
	if u.SupplyM3H < 0 || u.ExhaustM3H < 0 {
		return fmt.Errorf("unit %s: flow rates must be >= 0", u.ID)
	}
	if u.HeatRecovery < 0 || u.HeatRecovery > 1 {
		return fmt.Errorf("unit %s: HeatRecovery must be in [0, 1]", u.ID)
	}
	if u.DailyHours < 0 || u.DailyHours > 24 {
		return fmt.Errorf("unit %s: DailyHours must be in [0, 24]", u.ID)
	}
	if u.Determination != "" && u.Determination != DeterminationDetermined && u.Determination != DeterminationUndetermined {
		return fmt.Errorf("unit %s: unknown determination %q", u.ID, u.Determination)
	}
	return nil
}

// EquipmentRegistry resolves the ventilation units linked to a zone. The
// loaded project satisfies it; callers may substitute their own registry.
type EquipmentRegistry interface {
	UnitsForZone(zoneID string) []VentilationUnit
}
