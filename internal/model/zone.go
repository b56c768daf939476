package model

import (
	"errors"
	"fmt"
	"sort"
)

// SetbackMode selects how a zone behaves outside its operating period.
type SetbackMode string

const (
	// SetbackReduced keeps the zone heated at a reduced setpoint.
	SetbackReduced SetbackMode = "setback"
	// SetbackShutdown switches heating off entirely between operating days.
	SetbackShutdown SetbackMode = "shutdown"
)

// ConstructionClass maps to a default effective thermal capacity per floor
// area when no explicit capacity is given.
type ConstructionClass string

const (
	ConstructionLight  ConstructionClass = "light"
	ConstructionMedium ConstructionClass = "medium"
	ConstructionHeavy  ConstructionClass = "heavy"
)

// Default effective thermal capacity per floor area, Wh/(m2*K).
const (
	CapacityLightWhM2K  = 50.0
	CapacityMediumWhM2K = 90.0
	CapacityHeavyWhM2K  = 130.0
)

// ThermalZone is one conditioned zone of the building.
// Units:
// - FloorAreaM2: m2
// - HeightM: m
// - NetVolumeM3: m3 (derived from area*height when zero)
// - Setpoints: degC
// - N50: air changes per hour at 50 Pa
// - ThermalBridgeWM2K: W/(m2*K) surcharge on the envelope area
// - CapacityWhK: Wh/K; 0 means "use the construction class default"
type ThermalZone struct {
	ID        string
	Name      string
	ProfileID string

	FloorAreaM2 float64
	HeightM     float64
	NetVolumeM3 float64

	HeatingSetpointC float64
	CoolingSetpointC float64

	N50                   float64
	AirTransferFactor     float64 // air transfer device factor, defaults to 1
	ThermalBridgeWM2K     float64
	CapacityWhK           float64
	Construction          ConstructionClass
	Mode                  SetbackMode
	VentilationUnitIDs    []string
	InternalGainKWhMonths [12]float64 // opaque collaborator gains (lighting, DHW)

	Surfaces []Surface
}

// netVolumeFactor converts gross area*height to a net air volume.
const netVolumeFactor = 0.95

// Volume returns the net air volume, deriving it when not set explicitly.
func (z *ThermalZone) Volume() float64 {
	if z.NetVolumeM3 > 0 {
		return z.NetVolumeM3
	}
	return z.FloorAreaM2 * z.HeightM * netVolumeFactor
}

// Capacity returns the effective thermal capacity in Wh/K.
func (z *ThermalZone) Capacity() float64 {
	if z.CapacityWhK > 0 {
		return z.CapacityWhK
	}
	switch z.Construction {
	case ConstructionLight:
		return CapacityLightWhM2K * z.FloorAreaM2
	case ConstructionHeavy:
		return CapacityHeavyWhM2K * z.FloorAreaM2
	default:
		return CapacityMediumWhM2K * z.FloorAreaM2
	}
}

// Validate checks the invariants a zone must satisfy before it can enter a
// calculation batch. A failing zone is excluded, not fatal to the batch.
func (z *ThermalZone) Validate() error {
	if z.ID == "" {
		return errors.New("zone id is required")
	}
	if z.FloorAreaM2 <= 0 {
		return fmt.Errorf("zone %s: FloorAreaM2 must be > 0", z.ID)
	}
	if z.Volume() <= 0 {
		return fmt.Errorf("zone %s: volume must be > 0", z.ID)
	}
	if z.ProfileID == "" {
		return fmt.Errorf("zone %s: usage profile is required", z.ID)
	}
	if z.Mode != "" && z.Mode != SetbackReduced && z.Mode != SetbackShutdown {
		return fmt.Errorf("zone %s: unknown setback mode %q", z.ID, z.Mode)
	}
	for i := range z.Surfaces {
		if err := z.Surfaces[i].Validate(); err != nil {
			return fmt.Errorf("zone %s: %w", z.ID, err)
		}
	}
	return nil
}

// OrderedSurfaces returns the surfaces sorted by id. Floating-point sums
// depend on iteration order, so every consumer must use this ordering to
// keep results reproducible.
func (z *ThermalZone) OrderedSurfaces() []Surface {
	out := make([]Surface, len(z.Surfaces))
	copy(out, z.Surfaces)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
