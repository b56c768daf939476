package balance

import (
	"fmt"

	"heat-demand/internal/model"
	"heat-demand/internal/solar"
)

// Solar gain coefficients.
const (
	// DefaultFrameFactor is the glazed fraction of a window area when the
	// surface does not specify one.
	DefaultFrameFactor = 0.7

	// GlazingReduction covers dirt and non-perpendicular incidence.
	GlazingReduction = 0.9

	// ExternalSurfaceResistance is R_se for opaque solar absorption,
	// m2*K/W.
	ExternalSurfaceResistance = 0.04
)

// SurfaceAperture is the precomputed solar-collecting property of one
// surface: effective area times its gain coefficient. Multiplying by the
// monthly surface insolation (kWh/m2) yields the gain in kWh.
type SurfaceAperture struct {
	SurfaceID  string
	AzimuthDeg float64
	TiltDeg    float64
	// EffectiveM2 already folds in SHGC/frame/shading for glazing or
	// U*absorption*R_se for opaque elements.
	EffectiveM2 float64
}

// ZoneDerivedConstants is computed exactly once per zone before any month
// is evaluated and read-only thereafter, so months may run concurrently.
type ZoneDerivedConstants struct {
	TransmissionWK float64 // H_T incl. thermal-bridge surcharge
	CapacityWhK    float64 // effective thermal capacity Cm
	EnvelopeM2     float64 // heat-transferring envelope area

	// Apertures lists sun-exposed surfaces in id order; only surfaces
	// facing outside air directly collect solar gains.
	Apertures []SurfaceAperture
}

// Derive computes the zone constants from its surfaces. Surfaces are
// processed in id order so floating-point sums are reproducible. An
// unclassifiable surface is a hard error for this zone only.
func Derive(zone *model.ThermalZone) (*ZoneDerivedConstants, error) {
	d := &ZoneDerivedConstants{CapacityWhK: zone.Capacity()}

	for _, s := range zone.OrderedSurfaces() {
		factor, err := s.Exposure.TemperatureFactor()
		if err != nil {
			return nil, fmt.Errorf("surface %s: %w", s.ID, err)
		}
		d.TransmissionWK += s.UValue * s.AreaM2 * factor
		if factor > 0 {
			d.EnvelopeM2 += s.AreaM2
		}

		if s.Exposure != model.ExposureExterior {
			continue
		}
		sp := &s
		eff := apertureArea(sp)
		if eff > 0 {
			d.Apertures = append(d.Apertures, SurfaceAperture{
				SurfaceID:   s.ID,
				AzimuthDeg:  s.AzimuthDeg,
				TiltDeg:     s.TiltDeg,
				EffectiveM2: eff,
			})
		}
	}

	d.TransmissionWK += zone.ThermalBridgeWM2K * d.EnvelopeM2
	return d, nil
}

func apertureArea(s *model.Surface) float64 {
	if s.Transparent() {
		frame := s.FrameFactor
		if frame <= 0 {
			frame = DefaultFrameFactor
		}
		shading := s.ShadingFactor
		if shading <= 0 {
			shading = 1
		}
		return s.AreaM2 * s.SHGC * frame * shading * GlazingReduction
	}
	if s.Absorption <= 0 {
		return 0
	}
	return s.AreaM2 * s.UValue * s.Absorption * ExternalSurfaceResistance
}

// SolarGainKWh sums the monthly solar gains over the zone's apertures.
// With an hourly climate series the irradiance model integrates it
// directly; otherwise the representative-day synthesis applies.
func (d *ZoneDerivedConstants) SolarGainKWh(cm model.ClimateMonth, latitudeDeg float64) float64 {
	total := 0.0
	for _, ap := range d.Apertures {
		var insolation float64
		if len(cm.Hourly) > 0 {
			insolation = solar.FromHourly(cm.Hourly, latitudeDeg, ap.AzimuthDeg, ap.TiltDeg)
		} else {
			insolation = solar.MonthlyOnSurface(cm.GlobalHorizontalKWhM2, cm.Month, latitudeDeg, ap.AzimuthDeg, ap.TiltDeg)
		}
		total += ap.EffectiveM2 * insolation
	}
	return total
}

// InternalGainKWh returns the monthly internal gains: profile metabolic and
// equipment rates over operating days plus the opaque collaborator quantity
// (lighting, DHW losses) for the month.
func InternalGainKWh(zone *model.ThermalZone, profile *model.UsageProfile, month int, operatingDays float64) float64 {
	rate := (profile.MetabolicGainWhM2Day + profile.EquipmentGainWhM2Day) * zone.FloorAreaM2
	gains := rate * operatingDays / 1000
	if month >= 1 && month <= 12 {
		gains += zone.InternalGainKWhMonths[month-1]
	}
	return gains
}
