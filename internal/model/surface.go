package model

import (
	"fmt"
)

// SurfaceType distinguishes opaque from transparent building elements.
type SurfaceType string

const (
	SurfaceWall   SurfaceType = "wall"
	SurfaceRoof   SurfaceType = "roof"
	SurfaceFloor  SurfaceType = "floor"
	SurfaceWindow SurfaceType = "window"
	SurfaceDoor   SurfaceType = "door"
)

// Exposure classifies the boundary condition on the far side of a surface.
// Keep these values stable; they appear in config files and CSV output.
type Exposure string

const (
	// ExposureExterior faces outside air directly.
	ExposureExterior Exposure = "exterior"
	// ExposureIndirect faces an unconditioned adjacent space.
	ExposureIndirect Exposure = "indirect"
	// ExposureGround faces soil.
	ExposureGround Exposure = "ground"
	// ExposureInterior faces another conditioned zone.
	ExposureInterior Exposure = "interior"
	// ExposureNone is adiabatic.
	ExposureNone Exposure = "none"
)

// Temperature correction factors per exposure. The factor scales the
// inside/outside temperature difference seen by the surface. Interior
// surfaces between equally conditioned zones carry no net transfer under
// the fixed adjacent-zone temperature assumption.
const (
	FactorExterior = 1.0
	FactorIndirect = 0.5
	FactorGround   = 0.6
	FactorInterior = 0.0
	FactorNone     = 0.0
)

// TemperatureFactor returns the exposure correction factor, or an error for
// an unrecognized exposure. An unclassified surface would silently flip the
// sign of a transfer term downstream, so this is a hard per-zone error.
func (e Exposure) TemperatureFactor() (float64, error) {
	switch e {
	case ExposureExterior:
		return FactorExterior, nil
	case ExposureIndirect:
		return FactorIndirect, nil
	case ExposureGround:
		return FactorGround, nil
	case ExposureInterior:
		return FactorInterior, nil
	case ExposureNone:
		return FactorNone, nil
	default:
		return 0, fmt.Errorf("unclassified surface exposure %q", string(e))
	}
}

// Surface is one building element bounding a zone.
// Units:
// - AreaM2: m2
// - UValue: W/(m2*K)
// - AzimuthDeg: 0=N, 90=E, 180=S, 270=W
// - TiltDeg: 0=horizontal (roof), 90=vertical
// Transparent attributes (SHGC, FrameFactor, ShadingFactor) belong to
// windows and doors only; Absorption belongs to opaque surfaces only.
type Surface struct {
	ID       string
	ZoneID   string
	Type     SurfaceType
	Exposure Exposure

	AreaM2     float64
	UValue     float64
	AzimuthDeg float64
	TiltDeg    float64

	AdjacentZoneID string // interior exposure only

	SHGC          float64
	FrameFactor   float64
	ShadingFactor float64

	Absorption float64
}

// Transparent reports whether the surface admits solar gains through glazing.
func (s *Surface) Transparent() bool {
	return s.Type == SurfaceWindow || s.Type == SurfaceDoor
}

func (s *Surface) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("surface id is required")
	}
	if s.AreaM2 <= 0 {
		return fmt.Errorf("surface %s: AreaM2 must be > 0", s.ID)
	}
	if s.UValue < 0 {
		return fmt.Errorf("surface %s: UValue must be >= 0", s.ID)
	}
	if s.Transparent() {
		if s.SHGC <= 0 || s.SHGC > 1 {
			return fmt.Errorf("surface %s: SHGC must be in (0, 1] for %s", s.ID, s.Type)
		}
		if s.Absorption != 0 {
			return fmt.Errorf("surface %s: Absorption is an opaque attribute", s.ID)
		}
	} else {
		if s.SHGC != 0 || s.FrameFactor != 0 || s.ShadingFactor != 0 {
			return fmt.Errorf("surface %s: transparent attributes on opaque %s", s.ID, s.Type)
		}
	}
	if s.AdjacentZoneID != "" && s.Exposure != ExposureInterior {
		return fmt.Errorf("surface %s: AdjacentZoneID requires interior exposure", s.ID)
	}
	return nil
}
