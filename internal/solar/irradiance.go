package solar

import "math"

// Result holds the solar position and the irradiance components on a
// tilted surface, W/m2. All components are non-negative.
type Result struct {
	AltitudeDeg  float64
	AzimuthDeg   float64 // 0=N, 90=E, 180=S, 270=W
	IncidenceDeg float64

	BeamWM2      float64
	DiffuseWM2   float64
	ReflectedWM2 float64
	TotalWM2     float64
}

const (
	// GroundReflectance is the fixed albedo for the reflected component.
	GroundReflectance = 0.2

	// cosZenithGuard suppresses the beam projection near sunrise and
	// sunset where the horizontal-to-tilted conversion blows up.
	cosZenithGuard = 0.05

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// OnSurface converts horizontal beam and diffuse irradiance into the
// irradiance on a tilted surface at the given day, hour and latitude.
//
// The hour angle assumes solar noon at local hour 12; the equation-of-time
// and longitude corrections are deliberately omitted. The diffuse component
// follows Klucher's anisotropic model; the reflected component uses a fixed
// ground reflectance and the surface's sky-view complement.
func OnSurface(beamH, diffH float64, dayOfYear int, hour, latitudeDeg, surfaceAzimuthDeg, surfaceTiltDeg float64) Result {
	if beamH < 0 {
		beamH = 0
	}
	if diffH < 0 {
		diffH = 0
	}
	if beamH == 0 && diffH == 0 {
		return Result{}
	}

	decl := declination(dayOfYear)
	hourAngle := (hour - 12) * 15 * degToRad
	lat := latitudeDeg * degToRad

	// Standard spherical relation for the zenith cosine.
	sinAlt := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	if sinAlt <= 0 {
		// Sun below the horizon.
		return Result{}
	}
	alt := math.Asin(sinAlt)

	azimuth := solarAzimuth(lat, decl, hourAngle, alt)

	tilt := surfaceTiltDeg * degToRad
	cosInc := sinAlt*math.Cos(tilt) +
		math.Cos(alt)*math.Sin(tilt)*math.Cos(azimuth-surfaceAzimuthDeg*degToRad)

	res := Result{
		AltitudeDeg:  alt * radToDeg,
		AzimuthDeg:   azimuth * radToDeg,
		IncidenceDeg: math.Acos(clamp(cosInc, -1, 1)) * radToDeg,
	}

	// Beam: horizontal beam projected onto the surface, guarded against
	// near-horizon blow-up; negative projections clamp to zero.
	cosZenith := sinAlt
	if cosZenith > cosZenithGuard && cosInc > 0 {
		res.BeamWM2 = beamH * cosInc / cosZenith
	}

	res.DiffuseWM2 = klucherDiffuse(beamH, diffH, tilt, cosInc, alt)

	global := beamH + diffH
	res.ReflectedWM2 = global * GroundReflectance * (1 - math.Cos(tilt)) / 2

	res.TotalWM2 = res.BeamWM2 + res.DiffuseWM2 + res.ReflectedWM2
	return res
}

// declination returns the solar declination in radians from a sinusoidal
// day-of-year approximation.
func declination(dayOfYear int) float64 {
	return 23.45 * degToRad * math.Sin(2*math.Pi*float64(284+dayOfYear)/365)
}

// solarAzimuth returns the sun azimuth in radians, measured clockwise from
// north.
func solarAzimuth(lat, decl, hourAngle, alt float64) float64 {
	cosAz := (math.Sin(decl) - math.Sin(alt)*math.Sin(lat)) / (math.Cos(alt) * math.Cos(lat))
	az := math.Acos(clamp(cosAz, -1, 1))
	// Morning sun stands east of north, afternoon west.
	if hourAngle > 0 {
		az = 2*math.Pi - az
	}
	return az
}

// klucherDiffuse evaluates Klucher's anisotropic sky model: an isotropic
// base modulated by horizon-brightening and circumsolar terms, with the
// anisotropy index F derived from the diffuse/global ratio.
func klucherDiffuse(beamH, diffH, tilt, cosInc, alt float64) float64 {
	if diffH <= 0 {
		return 0
	}
	global := beamH + diffH
	f := 1 - (diffH/global)*(diffH/global)

	base := diffH * (1 + math.Cos(tilt)) / 2
	horizon := 1 + f*math.Pow(math.Sin(tilt/2), 3)

	cosIncPos := math.Max(cosInc, 0)
	zenith := math.Pi/2 - alt
	circumsolar := 1 + f*cosIncPos*cosIncPos*math.Pow(math.Sin(zenith), 3)

	return base * horizon * circumsolar
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
