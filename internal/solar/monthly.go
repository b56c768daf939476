package solar

import (
	"math"

	"heat-demand/internal/model"
)

// Representative-day synthesis for monthly-only climate input: the monthly
// horizontal total is distributed over a mid-month day with a sinusoidal
// clear-sky shape and a fixed diffuse fraction, and the tilted/horizontal
// ratio of that day scales the monthly total.
const (
	// DefaultDiffuseFraction splits synthesized global irradiance into
	// diffuse and beam when no hourly series is available.
	DefaultDiffuseFraction = 0.6

	// synthPeakWM2 is an arbitrary peak for the synthesized day; only the
	// tilted/horizontal ratio matters, not the absolute level.
	synthPeakWM2 = 1000.0
)

// MonthlyOnSurface returns the monthly insolation on a tilted surface in
// kWh/m2 given the monthly global horizontal total.
func MonthlyOnSurface(horizontalKWhM2 float64, month int, latitudeDeg, surfaceAzimuthDeg, surfaceTiltDeg float64) float64 {
	if horizontalKWhM2 <= 0 {
		return 0
	}
	day := model.MidMonthDay(month)

	horizSum := 0.0
	surfSum := 0.0
	for h := 0; h < 24; h++ {
		hour := float64(h) + 0.5
		global := synthGlobal(day, hour, latitudeDeg)
		if global <= 0 {
			continue
		}
		diff := global * DefaultDiffuseFraction
		beam := global - diff
		horizSum += global
		surfSum += OnSurface(beam, diff, day, hour, latitudeDeg, surfaceAzimuthDeg, surfaceTiltDeg).TotalWM2
	}
	if horizSum <= 0 {
		return 0
	}
	return horizontalKWhM2 * surfSum / horizSum
}

// FromHourly pre-aggregates a month of hourly horizontal samples onto a
// surface, returning kWh/m2.
func FromHourly(samples []model.HourlySample, latitudeDeg, surfaceAzimuthDeg, surfaceTiltDeg float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += OnSurface(s.BeamWM2, s.DiffuseWM2, s.DayOfYear, s.Hour, latitudeDeg, surfaceAzimuthDeg, surfaceTiltDeg).TotalWM2
	}
	return sum / 1000
}

// synthGlobal is the clear-sky proxy for the synthesized day: global
// horizontal irradiance proportional to the sine of the solar altitude.
func synthGlobal(dayOfYear int, hour, latitudeDeg float64) float64 {
	decl := declination(dayOfYear)
	hourAngle := (hour - 12) * 15 * degToRad
	lat := latitudeDeg * degToRad
	sinAlt := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	if sinAlt <= 0 {
		return 0
	}
	return synthPeakWM2 * sinAlt
}
