package model

import "fmt"

// HourlySample is one hour of the optional climate series used to
// pre-aggregate per-surface insolation.
type HourlySample struct {
	DayOfYear  int     `json:"day_of_year"`
	Hour       float64 `json:"hour"`
	BeamWM2    float64 `json:"beam_w_m2"`    // horizontal beam irradiance
	DiffuseWM2 float64 `json:"diffuse_w_m2"` // horizontal diffuse irradiance
}

// ClimateMonth holds the monthly climate record for one calendar month.
type ClimateMonth struct {
	Month int `json:"month"` // 1..12

	// MeanExternalC is the monthly mean external air temperature, degC.
	MeanExternalC float64 `json:"te_c"`

	// GlobalHorizontalKWhM2 is the monthly global irradiance on the
	// horizontal plane, kWh/m2.
	GlobalHorizontalKWhM2 float64 `json:"global_horizontal_kwh_m2"`

	// Hourly is optional; when present it is used instead of the
	// representative-day synthesis.
	Hourly []HourlySample `json:"hourly,omitempty"`
}

// ClimateYear is twelve months of climate input plus site location.
type ClimateYear struct {
	Source      string         `json:"source"`
	LatitudeDeg float64        `json:"latitude_deg"`
	Months      []ClimateMonth `json:"months"`
}

// ClimateProvider is the boundary through which the engine reads climate.
// The loaded ClimateYear satisfies it; callers may substitute their own.
type ClimateProvider interface {
	MonthlyClimate(month int) (ClimateMonth, error)
}

var daysPerMonth = [12]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the day count of a calendar month (non-leap year).
func DaysInMonth(month int) float64 {
	if month < 1 || month > 12 {
		return 0
	}
	return daysPerMonth[month-1]
}

// MidMonthDay returns the representative day-of-year used when only a
// monthly irradiance total is available.
func MidMonthDay(month int) int {
	day := 0.0
	for m := 1; m < month; m++ {
		day += daysPerMonth[m-1]
	}
	return int(day + daysPerMonth[month-1]/2)
}

// MonthlyClimate implements ClimateProvider.
func (c *ClimateYear) MonthlyClimate(month int) (ClimateMonth, error) {
	for _, m := range c.Months {
		if m.Month == month {
			return m, nil
		}
	}
	return ClimateMonth{}, fmt.Errorf("climate: no record for month %d", month)
}

// Validate checks that all twelve months are present exactly once.
func (c *ClimateYear) Validate() error {
	if len(c.Months) != 12 {
		return fmt.Errorf("climate: expected 12 months, got %d", len(c.Months))
	}
	seen := [13]bool{}
	for _, m := range c.Months {
		if m.Month < 1 || m.Month > 12 {
			return fmt.Errorf("climate: month %d out of range", m.Month)
		}
		if seen[m.Month] {
			return fmt.Errorf("climate: duplicate month %d", m.Month)
		}
		seen[m.Month] = true
		if m.GlobalHorizontalKWhM2 < 0 {
			return fmt.Errorf("climate: month %d irradiance must be >= 0", m.Month)
		}
	}
	return nil
}
