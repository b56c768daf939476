package model

import (
	"errors"
	"fmt"
	"sort"
)

// UsageProfile describes the occupancy and conditioning pattern of a zone.
// Units:
// - OccupancyStartH/OccupancyEndH: local hours [0,24]
// - AnnualOperatingDays: d/a
// - MinAirflowM3HM2: hygienic outdoor airflow, m3/h per m2 floor area
// - MaxSetbackDeltaK: largest allowed night/weekend temperature drop, K
// - HVACDailyHours: h/d the HVAC plant runs on operating days
// - Metabolic/EquipmentGainWhM2Day: internal gain rates, Wh/(m2*d)
type UsageProfile struct {
	ID   string
	Name string

	OccupancyStartH float64
	OccupancyEndH   float64

	AnnualOperatingDays float64
	MinAirflowM3HM2     float64
	MaxSetbackDeltaK    float64
	HVACDailyHours      float64

	MetabolicGainWhM2Day float64
	EquipmentGainWhM2Day float64
}

// ContinuousOperationDays is the annual operating-day count at or above
// which a profile is treated as continuously operated: no operating /
// non-operating split and no setback correction.
const ContinuousOperationDays = 260

// OccupiedHours returns the daily occupancy duration in hours.
func (p *UsageProfile) OccupiedHours() float64 {
	h := p.OccupancyEndH - p.OccupancyStartH
	if h < 0 {
		h += 24
	}
	return h
}

// OperatingDaysPerWeek derives the weekly operating-day count from the
// annual figure, capped at 7.
func (p *UsageProfile) OperatingDaysPerWeek() float64 {
	d := p.AnnualOperatingDays / 52
	if d > 7 {
		return 7
	}
	return d
}

// Continuous reports whether the zone never drops into setback.
func (p *UsageProfile) Continuous() bool {
	return p.AnnualOperatingDays >= ContinuousOperationDays
}

// FiveDayWeek reports whether the profile operates a reduced week, which
// scales the monthly cooling demand by 5/7.
func (p *UsageProfile) FiveDayWeek() bool {
	return !p.Continuous()
}

func (p *UsageProfile) Validate() error {
	if p.ID == "" {
		return errors.New("profile id is required")
	}
	if p.OccupancyStartH < 0 || p.OccupancyStartH > 24 || p.OccupancyEndH < 0 || p.OccupancyEndH > 24 {
		return fmt.Errorf("profile %s: occupancy hours must be within [0, 24]", p.ID)
	}
	if p.AnnualOperatingDays <= 0 || p.AnnualOperatingDays > 365 {
		return fmt.Errorf("profile %s: AnnualOperatingDays must be in (0, 365]", p.ID)
	}
	if p.MinAirflowM3HM2 < 0 {
		return fmt.Errorf("profile %s: MinAirflowM3HM2 must be >= 0", p.ID)
	}
	if p.HVACDailyHours <= 0 || p.HVACDailyHours > 24 {
		return fmt.Errorf("profile %s: HVACDailyHours must be in (0, 24]", p.ID)
	}
	return nil
}

// BuiltinProfiles returns the shipped usage-profile catalog keyed by id.
// Values follow the standard tabulated conditions for each usage.
func BuiltinProfiles() map[string]UsageProfile {
	ps := []UsageProfile{
		{
			ID: "office", Name: "Single/group office",
			OccupancyStartH: 7, OccupancyEndH: 18,
			AnnualOperatingDays: 250,
			MinAirflowM3HM2:     4,
			MaxSetbackDeltaK:    4,
			HVACDailyHours:      13,
			MetabolicGainWhM2Day: 30, EquipmentGainWhM2Day: 40,
		},
		{
			ID: "residential", Name: "Residential",
			OccupancyStartH: 0, OccupancyEndH: 24,
			AnnualOperatingDays: 365,
			MinAirflowM3HM2:     0.6,
			MaxSetbackDeltaK:    2,
			HVACDailyHours:      24,
			MetabolicGainWhM2Day: 45, EquipmentGainWhM2Day: 45,
		},
		{
			ID: "classroom", Name: "Classroom",
			OccupancyStartH: 8, OccupancyEndH: 15,
			AnnualOperatingDays: 200,
			MinAirflowM3HM2:     8,
			MaxSetbackDeltaK:    4,
			HVACDailyHours:      9,
			MetabolicGainWhM2Day: 80, EquipmentGainWhM2Day: 10,
		},
		{
			ID: "retail", Name: "Retail, department store",
			OccupancyStartH: 8, OccupancyEndH: 20,
			AnnualOperatingDays: 300,
			MinAirflowM3HM2:     7,
			MaxSetbackDeltaK:    4,
			HVACDailyHours:      14,
			MetabolicGainWhM2Day: 25, EquipmentGainWhM2Day: 20,
		},
	}
	out := make(map[string]UsageProfile, len(ps))
	for _, p := range ps {
		out[p.ID] = p
	}
	return out
}

// ProfileIDs returns the catalog ids in stable order.
func ProfileIDs(profiles map[string]UsageProfile) []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
