package engine

import (
	"fmt"
	"sync"

	"heat-demand/internal/airflow"
	"heat-demand/internal/balance"
	"heat-demand/internal/model"
)

// Engine runs the monthly zone energy balance over a project. It holds no
// mutable state between runs; two runs over identical inputs produce
// identical results.
type Engine struct{}

func New() *Engine { return &Engine{} }

// Exclusion records a zone dropped from the batch for a configuration
// problem. Exclusions are warnings, not failures.
type Exclusion struct {
	ZoneID string
	Reason string
}

// Result is the batch output: one entry per surviving zone in id order,
// plus exclusions and project totals.
type Result struct {
	Zones    []model.ZoneResult
	Excluded []Exclusion

	HeatingDemandKWh float64
	CoolingDemandKWh float64
	AuxiliaryKWh     float64
}

// Run evaluates every zone of the project against the climate provider.
// Zones are independent and computed concurrently; months within a zone
// run sequentially because the balance phases couple across periods.
func (e *Engine) Run(project *model.Project, climate model.ClimateProvider) (*Result, error) {
	if project == nil {
		return nil, fmt.Errorf("project is nil")
	}
	if climate == nil {
		return nil, fmt.Errorf("climate provider is nil")
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	zones := project.OrderedZones()
	res := &Result{}

	type slot struct {
		zr       model.ZoneResult
		excluded *Exclusion
	}
	slots := make([]slot, len(zones))

	var wg sync.WaitGroup
	for i := range zones {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			zone := zones[i]
			if err := zone.Validate(); err != nil {
				slots[i].excluded = &Exclusion{ZoneID: zone.ID, Reason: err.Error()}
				return
			}
			profile, ok := project.Profile(zone.ProfileID)
			if !ok {
				slots[i].excluded = &Exclusion{
					ZoneID: zone.ID,
					Reason: fmt.Sprintf("usage profile %q not resolvable", zone.ProfileID),
				}
				return
			}
			slots[i].zr = e.runZone(&zone, &profile, project, climate)
		}(i)
	}
	wg.Wait()

	for i := range slots {
		if slots[i].excluded != nil {
			res.Excluded = append(res.Excluded, *slots[i].excluded)
			continue
		}
		zr := slots[i].zr
		res.Zones = append(res.Zones, zr)
		if !zr.Failed() {
			res.HeatingDemandKWh += zr.HeatingDemandKWh
			res.CoolingDemandKWh += zr.CoolingDemandKWh
			res.AuxiliaryKWh += zr.AuxiliaryKWh
		}
	}
	return res, nil
}

// runZone derives the zone constants once, then folds the twelve monthly
// balances into the zone result. A hard error (unclassifiable surface,
// missing climate month) aborts this zone only.
func (e *Engine) runZone(zone *model.ThermalZone, profile *model.UsageProfile, project *model.Project, climate model.ClimateProvider) model.ZoneResult {
	zr := model.ZoneResult{
		ZoneID:      zone.ID,
		ZoneName:    zone.Name,
		FloorAreaM2: zone.FloorAreaM2,
	}

	derived, err := balance.Derive(zone)
	if err != nil {
		zr.Err = err.Error()
		return zr
	}

	unit := effectiveUnit(project.UnitsForZone(zone.ID))

	for month := 1; month <= 12; month++ {
		cm, err := climate.MonthlyClimate(month)
		if err != nil {
			zr.Err = err.Error()
			return zr
		}

		in := balance.MonthInputs{
			Month:     month,
			Days:      model.DaysInMonth(month),
			ExternalC: cm.MeanExternalC,
		}

		base := airflow.Inputs{
			VolumeM3:          zone.Volume(),
			FloorAreaM2:       zone.FloorAreaM2,
			N50:               zone.N50,
			AirTransferFactor: zone.AirTransferFactor,
			Profile:           *profile,
			Unit:              unit,
			ExternalC:         cm.MeanExternalC,
			CoolingSetpointC:  zone.CoolingSetpointC,
		}
		in.OpAirflow = computeVariant(base, airflow.Operating)
		in.NonOpAirflow = computeVariant(base, airflow.NonOperating)
		in.SizingAirflow = computeVariant(base, airflow.Sizing)
		in.CoolingAirflow = computeVariant(base, airflow.CoolingOperating)

		in.SolarGainKWh = derived.SolarGainKWh(cm, project.LatitudeDeg)

		opPerWeek := profile.OperatingDaysPerWeek()
		dOp := in.Days
		if !profile.Continuous() {
			dOp = in.Days * opPerWeek / 7
		}
		in.InternalGainKWh = balance.InternalGainKWh(zone, profile, month, dOp)

		mr := balance.SolveMonth(derived, zone, profile, in)
		mr.AuxiliaryKWh = airflow.FanEnergyKWh(unit, mr.OperatingDays)

		zr.HeatingDemandKWh += mr.HeatingDemandKWh
		zr.CoolingDemandKWh += mr.CoolingDemandKWh
		zr.AuxiliaryKWh += mr.AuxiliaryKWh
		zr.Warnings = append(zr.Warnings, mr.Warnings...)
		zr.Months = append(zr.Months, mr)
	}
	return zr
}

func computeVariant(base airflow.Inputs, dt airflow.DayType) airflow.Rates {
	base.DayType = dt
	return airflow.Compute(base)
}

// effectiveUnit collapses multiple linked units into one equivalent
// system: flows sum, recovery efficiency is supply-weighted, operating
// hours and weekend behavior follow the longest-running unit. Nil when no
// real equipment is linked, which triggers the virtual fallback.
func effectiveUnit(units []model.VentilationUnit) *model.VentilationUnit {
	if len(units) == 0 {
		return nil
	}
	if len(units) == 1 {
		u := units[0]
		return &u
	}
	eff := model.VentilationUnit{
		ID:            units[0].ID,
		Type:          model.VentBalanced,
		Determination: model.DeterminationDetermined,
	}
	var hrWeighted float64
	for _, u := range units {
		eff.SupplyM3H += u.SupplyM3H
		eff.ExhaustM3H += u.ExhaustM3H
		hrWeighted += u.HeatRecovery * u.SupplyM3H
		if u.DailyHours > eff.DailyHours {
			eff.DailyHours = u.DailyHours
		}
		if u.WeekendOperation {
			eff.WeekendOperation = true
		}
		if u.SpecificFanPowerWhM3 > eff.SpecificFanPowerWhM3 {
			eff.SpecificFanPowerWhM3 = u.SpecificFanPowerWhM3
		}
		if u.Determination == model.DeterminationUndetermined || u.Determination == "" {
			eff.Determination = model.DeterminationUndetermined
		}
	}
	if eff.SupplyM3H > 0 {
		eff.HeatRecovery = hrWeighted / eff.SupplyM3H
	}
	return &eff
}
