package airflow

import (
	"math"

	"heat-demand/internal/model"
)

// DayType selects which variant of the airflow balance is computed.
type DayType int

const (
	// Operating: normal occupied day.
	Operating DayType = iota
	// NonOperating: weekend/holiday; occupants absent, mechanical systems
	// off unless flagged for weekend operation.
	NonOperating
	// Sizing: the variant feeding the time-constant calculation. Seasonal
	// window ventilation is excluded for equipment of undetermined type.
	Sizing
	// CoolingOperating: occupied day evaluated for the cooling balance;
	// the free-cooling override may boost the air change here.
	CoolingOperating
)

// VentCase tags which branch of the window-ventilation decision table
// produced the natural rate. Each case is independently testable.
type VentCase string

const (
	// CaseNoMechanical: no mechanical air movement today; windows cover
	// the full requirement.
	CaseNoMechanical VentCase = "no_mechanical"
	// CaseSupplyCovered: mechanical supply covers the top-up, exhaust
	// balanced; no window ventilation needed.
	CaseSupplyCovered VentCase = "supply_covered"
	// CaseExhaustDeficit: supply covers the top-up but excess exhaust
	// pulls additional outdoor air through the envelope.
	CaseExhaustDeficit VentCase = "exhaust_deficit"
	// CaseSupplyShortfall: supply below the required top-up; windows make
	// up the difference.
	CaseSupplyShortfall VentCase = "supply_shortfall"
	// CaseCombinedDeficit: supply short and exhaust in excess.
	CaseCombinedDeficit VentCase = "combined_deficit"
)

// Standardized coefficients. Named here rather than inlined so the numbers
// are reviewable in one place.
const (
	// ShieldingCoefficient converts n50 into ambient-pressure infiltration.
	ShieldingCoefficient = 0.07

	// AirHeatCapacityWhM3K is the volumetric heat capacity of air.
	AirHeatCapacityWhM3K = 0.34

	// BreakpointACH splits the window-ventilation sub-formulas.
	BreakpointACH = 1.2

	// WindowShareAboveBreakpoint is the fraction of demand above the
	// breakpoint assumed to be met by window opening.
	WindowShareAboveBreakpoint = 0.7

	// FreeCoolingBoostACH is the forced total air change while free
	// cooling is active.
	FreeCoolingBoostACH = 5.0

	// FreeCoolingMarginK: outdoor air must be at least this far below the
	// cooling setpoint before the boost engages.
	FreeCoolingMarginK = 2.0

	// NonOperatingBaselineACH is the residual window air change on
	// unoccupied days.
	NonOperatingBaselineACH = 0.1

	// ShortfallTolerance: supply below (1-tolerance) of the hygienic
	// minimum raises a compliance warning.
	ShortfallTolerance = 0.1
)

// Inputs carries everything one airflow evaluation needs. All fields are
// read-only snapshots; Compute is a pure function over them.
type Inputs struct {
	VolumeM3    float64
	FloorAreaM2 float64

	N50               float64
	AirTransferFactor float64 // defaults to 1 when zero

	Profile model.UsageProfile

	// Unit is the linked mechanical system; nil substitutes the virtual
	// fallback system so demand can still be estimated.
	Unit *model.VentilationUnit

	ExternalC        float64
	CoolingSetpointC float64

	DayType DayType
}

// Rates is the airflow result. Air-change rates are h^-1, time-averaged
// over the day for the mechanical contribution.
type Rates struct {
	Infiltration float64
	Natural      float64
	MechSupply   float64
	MechExhaust  float64
	HeatRecovery float64

	Case        VentCase
	FreeCooling bool
	Shortfall   bool

	// CoefficientWK is the ventilation heat-transfer coefficient, W/K.
	CoefficientWK float64
}

// Compute evaluates the airflow balance for one zone-day variant.
func Compute(in Inputs) Rates {
	unit := in.Unit
	if unit == nil {
		zone := model.ThermalZone{FloorAreaM2: in.FloorAreaM2}
		v := model.NewVirtualUnit(&zone, &in.Profile)
		unit = &v
	}

	vol := in.VolumeM3
	if vol <= 0 {
		return Rates{}
	}

	nReq := in.Profile.MinAirflowM3HM2 * in.FloorAreaM2 / vol
	nSupRaw := unit.SupplyM3H / vol
	nExRaw := unit.ExhaustM3H / vol

	mechHours := unit.DailyHours
	if in.DayType == NonOperating && !unit.WeekendOperation {
		mechHours = 0
	}

	infBase := in.N50 * ShieldingCoefficient * atdFactor(in.AirTransferFactor)
	inf := infBase
	if mechHours > 0 && mechHours < 24 {
		inf = infBase * math.Pow(imbalanceFactor(nSupRaw, nExRaw), mechHours/24)
	}

	r := Rates{Infiltration: inf}

	occFrac := in.Profile.OccupiedHours() / 24

	// occEffective is the air change available during the occupancy
	// window, before day-averaging; the hygienic check compares it against
	// the profile requirement.
	occEffective := infBase

	switch {
	case in.DayType == NonOperating:
		r.Case = CaseNoMechanical
		r.Natural = NonOperatingBaselineACH
		if mechHours > 0 {
			r.MechSupply = nSupRaw * mechHours / 24
			r.MechExhaust = nExRaw * mechHours / 24
			r.HeatRecovery = unit.HeatRecovery
			r.Case = classify(windowTopUp(nReq, infBase*imbalanceFactor(nSupRaw, nExRaw)), nSupRaw, nExRaw, infBase)
		}

	case mechHours <= 0 || (nSupRaw == 0 && nExRaw == 0):
		// No mechanical air movement: pure window ventilation, scaled by
		// the occupied fraction of the day.
		r.Case = CaseNoMechanical
		win := windowTopUp(nReq, infBase)
		r.Natural = win * occFrac
		occEffective += win

	default:
		topUp := windowTopUp(nReq, infBase*imbalanceFactor(nSupRaw, nExRaw))
		r.Case = classify(topUp, nSupRaw, nExRaw, infBase)
		winMech := caseWindowRate(r.Case, topUp, nSupRaw, nExRaw, infBase)

		occH := in.Profile.OccupiedHours()
		if mechHours < occH {
			// Mechanical system runs fewer hours than the occupancy:
			// uncovered hours fall back to the no-mechanical formula.
			winNoMech := windowTopUp(nReq, infBase)
			r.Natural = winNoMech*(occH-mechHours)/24 + winMech*mechHours/24
		} else {
			r.Natural = winMech * occFrac
		}

		r.MechSupply = nSupRaw * mechHours / 24
		r.MechExhaust = nExRaw * mechHours / 24
		r.HeatRecovery = unit.HeatRecovery
		occEffective += winMech + nSupRaw

		if in.DayType == Sizing && determination(unit) == model.DeterminationUndetermined {
			// Annex fallback: undetermined equipment excludes seasonal
			// window ventilation from the time-constant coefficient.
			r.Natural = 0
		}
	}

	if in.DayType == Operating || in.DayType == CoolingOperating {
		r.Shortfall = occEffective < nReq*(1-ShortfallTolerance)
	}

	// Free cooling: occupied zone, outdoor air usefully below the cooling
	// setpoint. Only the cooling balance sees the boost; it would distort
	// the heating-season coefficient otherwise.
	if in.DayType == CoolingOperating && in.ExternalC <= in.CoolingSetpointC-FreeCoolingMarginK {
		total := r.Infiltration + r.Natural + r.MechSupply
		if total < FreeCoolingBoostACH {
			// Boost air is window/bypass air: no heat recovery on it.
			r.Natural += FreeCoolingBoostACH - total
			r.FreeCooling = true
		}
	}

	r.CoefficientWK = AirHeatCapacityWhM3K * vol *
		(r.Infiltration + r.Natural + r.MechSupply*(1-r.HeatRecovery))
	return r
}

// windowTopUp is the breakpoint sub-formula: below 1.2 1/h the windows
// cover whatever the given base rate does not; above it, only a share of
// the excess demand is assumed realized by window opening.
func windowTopUp(required, covered float64) float64 {
	if required <= BreakpointACH {
		return math.Max(0, required-covered)
	}
	return math.Max(0, BreakpointACH-covered) + (required-BreakpointACH)*WindowShareAboveBreakpoint
}

// classify maps the mechanical operating point onto the decision table.
func classify(topUp, nSup, nEx, inf float64) VentCase {
	supplyCovers := nSup >= topUp
	exhaustExcess := nEx > nSup+inf
	switch {
	case supplyCovers && !exhaustExcess:
		return CaseSupplyCovered
	case supplyCovers && exhaustExcess:
		return CaseExhaustDeficit
	case !supplyCovers && !exhaustExcess:
		return CaseSupplyShortfall
	default:
		return CaseCombinedDeficit
	}
}

// caseWindowRate evaluates the window air change for a classified case,
// unscaled by occupancy.
func caseWindowRate(c VentCase, topUp, nSup, nEx, inf float64) float64 {
	switch c {
	case CaseSupplyCovered:
		return 0
	case CaseExhaustDeficit:
		return math.Max(0, nEx-(nSup+inf))
	case CaseSupplyShortfall:
		return math.Max(0, topUp-nSup)
	case CaseCombinedDeficit:
		return math.Max(math.Max(0, topUp-nSup), math.Max(0, nEx-(nSup+inf)))
	default:
		return topUp
	}
}

// imbalanceFactor reflects the extra envelope leakage a non-balanced
// mechanical system induces. Balanced systems return 1.
func imbalanceFactor(nSup, nEx float64) float64 {
	hi := math.Max(nSup, nEx)
	if hi <= 0 {
		return 1
	}
	return 1 + math.Abs(nSup-nEx)/hi
}

func atdFactor(f float64) float64 {
	if f <= 0 {
		return 1
	}
	return f
}

func determination(u *model.VentilationUnit) model.Determination {
	if u.Determination == "" {
		return model.DeterminationUndetermined
	}
	return u.Determination
}

// FanEnergyKWh returns the auxiliary fan energy for a unit over the given
// operating days. The virtual fallback unit has zero specific fan power and
// therefore zero auxiliary energy.
func FanEnergyKWh(unit *model.VentilationUnit, operatingDays float64) float64 {
	if unit == nil {
		return 0
	}
	moved := (unit.SupplyM3H + unit.ExhaustM3H) * unit.DailyHours * operatingDays
	return moved * unit.SpecificFanPowerWhM3 / 1000
}
