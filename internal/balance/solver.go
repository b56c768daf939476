package balance

import (
	"math"

	"heat-demand/internal/airflow"
	"heat-demand/internal/model"
)

// Solver coefficients of the monthly utilization-factor method.
const (
	// TimeConstantDivisor sets the utilization exponent a = 1 + tau/16.
	TimeConstantDivisor = 16.0

	// TauReferenceH normalizes the time constant inside the setback
	// correction terms.
	TauReferenceH = 250.0

	// Setback-mode correction: factor 0.2 * (1 - 0.4*tau/250).
	SetbackCoefficient = 0.2
	SetbackTauSlope    = 0.4

	// Shutdown-mode correction: factor 0.3 * (1 - 0.2*tau/250).
	ShutdownCoefficient = 0.3
	ShutdownTauSlope    = 0.2

	// CoolingMarginK is the free-running allowance subtracted from the
	// cooling setpoint.
	CoolingMarginK = 2.0
)

// MonthInputs carries the per-month quantities the solver consumes. The
// airflow variants come from the airflow model; gains are pre-assembled.
type MonthInputs struct {
	Month int
	Days  float64

	ExternalC float64

	OpAirflow      airflow.Rates
	NonOpAirflow   airflow.Rates
	SizingAirflow  airflow.Rates
	CoolingAirflow airflow.Rates

	SolarGainKWh    float64
	InternalGainKWh float64
}

// Utilization evaluates the gain-utilization factor eta(gamma, a) with
// a = 1 + tau/16. The gamma=1 singularity is removable with limit a/(a+1);
// a non-finite gamma^a recovers via the asymptotic limit 1/gamma.
func Utilization(gamma, tauH float64) float64 {
	a := 1 + tauH/TimeConstantDivisor
	if gamma <= 0 {
		return 1
	}
	// Route the whole neighborhood of the singularity through the limit;
	// the closed form cancels catastrophically there.
	if math.Abs(gamma-1) < 1e-9 {
		return a / (a + 1)
	}
	ga := math.Pow(gamma, a)
	gaNext := ga * gamma
	if math.IsInf(ga, 0) || math.IsNaN(ga) || math.IsInf(gaNext, 0) {
		return 1 / gamma
	}
	return (1 - ga) / (1 - gaNext)
}

// SolveMonth runs the utilization-factor heat balance for one zone-month.
// Pure: no I/O, no retained state; identical inputs yield identical output.
func SolveMonth(d *ZoneDerivedConstants, zone *model.ThermalZone, profile *model.UsageProfile, in MonthInputs) model.MonthlyBalanceResult {
	res := model.MonthlyBalanceResult{
		Month:            in.Month,
		Days:             in.Days,
		ExternalC:        in.ExternalC,
		SolarGainKWh:     in.SolarGainKWh,
		InternalGainKWh:  in.InternalGainKWh,
		HeatingSetpointC: zone.HeatingSetpointC,
		CoolingSetpointC: zone.CoolingSetpointC,
	}

	// Phase 1: time constant from the sizing ventilation variant.
	denom := d.TransmissionWK + in.SizingAirflow.CoefficientWK
	tau := 0.0
	if denom > 0 {
		tau = d.CapacityWhK / denom
	}
	res.TimeConstantH = tau

	// Phase 3 first half: operating / non-operating day split.
	opPerWeek := profile.OperatingDaysPerWeek()
	var dOp, dNonOp float64
	if profile.Continuous() {
		dOp, dNonOp = in.Days, 0
	} else {
		dOp = in.Days * opPerWeek / 7
		dNonOp = in.Days - dOp
	}
	res.OperatingDays = dOp
	res.NonOperatingDays = dNonOp

	// Phase 2: non-operating effective setpoint.
	setpointNonOp := zone.HeatingSetpointC
	if dNonOp > 0 {
		drop := setbackFactor(zone.Mode, tau) * (zone.HeatingSetpointC - in.ExternalC)
		drop = clamp(drop, 0, profile.MaxSetbackDeltaK)
		setpointNonOp = zone.HeatingSetpointC - drop
	}
	res.NonOperatingSetpointC = setpointNonOp

	// Phase 3 second half: weekly-weighted setpoint (diagnostic).
	res.WeeklySetpointC = (zone.HeatingSetpointC*opPerWeek + setpointNonOp*(7-opPerWeek)) / 7

	totalGain := in.SolarGainKWh + in.InternalGainKWh

	// Phase 4: non-operating raw balance.
	var rawNonOp float64
	if dNonOp > 0 {
		dT := setpointNonOp - in.ExternalC
		res.TransmissionLossNonOpKWh = d.TransmissionWK * dT * 24 * dNonOp / 1000
		res.VentilationLossNonOpKWh = in.NonOpAirflow.CoefficientWK * dT * 24 * dNonOp / 1000
		loss := res.TransmissionLossNonOpKWh + res.VentilationLossNonOpKWh
		gain := totalGain * dNonOp / in.Days
		rawNonOp, res.UtilizationNonOp = netDemand(loss, gain, tau)
	}

	// Phase 5: heat-storage transfer, energy recharged into the structure
	// during non-operating intervals and repaid while operating.
	var transfer float64
	if rawNonOp > 0 && opPerWeek < 7 {
		perInterval := 7 - opPerWeek
		intervals := dNonOp / perInterval
		if intervals > 0 {
			massLimit := 2 * d.CapacityWhK * (zone.HeatingSetpointC - setpointNonOp) / 1000 / perInterval
			setbackLimit := d.CapacityWhK * profile.MaxSetbackDeltaK / 1000 / perInterval
			per := math.Min(math.Min(massLimit, setbackLimit), rawNonOp/intervals)
			transfer = math.Max(0, per) * intervals
		}
	}
	res.HeatStorageTransferKWh = transfer

	// Phase 6: operating balance, transfer added to the losses.
	var demandOp float64
	if dOp > 0 {
		dT := zone.HeatingSetpointC - in.ExternalC
		res.TransmissionLossOpKWh = d.TransmissionWK * dT * 24 * dOp / 1000
		res.VentilationLossOpKWh = in.OpAirflow.CoefficientWK * dT * 24 * dOp / 1000
		loss := res.TransmissionLossOpKWh + res.VentilationLossOpKWh + transfer
		gain := totalGain * dOp / in.Days
		demandOp, res.UtilizationOp = netDemand(loss, gain, tau)
	}

	// Phase 7: net heating demand, never negative.
	res.HeatingDemandKWh = math.Max(0, demandOp+(rawNonOp-transfer))

	// Phase 8: cooling with inverted roles.
	res.CoolingDemandKWh, res.UtilizationCooling = coolingDemand(d, zone, profile, in, dOp, dNonOp, totalGain, tau)

	res.Airflow = diagnostics(in.OpAirflow)
	res.Airflow.FreeCooling = in.CoolingAirflow.FreeCooling
	res.AirflowNonOp = diagnostics(in.NonOpAirflow)
	if in.OpAirflow.Shortfall {
		res.Warnings = append(res.Warnings, model.Warning{
			Code:    model.WarnVentilationShortfall,
			Message: "effective supply below hygienic minimum",
			Month:   in.Month,
		})
	}
	return res
}

// netDemand applies the utilization factor to a loss/gain pair and returns
// the residual demand plus the factor used.
func netDemand(loss, gain, tau float64) (float64, float64) {
	if loss <= 0 {
		return 0, 1
	}
	if gain <= 0 {
		return loss, 1
	}
	eta := Utilization(gain/loss, tau)
	return math.Max(0, loss-eta*gain), eta
}

// coolingDemand evaluates the cooling branch: the sink is an effective
// setpoint below the nominal one, and a transmission/ventilation balance
// that nets to a gain adds to the load instead of offsetting it.
func coolingDemand(d *ZoneDerivedConstants, zone *model.ThermalZone, profile *model.UsageProfile, in MonthInputs, dOp, dNonOp, totalGain, tau float64) (float64, float64) {
	if zone.CoolingSetpointC <= 0 || totalGain <= 0 {
		return 0, 1
	}
	effective := zone.CoolingSetpointC - CoolingMarginK

	// Ventilation coefficient for the sink. With the free-cooling override
	// engaged the boosted outdoor air is available around the clock
	// (window/bypass flushing is not occupancy-bound), so the boosted
	// coefficient covers the whole month; otherwise the operating and
	// non-operating variants blend by day count.
	hv := in.CoolingAirflow.CoefficientWK
	if !in.CoolingAirflow.FreeCooling && in.Days > 0 {
		hv = (in.CoolingAirflow.CoefficientWK*dOp + in.NonOpAirflow.CoefficientWK*dNonOp) / in.Days
	}

	loss := (d.TransmissionWK + hv) * (effective - in.ExternalC) * 24 * in.Days / 1000

	var demand, eta float64
	switch {
	case loss <= 0:
		// The envelope balance is itself a gain.
		demand = totalGain - loss
		eta = 1
	case in.CoolingAirflow.FreeCooling:
		// Demand-controlled sink: boost air is admitted only while it
		// offsets load, so the full coefficient counts without the
		// statistical utilization dilution.
		demand = math.Max(0, totalGain-loss)
		eta = 1
	default:
		eta = Utilization(loss/totalGain, tau)
		demand = math.Max(0, totalGain-eta*loss)
	}
	if profile.FiveDayWeek() {
		demand *= 5.0 / 7.0
	}
	return math.Max(0, demand), eta
}

func setbackFactor(mode model.SetbackMode, tau float64) float64 {
	switch mode {
	case model.SetbackShutdown:
		return math.Max(0, ShutdownCoefficient*(1-ShutdownTauSlope*tau/TauReferenceH))
	default:
		return math.Max(0, SetbackCoefficient*(1-SetbackTauSlope*tau/TauReferenceH))
	}
}

func diagnostics(r airflow.Rates) model.AirflowDiagnostics {
	return model.AirflowDiagnostics{
		Infiltration: r.Infiltration,
		Natural:      r.Natural,
		MechSupply:   r.MechSupply,
		MechExhaust:  r.MechExhaust,
		HeatRecovery: r.HeatRecovery,
		FreeCooling:  r.FreeCooling,
		Case:         string(r.Case),
	}
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
