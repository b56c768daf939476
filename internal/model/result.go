package model

// Warning is a non-fatal compliance or configuration signal attached to a
// result. Warnings never halt a calculation.
type Warning struct {
	Code    string
	Message string
	Month   int // 0 when not month-specific
}

const (
	// WarnVentilationShortfall: effective supply below the hygienic
	// minimum (with tolerance); the deficient airflow is still used.
	WarnVentilationShortfall = "VENTILATION_SHORTFALL"
	// WarnZoneExcluded: degenerate zone dropped from the batch.
	WarnZoneExcluded = "ZONE_EXCLUDED"
)

// AirflowDiagnostics echoes the airflow rates a month was computed with.
// Rates are air changes per hour.
type AirflowDiagnostics struct {
	Infiltration float64
	Natural      float64
	MechSupply   float64
	MechExhaust  float64
	HeatRecovery float64
	FreeCooling  bool
	Case         string
}

// MonthlyBalanceResult is the output record for one zone-month. Energies
// are kWh. Created fresh per run, never mutated after return; the caller
// that aggregates it owns it exclusively.
type MonthlyBalanceResult struct {
	Month int
	Days  float64

	ExternalC float64

	OperatingDays    float64
	NonOperatingDays float64

	// Losses split by period.
	TransmissionLossOpKWh    float64
	TransmissionLossNonOpKWh float64
	VentilationLossOpKWh     float64
	VentilationLossNonOpKWh  float64

	SolarGainKWh    float64
	InternalGainKWh float64

	// HeatStorageTransferKWh is energy recharged into the structure during
	// non-operating periods and repaid during the operating period.
	HeatStorageTransferKWh float64

	HeatingDemandKWh float64
	CoolingDemandKWh float64
	AuxiliaryKWh     float64

	// Diagnostics.
	TimeConstantH          float64
	UtilizationOp          float64
	UtilizationNonOp       float64
	UtilizationCooling     float64
	HeatingSetpointC       float64
	NonOperatingSetpointC  float64
	WeeklySetpointC        float64
	CoolingSetpointC       float64
	Airflow                AirflowDiagnostics
	AirflowNonOp           AirflowDiagnostics

	Warnings []Warning
}

// ZoneResult is the per-zone batch output: twelve monthly records or a
// recorded failure. A failed zone never aborts its siblings.
type ZoneResult struct {
	ZoneID      string
	ZoneName    string
	FloorAreaM2 float64

	Months []MonthlyBalanceResult

	HeatingDemandKWh float64
	CoolingDemandKWh float64
	AuxiliaryKWh     float64

	Err      string
	Warnings []Warning
}

// Failed reports whether the zone's computation was aborted.
func (r *ZoneResult) Failed() bool { return r.Err != "" }

// HeatingIntensity returns annual heating demand per floor area, kWh/m2.
func (r *ZoneResult) HeatingIntensity() float64 {
	if r.FloorAreaM2 <= 0 {
		return 0
	}
	return r.HeatingDemandKWh / r.FloorAreaM2
}
