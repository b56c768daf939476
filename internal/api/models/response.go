package models

import (
	"heat-demand/internal/engine"
	"heat-demand/internal/model"
)

// ErrorDetail is the error envelope body.
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// WarningJSON mirrors model.Warning for the wire.
type WarningJSON struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Month   int    `json:"month,omitempty"`
}

// MonthJSON is one zone-month of the ledger.
type MonthJSON struct {
	Month int     `json:"month"`
	Days  float64 `json:"days"`

	ExternalC float64 `json:"te_c"`

	OperatingDays    float64 `json:"operating_days"`
	NonOperatingDays float64 `json:"non_operating_days"`

	TransmissionLossOpKWh    float64 `json:"transmission_loss_op_kwh"`
	TransmissionLossNonOpKWh float64 `json:"transmission_loss_nonop_kwh"`
	VentilationLossOpKWh     float64 `json:"ventilation_loss_op_kwh"`
	VentilationLossNonOpKWh  float64 `json:"ventilation_loss_nonop_kwh"`

	SolarGainKWh    float64 `json:"solar_gain_kwh"`
	InternalGainKWh float64 `json:"internal_gain_kwh"`

	HeatStorageTransferKWh float64 `json:"heat_storage_transfer_kwh"`

	HeatingDemandKWh float64 `json:"heating_demand_kwh"`
	CoolingDemandKWh float64 `json:"cooling_demand_kwh"`
	AuxiliaryKWh     float64 `json:"auxiliary_kwh"`

	TimeConstantH float64 `json:"time_constant_h"`
	AirflowCase   string  `json:"airflow_case"`
	FreeCooling   bool    `json:"free_cooling"`

	Warnings []WarningJSON `json:"warnings,omitempty"`
}

// ZoneJSON is one zone of the response.
type ZoneJSON struct {
	ZoneID      string  `json:"zone_id"`
	ZoneName    string  `json:"zone_name,omitempty"`
	FloorAreaM2 float64 `json:"floor_area_m2"`

	HeatingDemandKWh float64 `json:"heating_demand_kwh"`
	CoolingDemandKWh float64 `json:"cooling_demand_kwh"`
	AuxiliaryKWh     float64 `json:"auxiliary_kwh"`
	HeatingKWhM2     float64 `json:"heating_kwh_m2"`
	CoolingKWhM2     float64 `json:"cooling_kwh_m2"`

	Error    string        `json:"error,omitempty"`
	Warnings []WarningJSON `json:"warnings,omitempty"`
	Months   []MonthJSON   `json:"months,omitempty"`
}

// ExclusionJSON records a dropped zone.
type ExclusionJSON struct {
	ZoneID string `json:"zone_id"`
	Reason string `json:"reason"`
}

// CalculateResponse is the POST /api/v1/calculate result.
type CalculateResponse struct {
	Zones    []ZoneJSON      `json:"zones"`
	Excluded []ExclusionJSON `json:"excluded,omitempty"`

	HeatingDemandKWh float64 `json:"heating_demand_kwh"`
	CoolingDemandKWh float64 `json:"cooling_demand_kwh"`
	AuxiliaryKWh     float64 `json:"auxiliary_kwh"`
}

// ProfileJSON is one catalog entry of GET /api/v1/profiles.
type ProfileJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	OccupancyStartH float64 `json:"occupancy_start_h"`
	OccupancyEndH   float64 `json:"occupancy_end_h"`

	AnnualOperatingDays float64 `json:"annual_operating_days"`
	MinAirflowM3HM2     float64 `json:"min_airflow_m3h_m2"`
	MaxSetbackDeltaK    float64 `json:"max_setback_delta_k"`
	HVACDailyHours      float64 `json:"hvac_daily_hours"`

	MetabolicGainWhM2Day float64 `json:"metabolic_gain_wh_m2_day"`
	EquipmentGainWhM2Day float64 `json:"equipment_gain_wh_m2_day"`
}

// FromResult maps a batch result onto the wire shape.
func FromResult(res *engine.Result, includeMonths bool) CalculateResponse {
	out := CalculateResponse{
		HeatingDemandKWh: res.HeatingDemandKWh,
		CoolingDemandKWh: res.CoolingDemandKWh,
		AuxiliaryKWh:     res.AuxiliaryKWh,
	}
	for i := range res.Zones {
		out.Zones = append(out.Zones, fromZone(&res.Zones[i], includeMonths))
	}
	for _, ex := range res.Excluded {
		out.Excluded = append(out.Excluded, ExclusionJSON{ZoneID: ex.ZoneID, Reason: ex.Reason})
	}
	return out
}

func fromZone(zr *model.ZoneResult, includeMonths bool) ZoneJSON {
	z := ZoneJSON{
		ZoneID:           zr.ZoneID,
		ZoneName:         zr.ZoneName,
		FloorAreaM2:      zr.FloorAreaM2,
		HeatingDemandKWh: zr.HeatingDemandKWh,
		CoolingDemandKWh: zr.CoolingDemandKWh,
		AuxiliaryKWh:     zr.AuxiliaryKWh,
		Error:            zr.Err,
		Warnings:         fromWarnings(zr.Warnings),
	}
	if zr.FloorAreaM2 > 0 {
		z.HeatingKWhM2 = zr.HeatingDemandKWh / zr.FloorAreaM2
		z.CoolingKWhM2 = zr.CoolingDemandKWh / zr.FloorAreaM2
	}
	if includeMonths {
		for _, m := range zr.Months {
			z.Months = append(z.Months, fromMonth(m))
		}
	}
	return z
}

func fromMonth(m model.MonthlyBalanceResult) MonthJSON {
	return MonthJSON{
		Month:                    m.Month,
		Days:                     m.Days,
		ExternalC:                m.ExternalC,
		OperatingDays:            m.OperatingDays,
		NonOperatingDays:         m.NonOperatingDays,
		TransmissionLossOpKWh:    m.TransmissionLossOpKWh,
		TransmissionLossNonOpKWh: m.TransmissionLossNonOpKWh,
		VentilationLossOpKWh:     m.VentilationLossOpKWh,
		VentilationLossNonOpKWh:  m.VentilationLossNonOpKWh,
		SolarGainKWh:             m.SolarGainKWh,
		InternalGainKWh:          m.InternalGainKWh,
		HeatStorageTransferKWh:   m.HeatStorageTransferKWh,
		HeatingDemandKWh:         m.HeatingDemandKWh,
		CoolingDemandKWh:         m.CoolingDemandKWh,
		AuxiliaryKWh:             m.AuxiliaryKWh,
		TimeConstantH:            m.TimeConstantH,
		AirflowCase:              m.Airflow.Case,
		FreeCooling:              m.Airflow.FreeCooling,
		Warnings:                 fromWarnings(m.Warnings),
	}
}

func fromWarnings(ws []model.Warning) []WarningJSON {
	out := make([]WarningJSON, 0, len(ws))
	for _, w := range ws {
		out = append(out, WarningJSON{Code: w.Code, Message: w.Message, Month: w.Month})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
