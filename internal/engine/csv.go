package engine

import (
	"encoding/csv"
	"os"
	"strconv"
)

// WriteMonthlyCSV writes the per-zone monthly ledger. This is the primary
// "what happened" artifact of a batch.
func WriteMonthlyCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"zone",
		"month",
		"days",
		"te_c",
		"operating_days",
		"non_operating_days",
		"transmission_loss_op_kwh",
		"transmission_loss_nonop_kwh",
		"ventilation_loss_op_kwh",
		"ventilation_loss_nonop_kwh",
		"solar_gain_kwh",
		"internal_gain_kwh",
		"heat_storage_transfer_kwh",
		"heating_demand_kwh",
		"cooling_demand_kwh",
		"auxiliary_kwh",
		"time_constant_h",
		"utilization_op",
		"utilization_nonop",
		"utilization_cooling",
		"airflow_case",
		"free_cooling",
		"warnings",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, zr := range res.Zones {
		if zr.Failed() {
			continue
		}
		for _, m := range zr.Months {
			row := []string{
				zr.ZoneID,
				strconv.Itoa(m.Month),
				fmtFloat(m.Days),
				fmtFloat(m.ExternalC),
				fmtFloat(m.OperatingDays),
				fmtFloat(m.NonOperatingDays),
				fmtFloat(m.TransmissionLossOpKWh),
				fmtFloat(m.TransmissionLossNonOpKWh),
				fmtFloat(m.VentilationLossOpKWh),
				fmtFloat(m.VentilationLossNonOpKWh),
				fmtFloat(m.SolarGainKWh),
				fmtFloat(m.InternalGainKWh),
				fmtFloat(m.HeatStorageTransferKWh),
				fmtFloat(m.HeatingDemandKWh),
				fmtFloat(m.CoolingDemandKWh),
				fmtFloat(m.AuxiliaryKWh),
				fmtFloat(m.TimeConstantH),
				fmtFloat(m.UtilizationOp),
				fmtFloat(m.UtilizationNonOp),
				fmtFloat(m.UtilizationCooling),
				m.Airflow.Case,
				strconv.FormatBool(m.Airflow.FreeCooling),
				strconv.Itoa(len(m.Warnings)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
