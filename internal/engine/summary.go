package engine

import (
	"sort"

	"heat-demand/internal/model"
)

// ZoneSummary is the annual roll-up used for ranking zones by demand
// intensity.
type ZoneSummary struct {
	ZoneID      string
	ZoneName    string
	FloorAreaM2 float64

	HeatingDemandKWh float64
	CoolingDemandKWh float64
	AuxiliaryKWh     float64

	HeatingKWhM2 float64
	CoolingKWhM2 float64

	Warnings int
	Failed   bool
}

// Summarize folds a batch result into per-zone annual summaries, sorted
// descending by heating intensity with failed zones last.
func Summarize(res *Result) []ZoneSummary {
	out := make([]ZoneSummary, 0, len(res.Zones))
	for i := range res.Zones {
		out = append(out, summarizeZone(&res.Zones[i]))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Failed != out[j].Failed {
			return !out[i].Failed
		}
		return out[i].HeatingKWhM2 > out[j].HeatingKWhM2
	})
	return out
}

func summarizeZone(zr *model.ZoneResult) ZoneSummary {
	s := ZoneSummary{
		ZoneID:           zr.ZoneID,
		ZoneName:         zr.ZoneName,
		FloorAreaM2:      zr.FloorAreaM2,
		HeatingDemandKWh: zr.HeatingDemandKWh,
		CoolingDemandKWh: zr.CoolingDemandKWh,
		AuxiliaryKWh:     zr.AuxiliaryKWh,
		Warnings:         len(zr.Warnings),
		Failed:           zr.Failed(),
	}
	if zr.FloorAreaM2 > 0 {
		s.HeatingKWhM2 = zr.HeatingDemandKWh / zr.FloorAreaM2
		s.CoolingKWhM2 = zr.CoolingDemandKWh / zr.FloorAreaM2
	}
	return s
}
