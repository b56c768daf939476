package engine

import (
	"math"
	"reflect"
	"testing"

	"heat-demand/internal/model"
)

// testClimate is a temperate reference year with a hot July. Monthly
// irradiance only; the representative-day synthesis handles the rest.
func testClimate() *model.ClimateYear {
	te := []float64{0, 1, 5, 9, 14, 17, 25, 18, 14, 9, 4, 1}
	gh := []float64{25, 40, 80, 120, 160, 170, 175, 150, 100, 60, 30, 20}
	c := &model.ClimateYear{Source: "test", LatitudeDeg: 52}
	for m := 1; m <= 12; m++ {
		c.Months = append(c.Months, model.ClimateMonth{
			Month:                 m,
			MeanExternalC:         te[m-1],
			GlobalHorizontalKWhM2: gh[m-1],
		})
	}
	return c
}

// officeZone is a 100 m2 office with a south wall, a south window, a flat
// roof and a slab on grade.
func officeZone(id string) model.ThermalZone {
	return model.ThermalZone{
		ID: id, Name: "Office " + id, ProfileID: "office",
		FloorAreaM2: 100, HeightM: 3,
		HeatingSetpointC: 20, CoolingSetpointC: 26,
		N50: 1.5,
		Surfaces: []model.Surface{
			{ID: id + "-floor", ZoneID: id, Type: model.SurfaceFloor, Exposure: model.ExposureGround, AreaM2: 100, UValue: 0.35},
			{ID: id + "-roof", ZoneID: id, Type: model.SurfaceRoof, Exposure: model.ExposureExterior, AreaM2: 100, UValue: 0.2, TiltDeg: 0, Absorption: 0.5},
			{ID: id + "-wall-s", ZoneID: id, Type: model.SurfaceWall, Exposure: model.ExposureExterior, AreaM2: 54, UValue: 0.28, AzimuthDeg: 180, TiltDeg: 90, Absorption: 0.5},
			{ID: id + "-win-s", ZoneID: id, Type: model.SurfaceWindow, Exposure: model.ExposureExterior, AreaM2: 6, UValue: 1.3, AzimuthDeg: 180, TiltDeg: 90, SHGC: 0.6},
		},
	}
}

func testProject(zones ...model.ThermalZone) *model.Project {
	return &model.Project{Name: "test", LatitudeDeg: 52, Zones: zones}
}

func TestRunRejectsNilInputs(t *testing.T) {
	e := New()
	if _, err := e.Run(nil, testClimate()); err == nil {
		t.Error("nil project must error")
	}
	if _, err := e.Run(testProject(officeZone("z1")), nil); err == nil {
		t.Error("nil climate must error")
	}
}

func TestRunDeterministic(t *testing.T) {
	// Zones run concurrently; the assembled result must still be
	// bit-identical across runs.
	project := testProject(officeZone("z1"), officeZone("z2"), officeZone("z3"))
	climate := testClimate()
	e := New()

	a, err := e.Run(project, climate)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Run(project, climate)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs over identical inputs differ")
	}
}

func TestZonesOrderedByID(t *testing.T) {
	project := testProject(officeZone("zc"), officeZone("za"), officeZone("zb"))
	res, err := New().Run(project, testClimate())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Zones) != 3 {
		t.Fatalf("got %d zones, want 3", len(res.Zones))
	}
	for i, want := range []string{"za", "zb", "zc"} {
		if res.Zones[i].ZoneID != want {
			t.Errorf("zone[%d] = %s, want %s", i, res.Zones[i].ZoneID, want)
		}
	}
}

func TestSeasonalShape(t *testing.T) {
	res, err := New().Run(testProject(officeZone("z1")), testClimate())
	if err != nil {
		t.Fatal(err)
	}
	zr := res.Zones[0]
	if zr.Failed() {
		t.Fatal(zr.Err)
	}
	if len(zr.Months) != 12 {
		t.Fatalf("got %d months, want 12", len(zr.Months))
	}

	jan, may, jul := zr.Months[0], zr.Months[4], zr.Months[6]

	if jan.HeatingDemandKWh <= 0 {
		t.Errorf("january heating = %.1f, want > 0", jan.HeatingDemandKWh)
	}
	if jul.HeatingDemandKWh != 0 {
		t.Errorf("hot-july heating = %.1f, want 0", jul.HeatingDemandKWh)
	}

	// May is mild enough for the free-cooling boost to absorb nearly all
	// gains; July outdoor air sits inside the setpoint margin, so the
	// boost stays off and real cooling demand remains.
	if !may.Airflow.FreeCooling {
		t.Error("may cooling variant should engage free cooling")
	}
	if jul.Airflow.FreeCooling {
		t.Error("july outdoor air is within the margin; no free cooling")
	}
	if may.CoolingDemandKWh >= 100 {
		t.Errorf("may cooling = %.1f, want < 100 with free cooling active", may.CoolingDemandKWh)
	}
	if jul.CoolingDemandKWh <= may.CoolingDemandKWh {
		t.Errorf("july cooling %.1f should exceed may cooling %.1f", jul.CoolingDemandKWh, may.CoolingDemandKWh)
	}
	if jul.CoolingDemandKWh <= 100 {
		t.Errorf("july cooling = %.1f, want > 100", jul.CoolingDemandKWh)
	}

	for _, m := range zr.Months {
		if m.HeatingDemandKWh < 0 || m.CoolingDemandKWh < 0 {
			t.Fatalf("month %d: negative demand", m.Month)
		}
		if math.Abs(m.OperatingDays+m.NonOperatingDays-m.Days) > 1e-9 {
			t.Fatalf("month %d: day split %.4f+%.4f != %.1f", m.Month, m.OperatingDays, m.NonOperatingDays, m.Days)
		}
	}
}

func TestFreeCoolingSuppressesMildMonthCooling(t *testing.T) {
	// Heavily south-glazed office with no linked equipment: the mild-May
	// solar load (~1.4 MWh through 30 m2 of SHGC 0.7 glazing) must be
	// almost entirely absorbed by the free-cooling boost, while hot July
	// keeps a real cooling demand.
	zone := model.ThermalZone{
		ID: "z1", Name: "South office", ProfileID: "office",
		FloorAreaM2: 100, HeightM: 3,
		HeatingSetpointC: 20, CoolingSetpointC: 26,
		N50: 1.5,
		Surfaces: []model.Surface{
			{ID: "z1-wall", ZoneID: "z1", Type: model.SurfaceWall, Exposure: model.ExposureExterior, AreaM2: 100, UValue: 0.2, TiltDeg: 90},
			{ID: "z1-win-s", ZoneID: "z1", Type: model.SurfaceWindow, Exposure: model.ExposureExterior, AreaM2: 30, UValue: 1.5, AzimuthDeg: 180, TiltDeg: 90, SHGC: 0.7},
		},
	}
	climate := testClimate()
	climate.Months[4].MeanExternalC = 19.5
	climate.Months[4].GlobalHorizontalKWhM2 = 158
	climate.Months[6].MeanExternalC = 26.5

	res, err := New().Run(testProject(zone), climate)
	if err != nil {
		t.Fatal(err)
	}
	zr := res.Zones[0]
	if zr.Failed() {
		t.Fatal(zr.Err)
	}
	may, jul := zr.Months[4], zr.Months[6]

	if !may.Airflow.FreeCooling {
		t.Fatal("may outdoor air is 4.5 K below the setpoint; boost must engage")
	}
	if may.CoolingDemandKWh >= 100 {
		t.Errorf("may cooling = %.1f, want < 100 with the boost absorbing the load", may.CoolingDemandKWh)
	}
	if jul.Airflow.FreeCooling {
		t.Error("july outdoor air is above the margin; no free cooling")
	}
	if jul.CoolingDemandKWh <= may.CoolingDemandKWh {
		t.Errorf("july cooling %.1f should exceed may cooling %.1f", jul.CoolingDemandKWh, may.CoolingDemandKWh)
	}
	if jul.CoolingDemandKWh <= 100 {
		t.Errorf("july cooling = %.1f, want a substantial load", jul.CoolingDemandKWh)
	}
}

func TestVirtualFallbackStillVentilates(t *testing.T) {
	// No linked equipment: the virtual system keeps hygienic air moving,
	// so ventilation losses are substantial, but it draws no fan energy.
	res, err := New().Run(testProject(officeZone("z1")), testClimate())
	if err != nil {
		t.Fatal(err)
	}
	zr := res.Zones[0]
	march := zr.Months[2]
	if march.VentilationLossOpKWh <= 100 {
		t.Errorf("march operating ventilation loss = %.1f, want > 100", march.VentilationLossOpKWh)
	}
	if zr.AuxiliaryKWh != 0 {
		t.Errorf("virtual fallback auxiliary = %.1f, want 0", zr.AuxiliaryKWh)
	}
}

func TestLinkedUnitAuxiliaryEnergy(t *testing.T) {
	zone := officeZone("z1")
	zone.VentilationUnitIDs = []string{"ahu1"}
	project := testProject(zone)
	project.Units = map[string]model.VentilationUnit{
		"ahu1": {
			ID: "ahu1", Type: model.VentBalanced,
			SupplyM3H: 400, ExhaustM3H: 400,
			HeatRecovery: 0.75, DailyHours: 13,
			Determination:        model.DeterminationDetermined,
			SpecificFanPowerWhM3: 0.4,
		},
	}

	res, err := New().Run(project, testClimate())
	if err != nil {
		t.Fatal(err)
	}
	zr := res.Zones[0]
	if zr.AuxiliaryKWh <= 0 {
		t.Errorf("auxiliary = %.1f, want > 0 for a real unit", zr.AuxiliaryKWh)
	}
	if zr.Months[0].Airflow.HeatRecovery != 0.75 {
		t.Errorf("january heat recovery = %.2f, want 0.75", zr.Months[0].Airflow.HeatRecovery)
	}

	// Recovery cuts the heating demand against the fallback baseline.
	base, err := New().Run(testProject(officeZone("z1")), testClimate())
	if err != nil {
		t.Fatal(err)
	}
	if zr.HeatingDemandKWh >= base.Zones[0].HeatingDemandKWh {
		t.Errorf("heat-recovery heating %.1f should undercut fallback heating %.1f",
			zr.HeatingDemandKWh, base.Zones[0].HeatingDemandKWh)
	}
}

func TestInvalidZoneExcludedSiblingSurvives(t *testing.T) {
	bad := officeZone("z-bad")
	bad.FloorAreaM2 = 0
	res, err := New().Run(testProject(bad, officeZone("z-ok")), testClimate())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Excluded) != 1 || res.Excluded[0].ZoneID != "z-bad" {
		t.Fatalf("excluded = %+v, want z-bad only", res.Excluded)
	}
	if len(res.Zones) != 1 || res.Zones[0].ZoneID != "z-ok" {
		t.Fatalf("zones = %d, want the surviving sibling only", len(res.Zones))
	}
	if res.HeatingDemandKWh != res.Zones[0].HeatingDemandKWh {
		t.Error("totals must cover surviving zones only")
	}
}

func TestUnknownProfileExcluded(t *testing.T) {
	zone := officeZone("z1")
	zone.ProfileID = "does-not-exist"
	res, err := New().Run(testProject(zone), testClimate())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Excluded) != 1 {
		t.Fatalf("excluded = %+v, want one entry", res.Excluded)
	}
}

func TestUnclassifiableSurfaceFailsZoneOnly(t *testing.T) {
	bad := officeZone("z-bad")
	bad.Surfaces[1].Exposure = model.Exposure("sideways")
	res, err := New().Run(testProject(bad, officeZone("z-ok")), testClimate())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Zones) != 2 {
		t.Fatalf("got %d zones, want 2", len(res.Zones))
	}
	var failed, ok bool
	for i := range res.Zones {
		if res.Zones[i].ZoneID == "z-bad" && res.Zones[i].Failed() {
			failed = true
		}
		if res.Zones[i].ZoneID == "z-ok" && !res.Zones[i].Failed() {
			ok = true
		}
	}
	if !failed || !ok {
		t.Errorf("want z-bad failed and z-ok computed, got %+v", res.Zones)
	}
	if res.HeatingDemandKWh <= 0 {
		t.Error("surviving zone must still contribute to the totals")
	}
}

func TestEffectiveUnitCollapse(t *testing.T) {
	units := []model.VentilationUnit{
		{ID: "a", Type: model.VentBalanced, SupplyM3H: 300, ExhaustM3H: 300, HeatRecovery: 0.8, DailyHours: 10, Determination: model.DeterminationDetermined},
		{ID: "b", Type: model.VentBalanced, SupplyM3H: 100, ExhaustM3H: 150, HeatRecovery: 0.4, DailyHours: 14, WeekendOperation: true, Determination: model.DeterminationDetermined},
	}
	eff := effectiveUnit(units)
	if eff.SupplyM3H != 400 || eff.ExhaustM3H != 450 {
		t.Errorf("flows = %.0f/%.0f, want 400/450", eff.SupplyM3H, eff.ExhaustM3H)
	}
	// Supply-weighted recovery: (0.8*300 + 0.4*100) / 400 = 0.7.
	if math.Abs(eff.HeatRecovery-0.7) > 1e-9 {
		t.Errorf("recovery = %.4f, want 0.7", eff.HeatRecovery)
	}
	if eff.DailyHours != 14 || !eff.WeekendOperation {
		t.Errorf("hours/weekend = %.0f/%v, want 14/true", eff.DailyHours, eff.WeekendOperation)
	}
	if eff.Determination != model.DeterminationDetermined {
		t.Errorf("determination = %s, want determined", eff.Determination)
	}

	if effectiveUnit(nil) != nil {
		t.Error("no units must map to nil for the virtual fallback")
	}
	units[1].Determination = ""
	if effectiveUnit(units).Determination != model.DeterminationUndetermined {
		t.Error("any unknown unit makes the collapsed system undetermined")
	}
}
