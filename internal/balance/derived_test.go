package balance

import (
	"math"
	"testing"

	"heat-demand/internal/model"
)

func testSurfaces(zoneID string) []model.Surface {
	return []model.Surface{
		{ID: "s1-floor", ZoneID: zoneID, Type: model.SurfaceFloor, Exposure: model.ExposureGround, AreaM2: 100, UValue: 0.35},
		{ID: "s2-wall", ZoneID: zoneID, Type: model.SurfaceWall, Exposure: model.ExposureExterior, AreaM2: 50, UValue: 0.28, AzimuthDeg: 180, TiltDeg: 90, Absorption: 0.5},
		{ID: "s3-win", ZoneID: zoneID, Type: model.SurfaceWindow, Exposure: model.ExposureExterior, AreaM2: 6, UValue: 1.3, AzimuthDeg: 180, TiltDeg: 90, SHGC: 0.6},
		{ID: "s4-party", ZoneID: zoneID, Type: model.SurfaceWall, Exposure: model.ExposureInterior, AreaM2: 40, UValue: 0.5, AdjacentZoneID: "z2"},
		{ID: "s5-attic", ZoneID: zoneID, Type: model.SurfaceRoof, Exposure: model.ExposureIndirect, AreaM2: 100, UValue: 0.2},
	}
}

func TestDeriveTransmissionAndEnvelope(t *testing.T) {
	zone := &model.ThermalZone{
		ID: "z1", FloorAreaM2: 100, HeightM: 3,
		ThermalBridgeWM2K: 0.05,
		Surfaces:          testSurfaces("z1"),
	}
	d, err := Derive(zone)
	if err != nil {
		t.Fatal(err)
	}

	// Exposure-weighted H_T:
	//   floor  100*0.35*0.6 = 21.0
	//   wall    50*0.28*1.0 = 14.0
	//   window   6*1.30*1.0 =  7.8
	//   party   40*0.50*0.0 =  0.0
	//   attic  100*0.20*0.5 = 10.0
	// Envelope (factor > 0): 100+50+6+100 = 256 m2, bridges 0.05*256 = 12.8.
	wantHT := 21.0 + 14.0 + 7.8 + 10.0 + 12.8
	if math.Abs(d.TransmissionWK-wantHT) > 1e-9 {
		t.Errorf("H_T = %.4f, want %.4f", d.TransmissionWK, wantHT)
	}
	if d.EnvelopeM2 != 256 {
		t.Errorf("envelope = %.1f, want 256", d.EnvelopeM2)
	}
	if d.CapacityWhK != 9000 {
		t.Errorf("capacity = %.0f, want medium default 9000", d.CapacityWhK)
	}
}

func TestDeriveApertures(t *testing.T) {
	zone := &model.ThermalZone{ID: "z1", FloorAreaM2: 100, Surfaces: testSurfaces("z1")}
	d, err := Derive(zone)
	if err != nil {
		t.Fatal(err)
	}

	// Only the exterior wall and window collect sun; the indirect attic and
	// the interior party wall do not.
	if len(d.Apertures) != 2 {
		t.Fatalf("got %d apertures, want 2", len(d.Apertures))
	}
	byID := map[string]SurfaceAperture{}
	for _, ap := range d.Apertures {
		byID[ap.SurfaceID] = ap
	}
	// Opaque: A*U*alpha*R_se = 50*0.28*0.5*0.04 = 0.28.
	if ap := byID["s2-wall"]; math.Abs(ap.EffectiveM2-0.28) > 1e-9 {
		t.Errorf("wall aperture = %.4f, want 0.28", ap.EffectiveM2)
	}
	// Glazing: A*g*frame*reduction = 6*0.6*0.7*0.9 = 2.268 (default frame).
	if ap := byID["s3-win"]; math.Abs(ap.EffectiveM2-2.268) > 1e-9 {
		t.Errorf("window aperture = %.4f, want 2.268", ap.EffectiveM2)
	}
}

func TestDeriveRejectsUnknownExposure(t *testing.T) {
	zone := &model.ThermalZone{
		ID: "z1", FloorAreaM2: 100,
		Surfaces: []model.Surface{
			{ID: "s1", Type: model.SurfaceWall, Exposure: "underwater", AreaM2: 10, UValue: 0.3},
		},
	}
	if _, err := Derive(zone); err == nil {
		t.Error("unknown exposure must abort the zone derivation")
	}
}

func TestInternalGains(t *testing.T) {
	zone := &model.ThermalZone{ID: "z1", FloorAreaM2: 100}
	profile := model.BuiltinProfiles()["office"]

	// (30+40) Wh/m2d * 100 m2 * 20 d / 1000 = 140 kWh.
	got := InternalGainKWh(zone, &profile, 1, 20)
	if math.Abs(got-140) > 1e-9 {
		t.Errorf("internal gains = %.4f, want 140", got)
	}

	// Collaborator gains (lighting, DHW losses) add per month.
	zone.InternalGainKWhMonths[0] = 60
	got = InternalGainKWh(zone, &profile, 1, 20)
	if math.Abs(got-200) > 1e-9 {
		t.Errorf("internal gains with collaborator = %.4f, want 200", got)
	}
	// Other months are untouched.
	got = InternalGainKWh(zone, &profile, 2, 20)
	if math.Abs(got-140) > 1e-9 {
		t.Errorf("february gains = %.4f, want 140", got)
	}
}

func TestSolarGainUsesHourlyWhenPresent(t *testing.T) {
	zone := &model.ThermalZone{
		ID: "z1", FloorAreaM2: 100,
		Surfaces: []model.Surface{
			{ID: "s1", Type: model.SurfaceWindow, Exposure: model.ExposureExterior, AreaM2: 6, UValue: 1.3, AzimuthDeg: 180, TiltDeg: 90, SHGC: 0.6},
		},
	}
	d, err := Derive(zone)
	if err != nil {
		t.Fatal(err)
	}

	monthlyOnly := model.ClimateMonth{Month: 6, GlobalHorizontalKWhM2: 150}
	synth := d.SolarGainKWh(monthlyOnly, 52)
	if synth <= 0 {
		t.Fatalf("synthesized gain = %.2f, want > 0", synth)
	}

	withHourly := monthlyOnly
	withHourly.Hourly = []model.HourlySample{{DayOfYear: 166, Hour: 12.5, BeamWM2: 300, DiffuseWM2: 200}}
	hourly := d.SolarGainKWh(withHourly, 52)
	if hourly <= 0 || hourly == synth {
		t.Errorf("hourly series must override the synthesis: hourly=%.4f synth=%.4f", hourly, synth)
	}
}
