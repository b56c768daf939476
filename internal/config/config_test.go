package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heat-demand/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalProject = `
name: test project
site:
  latitude_deg: 52.5
zones:
  - id: z1
    name: Office
    profile: office
    area_m2: 100
    height_m: 3
`

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "project.yaml", minimalProject)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	z := cfg.Zones[0]
	if z.HeatingSetpointC != DefaultHeatingSetpointC {
		t.Errorf("heating setpoint = %.1f, want %.1f", z.HeatingSetpointC, DefaultHeatingSetpointC)
	}
	if z.CoolingSetpointC != DefaultCoolingSetpointC {
		t.Errorf("cooling setpoint = %.1f, want %.1f", z.CoolingSetpointC, DefaultCoolingSetpointC)
	}
	if z.N50 != DefaultN50 {
		t.Errorf("n50 = %.2f, want %.2f", z.N50, DefaultN50)
	}
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	content := strings.Replace(minimalProject, "height_m: 3",
		"height_m: 3\n    heating_setpoint_c: 18\n    n50: 3", 1)
	path := writeFile(t, t.TempDir(), "project.yaml", content)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Zones[0].HeatingSetpointC != 18 {
		t.Errorf("heating setpoint = %.1f, want explicit 18", cfg.Zones[0].HeatingSetpointC)
	}
	if cfg.Zones[0].N50 != 3 {
		t.Errorf("n50 = %.2f, want explicit 3", cfg.Zones[0].N50)
	}
}

func TestProfilesFileMergeAndOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "profiles.yaml", `
profiles:
  - id: office
    name: Office from file
    occupancy_start_h: 7
    occupancy_end_h: 18
    annual_operating_days: 250
    min_airflow_m3h_m2: 4
    max_setback_delta_k: 4
    hvac_daily_hours: 13
  - id: lab
    name: Laboratory
    occupancy_start_h: 8
    occupancy_end_h: 17
    annual_operating_days: 250
    min_airflow_m3h_m2: 15
    max_setback_delta_k: 4
    hvac_daily_hours: 12
`)
	path := writeFile(t, dir, "project.yaml", `
name: merge test
site:
  latitude_deg: 52
profiles_file: profiles.yaml
profiles:
  - id: office
    name: Office overridden inline
    occupancy_start_h: 6
    occupancy_end_h: 20
    annual_operating_days: 300
    min_airflow_m3h_m2: 4
    max_setback_delta_k: 4
    hvac_daily_hours: 15
zones:
  - id: z1
    profile: lab
    area_m2: 50
    height_m: 2.8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(cfg.Profiles))
	}
	byID := map[string]ProfileConfig{}
	for _, p := range cfg.Profiles {
		byID[p.ID] = p
	}
	if byID["office"].Name != "Office overridden inline" || byID["office"].AnnualOperatingDays != 300 {
		t.Errorf("inline office did not override the file entry: %+v", byID["office"])
	}
	if byID["lab"].MinAirflowM3HM2 != 15 {
		t.Errorf("lab profile lost on merge: %+v", byID["lab"])
	}
}

func TestValidateRejectsEmptyAndBroken(t *testing.T) {
	dir := t.TempDir()

	empty := writeFile(t, dir, "empty.yaml", "name: nothing\nzones: []\n")
	if _, err := Load(empty); err == nil {
		t.Error("config without zones must fail validation")
	}

	badUnit := writeFile(t, dir, "bad-unit.yaml", minimalProject+`
ventilation_units:
  - id: u1
    type: centrifugal
    supply_m3h: 100
`)
	if _, err := Load(badUnit); err == nil {
		t.Error("unknown ventilation unit type must fail validation")
	}

	badGains := writeFile(t, dir, "bad-gains.yaml", strings.Replace(minimalProject, "height_m: 3",
		"height_m: 3\n    internal_gain_kwh: [1, 2, 3]", 1))
	if _, err := Load(badGains); err == nil {
		t.Error("partial monthly gain list must fail validation")
	}
}

func TestToProjectMapsEverything(t *testing.T) {
	path := writeFile(t, t.TempDir(), "project.yaml", `
name: mapped
site:
  latitude_deg: 48.1
ventilation_units:
  - id: ahu1
    type: balanced
    supply_m3h: 400
    exhaust_m3h: 400
    heat_recovery: 0.75
    daily_hours: 13
    determination: determined
    specific_fan_power_wh_m3: 0.4
zones:
  - id: z1
    name: Office
    profile: office
    area_m2: 100
    height_m: 3
    construction: heavy
    setback_mode: shutdown
    ventilation_units: [ahu1]
    surfaces:
      - id: s1
        type: window
        exposure: exterior
        area_m2: 6
        u_value: 1.3
        azimuth_deg: 180
        tilt_deg: 90
        shgc: 0.6
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	project, err := cfg.ToProject()
	if err != nil {
		t.Fatal(err)
	}

	if project.LatitudeDeg != 48.1 {
		t.Errorf("latitude = %.2f, want 48.1", project.LatitudeDeg)
	}
	u, ok := project.Units["ahu1"]
	if !ok || u.HeatRecovery != 0.75 || u.Determination != model.DeterminationDetermined {
		t.Errorf("unit mapping broken: %+v", u)
	}

	zone := project.Zones[0]
	if zone.Construction != model.ConstructionHeavy || zone.Mode != model.SetbackShutdown {
		t.Errorf("zone enums broken: construction=%s mode=%s", zone.Construction, zone.Mode)
	}
	if len(zone.VentilationUnitIDs) != 1 || zone.VentilationUnitIDs[0] != "ahu1" {
		t.Errorf("unit link broken: %v", zone.VentilationUnitIDs)
	}
	s := zone.Surfaces[0]
	if s.ZoneID != "z1" || s.Type != model.SurfaceWindow || s.SHGC != 0.6 {
		t.Errorf("surface mapping broken: %+v", s)
	}

	// The linked unit resolves through the registry view.
	units := project.UnitsForZone("z1")
	if len(units) != 1 || units[0].ID != "ahu1" {
		t.Errorf("UnitsForZone = %+v, want ahu1", units)
	}
}
