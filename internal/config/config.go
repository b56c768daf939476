package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"heat-demand/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk project shape (YAML).
type Config struct {
	Name string     `yaml:"name"`
	Site SiteConfig `yaml:"site"`

	// Optional: load usage profiles from a separate YAML. Profiles listed
	// inline override entries with the same id from ProfilesFile.
	ProfilesFile string          `yaml:"profiles_file"`
	Profiles     []ProfileConfig `yaml:"profiles"`

	VentilationUnits []UnitConfig `yaml:"ventilation_units"`
	Zones            []ZoneConfig `yaml:"zones"`
}

type SiteConfig struct {
	LatitudeDeg float64 `yaml:"latitude_deg"`
}

type ProfileConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	OccupancyStartH float64 `yaml:"occupancy_start_h"`
	OccupancyEndH   float64 `yaml:"occupancy_end_h"`

	AnnualOperatingDays float64 `yaml:"annual_operating_days"`
	MinAirflowM3HM2     float64 `yaml:"min_airflow_m3h_m2"`
	MaxSetbackDeltaK    float64 `yaml:"max_setback_delta_k"`
	HVACDailyHours      float64 `yaml:"hvac_daily_hours"`

	MetabolicGainWhM2Day float64 `yaml:"metabolic_gain_wh_m2_day"`
	EquipmentGainWhM2Day float64 `yaml:"equipment_gain_wh_m2_day"`
}

type UnitConfig struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`

	SupplyM3H  float64 `yaml:"supply_m3h"`
	ExhaustM3H float64 `yaml:"exhaust_m3h"`

	HeatRecovery     float64 `yaml:"heat_recovery"`
	DailyHours       float64 `yaml:"daily_hours"`
	WeekendOperation bool    `yaml:"weekend_operation"`
	Determination    string  `yaml:"determination"`

	SpecificFanPowerWhM3 float64 `yaml:"specific_fan_power_wh_m3"`
}

type SurfaceConfig struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	Exposure string `yaml:"exposure"`

	AreaM2     float64 `yaml:"area_m2"`
	UValue     float64 `yaml:"u_value"`
	AzimuthDeg float64 `yaml:"azimuth_deg"`
	TiltDeg    float64 `yaml:"tilt_deg"`

	AdjacentZone string `yaml:"adjacent_zone"`

	SHGC          float64 `yaml:"shgc"`
	FrameFactor   float64 `yaml:"frame_factor"`
	ShadingFactor float64 `yaml:"shading_factor"`
	Absorption    float64 `yaml:"absorption"`
}

type ZoneConfig struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Profile string `yaml:"profile"`

	AreaM2   float64 `yaml:"area_m2"`
	HeightM  float64 `yaml:"height_m"`
	VolumeM3 float64 `yaml:"volume_m3"`

	HeatingSetpointC float64 `yaml:"heating_setpoint_c"`
	CoolingSetpointC float64 `yaml:"cooling_setpoint_c"`

	N50               float64 `yaml:"n50"`
	AirTransferFactor float64 `yaml:"air_transfer_factor"`
	ThermalBridgeWM2K float64 `yaml:"thermal_bridge_w_m2k"`
	CapacityWhK       float64 `yaml:"capacity_wh_k"`
	Construction      string  `yaml:"construction"`
	SetbackMode       string  `yaml:"setback_mode"`

	VentilationUnits []string        `yaml:"ventilation_units"`
	InternalGainKWh  []float64       `yaml:"internal_gain_kwh"` // optional 12 monthly collaborator gains
	Surfaces         []SurfaceConfig `yaml:"surfaces"`
}

// Default zone parameters applied on load. Named so configs can stay
// concise.
const (
	DefaultHeatingSetpointC = 20.0
	DefaultCoolingSetpointC = 26.0
	DefaultN50              = 1.5
)

// Load reads, defaults and validates a project configuration.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges the config without validating it. Useful
// for debugging partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.ProfilesFile != "" {
		profPath := c.ProfilesFile
		if !filepath.IsAbs(profPath) {
			// Prefer paths relative to the config file directory, falling
			// back to the working directory.
			cand := filepath.Join(filepath.Dir(path), profPath)
			if _, err := os.Stat(cand); err == nil {
				profPath = cand
			}
		}
		loaded, err := loadProfilesFile(profPath)
		if err != nil {
			return nil, err
		}
		c.Profiles = mergeProfiles(loaded, c.Profiles)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	for i := range c.Zones {
		z := &c.Zones[i]
		if z.HeatingSetpointC == 0 {
			z.HeatingSetpointC = DefaultHeatingSetpointC
		}
		if z.CoolingSetpointC == 0 {
			z.CoolingSetpointC = DefaultCoolingSetpointC
		}
		if z.N50 == 0 {
			z.N50 = DefaultN50
		}
	}
}

// Validate validates by constructing the model project, so the config and
// the model can never disagree about what is legal.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if len(c.Zones) == 0 {
		return errors.New("at least one zone is required")
	}
	project, err := c.ToProject()
	if err != nil {
		return err
	}
	return project.Validate()
}

// ToProject converts the on-disk shape into the immutable model snapshot.
func (c *Config) ToProject() (*model.Project, error) {
	p := &model.Project{
		Name:        c.Name,
		LatitudeDeg: c.Site.LatitudeDeg,
		Profiles:    map[string]model.UsageProfile{},
		Units:       map[string]model.VentilationUnit{},
	}
	for _, pc := range c.Profiles {
		p.Profiles[pc.ID] = model.UsageProfile{
			ID:                   pc.ID,
			Name:                 pc.Name,
			OccupancyStartH:      pc.OccupancyStartH,
			OccupancyEndH:        pc.OccupancyEndH,
			AnnualOperatingDays:  pc.AnnualOperatingDays,
			MinAirflowM3HM2:      pc.MinAirflowM3HM2,
			MaxSetbackDeltaK:     pc.MaxSetbackDeltaK,
			HVACDailyHours:       pc.HVACDailyHours,
			MetabolicGainWhM2Day: pc.MetabolicGainWhM2Day,
			EquipmentGainWhM2Day: pc.EquipmentGainWhM2Day,
		}
	}
	for _, uc := range c.VentilationUnits {
		p.Units[uc.ID] = model.VentilationUnit{
			ID:                   uc.ID,
			Type:                 model.VentType(uc.Type),
			SupplyM3H:            uc.SupplyM3H,
			ExhaustM3H:           uc.ExhaustM3H,
			HeatRecovery:         uc.HeatRecovery,
			DailyHours:           uc.DailyHours,
			WeekendOperation:     uc.WeekendOperation,
			Determination:        model.Determination(uc.Determination),
			SpecificFanPowerWhM3: uc.SpecificFanPowerWhM3,
		}
	}
	for _, zc := range c.Zones {
		zone, err := zc.toZone()
		if err != nil {
			return nil, err
		}
		p.Zones = append(p.Zones, zone)
	}
	return p, nil
}

func (zc *ZoneConfig) toZone() (model.ThermalZone, error) {
	zone := model.ThermalZone{
		ID:                 zc.ID,
		Name:               zc.Name,
		ProfileID:          zc.Profile,
		FloorAreaM2:        zc.AreaM2,
		HeightM:            zc.HeightM,
		NetVolumeM3:        zc.VolumeM3,
		HeatingSetpointC:   zc.HeatingSetpointC,
		CoolingSetpointC:   zc.CoolingSetpointC,
		N50:                zc.N50,
		AirTransferFactor:  zc.AirTransferFactor,
		ThermalBridgeWM2K:  zc.ThermalBridgeWM2K,
		CapacityWhK:        zc.CapacityWhK,
		Construction:       model.ConstructionClass(zc.Construction),
		Mode:               model.SetbackMode(zc.SetbackMode),
		VentilationUnitIDs: zc.VentilationUnits,
	}
	if len(zc.InternalGainKWh) > 0 {
		if len(zc.InternalGainKWh) != 12 {
			return zone, fmt.Errorf("zone %s: internal_gain_kwh needs 12 entries, got %d", zc.ID, len(zc.InternalGainKWh))
		}
		copy(zone.InternalGainKWhMonths[:], zc.InternalGainKWh)
	}
	for _, sc := range zc.Surfaces {
		zone.Surfaces = append(zone.Surfaces, model.Surface{
			ID:             sc.ID,
			ZoneID:         zc.ID,
			Type:           model.SurfaceType(sc.Type),
			Exposure:       model.Exposure(sc.Exposure),
			AreaM2:         sc.AreaM2,
			UValue:         sc.UValue,
			AzimuthDeg:     sc.AzimuthDeg,
			TiltDeg:        sc.TiltDeg,
			AdjacentZoneID: sc.AdjacentZone,
			SHGC:           sc.SHGC,
			FrameFactor:    sc.FrameFactor,
			ShadingFactor:  sc.ShadingFactor,
			Absorption:     sc.Absorption,
		})
	}
	return zone, nil
}

type profilesFileWrapper struct {
	Profiles []ProfileConfig `yaml:"profiles"`
}

func loadProfilesFile(path string) ([]ProfileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w profilesFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Profiles, nil
}

// mergeProfiles overlays inline profiles onto the loaded file by id.
func mergeProfiles(base, override []ProfileConfig) []ProfileConfig {
	byID := map[string]int{}
	out := make([]ProfileConfig, len(base))
	copy(out, base)
	for i, p := range out {
		byID[p.ID] = i
	}
	for _, p := range override {
		if i, ok := byID[p.ID]; ok {
			out[i] = p
		} else {
			out = append(out, p)
		}
	}
	return out
}
