package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"heat-demand/internal/config"
	"heat-demand/internal/data"
	"heat-demand/internal/engine"
	"heat-demand/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "calc":
		cmdCalc(os.Args[2:])
	case "profiles":
		cmdProfiles()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli calc --project examples/project.yaml --climate examples/climate.json --out results/monthly.csv")
	fmt.Println("  cli profiles")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - calc writes the per-zone monthly ledger CSV and prints an annual summary")
	fmt.Println("  - profiles lists the builtin usage-profile catalog")
}

func cmdCalc(args []string) {
	fs := flag.NewFlagSet("calc", flag.ExitOnError)
	projectPath := fs.String("project", "", "Path to YAML project config")
	climatePath := fs.String("climate", "", "Path to climate JSON")
	outPath := fs.String("out", "results/monthly.csv", "Output CSV path")
	_ = fs.Parse(args)

	if *projectPath == "" || *climatePath == "" {
		fmt.Println("--project and --climate are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*projectPath)
	if err != nil {
		log.Fatalf("load project: %v", err)
	}
	project, err := cfg.ToProject()
	if err != nil {
		log.Fatalf("load project: %v", err)
	}

	climate, err := data.LoadClimateJSON(*climatePath)
	if err != nil {
		log.Fatalf("load climate: %v", err)
	}

	res, err := engine.New().Run(project, climate)
	if err != nil {
		log.Fatalf("run batch: %v", err)
	}
	for _, ex := range res.Excluded {
		log.Printf("warning: zone %s excluded: %s", ex.ZoneID, ex.Reason)
	}
	for i := range res.Zones {
		if res.Zones[i].Failed() {
			log.Printf("warning: zone %s failed: %s", res.Zones[i].ZoneID, res.Zones[i].Err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := engine.WriteMonthlyCSV(*outPath, res); err != nil {
		log.Fatalf("write csv: %v", err)
	}
	fmt.Printf("Wrote monthly ledger to %s\n", *outPath)

	fmt.Printf("%-12s %-10s %-12s %-12s %-10s %-8s\n", "zone", "area m2", "heating kWh", "cooling kWh", "kWh/m2", "warn")
	for _, s := range engine.Summarize(res) {
		if s.Failed {
			fmt.Printf("%-12s FAILED\n", s.ZoneID)
			continue
		}
		fmt.Printf("%-12s %-10.1f %-12.1f %-12.1f %-10.1f %-8d\n",
			s.ZoneID, s.FloorAreaM2, s.HeatingDemandKWh, s.CoolingDemandKWh, s.HeatingKWhM2, s.Warnings)
	}
	fmt.Printf("Total heating=%.1f kWh cooling=%.1f kWh auxiliary=%.1f kWh\n",
		res.HeatingDemandKWh, res.CoolingDemandKWh, res.AuxiliaryKWh)
}

func cmdProfiles() {
	catalog := model.BuiltinProfiles()
	fmt.Printf("%-12s %-28s %-8s %-10s %-10s\n", "id", "name", "days/a", "m3/h*m2", "occupancy")
	for _, id := range model.ProfileIDs(catalog) {
		p := catalog[id]
		fmt.Printf("%-12s %-28s %-8.0f %-10.1f %02.0f:00-%02.0f:00\n",
			p.ID, p.Name, p.AnnualOperatingDays, p.MinAirflowM3HM2, p.OccupancyStartH, p.OccupancyEndH)
	}
}
