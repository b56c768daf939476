package engine

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteMonthlyCSV(t *testing.T) {
	res, err := New().Run(testProject(officeZone("z1"), officeZone("z2")), testClimate())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "monthly.csv")
	if err := WriteMonthlyCSV(path, res); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// Header plus 12 months per zone.
	if len(rows) != 1+2*12 {
		t.Fatalf("got %d rows, want %d", len(rows), 1+2*12)
	}
	if rows[0][0] != "zone" || rows[0][1] != "month" {
		t.Errorf("unexpected header start: %v", rows[0][:2])
	}
	for i, row := range rows[1:] {
		if len(row) != len(rows[0]) {
			t.Fatalf("row %d has %d columns, header has %d", i+1, len(row), len(rows[0]))
		}
	}
	if rows[1][0] != "z1" || rows[13][0] != "z2" {
		t.Errorf("zones out of order: %s, %s", rows[1][0], rows[13][0])
	}
}

func TestWriteMonthlyCSVSkipsFailedZones(t *testing.T) {
	bad := officeZone("z-bad")
	bad.Surfaces[0].Exposure = "bogus"
	res, err := New().Run(testProject(bad, officeZone("z-ok")), testClimate())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "monthly.csv")
	if err := WriteMonthlyCSV(path, res); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1+12 {
		t.Fatalf("got %d rows, want header plus 12 for the surviving zone", len(rows))
	}
}

func TestSummarizeOrdering(t *testing.T) {
	// A colder zone profile is simulated by a second zone with a much
	// bigger envelope, so its heating intensity ranks first.
	leaky := officeZone("z-leaky")
	leaky.Surfaces[2].AreaM2 = 200
	leaky.N50 = 6

	failed := officeZone("z-failed")
	failed.Surfaces[0].Exposure = "bogus"

	res, err := New().Run(testProject(officeZone("z-tight"), leaky, failed), testClimate())
	if err != nil {
		t.Fatal(err)
	}

	sums := Summarize(res)
	if len(sums) != 3 {
		t.Fatalf("got %d summaries, want 3", len(sums))
	}
	if sums[0].ZoneID != "z-leaky" {
		t.Errorf("first summary = %s, want the leaky zone", sums[0].ZoneID)
	}
	if sums[0].HeatingKWhM2 <= sums[1].HeatingKWhM2 {
		t.Error("summaries must sort by heating intensity descending")
	}
	if !sums[2].Failed || sums[2].ZoneID != "z-failed" {
		t.Errorf("failed zone must sort last, got %+v", sums[2])
	}
}
