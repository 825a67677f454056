// Command validate checks a heatwalk data directory against the declared
// dataset schemas before it is fed to the service: required files, header
// layout, numeric parse rates, and region consistency across datasets.
//
// Usage:
//
//	go run ./cmd/validate -data-dir ./data
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/seoulbdc/heatwalk/internal/domain"
	"github.com/seoulbdc/heatwalk/internal/ingest"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataDir := flag.String("data-dir", "", "directory containing the three dataset CSVs")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*dataDir))
}

func run(dataDir string) int {
	fmt.Println("=== Heatwalk Data Validation ===")
	fmt.Println()

	type dataset struct {
		file   string
		schema ingest.Schema
	}
	sets := []dataset{
		{ingest.PopulationFile, ingest.PopulationSchema},
		{ingest.EnvironmentFile, ingest.EnvironmentSchema},
		{ingest.MovementFile, ingest.MovementSchema},
	}

	load := &phase{name: "Files load against declared schemas"}
	batches := map[string][]domain.Observation{}
	for _, d := range sets {
		batch, err := ingest.LoadFile(filepath.Join(dataDir, d.file), d.schema)
		if err != nil {
			load.errorf("%s: %v", d.file, err)
			continue
		}
		if len(batch) == 0 {
			load.errorf("%s: no data rows", d.file)
		}
		batches[d.schema.Dataset] = batch
	}

	phases := []*phase{load}
	if load.passed() {
		phases = append(phases,
			validateNumericCoverage(batches),
			validateRegionConsistency(batches),
		)
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d population, %d environment, %d movement\n",
		len(batches["population"]), len(batches["environment"]), len(batches["movement"]))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == 10 {
				fmt.Printf("  ... and %d more\n", len(p.errors)-10)
				break
			}
			fmt.Printf("  %s\n", e)
		}
	}

	if !allPassed {
		return 1
	}
	fmt.Println("\nAll checks passed.")
	return 0
}

// validateNumericCoverage flags numeric columns where too many cells failed
// to parse. Scattered gaps are expected; a column that is mostly missing
// usually means a header or encoding problem upstream.
func validateNumericCoverage(batches map[string][]domain.Observation) *phase {
	p := &phase{name: "Numeric columns mostly parseable"}

	fields := map[string][]string{
		"population":  {analysis.FieldPopulation, analysis.FieldDensity, analysis.FieldHouseholdSize},
		"environment": {analysis.FieldTemperature, analysis.FieldHumidity, analysis.FieldUVIndex},
		"movement":    {analysis.FieldTrips},
	}
	for ds, names := range fields {
		batch := batches[ds]
		for _, field := range names {
			missing := 0
			for _, obs := range batch {
				if _, ok := obs.Number(field); !ok {
					missing++
				}
			}
			if missing*2 > len(batch) {
				p.errorf("%s.%s: %d of %d values missing", ds, field, missing, len(batch))
			}
		}
	}
	return p
}

// validateRegionConsistency checks that environment readings and movement
// origins reference regions the population extract knows about. Unknown
// regions end up skipped by the site ranking.
func validateRegionConsistency(batches map[string][]domain.Observation) *phase {
	p := &phase{name: "Regions consistent across datasets"}

	known := map[string]bool{}
	for _, obs := range batches["population"] {
		if region, ok := obs.Category(analysis.FieldRegion); ok {
			known[region] = true
		}
	}
	if len(known) == 0 {
		p.errorf("population: no regions found")
		return p
	}

	unknown := map[string]bool{}
	for _, obs := range batches["environment"] {
		if region, ok := obs.Category(analysis.FieldRegion); ok && !known[region] {
			unknown[region] = true
		}
	}
	for _, obs := range batches["movement"] {
		if region, ok := obs.Category(analysis.FieldOrigin); ok && !known[region] {
			unknown[region] = true
		}
	}

	names := make([]string, 0, len(unknown))
	for region := range unknown {
		names = append(names, region)
	}
	sort.Strings(names)
	for _, region := range names {
		p.errorf("region %s is not in the population extract", region)
	}
	return p
}
