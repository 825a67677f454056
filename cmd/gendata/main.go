// Command gendata writes deterministic sample CSVs for the three heatwalk
// datasets, for local runs and test fixtures. The same seed always produces
// the same files.
//
// Usage:
//
//	go run ./cmd/gendata -out ./data -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

var districts = []string{
	"종로구", "중구", "용산구", "성동구", "광진구",
	"동대문구", "중랑구", "성북구", "강북구", "도봉구",
	"노원구", "은평구", "서대문구", "마포구", "양천구",
	"강서구", "구로구", "금천구", "영등포구", "동작구",
	"관악구", "서초구", "강남구", "송파구", "강동구",
}

var (
	ageBuckets = []string{"0", "5", "10", "15", "20", "25", "30", "35", "40", "45", "50", "55", "60", "65", "70", "75", "80"}
	sexes      = []string{"F", "M"}
	placeTypes = []string{"공원", "상업", "주거", "지하철역"}
	sensors    = []string{"SDoT-1", "SDoT-2"}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "./data", "output directory for the generated CSVs")
	seed := flag.Int64("seed", 42, "random seed")
	readings := flag.Int("readings", 8, "sensor readings per district")
	odPairs := flag.Int("od-pairs", 6, "origin-destination rows per district")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(*seed))

	if err := writePopulation(*out, rng); err != nil {
		return err
	}
	if err := writeEnvironment(*out, rng, *readings); err != nil {
		return err
	}
	if err := writeMovement(*out, rng, *odPairs); err != nil {
		return err
	}

	log.Printf("wrote %d-district sample data to %s", len(districts), *out)
	return nil
}

func writePopulation(dir string, rng *rand.Rand) error {
	rows := [][]string{{"자치구", "인구수", "인구밀도", "평균가구원수"}}
	for _, gu := range districts {
		population := 150000 + rng.Intn(450000)
		density := 8000 + rng.Float64()*20000
		size := 1.4 + rng.Float64()*2.0
		rows = append(rows, []string{
			gu,
			strconv.Itoa(population),
			fmt.Sprintf("%.0f", density),
			fmt.Sprintf("%.2f", size),
		})
	}
	return writeCSV(filepath.Join(dir, "population.csv"), rows)
}

func writeEnvironment(dir string, rng *rand.Rand, readings int) error {
	rows := [][]string{{"자치구", "센서모델", "기온", "습도", "자외선지수"}}
	for _, gu := range districts {
		for i := 0; i < readings; i++ {
			temp := 24 + rng.Float64()*13
			humidity := 40 + rng.Float64()*45
			uv := rng.Float64() * 11
			rows = append(rows, []string{
				gu,
				sensors[rng.Intn(len(sensors))],
				fmt.Sprintf("%.1f", temp),
				fmt.Sprintf("%.0f", humidity),
				fmt.Sprintf("%.1f", uv),
			})
		}
	}
	return writeCSV(filepath.Join(dir, "environment.csv"), rows)
}

func writeMovement(dir string, rng *rand.Rand, odPairs int) error {
	rows := [][]string{{"출발자치구", "도착자치구", "연령대", "성별", "장소유형", "이동인구수"}}
	for _, origin := range districts {
		for i := 0; i < odPairs; i++ {
			dest := districts[rng.Intn(len(districts))]
			trips := 1 + rng.Intn(500)
			rows = append(rows, []string{
				origin,
				dest,
				ageBuckets[rng.Intn(len(ageBuckets))],
				sexes[rng.Intn(len(sexes))],
				placeTypes[rng.Intn(len(placeTypes))],
				strconv.Itoa(trips),
			})
		}
	}
	return writeCSV(filepath.Join(dir, "movement.csv"), rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
