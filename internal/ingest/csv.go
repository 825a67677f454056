package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/seoulbdc/heatwalk/internal/domain"
	"golang.org/x/text/encoding/korean"
)

// Load parses one CSV dataset into observations. The file is decoded as
// UTF-8, falling back to EUC-KR when the bytes are not valid UTF-8, which
// covers the two encodings Seoul open-data portals ship.
//
// Unparseable numeric cells become NaN, the engine's missing marker; a bad
// cell never fails the row. A missing file or a header that does not match
// the schema is a hard error.
func Load(r io.Reader, schema Schema) ([]domain.Observation, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Dataset, err)
	}
	if !utf8.Valid(raw) {
		raw, err = korean.EUCKR.NewDecoder().Bytes(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: decode euc-kr: %w", schema.Dataset, err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", schema.Dataset, err)
	}
	bindings, err := schema.Resolve(header)
	if err != nil {
		return nil, err
	}

	var batch []domain.Observation
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: read row: %w", schema.Dataset, err)
		}

		obs := domain.Observation{
			Numeric:     make(map[string]float64),
			Categorical: make(map[string]string),
		}
		empty := true
		for _, b := range bindings {
			cell := ""
			if b.index < len(record) {
				cell = cleanCell(record[b.index])
			}
			if cell != "" {
				empty = false
			}
			switch b.field.Kind {
			case KindNumeric:
				obs.Numeric[b.field.Name] = parseNumber(cell)
			case KindCategorical:
				obs.Categorical[b.field.Name] = cell
			}
		}
		if empty {
			continue
		}
		batch = append(batch, obs)
	}
	return batch, nil
}

// LoadFile opens and parses one dataset file.
func LoadFile(path string, schema Schema) ([]domain.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schema.Dataset, err)
	}
	defer f.Close()
	return Load(f, schema)
}

// parseNumber reads a numeric cell, tolerating thousands separators.
func parseNumber(cell string) float64 {
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
