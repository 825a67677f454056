package ingest

import "github.com/seoulbdc/heatwalk/internal/analysis"

// Schemas for the three source extracts, keyed by the semantic field names
// the analyses consume.
var (
	// PopulationSchema covers the district population statistics extract.
	PopulationSchema = Schema{
		Dataset: "population",
		Fields: []Field{
			{Name: analysis.FieldRegion, Column: "자치구", Kind: KindCategorical, Required: true},
			{Name: analysis.FieldPopulation, Column: "인구수", Kind: KindNumeric, Required: true},
			{Name: analysis.FieldDensity, Column: "인구밀도", Kind: KindNumeric, Required: true},
			{Name: analysis.FieldHouseholdSize, Column: "평균가구원수", Kind: KindNumeric, Required: true},
		},
	}

	// EnvironmentSchema covers the S-DoT sensor reading extract.
	EnvironmentSchema = Schema{
		Dataset: "environment",
		Fields: []Field{
			{Name: analysis.FieldRegion, Column: "자치구", Kind: KindCategorical, Required: true},
			{Name: analysis.FieldSensorModel, Column: "센서모델", Kind: KindCategorical, Required: false},
			{Name: analysis.FieldTemperature, Column: "기온", Kind: KindNumeric, Required: true},
			{Name: analysis.FieldHumidity, Column: "습도", Kind: KindNumeric, Required: true},
			{Name: analysis.FieldUVIndex, Column: "자외선지수", Kind: KindNumeric, Required: true},
		},
	}

	// MovementSchema covers the KT origin-destination mobility extract.
	MovementSchema = Schema{
		Dataset: "movement",
		Fields: []Field{
			{Name: analysis.FieldOrigin, Column: "출발자치구", Kind: KindCategorical, Required: true},
			{Name: analysis.FieldDestination, Column: "도착자치구", Kind: KindCategorical, Required: true},
			{Name: analysis.FieldAge, Column: "연령대", Kind: KindCategorical, Required: true},
			{Name: analysis.FieldSex, Column: "성별", Kind: KindCategorical, Required: true},
			{Name: analysis.FieldPlaceType, Column: "장소유형", Kind: KindCategorical, Required: false},
			{Name: analysis.FieldTrips, Column: "이동인구수", Kind: KindNumeric, Required: true},
		},
	}
)
