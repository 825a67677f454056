package analysis

import (
	"fmt"
	"sort"

	"github.com/seoulbdc/heatwalk/internal/domain"
)

// SiteScore ranks one candidate region for a shaded walkway site.
type SiteScore struct {
	Rank   int    `json:"rank"`
	Region string `json:"region"`

	PopulationScore float64 `json:"population_score"`
	PopulationGrade string  `json:"population_grade"`

	EnvironmentRisk  float64 `json:"environment_risk"`
	EnvironmentGrade string  `json:"environment_grade"`

	// MovementTrips is zeroed and MovementMasked set when the origin trip
	// total falls at or below the mask threshold; the grade still reflects
	// the true total.
	MovementTrips  float64 `json:"movement_trips"`
	MovementMasked bool    `json:"movement_masked,omitempty"`
	MovementGrade  string  `json:"movement_grade"`

	Score float64 `json:"score"`
}

// RankSites scores every region present in all three analyses. Each pillar
// (population vulnerability, mean environmental risk, origin trip volume) is
// quantile-graded across the candidate regions and the grades are combined
// into the site composite. Regions missing a pillar are returned in skipped,
// never guessed at.
func RankSites(pop *PopulationSummary, env *EnvironmentSummary, move *MovementSummary, opts Options) (sites []SiteScore, skipped []string, err error) {
	popScore := make(map[string]float64, len(pop.Regions))
	for _, r := range pop.Regions {
		popScore[r.Region] = r.Score
	}
	envRisk := make(map[string]float64, len(env.RiskByRegion))
	for _, s := range env.RiskByRegion {
		envRisk[s.Name] = s.Value
	}

	seen := make(map[string]bool)
	var regions []string
	for region := range popScore {
		seen[region] = true
		if _, ok := envRisk[region]; !ok {
			continue
		}
		if _, ok := move.originTotals[region]; !ok {
			continue
		}
		regions = append(regions, region)
	}
	for region := range envRisk {
		seen[region] = true
	}
	for region := range move.originTotals {
		seen[region] = true
	}
	sort.Strings(regions)

	candidate := make(map[string]bool, len(regions))
	for _, r := range regions {
		candidate[r] = true
	}
	for region := range seen {
		if !candidate[region] {
			skipped = append(skipped, region)
		}
	}
	sort.Strings(skipped)

	if len(regions) < 2 {
		return nil, skipped, fmt.Errorf("sites: %d candidate regions, need at least 2", len(regions))
	}

	k := len(SiteGradeLabels)
	if len(regions) < k {
		k = len(regions)
	}

	popCol := make([]float64, len(regions))
	envCol := make([]float64, len(regions))
	moveCol := make([]float64, len(regions))
	for i, region := range regions {
		popCol[i] = popScore[region]
		envCol[i] = envRisk[region]
		moveCol[i] = move.originTotals[region]
	}

	popScale, err := domain.NewQuantileScale(ScaleSitePopulation, popCol, k, SiteGradeLabels[:k])
	if err != nil {
		return nil, skipped, fmt.Errorf("sites: %w", err)
	}
	envScale, err := domain.NewQuantileScale(ScaleSiteEnvironment, envCol, k, SiteGradeLabels[:k])
	if err != nil {
		return nil, skipped, fmt.Errorf("sites: %w", err)
	}
	moveScale, err := domain.NewQuantileScale(ScaleSiteMovement, moveCol, k, SiteGradeLabels[:k])
	if err != nil {
		return nil, skipped, fmt.Errorf("sites: %w", err)
	}

	composite, err := domain.NewCompositeIndex("site_score", compositeScaleFactor,
		domain.Component{Scale: popScale, Weight: opts.Weights.Site.Population},
		domain.Component{Scale: envScale, Weight: opts.Weights.Site.Environment},
		domain.Component{Scale: moveScale, Weight: opts.Weights.Site.Movement},
	)
	if err != nil {
		return nil, skipped, fmt.Errorf("sites: %w", err)
	}

	sites = make([]SiteScore, 0, len(regions))
	for i, region := range regions {
		popGrade, _ := popScale.Classify(popCol[i], domain.MissingPropagate)
		envGrade, _ := envScale.Classify(envCol[i], domain.MissingPropagate)
		moveGrade, _ := moveScale.Classify(moveCol[i], domain.MissingPropagate)

		score, err := composite.Compute(map[string]string{
			ScaleSitePopulation:  popGrade,
			ScaleSiteEnvironment: envGrade,
			ScaleSiteMovement:    moveGrade,
		})
		if err != nil {
			return nil, skipped, fmt.Errorf("sites: region %s: %w", region, err)
		}

		site := SiteScore{
			Region:           region,
			PopulationScore:  popCol[i],
			PopulationGrade:  popGrade,
			EnvironmentRisk:  envCol[i],
			EnvironmentGrade: envGrade,
			MovementTrips:    moveCol[i],
			MovementGrade:    moveGrade,
			Score:            score,
		}
		// Same disclosure rule as MovementSummary.ByOrigin: small trip
		// totals never leave the process.
		if site.MovementTrips <= opts.MaskThreshold {
			site.MovementTrips = 0
			site.MovementMasked = true
		}
		sites = append(sites, site)
	}

	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Score != sites[j].Score {
			return sites[i].Score > sites[j].Score
		}
		return sites[i].Region < sites[j].Region
	})
	for i := range sites {
		sites[i].Rank = i + 1
	}
	return sites, skipped, nil
}
