package kafka

import (
	"testing"
	"time"

	"github.com/seoulbdc/heatwalk/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteToMessage(t *testing.T) {
	now := time.Date(2024, 8, 5, 9, 30, 0, 0, time.UTC)
	res := &analysis.Result{
		RunID:       "8d6f56ce-7a2e-4af9-9a65-3b9f6a2a8d11",
		GeneratedAt: now,
	}
	site := analysis.SiteScore{
		Rank:            1,
		Region:          "강남구",
		Score:           100,
		PopulationGrade: "매우높음",
	}

	msg, err := siteToMessage(res, site)
	require.NoError(t, err)

	assert.Equal(t, []byte("강남구"), msg.Key)
	assert.Contains(t, string(msg.Value), `"rank":1`)
	assert.Contains(t, string(msg.Value), `"population_grade":"매우높음"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "run_id", msg.Headers[0].Key)
	assert.Equal(t, []byte(res.RunID), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}
