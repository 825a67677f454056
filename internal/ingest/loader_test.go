package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/seoulbdc/heatwalk/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, PopulationFile,
		"자치구,인구수,인구밀도,평균가구원수\n강남구,545000,16500,2.3\n서초구,400000,12000,2.6\n")
	writeDataset(t, dir, EnvironmentFile,
		"자치구,센서모델,기온,습도,자외선지수\n강남구,SDoT-2,31.2,64,6\n")
	writeDataset(t, dir, MovementFile,
		"출발자치구,도착자치구,연령대,성별,장소유형,이동인구수\n강남구,서초구,65,F,공원,12\n")

	loader := NewLoader(dir, discardLogger(), observability.NewMetricsForTesting())
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, ds.Population, 2)
	assert.Len(t, ds.Environment, 1)
	assert.Len(t, ds.Movement, 1)
}

func TestLoader_MissingFile(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, PopulationFile,
		"자치구,인구수,인구밀도,평균가구원수\n강남구,545000,16500,2.3\n")

	loader := NewLoader(dir, discardLogger(), observability.NewMetricsForTesting())
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment")
}

func TestLoader_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := NewLoader(t.TempDir(), discardLogger(), observability.NewMetricsForTesting())
	_, err := loader.Load(ctx)
	require.Error(t, err)
}
