package report

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotPossession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "possession.png")
	colors := map[int]color.RGBA{utils.FirstTeamID: utils.DefaultFirstTeamColor, utils.SecondTeamID: utils.DefaultSecondTeamColor}

	require.NoError(t, PlotPossession([]int{1, 1, 2, 2, 2}, colors, path))
	assert.True(t, utils.FileExists(path))
}

func TestPlotDistances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "distance.png")

	require.NoError(t, PlotDistances(map[int]float64{7: 12.5, 3: 4, 11: 30.25}, path))
	assert.True(t, utils.FileExists(path))
}

func TestPlotEmpty(t *testing.T) {
	dir := t.TempDir()

	assert.ErrorIs(t, PlotPossession(nil, nil, filepath.Join(dir, "p.png")), ErrNoData)
	assert.ErrorIs(t, PlotDistances(map[int]float64{}, filepath.Join(dir, "d.png")), ErrNoData)
	assert.False(t, utils.FileExists(filepath.Join(dir, "p.png")))
}
