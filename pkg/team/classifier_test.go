package team

import (
	"image"
	"image/color"
	"testing"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var (
	grass = color.RGBA{R: 30, G: 140, B: 40}
	red   = color.RGBA{R: 220, G: 20, B: 20}
	blue  = color.RGBA{R: 20, G: 20, B: 220}
)

//pitch returns a grass colored frame with one player per box, each wearing the matching jersey.
//The jersey covers the middle of the box so the corners stay grass.
func pitch(boxes []tracks.BBox, jerseys []color.RGBA) gocv.Mat {
	m := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(grass.B), float64(grass.G), float64(grass.R), 0), 200, 300, gocv.MatTypeCV8UC3)
	for i, b := range boxes {
		r := b.Rect()
		jersey := image.Rect(r.Min.X+r.Dx()/4, r.Min.Y+r.Dy()/8, r.Max.X-r.Dx()/4, r.Max.Y-r.Dy()/4)
		gocv.Rectangle(&m, jersey, jerseys[i], -1)
	}
	return m
}

func playersFrame(boxes []tracks.BBox) *tracks.Frame {
	f := tracks.NewFrame()
	for i, b := range boxes {
		f.Set(i+1, &tracks.Record{BBox: b})
	}
	return f
}

func bgr(c color.RGBA) []float64 {
	return []float64{float64(c.B), float64(c.G), float64(c.R)}
}

var fourPlayers = []tracks.BBox{
	{X1: 10, Y1: 10, X2: 50, Y2: 90},
	{X1: 70, Y1: 10, X2: 110, Y2: 90},
	{X1: 130, Y1: 10, X2: 170, Y2: 90},
	{X1: 190, Y1: 10, X2: 230, Y2: 90},
}

func TestPlayerColor(t *testing.T) {
	frame := pitch(fourPlayers[:1], []color.RGBA{red})
	defer frame.Close()

	c := NewClassifier()
	col, ok := c.PlayerColor(frame, fourPlayers[0])
	require.True(t, ok)
	assert.InDeltaSlice(t, bgr(red), col, 1)
}

func TestPlayerColorDegenerateCrop(t *testing.T) {
	frame := pitch(nil, nil)
	defer frame.Close()

	c := NewClassifier()
	_, ok := c.PlayerColor(frame, tracks.BBox{X1: 10, Y1: 10, X2: 10, Y2: 40})
	assert.False(t, ok)
	_, ok = c.PlayerColor(frame, tracks.BBox{X1: 500, Y1: 500, X2: 540, Y2: 580})
	assert.False(t, ok, "box outside the frame")
	_, ok = c.PlayerColor(frame, tracks.BBox{X1: 40, Y1: 10, X2: 10, Y2: 40})
	assert.False(t, ok, "invalid box")
}

func TestBootstrapFitsTwoTeams(t *testing.T) {
	jerseys := []color.RGBA{red, blue, red, blue}
	frame := pitch(fourPlayers, jerseys)
	defer frame.Close()

	c := NewClassifier()
	require.NoError(t, c.Bootstrap(frame, playersFrame(fourPlayers)))
	require.Equal(t, Fit, c.Phase())
	require.True(t, c.Bootstrapped())

	teams := make([]int, len(fourPlayers))
	for i, b := range fourPlayers {
		teams[i] = c.Team(frame, b, i+1)
	}
	assert.Equal(t, teams[0], teams[2])
	assert.Equal(t, teams[1], teams[3])
	assert.NotEqual(t, teams[0], teams[1])

	redTeam := c.Color(teams[0])
	assert.InDelta(t, float64(red.R), float64(redTeam.R), 1)
	assert.InDelta(t, float64(red.B), float64(redTeam.B), 1)
}

func TestBootstrapRunsOnce(t *testing.T) {
	frame := pitch(fourPlayers[:2], []color.RGBA{red, blue})
	defer frame.Close()

	c := NewClassifier()
	require.NoError(t, c.Bootstrap(frame, playersFrame(fourPlayers[:2])))
	assert.ErrorIs(t, c.Bootstrap(frame, playersFrame(fourPlayers[:2])), ErrAlreadyBootstrapped)
}

func TestBootstrapNeedsTwoPlayers(t *testing.T) {
	frame := pitch(fourPlayers[:1], []color.RGBA{red})
	defer frame.Close()

	c := NewClassifier()
	assert.ErrorIs(t, c.Bootstrap(frame, playersFrame(fourPlayers[:1])), ErrNotEnoughPlayers)
	assert.False(t, c.Bootstrapped())
	assert.Equal(t, Unfit, c.Phase())
}

func TestBootstrapFallsBackToDefaultColors(t *testing.T) {
	boxes := []tracks.BBox{fourPlayers[0], {X1: 100, Y1: 100, X2: 100, Y2: 100}}
	frame := pitch(boxes[:1], []color.RGBA{red})
	defer frame.Close()

	c := NewClassifier()
	require.NoError(t, c.Bootstrap(frame, playersFrame(boxes)))
	assert.True(t, c.Bootstrapped())
	assert.Equal(t, Unfit, c.Phase())
	assert.Equal(t, utils.DefaultFirstTeamColor, c.Color(utils.FirstTeamID))
	assert.Equal(t, utils.DefaultSecondTeamColor, c.Color(utils.SecondTeamID))

	assert.Equal(t, utils.FirstTeamID, c.Team(frame, fourPlayers[0], 1))
	assert.ErrorIs(t, c.Bootstrap(frame, playersFrame(boxes)), ErrAlreadyBootstrapped)
}

func TestClassifyUnfitDefaultsToFirstTeam(t *testing.T) {
	c := NewClassifier()
	assert.Equal(t, utils.FirstTeamID, c.Classify(4, bgr(blue)))
	assert.Empty(t, c.playerTeams, "unfit results are not cached")
}

func TestClassifyIsSticky(t *testing.T) {
	c := NewClassifier()
	c.centers = [][]float64{bgr(red), bgr(blue)}
	c.phase = Fit

	first := c.Classify(7, bgr(blue))
	require.Equal(t, utils.SecondTeamID, first)

	for i := 0; i < 3; i++ {
		assert.Equal(t, first, c.Classify(7, bgr(red)))
	}
	assert.Equal(t, utils.FirstTeamID, c.Classify(8, bgr(red)))
}

func TestColorUnknownTeam(t *testing.T) {
	assert.Equal(t, utils.UnknownTeamColor, NewClassifier().Color(3))
}
