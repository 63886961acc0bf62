package camera

import (
	"testing"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustPositions(t *testing.T) {
	table := tracks.NewTable()
	table.AddFrame()
	require.NoError(t, table.Set(tracks.Player, 0, 1, tracks.BBox{X1: 10, Y1: 10, X2: 20, Y2: 30}))
	require.NoError(t, table.Set(tracks.Referee, 0, 2, tracks.BBox{X1: 0, Y1: 0, X2: 2, Y2: 2}))
	require.NoError(t, table.Set(tracks.Ball, 0, tracks.BallID, tracks.BBox{X1: 4, Y1: 4, X2: 6, Y2: 6}))
	table.Players[0].Set(9, &tracks.Record{BBox: tracks.BBox{X1: 5, X2: 1}})
	_, err := table.AddPositions(0)
	require.NoError(t, err)

	AdjustPositions(r2.Point{X: 3, Y: -2}, table.Players[0], table.Referees[0], table.Ball[0])

	p, _ := table.Players[0].Get(1)
	assert.Equal(t, r2.Point{X: 12, Y: 22}, *p.PositionAdjusted)
	assert.Equal(t, r2.Point{X: 15, Y: 20}, *p.Position, "raw position must be untouched")

	r, _ := table.Referees[0].Get(2)
	assert.Equal(t, r2.Point{X: -2, Y: 3}, *r.PositionAdjusted)

	b, _ := table.Ball[0].Get(tracks.BallID)
	assert.Equal(t, r2.Point{X: 2, Y: 7}, *b.PositionAdjusted)

	missing, _ := table.Players[0].Get(9)
	assert.Nil(t, missing.PositionAdjusted)
}

func TestAdjustPositionsZeroMovement(t *testing.T) {
	f := tracks.NewFrame()
	pos := r2.Point{X: 5, Y: 5}
	f.Set(1, &tracks.Record{Position: &pos})

	AdjustPositions(r2.Point{}, f, nil)

	r, _ := f.Get(1)
	assert.Equal(t, pos, *r.PositionAdjusted)
}
