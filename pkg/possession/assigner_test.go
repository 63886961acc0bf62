package possession

import (
	"testing"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//ballAt returns a 2x2 ball box centered on (x, y)
func ballAt(x, y float64) *tracks.BBox {
	return &tracks.BBox{X1: x - 1, Y1: y - 1, X2: x + 1, Y2: y + 1}
}

//playerLeftFootAt returns a player box whose bottom-left corner is (x, y)
func playerLeftFootAt(x, y float64) tracks.BBox {
	return tracks.BBox{X1: x, Y1: y - 80, X2: x + 30, Y2: y}
}

func TestAssignPicksNearest(t *testing.T) {
	players := tracks.NewFrame()
	players.Set(3, &tracks.Record{BBox: playerLeftFootAt(160, 100)})
	players.Set(5, &tracks.Record{BBox: playerLeftFootAt(150, 100)})

	a := NewAssigner(DefaultMaxDistance)
	assert.Equal(t, 5, a.Assign(players, ballAt(100, 100)), "50 px beats 60 px")
}

func TestAssignUsesNearerBottomCorner(t *testing.T) {
	players := tracks.NewFrame()
	//bottom-right corner is at (100, 200), bottom-left far away
	players.Set(1, &tracks.Record{BBox: tracks.BBox{X1: 0, Y1: 120, X2: 100, Y2: 200}})

	a := NewAssigner(DefaultMaxDistance)
	assert.Equal(t, 1, a.Assign(players, ballAt(140, 200)))
}

func TestAssignThreshold(t *testing.T) {
	players := tracks.NewFrame()
	players.Set(1, &tracks.Record{BBox: playerLeftFootAt(170, 100)})

	a := NewAssigner(DefaultMaxDistance)
	assert.Equal(t, NoPlayer, a.Assign(players, ballAt(100, 100)), "exactly 70 px is too far")

	players.Set(1, &tracks.Record{BBox: playerLeftFootAt(169, 100)})
	assert.Equal(t, 1, a.Assign(players, ballAt(100, 100)))
}

func TestAssignTieGoesToFirst(t *testing.T) {
	players := tracks.NewFrame()
	players.Set(8, &tracks.Record{BBox: playerLeftFootAt(140, 100)})
	players.Set(2, &tracks.Record{BBox: playerLeftFootAt(140, 100)})

	a := NewAssigner(DefaultMaxDistance)
	assert.Equal(t, 8, a.Assign(players, ballAt(100, 100)))
}

func TestAssignWithoutBall(t *testing.T) {
	players := tracks.NewFrame()
	players.Set(1, &tracks.Record{BBox: playerLeftFootAt(100, 100)})

	a := NewAssigner(DefaultMaxDistance)
	assert.Equal(t, NoPlayer, a.Assign(players, nil))
	assert.Equal(t, NoPlayer, a.Assign(tracks.NewFrame(), ballAt(100, 100)))
	assert.Equal(t, NoPlayer, a.Assign(nil, ballAt(100, 100)))
}

func TestAssignSkipsInvalidBoxes(t *testing.T) {
	players := tracks.NewFrame()
	players.Set(1, &tracks.Record{BBox: tracks.BBox{X1: 110, Y1: 100, X2: 90, Y2: 50}})
	players.Set(2, &tracks.Record{BBox: playerLeftFootAt(130, 100)})

	a := NewAssigner(DefaultMaxDistance)
	assert.Equal(t, 2, a.Assign(players, ballAt(100, 100)))
}

func TestUpdateLedgerCarryForward(t *testing.T) {
	a := NewAssigner(0)
	empty := tracks.NewFrame()

	assert.Equal(t, utils.FirstTeamID, a.Update(empty, nil), "first frame defaults to team 1")

	players := tracks.NewFrame()
	players.Set(4, &tracks.Record{BBox: playerLeftFootAt(110, 100), Team: utils.SecondTeamID})
	assert.Equal(t, utils.SecondTeamID, a.Update(players, ballAt(100, 100)))
	r, _ := players.Get(4)
	assert.True(t, r.BallPossession)

	assert.Equal(t, utils.SecondTeamID, a.Update(empty, nil), "no ball carries the previous team")

	far := tracks.NewFrame()
	far.Set(6, &tracks.Record{BBox: playerLeftFootAt(500, 500), Team: utils.FirstTeamID})
	assert.Equal(t, utils.SecondTeamID, a.Update(far, ballAt(100, 100)))
	r, _ = far.Get(6)
	assert.False(t, r.BallPossession)

	require.Equal(t, 4, a.Ledger().Len())
	assert.Equal(t, []int{1, 2, 2, 2}, a.Ledger().Teams())
}

func TestLedgerShare(t *testing.T) {
	var l Ledger
	assert.Equal(t, 0.0, l.Share(1, 5))
	_, ok := l.Last()
	assert.False(t, ok)

	for _, team := range []int{1, 1, 2, 1} {
		l.Append(team)
	}

	assert.InDelta(t, 1.0, l.Share(1, 1), 1e-9)
	assert.InDelta(t, 2.0/3.0, l.Share(1, 2), 1e-9)
	assert.InDelta(t, 0.25, l.Share(2, 3), 1e-9)
	assert.InDelta(t, 0.25, l.Share(2, 100), 1e-9)
	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, 1, last)
}
