package possession

import (
	"math"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/golang/geo/r2"
)

//NoPlayer is returned by Assign when nobody is close enough to the ball
const NoPlayer = -1

//DefaultMaxDistance is the distance (pixels) from the ball below which a player can own it
const DefaultMaxDistance = 70.0

//Assigner picks the player in possession of the ball every frame and keeps the possession ledger
type Assigner struct {
	maxDistance float64
	ledger      Ledger
}

func NewAssigner(maxDistance float64) *Assigner {
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Assigner{maxDistance: maxDistance}
}

func (a *Assigner) Ledger() *Ledger {
	return &a.ledger
}

//Assign returns the id of the player whose nearer bottom corner (the feet) is closest to the ball
//center, provided that distance is below the threshold. Ties go to the first player in tracker order.
func (a *Assigner) Assign(players *tracks.Frame, ball *tracks.BBox) int {
	if ball == nil || !ball.Valid() {
		return NoPlayer
	}

	c := ball.Center()
	ballPos := r2.Point{X: math.Trunc(c.X), Y: math.Trunc(c.Y)}

	closest := NoPlayer
	minDistance := math.Inf(1)
	players.Each(func(id int, r *tracks.Record) {
		if !r.BBox.Valid() {
			return
		}
		left := r.BBox.BottomLeft().Sub(ballPos).Norm()
		right := r.BBox.BottomRight().Sub(ballPos).Norm()
		d := math.Min(left, right)
		if d < a.maxDistance && d < minDistance {
			minDistance = d
			closest = id
		}
	})

	return closest
}

//Update runs Assign, marks the chosen record and appends its team to the ledger. When nobody has
//the ball the previous entry is carried forward (the first team on the very first frame).
//It returns the team appended.
func (a *Assigner) Update(players *tracks.Frame, ball *tracks.BBox) int {
	team := utils.FirstTeamID
	if last, ok := a.ledger.Last(); ok {
		team = last
	}

	if id := a.Assign(players, ball); id != NoPlayer {
		r, _ := players.Get(id)
		r.BallPossession = true
		if r.Team != 0 {
			team = r.Team
		}
	}

	a.ledger.Append(team)
	return team
}
