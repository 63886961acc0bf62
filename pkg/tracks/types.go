package tracks

import (
	"image"
	"image/color"
	"math"

	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/golang/geo/r2"
)

//Class is one of the three object classes produced by the upstream detector+tracker
type Class string

const (
	Player  Class = "player"
	Referee Class = "referee"
	Ball    Class = "ball"
)

//Classes lists every class in the order the pipeline visits them
var Classes = []Class{Player, Referee, Ball}

//BallID is the track id every ball record is stored under
const BallID = 1

//ParseClass maps a detector label to its Class. The generic "person" label counts as a player.
func ParseClass(label string) (Class, bool) {
	switch {
	case utils.InSlice(label, utils.PlayerLabels):
		return Player, true
	case utils.InSlice(label, utils.RefereeLabels):
		return Referee, true
	case utils.InSlice(label, utils.BallLabels):
		return Ball, true
	}
	return "", false
}

//BBox is an axis-aligned box in pixel space
type BBox struct {
	X1 float64 `json:"x1" msgpack:"x1"`
	Y1 float64 `json:"y1" msgpack:"y1"`
	X2 float64 `json:"x2" msgpack:"x2"`
	Y2 float64 `json:"y2" msgpack:"y2"`
}

//NewBBox builds a box from the [x1,y1,x2,y2] layout used by the tracker output
func NewBBox(v [4]float64) BBox {
	return BBox{X1: v[0], Y1: v[1], X2: v[2], Y2: v[3]}
}

//Valid reports whether the box has finite coordinates with x1<=x2 and y1<=y2
func (b BBox) Valid() bool {
	for _, v := range []float64{b.X1, b.Y1, b.X2, b.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.X1 <= b.X2 && b.Y1 <= b.Y2
}

//Center returns the box centroid ((x1+x2)/2, (y1+y2)/2)
func (b BBox) Center() r2.Point {
	return r2.Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

//BottomLeft returns the (x1,y2) corner, roughly the left foot of a standing player
func (b BBox) BottomLeft() r2.Point {
	return r2.Point{X: b.X1, Y: b.Y2}
}

//BottomRight returns the (x2,y2) corner
func (b BBox) BottomRight() r2.Point {
	return r2.Point{X: b.X2, Y: b.Y2}
}

//Rect truncates the box to integer pixel coordinates
func (b BBox) Rect() image.Rectangle {
	return image.Rect(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

//Record is the per-frame state of one track. Only BBox comes from the tracker, every other field
//is filled in by a pipeline stage.
type Record struct {
	BBox             BBox        `json:"bbox" msgpack:"bbox"`
	Position         *r2.Point   `json:"position,omitempty" msgpack:"position,omitempty"`
	PositionAdjusted *r2.Point   `json:"position_adjusted,omitempty" msgpack:"position_adjusted,omitempty"`
	Team             int         `json:"team,omitempty" msgpack:"team,omitempty"`
	TeamColor        *color.RGBA `json:"team_color,omitempty" msgpack:"team_color,omitempty"`
	BallPossession   bool        `json:"ball_possession,omitempty" msgpack:"ball_possession,omitempty"`
	Speed            *float64    `json:"speed,omitempty" msgpack:"speed,omitempty"`
	Distance         *float64    `json:"distance,omitempty" msgpack:"distance,omitempty"`
	Interpolated     bool        `json:"interpolated,omitempty" msgpack:"interpolated,omitempty"`
}

//BestPosition returns the camera adjusted position if present, else the raw one
func (r *Record) BestPosition() (r2.Point, bool) {
	if r.PositionAdjusted != nil {
		return *r.PositionAdjusted, true
	}
	if r.Position != nil {
		return *r.Position, true
	}
	return r2.Point{}, false
}
