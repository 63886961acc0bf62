package kinematics

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/golang/geo/r2"
)

//Config of the kinematics estimator
type Config struct {
	FrameRate      float64 //frames per second of the source video
	MetersPerPixel float64 //fixed pixel to meter ratio, there is no camera calibration
}

func DefaultConfig() Config {
	return Config{
		FrameRate:      24,
		MetersPerPixel: 0.05,
	}
}

type trackState struct {
	last     r2.Point
	distance float64 //meters
	speed    float64 //km/h
	hasSpeed bool
}

//Estimator keeps a running distance and a smoothed speed per track id.
//State is keyed by track id only and never dropped, so a recycled id inherits the history of the
//track that used it before.
type Estimator struct {
	cfg    Config
	states map[int]*trackState
}

func NewEstimator(cfg Config) *Estimator {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultConfig().FrameRate
	}
	return &Estimator{
		cfg:    cfg,
		states: make(map[int]*trackState),
	}
}

//Step converts a displacement of pixels between two consecutive frames into meters and km/h
func (e *Estimator) Step(pixels float64) (meters, kmh float64) {
	meters = pixels * e.cfg.MetersPerPixel
	elapsed := 1 / e.cfg.FrameRate
	return meters, meters / elapsed * utils.MsToKmh
}

//Update sets Distance (and Speed, once a previous position is known) on every record of frame.
//Only player frames should be passed in; referees and the ball are not measured.
func (e *Estimator) Update(frame *tracks.Frame) {
	frame.Each(func(id int, r *tracks.Record) {
		pos, ok := r.BestPosition()
		if !ok {
			return
		}

		st, seen := e.states[id]
		if !seen {
			st = &trackState{}
			e.states[id] = st
		} else {
			meters, kmh := e.Step(pos.Sub(st.last).Norm())
			st.distance += meters
			if st.hasSpeed {
				st.speed = (st.speed + kmh) / 2
			} else {
				st.speed = kmh
				st.hasSpeed = true
			}
			speed := st.speed
			r.Speed = &speed
		}

		st.last = pos
		distance := st.distance
		r.Distance = &distance
	})
}

//Distance returns the cumulative distance (meters) of track id
func (e *Estimator) Distance(id int) (float64, bool) {
	st, ok := e.states[id]
	if !ok {
		return 0, false
	}
	return st.distance, true
}

//Distances returns the cumulative distance of every track seen so far
func (e *Estimator) Distances() map[int]float64 {
	out := make(map[int]float64, len(e.states))
	for id, st := range e.states {
		out[id] = st.distance
	}
	return out
}
