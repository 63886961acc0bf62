package video

import "github.com/pkg/errors"

//ErrNoTracks is returned when the tracker produced no frame at all
var ErrNoTracks = errors.New("tracker produced no frames")

//detection is one object line printed by the detector+tracker process
type detection struct {
	Class      string     `json:"Class"`
	ID         int        `json:"ID"`
	Bbox       [4]float64 `json:"Bbox"`
	Confidence float64    `json:"Confidence"`
}

//paths of every file produced for one source video
type videoPaths struct {
	source         string
	temp           string
	output         string
	stub           string
	result         string
	possessionPlot string
	distancePlot   string
}
