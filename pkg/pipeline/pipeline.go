package pipeline

import (
	"image/color"
	"log"

	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/kinematics"
	"github.com/chenBenjamin97/football-analyzer/pkg/possession"
	"github.com/chenBenjamin97/football-analyzer/pkg/team"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

//Pipeline enriches a track table frame by frame. It owns the state of every stage for one video
//session. Frames must be fed in order, starting at frame 0; it is not safe for concurrent use.
type Pipeline struct {
	table      *tracks.Table
	camera     *camera.Estimator
	teams      *team.Classifier
	possession *possession.Assigner
	kinematics *kinematics.Estimator

	cameraMovement []r2.Point
	next           int
}

//New prepares a session over table. With InterpolateBall set, the ball sub-track of the whole table
//is gap-filled first, since interpolation needs every frame.
func New(cfg Config, table *tracks.Table) *Pipeline {
	if cfg.InterpolateBall {
		table.Ball = tracks.InterpolateBall(table.Ball)
	}

	return &Pipeline{
		table:          table,
		camera:         camera.NewEstimator(cfg.Camera),
		teams:          team.NewClassifier(),
		possession:     possession.NewAssigner(cfg.PossessionMaxDistance),
		kinematics:     kinematics.NewEstimator(cfg.Kinematics),
		cameraMovement: make([]r2.Point, 0, table.Len()),
	}
}

//ProcessFrame runs every stage on the next frame and returns its index.
//Failures that concern a single record are logged and skipped, only running past the end of the
//track table is an error.
func (p *Pipeline) ProcessFrame(frame gocv.Mat) (int, error) {
	n := p.next
	if n >= p.table.Len() {
		return n, errors.Wrapf(tracks.ErrFrameOutOfRange, "ProcessFrame: frame %d, table has %d", n, p.table.Len())
	}

	skipped, err := p.table.AddPositions(n)
	if err != nil {
		return n, err
	}
	if len(skipped) > 0 {
		log.Printf("ProcessFrame: frame %d, skipping ids with invalid bbox %v", n, skipped)
	}

	players, referees, ball := p.table.Players[n], p.table.Referees[n], p.table.Ball[n]

	movement := p.camera.Estimate(frame)
	p.cameraMovement = append(p.cameraMovement, movement)
	camera.AdjustPositions(movement, players, referees, ball)

	p.assignTeams(frame, players)

	var ballBox *tracks.BBox
	if r, ok := ball.Get(tracks.BallID); ok && r.BBox.Valid() {
		ballBox = &r.BBox
	}
	p.possession.Update(players, ballBox)

	p.kinematics.Update(players)

	p.next++
	return n, nil
}

func (p *Pipeline) assignTeams(frame gocv.Mat, players *tracks.Frame) {
	if !p.teams.Bootstrapped() {
		if err := p.teams.Bootstrap(frame, players); err != nil && !errors.Is(err, team.ErrNotEnoughPlayers) {
			log.Printf("assignTeams: Error, got '%v'", err)
		}
	}

	players.Each(func(id int, r *tracks.Record) {
		if !r.BBox.Valid() {
			return
		}
		r.Team = p.teams.Team(frame, r.BBox, id)
		col := p.teams.Color(r.Team)
		r.TeamColor = &col
	})
}

//Processed is the number of frames processed so far
func (p *Pipeline) Processed() int {
	return p.next
}

func (p *Pipeline) Table() *tracks.Table {
	return p.table
}

func (p *Pipeline) Ledger() *possession.Ledger {
	return p.possession.Ledger()
}

func (p *Pipeline) Teams() *team.Classifier {
	return p.teams
}

//CameraMovement returns the displacement measured for every processed frame
func (p *Pipeline) CameraMovement() []r2.Point {
	out := make([]r2.Point, len(p.cameraMovement))
	copy(out, p.cameraMovement)
	return out
}

//Close releases the camera estimator's frame buffers
func (p *Pipeline) Close() error {
	return p.camera.Close()
}

//Result is the enriched output of a video session, as consumed by rendering and the API
type Result struct {
	Tracks         *tracks.Table      `json:"tracks" msgpack:"tracks"`
	Possession     []int              `json:"possession" msgpack:"possession"`
	CameraMovement []r2.Point         `json:"camera_movement" msgpack:"camera_movement"`
	TeamColors     map[int]color.RGBA `json:"team_colors" msgpack:"team_colors"`
	TeamModel      string             `json:"team_model" msgpack:"team_model"`
	Distances      map[int]float64    `json:"distances" msgpack:"distances"`
}

func (p *Pipeline) Result() *Result {
	return &Result{
		Tracks:         p.table,
		Possession:     p.Ledger().Teams(),
		CameraMovement: p.CameraMovement(),
		TeamColors: map[int]color.RGBA{
			utils.FirstTeamID:  p.teams.Color(utils.FirstTeamID),
			utils.SecondTeamID: p.teams.Color(utils.SecondTeamID),
		},
		TeamModel: p.teams.Phase().String(),
		Distances: p.kinematics.Distances(),
	}
}

//Shares returns the final possession share (0..1) of both teams
func (r *Result) Shares() map[int]float64 {
	shares := map[int]float64{utils.FirstTeamID: 0, utils.SecondTeamID: 0}
	if len(r.Possession) == 0 {
		return shares
	}
	for _, t := range r.Possession {
		shares[t]++
	}
	for t := range shares {
		shares[t] /= float64(len(r.Possession))
	}
	return shares
}
