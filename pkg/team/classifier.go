package team

import (
	"image/color"
	"log"
	"math"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrAlreadyBootstrapped = errors.New("team model already bootstrapped")
	ErrNotEnoughPlayers    = errors.New("bootstrap needs at least two players")
)

//Phase of the team color model
type Phase int

const (
	//Unfit: no color model, every new player defaults to the first team
	Unfit Phase = iota
	//Fit: two frozen team centroids, new players are classified by nearest centroid
	Fit
)

func (p Phase) String() string {
	if p == Fit {
		return "fit"
	}
	return "unfit"
}

//Classifier assigns players to one of two teams by jersey color.
//The color model is bootstrapped exactly once per session. A track id keeps the first team it was
//given for the whole session, even if a later color estimate would disagree.
type Classifier struct {
	phase        Phase
	bootstrapped bool
	centers      [][]float64 //BGR, index i is team i+1
	colors       map[int]color.RGBA
	playerTeams  map[int]int
}

func NewClassifier() *Classifier {
	return &Classifier{
		phase: Unfit,
		colors: map[int]color.RGBA{
			utils.FirstTeamID:  utils.DefaultFirstTeamColor,
			utils.SecondTeamID: utils.DefaultSecondTeamColor,
		},
		playerTeams: make(map[int]int),
	}
}

func (c *Classifier) Phase() Phase {
	return c.phase
}

//Bootstrapped reports whether the one-shot bootstrap already ran (successfully or not)
func (c *Classifier) Bootstrapped() bool {
	return c.bootstrapped
}

//Color returns the display color of given team
func (c *Classifier) Color(team int) color.RGBA {
	if col, ok := c.colors[team]; ok {
		return col
	}
	return utils.UnknownTeamColor
}

//Bootstrap fits the two team centroids from the jersey colors of the players in frame.
//It needs at least two player detections, otherwise it returns ErrNotEnoughPlayers and may be
//called again with a later frame. Once it ran, further calls return ErrAlreadyBootstrapped.
//If fewer than two jersey colors can be extracted, the default colors are kept and the classifier
//stays unfit for the rest of the session.
func (c *Classifier) Bootstrap(frame gocv.Mat, players *tracks.Frame) error {
	if c.bootstrapped {
		return ErrAlreadyBootstrapped
	}
	if players.Len() < 2 {
		return ErrNotEnoughPlayers
	}
	c.bootstrapped = true

	playerColors := make([][]float64, 0, players.Len())
	players.Each(func(id int, r *tracks.Record) {
		if col, ok := c.PlayerColor(frame, r.BBox); ok {
			playerColors = append(playerColors, col)
		} else {
			log.Printf("Bootstrap: Could not extract jersey color of player %d, skipping", id)
		}
	})

	if len(playerColors) < 2 {
		log.Printf("Bootstrap: Only %d jersey colors found, using default team colors", len(playerColors))
		return nil
	}

	samples := gocv.NewMatWithSize(len(playerColors), 3, gocv.MatTypeCV32F)
	defer samples.Close()
	for i, col := range playerColors {
		for j, v := range col {
			samples.SetFloatAt(i, j, float32(v))
		}
	}

	_, centers := kmeans(samples, 2)
	if len(centers) < 2 {
		log.Printf("Bootstrap: Error, clustering returned %d centers, using default team colors", len(centers))
		return nil
	}
	c.centers = centers
	c.colors[utils.FirstTeamID] = toRGBA(centers[0])
	c.colors[utils.SecondTeamID] = toRGBA(centers[1])
	c.phase = Fit

	return nil
}

//Team returns the team of track id, classifying it from its jersey color the first time it is seen
func (c *Classifier) Team(frame gocv.Mat, box tracks.BBox, id int) int {
	if team, ok := c.playerTeams[id]; ok {
		return team
	}

	col, ok := c.PlayerColor(frame, box)
	if !ok {
		return utils.FirstTeamID
	}

	return c.Classify(id, col)
}

//Classify returns the cached team of id if there is one. Otherwise it picks the nearest frozen
//centroid to col (BGR) and caches the result. An unfit classifier returns the first team and
//caches nothing.
func (c *Classifier) Classify(id int, col []float64) int {
	if team, ok := c.playerTeams[id]; ok {
		return team
	}

	if c.phase != Fit {
		return utils.FirstTeamID
	}

	team := utils.FirstTeamID
	best := math.Inf(1)
	for i, center := range c.centers {
		if d := floats.Distance(col, center, 2); d < best {
			best = d
			team = i + 1
		}
	}

	c.playerTeams[id] = team
	return team
}

func toRGBA(bgr []float64) color.RGBA {
	clamp := func(v float64) uint8 {
		return uint8(math.Max(0, math.Min(255, math.Round(v))))
	}
	return color.RGBA{R: clamp(bgr[2]), G: clamp(bgr[1]), B: clamp(bgr[0])}
}
