package report

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNoData = errors.New("nothing to plot")

//PlotPossession saves a line chart of each team's cumulative possession share (percent) over the frames of ledger.
//Lines take the team's display color from colors.
func PlotPossession(ledger []int, colors map[int]color.RGBA, path string) error {
	if len(ledger) == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = "Ball Possession"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Share (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	for _, team := range []int{utils.FirstTeamID, utils.SecondTeamID} {
		pts := make(plotter.XYs, len(ledger))
		count := 0
		for i, t := range ledger {
			if t == team {
				count++
			}
			pts[i] = plotter.XY{X: float64(i), Y: 100 * float64(count) / float64(i+1)}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrap(err, "PlotPossession")
		}
		if c, ok := colors[team]; ok {
			c.A = 255
			line.Color = c
		}
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Team %d", team), line)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "PlotPossession: Error saving '%s'", path)
	}
	return nil
}

//PlotDistances saves a bar chart of the total distance (meters) covered by every player, ordered by track id
func PlotDistances(distances map[int]float64, path string) error {
	if len(distances) == 0 {
		return ErrNoData
	}

	ids := make([]int, 0, len(distances))
	for id := range distances {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	values := make(plotter.Values, len(ids))
	names := make([]string, len(ids))
	for i, id := range ids {
		values[i] = distances[id]
		names[i] = fmt.Sprintf("%d", id)
	}

	p := plot.New()
	p.Title.Text = "Distance Covered"
	p.X.Label.Text = "Player ID"
	p.Y.Label.Text = "Distance (m)"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "PlotDistances")
	}
	bars.Color = color.RGBA{R: 30, G: 120, B: 200, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	width := vg.Length(len(ids))*20*vg.Millimeter + 4*vg.Inch
	if err := p.Save(width, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "PlotDistances: Error saving '%s'", path)
	}
	return nil
}
