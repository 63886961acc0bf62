package video

import (
	"fmt"
	"image"
	"image/color"

	"github.com/chenBenjamin97/football-analyzer/pkg/possession"
	"github.com/chenBenjamin97/football-analyzer/pkg/team"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/golang/geo/r2"
	"gocv.io/x/gocv"
)

var (
	whiteRGB = color.RGBA{255, 255, 255, 0}
	blackRGB = color.RGBA{0, 0, 0, 0}
)

//plotFrame draws every enriched record of frame number n above the video frame, then the camera movement and possession panels
func plotFrame(frame *gocv.Mat, table *tracks.Table, n int, teams *team.Classifier, ledger *possession.Ledger, movement r2.Point) {
	if n < 0 || n >= table.Len() {
		return
	}

	table.Players[n].Each(func(id int, r *tracks.Record) {
		plotPlayerOnFrame(frame, id, r, teams.Color(r.Team))
	})

	table.Referees[n].Each(func(id int, r *tracks.Record) {
		if r.BBox.Valid() {
			plotReferee(frame, r.BBox.Rect(), utils.RefereeColor)
		}
	})

	if ball, ok := table.Ball[n].Get(tracks.BallID); ok && ball.BBox.Valid() {
		plotBall(frame, ball.BBox.Rect(), utils.BallColor)
	}

	plotCameraMovement(frame, movement)
	plotPossession(frame, ledger, n, teams)
}

//plotPlayerOnFrame plots given player's bounding box, id and kinematics, plus a marker above the player holding the ball
func plotPlayerOnFrame(frame *gocv.Mat, id int, r *tracks.Record, plotColor color.RGBA) {
	if !r.BBox.Valid() {
		return
	}

	boundingBoxRect := r.BBox.Rect()
	gocv.Rectangle(frame, boundingBoxRect, plotColor, 2)

	startPointText := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Min.Y-5)
	textBackgroundRect := image.Rect(startPointText.X, startPointText.Y-15, startPointText.X+55, startPointText.Y+5)
	gocv.Rectangle(frame, textBackgroundRect, plotColor, -1) //thickness -1 == filled rectangle
	gocv.PutText(frame, fmt.Sprintf("ID: %d", id), startPointText, gocv.FontHersheyPlain, 1, whiteRGB, 2)

	if r.BallPossession {
		center := r.BBox.Center()
		marker := image.Rect(int(center.X)-6, boundingBoxRect.Min.Y-36, int(center.X)+6, boundingBoxRect.Min.Y-24)
		gocv.Rectangle(frame, marker, utils.PossessionMarkerColor, -1)
		gocv.Rectangle(frame, marker, blackRGB, 1)
	}

	if r.Speed != nil && r.Distance != nil {
		//kinematics are written under the feet
		pt := image.Pt(boundingBoxRect.Min.X, boundingBoxRect.Max.Y+15)
		gocv.PutText(frame, fmt.Sprintf("%.2f km/h", *r.Speed), pt, gocv.FontHersheyPlain, 1, blackRGB, 2)
		gocv.PutText(frame, fmt.Sprintf("%.2f m", *r.Distance), pt.Add(image.Pt(0, 15)), gocv.FontHersheyPlain, 1, blackRGB, 2)
	}
}

//plotReferee plots a referee's bounding box with a "Referee" title
func plotReferee(frame *gocv.Mat, bbox image.Rectangle, plotColor color.RGBA) {
	if bbox.Empty() {
		return
	}

	startPointText := image.Pt(bbox.Min.X, bbox.Min.Y)
	textBackgroundRect := image.Rect(startPointText.X, startPointText.Y, bbox.Max.X, startPointText.Y-25)

	gocv.Rectangle(frame, bbox, plotColor, 2)
	gocv.Rectangle(frame, textBackgroundRect, plotColor, -1) //thickness -1 == filled rectangle
	gocv.PutText(frame, "Referee", startPointText, gocv.FontHersheyPlain, 1, blackRGB, 2)
}

//plotBall marks the ball with a circle around its bounding box
func plotBall(frame *gocv.Mat, bbox image.Rectangle, plotColor color.RGBA) {
	center := image.Pt((bbox.Min.X+bbox.Max.X)/2, (bbox.Min.Y+bbox.Max.Y)/2)
	radius := bbox.Dx()
	if bbox.Dy() > radius {
		radius = bbox.Dy()
	}
	gocv.Circle(frame, center, radius/2+3, plotColor, 2)
}

//plotCameraMovement writes the estimated camera movement of current frame at the top left corner
func plotCameraMovement(frame *gocv.Mat, movement r2.Point) {
	panel := image.Rect(0, 0, 260, 60)
	gocv.Rectangle(frame, panel, whiteRGB, -1)
	gocv.PutText(frame, fmt.Sprintf("Camera Movement X: %.2f", movement.X), image.Pt(10, 25), gocv.FontHersheyPlain, 1, blackRGB, 2)
	gocv.PutText(frame, fmt.Sprintf("Camera Movement Y: %.2f", movement.Y), image.Pt(10, 50), gocv.FontHersheyPlain, 1, blackRGB, 2)
}

//plotPossession writes each team's share of ball possession up to frame n at the bottom right corner
func plotPossession(frame *gocv.Mat, ledger *possession.Ledger, n int, teams *team.Classifier) {
	width, height := frame.Cols(), frame.Rows()
	panel := image.Rect(width-280, height-70, width, height)
	gocv.Rectangle(frame, panel, whiteRGB, -1)

	for i, teamID := range []int{utils.FirstTeamID, utils.SecondTeamID} {
		text := fmt.Sprintf("Team %d Ball Control: %.2f%%", teamID, ledger.Share(teamID, n)*100)
		pt := image.Pt(panel.Min.X+10, panel.Min.Y+25+i*30)
		gocv.PutText(frame, text, pt, gocv.FontHersheyPlain, 1, teams.Color(teamID), 2)
	}
}
