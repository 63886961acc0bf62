package video

import (
	"context"
	"log"
	"os"
	"os/exec"
	"path"

	"github.com/chenBenjamin97/football-analyzer/pkg/pipeline"
	"github.com/chenBenjamin97/football-analyzer/pkg/report"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"
)

//pathsOf returns where every artifact of given source video is read from or written to, based on configuration's directories.
//srcVideoName should include file's extension ('.mp4', etc.)
func pathsOf(srcVideoName string) videoPaths {
	base := utils.TrimExt(srcVideoName)
	stubs := viper.GetString("directory.stubs")
	reports := viper.GetString("directory.reports")

	return videoPaths{
		source:         path.Join(viper.GetString("directory.source"), srcVideoName),
		temp:           path.Join(viper.GetString("directory.temp"), base+"."+"avi"),
		output:         path.Join(viper.GetString("directory.ready"), base+"."+viper.GetString("video.prod_format")),
		stub:           path.Join(stubs, base+".tracks.msgpack"),
		result:         path.Join(stubs, base+".result.msgpack"),
		possessionPlot: path.Join(reports, base+"_possession.png"),
		distancePlot:   path.Join(reports, base+"_distance.png"),
	}
}

//ResultPath returns where the enriched tracks of given video are saved after tagging
func ResultPath(srcVideoName string) string {
	return pathsOf(srcVideoName).result
}

//ReportPath returns where the report chart of given kind ("possession" or "distance") of given video is saved
func ReportPath(srcVideoName, kind string) (string, bool) {
	p := pathsOf(srcVideoName)
	switch kind {
	case "possession":
		return p.possessionPlot, true
	case "distance":
		return p.distancePlot, true
	}
	return "", false
}

//Tag reads a video from given source, runs the tracker on it, enriches the tracks frame by frame (camera movement,
//teams, ball possession, speed and distance) and plots the result above it's frames. The tagged video is converted
//to the production format and saved in 'ready' directory from configuration file; the enriched tracks and the report charts are saved as well.
//srcVideoName should include file's extension ('.mp4', etc.)
func Tag(ctx context.Context, srcVideoName string) (*pipeline.Result, error) {
	p := pathsOf(srcVideoName)

	table, err := LoadTracks(ctx, p.source, p.stub)
	if err != nil {
		return nil, errors.Wrapf(err, "Tag: Error loading tracks of '%s'", srcVideoName)
	}

	cap, err := gocv.VideoCaptureFile(p.source)
	if err != nil {
		return nil, errors.Wrapf(err, "Tag: Error opening '%s'", p.source)
	}
	defer cap.Close()

	fps := cap.Get(gocv.VideoCaptureFPS)

	videoWriter, err := gocv.VideoWriterFile(p.temp, viper.GetString("video.codec"), fps, int(cap.Get(gocv.VideoCaptureFrameWidth)), int(cap.Get(gocv.VideoCaptureFrameHeight)), true)
	if err != nil {
		return nil, errors.Wrapf(err, "Tag: Error opening writer '%s'", p.temp)
	}
	defer os.Remove(p.temp) //remove '.avi' temp file at the end of this function

	pl := pipeline.New(pipeline.ConfigFromViper(fps), table)
	defer pl.Close()

	frameMat := gocv.NewMat()
	defer frameMat.Close()

mainLoop:
	for {
		select {
		case <-ctx.Done():
			videoWriter.Close()
			return nil, ctx.Err()
		default:
		}

		if ok := cap.Read(&frameMat); !ok || frameMat.Empty() { //finished to read all video's frames
			break mainLoop
		}

		if pl.Processed() >= table.Len() {
			log.Printf("Tag: Video '%s' has more frames than its tracks (%d), stopping", srcVideoName, table.Len())
			break mainLoop
		}

		n, err := pl.ProcessFrame(frameMat)
		if err != nil {
			log.Printf("Tag: Error, got '%v'", err)
			break mainLoop
		}

		movement := pl.CameraMovement()
		plotFrame(&frameMat, table, n, pl.Teams(), pl.Ledger(), movement[len(movement)-1])

		if err := videoWriter.Write(frameMat); err != nil {
			log.Printf("Tag: Error writing frame %d, got '%v'", n, err)
		}
	}

	if pl.Processed() < table.Len() {
		log.Printf("Tag: Video '%s' ended after %d of %d tracked frames", srcVideoName, pl.Processed(), table.Len())
	}

	videoWriter.Close() //flush before converting

	//Convert to from 'avi' to production format. example:ffmpeg -i testFootball.avi testFootball.mp4
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y", "-i", p.temp, p.output)
	if err := cmd.Run(); err != nil {
		log.Printf("Tag: Error from ffmpeg, got '%v'", err)
	}

	result := pl.Result()

	if err := tracks.WriteStub(p.result, result); err != nil {
		log.Printf("Tag: Error, got '%v'", err)
	}

	if err := report.PlotPossession(result.Possession, result.TeamColors, p.possessionPlot); err != nil {
		log.Printf("Tag: Error, got '%v'", err)
	}

	if err := report.PlotDistances(result.Distances, p.distancePlot); err != nil {
		log.Printf("Tag: Error, got '%v'", err)
	}

	return result, nil
}

//LoadResult reads the enriched tracks saved by Tag for given video
func LoadResult(srcVideoName string) (*pipeline.Result, error) {
	result := &pipeline.Result{}
	if err := tracks.ReadStub(ResultPath(srcVideoName), result); err != nil {
		return nil, err
	}
	return result, nil
}
