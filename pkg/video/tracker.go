package video

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log"
	"os/exec"
	"strings"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

//maxLineSize bounds a single line of tracker output
const maxLineSize = 1 << 20

//RunTracker executes the external detector+tracker on given video and collects its output into a track table.
//The process prints "Frame #: <n>" before each frame's detections, one JSON object per detection, and "EOF" when done.
func RunTracker(ctx context.Context, videoPath string) (*tracks.Table, error) {
	cmd := exec.CommandContext(ctx, viper.GetString("tracker.python"), viper.GetString("tracker.script"), "--video", videoPath)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, "RunTracker: Error getting tracker's standard output")
	}

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrap(err, "RunTracker: Error executing tracker")
	}

	table, readErr := ReadTrackerOutput(stdout)

	//drain whatever is left so the process is not blocked on a full pipe
	io.Copy(io.Discard, stdout)

	if err := cmd.Wait(); err != nil {
		return nil, errors.Wrap(err, "RunTracker: Error waiting tracker's process")
	}

	return table, readErr
}

//ReadTrackerOutput parses the tracker's line protocol. Malformed lines and detections with an
//unknown class or an invalid box are logged and skipped. Ball detections are stored under
//tracks.BallID, keeping the most confident one per frame.
func ReadTrackerOutput(r io.Reader) (*tracks.Table, error) {
	table := tracks.NewTable()
	ballConfidence := make(map[int]float64)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.Contains(line, "Frame #:") {
			table.AddFrame()
			continue
		}

		if line == "EOF" {
			break
		}

		if strings.Contains(line, "FPS: ") { //this is a log print, skip it
			continue
		}

		if !strings.HasPrefix(line, "{\"Class\":") {
			continue
		}

		frameNum := table.Len() - 1
		if frameNum < 0 {
			log.Printf("ReadTrackerOutput: Detection before first frame marker, skipping")
			continue
		}

		d := detection{}
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			log.Printf("ReadTrackerOutput: Error, got '%v'", err)
			continue
		}

		class, ok := tracks.ParseClass(d.Class)
		if !ok {
			continue
		}

		id := d.ID
		if class == tracks.Ball {
			if best, seen := ballConfidence[frameNum]; seen && best >= d.Confidence {
				continue
			}
			id = tracks.BallID
		}

		if err := table.Set(class, frameNum, id, tracks.NewBBox(d.Bbox)); err != nil {
			log.Printf("ReadTrackerOutput: Error, got '%v'", err)
			continue
		}

		if class == tracks.Ball {
			ballConfidence[frameNum] = d.Confidence
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "ReadTrackerOutput: Error reading tracker output")
	}

	if table.Len() == 0 {
		return nil, ErrNoTracks
	}

	return table, nil
}

//LoadTracks returns the raw track table of a video, from its stub when tracker.read_from_stub is set
//and the stub exists, otherwise by running the tracker (and writing the stub for next time).
func LoadTracks(ctx context.Context, videoPath, stubPath string) (*tracks.Table, error) {
	if viper.GetBool("tracker.read_from_stub") && utils.FileExists(stubPath) {
		table, err := tracks.LoadTable(stubPath)
		if err == nil {
			log.Printf("LoadTracks: Read %d frames from stub '%s'", table.Len(), stubPath)
			return table, nil
		}
		log.Printf("LoadTracks: Error, got '%v'. Running tracker instead", err)
	}

	table, err := RunTracker(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	if err := tracks.WriteStub(stubPath, table); err != nil {
		log.Printf("LoadTracks: Error, got '%v'", err)
	}

	return table, nil
}
