package camera

import (
	"image"
	"log"

	"github.com/golang/geo/r2"
	"gocv.io/x/gocv"
)

//Config holds the feature detection and optical flow parameters of the estimator
type Config struct {
	MinDistance        float64 //displacements at or below this (pixels) count as a static camera
	Border             int     //width of the left/right strips features are searched in
	MaxCorners         int
	QualityLevel       float64
	MinFeatureDistance float64
	WindowSize         int
	MaxLevel           int
	MaxIterations      int
	Epsilon            float64
}

func DefaultConfig() Config {
	return Config{
		MinDistance:        5,
		Border:             20,
		MaxCorners:         100,
		QualityLevel:       0.3,
		MinFeatureDistance: 3,
		WindowSize:         15,
		MaxLevel:           2,
		MaxIterations:      10,
		Epsilon:            0.03,
	}
}

//Estimator measures camera displacement between consecutive frames. Features are only searched in
//the left and right border strips (advertising boards), which are assumed to be static background.
//It is not safe for concurrent use, frames must be fed in order.
type Estimator struct {
	cfg      Config
	oldGray  gocv.Mat
	features []r2.Point
	started  bool

	//track follows the current features into a new gray frame, swapped in tests
	track func(gray gocv.Mat) ([]*r2.Point, bool)
}

func NewEstimator(cfg Config) *Estimator {
	e := &Estimator{
		cfg:     cfg,
		oldGray: gocv.NewMat(),
	}
	e.track = e.opticalFlow
	return e
}

//Features returns a copy of the current feature set
func (e *Estimator) Features() []r2.Point {
	out := make([]r2.Point, len(e.features))
	copy(out, e.features)
	return out
}

//Estimate returns the camera displacement between the reference frame and given BGR frame.
//The first call only records the reference and returns the zero vector.
func (e *Estimator) Estimate(frame gocv.Mat) r2.Point {
	gray := gocv.NewMat()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	if !e.started {
		e.swapReference(gray)
		e.features = e.detect(e.oldGray)
		e.started = true
		return r2.Point{}
	}

	if len(e.features) == 0 {
		//nothing to track, keep the old reference and try again with the next frame
		gray.Close()
		return r2.Point{}
	}

	tracked, ok := e.track(gray)
	if !ok {
		log.Printf("Estimate: no feature could be tracked, keeping reference frame")
		gray.Close()
		return r2.Point{}
	}

	var movement r2.Point
	maxDistance := 0.0
	for i, p := range tracked {
		if p == nil {
			continue
		}
		d := p.Sub(e.features[i])
		if dist := d.Norm(); dist > maxDistance {
			maxDistance = dist
			movement = d
		}
	}

	if maxDistance > e.cfg.MinDistance {
		e.features = e.detect(gray)
	} else {
		movement = r2.Point{}
	}

	e.swapReference(gray)

	return movement
}

//Close releases the reference frame
func (e *Estimator) Close() error {
	return e.oldGray.Close()
}

func (e *Estimator) swapReference(gray gocv.Mat) {
	e.oldGray.Close()
	e.oldGray = gray
}

//detect finds up to MaxCorners features inside the two border strips of gray.
//Each strip is searched on its own and gets half of the budget; a share one strip can not fill goes to the other.
func (e *Estimator) detect(gray gocv.Mat) []r2.Point {
	width, height := gray.Cols(), gray.Rows()
	border := e.cfg.Border
	if border*2 > width {
		border = width / 2
	}
	if border <= 0 || height == 0 || e.cfg.MaxCorners <= 0 {
		return nil
	}

	left := e.detectStrip(gray, image.Rect(0, 0, border, height))
	right := e.detectStrip(gray, image.Rect(width-border, 0, width, height))

	return splitBudget(left, right, e.cfg.MaxCorners)
}

//detectStrip returns the corners of one strip in frame coordinates, strongest first
func (e *Estimator) detectStrip(gray gocv.Mat, strip image.Rectangle) []r2.Point {
	roi := gray.Region(strip)
	defer roi.Close()
	corners := gocv.NewMat()
	defer corners.Close()

	gocv.GoodFeaturesToTrack(roi, &corners, e.cfg.MaxCorners, e.cfg.QualityLevel, e.cfg.MinFeatureDistance)

	points := make([]r2.Point, 0, corners.Rows())
	for i := 0; i < corners.Rows(); i++ {
		p := pointAt(corners, i)
		points = append(points, r2.Point{X: p.X + float64(strip.Min.X), Y: p.Y + float64(strip.Min.Y)})
	}

	return points
}

//splitBudget keeps at most budget points out of both strips, half per strip plus whatever the other one left unused.
//Input slices are ordered strongest first, so truncating keeps the best corners.
func splitBudget(left, right []r2.Point, budget int) []r2.Point {
	leftQuota := budget / 2
	rightQuota := budget - leftQuota

	if len(left) < leftQuota {
		rightQuota += leftQuota - len(left)
	}
	if len(right) < rightQuota {
		leftQuota += rightQuota - len(right)
	}

	if len(left) > leftQuota {
		left = left[:leftQuota]
	}
	if len(right) > rightQuota {
		right = right[:rightQuota]
	}

	features := make([]r2.Point, 0, len(left)+len(right))
	features = append(features, left...)
	return append(features, right...)
}

//opticalFlow follows the current features from the reference frame into gray. Points that could not be
//tracked are nil in the returned slice.
func (e *Estimator) opticalFlow(gray gocv.Mat) ([]*r2.Point, bool) {
	prevPts := pointsToMat(e.features)
	defer prevPts.Close()
	nextPts := gocv.NewMat()
	defer nextPts.Close()
	status := gocv.NewMat()
	defer status.Close()
	errMat := gocv.NewMat()
	defer errMat.Close()

	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, e.cfg.MaxIterations, e.cfg.Epsilon)
	win := image.Pt(e.cfg.WindowSize, e.cfg.WindowSize)
	gocv.CalcOpticalFlowPyrLKWithParams(e.oldGray, gray, prevPts, nextPts, &status, &errMat, win, e.cfg.MaxLevel, criteria, 0, 1e-4)

	if nextPts.Empty() || status.Rows() < len(e.features) {
		return nil, false
	}

	found := 0
	tracked := make([]*r2.Point, len(e.features))
	for i := range e.features {
		if status.GetUCharAt(i, 0) != 1 {
			continue
		}
		p := pointAt(nextPts, i)
		tracked[i] = &p
		found++
	}

	return tracked, found > 0
}

//pointsToMat packs points into an Nx2 float matrix, one point per row
func pointsToMat(pts []r2.Point) gocv.Mat {
	m := gocv.NewMatWithSize(len(pts), 2, gocv.MatTypeCV32F)
	for i, p := range pts {
		m.SetFloatAt(i, 0, float32(p.X))
		m.SetFloatAt(i, 1, float32(p.Y))
	}
	return m
}

//pointAt reads row i of a point matrix, either Nx1 with two channels or Nx2 with one
func pointAt(m gocv.Mat, i int) r2.Point {
	if m.Channels() == 2 {
		v := m.GetVecfAt(i, 0)
		return r2.Point{X: float64(v[0]), Y: float64(v[1])}
	}
	return r2.Point{X: float64(m.GetFloatAt(i, 0)), Y: float64(m.GetFloatAt(i, 1))}
}
