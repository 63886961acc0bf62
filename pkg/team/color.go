package team

import (
	"image"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"gocv.io/x/gocv"
)

//PlayerColor returns the dominant jersey color (BGR) inside box.
//The top half of the box is split into two color clusters; the cluster owning most of the four
//corners is taken as background (grass, skin) and the other one as the jersey.
//Returns false when the crop is too small to cluster.
func (c *Classifier) PlayerColor(frame gocv.Mat, box tracks.BBox) ([]float64, bool) {
	if !box.Valid() {
		return nil, false
	}

	rect := fixBbox(box.Rect(), frame.Rows(), frame.Cols())
	top := image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+rect.Dy()/2)
	if top.Dx()*top.Dy() < 2 {
		return nil, false
	}

	roi := frame.Region(top)
	defer roi.Close()

	samples := toSamples(roi)
	defer samples.Close()

	labels, centers := kmeans(samples, 2)

	w, h := top.Dx(), top.Dy()
	if len(centers) < 2 || len(labels) != w*h {
		return nil, false
	}
	corners := []int{labels[0], labels[w-1], labels[(h-1)*w], labels[h*w-1]}
	ones := 0
	for _, l := range corners {
		ones += l
	}

	//a 2:2 split counts as background cluster 0
	background := 0
	if ones > 2 {
		background = 1
	}

	return centers[1-background], true
}

//fixBbox clamps rect to the frame's range
func fixBbox(rect image.Rectangle, frameHeight, frameWidth int) image.Rectangle {
	return rect.Intersect(image.Rect(0, 0, frameWidth, frameHeight))
}

//toSamples flattens a BGR image into an Nx3 float matrix, one row per pixel
func toSamples(img gocv.Mat) gocv.Mat {
	cont := img.Clone()
	defer cont.Close()

	flat := cont.Reshape(1, cont.Rows()*cont.Cols())
	defer flat.Close()

	samples := gocv.NewMat()
	flat.ConvertTo(&samples, gocv.MatTypeCV32F)
	return samples
}

//kmeans clusters the rows of samples into k groups with k-means++ seeding and 10 attempts.
//It returns the label of every row and the k centers.
func kmeans(samples gocv.Mat, k int) ([]int, [][]float64) {
	labelsMat := gocv.NewMat()
	defer labelsMat.Close()
	centersMat := gocv.NewMat()
	defer centersMat.Close()

	criteria := gocv.NewTermCriteria(gocv.Count|gocv.EPS, 300, 1e-4)
	gocv.KMeans(samples, k, &labelsMat, criteria, 10, gocv.KMeansPPCenters, &centersMat)

	labels := make([]int, labelsMat.Rows())
	for i := range labels {
		labels[i] = int(labelsMat.GetIntAt(i, 0))
	}

	centers := make([][]float64, centersMat.Rows())
	for i := range centers {
		centers[i] = make([]float64, centersMat.Cols())
		for j := range centers[i] {
			centers[i][j] = float64(centersMat.GetFloatAt(i, j))
		}
	}

	return labels, centers
}
