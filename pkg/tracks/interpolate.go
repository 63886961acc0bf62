package tracks

//Interpolate fills internal gaps (nil entries) of a box sequence by linear interpolation between
//the nearest valid boxes before and after the gap, each coordinate independently.
//Leading and trailing gaps have nothing to interpolate from and stay nil. The input is not modified.
func Interpolate(boxes []*BBox) []*BBox {
	filled := make([]*BBox, len(boxes))
	copy(filled, boxes)

	prev := -1
	for i, b := range boxes {
		if b == nil {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			for j := prev + 1; j < i; j++ {
				alpha := float64(j-prev) / float64(i-prev)
				filled[j] = lerp(*boxes[prev], *b, alpha)
			}
		}
		prev = i
	}

	return filled
}

func lerp(a, b BBox, alpha float64) *BBox {
	return &BBox{
		X1: (1-alpha)*a.X1 + alpha*b.X1,
		Y1: (1-alpha)*a.Y1 + alpha*b.Y1,
		X2: (1-alpha)*a.X2 + alpha*b.X2,
		Y2: (1-alpha)*a.Y2 + alpha*b.Y2,
	}
}

//InterpolateBall runs Interpolate over the ball sub-track of a whole video and returns a new
//sequence of frames. Filled-in records are marked Interpolated. This needs the complete
//sequence, so it runs before the per-frame stages.
func InterpolateBall(frames []*Frame) []*Frame {
	boxes := make([]*BBox, len(frames))
	for i, f := range frames {
		if r, ok := f.Get(BallID); ok && r.BBox.Valid() {
			b := r.BBox
			boxes[i] = &b
		}
	}

	filled := Interpolate(boxes)

	out := make([]*Frame, len(frames))
	for i, f := range frames {
		out[i] = NewFrame()
		f.Each(func(id int, r *Record) {
			cp := *r
			out[i].Set(id, &cp)
		})

		if _, ok := out[i].Get(BallID); ok || filled[i] == nil {
			continue
		}
		out[i].Set(BallID, &Record{BBox: *filled[i], Interpolated: true})
	}

	return out
}
