package camera

import (
	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/golang/geo/r2"
)

//AdjustPositions sets PositionAdjusted = Position - movement on every record of the given frames.
//Records without a Position (invalid bbox) are skipped.
//
//NOTE: movement is this frame's displacement only, not the displacement accumulated since the
//first frame. On a camera that keeps panning this undercorrects drift. Every known producer of
//these tracks behaves this way, so it is kept until the consumers agree on a cumulative reference.
func AdjustPositions(movement r2.Point, frames ...*tracks.Frame) {
	for _, f := range frames {
		f.Each(func(id int, r *tracks.Record) {
			if r.Position == nil {
				return
			}
			adjusted := r.Position.Sub(movement)
			r.PositionAdjusted = &adjusted
		})
	}
}
