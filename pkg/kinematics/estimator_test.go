package kinematics

import (
	"testing"

	"github.com/chenBenjamin97/football-analyzer/pkg/tracks"
	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameWith(id int, x, y float64) *tracks.Frame {
	f := tracks.NewFrame()
	p := r2.Point{X: x, Y: y}
	f.Set(id, &tracks.Record{Position: &p, PositionAdjusted: &p})
	return f
}

func TestStep(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	meters, kmh := e.Step(10)
	assert.InDelta(t, 0.5, meters, 1e-9)
	assert.InDelta(t, 43.2, kmh, 1e-9)
}

func TestUpdateConstantMotion(t *testing.T) {
	e := NewEstimator(DefaultConfig())

	f0 := frameWith(1, 0, 0)
	e.Update(f0)
	r, _ := f0.Get(1)
	require.NotNil(t, r.Distance)
	assert.Equal(t, 0.0, *r.Distance, "first observation stores zero distance")
	assert.Nil(t, r.Speed)

	f1 := frameWith(1, 10, 0)
	e.Update(f1)
	r, _ = f1.Get(1)
	assert.InDelta(t, 0.5, *r.Distance, 1e-9)
	assert.InDelta(t, 43.2, *r.Speed, 1e-9)

	f2 := frameWith(1, 20, 0)
	e.Update(f2)
	r, _ = f2.Get(1)
	assert.InDelta(t, 1.0, *r.Distance, 1e-9)
	assert.InDelta(t, (43.2+43.2)/2, *r.Speed, 1e-9)
}

func TestUpdateSmoothsSpeed(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	e.Update(frameWith(1, 0, 0))
	e.Update(frameWith(1, 10, 0))

	f := frameWith(1, 30, 0)
	e.Update(f)
	r, _ := f.Get(1)
	assert.InDelta(t, (43.2+86.4)/2, *r.Speed, 1e-9)
	assert.InDelta(t, 1.5, *r.Distance, 1e-9)

	d, ok := e.Distance(1)
	require.True(t, ok)
	assert.InDelta(t, 1.5, d, 1e-9)
}

func TestUpdatePrefersAdjustedPosition(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	e.Update(frameWith(2, 0, 0))

	f := tracks.NewFrame()
	raw := r2.Point{X: 100, Y: 0}
	adjusted := r2.Point{X: 0, Y: 20}
	f.Set(2, &tracks.Record{Position: &raw, PositionAdjusted: &adjusted})
	e.Update(f)

	r, _ := f.Get(2)
	assert.InDelta(t, 1.0, *r.Distance, 1e-9)
}

func TestUpdateFallsBackToRawPosition(t *testing.T) {
	e := NewEstimator(DefaultConfig())

	f := tracks.NewFrame()
	raw := r2.Point{X: 3, Y: 4}
	f.Set(1, &tracks.Record{Position: &raw})
	e.Update(f)

	f = tracks.NewFrame()
	raw2 := r2.Point{X: 6, Y: 8}
	f.Set(1, &tracks.Record{Position: &raw2})
	e.Update(f)

	r, _ := f.Get(1)
	assert.InDelta(t, 0.25, *r.Distance, 1e-9)
}

func TestUpdateSkipsRecordsWithoutPosition(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	f := tracks.NewFrame()
	f.Set(1, &tracks.Record{})
	e.Update(f)

	r, _ := f.Get(1)
	assert.Nil(t, r.Distance)
	_, ok := e.Distance(1)
	assert.False(t, ok)
}

func TestTracksAreIndependent(t *testing.T) {
	e := NewEstimator(Config{FrameRate: 25, MetersPerPixel: 0.1})
	f := tracks.NewFrame()
	a, b := r2.Point{X: 0, Y: 0}, r2.Point{X: 50, Y: 50}
	f.Set(1, &tracks.Record{Position: &a})
	f.Set(2, &tracks.Record{Position: &b})
	e.Update(f)

	f = tracks.NewFrame()
	a2, b2 := r2.Point{X: 10, Y: 0}, r2.Point{X: 50, Y: 50}
	f.Set(1, &tracks.Record{Position: &a2})
	f.Set(2, &tracks.Record{Position: &b2})
	e.Update(f)

	assert.Equal(t, map[int]float64{1: 1.0, 2: 0}, e.Distances())
	r, _ := f.Get(2)
	assert.Equal(t, 0.0, *r.Speed)
}

func TestZeroFrameRateUsesDefault(t *testing.T) {
	e := NewEstimator(Config{MetersPerPixel: 0.05})
	_, kmh := e.Step(10)
	assert.InDelta(t, 43.2, kmh, 1e-9)
}
