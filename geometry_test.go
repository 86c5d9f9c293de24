package extractor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSegment_CardinalRotations(t *testing.T) {
	box := Box{X: 0, Y: 0, W: 10, H: 100}
	tests := []struct {
		name     string
		rotation float64
		from, to Point
	}{
		{"0 degrees", 0, Point{X: 5, Y: 0}, Point{X: 5, Y: 100}},
		{"90 degrees", 90, Point{X: 0, Y: 50}, Point{X: 100, Y: 50}},
		{"180 degrees", 180, Point{X: 5, Y: 100}, Point{X: 5, Y: 0}},
		{"270 degrees", 270, Point{X: 100, Y: 50}, Point{X: 0, Y: 50}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Shape{Name: "l", Kind: ShapeLine, Box: box, Rotation: tc.rotation}
			seg, ok := resolveSegment(s)
			require.True(t, ok)
			assert.Equal(t, tc.from, seg.From)
			assert.Equal(t, tc.to, seg.To)
		})
	}
}

func TestResolveSegment_NegativeAngleNormalized(t *testing.T) {
	s := &Shape{Name: "l", Kind: ShapeLine, Box: Box{W: 10, H: 100}, Rotation: -270}
	seg, ok := resolveSegment(s)
	require.True(t, ok)
	assert.Equal(t, Point{X: 0, Y: 50}, seg.From)
	assert.Equal(t, Point{X: 100, Y: 50}, seg.To)
}

func TestResolveSegment_VerticalFlipReversesDirection(t *testing.T) {
	s := &Shape{Name: "l", Kind: ShapeLine, Box: Box{W: 10, H: 100}, FlipV: true}
	seg, ok := resolveSegment(s)
	require.True(t, ok)
	assert.Equal(t, Point{X: 5, Y: 100}, seg.From)
	assert.Equal(t, Point{X: 5, Y: 0}, seg.To)
}

func TestResolveSegment_HorizontalFlipMirrorsAcrossCenter(t *testing.T) {
	s := &Shape{Name: "l", Kind: ShapeLine, Box: Box{W: 10, H: 100}, Rotation: 90, FlipH: true}
	seg, ok := resolveSegment(s)
	require.True(t, ok)
	assert.Equal(t, Point{X: 10, Y: 50}, seg.From)
	assert.Equal(t, Point{X: -90, Y: 50}, seg.To)
}

func TestResolveSegment_ObliqueAnglePreservesLengthAndCenter(t *testing.T) {
	box := Box{X: 0, Y: 0, W: 10, H: 100}
	s := &Shape{Name: "l", Kind: ShapeLine, Box: box, Rotation: 45}
	seg, ok := resolveSegment(s)
	require.True(t, ok)

	length := math.Hypot(seg.To.X-seg.From.X, seg.To.Y-seg.From.Y)
	assert.InDelta(t, 100, length, 1e-9)

	center := box.Center()
	assert.InDelta(t, center.X, (seg.From.X+seg.To.X)/2, 1e-9)
	assert.InDelta(t, center.Y, (seg.From.Y+seg.To.Y)/2, 1e-9)
}

func TestArcCurve(t *testing.T) {
	tests := []struct {
		name         string
		flipH, flipV bool
		want         float64
	}{
		{"no flip", false, false, 5},
		{"horizontal flip", true, false, -5},
		{"vertical flip", false, true, -5},
		{"both flips cancel", true, true, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &Shape{Name: "arc", Kind: ShapeArc, Box: Box{W: 10, H: 100}, FlipH: tc.flipH, FlipV: tc.flipV}
			seg, ok := resolveSegment(s)
			require.True(t, ok)
			assert.Equal(t, tc.want, seg.Curve)
		})
	}
}

func TestNormalizeEndpoints_DegenerateBoxFallsBack(t *testing.T) {
	b := newTestBuilder(nil)
	s := &Shape{Name: "dot", Kind: ShapeLine, Box: Box{X: 40, Y: 60}}

	out := b.normalizeEndpoints(SlideRef{Index: 3}, s)
	require.NotNil(t, out.Endpoints)
	assert.Equal(t, Point{X: 40, Y: 60}, out.Endpoints.From)
	assert.Equal(t, Point{X: 40, Y: 60}, out.Endpoints.To)

	require.Equal(t, 1, b.Warnings().Len())
	w := b.Warnings().All()[0]
	assert.Equal(t, WarnDegenerateGeometry, w.Code)
	assert.Equal(t, SlideRef{Index: 3}, w.Slide)

	// Input shape is never mutated.
	assert.Nil(t, s.Endpoints)
}

func TestNormalizeEndpoints_ZeroHeightBoxFallsBack(t *testing.T) {
	// A horizontal line encoded as a zero-height box has no derivable
	// direction; it must take the bounding-box fallback, not collapse to a
	// silent zero-length point.
	b := newTestBuilder(nil)
	s := &Shape{Name: "rule", Kind: ShapeLine, Box: Box{Y: 500, W: 9144}}

	out := b.normalizeEndpoints(SlideRef{Index: 1}, s)
	require.NotNil(t, out.Endpoints)
	assert.Equal(t, Point{X: 0, Y: 500}, out.Endpoints.From)
	assert.Equal(t, Point{X: 9144, Y: 500}, out.Endpoints.To)
	assert.NotEqual(t, out.Endpoints.From, out.Endpoints.To)

	require.Equal(t, 1, b.Warnings().Len())
	assert.Equal(t, WarnDegenerateGeometry, b.Warnings().All()[0].Code)
}

func TestNormalizeEndpoints_NonSegmentUntouched(t *testing.T) {
	b := newTestBuilder(nil)
	s := &Shape{Name: "title", Kind: ShapeText, Box: Box{W: 100, H: 50}}
	out := b.normalizeEndpoints(SlideRef{Index: 1}, s)
	assert.Same(t, s, out)
	assert.Nil(t, out.Endpoints)
	assert.Zero(t, b.Warnings().Len())
}

func TestNormalizeEndpoints_PresetEndpointsKept(t *testing.T) {
	b := newTestBuilder(nil)
	preset := &Segment{From: Point{X: 1, Y: 2}, To: Point{X: 3, Y: 4}}
	s := &Shape{Name: "conn", Kind: ShapeConnector, Box: Box{W: 10, H: 10}, Endpoints: preset}
	out := b.normalizeEndpoints(SlideRef{Index: 1}, s)
	assert.Same(t, preset, out.Endpoints)
}
