package extractor

import (
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
)

// normalizeEndpoints resolves a segment-kind shape (line/connector/arc)
// into a direction-correct endpoint pair, in the same coordinate space as
// the bounding box. Rotation resolution happens before any external unit
// scaling. Non-segment shapes, and shapes whose endpoints the container
// already supplied, are returned unchanged.
//
// A degenerate geometry falls back to the bounding-box corners with a
// warning; it never aborts the slide.
func (b *Builder) normalizeEndpoints(ref SlideRef, s *Shape) *Shape {
	if !s.Kind.IsSegment() || s.Endpoints != nil {
		return s
	}

	seg, ok := resolveSegment(s)
	if !ok {
		b.warn.Add(ref, WarnDegenerateGeometry,
			fmt.Sprintf("shape %q: unresolvable %s geometry, using bounding box", s.Name, s.Kind))
		seg = Segment{
			From: Point{X: s.Box.X, Y: s.Box.Y},
			To:   Point{X: s.Box.X + s.Box.W, Y: s.Box.Y + s.Box.H},
		}
	}

	out := *s
	out.Endpoints = &seg
	return &out
}

// resolveSegment derives the endpoint pair of a rotated segment box.
//
// The canonical 0° segment runs from box-top to box-bottom through the
// horizontal center. At the cardinal rotations the segment is re-derived
// from the box with its dimensions reinterpreted: 90° runs left to right,
// 180° bottom to top, 270° right to left. Any other angle rotates the
// canonical segment around the box center. Horizontal/vertical flips
// mirror the endpoints inside the box and reverse the arc orientation.
func resolveSegment(s *Shape) (Segment, bool) {
	box := s.Box
	// Every derivation below spans box.H, so a zero-height box can only
	// produce a zero-length segment.
	if box.H == 0 {
		return Segment{}, false
	}

	var from, to geom.XY
	switch normalizeDegrees(s.Rotation) {
	case 0:
		from = geom.XY{X: box.X + box.W/2, Y: box.Y}
		to = geom.XY{X: box.X + box.W/2, Y: box.Y + box.H}
	case 90:
		from = geom.XY{X: box.X, Y: box.Y + box.H/2}
		to = geom.XY{X: box.X + box.H, Y: box.Y + box.H/2}
	case 180:
		from = geom.XY{X: box.X + box.W/2, Y: box.Y + box.H}
		to = geom.XY{X: box.X + box.W/2, Y: box.Y}
	case 270:
		from = geom.XY{X: box.X + box.H, Y: box.Y + box.H/2}
		to = geom.XY{X: box.X, Y: box.Y + box.H/2}
	default:
		center := geom.XY{X: box.X + box.W/2, Y: box.Y + box.H/2}
		from = rotateAround(geom.XY{X: box.X + box.W/2, Y: box.Y}, center, s.Rotation)
		to = rotateAround(geom.XY{X: box.X + box.W/2, Y: box.Y + box.H}, center, s.Rotation)
	}

	center := box.Center()
	if s.FlipH {
		from.X = 2*center.X - from.X
		to.X = 2*center.X - to.X
	}
	if s.FlipV {
		from.Y = 2*center.Y - from.Y
		to.Y = 2*center.Y - to.Y
	}

	seg := Segment{
		From: Point{X: from.X, Y: from.Y},
		To:   Point{X: to.X, Y: to.Y},
	}
	if s.Kind == ShapeArc {
		seg.Curve = arcCurve(s)
	}
	return seg, true
}

// arcCurve returns the signed perpendicular offset of the arc midpoint
// from the chord between its endpoints: half the box's minor dimension,
// positive to the right of the from→to direction. A single mirror reverses
// the orientation; two mirrors cancel.
func arcCurve(s *Shape) float64 {
	curve := math.Min(math.Abs(s.Box.W), math.Abs(s.Box.H)) / 2
	if s.FlipH != s.FlipV {
		curve = -curve
	}
	return curve
}

// rotateAround rotates p around center by deg degrees clockwise in slide
// coordinates (y grows downward).
func rotateAround(p, center geom.XY, deg float64) geom.XY {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(center)
	return center.Add(geom.XY{
		X: d.X*cos - d.Y*sin,
		Y: d.X*sin + d.Y*cos,
	})
}

// normalizeDegrees maps an angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
