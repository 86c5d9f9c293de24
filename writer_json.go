package extractor

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Unit selects the coordinate unit of a serialized model. The core builds
// everything in EMU; rescaling happens only on output.
type Unit string

const (
	UnitEMU   Unit = "emu"
	UnitPoint Unit = "pt"
	UnitPixel Unit = "px"
)

// factor returns the multiplier from EMU into the unit.
func (u Unit) factor() (float64, error) {
	switch u {
	case UnitEMU, "":
		return 1, nil
	case UnitPoint:
		return EMUToPoint(1), nil
	case UnitPixel:
		return EMUToPixel(1), nil
	}
	return 0, fmt.Errorf("unsupported unit %q", u)
}

// WriteOptions controls JSON serialization of a Deck.
type WriteOptions struct {
	Units  Unit
	Indent bool
}

// WriteJSON serializes the deck to w. A non-EMU unit serializes a rescaled
// deep copy; the receiver is never mutated.
func (d *Deck) WriteJSON(w io.Writer, opts *WriteOptions) error {
	if opts == nil {
		opts = &WriteOptions{Units: UnitEMU, Indent: true}
	}

	factor, err := opts.Units.factor()
	if err != nil {
		return err
	}
	out := d
	if factor != 1 {
		out = d.scaled(factor)
	}

	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}

// SaveJSON writes the deck to a file.
func (d *Deck) SaveJSON(path string, opts *WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := d.WriteJSON(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// scaled returns a deep copy of the deck with all coordinates multiplied
// by f. Nested linked content is scaled recursively.
func (d *Deck) scaled(f float64) *Deck {
	out := &Deck{
		Source: d.Source,
		Title:  d.Title,
		Width:  d.Width * f,
		Height: d.Height * f,
		Slides: make([]*Slide, 0, len(d.Slides)),
	}
	for _, slide := range d.Slides {
		out.Slides = append(out.Slides, scaleSlide(slide, f))
	}
	return out
}

func scaleSlide(s *Slide, f float64) *Slide {
	out := &Slide{Ref: s.Ref}
	for _, shape := range s.Static {
		out.Static = append(out.Static, scaleShape(shape, f))
	}
	for _, step := range s.Steps {
		out.Steps = append(out.Steps, scaleStep(step, f))
	}
	return out
}

func scaleStep(st *AnimationStep, f float64) *AnimationStep {
	out := *st
	out.Shape = scaleShape(st.Shape, f)
	if st.Linked != nil {
		out.Linked = scaleLinked(st.Linked, f)
	}
	return &out
}

func scaleLinked(lc *LinkedContent, f float64) *LinkedContent {
	out := &LinkedContent{ShowID: lc.ShowID, Name: lc.Name, Origin: lc.Origin}
	for _, slide := range lc.Slides {
		out.Slides = append(out.Slides, scaleSlide(slide, f))
	}
	return out
}

func scaleShape(s *Shape, f float64) *Shape {
	out := *s
	out.Box = Box{X: s.Box.X * f, Y: s.Box.Y * f, W: s.Box.W * f, H: s.Box.H * f}
	if s.Endpoints != nil {
		out.Endpoints = &Segment{
			From:  Point{X: s.Endpoints.From.X * f, Y: s.Endpoints.From.Y * f},
			To:    Point{X: s.Endpoints.To.X * f, Y: s.Endpoints.To.Y * f},
			Curve: s.Endpoints.Curve * f,
		}
	}
	if s.Style != nil {
		style := *s.Style
		style.StrokeWidth = s.Style.StrokeWidth * f
		out.Style = &style
	}
	return &out
}
