package extractor

// ShapeKind classifies a shape for the playback front end.
type ShapeKind string

const (
	ShapeText      ShapeKind = "text"
	ShapeLine      ShapeKind = "line"
	ShapeConnector ShapeKind = "connector"
	ShapeArc       ShapeKind = "arc"
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeFreeform  ShapeKind = "freeform"
)

// IsSegment reports whether shapes of this kind are rendered as a directed
// segment and therefore need endpoint resolution.
func (k ShapeKind) IsSegment() bool {
	switch k {
	case ShapeLine, ShapeConnector, ShapeArc:
		return true
	}
	return false
}

// Point is a coordinate in slide space. Values are EMU unless the model is
// rescaled on output.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned bounding box in slide space.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
}

// Segment is a direction-correct endpoint pair resolved from a rotated
// bounding box. Arrow heads and dash patterns depend on the from→to
// direction, so endpoint order is significant.
//
// Curve is non-zero only for arcs: the perpendicular signed offset of the
// arc midpoint from the straight chord, positive to the right of the
// from→to direction.
type Segment struct {
	From  Point   `json:"from"`
	To    Point   `json:"to"`
	Curve float64 `json:"curve,omitempty"`
}

// ArrowType represents a line-end arrow decoration (OOXML headEnd/tailEnd).
type ArrowType string

const (
	ArrowNone     ArrowType = ""
	ArrowTriangle ArrowType = "triangle"
	ArrowStealth  ArrowType = "stealth"
	ArrowDiamond  ArrowType = "diamond"
	ArrowOval     ArrowType = "oval"
	ArrowOpen     ArrowType = "arrow"
)

// Style holds the visual attributes the playback front end consumes.
// Colors are 8-character ARGB hex strings, e.g. "FF000000" for black.
type Style struct {
	FillColor   string    `json:"fill,omitempty"`
	StrokeColor string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dash        string    `json:"dash,omitempty"`
	HeadArrow   ArrowType `json:"headArrow,omitempty"`
	TailArrow   ArrowType `json:"tailArrow,omitempty"`
}

// HyperlinkKind classifies a hyperlink target.
type HyperlinkKind string

const (
	LinkExternal   HyperlinkKind = "external"
	LinkSlide      HyperlinkKind = "slide"
	LinkCustomShow HyperlinkKind = "customShow"
)

// Hyperlink represents a hyperlink attached to a shape.
type Hyperlink struct {
	Kind        HyperlinkKind `json:"kind"`
	URL         string        `json:"url,omitempty"`
	SlideNumber int           `json:"slide,omitempty"`
	ShowID      int           `json:"showId,omitempty"`
	Return      bool          `json:"return,omitempty"`
	Tooltip     string        `json:"tooltip,omitempty"`
}

// NewHyperlink creates an external hyperlink.
func NewHyperlink(url string) *Hyperlink {
	return &Hyperlink{Kind: LinkExternal, URL: url}
}

// NewShowHyperlink creates a hyperlink into a custom show.
func NewShowHyperlink(showID int, returnToOrigin bool) *Hyperlink {
	return &Hyperlink{Kind: LinkCustomShow, ShowID: showID, Return: returnToOrigin}
}

// Shape is one drawing record of a slide, produced by the container reader.
// Shapes are never mutated after construction; stages that enrich a shape
// (endpoint resolution) return a copy.
type Shape struct {
	Name     string    `json:"name"`
	Kind     ShapeKind `json:"kind"`
	Box      Box       `json:"box"`
	Rotation float64   `json:"rotation,omitempty"` // degrees, clockwise
	FlipH    bool      `json:"flipH,omitempty"`
	FlipV    bool      `json:"flipV,omitempty"`

	// Endpoints is set during partitioning for line/connector/arc kinds.
	Endpoints *Segment `json:"endpoints,omitempty"`

	Text      string     `json:"text,omitempty"`
	Style     *Style     `json:"style,omitempty"`
	Hyperlink *Hyperlink `json:"hyperlink,omitempty"`
}
