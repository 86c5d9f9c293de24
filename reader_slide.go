package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"net/url"
	"strconv"
	"strings"
)

// readSlideContent parses one slide part into the typed input the core
// transform consumes: the document-ordered shape list and the animation
// timing forest. Parsing is a single streaming token walk; the p:timing
// element follows p:cSld in the part, so the shape id table is complete
// by the time timing targets are resolved.
func (r *Reader) readSlideContent(zr *zip.Reader, path string) (*SlideContent, error) {
	data, err := readFileFromZip(zr, path)
	if err != nil {
		return nil, err
	}

	relsPath := strings.Replace(path, "slides/", "slides/_rels/", 1) + ".rels"
	rels, _ := r.readRelationships(zr, relsPath)

	return parseSlideXML(data, rels)
}

// timingFrame tracks one open effect node during the timing walk.
type timingFrame struct {
	node     *TimingNode
	depth    int
	delaySet bool
}

func parseSlideXML(data []byte, rels []xmlRel) (*SlideContent, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	content := &SlideContent{}
	nameByID := make(map[string]string)

	// Current shape under construction.
	var (
		inShape     bool
		isConnector bool
		shapeID     string
		shapeName   string
		box         Box
		rotation    float64
		flipH       bool
		flipV       bool
		prstGeom    string
		style       *Style
		link        *Hyperlink
		text        strings.Builder
	)
	var inTxBody, inRunText, inLn bool

	// Timing tree state.
	var (
		inTiming bool
		tDepth   int
		stack    []timingFrame
	)

	ensureStyle := func() *Style {
		if style == nil {
			style = &Style{}
		}
		return style
	}

	resetShape := func(connector bool) {
		inShape = true
		isConnector = connector
		shapeID = ""
		shapeName = ""
		box = Box{}
		rotation = 0
		flipH, flipV = false, false
		prstGeom = ""
		style = nil
		link = nil
		text.Reset()
	}

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			if inTiming {
				tDepth++
				switch t.Name.Local {
				case "cTn":
					if rel, ok := relationForNodeType(attrValue(t, "nodeType")); ok {
						node := &TimingNode{Relation: rel}
						if len(stack) > 0 {
							top := stack[len(stack)-1].node
							top.Children = append(top.Children, node)
						} else {
							content.Timing = append(content.Timing, node)
						}
						stack = append(stack, timingFrame{node: node, depth: tDepth})
					}
				case "cond":
					if len(stack) > 0 {
						top := &stack[len(stack)-1]
						if !top.delaySet && len(top.node.Children) == 0 {
							if d, err := strconv.Atoi(attrValue(t, "delay")); err == nil {
								top.node.DelayMs = d
								top.delaySet = true
							}
						}
					}
				case "spTgt":
					if len(stack) > 0 {
						top := stack[len(stack)-1].node
						if top.Shape == "" {
							spid := attrValue(t, "spid")
							if name, ok := nameByID[spid]; ok {
								top.Shape = name
							} else {
								top.Shape = "shape-" + spid
							}
						}
					}
				}
				continue
			}

			switch t.Name.Local {
			case "timing":
				inTiming = true
				tDepth = 0
				stack = stack[:0]
			case "sp":
				resetShape(false)
			case "cxnSp":
				resetShape(true)
			case "cNvPr":
				if inShape && shapeName == "" {
					shapeID = attrValue(t, "id")
					shapeName = attrValue(t, "name")
				}
			case "xfrm":
				if inShape {
					if v, err := strconv.ParseFloat(attrValue(t, "rot"), 64); err == nil {
						rotation = v / 60000 // OOXML angles are 60000ths of a degree
					}
					flipH = attrValue(t, "flipH") == "1"
					flipV = attrValue(t, "flipV") == "1"
				}
			case "off":
				if inShape {
					box.X = floatAttr(t, "x")
					box.Y = floatAttr(t, "y")
				}
			case "ext":
				if inShape {
					box.W = floatAttr(t, "cx")
					box.H = floatAttr(t, "cy")
				}
			case "prstGeom":
				if inShape {
					prstGeom = attrValue(t, "prst")
				}
			case "txBody":
				if inShape {
					inTxBody = true
				}
			case "t":
				if inTxBody {
					inRunText = true
				}
			case "ln":
				if inShape {
					inLn = true
					if w, err := strconv.ParseFloat(attrValue(t, "w"), 64); err == nil {
						ensureStyle().StrokeWidth = w
					}
				}
			case "srgbClr":
				if inShape && !inTxBody {
					argb := "FF" + strings.ToUpper(attrValue(t, "val"))
					if len(argb) == 10 {
						argb = argb[2:] // value already carried alpha
					}
					if inLn {
						ensureStyle().StrokeColor = argb
					} else {
						ensureStyle().FillColor = argb
					}
				}
			case "prstDash":
				if inShape && inLn {
					ensureStyle().Dash = attrValue(t, "val")
				}
			case "headEnd":
				if inShape {
					ensureStyle().HeadArrow = arrowType(attrValue(t, "type"))
				}
			case "tailEnd":
				if inShape {
					ensureStyle().TailArrow = arrowType(attrValue(t, "type"))
				}
			case "hlinkClick":
				if inShape && link == nil {
					link = hyperlinkFromElement(t, rels)
				}
			}

		case xml.CharData:
			if inRunText {
				text.Write(t)
			}

		case xml.EndElement:
			if inTiming {
				if t.Name.Local == "cTn" && len(stack) > 0 && stack[len(stack)-1].depth == tDepth {
					stack = stack[:len(stack)-1]
				}
				tDepth--
				if t.Name.Local == "timing" {
					inTiming = false
				}
				continue
			}

			switch t.Name.Local {
			case "txBody":
				inTxBody = false
			case "t":
				inRunText = false
			case "ln":
				inLn = false
			case "sp", "cxnSp":
				if inShape {
					body := strings.TrimSpace(text.String())
					shape := &Shape{
						Name:      shapeName,
						Kind:      mapShapeKind(prstGeom, isConnector, body != ""),
						Box:       box,
						Rotation:  rotation,
						FlipH:     flipH,
						FlipV:     flipV,
						Text:      body,
						Style:     style,
						Hyperlink: link,
					}
					content.Shapes = append(content.Shapes, shape)
					if shapeID != "" {
						nameByID[shapeID] = shapeName
					}
					inShape = false
				}
			}
		}
	}

	content.Timing = pruneUntargeted(content.Timing)
	return content, nil
}

// relationForNodeType maps a cTn nodeType to a timing relation. Container
// nodes (mainSeq, tmRoot, clickPar, ...) carry no effect of their own and
// are skipped; their effect children attach one level up.
func relationForNodeType(nodeType string) (Relation, bool) {
	switch nodeType {
	case "clickEffect":
		return NewClick, true
	case "withEffect":
		return WithPrevious, true
	case "afterEffect":
		return AfterPrevious, true
	}
	return NewClick, false
}

// pruneUntargeted removes effect nodes that never resolved a shape target,
// promoting their children so sibling order is preserved.
func pruneUntargeted(forest []*TimingNode) []*TimingNode {
	var out []*TimingNode
	for _, node := range forest {
		node.Children = pruneUntargeted(node.Children)
		if node.Shape == "" {
			out = append(out, node.Children...)
			continue
		}
		out = append(out, node)
	}
	return out
}

// mapShapeKind maps an OOXML preset geometry to the extractor's kind set.
func mapShapeKind(prst string, isConnector, hasText bool) ShapeKind {
	switch {
	case prst == "line":
		return ShapeLine
	case prst == "arc":
		return ShapeArc
	case strings.HasPrefix(prst, "straightConnector"),
		strings.HasPrefix(prst, "bentConnector"),
		strings.HasPrefix(prst, "curvedConnector"):
		return ShapeConnector
	case isConnector:
		return ShapeConnector
	case prst == "ellipse":
		return ShapeEllipse
	case prst == "rect", prst == "roundRect", prst == "":
		if hasText {
			return ShapeText
		}
		return ShapeRectangle
	default:
		return ShapeFreeform
	}
}

func arrowType(v string) ArrowType {
	switch v {
	case "triangle":
		return ArrowTriangle
	case "stealth":
		return ArrowStealth
	case "diamond":
		return ArrowDiamond
	case "oval":
		return ArrowOval
	case "arrow":
		return ArrowOpen
	}
	return ArrowNone
}

// hyperlinkFromElement builds a Hyperlink from an a:hlinkClick element.
// Custom-show jumps are encoded in the action attribute as
// "ppaction://customshow?id=N&return=true"; everything else resolves
// through the slide relationship table.
func hyperlinkFromElement(t xml.StartElement, rels []xmlRel) *Hyperlink {
	var relID, action, tooltip string
	for _, attr := range t.Attr {
		switch {
		case attr.Name.Space == nsRelationships && attr.Name.Local == "id":
			relID = attr.Value
		case attr.Name.Local == "action":
			action = attr.Value
		case attr.Name.Local == "tooltip":
			tooltip = attr.Value
		}
	}

	if action != "" {
		if u, err := url.Parse(action); err == nil && u.Scheme == "ppaction" && u.Host == "customshow" {
			id, err := strconv.Atoi(u.Query().Get("id"))
			if err == nil {
				link := NewShowHyperlink(id, u.Query().Get("return") == "true")
				link.Tooltip = tooltip
				return link
			}
		}
	}

	for _, rel := range rels {
		if rel.ID != relID {
			continue
		}
		if rel.TargetMode == "External" {
			link := NewHyperlink(rel.Target)
			link.Tooltip = tooltip
			return link
		}
		if n := slideNumberFromTarget(rel.Target); n > 0 {
			return &Hyperlink{Kind: LinkSlide, SlideNumber: n, Tooltip: tooltip}
		}
	}
	return nil
}

// slideNumberFromTarget parses the slide number out of a relationship
// target like "slide12.xml" or "../slides/slide12.xml".
func slideNumberFromTarget(target string) int {
	base := target
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml"))
	if err != nil {
		return 0
	}
	return n
}

func attrValue(t xml.StartElement, name string) string {
	for _, attr := range t.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func floatAttr(t xml.StartElement, name string) float64 {
	v, err := strconv.ParseFloat(attrValue(t, name), 64)
	if err != nil {
		return 0
	}
	return v
}
