// Package extractor converts authored PowerPoint slide decks into a flat,
// strictly-ordered presentation model for a web playback front end.
//
// The package reads the per-slide animation timing tree and the table of
// named custom shows from a .pptx container, partitions each slide's shapes
// into static and animated sets, flattens the timing tree into a numbered
// step sequence, and recursively embeds custom shows referenced by shape
// hyperlinks. Every entity in the resulting model is immutable and
// reconstructed per run.
package extractor

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SlideRef identifies a slide: a main-deck position (Show == 0) or a
// position inside a custom show.
type SlideRef struct {
	Show  int `json:"show,omitempty"`
	Index int `json:"index"`
}

// String renders the reference for logs and warnings.
func (r SlideRef) String() string {
	if r.Show == 0 {
		return fmt.Sprintf("slide %d", r.Index)
	}
	return fmt.Sprintf("show %d slide %d", r.Show, r.Index)
}

// SlideContent is the typed per-slide input handed over by the container
// reader: the full shape list in document order plus the animation timing
// forest (sibling nodes in document order).
type SlideContent struct {
	Shapes []*Shape
	Timing []*TimingNode
}

// Slide is the flattened output for one slide: the static shapes in their
// original document order and the numbered animation sequence.
type Slide struct {
	Ref    SlideRef         `json:"ref"`
	Static []*Shape         `json:"static"`
	Steps  []*AnimationStep `json:"animation"`
}

// Deck is the serializable presentation model.
type Deck struct {
	Source string   `json:"source,omitempty"`
	Title  string   `json:"title,omitempty"`
	Width  float64  `json:"width,omitempty"`
	Height float64  `json:"height,omitempty"`
	Slides []*Slide `json:"slides"`
}

// Builder runs the core transform: partition, flatten, resolve. A Builder
// holds only the custom-show table and a warning accumulator; it keeps no
// per-slide state, so slides may be built concurrently from separate
// Builders over the same show table.
type Builder struct {
	shows map[int]*CustomShow
	warn  *Warnings
}

// NewBuilder creates a Builder over the given custom-show table. A nil
// warnings accumulator is replaced with a silent one.
func NewBuilder(shows map[int]*CustomShow, warn *Warnings) *Builder {
	if warn == nil {
		warn = NewWarnings(zerolog.Nop())
	}
	return &Builder{shows: shows, warn: warn}
}

// Warnings returns the accumulator the builder records issues into.
func (b *Builder) Warnings() *Warnings {
	return b.warn
}

// BuildDeck builds the full output model from the main deck's slide
// contents in document order.
func (b *Builder) BuildDeck(contents []*SlideContent) *Deck {
	deck := &Deck{Slides: make([]*Slide, 0, len(contents))}
	for i, content := range contents {
		deck.Slides = append(deck.Slides, b.BuildSlide(SlideRef{Index: i + 1}, content))
	}
	return deck
}

// BuildSlide partitions, flattens and link-resolves one main-deck slide.
// The slide itself becomes the origin for any drill chain it starts.
func (b *Builder) BuildSlide(ref SlideRef, content *SlideContent) *Slide {
	return b.buildSlide(ref, content, ref, nil)
}

// buildSlide is the shared path for main-deck and custom-show slides.
// origin is the slide that started the current drill chain; path carries
// the show ids on the active resolution path.
func (b *Builder) buildSlide(ref SlideRef, content *SlideContent, origin SlideRef, path []int) *Slide {
	static, animated := b.partition(ref, content.Shapes, content.Timing)

	byName := make(map[string]*Shape, len(animated))
	for _, s := range animated {
		byName[s.Name] = s
	}

	steps := b.flattenTiming(ref, content.Timing, byName)
	for _, step := range steps {
		if step.Hyperlink != nil && step.Hyperlink.Kind == LinkCustomShow {
			step.Linked = b.resolveShow(step.Hyperlink.ShowID, ref, origin, path)
		}
	}

	return &Slide{Ref: ref, Static: static, Steps: steps}
}
