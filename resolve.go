package extractor

import "fmt"

// CustomShow is a named, separately ordered slide subsequence reachable
// only via hyperlink. The input table maps show id to show.
type CustomShow struct {
	ID     int
	Name   string
	Slides []*SlideContent
}

// LinkedContent is the resolved, embedded representation of a custom show
// as seen from one hyperlink site. Origin is the slide that initiated the
// outermost drill chain: the mandatory return target at every nesting
// depth. Slides is nil when the cycle guard truncated the reference.
//
// LinkedContent is constructed fresh per resolution site and never shared,
// even between two hyperlinks targeting the same show.
type LinkedContent struct {
	ShowID int      `json:"showId"`
	Name   string   `json:"name"`
	Origin SlideRef `json:"origin"`
	Slides []*Slide `json:"slides,omitempty"`
}

// resolveShow materializes the custom show referenced from site. Every
// slide of the target show is partitioned and flattened exactly like a
// main-deck slide; nested show links resolve recursively with the same
// origin, so an arbitrarily deep drill chain collapses to a single return
// target.
//
// path holds the show ids on the active resolution path and is copied per
// descent; a repeated id stops the descent and yields a truncated
// reference instead of recursing forever.
func (b *Builder) resolveShow(id int, site SlideRef, origin SlideRef, path []int) *LinkedContent {
	show, ok := b.shows[id]
	if !ok {
		b.warn.Add(site, WarnUnknownShow,
			fmt.Sprintf("hyperlink references unknown custom show id %d", id))
		return nil
	}

	for _, active := range path {
		if active == id {
			b.warn.Add(site, WarnShowCycle,
				fmt.Sprintf("custom show %d (%s) already on resolution path, truncated", id, show.Name))
			return &LinkedContent{ShowID: id, Name: show.Name, Origin: origin}
		}
	}

	next := make([]int, len(path), len(path)+1)
	copy(next, path)
	next = append(next, id)

	linked := &LinkedContent{
		ShowID: id,
		Name:   show.Name,
		Origin: origin,
		Slides: make([]*Slide, 0, len(show.Slides)),
	}
	for i, content := range show.Slides {
		ref := SlideRef{Show: id, Index: i + 1}
		linked.Slides = append(linked.Slides, b.buildSlide(ref, content, origin, next))
	}
	return linked
}
