package extractor

import "fmt"

// Relation describes how a timing node relates to its immediate predecessor
// in the flattened, pre-order sequence.
type Relation int

const (
	// NewClick starts a new user-advance step.
	NewClick Relation = iota
	// WithPrevious shares the step of the most recent click-started step.
	WithPrevious
	// AfterPrevious follows the previous node's completion after a delay.
	AfterPrevious
)

// TimingNode is one authored animation effect: the shape it reveals
// (referenced by name), its relation to the preceding effect, and nested
// child effects for grouped/simultaneous reveals. The tree is plain
// parent-owns-children; no cycles are possible in authored timing data.
type TimingNode struct {
	Shape    string
	Relation Relation
	DelayMs  int
	Children []*TimingNode
}

// Timing is the step classification consumed by the playback model.
type Timing string

const (
	TimingClick Timing = "click"
	TimingWith  Timing = "with"
	TimingAfter Timing = "after"
)

// timing maps an authored relation to its output classification.
func (r Relation) timing() Timing {
	switch r {
	case WithPrevious:
		return TimingWith
	case AfterPrevious:
		return TimingAfter
	default:
		return TimingClick
	}
}

// AnimationStep is one flattened animation unit. Sequence is 1-based in
// document order. DelayMs is present only for "after" steps; a zero delay
// is still serialized to distinguish sequential-but-immediate from "with".
type AnimationStep struct {
	Sequence  int            `json:"seq"`
	Timing    Timing         `json:"timing"`
	DelayMs   *int           `json:"delayMs,omitempty"`
	Shape     *Shape         `json:"shape"`
	Hyperlink *Hyperlink     `json:"hyperlink,omitempty"`
	Linked    *LinkedContent `json:"linkedContent,omitempty"`
}

// flattenTiming walks the timing forest in pre-order document order and
// emits numbered steps. A node's own step precedes all of its children's.
//
// Nodes referencing a shape that is not on the slide are dropped (with a
// warning); their children are still visited, and sequence numbers stay
// contiguous over the emitted steps. The first emitted step is forced to
// "click": a slide's first reveal cannot depend on a predecessor that does
// not exist.
func (b *Builder) flattenTiming(ref SlideRef, forest []*TimingNode, byName map[string]*Shape) []*AnimationStep {
	var steps []*AnimationStep

	var walk func(n *TimingNode)
	walk = func(n *TimingNode) {
		if shape, ok := byName[n.Shape]; ok {
			step := &AnimationStep{
				Sequence:  len(steps) + 1,
				Timing:    n.Relation.timing(),
				Shape:     shape,
				Hyperlink: shape.Hyperlink,
			}
			if n.Relation == AfterPrevious {
				delay := n.DelayMs
				if delay < 0 {
					delay = 0
				}
				step.DelayMs = &delay
			}
			if len(steps) == 0 && step.Timing != TimingClick {
				step.Timing = TimingClick
				step.DelayMs = nil
			}
			steps = append(steps, step)
		} else {
			b.warn.Add(ref, WarnMissingShape,
				fmt.Sprintf("timing node references unknown shape %q, dropped", n.Shape))
		}
		for _, child := range n.Children {
			walk(child)
		}
	}

	for _, node := range forest {
		walk(node)
	}
	return steps
}
