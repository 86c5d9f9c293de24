package extractor

// animatedNames collects the shape names referenced anywhere in the timing
// forest, in pre-order document order, first occurrence wins.
func animatedNames(forest []*TimingNode) []string {
	seen := make(map[string]bool)
	var names []string

	var walk func(n *TimingNode)
	walk = func(n *TimingNode) {
		if n.Shape != "" && !seen[n.Shape] {
			seen[n.Shape] = true
			names = append(names, n.Shape)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, node := range forest {
		walk(node)
	}
	return names
}

// partition splits a slide's shapes into the static set (document order
// preserved) and the animated set (timing-tree order). A shape is animated
// iff some timing node references it; the two sets are disjoint and their
// union is the full shape list. Endpoint normalization runs here, per
// shape, independent of timing: static shapes bypass step numbering but
// still need direction-correct segments.
func (b *Builder) partition(ref SlideRef, shapes []*Shape, forest []*TimingNode) (static, animated []*Shape) {
	byName := make(map[string]*Shape, len(shapes))
	for _, s := range shapes {
		byName[s.Name] = s
	}

	inTree := make(map[string]bool)
	for _, name := range animatedNames(forest) {
		if shape, ok := byName[name]; ok {
			inTree[name] = true
			animated = append(animated, b.normalizeEndpoints(ref, shape))
		}
	}

	for _, s := range shapes {
		if !inTree[s.Name] {
			static = append(static, b.normalizeEndpoints(ref, s))
		}
	}
	return static, animated
}
