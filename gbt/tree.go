package gbt

import "sort"

// treeBuilder grows one regression tree greedily from gradient statistics.
type treeBuilder struct {
	rows   [][]float64
	grad   []float64
	hess   []float64
	cols   []bool
	lambda float64
	gamma  float64
	minH   float64
	depth  int
}

func (b *treeBuilder) build(rowIdx []int) Tree {
	// Logistic hessians start at 0.25, so a fixed min-child-weight can rule
	// out every split on a small sample. Cap it at a quarter of the root's
	// total hessian.
	var rootH float64
	for _, i := range rowIdx {
		rootH += b.hess[i]
	}
	if limit := rootH / 4; limit < b.minH {
		b.minH = limit
	}

	tree := Tree{}
	b.grow(&tree, rowIdx, 0)
	return tree
}

// grow appends the subtree for the given sample set and returns its root
// node index.
func (b *treeBuilder) grow(tree *Tree, rowIdx []int, depth int) int {
	var sumG, sumH float64
	for _, i := range rowIdx {
		sumG += b.grad[i]
		sumH += b.hess[i]
	}

	nodeIdx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{})

	if depth >= b.depth || len(rowIdx) < 2 {
		tree.Nodes[nodeIdx] = leafNode(sumG, sumH, b.lambda)
		return nodeIdx
	}

	split, ok := b.bestSplit(rowIdx, sumG, sumH)
	if !ok {
		tree.Nodes[nodeIdx] = leafNode(sumG, sumH, b.lambda)
		return nodeIdx
	}

	var left, right []int
	for _, i := range rowIdx {
		if b.rows[i][split.feature] < split.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	leftIdx := b.grow(tree, left, depth+1)
	rightIdx := b.grow(tree, right, depth+1)
	tree.Nodes[nodeIdx] = Node{
		Feature:   split.feature,
		Threshold: split.threshold,
		Left:      leftIdx,
		Right:     rightIdx,
		Gain:      split.gain,
	}
	return nodeIdx
}

type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
}

// bestSplit scans every allowed feature for the split with the highest gain.
// Only splits where both children carry enough hessian weight and the gain
// clears gamma are considered.
func (b *treeBuilder) bestSplit(rowIdx []int, sumG, sumH float64) (splitCandidate, bool) {
	parentScore := (sumG * sumG) / (sumH + b.lambda)

	best := splitCandidate{}
	found := false

	type entry struct {
		value float64
		g, h  float64
	}
	entries := make([]entry, 0, len(rowIdx))

	for feature := range b.cols {
		if !b.cols[feature] {
			continue
		}

		entries = entries[:0]
		for _, i := range rowIdx {
			entries = append(entries, entry{b.rows[i][feature], b.grad[i], b.hess[i]})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].value < entries[j].value })

		var leftG, leftH float64
		for k := 0; k < len(entries)-1; k++ {
			leftG += entries[k].g
			leftH += entries[k].h

			// No split between identical values.
			if entries[k].value == entries[k+1].value {
				continue
			}

			rightG := sumG - leftG
			rightH := sumH - leftH
			if leftH < b.minH || rightH < b.minH {
				continue
			}

			gain := 0.5*((leftG*leftG)/(leftH+b.lambda)+
				(rightG*rightG)/(rightH+b.lambda)-parentScore) - b.gamma
			if gain <= 0 {
				continue
			}

			if !found || gain > best.gain {
				best = splitCandidate{
					feature:   feature,
					threshold: (entries[k].value + entries[k+1].value) / 2,
					gain:      gain,
				}
				found = true
			}
		}
	}

	return best, found
}

func leafNode(sumG, sumH, lambda float64) Node {
	return Node{
		Leaf:   true,
		Weight: -sumG / (sumH + lambda),
	}
}
