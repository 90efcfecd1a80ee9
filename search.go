package nearby_search

import "github.com/rs/zerolog"

// DescendToLeaf walks down from root to a leaf by comparing q's
// coordinate on each internal node's axis against its splitting value
// (§4.3): coordinate <= value goes left, otherwise right. If the
// preferred child is absent it falls back to the other one (§9),
// logging a warning through logger since a well-formed build never
// exercises that fallback.
func DescendToLeaf(root *Node, q Point, logger zerolog.Logger) *Node {
	n := root
	for n != nil && !n.isLeaf {
		next := n.left
		other := n.right
		if n.axis.Coordinate(q) > n.value {
			next, other = n.right, n.left
		}
		if next != nil {
			n = next
		} else {
			logger.Warn().
				Str("axis", n.axis.String()).
				Float64("value", n.value).
				Msg("descending tree hit an internal node with a missing preferred child")
			n = other
		}
	}
	return n
}

// NearestResult is the outcome of a single-nearest-neighbor search
// (§4.4): the leaf found, its adjusted distance to the query point, and
// the number of tree nodes visited while refining the seed.
type NearestResult struct {
	Leaf    *Node
	Dist    float64
	Visited int
}

// Nearest returns the leaf minimizing adjusted distance to q (§4.4).
func Nearest(root *Node, q Point, metric Metric, logger zerolog.Logger) NearestResult {
	if root == nil {
		return NearestResult{}
	}
	seed := DescendToLeaf(root, q, logger)
	best := seed
	bestDist := metric.Distance(seed.point, q)
	visited := 0

	refineNearest(root, q, metric, &best, &bestDist, &visited)

	return NearestResult{Leaf: best, Dist: bestDist, Visited: visited}
}

// refineNearest implements the recursive prune-and-refine walk of §4.4
// step 2, updating best/bestDist in place.
func refineNearest(n *Node, q Point, metric Metric, best **Node, bestDist *float64, visited *int) {
	if n == nil {
		return
	}
	*visited++

	if n.isLeaf {
		d := metric.Distance(n.point, q)
		if d < *bestDist {
			*best = n
			*bestDist = d
		}
		return
	}

	coord := n.axis.Coordinate(q)
	near, far := n.left, n.right
	nearOnLeft := true
	if coord > n.value {
		near, far = n.right, n.left
		nearOnLeft = false
	}

	mustVisit := func(side *Node, onLeft bool) bool {
		if side == nil {
			return false
		}
		delta := *bestDist
		if onLeft {
			return coord-delta <= n.value
		}
		return coord+delta > n.value
	}

	if mustVisit(near, nearOnLeft) {
		refineNearest(near, q, metric, best, bestDist, visited)
	}
	// bestDist may have tightened from the near-side visit; re-evaluate
	// the far side's pruning test against the refined delta rather than
	// the one computed on entry.
	if mustVisit(far, !nearOnLeft) {
		refineNearest(far, q, metric, best, bestDist, visited)
	}
}
