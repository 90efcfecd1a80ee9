package nearby_search

import "github.com/rs/zerolog"

// singlePass performs one pruning traversal of §4.5, offering every
// leaf it reaches to r. It uses r's active pruning radius in place of a
// single δ: while r is under capacity the radius is the externally-set
// value for this pass; once r holds k entries, pruning tightens to r's
// true running max.
func singlePass(n *Node, q Point, metric Metric, r *resultSet) {
	if n == nil {
		return
	}
	if n.isLeaf {
		r.Offer(n, metric.Distance(n.point, q))
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
		delta := r.pruningRadius()
		if onLeft {
			return coord-delta <= n.value
		}
		return coord+delta > n.value
	}

	if mustVisit(near, nearOnLeft) {
		singlePass(near, q, metric, r)
	}
	if mustVisit(far, !nearOnLeft) {
		singlePass(far, q, metric, r)
	}
}

// Candidate is a point paired with its adjusted distance to a query
// point, returned by the radius-expanding aggregators.
type Candidate struct {
	Point Point
	Dist  float64
}

func toCandidate(c candidate) Candidate {
	return Candidate{Point: c.leaf.point, Dist: c.dist}
}

// KNearest is the radius-expanding k-aggregator of §4.6. It returns
// exactly min(k, available) nearest entries to q in root, where
// available is the number of leaves the caller knows root to contain.
func KNearest(root *Node, q Point, k int, available int, metric Metric, logger zerolog.Logger) []Candidate {
	if root == nil || available <= 0 || k <= 0 {
		return nil
	}
	if k > available {
		k = available
	}

	if k == 1 {
		nr := Nearest(root, q, metric, logger)
		if nr.Leaf == nil {
			return nil
		}
		return []Candidate{{Point: nr.Leaf.point, Dist: nr.Dist}}
	}

	r := newResultSet(k)
	seed := DescendToLeaf(root, q, logger)
	r.Offer(seed, metric.Distance(seed.point, q))

	multiplier := metric.RadiusGrowthStart
	pass := 0
	for r.Len() < k {
		pass++
		base := r.MaxDist()
		if base < 1 {
			base = 1
		}
		r.SetRadius(base * multiplier)
		singlePass(root, q, metric, r)
		multiplier += metric.RadiusGrowthStep
		r.sortAscending()
	}
	// The pass that filled r may have skipped subtrees under a radius
	// smaller than r's final max. One more pass, now pruned by the running
	// max since r is full, picks up any closer leaf those skips missed.
	singlePass(root, q, metric, r)
	logger.Debug().Int("passes", pass).Int("k", k).Msg("radius-expanding aggregator converged")

	sorted := r.Sorted()
	out := make([]Candidate, len(sorted))
	for i, c := range sorted {
		out[i] = toCandidate(c)
	}
	return out
}
