package nearby_search

// candidate is one (leaf, distance) entry held by a resultSet.
type candidate struct {
	leaf *Node
	dist float64
}

// resultSet is the working set R of §4.5: up to k (point, distance)
// entries, plus the current min/max distance among them. Uniqueness is
// defined by leaf pointer identity, not by distance equality (§9), so
// two distinct points that land at the same adjusted distance are never
// spuriously rejected. Eviction replaces the current max entry in place
// and then rescans the whole set to find the new max, exactly as the
// reference algorithm requires, rather than maintaining a heap.
type resultSet struct {
	k     int
	items []candidate
	min   float64
	max   float64

	// radius is the externally-set pruning bound for the pass currently
	// in progress (§4.6's enlarged radius). It governs subtree
	// visitation while the set is under capacity; once the set reaches
	// k entries, pruning switches to the true running max instead, per
	// §4.5's insertion rules.
	radius float64
}

func newResultSet(k int) *resultSet {
	return &resultSet{k: k}
}

// Len returns the number of entries currently held.
func (r *resultSet) Len() int { return len(r.items) }

// Full reports whether the set holds k entries.
func (r *resultSet) Full() bool { return len(r.items) >= r.k }

// MaxDist returns the current maximum distance present, or zero if empty.
func (r *resultSet) MaxDist() float64 { return r.max }

// SetRadius installs the pruning bound to use for the next pass, per the
// radius-expanding aggregator's guard-then-multiply step (§4.6).
func (r *resultSet) SetRadius(radius float64) { r.radius = radius }

// pruningRadius returns the bound subtree-visitation decisions should use
// right now: the true running max once the set is full, otherwise the
// externally-set radius for the in-progress pass.
func (r *resultSet) pruningRadius() float64 {
	if r.Full() {
		return r.max
	}
	return r.radius
}

// contains reports whether leaf is already present, by pointer identity.
func (r *resultSet) contains(leaf *Node) bool {
	for _, it := range r.items {
		if it.leaf == leaf {
			return true
		}
	}
	return false
}

// Offer considers inserting leaf at distance dist into R, following the
// insertion rules of §4.5: unconditional insert while under capacity,
// otherwise insert-and-evict-max only if dist improves on the current
// max. Duplicate leaves are rejected.
func (r *resultSet) Offer(leaf *Node, dist float64) {
	if r.contains(leaf) {
		return
	}
	if len(r.items) < r.k {
		r.items = append(r.items, candidate{leaf: leaf, dist: dist})
		r.recompute()
		return
	}
	if dist < r.max {
		r.evictMaxAndInsert(candidate{leaf: leaf, dist: dist})
		r.recompute()
	}
}

// evictMaxAndInsert replaces the current maximum-distance entry with c.
func (r *resultSet) evictMaxAndInsert(c candidate) {
	maxIdx := 0
	for i, it := range r.items {
		if it.dist > r.items[maxIdx].dist {
			maxIdx = i
		}
	}
	r.items[maxIdx] = c
}

// recompute rescans the set to refresh min/max, as required after every
// insert or eviction: the new max may be any remaining entry.
func (r *resultSet) recompute() {
	if len(r.items) == 0 {
		r.min, r.max = 0, 0
		return
	}
	r.min = r.items[0].dist
	r.max = r.items[0].dist
	for _, it := range r.items[1:] {
		if it.dist < r.min {
			r.min = it.dist
		}
		if it.dist > r.max {
			r.max = it.dist
		}
	}
}

// sortAscending sorts the held entries in place by ascending distance,
// matching the per-pass sort step of §4.6's outer loop.
func (r *resultSet) sortAscending() {
	insertionSortCandidates(r.items)
}

// Sorted returns the entries in ascending-distance order.
func (r *resultSet) Sorted() []candidate {
	out := make([]candidate, len(r.items))
	copy(out, r.items)
	insertionSortCandidates(out)
	return out
}

// insertionSortCandidates sorts in place by ascending distance. Result
// sets are bounded by k, which is typically small, so an insertion sort
// avoids pulling in sort.Slice's reflection overhead for the common case.
func insertionSortCandidates(c []candidate) {
	for i := 1; i < len(c); i++ {
		v := c[i]
		j := i - 1
		for j >= 0 && c[j].dist > v.dist {
			c[j+1] = c[j]
			j--
		}
		c[j+1] = v
	}
}
