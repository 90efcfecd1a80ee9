package nearby_search

import "sort"

// Node is a node of a built 2-d tree. It is either a leaf, carrying
// exactly one point, or an internal split, carrying a splitting axis and
// value plus two child links. Nodes are allocated once during Build and
// are never mutated afterward (§3).
type Node struct {
	// Leaf fields.
	isLeaf bool
	point  Point

	// Internal fields.
	axis  Axis
	value float64
	left  *Node
	right *Node
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool { return n.isLeaf }

// Point returns the point carried by a leaf node. It panics if n is not
// a leaf; callers should check IsLeaf first.
func (n *Node) Point() Point {
	if !n.isLeaf {
		panic("nearby_search: Point called on internal node")
	}
	return n.point
}

// Axis returns the splitting axis of an internal node.
func (n *Node) Axis() Axis { return n.axis }

// Value returns the splitting value of an internal node.
func (n *Node) Value() float64 { return n.value }

// Left and Right return an internal node's children. Either may be nil
// only in the transient case described in §9; a well-formed build never
// produces such a node.
func (n *Node) Left() *Node  { return n.left }
func (n *Node) Right() *Node { return n.right }

// Build constructs a balanced 2-d tree over every point in ps, using the
// bulk top-down algorithm of §4.2: pre-sorted per-axis index lists,
// recursively split at the axis of maximum spread.
func Build(ps PointStore) *Node {
	n := ps.Len()
	if n == 0 {
		return nil
	}

	sublists := make([][]int, 2)
	for axis := range sublists {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		a := Axis(axis)
		sort.Slice(idx, func(i, j int) bool {
			return a.Coordinate(ps.At(idx[i])) < a.Coordinate(ps.At(idx[j]))
		})
		sublists[axis] = idx
	}

	return buildRecursive(ps, sublists)
}

// buildRecursive splits a set of same-length, same-subset sublists
// (§4.2 step 2) and returns the root of the (sub)tree they describe.
func buildRecursive(ps PointStore, sublists [][]int) *Node {
	s := len(sublists[AxisX])
	switch s {
	case 0:
		return nil
	case 1:
		return &Node{isLeaf: true, point: ps.At(sublists[AxisX][0])}
	}

	axis := chooseSplitAxis(ps, sublists)
	chosen := sublists[axis]

	m := s / 2
	value := (axis.Coordinate(ps.At(chosen[m-1])) + axis.Coordinate(ps.At(chosen[m]))) / 2

	left := make([][]int, 2)
	right := make([][]int, 2)
	left[axis] = chosen[:m]
	right[axis] = chosen[m:]

	other := Axis(1 - int(axis))
	otherSorted := sublists[other]
	leftOther := make([]int, 0, m)
	rightOther := make([]int, 0, s-m)
	for _, idx := range otherSorted {
		if axis.Coordinate(ps.At(idx)) > value {
			rightOther = append(rightOther, idx)
		} else {
			leftOther = append(leftOther, idx)
		}
	}
	left[other] = leftOther
	right[other] = rightOther

	return &Node{
		isLeaf: false,
		axis:   axis,
		value:  value,
		left:   buildRecursive(ps, left),
		right:  buildRecursive(ps, right),
	}
}

// chooseSplitAxis picks the axis of maximum spread (max-min of its
// coordinate) over the current subset, breaking ties by preferring the
// first axis (§4.2).
func chooseSplitAxis(ps PointStore, sublists [][]int) Axis {
	var spreads [2]float64
	for axis := 0; axis < 2; axis++ {
		a := Axis(axis)
		idx := sublists[axis]
		lo := a.Coordinate(ps.At(idx[0]))
		hi := a.Coordinate(ps.At(idx[len(idx)-1]))
		spreads[axis] = hi - lo
	}
	if spreads[AxisY] > spreads[AxisX] {
		return AxisY
	}
	return AxisX
}

// LeafCount returns the number of leaves in the tree rooted at n (zero
// for a nil tree).
func LeafCount(n *Node) int {
	if n == nil {
		return 0
	}
	if n.isLeaf {
		return 1
	}
	return LeafCount(n.left) + LeafCount(n.right)
}
