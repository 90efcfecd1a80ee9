package nearby_search

// Axis names the two dimensions a point can be split on. The tree
// builder picks between them by spread (§4.2).
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Coordinate returns p's value along a.
func (a Axis) Coordinate(p Point) float64 {
	if a == AxisX {
		return p.X
	}
	return p.Y
}

// String renders a's name, for diagnostic logging.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Point is a single input location: a stable identifier, its (x, y)
// coordinates, and the (possibly empty) list of record identifiers
// attached to it.
type Point struct {
	ID      int
	X, Y    float64
	Records []int
}

// HasRecords reports whether p carries at least one attached record.
func (p Point) HasRecords() bool {
	return len(p.Records) > 0
}

// PointStore is the immutable, read-only input table of points. It is
// indexed both by original insertion position and by identifier.
type PointStore struct {
	points []Point
	byID   map[int]int // identifier -> index
}

// NewPointStore builds a PointStore over pts. pts is copied; the caller's
// slice may be reused afterward.
func NewPointStore(pts []Point) PointStore {
	cp := make([]Point, len(pts))
	copy(cp, pts)
	byID := make(map[int]int, len(cp))
	for i, p := range cp {
		byID[p.ID] = i
	}
	return PointStore{points: cp, byID: byID}
}

// Len returns the number of points in the store.
func (s PointStore) Len() int {
	return len(s.points)
}

// At returns the point at the given original-insertion index.
func (s PointStore) At(i int) Point {
	return s.points[i]
}

// ByID looks up a point by its stable identifier. ok is false if no point
// with that identifier was ever inserted.
func (s PointStore) ByID(id int) (Point, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Point{}, false
	}
	return s.points[i], true
}

// WithRecords returns the subset of points that carry at least one
// attached record, in original insertion order. Used to build the pruned
// tree of §4.8.
func (s PointStore) WithRecords() []Point {
	out := make([]Point, 0, len(s.points))
	for _, p := range s.points {
		if p.HasRecords() {
			out = append(out, p)
		}
	}
	return out
}

// DistinctRecordCount returns the number of distinct record identifiers
// attached across every point in the store. This is the ceiling used by
// the linked-record aggregator (§4.7).
func (s PointStore) DistinctRecordCount() int {
	seen := make(map[int]struct{})
	for _, p := range s.points {
		for _, r := range p.Records {
			if r < 0 {
				continue
			}
			seen[r] = struct{}{}
		}
	}
	return len(seen)
}
