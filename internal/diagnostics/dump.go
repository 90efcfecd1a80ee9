// Package diagnostics renders the engine's state for human inspection.
// Nothing here participates in computing query results.
package diagnostics

import (
	"io"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	nearby_search "nearby_search"
)

// DumpGeoJSON writes points as a GeoJSON FeatureCollection: one Point
// feature per entry in points, carrying its identifier and attached
// record count as properties, plus one LineString feature per internal
// node of root, clipped to that node's subtree bounding box.
func DumpGeoJSON(w io.Writer, points []nearby_search.Point, root *nearby_search.Node) error {
	fc := geojson.NewFeatureCollection()
	for _, p := range points {
		f := geojson.NewPointFeature([]float64{p.X, p.Y})
		f.SetProperty("id", p.ID)
		f.SetProperty("record_count", len(p.Records))
		fc.AddFeature(f)
	}

	if root != nil {
		addSplitLines(fc, root)
	}

	raw, err := fc.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "marshaling geojson feature collection")
	}

	if _, err := w.Write(raw); err != nil {
		return errors.Wrap(err, "writing geojson output")
	}
	return nil
}

// box is an axis-aligned bounding box over a subtree's points. valid is
// false for an empty subtree (a nil child), which contributes nothing
// to its parent's box.
type box struct {
	minX, maxX, minY, maxY float64
	valid                  bool
}

func pointBox(p nearby_search.Point) box {
	return box{minX: p.X, maxX: p.X, minY: p.Y, maxY: p.Y, valid: true}
}

func (b box) union(other box) box {
	if !b.valid {
		return other
	}
	if !other.valid {
		return b
	}
	return box{
		minX:  minf(b.minX, other.minX),
		maxX:  maxf(b.maxX, other.maxX),
		minY:  minf(b.minY, other.minY),
		maxY:  maxf(b.maxY, other.maxY),
		valid: true,
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// addSplitLines walks n, adding one LineString feature per internal
// node along its splitting axis, clipped to the bounding box of the
// points below it, and returns that bounding box so the caller can
// union it into its own.
func addSplitLines(fc *geojson.FeatureCollection, n *nearby_search.Node) box {
	if n == nil {
		return box{}
	}
	if n.IsLeaf() {
		return pointBox(n.Point())
	}

	leftBox := addSplitLines(fc, n.Left())
	rightBox := addSplitLines(fc, n.Right())
	subtreeBox := leftBox.union(rightBox)
	if !subtreeBox.valid {
		return subtreeBox
	}

	var line [][]float64
	if n.Axis() == nearby_search.AxisX {
		line = [][]float64{{n.Value(), subtreeBox.minY}, {n.Value(), subtreeBox.maxY}}
	} else {
		line = [][]float64{{subtreeBox.minX, n.Value()}, {subtreeBox.maxX, n.Value()}}
	}
	f := geojson.NewLineStringFeature(line)
	f.SetProperty("axis", n.Axis().String())
	f.SetProperty("value", n.Value())
	fc.AddFeature(f)

	return subtreeBox
}

// LeafCount reports the number of leaves reachable from root, for
// inclusion in a diagnostic summary alongside the GeoJSON dump.
func LeafCount(root *nearby_search.Node) int {
	return nearby_search.LeafCount(root)
}
