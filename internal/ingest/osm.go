// Package ingest builds a point set from OpenStreetMap PBF extracts,
// turning tagged nodes into the topics and records the engine searches
// over.
package ingest

import (
	"hash/fnv"
	"io"
	"math"
	"os"
	"runtime"
	"strings"

	"github.com/golang/geo/s2"
	"github.com/qedus/osmpbf"
	"github.com/rs/zerolog"
	"github.com/umahmood/haversine"

	nearby_search "nearby_search"
)

// earthRadiusMeters is the sphere radius used by the Web Mercator
// projection below, matching the teacher's road-network projection.
const earthRadiusMeters = 6378137.0

// recordTags lists the OSM tag keys whose value synthesizes an attached
// record identifier (§11.1): a node tagged amenity=cafe becomes a point
// carrying one record for "cafe" under that tag.
var recordTags = []string{"amenity", "shop", "leisure"}

// Center restricts ingestion to nodes within RadiusMeters of (Lat, Lng).
// A zero-value Center (RadiusMeters <= 0) disables the filter.
type Center struct {
	Lat, Lng     float64
	RadiusMeters float64
}

func (c Center) active() bool { return c.RadiusMeters > 0 }

func (c Center) contains(lat, lng float64) bool {
	if !c.active() {
		return true
	}
	origin := haversine.Coord{Lat: c.Lat, Lon: c.Lng}
	target := haversine.Coord{Lat: lat, Lon: lng}
	_, km := haversine.Distance(origin, target)
	return km*1000 <= c.RadiusMeters
}

// LoadPoints decodes the PBF file at path and returns one Point per
// node that falls inside center (when center.active()). Nodes
// carrying one of recordTags get a synthetic record id attached via
// hashTag; untagged nodes are still returned as topics with no records.
func LoadPoints(path string, center Center, logger zerolog.Logger) ([]nearby_search.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := osmpbf.NewDecoder(f)
	d.SetBufferSize(osmpbf.MaxBlobSize)
	if err := d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, err
	}

	var points []nearby_search.Point
	for {
		obj, err := d.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		node, ok := obj.(*osmpbf.Node)
		if !ok {
			continue
		}
		if !center.contains(node.Lat, node.Lon) {
			continue
		}

		cell := cellIDFromLatLng(node.Lat, node.Lon)
		x, y := planarMeters(cell)
		p := nearby_search.Point{
			ID: int(node.ID),
			X:  x,
			Y:  y,
		}
		if recs := recordsForTags(node.Tags); len(recs) > 0 {
			p.Records = recs
		}
		points = append(points, p)
	}
	warnIfEmpty(points, logger)
	return points, nil
}

// cellIDFromLatLng stores a node's location as an s2.CellID before it is
// projected to planar meters, matching the cell-indexing idiom used
// elsewhere for this corpus's geospatial data.
func cellIDFromLatLng(lat, lng float64) s2.CellID {
	return s2.CellFromPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))).ID()
}

// planarMeters projects a cell's center onto a Web Mercator plane in
// meters, reading the angle directly in radians off the s2.LatLng
// rather than round-tripping through degrees, since that's the unit
// s1.Angle already carries.
func planarMeters(cell s2.CellID) (x, y float64) {
	ll := cell.LatLng()
	φ := ll.Lat.Radians()
	λ := ll.Lng.Radians()
	x = earthRadiusMeters * λ
	y = earthRadiusMeters * math.Log(math.Tan((math.Pi/4)+(φ/2)))
	return x, y
}

// recordsForTags synthesizes one record identifier per recognized tag
// present on a node, by hashing "key=value" with FNV-1a.
func recordsForTags(tags map[string]string) []int {
	var recs []int
	for _, key := range recordTags {
		val, ok := tags[key]
		if !ok || val == "" {
			continue
		}
		recs = append(recs, hashTag(key, val))
	}
	return recs
}

// hashTag maps a "key=value" OSM tag pair to a non-negative int record
// id, stable across runs so the same tag always yields the same record.
func hashTag(key, val string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(key)))
	_, _ = h.Write([]byte{'='})
	_, _ = h.Write([]byte(strings.ToLower(val)))
	return int(h.Sum32() & 0x7fffffff)
}

// warnIfEmpty logs when ingestion yields no points, since an empty
// extract is usually a bad --osm path rather than an intentional empty
// dataset.
func warnIfEmpty(points []nearby_search.Point, logger zerolog.Logger) {
	if len(points) == 0 {
		logger.Warn().Msg("ingest: no nodes matched, check --osm path and radius")
	}
}
