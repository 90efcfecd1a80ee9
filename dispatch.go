package nearby_search

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// QueryKind distinguishes topic queries from question queries (§6).
type QueryKind byte

const (
	QueryTopic    QueryKind = 't'
	QueryQuestion QueryKind = 'q'
)

// Query is one request from the input's query lines: a kind, a result
// count, and a 2-d location.
type Query struct {
	Kind QueryKind
	K    int
	X, Y float64
}

// Result is one query's answer: the identifiers in the order the
// dispatcher contract requires them (§4.8, §6).
type Result struct {
	IDs []int
}

// Dispatcher builds the full and pruned trees once (§4.8) and routes
// queries against them.
type Dispatcher struct {
	store  PointStore
	metric Metric
	logger zerolog.Logger

	full         *Node
	fullLeaves   int
	pruned       *Node
	prunedLeaves int
	recordCeil   int
}

// NewDispatcher prepares a Dispatcher over ps: it builds the full tree
// over every point and the pruned tree over only those points carrying
// at least one attached record, and precomputes the distinct-record
// ceiling used by LinkedRecords.
func NewDispatcher(ps PointStore, metric Metric, logger zerolog.Logger) *Dispatcher {
	full := Build(ps)
	prunedPoints := ps.WithRecords()
	prunedStore := NewPointStore(prunedPoints)
	pruned := Build(prunedStore)

	d := &Dispatcher{
		store:        ps,
		metric:       metric,
		logger:       logger,
		full:         full,
		fullLeaves:   ps.Len(),
		pruned:       pruned,
		prunedLeaves: prunedStore.Len(),
		recordCeil:   ps.DistinctRecordCount(),
	}
	d.logger.Debug().
		Int("points", d.fullLeaves).
		Int("points_with_records", d.prunedLeaves).
		Int("distinct_records", d.recordCeil).
		Msg("dispatcher prepared")
	return d
}

// Dispatch answers every query in order, returning one Result per query.
// It checks ctx between queries (not within a single query's traversal)
// and returns early with ctx.Err() wrapped if the context is done (§5).
func (d *Dispatcher) Dispatch(ctx context.Context, queries []Query) ([]Result, error) {
	results := make([]Result, 0, len(queries))
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			return results, errors.Wrapf(err, "dispatch canceled before query %d", i)
		}
		res, err := d.dispatchOne(q)
		if err != nil {
			return results, errors.Wrapf(err, "query %d", i)
		}
		results = append(results, res)
	}
	return results, nil
}

func (d *Dispatcher) dispatchOne(q Query) (Result, error) {
	point := Point{X: q.X, Y: q.Y}
	switch q.Kind {
	case QueryTopic:
		k := q.K
		if k > d.fullLeaves {
			k = d.fullLeaves
		}
		cands := KNearest(d.full, point, k, d.fullLeaves, d.metric, d.logger)
		return Result{IDs: candidateIDs(cands)}, nil

	case QueryQuestion:
		if d.prunedLeaves == 0 || d.recordCeil == 0 {
			return Result{}, errors.WithStack(ErrEmptyPrunedTree)
		}
		k := q.K
		if k > d.recordCeil {
			k = d.recordCeil
		}
		ids := LinkedRecords(d.pruned, d.prunedLeaves, d.recordCeil, point, k, d.metric, d.logger)
		return Result{IDs: ids}, nil

	default:
		return Result{}, errors.Wrapf(ErrUnknownQueryKind, "kind %q", rune(q.Kind))
	}
}

// FullRoot returns the root of the tree built over every point, for use
// by diagnostic tooling (§13). It participates in no query computation
// on its own.
func (d *Dispatcher) FullRoot() *Node { return d.full }

func candidateIDs(cands []Candidate) []int {
	ids := make([]int, len(cands))
	for i, c := range cands {
		ids[i] = c.Point.ID
	}
	return ids
}
