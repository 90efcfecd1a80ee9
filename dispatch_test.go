package nearby_search

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePoints() []Point {
	return []Point{
		{ID: 0, X: 0, Y: 0, Records: []int{100}},
		{ID: 1, X: 1, Y: 0},
		{ID: 2, X: 2, Y: 0, Records: []int{100, 101}},
		{ID: 3, X: 10, Y: 10},
	}
}

func TestDispatchTopicQuery(t *testing.T) {
	d := NewDispatcher(NewPointStore(samplePoints()), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{
		{Kind: QueryTopic, K: 2, X: 0, Y: 0},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{0, 1}, results[0].IDs)
}

func TestDispatchQuestionQuery(t *testing.T) {
	d := NewDispatcher(NewPointStore(samplePoints()), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{
		{Kind: QueryQuestion, K: 2, X: 0, Y: 0},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []int{100, 101}, results[0].IDs)
}

func TestDispatchQuestionQueryWithEmptyPrunedTreeFails(t *testing.T) {
	pts := []Point{{ID: 0, X: 0, Y: 0}, {ID: 1, X: 1, Y: 1}}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())

	_, err := d.Dispatch(context.Background(), []Query{{Kind: QueryQuestion, K: 1, X: 0, Y: 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPrunedTree)
}

func TestDispatchUnknownKindFails(t *testing.T) {
	d := NewDispatcher(NewPointStore(samplePoints()), DefaultMetric(), zerolog.Nop())
	_, err := d.Dispatch(context.Background(), []Query{{Kind: QueryKind('z'), K: 1}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownQueryKind)
}

func TestDispatchStopsOnCanceledContext(t *testing.T) {
	d := NewDispatcher(NewPointStore(samplePoints()), DefaultMetric(), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := d.Dispatch(ctx, []Query{{Kind: QueryTopic, K: 1, X: 0, Y: 0}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestDispatchClampsKToAvailable(t *testing.T) {
	d := NewDispatcher(NewPointStore(samplePoints()), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{
		{Kind: QueryTopic, K: 1000, X: 0, Y: 0},
	})
	require.NoError(t, err)
	assert.Len(t, results[0].IDs, 4)
}
