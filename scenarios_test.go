package nearby_search

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarioMinimalTopicQuery(t *testing.T) {
	pts := []Point{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 0, Y: 10},
		{ID: 4, X: 10, Y: 10},
	}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryTopic, K: 1, X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, results[0].IDs)
}

func TestScenarioKNearestTopics(t *testing.T) {
	pts := []Point{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 0, Y: 10},
		{ID: 4, X: 10, Y: 10},
	}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryTopic, K: 3, X: 1, Y: 1}})
	require.NoError(t, err)
	require.Len(t, results[0].IDs, 3)
	assert.Equal(t, 1, results[0].IDs[0])
	assert.ElementsMatch(t, []int{1, 2, 3}, results[0].IDs)
}

func TestScenarioQuestionWithAttachedRecords(t *testing.T) {
	pts := []Point{
		{ID: 1, X: 0, Y: 0, Records: []int{100}},
		{ID: 2, X: 10, Y: 0, Records: []int{100}},
		{ID: 3, X: 0, Y: 10},
		{ID: 4, X: 10, Y: 10, Records: []int{200}},
	}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryQuestion, K: 2, X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, results[0].IDs)
}

func TestScenarioRadiusExpansionNeeded(t *testing.T) {
	pts := make([]Point, 10)
	for i := range pts {
		pts[i] = Point{ID: i, X: float64(i), Y: 0}
	}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryTopic, K: 5, X: 0, Y: 0}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, results[0].IDs)
}

func TestScenarioZeroDistanceSeed(t *testing.T) {
	pts := []Point{
		{ID: 1, X: 1, Y: 1},
		{ID: 7, X: 5, Y: 5},
		{ID: 9, X: 9, Y: 9},
		{ID: 3, X: 2, Y: 8},
	}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryTopic, K: 3, X: 5, Y: 5}})
	require.NoError(t, err)
	assert.Equal(t, 7, results[0].IDs[0])
}

func TestScenarioClampOnOversizeK(t *testing.T) {
	pts := []Point{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 1, Y: 0}, {ID: 3, X: 2, Y: 0}}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryTopic, K: 10, X: 0, Y: 0}})
	require.NoError(t, err)
	assert.Len(t, results[0].IDs, 3)
}

func TestScenarioDeadband(t *testing.T) {
	pts := []Point{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 0, Y: 0.0005}}
	d := NewDispatcher(NewPointStore(pts), DefaultMetric(), zerolog.Nop())
	results, err := d.Dispatch(context.Background(), []Query{{Kind: QueryTopic, K: 2, X: 0, Y: 0}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 2}, results[0].IDs)

	cands := KNearest(d.full, Point{X: 0, Y: 0}, 2, 2, DefaultMetric(), zerolog.Nop())
	for _, c := range cands {
		assert.Equal(t, 0.0, c.Dist)
	}
}
