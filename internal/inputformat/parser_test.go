package inputformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nearby_search "nearby_search"
)

func TestParseWellFormedDocument(t *testing.T) {
	doc := "3 2 2\n" +
		"0 0 0\n" +
		"1 1 0\n" +
		"2 0 1\n" +
		"0 2 0 1\n" +
		"1 0\n" +
		"t 1 0 0\n" +
		"q 1 0.1 0.1\n"

	parsed, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, parsed.Points, 3)
	require.Len(t, parsed.Queries, 2)

	assert.ElementsMatch(t, []int{0}, parsed.Points[0].Records)
	assert.ElementsMatch(t, []int{0}, parsed.Points[1].Records)
	assert.Empty(t, parsed.Points[2].Records)

	assert.Equal(t, nearby_search.QueryTopic, parsed.Queries[0].Kind)
	assert.Equal(t, nearby_search.QueryQuestion, parsed.Queries[1].Kind)
}

func TestParseRejectsUnknownTopicReference(t *testing.T) {
	doc := "1 1 0\n" +
		"0 0 0\n" +
		"5 1 99\n"

	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, nearby_search.ErrUnknownTopic)
}

func TestParseRejectsMismatchedQuestionArity(t *testing.T) {
	doc := "1 1 0\n" +
		"0 0 0\n" +
		"5 2 0\n"

	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, nearby_search.ErrMalformedInput)
}

func TestParseRejectsUnknownQueryKind(t *testing.T) {
	doc := "1 0 1\n" +
		"0 0 0\n" +
		"z 1 0 0\n"

	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, nearby_search.ErrUnknownQueryKind)
}

func TestParseRejectsTruncatedInput(t *testing.T) {
	doc := "2 0 0\n" +
		"0 0 0\n"

	_, err := Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, nearby_search.ErrMalformedInput)
}
