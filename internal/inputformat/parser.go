// Package inputformat reads the native line-oriented input format (§6):
// a header line giving topic/question/query counts, followed by that
// many topic, question, and query lines in turn.
package inputformat

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	nearby_search "nearby_search"
)

// ParsedInput is everything the dispatcher needs: the point set built
// from topics and questions, and the queries to answer against it.
type ParsedInput struct {
	Points  []nearby_search.Point
	Queries []nearby_search.Query
}

// Parse reads one native-format document from r. Line numbers in
// returned errors are 1-indexed and count from the header line.
func Parse(r io.Reader) (ParsedInput, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return sc.Text(), true
	}

	header, ok := nextLine()
	if !ok {
		return ParsedInput{}, errors.Wrap(nearby_search.ErrMalformedInput, "empty input: missing header line")
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: header wants 3 fields, got %d", lineNo, len(fields))
	}
	topicCount, err := parseNonNegInt(fields[0])
	if err != nil {
		return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: topic count: %v", lineNo, err)
	}
	questionCount, err := parseNonNegInt(fields[1])
	if err != nil {
		return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: question count: %v", lineNo, err)
	}
	queryCount, err := parseNonNegInt(fields[2])
	if err != nil {
		return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: query count: %v", lineNo, err)
	}

	points := make([]nearby_search.Point, 0, topicCount)
	byID := make(map[int]int, topicCount)
	for i := 0; i < topicCount; i++ {
		line, ok := nextLine()
		if !ok {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: expected topic line %d/%d", lineNo+1, i+1, topicCount)
		}
		f := strings.Fields(line)
		if len(f) != 3 {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: topic line wants 3 fields, got %d", lineNo, len(f))
		}
		id, err := parseNonNegInt(f[0])
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: topic id: %v", lineNo, err)
		}
		x, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: topic x: %v", lineNo, err)
		}
		y, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: topic y: %v", lineNo, err)
		}
		byID[id] = len(points)
		points = append(points, nearby_search.Point{ID: id, X: x, Y: y})
	}

	for i := 0; i < questionCount; i++ {
		line, ok := nextLine()
		if !ok {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: expected question line %d/%d", lineNo+1, i+1, questionCount)
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: question line wants at least 2 fields, got %d", lineNo, len(f))
		}
		questionID, err := parseNonNegInt(f[0])
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: question id: %v", lineNo, err)
		}
		m, err := parseNonNegInt(f[1])
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: question m: %v", lineNo, err)
		}
		if len(f)-2 != m {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: question declares m=%d but lists %d topic ids", lineNo, m, len(f)-2)
		}
		for _, tf := range f[2:] {
			topicID, err := parseNonNegInt(tf)
			if err != nil {
				return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: topic id: %v", lineNo, err)
			}
			idx, ok := byID[topicID]
			if !ok {
				return ParsedInput{}, errors.Wrapf(nearby_search.ErrUnknownTopic, "line %d: question %d references topic %d", lineNo, questionID, topicID)
			}
			points[idx].Records = append(points[idx].Records, questionID)
		}
	}

	queries := make([]nearby_search.Query, 0, queryCount)
	for i := 0; i < queryCount; i++ {
		line, ok := nextLine()
		if !ok {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: expected query line %d/%d", lineNo+1, i+1, queryCount)
		}
		f := strings.Fields(line)
		if len(f) != 4 {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: query line wants 4 fields, got %d", lineNo, len(f))
		}
		var kind nearby_search.QueryKind
		switch f[0] {
		case "t":
			kind = nearby_search.QueryTopic
		case "q":
			kind = nearby_search.QueryQuestion
		default:
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrUnknownQueryKind, "line %d: kind %q", lineNo, f[0])
		}
		k, err := strconv.Atoi(f[1])
		if err != nil || k < 1 {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: k must be a positive integer", lineNo)
		}
		x, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: query x: %v", lineNo, err)
		}
		y, err := strconv.ParseFloat(f[3], 64)
		if err != nil {
			return ParsedInput{}, errors.Wrapf(nearby_search.ErrMalformedInput, "line %d: query y: %v", lineNo, err)
		}
		queries = append(queries, nearby_search.Query{Kind: kind, K: k, X: x, Y: y})
	}

	if err := sc.Err(); err != nil {
		return ParsedInput{}, errors.Wrap(err, "reading input")
	}

	return ParsedInput{Points: points, Queries: queries}, nil
}

func parseNonNegInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Errorf("%q is negative", s)
	}
	return n, nil
}
