package nearby_search

import "errors"

// Sentinel errors for the error kinds enumerated in §7. Callers that
// need to distinguish a failure kind should use errors.Is against these,
// even though every layer wraps them with contextual information via
// github.com/pkg/errors as they propagate (see internal/inputformat and
// the dispatcher).
var (
	// ErrMalformedInput covers non-numeric fields, wrong field counts,
	// or an `m` larger than declared.
	ErrMalformedInput = errors.New("nearby_search: malformed input")

	// ErrUnknownTopic is returned when a question references a topic
	// identifier that was never declared.
	ErrUnknownTopic = errors.New("nearby_search: question references unknown topic")

	// ErrEmptyPrunedTree is returned when a `q` query is dispatched but
	// no topic carries any attached record.
	ErrEmptyPrunedTree = errors.New("nearby_search: no topic has an attached record")

	// ErrUnknownQueryKind is returned for a query kind other than 't' or 'q'.
	ErrUnknownQueryKind = errors.New("nearby_search: unknown query kind")
)
