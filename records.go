package nearby_search

import "github.com/rs/zerolog"

// LinkedRecords is the `q`-query aggregator of §4.7. It runs the
// radius-expanding aggregator against the pruned tree (leafCount is that
// tree's leaf count), accumulating first-occurrence record identifiers
// in ascending-distance order, doubling the inner k until either the
// requested count is reached or recordCeiling (the total number of
// distinct records attached anywhere in the pruned tree) is exhausted.
func LinkedRecords(root *Node, leafCount, recordCeiling int, q Point, k int, metric Metric, logger zerolog.Logger) []int {
	if root == nil || recordCeiling <= 0 || k <= 0 {
		return nil
	}
	if k > recordCeiling {
		k = recordCeiling
	}

	ordered := make([]int, 0, k)
	innerK := k
	for {
		capped := innerK
		if capped > leafCount {
			capped = leafCount
		}

		cands := KNearest(root, q, capped, leafCount, metric, logger)
		ordered = ordered[:0]
		seen := make(map[int]struct{})
		for _, c := range cands {
			for _, rec := range c.Point.Records {
				if rec < 0 {
					continue
				}
				if _, dup := seen[rec]; dup {
					continue
				}
				seen[rec] = struct{}{}
				ordered = append(ordered, rec)
			}
		}

		if len(ordered) >= k || capped >= leafCount {
			break
		}
		innerK *= 2
	}

	if len(ordered) > k {
		ordered = ordered[:k]
	}
	return ordered
}
