package aggregator

import (
	"sort"
	"strings"

	"roadsense/internal/types"
)

const topLocationLimit = 10

// Summarize computes frequency counts over a batch of enriched records.
// The error sentinels count like any other issue/sentiment category;
// locations exclude null and error values and truncate to the ten most
// frequent, ties broken by first-encountered order. Pure and deterministic.
func Summarize(records []types.EnrichedRecord) types.Summary {
	issues := map[string]int{}
	sentiments := map[string]int{}
	locCounts := map[string]int{}
	var locOrder []string

	for _, r := range records {
		issues[r.IssueType]++
		sentiments[r.Sentiment]++

		loc := r.Location
		if loc == "" ||
			strings.EqualFold(loc, types.LocationNull) ||
			strings.EqualFold(loc, types.LocationError) {
			continue
		}
		if _, seen := locCounts[loc]; !seen {
			locOrder = append(locOrder, loc)
		}
		locCounts[loc]++
	}

	// locOrder is encounter order; a stable sort keeps it for equal counts
	ranked := make([]types.LocationCount, 0, len(locOrder))
	for _, loc := range locOrder {
		ranked = append(ranked, types.LocationCount{Location: loc, Count: locCounts[loc]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if len(ranked) > topLocationLimit {
		ranked = ranked[:topLocationLimit]
	}

	return types.Summary{
		TopIssueTypes:    issues,
		SentimentSummary: sentiments,
		TopLocations:     ranked,
	}
}
