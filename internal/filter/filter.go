package filter

import (
	"github.com/sirupsen/logrus"
	"roadsense/internal/logger"
	"roadsense/internal/types"
)

// Apply retains records whose body length and score both meet the
// thresholds, preserving input order. Missing bodies compare as empty
// strings and unparseable scores load as 0, so both fail positive
// thresholds rather than erroring.
func Apply(records []types.RawRecord, minBodyLen, minScore int) []types.RawRecord {
	kept := make([]types.RawRecord, 0, len(records))
	for _, r := range records {
		if len(r.Body) >= minBodyLen && int(r.Score) >= minScore {
			kept = append(kept, r)
		}
	}

	logger.New().WithFields(logrus.Fields{
		"component": "filter",
		"input":     len(records),
		"retained":  len(kept),
	}).Info("filtered records")

	return kept
}
