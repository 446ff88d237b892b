package enrich

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"roadsense/internal/logger"
	"roadsense/internal/types"
)

// Orchestrator drives the per-record pipeline over a batch. Records are
// enriched independently; a bounded worker pool fans them out and results
// land by index so output order always matches input order.
type Orchestrator struct {
	classifier *Classifier
	extractor  *LocationExtractor
	workers    int
	log        *logger.Logger
}

func NewOrchestrator(classifier *Classifier, extractor *LocationExtractor, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		classifier: classifier,
		extractor:  extractor,
		workers:    workers,
		log:        logger.New(),
	}
}

// Sample draws round(frac*len) records with a seeded PRNG and returns them
// in input order, so the sampled subset keeps a stable correspondence with
// the source sequence. Fractions outside (0, 1) disable sampling.
func Sample(records []types.RawRecord, frac float64, seed int64) []types.RawRecord {
	if frac <= 0 || frac >= 1 {
		return records
	}
	n := int(math.Round(frac * float64(len(records))))
	if n >= len(records) {
		return records
	}

	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(len(records))[:n]
	sort.Ints(idx)

	out := make([]types.RawRecord, 0, n)
	for _, i := range idx {
		out = append(out, records[i])
	}
	return out
}

// Enrich produces one EnrichedRecord per input record. Per-record failures
// surface as sentinel values inside the record, never as an aborted batch;
// progress is logged as records complete.
func (o *Orchestrator) Enrich(ctx context.Context, records []types.RawRecord) []types.EnrichedRecord {
	out := make([]types.EnrichedRecord, len(records))
	total := len(records)
	var done atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(o.workers)

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			// single space separator, matching the tabular contract
			text := rec.Title + " " + rec.Body

			issue, sentiment := o.classifier.Classify(ctx, text)
			location := o.extractor.Extract(ctx, text)

			out[i] = types.EnrichedRecord{
				RawRecord: rec,
				Enrichment: types.Enrichment{
					IssueType: issue,
					Sentiment: sentiment,
					Location:  location,
				},
			}

			o.log.WithFields(logrus.Fields{
				"processed": done.Add(1),
				"total":     total,
				"id":        rec.ID,
			}).Info("record enriched")
			return nil
		})
	}

	_ = g.Wait()
	return out
}
