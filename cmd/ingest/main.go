package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"roadsense/internal/config"
	"roadsense/internal/dataset"
	"roadsense/internal/logger"
	"roadsense/internal/reddit"
)

func main() {
	cfg := config.Load()
	out := flag.String("out", cfg.Paths.RawFile, "raw records CSV output path")
	flag.Parse()

	log := logger.New().WithRun().WithField("service", "roadsense-ingest")
	log.WithField("subreddits", cfg.Reddit.Subreddits).Info("starting ingestion")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := reddit.NewClient(cfg.Reddit.UserAgent)
	records := client.FetchAll(ctx, cfg.Reddit.Subreddits, cfg.Reddit.PostLimit)

	if err := dataset.SaveRaw(*out, records); err != nil {
		log.WithError(err).Error("failed to write raw records")
		os.Exit(1)
	}
	log.WithField("records", len(records)).WithField("path", *out).Info("raw records saved")
}
