package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"roadsense/internal/aggregator"
	"roadsense/internal/config"
	"roadsense/internal/dataset"
	"roadsense/internal/geocode"
	"roadsense/internal/geomap"
	"roadsense/internal/logger"
)

func main() {
	cfg := config.Load()
	in := flag.String("in", cfg.Paths.ClassifiedFile, "classified CSV input path")
	out := flag.String("out", cfg.Paths.MapFile, "HTML map output path")
	report := flag.String("report", "", "optional xlsx summary report output path")
	flag.Parse()

	log := logger.New().WithRun().WithField("service", "roadsense-mapgen")

	records, err := dataset.LoadEnriched(*in)
	if err != nil {
		log.WithError(err).Error("failed to load classified records")
		os.Exit(1)
	}
	log.WithField("records", len(records)).Info("classified records loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	locations := make([]string, 0, len(records))
	for _, r := range records {
		locations = append(locations, r.Location)
	}
	resolver := geocode.NewResolver(cfg.Geocode.City, cfg.Geocode.MinInterval)
	coords := resolver.ResolveAll(ctx, locations)

	if err := geomap.Render(*out, records, coords, cfg.Geocode.CenterLat, cfg.Geocode.CenterLng); err != nil {
		log.WithError(err).Error("failed to render map")
		os.Exit(1)
	}
	log.WithField("path", *out).Info("map saved")

	if *report != "" {
		summary := aggregator.Summarize(records)
		if err := dataset.WriteSummaryReport(*report, summary); err != nil {
			log.WithError(err).Error("failed to write summary report")
			os.Exit(1)
		}
		log.WithField("path", *report).Info("summary report saved")
	}
}
