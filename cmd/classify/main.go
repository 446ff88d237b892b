package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"roadsense/internal/config"
	"roadsense/internal/dataset"
	"roadsense/internal/enrich"
	"roadsense/internal/filter"
	"roadsense/internal/llm"
	"roadsense/internal/logger"
	"roadsense/internal/ner"
)

func main() {
	cfg := config.Load()
	in := flag.String("in", cfg.Paths.RawFile, "raw records CSV input path")
	out := flag.String("out", cfg.Paths.ClassifiedFile, "classified CSV output path")
	frac := flag.Float64("frac", cfg.Sample.Fraction, "deterministic sample fraction, >=1 disables sampling")
	flag.Parse()

	log := logger.New().WithRun().WithField("service", "roadsense-classify")

	if err := cfg.RequireLLM(); err != nil {
		log.WithError(err).Error("setup failed")
		os.Exit(1)
	}

	records, err := dataset.LoadRaw(*in)
	if err != nil {
		log.WithError(err).Error("failed to load raw records")
		os.Exit(1)
	}
	log.WithField("records", len(records)).Info("raw records loaded")

	filtered := filter.Apply(records, cfg.Filter.MinBodyLen, cfg.Filter.MinScore)
	sampled := enrich.Sample(filtered, *frac, cfg.Sample.Seed)
	if len(sampled) < len(filtered) {
		log.WithField("sampled", len(sampled)).Info("deterministic sample applied")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := llm.NewClient(cfg.LLM)
	orchestrator := enrich.NewOrchestrator(
		enrich.NewClassifier(client),
		enrich.NewLocationExtractor(ner.NewProseRecognizer(), client),
		cfg.Workers,
	)
	enriched := orchestrator.Enrich(ctx, sampled)

	if err := dataset.SaveEnriched(*out, enriched); err != nil {
		log.WithError(err).Error("failed to write classified records")
		os.Exit(1)
	}
	log.WithField("records", len(enriched)).WithField("path", *out).Info("classified records saved")
}
