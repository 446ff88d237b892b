package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"roadsense/internal/aggregator"
	"roadsense/internal/chat"
	"roadsense/internal/config"
	"roadsense/internal/dataset"
	"roadsense/internal/llm"
	"roadsense/internal/logger"
)

func main() {
	cfg := config.Load()
	in := flag.String("in", cfg.Paths.ClassifiedFile, "classified CSV input path")
	flag.Parse()

	log := logger.New().WithRun().WithField("service", "roadsense-chat")

	if err := cfg.RequireLLM(); err != nil {
		log.WithError(err).Error("setup failed")
		os.Exit(1)
	}

	records, err := dataset.LoadEnriched(*in)
	if err != nil {
		log.WithError(err).Error("failed to load classified records")
		os.Exit(1)
	}
	summary := aggregator.Summarize(records)
	log.WithField("records", len(records)).Info("summary ready")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	assistant := chat.New(llm.NewClient(cfg.LLM))

	fmt.Println("Road Sentiment Assistant")
	fmt.Println("Type a question or 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if q := strings.ToLower(question); q == "exit" || q == "quit" {
			break
		}

		answer, err := assistant.Answer(ctx, question, summary)
		if err != nil {
			log.WithError(err).Warn("question failed")
			continue
		}
		fmt.Printf("\n%s\n\n", answer)
	}
}
