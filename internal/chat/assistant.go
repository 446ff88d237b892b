package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"roadsense/internal/types"
)

// Completer is the LLM capability the assistant depends on.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

const systemPrompt = "You answer questions based on a structured dataset summary."

// Assistant answers questions over a precomputed Summary. Each question is
// one LLM call grounded in the summary text; the assistant never sees the
// underlying records.
type Assistant struct {
	llm Completer
}

func New(llm Completer) *Assistant {
	return &Assistant{llm: llm}
}

// Answer responds to one user question using the summary as ground truth.
func (a *Assistant) Answer(ctx context.Context, question string, s types.Summary) (string, error) {
	content, err := a.llm.Complete(ctx, systemPrompt, buildPrompt(question, s), 0.3)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return strings.TrimSpace(content), nil
}

func buildPrompt(question string, s types.Summary) string {
	return fmt.Sprintf(`You are a data analysis assistant. You are working with a dataset of Reddit posts related to road issues.

The dataset has already been analyzed. Here's a summary of key points:

Top Issue Types:
%s

Sentiment Summary:
%s

Top Locations:
%s

Now, based on this summary, answer the following user question:

%q

Answer clearly and concisely.`,
		formatCounts(s.TopIssueTypes),
		formatCounts(s.SentimentSummary),
		formatLocations(s.TopLocations),
		question)
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "(none)"
	}

	type row struct {
		name  string
		count int
	}
	rows := make([]row, 0, len(counts))
	for k, v := range counts {
		rows = append(rows, row{k, v})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count != rows[j].count {
			return rows[i].count > rows[j].count
		}
		return rows[i].name < rows[j].name
	})

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "- %s: %d\n", r.name, r.count)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatLocations(locations []types.LocationCount) string {
	if len(locations) == 0 {
		return "(none)"
	}

	var b strings.Builder
	for _, lc := range locations {
		fmt.Fprintf(&b, "- %s: %d\n", lc.Location, lc.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}
