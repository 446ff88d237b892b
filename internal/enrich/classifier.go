package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"roadsense/internal/llm"
	"roadsense/internal/logger"
	"roadsense/internal/types"
)

// Completer is the LLM capability the enrichment stages depend on; the
// concrete client lives in internal/llm and tests substitute their own.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

const classifySystemPrompt = "You classify road-related Reddit posts."

func classifyPrompt(text string) string {
	return fmt.Sprintf(`You are an assistant helping classify Reddit posts related to road issues.

Given the text below, return:
1. The most likely issue type: "pothole", "accident", "detour", "closure", "construction", "traffic", or "other"
2. The sentiment of the post: "angry", "frustrated", "neutral", "helpful", or "other"

Text:
%s

Respond in this JSON format:
{"issue_type": "...", "sentiment": "..."}`, text)
}

// Classifier assigns one issue type and one sentiment per record through a
// single combined LLM call.
type Classifier struct {
	llm Completer
	log *logger.Logger
}

func NewClassifier(llm Completer) *Classifier {
	return &Classifier{llm: llm, log: logger.New()}
}

// Classify returns a pair drawn from the fixed vocabularies, or exactly
// (error, error) when the call fails or the response does not parse into
// two known values. It never returns a partially valid pair and never
// propagates an error: one bad record must not abort the batch.
func (c *Classifier) Classify(ctx context.Context, text string) (string, string) {
	content, err := c.llm.Complete(ctx, classifySystemPrompt, classifyPrompt(text), 0.3)
	if err != nil {
		c.log.WithError(err).Warn("classification call failed")
		return types.IssueError, types.SentimentError
	}

	raw := llm.ExtractJSON(content)
	if raw == "" {
		c.log.WithField("content", content).Warn("no JSON object in classification response")
		return types.IssueError, types.SentimentError
	}

	var parsed struct {
		IssueType *string `json:"issue_type"`
		Sentiment *string `json:"sentiment"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		c.log.WithError(err).Warn("malformed classification response")
		return types.IssueError, types.SentimentError
	}
	if parsed.IssueType == nil || parsed.Sentiment == nil {
		c.log.WithField("content", raw).Warn("classification response missing a field")
		return types.IssueError, types.SentimentError
	}

	issue := strings.ToLower(strings.TrimSpace(*parsed.IssueType))
	sentiment := strings.ToLower(strings.TrimSpace(*parsed.Sentiment))
	// The error sentinel is reserved for failed calls; a model answering
	// "error" for either field counts as out of vocabulary.
	if issue == types.IssueError || sentiment == types.SentimentError ||
		!types.ValidIssueType(issue) || !types.ValidSentiment(sentiment) {
		c.log.WithFields(map[string]interface{}{
			"issue_type": issue,
			"sentiment":  sentiment,
		}).Warn("classification outside vocabulary")
		return types.IssueError, types.SentimentError
	}

	return issue, sentiment
}
