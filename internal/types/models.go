package types

import (
	"strconv"
	"strings"
	"time"
)

// Record kinds as they appear in the "type" CSV column.
const (
	KindPost    = "post"
	KindComment = "comment"
)

// Issue type vocabulary. IssueError is the per-record failure sentinel, a
// first-class category that flows through CSV output and summaries.
const (
	IssuePothole      = "pothole"
	IssueAccident     = "accident"
	IssueDetour       = "detour"
	IssueClosure      = "closure"
	IssueConstruction = "construction"
	IssueTraffic      = "traffic"
	IssueOther        = "other"
	IssueError        = "error"
)

// Sentiment vocabulary.
const (
	SentimentAngry      = "angry"
	SentimentFrustrated = "frustrated"
	SentimentNeutral    = "neutral"
	SentimentHelpful    = "helpful"
	SentimentOther      = "other"
	SentimentError      = "error"
)

// Location sentinels. LocationNull marks an explicit "no location
// mentioned" and is distinct from LocationError, which marks a failed
// extraction call. Both persist as plain strings.
const (
	LocationNull  = "null"
	LocationError = "error"
)

var issueTypes = map[string]bool{
	IssuePothole:      true,
	IssueAccident:     true,
	IssueDetour:       true,
	IssueClosure:      true,
	IssueConstruction: true,
	IssueTraffic:      true,
	IssueOther:        true,
	IssueError:        true,
}

var sentiments = map[string]bool{
	SentimentAngry:      true,
	SentimentFrustrated: true,
	SentimentNeutral:    true,
	SentimentHelpful:    true,
	SentimentOther:      true,
	SentimentError:      true,
}

// ValidIssueType reports whether s is a member of the issue vocabulary.
func ValidIssueType(s string) bool { return issueTypes[s] }

// ValidSentiment reports whether s is a member of the sentiment vocabulary.
func ValidSentiment(s string) bool { return sentiments[s] }

// Score tolerates malformed or missing CSV cells by loading them as 0, so
// they fail any positive retention threshold instead of aborting the load.
type Score int

func (s *Score) UnmarshalCSV(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		*s = 0
		return nil
	}
	*s = Score(n)
	return nil
}

func (s Score) MarshalCSV() (string, error) {
	return strconv.Itoa(int(s)), nil
}

// Timestamp round-trips RFC3339 through CSV, accepting the space-separated
// layout older exports used.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalCSV(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, v)
	if err != nil {
		parsed, err = time.Parse("2006-01-02 15:04:05", v)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalCSV() (string, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.UTC().Format(time.RFC3339), nil
}

// RawRecord is one ingested post or comment. Immutable once produced.
type RawRecord struct {
	Subreddit string    `csv:"subreddit" json:"subreddit"`
	Kind      string    `csv:"type" json:"type"`
	Title     string    `csv:"title" json:"title"`
	Body      string    `csv:"body" json:"body"`
	URL       string    `csv:"url" json:"url"`
	Score     Score     `csv:"score" json:"score"`
	CreatedAt Timestamp `csv:"created_utc" json:"created_utc"`
	ID        string    `csv:"id" json:"id"`
}

// Enrichment holds the derived classification and extraction fields.
// IssueType and Sentiment come from one combined call, so they are either
// both valid or both the error sentinel; Location fails independently.
type Enrichment struct {
	IssueType string `csv:"issue_type" json:"issue_type"`
	Sentiment string `csv:"sentiment" json:"sentiment"`
	Location  string `csv:"location" json:"location"`
}

// EnrichedRecord is a RawRecord plus its enrichment, created exactly once
// per filtered record and never mutated afterward.
type EnrichedRecord struct {
	RawRecord
	Enrichment
}

// LocationCount pairs a location with its frequency, in ranking order.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Summary is derived from a set of EnrichedRecords and recomputable at any
// time; it holds no independent state.
type Summary struct {
	TopIssueTypes    map[string]int  `json:"top_issue_types"`
	SentimentSummary map[string]int  `json:"sentiment_summary"`
	TopLocations     []LocationCount `json:"top_locations"`
}
