package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadsense/internal/types"
)

type completerFunc func(ctx context.Context, system, user string, temperature float64) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	return f(ctx, system, user, temperature)
}

func sampleSummary() types.Summary {
	return types.Summary{
		TopIssueTypes:    map[string]int{"pothole": 4, "traffic": 2},
		SentimentSummary: map[string]int{"angry": 3, "neutral": 3},
		TopLocations: []types.LocationCount{
			{Location: "Main St", Count: 4},
			{Location: "5th Ave", Count: 2},
		},
	}
}

func TestAnswer_PromptContainsSummary(t *testing.T) {
	var prompt string
	a := New(completerFunc(func(_ context.Context, _, user string, _ float64) (string, error) {
		prompt = user
		return "  the most reported issue is potholes  ", nil
	}))

	answer, err := a.Answer(context.Background(), "what is the most common issue?", sampleSummary())

	require.NoError(t, err)
	assert.Equal(t, "the most reported issue is potholes", answer)
	assert.Contains(t, prompt, "pothole: 4")
	assert.Contains(t, prompt, "Main St: 4")
	assert.Contains(t, prompt, "what is the most common issue?")
}

func TestAnswer_Error(t *testing.T) {
	a := New(completerFunc(func(context.Context, string, string, float64) (string, error) {
		return "", errors.New("unavailable")
	}))

	_, err := a.Answer(context.Background(), "anything", sampleSummary())

	require.Error(t, err)
}

func TestBuildPrompt_EmptySummary(t *testing.T) {
	prompt := buildPrompt("anything?", types.Summary{})

	assert.Contains(t, prompt, "(none)")
}
