package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"roadsense/internal/ner"
	"roadsense/internal/types"
)

type fakeRecognizer struct {
	ents []ner.Entity
	err  error
}

func (f fakeRecognizer) Entities(string) ([]ner.Entity, error) {
	return f.ents, f.err
}

type countingCompleter struct {
	calls int
	resp  string
	err   error
}

func (c *countingCompleter) Complete(context.Context, string, string, float64) (string, error) {
	c.calls++
	return c.resp, c.err
}

func TestExtract_LocalEntitySkipsRemote(t *testing.T) {
	remote := &countingCompleter{resp: "should not be used"}
	e := NewLocationExtractor(fakeRecognizer{ents: []ner.Entity{
		{Text: "State Street", Label: "GPE"},
		{Text: "Sugar House", Label: "LOC"},
	}}, remote)

	loc := e.Extract(context.Background(), "pothole on State Street near Sugar House")

	assert.Equal(t, "State Street", loc, "first match in recognizer order wins")
	assert.Equal(t, 0, remote.calls, "no remote call on the local path")
}

func TestExtract_IgnoresNonLocationEntities(t *testing.T) {
	remote := &countingCompleter{resp: "700 East"}
	e := NewLocationExtractor(fakeRecognizer{ents: []ner.Entity{
		{Text: "UDOT", Label: "ORGANIZATION"},
		{Text: "John", Label: "PERSON"},
	}}, remote)

	loc := e.Extract(context.Background(), "John said UDOT should fix 700 East")

	assert.Equal(t, "700 East", loc)
	assert.Equal(t, 1, remote.calls)
}

func TestExtract_RemoteFallback(t *testing.T) {
	tests := []struct {
		name string
		resp string
		err  error
		want string
	}{
		{name: "verbatim answer", resp: "I-15 northbound", want: "I-15 northbound"},
		{name: "quotes trimmed", resp: `"400 South"`, want: "400 South"},
		{name: "literal null", resp: "null", want: types.LocationNull},
		{name: "null with quotes", resp: `"null"`, want: types.LocationNull},
		{name: "empty answer", resp: "", want: types.LocationNull},
		{name: "call failure", err: errors.New("quota exceeded"), want: types.LocationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &countingCompleter{resp: tt.resp, err: tt.err}
			e := NewLocationExtractor(fakeRecognizer{}, remote)

			loc := e.Extract(context.Background(), "no named entities here")

			assert.Equal(t, tt.want, loc)
			assert.Equal(t, 1, remote.calls)
		})
	}
}

func TestExtract_RecognizerErrorFallsBack(t *testing.T) {
	remote := &countingCompleter{resp: "Main St"}
	e := NewLocationExtractor(fakeRecognizer{err: errors.New("model unavailable")}, remote)

	loc := e.Extract(context.Background(), "anything")

	assert.Equal(t, "Main St", loc)
	assert.Equal(t, 1, remote.calls)
}
