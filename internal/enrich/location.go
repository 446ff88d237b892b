package enrich

import (
	"context"
	"fmt"
	"strings"

	"roadsense/internal/logger"
	"roadsense/internal/ner"
	"roadsense/internal/types"
)

// Recognizer is the local NER capability, stage one of hybrid extraction.
type Recognizer interface {
	Entities(text string) ([]ner.Entity, error)
}

const locationSystemPrompt = "You extract road-related location names from Reddit posts."

func locationPrompt(text string) string {
	return fmt.Sprintf(`Given the following Reddit post text, extract the most specific location mentioned (e.g., street name, freeway, intersection, neighborhood, or landmark). If no location is mentioned, respond with "null".

Text:
%s

Respond with just the location string or "null".`, text)
}

// LocationExtractor resolves a location mention per record: the local
// recognizer first, falling back to a remote LLM call only when the
// recognizer yields no geopolitical or location entity. The fallback keeps
// remote-call volume bounded to the minority of texts without extractable
// named entities.
type LocationExtractor struct {
	ner Recognizer
	llm Completer
	log *logger.Logger
}

func NewLocationExtractor(recognizer Recognizer, llm Completer) *LocationExtractor {
	return &LocationExtractor{ner: recognizer, llm: llm, log: logger.New()}
}

// Extract returns the first locally recognized GPE/LOC entity without any
// remote call; otherwise the remote answer verbatim (trimmed of quotes),
// types.LocationNull for an explicit "no location", or types.LocationError
// when the remote call fails.
func (e *LocationExtractor) Extract(ctx context.Context, text string) string {
	ents, err := e.ner.Entities(text)
	if err != nil {
		e.log.WithError(err).Warn("local recognizer failed, falling back to remote extraction")
	}
	for _, ent := range ents {
		if ent.Label == "GPE" || ent.Label == "LOC" {
			return ent.Text
		}
	}

	content, err := e.llm.Complete(ctx, locationSystemPrompt, locationPrompt(text), 0.2)
	if err != nil {
		e.log.WithError(err).Warn("location extraction call failed")
		return types.LocationError
	}

	loc := strings.Trim(strings.TrimSpace(content), `"`)
	if loc == "" || strings.EqualFold(loc, types.LocationNull) {
		return types.LocationNull
	}
	return loc
}
