package ner

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// Entity is one named entity in recognizer output order.
type Entity struct {
	Text  string
	Label string
}

// ProseRecognizer runs prose's statistical NER model locally, the cheap
// first stage of hybrid location extraction.
type ProseRecognizer struct{}

func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities returns all named entities found in text, in document order.
func (r *ProseRecognizer) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("build document: %w", err)
	}

	ents := doc.Entities()
	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		out = append(out, Entity{Text: e.Text, Label: e.Label})
	}
	return out, nil
}
