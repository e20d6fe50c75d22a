// Package enrich runs an optional entity/sentiment pre-analysis over a text
// before the primary model call. Enrichment is best-effort: any failure leaves
// the text untouched and is never surfaced to the caller.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lexrelay/lexrelay/internal/llm"
)

const entityPrompt = `Extract from the following text:
1. The named legal entities (companies, courts, agencies, persons acting in a legal capacity), comma-separated.
2. The overall sentiment (positive, neutral, or negative).
Answer in exactly two lines:
ENTITIES: <comma-separated list or "none">
SENTIMENT: <one word>`

var annotationPattern = regexp.MustCompile(`\s*\[(?:Legal entities|Sentiment): [^\]]*\]`)

type Enricher struct {
	provider llm.Provider
	enabled  bool
}

func New(provider llm.Provider, enabled bool) *Enricher {
	return &Enricher{provider: provider, enabled: enabled}
}

// Annotate appends entity and sentiment annotation blocks to text when the
// pre-analysis succeeds. On any failure the input is returned unchanged.
func (e *Enricher) Annotate(ctx context.Context, text string) string {
	if !e.enabled || e.provider == nil {
		return text
	}

	resp, err := e.provider.Generate(ctx,
		"You are a legal text analysis assistant. Answer only in the requested format.",
		entityPrompt+"\n\nText:\n"+text,
		func(o *llm.Options) { o.MaxTokens = 256 },
	)
	if err != nil {
		slog.Warn("enrichment pre-analysis failed, continuing without it", "error", err)
		return text
	}

	entities, sentiment := parseAnalysis(resp.Content)
	if entities == "" && sentiment == "" {
		return text
	}

	annotated := text
	if entities != "" {
		annotated += fmt.Sprintf(" [Legal entities: %s]", entities)
	}
	if sentiment != "" {
		annotated += fmt.Sprintf(" [Sentiment: %s]", sentiment)
	}
	return annotated
}

// StripAnnotations removes every annotation block Annotate may have injected.
// Operations that forward text to the upstream model verbatim (translation)
// must call this so annotations do not leak into the output.
func StripAnnotations(text string) string {
	return annotationPattern.ReplaceAllString(text, "")
}

func parseAnalysis(content string) (entities, sentiment string) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "ENTITIES:"):
			v := strings.TrimSpace(strings.TrimPrefix(line, "ENTITIES:"))
			if !strings.EqualFold(v, "none") {
				entities = v
			}
		case strings.HasPrefix(line, "SENTIMENT:"):
			sentiment = strings.TrimSpace(strings.TrimPrefix(line, "SENTIMENT:"))
		}
	}
	return entities, sentiment
}
