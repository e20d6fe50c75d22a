package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lexrelay/lexrelay/apimodels"
	"github.com/lexrelay/lexrelay/internal/enrich"
	"github.com/lexrelay/lexrelay/internal/llm"
	"github.com/lexrelay/lexrelay/internal/metrics"
)

// Result is the explicit success/degraded union every operation returns.
// Degraded means a fallback payload was substituted for the real content;
// Cause records what went wrong. The transport layer decides whether callers
// get to see the distinction (by default they do not).
type Result struct {
	Data     any
	Degraded bool
	Cause    error
}

type Dispatcher struct {
	provider llm.Provider
	enricher *enrich.Enricher

	// integrations feeds the healthCheck availability record; it reflects
	// configuration only and never triggers a network call.
	integrations map[string]bool
}

func New(provider llm.Provider, enricher *enrich.Enricher, integrations map[string]bool) *Dispatcher {
	return &Dispatcher{
		provider:     provider,
		enricher:     enricher,
		integrations: integrations,
	}
}

// Do executes exactly one operation. The only error it can return is an
// unknown action name; everything that goes wrong inside an operation is
// absorbed into a degraded Result.
func (d *Dispatcher) Do(ctx context.Context, action Action, params json.RawMessage) (*Result, error) {
	slog.Info("dispatching action", "action", action)

	var res *Result
	switch action {
	case ActionAskLegalQuestion:
		res = d.askLegalQuestion(ctx, params)
	case ActionSummarizeDocument:
		res = d.summarizeDocument(ctx, params)
	case ActionTranslateText:
		res = d.translateText(ctx, params)
	case ActionPerformSemanticSearch:
		res = d.performSemanticSearch(ctx, params)
	case ActionCompareDocuments:
		res = d.compareDocuments(ctx, params)
	case ActionAssessLegalRisk:
		res = d.assessLegalRisk(ctx, params)
	case ActionHealthCheck:
		res = d.healthCheck()
	default:
		metrics.ActionsTotal.WithLabelValues(string(action), "error").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	outcome := "ok"
	if res.Degraded {
		outcome = "degraded"
		slog.Warn("operation degraded to fallback", "action", action, "cause", res.Cause)
	}
	metrics.ActionsTotal.WithLabelValues(string(action), outcome).Inc()
	return res, nil
}

func (d *Dispatcher) askLegalQuestion(ctx context.Context, params json.RawMessage) *Result {
	var p apimodels.QuestionParams
	if err := json.Unmarshal(params, &p); err != nil {
		return degraded(ActionAskLegalQuestion, fmt.Errorf("decoding params: %w", err))
	}

	text, err := d.generate(ctx, ActionAskLegalQuestion, buildQuestionPrompt(p))
	if err != nil {
		return degraded(ActionAskLegalQuestion, err)
	}
	return &Result{Data: text}
}

func (d *Dispatcher) summarizeDocument(ctx context.Context, params json.RawMessage) *Result {
	var p apimodels.SummarizeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return degraded(ActionSummarizeDocument, fmt.Errorf("decoding params: %w", err))
	}

	text, err := d.generate(ctx, ActionSummarizeDocument, buildSummarizePrompt(p))
	if err != nil {
		return degraded(ActionSummarizeDocument, err)
	}
	return &Result{Data: text}
}

// translateText runs the enrichment pre-analysis for logging value, then
// strips every annotation it may have injected before the text reaches the
// upstream model, so annotations never leak into the translation.
func (d *Dispatcher) translateText(ctx context.Context, params json.RawMessage) *Result {
	var p apimodels.TranslateParams
	if err := json.Unmarshal(params, &p); err != nil {
		return degraded(ActionTranslateText, fmt.Errorf("decoding params: %w", err))
	}

	annotated := p.Text
	if d.enricher != nil {
		annotated = d.enricher.Annotate(ctx, p.Text)
	}
	cleaned := enrich.StripAnnotations(annotated)

	text, err := d.generate(ctx, ActionTranslateText, buildTranslatePrompt(cleaned, p))
	if err != nil {
		return degraded(ActionTranslateText, err)
	}
	return &Result{Data: text}
}

func (d *Dispatcher) performSemanticSearch(ctx context.Context, params json.RawMessage) *Result {
	var p apimodels.SearchParams
	if err := json.Unmarshal(params, &p); err != nil {
		return degraded(ActionPerformSemanticSearch, fmt.Errorf("decoding params: %w", err))
	}

	text, err := d.generate(ctx, ActionPerformSemanticSearch, buildSearchPrompt(p))
	if err != nil {
		return degraded(ActionPerformSemanticSearch, err)
	}
	return &Result{Data: text}
}

func (d *Dispatcher) compareDocuments(ctx context.Context, params json.RawMessage) *Result {
	var p apimodels.CompareParams
	if err := json.Unmarshal(params, &p); err != nil {
		return degraded(ActionCompareDocuments, fmt.Errorf("decoding params: %w", err))
	}

	text, err := d.generate(ctx, ActionCompareDocuments, buildComparePrompt(p))
	if err != nil {
		return degraded(ActionCompareDocuments, err)
	}
	return &Result{Data: text}
}

func (d *Dispatcher) assessLegalRisk(ctx context.Context, params json.RawMessage) *Result {
	var p apimodels.RiskParams
	if err := json.Unmarshal(params, &p); err != nil {
		return degraded(ActionAssessLegalRisk, fmt.Errorf("decoding params: %w", err))
	}

	text, err := d.generate(ctx, ActionAssessLegalRisk, buildRiskPrompt(p))
	if err != nil {
		return degraded(ActionAssessLegalRisk, err)
	}

	return &Result{Data: apimodels.RiskAssessment{
		Analysis:   text,
		Assessment: extractRiskLevel(text),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}}
}

func (d *Dispatcher) healthCheck() *Result {
	integrations := make(map[string]bool, len(d.integrations))
	for k, v := range d.integrations {
		integrations[k] = v
	}
	return &Result{Data: apimodels.HealthStatus{
		Status:       "ok",
		Integrations: integrations,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}}
}

func (d *Dispatcher) generate(ctx context.Context, action Action, prompt string) (string, error) {
	start := time.Now()
	resp, err := d.provider.Generate(ctx, SystemPrompt, prompt)
	metrics.UpstreamDuration.WithLabelValues(string(action)).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("upstream call failed: %w", err)
	}
	slog.Debug("upstream call completed", "action", action, "tokens", resp.Usage.TotalTokens)
	return resp.Content, nil
}

func degraded(action Action, cause error) *Result {
	return &Result{
		Data:     fallbackPayload(action),
		Degraded: true,
		Cause:    cause,
	}
}

// extractRiskLevel pulls the Low/Medium/High level out of the model's
// analysis, looking first for the instructed trailer line.
func extractRiskLevel(analysis string) string {
	for _, line := range strings.Split(analysis, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "Overall risk level:"); ok {
			level := strings.TrimSpace(strings.Trim(rest, " .*"))
			switch {
			case strings.EqualFold(level, "Low"):
				return "Low"
			case strings.EqualFold(level, "Medium"):
				return "Medium"
			case strings.EqualFold(level, "High"):
				return "High"
			}
		}
	}
	return "Medium"
}
