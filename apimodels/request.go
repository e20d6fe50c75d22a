package apimodels

import "encoding/json"

// ActionRequest is the wire form of every dispatch request: a discriminator
// plus the action-specific parameters, which stay raw until the dispatcher
// knows which struct to decode them into.
type ActionRequest struct {
	// Action is one of the fixed operation names (case-sensitive)
	Action string `json:"action"`

	// Params holds the remaining fields of the request body
	Params json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the body twice: once for the action discriminator and
// once to retain the full object as raw params for the typed decode later.
func (r *ActionRequest) UnmarshalJSON(data []byte) error {
	var probe struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	r.Action = probe.Action
	r.Params = append(r.Params[:0], data...)
	return nil
}

type QuestionParams struct {
	// Question is the user's legal question
	Question string `json:"question"`

	// Context is optional surrounding document text
	Context string `json:"context,omitempty"`
}

type SummarizeParams struct {
	DocumentText string `json:"documentText"`

	// SummaryType is e.g. "brief", "detailed", "bullet"
	SummaryType string `json:"summaryType,omitempty"`

	// SummaryLength is e.g. "short", "medium", "long"
	SummaryLength string `json:"summaryLength,omitempty"`
}

type TranslateParams struct {
	Text       string `json:"text"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang"`
}

type SearchParams struct {
	Query string `json:"query"`

	// Corpus is the set of document texts to search within
	Corpus []string `json:"corpus,omitempty"`
}

type CompareParams struct {
	Document1 string `json:"document1"`
	Document2 string `json:"document2"`
}

type RiskParams struct {
	DocumentText string `json:"documentText"`

	// Jurisdiction narrows the assessment, e.g. "California"
	Jurisdiction string `json:"jurisdiction,omitempty"`
}
