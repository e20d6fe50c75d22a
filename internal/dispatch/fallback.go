package dispatch

import (
	"time"

	"github.com/lexrelay/lexrelay/apimodels"
)

// Hand-authored fallback payloads, one per operation. When anything inside an
// operation fails the fallback entirely replaces the intended content and the
// request still reports success.
var fallbackText = map[Action]string{
	ActionAskLegalQuestion: "Legal Q&A is currently unavailable. The assistant could not reach the " +
		"generative model. Verify that GEMINI_API_KEY is set and the upstream endpoint is reachable, " +
		"then try your question again.",
	ActionSummarizeDocument: "Document summarization is currently unavailable. The assistant could not " +
		"reach the generative model. Verify that GEMINI_API_KEY is set and the upstream endpoint is " +
		"reachable, then re-run the summary.",
	ActionTranslateText: "Translation is currently unavailable. The assistant could not reach the " +
		"generative model. Verify that GEMINI_API_KEY is set and the upstream endpoint is reachable, " +
		"then retry the translation.",
	ActionPerformSemanticSearch: "Semantic search is currently unavailable. The assistant could not " +
		"reach the generative model. Verify that GEMINI_API_KEY is set and the upstream endpoint is " +
		"reachable, then repeat the search.",
	ActionCompareDocuments: "Document comparison is currently unavailable. The assistant could not " +
		"reach the generative model. Verify that GEMINI_API_KEY is set and the upstream endpoint is " +
		"reachable, then compare the documents again.",
}

const fallbackRiskAnalysis = "Risk assessment is currently unavailable. The assistant could not reach " +
	"the generative model. Verify that GEMINI_API_KEY is set and the upstream endpoint is reachable, " +
	"then request the assessment again."

func fallbackPayload(action Action) any {
	if action == ActionAssessLegalRisk {
		return apimodels.RiskAssessment{
			Analysis:   fallbackRiskAnalysis,
			Assessment: "Unavailable",
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		}
	}
	return fallbackText[action]
}
