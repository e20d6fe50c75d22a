package dispatch

import "errors"

// Action is one of the fixed, case-sensitive operation names accepted at the
// HTTP boundary.
type Action string

const (
	ActionAskLegalQuestion      Action = "askLegalQuestion"
	ActionSummarizeDocument     Action = "summarizeDocument"
	ActionTranslateText         Action = "translateText"
	ActionPerformSemanticSearch Action = "performSemanticSearch"
	ActionCompareDocuments      Action = "compareDocuments"
	ActionAssessLegalRisk       Action = "assessLegalRisk"
	ActionHealthCheck           Action = "healthCheck"
)

// ErrUnknownAction wraps the rejected name; its text is part of the API
// contract.
var ErrUnknownAction = errors.New("Unknown action")

// Known lists every recognized action.
func Known() []Action {
	return []Action{
		ActionAskLegalQuestion,
		ActionSummarizeDocument,
		ActionTranslateText,
		ActionPerformSemanticSearch,
		ActionCompareDocuments,
		ActionAssessLegalRisk,
		ActionHealthCheck,
	}
}
