package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexrelay/lexrelay/apimodels"
)

func envelopeServer(t *testing.T, status int, env apimodels.Envelope, gotBody *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/action", r.URL.Path)
		if gotBody != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(gotBody))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(env)
	}))
}

func TestCallUnwrapsData(t *testing.T) {
	var body map[string]any
	ts := envelopeServer(t, http.StatusOK, apimodels.Envelope{
		Success:   true,
		Data:      "Severability clauses preserve the rest of the contract.",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, &body)
	defer ts.Close()

	c := New(ts.URL, nil)
	out, err := c.AskLegalQuestion(context.Background(), apimodels.QuestionParams{
		Question: "What does a severability clause do?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Severability clauses preserve the rest of the contract.", out)

	// params are flattened next to the action discriminator
	assert.Equal(t, "askLegalQuestion", body["action"])
	assert.Equal(t, "What does a severability clause do?", body["question"])
}

func TestCallBackendFailure(t *testing.T) {
	ts := envelopeServer(t, http.StatusInternalServerError, apimodels.Envelope{
		Success:   false,
		Error:     "Unknown action: doTheThing",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil)
	defer ts.Close()

	c := New(ts.URL, nil)
	_, err := c.Call(context.Background(), "doTheThing", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Unknown action: doTheThing", apiErr.Message)
	assert.Equal(t, "Unknown action: doTheThing", apiErr.Error())
}

func TestCallSuccessFalseOn200(t *testing.T) {
	// success:false must fail even when the transport says 200
	ts := envelopeServer(t, http.StatusOK, apimodels.Envelope{
		Success:   false,
		Error:     "something went wrong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil)
	defer ts.Close()

	c := New(ts.URL, nil)
	_, err := c.Call(context.Background(), "askLegalQuestion", apimodels.QuestionParams{Question: "q"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "something went wrong", apiErr.Message)
}

func TestCallNetworkError(t *testing.T) {
	c := New("http://127.0.0.1:1", nil)
	_, err := c.Call(context.Background(), "healthCheck", nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport errors are not APIErrors")
}

func TestAssessLegalRiskDecodesStructure(t *testing.T) {
	ts := envelopeServer(t, http.StatusOK, apimodels.Envelope{
		Success: true,
		Data: apimodels.RiskAssessment{
			Analysis:   "One-sided indemnity.",
			Assessment: "High",
			Timestamp:  "2026-01-02T15:04:05Z",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil)
	defer ts.Close()

	c := New(ts.URL, nil)
	risk, err := c.AssessLegalRisk(context.Background(), apimodels.RiskParams{DocumentText: "..."})
	require.NoError(t, err)
	assert.Equal(t, "High", risk.Assessment)
	assert.Equal(t, "One-sided indemnity.", risk.Analysis)
}

func TestHealthCheck(t *testing.T) {
	ts := envelopeServer(t, http.StatusOK, apimodels.Envelope{
		Success: true,
		Data: apimodels.HealthStatus{
			Status:       "ok",
			Integrations: map[string]bool{"gemini": true},
			Timestamp:    "2026-01-02T15:04:05Z",
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil)
	defer ts.Close()

	c := New(ts.URL, nil)
	status, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", status.Status)
	assert.True(t, status.Integrations["gemini"])
}
