// Package client is the programmatic counterpart of the browser dispatcher:
// one Call per action, a uniform envelope unwrapped on the way back.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/lexrelay/lexrelay/apimodels"
)

// APIError carries either the transport status or the backend-reported
// message when the envelope's success flag is false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against baseURL. The client configures no timeout of
// its own; pass an httpClient to bound call duration, or nil for the default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// Call forwards action and params in the uniform request envelope and returns
// the raw data payload. Each invocation is one outbound request; there are no
// retries.
func (c *Client) Call(ctx context.Context, action string, params any) (json.RawMessage, error) {
	body := map[string]any{"action": action}
	if params != nil {
		pb, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshaling params: %w", err)
		}
		if err := json.Unmarshal(pb, &body); err != nil {
			return nil, fmt.Errorf("params must encode to a JSON object: %w", err)
		}
		body["action"] = action
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/action", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	var env struct {
		Success   bool            `json:"success"`
		Data      json.RawMessage `json:"data"`
		Error     string          `json:"error"`
		Timestamp string          `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	return env.Data, nil
}

func (c *Client) callString(ctx context.Context, action string, params any) (string, error) {
	data, err := c.Call(ctx, action, params)
	if err != nil {
		return "", err
	}
	var out string
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decoding %s result: %w", action, err)
	}
	return out, nil
}

func (c *Client) AskLegalQuestion(ctx context.Context, params apimodels.QuestionParams) (string, error) {
	return c.callString(ctx, "askLegalQuestion", params)
}

func (c *Client) SummarizeDocument(ctx context.Context, params apimodels.SummarizeParams) (string, error) {
	return c.callString(ctx, "summarizeDocument", params)
}

func (c *Client) TranslateText(ctx context.Context, params apimodels.TranslateParams) (string, error) {
	return c.callString(ctx, "translateText", params)
}

func (c *Client) PerformSemanticSearch(ctx context.Context, params apimodels.SearchParams) (string, error) {
	return c.callString(ctx, "performSemanticSearch", params)
}

func (c *Client) CompareDocuments(ctx context.Context, params apimodels.CompareParams) (string, error) {
	return c.callString(ctx, "compareDocuments", params)
}

func (c *Client) AssessLegalRisk(ctx context.Context, params apimodels.RiskParams) (*apimodels.RiskAssessment, error) {
	data, err := c.Call(ctx, "assessLegalRisk", params)
	if err != nil {
		return nil, err
	}
	var out apimodels.RiskAssessment
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding assessLegalRisk result: %w", err)
	}
	return &out, nil
}

func (c *Client) HealthCheck(ctx context.Context) (*apimodels.HealthStatus, error) {
	data, err := c.Call(ctx, "healthCheck", nil)
	if err != nil {
		return nil, err
	}
	var out apimodels.HealthStatus
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding healthCheck result: %w", err)
	}
	return &out, nil
}
