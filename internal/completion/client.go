// Package completion provides an HTTP client for the text-completion service.
// One call is one request: no retries, no caching, no streaming.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults applied when the caller or configuration leaves a knob unset.
const (
	DefaultEndpoint = "https://api.openai.com/v1/responses"
	DefaultModel    = "gpt-4o-mini"
	DefaultTimeout  = 30 * time.Second
)

// systemInstruction frames the assistant before the user prompt.
const systemInstruction = "You are a senior FinTech data quality expert helping a CTO understand risks and actions."

// temperature favors deterministic phrasing across runs.
const temperature = 0.3

// maxErrorBody bounds how much of an error response body is carried in an UpstreamError.
const maxErrorBody = 8 << 10

// Options configures a single Complete call. Zero values fall back to the
// client's configured defaults.
type Options struct {
	Model   string
	Timeout time.Duration
}

// Client issues completion requests against a Responses-style endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	timeout    time.Duration
}

// New creates a client. An empty endpoint selects DefaultEndpoint; empty
// model and non-positive timeout select their defaults at call time. The
// apiKey is validated on Complete, not here, so commands that never call the
// service can still construct their wiring.
func New(endpoint, apiKey, model string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
	}
}

type requestPayload struct {
	Model        string  `json:"model"`
	Instructions string  `json:"instructions"`
	Input        string  `json:"input"`
	Temperature  float64 `json:"temperature"`
}

// Complete sends the prompt and returns the extracted answer text.
//
// Preconditions are checked before any network activity: a blank prompt fails
// with InvalidArgumentError and an unresolvable credential with
// MissingCredentialError. No response within the timeout fails with
// TimeoutError; a non-success HTTP status fails with UpstreamError. An empty
// extracted answer is returned as "" without error; rejecting it is the
// caller's decision.
func (c *Client) Complete(ctx context.Context, userPrompt string, opts Options) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", &InvalidArgumentError{Message: "prompt is required and cannot be empty"}
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return "", &MissingCredentialError{Name: "OPENAI_API_KEY"}
	}

	model := opts.Model
	if model == "" {
		model = c.model
	}
	if model == "" {
		model = DefaultModel
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	body, err := json.Marshal(requestPayload{
		Model:        model,
		Instructions: systemInstruction,
		Input:        userPrompt,
		Temperature:  temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: timeout}
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(errBody))}
	}

	var payload ResponsePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: timeout}
		}
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	return ExtractText(&payload), nil
}
