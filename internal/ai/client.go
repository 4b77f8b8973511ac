package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/farhanputra/event-management-backend/config"
)

// Analysis endpoints exposed by the external AI service
const (
	endpointAnalyze    = "analyze-event"
	endpointAttendance = "predict-attendance"
	endpointRecommend  = "recommendations"
)

// Client talks to the external AI analysis service over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.AIServiceBaseURL,
		apiKey:  cfg.AIServiceAPIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.AIRequestTimeout) * time.Second,
		},
	}
}

// Analyze posts the event payload to the named endpoint and returns the raw
// JSON response so callers can cache and relay it without re-encoding.
func (c *Client) Analyze(ctx context.Context, endpoint string, payload interface{}) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI service request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read AI service response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI service error (status %d): %s", resp.StatusCode, string(body))
	}

	return json.RawMessage(body), nil
}
