package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"namecheck/types"
)

// ServiceClient is a thin HTTP client for the comparison service API
type ServiceClient struct {
	baseURL string
	client  *http.Client
}

// NewServiceClient creates a new comparison service client
func NewServiceClient(baseURL string) *ServiceClient {
	return &ServiceClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// HealthResponse is the JSON response from the health endpoint
type HealthResponse struct {
	Status        string `json:"status"`
	ModelLoaded   bool   `json:"model_loaded"`
	ActiveVersion string `json:"active_version"`
}

// VersionsResponse is the JSON response from the versions endpoint
type VersionsResponse struct {
	Versions      []types.ModelVersion `json:"versions"`
	ActiveVersion string               `json:"active_version"`
}

// RetrainResponse is the JSON response from the retrain endpoint
type RetrainResponse struct {
	Retrained     bool   `json:"retrained"`
	ActiveVersion string `json:"active_version"`
}

// GetHealth fetches the current health status from the service
func (c *ServiceClient) GetHealth() (*HealthResponse, error) {
	var health HealthResponse
	if err := c.getJSON("/api/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// GetVersions fetches the persisted model versions from the service
func (c *ServiceClient) GetVersions() (*VersionsResponse, error) {
	var versions VersionsResponse
	if err := c.getJSON("/api/model/versions", &versions); err != nil {
		return nil, err
	}
	return &versions, nil
}

// GetFeedbackStats fetches the feedback summary from the service
func (c *ServiceClient) GetFeedbackStats() (*types.FeedbackStats, error) {
	var stats types.FeedbackStats
	if err := c.getJSON("/api/feedback/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// TriggerRetrain asks the service to run a retraining cycle
func (c *ServiceClient) TriggerRetrain() (*RetrainResponse, error) {
	resp, err := c.client.Post(c.baseURL+"/api/model/retrain", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, fmt.Errorf("failed to trigger retrain: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result RetrainResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

func (c *ServiceClient) getJSON(path string, out any) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
