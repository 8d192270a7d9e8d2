// Package upstream provides clients for the external telemetry feed and
// the drone owner registry.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

// DefaultTimeout bounds every telemetry fetch.
const DefaultTimeout = 5 * time.Second

// TelemetryClient fetches the current fleet snapshot from the drones API.
// It performs no retries; retry policy belongs to the caller.
type TelemetryClient struct {
	listURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTelemetryClient creates a telemetry client for the given list endpoint.
// A non-positive timeout falls back to DefaultTimeout.
func NewTelemetryClient(listURL string, timeout time.Duration, logger *zap.Logger) *TelemetryClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TelemetryClient{
		listURL: listURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("telemetry"),
	}
}

// FetchFleet returns the current fleet snapshot.
// Network failures, timeouts and non-2xx statuses return a *TransportError;
// an unparsable body returns a *DecodeError.
func (c *TelemetryClient) FetchFleet(ctx context.Context) ([]models.RawDronePosition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: c.listURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Telemetry feed returned error status",
			zap.Int("status", resp.StatusCode))
		return nil, &TransportError{
			URL: c.listURL,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var fleet []models.RawDronePosition
	if err := json.NewDecoder(resp.Body).Decode(&fleet); err != nil {
		return nil, &DecodeError{URL: c.listURL, Err: err}
	}

	c.logger.Debug("Fetched fleet snapshot", zap.Int("drones", len(fleet)))
	return fleet, nil
}
