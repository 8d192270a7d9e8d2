package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/apperrors"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

// ownerPayload is the owner registry response body.
type ownerPayload struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phone_number"`
	SocialSecurityNumber string `json:"social_security_number"`
	PurchasedAt          string `json:"purchased_at,omitempty"`
}

// RegistryClient looks up drone owners in the external owner registry.
type RegistryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRegistryClient creates a registry client. ownerID is appended to
// baseURL per lookup, matching the registry's GET-by-id contract.
func NewRegistryClient(baseURL string, timeout time.Duration, logger *zap.Logger) *RegistryClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RegistryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("registry"),
	}
}

// FetchOwner fetches an owner record by id.
// A 404 returns apperrors.ErrOwnerNotFound. Other non-200 statuses and
// network failures return a *TransportError; an undecodable 200 body
// returns a *DecodeError.
func (c *RegistryClient) FetchOwner(ctx context.Context, ownerID string) (*models.Owner, error) {
	// The configured base URL carries its own separator, matching the
	// registry's GET <base><id> contract.
	url := c.baseURL + ownerID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.ErrOwnerNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Owner registry returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("owner_id", ownerID))
		return nil, &TransportError{
			URL: url,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var payload ownerPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}

	owner := &models.Owner{
		ID:                   ownerID,
		FirstName:            payload.FirstName,
		LastName:             payload.LastName,
		Email:                payload.Email,
		PhoneNumber:          payload.PhoneNumber,
		SocialSecurityNumber: payload.SocialSecurityNumber,
		PurchasedAt:          parsePurchasedAt(payload.PurchasedAt, c.logger, ownerID),
	}
	return owner, nil
}

// parsePurchasedAt parses the optional purchase timestamp defensively.
// An unparsable value becomes nil rather than failing the whole lookup.
func parsePurchasedAt(raw string, logger *zap.Logger, ownerID string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	logger.Warn("Unparsable purchased_at, storing null",
		zap.String("owner_id", ownerID),
		zap.String("purchased_at", raw))
	return nil
}
