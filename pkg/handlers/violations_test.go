package handlers

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
	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/middleware"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

type stubQuery struct {
	violations []*models.ViolationWithOwner
	err        error
	window     time.Duration
}

func (s *stubQuery) Recent(_ context.Context, window time.Duration) ([]*models.ViolationWithOwner, error) {
	s.window = window
	if s.err != nil {
		return nil, s.err
	}
	return s.violations, nil
}

type stubScanRequester struct {
	requests int
}

func (s *stubScanRequester) RequestScan() { s.requests++ }

func sampleViolation(droneID string, ts time.Time) *models.ViolationWithOwner {
	id := droneID
	return &models.ViolationWithOwner{
		DroneID:   &id,
		Timestamp: ts,
		X:         10,
		Y:         20,
		Z:         30,
		Owner: models.OwnerPublic{
			FirstName:            "Jane",
			LastName:             "Doe",
			SocialSecurityNumber: "010101-123X",
			PhoneNumber:          "+358 40 1234567",
		},
	}
}

func violationsMux(query *stubQuery, scanner *stubScanRequester, secret string) *http.ServeMux {
	logger := zap.NewNop()
	handler := NewViolationsHandler(query, scanner, 24*time.Hour, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, middleware.RequireSecret(secret, logger))
	return mux
}

func TestViolationsHandler_GetViolations(t *testing.T) {
	query := &stubQuery{violations: []*models.ViolationWithOwner{
		sampleViolation("d1", time.Now().UTC()),
	}}
	scanner := &stubScanRequester{}
	mux := violationsMux(query, scanner, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/nfz", nil)
	req.Header.Set(middleware.SecretHeader, "s3cret")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 1, scanner.requests, "a read must request a fresh scan")
	assert.Equal(t, 24*time.Hour, query.window)

	var payload []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 1)
	assert.Equal(t, "d1", payload[0]["drone_id"])

	owner, ok := payload[0]["owner"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Jane", owner["first_name"])
	assert.Equal(t, "010101-123X", owner["social_security_number"])
	assert.NotContains(t, owner, "email", "owner email is not part of the public payload")
}

func TestViolationsHandler_GetViolations_MissingSecret(t *testing.T) {
	scanner := &stubScanRequester{}
	mux := violationsMux(&stubQuery{}, scanner, "s3cret")

	for _, header := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/nfz", nil)
		if header != "" {
			req.Header.Set(middleware.SecretHeader, header)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.Equal(t, 0, scanner.requests, "rejected requests must not trigger scans")
}

func TestViolationsHandler_FrontendRouteSkipsSecret(t *testing.T) {
	query := &stubQuery{violations: []*models.ViolationWithOwner{}}
	mux := violationsMux(query, &stubScanRequester{}, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/frontend-nfz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestViolationsHandler_QueryFailure(t *testing.T) {
	query := &stubQuery{err: errors.New("connection reset")}
	mux := violationsMux(query, &stubScanRequester{}, "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/frontend-nfz", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "violations_unavailable", payload["error"])
	assert.NotContains(t, payload["message"], "connection reset", "internal detail must not leak")
}
