package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/services"
)

// ScanRequester signals the scan scheduler that a cycle should run soon.
type ScanRequester interface {
	RequestScan()
}

// ViolationsHandler serves the recent-violations read API. Reading also
// signals the scheduler to run a scan so the window stays fresh, but the
// scan itself never runs in the request path.
type ViolationsHandler struct {
	query   services.ViolationQuery
	scanner ScanRequester
	window  time.Duration
	logger  *zap.Logger
}

// NewViolationsHandler creates a new violations handler.
func NewViolationsHandler(query services.ViolationQuery, scanner ScanRequester, window time.Duration, logger *zap.Logger) *ViolationsHandler {
	return &ViolationsHandler{
		query:   query,
		scanner: scanner,
		window:  window,
		logger:  logger,
	}
}

// RegisterRoutes registers the violations routes on the given mux.
// /nfz requires the shared secret; /frontend-nfz serves the same payload
// without requiring the browser to hold the secret.
func (h *ViolationsHandler) RegisterRoutes(mux *http.ServeMux, requireSecret func(http.HandlerFunc) http.HandlerFunc) {
	mux.HandleFunc("GET /nfz", requireSecret(h.GetViolations))
	mux.HandleFunc("GET /frontend-nfz", h.GetViolations)
}

// GetViolations handles GET /nfz and GET /frontend-nfz requests.
func (h *ViolationsHandler) GetViolations(w http.ResponseWriter, r *http.Request) {
	if h.scanner != nil {
		h.scanner.RequestScan()
	}

	violations, err := h.query.Recent(r.Context(), h.window)
	if err != nil {
		h.logger.Error("Failed to list recent violations", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "violations_unavailable", "Internal server error"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := WriteJSON(w, http.StatusOK, violations); err != nil {
		h.logger.Error("Failed to write violations response", zap.Error(err))
	}
}
