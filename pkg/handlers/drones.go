package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
	"github.com/MariiaZhytnikova/Airguardian/pkg/services"
)

const (
	defaultDronesLimit = 10
	maxDronesLimit     = 100

	snapshotCacheKey = "airguardian:fleet_snapshot"
)

// DronesHandler proxies the live fleet snapshot to API clients. When a
// redis client is configured, the snapshot is cached briefly so frequent
// frontend polling does not hammer the telemetry feed.
type DronesHandler struct {
	fleet     services.FleetFetcher
	cache     *redis.Client
	cacheTTL  time.Duration
	nfzRadius float64
	logger    *zap.Logger
}

// NewDronesHandler creates a new drones proxy handler. cache may be nil
// to disable snapshot caching.
func NewDronesHandler(fleet services.FleetFetcher, cache *redis.Client, cacheTTL time.Duration, nfzRadius float64, logger *zap.Logger) *DronesHandler {
	return &DronesHandler{
		fleet:     fleet,
		cache:     cache,
		cacheTTL:  cacheTTL,
		nfzRadius: nfzRadius,
		logger:    logger,
	}
}

// RegisterRoutes registers the drones handler's routes on the given mux.
func (h *DronesHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /drones", h.Drones)
	mux.HandleFunc("GET /api/map-data", h.MapData)
}

// Drones handles GET /drones?limit=N requests.
func (h *DronesHandler) Drones(w http.ResponseWriter, r *http.Request) {
	limit := defaultDronesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxDronesLimit {
			if err := ErrorResponse(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100"); err != nil {
				h.logger.Error("Failed to write error response", zap.Error(err))
			}
			return
		}
		limit = parsed
	}

	fleet, err := h.snapshot(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch drones", zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "drones_unavailable", "Error contacting drones API"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if limit > len(fleet) {
		limit = len(fleet)
	}

	if err := WriteJSON(w, http.StatusOK, fleet[:limit]); err != nil {
		h.logger.Error("Failed to write drones response", zap.Error(err))
	}
}

// MapData handles GET /api/map-data requests for the map frontend.
func (h *DronesHandler) MapData(w http.ResponseWriter, r *http.Request) {
	fleet, err := h.snapshot(r.Context())
	if err != nil {
		h.logger.Error("Failed to fetch drones for map", zap.Error(err))
		if err := ErrorResponse(w, http.StatusBadGateway, "drones_unavailable", "Error contacting drones API"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := map[string]interface{}{
		"drones":     fleet,
		"nfz_radius": h.nfzRadius,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write map data response", zap.Error(err))
	}
}

// snapshot returns the current fleet, from cache when fresh enough.
// Cache failures degrade to a direct fetch, never to a request failure.
func (h *DronesHandler) snapshot(ctx context.Context) ([]models.RawDronePosition, error) {
	if h.cache != nil {
		cached, err := h.cache.Get(ctx, snapshotCacheKey).Bytes()
		if err == nil {
			var fleet []models.RawDronePosition
			if err := json.Unmarshal(cached, &fleet); err == nil {
				return fleet, nil
			}
			h.logger.Warn("Discarding corrupt cached snapshot", zap.Error(err))
		} else if err != redis.Nil {
			h.logger.Warn("Snapshot cache read failed", zap.Error(err))
		}
	}

	fleet, err := h.fleet.FetchFleet(ctx)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if data, err := json.Marshal(fleet); err == nil {
			if err := h.cache.Set(ctx, snapshotCacheKey, data, h.cacheTTL).Err(); err != nil {
				h.logger.Warn("Snapshot cache write failed", zap.Error(err))
			}
		}
	}

	return fleet, nil
}
