package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
	"github.com/MariiaZhytnikova/Airguardian/pkg/repositories"
)

// ViolationRecorder persists detected geofence breaches. Every recorded
// violation references an owner that exists at write time; the owner is
// resolved through the directory as part of the same logical operation.
type ViolationRecorder interface {
	// Record resolves the owner and persists exactly one violation row.
	// The violation timestamp is assigned here, never taken from the feed.
	Record(ctx context.Context, droneID *string, ownerID string, x, y, z float64) (*models.Violation, error)
}

type violationRecorder struct {
	directory  OwnerDirectory
	violations repositories.ViolationRepository
	logger     *zap.Logger
}

// NewViolationRecorder creates a new ViolationRecorder.
func NewViolationRecorder(directory OwnerDirectory, violations repositories.ViolationRepository, logger *zap.Logger) ViolationRecorder {
	return &violationRecorder{
		directory:  directory,
		violations: violations,
		logger:     logger.Named("violation-recorder"),
	}
}

var _ ViolationRecorder = (*violationRecorder)(nil)

func (r *violationRecorder) Record(ctx context.Context, droneID *string, ownerID string, x, y, z float64) (*models.Violation, error) {
	owner, err := r.directory.Resolve(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	violation := &models.Violation{
		DroneID:   droneID,
		OwnerID:   owner.ID,
		X:         x,
		Y:         y,
		Z:         z,
		Timestamp: time.Now().UTC(),
	}

	if err := r.violations.Create(ctx, violation); err != nil {
		return nil, fmt.Errorf("record violation for owner %s: %w", ownerID, err)
	}

	r.logger.Info("Recorded no-fly-zone violation",
		zap.Int64("violation_id", violation.ID),
		zap.String("owner_id", owner.ID),
		zap.Float64("x", x),
		zap.Float64("y", y),
		zap.Float64("z", z))

	return violation, nil
}
