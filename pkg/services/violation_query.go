package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
	"github.com/MariiaZhytnikova/Airguardian/pkg/repositories"
)

// DefaultViolationWindow is the trailing window served when none is configured.
const DefaultViolationWindow = 24 * time.Hour

// ViolationQuery is the read path over persisted violations. It only
// touches local storage, never the upstream APIs.
type ViolationQuery interface {
	// Recent returns violations within the trailing window, joined with
	// owner public fields, ordered newest first. A non-positive window
	// falls back to DefaultViolationWindow.
	Recent(ctx context.Context, window time.Duration) ([]*models.ViolationWithOwner, error)
}

type violationQuery struct {
	repo   repositories.ViolationRepository
	logger *zap.Logger
}

// NewViolationQuery creates a new ViolationQuery.
func NewViolationQuery(repo repositories.ViolationRepository, logger *zap.Logger) ViolationQuery {
	return &violationQuery{
		repo:   repo,
		logger: logger.Named("violation-query"),
	}
}

var _ ViolationQuery = (*violationQuery)(nil)

func (q *violationQuery) Recent(ctx context.Context, window time.Duration) ([]*models.ViolationWithOwner, error) {
	if window <= 0 {
		window = DefaultViolationWindow
	}

	since := time.Now().UTC().Add(-window)
	violations, err := q.repo.ListSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list recent violations: %w", err)
	}

	if violations == nil {
		violations = make([]*models.ViolationWithOwner, 0)
	}
	return violations, nil
}
