package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/apperrors"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
	"github.com/MariiaZhytnikova/Airguardian/pkg/repositories"
)

// OwnerFetcher is the slice of the registry client the directory needs.
type OwnerFetcher interface {
	FetchOwner(ctx context.Context, ownerID string) (*models.Owner, error)
}

// OwnerDirectory resolves an owner identity by id: local lookup first,
// then fetch-and-persist from the external registry. Resolution is
// get-or-create; existing rows are never refreshed or overwritten.
type OwnerDirectory interface {
	// Resolve returns the owner with the given id.
	// Returns apperrors.ErrOwnerNotFound when the id is unknown both
	// locally and upstream, and apperrors.ErrUpstreamUnavailable
	// (wrapped) when the registry cannot be reached.
	Resolve(ctx context.Context, ownerID string) (*models.Owner, error)
}

type ownerDirectory struct {
	repo     repositories.OwnerRepository
	registry OwnerFetcher
	logger   *zap.Logger
}

// NewOwnerDirectory creates a new OwnerDirectory.
func NewOwnerDirectory(repo repositories.OwnerRepository, registry OwnerFetcher, logger *zap.Logger) OwnerDirectory {
	return &ownerDirectory{
		repo:     repo,
		registry: registry,
		logger:   logger.Named("owner-directory"),
	}
}

var _ OwnerDirectory = (*ownerDirectory)(nil)

func (d *ownerDirectory) Resolve(ctx context.Context, ownerID string) (*models.Owner, error) {
	owner, err := d.repo.GetByID(ctx, ownerID)
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("lookup owner %s: %w", ownerID, err)
	}

	fetched, err := d.registry.FetchOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOwnerNotFound) {
			return nil, apperrors.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("%w: fetch owner %s: %v", apperrors.ErrUpstreamUnavailable, ownerID, err)
	}

	err = d.repo.Create(ctx, fetched)
	if err == nil {
		d.logger.Info("Created owner from registry", zap.String("owner_id", ownerID))
		return fetched, nil
	}

	// A concurrent scan cycle resolved the same id first. The existing
	// row wins; re-read and return it.
	if errors.Is(err, apperrors.ErrConflict) {
		d.logger.Debug("Owner insert raced, re-reading", zap.String("owner_id", ownerID))
		existing, readErr := d.repo.GetByID(ctx, ownerID)
		if readErr != nil {
			return nil, fmt.Errorf("re-read owner %s after conflict: %w", ownerID, readErr)
		}
		return existing, nil
	}

	return nil, fmt.Errorf("persist owner %s: %w", ownerID, err)
}
