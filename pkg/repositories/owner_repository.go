package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/MariiaZhytnikova/Airguardian/pkg/apperrors"
	"github.com/MariiaZhytnikova/Airguardian/pkg/database"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

// OwnerRepository defines the interface for owner data access.
type OwnerRepository interface {
	// GetByID returns the owner with the given id, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Owner, error)
	// Create inserts a new owner row. A concurrent insert of the same id
	// returns apperrors.ErrConflict without touching the existing row.
	Create(ctx context.Context, owner *models.Owner) error
}

// ownerRepository implements OwnerRepository using PostgreSQL.
type ownerRepository struct {
	db *database.DB
}

// NewOwnerRepository creates a new owner repository.
func NewOwnerRepository(db *database.DB) OwnerRepository {
	return &ownerRepository{db: db}
}

// GetByID retrieves an owner by its registry-assigned id.
func (r *ownerRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	query := `
		SELECT id, first_name, last_name, email, phone_number,
		       social_security_number, purchased_at, created_at
		FROM owners
		WHERE id = $1`

	var owner models.Owner
	err := r.db.QueryRow(ctx, query, id).Scan(
		&owner.ID,
		&owner.FirstName,
		&owner.LastName,
		&owner.Email,
		&owner.PhoneNumber,
		&owner.SocialSecurityNumber,
		&owner.PurchasedAt,
		&owner.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get owner: %w", err)
	}

	return &owner, nil
}

// Create inserts a new owner. ON CONFLICT DO NOTHING keeps a concurrent
// resolution of the same previously-unknown id from crashing: the loser
// of the race gets apperrors.ErrConflict and re-reads the existing row.
// Existing rows are never overwritten.
func (r *ownerRepository) Create(ctx context.Context, owner *models.Owner) error {
	query := `
		INSERT INTO owners (id, first_name, last_name, email, phone_number,
		                    social_security_number, purchased_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (id) DO NOTHING`

	result, err := r.db.Exec(ctx, query,
		owner.ID,
		owner.FirstName,
		owner.LastName,
		owner.Email,
		owner.PhoneNumber,
		owner.SocialSecurityNumber,
		owner.PurchasedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create owner: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	return nil
}

// Ensure ownerRepository implements OwnerRepository at compile time.
var _ OwnerRepository = (*ownerRepository)(nil)
