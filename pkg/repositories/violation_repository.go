package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/MariiaZhytnikova/Airguardian/pkg/database"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

// ViolationRepository defines the interface for violation data access.
type ViolationRepository interface {
	// Create inserts a new violation row and fills in its generated id.
	Create(ctx context.Context, violation *models.Violation) error
	// ListSince returns violations with timestamp >= since, joined with
	// their owner's public fields, newest first.
	ListSince(ctx context.Context, since time.Time) ([]*models.ViolationWithOwner, error)
}

// violationRepository implements ViolationRepository using PostgreSQL.
type violationRepository struct {
	db *database.DB
}

// NewViolationRepository creates a new violation repository.
func NewViolationRepository(db *database.DB) ViolationRepository {
	return &violationRepository{db: db}
}

// Create inserts a violation. The row is committed synchronously; it is
// visible to ListSince as soon as this returns.
func (r *violationRepository) Create(ctx context.Context, violation *models.Violation) error {
	query := `
		INSERT INTO violations (drone_id, owner_id, x, y, z, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		violation.DroneID,
		violation.OwnerID,
		violation.X,
		violation.Y,
		violation.Z,
		violation.Timestamp,
	).Scan(&violation.ID)
	if err != nil {
		return fmt.Errorf("failed to create violation: %w", err)
	}

	return nil
}

// ListSince retrieves recent violations joined with owner public fields.
func (r *violationRepository) ListSince(ctx context.Context, since time.Time) ([]*models.ViolationWithOwner, error) {
	query := `
		SELECT v.drone_id, v.timestamp, v.x, v.y, v.z,
		       o.first_name, o.last_name, o.social_security_number, o.phone_number
		FROM violations v
		JOIN owners o ON o.id = v.owner_id
		WHERE v.timestamp >= $1
		ORDER BY v.timestamp DESC`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list violations: %w", err)
	}
	defer rows.Close()

	var violations []*models.ViolationWithOwner
	for rows.Next() {
		var v models.ViolationWithOwner
		err := rows.Scan(
			&v.DroneID,
			&v.Timestamp,
			&v.X,
			&v.Y,
			&v.Z,
			&v.Owner.FirstName,
			&v.Owner.LastName,
			&v.Owner.SocialSecurityNumber,
			&v.Owner.PhoneNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating violations: %w", err)
	}

	return violations, nil
}

// Ensure violationRepository implements ViolationRepository at compile time.
var _ ViolationRepository = (*violationRepository)(nil)
