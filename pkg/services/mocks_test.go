package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MariiaZhytnikova/Airguardian/pkg/apperrors"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

// memOwnerRepo mirrors the postgres owner repository semantics in memory.
type memOwnerRepo struct {
	mu          sync.Mutex
	owners      map[string]*models.Owner
	getErr      error
	createErr   error
	createCalls int
}

func newMemOwnerRepo() *memOwnerRepo {
	return &memOwnerRepo{owners: make(map[string]*models.Owner)}
}

func (r *memOwnerRepo) GetByID(_ context.Context, id string) (*models.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	owner, ok := r.owners[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *owner
	return &copied, nil
}

func (r *memOwnerRepo) Create(_ context.Context, owner *models.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.owners[owner.ID]; exists {
		return apperrors.ErrConflict
	}
	copied := *owner
	copied.CreatedAt = time.Now().UTC()
	r.owners[owner.ID] = &copied
	return nil
}

// memViolationRepo mirrors the postgres violation repository in memory.
type memViolationRepo struct {
	mu         sync.Mutex
	violations []*models.Violation
	owners     *memOwnerRepo
	createErr  error
	nextID     int64
}

func newMemViolationRepo(owners *memOwnerRepo) *memViolationRepo {
	return &memViolationRepo{owners: owners}
}

func (r *memViolationRepo) Create(_ context.Context, violation *models.Violation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	violation.ID = r.nextID
	copied := *violation
	r.violations = append(r.violations, &copied)
	return nil
}

func (r *memViolationRepo) ListSince(_ context.Context, since time.Time) ([]*models.ViolationWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.ViolationWithOwner
	for _, v := range r.violations {
		if v.Timestamp.Before(since) {
			continue
		}
		joined := &models.ViolationWithOwner{
			DroneID:   v.DroneID,
			Timestamp: v.Timestamp,
			X:         v.X,
			Y:         v.Y,
			Z:         v.Z,
		}
		if r.owners != nil {
			if owner, ok := r.owners.owners[v.OwnerID]; ok {
				joined.Owner = owner.Public()
			}
		}
		result = append(result, joined)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

// mockRegistry implements OwnerFetcher against a fixed owner set.
type mockRegistry struct {
	mu     sync.Mutex
	owners map[string]*models.Owner
	err    error
	calls  int
}

func (m *mockRegistry) FetchOwner(_ context.Context, ownerID string) (*models.Owner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	owner, ok := m.owners[ownerID]
	if !ok {
		return nil, apperrors.ErrOwnerNotFound
	}
	copied := *owner
	return &copied, nil
}

// mockFleet implements FleetFetcher with a canned snapshot.
type mockFleet struct {
	mu      sync.Mutex
	fleet   []models.RawDronePosition
	err     error
	fetches int
}

func (m *mockFleet) FetchFleet(_ context.Context) ([]models.RawDronePosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.fleet, nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func registryOwner(id string) *models.Owner {
	return &models.Owner{
		ID:                   id,
		FirstName:            "Jane",
		LastName:             "Doe",
		Email:                "jane@example.com",
		PhoneNumber:          "+358 40 1234567",
		SocialSecurityNumber: "010101-123X",
	}
}
