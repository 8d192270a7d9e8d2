package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MariiaZhytnikova/Airguardian/pkg/apperrors"
	"github.com/MariiaZhytnikova/Airguardian/pkg/models"
)

// stubDirectory returns a fixed owner or error without any storage.
type stubDirectory struct {
	owner *models.Owner
	err   error
}

func (s *stubDirectory) Resolve(_ context.Context, _ string) (*models.Owner, error) {
	return s.owner, s.err
}

func TestViolationRecorder_Record_AssignsTimestampAtWrite(t *testing.T) {
	violations := newMemViolationRepo(nil)
	recorder := NewViolationRecorder(&stubDirectory{owner: registryOwner("o1")}, violations, zap.NewNop())

	before := time.Now().UTC()
	violation, err := recorder.Record(context.Background(), strPtr("d1"), "o1", 1, 2, 3)
	after := time.Now().UTC()

	require.NoError(t, err)
	assert.Equal(t, "o1", violation.OwnerID)
	assert.Equal(t, "d1", *violation.DroneID)
	assert.Equal(t, 1.0, violation.X)
	assert.Equal(t, 2.0, violation.Y)
	assert.Equal(t, 3.0, violation.Z)
	assert.False(t, violation.Timestamp.Before(before))
	assert.False(t, violation.Timestamp.After(after))
	assert.Len(t, violations.violations, 1)
}

func TestViolationRecorder_Record_ExactlyOneRowPerCall(t *testing.T) {
	violations := newMemViolationRepo(nil)
	recorder := NewViolationRecorder(&stubDirectory{owner: registryOwner("o1")}, violations, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := recorder.Record(context.Background(), nil, "o1", 0, 0, 0)
		require.NoError(t, err)
	}

	assert.Len(t, violations.violations, 3)
	assert.Equal(t, int64(3), violations.violations[2].ID)
}

func TestViolationRecorder_Record_UnresolvableOwnerWritesNothing(t *testing.T) {
	violations := newMemViolationRepo(nil)
	recorder := NewViolationRecorder(&stubDirectory{err: apperrors.ErrOwnerNotFound}, violations, zap.NewNop())

	_, err := recorder.Record(context.Background(), nil, "o404", 0, 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrOwnerNotFound)
	assert.Empty(t, violations.violations)
}

func TestViolationRecorder_Record_StorageFailurePropagates(t *testing.T) {
	violations := newMemViolationRepo(nil)
	violations.createErr = errors.New("disk full")
	recorder := NewViolationRecorder(&stubDirectory{owner: registryOwner("o1")}, violations, zap.NewNop())

	_, err := recorder.Record(context.Background(), nil, "o1", 0, 0, 0)
	require.Error(t, err)
	assert.Empty(t, violations.violations)
}
