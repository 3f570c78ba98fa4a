package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/repository"
)

type fakeLeaveStore struct {
	created  []models.LeaveRequest
	statuses map[string]models.RequestStatus
	missing  bool
}

func (s *fakeLeaveStore) Create(_ context.Context, req models.LeaveRequest) error {
	s.created = append(s.created, req)
	return nil
}

func (s *fakeLeaveStore) UpdateStatus(_ context.Context, id string, status models.RequestStatus) error {
	if s.missing {
		return repository.ErrLeaveNotFound
	}
	if s.statuses == nil {
		s.statuses = make(map[string]models.RequestStatus)
	}
	s.statuses[id] = status
	return nil
}

func (s *fakeLeaveStore) List(_ context.Context) ([]models.LeaveRequest, error) {
	return s.created, nil
}

func TestLeaveRequestDefaultsToPending(t *testing.T) {
	store := &fakeLeaveStore{}
	svc := NewLeaveService(store)

	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)

	req, err := svc.Request(context.Background(), "user-1", start, end, "vacation")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, req.Status)
	require.Len(t, store.created, 1)
}

func TestLeaveRequestRejectsInvertedRange(t *testing.T) {
	store := &fakeLeaveStore{}
	svc := NewLeaveService(store)

	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	_, err := svc.Request(context.Background(), "user-1", start, start.AddDate(0, 0, -1), "oops")
	require.Error(t, err)
	require.Empty(t, store.created)
}

// Leave decisions use the same whitelist as correction responses; the
// free-form statuses the old behavior allowed are rejected.
func TestLeaveApproveDenyValidatesStatus(t *testing.T) {
	store := &fakeLeaveStore{}
	svc := NewLeaveService(store)

	err := svc.ApproveDeny(context.Background(), "req-1", models.RequestStatus("postponed"))
	require.ErrorIs(t, err, ErrInvalidStatus)
	require.Empty(t, store.statuses)

	require.NoError(t, svc.ApproveDeny(context.Background(), "req-1", models.StatusApproved))
	require.Equal(t, models.StatusApproved, store.statuses["req-1"])
}

func TestLeaveApproveDenyUnknownRequest(t *testing.T) {
	svc := NewLeaveService(&fakeLeaveStore{missing: true})

	err := svc.ApproveDeny(context.Background(), "ghost", models.StatusDenied)
	require.ErrorIs(t, err, ErrLeaveNotFound)
}
