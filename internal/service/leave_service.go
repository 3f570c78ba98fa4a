package service

import (
	"context"
	"errors"
	"time"

	"github.com/asafarviv55/attendance-system-backend/internal/ids"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/repository"
)

var (
	ErrLeaveNotFound    = errors.New("leave request not found")
	ErrInvalidDateRange = errors.New("end date before start date")
)

type leaveStore interface {
	Create(ctx context.Context, req models.LeaveRequest) error
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error
	List(ctx context.Context) ([]models.LeaveRequest, error)
}

type LeaveService struct {
	leaves leaveStore
}

func NewLeaveService(leaves leaveStore) *LeaveService {
	return &LeaveService{leaves: leaves}
}

func (s *LeaveService) Request(ctx context.Context, userID string, startDate, endDate time.Time, reason string) (models.LeaveRequest, error) {
	if endDate.Before(startDate) {
		return models.LeaveRequest{}, ErrInvalidDateRange
	}

	req := models.LeaveRequest{
		ID:        ids.New(),
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
		Status:    models.StatusPending,
	}

	if err := s.leaves.Create(ctx, req); err != nil {
		return models.LeaveRequest{}, err
	}
	return req, nil
}

// ApproveDeny applies the same status validation as correction responses;
// free-form statuses are rejected everywhere.
func (s *LeaveService) ApproveDeny(ctx context.Context, id string, status models.RequestStatus) error {
	if status != models.StatusApproved && status != models.StatusDenied {
		return ErrInvalidStatus
	}

	if err := s.leaves.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrLeaveNotFound) {
			return ErrLeaveNotFound
		}
		return err
	}
	return nil
}

func (s *LeaveService) List(ctx context.Context) ([]models.LeaveRequest, error) {
	return s.leaves.List(ctx)
}
