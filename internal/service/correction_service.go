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
	ErrInvalidStatus      = errors.New("status must be approved or denied")
	ErrCorrectionNotFound = errors.New("correction request not found")
)

type correctionStore interface {
	Create(ctx context.Context, req models.CorrectionRequest) error
	Respond(ctx context.Context, id string, status models.RequestStatus, response string, respondedAt time.Time) error
	List(ctx context.Context) ([]models.CorrectionRequest, error)
}

type CorrectionService struct {
	corrections correctionStore
	records     attendanceStore
	tz          *time.Location
	now         func() time.Time
}

func NewCorrectionService(corrections correctionStore, records attendanceStore, tz *time.Location) *CorrectionService {
	return &CorrectionService{
		corrections: corrections,
		records:     records,
		tz:          tz,
		now:         time.Now,
	}
}

func (s *CorrectionService) Request(ctx context.Context, userID, attendanceID, reason string) (models.CorrectionRequest, error) {
	if _, err := s.records.GetByID(ctx, attendanceID); err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			return models.CorrectionRequest{}, ErrAttendanceNotFound
		}
		return models.CorrectionRequest{}, err
	}

	req := models.CorrectionRequest{
		ID:            ids.New(),
		UserID:        userID,
		AttendanceID:  attendanceID,
		RequestReason: reason,
		RequestDate:   s.now().In(s.tz),
		Status:        models.StatusPending,
	}

	if err := s.corrections.Create(ctx, req); err != nil {
		return models.CorrectionRequest{}, err
	}
	return req, nil
}

// Respond performs the single pending -> approved|denied transition. Any
// other status value is rejected before touching storage.
func (s *CorrectionService) Respond(ctx context.Context, id string, status models.RequestStatus, response string) error {
	if status != models.StatusApproved && status != models.StatusDenied {
		return ErrInvalidStatus
	}

	if err := s.corrections.Respond(ctx, id, status, response, s.now().In(s.tz)); err != nil {
		if errors.Is(err, repository.ErrCorrectionNotFound) {
			return ErrCorrectionNotFound
		}
		return err
	}
	return nil
}

func (s *CorrectionService) List(ctx context.Context) ([]models.CorrectionRequest, error) {
	return s.corrections.List(ctx)
}
