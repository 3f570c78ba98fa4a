package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/asafarviv55/attendance-system-backend/internal/geofence"
	"github.com/asafarviv55/attendance-system-backend/internal/ids"
	"github.com/asafarviv55/attendance-system-backend/internal/models"
	"github.com/asafarviv55/attendance-system-backend/internal/repository"
)

var (
	ErrUnauthorizedLocation = errors.New("location not authorized for clock in/out")
	ErrDuplicateClockIn     = errors.New("already clocked in today")
	ErrNoOpenSession        = errors.New("no open session for today")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
)

type attendanceStore interface {
	Create(ctx context.Context, record models.AttendanceRecord) error
	GetByID(ctx context.Context, id string) (models.AttendanceRecord, error)
	FindOpenSession(ctx context.Context, userID string, workDate time.Time) (models.AttendanceRecord, error)
	Close(ctx context.Context, id string, clockOut time.Time, totalHours float64, lat, lon *float64) error
	ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.AttendanceRecord, error)
	AutoClose(ctx context.Context, id string, clockOut time.Time, totalHours float64) error
}

type locationStore interface {
	List(ctx context.Context) ([]models.AuthorizedLocation, error)
}

type AttendanceService struct {
	records   attendanceStore
	locations locationStore
	tz        *time.Location
	staleAge  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAttendanceService(records attendanceStore, locations locationStore, tz *time.Location, staleAge time.Duration, log zerolog.Logger) *AttendanceService {
	return &AttendanceService{
		records:   records,
		locations: locations,
		tz:        tz,
		staleAge:  staleAge,
		log:       log,
		now:       time.Now,
	}
}

// workDate truncates an instant to its calendar day in the configured
// timezone. The same instant can belong to different work dates in different
// zones, so every duplicate/open-session lookup goes through here.
func (s *AttendanceService) workDate(t time.Time) time.Time {
	local := t.In(s.tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *AttendanceService) checkGeofence(ctx context.Context, lat, lon float64) error {
	zones, err := s.locations.List(ctx)
	if err != nil {
		return err
	}
	if !geofence.Authorized(lat, lon, zones) {
		return ErrUnauthorizedLocation
	}
	return nil
}

func (s *AttendanceService) ClockIn(ctx context.Context, userID string, lat, lon float64) (models.AttendanceRecord, error) {
	if err := s.checkGeofence(ctx, lat, lon); err != nil {
		return models.AttendanceRecord{}, err
	}

	now := s.now().In(s.tz)
	record := models.AttendanceRecord{
		ID:               ids.New(),
		UserID:           userID,
		WorkDate:         s.workDate(now),
		ClockIn:          now,
		ClockInLatitude:  &lat,
		ClockInLongitude: &lon,
	}

	if err := s.records.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateWorkDate) {
			return models.AttendanceRecord{}, ErrDuplicateClockIn
		}
		return models.AttendanceRecord{}, err
	}

	return record, nil
}

type ClockOutResult struct {
	ClockOut   time.Time
	TotalHours float64
}

func (s *AttendanceService) ClockOut(ctx context.Context, userID string, lat, lon float64) (ClockOutResult, error) {
	if err := s.checkGeofence(ctx, lat, lon); err != nil {
		return ClockOutResult{}, err
	}

	now := s.now().In(s.tz)

	record, err := s.records.FindOpenSession(ctx, userID, s.workDate(now))
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			return ClockOutResult{}, ErrNoOpenSession
		}
		return ClockOutResult{}, err
	}

	totalHours := now.Sub(record.ClockIn).Hours()

	if err := s.records.Close(ctx, record.ID, now, totalHours, &lat, &lon); err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			return ClockOutResult{}, ErrNoOpenSession
		}
		return ClockOutResult{}, err
	}

	return ClockOutResult{ClockOut: now, TotalHours: totalHours}, nil
}

// SweepStaleSessions closes open sessions whose clock-in is older than the
// configured stale age. Closed sessions are credited the full stale age and
// flagged auto_closed so payroll can review them.
func (s *AttendanceService) SweepStaleSessions(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.staleAge)

	records, err := s.records.ListOpenBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, record := range records {
		clockOut := record.ClockIn.Add(s.staleAge)
		if err := s.records.AutoClose(ctx, record.ID, clockOut, s.staleAge.Hours()); err != nil {
			s.log.Error().Err(err).Str("attendance_id", record.ID).Msg("auto close failed")
			continue
		}
		closed++
	}
	return closed, nil
}
