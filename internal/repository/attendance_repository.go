package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateWorkDate  = errors.New("attendance record already exists for this work date")
)

const attendanceColumns = `
	id, user_id, work_date, clock_in, clock_out, total_hours,
	clock_in_latitude, clock_in_longitude, clock_out_latitude, clock_out_longitude, auto_closed
`

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create inserts a new open session. The unique (user_id, work_date)
// constraint makes the one-clock-in-per-day invariant hold even when two
// requests race past any prior existence check.
func (r *AttendanceRepository) Create(ctx context.Context, record models.AttendanceRecord) error {
	const query = `
		INSERT INTO attendance (
			id, user_id, work_date, clock_in, clock_in_latitude, clock_in_longitude
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.WorkDate,
		record.ClockIn,
		record.ClockInLatitude,
		record.ClockInLongitude,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateWorkDate
	}
	return err
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (models.AttendanceRecord, error) {
	const query = `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// FindOpenSession returns the user's record for the given work date with
// clock_out still unset.
func (r *AttendanceRepository) FindOpenSession(ctx context.Context, userID string, workDate time.Time) (models.AttendanceRecord, error) {
	const query = `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE user_id = $1 AND work_date = $2 AND clock_out IS NULL
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, userID, workDate))
}

func (r *AttendanceRepository) Close(ctx context.Context, id string, clockOut time.Time, totalHours float64, lat, lon *float64) error {
	const query = `
		UPDATE attendance
		SET clock_out = $2, total_hours = $3, clock_out_latitude = $4, clock_out_longitude = $5
		WHERE id = $1 AND clock_out IS NULL
	`

	cmd, err := r.pool.Exec(ctx, query, id, clockOut, totalHours, lat, lon)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAttendanceNotFound
	}
	return nil
}

func (r *AttendanceRepository) List(ctx context.Context, limit, offset int) ([]models.AttendanceRecord, error) {
	const query = `
		SELECT ` + attendanceColumns + `
		FROM attendance
		ORDER BY clock_in DESC
		LIMIT $1 OFFSET $2
	`
	return r.scanMany(ctx, query, limit, offset)
}

func (r *AttendanceRepository) ListByWorkDateRange(ctx context.Context, from, to time.Time) ([]models.AttendanceRecord, error) {
	const query = `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE work_date >= $1 AND work_date < $2
		ORDER BY work_date, user_id
	`
	return r.scanMany(ctx, query, from, to)
}

func (r *AttendanceRepository) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.AttendanceRecord, error) {
	const query = `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE clock_out IS NULL AND clock_in < $1
	`
	return r.scanMany(ctx, query, cutoff)
}

// AutoClose stamps an abandoned session closed at the given instant and
// flags it so reports can tell it apart from a real clock-out.
func (r *AttendanceRepository) AutoClose(ctx context.Context, id string, clockOut time.Time, totalHours float64) error {
	const query = `
		UPDATE attendance
		SET clock_out = $2, total_hours = $3, auto_closed = TRUE
		WHERE id = $1 AND clock_out IS NULL
	`
	_, err := r.pool.Exec(ctx, query, id, clockOut, totalHours)
	return err
}

func (r *AttendanceRepository) scanMany(ctx context.Context, query string, args ...any) ([]models.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		record, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *AttendanceRepository) scanOne(row pgx.Row) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.WorkDate,
		&record.ClockIn,
		&record.ClockOut,
		&record.TotalHours,
		&record.ClockInLatitude,
		&record.ClockInLongitude,
		&record.ClockOutLatitude,
		&record.ClockOutLongitude,
		&record.AutoClosed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.AttendanceRecord{}, ErrAttendanceNotFound
		}
		return models.AttendanceRecord{}, err
	}
	return record, nil
}
