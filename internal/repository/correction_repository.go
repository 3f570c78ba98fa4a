package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

var ErrCorrectionNotFound = errors.New("correction request not found")

const correctionColumns = `
	id, user_id, attendance_id, request_reason, request_date, status, manager_response, response_date
`

type CorrectionRepository struct {
	pool *pgxpool.Pool
}

func NewCorrectionRepository(pool *pgxpool.Pool) *CorrectionRepository {
	return &CorrectionRepository{pool: pool}
}

func (r *CorrectionRepository) Create(ctx context.Context, req models.CorrectionRequest) error {
	const query = `
		INSERT INTO attendance_correction_requests (
			id, user_id, attendance_id, request_reason, request_date, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.UserID,
		req.AttendanceID,
		req.RequestReason,
		req.RequestDate,
		req.Status,
	)
	return err
}

func (r *CorrectionRepository) Respond(ctx context.Context, id string, status models.RequestStatus, response string, respondedAt time.Time) error {
	const query = `
		UPDATE attendance_correction_requests
		SET status = $2, manager_response = $3, response_date = $4
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query, id, status, response, respondedAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCorrectionNotFound
	}
	return nil
}

func (r *CorrectionRepository) List(ctx context.Context) ([]models.CorrectionRequest, error) {
	const query = `
		SELECT ` + correctionColumns + `
		FROM attendance_correction_requests
		ORDER BY request_date DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.CorrectionRequest
	for rows.Next() {
		req, err := scanCorrection(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func scanCorrection(row pgx.Row) (models.CorrectionRequest, error) {
	var req models.CorrectionRequest
	if err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.AttendanceID,
		&req.RequestReason,
		&req.RequestDate,
		&req.Status,
		&req.ManagerResponse,
		&req.ResponseDate,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.CorrectionRequest{}, ErrCorrectionNotFound
		}
		return models.CorrectionRequest{}, err
	}
	return req, nil
}
