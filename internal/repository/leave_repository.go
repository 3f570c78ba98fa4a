package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/asafarviv55/attendance-system-backend/internal/models"
)

var ErrLeaveNotFound = errors.New("leave request not found")

type LeaveRepository struct {
	pool *pgxpool.Pool
}

func NewLeaveRepository(pool *pgxpool.Pool) *LeaveRepository {
	return &LeaveRepository{pool: pool}
}

func (r *LeaveRepository) Create(ctx context.Context, req models.LeaveRequest) error {
	const query = `
		INSERT INTO leave_requests (id, user_id, start_date, end_date, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.UserID,
		req.StartDate,
		req.EndDate,
		req.Reason,
		req.Status,
	)
	return err
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	const query = `UPDATE leave_requests SET status = $2 WHERE id = $1`

	cmd, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeaveNotFound
	}
	return nil
}

func (r *LeaveRepository) List(ctx context.Context) ([]models.LeaveRequest, error) {
	const query = `
		SELECT id, user_id, start_date, end_date, reason, status, created_at
		FROM leave_requests
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.LeaveRequest
	for rows.Next() {
		var req models.LeaveRequest
		if err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.StartDate,
			&req.EndDate,
			&req.Reason,
			&req.Status,
			&req.CreatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}
