package models

import "time"

type LeaveRequest struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    RequestStatus
	CreatedAt time.Time
}
