package models

import "time"

// AttendanceRecord is one work session. An open session has ClockOut nil;
// the (UserID, WorkDate) pair is unique at the storage layer, so a user can
// open at most one session per calendar day.
type AttendanceRecord struct {
	ID                string
	UserID            string
	WorkDate          time.Time
	ClockIn           time.Time
	ClockOut          *time.Time
	TotalHours        *float64
	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64
	AutoClosed        bool
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDenied   RequestStatus = "denied"
)

type CorrectionRequest struct {
	ID              string
	UserID          string
	AttendanceID    string
	RequestReason   string
	RequestDate     time.Time
	Status          RequestStatus
	ManagerResponse *string
	ResponseDate    *time.Time
}
