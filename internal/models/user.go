package models

import "time"

type RoleName string

const (
	RoleAdmin   RoleName = "admin"
	RoleManager RoleName = "manager"
	RoleUser    RoleName = "user"
)

type Role struct {
	ID       string
	RoleName RoleName
}

type User struct {
	ID                   string
	Email                string
	PasswordHash         []byte
	RoleID               string
	RoleName             RoleName
	ResetPasswordToken   *string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
