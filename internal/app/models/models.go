package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStaff   RoleType = "STAFF"
	RoleStudent RoleType = "STUDENT"
)
