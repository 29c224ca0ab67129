package models

import (
	"time"
)

// User defines the login identity model based on the 'users' table
type User struct {
	ID          int64      `json:"id" db:"id" example:"1"`                                                  // Unique identifier for the user
	Username    string     `json:"username" db:"username" example:"asha.rao"`                               // Login username, globally unique (case-sensitive)
	Password    string     `json:"-" db:"password"`                                                         // User's hashed password (excluded from JSON)
	Email       string     `json:"email" db:"email" example:"asha@example.com"`                             // User's email address
	FirstName   string     `json:"firstName" db:"first_name" example:"Asha"`                                // User's first name
	LastName    string     `json:"lastName" db:"last_name" example:"Rao"`                                   // User's last name
	RoleType    RoleType   `json:"roleType" db:"role_type" example:"STUDENT"`                               // User's role (STAFF or STUDENT)
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`                // Timestamp when the user was created
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`                // Timestamp when the user was last updated
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at" example:"2024-04-20T18:00:00Z"` // Timestamp of the last login (nullable)

	Profile *StudentProfile `json:"profile,omitempty"` // Relation, no db tag
}

// IsStaff reports whether the user holds the staff role.
func (u *User) IsStaff() bool {
	return u.RoleType == RoleStaff
}
