package models

import (
	"time"
)

// Progress percent bounds enforced on every profile write.
const (
	MinProgressPercent = 0
	MaxProgressPercent = 100
)

// StudentProfile defines the per-account progress record based on the
// 'student_profiles' table. Exactly one profile exists per user; it is
// created at provisioning time or lazily on first access.
type StudentProfile struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"userId" db:"user_id"`
	CourseName      string     `json:"courseName" db:"course_name" example:"Cloud Computing"`
	CourseDuration  string     `json:"courseDuration" db:"course_duration" example:"6 months"`
	ProgressPercent int        `json:"progressPercent" db:"progress_percent" example:"40"`
	EnrolledOn      *time.Time `json:"enrolledOn,omitempty" db:"enrolled_on"` // Pointer for potential NULL
	Notes           string     `json:"notes" db:"notes"`
}

// ValidProgress reports whether p is within the allowed progress range.
func ValidProgress(p int) bool {
	return p >= MinProgressPercent && p <= MaxProgressPercent
}
