package dto

// CreateStudentRequest represents direct student creation by staff, with no
// registration involved.
type CreateStudentRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	Email           string `json:"email" binding:"omitempty,email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	CourseName      string `json:"courseName"`
	CourseDuration  string `json:"courseDuration"`
	ProgressPercent int    `json:"progressPercent" binding:"gte=0,lte=100"`
	Notes           string `json:"notes"`
}

// UpdateStudentRequest represents a staff update of an existing student
// account and its profile. Password is only changed when non-empty.
type UpdateStudentRequest struct {
	Email           string `json:"email" binding:"omitempty,email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Password        string `json:"password"`
	CourseName      string `json:"courseName"`
	CourseDuration  string `json:"courseDuration"`
	ProgressPercent int    `json:"progressPercent"`
	Notes           string `json:"notes"`
}
