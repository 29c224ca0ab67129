package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for student profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUserID retrieves the profile owned by a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	profile := &models.StudentProfile{}
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, course_name, course_duration, progress_percent, enrolled_on, notes
		FROM student_profiles
		WHERE user_id = $1`,
		userID).Scan(
		&profile.ID, &profile.UserID, &profile.CourseName, &profile.CourseDuration,
		&profile.ProgressPercent, &profile.EnrolledOn, &profile.Notes)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving student profile: %w", err)
	}

	return profile, nil
}

// GetOrCreateByUserID retrieves a user's profile, creating an empty one if
// it does not exist yet. The insert tolerates a concurrent create, so the
// lookup afterwards always finds exactly one row.
func (r *ProfileRepository) GetOrCreateByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO student_profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error ensuring student profile: %w", err)
	}

	return r.GetByUserID(ctx, userID)
}
