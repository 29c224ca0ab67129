package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursehub/regportal/internal/app/models"
	"github.com/coursehub/regportal/internal/db"
	"github.com/coursehub/regportal/internal/pkg/apperrors"
	"github.com/coursehub/regportal/internal/pkg/dberrors"
)

// Name of the unique index backing users.username. A duplicate-key failure
// on it is the concurrency backstop for username uniqueness.
const usernameUniqueConstraint = "users_username_key"

// UserRepository handles database operations for login identities
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// insertUser inserts a user row and fills in the generated fields. It is
// shared with the provisioning transaction in the registration repository.
func insertUser(ctx context.Context, q DBTX, user *models.User) error {
	err := q.QueryRow(ctx, `
		INSERT INTO users (username, password, email, first_name, last_name, role_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Password, user.Email, user.FirstName, user.LastName, user.RoleType).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usernameUniqueConstraint) {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// insertProfile inserts a profile row for a user. Shared with the
// provisioning transaction.
func insertProfile(ctx context.Context, q DBTX, profile *models.StudentProfile) error {
	err := q.QueryRow(ctx, `
		INSERT INTO student_profiles (user_id, course_name, course_duration, progress_percent, enrolled_on, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		profile.UserID, profile.CourseName, profile.CourseDuration, profile.ProgressPercent,
		profile.EnrolledOn, profile.Notes).
		Scan(&profile.ID)

	if err != nil {
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return nil
}

// CreateStaff inserts a staff account with no profile.
func (r *UserRepository) CreateStaff(ctx context.Context, user *models.User) error {
	return insertUser(ctx, r.db, user)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, email, first_name, last_name, role_type, created_at, updated_at, last_login_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Username, &user.Password, &user.Email, &user.FirstName, &user.LastName,
		&user.RoleType, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username. Matching is case-sensitive
// exact, following the store's default text equality.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, password, email, first_name, last_name, role_type, created_at, updated_at, last_login_at
		FROM users
		WHERE username = $1`,
		username).Scan(
		&user.ID, &user.Username, &user.Password, &user.Email, &user.FirstName, &user.LastName,
		&user.RoleType, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}

// CreateStudentWithProfile creates a student account and its profile as one
// unit. Used by direct staff creation; provisioning from a registration goes
// through the registration repository instead.
func (r *UserRepository) CreateStudentWithProfile(ctx context.Context, user *models.User, profile *models.StudentProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUser(ctx, tx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		return insertProfile(ctx, tx, profile)
	})
}

// UpdateStudentWithProfile updates an account's contact fields (and password
// when updatePassword is set) together with its profile, all-or-nothing.
func (r *UserRepository) UpdateStudentWithProfile(ctx context.Context, user *models.User, updatePassword bool, profile *models.StudentProfile) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var err error
		if updatePassword {
			_, err = tx.Exec(ctx, `
				UPDATE users
				SET email = $1, first_name = $2, last_name = $3, password = $4, updated_at = $5
				WHERE id = $6`,
				user.Email, user.FirstName, user.LastName, user.Password, time.Now(), user.ID)
		} else {
			_, err = tx.Exec(ctx, `
				UPDATE users
				SET email = $1, first_name = $2, last_name = $3, updated_at = $4
				WHERE id = $5`,
				user.Email, user.FirstName, user.LastName, time.Now(), user.ID)
		}
		if err != nil {
			return fmt.Errorf("error updating user: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE student_profiles
			SET course_name = $1, course_duration = $2, progress_percent = $3, notes = $4
			WHERE user_id = $5`,
			profile.CourseName, profile.CourseDuration, profile.ProgressPercent, profile.Notes, profile.UserID)
		if err != nil {
			return fmt.Errorf("error updating student profile: %w", err)
		}

		return nil
	})
}

// ListStudents retrieves all student accounts with their profiles, ordered
// by account id.
func (r *UserRepository) ListStudents(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.role_type,
		       u.created_at, u.updated_at, u.last_login_at,
		       p.id, p.course_name, p.course_duration, p.progress_percent, p.enrolled_on, p.notes
		FROM users u
		LEFT JOIN student_profiles p ON p.user_id = u.id
		WHERE u.role_type = $1
		ORDER BY u.id`,
		models.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.User
	for rows.Next() {
		user := &models.User{}
		var (
			profileID       *int64
			courseName      *string
			courseDuration  *string
			progressPercent *int
			enrolledOn      *time.Time
			notes           *string
		)
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.RoleType,
			&user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
			&profileID, &courseName, &courseDuration, &progressPercent, &enrolledOn, &notes,
		); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}

		if profileID != nil {
			user.Profile = &models.StudentProfile{
				ID:              *profileID,
				UserID:          user.ID,
				CourseName:      *courseName,
				CourseDuration:  *courseDuration,
				ProgressPercent: *progressPercent,
				EnrolledOn:      enrolledOn,
				Notes:           *notes,
			}
		}
		students = append(students, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET last_login_at = $1
		WHERE id = $2`,
		time.Now(), userID)

	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}

	return nil
}
