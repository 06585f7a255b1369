package repository

import (
	"context"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
)

type CreateClassInput struct {
	Name            string
	ImageURL        *string
	InstructorName  *string
	InstructorEmail string
	Seats           int
	Price           float64
}

type ClassRepository struct {
	db DBTX
}

func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

const classColumns = `id, name, image_url, instructor_name, instructor_email, seats, price, status, feedback, total_enrolled, created_at, updated_at`

func (r *ClassRepository) Create(ctx context.Context, input CreateClassInput) (*models.Class, error) {
	query := `
		INSERT INTO classes (name, image_url, instructor_name, instructor_email, seats, price, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING ` + classColumns

	var class models.Class
	err := r.db.QueryRow(
		ctx,
		query,
		input.Name,
		input.ImageURL,
		input.InstructorName,
		input.InstructorEmail,
		input.Seats,
		input.Price,
	).Scan(classScanTargets(&class)...)
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) GetByID(ctx context.Context, classID int64) (*models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	var class models.Class
	if err := r.db.QueryRow(ctx, query, classID).Scan(classScanTargets(&class)...); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query)
}

func (r *ClassRepository) ListApproved(ctx context.Context) ([]models.Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE status = 'approved'
		ORDER BY total_enrolled DESC, id ASC
	`
	return r.list(ctx, query)
}

func (r *ClassRepository) ListByInstructorEmail(ctx context.Context, email string) ([]models.Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE instructor_email = $1
		ORDER BY created_at DESC, id DESC
	`
	return r.list(ctx, query, email)
}

func (r *ClassRepository) UpdateStatus(ctx context.Context, classID int64, status models.ClassStatus) (*models.Class, error) {
	query := `
		UPDATE classes
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + classColumns

	var class models.Class
	if err := r.db.QueryRow(ctx, query, classID, status).Scan(classScanTargets(&class)...); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) UpdateFeedback(ctx context.Context, classID int64, feedback string) (*models.Class, error) {
	query := `
		UPDATE classes
		SET feedback = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + classColumns

	var class models.Class
	if err := r.db.QueryRow(ctx, query, classID, feedback).Scan(classScanTargets(&class)...); err != nil {
		return nil, err
	}
	return &class, nil
}

// ApplyEnrollment moves the seat and enrollment counters for one confirmed
// enrollment. The seats > 0 guard makes a sold-out class surface as
// pgx.ErrNoRows instead of a negative count.
func (r *ClassRepository) ApplyEnrollment(ctx context.Context, classID int64) (*models.Class, error) {
	query := `
		UPDATE classes
		SET total_enrolled = total_enrolled + 1, seats = seats - 1, updated_at = NOW()
		WHERE id = $1 AND seats > 0
		RETURNING ` + classColumns

	var class models.Class
	if err := r.db.QueryRow(ctx, query, classID).Scan(classScanTargets(&class)...); err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) list(ctx context.Context, query string, args ...any) ([]models.Class, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]models.Class, 0)
	for rows.Next() {
		var class models.Class
		if err := rows.Scan(classScanTargets(&class)...); err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return classes, nil
}

func classScanTargets(class *models.Class) []any {
	return []any{
		&class.ID,
		&class.Name,
		&class.ImageURL,
		&class.InstructorName,
		&class.InstructorEmail,
		&class.Seats,
		&class.Price,
		&class.Status,
		&class.Feedback,
		&class.TotalEnrolled,
		&class.CreatedAt,
		&class.UpdatedAt,
	}
}
