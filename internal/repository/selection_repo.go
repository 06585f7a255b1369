package repository

import (
	"context"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
)

type CreateSelectionInput struct {
	StudentEmail string
	ClassID      int64
	Price        float64
}

type SelectionRepository struct {
	db DBTX
}

func NewSelectionRepository(db DBTX) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) Create(ctx context.Context, input CreateSelectionInput) (*models.SelectedClass, error) {
	query := `
		INSERT INTO selected_classes (student_email, class_id, price)
		VALUES ($1, $2, $3)
		RETURNING id, student_email, class_id, price, created_at
	`

	var selection models.SelectedClass
	err := r.db.QueryRow(ctx, query, input.StudentEmail, input.ClassID, input.Price).Scan(
		&selection.ID,
		&selection.StudentEmail,
		&selection.ClassID,
		&selection.Price,
		&selection.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

func (r *SelectionRepository) GetByID(ctx context.Context, selectionID int64) (*models.SelectedClass, error) {
	query := `
		SELECT id, student_email, class_id, price, created_at
		FROM selected_classes
		WHERE id = $1
	`
	return r.get(ctx, query, selectionID)
}

func (r *SelectionRepository) GetByIDForUpdate(ctx context.Context, selectionID int64) (*models.SelectedClass, error) {
	query := `
		SELECT id, student_email, class_id, price, created_at
		FROM selected_classes
		WHERE id = $1
		FOR UPDATE
	`
	return r.get(ctx, query, selectionID)
}

func (r *SelectionRepository) ListByStudentEmail(ctx context.Context, email string) ([]models.SelectedClassDetail, error) {
	query := `
		SELECT sc.id, sc.student_email, sc.class_id, sc.price, sc.created_at,
		       c.name, c.image_url, c.instructor_email
		FROM selected_classes sc
		JOIN classes c ON c.id = sc.class_id
		WHERE sc.student_email = $1
		ORDER BY sc.created_at DESC, sc.id DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := make([]models.SelectedClassDetail, 0)
	for rows.Next() {
		var detail models.SelectedClassDetail
		if err := rows.Scan(
			&detail.ID,
			&detail.StudentEmail,
			&detail.ClassID,
			&detail.Price,
			&detail.CreatedAt,
			&detail.ClassName,
			&detail.ClassImageURL,
			&detail.InstructorEmail,
		); err != nil {
			return nil, err
		}
		selections = append(selections, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return selections, nil
}

// DeleteByID removes a selection scoped to its owner and returns the number
// of rows removed.
func (r *SelectionRepository) DeleteByID(ctx context.Context, selectionID int64, studentEmail string) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM selected_classes WHERE id = $1 AND student_email = $2`,
		selectionID,
		studentEmail,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *SelectionRepository) get(ctx context.Context, query string, selectionID int64) (*models.SelectedClass, error) {
	var selection models.SelectedClass
	err := r.db.QueryRow(ctx, query, selectionID).Scan(
		&selection.ID,
		&selection.StudentEmail,
		&selection.ClassID,
		&selection.Price,
		&selection.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &selection, nil
}
