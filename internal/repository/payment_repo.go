package repository

import (
	"context"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
)

type CreatePaymentInput struct {
	SelectedClassID int64
	ClassID         int64
	StudentEmail    string
	Price           float64
	TransactionID   string
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a payment record. transaction_id carries a unique
// constraint, so replaying a provider transaction fails with a 23505.
func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (selected_class_id, class_id, student_email, price, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, selected_class_id, class_id, student_email, price, transaction_id, created_at
	`

	var payment models.Payment
	err := r.db.QueryRow(
		ctx,
		query,
		input.SelectedClassID,
		input.ClassID,
		input.StudentEmail,
		input.Price,
		input.TransactionID,
	).Scan(
		&payment.ID,
		&payment.SelectedClassID,
		&payment.ClassID,
		&payment.StudentEmail,
		&payment.Price,
		&payment.TransactionID,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	query := `
		SELECT id, selected_class_id, class_id, student_email, price, transaction_id, created_at
		FROM payments
		WHERE transaction_id = $1
	`

	var payment models.Payment
	err := r.db.QueryRow(ctx, query, transactionID).Scan(
		&payment.ID,
		&payment.SelectedClassID,
		&payment.ClassID,
		&payment.StudentEmail,
		&payment.Price,
		&payment.TransactionID,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByStudentEmail(ctx context.Context, email string) ([]models.Payment, error) {
	query := `
		SELECT id, selected_class_id, class_id, student_email, price, transaction_id, created_at
		FROM payments
		WHERE student_email = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var payment models.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.SelectedClassID,
			&payment.ClassID,
			&payment.StudentEmail,
			&payment.Price,
			&payment.TransactionID,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
