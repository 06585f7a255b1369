package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Samychowdhury01/melody-makers-academy-server/internal/models"
	"github.com/Samychowdhury01/melody-makers-academy-server/internal/repository"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSelectionNotFound = errors.New("selection not found")
	ErrClassNotAvailable = errors.New("class not available")
	ErrDuplicatePayment  = errors.New("payment already recorded")
	ErrSoldOut           = errors.New("no seats left")
)

// EnrollmentService owns the selection lifecycle: picking a class and
// converting a paid selection into a confirmed enrollment.
type EnrollmentService struct {
	db *pgxpool.Pool
}

func NewEnrollmentService(db *pgxpool.Pool) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// SelectClass records a student's pending enrollment intent. The price is
// snapshotted from the class row so later admin edits do not change what
// the student owes.
func (s *EnrollmentService) SelectClass(ctx context.Context, studentEmail string, classID int64) (*models.SelectedClass, error) {
	if classID <= 0 || strings.TrimSpace(studentEmail) == "" {
		return nil, ErrInvalidInput
	}

	classRepo := repository.NewClassRepository(s.db)
	class, err := classRepo.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotAvailable
		}
		return nil, err
	}
	if class.Status != models.ClassStatusApproved || class.Seats <= 0 {
		return nil, ErrClassNotAvailable
	}

	selectionRepo := repository.NewSelectionRepository(s.db)
	return selectionRepo.Create(ctx, repository.CreateSelectionInput{
		StudentEmail: studentEmail,
		ClassID:      classID,
		Price:        class.Price,
	})
}

type FinalizePaymentInput struct {
	SelectedClassID int64
	TransactionID   string
	StudentEmail    string
}

// FinalizePayment converts a paid selection into a confirmed enrollment in
// one transaction: record the payment, drop the pending selection, and move
// the class counters. The unique transaction_id makes replays of the same
// provider transaction fail before any write sticks, and the FOR UPDATE on
// the selection row serializes racing submissions for the same selection.
func (s *EnrollmentService) FinalizePayment(ctx context.Context, input FinalizePaymentInput) (*models.EnrollmentResult, error) {
	if input.SelectedClassID <= 0 || strings.TrimSpace(input.TransactionID) == "" {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txSelectionRepo := repository.NewSelectionRepository(tx)
	txPaymentRepo := repository.NewPaymentRepository(tx)
	txClassRepo := repository.NewClassRepository(tx)

	selection, err := txSelectionRepo.GetByIDForUpdate(ctx, input.SelectedClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSelectionNotFound
		}
		return nil, err
	}
	if selection.StudentEmail != input.StudentEmail {
		return nil, ErrForbidden
	}

	payment, err := txPaymentRepo.Create(ctx, repository.CreatePaymentInput{
		SelectedClassID: selection.ID,
		ClassID:         selection.ClassID,
		StudentEmail:    selection.StudentEmail,
		Price:           selection.Price,
		TransactionID:   input.TransactionID,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicatePayment
		}
		return nil, err
	}

	deleted, err := txSelectionRepo.DeleteByID(ctx, selection.ID, selection.StudentEmail)
	if err != nil {
		return nil, err
	}
	if deleted == 0 {
		return nil, fmt.Errorf("selection %d vanished during finalization", selection.ID)
	}

	class, err := txClassRepo.ApplyEnrollment(ctx, selection.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSoldOut
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &models.EnrollmentResult{
		Payment: *payment,
		Class:   *class,
	}, nil
}
