package models

import "time"

type Payment struct {
	ID              int64     `json:"id"`
	SelectedClassID int64     `json:"selected_class_id"`
	ClassID         int64     `json:"class_id"`
	StudentEmail    string    `json:"student_email"`
	Price           float64   `json:"price"`
	TransactionID   string    `json:"transaction_id"`
	CreatedAt       time.Time `json:"created_at"`
}

// EnrollmentResult is returned by payment finalization: the recorded payment
// plus the class with its adjusted seat and enrollment counters.
type EnrollmentResult struct {
	Payment Payment `json:"payment"`
	Class   Class   `json:"class"`
}
