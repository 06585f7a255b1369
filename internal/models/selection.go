package models

import "time"

// SelectedClass is a student's pending, unpaid intent to enroll in a class.
// The price is snapshotted from the class at selection time.
type SelectedClass struct {
	ID           int64     `json:"id"`
	StudentEmail string    `json:"student_email"`
	ClassID      int64     `json:"class_id"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

// SelectedClassDetail joins the selection with the class fields a student
// sees on their dashboard.
type SelectedClassDetail struct {
	SelectedClass
	ClassName       string  `json:"class_name"`
	ClassImageURL   *string `json:"class_image_url"`
	InstructorEmail string  `json:"instructor_email"`
}
