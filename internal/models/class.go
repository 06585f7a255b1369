package models

import (
	"fmt"
	"strings"
	"time"
)

// ClassStatus tracks a class through the admin review flow.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
	ClassStatusDenied   ClassStatus = "denied"
)

func ParseClassStatus(value string) (ClassStatus, error) {
	switch ClassStatus(strings.ToLower(strings.TrimSpace(value))) {
	case ClassStatusPending:
		return ClassStatusPending, nil
	case ClassStatusApproved:
		return ClassStatusApproved, nil
	case ClassStatusDenied:
		return ClassStatusDenied, nil
	default:
		return "", fmt.Errorf("invalid class status %q", value)
	}
}

type Class struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	ImageURL        *string     `json:"image_url"`
	InstructorName  *string     `json:"instructor_name"`
	InstructorEmail string      `json:"instructor_email"`
	Seats           int         `json:"seats"`
	Price           float64     `json:"price"`
	Status          ClassStatus `json:"status"`
	Feedback        *string     `json:"feedback"`
	TotalEnrolled   int         `json:"total_enrolled"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
