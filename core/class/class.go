package class

import "time"

type Status string

// A submitted class is pending until an admin reviews it.
const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Denied   Status = "denied"
)

type Class struct {
	ID               string    `json:"id" db:"class_id"`
	Name             string    `json:"className" db:"name"`
	Image            string    `json:"image" db:"image"`
	InstructorName   string    `json:"instructorName" db:"instructor_name"`
	InstructorEmail  string    `json:"instructorEmail" db:"instructor_email"`
	Price            float64   `json:"price" db:"price"`
	AvailableSeats   int       `json:"availableSeats" db:"available_seats"`
	NumberOfStudents int       `json:"numberOfStudents" db:"number_of_students"`
	Status           Status    `json:"status" db:"status"`
	Feedback         string    `json:"feedback" db:"feedback"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

type ClassNew struct {
	Name            string  `json:"className" validate:"required"`
	Image           string  `json:"image" validate:"omitempty,url"`
	InstructorName  string  `json:"instructorName" validate:"required"`
	InstructorEmail string  `json:"instructorEmail" validate:"required,email"`
	Price           float64 `json:"price" validate:"required,gte=0"`
	AvailableSeats  int     `json:"availableSeats" validate:"required,gte=0"`
}

// ClassUp carries the full field set of the PUT upsert.
type ClassUp struct {
	Name             string  `json:"className" validate:"required"`
	Image            string  `json:"image" validate:"omitempty,url"`
	InstructorName   string  `json:"instructorName" validate:"required"`
	InstructorEmail  string  `json:"instructorEmail" validate:"required,email"`
	Price            float64 `json:"price" validate:"gte=0"`
	AvailableSeats   int     `json:"availableSeats" validate:"gte=0"`
	NumberOfStudents int     `json:"numberOfStudents" validate:"gte=0"`
	Status           Status  `json:"status" validate:"omitempty,oneof=pending approved denied"`
}

type ReviewUp struct {
	Status   Status `json:"status" validate:"required,oneof=pending approved denied"`
	Feedback string `json:"feedback"`
}

// Summary is the projection returned by the enrollment lookup.
type Summary struct {
	ID              string `json:"id" db:"class_id"`
	Name            string `json:"className" db:"name"`
	Image           string `json:"image" db:"image"`
	InstructorName  string `json:"instructorName" db:"instructor_name"`
	InstructorEmail string `json:"instructorEmail" db:"instructor_email"`
}
