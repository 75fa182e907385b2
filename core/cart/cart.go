package cart

import "time"

// Item is a user's pending selection of a class, carrying a snapshot of the
// class fields as they looked at selection time.
type Item struct {
	ID              string    `json:"id" db:"item_id"`
	Email           string    `json:"email" db:"email"`
	ClassID         string    `json:"classId" db:"class_id"`
	ClassName       string    `json:"className" db:"class_name"`
	ClassImage      string    `json:"classImage" db:"class_image"`
	InstructorName  string    `json:"instructorName" db:"instructor_name"`
	InstructorEmail string    `json:"instructorEmail" db:"instructor_email"`
	Price           float64   `json:"price" db:"price"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// ItemNew performs no duplicate check: the same class may be selected more
// than once, and each payment drains at most one matching item.
type ItemNew struct {
	Email           string  `json:"email" validate:"required,email"`
	ClassID         string  `json:"classId" validate:"required,uuid4"`
	ClassName       string  `json:"className"`
	ClassImage      string  `json:"classImage" validate:"omitempty,url"`
	InstructorName  string  `json:"instructorName"`
	InstructorEmail string  `json:"instructorEmail" validate:"omitempty,email"`
	Price           float64 `json:"price" validate:"gte=0"`
}
