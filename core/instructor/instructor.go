package instructor

type Instructor struct {
	ID               string `json:"id" db:"instructor_id"`
	Name             string `json:"name" db:"name"`
	Email            string `json:"email" db:"email"`
	Image            string `json:"image" db:"image"`
	NumberOfStudents int    `json:"numberOfStudents" db:"number_of_students"`
}
