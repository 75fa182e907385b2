package user

import "time"

type User struct {
	ID        string    `json:"id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Image     string    `json:"image" db:"image"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type UserNew struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
	Image string `json:"image" validate:"omitempty,url"`
}

// RoleCheck answers the boolean role endpoints. Only one of the two fields
// is ever serialized, depending on which role was asked about.
type RoleCheck struct {
	Admin      *bool `json:"admin,omitempty"`
	Instructor *bool `json:"instructor,omitempty"`
}
