package models

import "time"

const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Actor — тот, кто выполняет запрос (из JWT).
type Actor struct {
	UserID int
	Email  string
	Type   string
}

func (a Actor) IsAdmin() bool {
	return a.Type == UserTypeAdmin
}

type UserProfileResponse struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Type  string `json:"type"`
}
