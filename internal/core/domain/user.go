package domain

import "time"

// User models a caseworker account. Accounts are provisioned by admin
// tooling (see cmd/seed); the API never creates or deletes them.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Department   string    `json:"department,omitempty"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns "First Last", falling back to the username when the
// profile carries no name.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Username
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
