package domain

import "time"

// Client is a case subject. Every client has exactly one assigned
// caseworker; reassignment is an administrative action outside the API.
type Client struct {
	ID                 string    `json:"id"`
	ClientID           string    `json:"client_id"` // human-readable, e.g. CL-2024-001
	FirstName          string    `json:"first_name"`
	LastName           string    `json:"last_name"`
	AssignedCaseworker string    `json:"assigned_caseworker"` // User.ID
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FullName returns the client's display name.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
