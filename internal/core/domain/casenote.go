package domain

import (
	"strings"
	"time"
)

// InteractionType classifies how a caseworker interacted with a client.
type InteractionType string

const (
	InteractionPhone    InteractionType = "phone"
	InteractionInPerson InteractionType = "in-person"
	InteractionEmail    InteractionType = "email"
	InteractionVideo    InteractionType = "video"
	InteractionOther    InteractionType = "other"
)

var interactionTypes = []InteractionType{
	InteractionPhone,
	InteractionInPerson,
	InteractionEmail,
	InteractionVideo,
	InteractionOther,
}

// Valid reports whether t is one of the recognised interaction types.
func (t InteractionType) Valid() bool {
	for _, known := range interactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// InteractionTypeList returns the valid values as a comma-separated string,
// used when rejecting a create request with an unknown type.
func InteractionTypeList() string {
	names := make([]string, len(interactionTypes))
	for i, t := range interactionTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// CaseNote records a single client interaction. Notes are immutable after
// creation: the API exposes no update or delete path.
type CaseNote struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"` // Client.ID
	Content         string          `json:"content"`
	InteractionType InteractionType `json:"interaction_type"`
	CreatedBy       string          `json:"created_by"`      // User.ID
	CreatedByName   string          `json:"created_by_name"` // denormalised at creation
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
