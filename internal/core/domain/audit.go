package domain

import "time"

// Audit actions recorded by the async audit trail.
const (
	AuditLogin       = "login"
	AuditLogout      = "logout"
	AuditRefresh     = "token_refresh"
	AuditNoteCreated = "case_note_created"
)

// AuditEvent is an append-only record of a security-relevant action.
// Writing it is always best-effort; failures never surface to the caller.
type AuditEvent struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`   // username, or "anonymous"
	Action    string    `json:"action"`  // one of the Audit* constants
	Subject   string    `json:"subject"` // affected entity, e.g. a client id
	CreatedAt time.Time `json:"created_at"`
}
