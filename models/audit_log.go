package models

import "time"

// AuditLogEntry represents a single HTTP mutation event. Actor names the
// connected accounts acting in the request, never their tokens.
type AuditLogEntry struct {
	ID        int64
	Timestamp time.Time
	Actor     string
	Method    string
	Path      string
	FormData  string
	UserAgent string
	IPAddress string
}
