package repositories

import (
	"database/sql"
)

// Repositories struct holds all repository interfaces
type Repositories struct {
	Summary SummaryRepository
	Audit   AuditRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Summary: NewSummaryRepository(db),
		Audit:   NewAuditRepository(db),
	}
}
