package repositories

import (
	"database/sql"
	"fmt"

	"github.com/clipdigest/clipdigest/models"
)

// SummaryRepository handles summary persistence
type SummaryRepository interface {
	Create(summary *models.Summary) error
	GetByID(id int) (*models.Summary, error)
	GetRecent(limit int) ([]models.Summary, error)
	MarkPosted(id int, postRef string) error
	Count() (int, error)
}

type sqliteSummaryRepository struct {
	db *sql.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *sql.DB) SummaryRepository {
	return &sqliteSummaryRepository{db: db}
}

// Create inserts a new summary and sets its ID
func (r *sqliteSummaryRepository) Create(summary *models.Summary) error {
	query := `
		INSERT INTO summaries (video_id, video_url, platform, summary_text, post_text, posted, post_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(
		query,
		summary.VideoID,
		summary.VideoURL,
		summary.Platform,
		summary.SummaryText,
		summary.PostText,
		summary.Posted,
		summary.PostRef,
	)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get summary ID: %w", err)
	}

	summary.ID = int(id)
	return nil
}

// GetByID retrieves a summary by its ID
func (r *sqliteSummaryRepository) GetByID(id int) (*models.Summary, error) {
	query := `
		SELECT id, video_id, video_url, platform, summary_text, post_text, posted, post_ref, created_at
		FROM summaries
		WHERE id = ?
	`

	summary := &models.Summary{}
	err := r.db.QueryRow(query, id).Scan(
		&summary.ID,
		&summary.VideoID,
		&summary.VideoURL,
		&summary.Platform,
		&summary.SummaryText,
		&summary.PostText,
		&summary.Posted,
		&summary.PostRef,
		&summary.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("summary with ID %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return summary, nil
}

// GetRecent retrieves the most recent summaries, newest first
func (r *sqliteSummaryRepository) GetRecent(limit int) ([]models.Summary, error) {
	query := `
		SELECT id, video_id, video_url, platform, summary_text, post_text, posted, post_ref, created_at
		FROM summaries
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.Summary
	for rows.Next() {
		var summary models.Summary
		err := rows.Scan(
			&summary.ID,
			&summary.VideoID,
			&summary.VideoURL,
			&summary.Platform,
			&summary.SummaryText,
			&summary.PostText,
			&summary.Posted,
			&summary.PostRef,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// MarkPosted records that a summary was published and stores the platform post reference
func (r *sqliteSummaryRepository) MarkPosted(id int, postRef string) error {
	query := `UPDATE summaries SET posted = 1, post_ref = ? WHERE id = ?`

	result, err := r.db.Exec(query, postRef, id)
	if err != nil {
		return fmt.Errorf("failed to mark summary posted: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("summary with ID %d not found", id)
	}

	return nil
}

// Count returns the total number of summaries
func (r *sqliteSummaryRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM summaries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count summaries: %w", err)
	}
	return count, nil
}
