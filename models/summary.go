package models

import (
	"strings"
	"time"
)

// Summary is one generated video summary, kept for the history page.
// Post text and the posting reference are filled in when the user publishes.
type Summary struct {
	ID          int       `json:"id" db:"id"`
	VideoID     string    `json:"video_id" db:"video_id"`
	VideoURL    string    `json:"video_url" db:"video_url"`
	Platform    string    `json:"platform" db:"platform"`
	SummaryText string    `json:"summary" db:"summary_text"`
	PostText    string    `json:"post_text" db:"post_text"`
	Posted      bool      `json:"posted" db:"posted"`
	PostRef     string    `json:"post_ref" db:"post_ref"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SummarizeForm represents the summarize-page form input.
type SummarizeForm struct {
	YouTubeURL string `json:"youtube_url"`
	Platform   string `json:"platform"`
}

// Validate checks the form and returns user-facing error messages.
func (f *SummarizeForm) Validate() []string {
	var errors []string

	if strings.TrimSpace(f.YouTubeURL) == "" {
		errors = append(errors, "YouTube URL is required")
	}

	if f.Platform != "" {
		if _, err := GetPlatformConfig(f.Platform); err != nil {
			errors = append(errors, "Unknown platform: "+f.Platform)
		}
	}

	return errors
}

// PendingPost is a generated post awaiting the user's confirmation, held in
// the session between the summarize and publish steps.
type PendingPost struct {
	SummaryID int    `json:"summary_id"`
	Text      string `json:"text"`
	VideoURL  string `json:"video_url"`
	Platform  string `json:"platform"`
}

// FlashMessage represents a flash message for user feedback.
type FlashMessage struct {
	Type    string `json:"type"` // "success", "error", "warning", "info"
	Message string `json:"message"`
}
